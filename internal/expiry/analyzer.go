// Package expiry computes days-to-expiry and urgency tiers for contract
// documents and ranks them by how soon they lapse.
package expiry

import (
	"regexp"
	"sort"
	"time"

	"github.com/zeyadtarek/clm-sentinel/internal/corpus"
	"github.com/zeyadtarek/clm-sentinel/internal/extract"
)

// DefaultAlertWindowDays is how far ahead the analyzer looks by default.
const DefaultAlertWindowDays = 30

// Urgency buckets days-until-expiry into a discrete tier.
type Urgency string

const (
	UrgencyCritical Urgency = "CRITICAL"
	UrgencyHigh     Urgency = "HIGH"
	UrgencyMedium   Urgency = "MEDIUM"
	UrgencyLow      Urgency = "LOW"
)

// Record describes one contract inside the alert window.
type Record struct {
	DocumentID      string   `json:"document_id"`
	FileName        string   `json:"file_name"`
	ContractID      string   `json:"contract_id,omitempty"`
	ContractType    string   `json:"contract_type,omitempty"`
	Companies       []string `json:"companies,omitempty"`
	ExpirationDate  string   `json:"expiration_date"`
	DaysUntilExpiry int      `json:"days_until_expiry"`
	Urgency         Urgency  `json:"urgency"`
}

// contentDate matches exactly the two date shapes ParseDate accepts, so
// trailing prose after the date never leaks into the capture.
const contentDate = `([A-Za-z]+ [0-9]{1,2}, [0-9]{4}|[0-9]{4}-[0-9]{2}-[0-9]{2})`

// Content patterns tried when metadata carries no usable expiration date.
var contentDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Expiration Date:[ \t]*` + contentDate),
	regexp.MustCompile(`(?i)End Date:[ \t]*` + contentDate),
	regexp.MustCompile(`(?i)expires?[ \t]+on[ \t]+` + contentDate),
	regexp.MustCompile(`(?i)terminates?[ \t]+on[ \t]+` + contentDate),
}

// ExpirationDate resolves a document's expiration date. The already
// extracted metadata value wins; the raw content is scanned only when the
// metadata value is absent or unparseable. ok is false when neither path
// yields a date in an accepted format.
func ExpirationDate(doc corpus.Document) (time.Time, bool) {
	if raw := doc.Metadata.String(extract.KeyExpirationDate); raw != "" {
		if t, ok := extract.ParseDate(raw); ok {
			return t, true
		}
	}
	for _, pattern := range contentDatePatterns {
		m := pattern.FindStringSubmatch(doc.RawText)
		if m == nil {
			continue
		}
		if t, ok := extract.ParseDate(m[1]); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// UrgencyFor maps days-until-expiry to its tier. Total: every integer maps
// to exactly one tier.
func UrgencyFor(daysUntilExpiry int) Urgency {
	switch {
	case daysUntilExpiry <= 7:
		return UrgencyCritical
	case daysUntilExpiry <= 14:
		return UrgencyHigh
	case daysUntilExpiry <= 30:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// FindExpiring returns the documents whose expiration falls within
// windowDays of now, most urgent first. Already-expired contracts carry a
// negative day count and sort before everything else. Ties keep corpus
// order.
func FindExpiring(docs []corpus.Document, windowDays int, now time.Time) []Record {
	if windowDays <= 0 {
		windowDays = DefaultAlertWindowDays
	}

	var records []Record
	for _, doc := range docs {
		date, ok := ExpirationDate(doc)
		if !ok {
			continue
		}
		days := daysBetween(now, date)
		if days > windowDays {
			continue
		}
		records = append(records, Record{
			DocumentID:      doc.ID,
			FileName:        doc.FileName(),
			ContractID:      doc.Metadata.String(extract.KeyContractID),
			ContractType:    doc.Metadata.String(extract.KeyContractType),
			Companies:       doc.Metadata.Strings(extract.KeyCompanies),
			ExpirationDate:  date.Format("2006-01-02"),
			DaysUntilExpiry: days,
			Urgency:         UrgencyFor(days),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].DaysUntilExpiry < records[j].DaysUntilExpiry
	})
	return records
}

// daysBetween counts whole calendar days from now to the target date,
// negative when the date already passed.
func daysBetween(now, date time.Time) int {
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	targetDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return int(targetDay.Sub(nowDay).Hours() / 24)
}
