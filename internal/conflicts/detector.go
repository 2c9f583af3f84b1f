// Package conflicts runs rule-based consistency checks over the extracted
// metadata of a document corpus: conflicting addresses, expiration dates,
// and contact details. Detection is a pure function of the corpus; group
// keys are sorted so repeated runs emit records in the same order.
package conflicts

import (
	"fmt"
	"sort"

	"github.com/zeyadtarek/clm-sentinel/internal/corpus"
	"github.com/zeyadtarek/clm-sentinel/internal/expiry"
	"github.com/zeyadtarek/clm-sentinel/internal/extract"
)

// Detect runs all three conflict passes over the documents and returns the
// combined findings: address conflicts first, then date, then contact.
func Detect(docs []corpus.Document) []Record {
	var records []Record
	records = append(records, detectAddressConflicts(docs)...)
	records = append(records, detectDateConflicts(docs)...)
	records = append(records, detectContactConflicts(docs)...)
	return records
}

// detectAddressConflicts groups extracted addresses by company name exactly
// as written. A company with more than one distinct address across the
// corpus yields one HIGH record listing every observation.
func detectAddressConflicts(docs []corpus.Document) []Record {
	byCompany := map[string][]Observation{}

	for _, doc := range docs {
		companies := doc.Metadata.Strings(extract.KeyCompanies)
		addresses := doc.Metadata.Strings(extract.KeyAddresses)
		if len(companies) == 0 || len(addresses) == 0 {
			continue
		}
		for _, addr := range addresses {
			for _, company := range companies {
				byCompany[company] = append(byCompany[company], Observation{
					DocumentID: doc.ID,
					Document:   doc.FileName(),
					Value:      addr,
				})
			}
		}
	}

	var records []Record
	for _, company := range sortedKeys(byCompany) {
		obs := byCompany[company]
		if countDistinct(obs) < 2 {
			continue
		}
		records = append(records, Record{
			Type:         TypeAddress,
			Severity:     SeverityHigh,
			Entity:       company,
			Description:  fmt.Sprintf("Multiple addresses found for %s", company),
			Observations: obs,
		})
	}
	return records
}

// detectDateConflicts groups parsed expiration dates by contract id.
// Documents without a contract id or a parseable date do not participate.
func detectDateConflicts(docs []corpus.Document) []Record {
	byContract := map[string][]Observation{}

	for _, doc := range docs {
		contractID := doc.Metadata.String(extract.KeyContractID)
		if contractID == "" {
			continue
		}
		date, ok := expiry.ExpirationDate(doc)
		if !ok {
			continue
		}
		byContract[contractID] = append(byContract[contractID], Observation{
			DocumentID: doc.ID,
			Document:   doc.FileName(),
			Value:      date.Format("2006-01-02"),
		})
	}

	var records []Record
	for _, contractID := range sortedKeys(byContract) {
		obs := byContract[contractID]
		if countDistinct(obs) < 2 {
			continue
		}
		records = append(records, Record{
			Type:         TypeDate,
			Severity:     SeverityHigh,
			Entity:       contractID,
			Description:  fmt.Sprintf("Multiple expiration dates found for contract %s", contractID),
			Observations: obs,
		})
	}
	return records
}

// detectContactConflicts groups email and phone fields by company. More
// than one distinct email OR more than one distinct phone for the same
// company yields one MEDIUM record.
func detectContactConflicts(docs []corpus.Document) []Record {
	type seen struct {
		obs    []Observation
		emails map[string]bool
		phones map[string]bool
	}
	byCompany := map[string]*seen{}

	for _, doc := range docs {
		email := doc.Metadata.String(extract.KeyEmail)
		phone := doc.Metadata.String(extract.KeyPhone)
		if email == "" && phone == "" {
			continue
		}
		for _, company := range doc.Metadata.Strings(extract.KeyCompanies) {
			s := byCompany[company]
			if s == nil {
				s = &seen{emails: map[string]bool{}, phones: map[string]bool{}}
				byCompany[company] = s
			}
			if email != "" {
				s.emails[email] = true
				s.obs = append(s.obs, Observation{DocumentID: doc.ID, Document: doc.FileName(), Value: "email: " + email})
			}
			if phone != "" {
				s.phones[phone] = true
				s.obs = append(s.obs, Observation{DocumentID: doc.ID, Document: doc.FileName(), Value: "phone: " + phone})
			}
		}
	}

	var records []Record
	for _, company := range sortedKeys(byCompany) {
		s := byCompany[company]
		if len(s.emails) < 2 && len(s.phones) < 2 {
			continue
		}
		records = append(records, Record{
			Type:         TypeContact,
			Severity:     SeverityMedium,
			Entity:       company,
			Description:  fmt.Sprintf("Multiple contact information found for %s", company),
			Observations: s.obs,
		})
	}
	return records
}

func countDistinct(obs []Observation) int {
	distinct := map[string]bool{}
	for _, o := range obs {
		distinct[o.Value] = true
	}
	return len(distinct)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
