package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/zeyadtarek/clm-sentinel/internal/conflicts"
	"github.com/zeyadtarek/clm-sentinel/internal/corpus"
	"github.com/zeyadtarek/clm-sentinel/internal/expiry"
)

// Build runs the expiration and conflict analyses over the documents and
// assembles a daily report. Deterministic given its inputs: the same
// corpus at the same instant always produces the same report.
func Build(docs []corpus.Document, alertWindowDays int, now time.Time) DailyReport {
	r := DailyReport{
		Date:              now,
		ExpiringContracts: expiry.FindExpiring(docs, alertWindowDays, now),
		Conflicts:         conflicts.Detect(docs),
	}
	r.Summary = summarize(r)
	r.Recommendations = recommend(r)
	return r
}

func summarize(r DailyReport) Summary {
	urgency := map[expiry.Urgency]int{
		expiry.UrgencyCritical: 0,
		expiry.UrgencyHigh:     0,
		expiry.UrgencyMedium:   0,
		expiry.UrgencyLow:      0,
	}
	for _, c := range r.ExpiringContracts {
		urgency[c.Urgency]++
	}

	types := map[conflicts.Type]int{}
	for _, c := range r.Conflicts {
		types[c.Type]++
	}

	return Summary{
		TotalExpiringContracts:     len(r.ExpiringContracts),
		TotalConflicts:             len(r.Conflicts),
		UrgencyBreakdown:           urgency,
		ConflictTypes:              types,
		RequiresImmediateAttention: urgency[expiry.UrgencyCritical] > 0 || len(r.Conflicts) > 0,
	}
}

// recommend produces action items from fixed templates keyed on the
// findings. A clean report gets a single monitoring reminder.
func recommend(r DailyReport) []string {
	var recs []string

	if n := r.Summary.UrgencyBreakdown[expiry.UrgencyCritical]; n > 0 {
		recs = append(recs, fmt.Sprintf("URGENT: %d contracts expire within 7 days. Immediate action required.", n))
	}
	if n := r.Summary.UrgencyBreakdown[expiry.UrgencyHigh]; n > 0 {
		recs = append(recs, fmt.Sprintf("Review %d contracts expiring within 14 days for renewal decisions.", n))
	}
	if n := r.Summary.ConflictTypes[conflicts.TypeAddress]; n > 0 {
		recs = append(recs, fmt.Sprintf("Resolve %d address conflicts to ensure accurate billing and legal compliance.", n))
	}
	if n := r.Summary.ConflictTypes[conflicts.TypeDate]; n > 0 {
		recs = append(recs, fmt.Sprintf("Clarify %d date conflicts to prevent legal issues.", n))
	}

	if len(recs) == 0 {
		recs = append(recs, "No immediate issues detected. Continue regular monitoring.")
	}
	return recs
}

// WriteJSON serializes the report as indented JSON.
func WriteJSON(w io.Writer, r DailyReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
