// Package report aggregates expiration and conflict findings into a
// daily report with summary counts and recommendation strings.
package report

import (
	"time"

	"github.com/zeyadtarek/clm-sentinel/internal/conflicts"
	"github.com/zeyadtarek/clm-sentinel/internal/expiry"
)

// Summary holds the aggregate counts derived from a report's findings.
type Summary struct {
	TotalExpiringContracts     int                     `json:"total_expiring_contracts"`
	TotalConflicts             int                     `json:"total_conflicts"`
	UrgencyBreakdown           map[expiry.Urgency]int  `json:"urgency_breakdown"`
	ConflictTypes              map[conflicts.Type]int  `json:"conflict_types"`
	RequiresImmediateAttention bool                    `json:"requires_immediate_attention"`
}

// DailyReport is one analysis run over the corpus. Ephemeral; persisting
// it is the caller's concern (see Store).
type DailyReport struct {
	Date              time.Time          `json:"date"`
	ExpiringContracts []expiry.Record    `json:"expiring_contracts"`
	Conflicts         []conflicts.Record `json:"conflicts"`
	Summary           Summary            `json:"summary"`
	Recommendations   []string           `json:"recommendations"`
}

// FileName returns the conventional artifact name for a run generated at
// the report's date, e.g. daily_report_20250601.json.
func (r DailyReport) FileName() string {
	return "daily_report_" + r.Date.Format("20060102") + ".json"
}
