package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zeyadtarek/clm-sentinel/internal/db"
	"github.com/zeyadtarek/clm-sentinel/internal/expiry"
)

// Store persists report runs and notification outcomes to SQLite so that
// past analyses remain inspectable after the process exits.
type Store struct {
	db *db.DB
}

// NewStore wraps an open database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Run is a persisted summary row for one report generation.
type Run struct {
	ID                string    `json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	DocumentCount     int       `json:"document_count"`
	ExpiringCount     int       `json:"expiring_count"`
	ConflictCount     int       `json:"conflict_count"`
	CriticalCount     int       `json:"critical_count"`
	RequiresAttention bool      `json:"requires_attention"`
}

// SaveRun records a completed report along with its full JSON body and
// returns the run id.
func (s *Store) SaveRun(ctx context.Context, r DailyReport, documentCount int) (string, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO report_runs (id, created_at, document_count, expiring_count, conflict_count, critical_count, requires_attention, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		r.Date.UTC().Format(time.RFC3339),
		documentCount,
		r.Summary.TotalExpiringContracts,
		r.Summary.TotalConflicts,
		r.Summary.UrgencyBreakdown[expiry.UrgencyCritical],
		boolToInt(r.Summary.RequiresImmediateAttention),
		string(body),
	)
	if err != nil {
		return "", fmt.Errorf("inserting report run: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, document_count, expiring_count, conflict_count, critical_count, requires_attention
		FROM report_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying report runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var created string
		var attention int
		if err := rows.Scan(&r.ID, &created, &r.DocumentCount, &r.ExpiringCount, &r.ConflictCount, &r.CriticalCount, &attention); err != nil {
			return nil, fmt.Errorf("scanning report run: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		r.RequiresAttention = attention != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun loads the full report body for a run id. A missing id returns
// (zero, false, nil).
func (s *Store) GetRun(ctx context.Context, id string) (DailyReport, bool, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT report_json FROM report_runs WHERE id = ?`, id).Scan(&body)
	if err == sql.ErrNoRows {
		return DailyReport{}, false, nil
	}
	if err != nil {
		return DailyReport{}, false, fmt.Errorf("loading report run: %w", err)
	}

	var r DailyReport
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return DailyReport{}, false, fmt.Errorf("decoding report run: %w", err)
	}
	return r, true, nil
}

// LogNotification records the outcome of an email delivery attempt for a
// run. status is one of sent, failed, skipped.
func (s *Store) LogNotification(ctx context.Context, runID, recipient, subject, status, detail string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notification_log (id, run_id, recipient, subject, status, detail)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), runID, recipient, subject, status, detail)
	if err != nil {
		return fmt.Errorf("logging notification: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
