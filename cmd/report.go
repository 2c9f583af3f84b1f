package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/zeyadtarek/clm-sentinel/internal/config"
	"github.com/zeyadtarek/clm-sentinel/internal/db"
	"github.com/zeyadtarek/clm-sentinel/internal/notify"
	"github.com/zeyadtarek/clm-sentinel/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the daily contract analysis report",
	Long: `Runs the full analysis (expirations and conflicts), writes the report
JSON into reports_dir, records the run in the database, and optionally
emails the report to the configured recipient.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().Bool("email", false, "send the report to the configured email recipient")
	reportCmd.Flags().Bool("history", false, "list past report runs instead of generating a new one")
	reportCmd.Flags().Bool("json", false, "print the report JSON instead of markdown")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	sendEmail, _ := cmd.Flags().GetBool("email")
	history, _ := cmd.Flags().GetBool("history")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	reports := report.NewStore(database)

	if history {
		return printRunHistory(ctx, reports)
	}

	engine, err := loadEngine(ctx, cfg)
	if err != nil {
		return err
	}

	r := report.Build(engine.Documents(), cfg.AlertWindowDays, time.Now())

	if err := os.MkdirAll(cfg.ReportsDir, 0o755); err != nil {
		return fmt.Errorf("creating reports directory: %w", err)
	}
	path := filepath.Join(cfg.ReportsDir, r.FileName())
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	if err := report.WriteJSON(f, r); err != nil {
		f.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	f.Close()

	runID, err := reports.SaveRun(ctx, r, engine.Size())
	if err != nil {
		return fmt.Errorf("recording report run: %w", err)
	}

	if sendEmail {
		if err := deliverReport(ctx, cfg, reports, runID, r); err != nil {
			return err
		}
	}

	if jsonOutput {
		return report.WriteJSON(os.Stdout, r)
	}
	fmt.Print(report.Markdown(r))
	fmt.Printf("\nReport saved to %s (run %s)\n", path, runID)
	return nil
}

func deliverReport(ctx context.Context, cfg *config.Config, reports *report.Store, runID string, r report.DailyReport) error {
	mailer := newMailer(cfg)
	if !mailer.Enabled() {
		_ = reports.LogNotification(ctx, runID, cfg.Email.Recipient, notify.Subject(r), "skipped", "email not configured")
		return fmt.Errorf("email is not configured: set email.smtp_host and email.recipient")
	}
	subject := notify.Subject(r)
	if err := mailer.Send(r); err != nil {
		_ = reports.LogNotification(ctx, runID, cfg.Email.Recipient, subject, "failed", err.Error())
		return fmt.Errorf("sending report email: %w", err)
	}
	if err := reports.LogNotification(ctx, runID, cfg.Email.Recipient, subject, "sent", ""); err != nil {
		return err
	}
	fmt.Printf("Report emailed to %s\n", cfg.Email.Recipient)
	return nil
}

func printRunHistory(ctx context.Context, reports *report.Store) error {
	runs, err := reports.ListRuns(ctx, 20)
	if err != nil {
		return fmt.Errorf("listing report runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No report runs recorded yet.")
		return nil
	}
	for _, run := range runs {
		attention := ""
		if run.RequiresAttention {
			attention = "  ACTION REQUIRED"
		}
		fmt.Printf("%s  %s  docs=%d expiring=%d conflicts=%d critical=%d%s\n",
			run.CreatedAt.Format("2006-01-02 15:04"), run.ID,
			run.DocumentCount, run.ExpiringCount, run.ConflictCount, run.CriticalCount, attention)
	}
	return nil
}
