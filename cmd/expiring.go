package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zeyadtarek/clm-sentinel/internal/expiry"
)

var expiringCmd = &cobra.Command{
	Use:   "expiring",
	Short: "List contracts expiring inside the alert window",
	RunE:  runExpiring,
}

func init() {
	expiringCmd.Flags().Int("window", 0, "alert window in days (defaults to alert_window_days from config)")
	expiringCmd.Flags().Bool("json", false, "output records as JSON")
	rootCmd.AddCommand(expiringCmd)
}

func runExpiring(cmd *cobra.Command, args []string) error {
	window, _ := cmd.Flags().GetInt("window")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if window <= 0 {
		window = cfg.AlertWindowDays
	}

	engine, err := loadEngine(context.Background(), cfg)
	if err != nil {
		return err
	}

	records := expiry.FindExpiring(engine.Documents(), window, time.Now())

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Printf("No contracts expiring within %d days.\n", window)
		return nil
	}
	fmt.Printf("%d contract(s) expiring within %d days:\n\n", len(records), window)
	for _, rec := range records {
		name := rec.ContractID
		if name == "" {
			name = rec.FileName
		}
		fmt.Printf("[%s] %s expires %s (%d days)\n", rec.Urgency, name, rec.ExpirationDate, rec.DaysUntilExpiry)
		if len(rec.Companies) > 0 {
			fmt.Printf("  Companies: %s\n", strings.Join(rec.Companies, ", "))
		}
	}
	return nil
}
