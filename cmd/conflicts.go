package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zeyadtarek/clm-sentinel/internal/conflicts"
)

var conflictsCmd = &cobra.Command{
	Use:   "conflicts",
	Short: "Detect data conflicts across contracts",
	Long:  `Scans the corpus for documents that disagree on facts about the same entity: company addresses, contract expiration dates, and contact details.`,
	RunE:  runConflicts,
}

func init() {
	conflictsCmd.Flags().Bool("json", false, "output conflicts as JSON")
	rootCmd.AddCommand(conflictsCmd)
}

func runConflicts(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := loadEngine(context.Background(), cfg)
	if err != nil {
		return err
	}

	records := conflicts.Detect(engine.Documents())

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No conflicts detected.")
		return nil
	}
	fmt.Printf("Found %d conflict(s):\n\n", len(records))
	for _, rec := range records {
		fmt.Printf("[%s] %s: %s\n", rec.Severity, rec.Type, rec.Description)
		for _, obs := range rec.Observations {
			fmt.Printf("  %s: %s\n", obs.Document, obs.Value)
		}
		fmt.Println()
	}
	return nil
}
