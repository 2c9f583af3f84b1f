package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "Find near-duplicate contracts",
	Long:  `Groups documents whose pairwise similarity meets the duplicate threshold. Each group lists the documents that are near-copies of each other.`,
	RunE:  runDuplicates,
}

func init() {
	duplicatesCmd.Flags().Float64("threshold", 0, "similarity threshold (defaults to duplicate_threshold from config)")
	duplicatesCmd.Flags().Bool("json", false, "output groups as JSON")
	rootCmd.AddCommand(duplicatesCmd)
}

func runDuplicates(cmd *cobra.Command, args []string) error {
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if threshold <= 0 {
		threshold = cfg.DuplicateThreshold
	}

	engine, err := loadEngine(context.Background(), cfg)
	if err != nil {
		return err
	}

	groups := engine.DuplicateGroups(threshold)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(groups)
	}

	if len(groups) == 0 {
		fmt.Printf("No duplicate groups at threshold %.2f.\n", threshold)
		return nil
	}
	for i, group := range groups {
		fmt.Printf("Group %d:\n", i+1)
		for _, m := range group {
			fmt.Printf("  - %s (%.1f%%)\n", m.FileName, m.Score*100)
		}
	}
	return nil
}
