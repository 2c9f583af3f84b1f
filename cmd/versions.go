package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

var versionsCmd = &cobra.Command{
	Use:   "versions [base-name]",
	Short: "Compare versions of the same contract",
	Long: `Compares all documents whose file name contains the base name, pairwise.
Useful for spotting what changed between contract_v1 and contract_v2.`,
	Args: cobra.ExactArgs(1),
	RunE: runVersions,
}

func init() {
	versionsCmd.Flags().Bool("json", false, "output the comparison as JSON")
	rootCmd.AddCommand(versionsCmd)
}

func runVersions(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := loadEngine(context.Background(), cfg)
	if err != nil {
		return err
	}

	versions := engine.Versions(args[0])
	if len(versions) == 0 {
		fmt.Printf("Fewer than two documents match %q; nothing to compare.\n", args[0])
		return nil
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(versions)
	}

	for _, v := range versions {
		fmt.Printf("%s:\n", v.FileName)
		others := make([]string, 0, len(v.Similarities))
		for other := range v.Similarities {
			others = append(others, other)
		}
		sort.Strings(others)
		for _, other := range others {
			fmt.Printf("  vs %s: %.1f%%\n", other, v.Similarities[other]*100)
		}
	}
	return nil
}
