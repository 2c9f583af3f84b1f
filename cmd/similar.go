package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zeyadtarek/clm-sentinel/internal/similarity"
)

var similarCmd = &cobra.Command{
	Use:   "similar [document-id]",
	Short: "Find documents similar to a given contract",
	Long: `Ranks the corpus by similarity against one document. With --text the
argument is treated as free text instead of a document id.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimilar,
}

func init() {
	similarCmd.Flags().Int("limit", 5, "maximum number of matches")
	similarCmd.Flags().Float64("min-score", 0, "minimum similarity score (default depends on query kind)")
	similarCmd.Flags().Bool("text", false, "treat the argument as free text, not a document id")
	similarCmd.Flags().Bool("json", false, "output matches as JSON")
	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	minScore, _ := cmd.Flags().GetFloat64("min-score")
	asText, _ := cmd.Flags().GetBool("text")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := loadEngine(context.Background(), cfg)
	if err != nil {
		return err
	}

	var matches []similarity.Match
	if asText {
		if minScore <= 0 {
			minScore = similarity.DefaultTextMinScore
		}
		matches = engine.SimilarToText(args[0], limit, minScore)
	} else {
		if _, ok := engine.Document(args[0]); !ok {
			return fmt.Errorf("unknown document id %q (run `sentinel index` to see the corpus)", args[0])
		}
		if minScore <= 0 {
			minScore = similarity.DefaultMinScore
		}
		matches = engine.SimilarTo(args[0], limit, minScore)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	}

	if len(matches) == 0 {
		fmt.Println("No similar documents found.")
		return nil
	}
	printMatches(matches)
	return nil
}

func printMatches(matches []similarity.Match) {
	for i, m := range matches {
		fmt.Printf("%d. %s (%.1f%%)\n", i+1, m.FileName, m.Score*100)
		if m.ContractType != "" {
			fmt.Printf("   Type: %s\n", m.ContractType)
		}
		if len(m.Companies) > 0 {
			fmt.Printf("   Companies: %s\n", strings.Join(m.Companies, ", "))
		}
	}
}
