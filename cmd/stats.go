package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus-wide similarity statistics",
	Long:  `Computes aggregate similarity statistics over every document pair. With --export the full pairwise matrix is written to a JSON file.`,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().String("export", "", "write the full similarity matrix to this JSON file")
	statsCmd.Flags().Bool("json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	exportPath, _ := cmd.Flags().GetString("export")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := loadEngine(context.Background(), cfg)
	if err != nil {
		return err
	}

	if exportPath != "" {
		f, err := os.Create(exportPath)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		if err := engine.ExportMatrix(f); err != nil {
			return fmt.Errorf("exporting similarity matrix: %w", err)
		}
		fmt.Printf("Similarity matrix written to %s\n", exportPath)
		return nil
	}

	stats := engine.PairwiseStats()

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Printf("Documents:        %d\n", stats.TotalDocuments)
	fmt.Printf("Mean similarity:  %.4f\n", stats.Mean)
	fmt.Printf("Max similarity:   %.4f\n", stats.Max)
	fmt.Printf("Min similarity:   %.4f\n", stats.Min)
	fmt.Printf("Std deviation:    %.4f\n", stats.StdDev)
	fmt.Printf("High (>0.8):      %d pairs\n", stats.HighCount)
	fmt.Printf("Medium (0.5-0.8): %d pairs\n", stats.MediumCount)
	fmt.Printf("Low (<=0.5):      %d pairs\n", stats.LowCount)
	return nil
}
