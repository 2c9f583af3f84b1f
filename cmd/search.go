package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zeyadtarek/clm-sentinel/internal/vectordb"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Semantically search the contract corpus",
	Long:  `Searches the semantic store using a natural language query and returns the most relevant contract documents.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 5, "maximum number of results")
	searchCmd.Flags().String("type", "", "filter by contract type, e.g. \"Service Agreement\"")
	searchCmd.Flags().String("file", "", "filter by exact file name")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := args[0]

	limit, _ := cmd.Flags().GetInt("limit")
	typeFilter, _ := cmd.Flags().GetString("type")
	fileFilter, _ := cmd.Flags().GetString("file")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, store, err := newIndexedStore(ctx, cfg, true)
	if err != nil {
		return err
	}
	if store.Count() == 0 {
		fmt.Println("No contract documents found. Check contracts_dir in your config.")
		return nil
	}

	filter := searchFilter(typeFilter, fileFilter)

	results, err := store.Query(ctx, query, limit, filter)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	fmt.Print(vectordb.FormatResults(results))
	return nil
}

// searchFilter builds a metadata filter from the flag values. An empty
// flag must map to a nil field so it matches anything, not only empty
// metadata.
func searchFilter(contractType, fileName string) *vectordb.Filter {
	if contractType == "" && fileName == "" {
		return nil
	}
	filter := &vectordb.Filter{}
	if contractType != "" {
		filter.ContractType = &contractType
	}
	if fileName != "" {
		filter.FileName = &fileName
	}
	return filter
}
