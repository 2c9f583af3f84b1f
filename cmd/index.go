package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zeyadtarek/clm-sentinel/internal/vectordb"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index the contract directory",
	Long:  `Loads every contract document under contracts_dir, fits the similarity index, and exports the corpus into the semantic search store.`,
	RunE:  runIndex,
}

func init() {
	indexCmd.Flags().Bool("quiet", false, "suppress the progress bar")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	quiet, _ := cmd.Flags().GetBool("quiet")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine, store, err := newIndexedStore(ctx, cfg, quiet)
	if err != nil {
		return err
	}

	// The chromem backend survives restarts; the in-memory backend is
	// rebuilt on every invocation.
	if cs, ok := store.(*vectordb.ChromemStore); ok {
		if err := cs.Persist(vectorDir(cfg)); err != nil {
			return fmt.Errorf("persisting vector store: %w", err)
		}
		fmt.Printf("Vector store persisted to %s\n", vectorDir(cfg))
	}

	fmt.Printf("Indexed %d documents\n", engine.Size())
	return nil
}
