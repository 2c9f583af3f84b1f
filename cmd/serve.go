package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zeyadtarek/clm-sentinel/internal/db"
	mcpserver "github.com/zeyadtarek/clm-sentinel/internal/mcp"
	"github.com/zeyadtarek/clm-sentinel/internal/rag"
	"github.com/zeyadtarek/clm-sentinel/internal/report"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Indexes the contract corpus and starts a Model Context Protocol (MCP) server on stdio, exposing contract analysis tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Stdout carries the MCP protocol; progress stays silent.
		engine, store, err := newIndexedStore(ctx, cfg, true)
		if err != nil {
			return err
		}

		database, err := db.Open(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		provider, err := newLLM(cfg)
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "sentinel MCP server started on stdio (contracts=%s, documents=%d)\n",
			cfg.ContractsDir, engine.Size())

		srv := mcpserver.NewServer(cfg, engine, rag.New(engine, provider), store,
			report.NewStore(database), newMailer(cfg))
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
