package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zeyadtarek/clm-sentinel/internal/db"
	"github.com/zeyadtarek/clm-sentinel/internal/rag"
	"github.com/zeyadtarek/clm-sentinel/internal/report"
	"github.com/zeyadtarek/clm-sentinel/internal/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API server",
	Long:  `Indexes the contract corpus and starts the sentinel REST API: search, similarity, conflicts, expirations, Q&A, and report runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			cfg.Server.Port = port
		}

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

		srv := server.New(cfg, engine, rag.New(engine, provider), store,
			report.NewStore(database), newMailer(cfg))

		// Graceful shutdown.
		sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-sigCtx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "sentinel server v%s starting on %s:%d\n", Version, cfg.Server.Host, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Database:  %s\n", cfg.DatabasePath)
		fmt.Fprintf(os.Stderr, "  Contracts: %s\n", cfg.ContractsDir)
		fmt.Fprintf(os.Stderr, "  Documents: %d\n", engine.Size())

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().Int("port", 0, "port to listen on (overrides server.port from config)")
	rootCmd.AddCommand(serverCmd)
}
