package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zeyadtarek/clm-sentinel/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sentinel",
	Short: "Contract lifecycle analysis: similarity, conflicts, and expirations",
	Long: `Sentinel indexes a directory of contract documents and analyzes them
for near-duplicates, cross-document data conflicts, and upcoming
expirations. It answers questions about the corpus, produces a daily
report, and exposes the same analysis over HTTP and MCP for agents.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
