package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zeyadtarek/clm-sentinel/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize sentinel configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure sentinel for your contract directory and generates a .sentinel.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
