package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zeyadtarek/clm-sentinel/internal/rag"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the contract corpus",
	Long: `Retrieves the contracts most relevant to the question and generates an
answer citing them. With llm.provider "none" the answer is built from
the extracted contract fields without any model call.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().Int("limit", 3, "maximum number of source documents")
	askCmd.Flags().Bool("json", false, "output the answer as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := loadEngine(ctx, cfg)
	if err != nil {
		return err
	}
	provider, err := newLLM(cfg)
	if err != nil {
		return fmt.Errorf("creating LLM provider: %w", err)
	}

	answer, err := rag.New(engine, provider).Ask(ctx, args[0], limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(answer)
	}

	fmt.Println(answer.Answer)
	if len(answer.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, src := range answer.Sources {
			fmt.Printf("  - %s (%.1f%%)\n", src.FileName, src.Score*100)
		}
	}
	return nil
}
