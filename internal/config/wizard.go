package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard interactively builds a configuration and saves it to
// .sentinel.yml in the current directory.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to sentinel! Let's configure contract monitoring.")
	fmt.Println()

	cfg := DefaultConfig()

	dirPrompt := promptui.Prompt{
		Label:   "Contracts directory",
		Default: cfg.ContractsDir,
		Validate: func(input string) error {
			if input == "" {
				return fmt.Errorf("directory must not be empty")
			}
			return nil
		},
	}
	dir, err := dirPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("contracts directory: %w", err)
	}
	cfg.ContractsDir = dir
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		fmt.Printf("Note: %s does not exist yet; create it before indexing.\n", dir)
	}

	windowPrompt := promptui.Prompt{
		Label:   "Expiration alert window (days)",
		Default: strconv.Itoa(cfg.AlertWindowDays),
		Validate: func(input string) error {
			n, err := strconv.Atoi(input)
			if err != nil || n <= 0 {
				return fmt.Errorf("enter a positive number of days")
			}
			return nil
		},
	}
	windowStr, err := windowPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("alert window: %w", err)
	}
	cfg.AlertWindowDays, _ = strconv.Atoi(windowStr)

	providerPrompt := promptui.Select{
		Label: "Question-answering backend",
		Items: []string{
			"none   — local keyword answers, no API key needed",
			"openai — OpenAI chat models (requires OPENAI_API_KEY)",
			"ollama — local Ollama server",
		},
	}
	providerIdx, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}
	providers := []ProviderType{ProviderNone, ProviderOpenAI, ProviderOllama}
	cfg.LLM.Provider = providers[providerIdx]

	if cfg.LLM.Provider != ProviderNone {
		modelDefault := "gpt-4o-mini"
		if cfg.LLM.Provider == ProviderOllama {
			modelDefault = "llama3.2"
		}
		modelPrompt := promptui.Prompt{Label: "Model", Default: modelDefault}
		model, err := modelPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("model: %w", err)
		}
		cfg.LLM.Model = model
	}

	recipientPrompt := promptui.Prompt{
		Label:   "Daily report email recipient (blank to disable email)",
		Default: "",
	}
	recipient, err := recipientPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("email recipient: %w", err)
	}
	cfg.Email.Recipient = recipient
	if recipient != "" {
		hostPrompt := promptui.Prompt{Label: "SMTP host"}
		host, err := hostPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("smtp host: %w", err)
		}
		cfg.Email.SMTPHost = host
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(DefaultConfigFile); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultConfigFile)
	return cfg, nil
}
