package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aliciamoraes/sana-agent/internal/adapters/llm"
	"github.com/aliciamoraes/sana-agent/internal/adapters/storage/memory"
	"github.com/aliciamoraes/sana-agent/internal/adapters/tui"
	"github.com/aliciamoraes/sana-agent/internal/app/conversation"
	"github.com/aliciamoraes/sana-agent/internal/config"
	"github.com/aliciamoraes/sana-agent/internal/domain"
	"github.com/aliciamoraes/sana-agent/internal/observability"
)

var (
	flagVariant  string
	flagProvider string
	flagModel    string
	flagMock     bool
)

var rootCmd = &cobra.Command{
	Use:   "sana",
	Short: "Sana, a session-scoped AI therapist in your terminal",
	Long: `Sana runs one interactive therapy-chat session: a short onboarding
wizard collects your profile, then every message is answered by a remote
language model. Type "summary" or "end session" for a structured wrap-up.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&flagVariant, "variant", "", "Persona variant: classic, gentle, or insight (adds the personality quiz)")
	rootCmd.Flags().StringVar(&flagProvider, "provider", "", "Completion backend: openrouter, gemini, or mock")
	rootCmd.Flags().StringVar(&flagModel, "model", "", "Model identifier for the selected backend")
	rootCmd.Flags().BoolVar(&flagMock, "mock", false, "Use the offline mock backend (no API key needed)")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg := config.Load()
	if flagVariant != "" {
		cfg.Variant = domain.Variant(flagVariant)
	}
	if flagProvider != "" {
		cfg.Provider = config.Provider(flagProvider)
	}
	if flagModel != "" {
		cfg.Model = flagModel
	}
	if flagMock {
		cfg.Provider = config.ProviderMock
	}

	// Missing credentials are fatal before any session logic runs.
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := observability.Logger()

	var client domain.LLMClient
	var err error
	switch cfg.Provider {
	case config.ProviderMock:
		log.Info("using mock LLM client")
		client = llm.NewMockLLM()
	case config.ProviderGemini:
		log.Info("using Gemini client", "model", cfg.Model)
		client, err = llm.NewGeminiClient(ctx, cfg.APIKey)
	default:
		log.Info("using OpenRouter client", "model", cfg.Model)
		client, err = llm.NewOpenRouterClient(cfg.APIKey, cfg.BaseURL)
	}
	if err != nil {
		return fmt.Errorf("initializing LLM client: %w", err)
	}

	summaries := memory.NewSummaryStore()
	svc := conversation.NewService(client, summaries, cfg.Model)

	session, err := tui.Run(svc, cfg.Variant)
	if err != nil {
		return err
	}

	// Print any recorded wrap-ups so they survive leaving the screen.
	entries, err := svc.Summaries(session)
	if err == nil && len(entries) > 0 {
		fmt.Println("Session summaries:")
		for _, e := range entries {
			fmt.Println()
			fmt.Println(e.Text)
		}
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
