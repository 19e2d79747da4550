package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/furrowhq/furrow/internal/app"
	"github.com/furrowhq/furrow/internal/config"
	"github.com/furrowhq/furrow/internal/log"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question about your crop data",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := log.New(log.Config{Level: cfg.LogLevel()})

	a, err := app.Setup(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			logger.Warn("closing application", "error", closeErr)
		}
	}()

	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("question must not be empty")
	}

	// Agent.Answer never fails; errors come back as in-band text.
	fmt.Println(a.Agent.Answer(ctx, question))
	return nil
}
