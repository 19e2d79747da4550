package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/furrowhq/furrow/internal/app"
	"github.com/furrowhq/furrow/internal/config"
	"github.com/furrowhq/furrow/internal/log"
)

var ingestClear bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [pdf-directory]",
	Short: "Parse crop record PDFs and load them into the database",
	Long: `Ingest extracts text from each PDF in the given directory, parses
structured crop records out of it with the configured model, generates an
embedding per record, and stores the rows in the crop_entries table.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestClear, "clear", false, "delete all existing crop entries first")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
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

	if ingestClear {
		if err := a.Store.Clear(ctx); err != nil {
			return fmt.Errorf("clearing crop entries: %w", err)
		}
		logger.Info("cleared existing crop entries")
	}

	count, err := a.Ingestor.IngestDir(ctx, args[0])
	if err != nil {
		return fmt.Errorf("ingesting %s: %w", args[0], err)
	}

	fmt.Printf("Stored %d crop entries.\n", count)
	return nil
}
