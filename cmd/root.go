// Package cmd implements the furrow command-line interface.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "furrow",
	Short: "Furrow - crop economics question answering",
	Long: `Furrow answers natural-language questions about farm crop economics
(profit, cost efficiency, harvest yield) by routing each question to either
a direct SQL aggregate over crop entries or semantic retrieval over their
embedded descriptions.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	// Best-effort .env loading for local development; real deployments
	// configure through the environment or ~/.furrow/config.yaml.
	_ = godotenv.Load()

	return rootCmd.Execute()
}
