// Package app wires configuration, storage, model providers and the
// agent into one application container.
package app

import (
	"log/slog"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/furrowhq/furrow/internal/agent"
	"github.com/furrowhq/furrow/internal/config"
	"github.com/furrowhq/furrow/internal/crop"
	"github.com/furrowhq/furrow/internal/ingest"
	"github.com/furrowhq/furrow/internal/retrieval"
)

// App is the core application container. All components receive their
// dependencies from here; nothing reads process globals after Setup.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	// Core services
	Genkit   *genkit.Genkit
	Embedder ai.Embedder
	Pool     *pgxpool.Pool

	// Domain components
	Store    *crop.Store
	Searcher *retrieval.Searcher
	Agent    *agent.Agent
	Ingestor *ingest.Ingestor

	// Lifecycle management
	otelCleanup func()
	dbCleanup   func()
}

// Close gracefully shuts down all resources.
func (a *App) Close() error {
	if a.Logger != nil {
		a.Logger.Info("shutting down application")
	}

	if a.otelCleanup != nil {
		a.otelCleanup()
	}
	if a.dbCleanup != nil {
		a.dbCleanup()
	}
	return nil
}
