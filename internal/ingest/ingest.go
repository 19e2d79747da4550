// Package ingest loads crop records from PDF farm books: text
// extraction, structured parsing, name normalization, embedding, and
// storage.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/furrowhq/furrow/internal/crop"
)

// profitTolerance is the largest |profit - (revenue - seed cost)| gap
// accepted without a warning. Profit is stored as extracted, never
// recomputed; the book's own figures win.
const profitTolerance = 0.01

// Store is the write side of crop storage used during ingestion.
type Store interface {
	Insert(ctx context.Context, e crop.Entry) error
}

// Embedder converts entry summaries to vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// CropParser extracts structured crop records from page text.
type CropParser interface {
	ParseCrops(ctx context.Context, text string) ([]ParsedCrop, error)
}

// Ingestor runs the PDF ingestion pipeline.
type Ingestor struct {
	store    Store
	embedder Embedder
	parser   CropParser
	logger   *slog.Logger
}

// NewIngestor creates an Ingestor. logger may be nil.
func NewIngestor(store Store, embedder Embedder, parser CropParser, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestor{store: store, embedder: embedder, parser: parser, logger: logger}
}

// IngestDir processes every .pdf file in dir and returns the number of
// crop entries stored. A file that yields no crops is logged and
// skipped; a failed embedding skips that one entry. Extraction and
// storage failures abort the run.
func (in *Ingestor) IngestDir(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading ingest directory: %w", err)
	}

	stored := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		in.logger.Info("processing pdf", "file", entry.Name())

		text, err := extractText(path)
		if err != nil {
			return stored, err
		}

		crops, err := in.parser.ParseCrops(ctx, text)
		if err != nil {
			return stored, fmt.Errorf("parsing %s: %w", entry.Name(), err)
		}
		if len(crops) == 0 {
			in.logger.Warn("no crops found in file", "file", entry.Name())
			continue
		}

		n, err := in.storeCrops(ctx, crops)
		stored += n
		if err != nil {
			return stored, err
		}
		in.logger.Info("stored crops from file", "file", entry.Name(), "count", n)
	}
	return stored, nil
}

func (in *Ingestor) storeCrops(ctx context.Context, crops []ParsedCrop) (int, error) {
	stored := 0
	for _, c := range crops {
		if gap := math.Abs(c.TotalProfit - (c.TotalRevenue - c.TotalSeedCost)); gap > profitTolerance {
			in.logger.Warn("profit does not match revenue minus seed cost",
				"crop", c.Name, "profit", c.TotalProfit, "gap", gap)
		}

		vec, err := in.embedder.Embed(ctx, embeddingText(c))
		if err != nil {
			in.logger.Warn("embedding failed, skipping entry", "crop", c.Name, "error", err)
			continue
		}

		seedCost, revenue, profit, pounds := c.TotalSeedCost, c.TotalRevenue, c.TotalProfit, c.PoundsHarvested
		e := crop.Entry{
			Name:            crop.Normalize(c.Name),
			DetailedName:    c.Name,
			TotalSeedCost:   &seedCost,
			TotalRevenue:    &revenue,
			TotalProfit:     &profit,
			PoundsHarvested: &pounds,
			Embedding:       vec,
		}
		if err := in.store.Insert(ctx, e); err != nil {
			return stored, err
		}
		stored++
	}
	return stored, nil
}

// embeddingText renders the summary line embedded for similarity
// search. Phrasing stays close to the entry description format so query
// and document vectors share vocabulary.
func embeddingText(c ParsedCrop) string {
	return fmt.Sprintf("%s, seed cost: %s, harvested: %d lbs, revenue: %s, profit: %s",
		c.Name,
		strconv.FormatFloat(c.TotalSeedCost, 'f', -1, 64),
		c.PoundsHarvested,
		strconv.FormatFloat(c.TotalRevenue, 'f', -1, 64),
		strconv.FormatFloat(c.TotalProfit, 'f', -1, 64))
}
