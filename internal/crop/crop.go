// Package crop defines the crop-entry data model and its PostgreSQL store.
//
// A crop entry is one stored record of a crop's economic outcome for a
// season: seed cost, pounds harvested, revenue, profit, plus an embedding
// of the entry's textual summary used for semantic retrieval. Entries are
// written by ingestion and read-only everywhere else.
package crop

import (
	"fmt"
	"strings"
)

// Entry is a persisted crop record.
//
// The economic fields are nullable: source documents do not always carry
// every figure. TotalProfit is stored as extracted from the source and is
// NOT recomputed from revenue and seed cost; treat it as untrusted input.
type Entry struct {
	ID              int64
	Name            string // canonical label, e.g. "Kale"
	DetailedName    string // raw extracted label, e.g. "Kale Dino - Big Y A"
	TotalSeedCost   *float64
	PoundsHarvested *int32
	TotalRevenue    *float64
	TotalProfit     *float64 // may be negative
	Embedding       []float32
}

// Summary renders the entry's one-line economic description shown as
// retrieval context and cited in answer sources. Missing figures render
// as "n/a" rather than empty.
func (e Entry) Summary() string {
	return fmt.Sprintf("Seed cost: $%s, Harvested: %s lbs, Revenue: $%s, Profit: $%s",
		formatOptFloat(e.TotalSeedCost),
		formatOptInt(e.PoundsHarvested),
		formatOptFloat(e.TotalRevenue),
		formatOptFloat(e.TotalProfit),
	)
}

func formatOptFloat(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", *v), "0"), ".")
}

func formatOptInt(v *int32) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d", *v)
}

// Retrieved is a query-local search result: one crop entry as seen by
// the retrieval pipeline. It is derived per request and never persisted.
type Retrieved struct {
	CropName    string
	Description string
	Similarity  float64 // cosine similarity, 1 − cosine distance
}
