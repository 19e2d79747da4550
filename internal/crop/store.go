package crop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"
)

// Querier is the subset of pgxpool.Pool the store depends on. Defined
// here, by the consumer, so tests can substitute a lighter fake.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Store provides read access to crop entries plus the two write paths
// owned by ingestion (Insert, Clear). All aggregate queries carry an
// explicit secondary ORDER BY id so ties resolve deterministically
// instead of by storage order.
//
// Store is safe for concurrent use; all reads are independent.
type Store struct {
	db     Querier
	logger *slog.Logger
}

// NewStore creates a Store. logger may be nil.
func NewStore(db Querier, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// Efficiency is the most-cost-efficient-crop query result.
type Efficiency struct {
	DetailedName string
	Ratio        float64 // total_profit / total_seed_cost
}

// Profit is the most-profitable-crop query result.
type Profit struct {
	DetailedName string
	Profit       float64
}

// Harvest is the largest-harvest-crop query result.
type Harvest struct {
	DetailedName string
	Pounds       float64
}

// MostCostEfficient returns the entry maximizing profit/seed-cost among
// rows where both fields are present and seed cost is non-zero.
// Returns (nil, nil) when no row qualifies.
func (s *Store) MostCostEfficient(ctx context.Context) (*Efficiency, error) {
	const query = `
		SELECT detailed_name, total_profit / NULLIF(total_seed_cost, 0) AS efficiency
		FROM crop_entries
		WHERE total_profit IS NOT NULL AND total_seed_cost IS NOT NULL AND total_seed_cost != 0
		ORDER BY efficiency DESC, id ASC
		LIMIT 1`

	var result Efficiency
	err := s.db.QueryRow(ctx, query).Scan(&result.DetailedName, &result.Ratio)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying most cost-efficient crop: %w", err)
	}
	return &result, nil
}

// MostProfitable returns the entry with the highest total profit among
// non-null rows, or (nil, nil) when the table has none.
func (s *Store) MostProfitable(ctx context.Context) (*Profit, error) {
	const query = `
		SELECT detailed_name, total_profit
		FROM crop_entries
		WHERE total_profit IS NOT NULL
		ORDER BY total_profit DESC, id ASC
		LIMIT 1`

	var result Profit
	err := s.db.QueryRow(ctx, query).Scan(&result.DetailedName, &result.Profit)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying most profitable crop: %w", err)
	}
	return &result, nil
}

// LargestHarvest returns the entry with the most pounds harvested among
// non-null rows, or (nil, nil) when the table has none.
func (s *Store) LargestHarvest(ctx context.Context) (*Harvest, error) {
	const query = `
		SELECT detailed_name, pounds_harvested::double precision
		FROM crop_entries
		WHERE pounds_harvested IS NOT NULL
		ORDER BY pounds_harvested DESC, id ASC
		LIMIT 1`

	var result Harvest
	err := s.db.QueryRow(ctx, query).Scan(&result.DetailedName, &result.Pounds)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying largest harvest: %w", err)
	}
	return &result, nil
}

// ListNames returns the distinct canonical crop names, ordered
// alphabetically. Duplicate detailed_name variants that normalize to one
// canonical name appear exactly once.
func (s *Store) ListNames(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT name FROM crop_entries ORDER BY name ASC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing crop names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning crop name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating crop names: %w", err)
	}
	return names, nil
}

// SearchByEmbedding ranks entries by cosine distance to queryVec and
// returns the top limit results, similarity descending. Ties in distance
// resolve by id ascending.
func (s *Store) SearchByEmbedding(ctx context.Context, queryVec []float32, limit int) ([]Retrieved, error) {
	const query = `
		SELECT name, total_seed_cost, pounds_harvested, total_revenue, total_profit,
		       1 - (embedding <=> $1) AS similarity
		FROM crop_entries
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1 ASC, id ASC
		LIMIT $2`

	vec := pgvector.NewVector(queryVec)
	rows, err := s.db.Query(ctx, query, vec, limit)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	defer rows.Close()

	var results []Retrieved
	for rows.Next() {
		var (
			e Entry
			r Retrieved
		)
		if err := rows.Scan(&e.Name, &e.TotalSeedCost, &e.PoundsHarvested, &e.TotalRevenue, &e.TotalProfit, &r.Similarity); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		r.CropName = e.Name
		r.Description = e.Summary()
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}

	s.logger.Debug("vector search completed", "limit", limit, "results", len(results))
	return results, nil
}

// Insert stores one crop entry with its embedding. Ingestion-only path.
func (s *Store) Insert(ctx context.Context, e Entry) error {
	const query = `
		INSERT INTO crop_entries
		    (name, detailed_name, total_seed_cost, pounds_harvested, total_revenue, total_profit, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var vec *pgvector.Vector
	if e.Embedding != nil {
		v := pgvector.NewVector(e.Embedding)
		vec = &v
	}

	_, err := s.db.Exec(ctx, query,
		e.Name, e.DetailedName, e.TotalSeedCost, e.PoundsHarvested, e.TotalRevenue, e.TotalProfit, vec)
	if err != nil {
		return fmt.Errorf("inserting crop entry %q: %w", e.DetailedName, err)
	}
	return nil
}

// Clear deletes all crop entries. Ingestion-only path, used before a
// full re-ingest.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM crop_entries`); err != nil {
		return fmt.Errorf("clearing crop entries: %w", err)
	}
	return nil
}

// Count returns the number of stored crop entries.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM crop_entries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting crop entries: %w", err)
	}
	return count, nil
}
