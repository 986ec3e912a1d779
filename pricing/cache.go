package pricing

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/sharetrack/date"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS prices (
	ticker TEXT NOT NULL,
	day    TEXT NOT NULL,
	close  REAL NOT NULL,
	PRIMARY KEY (ticker, day)
);
CREATE TABLE IF NOT EXISTS fetched_ranges (
	ticker   TEXT NOT NULL,
	from_day TEXT NOT NULL,
	to_day   TEXT NOT NULL,
	PRIMARY KEY (ticker, from_day)
);`

// Cache stores daily closes in SQLite, with the ranges already fetched per
// ticker so that holidays at the range edges do not trigger refetches.
// Fetched ranges are kept disjoint: a gap between two fetches stays uncovered.
type Cache struct {
	db  *sql.DB
	log zerolog.Logger
}

// OpenCache opens, or creates, the cache database at path.
func OpenCache(path string, log zerolog.Logger) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open price cache: %w", err)
	}
	// a single writer keeps concurrent fetches from fighting over the lock.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate price cache: %w", err)
	}
	return &Cache{db: db, log: log}, nil
}

// Close closes the database.
func (c *Cache) Close() error { return c.db.Close() }

// Load returns every cached close of ticker.
func (c *Cache) Load(ctx context.Context, ticker string) (*date.History[float64], error) {
	rows, err := c.db.QueryContext(ctx, `SELECT day, close FROM prices WHERE ticker = ? ORDER BY day`, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to query prices of %q: %w", ticker, err)
	}
	defer rows.Close()
	h := new(date.History[float64])
	for rows.Next() {
		var day string
		var px float64
		if err := rows.Scan(&day, &px); err != nil {
			return nil, err
		}
		d, err := date.Parse(day)
		if err != nil {
			return nil, fmt.Errorf("corrupted price cache for %q: %w", ticker, err)
		}
		h.Append(d, px)
	}
	return h, rows.Err()
}

// Coverage returns the ranges already fetched for ticker, in order. Ranges
// never overlap nor touch.
func (c *Cache) Coverage(ctx context.Context, ticker string) ([]date.Range, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT from_day, to_day FROM fetched_ranges WHERE ticker = ? ORDER BY from_day`, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to query coverage of %q: %w", ticker, err)
	}
	defer rows.Close()
	var cov []date.Range
	for rows.Next() {
		var from, to string
		if err := rows.Scan(&from, &to); err != nil {
			return nil, err
		}
		f, err := date.Parse(from)
		if err != nil {
			return nil, fmt.Errorf("corrupted coverage for %q: %w", ticker, err)
		}
		t, err := date.Parse(to)
		if err != nil {
			return nil, fmt.Errorf("corrupted coverage for %q: %w", ticker, err)
		}
		cov = append(cov, date.NewRange(f, t))
	}
	return cov, rows.Err()
}

// Covers reports whether a single fetched range of ticker contains r.
func (c *Cache) Covers(ctx context.Context, ticker string, r date.Range) (bool, error) {
	var n int
	err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM fetched_ranges WHERE ticker = ? AND from_day <= ? AND to_day >= ?`,
		ticker, r.From.String(), r.To.String()).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to query coverage of %q: %w", ticker, err)
	}
	return n > 0, nil
}

// Store saves h for ticker and records r as fetched. r is merged with the
// fetched ranges it overlaps or touches, other ranges are left alone.
func (c *Cache) Store(ctx context.Context, ticker string, h *date.History[float64], r date.Range) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO prices (ticker, day, close) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for day, px := range h.Values() {
		if _, err := stmt.ExecContext(ctx, ticker, day.String(), px); err != nil {
			return fmt.Errorf("failed to store %q on %s: %w", ticker, day, err)
		}
	}

	// days are ISO formatted, so text order is day order.
	lo, hi := r.To.Add(1).String(), r.From.Add(-1).String()
	var from, to sql.NullString
	err = tx.QueryRowContext(ctx,
		`SELECT MIN(from_day), MAX(to_day) FROM fetched_ranges WHERE ticker = ? AND from_day <= ? AND to_day >= ?`,
		ticker, lo, hi).Scan(&from, &to)
	if err != nil {
		return fmt.Errorf("failed to query coverage of %q: %w", ticker, err)
	}
	merged := r
	if from.Valid && from.String < merged.From.String() {
		merged.From = date.MustParse(from.String)
	}
	if to.Valid && to.String > merged.To.String() {
		merged.To = date.MustParse(to.String)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM fetched_ranges WHERE ticker = ? AND from_day <= ? AND to_day >= ?`,
		ticker, lo, hi); err != nil {
		return fmt.Errorf("failed to store coverage of %q: %w", ticker, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO fetched_ranges (ticker, from_day, to_day) VALUES (?, ?, ?)`,
		ticker, merged.From.String(), merged.To.String()); err != nil {
		return fmt.Errorf("failed to store coverage of %q: %w", ticker, err)
	}
	return tx.Commit()
}

// LoadOrFetch returns the closes of ticker within r, fetching them from p
// when the cache does not cover r. A nil p never fetches.
//
// An empty fetch is logged and gives an empty history, it is not cached.
func (c *Cache) LoadOrFetch(ctx context.Context, p Provider, ticker string, r date.Range) (*date.History[float64], error) {
	covered, err := c.Covers(ctx, ticker, r)
	if err != nil {
		return nil, err
	}
	if p != nil && !covered {
		fetched, err := p.History(ctx, ticker, r)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %q: %w", ticker, err)
		}
		if fetched.Len() == 0 {
			c.log.Warn().Str("ticker", ticker).Stringer("range", r).Msg("no price data")
			return new(date.History[float64]), nil
		}
		if err := c.Store(ctx, ticker, fetched, r); err != nil {
			return nil, err
		}
		c.log.Info().Str("ticker", ticker).Int("days", fetched.Len()).Msg("prices fetched")
	}
	h, err := c.Load(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return h.Between(r), nil
}
