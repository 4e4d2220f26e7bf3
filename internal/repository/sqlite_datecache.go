package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/db"
)

const lookupBatch = 500

// SQLiteDateCacheRepo implements DateCacheRepo using a SQLite database.
type SQLiteDateCacheRepo struct {
	db  db.DBTX
	uow db.UnitOfWork
	now func() time.Time
}

// NewSQLiteDateCacheRepo creates a new SQLiteDateCacheRepo.
func NewSQLiteDateCacheRepo(conn db.DBTX) *SQLiteDateCacheRepo {
	return &SQLiteDateCacheRepo{db: conn, now: time.Now}
}

// WithUnitOfWork makes Store write each batch in one transaction.
func (r *SQLiteDateCacheRepo) WithUnitOfWork(uow db.UnitOfWork) *SQLiteDateCacheRepo {
	cp := *r
	cp.uow = uow
	return &cp
}

// WithClock sets the clock that stamps stored entries, so Prune cutoffs and
// created_at come from the same source.
func (r *SQLiteDateCacheRepo) WithClock(now func() time.Time) *SQLiteDateCacheRepo {
	cp := *r
	cp.now = now
	return &cp
}

func (r *SQLiteDateCacheRepo) Get(ctx context.Context, model, raw string) (string, error) {
	var iso string
	err := r.db.QueryRowContext(ctx,
		`SELECT iso FROM date_cache WHERE model = ? AND raw = ?`, model, raw).Scan(&iso)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("date cache entry %q: %w", raw, ErrNotFound)
		}
		return "", fmt.Errorf("scanning date cache entry: %w", err)
	}
	return iso, nil
}

// Lookup returns the cached entries among raws. Misses are simply absent from
// the result. Each hit bumps its counter.
func (r *SQLiteDateCacheRepo) Lookup(ctx context.Context, model string, raws []string) (map[string]string, error) {
	found := make(map[string]string, len(raws))
	if len(raws) == 0 {
		return found, nil
	}

	seen := make(map[string]bool, len(raws))
	keys := make([]string, 0, len(raws))
	for _, raw := range raws {
		if !seen[raw] {
			seen[raw] = true
			keys = append(keys, raw)
		}
	}

	for _, batch := range chunk(keys, lookupBatch) {
		args := make([]any, 0, len(batch)+1)
		args = append(args, model)
		for _, k := range batch {
			args = append(args, k)
		}

		rows, err := r.db.QueryContext(ctx,
			`SELECT raw, iso FROM date_cache WHERE model = ? AND raw IN (`+placeholders(len(batch))+`)`, args...)
		if err != nil {
			return nil, fmt.Errorf("querying date cache: %w", err)
		}
		for rows.Next() {
			var raw, iso string
			if err := rows.Scan(&raw, &iso); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning date cache row: %w", err)
			}
			found[raw] = iso
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("iterating date cache rows: %w", err)
		}
		rows.Close()

		if _, err := r.db.ExecContext(ctx,
			`UPDATE date_cache SET hits = hits + 1 WHERE model = ? AND raw IN (`+placeholders(len(batch))+`)`, args...); err != nil {
			return nil, fmt.Errorf("counting date cache hits: %w", err)
		}
	}
	return found, nil
}

func (r *SQLiteDateCacheRepo) Store(ctx context.Context, model string, entries map[string]string) error {
	now := stamp(r.now())
	if r.uow == nil {
		return storeEntries(ctx, r.db, model, entries, now)
	}
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return storeEntries(ctx, tx, model, entries, now)
	})
}

func storeEntries(ctx context.Context, conn db.DBTX, model string, entries map[string]string, now string) error {
	for raw, iso := range entries {
		_, err := conn.ExecContext(ctx,
			`INSERT INTO date_cache (model, raw, iso, created_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(model, raw) DO UPDATE SET iso = excluded.iso, created_at = excluded.created_at`,
			model, raw, iso, now)
		if err != nil {
			return fmt.Errorf("storing date cache entry %q: %w", raw, err)
		}
	}
	return nil
}

// Prune deletes entries created before olderThan and reports how many went.
func (r *SQLiteDateCacheRepo) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM date_cache WHERE created_at < ?`, stamp(olderThan))
	if err != nil {
		return 0, fmt.Errorf("pruning date cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned rows: %w", err)
	}
	return n, nil
}
