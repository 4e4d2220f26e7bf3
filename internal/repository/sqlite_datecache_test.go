package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/db"
	"github.com/alexanderramin/ganttsheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateCacheRepo_StoreAndGet(t *testing.T) {
	repo := NewSQLiteDateCacheRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, "gemini", map[string]string{"March 5th": "2024-03-05"}))

	iso, err := repo.Get(ctx, "gemini", "March 5th")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", iso)
}

func TestDateCacheRepo_Get_NotFound(t *testing.T) {
	repo := NewSQLiteDateCacheRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), "gemini", "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDateCacheRepo_EntriesAreScopedByModel(t *testing.T) {
	repo := NewSQLiteDateCacheRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, "gemini", map[string]string{"next fri": "2024-03-08"}))

	_, err := repo.Get(ctx, "ollama", "next fri")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDateCacheRepo_Store_OverwritesExisting(t *testing.T) {
	repo := NewSQLiteDateCacheRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, "gemini", map[string]string{"q1": "2024-01-01"}))
	require.NoError(t, repo.Store(ctx, "gemini", map[string]string{"q1": "2024-03-31"}))

	iso, err := repo.Get(ctx, "gemini", "q1")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-31", iso)
}

func TestDateCacheRepo_Lookup_ReturnsOnlyHits(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDateCacheRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, "gemini", map[string]string{
		"a": "2024-01-01",
		"b": "2024-01-02",
	}))

	got, err := repo.Lookup(ctx, "gemini", []string{"a", "c", "a"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "2024-01-01"}, got)

	var hits int
	require.NoError(t, database.QueryRow(`SELECT hits FROM date_cache WHERE raw = 'a'`).Scan(&hits))
	assert.Equal(t, 1, hits, "duplicate keys count once per lookup")
}

func TestDateCacheRepo_Lookup_Empty(t *testing.T) {
	repo := NewSQLiteDateCacheRepo(testutil.NewTestDB(t))

	got, err := repo.Lookup(context.Background(), "gemini", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDateCacheRepo_Lookup_SpansBatches(t *testing.T) {
	repo := NewSQLiteDateCacheRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	entries := make(map[string]string)
	var keys []string
	for i := 0; i < lookupBatch+25; i++ {
		k := fmt.Sprintf("row-%d", i)
		entries[k] = "2024-06-01"
		keys = append(keys, k)
	}
	require.NoError(t, repo.Store(ctx, "gemini", entries))

	got, err := repo.Lookup(ctx, "gemini", keys)
	require.NoError(t, err)
	assert.Len(t, got, len(keys))
}

func TestDateCacheRepo_Prune(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDateCacheRepo(database)
	ctx := context.Background()

	_, err := database.Exec(`INSERT INTO date_cache (model, raw, iso, created_at) VALUES ('gemini', 'old', '2020-01-01', '2020-01-01T00:00:00Z')`)
	require.NoError(t, err)
	require.NoError(t, repo.Store(ctx, "gemini", map[string]string{"fresh": "2024-01-01"}))

	n, err := repo.Prune(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.Get(ctx, "gemini", "old")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Get(ctx, "gemini", "fresh")
	assert.NoError(t, err)
}

func TestDateCacheRepo_PruneUsesInjectedClock(t *testing.T) {
	database := testutil.NewTestDB(t)
	stored := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := NewSQLiteDateCacheRepo(database).
		WithUnitOfWork(testutil.NewTestUoW(database)).
		WithClock(func() time.Time { return stored })
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, "gemini", map[string]string{"q2": "2020-04-01"}))

	var createdAt string
	require.NoError(t, database.QueryRow(`SELECT created_at FROM date_cache WHERE raw = 'q2'`).Scan(&createdAt))
	assert.Equal(t, "2020-06-01T12:00:00Z", createdAt)

	n, err := repo.Prune(ctx, stored.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = repo.Prune(ctx, stored.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDateCacheRepo_StoreWithinTxRollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := NewSQLiteDateCacheRepo(tx).Store(ctx, "gemini", map[string]string{"x": "2024-01-01"}); err != nil {
			return err
		}
		return fmt.Errorf("abort")
	})
	require.Error(t, err)

	_, err = NewSQLiteDateCacheRepo(database).Get(ctx, "gemini", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlaceholdersAndChunk(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))

	assert.Nil(t, chunk(nil, 2))
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, chunk([]string{"a", "b", "c"}, 2))
}

func TestDateCacheRepo_StoreWithUnitOfWork(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteDateCacheRepo(database).WithUnitOfWork(testutil.NewTestUoW(database))
	ctx := context.Background()

	require.NoError(t, repo.Store(ctx, "gemini", map[string]string{
		"March 5th": "2024-03-05",
		"q1":        "2024-01-01",
	}))

	found, err := repo.Lookup(ctx, "gemini", []string{"March 5th", "q1", "absent"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"March 5th": "2024-03-05", "q1": "2024-01-01"}, found)
}
