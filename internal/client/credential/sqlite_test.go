package credential

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:credstore?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM metadata`)
	require.NoError(t, err)
	return db
}

func TestSQLiteStore_GetEmpty(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))

	tok, err := s.Get(context.Background())
	require.NoError(t, err)
	require.Empty(t, tok)
}

func TestSQLiteStore_SetGetRoundTrip(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "tok-1"))
	tok, err := s.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)

	// A second Set replaces the token, it does not add a row.
	require.NoError(t, s.Set(ctx, "tok-2"))
	tok, err = s.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-2", tok)
}

func TestSQLiteStore_Clear(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "tok"))
	require.NoError(t, s.Clear(ctx))

	tok, err := s.Get(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)

	// Clearing an empty store is a no-op.
	require.NoError(t, s.Clear(ctx))
}

func TestSQLiteStore_GetFailsWhenStorageGone(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	require.NoError(t, db.Close())

	_, err := s.Get(context.Background())
	require.Error(t, err)
}

func TestInitDatabase_MigratesSchema(t *testing.T) {
	ctx := context.Background()
	db, err := InitDatabase(ctx, "file:credinit?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := NewSQLiteStore(db)
	require.NoError(t, s.Set(ctx, "migrated"))
	tok, err := s.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "migrated", tok)
}
