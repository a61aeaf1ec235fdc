package credentials

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:credrepo?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE credentials (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteRepository_SetGetDelete(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewSQLiteRepository(db)

	v, err := repo.Get(ctx, "access_token")
	require.NoError(t, err)
	require.Nil(t, v, "missing key reads as nil, not an error")

	require.NoError(t, repo.Set(ctx, "access_token", []byte("tok-1")))

	v, err = repo.Get(ctx, "access_token")
	require.NoError(t, err)
	require.Equal(t, []byte("tok-1"), v)

	// Upsert replaces in place.
	require.NoError(t, repo.Set(ctx, "access_token", []byte("tok-2")))
	v, err = repo.Get(ctx, "access_token")
	require.NoError(t, err)
	require.Equal(t, []byte("tok-2"), v)

	require.NoError(t, repo.Delete(ctx, "access_token"))
	v, err = repo.Get(ctx, "access_token")
	require.NoError(t, err)
	require.Nil(t, v)

	// Deleting a missing key is fine.
	require.NoError(t, repo.Delete(ctx, "access_token"))
}
