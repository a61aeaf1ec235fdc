package session

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hhsksonu/kpcli/internal/client/models"
	"github.com/hhsksonu/kpcli/internal/client/storage"
)

var storeDBSeq int

func setupStore(t *testing.T) *Store {
	t.Helper()
	storeDBSeq++
	dsn := fmt.Sprintf("file:sessionstore%d?mode=memory&cache=shared", storeDBSeq)
	db, err := storage.Open(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db)
}

func testUser() *models.User {
	return &models.User{
		ID:        1,
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Smith",
		Role:      models.RoleEmployee,
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	sess := &Session{AccessToken: "a1", RefreshToken: "r1", User: testUser()}
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, loaded.Authenticated())
	assert.Equal(t, "a1", loaded.AccessToken)
	assert.Equal(t, "r1", loaded.RefreshToken)
	assert.Equal(t, "alice", loaded.User.Username)
	assert.Equal(t, models.RoleEmployee, loaded.User.Role)
}

func TestStore_LoadEmpty(t *testing.T) {
	store := setupStore(t)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, loaded.Authenticated())
	assert.Empty(t, loaded.AccessToken)
	assert.Nil(t, loaded.User)
}

func TestStore_LoadMalformedUserIsLoggedOut(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &Session{AccessToken: "a1", RefreshToken: "r1", User: testUser()}))

	// Corrupt the stored user snapshot directly.
	_, err := storeDB(t, store).Exec(`UPDATE credentials SET value = ? WHERE key = 'user'`, []byte(`{not json`))
	require.NoError(t, err)

	loaded, err := store.Load(ctx)
	require.NoError(t, err, "malformed data must not surface as an error")
	assert.False(t, loaded.Authenticated())
}

func TestStore_TokenWithoutUserIsLoggedOut(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetTokens(ctx, "a1", "r1"))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, loaded.Authenticated())

	// The transport can still read the tokens.
	tok, err := store.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a1", tok)
}

func TestStore_Clear(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &Session{AccessToken: "a1", RefreshToken: "r1", User: testUser()}))
	require.NoError(t, store.Clear(ctx))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, loaded.Authenticated())

	tok, err := store.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	refresh, err := store.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, refresh)

	require.NoError(t, store.Clear(ctx), "clearing an empty store is fine")
}

func TestStore_SetAccessTokenRotatesInPlace(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &Session{AccessToken: "a1", RefreshToken: "r1", User: testUser()}))
	require.NoError(t, store.SetAccessToken(ctx, "a2"))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a2", loaded.AccessToken)
	assert.Equal(t, "r1", loaded.RefreshToken, "refresh token untouched")
	assert.Equal(t, "alice", loaded.User.Username)
}

func TestStore_SaveUserRewritesOnlyUser(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &Session{AccessToken: "a1", RefreshToken: "r1", User: testUser()}))

	u := testUser()
	u.Email = "x@y.com"
	require.NoError(t, store.SaveUser(ctx, u))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "x@y.com", loaded.User.Email)
	assert.Equal(t, "Alice", loaded.User.FirstName)
	assert.Equal(t, "a1", loaded.AccessToken)
}

// storeDB exposes the underlying handle for test-only corruption.
func storeDB(t *testing.T, s *Store) *sql.DB {
	t.Helper()
	return s.db
}
