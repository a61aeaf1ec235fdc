package session

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hhsksonu/kpcli/internal/client/api"
	"github.com/hhsksonu/kpcli/internal/client/models"
	"github.com/hhsksonu/kpcli/internal/logging"
)

// fakeAuthAPI is a scripted AuthAPI. Each func field may be nil when the
// test does not expect that call.
type fakeAuthAPI struct {
	loginFn    func(ctx context.Context, username, password string) (*api.TokenPair, error)
	registerFn func(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error)
	profileFn  func(ctx context.Context) (*models.User, error)

	loginCalls    int
	registerCalls int
	profileCalls  int
}

func (f *fakeAuthAPI) Login(ctx context.Context, username, password string) (*api.TokenPair, error) {
	f.loginCalls++
	return f.loginFn(ctx, username, password)
}

func (f *fakeAuthAPI) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	f.registerCalls++
	return f.registerFn(ctx, req)
}

func (f *fakeAuthAPI) Profile(ctx context.Context) (*models.User, error) {
	f.profileCalls++
	return f.profileFn(ctx)
}

func (f *fakeAuthAPI) UpdateProfile(ctx context.Context, patch models.UserPatch) (*models.User, error) {
	return nil, errors.New("not scripted")
}

func setupManager(t *testing.T, authAPI AuthAPI) (*Manager, *Store) {
	t.Helper()
	store := setupStore(t)
	log := logging.NewDefault(io.Discard, "debug")
	return NewManager(store, authAPI, log), store
}

func happyAuth(user *models.User) *fakeAuthAPI {
	return &fakeAuthAPI{
		loginFn: func(ctx context.Context, username, password string) (*api.TokenPair, error) {
			return &api.TokenPair{Access: "acc-1", Refresh: "ref-1"}, nil
		},
		profileFn: func(ctx context.Context) (*models.User, error) {
			u := *user
			return &u, nil
		},
	}
}

func TestManager_LoginSuccess(t *testing.T) {
	ctx := context.Background()
	m, store := setupManager(t, happyAuth(testUser()))

	res := m.Login(ctx, Credentials{Username: "alice", Password: "pw"})
	require.True(t, res.OK)

	assert.True(t, m.IsAuthenticated(ctx))
	require.NotNil(t, m.User())
	assert.Equal(t, "alice", m.User().Username)

	sess, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, sess.Authenticated())
	assert.Equal(t, "acc-1", sess.AccessToken)
	assert.Equal(t, "ref-1", sess.RefreshToken)
}

func TestManager_LoginRejectedPassesDetailThrough(t *testing.T) {
	ctx := context.Background()
	fake := &fakeAuthAPI{
		loginFn: func(ctx context.Context, username, password string) (*api.TokenPair, error) {
			return nil, &api.Error{StatusCode: 401, Detail: "No active account found with the given credentials"}
		},
	}
	m, _ := setupManager(t, fake)

	res := m.Login(ctx, Credentials{Username: "alice", Password: "wrong"})
	require.False(t, res.OK)
	assert.Equal(t, "No active account found with the given credentials", res.Message)
	assert.False(t, m.IsAuthenticated(ctx))
	assert.Zero(t, fake.profileCalls, "no profile fetch after a rejected login")
}

func TestManager_LoginFallbackMessage(t *testing.T) {
	ctx := context.Background()
	fake := &fakeAuthAPI{
		loginFn: func(ctx context.Context, username, password string) (*api.TokenPair, error) {
			return nil, errors.New("dial tcp: connection refused")
		},
	}
	m, _ := setupManager(t, fake)

	res := m.Login(ctx, Credentials{Username: "alice", Password: "pw"})
	require.False(t, res.OK)
	assert.Equal(t, "Invalid credentials", res.Message)
}

func TestManager_LoginProfileFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	fake := &fakeAuthAPI{
		loginFn: func(ctx context.Context, username, password string) (*api.TokenPair, error) {
			return &api.TokenPair{Access: "acc-1", Refresh: "ref-1"}, nil
		},
		profileFn: func(ctx context.Context) (*models.User, error) {
			return nil, &api.Error{StatusCode: 503, Detail: "service unavailable"}
		},
	}
	m, store := setupManager(t, fake)

	res := m.Login(ctx, Credentials{Username: "alice", Password: "pw"})
	require.False(t, res.OK)
	assert.False(t, m.IsAuthenticated(ctx))

	// The half-written token pair must not linger.
	tok, err := store.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestManager_RegisterPasswordMismatchIsLocal(t *testing.T) {
	ctx := context.Background()
	fake := &fakeAuthAPI{}
	m, _ := setupManager(t, fake)

	res := m.Register(ctx, Registration{
		Username:        "bob",
		Password:        "one",
		PasswordConfirm: "two",
	})
	require.False(t, res.OK)
	assert.Equal(t, "Passwords do not match", res.Message)
	assert.Zero(t, fake.registerCalls, "mismatch is caught before any network call")
}

func TestManager_RegisterFieldErrorPriority(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string][]string
		detail string
		want   string
	}{
		{
			name: "username wins over email",
			fields: map[string][]string{
				"email":    {"Enter a valid email address."},
				"username": {"A user with that username already exists."},
			},
			want: "A user with that username already exists.",
		},
		{
			name: "email wins over password",
			fields: map[string][]string{
				"password": {"This password is too short."},
				"email":    {"Enter a valid email address."},
			},
			want: "Enter a valid email address.",
		},
		{
			name:   "password alone",
			fields: map[string][]string{"password": {"This password is too common."}},
			want:   "This password is too common.",
		},
		{
			name:   "detail when no field errors",
			detail: "Registration is closed",
			want:   "Registration is closed",
		},
		{
			name: "generic fallback",
			want: "Registration failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthAPI{
				registerFn: func(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
					return nil, &api.Error{StatusCode: 400, Detail: tt.detail, Fields: tt.fields}
				},
			}
			m, _ := setupManager(t, fake)

			res := m.Register(context.Background(), Registration{
				Username:        "bob",
				Password:        "pw",
				PasswordConfirm: "pw",
			})
			require.False(t, res.OK)
			assert.Equal(t, tt.want, res.Message)
		})
	}
}

func TestManager_RegisterSignsIn(t *testing.T) {
	ctx := context.Background()
	var got api.RegisterRequest
	fake := &fakeAuthAPI{
		registerFn: func(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
			got = req
			return &api.RegisterResponse{
				Access:  "acc-1",
				Refresh: "ref-1",
				User:    models.User{ID: 7, Username: req.Username, Role: req.Role},
			}, nil
		},
	}
	m, store := setupManager(t, fake)

	res := m.Register(ctx, Registration{
		Username:        "bob",
		Email:           "bob@example.com",
		Password:        "pw",
		PasswordConfirm: "pw",
	})
	require.True(t, res.OK)
	assert.Equal(t, models.RoleEmployee, got.Role, "role defaults when the form left it empty")

	assert.True(t, m.IsAuthenticated(ctx))
	sess, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, sess.Authenticated())
	assert.Equal(t, "bob", sess.User.Username)
}

func TestManager_LogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m, store := setupManager(t, happyAuth(testUser()))

	require.True(t, m.Login(ctx, Credentials{Username: "alice", Password: "pw"}).OK)
	require.True(t, m.IsAuthenticated(ctx))

	m.Logout(ctx)
	assert.False(t, m.IsAuthenticated(ctx))
	assert.Nil(t, m.User())

	m.Logout(ctx)
	assert.False(t, m.IsAuthenticated(ctx))

	sess, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, sess.Authenticated())
}

func TestManager_InitializeRestoresSession(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	require.NoError(t, store.Save(ctx, &Session{AccessToken: "acc-1", RefreshToken: "ref-1", User: testUser()}))

	m := NewManager(store, &fakeAuthAPI{}, logging.NewDefault(io.Discard, "info"))
	assert.True(t, m.Loading())

	require.NoError(t, m.Initialize(ctx))
	assert.False(t, m.Loading())
	assert.True(t, m.IsAuthenticated(ctx))
	assert.Equal(t, "alice", m.User().Username)
}

func TestManager_InitializeEmptyStore(t *testing.T) {
	ctx := context.Background()
	m, _ := setupManager(t, &fakeAuthAPI{})

	require.NoError(t, m.Initialize(ctx))
	assert.False(t, m.Loading())
	assert.False(t, m.IsAuthenticated(ctx))
	assert.Nil(t, m.User())
}

func TestManager_UpdateUserMergesAndPersists(t *testing.T) {
	ctx := context.Background()
	m, store := setupManager(t, happyAuth(testUser()))
	require.True(t, m.Login(ctx, Credentials{Username: "alice", Password: "pw"}).OK)

	email := "new@example.com"
	first := "Alicia"
	require.NoError(t, m.UpdateUser(ctx, models.UserPatch{Email: &email, FirstName: &first}))

	u := m.User()
	assert.Equal(t, "new@example.com", u.Email)
	assert.Equal(t, "Alicia", u.FirstName)
	assert.Equal(t, "Smith", u.LastName, "untouched fields survive the merge")

	sess, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", sess.User.Email)
	assert.Equal(t, "Alicia", sess.User.FirstName)
}

func TestManager_UpdateUserWhileLoggedOut(t *testing.T) {
	m, _ := setupManager(t, &fakeAuthAPI{})
	email := "x@y.com"
	err := m.UpdateUser(context.Background(), models.UserPatch{Email: &email})
	require.Error(t, err)
}

func TestManager_HasRole(t *testing.T) {
	ctx := context.Background()
	admin := testUser()
	admin.Role = models.RoleAdmin
	m, _ := setupManager(t, happyAuth(admin))
	require.True(t, m.Login(ctx, Credentials{Username: "alice", Password: "pw"}).OK)

	assert.True(t, m.HasRole(models.RoleAdmin))
	assert.True(t, m.HasRole(models.RoleAdmin, models.RoleReviewer))
	assert.False(t, m.HasRole(models.RoleReviewer))
	assert.False(t, m.HasRole(models.RoleContentOwner, models.RoleEmployee))

	m.Logout(ctx)
	assert.False(t, m.HasRole(models.RoleAdmin), "no roles after logout")
}

func TestManager_HandleSessionExpired(t *testing.T) {
	ctx := context.Background()
	m, store := setupManager(t, happyAuth(testUser()))
	require.True(t, m.Login(ctx, Credentials{Username: "alice", Password: "pw"}).OK)

	// The transport clears the store before firing the callback.
	require.NoError(t, store.Clear(ctx))
	m.HandleSessionExpired()

	assert.False(t, m.IsAuthenticated(ctx))
	assert.Nil(t, m.User())
}

func TestManager_UserReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m, _ := setupManager(t, happyAuth(testUser()))
	require.True(t, m.Login(ctx, Credentials{Username: "alice", Password: "pw"}).OK)

	u := m.User()
	u.Username = "mallory"
	assert.Equal(t, "alice", m.User().Username)
}
