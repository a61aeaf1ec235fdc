package session

import (
	"context"
	"errors"
	"sync"

	"github.com/hhsksonu/kpcli/internal/client/api"
	"github.com/hhsksonu/kpcli/internal/client/models"
	"github.com/hhsksonu/kpcli/internal/logging"
)

// AuthAPI is the slice of the API client the manager needs. Kept as an
// interface so tests can swap in a fake.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*api.TokenPair, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error)
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, patch models.UserPatch) (*models.User, error)
}

// Result is the tagged outcome of login/register. These operations never
// return an error to the caller; failures arrive here with a displayable
// message.
type Result struct {
	OK      bool
	Message string
}

func success() Result           { return Result{OK: true} }
func failure(msg string) Result { return Result{OK: false, Message: msg} }

// Manager is the single source of truth for who is logged in. It keeps the
// in-memory user snapshot and the durable Store consistent.
type Manager struct {
	store *Store
	api   AuthAPI
	log   logging.Logger

	mu      sync.RWMutex
	user    *models.User
	loading bool
}

func NewManager(store *Store, authAPI AuthAPI, log logging.Logger) *Manager {
	return &Manager{
		store:   store,
		api:     authAPI,
		log:     log.With("component", "session"),
		loading: true,
	}
}

// Initialize restores the session from the local store. No network call is
// made; a stale token is handled lazily by the transport on first use.
func (m *Manager) Initialize(ctx context.Context) error {
	sess, err := m.store.Load(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false

	if err != nil {
		return err
	}
	if sess.Authenticated() {
		m.user = sess.User
		m.log.Debug(ctx, "session restored", "user", sess.User.Username)
	}
	return nil
}

// Loading reports whether Initialize has completed yet.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Credentials is the username/password pair for Login.
type Credentials struct {
	Username string
	Password string
}

// Login authenticates against the server, fetches the profile and persists
// the session triad. Rejected credentials come back as a failure Result,
// never as an error.
func (m *Manager) Login(ctx context.Context, creds Credentials) Result {
	pair, err := m.api.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		return failure(messageFromError(err, "Invalid credentials"))
	}

	if err := m.store.SetTokens(ctx, pair.Access, pair.Refresh); err != nil {
		m.log.Error(ctx, "persisting tokens failed", "error", err)
		return failure("Unable to save session")
	}

	user, err := m.api.Profile(ctx)
	if err != nil {
		// A token pair without a profile is useless. Roll back to logged out.
		_ = m.store.Clear(ctx)
		return failure(messageFromError(err, "Invalid credentials"))
	}

	if err := m.store.Save(ctx, &Session{
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
		User:         user,
	}); err != nil {
		m.log.Error(ctx, "persisting session failed", "error", err)
		return failure("Unable to save session")
	}

	m.mu.Lock()
	m.user = user
	m.mu.Unlock()

	m.log.Info(ctx, "logged in", "user", user.Username, "role", user.Role)
	return success()
}

// Registration is the sign-up form. PasswordConfirm is validated
// client-side before any network call.
type Registration struct {
	Username        string
	Email           string
	FirstName       string
	LastName        string
	Password        string
	PasswordConfirm string
	Role            models.Role
}

// Register creates an account and signs the new user in. The server returns
// tokens and the user object together, so no separate profile fetch happens.
func (m *Manager) Register(ctx context.Context, reg Registration) Result {
	if reg.Password != reg.PasswordConfirm {
		return failure("Passwords do not match")
	}

	role := reg.Role
	if role == "" {
		role = models.RoleEmployee
	}

	resp, err := m.api.Register(ctx, api.RegisterRequest{
		Username:        reg.Username,
		Email:           reg.Email,
		FirstName:       reg.FirstName,
		LastName:        reg.LastName,
		Password:        reg.Password,
		PasswordConfirm: reg.PasswordConfirm,
		Role:            role,
	})
	if err != nil {
		return failure(registrationMessage(err))
	}

	if err := m.store.Save(ctx, &Session{
		AccessToken:  resp.Access,
		RefreshToken: resp.Refresh,
		User:         &resp.User,
	}); err != nil {
		m.log.Error(ctx, "persisting session failed", "error", err)
		return failure("Unable to save session")
	}

	m.mu.Lock()
	m.user = &resp.User
	m.mu.Unlock()

	m.log.Info(ctx, "registered", "user", resp.User.Username, "role", resp.User.Role)
	return success()
}

// Logout clears the store and the in-memory snapshot unconditionally. Safe
// to call repeatedly; never touches the network.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Error(ctx, "clearing credentials failed", "error", err)
	}

	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()

	m.log.Info(ctx, "logged out")
}

// UpdateUser shallow-merges the patch into the cached user and persists the
// merged snapshot. Call it after the server accepted a profile update.
func (m *Manager) UpdateUser(ctx context.Context, patch models.UserPatch) error {
	m.mu.Lock()
	if m.user == nil {
		m.mu.Unlock()
		return errors.New("no active session")
	}
	merged := *m.user
	merged.Merge(patch)
	m.user = &merged
	m.mu.Unlock()

	return m.store.SaveUser(ctx, &merged)
}

// IsAuthenticated re-derives the answer on every call: an in-memory user
// AND a stored access token must both exist. Re-deriving avoids trusting a
// snapshot that a concurrent logout already invalidated.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	m.mu.RLock()
	hasUser := m.user != nil
	m.mu.RUnlock()
	if !hasUser {
		return false
	}

	token, err := m.store.AccessToken(ctx)
	return err == nil && token != ""
}

// HasRole reports whether the current user's role is one of the given
// roles. UI gating only; the server still authorizes every request.
func (m *Manager) HasRole(roles ...models.Role) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return false
	}
	for _, r := range roles {
		if m.user.Role == r {
			return true
		}
	}
	return false
}

// User returns a copy of the cached profile, or nil when logged out.
func (m *Manager) User() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// HandleSessionExpired drops the in-memory user after the transport cleared
// the store. Wired to the API client's session-expired callback.
func (m *Manager) HandleSessionExpired() {
	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()
}

// messageFromError extracts a display message from an API error, falling
// back when the failure carried no recognizable payload.
func messageFromError(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message(fallback)
	}
	return fallback
}

// registrationMessage checks field-level validation errors in the fixed
// priority order the product defines, then the free-form detail.
func registrationMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if msg := apiErr.FirstFieldError("username", "email", "password"); msg != "" {
			return msg
		}
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
	}
	return "Registration failed"
}
