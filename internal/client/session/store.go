// Package session owns the authenticated-identity triad (access token,
// refresh token, cached user profile): its durable store and the manager
// that exposes it to the rest of the application.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/hhsksonu/kpcli/internal/client/models"
	"github.com/hhsksonu/kpcli/internal/client/repositories/credentials"
	"github.com/hhsksonu/kpcli/internal/dbx"
)

const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyUser         = "user"
)

// Session is the persisted triad. It is authenticated only when both the
// access token and the user snapshot are present.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *models.User
}

func (s *Session) Authenticated() bool {
	return s != nil && s.AccessToken != "" && s.User != nil
}

// Store persists Sessions in the local database. It also satisfies the API
// client's CredentialSource, so the transport reads tokens from the same
// place the manager writes them.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) repo(q dbx.DBTX) credentials.Repository {
	return credentials.NewSQLiteRepository(q)
}

// Load reads the persisted session. Missing fields or an undecodable user
// yield an empty (logged-out) session, never an application error.
func (s *Store) Load(ctx context.Context) (*Session, error) {
	repo := s.repo(s.db)

	access, err := repo.Get(ctx, keyAccessToken)
	if err != nil {
		return nil, err
	}
	refresh, err := repo.Get(ctx, keyRefreshToken)
	if err != nil {
		return nil, err
	}
	rawUser, err := repo.Get(ctx, keyUser)
	if err != nil {
		return nil, err
	}

	if len(access) == 0 || len(rawUser) == 0 {
		return &Session{}, nil
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		// Corrupt snapshot. Treat as logged out.
		return &Session{}, nil
	}

	return &Session{
		AccessToken:  string(access),
		RefreshToken: string(refresh),
		User:         &user,
	}, nil
}

// Save writes the full triad in one transaction so no reader observes a
// torn session.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	rawUser, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, keyAccessToken, []byte(sess.AccessToken)); err != nil {
			return err
		}
		if err := repo.Set(ctx, keyRefreshToken, []byte(sess.RefreshToken)); err != nil {
			return err
		}
		return repo.Set(ctx, keyUser, rawUser)
	})
}

// SetTokens stores just the token pair. Used during login before the
// profile fetch completes; until the user snapshot lands, Load still
// reports the session as logged out.
func (s *Store) SetTokens(ctx context.Context, access, refresh string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, keyAccessToken, []byte(access)); err != nil {
			return err
		}
		return repo.Set(ctx, keyRefreshToken, []byte(refresh))
	})
}

// SaveUser rewrites only the user snapshot (profile-merge updates).
func (s *Store) SaveUser(ctx context.Context, user *models.User) error {
	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return s.repo(s.db).Set(ctx, keyUser, rawUser)
}

// Clear removes all three fields in one transaction.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		for _, key := range []string{keyAccessToken, keyRefreshToken, keyUser} {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}

// AccessToken implements the transport's CredentialSource.
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	v, err := s.repo(s.db).Get(ctx, keyAccessToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// RefreshToken implements the transport's CredentialSource.
func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	v, err := s.repo(s.db).Get(ctx, keyRefreshToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// SetAccessToken rotates the access token in place after a refresh.
func (s *Store) SetAccessToken(ctx context.Context, token string) error {
	return s.repo(s.db).Set(ctx, keyAccessToken, []byte(token))
}
