package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reads the expiry claim out of a JWT access token without
// verifying its signature. The server remains the authority on validity;
// this only feeds the UI ("session valid until ...") and proactive checks.
func TokenExpiry(token string) (time.Time, error) {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("parse token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("token has no expiry claim")
	}
	return claims.ExpiresAt.Time, nil
}

// TokenExpired reports whether the token's expiry claim lies in the past.
// Unparseable tokens count as expired.
func TokenExpired(token string) bool {
	exp, err := TokenExpiry(token)
	if err != nil {
		return true
	}
	return exp.Before(time.Now())
}

// SessionExpiry returns the expiry of the stored access token. After it
// passes, the transport will refresh on the next request.
func (m *Manager) SessionExpiry(ctx context.Context) (time.Time, error) {
	token, err := m.store.AccessToken(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if token == "" {
		return time.Time{}, fmt.Errorf("no active session")
	}
	return TokenExpiry(token)
}
