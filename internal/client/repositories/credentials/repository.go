// Package credentials persists the session triad (access token, refresh
// token, serialized user) as rows of a local key-value table.
package credentials

import "context"

// Repository is a byte-valued key-value store. Get returns nil (not an
// error) when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
