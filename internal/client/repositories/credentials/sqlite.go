package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hhsksonu/kpcli/internal/dbx"
)

// SQLiteRepository works over any dbx.DBTX, so callers can run it against
// the bare connection or inside a transaction.
type SQLiteRepository struct {
	q dbx.DBTX
}

func NewSQLiteRepository(q dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{q: q}
}

func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.q.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get credentials[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set credentials[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete credentials[%s]: %w", key, err)
	}
	return nil
}
