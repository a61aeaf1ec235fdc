package history

import (
	"context"
	"fmt"

	"github.com/hhsksonu/kpcli/internal/dbx"
)

type SQLiteRepository struct {
	q dbx.DBTX
}

func NewSQLiteRepository(q dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{q: q}
}

func (r *SQLiteRepository) Insert(ctx context.Context, rec *Record) error {
	query := `
		INSERT INTO query_cache (query_id, question, answer, tokens_used, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.q.ExecContext(ctx, query, rec.QueryID, rec.Question, rec.Answer, rec.TokensUsed, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert cached query: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	query := `
		SELECT id, query_id, question, answer, tokens_used, created_at
		FROM query_cache
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`
	rows, err := r.q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("select cached queries: %w", err)
	}
	defer rows.Close()

	var result []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.QueryID, &rec.Question, &rec.Answer, &rec.TokensUsed, &rec.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM query_cache`); err != nil {
		return fmt.Errorf("clear query cache: %w", err)
	}
	return nil
}
