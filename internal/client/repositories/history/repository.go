// Package history caches answered queries locally so past results remain
// readable when the server cannot be reached.
package history

import "context"

// Record is one cached question/answer pair.
type Record struct {
	ID         int64
	QueryID    int64
	Question   string
	Answer     string
	TokensUsed int
	CreatedAt  string
}

type Repository interface {
	Insert(ctx context.Context, rec *Record) error
	ListRecent(ctx context.Context, limit int) ([]Record, error)
	Clear(ctx context.Context) error
}
