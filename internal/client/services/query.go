// Package services composes the API client with local storage into the
// operations the command layer calls.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/hhsksonu/kpcli/internal/client/api"
	"github.com/hhsksonu/kpcli/internal/client/models"
	"github.com/hhsksonu/kpcli/internal/client/repositories/history"
	"github.com/hhsksonu/kpcli/internal/logging"
)

// QueryAPI is the slice of the API client the query service uses.
type QueryAPI interface {
	Ask(ctx context.Context, question, department string) (*models.QueryResult, error)
	QueryHistory(ctx context.Context, page int) (*models.Page[models.Query], error)
	SubmitFeedback(ctx context.Context, req api.FeedbackRequest) (*models.Feedback, error)
}

// QueryService answers questions through the server and keeps a local cache
// of past answers so history stays readable offline.
type QueryService struct {
	api   QueryAPI
	cache history.Repository
	log   logging.Logger
	now   func() time.Time
}

func NewQueryService(queryAPI QueryAPI, cache history.Repository, log logging.Logger) *QueryService {
	return &QueryService{
		api:   queryAPI,
		cache: cache,
		log:   log.With("component", "query"),
		now:   time.Now,
	}
}

// Ask sends the question to the server and caches the answer locally.
// A cache write failure is logged but never fails the query.
func (s *QueryService) Ask(ctx context.Context, question, department string) (*models.QueryResult, error) {
	result, err := s.api.Ask(ctx, question, department)
	if err != nil {
		return nil, err
	}

	rec := &history.Record{
		QueryID:    result.QueryID,
		Question:   result.Question,
		Answer:     result.Answer,
		TokensUsed: result.TokensUsed,
		CreatedAt:  s.now().UTC().Format(time.RFC3339),
	}
	if err := s.cache.Insert(ctx, rec); err != nil {
		s.log.Warn(ctx, "caching answer failed", "error", err)
	}

	return result, nil
}

// HistoryPage is a page of past queries. Offline is true when the entries
// came from the local cache because the server was unreachable.
type HistoryPage struct {
	Queries []models.Query
	Count   int
	HasNext bool
	Offline bool
}

// History returns the server-side query history. When the server is
// unreachable it falls back to the local cache; authorization failures and
// other application errors are returned as-is.
func (s *QueryService) History(ctx context.Context, page int) (*HistoryPage, error) {
	serverPage, err := s.api.QueryHistory(ctx, page)
	if err == nil {
		return &HistoryPage{
			Queries: serverPage.Results,
			Count:   serverPage.Count,
			HasNext: serverPage.Next != "",
		}, nil
	}

	if !offline(err) {
		return nil, err
	}

	s.log.Warn(ctx, "server unreachable, serving cached history", "error", err)
	records, cacheErr := s.cache.ListRecent(ctx, 50)
	if cacheErr != nil {
		return nil, err
	}

	queries := make([]models.Query, 0, len(records))
	for _, rec := range records {
		queries = append(queries, models.Query{
			ID:            rec.QueryID,
			Question:      rec.Question,
			Answer:        rec.Answer,
			TokensUsed:    rec.TokensUsed,
			WasSuccessful: true,
			CreatedAt:     rec.CreatedAt,
		})
	}
	return &HistoryPage{Queries: queries, Count: len(queries), Offline: true}, nil
}

// SubmitFeedback records the user's verdict on an answer.
func (s *QueryService) SubmitFeedback(ctx context.Context, queryID int64, fbType models.FeedbackType, comment string) (*models.Feedback, error) {
	return s.api.SubmitFeedback(ctx, api.FeedbackRequest{
		QueryID:      queryID,
		FeedbackType: fbType,
		Comment:      comment,
	})
}

// ClearCache drops the local answer cache.
func (s *QueryService) ClearCache(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

// offline reports whether the error means the server could not be reached
// rather than the server refusing the request.
func offline(err error) bool {
	if errors.Is(err, api.ErrUnavailable) {
		return true
	}
	var apiErr *api.Error
	// A transport-level failure never carries an API error payload.
	return !errors.As(err, &apiErr)
}
