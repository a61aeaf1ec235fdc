package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hhsksonu/kpcli/internal/client/models"
)

// Ask runs a retrieval query against the knowledge base.
func (c *Client) Ask(ctx context.Context, question, department string) (*models.QueryResult, error) {
	payload := map[string]string{"question": question}
	if department != "" {
		payload["department"] = department
	}
	cl, err := jsonCall(http.MethodPost, "/retrieval/query/", payload)
	if err != nil {
		return nil, err
	}
	var result models.QueryResult
	if err := c.do(ctx, cl, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// QueryHistory lists the caller's past queries.
func (c *Client) QueryHistory(ctx context.Context, page int) (*models.Page[models.Query], error) {
	cl := call{method: http.MethodGet, path: "/retrieval/queries/"}
	if page > 1 {
		cl.query = url.Values{"page": []string{strconv.Itoa(page)}}
	}
	var result models.Page[models.Query]
	if err := c.do(ctx, cl, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetQuery fetches one stored query with its full answer.
func (c *Client) GetQuery(ctx context.Context, id int64) (*models.Query, error) {
	cl := call{method: http.MethodGet, path: fmt.Sprintf("/retrieval/queries/%d/", id)}
	var q models.Query
	if err := c.do(ctx, cl, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// FeedbackRequest is the body of /retrieval/feedback/.
type FeedbackRequest struct {
	QueryID          int64               `json:"query_id"`
	FeedbackType     models.FeedbackType `json:"feedback_type"`
	Rating           int                 `json:"rating,omitempty"`
	Comment          string              `json:"comment,omitempty"`
	HallucinatedText string              `json:"hallucinated_text,omitempty"`
}

// SubmitFeedback records feedback on a query result.
func (c *Client) SubmitFeedback(ctx context.Context, req FeedbackRequest) (*models.Feedback, error) {
	cl, err := jsonCall(http.MethodPost, "/retrieval/feedback/", req)
	if err != nil {
		return nil, err
	}
	var fb models.Feedback
	if err := c.do(ctx, cl, &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

// ListFeedback lists feedback entries for reviewers.
func (c *Client) ListFeedback(ctx context.Context, page int) (*models.Page[models.Feedback], error) {
	cl := call{method: http.MethodGet, path: "/retrieval/feedback/list/"}
	if page > 1 {
		cl.query = url.Values{"page": []string{strconv.Itoa(page)}}
	}
	var result models.Page[models.Feedback]
	if err := c.do(ctx, cl, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ReviewFeedback marks one feedback entry as reviewed.
func (c *Client) ReviewFeedback(ctx context.Context, id int64) error {
	cl, err := jsonCall(http.MethodPost, fmt.Sprintf("/retrieval/feedback/%d/review/", id), nil)
	if err != nil {
		return err
	}
	return c.do(ctx, cl, nil)
}
