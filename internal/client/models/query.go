package models

// QuerySource is one retrieved chunk backing an answer.
type QuerySource struct {
	ChunkID         int64          `json:"chunk_id"`
	DocumentTitle   string         `json:"document_title"`
	VersionNumber   int            `json:"version_number"`
	Text            string         `json:"text"`
	SimilarityScore float64        `json:"similarity_score"`
	Rank            int            `json:"rank"`
	Metadata        map[string]any `json:"metadata"`
}

// QueryResult is the answer to POST /retrieval/query/.
type QueryResult struct {
	QueryID            int64         `json:"query_id"`
	Question           string        `json:"question"`
	Answer             string        `json:"answer"`
	Sources            []QuerySource `json:"sources"`
	TokensUsed         int           `json:"tokens_used"`
	ResponseTimeMs     int           `json:"response_time_ms"`
	NumChunksRetrieved int           `json:"num_chunks_retrieved"`
	AvgSimilarityScore float64       `json:"avg_similarity_score"`
	Message            string        `json:"message,omitempty"`
}

// Query is a stored history entry as returned by /retrieval/queries/.
type Query struct {
	ID                 int64   `json:"id"`
	User               int64   `json:"user"`
	UserUsername       string  `json:"user_username"`
	Question           string  `json:"question"`
	Answer             string  `json:"answer"`
	TokensUsed         int     `json:"tokens_used"`
	ResponseTimeMs     int     `json:"response_time_ms"`
	WasSuccessful      bool    `json:"was_successful"`
	NumChunksRetrieved int     `json:"num_chunks_retrieved"`
	AvgSimilarityScore float64 `json:"avg_similarity_score"`
	CreatedAt          string  `json:"created_at"`
}

// FeedbackType classifies user feedback on an answer.
type FeedbackType string

const (
	FeedbackHelpful       FeedbackType = "HELPFUL"
	FeedbackNotHelpful    FeedbackType = "NOT_HELPFUL"
	FeedbackHallucination FeedbackType = "HALLUCINATION"
)

// Feedback is a submitted review of a query result.
type Feedback struct {
	ID                 int64        `json:"id"`
	Query              int64        `json:"query"`
	User               int64        `json:"user"`
	UserUsername       string       `json:"user_username"`
	FeedbackType       FeedbackType `json:"feedback_type"`
	Rating             int          `json:"rating"`
	Comment            string       `json:"comment"`
	HallucinatedText   string       `json:"hallucinated_text"`
	CreatedAt          string       `json:"created_at"`
	IsReviewed         bool         `json:"is_reviewed"`
	ReviewedByUsername string       `json:"reviewed_by_username"`
	ReviewedAt         string       `json:"reviewed_at"`
}
