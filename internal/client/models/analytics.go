package models

// SystemStats is the admin dashboard snapshot from /analytics/stats/.
type SystemStats struct {
	Documents struct {
		Total    int `json:"total"`
		Approved int `json:"approved"`
		Pending  int `json:"pending"`
	} `json:"documents"`
	Queries struct {
		Total       int     `json:"total"`
		Successful  int     `json:"successful"`
		Failed      int     `json:"failed"`
		SuccessRate float64 `json:"success_rate"`
	} `json:"queries"`
	Tokens struct {
		TotalUsed int64 `json:"total_used"`
	} `json:"tokens"`
	Users struct {
		TotalActive int `json:"total_active"`
	} `json:"users"`
	Feedback struct {
		Total                int `json:"total"`
		Helpful              int `json:"helpful"`
		HallucinationReports int `json:"hallucination_reports"`
	} `json:"feedback"`
}

// RecentQuery is the trimmed history row embedded in UserAnalytics.
type RecentQuery struct {
	ID            int64  `json:"id"`
	Question      string `json:"question"`
	WasSuccessful bool   `json:"was_successful"`
	CreatedAt     string `json:"created_at"`
}

// UserAnalytics is the per-user usage summary from /analytics/me/.
type UserAnalytics struct {
	Queries struct {
		Total          int `json:"total"`
		Today          int `json:"today"`
		RemainingToday int `json:"remaining_today"`
	} `json:"queries"`
	TokensUsed    int64         `json:"tokens_used"`
	FeedbackGiven int           `json:"feedback_given"`
	RecentQueries []RecentQuery `json:"recent_queries"`
}
