package models

// AuditLog is one server-side audit trail record.
type AuditLog struct {
	ID           int64          `json:"id"`
	User         int64          `json:"user"`
	UserUsername string         `json:"user_username"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id"`
	Details      map[string]any `json:"details"`
	Timestamp    string         `json:"timestamp"`
	IPAddress    string         `json:"ip_address"`
	UserAgent    string         `json:"user_agent"`
}
