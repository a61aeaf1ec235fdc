package models

// DocumentStatus mirrors the server-side lifecycle of a document.
type DocumentStatus string

const (
	DocumentStatusDraft    DocumentStatus = "DRAFT"
	DocumentStatusApproved DocumentStatus = "APPROVED"
	DocumentStatusRejected DocumentStatus = "REJECTED"
)

// Document is the list-view representation of a knowledge-base document.
type Document struct {
	ID                 int64          `json:"id"`
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	Owner              int64          `json:"owner"`
	OwnerUsername      string         `json:"owner_username"`
	OwnerName          string         `json:"owner_name"`
	Status             DocumentStatus `json:"status"`
	Tags               []string       `json:"tags"`
	Department         string         `json:"department"`
	CurrentVersion     int            `json:"current_version"`
	CreatedAt          string         `json:"created_at"`
	UpdatedAt          string         `json:"updated_at"`
	ApprovedAt         string         `json:"approved_at"`
	ApprovedByUsername string         `json:"approved_by_username"`
}

// DocumentDetail is the detail-view representation, including all versions.
type DocumentDetail struct {
	Document
	Versions []DocumentVersion `json:"versions"`
}

// DocumentVersion describes one uploaded revision and its processing state.
type DocumentVersion struct {
	ID               int64  `json:"id"`
	VersionNumber    int    `json:"version_number"`
	FileURL          string `json:"file_url"`
	FileSize         int64  `json:"file_size"`
	FileType         string `json:"file_type"`
	ProcessingStatus string `json:"processing_status"`
	TotalChunks      int    `json:"total_chunks"`
	EmbeddingModel   string `json:"embedding_model"`
	ErrorMessage     string `json:"error_message"`
	CreatedAt        string `json:"created_at"`
	ProcessedAt      string `json:"processed_at"`
}

// DocumentUpdate carries editable document metadata for PUT /documents/<id>/.
type DocumentUpdate struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Department  string   `json:"department,omitempty"`
}
