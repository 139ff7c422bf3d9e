// Package cases is the typed client for case and document resources.
package cases

// Case statuses as the backend reports them.
const (
	StatusOpen       = "OPEN"
	StatusInProgress = "IN_PROGRESS"
	StatusResolved   = "RESOLVED"
	StatusClosed     = "CLOSED"
)

// Case priorities.
const (
	PriorityLow      = "LOW"
	PriorityMedium   = "MEDIUM"
	PriorityHigh     = "HIGH"
	PriorityCritical = "CRITICAL"
)

// Case is one matter tracked by the backend.
type Case struct {
	CaseID        int    `json:"case_id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Status        string `json:"status"`
	Priority      string `json:"priority"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
	DocumentCount int    `json:"document_count"`
	Summary       string `json:"summary,omitempty"`
}

// Document is one uploaded file attached to a case.
type Document struct {
	ID           string `json:"id,omitempty"`
	DocID        string `json:"doc_id"`
	Filename     string `json:"filename"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
	UploadedAt   string `json:"uploaded_at"`
	ProcessState string `json:"process_state"`
	UploadedBy   string `json:"uploaded_by"`
}

// CaseDetail is a case with its documents expanded.
type CaseDetail struct {
	Case
	Documents []Document `json:"documents"`
}

// Page is one page of the case list.
type Page struct {
	Items []Case `json:"items"`
	Total int    `json:"total"`
}

// ListFilter narrows and pages the case list; zero values are omitted.
type ListFilter struct {
	Status   string
	Priority string
	Search   string
	Page     int
	Limit    int
}

// CreateInput is the payload for creating a case.
type CreateInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
}
