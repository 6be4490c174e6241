package analysis

import "time"

// RecordID identifier type
type RecordID string

// RecordStatus enum
type RecordStatus string

const (
	StatusSuccess RecordStatus = "success"
	StatusFailed  RecordStatus = "failed"
)

// Record is one upload outcome kept for the analytics panel.
type Record struct {
	ID          RecordID     `json:"id"`
	SessionID   string       `json:"session_id,omitempty"`
	FileName    string       `json:"file_name"`
	DocumentURL string       `json:"document_url,omitempty"`
	Status      RecordStatus `json:"status"`
	ErrorKind   ErrorKind    `json:"error_kind,omitempty"`
	Result      Result       `json:"result"`
	CreatedAt   time.Time    `json:"created_at"`
}
