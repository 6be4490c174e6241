package analysis

import (
	"context"
	"time"
)

// Analyzer sends document text to an external analysis service and returns
// its raw response body. Parsing is the caller's job.
type Analyzer interface {
	Analyze(ctx context.Context, documentText string) (string, error)
}

// Extractor turns an uploaded file into plain text.
type Extractor interface {
	Extract(fileName string, data []byte) (string, error)
}

// DocumentStore keeps the raw uploaded files.
type DocumentStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Repository persists analysis outcomes for analytics.
type Repository interface {
	Save(ctx context.Context, r *Record) error
	Latest(ctx context.Context, limit int) ([]*Record, error)
	Since(ctx context.Context, since time.Time) ([]*Record, error)
}
