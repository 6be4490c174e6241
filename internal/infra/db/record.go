// Package db holds what the history repositories share regardless of driver.
package db

import (
	"encoding/json"
	"fmt"
	"time"

	domain "github.com/bryanwahyu/lexguard/internal/domain/analysis"
)

// Row is an analysis record flattened into document_analyses columns.
// Every driver stores the same values; only created_at's SQL type differs.
type Row struct {
	ID          string
	SessionID   string
	FileName    string
	DocumentURL string
	Status      string
	ErrorKind   string
	RiskScore   int
	PIICount    int
	ClauseCount int
	Language    string
	IssuesJSON  string
	Summary     string
	CreatedAt   time.Time
}

// EncodeRecord flattens rec. Empty strings are stored as-is, nil issues
// become "[]" and a zero CreatedAt becomes now.
func EncodeRecord(rec *domain.Record, now time.Time) (Row, error) {
	issues := rec.Result.Issues
	if issues == nil {
		issues = []string{}
	}
	raw, err := json.Marshal(issues)
	if err != nil {
		return Row{}, fmt.Errorf("encode issues of %s: %w", rec.ID, err)
	}
	created := rec.CreatedAt
	if created.IsZero() {
		created = now
	}
	return Row{
		ID:          string(rec.ID),
		SessionID:   rec.SessionID,
		FileName:    rec.FileName,
		DocumentURL: rec.DocumentURL,
		Status:      string(rec.Status),
		ErrorKind:   string(rec.ErrorKind),
		RiskScore:   rec.Result.RiskScore,
		PIICount:    rec.Result.PIICount,
		ClauseCount: rec.Result.ClauseCount,
		Language:    rec.Result.Language,
		IssuesJSON:  string(raw),
		Summary:     rec.Result.Summary,
		CreatedAt:   created.UTC(),
	}, nil
}

// Args returns the insert arguments in column order, with created_at as given.
func (r Row) Args(createdAt any) []any {
	return []any{
		r.ID, r.SessionID, r.FileName, r.DocumentURL, r.Status, r.ErrorKind,
		r.RiskScore, r.PIICount, r.ClauseCount, r.Language, r.IssuesJSON, r.Summary, createdAt,
	}
}

// Dest returns scan destinations in column order, except created_at.
func (r *Row) Dest() []any {
	return []any{
		&r.ID, &r.SessionID, &r.FileName, &r.DocumentURL, &r.Status, &r.ErrorKind,
		&r.RiskScore, &r.PIICount, &r.ClauseCount, &r.Language, &r.IssuesJSON, &r.Summary,
	}
}

// Record rebuilds the domain record.
func (r Row) Record() (*domain.Record, error) {
	var issues []string
	if err := json.Unmarshal([]byte(r.IssuesJSON), &issues); err != nil {
		return nil, fmt.Errorf("decode issues of %s: %w", r.ID, err)
	}
	return &domain.Record{
		ID:          domain.RecordID(r.ID),
		SessionID:   r.SessionID,
		FileName:    r.FileName,
		DocumentURL: r.DocumentURL,
		Status:      domain.RecordStatus(r.Status),
		ErrorKind:   domain.ErrorKind(r.ErrorKind),
		Result: domain.Result{
			RiskScore:   r.RiskScore,
			PIICount:    r.PIICount,
			ClauseCount: r.ClauseCount,
			Language:    r.Language,
			Issues:      issues,
			Summary:     r.Summary,
		},
		CreatedAt: r.CreatedAt,
	}, nil
}
