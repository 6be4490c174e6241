package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/bryanwahyu/lexguard/internal/application"
	domain "github.com/bryanwahyu/lexguard/internal/domain/analysis"
)

// Service implements the upload flow: file -> text -> analyzer -> holder.
// Documents and History are optional.
type Service struct {
	Analyzer  domain.Analyzer
	Extractor domain.Extractor
	Documents domain.DocumentStore
	History   domain.Repository
	Clock     application.Clock
}

// Document is an uploaded file.
type Document struct {
	SessionID string
	FileName  string
	Data      []byte
}

// UploadResult is what the dashboard shows after an upload.
type UploadResult struct {
	RecordID    domain.RecordID `json:"record_id"`
	FileName    string          `json:"file_name"`
	DocumentURL string          `json:"document_url,omitempty"`
	Analysis    domain.Result   `json:"analysis"`
	Tier        domain.Tier     `json:"tier"`
}

// Evaluate sends text to the analyzer and parses the response. It never
// touches a holder.
func (s *Service) Evaluate(ctx context.Context, text string) (domain.Result, error) {
	raw, err := s.Analyzer.Analyze(ctx, text)
	if err != nil {
		return domain.Result{}, &domain.Error{Kind: domain.NetworkError, Err: err}
	}
	res, err := domain.Parse(raw)
	if err != nil {
		return domain.Result{}, &domain.Error{Kind: domain.BadResponse, Err: err}
	}
	return res, nil
}

// Analyze runs Evaluate and, on success, replaces the holder's value. On
// failure the holder keeps whatever it had. Overlapping calls are not
// coordinated: the last one to finish wins.
func (s *Service) Analyze(ctx context.Context, holder *domain.Holder, fileContent string) (domain.Result, error) {
	res, err := s.Evaluate(ctx, fileContent)
	if err != nil {
		return domain.Result{}, err
	}
	holder.Set(res)
	return res, nil
}

// Upload extracts the text of doc, stores the raw file when a document store
// is configured, analyzes it into holder and records the outcome.
func (s *Service) Upload(ctx context.Context, holder *domain.Holder, doc Document) (UploadResult, error) {
	text, err := s.Extractor.Extract(doc.FileName, doc.Data)
	if err != nil {
		return UploadResult{}, err
	}
	if strings.TrimSpace(text) == "" {
		return UploadResult{}, fmt.Errorf("%w: no text found in %s", domain.ErrUnsupportedFormat, doc.FileName)
	}

	rec := &domain.Record{
		ID:        domain.RecordID(uuid.New().String()),
		SessionID: doc.SessionID,
		FileName:  doc.FileName,
		CreatedAt: s.Clock.Now(),
	}

	if s.Documents != nil {
		key := fmt.Sprintf("%s/%s/%s", doc.SessionID, rec.ID, filepath.Base(doc.FileName))
		url, err := s.Documents.Put(ctx, key, doc.Data, contentType(doc.FileName))
		if err != nil {
			// the analysis does not depend on the stored copy
			slog.Warn("document upload failed", "file", doc.FileName, "error", err)
		} else {
			rec.DocumentURL = url
		}
	}

	res, err := s.Analyze(ctx, holder, text)
	if err != nil {
		rec.Status = domain.StatusFailed
		if kind, ok := domain.KindOf(err); ok {
			rec.ErrorKind = kind
		}
		s.record(ctx, rec)
		return UploadResult{}, err
	}

	rec.Status = domain.StatusSuccess
	rec.Result = res
	s.record(ctx, rec)

	return UploadResult{
		RecordID:    rec.ID,
		FileName:    doc.FileName,
		DocumentURL: rec.DocumentURL,
		Analysis:    res,
		Tier:        res.Tier(),
	}, nil
}

func (s *Service) record(ctx context.Context, rec *domain.Record) {
	if s.History == nil {
		return
	}
	if err := s.History.Save(ctx, rec); err != nil {
		slog.Error("failed to save analysis record", "id", rec.ID, "error", err)
	}
}

// Latest returns the most recent upload outcomes.
func (s *Service) Latest(ctx context.Context, limit int) ([]*domain.Record, error) {
	if s.History == nil {
		return []*domain.Record{}, nil
	}
	return s.History.Latest(ctx, limit)
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
