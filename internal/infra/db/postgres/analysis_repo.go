package postgres

import (
    "context"
    "database/sql"
    "time"

    domain "github.com/bryanwahyu/lexguard/internal/domain/analysis"
    "github.com/bryanwahyu/lexguard/internal/infra/db"
)

type AnalysisRepository struct { db *sql.DB }

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository { return &AnalysisRepository{db: db} }

// Migrate creates the history table when missing.
func (r *AnalysisRepository) Migrate(ctx context.Context) error {
    const q = `
CREATE TABLE IF NOT EXISTS document_analyses (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  file_name TEXT NOT NULL,
  document_url TEXT NOT NULL,
  status TEXT NOT NULL,
  error_kind TEXT NOT NULL,
  risk_score INTEGER NOT NULL,
  pii_count INTEGER NOT NULL,
  clause_count INTEGER NOT NULL,
  language TEXT NOT NULL,
  issues_json JSONB NOT NULL,
  summary TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_document_analyses_created ON document_analyses (created_at);`
    _, err := r.db.ExecContext(ctx, q)
    return err
}

// Save insert/update analysis record
func (r *AnalysisRepository) Save(ctx context.Context, rec *domain.Record) error {
    const q = `
INSERT INTO document_analyses
(id, session_id, file_name, document_url, status, error_kind,
 risk_score, pii_count, clause_count, language, issues_json, summary, created_at)
VALUES ($1,$2,$3,$4,$5,$6,
        $7,$8,$9,$10,$11,$12,$13)
ON CONFLICT (id) DO UPDATE SET
 status = EXCLUDED.status,
 error_kind = EXCLUDED.error_kind,
 risk_score = EXCLUDED.risk_score,
 pii_count = EXCLUDED.pii_count,
 clause_count = EXCLUDED.clause_count,
 language = EXCLUDED.language,
 issues_json = EXCLUDED.issues_json,
 summary = EXCLUDED.summary;`

    row, err := db.EncodeRecord(rec, time.Now())
    if err != nil {
        return err
    }
    _, err = r.db.ExecContext(ctx, q, row.Args(row.CreatedAt)...)
    return err
}

const selectColumns = `
SELECT id, session_id, file_name, document_url, status, error_kind,
       risk_score, pii_count, clause_count, language, issues_json, summary, created_at
FROM document_analyses`

// Latest records, newest first
func (r *AnalysisRepository) Latest(ctx context.Context, limit int) ([]*domain.Record, error) {
    if limit <= 0 {
        limit = 20
    }
    rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC LIMIT $1`, limit)
    if err != nil {
        return nil, err
    }
    return scanRecords(rows)
}

// Since returns records created at or after since, oldest first
func (r *AnalysisRepository) Since(ctx context.Context, since time.Time) ([]*domain.Record, error) {
    rows, err := r.db.QueryContext(ctx, selectColumns+` WHERE created_at >= $1 ORDER BY created_at ASC`, since)
    if err != nil {
        return nil, err
    }
    return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]*domain.Record, error) {
    defer rows.Close()

    out := []*domain.Record{}
    for rows.Next() {
        var row db.Row
        if err := rows.Scan(append(row.Dest(), &row.CreatedAt)...); err != nil {
            return nil, err
        }
        rec, err := row.Record()
        if err != nil {
            return nil, err
        }
        out = append(out, rec)
    }
    return out, rows.Err()
}
