// Package document implements the Document repository using PostgreSQL.
// Only metadata is stored; file bytes live outside the database.
package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/credit-disputer/internal/adapter/postgres"
	"github.com/heartmarshall/credit-disputer/internal/domain"
)

// Repo provides document persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new document repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var documentColumns = []string{
	"id", "owner_id", "account_id", "dispute_id", "filename", "original_filename", "file_path",
	"file_size", "mime_type", "document_type", "description", "ai_analysis", "ai_analyzed_at", "uploaded_at",
}

// Create inserts document metadata.
func (r *Repo) Create(ctx context.Context, d domain.Document) (domain.Document, error) {
	sql, args, err := psql.Insert("documents").
		Columns(documentColumns...).
		Values(d.ID, d.OwnerID, d.AccountID, d.DisputeID, d.Filename, d.OriginalFilename, d.FilePath,
			d.FileSize, d.MimeType, string(d.Type), d.Description, d.AIAnalysis, d.AIAnalyzedAt, d.UploadedAt).
		Suffix("RETURNING " + strings.Join(documentColumns, ", ")).
		ToSql()
	if err != nil {
		return domain.Document{}, fmt.Errorf("build document insert: %w", err)
	}

	created, err := scanDocument(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.Document{}, postgres.MapError(err, "document", d.ID)
	}
	return created, nil
}

// List returns documents matching f, newest first.
func (r *Repo) List(ctx context.Context, f domain.DocumentFilter) ([]domain.Document, error) {
	if f.Limit <= 0 || f.Limit > 500 {
		f.Limit = 100
	}

	q := psql.Select(documentColumns...).From("documents")
	if f.OwnerID != nil {
		q = q.Where(squirrel.Eq{"owner_id": *f.OwnerID})
	}
	if f.DisputeID != nil {
		q = q.Where(squirrel.Eq{"dispute_id": *f.DisputeID})
	}
	if f.AccountID != nil {
		q = q.Where(squirrel.Eq{"account_id": *f.AccountID})
	}
	if f.Type != nil {
		q = q.Where(squirrel.Eq{"document_type": string(*f.Type)})
	}

	sql, args, err := q.OrderBy("uploaded_at DESC", "id DESC").Limit(uint64(f.Limit)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build document list: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return out, nil
}

const hasBureauResponseSQL = `
SELECT EXISTS (
	SELECT 1 FROM documents WHERE dispute_id = $1 AND document_type = 'bureau_response'
)`

// HasBureauResponse reports whether a bureau_response document is attached
// to the dispute.
func (r *Repo) HasBureauResponse(ctx context.Context, disputeID uuid.UUID) (bool, error) {
	var ok bool
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, hasBureauResponseSQL, disputeID).Scan(&ok); err != nil {
		return false, fmt.Errorf("check bureau response: %w", err)
	}
	return ok, nil
}

func scanDocument(row pgx.Row) (domain.Document, error) {
	var (
		d       domain.Document
		docType string
	)
	err := row.Scan(
		&d.ID, &d.OwnerID, &d.AccountID, &d.DisputeID, &d.Filename, &d.OriginalFilename, &d.FilePath,
		&d.FileSize, &d.MimeType, &docType, &d.Description, &d.AIAnalysis, &d.AIAnalyzedAt, &d.UploadedAt,
	)
	if err != nil {
		return domain.Document{}, err
	}
	d.Type = domain.DocumentType(docType)
	return d, nil
}
