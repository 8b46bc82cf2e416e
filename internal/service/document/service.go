// Package document records metadata for files attached to accounts and
// disputes. A bureau_response document on a dispute stops its escalation.
package document

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/domain"
	"github.com/heartmarshall/credit-disputer/pkg/ctxutil"
)

type documentRepo interface {
	Create(ctx context.Context, d domain.Document) (domain.Document, error)
	List(ctx context.Context, f domain.DocumentFilter) ([]domain.Document, error)
}

type disputeRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Dispute, error)
}

type accountRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
}

// Service handles document metadata.
type Service struct {
	documents documentRepo
	disputes  disputeRepo
	accounts  accountRepo
	log       *slog.Logger
	now       func() time.Time
}

// NewService creates a document service.
func NewService(log *slog.Logger, documents documentRepo, disputes disputeRepo, accounts accountRepo) *Service {
	return &Service{
		documents: documents,
		disputes:  disputes,
		accounts:  accounts,
		log:       log.With("service", "document"),
		now:       func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// Attach records an uploaded file for the caller. Linked accounts and
// disputes must belong to the caller; a dispute's account is inherited when
// no account is given and must match when one is.
func (s *Service) Attach(ctx context.Context, input AttachInput) (*domain.Document, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	accountID := input.AccountID
	if input.DisputeID != nil {
		d, err := s.disputes.GetByID(ctx, *input.DisputeID)
		if err != nil {
			return nil, fmt.Errorf("get dispute: %w", err)
		}
		if d.OwnerID != userID {
			return nil, fmt.Errorf("dispute %s: %w", d.ID, domain.ErrNotFound)
		}
		if accountID == nil {
			accountID = d.AccountID
		} else if d.AccountID == nil || *d.AccountID != *accountID {
			return nil, &domain.ValidationError{Errors: []domain.FieldError{
				{Field: "account_id", Message: "must be the account of the dispute"},
			}}
		}
	}
	if input.AccountID != nil {
		a, err := s.accounts.GetByID(ctx, *input.AccountID)
		if err != nil {
			return nil, fmt.Errorf("get account: %w", err)
		}
		if a.OwnerID != userID {
			return nil, fmt.Errorf("account %s: %w", a.ID, domain.ErrNotFound)
		}
	}

	id := uuid.New()
	original := strings.TrimSpace(input.OriginalFilename)
	doc := domain.Document{
		ID:               id,
		OwnerID:          userID,
		AccountID:        accountID,
		DisputeID:        input.DisputeID,
		Filename:         id.String() + strings.ToLower(filepath.Ext(original)),
		OriginalFilename: original,
		FilePath:         strings.TrimSpace(input.FilePath),
		FileSize:         input.FileSize,
		MimeType:         input.MimeType,
		Type:             domain.DocumentType(input.Type),
		Description:      input.Description,
		UploadedAt:       s.now(),
	}

	created, err := s.documents.Create(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	attrs := []any{
		slog.String("user_id", userID.String()),
		slog.String("document_id", created.ID.String()),
		slog.String("type", created.Type.String()),
	}
	if created.DisputeID != nil {
		attrs = append(attrs, slog.String("dispute_id", created.DisputeID.String()))
	}
	s.log.InfoContext(ctx, "document attached", attrs...)
	return &created, nil
}

// List returns the caller's documents, newest first.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Document, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	f := domain.DocumentFilter{
		OwnerID:   &userID,
		AccountID: input.AccountID,
		DisputeID: input.DisputeID,
		Limit:     input.Limit,
	}
	if input.Type != "" {
		t := domain.DocumentType(input.Type)
		f.Type = &t
	}

	docs, err := s.documents.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}
