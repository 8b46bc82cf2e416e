// Package account manages the derogatory credit entries an owner tracks.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/domain"
	"github.com/heartmarshall/credit-disputer/pkg/ctxutil"
)

type accountRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]domain.Account, error)
	Create(ctx context.Context, a domain.Account) (domain.Account, error)
}

// Service handles account operations.
type Service struct {
	accounts accountRepo
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates an account service.
func NewService(log *slog.Logger, accounts accountRepo) *Service {
	return &Service{
		accounts: accounts,
		log:      log.With("service", "account"),
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// Create records a new pending account for the caller.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Account, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.accounts.Create(ctx, newAccount(userID, input, s.now()))
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.log.InfoContext(ctx, "account created",
		slog.String("user_id", userID.String()),
		slog.String("account_id", created.ID.String()),
		slog.String("bureau", created.Bureau.String()),
	)
	return &created, nil
}

// Import creates one pending account per valid row. Invalid rows are
// reported by index and do not stop the others. A storage error aborts the
// import; rows created before it stay created and are returned with it.
func (s *Service) Import(ctx context.Context, rows []CreateInput) (ImportResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return ImportResult{}, domain.ErrUnauthorized
	}

	switch {
	case len(rows) == 0:
		return ImportResult{}, domain.NewValidationError("accounts", "at least one row required")
	case len(rows) > MaxImportRows:
		return ImportResult{}, domain.NewValidationError("accounts", fmt.Sprintf("max %d rows", MaxImportRows))
	}

	var res ImportResult
	now := s.now()
	for i, row := range rows {
		if err := row.Validate(); err != nil {
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				return res, err
			}
			res.Rejected = append(res.Rejected, RowError{Row: i, Errors: verr.Errors})
			continue
		}

		created, err := s.accounts.Create(ctx, newAccount(userID, row, now))
		if err != nil {
			return res, fmt.Errorf("import row %d: %w", i, err)
		}
		res.Created = append(res.Created, created)
	}

	s.log.InfoContext(ctx, "accounts imported",
		slog.String("user_id", userID.String()),
		slog.Int("created", len(res.Created)),
		slog.Int("rejected", len(res.Rejected)),
	)
	return res, nil
}

// List returns the caller's accounts, newest first.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.Account, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = 50
	}

	accounts, err := s.accounts.ListByOwner(ctx, userID, limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// Get returns one of the caller's accounts. Other owners' accounts are
// reported as not found.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	if a.OwnerID != userID {
		return nil, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	return a, nil
}

func newAccount(userID uuid.UUID, input CreateInput, now time.Time) domain.Account {
	bureau, _ := domain.ParseBureau(input.Bureau)
	return domain.Account{
		ID:            uuid.New(),
		OwnerID:       userID,
		Bureau:        bureau,
		CreditorName:  strings.TrimSpace(input.CreditorName),
		AccountNumber: strings.TrimSpace(input.AccountNumber),
		AccountType:   trimmed(input.AccountType),
		Balance:       input.Balance,
		Reason:        strings.TrimSpace(input.Reason),
		Notes:         trimmed(input.Notes),
		Status:        domain.AccountStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
