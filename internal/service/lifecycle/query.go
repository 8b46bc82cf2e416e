package lifecycle

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/domain"
	"github.com/heartmarshall/credit-disputer/pkg/ctxutil"
)

const (
	defaultListLimit     = 50
	defaultAwaitingLimit = 200
)

// GetDispute returns a dispute with its history and live awaiting-response
// flag. Disputes of other owners are reported as not found unless the
// caller is an admin.
func (s *Service) GetDispute(ctx context.Context, id uuid.UUID) (*domain.DisputeDetails, error) {
	d, err := s.visibleDispute(ctx, id)
	if err != nil {
		return nil, err
	}

	history, err := s.history.ListByDispute(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	hasResponse, err := s.documents.HasBureauResponse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check bureau response: %w", err)
	}

	now := s.now()
	return &domain.DisputeDetails{
		Dispute:          *d,
		History:          history,
		AwaitingResponse: domain.IsAwaitingResponse(*d, hasResponse, now),
		DaysSinceSent:    d.DaysSinceSent(now),
	}, nil
}

// AwaitingResponse evaluates the awaiting-response predicate for one dispute
// at the current time.
func (s *Service) AwaitingResponse(ctx context.Context, id uuid.UUID) (bool, error) {
	d, err := s.visibleDispute(ctx, id)
	if err != nil {
		return false, err
	}
	hasResponse, err := s.documents.HasBureauResponse(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check bureau response: %w", err)
	}
	return domain.IsAwaitingResponse(*d, hasResponse, s.now()), nil
}

// ListDisputes returns the caller's disputes, oldest first.
func (s *Service) ListDisputes(ctx context.Context, input ListDisputesInput) ([]domain.Dispute, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	f := domain.DisputeFilter{
		OwnerID:   &userID,
		AccountID: input.AccountID,
		Limit:     input.Limit,
		Offset:    input.Offset,
	}
	if f.Limit == 0 {
		f.Limit = defaultListLimit
	}
	for _, raw := range input.Statuses {
		st, _ := domain.ParseDisputeStatus(raw)
		f.Statuses = append(f.Statuses, st)
	}

	list, err := s.disputes.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list disputes: %w", err)
	}
	return list, nil
}

// ListAwaitingResponse returns overdue disputes with no bureau response, for
// the caller or, for admins with AllOwners set, across all owners.
func (s *Service) ListAwaitingResponse(ctx context.Context, input ListAwaitingInput) ([]domain.Dispute, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	owner := &userID
	if input.AllOwners {
		if !ctxutil.IsAdminCtx(ctx) {
			return nil, domain.ErrForbidden
		}
		owner = nil
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultAwaitingLimit
	}

	list, err := s.disputes.ListAwaitingResponse(ctx, owner, s.now(), limit)
	if err != nil {
		return nil, fmt.Errorf("list awaiting disputes: %w", err)
	}
	return list, nil
}

func (s *Service) visibleDispute(ctx context.Context, id uuid.UUID) (*domain.Dispute, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	d, err := s.disputes.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get dispute: %w", err)
	}
	if d.OwnerID != userID && !ctxutil.IsAdminCtx(ctx) {
		return nil, fmt.Errorf("dispute %s: %w", id, domain.ErrNotFound)
	}
	return d, nil
}
