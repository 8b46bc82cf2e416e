package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/credit-disputer/internal/domain"
	"github.com/heartmarshall/credit-disputer/pkg/ctxutil"
)

// Resolve records the bureau's resolution of an in-flight dispute. Only the
// owner or an admin may resolve. The linked account, if any, moves to
// resolved in the same transaction.
func (s *Service) Resolve(ctx context.Context, input ResolveInput) (*domain.Dispute, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}
	resolution := strings.TrimSpace(input.Resolution)

	var resolved domain.Dispute
	err := s.runLocked(ctx, input.DisputeID, func(ctx context.Context) error {
		d, err := s.disputes.GetByIDForUpdate(ctx, input.DisputeID)
		if err != nil {
			return fmt.Errorf("lock dispute: %w", err)
		}
		if d.OwnerID != userID && !ctxutil.IsAdminCtx(ctx) {
			return fmt.Errorf("dispute %s: %w", d.ID, domain.ErrNotFound)
		}
		if !d.InFlight() {
			return &domain.TransitionError{From: d.Status, To: domain.DisputeStatusResolved}
		}

		from := d.Status
		now := s.now()
		d.Status = domain.DisputeStatusResolved
		d.Resolution = &resolution
		d.ResolvedAt = &now
		d.UpdatedAt = now

		if err := s.disputes.Update(ctx, *d); err != nil {
			return fmt.Errorf("update dispute: %w", err)
		}
		if err := s.record(ctx, *d, domain.HistoryActionStatusChange, &from, resolution, now); err != nil {
			return fmt.Errorf("append history: %w", err)
		}
		if d.AccountID != nil {
			if err := s.accounts.UpdateStatus(ctx, *d.AccountID, domain.AccountStatusResolved, now); err != nil {
				return fmt.Errorf("mark account resolved: %w", err)
			}
		}

		resolved = *d
		return nil
	}, nil)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "dispute resolved",
		slog.String("user_id", userID.String()),
		slog.String("dispute_id", resolved.ID.String()),
	)
	return &resolved, nil
}
