// Package dashboard computes the per-owner dispute overview. Nothing is
// cached: every read derives counts from the current rows.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/domain"
	"github.com/heartmarshall/credit-disputer/pkg/ctxutil"
)

type disputeCounter interface {
	CountByStatus(ctx context.Context, ownerID *uuid.UUID) (domain.StatusCounts, error)
	CountAwaitingResponse(ctx context.Context, ownerID *uuid.UUID, now time.Time) (int, error)
}

type accountCounter interface {
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (total, pending int, err error)
}

// Service builds dashboards.
type Service struct {
	disputes disputeCounter
	accounts accountCounter
	log      *slog.Logger
	now      func() time.Time
}

// NewService creates a dashboard service.
func NewService(log *slog.Logger, disputes disputeCounter, accounts accountCounter) *Service {
	return &Service{
		disputes: disputes,
		accounts: accounts,
		log:      log.With("service", "dashboard"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the caller's dashboard.
func (s *Service) Get(ctx context.Context) (domain.Dashboard, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Dashboard{}, domain.ErrUnauthorized
	}

	counts, err := s.disputes.CountByStatus(ctx, &userID)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("count by status: %w", err)
	}

	awaiting, err := s.disputes.CountAwaitingResponse(ctx, &userID, s.now())
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("count awaiting response: %w", err)
	}

	totalAccounts, pendingAccounts, err := s.accounts.CountByOwner(ctx, userID)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("count accounts: %w", err)
	}

	dash := domain.Dashboard{
		Pending:          counts[domain.DisputeStatusPending],
		InTransit:        counts[domain.DisputeStatusSent] + counts[domain.DisputeStatusInTransit],
		Delivered:        counts[domain.DisputeStatusDelivered],
		Failed:           counts[domain.DisputeStatusFailed] + counts[domain.DisputeStatusInvalidTrackingID],
		Resolved:         counts[domain.DisputeStatusResolved],
		AwaitingResponse: awaiting,
		TotalAccounts:    totalAccounts,
		PendingAccounts:  pendingAccounts,
	}
	for _, n := range counts {
		dash.TotalDisputes += n
	}

	s.log.DebugContext(ctx, "dashboard computed",
		slog.String("user_id", userID.String()),
		slog.Int("total_disputes", dash.TotalDisputes),
		slog.Int("awaiting_response", awaiting),
	)
	return dash, nil
}
