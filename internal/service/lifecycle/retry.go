package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/domain"
)

// persistGrace is how long past the caller's deadline the outcome of an
// external call may still take to be written.
const persistGrace = 10 * time.Second

// detach returns the context for a transaction that wraps an external call.
// It keeps the values of ctx but not its cancellation and ends persistGrace
// after the deadline of ctx, so a send that ran out of time is still recorded.
func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	base := context.WithoutCancel(ctx)
	if deadline, ok := ctx.Deadline(); ok {
		return context.WithDeadline(base, deadline.Add(persistGrace))
	}
	return context.WithCancel(base)
}

// runLocked runs fn in a transaction and retries it once when the dispute is
// locked by another writer. canRetry, when non-nil, is consulted before the
// second attempt; operations that already reached an external service return
// false so a letter is never mailed twice.
func (s *Service) runLocked(ctx context.Context, id uuid.UUID, fn func(ctx context.Context) error, canRetry func() bool) error {
	err := s.tx.RunInTx(ctx, fn)
	if !errors.Is(err, domain.ErrConflict) {
		return err
	}
	if canRetry != nil && !canRetry() {
		return err
	}

	s.log.WarnContext(ctx, "dispute busy, retrying",
		slog.String("dispute_id", id.String()),
		slog.Duration("backoff", s.cfg.ConflictBackoff),
	)

	timer := time.NewTimer(s.cfg.ConflictBackoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return err
	case <-timer.C:
	}

	return s.tx.RunInTx(ctx, fn)
}
