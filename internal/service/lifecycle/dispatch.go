package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/domain"
)

// Dispatch mails a pending dispute with send. A returned tracking id moves
// the dispute to sent and fixes its response deadline; a failed send moves
// it to failed with no tracking id. Failed sends are not retried.
//
// send runs on ctx while the row lock and the writes run on a detached
// context, so a send cut off by the deadline of ctx is still recorded as
// failed. The returned error is non-nil when the send failed even though
// the failed state was committed.
func (s *Service) Dispatch(ctx context.Context, id uuid.UUID, send Sender) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	var (
		out     Outcome
		sendErr error
		mailed  bool
	)

	lockCtx, cancel := detach(ctx)
	defer cancel()

	err := s.runLocked(lockCtx, id, func(txCtx context.Context) error {
		d, err := s.disputes.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("lock dispute: %w", err)
		}
		if d.Status != domain.DisputeStatusPending {
			return &domain.TransitionError{From: d.Status, To: domain.DisputeStatusSent}
		}
		if !d.Bureau.IsValid() {
			return fmt.Errorf("dispute %s: unknown bureau %q: %w", d.ID, d.Bureau, domain.ErrDataIntegrity)
		}

		mailed = true
		trackingID, err := send(ctx, *d)
		if errors.Is(err, domain.ErrDataIntegrity) {
			return err
		}
		trackingID = strings.TrimSpace(trackingID)
		if err == nil && trackingID == "" {
			err = errors.New("mail service returned no tracking id")
		}

		now := s.now()
		d.UpdatedAt = now
		var note string
		if err != nil {
			sendErr = err
			d.Status = domain.DisputeStatusFailed
			note = "Mailing failed: " + err.Error()
		} else {
			expected := domain.ComputeDeadline(now)
			d.Status = domain.DisputeStatusSent
			d.SentDate = &now
			d.TrackingID = &trackingID
			d.ExpectedResponseDate = &expected
			note = "Letter mailed, tracking id " + trackingID
		}

		if err := s.disputes.Update(txCtx, *d); err != nil {
			return fmt.Errorf("update dispute: %w", err)
		}
		if err := s.record(txCtx, *d, domain.HistoryActionSent, statusRef(domain.DisputeStatusPending), note, now); err != nil {
			return fmt.Errorf("append history: %w", err)
		}

		out = Outcome{Dispute: *d, Changed: true}
		return nil
	}, func() bool { return !mailed })
	if err != nil {
		return Outcome{}, err
	}

	if sendErr != nil {
		s.log.WarnContext(ctx, "dispute mailing failed",
			slog.String("dispute_id", id.String()),
			slog.String("error", sendErr.Error()),
		)
		return out, fmt.Errorf("mail dispute %s: %w", id, sendErr)
	}

	s.log.InfoContext(ctx, "dispute mailed",
		slog.String("dispute_id", id.String()),
		slog.String("tracking_id", *out.Dispute.TrackingID),
		slog.Time("expected_response_date", *out.Dispute.ExpectedResponseDate),
	)
	return out, nil
}
