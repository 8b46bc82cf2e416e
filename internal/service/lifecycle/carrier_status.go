package lifecycle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/domain"
)

// ApplyCarrierStatus records a carrier tracking result. An unknown status or
// one equal to the current status changes nothing.
func (s *Service) ApplyCarrierStatus(ctx context.Context, id uuid.UUID, cs domain.CarrierStatus) (Outcome, error) {
	target, ok := cs.DisputeStatus()
	if !ok {
		d, err := s.disputes.GetByID(ctx, id)
		if err != nil {
			return Outcome{}, fmt.Errorf("get dispute: %w", err)
		}
		return Outcome{Dispute: *d}, nil
	}

	note := "Carrier reported " + cs.String()
	if cs == domain.CarrierStatusReturned {
		note = "Returned to sender"
	}
	return s.transition(ctx, id, target, note, func(d *domain.Dispute) error {
		if d.Status != domain.DisputeStatusSent && d.Status != domain.DisputeStatusInTransit {
			return &domain.TransitionError{From: d.Status, To: target}
		}
		return nil
	})
}

// MarkInvalidTracking moves a mailed dispute whose tracking id is missing or
// malformed to invalid_tracking_id.
func (s *Service) MarkInvalidTracking(ctx context.Context, id uuid.UUID) (Outcome, error) {
	return s.transition(ctx, id, domain.DisputeStatusInvalidTrackingID, "Tracking id missing or malformed", nil)
}

// transition moves the dispute to target under lock. guard, when set, may
// reject the move before the state machine is consulted. A dispute already
// in target is left as is.
func (s *Service) transition(ctx context.Context, id uuid.UUID, target domain.DisputeStatus, note string, guard func(d *domain.Dispute) error) (Outcome, error) {
	var out Outcome

	err := s.runLocked(ctx, id, func(ctx context.Context) error {
		d, err := s.disputes.GetByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("lock dispute: %w", err)
		}
		if d.Status == target {
			out = Outcome{Dispute: *d}
			return nil
		}
		if guard != nil {
			if err := guard(d); err != nil {
				return err
			}
		}
		if !d.CanTransition(target) {
			return &domain.TransitionError{From: d.Status, To: target}
		}

		from := d.Status
		now := s.now()
		d.Status = target
		d.UpdatedAt = now

		if err := s.disputes.Update(ctx, *d); err != nil {
			return fmt.Errorf("update dispute: %w", err)
		}
		if err := s.record(ctx, *d, domain.HistoryActionStatusChange, &from, note, now); err != nil {
			return fmt.Errorf("append history: %w", err)
		}

		out = Outcome{Dispute: *d, Changed: true}
		return nil
	}, nil)
	if err != nil {
		return Outcome{}, err
	}

	if out.Changed {
		s.log.InfoContext(ctx, "dispute status changed",
			slog.String("dispute_id", id.String()),
			slog.String("to", target.String()),
			slog.String("note", note),
		)
	}
	return out, nil
}
