package lifecycle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/domain"
	"github.com/heartmarshall/credit-disputer/internal/service/escalation"
)

// SendFollowUp mails the next escalation letter for an overdue dispute.
// The dispute must be awaiting response and past the follow-up interval;
// otherwise nothing happens and Outcome.Changed is false. The escalation
// level only increases when send succeeds. As in Dispatch, only send is
// bound to ctx.
func (s *Service) SendFollowUp(ctx context.Context, id uuid.UUID, send FollowUpSender) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	var (
		out    Outcome
		dir    escalation.Directive
		mailed bool
	)

	lockCtx, cancel := detach(ctx)
	defer cancel()

	err := s.runLocked(lockCtx, id, func(txCtx context.Context) error {
		d, err := s.disputes.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("lock dispute: %w", err)
		}

		hasResponse, err := s.documents.HasBureauResponse(txCtx, d.ID)
		if err != nil {
			return fmt.Errorf("check bureau response: %w", err)
		}
		now := s.now()
		if !domain.IsAwaitingResponse(*d, hasResponse, now) || !d.FollowUpDue(now, s.cfg.FollowUpInterval) {
			out = Outcome{Dispute: *d}
			return nil
		}

		dir = escalation.Decide(d.EscalationLevel)
		mailed = true
		if err := send(ctx, *d, dir); err != nil {
			return fmt.Errorf("send follow-up: %w", err)
		}

		d.EscalationLevel++
		d.FollowUpSent++
		d.LastFollowUpAt = &now
		d.UpdatedAt = now

		if err := s.disputes.Update(txCtx, *d); err != nil {
			return fmt.Errorf("update dispute: %w", err)
		}
		if err := s.record(txCtx, *d, domain.HistoryActionFollowUpSent, statusRef(d.Status), domain.FollowUpSentNote, now); err != nil {
			return fmt.Errorf("append history: %w", err)
		}

		out = Outcome{Dispute: *d, Changed: true}
		return nil
	}, func() bool { return !mailed })
	if err != nil {
		return Outcome{}, err
	}

	if out.Changed {
		s.log.InfoContext(ctx, "follow-up sent",
			slog.String("dispute_id", id.String()),
			slog.String("tier", dir.Tier.String()),
			slog.Int("escalation_level", out.Dispute.EscalationLevel),
		)
	}
	return out, nil
}
