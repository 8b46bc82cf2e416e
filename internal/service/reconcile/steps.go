package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/credit-disputer/internal/domain"
	"github.com/heartmarshall/credit-disputer/internal/service/escalation"
)

type result int

const (
	resultSucceeded result = iota
	resultSkipped
	resultFailed
)

// tally collects per-dispute results from concurrent workers.
type tally struct {
	mu  sync.Mutex
	sum StepSummary
}

func (t *tally) add(id uuid.UUID, res result, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch res {
	case resultSucceeded:
		t.sum.Succeeded++
	case resultSkipped:
		t.sum.Skipped++
	case resultFailed:
		t.sum.Failed++
		reason := "unknown error"
		if err != nil {
			reason = err.Error()
		}
		t.sum.Failures = append(t.sum.Failures, Failure{DisputeID: id, Reason: reason})
	}
}

func (t *tally) skip(n int) {
	t.mu.Lock()
	t.sum.Skipped += n
	t.mu.Unlock()
}

// process runs fn for every dispute with at most cfg.Workers in flight. Each
// dispute gets a context detached from ctx and bounded by the item timeout,
// so a stop request never interrupts a dispute halfway.
func (s *Service) process(ctx context.Context, step Step, items []domain.Dispute, fn func(ctx context.Context, d domain.Dispute) (result, error)) StepSummary {
	t := &tally{sum: StepSummary{Step: step}}

	var g errgroup.Group
	g.SetLimit(s.workers())

	for i, d := range items {
		if ctx.Err() != nil {
			t.skip(len(items) - i)
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				t.skip(1)
				return nil
			}
			itemCtx, cancel := s.itemContext(ctx)
			defer cancel()

			res, err := fn(itemCtx, d)
			t.add(d.ID, res, err)
			return nil
		})
	}
	_ = g.Wait()

	return t.sum
}

// walk pages through the disputes matching f, oldest first, and processes
// each page before listing the next. Disputes left unchanged by fn stay
// behind the cursor, so they cannot crowd newer ones out of a run. keep,
// when set, drops listed disputes before processing.
func (s *Service) walk(ctx context.Context, step Step, f domain.DisputeFilter, keep func(d domain.Dispute) bool, fn func(ctx context.Context, d domain.Dispute) (result, error)) StepSummary {
	sum := StepSummary{Step: step}
	f.Limit = s.batchLimit()

	for ctx.Err() == nil {
		page, err := s.disputes.List(ctx, f)
		if err != nil {
			sum.Err = fmt.Errorf("list %s disputes: %w", step, err)
			break
		}

		items := page
		if keep != nil {
			items = make([]domain.Dispute, 0, len(page))
			for _, d := range page {
				if keep(d) {
					items = append(items, d)
				}
			}
		}
		sum.merge(s.process(ctx, step, items, fn))

		if len(page) < f.Limit {
			break
		}
		f.After = domain.CursorOf(page[len(page)-1])
	}
	return sum
}

func (sum *StepSummary) merge(o StepSummary) {
	sum.Succeeded += o.Succeeded
	sum.Skipped += o.Skipped
	sum.Failed += o.Failed
	sum.Failures = append(sum.Failures, o.Failures...)
}

func (s *Service) itemContext(ctx context.Context) (context.Context, context.CancelFunc) {
	detached := context.WithoutCancel(ctx)
	if s.cfg.ItemTimeout <= 0 {
		return context.WithCancel(detached)
	}
	return context.WithTimeout(detached, s.cfg.ItemTimeout)
}

// ---------------------------------------------------------------------------
// send: pending disputes without a sent date
// ---------------------------------------------------------------------------

func (s *Service) sendStep(ctx context.Context) StepSummary {
	return s.walk(ctx, StepSend, domain.DisputeFilter{
		Statuses: []domain.DisputeStatus{domain.DisputeStatusPending},
	}, func(d domain.Dispute) bool { return d.SentDate == nil }, s.sendOne)
}

func (s *Service) sendOne(ctx context.Context, d domain.Dispute) (result, error) {
	out, err := s.lifecycle.Dispatch(ctx, d.ID, s.mailDispute)
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return resultSkipped, nil
	case err != nil:
		if out.Changed {
			s.notifyOwner(ctx, domain.NotificationMailFailed, out.Dispute, "")
		}
		return resultFailed, err
	}
	return resultSucceeded, nil
}

// ---------------------------------------------------------------------------
// poll: mailed disputes still moving through the carrier
// ---------------------------------------------------------------------------

func (s *Service) pollStep(ctx context.Context) StepSummary {
	return s.walk(ctx, StepPoll, domain.DisputeFilter{
		Statuses: []domain.DisputeStatus{domain.DisputeStatusSent, domain.DisputeStatusInTransit},
	}, nil, s.pollOne)
}

func (s *Service) pollOne(ctx context.Context, d domain.Dispute) (result, error) {
	if !domain.ValidTrackingID(d.TrackingID) {
		return s.markInvalid(ctx, d)
	}

	cs, err := s.mail.PollStatus(ctx, strings.TrimSpace(*d.TrackingID))
	if errors.Is(err, domain.ErrUnknownTrackingID) {
		return s.markInvalid(ctx, d)
	}
	if err != nil {
		return resultFailed, fmt.Errorf("poll carrier: %w", err)
	}

	out, err := s.lifecycle.ApplyCarrierStatus(ctx, d.ID, cs)
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return resultSkipped, nil
	case err != nil:
		return resultFailed, err
	case !out.Changed:
		return resultSkipped, nil
	}

	if out.Dispute.Status == domain.DisputeStatusFailed {
		s.notifyOwner(ctx, domain.NotificationMailFailed, out.Dispute, "")
	}
	return resultSucceeded, nil
}

func (s *Service) markInvalid(ctx context.Context, d domain.Dispute) (result, error) {
	out, err := s.lifecycle.MarkInvalidTracking(ctx, d.ID)
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return resultSkipped, nil
	case err != nil:
		return resultFailed, err
	case !out.Changed:
		return resultSkipped, nil
	}
	s.notifyOwner(ctx, domain.NotificationInvalidTracking, out.Dispute, "")
	return resultSucceeded, nil
}

// ---------------------------------------------------------------------------
// escalate: overdue disputes due for a follow-up
// ---------------------------------------------------------------------------

func (s *Service) escalateStep(ctx context.Context) StepSummary {
	now := s.now()
	dueBefore := now.Add(-s.followUpEvery)
	return s.walk(ctx, StepEscalate, domain.DisputeFilter{
		AwaitingAt:        &now,
		FollowUpDueBefore: &dueBefore,
	}, nil, s.escalateOne)
}

func (s *Service) escalateOne(ctx context.Context, d domain.Dispute) (result, error) {
	out, err := s.lifecycle.SendFollowUp(ctx, d.ID, s.mailFollowUp)
	if err != nil {
		return resultFailed, err
	}
	if !out.Changed {
		return resultSkipped, nil
	}

	tier := escalation.Decide(out.Dispute.EscalationLevel - 1).Tier
	s.notifyOwner(ctx, domain.NotificationFollowUpSent, out.Dispute, tier.String())
	return resultSucceeded, nil
}
