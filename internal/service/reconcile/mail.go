package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/credit-disputer/internal/domain"
	"github.com/heartmarshall/credit-disputer/internal/service/escalation"
	"github.com/heartmarshall/credit-disputer/internal/service/letter"
)

const maxDescriptionLen = 255

// letterFacts loads what a letter needs beyond the dispute row. Missing
// owners, accounts or addresses are data integrity problems.
func (s *Service) letterFacts(ctx context.Context, d domain.Dispute) (domain.DisputeFacts, error) {
	owner, err := s.users.GetByID(ctx, d.OwnerID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DisputeFacts{}, fmt.Errorf("owner %s missing: %w", d.OwnerID, domain.ErrDataIntegrity)
	}
	if err != nil {
		return domain.DisputeFacts{}, fmt.Errorf("load owner: %w", err)
	}

	from := owner.ReturnAddress()
	if !from.IsComplete() {
		return domain.DisputeFacts{}, fmt.Errorf("owner %s has no mailing address: %w", d.OwnerID, domain.ErrDataIntegrity)
	}

	var acc *domain.Account
	if d.AccountID != nil {
		acc, err = s.accounts.GetByID(ctx, *d.AccountID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.DisputeFacts{}, fmt.Errorf("account %s missing: %w", *d.AccountID, domain.ErrDataIntegrity)
		}
		if err != nil {
			return domain.DisputeFacts{}, fmt.Errorf("load account: %w", err)
		}
	}

	facts := d.Facts(acc)
	facts.Sender = from
	return facts, nil
}

func bureauAddress(d domain.Dispute) (domain.MailingAddress, error) {
	to, ok := domain.BureauMailingAddress(d.Bureau)
	if !ok {
		return domain.MailingAddress{}, fmt.Errorf("no mailing address for bureau %q: %w", d.Bureau, domain.ErrDataIntegrity)
	}
	return to, nil
}

func description(d domain.Dispute, kind string) string {
	desc := fmt.Sprintf("%s %s - %s", d.Bureau, kind, d.CreditorName)
	if len(desc) > maxDescriptionLen {
		desc = desc[:maxDescriptionLen]
	}
	return desc
}

// PreviewLetter renders the initial letter for d with the same facts a send
// would use. Nothing is mailed or recorded.
func (s *Service) PreviewLetter(ctx context.Context, d domain.Dispute) (letter.Letter, error) {
	facts, err := s.letterFacts(ctx, d)
	if err != nil {
		return letter.Letter{}, err
	}
	return s.letters.Generate(ctx, facts), nil
}

// mailDispute is the lifecycle.Sender for the initial letter.
func (s *Service) mailDispute(ctx context.Context, d domain.Dispute) (string, error) {
	to, err := bureauAddress(d)
	if err != nil {
		return "", err
	}
	facts, err := s.letterFacts(ctx, d)
	if err != nil {
		return "", err
	}

	l := s.letters.Generate(ctx, facts)
	s.log.DebugContext(ctx, "dispute letter generated",
		slog.String("dispute_id", d.ID.String()),
		slog.String("source", string(l.Source)),
	)

	return s.mail.Send(ctx, domain.MailRequest{
		To:             to,
		From:           facts.Sender,
		Description:    description(d, "dispute"),
		Body:           l.Body,
		IdempotencyKey: d.ID.String() + ":dispute",
	})
}

// mailFollowUp is the lifecycle.FollowUpSender for escalation letters.
func (s *Service) mailFollowUp(ctx context.Context, d domain.Dispute, dir escalation.Directive) error {
	to, err := bureauAddress(d)
	if err != nil {
		return err
	}
	facts, err := s.letterFacts(ctx, d)
	if err != nil {
		return err
	}

	l := s.letters.GenerateFollowUp(ctx, facts, dir, d.DaysSinceSent(s.now()))

	trackingID, err := s.mail.Send(ctx, domain.MailRequest{
		To:             to,
		From:           facts.Sender,
		Description:    description(d, "follow-up #"+fmt.Sprint(dir.FollowUpNumber)),
		Body:           l.Body,
		IdempotencyKey: fmt.Sprintf("%s:follow-up:%d", d.ID, dir.FollowUpNumber),
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "follow-up mailed",
		slog.String("dispute_id", d.ID.String()),
		slog.String("tier", dir.Tier.String()),
		slog.String("tracking_id", trackingID),
		slog.String("source", string(l.Source)),
	)
	return nil
}

// notifyOwner tells the owner about a change made by the job. Delivery
// failures are logged only. The notification may go out after the item
// deadline; the notifier's own timeout bounds it.
func (s *Service) notifyOwner(ctx context.Context, typ domain.NotificationType, d domain.Dispute, tier string) {
	if s.notify == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	n := domain.Notification{
		Type:          typ,
		DisputeID:     d.ID,
		Bureau:        d.Bureau,
		CreditorName:  d.CreditorName,
		AccountNumber: d.AccountNumber,
		Status:        d.Status,
		SentDate:      d.SentDate,
		DaysWaiting:   d.DaysSinceSent(s.now()),
		Tier:          tier,
		OccurredAt:    s.now(),
	}
	if owner, err := s.users.GetByID(ctx, d.OwnerID); err == nil {
		n.UserEmail = owner.Email
		n.UserName = owner.FullName
	}

	if err := s.notify.Notify(ctx, n); err != nil {
		s.log.WarnContext(ctx, "notification failed",
			slog.String("dispute_id", d.ID.String()),
			slog.String("type", string(typ)),
			slog.String("error", err.Error()),
		)
	}
}
