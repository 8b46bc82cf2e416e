package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/domain"
	"github.com/heartmarshall/credit-disputer/pkg/ctxutil"
)

// CreateDispute opens a pending dispute for the caller. A linked account
// must belong to the caller and moves to disputed.
func (s *Service) CreateDispute(ctx context.Context, input CreateDisputeInput) (*domain.Dispute, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	d := domain.Dispute{
		ID:            uuid.New(),
		OwnerID:       userID,
		AccountID:     input.AccountID,
		CreditorName:  strings.TrimSpace(input.CreditorName),
		AccountNumber: strings.TrimSpace(input.AccountNumber),
		Description:   strings.TrimSpace(input.Description),
		Status:        domain.DisputeStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if b, ok := domain.ParseBureau(input.Bureau); ok {
		d.Bureau = b
	}

	var created domain.Dispute
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if d.AccountID != nil {
			acc, err := s.accounts.GetByID(ctx, *d.AccountID)
			if err != nil {
				return fmt.Errorf("get account: %w", err)
			}
			if acc.OwnerID != userID {
				return fmt.Errorf("account %s: %w", acc.ID, domain.ErrNotFound)
			}
			fillFromAccount(&d, acc)

			if acc.Status == domain.AccountStatusPending {
				if err := s.accounts.UpdateStatus(ctx, acc.ID, domain.AccountStatusDisputed, now); err != nil {
					return fmt.Errorf("mark account disputed: %w", err)
				}
			}
		}

		var err error
		created, err = s.disputes.Create(ctx, d)
		if err != nil {
			return fmt.Errorf("create dispute: %w", err)
		}
		return s.record(ctx, created, domain.HistoryActionCreated, nil, "", now)
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "dispute created",
		slog.String("user_id", userID.String()),
		slog.String("dispute_id", created.ID.String()),
		slog.String("bureau", created.Bureau.String()),
	)

	return &created, nil
}

func fillFromAccount(d *domain.Dispute, acc *domain.Account) {
	if d.Bureau == "" {
		d.Bureau = acc.Bureau
	}
	if d.CreditorName == "" {
		d.CreditorName = acc.CreditorName
	}
	if d.AccountNumber == "" {
		d.AccountNumber = acc.AccountNumber
	}
	if d.Description == "" {
		d.Description = acc.Reason
	}
}
