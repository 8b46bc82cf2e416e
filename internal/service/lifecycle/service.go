// Package lifecycle owns every dispute mutation. Each operation locks the
// dispute row, checks the transition against the domain state machine, and
// writes the new state together with its history entry in one transaction.
package lifecycle

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/config"
	"github.com/heartmarshall/credit-disputer/internal/domain"
	"github.com/heartmarshall/credit-disputer/internal/service/escalation"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type disputeRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Dispute, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Dispute, error)
	List(ctx context.Context, f domain.DisputeFilter) ([]domain.Dispute, error)
	ListAwaitingResponse(ctx context.Context, ownerID *uuid.UUID, now time.Time, limit int) ([]domain.Dispute, error)
	Create(ctx context.Context, d domain.Dispute) (domain.Dispute, error)
	Update(ctx context.Context, d domain.Dispute) error
}

type historyRepo interface {
	Append(ctx context.Context, e domain.HistoryEntry) error
	ListByDispute(ctx context.Context, disputeID uuid.UUID) ([]domain.HistoryEntry, error)
}

type accountRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus, at time.Time) error
}

type documentRepo interface {
	HasBureauResponse(ctx context.Context, disputeID uuid.UUID) (bool, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Collaborator callbacks
// ---------------------------------------------------------------------------

// Sender mails the initial letter for d and returns the carrier tracking id.
// An error wrapping domain.ErrDataIntegrity leaves the dispute untouched;
// any other error is recorded as a failed mailing.
type Sender func(ctx context.Context, d domain.Dispute) (string, error)

// FollowUpSender mails an escalation letter for d. It is called with the row
// locked; the escalation is only recorded when it returns nil.
type FollowUpSender func(ctx context.Context, d domain.Dispute, dir escalation.Directive) error

// Outcome reports the effect of a pipeline step on one dispute.
type Outcome struct {
	Dispute domain.Dispute
	Changed bool
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the dispute state machine.
type Service struct {
	disputes  disputeRepo
	history   historyRepo
	accounts  accountRepo
	documents documentRepo
	tx        txManager
	cfg       config.LifecycleConfig
	log       *slog.Logger
	now       func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces the wall clock used for deadlines and history.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new lifecycle service.
func NewService(
	log *slog.Logger,
	cfg config.LifecycleConfig,
	disputes disputeRepo,
	history historyRepo,
	accounts accountRepo,
	documents documentRepo,
	tx txManager,
	opts ...Option,
) *Service {
	s := &Service{
		disputes:  disputes,
		history:   history,
		accounts:  accounts,
		documents: documents,
		tx:        tx,
		cfg:       cfg,
		log:       log.With("service", "lifecycle"),
		now:       func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// record appends a history entry for a transition of d.
func (s *Service) record(ctx context.Context, d domain.Dispute, action domain.HistoryAction, from *domain.DisputeStatus, note string, at time.Time) error {
	e := domain.HistoryEntry{
		ID:        uuid.New(),
		DisputeID: d.ID,
		Action:    action,
		OldStatus: from,
		CreatedAt: at,
	}
	to := d.Status
	e.NewStatus = &to
	if note != "" {
		e.Notes = &note
	}
	return s.history.Append(ctx, e)
}

func statusRef(s domain.DisputeStatus) *domain.DisputeStatus { return &s }
