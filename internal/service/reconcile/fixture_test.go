package reconcile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/config"
	"github.com/heartmarshall/credit-disputer/internal/domain"
	"github.com/heartmarshall/credit-disputer/internal/service/escalation"
	"github.com/heartmarshall/credit-disputer/internal/service/letter"
	"github.com/heartmarshall/credit-disputer/internal/service/lifecycle"
)

var day0 = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

const followUpInterval = 15 * 24 * time.Hour

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixture runs the real lifecycle service over a memDB. The lifecycle mock
// forwards to it so tests can observe or intercept individual calls.
type fixture struct {
	db  *memDB
	now time.Time
	lc  *lifecycle.Service

	sentMu sync.Mutex
	sent   int

	disputeMock   *disputeReaderMock
	userMock      *userReaderMock
	accountMock   *accountReaderMock
	lifecycleMock *lifecycleServiceMock
	letterMock    *letterServiceMock
	mailMock      *mailServiceMock
	notifierMock  *notifierMock
}

func newFixture() *fixture {
	f := &fixture{db: newMemDB(), now: day0}

	f.lc = lifecycle.NewService(discardLogger(),
		config.LifecycleConfig{FollowUpInterval: followUpInterval, ConflictBackoff: time.Millisecond},
		disputeTable{f.db}, historyTable{f.db}, accountTable{f.db}, documentTable{f.db}, memTx{f.db},
		lifecycle.WithClock(f.clock),
	)

	f.disputeMock = &disputeReaderMock{
		ListFunc: disputeTable{f.db}.List,
	}
	f.userMock = &userReaderMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) { return f.db.user(id) },
	}
	f.accountMock = &accountReaderMock{
		GetByIDFunc: accountTable{f.db}.GetByID,
	}
	f.lifecycleMock = &lifecycleServiceMock{
		DispatchFunc:            f.lc.Dispatch,
		ApplyCarrierStatusFunc:  f.lc.ApplyCarrierStatus,
		MarkInvalidTrackingFunc: f.lc.MarkInvalidTracking,
		SendFollowUpFunc:        f.lc.SendFollowUp,
	}
	f.letterMock = &letterServiceMock{
		GenerateFunc: func(ctx context.Context, facts domain.DisputeFacts) letter.Letter {
			return letter.Letter{Body: "Dispute: " + facts.CreditorName, Source: letter.SourceTemplate}
		},
		GenerateFollowUpFunc: func(ctx context.Context, facts domain.DisputeFacts, dir escalation.Directive, daysSince int) letter.Letter {
			return letter.Letter{Body: fmt.Sprintf("Follow-up %d after %d days", dir.FollowUpNumber, daysSince), Source: letter.SourceTemplate}
		},
	}
	f.mailMock = &mailServiceMock{
		SendFunc: func(ctx context.Context, req domain.MailRequest) (string, error) {
			f.sentMu.Lock()
			defer f.sentMu.Unlock()
			f.sent++
			return fmt.Sprintf("ltr_%04d", f.sent), nil
		},
		PollStatusFunc: func(ctx context.Context, trackingID string) (domain.CarrierStatus, error) {
			return domain.CarrierStatusUnknown, nil
		},
	}
	f.notifierMock = &notifierMock{
		NotifyFunc: func(ctx context.Context, n domain.Notification) error { return nil },
	}
	return f
}

func (f *fixture) clock() time.Time { return f.now }

func (f *fixture) get(id uuid.UUID) domain.Dispute {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	return f.db.disputes[id]
}

func (f *fixture) put(d domain.Dispute) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.disputes[d.ID] = d
}

func (f *fixture) addUser(withAddress bool) uuid.UUID {
	u := domain.User{ID: uuid.New(), Email: "owner@example.com", FullName: "Jane Doe"}
	if withAddress {
		u.Address = domain.MailingAddress{AddressLine1: "12 Elm St", City: "Austin", State: "TX", ZipCode: "78701"}
	}
	f.db.mu.Lock()
	f.db.users[u.ID] = u
	f.db.mu.Unlock()
	return u.ID
}

func (f *fixture) addAccount(ownerID uuid.UUID) domain.Account {
	a := domain.Account{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Bureau:        domain.BureauEquifax,
		CreditorName:  "Synchrony Bank",
		AccountNumber: "XXXX9876",
		Reason:        "Paid in full, still reported late",
		Status:        domain.AccountStatusPending,
		CreatedAt:     day0.AddDate(0, -1, 0),
	}
	f.db.mu.Lock()
	f.db.accounts[a.ID] = a
	f.db.mu.Unlock()
	return a
}

func (f *fixture) addDispute(ownerID uuid.UUID, status domain.DisputeStatus, mutate func(d *domain.Dispute)) domain.Dispute {
	f.db.mu.Lock()
	n := len(f.db.disputes)
	f.db.mu.Unlock()

	d := domain.Dispute{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Bureau:        domain.BureauExperian,
		CreditorName:  fmt.Sprintf("Creditor %d", n),
		AccountNumber: "XXXX1234",
		Description:   "Not mine",
		Status:        status,
		CreatedAt:     day0.Add(-time.Duration(100-n) * time.Hour),
	}
	if mutate != nil {
		mutate(&d)
	}
	f.put(d)
	return d
}

func mailedAt(sentAt time.Time, tracking string) func(d *domain.Dispute) {
	return func(d *domain.Dispute) {
		expected := domain.ComputeDeadline(sentAt)
		d.SentDate = &sentAt
		d.ExpectedResponseDate = &expected
		if tracking != "" {
			d.TrackingID = &tracking
		}
	}
}

func followedUpAt(at time.Time, level int) func(d *domain.Dispute) {
	return func(d *domain.Dispute) {
		d.LastFollowUpAt = &at
		d.EscalationLevel = level
		d.FollowUpSent = level
	}
}

// newTestService builds the job over the fixture's mocks.
func newTestService(t *testing.T, f *fixture, workers int) *Service {
	t.Helper()
	return newServiceWith(t, f, f.lifecycleMock, workers)
}

func newServiceWith(t *testing.T, f *fixture, lc lifecycleService, workers int) *Service {
	t.Helper()
	svc := NewService(discardLogger(),
		config.ReconcileConfig{
			Workers:     workers,
			BatchLimit:  100,
			ItemTimeout: 5 * time.Second,
			RunTimeout:  time.Minute,
		},
		followUpInterval,
		f.disputeMock, f.userMock, f.accountMock, lc, f.letterMock, f.mailMock, f.notifierMock,
	)
	svc.now = f.clock
	return svc
}
