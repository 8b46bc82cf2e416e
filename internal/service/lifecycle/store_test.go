package lifecycle

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/config"
	"github.com/heartmarshall/credit-disputer/internal/domain"
)

// memStore backs the repo mocks with maps so tests can assert on the
// resulting state. RunInTx snapshots it and restores on error.
type memStore struct {
	mu        sync.Mutex
	disputes  map[uuid.UUID]domain.Dispute
	accounts  map[uuid.UUID]domain.Account
	history   []domain.HistoryEntry
	responses map[uuid.UUID]bool

	disputeMock  *disputeRepoMock
	historyMock  *historyRepoMock
	accountMock  *accountRepoMock
	documentMock *documentRepoMock
	txMock       *txManagerMock
}

func newMemStore() *memStore {
	st := &memStore{
		disputes:  make(map[uuid.UUID]domain.Dispute),
		accounts:  make(map[uuid.UUID]domain.Account),
		responses: make(map[uuid.UUID]bool),
	}

	get := func(_ context.Context, id uuid.UUID) (*domain.Dispute, error) {
		st.mu.Lock()
		defer st.mu.Unlock()
		d, ok := st.disputes[id]
		if !ok {
			return nil, fmt.Errorf("dispute %s: %w", id, domain.ErrNotFound)
		}
		return &d, nil
	}

	st.disputeMock = &disputeRepoMock{
		GetByIDFunc:          get,
		GetByIDForUpdateFunc: get,
		ListFunc: func(_ context.Context, f domain.DisputeFilter) ([]domain.Dispute, error) {
			st.mu.Lock()
			defer st.mu.Unlock()
			var out []domain.Dispute
			for _, d := range st.disputes {
				if f.OwnerID != nil && d.OwnerID != *f.OwnerID {
					continue
				}
				if len(f.Statuses) > 0 && !containsStatus(f.Statuses, d.Status) {
					continue
				}
				out = append(out, d)
			}
			sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
			return out, nil
		},
		ListAwaitingResponseFunc: func(_ context.Context, ownerID *uuid.UUID, now time.Time, limit int) ([]domain.Dispute, error) {
			st.mu.Lock()
			defer st.mu.Unlock()
			var out []domain.Dispute
			for _, d := range st.disputes {
				if ownerID != nil && d.OwnerID != *ownerID {
					continue
				}
				if domain.IsAwaitingResponse(d, st.responses[d.ID], now) {
					out = append(out, d)
				}
			}
			return out, nil
		},
		CreateFunc: func(_ context.Context, d domain.Dispute) (domain.Dispute, error) {
			st.mu.Lock()
			defer st.mu.Unlock()
			st.disputes[d.ID] = d
			return d, nil
		},
		UpdateFunc: func(_ context.Context, d domain.Dispute) error {
			st.mu.Lock()
			defer st.mu.Unlock()
			if _, ok := st.disputes[d.ID]; !ok {
				return domain.ErrNotFound
			}
			st.disputes[d.ID] = d
			return nil
		},
	}

	st.historyMock = &historyRepoMock{
		AppendFunc: func(_ context.Context, e domain.HistoryEntry) error {
			st.mu.Lock()
			defer st.mu.Unlock()
			st.history = append(st.history, e)
			return nil
		},
		ListByDisputeFunc: func(_ context.Context, disputeID uuid.UUID) ([]domain.HistoryEntry, error) {
			return st.historyOf(disputeID), nil
		},
	}

	st.accountMock = &accountRepoMock{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Account, error) {
			st.mu.Lock()
			defer st.mu.Unlock()
			a, ok := st.accounts[id]
			if !ok {
				return nil, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
			}
			return &a, nil
		},
		UpdateStatusFunc: func(_ context.Context, id uuid.UUID, status domain.AccountStatus, at time.Time) error {
			st.mu.Lock()
			defer st.mu.Unlock()
			a, ok := st.accounts[id]
			if !ok {
				return domain.ErrNotFound
			}
			a.Status = status
			a.UpdatedAt = at
			st.accounts[id] = a
			return nil
		},
	}

	st.documentMock = &documentRepoMock{
		HasBureauResponseFunc: func(_ context.Context, disputeID uuid.UUID) (bool, error) {
			st.mu.Lock()
			defer st.mu.Unlock()
			return st.responses[disputeID], nil
		},
	}

	st.txMock = &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			snap := st.snapshot()
			if err := fn(ctx); err != nil {
				st.restore(snap)
				return err
			}
			return nil
		},
	}

	return st
}

type memSnapshot struct {
	disputes map[uuid.UUID]domain.Dispute
	accounts map[uuid.UUID]domain.Account
	history  []domain.HistoryEntry
}

func (st *memStore) snapshot() memSnapshot {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := memSnapshot{
		disputes: make(map[uuid.UUID]domain.Dispute, len(st.disputes)),
		accounts: make(map[uuid.UUID]domain.Account, len(st.accounts)),
		history:  append([]domain.HistoryEntry(nil), st.history...),
	}
	for k, v := range st.disputes {
		s.disputes[k] = v
	}
	for k, v := range st.accounts {
		s.accounts[k] = v
	}
	return s
}

func (st *memStore) restore(s memSnapshot) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.disputes = s.disputes
	st.accounts = s.accounts
	st.history = s.history
}

func (st *memStore) dispute(t *testing.T, id uuid.UUID) domain.Dispute {
	t.Helper()
	st.mu.Lock()
	defer st.mu.Unlock()
	d, ok := st.disputes[id]
	if !ok {
		t.Fatalf("dispute %s not in store", id)
	}
	return d
}

func (st *memStore) historyOf(id uuid.UUID) []domain.HistoryEntry {
	st.mu.Lock()
	defer st.mu.Unlock()
	var out []domain.HistoryEntry
	for _, e := range st.history {
		if e.DisputeID == id {
			out = append(out, e)
		}
	}
	return out
}

func (st *memStore) put(d domain.Dispute) domain.Dispute {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.disputes[d.ID] = d
	return d
}

func (st *memStore) putAccount(a domain.Account) domain.Account {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.accounts[a.ID] = a
	return a
}

func (st *memStore) attachBureauResponse(id uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.responses[id] = true
}

func containsStatus(ss []domain.DisputeStatus, s domain.DisputeStatus) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Service construction
// ---------------------------------------------------------------------------

var day0 = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

// clock is a settable time source for the service.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func newTestService(t *testing.T, st *memStore, now *clock) *Service {
	t.Helper()
	return &Service{
		disputes:  st.disputeMock,
		history:   st.historyMock,
		accounts:  st.accountMock,
		documents: st.documentMock,
		tx:        st.txMock,
		cfg: config.LifecycleConfig{
			FollowUpInterval: 15 * 24 * time.Hour,
			ConflictBackoff:  time.Millisecond,
		},
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now: now.Now,
	}
}

func pendingDispute(ownerID uuid.UUID) domain.Dispute {
	return domain.Dispute{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Bureau:        domain.BureauExperian,
		CreditorName:  "Capital One",
		AccountNumber: "XXXX1234",
		Description:   "Not my account",
		Status:        domain.DisputeStatusPending,
		CreatedAt:     day0.Add(-time.Hour),
		UpdatedAt:     day0.Add(-time.Hour),
	}
}

func mailedDispute(ownerID uuid.UUID, status domain.DisputeStatus, sentAt time.Time) domain.Dispute {
	d := pendingDispute(ownerID)
	expected := domain.ComputeDeadline(sentAt)
	tracking := "ltr_4868c3b754655f90"
	d.Status = status
	d.SentDate = &sentAt
	d.ExpectedResponseDate = &expected
	d.TrackingID = &tracking
	return d
}
