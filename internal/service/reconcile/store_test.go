package reconcile

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/domain"
)

// memDB is an in-memory stand-in for the postgres adapters. Its tables
// satisfy the lifecycle repositories, so the real lifecycle service runs on
// top of it. Transactions are serialized and roll back on error.
type memDB struct {
	mu        sync.Mutex
	txMu      sync.Mutex
	disputes  map[uuid.UUID]domain.Dispute
	users     map[uuid.UUID]domain.User
	accounts  map[uuid.UUID]domain.Account
	history   []domain.HistoryEntry
	responses map[uuid.UUID]bool
}

func newMemDB() *memDB {
	return &memDB{
		disputes:  make(map[uuid.UUID]domain.Dispute),
		users:     make(map[uuid.UUID]domain.User),
		accounts:  make(map[uuid.UUID]domain.Account),
		responses: make(map[uuid.UUID]bool),
	}
}

// list mirrors the repo's filter semantics and oldest-first order.
func (db *memDB) list(f domain.DisputeFilter) []domain.Dispute {
	db.mu.Lock()
	defer db.mu.Unlock()

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}

	var out []domain.Dispute
	for _, d := range db.disputes {
		if f.OwnerID != nil && d.OwnerID != *f.OwnerID {
			continue
		}
		if f.AccountID != nil && (d.AccountID == nil || *d.AccountID != *f.AccountID) {
			continue
		}
		if len(f.Statuses) > 0 && !hasStatus(f.Statuses, d.Status) {
			continue
		}
		if f.RequireTrackingID && d.TrackingID == nil {
			continue
		}
		if f.AwaitingAt != nil && !domain.IsAwaitingResponse(d, db.responses[d.ID], *f.AwaitingAt) {
			continue
		}
		if f.FollowUpDueBefore != nil && d.LastFollowUpAt != nil && d.LastFollowUpAt.After(*f.FollowUpDueBefore) {
			continue
		}
		if f.After != nil && !afterCursor(d, *f.After) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return afterCursor(out[j], *domain.CursorOf(out[i])) })

	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil
		}
		out = out[f.Offset:]
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func afterCursor(d domain.Dispute, c domain.DisputeCursor) bool {
	if !d.CreatedAt.Equal(c.CreatedAt) {
		return d.CreatedAt.After(c.CreatedAt)
	}
	return bytes.Compare(d.ID[:], c.ID[:]) > 0
}

func hasStatus(ss []domain.DisputeStatus, s domain.DisputeStatus) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func (db *memDB) user(id uuid.UUID) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return &u, nil
}

func (db *memDB) historyOf(id uuid.UUID) []domain.HistoryEntry {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []domain.HistoryEntry
	for _, e := range db.history {
		if e.DisputeID == id {
			out = append(out, e)
		}
	}
	return out
}

func (db *memDB) historyLen() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.history)
}

func (db *memDB) attachBureauResponse(id uuid.UUID) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.responses[id] = true
}

// ---------------------------------------------------------------------------
// Tables
// ---------------------------------------------------------------------------

type disputeTable struct{ db *memDB }

func (t disputeTable) GetByID(_ context.Context, id uuid.UUID) (*domain.Dispute, error) {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	d, ok := t.db.disputes[id]
	if !ok {
		return nil, fmt.Errorf("dispute %s: %w", id, domain.ErrNotFound)
	}
	return &d, nil
}

func (t disputeTable) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Dispute, error) {
	return t.GetByID(ctx, id)
}

func (t disputeTable) List(_ context.Context, f domain.DisputeFilter) ([]domain.Dispute, error) {
	return t.db.list(f), nil
}

func (t disputeTable) ListAwaitingResponse(_ context.Context, ownerID *uuid.UUID, now time.Time, limit int) ([]domain.Dispute, error) {
	return t.db.list(domain.DisputeFilter{OwnerID: ownerID, AwaitingAt: &now, Limit: limit}), nil
}

func (t disputeTable) Create(_ context.Context, d domain.Dispute) (domain.Dispute, error) {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	t.db.disputes[d.ID] = d
	return d, nil
}

func (t disputeTable) Update(ctx context.Context, d domain.Dispute) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	if _, ok := t.db.disputes[d.ID]; !ok {
		return fmt.Errorf("dispute %s: %w", d.ID, domain.ErrNotFound)
	}
	t.db.disputes[d.ID] = d
	return nil
}

type historyTable struct{ db *memDB }

func (t historyTable) Append(ctx context.Context, e domain.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	t.db.history = append(t.db.history, e)
	return nil
}

func (t historyTable) ListByDispute(_ context.Context, disputeID uuid.UUID) ([]domain.HistoryEntry, error) {
	return t.db.historyOf(disputeID), nil
}

type accountTable struct{ db *memDB }

func (t accountTable) GetByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	a, ok := t.db.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	return &a, nil
}

func (t accountTable) UpdateStatus(_ context.Context, id uuid.UUID, status domain.AccountStatus, at time.Time) error {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	a, ok := t.db.accounts[id]
	if !ok {
		return fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	a.Status = status
	a.UpdatedAt = at
	t.db.accounts[id] = a
	return nil
}

type documentTable struct{ db *memDB }

func (t documentTable) HasBureauResponse(_ context.Context, disputeID uuid.UUID) (bool, error) {
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	return t.db.responses[disputeID], nil
}

// memTx runs one transaction at a time. A commit on a finished context
// fails like it does against postgres.
type memTx struct{ db *memDB }

func (t memTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.db.txMu.Lock()
	defer t.db.txMu.Unlock()

	snap := t.db.snapshot()
	err := fn(ctx)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		t.db.restore(snap)
	}
	return err
}

type memSnapshot struct {
	disputes map[uuid.UUID]domain.Dispute
	accounts map[uuid.UUID]domain.Account
	history  []domain.HistoryEntry
}

func (db *memDB) snapshot() memSnapshot {
	db.mu.Lock()
	defer db.mu.Unlock()
	s := memSnapshot{
		disputes: make(map[uuid.UUID]domain.Dispute, len(db.disputes)),
		accounts: make(map[uuid.UUID]domain.Account, len(db.accounts)),
		history:  append([]domain.HistoryEntry(nil), db.history...),
	}
	for k, v := range db.disputes {
		s.disputes[k] = v
	}
	for k, v := range db.accounts {
		s.accounts[k] = v
	}
	return s
}

func (db *memDB) restore(s memSnapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.disputes = s.disputes
	db.accounts = s.accounts
	db.history = s.history
}
