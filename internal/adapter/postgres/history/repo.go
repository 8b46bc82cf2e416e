// Package history implements the append-only dispute history log using
// PostgreSQL. Rows are never updated; ordering follows insertion.
package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/credit-disputer/internal/adapter/postgres"
	"github.com/heartmarshall/credit-disputer/internal/domain"
)

// Repo provides dispute history persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new history repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const appendSQL = `
INSERT INTO dispute_history (id, dispute_id, action, old_status, new_status, notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

// Append inserts a history entry. Call it in the same transaction as the
// dispute update it records.
func (r *Repo) Append(ctx context.Context, e domain.HistoryEntry) error {
	if !e.Action.IsValid() {
		return fmt.Errorf("dispute_history: unknown action %q: %w", e.Action, domain.ErrValidation)
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	_, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, appendSQL,
		e.ID, e.DisputeID, string(e.Action), statusPtr(e.OldStatus), statusPtr(e.NewStatus), e.Notes, e.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "dispute_history", e.DisputeID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const listByDisputeSQL = `
SELECT id, dispute_id, action, old_status, new_status, notes, created_at
FROM dispute_history
WHERE dispute_id = $1
ORDER BY seq ASC`

// ListByDispute returns the history of a dispute in insertion order.
func (r *Repo) ListByDispute(ctx context.Context, disputeID uuid.UUID) ([]domain.HistoryEntry, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, listByDisputeSQL, disputeID)
	if err != nil {
		return nil, fmt.Errorf("list dispute_history: %w", err)
	}
	defer rows.Close()

	var out []domain.HistoryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dispute_history: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list dispute_history: %w", err)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func scanEntry(row pgx.Row) (domain.HistoryEntry, error) {
	var (
		e            domain.HistoryEntry
		action       string
		oldSt, newSt *string
	)
	if err := row.Scan(&e.ID, &e.DisputeID, &action, &oldSt, &newSt, &e.Notes, &e.CreatedAt); err != nil {
		return domain.HistoryEntry{}, err
	}
	e.Action = domain.HistoryAction(action)
	e.OldStatus = toStatus(oldSt)
	e.NewStatus = toStatus(newSt)
	return e, nil
}

func statusPtr(s *domain.DisputeStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func toStatus(s *string) *domain.DisputeStatus {
	if s == nil {
		return nil
	}
	st := domain.DisputeStatus(*s)
	return &st
}
