// Package dispute implements the Dispute repository using PostgreSQL.
// Mutations are expected to run inside a TxManager transaction after the row
// was locked with GetByIDForUpdate.
package dispute

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/credit-disputer/internal/adapter/postgres"
	"github.com/heartmarshall/credit-disputer/internal/domain"
)

// Repo provides dispute persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new dispute repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const disputeColumns = `id, owner_id, account_id, bureau, creditor_name, account_number, description, status,
	sent_date, tracking_id, expected_response_date, follow_up_sent, escalation_level, last_follow_up_at,
	resolution, resolved_at, created_at, updated_at`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getByIDSQL = `SELECT ` + disputeColumns + ` FROM disputes WHERE id = $1`

// GetByID returns a dispute by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dispute, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	d, err := scanDispute(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "dispute", id)
	}
	return &d, nil
}

const getByIDForUpdateSQL = getByIDSQL + ` FOR UPDATE NOWAIT`

// GetByIDForUpdate loads and row-locks a dispute. It must run inside a
// transaction. A row locked by another transaction yields domain.ErrConflict
// immediately instead of waiting.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Dispute, error) {
	if !postgres.InTx(ctx) {
		return nil, fmt.Errorf("dispute %s: lock outside transaction", id)
	}
	q := postgres.QuerierFromCtx(ctx, r.db)

	d, err := scanDispute(q.QueryRow(ctx, getByIDForUpdateSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "dispute", id)
	}
	return &d, nil
}

// List returns disputes matching the filter, oldest first.
func (r *Repo) List(ctx context.Context, df domain.DisputeFilter) ([]domain.Dispute, error) {
	sql, args, err := fromDomain(df).buildList()
	if err != nil {
		return nil, fmt.Errorf("build dispute list query: %w", err)
	}
	return r.query(ctx, "list disputes", sql, args...)
}

// ListAwaitingResponse returns disputes past their response deadline with no
// bureau response on file, across owners when ownerID is nil.
func (r *Repo) ListAwaitingResponse(ctx context.Context, ownerID *uuid.UUID, now time.Time, limit int) ([]domain.Dispute, error) {
	f := Filter{OwnerID: ownerID, Limit: limit}
	f.normalize()

	sql, args, err := f.apply(psql.Select(disputeColumns).From("disputes")).
		Where(awaitingPredicate(now)).
		OrderBy("expected_response_date ASC", "id ASC").
		Limit(uint64(f.Limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build awaiting query: %w", err)
	}
	return r.query(ctx, "list awaiting disputes", sql, args...)
}

// CountByStatus aggregates disputes by status for one owner, or all owners
// when ownerID is nil.
func (r *Repo) CountByStatus(ctx context.Context, ownerID *uuid.UUID) (domain.StatusCounts, error) {
	sql, args, err := Filter{OwnerID: ownerID}.
		apply(psql.Select("status", "count(*)").From("disputes")).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("count disputes by status: %w", err)
	}
	defer rows.Close()

	counts := make(domain.StatusCounts)
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[domain.DisputeStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count disputes by status: %w", err)
	}
	return counts, nil
}

// CountAwaitingResponse counts disputes satisfying the awaiting-response
// predicate at now.
func (r *Repo) CountAwaitingResponse(ctx context.Context, ownerID *uuid.UUID, now time.Time) (int, error) {
	sql, args, err := Filter{OwnerID: ownerID}.
		apply(psql.Select("count(*)").From("disputes")).
		Where(awaitingPredicate(now)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build awaiting count query: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count awaiting disputes: %w", err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO disputes (id, owner_id, account_id, bureau, creditor_name, account_number, description, status,
	follow_up_sent, escalation_level, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, 0, $9, $9)
RETURNING ` + disputeColumns

// Create inserts a new dispute and returns the persisted row.
func (r *Repo) Create(ctx context.Context, d domain.Dispute) (domain.Dispute, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	row := q.QueryRow(ctx, createSQL,
		d.ID, d.OwnerID, d.AccountID, string(d.Bureau), d.CreditorName, d.AccountNumber,
		d.Description, string(d.Status), d.CreatedAt,
	)
	created, err := scanDispute(row)
	if err != nil {
		return domain.Dispute{}, postgres.MapError(err, "dispute", d.ID)
	}
	return created, nil
}

const updateSQL = `
UPDATE disputes SET
	status = $2,
	sent_date = $3,
	tracking_id = $4,
	expected_response_date = $5,
	follow_up_sent = $6,
	escalation_level = $7,
	last_follow_up_at = $8,
	resolution = $9,
	resolved_at = $10,
	updated_at = $11
WHERE id = $1`

// Update writes the mutable lifecycle columns of d.
func (r *Repo) Update(ctx context.Context, d domain.Dispute) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, updateSQL,
		d.ID, string(d.Status), d.SentDate, d.TrackingID, d.ExpectedResponseDate,
		d.FollowUpSent, d.EscalationLevel, d.LastFollowUpAt, d.Resolution, d.ResolvedAt, d.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "dispute", d.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("dispute %s: %w", d.ID, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scan helpers
// ---------------------------------------------------------------------------

func (r *Repo) query(ctx context.Context, op, sql string, args ...any) ([]domain.Dispute, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []domain.Dispute
	for rows.Next() {
		d, err := scanDispute(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func scanDispute(row pgx.Row) (domain.Dispute, error) {
	var (
		d              domain.Dispute
		bureau, status string
	)
	err := row.Scan(
		&d.ID, &d.OwnerID, &d.AccountID, &bureau, &d.CreditorName, &d.AccountNumber, &d.Description, &status,
		&d.SentDate, &d.TrackingID, &d.ExpectedResponseDate, &d.FollowUpSent, &d.EscalationLevel, &d.LastFollowUpAt,
		&d.Resolution, &d.ResolvedAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return domain.Dispute{}, err
	}
	d.Bureau = domain.Bureau(bureau)
	st, ok := domain.ParseDisputeStatus(status)
	if !ok {
		return domain.Dispute{}, fmt.Errorf("dispute %s: unknown status %q: %w", d.ID, status, domain.ErrDataIntegrity)
	}
	d.Status = st
	return d, nil
}
