// Package account implements the Account repository using PostgreSQL.
package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/credit-disputer/internal/adapter/postgres"
	"github.com/heartmarshall/credit-disputer/internal/domain"
)

// Repo provides account persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new account repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const accountColumns = `id, owner_id, bureau, creditor_name, account_number, account_type, balance::float8,
	reason, notes, status, created_at, updated_at`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getByIDSQL = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

// GetByID returns an account by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	a, err := scanAccount(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "account", id)
	}
	return &a, nil
}

const listByOwnerSQL = `SELECT ` + accountColumns + `
FROM accounts
WHERE owner_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`

// ListByOwner returns an owner's accounts, newest first.
func (r *Repo) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, listByOwnerSQL, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return out, nil
}

const countByOwnerSQL = `
SELECT count(*), count(*) FILTER (WHERE status = 'pending')
FROM accounts
WHERE owner_id = $1`

// CountByOwner returns the owner's total and pending account counts.
func (r *Repo) CountByOwner(ctx context.Context, ownerID uuid.UUID) (total, pending int, err error) {
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, countByOwnerSQL, ownerID).Scan(&total, &pending)
	if err != nil {
		return 0, 0, fmt.Errorf("count accounts: %w", err)
	}
	return total, pending, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO accounts (id, owner_id, bureau, creditor_name, account_number, account_type, balance, reason, notes,
	status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
RETURNING ` + accountColumns

// Create inserts a new account and returns the persisted row.
func (r *Repo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, createSQL,
		a.ID, a.OwnerID, string(a.Bureau), a.CreditorName, a.AccountNumber, a.AccountType, a.Balance,
		a.Reason, a.Notes, string(a.Status), a.CreatedAt,
	)
	created, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, postgres.MapError(err, "account", a.ID)
	}
	return created, nil
}

const updateStatusSQL = `UPDATE accounts SET status = $2, updated_at = $3 WHERE id = $1`

// UpdateStatus sets the account status.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AccountStatus, at time.Time) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, updateStatusSQL, id, string(status), at)
	if err != nil {
		return postgres.MapError(err, "account", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanAccount(row pgx.Row) (domain.Account, error) {
	var (
		a              domain.Account
		bureau, status string
	)
	err := row.Scan(
		&a.ID, &a.OwnerID, &bureau, &a.CreditorName, &a.AccountNumber, &a.AccountType, &a.Balance,
		&a.Reason, &a.Notes, &status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, err
	}
	a.Bureau = domain.Bureau(bureau)
	a.Status = domain.AccountStatus(status)
	return a, nil
}
