// Package user implements the read side of the User repository using
// PostgreSQL. Accounts are provisioned by the identity service; this
// service only needs the owner's name, role and return address.
package user

import (
	"context"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/credit-disputer/internal/adapter/postgres"
	"github.com/heartmarshall/credit-disputer/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const getByIDSQL = `
SELECT id, email, full_name, role,
	COALESCE(address_name, ''), COALESCE(address_line1, ''), COALESCE(address_line2, ''),
	COALESCE(city, ''), COALESCE(state, ''), COALESCE(zip_code, ''),
	created_at, updated_at
FROM users
WHERE id = $1`

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, getByIDSQL, id).Scan(
		&u.ID, &u.Email, &u.FullName, &role,
		&u.Address.Name, &u.Address.AddressLine1, &u.Address.AddressLine2,
		&u.Address.City, &u.Address.State, &u.Address.ZipCode,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	u.Role = domain.UserRole(role)
	return &u, nil
}
