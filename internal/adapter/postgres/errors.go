package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/credit-disputer/internal/domain"
)

// pgCodeErrors maps SQLSTATE codes to domain errors. The dispute triggers
// raise check_violation for append-only and monotonic-escalation breaches.
var pgCodeErrors = map[string]error{
	pgerrcode.UniqueViolation:           domain.ErrAlreadyExists,
	pgerrcode.ForeignKeyViolation:       domain.ErrDataIntegrity,
	pgerrcode.CheckViolation:            domain.ErrValidation,
	pgerrcode.NotNullViolation:          domain.ErrValidation,
	pgerrcode.InvalidTextRepresentation: domain.ErrValidation,
	pgerrcode.LockNotAvailable:          domain.ErrConflict,
	pgerrcode.SerializationFailure:      domain.ErrConflict,
	pgerrcode.DeadlockDetected:          domain.ErrConflict,
}

// MapError wraps err with entity and id and translates pgx failures into
// domain errors. Context errors keep their identity.
func MapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}
	prefix := entity + " " + id.String()

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", prefix, err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", prefix, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if mapped, ok := pgCodeErrors[pgErr.Code]; ok {
			switch {
			case pgErr.ConstraintName != "":
				return fmt.Errorf("%s: %w: %s", prefix, mapped, pgErr.ConstraintName)
			case pgErr.Code == pgerrcode.CheckViolation && pgErr.Message != "":
				return fmt.Errorf("%s: %w: %s", prefix, mapped, pgErr.Message)
			}
			return fmt.Errorf("%s: %w", prefix, mapped)
		}
	}
	return fmt.Errorf("%s: %w", prefix, err)
}
