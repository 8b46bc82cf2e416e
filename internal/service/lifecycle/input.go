package lifecycle

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/domain"
)

// CreateDisputeInput holds the parameters for opening a dispute. When
// AccountID is set, empty bureau and creditor fields are taken from the
// account.
type CreateDisputeInput struct {
	AccountID     *uuid.UUID
	Bureau        string
	CreditorName  string
	AccountNumber string
	Description   string
}

// Validate checks all fields and collects all errors.
func (i CreateDisputeInput) Validate() error {
	var errs []domain.FieldError

	if i.AccountID == nil {
		if strings.TrimSpace(i.Bureau) == "" {
			errs = append(errs, domain.FieldError{Field: "bureau", Message: "required"})
		}
		if strings.TrimSpace(i.CreditorName) == "" {
			errs = append(errs, domain.FieldError{Field: "creditor_name", Message: "required"})
		}
		if strings.TrimSpace(i.AccountNumber) == "" {
			errs = append(errs, domain.FieldError{Field: "account_number", Message: "required"})
		}
	} else if *i.AccountID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "account_id", Message: "invalid"})
	}

	if b := strings.TrimSpace(i.Bureau); b != "" {
		if _, ok := domain.ParseBureau(b); !ok {
			errs = append(errs, domain.FieldError{Field: "bureau", Message: "must be Experian, Equifax or TransUnion"})
		}
	}
	if len(i.CreditorName) > 200 {
		errs = append(errs, domain.FieldError{Field: "creditor_name", Message: "max 200 characters"})
	}
	if len(i.AccountNumber) > 64 {
		errs = append(errs, domain.FieldError{Field: "account_number", Message: "max 64 characters"})
	}
	if len(i.Description) > 5000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 5000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ResolveInput holds the parameters for recording a bureau resolution.
type ResolveInput struct {
	DisputeID  uuid.UUID
	Resolution string
}

// Validate checks all fields and collects all errors.
func (i ResolveInput) Validate() error {
	var errs []domain.FieldError
	if i.DisputeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "dispute_id", Message: "required"})
	}
	res := strings.TrimSpace(i.Resolution)
	if res == "" {
		errs = append(errs, domain.FieldError{Field: "resolution", Message: "required"})
	}
	if len(res) > 2000 {
		errs = append(errs, domain.FieldError{Field: "resolution", Message: "max 2000 characters"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListDisputesInput holds the parameters for listing the caller's disputes.
type ListDisputesInput struct {
	Statuses  []string
	AccountID *uuid.UUID
	Limit     int
	Offset    int
}

// Validate checks all fields and collects all errors.
func (i ListDisputesInput) Validate() error {
	var errs []domain.FieldError
	for _, st := range i.Statuses {
		if _, ok := domain.ParseDisputeStatus(st); !ok {
			errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status " + st})
		}
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "max 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListAwaitingInput holds the parameters for the awaiting-response listing.
// AllOwners requires the admin role.
type ListAwaitingInput struct {
	AllOwners bool
	Limit     int
}
