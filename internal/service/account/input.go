package account

import (
	"math"
	"strings"

	"github.com/heartmarshall/credit-disputer/internal/domain"
)

// CreateInput holds the parameters for recording an account.
type CreateInput struct {
	Bureau        string
	CreditorName  string
	AccountNumber string
	AccountType   *string
	Balance       *float64
	Reason        string
	Notes         *string
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Bureau) == "" {
		errs = append(errs, domain.FieldError{Field: "bureau", Message: "required"})
	} else if _, ok := domain.ParseBureau(i.Bureau); !ok {
		errs = append(errs, domain.FieldError{Field: "bureau", Message: "must be Experian, Equifax or TransUnion"})
	}

	if strings.TrimSpace(i.CreditorName) == "" {
		errs = append(errs, domain.FieldError{Field: "creditor_name", Message: "required"})
	} else if len(i.CreditorName) > 200 {
		errs = append(errs, domain.FieldError{Field: "creditor_name", Message: "max 200 characters"})
	}

	if strings.TrimSpace(i.AccountNumber) == "" {
		errs = append(errs, domain.FieldError{Field: "account_number", Message: "required"})
	} else if len(i.AccountNumber) > 64 {
		errs = append(errs, domain.FieldError{Field: "account_number", Message: "max 64 characters"})
	}

	if i.AccountType != nil && len(*i.AccountType) > 100 {
		errs = append(errs, domain.FieldError{Field: "account_type", Message: "max 100 characters"})
	}
	if i.Balance != nil && (*i.Balance < 0 || math.IsNaN(*i.Balance) || math.IsInf(*i.Balance, 0)) {
		errs = append(errs, domain.FieldError{Field: "balance", Message: "must be a non-negative amount"})
	}
	if len(i.Reason) > 5000 {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "max 5000 characters"})
	}
	if i.Notes != nil && len(*i.Notes) > 5000 {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "max 5000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// MaxImportRows caps a single bulk import.
const MaxImportRows = 500

// RowError lists the field errors of one rejected import row.
type RowError struct {
	Row    int
	Errors []domain.FieldError
}

// ImportResult is the outcome of a bulk import.
type ImportResult struct {
	Created  []domain.Account
	Rejected []RowError
}

// ListInput holds pagination for listing accounts.
type ListInput struct {
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError
	if i.Limit < 0 || i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
