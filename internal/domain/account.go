package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is a derogatory credit-report entry the owner wants corrected.
type Account struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Bureau        Bureau
	CreditorName  string
	AccountNumber string
	AccountType   *string
	Balance       *float64
	Reason        string
	Notes         *string
	Status        AccountStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
