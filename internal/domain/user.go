package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the owner of accounts and disputes. Only the fields the dispute
// pipeline needs are modelled; sign-up and credentials live elsewhere.
type User struct {
	ID        uuid.UUID
	Email     string
	FullName  string
	Role      UserRole
	Address   MailingAddress
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MailingAddress is a US postal address.
type MailingAddress struct {
	Name         string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	ZipCode      string
}

// IsComplete reports whether the address can be printed on an envelope.
func (a MailingAddress) IsComplete() bool {
	return strings.TrimSpace(a.Name) != "" &&
		strings.TrimSpace(a.AddressLine1) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.State) != "" &&
		strings.TrimSpace(a.ZipCode) != ""
}

// ReturnAddress builds the sender block for a user's letters.
func (u User) ReturnAddress() MailingAddress {
	addr := u.Address
	if strings.TrimSpace(addr.Name) == "" {
		addr.Name = u.FullName
	}
	return addr
}
