package domain

import (
	"time"

	"github.com/google/uuid"
)

// DisputeFilter contains filtering/pagination parameters for dispute listings.
type DisputeFilter struct {
	OwnerID           *uuid.UUID
	AccountID         *uuid.UUID
	Statuses          []DisputeStatus
	RequireTrackingID bool

	// AwaitingAt keeps disputes awaiting a bureau response at that instant.
	AwaitingAt *time.Time
	// FollowUpDueBefore keeps disputes never followed up or last followed
	// up at or before it.
	FollowUpDueBefore *time.Time
	// After resumes an oldest-first walk past the given dispute.
	After *DisputeCursor

	Limit  int
	Offset int
}

// DisputeCursor is a position in the oldest-first dispute order.
type DisputeCursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// CursorOf returns the position of d.
func CursorOf(d Dispute) *DisputeCursor {
	return &DisputeCursor{CreatedAt: d.CreatedAt, ID: d.ID}
}

// DocumentFilter narrows document listings. Nil fields mean "any".
type DocumentFilter struct {
	OwnerID   *uuid.UUID
	AccountID *uuid.UUID
	DisputeID *uuid.UUID
	Type      *DocumentType
	Limit     int
}
