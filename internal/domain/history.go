package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is one append-only audit row for a dispute transition.
type HistoryEntry struct {
	ID        uuid.UUID
	DisputeID uuid.UUID
	Action    HistoryAction
	OldStatus *DisputeStatus
	NewStatus *DisputeStatus
	Notes     *string
	CreatedAt time.Time
}

// FollowUpSentNote is recorded with every follow_up_sent entry.
const FollowUpSentNote = "Escalation follow-up letter sent"
