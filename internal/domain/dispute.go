package domain

import (
	"time"

	"github.com/google/uuid"
)

// Dispute is one mailed (or about-to-be-mailed) dispute letter for one account.
type Dispute struct {
	ID                   uuid.UUID
	OwnerID              uuid.UUID
	AccountID            *uuid.UUID
	Bureau               Bureau
	CreditorName         string
	AccountNumber        string
	Description          string
	Status               DisputeStatus
	SentDate             *time.Time
	TrackingID           *string
	ExpectedResponseDate *time.Time
	FollowUpSent         int
	EscalationLevel      int
	LastFollowUpAt       *time.Time
	Resolution           *string
	ResolvedAt           *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// transitions lists the statuses reachable from each status.
var transitions = map[DisputeStatus][]DisputeStatus{
	DisputeStatusPending: {
		DisputeStatusSent, DisputeStatusFailed, DisputeStatusResolved,
	},
	DisputeStatusSent: {
		DisputeStatusInTransit, DisputeStatusDelivered, DisputeStatusFailed,
		DisputeStatusInvalidTrackingID, DisputeStatusResolved,
	},
	DisputeStatusInTransit: {
		DisputeStatusDelivered, DisputeStatusFailed,
		DisputeStatusInvalidTrackingID, DisputeStatusResolved,
	},
	DisputeStatusDelivered: {
		DisputeStatusInvalidTrackingID, DisputeStatusResolved,
	},
}

// CanTransition reports whether the lifecycle allows moving from -> to.
func CanTransition(from, to DisputeStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// InFlight reports whether the dispute is still moving through the pipeline
// and may be resolved.
func (d Dispute) InFlight() bool {
	switch d.Status {
	case DisputeStatusPending, DisputeStatusSent, DisputeStatusInTransit, DisputeStatusDelivered:
		return true
	}
	return false
}

// IsAwaitingResponse reports whether the bureau's response deadline has
// passed with no response on file. It must be evaluated on every read.
func IsAwaitingResponse(d Dispute, hasBureauResponse bool, now time.Time) bool {
	if d.Status != DisputeStatusSent && d.Status != DisputeStatusDelivered {
		return false
	}
	if d.ExpectedResponseDate == nil || hasBureauResponse {
		return false
	}
	return IsOverdue(*d.ExpectedResponseDate, now)
}

// FollowUpDue reports whether enough time has passed since the last
// follow-up. The awaiting-response predicate must be checked separately.
func (d Dispute) FollowUpDue(now time.Time, interval time.Duration) bool {
	if d.LastFollowUpAt == nil {
		return true
	}
	return now.Sub(*d.LastFollowUpAt) >= interval
}

// DaysSinceSent returns whole days since mailing, or 0 if never mailed.
func (d Dispute) DaysSinceSent(now time.Time) int {
	if d.SentDate == nil {
		return 0
	}
	return DaysElapsed(*d.SentDate, now)
}

// Facts collects the letter inputs for this dispute. Account details are
// optional and taken from acc when it is non-nil.
func (d Dispute) Facts(acc *Account) DisputeFacts {
	f := DisputeFacts{
		Bureau:        d.Bureau,
		CreditorName:  d.CreditorName,
		AccountNumber: d.AccountNumber,
		Reason:        d.Description,
		SentDate:      d.SentDate,
	}
	if acc != nil {
		f.AccountType = acc.AccountType
		f.Balance = acc.Balance
		f.Notes = acc.Notes
	}
	return f
}

// DisputeFacts is what a letter writer needs to know about a dispute.
type DisputeFacts struct {
	Bureau        Bureau
	CreditorName  string
	AccountNumber string
	Reason        string
	AccountType   *string
	Balance       *float64
	Notes         *string
	SentDate      *time.Time
	Sender        MailingAddress
}

// DisputeDetails is a dispute with its audit trail and live derived state.
type DisputeDetails struct {
	Dispute          Dispute
	History          []HistoryEntry
	AwaitingResponse bool
	DaysSinceSent    int
}

// StatusCounts aggregates disputes by lifecycle status.
type StatusCounts map[DisputeStatus]int

// Dashboard is the per-owner overview, derived live on every read.
type Dashboard struct {
	TotalDisputes    int
	Pending          int
	InTransit        int
	Delivered        int
	Failed           int
	Resolved         int
	AwaitingResponse int
	TotalAccounts    int
	PendingAccounts  int
}

// CanTransition reports whether d may move to the given status.
func (d Dispute) CanTransition(to DisputeStatus) bool {
	return CanTransition(d.Status, to)
}
