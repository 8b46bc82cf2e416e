package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType names a reminder event.
type NotificationType string

const (
	NotificationFollowUpSent    NotificationType = "follow_up_sent"
	NotificationMailFailed      NotificationType = "mail_failed"
	NotificationInvalidTracking NotificationType = "invalid_tracking_id"
)

// Notification tells the dispute owner that something happened to a dispute
// without their involvement.
type Notification struct {
	Type          NotificationType
	DisputeID     uuid.UUID
	UserEmail     string
	UserName      string
	Bureau        Bureau
	CreditorName  string
	AccountNumber string
	Status        DisputeStatus
	SentDate      *time.Time
	DaysWaiting   int
	Tier          string
	OccurredAt    time.Time
}
