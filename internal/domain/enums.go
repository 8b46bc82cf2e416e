package domain

import "strings"

// DisputeStatus is the lifecycle state of a dispute letter.
type DisputeStatus string

const (
	DisputeStatusPending           DisputeStatus = "pending"
	DisputeStatusSent              DisputeStatus = "sent"
	DisputeStatusInTransit         DisputeStatus = "in_transit"
	DisputeStatusDelivered         DisputeStatus = "delivered"
	DisputeStatusFailed            DisputeStatus = "failed"
	DisputeStatusInvalidTrackingID DisputeStatus = "invalid_tracking_id"
	DisputeStatusResolved          DisputeStatus = "resolved"
)

func (s DisputeStatus) String() string { return string(s) }

func (s DisputeStatus) IsValid() bool {
	switch s {
	case DisputeStatusPending, DisputeStatusSent, DisputeStatusInTransit, DisputeStatusDelivered,
		DisputeStatusFailed, DisputeStatusInvalidTrackingID, DisputeStatusResolved:
		return true
	}
	return false
}

// IsTerminal reports whether the mailing pipeline never leaves this status.
func (s DisputeStatus) IsTerminal() bool {
	switch s {
	case DisputeStatusFailed, DisputeStatusInvalidTrackingID, DisputeStatusResolved:
		return true
	}
	return false
}

// ParseDisputeStatus accepts stored or user-supplied status strings.
// The legacy "queued" value collapses into pending.
func ParseDisputeStatus(s string) (DisputeStatus, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "queued" {
		return DisputeStatusPending, true
	}
	st := DisputeStatus(v)
	return st, st.IsValid()
}

// Bureau is one of the three US consumer credit reporting agencies.
type Bureau string

const (
	BureauExperian   Bureau = "Experian"
	BureauEquifax    Bureau = "Equifax"
	BureauTransUnion Bureau = "TransUnion"
)

func (b Bureau) String() string { return string(b) }

func (b Bureau) IsValid() bool {
	switch b {
	case BureauExperian, BureauEquifax, BureauTransUnion:
		return true
	}
	return false
}

// ParseBureau matches a bureau name case-insensitively.
func ParseBureau(s string) (Bureau, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "experian":
		return BureauExperian, true
	case "equifax":
		return BureauEquifax, true
	case "transunion":
		return BureauTransUnion, true
	}
	return "", false
}

// AccountStatus tracks the user's progress on a derogatory account.
type AccountStatus string

const (
	AccountStatusPending  AccountStatus = "pending"
	AccountStatusDisputed AccountStatus = "disputed"
	AccountStatusResolved AccountStatus = "resolved"
	AccountStatusVerified AccountStatus = "verified"
)

func (s AccountStatus) String() string { return string(s) }

func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusPending, AccountStatusDisputed, AccountStatusResolved, AccountStatusVerified:
		return true
	}
	return false
}

// DocumentType classifies an uploaded file.
type DocumentType string

const (
	DocumentTypeCreditReport   DocumentType = "credit_report"
	DocumentTypeBureauResponse DocumentType = "bureau_response"
	DocumentTypeEvidence       DocumentType = "evidence"
	DocumentTypeBankStatement  DocumentType = "bank_statement"
	DocumentTypeReceipt        DocumentType = "receipt"
	DocumentTypeOther          DocumentType = "other"
)

func (t DocumentType) String() string { return string(t) }

func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeCreditReport, DocumentTypeBureauResponse, DocumentTypeEvidence,
		DocumentTypeBankStatement, DocumentTypeReceipt, DocumentTypeOther:
		return true
	}
	return false
}

// HistoryAction tags a dispute history entry.
type HistoryAction string

const (
	HistoryActionCreated      HistoryAction = "created"
	HistoryActionSent         HistoryAction = "sent"
	HistoryActionStatusChange HistoryAction = "status_change"
	HistoryActionFollowUpSent HistoryAction = "follow_up_sent"
)

func (a HistoryAction) String() string { return string(a) }

func (a HistoryAction) IsValid() bool {
	switch a {
	case HistoryActionCreated, HistoryActionSent, HistoryActionStatusChange, HistoryActionFollowUpSent:
		return true
	}
	return false
}

// CarrierStatus is the delivery state reported by the mail carrier.
type CarrierStatus string

const (
	CarrierStatusInTransit CarrierStatus = "in_transit"
	CarrierStatusDelivered CarrierStatus = "delivered"
	CarrierStatusFailed    CarrierStatus = "failed"
	CarrierStatusReturned  CarrierStatus = "returned"
	CarrierStatusUnknown   CarrierStatus = "unknown"
)

func (s CarrierStatus) String() string { return string(s) }

func (s CarrierStatus) IsValid() bool {
	switch s {
	case CarrierStatusInTransit, CarrierStatusDelivered, CarrierStatusFailed,
		CarrierStatusReturned, CarrierStatusUnknown:
		return true
	}
	return false
}

// DisputeStatus maps a carrier status onto the lifecycle.
// Returns false for unknown, which never changes a dispute.
func (s CarrierStatus) DisputeStatus() (DisputeStatus, bool) {
	switch s {
	case CarrierStatusInTransit:
		return DisputeStatusInTransit, true
	case CarrierStatusDelivered:
		return DisputeStatusDelivered, true
	case CarrierStatusFailed, CarrierStatusReturned:
		return DisputeStatusFailed, true
	}
	return "", false
}

// UserRole is the role claim carried by access tokens.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	return r == UserRoleUser || r == UserRoleAdmin
}
