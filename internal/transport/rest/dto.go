package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/domain"
	"github.com/heartmarshall/credit-disputer/internal/service/account"
	"github.com/heartmarshall/credit-disputer/internal/service/reconcile"
)

type disputeResponse struct {
	ID                   uuid.UUID  `json:"id"`
	AccountID            *uuid.UUID `json:"account_id,omitempty"`
	Bureau               string     `json:"bureau"`
	CreditorName         string     `json:"creditor_name"`
	AccountNumber        string     `json:"account_number"`
	Description          string     `json:"description"`
	Status               string     `json:"status"`
	SentDate             *time.Time `json:"sent_date"`
	TrackingID           *string    `json:"tracking_id"`
	ExpectedResponseDate *time.Time `json:"expected_response_date"`
	FollowUpSent         int        `json:"follow_up_sent"`
	EscalationLevel      int        `json:"escalation_level"`
	LastFollowUpAt       *time.Time `json:"last_follow_up_at,omitempty"`
	Resolution           *string    `json:"resolution,omitempty"`
	ResolvedAt           *time.Time `json:"resolved_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func toDisputeResponse(d domain.Dispute) disputeResponse {
	return disputeResponse{
		ID:                   d.ID,
		AccountID:            d.AccountID,
		Bureau:               string(d.Bureau),
		CreditorName:         d.CreditorName,
		AccountNumber:        d.AccountNumber,
		Description:          d.Description,
		Status:               string(d.Status),
		SentDate:             d.SentDate,
		TrackingID:           d.TrackingID,
		ExpectedResponseDate: d.ExpectedResponseDate,
		FollowUpSent:         d.FollowUpSent,
		EscalationLevel:      d.EscalationLevel,
		LastFollowUpAt:       d.LastFollowUpAt,
		Resolution:           d.Resolution,
		ResolvedAt:           d.ResolvedAt,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}

func toDisputeList(list []domain.Dispute) []disputeResponse {
	out := make([]disputeResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDisputeResponse(d))
	}
	return out
}

type historyResponse struct {
	Action    string    `json:"action"`
	OldStatus *string   `json:"old_status"`
	NewStatus *string   `json:"new_status"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type disputeDetailsResponse struct {
	disputeResponse
	AwaitingResponse bool              `json:"awaiting_response"`
	DaysSinceSent    int               `json:"days_since_sent"`
	History          []historyResponse `json:"history"`
}

func statusPtr(s *domain.DisputeStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func toDisputeDetails(d *domain.DisputeDetails) disputeDetailsResponse {
	history := make([]historyResponse, 0, len(d.History))
	for _, h := range d.History {
		history = append(history, historyResponse{
			Action:    string(h.Action),
			OldStatus: statusPtr(h.OldStatus),
			NewStatus: statusPtr(h.NewStatus),
			Notes:     h.Notes,
			CreatedAt: h.CreatedAt,
		})
	}
	return disputeDetailsResponse{
		disputeResponse:  toDisputeResponse(d.Dispute),
		AwaitingResponse: d.AwaitingResponse,
		DaysSinceSent:    d.DaysSinceSent,
		History:          history,
	}
}

type accountResponse struct {
	ID            uuid.UUID `json:"id"`
	Bureau        string    `json:"bureau"`
	CreditorName  string    `json:"creditor_name"`
	AccountNumber string    `json:"account_number"`
	AccountType   *string   `json:"account_type"`
	Balance       *float64  `json:"balance"`
	Reason        string    `json:"reason"`
	Notes         *string   `json:"notes"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toAccountResponse(a domain.Account) accountResponse {
	return accountResponse{
		ID:            a.ID,
		Bureau:        string(a.Bureau),
		CreditorName:  a.CreditorName,
		AccountNumber: a.AccountNumber,
		AccountType:   a.AccountType,
		Balance:       a.Balance,
		Reason:        a.Reason,
		Notes:         a.Notes,
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

type rejectedRowResponse struct {
	Row    int          `json:"row"`
	Fields []fieldError `json:"fields"`
}

type importResponse struct {
	Created  []accountResponse     `json:"created"`
	Rejected []rejectedRowResponse `json:"rejected"`
}

func toImportResponse(res account.ImportResult) importResponse {
	out := importResponse{
		Created:  make([]accountResponse, 0, len(res.Created)),
		Rejected: make([]rejectedRowResponse, 0, len(res.Rejected)),
	}
	for _, a := range res.Created {
		out.Created = append(out.Created, toAccountResponse(a))
	}
	for _, row := range res.Rejected {
		rr := rejectedRowResponse{Row: row.Row}
		for _, fe := range row.Errors {
			rr.Fields = append(rr.Fields, fieldError{Field: fe.Field, Message: fe.Message})
		}
		out.Rejected = append(out.Rejected, rr)
	}
	return out
}

type letterResponse struct {
	DisputeID uuid.UUID `json:"dispute_id"`
	Body      string    `json:"body"`
	Source    string    `json:"source"`
}

type documentResponse struct {
	ID               uuid.UUID  `json:"id"`
	AccountID        *uuid.UUID `json:"account_id"`
	DisputeID        *uuid.UUID `json:"dispute_id"`
	Filename         string     `json:"filename"`
	OriginalFilename string     `json:"original_filename"`
	FileSize         *int64     `json:"file_size"`
	MimeType         *string    `json:"mime_type"`
	Type             string     `json:"document_type"`
	Description      *string    `json:"description"`
	UploadedAt       time.Time  `json:"uploaded_at"`
}

func toDocumentResponse(d domain.Document) documentResponse {
	return documentResponse{
		ID:               d.ID,
		AccountID:        d.AccountID,
		DisputeID:        d.DisputeID,
		Filename:         d.Filename,
		OriginalFilename: d.OriginalFilename,
		FileSize:         d.FileSize,
		MimeType:         d.MimeType,
		Type:             string(d.Type),
		Description:      d.Description,
		UploadedAt:       d.UploadedAt,
	}
}

type dashboardResponse struct {
	TotalDisputes    int `json:"total_disputes"`
	Pending          int `json:"pending"`
	InTransit        int `json:"in_transit"`
	Delivered        int `json:"delivered"`
	Failed           int `json:"failed"`
	Resolved         int `json:"resolved"`
	AwaitingResponse int `json:"awaiting_response"`
	TotalAccounts    int `json:"total_accounts"`
	PendingAccounts  int `json:"pending_accounts"`
}

type failureResponse struct {
	DisputeID uuid.UUID `json:"dispute_id"`
	Reason    string    `json:"reason"`
}

type stepResponse struct {
	Step      string            `json:"step"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Skipped   int               `json:"skipped"`
	Failures  []failureResponse `json:"failures,omitempty"`
	Error     string            `json:"error,omitempty"`
}

type reportResponse struct {
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
	Interrupted bool           `json:"interrupted"`
	Steps       []stepResponse `json:"steps"`
}

type reconcileStatusResponse struct {
	Running bool            `json:"running"`
	Last    *reportResponse `json:"last"`
}

func toReportResponse(rep reconcile.Report) reportResponse {
	steps := make([]stepResponse, 0, len(rep.Steps))
	for _, s := range rep.Steps {
		sr := stepResponse{
			Step:      string(s.Step),
			Succeeded: s.Succeeded,
			Failed:    s.Failed,
			Skipped:   s.Skipped,
		}
		for _, f := range s.Failures {
			sr.Failures = append(sr.Failures, failureResponse{DisputeID: f.DisputeID, Reason: f.Reason})
		}
		if s.Err != nil {
			sr.Error = s.Err.Error()
		}
		steps = append(steps, sr)
	}
	return reportResponse{
		StartedAt:   rep.StartedAt,
		FinishedAt:  rep.FinishedAt,
		Interrupted: rep.Interrupted,
		Steps:       steps,
	}
}
