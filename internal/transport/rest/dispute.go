package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/domain"
	"github.com/heartmarshall/credit-disputer/internal/service/letter"
	"github.com/heartmarshall/credit-disputer/internal/service/lifecycle"
)

type disputeService interface {
	CreateDispute(ctx context.Context, input lifecycle.CreateDisputeInput) (*domain.Dispute, error)
	ListDisputes(ctx context.Context, input lifecycle.ListDisputesInput) ([]domain.Dispute, error)
	GetDispute(ctx context.Context, id uuid.UUID) (*domain.DisputeDetails, error)
	Resolve(ctx context.Context, input lifecycle.ResolveInput) (*domain.Dispute, error)
	ListAwaitingResponse(ctx context.Context, input lifecycle.ListAwaitingInput) ([]domain.Dispute, error)
}

type letterPreviewer interface {
	PreviewLetter(ctx context.Context, d domain.Dispute) (letter.Letter, error)
}

// DisputeHandler serves the owner-facing dispute endpoints.
type DisputeHandler struct {
	disputes disputeService
	letters  letterPreviewer
	log      *slog.Logger
}

// NewDisputeHandler creates a DisputeHandler.
func NewDisputeHandler(disputes disputeService, letters letterPreviewer, logger *slog.Logger) *DisputeHandler {
	return &DisputeHandler{
		disputes: disputes,
		letters:  letters,
		log:      logger.With("handler", "dispute"),
	}
}

type createDisputeRequest struct {
	AccountID     *uuid.UUID `json:"account_id"`
	Bureau        string     `json:"bureau"`
	CreditorName  string     `json:"creditor_name"`
	AccountNumber string     `json:"account_number"`
	Description   string     `json:"description"`
}

// Create registers a pending dispute.
// POST /api/disputes
func (h *DisputeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDisputeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	d, err := h.disputes.CreateDispute(r.Context(), lifecycle.CreateDisputeInput{
		AccountID:     req.AccountID,
		Bureau:        req.Bureau,
		CreditorName:  req.CreditorName,
		AccountNumber: req.AccountNumber,
		Description:   req.Description,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toDisputeResponse(*d))
}

// List returns the caller's disputes.
// GET /api/disputes?status=sent,in_transit&account_id=...&limit=50&offset=0
func (h *DisputeHandler) List(w http.ResponseWriter, r *http.Request) {
	input := lifecycle.ListDisputesInput{}
	if v := r.URL.Query().Get("status"); v != "" {
		input.Statuses = strings.Split(v, ",")
	}

	var err error
	if input.AccountID, err = optionalUUIDQuery(r, "account_id"); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if input.Limit, err = intQuery(r, "limit"); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if input.Offset, err = intQuery(r, "offset"); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	list, err := h.disputes.ListDisputes(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDisputeList(list))
}

// Get returns one dispute with its history and live awaiting-response flag.
// GET /api/disputes/{id}
func (h *DisputeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	details, err := h.disputes.GetDispute(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDisputeDetails(details))
}

// Letter renders the dispute letter that would be mailed, without mailing it.
// GET /api/disputes/{id}/letter
func (h *DisputeHandler) Letter(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	details, err := h.disputes.GetDispute(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	l, err := h.letters.PreviewLetter(r.Context(), details.Dispute)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, letterResponse{DisputeID: id, Body: l.Body, Source: string(l.Source)})
}

type resolveRequest struct {
	Resolution string `json:"resolution"`
}

// Resolve records the bureau's outcome.
// POST /api/disputes/{id}/resolve
func (h *DisputeHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req resolveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	d, err := h.disputes.Resolve(r.Context(), lifecycle.ResolveInput{
		DisputeID:  id,
		Resolution: req.Resolution,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDisputeResponse(*d))
}

// Awaiting lists the caller's overdue disputes with no bureau response.
// GET /api/disputes/awaiting?limit=100
func (h *DisputeHandler) Awaiting(w http.ResponseWriter, r *http.Request) {
	h.awaiting(w, r, false)
}

func (h *DisputeHandler) awaiting(w http.ResponseWriter, r *http.Request, allOwners bool) {
	limit, err := intQuery(r, "limit")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	list, err := h.disputes.ListAwaitingResponse(r.Context(), lifecycle.ListAwaitingInput{
		AllOwners: allOwners,
		Limit:     limit,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toDisputeList(list))
}
