package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/domain"
	"github.com/heartmarshall/credit-disputer/internal/service/account"
)

type accountService interface {
	Create(ctx context.Context, input account.CreateInput) (*domain.Account, error)
	List(ctx context.Context, input account.ListInput) ([]domain.Account, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	Import(ctx context.Context, rows []account.CreateInput) (account.ImportResult, error)
}

// AccountHandler serves the disputed-account endpoints.
type AccountHandler struct {
	accounts accountService
	log      *slog.Logger
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(accounts accountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		log:      logger.With("handler", "account"),
	}
}

type createAccountRequest struct {
	Bureau        string   `json:"bureau"`
	CreditorName  string   `json:"creditor_name"`
	AccountNumber string   `json:"account_number"`
	AccountType   *string  `json:"account_type"`
	Balance       *float64 `json:"balance"`
	Reason        string   `json:"reason"`
	Notes         *string  `json:"notes"`
}

// Create adds an account to dispute.
// POST /api/accounts
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	a, err := h.accounts.Create(r.Context(), account.CreateInput(req))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAccountResponse(*a))
}

type importAccountsRequest struct {
	Accounts []createAccountRequest `json:"accounts"`
}

// Import bulk-creates accounts. Rejected rows are listed with their field
// errors; the rest are created.
// POST /api/accounts/import
func (h *AccountHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req importAccountsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	rows := make([]account.CreateInput, len(req.Accounts))
	for i, a := range req.Accounts {
		rows[i] = account.CreateInput(a)
	}

	res, err := h.accounts.Import(r.Context(), rows)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toImportResponse(res))
}

// List returns the caller's accounts.
// GET /api/accounts?limit=50&offset=0
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	offset, err := intQuery(r, "offset")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	list, err := h.accounts.List(r.Context(), account.ListInput{Limit: limit, Offset: offset})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]accountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAccountResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get returns one of the caller's accounts.
// GET /api/accounts/{id}
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	a, err := h.accounts.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(*a))
}
