package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/credit-disputer/internal/domain"
	"github.com/heartmarshall/credit-disputer/internal/service/document"
)

type documentService interface {
	Attach(ctx context.Context, input document.AttachInput) (*domain.Document, error)
	List(ctx context.Context, input document.ListInput) ([]domain.Document, error)
}

// DocumentHandler serves document metadata endpoints. File bytes are stored
// elsewhere; only the path is recorded.
type DocumentHandler struct {
	documents documentService
	log       *slog.Logger
}

// NewDocumentHandler creates a DocumentHandler.
func NewDocumentHandler(documents documentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
		log:       logger.With("handler", "document"),
	}
}

type attachDocumentRequest struct {
	AccountID        *uuid.UUID `json:"account_id"`
	DisputeID        *uuid.UUID `json:"dispute_id"`
	OriginalFilename string     `json:"original_filename"`
	FilePath         string     `json:"file_path"`
	FileSize         *int64     `json:"file_size"`
	MimeType         *string    `json:"mime_type"`
	Type             string     `json:"document_type"`
	Description      *string    `json:"description"`
}

// Attach records an uploaded document. A bureau_response document stops
// escalation of its dispute.
// POST /api/documents
func (h *DocumentHandler) Attach(w http.ResponseWriter, r *http.Request) {
	var req attachDocumentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	doc, err := h.documents.Attach(r.Context(), document.AttachInput(req))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toDocumentResponse(*doc))
}

// List returns the caller's documents.
// GET /api/documents?account_id=...&dispute_id=...&type=bureau_response&limit=50
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	input := document.ListInput{Type: r.URL.Query().Get("type")}

	var err error
	if input.AccountID, err = optionalUUIDQuery(r, "account_id"); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if input.DisputeID, err = optionalUUIDQuery(r, "dispute_id"); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if input.Limit, err = intQuery(r, "limit"); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	list, err := h.documents.List(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]documentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toDocumentResponse(d))
	}
	writeJSON(w, http.StatusOK, out)
}
