package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/credit-disputer/internal/domain"
)

type dashboardService interface {
	Get(ctx context.Context) (domain.Dashboard, error)
}

// DashboardHandler serves the per-owner overview.
type DashboardHandler struct {
	dashboard dashboardService
	log       *slog.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(dashboard dashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		log:       logger.With("handler", "dashboard"),
	}
}

// Get returns the caller's dispute and account counts.
// GET /api/dashboard
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.dashboard.Get(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboardResponse(d))
}
