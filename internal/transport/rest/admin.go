package rest

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/heartmarshall/credit-disputer/internal/service/reconcile"
)

type reconcileRunner interface {
	Run(ctx context.Context, opts reconcile.RunOptions) reconcile.Report
}

// AdminHandler serves operator endpoints. Routes are mounted behind
// middleware.RequireAdmin.
type AdminHandler struct {
	disputes  *DisputeHandler
	reconcile reconcileRunner
	log       *slog.Logger

	// base outlives requests; cancelling it interrupts a background run.
	base context.Context
	wg   sync.WaitGroup

	mu      sync.Mutex
	running bool
	last    *reconcile.Report
}

// NewAdminHandler creates an AdminHandler. Reconcile runs triggered over
// HTTP are children of ctx.
func NewAdminHandler(ctx context.Context, disputes *DisputeHandler, runner reconcileRunner, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		disputes:  disputes,
		reconcile: runner,
		log:       logger.With("handler", "admin"),
		base:      ctx,
	}
}

// Awaiting lists overdue disputes across all owners.
// GET /admin/disputes/awaiting?limit=100
func (h *AdminHandler) Awaiting(w http.ResponseWriter, r *http.Request) {
	h.disputes.awaiting(w, r, true)
}

// Reconcile starts one reconciliation pass in the background and answers
// 202 right away. Only one pass runs at a time; its report is served by
// ReconcileStatus once it finishes.
// POST /admin/reconcile?steps=send,poll,escalate
func (h *AdminHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	steps, err := reconcile.ParseSteps(r.URL.Query().Get("steps"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		writeError(w, http.StatusConflict, "reconcile already running")
		return
	}
	h.running = true
	h.mu.Unlock()

	h.wg.Add(1)
	go h.run(steps)

	h.log.InfoContext(r.Context(), "reconcile triggered", slog.Any("steps", steps))
	writeJSON(w, http.StatusAccepted, reconcileStatusResponse{Running: true, Last: h.lastReport()})
}

func (h *AdminHandler) run(steps []reconcile.Step) {
	defer h.wg.Done()

	rep := h.reconcile.Run(h.base, reconcile.RunOptions{Steps: steps})
	h.log.Info("reconcile finished",
		slog.Int("failed", rep.Failed()),
		slog.Bool("interrupted", rep.Interrupted),
	)

	h.mu.Lock()
	h.running = false
	h.last = &rep
	h.mu.Unlock()
}

// ReconcileStatus reports whether a pass is running and the last finished
// report, if any.
// GET /admin/reconcile
func (h *AdminHandler) ReconcileStatus(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	running := h.running
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, reconcileStatusResponse{Running: running, Last: h.lastReport()})
}

func (h *AdminHandler) lastReport() *reportResponse {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.last == nil {
		return nil
	}
	resp := toReportResponse(*h.last)
	return &resp
}

// Wait blocks until a background pass, if any, has finished.
func (h *AdminHandler) Wait() {
	h.wg.Wait()
}
