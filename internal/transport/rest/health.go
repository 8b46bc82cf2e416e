package rest

import (
	"context"
	"net/http"
	"time"
)

const probeTimeout = 3 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

// Probe is a named dependency checked by /ready and /health.
type Probe struct {
	Name  string
	Check func(ctx context.Context) error
}

// PingProbe wraps anything with a Ping method, such as a pgx pool.
func PingProbe(name string, p pinger) Probe {
	return Probe{Name: name, Check: p.Ping}
}

// HealthHandler serves the liveness, readiness and health endpoints.
type HealthHandler struct {
	version   string
	providers map[string]string
	probes    []Probe
	started   time.Time
}

// NewHealthHandler builds a HealthHandler. providers is reported as-is on
// /health so operators can see which letter and notification backends the
// process was started with.
func NewHealthHandler(version string, providers map[string]string, probes ...Probe) *HealthHandler {
	return &HealthHandler{
		version:   version,
		providers: providers,
		probes:    probes,
		started:   time.Now(),
	}
}

// HealthResponse is the body of every probe endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version,omitempty"`
	Uptime    string                 `json:"uptime,omitempty"`
	Providers map[string]string      `json:"providers,omitempty"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// CheckResult is the outcome of one probe.
type CheckResult struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live always answers 200 while the process is serving.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 503 as soon as any probe fails.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	_, ok := h.runProbes(r.Context())
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "down", Timestamp: time.Now()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Health reports every probe with its latency plus build and provider info.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks, ok := h.runProbes(r.Context())

	resp := HealthResponse{
		Status:    "ok",
		Version:   h.version,
		Uptime:    time.Since(h.started).Round(time.Second).String(),
		Providers: h.providers,
		Checks:    checks,
		Timestamp: time.Now(),
	}
	status := http.StatusOK
	if !ok {
		resp.Status = "down"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

// runProbes checks every probe under one shared deadline. Error text is not
// reported since the endpoints are unauthenticated.
func (h *HealthHandler) runProbes(ctx context.Context) (map[string]CheckResult, bool) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	results := make(map[string]CheckResult, len(h.probes))
	ok := true
	for _, p := range h.probes {
		start := time.Now()
		err := p.Check(ctx)
		if err != nil {
			ok = false
			results[p.Name] = CheckResult{Status: "down"}
			continue
		}
		results[p.Name] = CheckResult{Status: "ok", Latency: time.Since(start).String()}
	}
	return results, ok
}
