package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/credit-disputer/internal/config"
	"github.com/heartmarshall/credit-disputer/internal/transport/middleware"
)

// RouterDeps holds the handlers and middleware the router mounts.
type RouterDeps struct {
	Health    *HealthHandler
	Disputes  *DisputeHandler
	Accounts  *AccountHandler
	Documents *DocumentHandler
	Dashboard *DashboardHandler
	Admin     *AdminHandler

	Auth        middleware.Middleware
	RateLimiter *middleware.RateLimiter
	RateLimit   config.RateLimitConfig
	CORS        config.CORSConfig
	Logger      *slog.Logger
}

// NewRouter builds the HTTP routing tree. Probes are public; /api requires
// a user and /admin requires the admin role.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Logger),
		middleware.Logger(d.Logger),
		middleware.CORS(d.CORS),
		d.Auth,
	)

	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)
	r.Get("/health", d.Health.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Limit("api", d.RateLimit.APIPerMinute))
		}

		r.Post("/accounts", d.Accounts.Create)
		r.Post("/accounts/import", d.Accounts.Import)
		r.Get("/accounts", d.Accounts.List)
		r.Get("/accounts/{id}", d.Accounts.Get)

		r.Post("/disputes", d.Disputes.Create)
		r.Get("/disputes", d.Disputes.List)
		r.Get("/disputes/awaiting", d.Disputes.Awaiting)
		r.Get("/disputes/{id}", d.Disputes.Get)
		r.Get("/disputes/{id}/letter", d.Disputes.Letter)
		r.Post("/disputes/{id}/resolve", d.Disputes.Resolve)

		r.Post("/documents", d.Documents.Attach)
		r.Get("/documents", d.Documents.List)

		r.Get("/dashboard", d.Dashboard.Get)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Limit("admin", d.RateLimit.AdminPerMinute))
		}

		r.Get("/disputes/awaiting", d.Admin.Awaiting)
		r.Post("/reconcile", d.Admin.Reconcile)
		r.Get("/reconcile", d.Admin.ReconcileStatus)
	})

	return r
}
