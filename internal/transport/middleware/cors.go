package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/credit-disputer/internal/config"
)

// CORS answers browser preflights and decorates responses for allowed
// origins. The dashboard frontend reads X-Request-Id from responses, so it
// is exposed by default.
func CORS(cfg config.CORSConfig) Middleware {
	allowed, anyOrigin := splitOrigins(cfg.AllowedOrigins)
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			_, listed := allowed[origin]
			if !anyOrigin && !listed {
				next.ServeHTTP(w, r)
				return
			}

			h.Set("Access-Control-Allow-Origin", origin)
			if cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
				h.Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
				h.Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			if cfg.ExposedHeaders != "" {
				h.Set("Access-Control-Expose-Headers", cfg.ExposedHeaders)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func splitOrigins(raw string) (map[string]struct{}, bool) {
	set := make(map[string]struct{})
	wildcard := false
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		switch o {
		case "":
		case "*":
			wildcard = true
		default:
			set[o] = struct{}{}
		}
	}
	return set, wildcard
}
