// Package middleware holds the HTTP middleware mounted by the REST router:
// request IDs, panic recovery, access logging, CORS, bearer auth, role
// gates and per-IP rate limiting.
package middleware

import "net/http"

// Middleware wraps an http.Handler. It matches chi's Use signature.
type Middleware = func(http.Handler) http.Handler
