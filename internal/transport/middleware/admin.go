package middleware

import (
	"net/http"

	"github.com/heartmarshall/credit-disputer/pkg/ctxutil"
)

// RequireAdmin rejects callers without the admin role: 401 when anonymous,
// 403 otherwise.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !ctxutil.IsAdminCtx(r.Context()) {
			http.Error(w, "admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
