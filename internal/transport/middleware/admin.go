package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/heartmarshall/vocabindex/internal/domain"
	"github.com/heartmarshall/vocabindex/pkg/ctxutil"
)

// AdminTokenHeader carries the shared admin secret.
const AdminTokenHeader = "X-Admin-Token"

// AdminToken returns middleware that marks the request context as admin when
// the AdminTokenHeader matches token. Requests without a matching header pass
// through unmarked. An empty token never matches.
func AdminToken(token string) Middleware {
	want := []byte(token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminTokenHeader)
			if len(want) > 0 && got != "" && subtle.ConstantTimeCompare([]byte(got), want) == 1 {
				r = r.WithContext(ctxutil.WithAdmin(r.Context()))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin returns domain.ErrForbidden if the context is not admin.
// Use in REST handlers, not as HTTP middleware.
func RequireAdmin(ctx context.Context) error {
	if !ctxutil.IsAdminCtx(ctx) {
		return domain.ErrForbidden
	}
	return nil
}
