package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Dienay/rangos-api/pkg/utils"
)

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type subjectKey struct{}

// Auth verifies the bearer token and stores its subject (the authenticated
// entity id) in the request context. Handlers compare it against the
// entity id named in the path.
func Auth(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.WriteError(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			subject, err := verifier.Verify(parts[1])
			if err != nil {
				utils.WriteError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey{}, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Subject returns the authenticated entity id stored by Auth.
func Subject(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey{}).(string)
	return subject, ok
}
