package auth

import (
	"context"
	"net/http"

	"github.com/user/memberchat/apperror"
)

// Authenticator resolves a raw Authorization header to an identity.
// It is the one capability every protected endpoint composes in, rather
// than each handler re-implementing token checks.
type Authenticator interface {
	Authenticate(ctx context.Context, authorizationHeader string) (*Identity, error)
}

// RequireToken returns middleware that rejects requests without a valid
// "Token <key>" Authorization header and installs the resolved identity
// into the request context for downstream handlers.
func RequireToken(a Authenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := a.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				// Protected endpoints answer 401 for every authentication
				// failure, including the defensive dangling-token case.
				if apperror.IsNotFound(err) {
					err = apperror.NewAuthenticationError("token user not found", err)
				}
				WriteError(w, r, err)
				return
			}
			if identity == nil {
				WriteError(w, r, apperror.NewAuthenticationError("authentication required", nil))
				return
			}

			ctx := NewContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
