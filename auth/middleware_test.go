package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/memberchat/apperror"
)

// fakeAuthenticator resolves headers from a fixed table, standing in
// for the database-backed service.
type fakeAuthenticator struct {
	identities map[string]*Identity
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, header string) (*Identity, error) {
	key, attempted, err := ParseAuthorization(header)
	if err != nil {
		return nil, err
	}
	if !attempted {
		return nil, nil
	}
	identity, ok := f.identities[key]
	if !ok {
		return nil, apperror.NewAuthenticationError("invalid token", nil)
	}
	return identity, nil
}

type authenticatorFunc func(ctx context.Context, header string) (*Identity, error)

func (f authenticatorFunc) Authenticate(ctx context.Context, header string) (*Identity, error) {
	return f(ctx, header)
}

func TestRequireTokenValid(t *testing.T) {
	t.Parallel()

	want := &Identity{
		User:  User{ID: 1, Username: "alice"},
		Token: Token{Key: "deadbeef", UserID: 1},
	}
	authn := &fakeAuthenticator{identities: map[string]*Identity{"deadbeef": want}}

	var seen *Identity
	handler := RequireToken(authn)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		seen = id
	}))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Token deadbeef")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, want.User.Username, seen.User.Username)
	assert.Equal(t, want.Token.Key, seen.Token.Key)
}

func TestRequireTokenFailures(t *testing.T) {
	t.Parallel()

	identity := &Identity{
		User:  User{ID: 1, Username: "alice"},
		Token: Token{Key: "deadbeef", UserID: 1},
	}
	authn := &fakeAuthenticator{identities: map[string]*Identity{"deadbeef": identity}}
	handler := RequireToken(authn)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for unauthenticated requests")
	}))

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Bearer deadbeef"},
		{"keyword alone", "Token"},
		{"too many words", "Token dead beef"},
		{"unknown token", "Token cafebabe"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/profile", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

// Dangling tokens surface as 401 at the endpoint boundary even though
// the service reports them as a distinct not-found condition.
func TestRequireTokenDanglingUser(t *testing.T) {
	t.Parallel()

	authn := authenticatorFunc(func(ctx context.Context, header string) (*Identity, error) {
		return nil, apperror.NewNotFoundError("token user not found", nil)
	})
	handler := RequireToken(authn)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Authorization", "Token deadbeef")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIdentityFromContextMissing(t *testing.T) {
	t.Parallel()

	_, ok := IdentityFromContext(context.Background())
	assert.False(t, ok)
}
