package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nestboard/adminsdk/internal/app/session"
	"github.com/nestboard/adminsdk/internal/infrastructure/auth"
	"github.com/nestboard/adminsdk/internal/infrastructure/contextx"
)

const secret = "test-secret"

func signedCookie(t *testing.T, userID uuid.UUID, superAdmin bool, permissions []string) *http.Cookie {
	t.Helper()

	claims := auth.SessionClaims{
		SuperAdmin:  superAdmin,
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return &http.Cookie{Name: session.SessionCookieName, Value: token}
}

func TestIdentityMiddleware_ResolvesIdentity(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := auth.New(secret)

	var got contextx.Identity
	var gotErr error
	handler := svc.IdentityMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, gotErr = contextx.GetIdentity(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/listings", nil)
	req.AddCookie(signedCookie(t, userID, true, []string{"listings.read"}))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NoError(t, gotErr)
	require.Equal(t, userID, got.UserID)
	require.True(t, got.SuperAdmin)
	require.Equal(t, []string{"listings.read"}, got.Permissions)
}

func TestIdentityMiddleware_MissingCookieStaysAnonymous(t *testing.T) {
	t.Parallel()

	svc := auth.New(secret)

	var gotErr error
	handler := svc.IdentityMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotErr = contextx.GetIdentity(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/listings", nil))

	require.Error(t, gotErr)
}

func TestIdentityMiddleware_TamperedTokenStaysAnonymous(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := auth.New("other-secret")

	var gotErr error
	handler := svc.IdentityMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotErr = contextx.GetIdentity(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/listings", nil)
	req.AddCookie(signedCookie(t, userID, false, nil))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	// Signed with the wrong secret: session key is noted, identity is not.
	require.Error(t, gotErr)
}
