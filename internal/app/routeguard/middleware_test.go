package routeguard_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/nestboard/adminsdk/internal/app/routeguard"
	"github.com/nestboard/adminsdk/internal/infrastructure/contextx"
)

func guarded(identity *contextx.Identity) (http.Handler, *bool) {
	rules := routeguard.NewRuleset(routeguard.DefaultRules())
	eval := routeguard.NewEvaluator(routeguard.DefaultOverrides())

	reached := false
	var next http.Handler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	guard := routeguard.Middleware(rules, eval, "/login")(next)

	if identity == nil {
		return guard, &reached
	}

	wrapped := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := contextx.SetToContext(r.Context(), contextx.ContextKeyIdentity, *identity)
		guard.ServeHTTP(w, r.WithContext(ctx))
	})

	return wrapped, &reached
}

func TestMiddleware_UnmatchedPathIsOpen(t *testing.T) {
	t.Parallel()

	handler, reached := guarded(nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, *reached)
}

func TestMiddleware_AnonymousRedirectedToLogin(t *testing.T) {
	t.Parallel()

	handler, reached := guarded(nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login?return_to=%2Flistings", rec.Header().Get("Location"))
	require.False(t, *reached)
}

func TestMiddleware_DeniedRendersEnvelope(t *testing.T) {
	t.Parallel()

	handler, reached := guarded(&contextx.Identity{UserID: uuid.New()})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/", nil))

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), `"AppStatusCode":403`)
	require.False(t, *reached)
}

func TestMiddleware_PermittedRequestPassesThrough(t *testing.T) {
	t.Parallel()

	handler, reached := guarded(&contextx.Identity{
		UserID:      uuid.New(),
		Permissions: []string{"listings.read"},
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, *reached)
}

func TestMiddleware_SelfEditBypass(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	handler, reached := guarded(&contextx.Identity{UserID: userID})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admins/"+userID.String()+"/edit", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, *reached)
}

func TestMiddleware_SuperAdminRoute(t *testing.T) {
	t.Parallel()

	handler, _ := guarded(&contextx.Identity{UserID: uuid.New(), SuperAdmin: false})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/roles/", nil))
	require.Equal(t, http.StatusForbidden, rec.Code)

	handler, reached := guarded(&contextx.Identity{UserID: uuid.New(), SuperAdmin: true})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/roles/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, *reached)
}
