package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nestboard/adminsdk/internal/app/session"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type env struct {
	clock   *fakeClock
	cookies map[string]string
	store   *session.MemoryStore
	manager *session.Manager
}

func setup(t *testing.T) *env {
	t.Helper()

	e := &env{
		clock:   &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		cookies: map[string]string{},
		store:   session.NewMemoryStore(),
	}
	source := session.CookieSourceFunc(func(name string) (string, bool) {
		value, ok := e.cookies[name]
		if !ok || value == "" {
			return "", false
		}
		return value, true
	})
	e.manager = session.NewManager(e.clock, source, e.store)

	return e
}

func TestManager_SetToken_ValidImmediately(t *testing.T) {
	t.Parallel()

	e := setup(t)
	e.cookies[session.SessionCookieName] = "sess-a"

	e.manager.SetToken("tok-1")

	require.True(t, e.manager.HasValidToken())
	token, ok := e.manager.GetToken()
	require.True(t, ok)
	require.Equal(t, "tok-1", token)
	require.Equal(t, session.StateCachedValid, e.manager.CurrentState())
}

func TestManager_TokenExpiresAfterMaxAge(t *testing.T) {
	t.Parallel()

	e := setup(t)
	e.cookies[session.SessionCookieName] = "sess-a"
	e.manager.SetToken("tok-1")

	e.clock.now = e.clock.now.Add(session.MaxTokenAge - time.Second)
	require.True(t, e.manager.HasValidToken())

	e.clock.now = e.clock.now.Add(2 * time.Second)
	require.False(t, e.manager.HasValidToken())

	// No CSRF cookie to fall back to, so the stale token is not served.
	_, ok := e.manager.GetToken()
	require.False(t, ok)
}

func TestManager_SessionBoundIsolation(t *testing.T) {
	t.Parallel()

	e := setup(t)
	e.cookies[session.SessionCookieName] = "sess-a"
	e.manager.SetToken("tok-a")

	// Session cookie changes to a different non-empty value: the token bound
	// to A must never surface again.
	e.cookies[session.SessionCookieName] = "sess-b"

	require.False(t, e.manager.HasValidToken())
	token, ok := e.manager.GetToken()
	require.False(t, ok)
	require.Empty(t, token)
}

func TestManager_SessionCookieGone_ClearsState(t *testing.T) {
	t.Parallel()

	e := setup(t)
	e.cookies[session.SessionCookieName] = "sess-a"
	e.manager.SetToken("tok-a")

	delete(e.cookies, session.SessionCookieName)

	_, ok := e.manager.GetToken()
	require.False(t, ok)
	require.Equal(t, session.StateAbsent, e.manager.CurrentState())

	// Restoring the old session does not resurrect the wiped token.
	e.cookies[session.SessionCookieName] = "sess-a"
	_, ok = e.manager.GetToken()
	require.False(t, ok)
}

func TestManager_AdoptsCSRFCookieAsGroundTruth(t *testing.T) {
	t.Parallel()

	e := setup(t)
	e.cookies[session.SessionCookieName] = "sess-a"
	e.cookies[session.CSRFCookieName] = "cookie-token"

	token, ok := e.manager.GetToken()
	require.True(t, ok)
	require.Equal(t, "cookie-token", token)

	// Adopted into memory: still served after the cookie disappears.
	delete(e.cookies, session.CSRFCookieName)
	token, ok = e.manager.GetToken()
	require.True(t, ok)
	require.Equal(t, "cookie-token", token)
}

func TestManager_ReloadsFromStoreAcrossInstances(t *testing.T) {
	t.Parallel()

	e := setup(t)
	e.cookies[session.SessionCookieName] = "sess-a"
	e.manager.SetToken("tok-a")

	source := session.CookieSourceFunc(func(name string) (string, bool) {
		value, ok := e.cookies[name]
		return value, ok && value != ""
	})
	fresh := session.NewManager(e.clock, source, e.store)

	token, ok := fresh.GetToken()
	require.True(t, ok)
	require.Equal(t, "tok-a", token)
}

func TestManager_CorruptStoreRecordTreatedAsAbsent(t *testing.T) {
	t.Parallel()

	e := setup(t)
	e.cookies[session.SessionCookieName] = "sess-a"
	e.store.Set("csrf_token_state", "{not json")

	_, ok := e.manager.GetToken()
	require.False(t, ok)

	_, stored := e.store.Get("csrf_token_state")
	require.False(t, stored)
}

func TestManager_Refresh(t *testing.T) {
	t.Parallel()

	e := setup(t)
	e.cookies[session.SessionCookieName] = "sess-a"

	_, ok := e.manager.Refresh()
	require.False(t, ok)

	e.cookies[session.CSRFCookieName] = "fresh-token"
	token, ok := e.manager.Refresh()
	require.True(t, ok)
	require.Equal(t, "fresh-token", token)
	require.True(t, e.manager.HasValidToken())
}

func TestManager_Clear(t *testing.T) {
	t.Parallel()

	e := setup(t)
	e.cookies[session.SessionCookieName] = "sess-a"
	e.manager.SetToken("tok-a")

	e.manager.Clear()

	require.False(t, e.manager.HasValidToken())
	_, stored := e.store.Get("csrf_token_state")
	require.False(t, stored)
}

func TestManager_SetEmptyTokenClears(t *testing.T) {
	t.Parallel()

	e := setup(t)
	e.cookies[session.SessionCookieName] = "sess-a"
	e.manager.SetToken("tok-a")

	e.manager.SetToken("")

	require.False(t, e.manager.HasValidToken())
}
