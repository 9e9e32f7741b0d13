package session

import (
	"sync"
	"time"

	"github.com/goccy/go-json"
)

const (
	// MaxTokenAge is the freshness window for a cached CSRF token. Fixed by
	// contract with the backend, not configurable at runtime.
	MaxTokenAge = time.Hour

	SessionCookieName = "sessionid"
	CSRFCookieName    = "csrftoken"

	storeKey = "csrf_token_state"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// CookieSource is a read-only view of the cookies the backend deliberately
// exposes to this layer (session identity and CSRF token).
type CookieSource interface {
	Get(name string) (string, bool)
}

type CookieSourceFunc func(name string) (string, bool)

func (f CookieSourceFunc) Get(name string) (string, bool) { return f(name) }

// Store is short-lived, tab-scoped persistence. Implementations are
// best-effort: they never fail, a miss is returned as ok=false.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// State describes the two-tier read strategy's position for introspection.
type State string

const (
	StateAbsent      State = "absent"
	StateCachedValid State = "cached_valid"
	StateCachedStale State = "cached_stale"
	StateAdopting    State = "adopting"
)

// record is the persisted token shape. A record that does not decode is
// treated as absent.
type record struct {
	Token       string    `json:"token"`
	LastUpdated time.Time `json:"last_updated"`
	SessionKey  string    `json:"session_key"`
}

// Manager binds a CSRF token to the live session. A token is served only
// while it is fresh and its session key still equals the session cookie, so
// a token can never leak across a session change.
type Manager struct {
	mu      sync.Mutex
	clock   Clock
	cookies CookieSource
	store   Store

	token       string
	lastUpdated time.Time
	sessionKey  string
}

func NewManager(clock Clock, cookies CookieSource, store Store) *Manager {
	if clock == nil || cookies == nil || store == nil {
		panic("session.NewManager: nil dependency")
	}

	return &Manager{
		clock:   clock,
		cookies: cookies,
		store:   store,
	}
}

// GetToken returns a currently-valid CSRF token. Resolution order: live
// session check, in-memory cache, persisted record, CSRF cookie as ground
// truth (adopted into cache bound to the current session).
func (m *Manager) GetToken() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessionKey, ok := m.cookies.Get(SessionCookieName)
	if !ok {
		m.clearLocked()
		return "", false
	}

	now := m.clock.Now()
	if m.validLocked(now, sessionKey) {
		return m.token, true
	}

	if rec, ok := m.loadRecordLocked(); ok {
		m.token = rec.Token
		m.lastUpdated = rec.LastUpdated
		m.sessionKey = rec.SessionKey
		if m.validLocked(now, sessionKey) {
			return m.token, true
		}
	}

	// The cookie is ground truth; adopt it under the current session.
	if token, ok := m.cookies.Get(CSRFCookieName); ok {
		m.adoptLocked(token, now, sessionKey)
		return token, true
	}

	m.clearLocked()
	return "", false
}

// SetToken stores a token with a fresh timestamp bound to the current
// session. An empty token clears all state.
func (m *Manager) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token == "" {
		m.clearLocked()
		return
	}

	sessionKey, _ := m.cookies.Get(SessionCookieName)
	m.adoptLocked(token, m.clock.Now(), sessionKey)
}

// Clear wipes in-memory and persisted token state unconditionally.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearLocked()
}

// Refresh reads the CSRF cookie directly and adopts it as current. It does
// not fail: an absent cookie returns ok=false.
func (m *Manager) Refresh() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, ok := m.cookies.Get(CSRFCookieName)
	if !ok {
		return "", false
	}

	sessionKey, _ := m.cookies.Get(SessionCookieName)
	m.adoptLocked(token, m.clock.Now(), sessionKey)

	return token, true
}

// HasValidToken reports whether the cached token would be served as-is.
func (m *Manager) HasValidToken() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessionKey, ok := m.cookies.Get(SessionCookieName)
	if !ok {
		m.clearLocked()
		return false
	}

	return m.validLocked(m.clock.Now(), sessionKey)
}

// CurrentState exposes the read-strategy state.
func (m *Manager) CurrentState() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessionKey, ok := m.cookies.Get(SessionCookieName)
	if !ok {
		return StateAbsent
	}
	if m.token == "" {
		if _, ok := m.cookies.Get(CSRFCookieName); ok {
			return StateAdopting
		}
		if _, ok := m.loadRecordLocked(); ok {
			return StateAdopting
		}
		return StateAbsent
	}
	if m.validLocked(m.clock.Now(), sessionKey) {
		return StateCachedValid
	}

	return StateCachedStale
}

func (m *Manager) validLocked(now time.Time, sessionKey string) bool {
	return m.token != "" &&
		!m.lastUpdated.IsZero() &&
		now.Sub(m.lastUpdated) < MaxTokenAge &&
		m.sessionKey == sessionKey
}

func (m *Manager) adoptLocked(token string, now time.Time, sessionKey string) {
	m.token = token
	m.lastUpdated = now
	m.sessionKey = sessionKey

	raw, err := json.Marshal(record{Token: token, LastUpdated: now, SessionKey: sessionKey})
	if err != nil {
		return
	}
	m.store.Set(storeKey, string(raw))
}

func (m *Manager) loadRecordLocked() (record, bool) {
	raw, ok := m.store.Get(storeKey)
	if !ok {
		return record{}, false
	}

	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil || rec.Token == "" {
		// Corrupt persisted record, treat as absent.
		m.clearLocked()
		return record{}, false
	}

	return rec, true
}

func (m *Manager) clearLocked() {
	m.token = ""
	m.lastUpdated = time.Time{}
	m.sessionKey = ""
	m.store.Delete(storeKey)
}
