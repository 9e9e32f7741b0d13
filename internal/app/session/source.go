package session

import (
	"net/http"
	"net/url"

	"github.com/nestboard/adminsdk/internal/infrastructure/cookiex"
)

// NewHeaderSource reads cookies from a raw Cookie header string. Parsing is
// tolerant: malformed pairs are skipped.
func NewHeaderSource(raw string) CookieSource {
	return CookieSourceFunc(func(name string) (string, bool) {
		return cookiex.Get(raw, name)
	})
}

// NewJarSource reads cookies from an http.CookieJar scoped to the backend
// base URL, so a Manager can share cookie state with the http.Client issuing
// the requests.
func NewJarSource(jar http.CookieJar, base *url.URL) CookieSource {
	return CookieSourceFunc(func(name string) (string, bool) {
		for _, cookie := range jar.Cookies(base) {
			if cookie.Name == name && cookie.Value != "" {
				return cookie.Value, true
			}
		}
		return "", false
	})
}
