package cookiex

import (
	"net/url"
	"strings"
)

// Parse splits a raw Cookie header into name/value pairs. Unparsable entries
// are skipped, never reported: a single malformed pair must not hide the
// session or CSRF cookies next to it.
func Parse(raw string) map[string]string {
	cookies := make(map[string]string)
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, value, found := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			continue
		}

		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"`)
		if decoded, err := url.QueryUnescape(value); err == nil {
			value = decoded
		}

		cookies[name] = value
	}

	return cookies
}

// Get returns the named cookie's value from a raw Cookie header.
func Get(raw, name string) (string, bool) {
	value, ok := Parse(raw)[name]
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
