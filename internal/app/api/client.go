package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nestboard/adminsdk/internal/infrastructure/apperr"
)

// APIPrefix is the fixed prefix token callers may use on paths; it is
// stripped before joining to the base URL.
const APIPrefix = "@api"

const csrfHeader = "X-CSRFToken"

// Credentials selects whether a request carries cookies and the anti-forgery
// header.
type Credentials int

const (
	CredentialsInclude Credentials = iota
	CredentialsOmit
)

// TokenManager supplies and invalidates the CSRF token attached to
// credentialed mutating requests.
type TokenManager interface {
	GetToken() (string, bool)
	Clear()
}

// ExpiredFunc runs when a credentialed call comes back 401. returnTo is the
// path the caller was addressing, for the login redirect.
type ExpiredFunc func(returnTo string)

type Config struct {
	BaseURL         string
	AdminPathSecret string
}

// Client issues HTTP calls and normalizes every outcome into either a
// well-formed envelope or a typed apperr error. Callers never branch on raw
// HTTP status codes.
type Client struct {
	cfg       Config
	http      *http.Client
	anon      *http.Client
	tokens    TokenManager
	onExpired ExpiredFunc
	clock     func() time.Time
}

func NewClient(cfg Config, httpClient *http.Client, tokens TokenManager, onExpired ExpiredFunc) *Client {
	if cfg.BaseURL == "" {
		panic("api.NewClient: empty base URL")
	}
	if httpClient == nil || tokens == nil {
		panic("api.NewClient: nil dependency")
	}

	// Anonymous twin without the cookie jar, for Credentials == omit.
	anon := *httpClient
	anon.Jar = nil

	return &Client{
		cfg:       Config{BaseURL: strings.TrimRight(cfg.BaseURL, "/"), AdminPathSecret: cfg.AdminPathSecret},
		http:      httpClient,
		anon:      &anon,
		tokens:    tokens,
		onExpired: onExpired,
		clock:     func() time.Time { return time.Now().UTC() },
	}
}

// AdminPath joins a resource path under the configured admin secret segment.
func (c *Client) AdminPath(parts ...string) string {
	segments := append([]string{c.cfg.AdminPathSecret}, parts...)
	return "/" + strings.Join(segments, "/") + "/"
}

// resolveURL handles the three path cases: absolute URLs pass through, the
// APIPrefix token is stripped before joining, bare paths join the base URL.
func (c *Client) resolveURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if strings.HasPrefix(path, APIPrefix) {
		path = strings.TrimPrefix(path, APIPrefix)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.cfg.BaseURL + path
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, creds Credentials) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, path, nil, query, creds)
}

func (c *Client) Post(ctx context.Context, path string, body any, creds Credentials) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, path, body, nil, creds)
}

func (c *Client) Put(ctx context.Context, path string, body any, creds Credentials) (*Envelope, error) {
	return c.do(ctx, http.MethodPut, path, body, nil, creds)
}

func (c *Client) Patch(ctx context.Context, path string, body any, creds Credentials) (*Envelope, error) {
	return c.do(ctx, http.MethodPatch, path, body, nil, creds)
}

func (c *Client) Delete(ctx context.Context, path string, body any, creds Credentials) (*Envelope, error) {
	return c.do(ctx, http.MethodDelete, path, body, nil, creds)
}

func (c *Client) do(ctx context.Context, method, path string, body any, query url.Values, creds Credentials) (*Envelope, error) {
	var reader io.Reader
	if body != nil && method != http.MethodGet {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api.Client.do: marshal body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := c.newRequest(ctx, method, path, reader, query, creds)
	if err != nil {
		return nil, err
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, path, creds)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, query url.Values, creds Credentials) (*http.Request, error) {
	target := c.resolveURL(path)
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("api.Client.newRequest: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if creds == CredentialsInclude && method != http.MethodGet {
		if token, ok := c.tokens.GetToken(); ok {
			req.Header.Set(csrfHeader, token)
		}
	}

	return req, nil
}

func (c *Client) send(req *http.Request, path string, creds Credentials) (*Envelope, error) {
	client := c.http
	if creds == CredentialsOmit {
		client = c.anon
	}

	start := c.clock()
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api.Client.send: %w", apperr.ErrUnavailable(err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api.Client.send: %w", apperr.ErrUnavailable(err))
	}

	zerolog.Ctx(req.Context()).Debug().
		Str("method", req.Method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", c.clock().Sub(start)).
		Msg("api request completed")

	if resp.StatusCode == http.StatusNoContent {
		// Bodiless acknowledgement, typical for deletes.
		return &Envelope{
			MetaData: &MetaData{
				Status:        StatusSuccess,
				AppStatusCode: resp.StatusCode,
				Timestamp:     c.clock().Format(time.RFC3339),
			},
		}, nil
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		if !isJSONContentType(resp.Header.Get("Content-Type")) {
			return nil, fmt.Errorf("api.Client.send: %w",
				apperr.ErrEmptyResponse(resp.StatusCode).WithDetail("unexpected content type "+resp.Header.Get("Content-Type")))
		}
		env, err := parseEnvelope(raw, resp.StatusCode, c.clock())
		if err != nil {
			return nil, fmt.Errorf("api.Client.send: %w", err)
		}
		return env, nil
	}

	return nil, fmt.Errorf("api.Client.send: %w", c.errorFromResponse(resp.StatusCode, raw, path, creds))
}

// errorFromResponse builds the typed error for a non-OK status, preferring
// the server's reported application code and message. A 401 additionally
// clears the token state and fires the session-expiry hook before the error
// propagates; both effects happen.
func (c *Client) errorFromResponse(httpStatus int, raw []byte, path string, creds Credentials) error {
	var env Envelope
	_ = json.Unmarshal(raw, &env)

	code := httpStatus
	message := http.StatusText(httpStatus)
	if env.MetaData != nil {
		if env.MetaData.AppStatusCode != 0 {
			code = env.MetaData.AppStatusCode
		}
		if env.MetaData.Message != "" {
			message = env.MetaData.Message
		}
	}

	level := apperr.LogLevelError
	if code >= 400 && code < 500 {
		level = apperr.LogLevelWarn
	}

	appErr := apperr.New(message, code, level).WithFields(env.Errors)
	if !isNullData(env.Data) {
		appErr = appErr.WithData(env.Data)
	}

	if httpStatus == http.StatusUnauthorized || code == apperr.CodeUnauthorized {
		if creds == CredentialsInclude {
			c.tokens.Clear()
			if c.onExpired != nil {
				c.onExpired(path)
			}
		}
	}

	return appErr
}

func isJSONContentType(ct string) bool {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	switch mt {
	case "application/json", "application/problem+json", "application/vnd.api+json":
		return true
	default:
		return strings.HasSuffix(mt, "+json")
	}
}
