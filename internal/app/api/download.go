package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/nestboard/adminsdk/internal/infrastructure/apperr"
)

// Download fetches a binary export (CSV, XLSX) outside the envelope contract.
// Failures still surface as typed errors; error bodies from the backend keep
// the envelope shape even on export endpoints.
func (c *Client) Download(ctx context.Context, path string, query url.Values) ([]byte, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, query, CredentialsInclude)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("api.Client.Download: %w", apperr.ErrUnavailable(err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("api.Client.Download: %w", apperr.ErrUnavailable(err))
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, "", fmt.Errorf("api.Client.Download: %w", c.errorFromResponse(resp.StatusCode, raw, path, CredentialsInclude))
	}

	return raw, resp.Header.Get("Content-Type"), nil
}
