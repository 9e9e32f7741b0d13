package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Typed wrappers over Client for the credentialed CRUD surface the resource
// clients share. Each decodes the envelope payload into the caller's type.

// List fetches a page of T and reconciles the server's pagination block
// against the requested window.
func List[T any](ctx context.Context, c *Client, path string, page Page, query url.Values) ([]T, Pagination, error) {
	env, err := c.Get(ctx, path, page.Apply(query), CredentialsInclude)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("api.List: %w", err)
	}

	items, err := DecodeData[[]T](env)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("api.List: %w", err)
	}

	return items, Reconcile(page, env.Pagination), nil
}

func One[T any](ctx context.Context, c *Client, path string) (T, error) {
	env, err := c.Get(ctx, path, nil, CredentialsInclude)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("api.One: %w", err)
	}

	value, err := DecodeData[T](env)
	if err != nil {
		return value, fmt.Errorf("api.One: %w", err)
	}

	return value, nil
}

func Create[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return mutate[T](ctx, c, http.MethodPost, path, body)
}

func Update[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return mutate[T](ctx, c, http.MethodPut, path, body)
}

func mutate[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T

	env, err := c.do(ctx, method, path, body, nil, CredentialsInclude)
	if err != nil {
		return zero, fmt.Errorf("api.mutate: %w", err)
	}

	value, err := DecodeData[T](env)
	if err != nil {
		return value, fmt.Errorf("api.mutate: %w", err)
	}

	return value, nil
}

// Remove issues a DELETE and discards the payload; the backend acknowledges
// deletes with a bare status envelope.
func Remove(ctx context.Context, c *Client, path string, body any) error {
	if _, err := c.Delete(ctx, path, body, CredentialsInclude); err != nil {
		return fmt.Errorf("api.Remove: %w", err)
	}

	return nil
}
