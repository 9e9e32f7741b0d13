package contextx

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrNotFound = fmt.Errorf("not found in context")

type contextKey string

func (key contextKey) String() string {
	return string(key)
}

const (
	ContextKeyUserID     = contextKey("user_id")
	ContextKeySessionKey = contextKey("session_key")
	ContextKeyIdentity   = contextKey("identity")
)

// Identity is the authenticated subject the guard middleware resolves from
// the session cookie. Permissions are "module.action" strings.
type Identity struct {
	UserID      uuid.UUID
	SuperAdmin  bool
	Permissions []string
}

func getValue[T any](ctx context.Context, key contextKey) (T, error) {
	var zero T

	value := ctx.Value(key)
	if value == nil {
		return zero, fmt.Errorf("key %v: %w", key, ErrNotFound)
	}

	v, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("key %v: wrong format in context, got %T, want %T", key, value, zero)
	}

	return v, nil
}

func GetUserID(ctx context.Context) (uuid.UUID, error) {
	userID, err := getValue[uuid.UUID](ctx, ContextKeyUserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("contextx.GetUserID: %w", err)
	}
	if userID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("contextx.GetUserID: user ID is nil")
	}

	return userID, nil
}

func GetSessionKey(ctx context.Context) (string, error) {
	sessionKey, err := getValue[string](ctx, ContextKeySessionKey)
	if err != nil {
		return "", fmt.Errorf("contextx.GetSessionKey: %w", err)
	}

	return sessionKey, nil
}

// GetIdentity returns the authenticated identity, or ErrNotFound when the
// request is anonymous.
func GetIdentity(ctx context.Context) (Identity, error) {
	identity, err := getValue[Identity](ctx, ContextKeyIdentity)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Identity{}, fmt.Errorf("contextx.GetIdentity: %w", ErrNotFound)
		}
		return Identity{}, fmt.Errorf("contextx.GetIdentity: %w", err)
	}

	return identity, nil
}

func SetToContext[T any](ctx context.Context, key contextKey, value T) context.Context {
	return context.WithValue(ctx, key, value)
}
