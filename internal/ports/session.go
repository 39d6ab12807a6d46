package ports

// Package ports defines interfaces (hexagonal ports) for session and backend behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import "context"

// DurableStorage is a per-browser key/value store that survives restarts.
// Get reports ok=false for missing keys; Remove of a missing key is not an error.
type DurableStorage interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// ClientStorageProvider opens the durable storage namespace of one browser.
type ClientStorageProvider interface {
	ForClient(clientID string) DurableStorage
}

// AuthCookie mirrors the access token into the cookie the route guard reads.
type AuthCookie interface {
	Set(token string)
	Expire()
}

// Navigator performs a hard navigation that discards all client state.
type Navigator interface {
	Navigate(path string)
}

// TokenSource supplies the bearer token for outbound API calls.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// UnauthorizedHandler is invoked when the backend rejects a call with 401.
type UnauthorizedHandler interface {
	HandleUnauthorized(ctx context.Context) error
}

// TokenVerifier checks a backend-issued access token before it is stored.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) error
}
