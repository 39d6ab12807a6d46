package auth

// Package auth contains simple hand-written test doubles for the browser-facing
// session ports. These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"

	"github.com/skillhub/skills-dashboard/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthCookie          = (*RecordingCookie)(nil)
	_ ports.Navigator           = (*RecordingNavigator)(nil)
	_ ports.TokenSource         = StaticTokenSource("")
	_ ports.UnauthorizedHandler = (*UnauthorizedCounter)(nil)
	_ ports.DurableStorage      = (*FuncStorage)(nil)
)

// RecordingCookie remembers the last token written and whether it was expired.
type RecordingCookie struct {
	mu      sync.Mutex
	value   string
	present bool
	sets    int
	expires int
}

func (c *RecordingCookie) Set(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = token
	c.present = token != ""
	c.sets++
}

func (c *RecordingCookie) Expire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = ""
	c.present = false
	c.expires++
}

// Value returns the current cookie value and whether the cookie is present.
func (c *RecordingCookie) Value() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.present
}

// Counts returns how many times Set and Expire were called.
func (c *RecordingCookie) Counts() (sets, expires int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets, c.expires
}

// RecordingNavigator records every navigation target.
type RecordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *RecordingNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

// Paths returns the recorded navigation targets in order.
func (n *RecordingNavigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

// Last returns the most recent navigation target, or "".
func (n *RecordingNavigator) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}

// StaticTokenSource always returns the same token.
type StaticTokenSource string

func (s StaticTokenSource) AccessToken(context.Context) (string, error) { return string(s), nil }

// UnauthorizedCounter counts 401 notifications and optionally fails them.
type UnauthorizedCounter struct {
	mu    sync.Mutex
	calls int
	Err   error
}

func (u *UnauthorizedCounter) HandleUnauthorized(context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++
	return u.Err
}

// Calls returns the number of notifications received.
func (u *UnauthorizedCounter) Calls() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls
}

// FuncStorage delegates to optional funcs and falls back to an in-memory map.
type FuncStorage struct {
	GetFunc    func(ctx context.Context, key string) ([]byte, bool, error)
	SetFunc    func(ctx context.Context, key string, value []byte) error
	RemoveFunc func(ctx context.Context, key string) error

	mu   sync.Mutex
	data map[string][]byte
}

func (f *FuncStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.GetFunc != nil {
		return f.GetFunc(ctx, key)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *FuncStorage) Set(ctx context.Context, key string, value []byte) error {
	if f.SetFunc != nil {
		return f.SetFunc(ctx, key, value)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.data == nil {
		f.data = make(map[string][]byte)
	}
	f.data[key] = append([]byte(nil), value...)
	return nil
}

func (f *FuncStorage) Remove(ctx context.Context, key string) error {
	if f.RemoveFunc != nil {
		return f.RemoveFunc(ctx, key)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

// Keys returns the stored keys.
func (f *FuncStorage) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	return keys
}
