// Package memstore provides an in-process durable storage for development and tests.
// Records are lost on restart.
package memstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/skillhub/skills-dashboard/internal/ports"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Storage holds every browser namespace in a single map guarded by a mutex.
type Storage struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

var _ ports.ClientStorageProvider = (*Storage)(nil)

// New creates an empty in-memory storage. A positive ttl expires idle records.
func New(ttl time.Duration) *Storage {
	return &Storage{entries: make(map[string]entry), ttl: ttl, now: time.Now}
}

// ForClient returns the namespace of one browser.
func (s *Storage) ForClient(clientID string) ports.DurableStorage { //nolint:ireturn // port contract
	return &namespace{s: s, clientID: clientID}
}

// PurgeExpired drops expired records and reports how many were removed.
func (s *Storage) PurgeExpired(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	var n int64
	for k, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, k)
			n++
		}
	}
	return n, nil
}

// Len reports the number of stored records, including expired ones not yet purged.
func (s *Storage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

type namespace struct {
	s        *Storage
	clientID string
}

func (n *namespace) key(k string) string { return n.clientID + "\x00" + k }

func (n *namespace) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	n.s.mu.Lock()
	defer n.s.mu.Unlock()

	k := n.key(key)
	e, ok := n.s.entries[k]
	if !ok {
		return nil, false, nil
	}
	now := n.s.now()
	if e.expired(now) {
		delete(n.s.entries, k)
		return nil, false, nil
	}
	if n.s.ttl > 0 {
		e.expiresAt = now.Add(n.s.ttl)
		n.s.entries[k] = e
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true, nil
}

func (n *namespace) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.clientID == "" {
		return errors.New("client id cannot be empty")
	}
	e := entry{value: append([]byte(nil), value...)}
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	if n.s.ttl > 0 {
		e.expiresAt = n.s.now().Add(n.s.ttl)
	}
	n.s.entries[n.key(key)] = e
	return nil
}

func (n *namespace) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	delete(n.s.entries, n.key(key))
	return nil
}
