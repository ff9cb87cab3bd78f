package shell

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eringen/blogshell/content"
)

var (
	// ErrUnknownShell is returned for ids that were never mounted, were
	// unmounted, or expired.
	ErrUnknownShell = errors.New("shell: unknown shell")
	// ErrNotOwner is returned when a visitor addresses another visitor's
	// shell.
	ErrNotOwner = errors.New("shell: not owner")
)

type mounted struct {
	mu       sync.Mutex
	shell    *PageShell
	owner    string
	lastSeen time.Time
}

// Registry tracks the shells of pages currently open in browsers, so a
// toggle request can reach the controller of the page it came from.
// Shells idle longer than the TTL are unmounted.
type Registry struct {
	mu     sync.Mutex
	shells map[string]*mounted
	ttl    time.Duration
	now    func() time.Time
	done   chan struct{}
	once   sync.Once
}

// NewRegistry creates a Registry and starts its expiry janitor.
func NewRegistry(ttl time.Duration) *Registry {
	r := &Registry{
		shells: make(map[string]*mounted),
		ttl:    ttl,
		now:    time.Now,
		done:   make(chan struct{}),
	}
	go r.janitor()
	return r
}

func (r *Registry) janitor() {
	ticker := time.NewTicker(r.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.Expire()
		case <-r.done:
			return
		}
	}
}

// Close stops the janitor. Mounted shells stay addressable.
func (r *Registry) Close() {
	r.once.Do(func() { close(r.done) })
}

// Expire unmounts every shell idle for longer than the TTL and returns
// how many were removed.
func (r *Registry) Expire() int {
	cutoff := r.now().Add(-r.ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, m := range r.shells {
		m.mu.Lock()
		idle := m.lastSeen.Before(cutoff)
		m.mu.Unlock()
		if idle {
			delete(r.shells, id)
			n++
		}
	}
	return n
}

// Mount mounts a new shell for owner and registers it under a fresh id.
func (r *Registry) Mount(ctx context.Context, owner string, provider content.Provider) (*PageShell, error) {
	s, err := Mount(ctx, uuid.NewString(), provider)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.shells[s.ID] = &mounted{shell: s, owner: owner, lastSeen: r.now()}
	r.mu.Unlock()
	return s, nil
}

// With runs fn with exclusive access to the shell registered under id.
func (r *Registry) With(id, owner string, fn func(*PageShell) error) error {
	r.mu.Lock()
	m, ok := r.shells[id]
	r.mu.Unlock()
	if !ok {
		return ErrUnknownShell
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.owner != owner {
		return ErrNotOwner
	}
	m.lastSeen = r.now()
	return fn(m.shell)
}

// Unmount removes the shell registered under id.
func (r *Registry) Unmount(id, owner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.shells[id]
	if !ok {
		return ErrUnknownShell
	}
	if m.owner != owner {
		return ErrNotOwner
	}
	delete(r.shells, id)
	return nil
}

// Len returns the number of mounted shells.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.shells)
}
