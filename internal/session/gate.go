// Package session binds collection stores to the signed-in identity.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/Innovatorone/InnoBOOKweb/internal/collection"
	"github.com/Innovatorone/InnoBOOKweb/internal/logger"
	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// Lifecycle is implemented by every store the gate manages.
type Lifecycle interface {
	Initialize(ctx context.Context, identity uuid.UUID)
}

// Toggler is the mutating side of a collection store.
type Toggler[M comparable] interface {
	Toggle(ctx context.Context, member M) (bool, error)
}

// State is the gate state.
type State int

const (
	Inactive State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// Gate tracks the current identity and re-initializes registered stores
// whenever it changes. A switch between two identities is a full teardown
// of every store followed by a reload.
type Gate struct {
	logger *logger.Logger

	// transition serializes identity changes so stores never end up bound
	// to an older identity than the gate.
	transition sync.Mutex

	mu       sync.RWMutex
	identity uuid.UUID
	stores   []Lifecycle
}

// NewGate creates an inactive gate managing stores.
func NewGate(logger *logger.Logger, stores ...Lifecycle) *Gate {
	return &Gate{
		logger: logger,
		stores: stores,
	}
}

// Register adds a store and binds it to the current identity.
func (g *Gate) Register(ctx context.Context, store Lifecycle) {
	g.transition.Lock()
	defer g.transition.Unlock()

	g.mu.Lock()
	g.stores = append(g.stores, store)
	identity := g.identity
	g.mu.Unlock()

	if identity != uuid.Nil {
		store.Initialize(ctx, identity)
	}
}

// Identity returns the current identity or uuid.Nil.
func (g *Gate) Identity() uuid.UUID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.identity
}

// Active reports whether an identity is present.
func (g *Gate) Active() bool {
	return g.Identity() != uuid.Nil
}

// State returns Active when an identity is present.
func (g *Gate) State() State {
	if g.Active() {
		return Active
	}
	return Inactive
}

// Login activates the gate for identity.
func (g *Gate) Login(ctx context.Context, identity uuid.UUID) error {
	if identity == uuid.Nil {
		return model.ErrUnauthorized
	}
	g.SetIdentity(ctx, identity)
	return nil
}

// Logout deactivates the gate and clears every store.
func (g *Gate) Logout(ctx context.Context) {
	g.SetIdentity(ctx, uuid.Nil)
}

// SetIdentity moves the gate to identity and re-initializes every store.
// It returns after all stores finished loading.
func (g *Gate) SetIdentity(ctx context.Context, identity uuid.UUID) {
	g.transition.Lock()
	defer g.transition.Unlock()

	g.mu.Lock()
	prev := g.identity
	if prev == identity {
		g.mu.Unlock()
		return
	}
	g.identity = identity
	stores := append([]Lifecycle(nil), g.stores...)
	g.mu.Unlock()

	g.logger.Info("Session gate: identity changed",
		"from", prev,
		"to", identity,
		"stores", len(stores))

	var wg sync.WaitGroup
	for _, s := range stores {
		wg.Add(1)
		go func(s Lifecycle) {
			defer wg.Done()
			s.Initialize(ctx, identity)
		}(s)
	}
	wg.Wait()
}

// Run applies identity changes received on updates until ctx is done or
// updates is closed.
func (g *Gate) Run(ctx context.Context, updates <-chan uuid.UUID) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case identity, ok := <-updates:
			if !ok {
				return nil
			}
			g.SetIdentity(ctx, identity)
		}
	}
}

// Toggle flips member in store on behalf of the current identity. Without
// an identity it fails with model.ErrUnauthorized before touching the store.
func Toggle[M comparable](ctx context.Context, g *Gate, store Toggler[M], member M) (bool, error) {
	if !g.Active() {
		return false, model.ErrUnauthorized
	}
	present, err := store.Toggle(ctx, member)
	if errors.Is(err, collection.ErrInactive) {
		return false, model.ErrUnauthorized
	}
	return present, err
}
