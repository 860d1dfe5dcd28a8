// Package collection keeps a local, optimistically updated copy of a
// remote membership collection (bookmarked books, liked reviews) for the
// signed-in identity.
package collection

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Innovatorone/InnoBOOKweb/internal/logger"
	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// Remote is the authoritative side of a collection.
type Remote[M comparable] interface {
	FetchMembers(ctx context.Context, identity uuid.UUID) ([]M, error)
	AddMembership(ctx context.Context, identity uuid.UUID, member M) error
	RemoveMembership(ctx context.Context, identity uuid.UUID, member M) error
}

// Option configures a Store.
type Option[M comparable] func(*Store[M])

// WithObserver registers fn to be called after every local change.
// fn runs with the store lock held and must not call back into the Store.
func WithObserver[M comparable](fn func(Change[M])) Option[M] {
	return func(s *Store[M]) {
		s.observer = fn
	}
}

// membershipSet is the state owned by one (kind, identity) pair. A set is
// replaced, never reset, on re-initialization so that operations issued
// against an older set can detect they were abandoned.
type membershipSet[M comparable] struct {
	identity uuid.UUID
	members  map[M]struct{}
	// lanes holds the completion channel of the newest pending toggle per member.
	lanes  map[M]chan struct{}
	ready  chan struct{}
	loaded bool
}

func newMembershipSet[M comparable](identity uuid.UUID) *membershipSet[M] {
	return &membershipSet[M]{
		identity: identity,
		members:  make(map[M]struct{}),
		lanes:    make(map[M]chan struct{}),
		ready:    make(chan struct{}),
	}
}

// toggleOperation tracks one in-flight toggle.
type toggleOperation[M comparable] struct {
	set         *membershipSet[M]
	member      M
	wasPresent  bool
	requestedAt time.Time
	done        chan struct{}
}

// Store is a RemoteCollectionStore for one collection kind.
type Store[M comparable] struct {
	kind     model.Kind
	remote   Remote[M]
	logger   *logger.Logger
	observer func(Change[M])
	now      func() time.Time

	mu  sync.Mutex
	set *membershipSet[M]
}

// New creates an inactive Store. Call Initialize to bind it to an identity.
func New[M comparable](kind model.Kind, remote Remote[M], logger *logger.Logger, opts ...Option[M]) *Store[M] {
	s := &Store[M]{
		kind:   kind,
		remote: remote,
		logger: logger.With("kind", kind),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Kind returns the collection kind served by the store.
func (s *Store[M]) Kind() model.Kind {
	return s.kind
}

// Initialize binds the store to identity. uuid.Nil makes the store
// inactive. Re-initializing with the current identity is a no-op; any
// other identity discards the current set, abandons in-flight toggles and
// loads the new identity's members. A failed load leaves the set empty.
func (s *Store[M]) Initialize(ctx context.Context, identity uuid.UUID) {
	s.mu.Lock()
	if identity == uuid.Nil {
		if s.set != nil {
			prev := s.set.identity
			s.set = nil
			s.notifyLocked(Change[M]{Reason: ChangeCleared, Identity: prev})
			s.logger.Debug("Collection store: cleared",
				"identity", prev)
		}
		s.mu.Unlock()
		return
	}
	if s.set != nil && s.set.identity == identity {
		s.mu.Unlock()
		return
	}
	set := s.installLocked(identity)
	s.mu.Unlock()

	s.load(ctx, set)
}

// Refresh reloads the members of the current identity. In-flight toggles
// are abandoned.
func (s *Store[M]) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.set == nil {
		s.mu.Unlock()
		return ErrInactive
	}
	set := s.installLocked(s.set.identity)
	s.mu.Unlock()

	s.load(ctx, set)
	return nil
}

func (s *Store[M]) installLocked(identity uuid.UUID) *membershipSet[M] {
	set := newMembershipSet[M](identity)
	s.set = set
	s.notifyLocked(Change[M]{Reason: ChangeCleared, Identity: identity})
	return set
}

func (s *Store[M]) load(ctx context.Context, set *membershipSet[M]) {
	started := s.now()
	members, err := s.remote.FetchMembers(ctx, set.identity)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer close(set.ready)
	set.loaded = true

	if s.set != set {
		s.logger.Debug("Collection store: discarding fetch for replaced set",
			"identity", set.identity)
		return
	}
	if err != nil {
		s.logger.Error("Collection store: failed to fetch members",
			"identity", set.identity,
			"error", err.Error())
		s.notifyLocked(Change[M]{Reason: ChangeLoaded, Identity: set.identity})
		return
	}

	for _, m := range members {
		set.members[m] = struct{}{}
	}
	s.notifyLocked(Change[M]{Reason: ChangeLoaded, Identity: set.identity})
	s.logger.Debug("Collection store: members loaded",
		"identity", set.identity,
		"count", len(set.members),
		"duration_ms", s.now().Sub(started).Milliseconds())
}

// Active reports whether the store is bound to an identity.
func (s *Store[M]) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set != nil
}

// Identity returns the bound identity or uuid.Nil.
func (s *Store[M]) Identity() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set == nil {
		return uuid.Nil
	}
	return s.set.identity
}

// Loaded reports whether the initial fetch for the current identity finished.
func (s *Store[M]) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set != nil && s.set.loaded
}

// Contains reports whether member is believed to be in the collection,
// including optimistic changes that have not settled yet.
func (s *Store[M]) Contains(member M) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set == nil {
		return false
	}
	_, ok := s.set.members[member]
	return ok
}

// Snapshot returns the members currently believed to be in the collection.
// Order is unspecified.
func (s *Store[M]) Snapshot() []M {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set == nil {
		return []M{}
	}
	return slices.AppendSeq(make([]M, 0, len(s.set.members)), maps.Keys(s.set.members))
}

func (s *Store[M]) notifyLocked(c Change[M]) {
	if s.observer == nil {
		return
	}
	c.Kind = s.kind
	s.observer(c)
}
