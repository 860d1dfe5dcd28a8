package collection

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
	"github.com/Innovatorone/InnoBOOKweb/internal/testutil"
)

var errNetwork = errors.New("network error")

// fakeRemote implements Remote for testing without a backend.
type fakeRemote struct {
	mu        sync.Mutex
	members   map[uuid.UUID]map[string]struct{}
	fetchErr  error
	fetchHold chan struct{}
	fail      map[string]error
	hold      map[string]chan struct{}
	ops       []string
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		members: make(map[uuid.UUID]map[string]struct{}),
		fail:    make(map[string]error),
		hold:    make(map[string]chan struct{}),
	}
}

func (f *fakeRemote) seed(identity uuid.UUID, members ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	set := make(map[string]struct{}, len(members))
	for _, m := range members {
		set[m] = struct{}{}
	}
	f.members[identity] = set
}

func (f *fakeRemote) has(identity uuid.UUID, member string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.members[identity][member]
	return ok
}

func (f *fakeRemote) holdMember(member string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.hold[member] = ch
	return ch
}

func (f *fakeRemote) failNext(member string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[member] = err
}

func (f *fakeRemote) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ops...)
}

func (f *fakeRemote) FetchMembers(ctx context.Context, identity uuid.UUID) ([]string, error) {
	f.mu.Lock()
	hold := f.fetchHold
	f.mu.Unlock()
	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]string, 0, len(f.members[identity]))
	for m := range f.members[identity] {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeRemote) AddMembership(ctx context.Context, identity uuid.UUID, member string) error {
	return f.mutate(ctx, "add", identity, member)
}

func (f *fakeRemote) RemoveMembership(ctx context.Context, identity uuid.UUID, member string) error {
	return f.mutate(ctx, "remove", identity, member)
}

func (f *fakeRemote) mutate(ctx context.Context, op string, identity uuid.UUID, member string) error {
	f.mu.Lock()
	f.ops = append(f.ops, op+":"+member)
	hold := f.hold[member]
	f.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.fail[member]; ok {
		delete(f.fail, member)
		return err
	}
	if f.members[identity] == nil {
		f.members[identity] = make(map[string]struct{})
	}
	if op == "add" {
		f.members[identity][member] = struct{}{}
	} else {
		delete(f.members[identity], member)
	}
	return nil
}

func newTestStore(remote Remote[string], opts ...Option[string]) *Store[string] {
	return New[string](model.KindBookmarks, remote, testutil.MakeNoopLogger(), opts...)
}

func waitOutcome(t *testing.T, ch <-chan Outcome[string]) Outcome[string] {
	t.Helper()
	select {
	case o := <-ch:
		return o
	case <-time.After(2 * time.Second):
		t.Fatal("toggle did not settle")
		return Outcome[string]{}
	}
}

func TestStore_Initialize(t *testing.T) {
	t.Parallel()

	u1 := uuid.New()

	tests := []struct {
		name     string
		seed     []string
		fetchErr error
		want     []string
	}{
		{
			name: "loads remote members",
			seed: []string{"book-1", "book-2"},
			want: []string{"book-1", "book-2"},
		},
		{
			name: "empty collection",
			want: []string{},
		},
		{
			name:     "fetch failure falls back to empty set",
			seed:     []string{"book-1"},
			fetchErr: errNetwork,
			want:     []string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			remote := newFakeRemote()
			remote.seed(u1, tt.seed...)
			remote.fetchErr = tt.fetchErr

			s := newTestStore(remote)
			s.Initialize(context.Background(), u1)

			assert.True(t, s.Active())
			assert.True(t, s.Loaded())
			assert.Equal(t, u1, s.Identity())
			assert.ElementsMatch(t, tt.want, s.Snapshot())
		})
	}
}

func TestStore_InactiveByDefault(t *testing.T) {
	t.Parallel()

	s := newTestStore(newFakeRemote())

	assert.False(t, s.Active())
	assert.False(t, s.Loaded())
	assert.Equal(t, uuid.Nil, s.Identity())
	assert.False(t, s.Contains("book-1"))
	assert.Empty(t, s.Snapshot())

	present, err := s.Toggle(context.Background(), "book-1")
	assert.False(t, present)
	assert.ErrorIs(t, err, ErrInactive)
	assert.ErrorIs(t, s.Refresh(context.Background()), ErrInactive)
}

func TestStore_Contains_DoubleReadIsStable(t *testing.T) {
	t.Parallel()

	u1 := uuid.New()
	remote := newFakeRemote()
	remote.seed(u1, "book-1")

	s := newTestStore(remote)
	s.Initialize(context.Background(), u1)

	for _, m := range []string{"book-1", "book-2"} {
		first := s.Contains(m)
		second := s.Contains(m)
		assert.Equal(t, first, second, m)
	}
}

func TestStore_Toggle(t *testing.T) {
	t.Parallel()

	u1 := uuid.New()

	tests := []struct {
		name      string
		seed      []string
		remoteErr error
		want      bool
		wantOps   []string
		wantErr   bool
	}{
		{
			name:    "adds absent member",
			want:    true,
			wantOps: []string{"add:book-42"},
		},
		{
			name:    "removes present member",
			seed:    []string{"book-42"},
			want:    false,
			wantOps: []string{"remove:book-42"},
		},
		{
			name:      "failed add rolls back",
			remoteErr: errNetwork,
			want:      false,
			wantOps:   []string{"add:book-42"},
			wantErr:   true,
		},
		{
			name:      "failed remove rolls back",
			seed:      []string{"book-42"},
			remoteErr: errNetwork,
			want:      true,
			wantOps:   []string{"remove:book-42"},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			remote := newFakeRemote()
			remote.seed(u1, tt.seed...)
			if tt.remoteErr != nil {
				remote.failNext("book-42", tt.remoteErr)
			}

			s := newTestStore(remote)
			s.Initialize(context.Background(), u1)
			before := s.Contains("book-42")

			present, err := s.Toggle(context.Background(), "book-42")

			assert.Equal(t, tt.want, present)
			assert.Equal(t, tt.want, s.Contains("book-42"))
			assert.Equal(t, tt.wantOps, remote.recorded())
			if tt.wantErr {
				assert.Equal(t, before, s.Contains("book-42"))
				assert.ErrorIs(t, err, ErrMutation)
				assert.ErrorIs(t, err, errNetwork)

				var mErr *MutationError
				require.ErrorAs(t, err, &mErr)
				assert.Equal(t, model.KindBookmarks, mErr.Kind)
				assert.Equal(t, "book-42", mErr.Member)
				assert.Equal(t, !before, mErr.Added)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, remote.has(u1, "book-42"))
			}
		})
	}
}

func TestStore_Toggle_OptimisticBeforeRemoteSettles(t *testing.T) {
	t.Parallel()

	u1 := uuid.New()
	remote := newFakeRemote()
	release := remote.holdMember("book-42")

	s := newTestStore(remote)
	s.Initialize(context.Background(), u1)

	ch := s.ToggleAsync(context.Background(), "book-42")
	assert.True(t, s.Contains("book-42"))
	assert.Equal(t, []string{"book-42"}, s.Snapshot())
	assert.False(t, remote.has(u1, "book-42"))

	close(release)
	o := waitOutcome(t, ch)

	assert.Equal(t, Settled, o.Status)
	assert.True(t, o.Present)
	assert.NoError(t, o.Err)
	assert.True(t, s.Contains("book-42"))
	assert.True(t, remote.has(u1, "book-42"))
}

func TestStore_Toggle_SerializedDoubleToggle(t *testing.T) {
	t.Parallel()

	u1 := uuid.New()
	remote := newFakeRemote()
	release := remote.holdMember("book-42")

	s := newTestStore(remote)
	s.Initialize(context.Background(), u1)
	require.False(t, s.Contains("book-42"))

	first := s.ToggleAsync(context.Background(), "book-42")
	second := s.ToggleAsync(context.Background(), "book-42")

	// The second toggle waits for the first one to settle.
	assert.True(t, s.Contains("book-42"))

	close(release)
	o1 := waitOutcome(t, first)
	o2 := waitOutcome(t, second)

	assert.Equal(t, Settled, o1.Status)
	assert.True(t, o1.Present)
	assert.Equal(t, Settled, o2.Status)
	assert.False(t, o2.Present)
	assert.False(t, s.Contains("book-42"))
	assert.False(t, remote.has(u1, "book-42"))
	assert.Equal(t, []string{"add:book-42", "remove:book-42"}, remote.recorded())
}

func TestStore_Toggle_SerializedAfterRollback(t *testing.T) {
	t.Parallel()

	u1 := uuid.New()
	remote := newFakeRemote()
	release := remote.holdMember("book-42")
	remote.failNext("book-42", errNetwork)

	s := newTestStore(remote)
	s.Initialize(context.Background(), u1)

	first := s.ToggleAsync(context.Background(), "book-42")
	second := s.ToggleAsync(context.Background(), "book-42")

	close(release)
	o1 := waitOutcome(t, first)
	o2 := waitOutcome(t, second)

	// The first add failed, so the second toggle starts from "absent" again.
	assert.Equal(t, RolledBack, o1.Status)
	assert.False(t, o1.Present)
	assert.Equal(t, Settled, o2.Status)
	assert.True(t, o2.Present)
	assert.True(t, s.Contains("book-42"))
	assert.Equal(t, []string{"add:book-42", "add:book-42"}, remote.recorded())
}

func TestStore_Toggle_ConcurrentToggles(t *testing.T) {
	t.Parallel()

	u1 := uuid.New()
	remote := newFakeRemote()
	s := newTestStore(remote)
	s.Initialize(context.Background(), u1)

	const toggles = 9
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Toggle(context.Background(), "book-42")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// An odd number of flips ends in the opposite state.
	assert.True(t, s.Contains("book-42"))
	assert.True(t, remote.has(u1, "book-42"))
	assert.Len(t, remote.recorded(), toggles)
}

func TestStore_Toggle_DifferentMembersIndependent(t *testing.T) {
	t.Parallel()

	u1 := uuid.New()
	remote := newFakeRemote()
	release := remote.holdMember("book-1")

	s := newTestStore(remote)
	s.Initialize(context.Background(), u1)

	pending := s.ToggleAsync(context.Background(), "book-1")

	present, err := s.Toggle(context.Background(), "book-2")
	require.NoError(t, err)
	assert.True(t, present)

	select {
	case <-pending:
		t.Fatal("held toggle settled early")
	default:
	}

	close(release)
	o := waitOutcome(t, pending)
	assert.Equal(t, Settled, o.Status)
	assert.ElementsMatch(t, []string{"book-1", "book-2"}, s.Snapshot())
}

func TestStore_Toggle_WaitsForInitialFetch(t *testing.T) {
	t.Parallel()

	u1 := uuid.New()
	remote := newFakeRemote()
	remote.seed(u1, "book-42")
	fetchRelease := make(chan struct{})
	remote.fetchHold = fetchRelease

	s := newTestStore(remote)
	initialized := make(chan struct{})
	go func() {
		s.Initialize(context.Background(), u1)
		close(initialized)
	}()

	require.Eventually(t, s.Active, time.Second, time.Millisecond)
	assert.False(t, s.Loaded())
	assert.False(t, s.Contains("book-42"))

	ch := s.ToggleAsync(context.Background(), "book-42")
	assert.False(t, s.Contains("book-42"))

	close(fetchRelease)
	<-initialized
	o := waitOutcome(t, ch)

	// wasPresent is read after the fetch, so the toggle removes the bookmark.
	assert.Equal(t, Settled, o.Status)
	assert.False(t, o.Present)
	assert.Equal(t, []string{"remove:book-42"}, remote.recorded())
}

func TestStore_Toggle_CanceledWhileQueued(t *testing.T) {
	t.Parallel()

	u1 := uuid.New()
	remote := newFakeRemote()
	release := remote.holdMember("book-42")

	s := newTestStore(remote)
	s.Initialize(context.Background(), u1)

	first := s.ToggleAsync(context.Background(), "book-42")
	ctx, cancel := context.WithCancel(context.Background())
	second := s.ToggleAsync(ctx, "book-42")
	cancel()

	close(release)
	o1 := waitOutcome(t, first)
	o2 := waitOutcome(t, second)

	assert.Equal(t, Settled, o1.Status)
	assert.Equal(t, Rejected, o2.Status)
	assert.ErrorIs(t, o2.Err, context.Canceled)
	assert.True(t, o2.Present)
	assert.True(t, s.Contains("book-42"))
	assert.Equal(t, []string{"add:book-42"}, remote.recorded())
}

func TestStore_Toggle_DeadlineWhileQueued(t *testing.T) {
	t.Parallel()

	u1 := uuid.New()
	remote := newFakeRemote()
	release := remote.holdMember("book-42")

	s := newTestStore(remote)
	s.Initialize(context.Background(), u1)

	first := s.ToggleAsync(context.Background(), "book-42")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	present, err := s.Toggle(ctx, "book-42")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
	assert.True(t, present)

	// A toggle queued after the rejected one still waits for the first.
	third := s.ToggleAsync(context.Background(), "book-42")
	select {
	case o := <-third:
		t.Fatalf("toggle finished before its predecessor: %+v", o)
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	o1 := waitOutcome(t, first)
	o3 := waitOutcome(t, third)

	assert.Equal(t, Settled, o1.Status)
	assert.True(t, o1.Present)
	assert.Equal(t, Settled, o3.Status)
	assert.False(t, o3.Present)
	assert.False(t, s.Contains("book-42"))
	assert.Equal(t, []string{"add:book-42", "remove:book-42"}, remote.recorded())
}

func TestStore_Logout_ClearsState(t *testing.T) {
	t.Parallel()

	u1 := uuid.New()
	remote := newFakeRemote()
	remote.seed(u1, "book-1", "book-2")

	s := newTestStore(remote)
	s.Initialize(context.Background(), u1)
	require.True(t, s.Contains("book-1"))

	s.Initialize(context.Background(), uuid.Nil)

	assert.False(t, s.Active())
	assert.False(t, s.Contains("book-1"))
	assert.False(t, s.Contains("book-2"))
	assert.Empty(t, s.Snapshot())
}

func TestStore_IdentitySwitch_DiscardsPriorSet(t *testing.T) {
	t.Parallel()

	a, b := uuid.New(), uuid.New()
	remote := newFakeRemote()
	remote.seed(a, "book-1")
	remote.seed(b, "book-9")

	s := newTestStore(remote)
	s.Initialize(context.Background(), a)
	require.True(t, s.Contains("book-1"))

	s.Initialize(context.Background(), b)

	assert.Equal(t, b, s.Identity())
	assert.False(t, s.Contains("book-1"))
	assert.True(t, s.Contains("book-9"))
}

func TestStore_Initialize_SameIdentityIsNoop(t *testing.T) {
	t.Parallel()

	u1 := uuid.New()
	remote := newFakeRemote()
	remote.seed(u1, "book-1")

	s := newTestStore(remote)
	s.Initialize(context.Background(), u1)

	remote.seed(u1, "book-2")
	s.Initialize(context.Background(), u1)
	assert.Equal(t, []string{"book-1"}, s.Snapshot())

	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, []string{"book-2"}, s.Snapshot())
}

func TestStore_IdentitySwitch_AbandonsInFlightToggles(t *testing.T) {
	t.Parallel()

	a, b := uuid.New(), uuid.New()
	remote := newFakeRemote()
	remote.seed(b, "book-7")
	release := remote.holdMember("book-42")
	remote.failNext("book-42", errNetwork)

	s := newTestStore(remote)
	s.Initialize(context.Background(), a)

	pending := s.ToggleAsync(context.Background(), "book-42")
	require.True(t, s.Contains("book-42"))

	s.Initialize(context.Background(), b)
	close(release)
	o := waitOutcome(t, pending)

	assert.Equal(t, Abandoned, o.Status)
	assert.ErrorIs(t, o.Err, ErrAbandoned)
	assert.Equal(t, []string{"book-7"}, s.Snapshot())
	assert.False(t, s.Contains("book-42"))
}

func TestStore_Observer(t *testing.T) {
	t.Parallel()

	u1 := uuid.New()
	remote := newFakeRemote()
	remote.failNext("book-2", errNetwork)

	var mu sync.Mutex
	var reasons []ChangeReason
	s := newTestStore(remote, WithObserver(func(c Change[string]) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, model.KindBookmarks, c.Kind)
		reasons = append(reasons, c.Reason)
	}))

	s.Initialize(context.Background(), u1)
	_, err := s.Toggle(context.Background(), "book-1")
	require.NoError(t, err)
	_, err = s.Toggle(context.Background(), "book-2")
	require.Error(t, err)
	s.Initialize(context.Background(), uuid.Nil)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []ChangeReason{
		ChangeCleared,
		ChangeLoaded,
		ChangeOptimistic,
		ChangeOptimistic,
		ChangeRolledBack,
		ChangeCleared,
	}, reasons)
}

func TestStore_BookmarkScenario(t *testing.T) {
	t.Parallel()

	u1 := uuid.New()
	remote := newFakeRemote()

	s := newTestStore(remote)
	s.Initialize(context.Background(), u1)
	assert.Empty(t, s.Snapshot())

	ch := s.ToggleAsync(context.Background(), "book-42")
	assert.True(t, s.Contains("book-42"))
	o := waitOutcome(t, ch)
	require.Equal(t, Settled, o.Status)
	assert.True(t, s.Contains("book-42"))

	remote.failNext("book-42", errNetwork)
	release := remote.holdMember("book-42")
	ch = s.ToggleAsync(context.Background(), "book-42")
	assert.False(t, s.Contains("book-42"))
	close(release)
	o = waitOutcome(t, ch)

	assert.Equal(t, RolledBack, o.Status)
	assert.ErrorIs(t, o.Err, errNetwork)
	assert.True(t, s.Contains("book-42"))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "settled", Settled.String())
	assert.Equal(t, "rolled_back", RolledBack.String())
	assert.Equal(t, "abandoned", Abandoned.String())
	assert.Equal(t, "rejected", Rejected.String())
	assert.Equal(t, "unknown", Status(42).String())
}
