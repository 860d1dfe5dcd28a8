package collection

import (
	"context"
)

// Toggle flips the membership of member and waits for the remote side to
// confirm. It returns the resulting membership. On failure the local state
// is restored and a *MutationError is returned together with the restored
// membership.
func (s *Store[M]) Toggle(ctx context.Context, member M) (bool, error) {
	o := <-s.ToggleAsync(ctx, member)
	return o.Present, o.Err
}

// ToggleAsync starts a toggle and returns a channel that receives exactly
// one Outcome. Toggles of the same member run one after another in call
// order; the optimistic flip is applied before ToggleAsync returns unless
// an earlier toggle of the member is still pending or the members are
// still loading.
func (s *Store[M]) ToggleAsync(ctx context.Context, member M) <-chan Outcome[M] {
	out := make(chan Outcome[M], 1)

	s.mu.Lock()
	set := s.set
	if set == nil {
		s.mu.Unlock()
		out <- Outcome[M]{Member: member, Status: Rejected, Err: ErrInactive}
		close(out)
		return out
	}

	prev := set.lanes[member]
	op := &toggleOperation[M]{
		set:         set,
		member:      member,
		requestedAt: s.now(),
		done:        make(chan struct{}),
	}
	set.lanes[member] = op.done

	if prev == nil && set.loaded {
		s.applyLocked(op)
		s.mu.Unlock()
		go s.persist(ctx, op, out)
		return out
	}
	s.mu.Unlock()

	go s.queue(ctx, op, prev, out)

	return out
}

// queue runs op once its predecessor settled and the members are loaded.
// A caller whose ctx ends first is answered with Rejected right away; the
// lane is still handed over only after the predecessor settles so later
// toggles of the member keep their order.
func (s *Store[M]) queue(ctx context.Context, op *toggleOperation[M], prev <-chan struct{}, out chan<- Outcome[M]) {
	set := op.set
	turn := make(chan struct{})
	go func() {
		// Predecessors always settle, so waiting here cannot leak the lane.
		if prev != nil {
			<-prev
		}
		<-set.ready
		close(turn)
	}()

	select {
	case <-turn:
	case <-ctx.Done():
		s.mu.Lock()
		_, present := set.members[op.member]
		s.mu.Unlock()
		out <- Outcome[M]{Member: op.member, Status: Rejected, Present: present, Err: ctx.Err()}
		close(out)

		<-turn
		s.mu.Lock()
		s.finishLocked(op)
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	if s.set != set {
		s.finishLocked(op)
		s.mu.Unlock()
		out <- Outcome[M]{Member: op.member, Status: Abandoned, Err: ErrAbandoned}
		close(out)
		return
	}
	if err := ctx.Err(); err != nil {
		s.finishLocked(op)
		_, present := set.members[op.member]
		s.mu.Unlock()
		out <- Outcome[M]{Member: op.member, Status: Rejected, Present: present, Err: err}
		close(out)
		return
	}
	s.applyLocked(op)
	s.mu.Unlock()

	s.persist(ctx, op, out)
}

// applyLocked records the pre-toggle state and applies the optimistic flip.
func (s *Store[M]) applyLocked(op *toggleOperation[M]) {
	_, op.wasPresent = op.set.members[op.member]
	if op.wasPresent {
		delete(op.set.members, op.member)
	} else {
		op.set.members[op.member] = struct{}{}
	}
	s.notifyLocked(Change[M]{
		Reason:   ChangeOptimistic,
		Identity: op.set.identity,
		Member:   op.member,
		Present:  !op.wasPresent,
	})
}

func (s *Store[M]) persist(ctx context.Context, op *toggleOperation[M], out chan<- Outcome[M]) {
	var err error
	if op.wasPresent {
		err = s.remote.RemoveMembership(ctx, op.set.identity, op.member)
	} else {
		err = s.remote.AddMembership(ctx, op.set.identity, op.member)
	}

	s.mu.Lock()
	defer close(out)
	defer s.mu.Unlock()
	defer s.finishLocked(op)

	if s.set != op.set {
		s.logger.Debug("Collection store: ignoring toggle result for replaced set",
			"identity", op.set.identity,
			"member", op.member)
		out <- Outcome[M]{Member: op.member, Status: Abandoned, Err: ErrAbandoned}
		return
	}

	if err != nil {
		if op.wasPresent {
			op.set.members[op.member] = struct{}{}
		} else {
			delete(op.set.members, op.member)
		}
		s.notifyLocked(Change[M]{
			Reason:   ChangeRolledBack,
			Identity: op.set.identity,
			Member:   op.member,
			Present:  op.wasPresent,
		})
		s.logger.Warn("Collection store: toggle rolled back",
			"identity", op.set.identity,
			"member", op.member,
			"error", err.Error())
		out <- Outcome[M]{
			Member:  op.member,
			Status:  RolledBack,
			Present: op.wasPresent,
			Err: &MutationError{
				Kind:   s.kind,
				Member: op.member,
				Added:  !op.wasPresent,
				Err:    err,
			},
		}
		return
	}

	s.logger.Debug("Collection store: toggle settled",
		"identity", op.set.identity,
		"member", op.member,
		"present", !op.wasPresent,
		"duration_ms", s.now().Sub(op.requestedAt).Milliseconds())
	out <- Outcome[M]{Member: op.member, Status: Settled, Present: !op.wasPresent}
}

// finishLocked releases the member's lane for the next queued toggle.
func (s *Store[M]) finishLocked(op *toggleOperation[M]) {
	close(op.done)
	if op.set.lanes[op.member] == op.done {
		delete(op.set.lanes, op.member)
	}
}
