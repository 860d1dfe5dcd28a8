package collection

import (
	"github.com/google/uuid"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// Status tells how a toggle ended.
type Status int

const (
	// Settled means the remote side accepted the change.
	Settled Status = iota
	// RolledBack means the remote side failed and the flip was reverted.
	RolledBack
	// Abandoned means the store was re-initialized while the toggle was pending.
	Abandoned
	// Rejected means the toggle never started.
	Rejected
)

func (s Status) String() string {
	switch s {
	case Settled:
		return "settled"
	case RolledBack:
		return "rolled_back"
	case Abandoned:
		return "abandoned"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Outcome is the result of a toggle. Present is the membership after the
// toggle ended; Err is set unless Status is Settled.
type Outcome[M comparable] struct {
	Member  M
	Status  Status
	Present bool
	Err     error
}

// ChangeReason describes why the local set changed.
type ChangeReason int

const (
	ChangeCleared ChangeReason = iota
	ChangeLoaded
	ChangeOptimistic
	ChangeRolledBack
)

// Change is delivered to observers after the local set changed.
type Change[M comparable] struct {
	Kind     model.Kind
	Identity uuid.UUID
	Reason   ChangeReason
	Member   M
	Present  bool
}
