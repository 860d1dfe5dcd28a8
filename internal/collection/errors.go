package collection

import (
	"errors"
	"fmt"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

var (
	// ErrInactive is returned when the store has no identity.
	ErrInactive = errors.New("collection store is inactive")
	// ErrAbandoned is returned for toggles issued before a re-initialization.
	ErrAbandoned = errors.New("toggle abandoned after re-initialization")
	// ErrMutation matches every *MutationError.
	ErrMutation = errors.New("membership mutation failed")
)

// MutationError reports a remote add or remove that failed and was rolled back.
type MutationError struct {
	Kind   model.Kind
	Member any
	Added  bool
	Err    error
}

func (e *MutationError) Error() string {
	op := "remove"
	if e.Added {
		op = "add"
	}
	return fmt.Sprintf("failed to %s %s member %v: %v", op, e.Kind, e.Member, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrMutation) match.
func (e *MutationError) Is(target error) bool { return target == ErrMutation }
