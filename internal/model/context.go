package model

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ContextManager attaches the authenticated reader to a request context
// and reads it back in handlers.
type ContextManager interface {
	WithReader(ctx context.Context, readerID uuid.UUID) context.Context
	ReaderFromContext(ctx context.Context) (uuid.UUID, bool)
}

// RequireReader returns the reader attached to ctx. A request that never
// passed authentication yields ErrUnauthorized.
func RequireReader(ctx context.Context, cm ContextManager) (uuid.UUID, error) {
	readerID, ok := cm.ReaderFromContext(ctx)
	if !ok || readerID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("no reader in request context: %w", ErrUnauthorized)
	}
	return readerID, nil
}
