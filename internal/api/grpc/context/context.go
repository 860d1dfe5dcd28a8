package context

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"
)

// readerIDKey is the incoming metadata key carrying the authenticated reader.
const readerIDKey = "x-bookbites-reader-id"

// Manager keeps the authenticated reader in incoming gRPC metadata so
// handlers can read it after the authenticate interceptor ran.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// WithReader returns a context whose incoming metadata carries readerID.
// A value sent by the client under the same key is replaced.
func (m *Manager) WithReader(ctx context.Context, readerID uuid.UUID) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		md = md.Copy()
	} else {
		md = metadata.MD{}
	}
	md.Set(readerIDKey, readerID.String())

	return metadata.NewIncomingContext(ctx, md)
}

// ReaderFromContext returns the reader set by WithReader. A missing or
// malformed value reports false.
func (m *Manager) ReaderFromContext(ctx context.Context) (uuid.UUID, bool) {
	values := metadata.ValueFromIncomingContext(ctx, readerIDKey)
	if len(values) == 0 {
		return uuid.Nil, false
	}

	readerID, err := uuid.Parse(values[0])
	if err != nil {
		return uuid.Nil, false
	}
	return readerID, true
}
