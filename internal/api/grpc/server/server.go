package server

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

var _ model.Server = (*GRPCServer)(nil)

// GRPCServer wraps a gRPC server with address and lifecycle methods.
type GRPCServer struct {
	server *grpc.Server
	addr   string
}

// NewGRPCServer creates a GRPCServer with given server and address.
func NewGRPCServer(
	server *grpc.Server,
	addr string,
) *GRPCServer {
	return &GRPCServer{server: server, addr: addr}
}

// Start serves on the configured address using the provided security layer.
// It blocks until the server stops.
func (s *GRPCServer) Start(ctx context.Context, layer model.SecurityLayer) error {
	listener, err := layer.Listen(ctx, s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	if err := s.server.Serve(listener); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// Stop waits for in-flight RPCs to finish. When ctx is done first, the
// remaining connections are closed and ctx.Err() is returned.
func (s *GRPCServer) Stop(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.server.Stop()
		<-done
		return ctx.Err()
	}
}

// Address returns the configured listen address.
func (s *GRPCServer) Address() string {
	return s.addr
}
