package model

import (
	"context"
	"net"
)

// SecurityLayer opens the TCP endpoint readers connect to and decides
// whether it is encrypted.
type SecurityLayer interface {
	Listen(ctx context.Context, addr string) (net.Listener, error)
}

// Server is a long-running transport. Start blocks until Stop is called or
// serving fails; ctx only bounds opening the listener.
type Server interface {
	Start(ctx context.Context, layer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
