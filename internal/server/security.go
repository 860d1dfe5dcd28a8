// Package server provides the listeners the gRPC server is started on.
package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

var (
	_ model.SecurityLayer = (*TLSListener)(nil)
	_ model.SecurityLayer = (*PlainListener)(nil)
)

// TLSListener listens with a certificate loaded from disk on every call.
type TLSListener struct {
	certFileName       string
	privateKeyFileName string
}

// NewTLSListener creates a TLSListener for the given PEM files.
func NewTLSListener(certFileName, privateKeyFileName string) *TLSListener {
	return &TLSListener{
		certFileName:       certFileName,
		privateKeyFileName: privateKeyFileName,
	}
}

// Listen creates a TLS 1.2+ listener on addr. The key pair is read before
// the port is bound so a bad certificate never leaves a socket open.
func (l *TLSListener) Listen(ctx context.Context, addr string) (net.Listener, error) {
	cert, err := tls.LoadX509KeyPair(l.certFileName, l.privateKeyFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	inner, err := listenTCP(ctx, addr)
	if err != nil {
		return nil, err
	}
	return tls.NewListener(inner, l.config(cert)), nil
}

func (l *TLSListener) config(cert tls.Certificate) *tls.Config {
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
		NextProtos:   []string{"h2"},
	}
}

// PlainListener listens without encryption. Meant for local development.
type PlainListener struct{}

func NewPlainListener() *PlainListener {
	return &PlainListener{}
}

func (l *PlainListener) Listen(ctx context.Context, addr string) (net.Listener, error) {
	return listenTCP(ctx, addr)
}

func listenTCP(ctx context.Context, addr string) (net.Listener, error) {
	var lc net.ListenConfig
	return lc.Listen(ctx, "tcp", addr)
}
