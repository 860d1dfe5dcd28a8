package server

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// writeSelfSigned writes a localhost certificate and key and returns their
// paths together with the parsed certificate.
func writeSelfSigned(t *testing.T) (certFile, keyFile string, cert *x509.Certificate) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(42),
		Subject:      pkix.Name{Organization: []string{"BookBites test"}},
		NotBefore:    time.Now().Add(-time.Minute),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IPAddresses:  []net.IP{net.IPv4(127, 0, 0, 1)},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)
	cert, err = x509.ParseCertificate(der)
	require.NoError(t, err)

	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	dir := t.TempDir()
	certFile = filepath.Join(dir, "cert.pem")
	keyFile = filepath.Join(dir, "key.pem")
	require.NoError(t, os.WriteFile(certFile, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600))
	require.NoError(t, os.WriteFile(keyFile, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER}), 0o600))
	return certFile, keyFile, cert
}

func TestTLSListener_Handshake(t *testing.T) {
	certFile, keyFile, cert := writeSelfSigned(t)

	ln, err := NewTLSListener(certFile, keyFile).Listen(t.Context(), "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	accepted := make(chan error, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			accepted <- err
			return
		}
		defer conn.Close()
		accepted <- conn.(*tls.Conn).Handshake()
	}()

	pool := x509.NewCertPool()
	pool.AddCert(cert)
	conn, err := tls.Dial("tcp", ln.Addr().String(), &tls.Config{
		RootCAs:    pool,
		NextProtos: []string{"h2"},
	})
	require.NoError(t, err)
	defer conn.Close()

	state := conn.ConnectionState()
	assert.Equal(t, "h2", state.NegotiatedProtocol)
	assert.GreaterOrEqual(t, state.Version, uint16(tls.VersionTLS12))
	require.NoError(t, <-accepted)
}

func TestTLSListener_RejectsOldClients(t *testing.T) {
	certFile, keyFile, cert := writeSelfSigned(t)

	ln, err := NewTLSListener(certFile, keyFile).Listen(t.Context(), "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.(*tls.Conn).Handshake()
	}()

	pool := x509.NewCertPool()
	pool.AddCert(cert)
	_, err = tls.Dial("tcp", ln.Addr().String(), &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS10,
		MaxVersion: tls.VersionTLS11,
	})
	assert.Error(t, err)
}

func TestListeners_Errors(t *testing.T) {
	certFile, keyFile, _ := writeSelfSigned(t)

	tests := []struct {
		name    string
		layer   model.SecurityLayer
		addr    string
		wantMsg string
	}{
		{
			name:    "missing certificate",
			layer:   NewTLSListener("absent.pem", "absent-key.pem"),
			addr:    "127.0.0.1:0",
			wantMsg: "failed to load TLS certificate",
		},
		{
			name:  "tls bad address",
			layer: NewTLSListener(certFile, keyFile),
			addr:  "not-an-address",
		},
		{
			name:  "plain bad address",
			layer: NewPlainListener(),
			addr:  "not-an-address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.layer.Listen(t.Context(), tt.addr)
			require.Error(t, err)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestPlainListener_Listen(t *testing.T) {
	ln, err := NewPlainListener().Listen(t.Context(), "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	_, ok := ln.(*net.TCPListener)
	assert.True(t, ok)
}

func TestTLSListener_Config(t *testing.T) {
	cfg := NewTLSListener("c", "k").config(tls.Certificate{})

	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
	assert.Equal(t, []string{"h2"}, cfg.NextProtos)
	assert.Len(t, cfg.Certificates, 1)
}
