// Package client is the gRPC client side of BookBites: it signs in, lists
// books and backs collection stores with the Collections service.
package client

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Innovatorone/InnoBOOKweb/internal/api/grpc/bookbitespb"
	"github.com/Innovatorone/InnoBOOKweb/internal/logger"
	"github.com/Innovatorone/InnoBOOKweb/internal/model"
)

// Credentials supplies the signed-in identity and its access token.
type Credentials interface {
	Identity() uuid.UUID
	Token() string
}

// Client talks to a BookBites server.
type Client struct {
	conn        *grpc.ClientConn
	auth        bookbitespb.AuthClient
	collections bookbitespb.CollectionsClient
	books       bookbitespb.BooksClient
	creds       Credentials
	logger      *logger.Logger
}

// ErrNoCredentials is returned by New when creds is nil.
var ErrNoCredentials = errors.New("client credentials are required")

// New dials cfg.Address. Extra options are appended after the ones derived
// from cfg. creds may report an empty token while signed out but must not
// be nil.
func New(cfg ServerConfig, creds Credentials, logger *logger.Logger, opts ...grpc.DialOption) (*Client, error) {
	if isNilCredentials(creds) {
		return nil, ErrNoCredentials
	}

	transport, err := transportCredentials(cfg)
	if err != nil {
		return nil, err
	}

	interceptors := []grpc.UnaryClientInterceptor{bearerInterceptor(creds)}
	if cfg.Timeout > 0 {
		interceptors = append(interceptors, timeoutInterceptor(cfg))
	}
	if cfg.RateLimit > 0 {
		interceptors = append(interceptors, rateLimitInterceptor(cfg))
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(transport),
		grpc.WithChainUnaryInterceptor(interceptors...),
	}, opts...)

	conn, err := grpc.NewClient(cfg.Address, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client for %s: %w", cfg.Address, err)
	}

	return &Client{
		conn:        conn,
		auth:        bookbitespb.NewAuthClient(conn),
		collections: bookbitespb.NewCollectionsClient(conn),
		books:       bookbitespb.NewBooksClient(conn),
		creds:       creds,
		logger:      logger,
	}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Collection returns the remote side of the kind collection.
func (c *Client) Collection(kind model.Kind) *Remote {
	return &Remote{kind: kind, client: c}
}

// Login exchanges phone and password for an access token.
func (c *Client) Login(ctx context.Context, phone, password string) (model.LoginResult, error) {
	resp, err := c.auth.Login(ctx, bookbitespb.LoginRequest{Phone: phone, Password: password}.Struct())
	if err != nil {
		return model.LoginResult{}, fromStatus(err)
	}
	c.logger.Debug("Client: signed in", "phone", phone)
	return parseLoginResult(resp)
}

// SignUp registers a reader and signs them in.
func (c *Client) SignUp(ctx context.Context, params model.SignUpParams) (model.LoginResult, error) {
	resp, err := c.auth.SignUp(ctx, bookbitespb.SignUpRequest{
		Phone:    params.Phone,
		Password: params.Password,
		Name:     params.Name,
		Avatar:   params.Avatar,
	}.Struct())
	if err != nil {
		return model.LoginResult{}, fromStatus(err)
	}
	return parseLoginResult(resp)
}

// GetBooks returns catalog entries for ids. Unknown ids are skipped by the
// server.
func (c *Client) GetBooks(ctx context.Context, ids []uuid.UUID) ([]model.Book, error) {
	if len(ids) == 0 {
		return []model.Book{}, nil
	}

	in := make([]string, 0, len(ids))
	for _, id := range ids {
		in = append(in, id.String())
	}

	resp, err := c.books.GetBooks(ctx, bookbitespb.StringList(in))
	if err != nil {
		return nil, fromStatus(err)
	}

	wire, err := bookbitespb.ParseBookList(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to decode books: %w", err)
	}

	books := make([]model.Book, 0, len(wire))
	for _, b := range wire {
		id, err := uuid.Parse(b.ID)
		if err != nil {
			return nil, fmt.Errorf("server returned invalid book id %q: %w", b.ID, err)
		}
		books = append(books, model.Book{
			ID:        id,
			Title:     b.Title,
			Author:    b.Author,
			CoverURL:  b.CoverURL,
			Rating:    b.Rating,
			IsPremium: b.IsPremium,
		})
	}
	return books, nil
}

func parseLoginResult(resp *structpb.Struct) (model.LoginResult, error) {
	wire, err := bookbitespb.ParseLoginResponse(resp)
	if err != nil {
		return model.LoginResult{}, fmt.Errorf("failed to decode login response: %w", err)
	}
	id, err := uuid.Parse(wire.UserID)
	if err != nil {
		return model.LoginResult{}, fmt.Errorf("server returned invalid user id %q: %w", wire.UserID, err)
	}
	return model.LoginResult{
		User: model.User{
			ID:     id,
			Name:   wire.Name,
			Phone:  wire.Phone,
			Email:  wire.Email,
			Avatar: wire.Avatar,
			Type:   wire.Type,
			Plan:   wire.Plan,
		},
		AccessToken: wire.AccessToken,
	}, nil
}

func transportCredentials(cfg ServerConfig) (credentials.TransportCredentials, error) {
	if !cfg.TLS {
		return insecure.NewCredentials(), nil
	}
	if cfg.CAFile != "" {
		creds, err := credentials.NewClientTLSFromFile(cfg.CAFile, "")
		if err != nil {
			return nil, fmt.Errorf("failed to load CA file: %w", err)
		}
		return creds, nil
	}
	return credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12}), nil
}

// bearerInterceptor attaches the current access token to every call.
func bearerInterceptor(creds Credentials) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if token := creds.Token(); token != "" {
			ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

func timeoutInterceptor(cfg ServerConfig) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// rateLimitInterceptor spaces calls out so a burst of toggles does not
// hammer the server.
func rateLimitInterceptor(cfg ServerConfig) grpc.UnaryClientInterceptor {
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)

	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// isNilCredentials also catches a nil pointer stored in the interface.
func isNilCredentials(creds Credentials) bool {
	if creds == nil {
		return true
	}
	v := reflect.ValueOf(creds)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func, reflect.Slice, reflect.Chan:
		return v.IsNil()
	}
	return false
}
