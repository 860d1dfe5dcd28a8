package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"google.golang.org/grpc"

	"github.com/Innovatorone/InnoBOOKweb/internal/auth"
	"github.com/Innovatorone/InnoBOOKweb/internal/client"
	"github.com/Innovatorone/InnoBOOKweb/internal/collection"
	"github.com/Innovatorone/InnoBOOKweb/internal/logger"
	"github.com/Innovatorone/InnoBOOKweb/internal/model"
	"github.com/Innovatorone/InnoBOOKweb/internal/session"
)

// Runner holds the client-side wiring shared by every command.
type Runner struct {
	config   *client.Config
	logger   *logger.Logger
	output   io.Writer
	dialOpts []grpc.DialOption

	sess      *auth.Session
	client    *client.Client
	gate      *session.Gate
	bookmarks *collection.Store[uuid.UUID]
	likes     *collection.Store[uuid.UUID]
	gateDone  chan error
}

// RunnerOpts contains configuration options for creating a Runner. Nil
// fields are filled in by Setup from flags and the config file.
type RunnerOpts struct {
	Config      *client.Config
	Logger      *logger.Logger
	Output      io.Writer
	DialOptions []grpc.DialOption
}

// NewRunner creates a Runner. Connections are opened by Setup.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &Runner{
		config:   opts.Config,
		logger:   opts.Logger,
		output:   opts.Output,
		dialOpts: opts.DialOptions,
	}
}

// Setup loads configuration, restores the saved session and binds the
// collection stores to it.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if r.logger == nil {
		r.logger = logger.NewWithWriter(int(cmd.Int("log-level")), os.Stderr)
	}
	if r.config == nil {
		cfg, err := loadConfig(cmd.String("config"))
		if err != nil {
			return ctx, err
		}
		r.config = cfg
	}
	if addr := cmd.String("address"); addr != "" {
		r.config.Server.Address = addr
	}

	r.sess = auth.NewSession(r.config.Session.Path, r.logger)
	if err := r.sess.Restore(); err != nil {
		return ctx, err
	}

	c, err := client.New(r.config.Server, r.sess, r.logger, r.dialOpts...)
	if err != nil {
		return ctx, err
	}
	r.client = c

	r.bookmarks = collection.New[uuid.UUID](model.KindBookmarks, c.Collection(model.KindBookmarks), r.logger)
	r.likes = collection.New[uuid.UUID](model.KindReviewLikes, c.Collection(model.KindReviewLikes), r.logger)
	r.gate = session.NewGate(r.logger, r.bookmarks, r.likes)

	r.gateDone = make(chan error, 1)
	updates := r.sess.Subscribe()
	go func() { r.gateDone <- r.gate.Run(ctx, updates) }()

	return ctx, nil
}

// Teardown stops the gate and closes the connection.
func (r *Runner) Teardown(_ context.Context, _ *cli.Command) error {
	if r.sess != nil {
		r.sess.Close()
		if r.gateDone != nil {
			if err := <-r.gateDone; err != nil && !errors.Is(err, context.Canceled) {
				r.logger.Warn("Session gate stopped", "error", err)
			}
		}
	}
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// sync brings the gate up to date with the session and waits until the
// stores finished loading.
func (r *Runner) sync(ctx context.Context) {
	r.gate.SetIdentity(ctx, r.sess.Identity())
}

// signedIn syncs the stores and fails when nobody is signed in.
func (r *Runner) signedIn(ctx context.Context) error {
	r.sync(ctx)
	if !r.gate.Active() {
		return model.ErrUnauthorized
	}
	return nil
}

func loadConfig(path string) (*client.Config, error) {
	if path == "" {
		return client.DefaultConfig(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return client.DefaultConfig(), nil
	}
	cfg, err := client.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.output, format, args...)
}
