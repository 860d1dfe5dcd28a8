package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Innovatorone/InnoBOOKweb/internal/config"
	"github.com/Innovatorone/InnoBOOKweb/internal/database"
)

var errNoPool = errors.New("connection pool is nil")

// Connection is the pgx pool shared by every postgres repository.
type Connection struct {
	*pgxpool.Pool
}

// NewConnection migrates the schema behind cfg.DSN, then opens a pool sized
// by cfg and checks that the server answers.
func NewConnection(ctx context.Context, cfg config.Database) (*Connection, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(ctx, cfg.DSN); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	c := &Connection{Pool: pool}
	if err := c.Ping(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("postgres is not reachable: %w", err)
	}
	return c, nil
}

func poolConfig(cfg config.Database) (*pgxpool.Config, error) {
	conf, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		conf.MaxConns = cfg.MaxConns
	}
	if cfg.MaxConnIdleTime > 0 {
		conf.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	return conf, nil
}

// Close releases the pool. A zero Connection is a no-op.
func (c *Connection) Close() error {
	if c.Pool != nil {
		c.Pool.Close()
	}
	return nil
}

func (c *Connection) Ping(ctx context.Context) error {
	if c.Pool == nil {
		return errNoPool
	}
	return c.Pool.Ping(ctx)
}
