// Package neo4j implements the graph database backend on the official Bolt
// driver.
package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	neo4jconfig "github.com/neo4j/neo4j-go-driver/v5/neo4j/config"
	"go.uber.org/zap"

	"github.com/graphplane/graphplane/database"
)

// Config holds the connection details for a Neo4j server or Aura instance.
type Config struct {
	URI      string
	Username string
	Password string
	// Database selects a named database; empty uses the server default.
	Database string
	// MaxConnectionPoolSize caps pooled connections; zero keeps the
	// driver default.
	MaxConnectionPoolSize int
	// MaxConnectionLifetime bounds how long a pooled connection is
	// reused; zero keeps the driver default.
	MaxConnectionLifetime time.Duration
}

// Driver wraps a shared connection pool and implements database.Driver.
// The caller owns its lifetime and must Close it.
type Driver struct {
	Generator

	driver neo4j.DriverWithContext
	db     string
	log    *zap.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger attaches a structured logger.
func WithLogger(log *zap.Logger) Option {
	return func(d *Driver) {
		if log != nil {
			d.log = log
		}
	}
}

// Open creates a driver and verifies connectivity before returning it.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Driver, error) {
	auth := neo4j.NoAuth()
	if cfg.Username != "" {
		auth = neo4j.BasicAuth(cfg.Username, cfg.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth, func(c *neo4jconfig.Config) {
		if cfg.MaxConnectionPoolSize > 0 {
			c.MaxConnectionPoolSize = cfg.MaxConnectionPoolSize
		}
		if cfg.MaxConnectionLifetime > 0 {
			c.MaxConnectionLifetime = cfg.MaxConnectionLifetime
		}
	})
	if err != nil {
		return nil, fmt.Errorf("neo4j: failed to create driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4j: failed to connect: %w", err)
	}

	d := &Driver{
		driver: driver,
		db:     cfg.Database,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.log.Debug("connected", zap.String("uri", cfg.URI), zap.String("database", cfg.Database))
	return d, nil
}

// Name returns the backend name.
func (d *Driver) Name() string {
	return "neo4j"
}

// Close releases the connection pool.
func (d *Driver) Close(ctx context.Context) error {
	return d.driver.Close(ctx)
}

// OpenSession opens a write-mode session against the configured database.
func (d *Driver) OpenSession(ctx context.Context) (database.Session, error) {
	sessionCfg := neo4j.SessionConfig{
		AccessMode: neo4j.AccessModeWrite,
	}
	if d.db != "" {
		sessionCfg.DatabaseName = d.db
	}
	return &session{s: d.driver.NewSession(ctx, sessionCfg)}, nil
}

// Query runs a read statement in its own session and returns the rows as
// maps keyed by result column.
func (d *Driver) Query(ctx context.Context, statement string, parameters map[string]any) ([]map[string]any, error) {
	sessionCfg := neo4j.SessionConfig{
		AccessMode: neo4j.AccessModeRead,
	}
	if d.db != "" {
		sessionCfg.DatabaseName = d.db
	}
	s := d.driver.NewSession(ctx, sessionCfg)
	defer func() { _ = s.Close(ctx) }()

	result, err := s.Run(ctx, statement, parameters)
	if err != nil {
		return nil, fmt.Errorf("neo4j: query execution failed: %w", err)
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("neo4j: failed to collect results: %w", err)
	}

	rows := make([]map[string]any, len(records))
	for i, record := range records {
		row := make(map[string]any, len(record.Keys))
		for j, key := range record.Keys {
			row[key] = record.Values[j]
		}
		rows[i] = row
	}
	return rows, nil
}

// session adapts neo4j.SessionWithContext to database.Session.
type session struct {
	s neo4j.SessionWithContext
}

func (s *session) BeginTransaction(ctx context.Context) (database.Transaction, error) {
	tx, err := s.s.BeginTransaction(ctx)
	if err != nil {
		return nil, fmt.Errorf("neo4j: failed to begin transaction: %w", err)
	}
	return &transaction{tx: tx}, nil
}

func (s *session) Close(ctx context.Context) error {
	if err := s.s.Close(ctx); err != nil {
		return fmt.Errorf("neo4j: failed to close session: %w", err)
	}
	return nil
}

// transaction adapts neo4j.ExplicitTransaction to database.Transaction.
type transaction struct {
	tx neo4j.ExplicitTransaction
}

func (t *transaction) Run(ctx context.Context, statement string, parameters map[string]any) error {
	if _, err := t.tx.Run(ctx, statement, parameters); err != nil {
		return fmt.Errorf("neo4j: statement execution failed: %w", err)
	}
	return nil
}

func (t *transaction) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *transaction) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// Ensure Driver satisfies the full backend contract.
var _ database.Driver = (*Driver)(nil)
