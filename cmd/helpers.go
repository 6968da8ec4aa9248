package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/graphplane/graphplane/database"
	"github.com/graphplane/graphplane/database/neo4j"
	"github.com/graphplane/graphplane/internal/config"
	"github.com/graphplane/graphplane/internal/schema"
)

// openDriver resolves a named environment from graphplane.toml (plus dotenv
// and process environment overrides) and connects to it.
func openDriver(ctx context.Context, envName string) (*neo4j.Driver, *config.ResolvedEnvironment, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config file: %w", err)
	}

	env, err := config.ResolveEnvironment(cfg, envName)
	if err != nil {
		return nil, nil, err
	}

	driver, err := neo4j.Open(ctx, neo4j.Config{
		URI:      env.URI,
		Username: env.Username,
		Password: env.Password,
		Database: env.Database,
	}, neo4j.WithLogger(newLogger()))
	if err != nil {
		return nil, nil, err
	}
	return driver, env, nil
}

// loadSnapshotArg turns a --from/--to value into a snapshot. A value naming
// an existing .json file is loaded from disk; anything else is treated as an
// environment name to introspect.
func loadSnapshotArg(ctx context.Context, value string) (*database.Snapshot, error) {
	trimmed := strings.TrimSpace(value)
	if looksLikeSnapshotFile(trimmed) {
		return schema.LoadSnapshot(trimmed)
	}

	driver, _, err := openDriver(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	defer func() { _ = driver.Close(ctx) }()

	return driver.Snapshot(ctx)
}

func looksLikeSnapshotFile(value string) bool {
	if !strings.HasSuffix(strings.ToLower(value), ".json") {
		return false
	}
	_, err := os.Stat(value)
	return err == nil
}
