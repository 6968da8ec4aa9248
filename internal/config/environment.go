package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const defaultEnvironmentName = "local"

// Environment variable names recognized both in .env.<name> files and the
// process environment.
const (
	EnvURI      = "GRAPHPLANE_URI"
	EnvUsername = "GRAPHPLANE_USERNAME"
	EnvPassword = "GRAPHPLANE_PASSWORD"
	EnvDatabase = "GRAPHPLANE_DATABASE"
)

// ResolvedEnvironment is a named environment with concrete connection
// values, after merging graphplane.toml, the per-environment dotenv file,
// and process environment variables.
type ResolvedEnvironment struct {
	Name         string
	URI          string
	Username     string
	Password     string
	Database     string
	SnapshotPath string
	DotenvPath   string
	FromConfig   bool
	FromDotenv   bool
}

// ResolveEnvironment resolves a named environment. Precedence, lowest to
// highest: graphplane.toml values, `.env.<name>` entries, then GRAPHPLANE_*
// process environment variables. An empty name falls back to the config's
// default environment, then to "local".
func ResolveEnvironment(config *Config, name string) (*ResolvedEnvironment, error) {
	envName := strings.TrimSpace(name)
	if envName == "" {
		if config != nil && config.DefaultEnvironment != "" {
			envName = config.DefaultEnvironment
		} else {
			envName = defaultEnvironmentName
		}
	}

	resolved := &ResolvedEnvironment{Name: envName}

	if config != nil {
		resolved.SnapshotPath = config.SnapshotPath
		if envConfig, ok := config.Environments[envName]; ok {
			resolved.URI = envConfig.URI
			resolved.Username = envConfig.Username
			resolved.Password = envConfig.Password
			resolved.Database = envConfig.Database
			if envConfig.SnapshotPath != "" {
				resolved.SnapshotPath = envConfig.SnapshotPath
			}
			resolved.FromConfig = true
		}
	}

	baseDir := "."
	if config != nil && config.ConfigDir() != "" {
		baseDir = config.ConfigDir()
	}
	resolved.DotenvPath = filepath.Join(baseDir, ".env."+envName)

	if _, err := os.Stat(resolved.DotenvPath); err == nil {
		values, err := godotenv.Read(resolved.DotenvPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", resolved.DotenvPath, err)
		}
		applyValues(resolved, func(key string) string { return values[key] })
		resolved.FromDotenv = true
	}

	applyValues(resolved, os.Getenv)

	if resolved.URI == "" {
		return nil, fmt.Errorf(
			"environment %q has no connection URI; set it in %s, %s, or %s",
			envName, ConfigFileName, resolved.DotenvPath, EnvURI)
	}

	return resolved, nil
}

func applyValues(resolved *ResolvedEnvironment, lookup func(string) string) {
	if v := lookup(EnvURI); v != "" {
		resolved.URI = v
	}
	if v := lookup(EnvUsername); v != "" {
		resolved.Username = v
	}
	if v := lookup(EnvPassword); v != "" {
		resolved.Password = v
	}
	if v := lookup(EnvDatabase); v != "" {
		resolved.Database = v
	}
}
