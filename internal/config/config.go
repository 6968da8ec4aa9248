package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is searched for from the working directory upward.
const ConfigFileName = "graphplane.toml"

// EnvironmentConfig describes a single named environment from
// graphplane.toml.
type EnvironmentConfig struct {
	URI          string `toml:"uri"`
	Username     string `toml:"username"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	SnapshotPath string `toml:"snapshot_path"`
}

type Config struct {
	DefaultEnvironment string                       `toml:"default_environment"`
	SnapshotPath       string                       `toml:"snapshot_path"`
	Environments       map[string]EnvironmentConfig `toml:"environments"`
	ConfigFilePath     string                       `toml:"-"`
}

// ConfigDir returns the directory holding the config file, or empty when no
// file was found.
func (c *Config) ConfigDir() string {
	if c.ConfigFilePath == "" {
		return ""
	}
	return filepath.Dir(c.ConfigFilePath)
}

// LoadConfig walks from the working directory toward the filesystem root
// looking for graphplane.toml, stopping at the first project boundary. A
// missing file is not an error; an empty Config is returned.
func LoadConfig() (*Config, error) {
	startDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return LoadConfigFrom(startDir)
}

// LoadConfigFrom is LoadConfig starting from an explicit directory.
func LoadConfigFrom(startDir string) (*Config, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, err
			}

			var config Config
			if err := toml.Unmarshal(data, &config); err != nil {
				return nil, err
			}

			config.ConfigFilePath = configPath
			return &config, nil
		}

		if isProjectRoot(dir) {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return &Config{}, nil
}

// isProjectRoot checks if the directory is a project root based on common markers
func isProjectRoot(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		return true
	}
	if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
		return true
	}
	if _, err := os.Stat(filepath.Join(dir, "package.json")); err == nil {
		return true
	}
	return false
}
