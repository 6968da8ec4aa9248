package wizard

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/graphplane/graphplane/internal/config"
)

// RenderConfig renders the graphplane.toml contents for a wizard result.
// The password is deliberately left out of the file; it belongs in the
// environment's dotenv file or in GRAPHPLANE_PASSWORD.
func RenderConfig(result Result) (string, error) {
	cfg := config.Config{
		DefaultEnvironment: result.Environment,
		Environments: map[string]config.EnvironmentConfig{
			result.Environment: {
				URI:      result.URI,
				Username: result.Username,
				Database: result.Database,
			},
		},
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to render config: %w", err)
	}
	return string(data), nil
}

// WriteFiles writes graphplane.toml and, when a password was entered, the
// environment's dotenv file.
func WriteFiles(result Result) error {
	contents, err := RenderConfig(result)
	if err != nil {
		return err
	}
	if err := os.WriteFile(config.ConfigFileName, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.ConfigFileName, err)
	}

	if result.Password != "" {
		dotenv := fmt.Sprintf("%s=%s\n", config.EnvPassword, result.Password)
		dotenvPath := ".env." + result.Environment
		if err := os.WriteFile(dotenvPath, []byte(dotenv), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", dotenvPath, err)
		}
	}
	return nil
}
