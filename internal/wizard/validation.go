package wizard

import (
	"fmt"
	"strings"
)

// Connection URI schemes the Bolt driver accepts.
var supportedSchemes = []string{
	"neo4j://", "neo4j+s://", "neo4j+ssc://",
	"bolt://", "bolt+s://", "bolt+ssc://",
}

// ValidateURI checks that a connection URI uses a supported scheme and has a
// host component.
func ValidateURI(uri string) error {
	trimmed := strings.TrimSpace(uri)
	if trimmed == "" {
		return fmt.Errorf("connection URI is required")
	}

	for _, scheme := range supportedSchemes {
		if strings.HasPrefix(trimmed, scheme) {
			if len(trimmed) == len(scheme) {
				return fmt.Errorf("connection URI is missing a host")
			}
			return nil
		}
	}
	return fmt.Errorf("connection URI must start with one of: %s", strings.Join(supportedSchemes, ", "))
}

// ValidateEnvironmentName checks that an environment name is non-empty and
// usable as a toml table key and dotenv file suffix.
func ValidateEnvironmentName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("environment name is required")
	}

	for _, r := range trimmed {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return fmt.Errorf("environment name may only contain lowercase letters, digits, '-' and '_'")
		}
	}
	return nil
}
