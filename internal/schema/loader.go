package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/graphplane/graphplane/database"
)

//go:embed snapshot.schema.json
var snapshotJSONSchema []byte

// LoadSnapshot loads a desired-schema snapshot from a JSON file. The
// document is validated against the snapshot JSON Schema before
// unmarshalling, and the result is normalized so the usual snapshot
// invariants hold regardless of how the file was authored.
func LoadSnapshot(path string) (*database.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file %s: %w", path, err)
	}
	return ParseSnapshot(data)
}

// ParseSnapshot validates and unmarshals a snapshot JSON document.
func ParseSnapshot(data []byte) (*database.Snapshot, error) {
	if err := validateSnapshotJSON(data); err != nil {
		return nil, err
	}

	var snapshot database.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot JSON: %w", err)
	}

	snapshot.Normalize()
	return &snapshot, nil
}

// SaveSnapshot writes a snapshot as indented JSON, the form reviewed and
// checked into version control.
func SaveSnapshot(path string, snapshot *database.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot file %s: %w", path, err)
	}
	return nil
}

func validateSnapshotJSON(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(snapshotJSONSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate snapshot JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("snapshot document is invalid: %s", strings.Join(problems, "; "))
}
