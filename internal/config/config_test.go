package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigFrom_WalksUpToConfig(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigFileName), `
default_environment = "staging"
snapshot_path = "schema/snapshot.json"

[environments.staging]
uri = "neo4j://staging:7687"
username = "neo4j"
`)
	nested := filepath.Join(root, "services", "api")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfigFrom(nested)
	if err != nil {
		t.Fatal(err)
	}
	if config.DefaultEnvironment != "staging" {
		t.Fatalf("default environment = %q, want staging", config.DefaultEnvironment)
	}
	if config.Environments["staging"].URI != "neo4j://staging:7687" {
		t.Fatalf("unexpected environment: %+v", config.Environments["staging"])
	}
	if config.ConfigDir() != root {
		t.Fatalf("config dir = %q, want %q", config.ConfigDir(), root)
	}
}

func TestLoadConfigFrom_StopsAtProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ConfigFileName), `default_environment = "outer"`)

	project := filepath.Join(root, "project")
	writeFile(t, filepath.Join(project, "go.mod"), "module example.com/project\n")

	config, err := LoadConfigFrom(project)
	if err != nil {
		t.Fatal(err)
	}
	if config.ConfigFilePath != "" {
		t.Fatalf("search crossed the project boundary: found %s", config.ConfigFilePath)
	}
}

func TestLoadConfigFrom_Missing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".git", "HEAD"), "ref: refs/heads/main\n")

	config, err := LoadConfigFrom(dir)
	if err != nil {
		t.Fatal(err)
	}
	if config.ConfigFilePath != "" || config.DefaultEnvironment != "" {
		t.Fatalf("expected empty config, got %+v", config)
	}
}

func TestResolveEnvironment_Precedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFileName), "")
	writeFile(t, filepath.Join(dir, ".env.staging"),
		"GRAPHPLANE_URI=neo4j://dotenv:7687\nGRAPHPLANE_PASSWORD=dotenv-secret\n")

	config := &Config{
		ConfigFilePath: filepath.Join(dir, ConfigFileName),
		Environments: map[string]EnvironmentConfig{
			"staging": {
				URI:      "neo4j://toml:7687",
				Username: "toml-user",
				Password: "toml-secret",
			},
		},
	}
	t.Setenv(EnvURI, "")
	t.Setenv(EnvPassword, "process-secret")

	resolved, err := ResolveEnvironment(config, "staging")
	if err != nil {
		t.Fatal(err)
	}

	// toml < dotenv < process environment.
	if resolved.URI != "neo4j://dotenv:7687" {
		t.Fatalf("uri = %q, want dotenv value", resolved.URI)
	}
	if resolved.Username != "toml-user" {
		t.Fatalf("username = %q, want toml value to survive", resolved.Username)
	}
	if resolved.Password != "process-secret" {
		t.Fatalf("password = %q, want process environment value", resolved.Password)
	}
	if !resolved.FromConfig || !resolved.FromDotenv {
		t.Fatalf("provenance flags wrong: %+v", resolved)
	}
}

func TestResolveEnvironment_DefaultName(t *testing.T) {
	t.Setenv(EnvURI, "neo4j://localhost:7687")

	resolved, err := ResolveEnvironment(&Config{DefaultEnvironment: "staging"}, "")
	if err != nil {
		t.Fatal(err)
	}
	if resolved.Name != "staging" {
		t.Fatalf("name = %q, want config default", resolved.Name)
	}

	resolved, err = ResolveEnvironment(&Config{}, "")
	if err != nil {
		t.Fatal(err)
	}
	if resolved.Name != "local" {
		t.Fatalf("name = %q, want local fallback", resolved.Name)
	}
}

func TestResolveEnvironment_MissingURI(t *testing.T) {
	t.Setenv(EnvURI, "")
	if _, err := ResolveEnvironment(&Config{}, "nowhere"); err == nil {
		t.Fatal("expected error when no URI can be resolved")
	}
}

func TestResolveEnvironment_SnapshotPathOverride(t *testing.T) {
	t.Setenv(EnvURI, "neo4j://localhost:7687")

	config := &Config{
		SnapshotPath: "global.json",
		Environments: map[string]EnvironmentConfig{
			"a": {URI: "neo4j://a:7687"},
			"b": {URI: "neo4j://b:7687", SnapshotPath: "b.json"},
		},
	}

	resolved, err := ResolveEnvironment(config, "a")
	if err != nil {
		t.Fatal(err)
	}
	if resolved.SnapshotPath != "global.json" {
		t.Fatalf("snapshot path = %q, want global default", resolved.SnapshotPath)
	}

	resolved, err = ResolveEnvironment(config, "b")
	if err != nil {
		t.Fatal(err)
	}
	if resolved.SnapshotPath != "b.json" {
		t.Fatalf("snapshot path = %q, want per-environment override", resolved.SnapshotPath)
	}
}
