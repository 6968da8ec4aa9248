package planner

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/graphplane/graphplane/database"
)

// Action is a single migration operation: an executable statement with its
// parameters, or an informational notice whose statement carries the
// comment prefix and must never be sent to the database.
type Action struct {
	Statement   string         `json:"statement"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// Informational reports whether the action is a notice rather than an
// executable statement.
func (a Action) Informational() bool {
	return strings.HasPrefix(a.Statement, database.InformationalPrefix)
}

// Plan is an ordered, immutable sequence of migration actions. Built once
// from a diff and consumed at most once by the executor.
type Plan struct {
	SourceHash string   `json:"source_hash,omitempty"`
	Actions    []Action `json:"actions"`
}

// IsEmpty returns true if the plan contains no actions.
func (p *Plan) IsEmpty() bool {
	return len(p.Actions) == 0
}

// ExecutableCount returns the number of actions that would be sent to the
// database.
func (p *Plan) ExecutableCount() int {
	count := 0
	for _, action := range p.Actions {
		if !action.Informational() {
			count++
		}
	}
	return count
}

// Result tracks the outcome of executing a plan. A non-empty Failures slice
// means execution stopped partway; Executed counts exactly the statements
// whose batch committed, so a caller can re-diff and re-plan the remainder.
type Result struct {
	Executed int      `json:"executed"`
	Skipped  int      `json:"skipped"`
	Failures []string `json:"failures,omitempty"`
}

// LoadPlan reads a plan from a JSON file previously produced by the plan
// command.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file %s: %w", path, err)
	}

	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan file %s: %w", path, err)
	}
	return &plan, nil
}

// SavePlan writes a plan as indented JSON for dry-run review.
func SavePlan(path string, plan *Plan) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write plan file %s: %w", path, err)
	}
	return nil
}
