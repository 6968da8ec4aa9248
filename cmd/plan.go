package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/graphplane/graphplane/internal/planner"
	"github.com/graphplane/graphplane/internal/schema"

	neo4jdb "github.com/graphplane/graphplane/database/neo4j"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a migration plan from schema differences",
	Long: `Generate a migration plan by comparing two schema snapshots.

Each side can be a snapshot JSON file or an environment name from
graphplane.toml. The plan lists every statement needed to move the current
schema to the target, plus informational notices for changes that cannot be
applied automatically. Review it, then feed it to graphplane apply.`,
	Example: `  # Plan from the live database to a checked-in snapshot
  graphplane plan --from local --to snapshot.json --output plan.json

  # Plan between two snapshot files
  graphplane plan --from old.json --to new.json`,
	Run: runPlan,
}

var (
	planFrom   string
	planTo     string
	planOutput string
)

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVar(&planFrom, "from", "", "Current schema: snapshot file or environment name")
	planCmd.Flags().StringVar(&planTo, "to", "", "Target schema: snapshot file or environment name")
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "", "Write the plan to a file instead of stdout")
	_ = planCmd.MarkFlagRequired("from")
	_ = planCmd.MarkFlagRequired("to")
}

func runPlan(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	current, err := loadSnapshotArg(ctx, planFrom)
	if err != nil {
		log.Fatalf("Failed to load current schema: %v", err)
	}
	target, err := loadSnapshotArg(ctx, planTo)
	if err != nil {
		log.Fatalf("Failed to load target schema: %v", err)
	}

	diff := schema.DiffSnapshots(current, target)
	plan := planner.GeneratePlan(diff, neo4jdb.Generator{})

	hash, err := schema.ComputeSnapshotHash(current)
	if err != nil {
		log.Fatalf("Failed to compute source schema hash: %v", err)
	}
	plan.SourceHash = hash

	if planOutput != "" {
		if err := planner.SavePlan(planOutput, plan); err != nil {
			log.Fatalf("Failed to write plan: %v", err)
		}
		return
	}

	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal plan: %v", err)
	}
	fmt.Println(string(data))
}
