package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/graphplane/graphplane/internal/schema"
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show structural differences between two schema snapshots",
	Long: `Show structural differences between two schema snapshots.

Each side can be a snapshot JSON file or the name of an environment from
graphplane.toml (which will be introspected).`,
	Example: `  # Diff the live local database against a checked-in snapshot
  graphplane diff --from local --to snapshot.json

  # Diff two snapshot files
  graphplane diff --from old.json --to new.json`,
	Run: runDiff,
}

var (
	diffFrom string
	diffTo   string
)

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().StringVar(&diffFrom, "from", "", "Current schema: snapshot file or environment name")
	diffCmd.Flags().StringVar(&diffTo, "to", "", "Target schema: snapshot file or environment name")
	_ = diffCmd.MarkFlagRequired("from")
	_ = diffCmd.MarkFlagRequired("to")
}

func runDiff(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	current, err := loadSnapshotArg(ctx, diffFrom)
	if err != nil {
		log.Fatalf("Failed to load current schema: %v", err)
	}
	target, err := loadSnapshotArg(ctx, diffTo)
	if err != nil {
		log.Fatalf("Failed to load target schema: %v", err)
	}

	diff := schema.DiffSnapshots(current, target)
	if diff.IsEmpty() {
		fmt.Println("Schemas are identical.")
		return
	}

	data, err := json.MarshalIndent(diff, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal diff: %v", err)
	}
	fmt.Println(string(data))
}
