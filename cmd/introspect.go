package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/graphplane/graphplane/internal/schema"
)

var introspectCmd = &cobra.Command{
	Use:   "introspect",
	Short: "Introspect a graph database and output its schema snapshot",
	Long: `Introspect a graph database and output its schema snapshot as JSON.

The snapshot covers labels and relationship types with their observed
properties, plus all index and constraint definitions, in a canonical order
suitable for checking into version control.`,
	Example: `  # Snapshot the default environment to stdout
  graphplane introspect > snapshot.json

  # Snapshot a named environment to a file
  graphplane introspect --environment production --output snapshot.json`,
	Run: runIntrospect,
}

var (
	introspectEnvironment string
	introspectOutput      string
)

func init() {
	rootCmd.AddCommand(introspectCmd)

	introspectCmd.Flags().StringVar(&introspectEnvironment, "environment", "", "Named environment to introspect (defaults to config default)")
	introspectCmd.Flags().StringVarP(&introspectOutput, "output", "o", "", "Write the snapshot to a file instead of stdout")
}

func runIntrospect(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	driver, _, err := openDriver(ctx, introspectEnvironment)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = driver.Close(ctx) }()

	snapshot, err := driver.Snapshot(ctx)
	if err != nil {
		log.Fatalf("Failed to introspect schema: %v", err)
	}

	if introspectOutput != "" {
		if err := schema.SaveSnapshot(introspectOutput, snapshot); err != nil {
			log.Fatalf("Failed to write snapshot: %v", err)
		}
		return
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal snapshot: %v", err)
	}
	fmt.Println(string(data))
}
