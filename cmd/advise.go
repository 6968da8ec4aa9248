package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/graphplane/graphplane/internal/advisor"
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Recommend incremental job slices grouped by label and organization",
	Long: `Recommend incremental job slices grouped by label and organization.

Counts nodes per (label, organization property) pair and lists the largest
slices first, so follow-up jobs after a migration can be scheduled against
the heaviest parts of the graph.`,
	Run: runAdvise,
}

var (
	adviseEnvironment string
	adviseLabels      []string
	adviseLimit       int
	adviseOrgProperty string
)

func init() {
	rootCmd.AddCommand(adviseCmd)

	adviseCmd.Flags().StringVar(&adviseEnvironment, "environment", "", "Named environment to inspect (defaults to config default)")
	adviseCmd.Flags().StringSliceVar(&adviseLabels, "label", nil, "Restrict to these labels (repeatable)")
	adviseCmd.Flags().IntVar(&adviseLimit, "limit", 25, "Maximum number of slices to list")
	adviseCmd.Flags().StringVar(&adviseOrgProperty, "org-property", advisor.DefaultOrgProperty, "Node property that identifies the organization")
}

func runAdvise(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	driver, _, err := openDriver(ctx, adviseEnvironment)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = driver.Close(ctx) }()

	recommendations, err := advisor.New(driver, advisor.WithOrgProperty(adviseOrgProperty)).
		Recommend(ctx, adviseLabels, adviseLimit)
	if err != nil {
		log.Fatalf("Failed to compute recommendations: %v", err)
	}

	data, err := json.MarshalIndent(recommendations, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal recommendations: %v", err)
	}
	fmt.Println(string(data))
}
