package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/graphplane/graphplane/internal/executor"
	"github.com/graphplane/graphplane/internal/history"
	"github.com/graphplane/graphplane/internal/planner"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a migration plan to a graph database",
	Long: `Apply a migration plan to a graph database.

Executable statements run in transactional batches; informational notices
are skipped. On the first database error the open batch is rolled back and
execution stops — batches committed earlier stay committed, so re-run
graphplane plan against the live database to pick up the remainder.`,
	Example: `  # Dry-run a plan against the default environment
  graphplane apply --plan plan.json --dry-run

  # Apply for real with 25 statements per transaction
  graphplane apply --plan plan.json --environment production --batch-size 25`,
	Run: runApply,
}

var (
	applyPlanPath    string
	applyEnvironment string
	applyDryRun      bool
	applyBatchSize   int
	applyNoHistory   bool
)

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVar(&applyPlanPath, "plan", "", "Plan JSON file produced by graphplane plan")
	applyCmd.Flags().StringVar(&applyEnvironment, "environment", "", "Named environment to apply against (defaults to config default)")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Report what would run without touching the database")
	applyCmd.Flags().IntVar(&applyBatchSize, "batch-size", executor.DefaultBatchSize, "Executable statements per transaction")
	applyCmd.Flags().BoolVar(&applyNoHistory, "no-history", false, "Skip recording the run in the local history ledger")
	_ = applyCmd.MarkFlagRequired("plan")
}

func runApply(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	plan, err := planner.LoadPlan(applyPlanPath)
	if err != nil {
		log.Fatalf("Failed to load plan: %v", err)
	}

	driver, env, err := openDriver(ctx, applyEnvironment)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = driver.Close(ctx) }()

	exec, err := executor.New(driver, applyBatchSize, executor.WithLogger(newLogger()))
	if err != nil {
		log.Fatalf("Invalid executor configuration: %v", err)
	}

	startedAt := time.Now()
	result := exec.Run(ctx, plan, applyDryRun)

	if !applyDryRun && !applyNoHistory {
		recordRun(ctx, env.Name, plan, result, startedAt)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal result: %v", err)
	}
	fmt.Println(string(data))

	if len(result.Failures) > 0 {
		os.Exit(1)
	}
}

func recordRun(ctx context.Context, environment string, plan *planner.Plan, result *planner.Result, startedAt time.Time) {
	store, err := history.Open(history.DefaultFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history ledger: %v\n", err)
		return
	}
	defer func() { _ = store.Close() }()

	entry := history.Entry{
		StartedAt:   startedAt,
		Environment: environment,
		SourceHash:  plan.SourceHash,
		Executed:    result.Executed,
		Skipped:     result.Skipped,
		Failures:    result.Failures,
	}
	if err := store.Record(ctx, entry); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record run: %v\n", err)
	}
}
