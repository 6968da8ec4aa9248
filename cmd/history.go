package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/graphplane/graphplane/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent migration runs from the local ledger",
	Run:   runHistory,
}

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum number of runs to list")
}

func runHistory(cmd *cobra.Command, args []string) {
	store, err := history.Open(history.DefaultFile)
	if err != nil {
		log.Fatalf("Failed to open history ledger: %v", err)
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Recent(context.Background(), historyLimit)
	if err != nil {
		log.Fatalf("Failed to read history: %v", err)
	}
	if len(entries) == 0 {
		fmt.Println("No migration runs recorded.")
		return
	}

	for _, entry := range entries {
		status := "ok"
		if len(entry.Failures) > 0 {
			status = "failed: " + strings.Join(entry.Failures, "; ")
		}
		fmt.Printf("%s  %-12s executed=%d skipped=%d  %s\n",
			entry.StartedAt.Format("2006-01-02 15:04:05"),
			entry.Environment, entry.Executed, entry.Skipped, status)
	}
}
