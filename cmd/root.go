package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "graphplane",
	Short: "Graphplane is a tool for planning and applying graph schema migrations.",
	Long: `Graphplane is a tool for planning and applying graph schema migrations.

It introspects a property graph database into a canonical snapshot, diffs it
against a desired snapshot, and applies the resulting plan in transactional
batches.`,
}

var rootVerbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable verbose logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger returns a development logger when --verbose is set and a no-op
// logger otherwise.
func newLogger() *zap.Logger {
	if !rootVerbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
