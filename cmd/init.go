package cmd

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/graphplane/graphplane/internal/config"
	"github.com/graphplane/graphplane/internal/wizard"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create graphplane.toml interactively",
	Run:   runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing graphplane.toml")
}

func runInit(cmd *cobra.Command, args []string) {
	if !initForce {
		if _, err := os.Stat(config.ConfigFileName); err == nil {
			log.Fatalf("%s already exists; use --force to overwrite", config.ConfigFileName)
		}
	}

	program := tea.NewProgram(wizard.New())
	finalModel, err := program.Run()
	if err != nil {
		log.Fatalf("Wizard failed: %v", err)
	}

	model, ok := finalModel.(wizard.Model)
	if !ok {
		log.Fatalf("Wizard returned an unexpected model")
	}
	if model.Aborted() {
		return
	}
	if err := model.Err(); err != nil {
		log.Fatalf("Failed to write configuration: %v", err)
	}

	fmt.Printf("Created %s. Next: graphplane introspect > snapshot.json\n", config.ConfigFileName)
}
