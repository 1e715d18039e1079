// Package cli implements the command-line interface for git-wippy.
package cli

import (
	"fmt"
	"os"

	"github.com/mekwall/git-wippy/internal/config"
	"github.com/mekwall/git-wippy/internal/git"
	"github.com/mekwall/git-wippy/internal/prompt"
	"github.com/spf13/cobra"
)

// cmdContext holds common resources for CLI commands
type cmdContext struct {
	Config  *config.Config
	Git     git.Runner
	Decider prompt.Decider
}

// initContext loads the config and wires the real git and prompt backends
func initContext() *cmdContext {
	cfg, err := config.Load()
	if err != nil {
		exitError("%v", err)
	}

	return &cmdContext{
		Config:  cfg,
		Git:     git.NewCommandRunner(),
		Decider: prompt.NewTerminal(),
	}
}

var rootCmd = &cobra.Command{
	Use:   "git-wippy",
	Short: "Save and restore work-in-progress snapshots",
	Long: `git-wippy stashes your whole working tree onto an ephemeral
wip/{user}/{timestamp} branch and brings it back later, even after you
have moved on to other work. Staged, unstaged, and untracked files all
survive the round trip with their state intact.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(deleteCmd)
}

// exitError prints an error and exits
func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
