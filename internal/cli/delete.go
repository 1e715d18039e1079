package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/mekwall/git-wippy/internal/core"
	"github.com/spf13/cobra"
)

var (
	deleteAll   bool
	deleteForce bool
	deleteLocal bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete [branch]",
	Short: "Delete WIP branches",
	Long: `Delete one or more of your WIP branches, locally and on the
remote. Without a branch argument the branches to delete are picked
interactively.

Examples:
  git-wippy delete                       Pick branches to delete
  git-wippy delete wip/alice/2026-...    Delete a specific branch
  git-wippy delete --all --force         Delete everything without asking
  git-wippy delete --local               Keep remote branches`,
	Args: cobra.MaximumNArgs(1),
	Run:  runDelete,
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteAll, "all", false, "Delete all of your WIP branches")
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompts")
	deleteCmd.Flags().BoolVarP(&deleteLocal, "local", "l", false, "Don't delete remote branches")
}

func runDelete(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	c := initContext()

	opts := core.DeleteOptions{
		All:       deleteAll,
		Force:     deleteForce,
		LocalOnly: deleteLocal,
		Remote:    c.Config.Remote,
	}
	if len(args) > 0 {
		opts.BranchName = args[0]
	}

	result, err := core.Delete(ctx, c.Git, c.Decider, opts)
	if err != nil {
		exitError("%v", err)
	}

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	switch result.Outcome {
	case core.DeleteNoBranches:
		fmt.Printf("No WIP branches found for %s\n", result.Owner)
		return
	case core.DeleteBranchNotFound:
		fmt.Printf("WIP branch %s not found\n", result.Branch)
		return
	case core.DeleteCancelled:
		fmt.Println("Operation cancelled")
		return
	case core.DeleteNothingSelected:
		fmt.Println("No branches selected")
		return
	}

	for _, branch := range result.Deleted {
		green.Printf("Deleted ")
		cyan.Printf("%s\n", branch)
	}
	for _, failure := range result.RemoteFailures {
		yellow.Printf("Warning: could not delete %s on %s: %v\n", failure.Branch, c.Config.Remote, failure.Err)
	}

	if result.Remote {
		fmt.Printf("Deleted %d branch(es) locally and on %s\n", len(result.Deleted), c.Config.Remote)
	} else {
		fmt.Printf("Deleted %d branch(es)\n", len(result.Deleted))
	}
}
