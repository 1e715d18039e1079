package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/mekwall/git-wippy/internal/core"
	"github.com/spf13/cobra"
)

var (
	restoreYes       bool
	restoreAutostash bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore [branch]",
	Short: "Restore a WIP branch onto its source branch",
	Long: `Reapply a WIP snapshot onto the branch it was saved from and
delete the WIP branch. Staged, unstaged, and untracked files come back
exactly as they were at save time.

With --autostash, local changes are stashed first and folded back in
afterwards through an explicit merge; any overlap with the snapshot
surfaces as regular conflict markers instead of being overwritten.

Examples:
  git-wippy restore                      Pick a WIP branch and restore it
  git-wippy restore wip/alice/2026-...   Restore a specific branch
  git-wippy restore -y --autostash       Restore the newest, stashing local changes`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRestore,
}

func init() {
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "Don't prompt; restore the newest WIP branch")
	restoreCmd.Flags().BoolVarP(&restoreAutostash, "autostash", "a", false, "Stash local changes and reapply them after the restore")
}

func runRestore(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	c := initContext()

	opts := core.RestoreOptions{
		Yes:       restoreYes,
		Autostash: restoreAutostash,
		Remote:    c.Config.Remote,
	}
	if len(args) > 0 {
		opts.BranchName = args[0]
	}

	result, err := core.Restore(ctx, c.Git, c.Decider, opts)
	if err != nil {
		exitError("%v", err)
	}

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	switch result.Outcome {
	case core.RestoreNoBranches:
		fmt.Printf("No WIP branches found for %s\n", result.Owner)

	case core.RestoreBranchNotFound:
		fmt.Printf("WIP branch %s not found\n", result.Branch)

	case core.RestoreConflicted:
		green.Printf("Restored ")
		cyan.Printf("%s", result.Branch)
		green.Printf(" onto ")
		cyan.Printf("%s\n", result.SourceBranch)
		yellow.Println("Merge conflicts: your stashed changes overlap the snapshot.")
		yellow.Printf("Resolve the markers, then drop the stash %q.\n", result.StashLabel)

	default:
		green.Printf("Restored ")
		cyan.Printf("%s", result.Branch)
		green.Printf(" onto ")
		cyan.Printf("%s\n", result.SourceBranch)
		if result.RemoteDeleted {
			fmt.Printf("Deleted %s locally and on %s\n", result.Branch, c.Config.Remote)
		} else {
			fmt.Printf("Deleted %s\n", result.Branch)
		}
	}
}
