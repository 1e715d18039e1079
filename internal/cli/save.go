package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/mekwall/git-wippy/internal/core"
	"github.com/spf13/cobra"
)

var (
	saveLocal    bool
	saveUsername string
	saveDatetime string
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the working tree to a WIP branch",
	Long: `Capture everything in the working tree (staged, unstaged, and
untracked files) into a single commit on a new wip/{user}/{timestamp}
branch, push it unless --local is given, and return to the branch you
started on.

Examples:
  git-wippy save             Save and push the WIP branch
  git-wippy save --local     Save without pushing
  git-wippy save -u alice    Save under a different username`,
	Run: runSave,
}

func init() {
	saveCmd.Flags().BoolVarP(&saveLocal, "local", "l", false, "Don't push the WIP branch to the remote")
	saveCmd.Flags().StringVarP(&saveUsername, "username", "u", "", "Override the git username")
	saveCmd.Flags().StringVarP(&saveDatetime, "datetime", "d", "", "Override the branch timestamp")
}

func runSave(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	c := initContext()

	username := saveUsername
	if username == "" {
		username = c.Config.Username
	}

	result, err := core.Save(ctx, c.Git, core.SaveOptions{
		LocalOnly: saveLocal || c.Config.LocalOnly,
		Username:  username,
		Datetime:  saveDatetime,
		Remote:    c.Config.Remote,
	})
	if err != nil {
		exitError("%v", err)
	}

	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	green.Printf("Saved work in progress to ")
	cyan.Printf("%s\n", result.Branch)

	snap := result.Snapshot
	if len(snap.Staged) > 0 {
		fmt.Printf("  %d staged file(s)\n", len(snap.Staged))
	}
	if len(snap.Changed) > 0 {
		fmt.Printf("  %d changed file(s)\n", len(snap.Changed))
	}
	if len(snap.Untracked) > 0 {
		fmt.Printf("  %d untracked file(s)\n", len(snap.Untracked))
	}

	if result.Pushed {
		fmt.Printf("Pushed %s to %s\n", result.Branch, c.Config.Remote)
	} else if !saveLocal && !c.Config.LocalOnly {
		fmt.Println("No remote configured, skipped push")
	}

	fmt.Printf("Back on %s\n", result.OriginalBranch)
}
