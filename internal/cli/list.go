package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/mekwall/git-wippy/internal/core"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your WIP branches",
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	c := initContext()

	result, err := core.List(ctx, c.Git)
	if err != nil {
		exitError("%v", err)
	}

	if len(result.Branches) == 0 {
		fmt.Printf("No WIP branches found for %s\n", result.Owner)
		return
	}

	cyan := color.New(color.FgCyan)
	fmt.Printf("WIP branches for %s:\n", result.Owner)
	for _, branch := range result.Branches {
		cyan.Printf("  %s\n", branch)
	}
}
