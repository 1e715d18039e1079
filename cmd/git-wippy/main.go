// Command git-wippy saves and restores work-in-progress snapshots of a
// git working tree.
package main

import (
	"os"

	"github.com/mekwall/git-wippy/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
