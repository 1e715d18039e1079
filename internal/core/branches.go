package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mekwall/git-wippy/internal/git"
)

const remoteTrackingPrefix = "remotes/origin/"

// BranchName formats the WIP branch name for an owner and timestamp.
func BranchName(owner, timestamp string) string {
	return fmt.Sprintf("wip/%s/%s", owner, timestamp)
}

// Timestamp formats a time the way WIP branch names expect: fixed-width
// and lexically sortable, so the newest branch always sorts last.
func Timestamp(t time.Time) string {
	return t.Format("2006-01-02-15-04-05")
}

// Username returns the owner identity derived from git user.name.
func Username(ctx context.Context, r git.Runner) (string, error) {
	name, err := git.Username(ctx, r)
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", ErrUsernameNotConfigured
	}
	return name, nil
}

// UserWIPBranches lists the owner's WIP branches across local and
// remote-tracking refs. Remote duplicates of a local branch collapse into
// one logical name. An empty owner yields an empty list, not an error.
// The result is sorted, which puts the oldest snapshot first.
func UserWIPBranches(ctx context.Context, r git.Runner, owner string) ([]string, error) {
	if owner == "" {
		return nil, nil
	}

	lines, err := git.AllBranches(ctx, r)
	if err != nil {
		return nil, err
	}

	prefix := fmt.Sprintf("wip/%s/", owner)
	seen := make(map[string]struct{})
	var branches []string
	for _, line := range lines {
		name := strings.TrimSpace(strings.TrimPrefix(line, "* "))
		name = strings.TrimPrefix(name, remoteTrackingPrefix)
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		branches = append(branches, name)
	}

	sort.Strings(branches)
	return branches, nil
}

func contains(branches []string, name string) bool {
	for _, b := range branches {
		if b == name {
			return true
		}
	}
	return false
}
