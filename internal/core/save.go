package core

import (
	"context"
	"fmt"
	"time"

	"github.com/mekwall/git-wippy/internal/git"
	"github.com/mekwall/git-wippy/internal/models"
)

// SaveOptions configures a save operation.
type SaveOptions struct {
	// LocalOnly skips publishing the WIP branch to the remote.
	LocalOnly bool
	// Username overrides the owner derived from git user.name.
	Username string
	// Datetime overrides the timestamp used in the branch name.
	Datetime string
	// Remote is the remote to publish to, normally "origin".
	Remote string
}

// SaveResult describes a completed save.
type SaveResult struct {
	Branch         string
	OriginalBranch string
	Snapshot       *models.Snapshot
	Pushed         bool
}

// Save captures the current working-tree state into a single commit on a
// new wip/{owner}/{timestamp} branch and returns to the original branch.
// Every step is fatal on failure; partial state (e.g. a branch created
// but not committed) is left for the user rather than rolled back.
func Save(ctx context.Context, r git.Runner, opts SaveOptions) (*SaveResult, error) {
	if !git.IsRepository(ctx, r) {
		return nil, ErrNotRepository
	}

	owner := opts.Username
	if owner == "" {
		var err error
		owner, err = Username(ctx, r)
		if err != nil {
			return nil, err
		}
	}

	timestamp := opts.Datetime
	if timestamp == "" {
		timestamp = Timestamp(time.Now())
	}
	branch := BranchName(owner, timestamp)

	snapshot, err := captureSnapshot(ctx, r)
	if err != nil {
		return nil, err
	}
	message := EncodeSnapshot(snapshot)

	if err := git.CreateBranch(ctx, r, branch); err != nil {
		return nil, fmt.Errorf("failed to create branch %s: %w", branch, err)
	}
	if err := git.StageAll(ctx, r); err != nil {
		return nil, err
	}
	if err := git.Commit(ctx, r, message); err != nil {
		return nil, err
	}

	pushed := false
	if !opts.LocalOnly {
		remotes, err := git.Remotes(ctx, r)
		if err != nil {
			return nil, err
		}
		if len(remotes) > 0 {
			if err := git.Push(ctx, r, opts.Remote, branch); err != nil {
				return nil, err
			}
			pushed = true
		}
	}

	if err := git.Checkout(ctx, r, snapshot.SourceBranch); err != nil {
		return nil, err
	}

	return &SaveResult{
		Branch:         branch,
		OriginalBranch: snapshot.SourceBranch,
		Snapshot:       snapshot,
		Pushed:         pushed,
	}, nil
}

// captureSnapshot queries the live staged, changed, and untracked sets
// along with the current branch.
func captureSnapshot(ctx context.Context, r git.Runner) (*models.Snapshot, error) {
	sourceBranch, err := git.CurrentBranch(ctx, r)
	if err != nil {
		return nil, err
	}

	staged, err := git.StagedFiles(ctx, r)
	if err != nil {
		return nil, err
	}
	changed, err := git.ChangedFiles(ctx, r)
	if err != nil {
		return nil, err
	}
	untracked, err := git.UntrackedFiles(ctx, r)
	if err != nil {
		return nil, err
	}

	return &models.Snapshot{
		SourceBranch: sourceBranch,
		Staged:       staged,
		Changed:      changed,
		Untracked:    untracked,
	}, nil
}
