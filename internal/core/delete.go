package core

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mekwall/git-wippy/internal/git"
	"github.com/mekwall/git-wippy/internal/prompt"
)

// DeleteOutcome classifies how a delete finished.
type DeleteOutcome int

const (
	// DeleteDone means at least the local deletions completed.
	DeleteDone DeleteOutcome = iota
	// DeleteNoBranches means the owner has no WIP branches.
	DeleteNoBranches
	// DeleteBranchNotFound means the explicitly named branch is not one
	// of the owner's WIP branches.
	DeleteBranchNotFound
	// DeleteCancelled means the user declined a confirmation prompt.
	DeleteCancelled
	// DeleteNothingSelected means the user picked no branches in the
	// multi-select.
	DeleteNothingSelected
)

// DeleteOptions configures a delete operation.
type DeleteOptions struct {
	// BranchName deletes a specific WIP branch.
	BranchName string
	// All deletes every WIP branch of the owner.
	All bool
	// Force skips every confirmation prompt.
	Force bool
	// LocalOnly never touches the remote.
	LocalOnly bool
	// Remote is the remote branches are deleted from, normally "origin".
	Remote string
}

// RemoteFailure records a remote deletion that failed for one branch.
type RemoteFailure struct {
	Branch string
	Err    error
}

// DeleteResult describes a finished delete.
type DeleteResult struct {
	Outcome DeleteOutcome
	Owner   string
	// Branch carries the requested name for DeleteBranchNotFound.
	Branch  string
	Deleted []string
	// Remote reports whether remote deletion was attempted.
	Remote bool
	// RemoteFailures lists branches whose remote deletion failed; these
	// are warnings, not fatal errors.
	RemoteFailures []RemoteFailure
}

// Delete removes WIP branches locally and, unless told otherwise, from
// the remote. A failed local deletion is fatal; a failed remote deletion
// is recorded per branch and the rest continue.
func Delete(ctx context.Context, r git.Runner, d prompt.Decider, opts DeleteOptions) (*DeleteResult, error) {
	owner, err := Username(ctx, r)
	if err != nil {
		return nil, err
	}

	branches, err := UserWIPBranches(ctx, r, owner)
	if err != nil {
		return nil, err
	}

	result := &DeleteResult{Owner: owner}
	if len(branches) == 0 {
		result.Outcome = DeleteNoBranches
		return result, nil
	}

	targets, outcome, err := selectDeleteTargets(branches, opts, d)
	if err != nil {
		return nil, err
	}
	if outcome != DeleteDone {
		result.Outcome = outcome
		result.Branch = opts.BranchName
		return result, nil
	}

	deleteRemote, err := shouldDeleteRemote(ctx, r, d, opts, len(targets))
	if err != nil {
		return nil, err
	}
	result.Remote = deleteRemote

	for _, branch := range targets {
		if err := git.DeleteBranch(ctx, r, branch, true); err != nil {
			return nil, fmt.Errorf("failed to delete local branch %s: %w", branch, err)
		}
		result.Deleted = append(result.Deleted, branch)
	}

	if deleteRemote {
		result.RemoteFailures = deleteRemoteBranches(ctx, r, opts.Remote, targets)
	}

	return result, nil
}

// selectDeleteTargets resolves the set of branches to delete, asking the
// user where the options leave room. The returned outcome is DeleteDone
// when targets were chosen.
func selectDeleteTargets(branches []string, opts DeleteOptions, d prompt.Decider) ([]string, DeleteOutcome, error) {
	switch {
	case opts.All:
		if !opts.Force {
			ok, err := d.Confirm(fmt.Sprintf("Delete all %d WIP branches?", len(branches)))
			if err != nil {
				return nil, DeleteDone, err
			}
			if !ok {
				return nil, DeleteCancelled, nil
			}
		}
		return branches, DeleteDone, nil

	case opts.BranchName != "":
		if !contains(branches, opts.BranchName) {
			return nil, DeleteBranchNotFound, nil
		}
		if !opts.Force {
			ok, err := d.Confirm(fmt.Sprintf("Delete WIP branch %s?", opts.BranchName))
			if err != nil {
				return nil, DeleteDone, err
			}
			if !ok {
				return nil, DeleteCancelled, nil
			}
		}
		return []string{opts.BranchName}, DeleteDone, nil

	case len(branches) == 1:
		if !opts.Force {
			ok, err := d.Confirm(fmt.Sprintf("Delete WIP branch %s?", branches[0]))
			if err != nil {
				return nil, DeleteDone, err
			}
			if !ok {
				return nil, DeleteCancelled, nil
			}
		}
		return branches, DeleteDone, nil

	default:
		indices, err := d.ChooseMany("Select WIP branches to delete", branches)
		if err != nil {
			return nil, DeleteDone, err
		}
		if len(indices) == 0 {
			return nil, DeleteNothingSelected, nil
		}
		targets := make([]string, 0, len(indices))
		for _, i := range indices {
			targets = append(targets, branches[i])
		}
		return targets, DeleteDone, nil
	}
}

// shouldDeleteRemote decides whether remote deletion happens: never with
// local-only, never without the configured remote, without asking when
// forced, otherwise by confirmation.
func shouldDeleteRemote(ctx context.Context, r git.Runner, d prompt.Decider, opts DeleteOptions, count int) (bool, error) {
	if opts.LocalOnly {
		return false, nil
	}
	remotes, err := git.Remotes(ctx, r)
	if err != nil {
		return false, err
	}
	if !contains(remotes, opts.Remote) {
		return false, nil
	}
	if opts.Force {
		return true, nil
	}
	return d.Confirm(fmt.Sprintf("Also delete %d branch(es) on %s?", count, opts.Remote))
}

// deleteRemoteBranches deletes the branches on the remote with bounded
// fan-out. Failures are collected, not propagated; one unreachable
// branch must not block the rest.
func deleteRemoteBranches(ctx context.Context, r git.Runner, remote string, branches []string) []RemoteFailure {
	const maxWorkers = 4

	var mu sync.Mutex
	var failures []RemoteFailure

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	for _, branch := range branches {
		b := branch
		g.Go(func() error {
			if err := git.DeleteRemoteBranch(gctx, r, remote, b); err != nil {
				mu.Lock()
				failures = append(failures, RemoteFailure{Branch: b, Err: err})
				mu.Unlock()
			}
			return nil
		})
	}

	// The workers never return errors; failures travel in the slice.
	_ = g.Wait()

	return failures
}
