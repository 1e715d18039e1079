package core

import (
	"context"
	"fmt"

	"github.com/mekwall/git-wippy/internal/git"
	"github.com/mekwall/git-wippy/internal/models"
	"github.com/mekwall/git-wippy/internal/prompt"
)

// RestoreOutcome classifies how a restore finished. Everything but a
// returned error counts as success for exit-status purposes.
type RestoreOutcome int

const (
	// RestoreClean means the snapshot was fully reapplied and the WIP
	// branch deleted.
	RestoreClean RestoreOutcome = iota
	// RestoreConflicted means the snapshot was reapplied but folding the
	// autostash back in left conflict markers; the stash is kept for
	// manual resolution.
	RestoreConflicted
	// RestoreNoBranches means the owner has no WIP branches; nothing was
	// touched.
	RestoreNoBranches
	// RestoreBranchNotFound means the explicitly named branch is not one
	// of the owner's WIP branches; nothing was touched.
	RestoreBranchNotFound
)

// RestoreOptions configures a restore operation.
type RestoreOptions struct {
	// BranchName restores a specific WIP branch instead of selecting
	// interactively.
	BranchName string
	// Yes skips prompts; with several candidates the newest snapshot is
	// picked.
	Yes bool
	// Autostash stashes local changes before restoring and folds them
	// back in afterwards.
	Autostash bool
	// Remote is the remote the WIP branch is deleted from, normally
	// "origin".
	Remote string
}

// RestoreResult describes a finished restore.
type RestoreResult struct {
	Outcome      RestoreOutcome
	Owner        string
	Branch       string
	SourceBranch string
	Snapshot     *models.Snapshot
	// StashLabel is set when a conflicted merge left the autostash
	// behind for manual resolution.
	StashLabel string
	// RemoteDeleted reports whether the WIP branch was also removed from
	// the remote.
	RemoteDeleted bool
}

// Restore reapplies a WIP snapshot onto its source branch without
// destroying either the snapshot's changes or newer local ones.
//
// The operation advances through fixed phases: select the WIP branch,
// decode its snapshot, refuse (or stash) local changes, check out or
// create the source branch, overwrite the snapshot's files, recreate the
// staged/unstaged/untracked split, fold the autostash back in via a
// temporary merge branch, and finally delete the WIP branch. Any failure
// not explicitly tolerated aborts immediately with no further cleanup.
func Restore(ctx context.Context, r git.Runner, d prompt.Decider, opts RestoreOptions) (*RestoreResult, error) {
	owner, err := Username(ctx, r)
	if err != nil {
		return nil, err
	}

	branches, err := UserWIPBranches(ctx, r, owner)
	if err != nil {
		return nil, err
	}

	result := &RestoreResult{Owner: owner}

	selected, outcome, err := selectRestoreTarget(branches, opts, d)
	if err != nil {
		return nil, err
	}
	if outcome != RestoreClean {
		result.Outcome = outcome
		result.Branch = opts.BranchName
		return result, nil
	}
	result.Branch = selected

	message, err := git.LastCommitMessage(ctx, r, selected)
	if err != nil {
		return nil, err
	}
	snapshot, recognized := DecodeSnapshot(message)
	if !recognized || snapshot.SourceBranch == "" {
		return nil, &InvalidSnapshotError{Branch: selected}
	}
	result.SourceBranch = snapshot.SourceBranch
	result.Snapshot = snapshot

	// Local changes are checked before anything is touched.
	dirty, err := hasLocalChanges(ctx, r)
	if err != nil {
		return nil, err
	}
	if dirty && !opts.Autostash {
		return nil, ErrUncommittedChanges
	}

	stashLabel := "git-wippy-autostash-" + snapshot.SourceBranch
	stashed := false
	if dirty {
		if err := git.StashPush(ctx, r, stashLabel); err != nil {
			return nil, fmt.Errorf("failed to stash changes: %w", err)
		}
		stashed = true
	}

	if git.BranchExists(ctx, r, snapshot.SourceBranch) {
		if err := git.Checkout(ctx, r, snapshot.SourceBranch); err != nil {
			return nil, err
		}
	} else {
		if err := git.CreateBranch(ctx, r, snapshot.SourceBranch); err != nil {
			return nil, err
		}
	}

	if err := applySnapshotFiles(ctx, r, selected); err != nil {
		return nil, err
	}

	if err := recreateFileStates(ctx, r, snapshot); err != nil {
		return nil, err
	}

	if stashed {
		conflicted, err := reapplyAutostash(ctx, r, snapshot.SourceBranch, stashLabel)
		if err != nil {
			return nil, err
		}
		if conflicted {
			result.Outcome = RestoreConflicted
			result.StashLabel = stashLabel
		}
	}

	// The WIP branch is only deleted once its content can no longer be
	// needed for a retry.
	if err := git.DeleteBranch(ctx, r, selected, true); err != nil {
		return nil, err
	}
	remotes, err := git.Remotes(ctx, r)
	if err != nil {
		return nil, err
	}
	if contains(remotes, opts.Remote) {
		if err := git.DeleteRemoteBranch(ctx, r, opts.Remote, selected); err != nil {
			return nil, err
		}
		result.RemoteDeleted = true
	}

	return result, nil
}

// selectRestoreTarget resolves which WIP branch to restore. The returned
// outcome is RestoreClean when a branch was selected.
func selectRestoreTarget(branches []string, opts RestoreOptions, d prompt.Decider) (string, RestoreOutcome, error) {
	switch {
	case opts.BranchName != "":
		if !contains(branches, opts.BranchName) {
			return "", RestoreBranchNotFound, nil
		}
		return opts.BranchName, RestoreClean, nil
	case len(branches) == 0:
		return "", RestoreNoBranches, nil
	case len(branches) == 1:
		return branches[0], RestoreClean, nil
	case opts.Yes:
		// Branches sort by timestamp, so the last one is the newest.
		return branches[len(branches)-1], RestoreClean, nil
	default:
		idx, err := d.ChooseOne("Select a WIP branch to restore", branches)
		if err != nil {
			return "", RestoreClean, err
		}
		return branches[idx], RestoreClean, nil
	}
}

func hasLocalChanges(ctx context.Context, r git.Runner) (bool, error) {
	staged, err := git.StagedFiles(ctx, r)
	if err != nil {
		return false, err
	}
	changed, err := git.ChangedFiles(ctx, r)
	if err != nil {
		return false, err
	}
	untracked, err := git.UntrackedFiles(ctx, r)
	if err != nil {
		return false, err
	}
	return len(staged)+len(changed)+len(untracked) > 0, nil
}

// applySnapshotFiles overwrites the working tree with every file tracked
// in the WIP branch. This is a per-file content copy, not a merge.
func applySnapshotFiles(ctx context.Context, r git.Runner, wipBranch string) error {
	files, err := git.ListTree(ctx, r, wipBranch)
	if err != nil {
		return err
	}
	for _, file := range files {
		if err := git.CheckoutFile(ctx, r, wipBranch, file); err != nil {
			return err
		}
	}
	return nil
}

// recreateFileStates re-stages the staged set and unstages the changed
// and untracked sets. The three groups touch disjoint paths but all
// write the index, and git takes .git/index.lock without waiting, so
// they must run one after another.
func recreateFileStates(ctx context.Context, r git.Runner, snapshot *models.Snapshot) error {
	if err := git.StageFiles(ctx, r, snapshot.Staged); err != nil {
		return err
	}
	if err := git.UnstageFiles(ctx, r, snapshot.Changed); err != nil {
		return err
	}
	return git.UnstageFiles(ctx, r, snapshot.Untracked)
}

// reapplyAutostash folds the stashed local changes back into the source
// branch. Popping the stash directly onto freshly overwritten files could
// clobber them, so the stash is applied on a temporary branch and merged
// back with an explicit conflict-surfacing merge.
//
// Returns conflicted=true when the merge completed with conflicts; the
// working tree then carries the markers and the stash is kept. Any other
// failure is fatal and, for a failed apply, the stash stays intact.
func reapplyAutostash(ctx context.Context, r git.Runner, sourceBranch, stashLabel string) (conflicted bool, err error) {
	stashRef, err := git.FindStash(ctx, r, stashLabel)
	if err != nil {
		return false, err
	}

	tempBranch := "git-wippy-temp-" + sourceBranch
	if err := git.CreateBranch(ctx, r, tempBranch); err != nil {
		return false, fmt.Errorf("failed to create temporary branch: %w", err)
	}

	applyErr := git.StashApply(ctx, r, stashRef)

	if err := git.Checkout(ctx, r, sourceBranch); err != nil {
		return false, err
	}

	if applyErr != nil {
		// Nothing has been folded in yet; drop only the temp branch and
		// leave the stash for the user.
		if err := git.DeleteBranch(ctx, r, tempBranch, true); err != nil {
			return false, err
		}
		return false, &StashApplyError{Err: applyErr}
	}

	outcome, mergeErr := git.MergeNoCommit(ctx, r, tempBranch)

	// The temp branch is deleted no matter how the merge went.
	if err := git.DeleteBranch(ctx, r, tempBranch, true); err != nil {
		return false, err
	}

	if mergeErr != nil {
		return false, &MergeError{Err: mergeErr}
	}
	if outcome == git.MergeConflicted {
		return true, nil
	}

	if err := git.StashDrop(ctx, r, stashRef); err != nil {
		return false, fmt.Errorf("failed to drop stash: %w", err)
	}
	return false, nil
}
