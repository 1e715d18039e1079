package core

import (
	"errors"
	"fmt"
)

// ErrNotRepository is returned when the tool runs outside a git working
// tree.
var ErrNotRepository = errors.New("not inside a git repository")

// ErrUsernameNotConfigured is returned when git user.name is empty; no
// WIP branch name can be derived without an owner.
var ErrUsernameNotConfigured = errors.New("git username not found, please configure your git user.name")

// ErrUncommittedChanges is returned when a restore would run over local
// changes without autostash.
var ErrUncommittedChanges = errors.New("you have local changes, please commit or stash them, or use --autostash")

// InvalidSnapshotError is returned when the tip commit of a WIP branch
// does not decode to a usable snapshot.
type InvalidSnapshotError struct {
	Branch string
}

func (e *InvalidSnapshotError) Error() string {
	return fmt.Sprintf("branch %q does not carry a recognizable WIP snapshot", e.Branch)
}

// StashApplyError is returned when reapplying the autostash onto the
// temporary branch fails. The stash itself is left intact.
type StashApplyError struct {
	Err error
}

func (e *StashApplyError) Error() string {
	return fmt.Sprintf("failed to apply stashed changes: %v", e.Err)
}

func (e *StashApplyError) Unwrap() error {
	return e.Err
}

// MergeError is returned when folding the autostash back in fails for a
// reason other than content conflicts.
type MergeError struct {
	Err error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("failed to restore stashed changes: %v", e.Err)
}

func (e *MergeError) Unwrap() error {
	return e.Err
}
