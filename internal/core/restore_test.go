package core

import (
	"context"
	"errors"
	"testing"

	"github.com/mekwall/git-wippy/internal/git"
	"github.com/mekwall/git-wippy/internal/models"
	"github.com/mekwall/git-wippy/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wipBranch = "wip/alice/2026-08-28-10-30-00"

// newRestoreMock sets up a repo with one WIP branch for alice whose
// snapshot captured a.txt staged, b.txt changed, and c.txt untracked on
// main. The working tree itself is clean.
func newRestoreMock() *git.Mock {
	m := git.NewMock()
	m.Stub("alice", "config", "user.name")
	m.Stub("* main\n  "+wipBranch, "branch", "-a")

	message := EncodeSnapshot(&models.Snapshot{
		SourceBranch: "main",
		Staged:       []string{"a.txt"},
		Changed:      []string{"b.txt"},
		Untracked:    []string{"c.txt"},
	})
	m.Stub(message, "log", "-1", "--pretty=format:%B", wipBranch)
	m.Stub("a.txt\nb.txt\nc.txt", "ls-tree", "-r", "--name-only", wipBranch)
	return m
}

func dirtyWorkingTree(m *git.Mock) {
	m.Stub("local.txt", "diff", "--name-only")
}

func TestRestore_CleanWorkingTree(t *testing.T) {
	ctx := context.Background()
	m := newRestoreMock()
	m.Stub("origin", "remote")

	result, err := Restore(ctx, m, &prompt.Script{}, RestoreOptions{Remote: "origin"})
	require.NoError(t, err)

	assert.Equal(t, RestoreClean, result.Outcome)
	assert.Equal(t, wipBranch, result.Branch)
	assert.Equal(t, "main", result.SourceBranch)
	assert.True(t, result.RemoteDeleted)

	// Snapshot files are materialized per path, not merged.
	assert.True(t, m.Called("checkout", wipBranch, "--", "a.txt"))
	assert.True(t, m.Called("checkout", wipBranch, "--", "b.txt"))
	assert.True(t, m.Called("checkout", wipBranch, "--", "c.txt"))

	// Index recreated: staged set staged, the rest unstaged.
	assert.True(t, m.Called("add", "--", "a.txt"))
	assert.True(t, m.Called("reset", "HEAD", "--", "b.txt"))
	assert.True(t, m.Called("reset", "HEAD", "--", "c.txt"))

	// WIP branch removed locally and on the remote.
	assert.True(t, m.Called("branch", "-D", wipBranch))
	assert.True(t, m.Called("push", "origin", "--delete", wipBranch))

	// No stash involved on a clean tree.
	for _, call := range m.Calls() {
		assert.NotEqual(t, "stash", call[0])
	}
}

func TestRestore_IndexMutationsAreSequential(t *testing.T) {
	ctx := context.Background()
	m := newRestoreMock()
	m.Stub("origin", "remote")

	_, err := Restore(ctx, m, &prompt.Script{}, RestoreOptions{Remote: "origin"})
	require.NoError(t, err)

	// git refuses concurrent index writes (.git/index.lock), so the
	// stage/unstage calls must be issued one after another in a fixed
	// order.
	callIndex := func(args ...string) int {
		for i, call := range m.Calls() {
			if len(call) == len(args) {
				match := true
				for j := range args {
					if call[j] != args[j] {
						match = false
						break
					}
				}
				if match {
					return i
				}
			}
		}
		t.Fatalf("call %v not recorded", args)
		return -1
	}

	stage := callIndex("add", "--", "a.txt")
	unstageChanged := callIndex("reset", "HEAD", "--", "b.txt")
	unstageUntracked := callIndex("reset", "HEAD", "--", "c.txt")
	assert.Less(t, stage, unstageChanged)
	assert.Less(t, unstageChanged, unstageUntracked)
}

func TestRestore_RemoteNotConfigured(t *testing.T) {
	ctx := context.Background()
	m := newRestoreMock()
	m.Stub("", "remote")

	result, err := Restore(ctx, m, &prompt.Script{}, RestoreOptions{Remote: "origin"})
	require.NoError(t, err)

	assert.Equal(t, RestoreClean, result.Outcome)
	assert.False(t, result.RemoteDeleted)
	assert.True(t, m.Called("branch", "-D", wipBranch))
	assert.False(t, m.Called("push", "origin", "--delete", wipBranch))
}

func TestRestore_DirtyWithoutAutostash(t *testing.T) {
	ctx := context.Background()
	m := newRestoreMock()
	dirtyWorkingTree(m)

	_, err := Restore(ctx, m, &prompt.Script{}, RestoreOptions{Remote: "origin"})
	assert.ErrorIs(t, err, ErrUncommittedChanges)

	// Nothing was modified or deleted.
	assert.False(t, m.Called("branch", "-D", wipBranch))
	assert.False(t, m.Called("checkout", "main"))
	for _, call := range m.Calls() {
		assert.NotEqual(t, "stash", call[0])
	}
}

func TestRestore_AutostashCleanMerge(t *testing.T) {
	ctx := context.Background()
	m := newRestoreMock()
	dirtyWorkingTree(m)
	m.Stub("stash@{0}: On main: git-wippy-autostash-main", "stash", "list")

	result, err := Restore(ctx, m, &prompt.Script{}, RestoreOptions{
		Autostash: true,
		Remote:    "origin",
	})
	require.NoError(t, err)

	assert.Equal(t, RestoreClean, result.Outcome)
	assert.True(t, m.Called("stash", "push", "--include-untracked", "-m", "git-wippy-autostash-main"))
	assert.True(t, m.Called("checkout", "-b", "git-wippy-temp-main"))
	assert.True(t, m.Called("stash", "apply", "stash@{0}"))
	assert.True(t, m.Called("merge", "--no-commit", "--no-ff", "git-wippy-temp-main"))
	assert.True(t, m.Called("branch", "-D", "git-wippy-temp-main"))
	assert.True(t, m.Called("stash", "drop", "stash@{0}"))
	assert.True(t, m.Called("branch", "-D", wipBranch))
}

func TestRestore_AutostashMergeConflict(t *testing.T) {
	ctx := context.Background()
	m := newRestoreMock()
	dirtyWorkingTree(m)
	m.Stub("stash@{0}: On main: git-wippy-autostash-main", "stash", "list")
	m.StubErr(errors.New("exit status 1"), "merge", "--no-commit", "--no-ff", "git-wippy-temp-main")
	m.Stub("100644 3f2b 1\ta.txt", "ls-files", "--unmerged")

	result, err := Restore(ctx, m, &prompt.Script{}, RestoreOptions{
		Autostash: true,
		Remote:    "origin",
	})
	require.NoError(t, err)

	// Conflicts are a tolerated outcome: the stash stays, the WIP branch
	// still goes away, and the temp branch is cleaned up.
	assert.Equal(t, RestoreConflicted, result.Outcome)
	assert.Equal(t, "git-wippy-autostash-main", result.StashLabel)
	assert.False(t, m.Called("stash", "drop", "stash@{0}"))
	assert.True(t, m.Called("branch", "-D", "git-wippy-temp-main"))
	assert.True(t, m.Called("branch", "-D", wipBranch))
}

func TestRestore_AutostashApplyFailure(t *testing.T) {
	ctx := context.Background()
	m := newRestoreMock()
	dirtyWorkingTree(m)
	m.Stub("stash@{0}: On main: git-wippy-autostash-main", "stash", "list")
	m.StubErr(errors.New("could not apply"), "stash", "apply", "stash@{0}")

	_, err := Restore(ctx, m, &prompt.Script{}, RestoreOptions{
		Autostash: true,
		Remote:    "origin",
	})

	var applyErr *StashApplyError
	require.ErrorAs(t, err, &applyErr)

	// The stash survives, the temp branch does not, the WIP branch is
	// kept so the restore can be retried.
	assert.False(t, m.Called("stash", "drop", "stash@{0}"))
	assert.True(t, m.Called("branch", "-D", "git-wippy-temp-main"))
	assert.False(t, m.Called("branch", "-D", wipBranch))
}

func TestRestore_AutostashMergeFailure(t *testing.T) {
	ctx := context.Background()
	m := newRestoreMock()
	dirtyWorkingTree(m)
	m.Stub("stash@{0}: On main: git-wippy-autostash-main", "stash", "list")
	m.StubErr(errors.New("merge died"), "merge", "--no-commit", "--no-ff", "git-wippy-temp-main")
	m.Stub("", "ls-files", "--unmerged")

	_, err := Restore(ctx, m, &prompt.Script{}, RestoreOptions{
		Autostash: true,
		Remote:    "origin",
	})

	var mergeErr *MergeError
	require.ErrorAs(t, err, &mergeErr)
	assert.True(t, m.Called("branch", "-D", "git-wippy-temp-main"))
	assert.False(t, m.Called("branch", "-D", wipBranch))
}

func TestRestore_CreatesMissingSourceBranch(t *testing.T) {
	ctx := context.Background()
	m := newRestoreMock()
	m.StubErr(errors.New("unknown revision"), "rev-parse", "--verify", "--quiet", "refs/heads/main")

	result, err := Restore(ctx, m, &prompt.Script{}, RestoreOptions{Remote: "origin"})
	require.NoError(t, err)

	assert.Equal(t, RestoreClean, result.Outcome)
	assert.True(t, m.Called("checkout", "-b", "main"))
}

func TestRestore_NoBranchesIsNoOp(t *testing.T) {
	ctx := context.Background()
	m := git.NewMock()
	m.Stub("alice", "config", "user.name")
	m.Stub("* main", "branch", "-a")

	result, err := Restore(ctx, m, &prompt.Script{}, RestoreOptions{Remote: "origin"})
	require.NoError(t, err)

	assert.Equal(t, RestoreNoBranches, result.Outcome)
	assert.Len(t, m.Calls(), 2)
}

func TestRestore_ExplicitBranchNotFound(t *testing.T) {
	ctx := context.Background()
	m := newRestoreMock()

	result, err := Restore(ctx, m, &prompt.Script{}, RestoreOptions{
		BranchName: "wip/alice/never-saved",
		Remote:     "origin",
	})
	require.NoError(t, err)

	assert.Equal(t, RestoreBranchNotFound, result.Outcome)
	assert.Equal(t, "wip/alice/never-saved", result.Branch)
	assert.False(t, m.Called("branch", "-D", wipBranch))
}

func TestRestore_YesPicksNewest(t *testing.T) {
	ctx := context.Background()
	m := git.NewMock()
	m.Stub("alice", "config", "user.name")
	older := "wip/alice/2026-08-27-09-00-00"
	newer := "wip/alice/2026-08-28-10-00-00"
	m.Stub("* main\n  "+older+"\n  "+newer, "branch", "-a")

	message := EncodeSnapshot(&models.Snapshot{SourceBranch: "main", Staged: []string{"a.txt"}})
	m.Stub(message, "log", "-1", "--pretty=format:%B", newer)
	m.Stub("a.txt", "ls-tree", "-r", "--name-only", newer)

	result, err := Restore(ctx, m, &prompt.Script{}, RestoreOptions{Yes: true, Remote: "origin"})
	require.NoError(t, err)

	assert.Equal(t, newer, result.Branch)
	assert.False(t, m.Called("branch", "-D", older))
}

func TestRestore_MultipleBranchesPrompt(t *testing.T) {
	ctx := context.Background()
	m := git.NewMock()
	m.Stub("alice", "config", "user.name")
	first := "wip/alice/2026-08-27-09-00-00"
	second := "wip/alice/2026-08-28-10-00-00"
	m.Stub(first+"\n"+second, "branch", "-a")

	message := EncodeSnapshot(&models.Snapshot{SourceBranch: "main", Changed: []string{"b.txt"}})
	m.Stub(message, "log", "-1", "--pretty=format:%B", first)
	m.Stub("b.txt", "ls-tree", "-r", "--name-only", first)

	script := &prompt.Script{OneAnswers: []int{0}}
	result, err := Restore(ctx, m, script, RestoreOptions{Remote: "origin"})
	require.NoError(t, err)

	assert.Equal(t, first, result.Branch)
	assert.Contains(t, script.Titles, "Select a WIP branch to restore")
}

func TestRestore_UnrecognizedSnapshot(t *testing.T) {
	ctx := context.Background()
	m := newRestoreMock()
	m.Stub("just an ordinary commit", "log", "-1", "--pretty=format:%B", wipBranch)

	_, err := Restore(ctx, m, &prompt.Script{}, RestoreOptions{Remote: "origin"})

	var snapErr *InvalidSnapshotError
	require.ErrorAs(t, err, &snapErr)
	assert.Equal(t, wipBranch, snapErr.Branch)
	assert.False(t, m.Called("branch", "-D", wipBranch))
}
