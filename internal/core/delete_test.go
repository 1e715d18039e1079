package core

import (
	"context"
	"errors"
	"testing"

	"github.com/mekwall/git-wippy/internal/git"
	"github.com/mekwall/git-wippy/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	deleteBranch1 = "wip/alice/2026-08-27-09-00-00"
	deleteBranch2 = "wip/alice/2026-08-28-10-00-00"
)

func newDeleteMock(branches string) *git.Mock {
	m := git.NewMock()
	m.Stub("alice", "config", "user.name")
	m.Stub(branches, "branch", "-a")
	return m
}

func TestDelete_SingleBranchForced(t *testing.T) {
	ctx := context.Background()
	m := newDeleteMock("* main\n  " + deleteBranch1)
	m.Stub("origin", "remote")

	result, err := Delete(ctx, m, &prompt.Script{}, DeleteOptions{
		BranchName: deleteBranch1,
		Force:      true,
		Remote:     "origin",
	})
	require.NoError(t, err)

	assert.Equal(t, DeleteDone, result.Outcome)
	assert.Equal(t, []string{deleteBranch1}, result.Deleted)
	assert.True(t, result.Remote)
	assert.Empty(t, result.RemoteFailures)
	assert.True(t, m.Called("branch", "-D", deleteBranch1))
	assert.True(t, m.Called("push", "origin", "--delete", deleteBranch1))
}

func TestDelete_AllForced(t *testing.T) {
	ctx := context.Background()
	m := newDeleteMock(deleteBranch1 + "\n" + deleteBranch2)
	m.Stub("origin", "remote")

	result, err := Delete(ctx, m, &prompt.Script{}, DeleteOptions{
		All:    true,
		Force:  true,
		Remote: "origin",
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{deleteBranch1, deleteBranch2}, result.Deleted)
	assert.True(t, m.Called("branch", "-D", deleteBranch1))
	assert.True(t, m.Called("branch", "-D", deleteBranch2))
	assert.True(t, m.Called("push", "origin", "--delete", deleteBranch1))
	assert.True(t, m.Called("push", "origin", "--delete", deleteBranch2))
}

func TestDelete_LocalOnlySkipsRemote(t *testing.T) {
	ctx := context.Background()
	m := newDeleteMock("* main\n  " + deleteBranch1)

	result, err := Delete(ctx, m, &prompt.Script{}, DeleteOptions{
		BranchName: deleteBranch1,
		Force:      true,
		LocalOnly:  true,
		Remote:     "origin",
	})
	require.NoError(t, err)

	assert.False(t, result.Remote)
	assert.False(t, m.Called("remote"))
	for _, call := range m.Calls() {
		assert.NotEqual(t, "push", call[0])
	}
}

func TestDelete_RemoteFailureDoesNotAbort(t *testing.T) {
	ctx := context.Background()
	m := newDeleteMock(deleteBranch1 + "\n" + deleteBranch2)
	m.Stub("origin", "remote")
	m.StubErr(errors.New("remote hung up"), "push", "origin", "--delete", deleteBranch1)

	result, err := Delete(ctx, m, &prompt.Script{}, DeleteOptions{
		All:    true,
		Force:  true,
		Remote: "origin",
	})
	require.NoError(t, err)

	// Both local deletions went through; the one remote failure is a
	// warning, not an abort.
	assert.ElementsMatch(t, []string{deleteBranch1, deleteBranch2}, result.Deleted)
	require.Len(t, result.RemoteFailures, 1)
	assert.Equal(t, deleteBranch1, result.RemoteFailures[0].Branch)
	assert.True(t, m.Called("push", "origin", "--delete", deleteBranch2))
}

func TestDelete_LocalFailureIsFatal(t *testing.T) {
	ctx := context.Background()
	m := newDeleteMock("* main\n  " + deleteBranch1)
	m.StubErr(errors.New("branch checked out"), "branch", "-D", deleteBranch1)

	_, err := Delete(ctx, m, &prompt.Script{}, DeleteOptions{
		BranchName: deleteBranch1,
		Force:      true,
		LocalOnly:  true,
	})
	assert.Error(t, err)
}

func TestDelete_BranchNotFound(t *testing.T) {
	ctx := context.Background()
	m := newDeleteMock("* main\n  " + deleteBranch1)

	result, err := Delete(ctx, m, &prompt.Script{}, DeleteOptions{
		BranchName: "wip/alice/never-saved",
		Force:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, DeleteBranchNotFound, result.Outcome)
	assert.Equal(t, "wip/alice/never-saved", result.Branch)
	assert.False(t, m.Called("branch", "-D", deleteBranch1))
}

func TestDelete_NoBranches(t *testing.T) {
	ctx := context.Background()
	m := newDeleteMock("* main")

	result, err := Delete(ctx, m, &prompt.Script{}, DeleteOptions{All: true, Force: true})
	require.NoError(t, err)

	assert.Equal(t, DeleteNoBranches, result.Outcome)
	assert.Empty(t, result.Deleted)
}

func TestDelete_ConfirmationDeclined(t *testing.T) {
	ctx := context.Background()
	m := newDeleteMock(deleteBranch1 + "\n" + deleteBranch2)

	script := &prompt.Script{ConfirmAnswers: []bool{false}}
	result, err := Delete(ctx, m, script, DeleteOptions{All: true})
	require.NoError(t, err)

	assert.Equal(t, DeleteCancelled, result.Outcome)
	assert.Empty(t, result.Deleted)
	assert.False(t, m.Called("branch", "-D", deleteBranch1))
}

func TestDelete_InteractiveMultiSelect(t *testing.T) {
	ctx := context.Background()
	m := newDeleteMock(deleteBranch1 + "\n" + deleteBranch2)

	script := &prompt.Script{ManyAnswers: [][]int{{1}}}
	result, err := Delete(ctx, m, script, DeleteOptions{LocalOnly: true})
	require.NoError(t, err)

	assert.Equal(t, []string{deleteBranch2}, result.Deleted)
	assert.False(t, m.Called("branch", "-D", deleteBranch1))
	assert.Contains(t, script.Titles, "Select WIP branches to delete")
}

func TestDelete_InteractiveNothingSelected(t *testing.T) {
	ctx := context.Background()
	m := newDeleteMock(deleteBranch1 + "\n" + deleteBranch2)

	script := &prompt.Script{ManyAnswers: [][]int{{}}}
	result, err := Delete(ctx, m, script, DeleteOptions{LocalOnly: true})
	require.NoError(t, err)

	assert.Equal(t, DeleteNothingSelected, result.Outcome)
	assert.Empty(t, result.Deleted)
}

func TestDelete_RemoteConfirmationAsked(t *testing.T) {
	ctx := context.Background()
	m := newDeleteMock("* main\n  " + deleteBranch1)
	m.Stub("origin", "remote")

	// Confirm the branch deletion, decline the remote one.
	script := &prompt.Script{ConfirmAnswers: []bool{true, false}}
	result, err := Delete(ctx, m, script, DeleteOptions{
		BranchName: deleteBranch1,
		Remote:     "origin",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{deleteBranch1}, result.Deleted)
	assert.False(t, result.Remote)
	for _, call := range m.Calls() {
		assert.NotEqual(t, "push", call[0])
	}
}
