package git

import (
	"context"
	"fmt"
	"strings"
)

// IsRepository reports whether the current directory is inside a git
// working tree.
func IsRepository(ctx context.Context, r Runner) bool {
	_, err := r.Execute(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// CurrentBranch returns the name of the checked-out branch.
func CurrentBranch(ctx context.Context, r Runner) (string, error) {
	return r.Execute(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

// Username returns the configured git user.name, trimmed. An empty value
// is returned as-is; callers decide whether that is fatal.
func Username(ctx context.Context, r Runner) (string, error) {
	out, err := r.Execute(ctx, "config", "user.name")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// StageAll stages every change in the working tree, untracked files
// included.
func StageAll(ctx context.Context, r Runner) error {
	_, err := r.Execute(ctx, "add", "--all")
	return err
}

// Commit records the staged changes with the given message.
func Commit(ctx context.Context, r Runner, message string) error {
	_, err := r.Execute(ctx, "commit", "-m", message)
	return err
}

// Checkout switches to an existing branch.
func Checkout(ctx context.Context, r Runner, branch string) error {
	_, err := r.Execute(ctx, "checkout", branch)
	return err
}

// CreateBranch creates a branch and switches to it.
func CreateBranch(ctx context.Context, r Runner, branch string) error {
	_, err := r.Execute(ctx, "checkout", "-b", branch)
	return err
}

// Push publishes a branch to a remote with upstream tracking.
func Push(ctx context.Context, r Runner, remote, branch string) error {
	_, err := r.Execute(ctx, "push", "-u", remote, branch)
	return err
}

// BranchExists reports whether a local branch with the given name exists.
func BranchExists(ctx context.Context, r Runner, branch string) bool {
	_, err := r.Execute(ctx, "rev-parse", "--verify", "--quiet", "refs/heads/"+branch)
	return err == nil
}

// AllBranches returns the raw lines of `git branch -a`, local and
// remote-tracking alike.
func AllBranches(ctx context.Context, r Runner) ([]string, error) {
	out, err := r.Execute(ctx, "branch", "-a")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// StagedFiles lists paths with staged changes.
func StagedFiles(ctx context.Context, r Runner) ([]string, error) {
	out, err := r.Execute(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// ChangedFiles lists paths modified but not staged.
func ChangedFiles(ctx context.Context, r Runner) ([]string, error) {
	out, err := r.Execute(ctx, "diff", "--name-only")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// UntrackedFiles lists paths not known to the index, honoring ignore
// rules.
func UntrackedFiles(ctx context.Context, r Runner) ([]string, error) {
	out, err := r.Execute(ctx, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// LastCommitMessage returns the full message of the branch's tip commit.
func LastCommitMessage(ctx context.Context, r Runner, branch string) (string, error) {
	return r.Execute(ctx, "log", "-1", "--pretty=format:%B", branch)
}

// Remotes lists the configured remote names.
func Remotes(ctx context.Context, r Runner) ([]string, error) {
	out, err := r.Execute(ctx, "remote")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// ListTree returns every path tracked in the branch's tree.
func ListTree(ctx context.Context, r Runner, branch string) ([]string, error) {
	out, err := r.Execute(ctx, "ls-tree", "-r", "--name-only", branch)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// CheckoutFile overwrites a single working-tree path with the file's
// content from the given branch. The index picks up the change too.
func CheckoutFile(ctx context.Context, r Runner, branch, path string) error {
	_, err := r.Execute(ctx, "checkout", branch, "--", path)
	return err
}

// StageFiles stages the given paths. A nil or empty list is a no-op.
func StageFiles(ctx context.Context, r Runner, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	_, err := r.Execute(ctx, args...)
	return err
}

// UnstageFiles removes the given paths from the index while keeping their
// working-tree content. A nil or empty list is a no-op.
func UnstageFiles(ctx context.Context, r Runner, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"reset", "HEAD", "--"}, paths...)
	_, err := r.Execute(ctx, args...)
	return err
}

// DeleteBranch deletes a local branch. force uses -D.
func DeleteBranch(ctx context.Context, r Runner, branch string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	_, err := r.Execute(ctx, "branch", flag, branch)
	return err
}

// DeleteRemoteBranch deletes a branch on the given remote.
func DeleteRemoteBranch(ctx context.Context, r Runner, remote, branch string) error {
	_, err := r.Execute(ctx, "push", remote, "--delete", branch)
	return err
}

// StashPush stashes all local changes, untracked files included, under a
// label that can later be found with FindStash.
func StashPush(ctx context.Context, r Runner, label string) error {
	_, err := r.Execute(ctx, "stash", "push", "--include-untracked", "-m", label)
	return err
}

// StashApply applies a stash without dropping it.
func StashApply(ctx context.Context, r Runner, ref string) error {
	_, err := r.Execute(ctx, "stash", "apply", ref)
	return err
}

// StashDrop removes a stash entry.
func StashDrop(ctx context.Context, r Runner, ref string) error {
	_, err := r.Execute(ctx, "stash", "drop", ref)
	return err
}

// FindStash resolves a label created by StashPush to a stash@{N} ref.
func FindStash(ctx context.Context, r Runner, label string) (string, error) {
	out, err := r.Execute(ctx, "stash", "list")
	if err != nil {
		return "", err
	}
	for i, line := range splitLines(out) {
		if strings.HasSuffix(line, ": "+label) {
			return fmt.Sprintf("stash@{%d}", i), nil
		}
	}
	return "", fmt.Errorf("stash %q not found", label)
}

// MergeOutcome distinguishes a merge that completed with conflicts from
// one that failed to run at all.
type MergeOutcome int

const (
	MergeClean MergeOutcome = iota
	MergeConflicted
)

// MergeNoCommit merges a branch without fast-forwarding or committing.
// When the merge command fails, the index is inspected for unmerged
// entries: if any exist the merge completed with conflicts (MergeConflicted,
// nil error); otherwise the command failure itself is returned.
func MergeNoCommit(ctx context.Context, r Runner, branch string) (MergeOutcome, error) {
	_, mergeErr := r.Execute(ctx, "merge", "--no-commit", "--no-ff", branch)
	if mergeErr == nil {
		return MergeClean, nil
	}

	unmerged, err := r.Execute(ctx, "ls-files", "--unmerged")
	if err == nil && unmerged != "" {
		return MergeConflicted, nil
	}

	return MergeClean, mergeErr
}

// splitLines splits trimmed command output into non-empty lines.
func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
