// Package models defines the data shapes shared by the engine and CLI.
package models

// Snapshot describes the working-tree state captured in a WIP commit:
// the branch it was taken from and the paths that were staged, changed
// but unstaged, and untracked at capture time. Each path list has set
// semantics; order carries no meaning.
type Snapshot struct {
	SourceBranch string
	Staged       []string
	Changed      []string
	Untracked    []string
}

// FileCount returns the total number of captured paths.
func (s *Snapshot) FileCount() int {
	return len(s.Staged) + len(s.Changed) + len(s.Untracked)
}
