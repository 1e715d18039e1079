package core

import (
	"sort"
	"strings"

	"github.com/mekwall/git-wippy/internal/models"
)

// Commit message layout of a WIP snapshot:
//
//	chore: saving work in progress
//
//	Source branch: main
//	Staged changes:
//		a.txt
//	Changes:
//		b.txt
//	Untracked:
//		c.txt
//
// Section headers are literal text, list entries are tab-indented, and
// sections are present only when non-empty. Paths are not escaped; a path
// that collides with the section syntax is an accepted limitation.
const (
	commitHeader       = "chore: saving work in progress"
	sourceBranchPrefix = "Source branch: "
	stagedHeader       = "Staged changes:"
	changedHeader      = "Changes:"
	untrackedHeader    = "Untracked:"
)

// EncodeSnapshot serializes a snapshot into a WIP commit message. Path
// lists are deduplicated and sorted so the same snapshot always encodes
// to the same message.
func EncodeSnapshot(s *models.Snapshot) string {
	var b strings.Builder
	b.WriteString(commitHeader)
	b.WriteString("\n\n")
	b.WriteString(sourceBranchPrefix)
	b.WriteString(s.SourceBranch)

	writeSection(&b, stagedHeader, s.Staged)
	writeSection(&b, changedHeader, s.Changed)
	writeSection(&b, untrackedHeader, s.Untracked)

	return b.String()
}

func writeSection(b *strings.Builder, header string, paths []string) {
	paths = dedupe(paths)
	if len(paths) == 0 {
		return
	}
	sort.Strings(paths)

	b.WriteString("\n")
	b.WriteString(header)
	for _, p := range paths {
		b.WriteString("\n\t")
		b.WriteString(p)
	}
}

// DecodeSnapshot parses a commit message back into a snapshot. It never
// fails: input with no recognizable markers decodes to an empty source
// branch and empty path lists, with recognized reporting whether any
// marker was seen at all. Callers must treat an empty source branch as
// "nothing to restore".
func DecodeSnapshot(message string) (snapshot *models.Snapshot, recognized bool) {
	snapshot = &models.Snapshot{}

	var section *[]string
	for _, line := range strings.Split(message, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, sourceBranchPrefix):
			snapshot.SourceBranch = strings.TrimPrefix(trimmed, sourceBranchPrefix)
			recognized = true
		case strings.HasPrefix(trimmed, stagedHeader):
			section = &snapshot.Staged
			recognized = true
		case strings.HasPrefix(trimmed, changedHeader):
			section = &snapshot.Changed
			recognized = true
		case strings.HasPrefix(trimmed, untrackedHeader):
			section = &snapshot.Untracked
			recognized = true
		case !strings.HasPrefix(line, "\t"):
			// A non-indented line ends the current section.
			section = nil
		case section != nil && trimmed != "":
			*section = append(*section, trimmed)
		}
	}

	snapshot.Staged = dedupe(snapshot.Staged)
	snapshot.Changed = dedupe(snapshot.Changed)
	snapshot.Untracked = dedupe(snapshot.Untracked)
	return snapshot, recognized
}

// dedupe collapses duplicates while preserving first-seen order. It
// returns nil for an empty input so callers can compare against nil.
func dedupe(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(paths))
	var out []string
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
