package core

import (
	"context"

	"github.com/mekwall/git-wippy/internal/git"
)

// ListResult holds the owner and their WIP branches.
type ListResult struct {
	Owner    string
	Branches []string
}

// List returns the current user's WIP branches, oldest first.
func List(ctx context.Context, r git.Runner) (*ListResult, error) {
	owner, err := Username(ctx, r)
	if err != nil {
		return nil, err
	}

	branches, err := UserWIPBranches(ctx, r, owner)
	if err != nil {
		return nil, err
	}

	return &ListResult{Owner: owner, Branches: branches}, nil
}
