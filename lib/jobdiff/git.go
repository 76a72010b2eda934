package jobdiff

import (
	"errors"
	"fmt"

	"jobwatch/lib/snapshot"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNoPrevious means the index has no committed previous version:
// either HEAD has no parent or the file does not exist one revision
// back. expected on the first run with the file.
var ErrNoPrevious = errors.New("no previous committed version of the index")

// LoadPrevious reads the collection stored at path as of HEAD~1. path
// is relative to the repository worktree root, forward slashes.
func LoadPrevious(repoDir, path string) (snapshot.Collection, error) {
	repo, err := git.PlainOpenWithOptions(repoDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return snapshot.Collection{}, fmt.Errorf("open repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return snapshot.Collection{}, fmt.Errorf("resolve HEAD: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return snapshot.Collection{}, fmt.Errorf("load HEAD commit: %w", err)
	}

	parent, err := commit.Parent(0)
	if errors.Is(err, object.ErrParentNotFound) {
		return snapshot.Collection{}, ErrNoPrevious
	}
	if err != nil {
		return snapshot.Collection{}, fmt.Errorf("load parent commit: %w", err)
	}

	file, err := parent.File(path)
	if errors.Is(err, object.ErrFileNotFound) {
		return snapshot.Collection{}, ErrNoPrevious
	}
	if err != nil {
		return snapshot.Collection{}, fmt.Errorf("read %s at HEAD~1: %w", path, err)
	}

	contents, err := file.Contents()
	if err != nil {
		return snapshot.Collection{}, err
	}

	col, err := snapshot.Parse([]byte(contents))
	if err != nil {
		return snapshot.Collection{}, fmt.Errorf("parse previous index: %w", err)
	}
	return col, nil
}
