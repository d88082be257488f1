package hooks

import (
	"context"
	"errors"

	"github.com/raphi011/githooks/internal/git"
)

// ErrNoRepository is returned when the directory is not inside a git work tree.
var ErrNoRepository = errors.New("not inside a git repository")

// Repo holds the locations of one repository githooks works on.
type Repo struct {
	Root     string // top of the work tree
	GitDir   string // private metadata directory (checksum store lives here)
	HooksDir string // where git looks for hook entry points
}

// Locate resolves the repository containing dir.
func Locate(ctx context.Context, dir string) (Repo, error) {
	root, err := git.RepoRoot(ctx, dir)
	if err != nil {
		return Repo{}, ErrNoRepository
	}
	gitDir, err := git.GitDir(ctx, root)
	if err != nil {
		return Repo{}, err
	}
	hooksDir, err := git.HooksDir(ctx, root)
	if err != nil {
		return Repo{}, err
	}
	return Repo{Root: root, GitDir: gitDir, HooksDir: hooksDir}, nil
}
