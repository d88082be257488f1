package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// RepoRoot returns the top-level working tree directory containing dir.
func RepoRoot(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %v", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// GitDir returns the absolute path of the repository's private git directory
// (usually <root>/.git).
func GitDir(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("failed to locate git directory: %v", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// HooksDir returns the absolute directory git runs hook entry points from.
// Honors core.hooksPath.
func HooksDir(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", fmt.Errorf("failed to locate hooks directory: %v", err)
	}
	path := strings.TrimSpace(string(output))
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return filepath.Clean(path), nil
}
