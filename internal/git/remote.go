package git

import (
	"context"
	"fmt"
	"strings"
)

// Clone clones url into dest.
func Clone(ctx context.Context, url, dest string) error {
	if err := runGit(ctx, "", "clone", "--quiet", url, dest); err != nil {
		return fmt.Errorf("failed to clone %s: %w", url, err)
	}
	return nil
}

// Pull fast-forwards the checked out branch of the repository at dir.
func Pull(ctx context.Context, dir string) error {
	if err := runGit(ctx, dir, "pull", "--quiet", "--ff-only"); err != nil {
		return fmt.Errorf("failed to pull %s: %w", dir, err)
	}
	return nil
}

// OriginURL returns the configured URL of the origin remote.
func OriginURL(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "config", "--get", "remote.origin.url")
	if err != nil {
		return "", fmt.Errorf("no origin remote in %s: %v", dir, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// Client groups the remote operations shared hook mirrors need.
// The zero value runs the git CLI.
type Client struct{}

// Clone implements the mirror client interface.
func (Client) Clone(ctx context.Context, url, dest string) error { return Clone(ctx, url, dest) }

// Pull implements the mirror client interface.
func (Client) Pull(ctx context.Context, dir string) error { return Pull(ctx, dir) }

// OriginURL implements the mirror client interface.
func (Client) OriginURL(ctx context.Context, dir string) (string, error) { return OriginURL(ctx, dir) }
