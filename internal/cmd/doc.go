// Package cmd provides helpers for executing external commands with proper error handling.
//
// This package wraps [os/exec.Cmd] to capture stderr and include it in error
// messages, making command failures more informative for users.
//
// # Usage
//
//	if err := cmd.RunContext(ctx, repoDir, "git", "pull"); err != nil {
//	    // err contains stderr output if available
//	    return fmt.Errorf("git pull: %w", err)
//	}
//
//	out, err := cmd.OutputContext(ctx, repoDir, "git", "rev-parse", "--show-toplevel")
//
// # Design Notes
//
// githooks shells out to the git CLI rather than using Go git libraries, so
// clones and pulls of shared hook repositories honor the user's SSH keys,
// credential helpers and git configuration.
package cmd
