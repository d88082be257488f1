//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/raphi011/githooks/internal/config"
	"github.com/raphi011/githooks/internal/log"
	"github.com/raphi011/githooks/internal/output"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// isolateGit points HOME and the global git config at a temp dir.
func isolateGit(t *testing.T) string {
	t.Helper()
	home := resolvePath(t, t.TempDir())
	t.Setenv("HOME", home)
	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(home, ".gitconfig"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	return home
}

// setupTestRepo creates an empty git repo in dir/name and returns its path.
func setupTestRepo(t *testing.T, dir, name string) string {
	t.Helper()

	repoPath := filepath.Join(resolvePath(t, dir), name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}

	cmds := [][]string{
		{"git", "init"},
		{"git", "config", "user.email", "test@test.com"},
		{"git", "config", "user.name", "Test User"},
		{"git", "config", "commit.gpgsign", "false"},
	}
	for _, args := range cmds {
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Dir = repoPath
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("failed to run %v: %v\n%s", args, err, out)
		}
	}
	return repoPath
}

// writeHook writes an executable hook script below repo/.githooks.
func writeHook(t *testing.T, repo, rel, body string) string {
	t.Helper()
	path := filepath.Join(repo, ".githooks", rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

// testEnv carries the context and captured output of one command run.
type testEnv struct {
	ctx    context.Context
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// testContext creates a context for workDir with captured output and a
// private shared cache.
func testContext(t *testing.T, workDir string) *testEnv {
	t.Helper()

	settings := config.Default()
	settings.Shared.CacheDir = filepath.Join(resolvePath(t, t.TempDir()), "shared")

	env := &testEnv{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	ctx := context.Background()
	ctx = config.WithSettings(ctx, &settings)
	ctx = config.WithWorkDir(ctx, workDir)
	ctx = log.WithLogger(ctx, log.New(env.stderr, false, false))
	ctx = output.WithPrinter(ctx, env.stdout)
	env.ctx = ctx
	return env
}

// run executes cmd with args in env's context.
func (env *testEnv) run(cmd *cobra.Command, args ...string) error {
	cmd.SetContext(env.ctx)
	cmd.SetArgs(args)
	cmd.SetOut(env.stdout)
	cmd.SetErr(env.stderr)
	return cmd.Execute()
}
