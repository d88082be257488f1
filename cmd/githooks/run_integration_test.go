//go:build integration

package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/githooks/internal/runner"
)

// TestRun_AcceptedHooksRunInOrder tests the hook entry point.
//
// Scenario: User accepts two pre-commit hooks, then git runs pre-commit
// Expected: Both hooks run in name order from the repository root
func TestRun_AcceptedHooksRunInOrder(t *testing.T) {
	home := isolateGit(t)
	repo := setupTestRepo(t, home, "myrepo")

	logPath := filepath.Join(home, "order.log")
	a := writeHook(t, repo, "pre-commit/a.sh", "echo a >> "+logPath+"\n")
	b := writeHook(t, repo, "pre-commit/b.sh", "pwd -P >> "+logPath+"\n")

	env := testContext(t, repo)
	if err := env.run(newTrustCmd(), "accept", a, b); err != nil {
		t.Fatalf("trust accept failed: %v", err)
	}
	if err := env.run(newRunCmd(), "pre-commit"); err != nil {
		t.Fatalf("run failed: %v\nstderr: %s", err, env.stderr)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("hooks did not run: %v", err)
	}
	if got, want := string(data), "a\n"+repo+"\n"; got != want {
		t.Errorf("hook log = %q, want %q", got, want)
	}
}

// TestRun_FailingHookExitCode tests exit status propagation.
//
// Scenario: An accepted commit-msg hook exits 3
// Expected: run returns a runner.ExitError with code 3 and githooks exits 3
func TestRun_FailingHookExitCode(t *testing.T) {
	home := isolateGit(t)
	repo := setupTestRepo(t, home, "myrepo")
	hook := writeHook(t, repo, "commit-msg", "test \"$1\" = msg.txt || exit 9\nexit 3\n")

	env := testContext(t, repo)
	if err := env.run(newTrustCmd(), "accept", hook); err != nil {
		t.Fatalf("trust accept failed: %v", err)
	}

	err := env.run(newRunCmd(), "commit-msg", "--", "msg.txt")
	var exitErr *runner.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("run error = %v, want *runner.ExitError", err)
	}
	if exitErr.Code != 3 {
		t.Errorf("exit code = %d, want 3", exitErr.Code)
	}
	if got := exitCode(err); got != 3 {
		t.Errorf("exitCode() = %d, want 3", got)
	}
}

// TestRun_DisabledHookSkipped tests that disabled hooks never run.
//
// Scenario: User disables a failing hook
// Expected: run succeeds
func TestRun_DisabledHookSkipped(t *testing.T) {
	home := isolateGit(t)
	repo := setupTestRepo(t, home, "myrepo")
	hook := writeHook(t, repo, "pre-push", "exit 1\n")

	env := testContext(t, repo)
	rel, err := filepath.Rel(repo, hook)
	if err != nil {
		t.Fatal(err)
	}
	if err := env.run(newTrustCmd(), "disable", rel); err != nil {
		t.Fatalf("trust disable failed: %v", err)
	}
	if err := env.run(newRunCmd(), "pre-push", "--", "origin", "git@host:org/repo.git"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(env.stderr.String(), "disabled") {
		t.Errorf("stderr = %q, want a disabled notice", env.stderr)
	}
}

// TestRun_TrustAll tests repository-wide trust.
//
// Scenario: Repository ships the trust-all marker and the user accepted it
// Expected: An unknown hook runs without a prompt
func TestRun_TrustAll(t *testing.T) {
	home := isolateGit(t)
	repo := setupTestRepo(t, home, "myrepo")
	marker := filepath.Join(home, "ran")
	writeHook(t, repo, "post-checkout", "touch "+marker+"\n")
	if err := os.WriteFile(filepath.Join(repo, ".githooks", "trust-all"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	env := testContext(t, repo)
	if err := env.run(newConfigCmd(), "trust-all", "--accept"); err != nil {
		t.Fatalf("config trust-all failed: %v", err)
	}
	if err := env.run(newRunCmd(), "post-checkout"); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Errorf("hook did not run: %v", err)
	}
}

// TestList_States tests the hook listing.
//
// Scenario: One accepted, one disabled and one ignored hook
// Expected: list shows each state
func TestList_States(t *testing.T) {
	home := isolateGit(t)
	repo := setupTestRepo(t, home, "myrepo")
	ok := writeHook(t, repo, "pre-commit/ok.sh", "exit 0\n")
	off := writeHook(t, repo, "pre-commit/off.sh", "exit 0\n")
	writeHook(t, repo, "pre-commit/skip.sh", "exit 0\n")
	if err := os.WriteFile(filepath.Join(repo, ".githooks", ".ignore"), []byte("skip.sh\n"), 0644); err != nil {
		t.Fatal(err)
	}

	env := testContext(t, repo)
	if err := env.run(newTrustCmd(), "accept", ok); err != nil {
		t.Fatal(err)
	}
	if err := env.run(newTrustCmd(), "disable", off); err != nil {
		t.Fatal(err)
	}
	env.stdout.Reset()

	if err := env.run(newListCmd(), "pre-commit"); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	out := env.stdout.String()
	for _, want := range []string{"ok.sh", "accepted", "off.sh", "disabled", "skip.sh", "ignored"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

// TestInstall_WritesShims tests shim installation.
//
// Scenario: Repository has a foreign pre-commit hook
// Expected: It is moved aside and every client trigger gets a shim
func TestInstall_WritesShims(t *testing.T) {
	home := isolateGit(t)
	repo := setupTestRepo(t, home, "myrepo")
	hooksDir := filepath.Join(repo, ".git", "hooks")
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(hooksDir, "pre-commit"), []byte("#!/bin/sh\nexit 0\n"), 0755); err != nil {
		t.Fatal(err)
	}

	env := testContext(t, repo)
	if err := env.run(newInstallCmd()); err != nil {
		t.Fatalf("install failed: %v", err)
	}
	if !isShim(filepath.Join(hooksDir, "pre-commit")) {
		t.Error("pre-commit is not a shim")
	}
	if _, err := os.Stat(filepath.Join(hooksDir, "pre-commit.replaced.githook")); err != nil {
		t.Errorf("foreign hook not kept: %v", err)
	}
	if _, err := os.Stat(filepath.Join(hooksDir, "pre-receive")); !os.IsNotExist(err) {
		t.Errorf("server hook installed: %v", err)
	}

	if err := env.run(newUninstallCmd()); err != nil {
		t.Fatalf("uninstall failed: %v", err)
	}
	if isShim(filepath.Join(hooksDir, "pre-commit")) {
		t.Error("pre-commit shim not removed")
	}
}

// TestShared_AddRemove tests editing the shared lists.
//
// Scenario: User adds a global and a local shared repository, then removes them
// Expected: git config and .githooks/.shared follow
func TestShared_AddRemove(t *testing.T) {
	home := isolateGit(t)
	repo := setupTestRepo(t, home, "myrepo")
	env := testContext(t, repo)

	if err := env.run(newSharedCmd(), "add", "git@host:org/global.git"); err != nil {
		t.Fatalf("shared add failed: %v", err)
	}
	if err := env.run(newSharedCmd(), "add", "--local", "https://host/org/local.git"); err != nil {
		t.Fatalf("shared add --local failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(repo, ".githooks", ".shared"))
	if err != nil || string(data) != "https://host/org/local.git\n" {
		t.Errorf(".shared = %q, %v", data, err)
	}

	env.stdout.Reset()
	if err := env.run(newSharedCmd(), "list"); err != nil {
		t.Fatalf("shared list failed: %v", err)
	}
	for _, want := range []string{"global", "git@host:org/global.git", "local", "https://host/org/local.git", "missing"} {
		if !strings.Contains(env.stdout.String(), want) {
			t.Errorf("shared list missing %q:\n%s", want, env.stdout)
		}
	}

	if err := env.run(newSharedCmd(), "remove", "git@host:org/global.git"); err != nil {
		t.Fatalf("shared remove failed: %v", err)
	}
	if err := env.run(newSharedCmd(), "remove", "git@host:org/global.git"); err == nil {
		t.Error("removing an unlisted url should fail")
	}
}
