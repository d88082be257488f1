package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/githooks/internal/config"
	"github.com/raphi011/githooks/internal/hooks"
	"github.com/raphi011/githooks/internal/trust"
)

// allowAll runs every item and records which ones it was asked about.
type allowAll struct {
	asked []string
}

func (a *allowAll) Decide(_ context.Context, _ *trust.Session, item hooks.Item) (trust.Decision, error) {
	a.asked = append(a.asked, item.Name())
	return trust.Run, nil
}

type fixedDecider struct {
	decision trust.Decision
	err      error
}

func (f fixedDecider) Decide(context.Context, *trust.Session, hooks.Item) (trust.Decision, error) {
	return f.decision, f.err
}

// acceptingPrompter accepts every hook and counts prompts.
type acceptingPrompter struct {
	prompts int
}

func (p *acceptingPrompter) ConfirmTrustAll(context.Context) (bool, error) { return false, nil }

func (p *acceptingPrompter) Choose(context.Context, hooks.Item, trust.Reason) (trust.Choice, error) {
	p.prompts++
	return trust.Accept, nil
}

type env struct {
	repo string
	log  string // every script appends its name here
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()
	return &env{repo: filepath.Join(dir, "repo"), log: filepath.Join(dir, "ran.log")}
}

// script writes a hook that records its name and exits with code.
func (e *env) script(t *testing.T, path, name string, code int, perm os.FileMode) string {
	t.Helper()
	body := "#!/bin/sh\necho " + name + " >> '" + e.log + "'\nexit " + string(rune('0'+code)) + "\n"
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), perm))
	return path
}

func (e *env) ran(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.log)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(t, err)
	return strings.Fields(string(data))
}

func item(path string, origin hooks.Origin) hooks.Item {
	info, err := os.Stat(path)
	exec := err == nil && info.Mode().Perm()&0o111 != 0
	return hooks.Item{Path: path, Trigger: "pre-commit", Origin: origin, Executable: exec}
}

func newEngine(repo string, d Decider) (*Engine, *bytes.Buffer) {
	var out bytes.Buffer
	e := New(repo, d, "sh")
	e.Stdin = strings.NewReader("")
	e.Stdout = &out
	e.Stderr = &out
	return e, &out
}

func TestRunPlan_OrderAndFailFast(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	other := t.TempDir()

	plan := hooks.Plan{Trigger: "pre-commit", Stages: []hooks.Stage{
		{Origin: hooks.OriginLegacy, Items: []hooks.Item{
			item(e.script(t, filepath.Join(other, "pre-commit.replaced.githook"), "legacy", 0, 0o755), hooks.OriginLegacy),
		}},
		{Origin: hooks.OriginSharedGlobal, Items: []hooks.Item{
			item(e.script(t, filepath.Join(other, "global", "pre-commit"), "global", 0, 0o755), hooks.OriginSharedGlobal),
		}},
		{Origin: hooks.OriginSharedLocal, Items: []hooks.Item{
			item(e.script(t, filepath.Join(other, "local-shared", "pre-commit"), "localshared", 0, 0o755), hooks.OriginSharedLocal),
		}},
		{Origin: hooks.OriginLocal, Items: []hooks.Item{
			item(e.script(t, filepath.Join(e.repo, ".githooks", "pre-commit"), "local", 0, 0o755), hooks.OriginLocal),
		}},
	}}

	eng, _ := newEngine(e.repo, &allowAll{})
	code, err := eng.RunPlan(context.Background(), trust.NewSession(), plan, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"legacy", "global", "localshared", "local"}, e.ran(t))

	// Local-shared failing stops the local stage.
	require.NoError(t, os.Remove(e.log))
	e.script(t, plan.Stages[2].Items[0].Path, "localshared", 3, 0o755)
	code, err = eng.RunPlan(context.Background(), trust.NewSession(), plan, nil)
	assert.Equal(t, 3, code)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, hooks.OriginSharedLocal, exitErr.Item.Origin)
	assert.Equal(t, []string{"legacy", "global", "localshared"}, e.ran(t))
}

func TestRunPlan_TwoScriptsSecondFails(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	dir := filepath.Join(e.repo, ".githooks", "pre-commit")
	e.script(t, filepath.Join(dir, "a"), "a", 0, 0o755)
	e.script(t, filepath.Join(dir, "b"), "b", 1, 0o755)

	gitDir := t.TempDir()
	prompter := &acceptingPrompter{}
	decider := trust.NewDecider(e.repo, trust.OpenStore(context.Background(), gitDir), config.NewMemoryStore(), prompter)

	items, err := hooks.Discover(filepath.Join(e.repo, ".githooks"), "pre-commit", hooks.OriginLocal)
	require.NoError(t, err)
	plan := hooks.Plan{Trigger: "pre-commit", Stages: []hooks.Stage{
		{Origin: hooks.OriginLocal, Items: items},
	}}

	eng, _ := newEngine(e.repo, decider)
	code, err := eng.RunPlan(context.Background(), trust.NewSession(), plan, nil)
	assert.Equal(t, 1, code)
	require.Error(t, err)
	assert.Equal(t, []string{"a", "b"}, e.ran(t))
	assert.Equal(t, 2, prompter.prompts)
}

func TestRun_IgnoredNeverDecided(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	path := e.script(t, filepath.Join(e.repo, ".githooks", "pre-commit", "skip.sh"), "skip", 1, 0o755)
	require.NoError(t, os.WriteFile(filepath.Join(e.repo, ".githooks", ".ignore"), []byte("*.sh\n"), 0o644))

	d := &allowAll{}
	eng, _ := newEngine(e.repo, d)
	code, err := eng.Run(context.Background(), trust.NewSession(), item(path, hooks.OriginLocal), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Empty(t, d.asked)
	assert.Empty(t, e.ran(t))
}

func TestRun_SkipReturnsZero(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	path := e.script(t, filepath.Join(e.repo, ".githooks", "pre-commit"), "hook", 1, 0o755)

	eng, _ := newEngine(e.repo, fixedDecider{decision: trust.Skip})
	code, err := eng.Run(context.Background(), trust.NewSession(), item(path, hooks.OriginLocal), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Empty(t, e.ran(t))
}

func TestRun_DeciderError(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	path := e.script(t, filepath.Join(e.repo, ".githooks", "pre-commit"), "hook", 0, 0o755)

	eng, _ := newEngine(e.repo, fixedDecider{err: errors.New("store broken")})
	_, err := eng.RunPlan(context.Background(), trust.NewSession(), hooks.Plan{Stages: []hooks.Stage{
		{Origin: hooks.OriginLocal, Items: []hooks.Item{item(path, hooks.OriginLocal)}},
	}}, nil)
	require.Error(t, err)
	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
}

func TestRun_Interpreters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		perm    os.FileMode
		want    string
	}{
		{"executable", "#!/bin/sh\necho direct \"$1\" \"$2\"\n", 0o755, "direct one two"},
		{"shebang not executable", "#!/bin/sh -e\necho shebang \"$1\" \"$2\"\n", 0o644, "shebang one two"},
		{"no shebang uses shell", "echo shell \"$1\" \"$2\"\n", 0o644, "shell one two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := t.TempDir()
			path := filepath.Join(repo, ".githooks", "commit-msg")
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
			require.NoError(t, os.WriteFile(path, []byte(tt.content), tt.perm))

			eng, out := newEngine(repo, &allowAll{})
			code, err := eng.Run(context.Background(), trust.NewSession(), item(path, hooks.OriginLocal), []string{"one", "two"})
			require.NoError(t, err)
			assert.Equal(t, 0, code)
			assert.Equal(t, tt.want+"\n", out.String())
		})
	}
}

func TestRun_StartFailureIsExitOne(t *testing.T) {
	t.Parallel()
	repo := t.TempDir()
	path := filepath.Join(repo, "hook")
	require.NoError(t, os.WriteFile(path, []byte("#!/nonexistent/interpreter\n"), 0o755))

	eng, _ := newEngine(repo, &allowAll{})
	code, err := eng.Run(context.Background(), trust.NewSession(), item(path, hooks.OriginLocal), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, code)
}

func TestRun_Environment(t *testing.T) {
	t.Parallel()
	repo := t.TempDir()
	path := filepath.Join(repo, "hook")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho \"$GITHOOKS_TRIGGER $GITHOOKS_ORIGIN $(pwd)\"\n"), 0o755))

	eng, out := newEngine(repo, &allowAll{})
	it := item(path, hooks.OriginSharedGlobal)
	code, err := eng.Run(context.Background(), trust.NewSession(), it, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	resolved, err := filepath.EvalSymlinks(repo)
	require.NoError(t, err)
	assert.Equal(t, "pre-commit shared-global "+resolved+"\n", out.String())
}

func TestRunPlan_CancelledContext(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	path := e.script(t, filepath.Join(e.repo, ".githooks", "pre-commit"), "hook", 0, 0o755)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	eng, _ := newEngine(e.repo, &allowAll{})
	_, err := eng.RunPlan(ctx, trust.NewSession(), hooks.Plan{Stages: []hooks.Stage{
		{Origin: hooks.OriginLocal, Items: []hooks.Item{item(path, hooks.OriginLocal)}},
	}}, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, e.ran(t))
}

func TestReadShebang(t *testing.T) {
	t.Parallel()

	tests := []struct {
		content string
		want    []string
	}{
		{"#!/bin/bash\n", []string{"/bin/bash"}},
		{"#! /usr/bin/env python3\nprint()\n", []string{"/usr/bin/env", "python3"}},
		{"#!/bin/sh -e -u\n", []string{"/bin/sh", "-e -u"}},
		{"echo hi\n", nil},
		{"#!\n", nil},
		{"", nil},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "hook")
		require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
		got, err := readShebang(path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "content %q", tt.content)
	}
}
