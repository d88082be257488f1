// Package runner executes hook items.
//
// Items run one at a time in plan order. Ignored items and items the trust
// decider skips count as success. The first item that exits non-zero stops
// the plan and its status becomes the result.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/githooks/internal/cmd"
	"github.com/raphi011/githooks/internal/hooks"
	"github.com/raphi011/githooks/internal/ignore"
	"github.com/raphi011/githooks/internal/log"
	"github.com/raphi011/githooks/internal/trust"
)

// Environment variables set for every hook.
const (
	EnvTrigger = "GITHOOKS_TRIGGER"
	EnvOrigin  = "GITHOOKS_ORIGIN"
)

// ExitError reports the hook that stopped a plan.
type ExitError struct {
	Code int
	Item hooks.Item
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("hook %s failed with exit status %d", e.Item.Path, e.Code)
}

// Decider decides whether an item may run.
type Decider interface {
	Decide(ctx context.Context, sess *trust.Session, item hooks.Item) (trust.Decision, error)
}

// Engine runs hook items of one repository.
type Engine struct {
	RepoRoot string
	Decider  Decider
	Shell    string // interpreter for scripts without shebang

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New creates an Engine wired to the process's standard streams.
func New(repoRoot string, d Decider, shell string) *Engine {
	if shell == "" {
		shell = "sh"
	}
	return &Engine{
		RepoRoot: repoRoot,
		Decider:  d,
		Shell:    shell,
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// RunPlan runs every item of plan in order and stops at the first failure.
// A failing hook is reported as *ExitError; the returned code is 0 on success.
func (e *Engine) RunPlan(ctx context.Context, sess *trust.Session, plan hooks.Plan, args []string) (int, error) {
	for _, stage := range plan.Stages {
		for _, item := range stage.Items {
			if err := ctx.Err(); err != nil {
				return 1, err
			}
			code, err := e.Run(ctx, sess, item, args)
			if err != nil {
				return 1, err
			}
			if code != 0 {
				return code, &ExitError{Code: code, Item: item}
			}
		}
	}
	return 0, nil
}

// Run runs a single item and returns its exit status. Ignored and skipped
// items return 0 without being started. A hook that cannot be started
// returns 1.
func (e *Engine) Run(ctx context.Context, sess *trust.Session, item hooks.Item, args []string) (int, error) {
	l := log.FromContext(ctx)

	ignored, err := ignore.IsIgnored(e.RepoRoot, item.Trigger, item.Path)
	if err != nil {
		l.Warn("cannot read ignore rules", "trigger", item.Trigger, "error", err)
	}
	if ignored {
		l.Debug("ignored", "path", item.Path)
		return 0, nil
	}

	decision, err := e.Decider.Decide(ctx, sess, item)
	if err != nil {
		return 1, err
	}
	if decision != trust.Run {
		return 0, nil
	}

	name, cmdArgs, err := e.command(item, args)
	if err != nil {
		l.Warn("cannot start hook", "path", item.Path, "error", err)
		return 1, nil
	}

	c := exec.CommandContext(ctx, name, cmdArgs...)
	c.Dir = e.RepoRoot
	c.Stdin = e.Stdin
	c.Stdout = e.Stdout
	c.Stderr = e.Stderr
	c.Env = append(os.Environ(),
		EnvTrigger+"="+item.Trigger,
		EnvOrigin+"="+string(item.Origin),
	)

	done := l.Command(e.RepoRoot, name, cmdArgs...)
	start := time.Now()
	err = c.Run()
	done(time.Since(start))

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		l.Warn("cannot start hook", "path", item.Path, "error", err)
	}
	return cmd.ExitCode(err), nil
}

// command returns how to invoke item: directly when executable, else through
// its shebang interpreter or the configured shell.
func (e *Engine) command(item hooks.Item, args []string) (string, []string, error) {
	if item.Executable {
		return item.Path, args, nil
	}

	interp, err := readShebang(item.Path)
	if err != nil {
		return "", nil, err
	}
	if len(interp) == 0 {
		interp = []string{e.Shell}
	}
	argv := append([]string{}, interp[1:]...)
	argv = append(argv, item.Path)
	return interp[0], append(argv, args...), nil
}

// readShebang returns the interpreter and its optional argument from the
// first line of path, or nil if there is no "#!" line.
func readShebang(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	rest, ok := strings.CutPrefix(line, "#!")
	if !ok {
		return nil, nil
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return nil, nil
	}
	// Like the kernel: interpreter, then everything else as one argument.
	interp, arg, found := strings.Cut(rest, " ")
	if found {
		if arg = strings.TrimSpace(arg); arg != "" {
			return []string{interp, arg}, nil
		}
	}
	return []string{interp}, nil
}
