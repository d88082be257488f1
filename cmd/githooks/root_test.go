package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/raphi011/githooks/internal/hooks"
	"github.com/raphi011/githooks/internal/runner"
)

func TestExitCode(t *testing.T) {
	hookErr := &runner.ExitError{Code: 3, Item: hooks.Item{Path: "/repo/.githooks/pre-commit"}}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"hook failure", hookErr, 3},
		{"wrapped hook failure", fmt.Errorf("run: %w", hookErr), 3},
		{"internal error", errors.New("not inside a git repository"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNewRootCmd_Groups(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"run", "install", "uninstall", "list", "trust", "shared", "config", "version"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered: %v", name, err)
			continue
		}
		if cmd.GroupID == "" {
			t.Errorf("command %q has no group", name)
		}
	}
}
