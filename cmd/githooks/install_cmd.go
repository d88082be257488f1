package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/githooks/internal/config"
	"github.com/raphi011/githooks/internal/hooks"
	"github.com/raphi011/githooks/internal/output"
)

func newInstallCmd() *cobra.Command {
	var hooksDir string

	cmd := &cobra.Command{
		Use:     "install",
		Short:   "Install hook shims into the current repository",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Install a shim for every client-side trigger into the repository's git
hooks directory. Each shim calls "githooks run <trigger>".

A hook that already exists is renamed to <trigger>.replaced.githook and still
runs first on every invocation. Running install again is safe.`,
		Example: `  githooks install
  githooks install --hooks-dir .git/custom-hooks`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dir, err := targetHooksDir(cmd, hooksDir)
			if err != nil {
				return err
			}
			binary, err := executablePath()
			if err != nil {
				return err
			}

			actions, err := installShims(dir, binary, hooks.ClientTriggers())
			printActions(output.FromContext(ctx), actions)
			return err
		},
	}

	cmd.Flags().StringVar(&hooksDir, "hooks-dir", "", "Install into this directory instead of the repository's hooks directory")
	cmd.MarkFlagDirname("hooks-dir")

	return cmd
}

func newUninstallCmd() *cobra.Command {
	var hooksDir string

	cmd := &cobra.Command{
		Use:     "uninstall",
		Short:   "Remove hook shims and restore replaced hooks",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dir, err := targetHooksDir(cmd, hooksDir)
			if err != nil {
				return err
			}

			actions, err := uninstallShims(dir, hooks.ClientTriggers())
			printActions(output.FromContext(ctx), actions)
			return err
		},
	}

	cmd.Flags().StringVar(&hooksDir, "hooks-dir", "", "Uninstall from this directory instead of the repository's hooks directory")
	cmd.MarkFlagDirname("hooks-dir")

	return cmd
}

// targetHooksDir returns the --hooks-dir value or the repository's hooks
// directory.
func targetHooksDir(cmd *cobra.Command, flag string) (string, error) {
	ctx := cmd.Context()
	if flag != "" {
		return flag, nil
	}
	repo, err := hooks.Locate(ctx, config.WorkDirFromContext(ctx))
	if err != nil {
		return "", err
	}
	return repo.HooksDir, nil
}

func printActions(p *output.Printer, actions []installAction) {
	rows := make([][]string, 0, len(actions))
	for _, a := range actions {
		rows = append(rows, []string{a.Trigger, a.Action})
	}
	p.Table([]string{"TRIGGER", "RESULT"}, rows)
}
