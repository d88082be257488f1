package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/raphi011/githooks/internal/hooks"
	"github.com/raphi011/githooks/internal/ignore"
	"github.com/raphi011/githooks/internal/log"
	"github.com/raphi011/githooks/internal/output"
	"github.com/raphi011/githooks/internal/ui/styles"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [trigger]",
		Short:   "List hooks and their trust state",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `List the hooks that would run, in execution order, with their state:

  accepted   fingerprint matches the recorded one
  trust-all  the repository is trusted as a whole
  new        never seen, will prompt
  changed    content changed since it was accepted, will prompt
  disabled   never runs
  ignored    matched by an .ignore pattern

Shared repositories are not refreshed.`,
		Example: `  githooks list
  githooks list pre-commit`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return hooks.Triggers, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			p, err := openPipeline(ctx)
			if err != nil {
				return err
			}
			p.shared.Offline = true

			triggers := hooks.Triggers
			if len(args) == 1 {
				triggers = args[:1]
			}

			rows, err := listRows(ctx, p, triggers)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				log.FromContext(ctx).Println("No hooks found")
				return nil
			}
			output.FromContext(ctx).Table([]string{"TRIGGER", "ORIGIN", "NAME", "STATE", "PATH"}, rows)
			return nil
		},
	}

	return cmd
}

func listRows(ctx context.Context, p *pipeline, triggers []string) ([][]string, error) {
	var rows [][]string
	for _, trigger := range triggers {
		plan, err := p.resolver.Resolve(ctx, trigger)
		if err != nil {
			return nil, err
		}
		for _, item := range plan.Items() {
			state, err := itemState(ctx, p, item)
			if err != nil {
				return nil, err
			}
			rows = append(rows, []string{
				trigger,
				string(item.Origin),
				item.Name(),
				styles.TrustState(state),
				item.Path,
			})
		}
	}
	return rows, nil
}

func itemState(ctx context.Context, p *pipeline, item hooks.Item) (string, error) {
	ignored, err := ignore.IsIgnored(p.repo.Root, item.Trigger, item.Path)
	if err != nil {
		return "", err
	}
	if ignored {
		return "ignored", nil
	}
	state, err := p.decider.Inspect(ctx, item)
	if err != nil {
		return "", err
	}
	return string(state), nil
}
