package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/githooks/internal/log"
	"github.com/raphi011/githooks/internal/runner"
	"github.com/raphi011/githooks/internal/trust"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run <trigger> [-- <args>...]",
		Short:   "Run the hooks of a trigger",
		GroupID: GroupCore,
		Args:    cobra.MinimumNArgs(1),
		Long: `Run every hook registered for a trigger.

Hooks run in four stages: the replaced hook from before installation, global
shared repositories, repository-local shared repositories, then the
repository's own .githooks/. The first failing hook stops the run and its exit
status becomes the exit status of githooks.

This is the entry point the installed shims call. Arguments after -- are
passed to every hook unchanged.`,
		Example: `  githooks run pre-commit
  githooks run commit-msg -- .git/COMMIT_EDITMSG
  githooks run pre-push -- origin git@github.com:org/repo.git`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			trigger, hookArgs := args[0], args[1:]

			p, err := openPipeline(ctx)
			if err != nil {
				return err
			}

			plan, err := p.resolver.Resolve(ctx, trigger)
			if err != nil {
				return err
			}
			l.Debug("resolved plan", "trigger", trigger, "items", plan.Len())

			sess := trust.NewSession()
			l.Debug("session started", "id", sess.ID)

			engine := runner.New(p.repo.Root, p.decider, p.settings.Run.Shell)
			_, err = engine.RunPlan(ctx, sess, plan, hookArgs)
			return err
		},
	}

	return cmd
}
