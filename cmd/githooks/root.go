package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/raphi011/githooks/internal/config"
	"github.com/raphi011/githooks/internal/git"
	"github.com/raphi011/githooks/internal/log"
	"github.com/raphi011/githooks/internal/output"
	"github.com/raphi011/githooks/internal/runner"
	"github.com/raphi011/githooks/internal/ui/styles"
)

var (
	// Global flags
	verbose bool
	quiet   bool
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupTrust  = "trust"
	GroupConfig = "config"
)

// newRootCmd builds the command tree. Tests build a fresh tree per run so
// flag values never leak between invocations.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "githooks",
		Short: "Run repository-shipped git hooks behind a trust check",
		Long: `githooks runs the hook scripts a repository ships in .githooks/.

Every hook is fingerprinted. New or changed hooks need your approval before
they run, and the decision is remembered per repository. Hooks from shared
repositories are mirrored locally and refreshed on post-merge.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
				return nil
			}

			// Logger is created here so -v and -q are already parsed.
			out := colorprofile.NewWriter(os.Stderr, os.Environ())
			cmd.SetContext(log.WithLogger(cmd.Context(), log.New(out, verbose, quiet)))

			return git.CheckGit()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show hooks and git commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupTrust, Title: "Trust Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Core commands
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newUninstallCmd())
	rootCmd.AddCommand(newListCmd())

	// Trust commands
	rootCmd.AddCommand(newTrustCmd())
	rootCmd.AddCommand(newSharedCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute adds all child commands to the root command and runs it.
// A failing hook's exit status becomes the process exit status.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, newRootCmd(), os.Args[1:])
	cancel()
	os.Exit(code)
}

func execute(ctx context.Context, cmd *cobra.Command, args []string) int {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if err := styles.Init(settings.UI.Theme); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "githooks: failed to get working directory: %v\n", err)
		return 1
	}

	ctx = config.WithSettings(ctx, &settings)
	ctx = config.WithWorkDir(ctx, workDir)
	ctx = log.WithLogger(ctx, log.New(os.Stderr, false, false))
	ctx = output.WithPrinter(ctx, os.Stdout)

	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		return exitCode(err)
	}
	return 0
}

// exitCode reports err and returns the process exit status for it.
// A failing hook passes its own status through.
func exitCode(err error) int {
	fmt.Fprintln(os.Stderr, "githooks:", err)
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
