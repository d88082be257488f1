package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/raphi011/githooks/internal/config"
	"github.com/raphi011/githooks/internal/hooks"
	"github.com/raphi011/githooks/internal/log"
	"github.com/raphi011/githooks/internal/output"
	"github.com/raphi011/githooks/internal/storage"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage githooks configuration.

Settings file:  ~/.config/githooks/config.toml
Cache dir:      GITHOOKS_CACHE_DIR overrides shared.cache_dir
Trust-all flag: git config githooks.trust.all (per repository)
Shared list:    git config --global githooks.shared`,
		Example: `  githooks config init            # Create default settings file
  githooks config show            # Show effective configuration
  githooks config trust-all       # Show the trust-all flag
  githooks config trust-all --reset`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigTrustAllCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default settings file",
		Args:  cobra.NoArgs,
		Example: `  githooks config init      # Create settings file
  githooks config init -f   # Overwrite existing file
  githooks config init -s   # Print to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			content := config.DefaultSettingsFile()

			if stdout {
				out.Print(content)
				return nil
			}

			path, err := config.SettingsPath()
			if err != nil {
				return err
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("settings file already exists: %s (use -f to overwrite)", path)
				}
			}
			if err := storage.WriteFile(path, []byte(content), 0o644); err != nil {
				return err
			}

			out.Printf("Created settings file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing settings file")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print settings file to stdout")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			settings := config.SettingsFromContext(ctx)

			if path, err := config.SettingsPath(); err == nil {
				out.Printf("# %s\n", path)
			}
			if err := toml.NewEncoder(out.Writer()).Encode(settings); err != nil {
				return err
			}

			store := config.NewGitStore(config.WorkDirFromContext(ctx))
			sharedList, ok, err := store.Get(ctx, config.Global, config.KeyShared)
			if err != nil {
				return err
			}
			out.Println()
			out.Printf("%s = %s\n", config.KeyShared, flagValue(sharedList, ok))

			repo, err := hooks.Locate(ctx, config.WorkDirFromContext(ctx))
			if err != nil {
				log.FromContext(ctx).Debug("not in a repository", "error", err)
				return nil
			}
			trustAll, ok, err := config.NewGitStore(repo.Root).Get(ctx, config.Local, config.KeyTrustAll)
			if err != nil {
				return err
			}
			out.Printf("%s = %s (%s)\n", config.KeyTrustAll, flagValue(trustAll, ok), repo.Root)
			return nil
		},
	}
}

func newConfigTrustAllCmd() *cobra.Command {
	var accept, deny, reset bool

	cmd := &cobra.Command{
		Use:   "trust-all",
		Short: "Show or change the repository's trust-all flag",
		Long: `Show or change whether every hook of the current repository is trusted.

The flag only matters when the repository contains .githooks/trust-all. While
it is unset, githooks asks on the next run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			repo, err := hooks.Locate(ctx, config.WorkDirFromContext(ctx))
			if err != nil {
				return err
			}
			store := config.NewGitStore(repo.Root)

			switch {
			case accept:
				return store.Set(ctx, config.Local, config.KeyTrustAll, "Y")
			case deny:
				return store.Set(ctx, config.Local, config.KeyTrustAll, "N")
			case reset:
				return store.Unset(ctx, config.Local, config.KeyTrustAll)
			}

			v, ok, err := store.Get(ctx, config.Local, config.KeyTrustAll)
			if err != nil {
				return err
			}
			out.Println(flagValue(v, ok))
			if !hooks.HasTrustAllMarker(repo.Root) {
				log.FromContext(ctx).Printf("note: %s has no .githooks/%s marker\n", repo.Root, hooks.TrustAllMarker)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&accept, "accept", false, "Trust every hook of this repository")
	cmd.Flags().BoolVar(&deny, "deny", false, "Decline repository-wide trust")
	cmd.Flags().BoolVar(&reset, "reset", false, "Unset the flag so the next run asks again")
	cmd.MarkFlagsMutuallyExclusive("accept", "deny", "reset")

	return cmd
}

// flagValue renders a config value, or "unset".
func flagValue(v string, ok bool) string {
	if !ok {
		return "unset"
	}
	return fmt.Sprintf("%q", v)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print version information",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			output.FromContext(cmd.Context()).Println(versionString())
		},
	}
}
