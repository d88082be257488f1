package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/githooks/internal/config"
	"github.com/raphi011/githooks/internal/hooks"
	"github.com/raphi011/githooks/internal/log"
	"github.com/raphi011/githooks/internal/output"
	"github.com/raphi011/githooks/internal/shared"
	"github.com/raphi011/githooks/internal/storage"
	"github.com/raphi011/githooks/internal/ui/progress"
)

func newSharedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "shared",
		Short:   "Manage shared hook repositories",
		GroupID: GroupTrust,
		Long: `Manage shared hook repositories.

Global repositories are stored in the git config key githooks.shared and apply
to every repository. Local repositories are listed in .githooks/.shared (or
the urls of .githooks/.shared.yaml) and are committed with the repository.

Mirrors live in the shared cache directory and are refreshed on post-merge or
by "githooks shared update".`,
		Example: `  githooks shared list
  githooks shared add git@github.com:org/hooks.git
  githooks shared add --local https://github.com/org/hooks.git
  githooks shared update`,
	}

	cmd.AddCommand(newSharedListCmd())
	cmd.AddCommand(newSharedAddCmd())
	cmd.AddCommand(newSharedRemoveCmd())
	cmd.AddCommand(newSharedUpdateCmd())

	return cmd
}

func newSharedListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List shared repositories and their mirrors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := openPipeline(ctx)
			if err != nil {
				return err
			}
			global, local, err := p.sharedLists(ctx)
			if err != nil {
				return err
			}

			var rows [][]string
			for _, scope := range []struct {
				name string
				list string
			}{{"global", global}, {"local", local}} {
				for _, e := range shared.ParseList(scope.list) {
					mirror := p.shared.MirrorDir(e)
					status := "missing"
					if _, err := os.Stat(mirror); err == nil {
						status = "present"
					}
					rows = append(rows, []string{scope.name, e.URL, status, mirror})
				}
			}
			if len(rows) == 0 {
				log.FromContext(ctx).Println("No shared repositories configured")
				return nil
			}
			output.FromContext(ctx).Table([]string{"SCOPE", "URL", "MIRROR", "PATH"}, rows)
			return nil
		},
	}
}

func newSharedAddCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Add a shared repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			url := args[0]
			if shared.Normalize(url) == "" {
				return fmt.Errorf("invalid repository url: %q", url)
			}

			var added bool
			var err error
			if local {
				added, err = editLocalShared(ctx, func(raw string) (string, bool) { return addSharedLine(raw, url) })
			} else {
				added, err = editGlobalShared(ctx, func(urls []string) ([]string, bool) {
					if slices.Contains(urls, url) {
						return urls, false
					}
					return append(urls, url), true
				})
			}
			if err != nil {
				return err
			}

			if added {
				output.FromContext(ctx).Printf("added %s\n", url)
			} else {
				log.FromContext(ctx).Printf("%s is already listed\n", url)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Add to .githooks/.shared of the current repository")

	return cmd
}

func newSharedRemoveCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:     "remove <url>",
		Short:   "Remove a shared repository",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			url := args[0]

			var removed bool
			var err error
			if local {
				removed, err = editLocalShared(ctx, func(raw string) (string, bool) { return removeSharedLine(raw, url) })
			} else {
				removed, err = editGlobalShared(ctx, func(urls []string) ([]string, bool) {
					kept := slices.DeleteFunc(slices.Clone(urls), func(u string) bool { return u == url })
					return kept, len(kept) != len(urls)
				})
			}
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("%s is not listed", url)
			}
			output.FromContext(ctx).Printf("removed %s\n", url)
			return nil
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Remove from .githooks/.shared of the current repository")

	return cmd
}

func newSharedUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Clone or pull every shared repository now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := openPipeline(ctx)
			if err != nil {
				return err
			}
			global, local, err := p.sharedLists(ctx)
			if err != nil {
				return err
			}

			var sp *progress.Spinner
			if !quiet && progress.Enabled(os.Stderr) {
				sp = progress.NewSpinner(os.Stderr, "Updating shared repositories")
				sp.Start()
			}
			results := p.shared.Update(ctx, global+"\n"+local)
			if sp != nil {
				sp.Stop()
			}

			var rows [][]string
			failed := 0
			for _, res := range results {
				result := "updated"
				if res.Err != nil {
					result = res.Err.Error()
					failed++
				}
				rows = append(rows, []string{res.Entry.URL, result})
			}
			output.FromContext(ctx).Table([]string{"URL", "RESULT"}, rows)

			if failed > 0 {
				return fmt.Errorf("%d shared repositories failed to update", failed)
			}
			return nil
		},
	}
}

// editGlobalShared applies fn to the global shared list and stores the result
// when fn reports a change. An empty list unsets the key.
func editGlobalShared(ctx context.Context, fn func([]string) ([]string, bool)) (bool, error) {
	store := config.NewGitStore(config.WorkDirFromContext(ctx))
	raw, _, err := store.Get(ctx, config.Global, config.KeyShared)
	if err != nil {
		return false, err
	}

	var urls []string
	for _, e := range shared.ParseList(raw) {
		urls = append(urls, e.URL)
	}
	urls, changed := fn(urls)
	if !changed {
		return false, nil
	}
	if len(urls) == 0 {
		return true, store.Unset(ctx, config.Global, config.KeyShared)
	}
	return true, store.Set(ctx, config.Global, config.KeyShared, strings.Join(urls, ","))
}

// editLocalShared rewrites .githooks/.shared of the current repository.
func editLocalShared(ctx context.Context, fn func(string) (string, bool)) (bool, error) {
	repo, err := hooks.Locate(ctx, config.WorkDirFromContext(ctx))
	if err != nil {
		return false, err
	}
	path := filepath.Join(hooks.HooksRoot(repo.Root), hooks.SharedFile)

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	updated, changed := fn(string(data))
	if !changed {
		return false, nil
	}
	return true, storage.WriteFile(path, []byte(updated), 0o644)
}

// addSharedLine appends url on its own line unless raw already lists it.
func addSharedLine(raw, url string) (string, bool) {
	for _, e := range shared.ParseList(raw) {
		if e.URL == url {
			return raw, false
		}
	}
	if raw != "" && !strings.HasSuffix(raw, "\n") {
		raw += "\n"
	}
	return raw + url + "\n", true
}

// removeSharedLine drops url from raw. Comments and other entries are kept.
func removeSharedLine(raw, url string) (string, bool) {
	var kept []string
	found := false
	for _, line := range strings.Split(raw, "\n") {
		var parts []string
		for _, part := range strings.Split(line, ",") {
			if strings.TrimSpace(part) == url {
				found = true
				continue
			}
			parts = append(parts, part)
		}
		if len(parts) == 0 {
			continue
		}
		kept = append(kept, strings.Join(parts, ","))
	}
	return strings.Join(kept, "\n"), found
}
