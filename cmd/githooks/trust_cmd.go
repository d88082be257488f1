package main

import (
	"context"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/githooks/internal/config"
	"github.com/raphi011/githooks/internal/log"
	"github.com/raphi011/githooks/internal/output"
	"github.com/raphi011/githooks/internal/trust"
	"github.com/raphi011/githooks/internal/ui/styles"
)

func newTrustCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "trust",
		Short:   "Inspect and edit recorded trust decisions",
		GroupID: GroupTrust,
		Long: `Inspect and edit the trust decisions of the current repository.

Decisions are appended to .git/.githooks.checksum; the latest line for a path
wins. Nothing is ever removed from the file.`,
		Example: `  githooks trust list
  githooks trust accept .githooks/pre-commit/lint.sh
  githooks trust disable .githooks/pre-commit/slow.sh
  githooks trust fingerprint .githooks/pre-commit/lint.sh --copy`,
	}

	cmd.AddCommand(newTrustListCmd())
	cmd.AddCommand(newTrustAcceptCmd())
	cmd.AddCommand(newTrustDisableCmd())
	cmd.AddCommand(newTrustFingerprintCmd())

	return cmd
}

func newTrustListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded decisions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := openPipeline(ctx)
			if err != nil {
				return err
			}

			records := p.store.Records()
			if len(records) == 0 {
				log.FromContext(ctx).Println("No trust decisions recorded")
				return nil
			}
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{styles.TrustState(string(r.Status)), shortFingerprint(r.Fingerprint), r.Path})
			}
			output.FromContext(ctx).Table([]string{"STATUS", "FINGERPRINT", "PATH"}, rows)
			return nil
		},
	}
}

func newTrustAcceptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accept <path>...",
		Short: "Trust hooks at their current content",
		Long: `Record the current fingerprint of each hook as accepted.

Also re-enables disabled hooks.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editTrust(cmd.Context(), args, func(ctx context.Context, s *trust.Store, path string) error {
				fp, err := trust.Fingerprint(path)
				if err != nil {
					return err
				}
				if err := s.Accept(ctx, path, fp); err != nil {
					return err
				}
				output.FromContext(ctx).Printf("accepted %s\n", path)
				return nil
			})
		},
	}
}

func newTrustDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <path>...",
		Short: "Never run hooks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editTrust(cmd.Context(), args, func(ctx context.Context, s *trust.Store, path string) error {
				if err := s.Disable(ctx, path); err != nil {
					return err
				}
				output.FromContext(ctx).Printf("disabled %s\n", path)
				return nil
			})
		},
	}
}

// editTrust resolves each argument against the working directory and applies
// fn to the repository's store.
func editTrust(ctx context.Context, args []string, fn func(context.Context, *trust.Store, string) error) error {
	p, err := openPipeline(ctx)
	if err != nil {
		return err
	}
	workDir := config.WorkDirFromContext(ctx)
	for _, arg := range args {
		if err := fn(ctx, p.store, absPath(workDir, arg)); err != nil {
			return err
		}
	}
	return nil
}

func newTrustFingerprintCmd() *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:   "fingerprint <file>",
		Short: "Print the fingerprint of a file",
		Long: `Print the fingerprint githooks records for a file. It equals the blob id
"git hash-object" prints.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			fp, err := trust.Fingerprint(absPath(config.WorkDirFromContext(ctx), args[0]))
			if err != nil {
				return err
			}
			output.FromContext(ctx).Println(fp)

			if copyToClipboard {
				if err := clipboard.WriteAll(fp); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy fingerprint to clipboard")

	return cmd
}

// absPath resolves path against workDir and follows symlinks, so records use
// the same real path hook discovery reports. A missing file keeps its name
// under the resolved parent directory.
func absPath(workDir, path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}
	path = filepath.Clean(path)
	if real, err := filepath.EvalSymlinks(path); err == nil {
		return real
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(path)); err == nil {
		return filepath.Join(dir, filepath.Base(path))
	}
	return path
}

func shortFingerprint(fp string) string {
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
