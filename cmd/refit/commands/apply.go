package commands

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/refit/cmd/refit/opts"
	"github.com/walteh/refit/pkg/operation"
	"github.com/walteh/refit/pkg/rewrite"
	"github.com/walteh/refit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// OptsBuilder constructs the shared dependencies once flags are parsed
type OptsBuilder func(ctx context.Context) (*opts.RootOpts, error)

// NewApplyCmd creates a new apply command
func NewApplyCmd(build OptsBuilder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Rewrite the configured entity files in place",
		Long: `Apply runs the full rewrite pipeline over every configured entity.
For each file it will:
1. Read the file content
2. Apply the ordered pattern rules
3. Replace the builder method block
4. Write the result back atomically

Files are overwritten in place with no backup; run under version control.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "apply").Logger().WithContext(ctx)

			o, err := build(ctx)
			if err != nil {
				return err
			}

			op, err := operation.NewApplyOperation(operation.Options{
				Config:     o.Config,
				ConfigPath: o.ConfigPath,
				StatusMgr:  o.StatusMgr,
				Logger:     o.Logger,
				Rules:      rewrite.MigrationRules(),
				Block:      rewrite.CreateResultBlock(),
			})
			if err != nil {
				return errors.Errorf("creating apply operation: %w", err)
			}

			runner := operation.NewRunner(zerolog.Ctx(ctx))
			if err := runner.Run(ctx, op); err != nil {
				return errors.Errorf("applying rewrites: %w", err)
			}

			printSummary(ctx, o.StatusMgr)
			return nil
		},
	}

	return cmd
}

// printSummary prints the end-of-run outcome counts
func printSummary(ctx context.Context, mgr *status.Manager) {
	counts := mgr.Summary(ctx)

	if n := counts[status.StatusRewritten]; n > 0 {
		pterm.Success.WithPrefix(pterm.Prefix{Text: "⟳"}).Println(plural(n, "file rewritten", "files rewritten"))
	}
	if n := counts[status.StatusPlanned]; n > 0 {
		pterm.Info.WithPrefix(pterm.Prefix{Text: "•"}).Println(plural(n, "file would change", "files would change"))
	}
	if n := counts[status.StatusUnchanged]; n > 0 {
		pterm.Info.WithPrefix(pterm.Prefix{Text: "-"}).Println(plural(n, "file unchanged", "files unchanged"))
	}
	if n := counts[status.StatusFailed]; n > 0 {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "✗"}).Println(plural(n, "file failed", "files failed"))
	}
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}
