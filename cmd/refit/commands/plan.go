package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/refit/pkg/operation"
	"github.com/walteh/refit/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

// NewPlanCmd creates a new plan command
func NewPlanCmd(build OptsBuilder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what apply would change without writing anything",
		Long: `Plan runs the full rewrite pipeline in memory and reports which rules
would fire for each entity file. No file is modified.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "plan").Logger().WithContext(ctx)

			o, err := build(ctx)
			if err != nil {
				return err
			}

			op, err := operation.NewPlanOperation(operation.Options{
				Config:     o.Config,
				ConfigPath: o.ConfigPath,
				StatusMgr:  o.StatusMgr,
				Logger:     o.Logger,
				Rules:      rewrite.MigrationRules(),
				Block:      rewrite.CreateResultBlock(),
			})
			if err != nil {
				return errors.Errorf("creating plan operation: %w", err)
			}

			runner := operation.NewRunner(zerolog.Ctx(ctx))
			if err := runner.Run(ctx, op); err != nil {
				return errors.Errorf("planning rewrites: %w", err)
			}

			printSummary(ctx, o.StatusMgr)
			return nil
		},
	}

	return cmd
}
