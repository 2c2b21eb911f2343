package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/refit/cmd/refit/commands"
	"github.com/walteh/refit/cmd/refit/opts"
	"github.com/walteh/refit/pkg/config"
	"github.com/walteh/refit/pkg/log"
	"github.com/walteh/refit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
)

// newRootOpts creates a new RootOpts with initialized dependencies
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return &opts.RootOpts{
		Config:     cfg,
		ConfigPath: configFile,
		StatusMgr:  status.New(cfg.Root),
		Logger:     log.New(os.Stdout, level),
	}, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".refit.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	zlog := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &zlog
}

// newRootCmd builds the refit root command
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refit",
		Short: "Retrofit translation layer files to the BaseTranslationLayer contract",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
			zlog := zerolog.DefaultContextLogger
			cmd.SetContext(zlog.WithContext(cmd.Context()))
		},
		SilenceUsage: true,
	}

	addRootFlags(cmd)

	cmd.AddCommand(commands.NewApplyCmd(newRootOpts))
	cmd.AddCommand(commands.NewPlanCmd(newRootOpts))

	return cmd
}
