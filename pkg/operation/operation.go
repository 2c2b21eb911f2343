// Package operation provides the driver that runs the rewrite pipeline
// over the configured entities.
package operation

import (
	"context"

	"github.com/walteh/refit/pkg/config"
	"github.com/walteh/refit/pkg/log"
	"github.com/walteh/refit/pkg/rewrite"
	"github.com/walteh/refit/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operation defines a runnable refit operation
type Operation interface {
	// Name returns the operation name for logging
	Name() string
	// Execute runs the operation to completion
	Execute(ctx context.Context) error
}

// 🔧 Options contains the dependencies shared by all operations
type Options struct {
	// Config is the refit configuration
	Config *config.Config
	// ConfigPath is where the config was loaded from, for reporting
	ConfigPath string
	// StatusMgr owns file I/O and per-file outcome tracking
	StatusMgr *status.Manager
	// Logger is the console logger
	Logger *log.Logger
	// Rules is the ordered pattern rule table
	Rules *rewrite.RuleSet
	// Block is the builder-method block spec
	Block rewrite.BlockSpec
}

// 🏭 NewBaseOperation validates the shared dependencies
func NewBaseOperation(opts Options) (BaseOperation, error) {
	if opts.Config == nil {
		return BaseOperation{}, errors.Errorf("config is required")
	}
	if opts.StatusMgr == nil {
		return BaseOperation{}, errors.Errorf("status manager is required")
	}
	if opts.Logger == nil {
		return BaseOperation{}, errors.Errorf("logger is required")
	}
	if opts.Rules == nil {
		return BaseOperation{}, errors.Errorf("rule set is required")
	}
	if err := opts.Rules.Validate(); err != nil {
		return BaseOperation{}, errors.Errorf("validating rule set: %w", err)
	}
	if opts.Block.Open == nil {
		return BaseOperation{}, errors.Errorf("block spec is required")
	}
	return BaseOperation{Options: opts}, nil
}

// 📦 BaseOperation carries the shared dependencies
type BaseOperation struct {
	Options
}
