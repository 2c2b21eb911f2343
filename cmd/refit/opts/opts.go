// Package opts bundles the shared dependencies handed to every subcommand.
package opts

import (
	"github.com/walteh/refit/pkg/config"
	"github.com/walteh/refit/pkg/log"
	"github.com/walteh/refit/pkg/status"
)

// 📦 RootOpts carries the dependencies built once by the root command
type RootOpts struct {
	Config     *config.Config
	ConfigPath string
	StatusMgr  *status.Manager
	Logger     *log.Logger
}
