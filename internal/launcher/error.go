package launcher

import "github.com/fis/nano-exporter/internal/xerr"

const (
	ErrorFlagParse xerr.CodeError = iota + xerr.MinPkgLauncher
	ErrorCollectorInit
	ErrorDaemonize
)

func init() {
	xerr.Register(ErrorFlagParse, "failed to parse command line arguments")
	xerr.Register(ErrorCollectorInit, "failed to initialize a collector")
	xerr.Register(ErrorDaemonize, "failed to daemonize")
}
