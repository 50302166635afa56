package launcher

import (
	"github.com/shirou/gopsutil/v3/host"

	"github.com/fis/nano-exporter/internal/nlog"
	"github.com/fis/nano-exporter/internal/scrape"
	"github.com/fis/nano-exporter/internal/xerr"
	"github.com/fis/nano-exporter/pkg/collector"
)

// Run parses argv, builds the enabled collector registry, binds the
// scrape server and runs its event loop until stop is closed. It returns
// an *xerr.Error for every startup-fatal condition: flag parse failure,
// collector init failure, or bind/listen failure.
func Run(argv []string, log *nlog.Logger, stop <-chan struct{}) error {
	cfg, err := ParseArgs(argv)
	if err != nil {
		return ErrorFlagParse.Error(err)
	}

	// The self-exec daemonize happens before binding: unlike main.c's
	// fork(2), which inherits the parent's already-bound listening
	// socket into the daemon, re-exec starts a fresh process that must
	// bind for itself. A bind failure is therefore reported by the
	// detached child's exit status, not by the foreground invocation.
	if !cfg.Foreground {
		if err := daemonize(cfg.PidFile); err != nil {
			return ErrorDaemonize.Error(err)
		}
	}

	logStartupInfo(log)

	registry, err := buildRegistry(cfg)
	if err != nil {
		return ErrorCollectorInit.Error(err)
	}
	log.Entry(nlog.InfoLevel, "collectors initialized").Field("enabled", registry.Names()).Log()

	srv, err := scrape.New(scrape.Config{Port: cfg.Port, Registry: registry, Log: log})
	if err != nil {
		return err
	}
	defer srv.Close()

	port, err := srv.Port()
	if err == nil {
		log.Entry(nlog.InfoLevel, "listening").Field("port", port).Log()
	}

	srv.Run(stop)
	return nil
}

// buildRegistry initializes every enabled collector in table order and
// wraps the result in an immutable collector.Registry, mirroring
// main.c's initialize() loop over collectors[].
func buildRegistry(cfg *Config) (*collector.Registry, error) {
	var enabled []collector.Enabled

	for _, d := range allCollectors {
		if !isEnabled(cfg, d) {
			continue
		}

		var ctx any
		if d.Init != nil {
			var err error
			ctx, err = d.Init(cfg.collectorArgs[d.Name])
			if err != nil {
				return nil, err
			}
		}

		enabled = append(enabled, collector.Enabled{Descriptor: d, Ctx: ctx})
	}

	return collector.NewRegistry(enabled), nil
}

// logStartupInfo reports the host identity once at startup, purely for
// operational logging; no collector reads through this path, keeping the
// deterministic /proc and /sys parsing collectors independent of it.
func logStartupInfo(log *nlog.Logger) {
	info, err := host.Info()
	if err != nil {
		log.Entry(nlog.WarnLevel, "host info unavailable").ErrorAdd(err).Log()
		return
	}
	log.Entry(nlog.InfoLevel, "starting").
		Field("hostname", info.Hostname).
		Field("platform", info.Platform).
		Field("kernel", info.KernelVersion).
		Log()
}
