package launcher

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/fis/nano-exporter/pkg/collector"
)

// Config is the parsed command line, mirroring main.c's struct config
// plus the per-collector enablement/argument state main.c keeps in
// struct collector_ctx during initialize().
type Config struct {
	Port       int
	Foreground bool
	PidFile    string

	// enabled holds an explicit --<name>-on/--<name>-off override, keyed
	// by collector name. A name absent from this map takes
	// enabledDefault.
	enabled        map[string]bool
	enabledDefault bool

	// collectorArgs holds the parsed --<name>-<argname>[=<val>] flags
	// per collector name, ready to hand to a Descriptor's InitFunc.
	collectorArgs map[string]map[string]string
}

const defaultPort = 9100

// ParseArgs parses argv (not including the program name) against the
// known collector table plus the launcher's own --port, --foreground,
// --pidfile and --config flags, replicating main.c's initialize()
// argument loop: seeing any --X-on flips the default enablement for
// collectors with no explicit flag to off.
//
// --config=<file.yaml>, if present, is read first via viper and its
// port/foreground/pidfile keys become the pflag defaults; any of the
// three given explicitly on the command line still wins.
func ParseArgs(argv []string) (*Config, error) {
	cfg := &Config{
		Port:           defaultPort,
		enabled:        make(map[string]bool),
		enabledDefault: true,
		collectorArgs:  make(map[string]map[string]string),
	}

	var rest []string
	configFile := ""

	for _, arg := range argv {
		if v, ok := flagValue(arg, "--config"); ok {
			configFile = v
			continue
		}

		matched, err := matchCollectorFlag(cfg, arg)
		if err != nil {
			return nil, err
		}
		if matched {
			continue
		}
		rest = append(rest, arg)
	}

	portDefault, foregroundDefault, pidfileDefault := defaultPort, false, ""
	if configFile != "" {
		v := viper.New()
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
		if v.IsSet("port") {
			portDefault = v.GetInt("port")
		}
		if v.IsSet("foreground") {
			foregroundDefault = v.GetBool("foreground")
		}
		if v.IsSet("pidfile") {
			pidfileDefault = v.GetString("pidfile")
		}
	}

	fs := pflag.NewFlagSet("nano-exporter", pflag.ContinueOnError)
	port := fs.Int("port", portDefault, "TCP port to listen on")
	foreground := fs.Bool("foreground", foregroundDefault, "do not daemonize")
	pidfile := fs.String("pidfile", pidfileDefault, "write the daemon PID to this file")

	if err := fs.Parse(rest); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unknown argument: %s", fs.Arg(0))
	}

	cfg.Port = *port
	cfg.Foreground = *foreground
	cfg.PidFile = *pidfile

	return cfg, nil
}

// flagValue reports whether arg is --name or --name=value, returning
// the value (empty for the bare --name form).
func flagValue(arg, name string) (string, bool) {
	if arg == name {
		return "", true
	}
	if strings.HasPrefix(arg, name+"=") {
		return arg[len(name)+1:], true
	}
	return "", false
}

// matchCollectorFlag checks arg against every known collector's
// "--<name>-" prefix and updates cfg accordingly. It reports whether arg
// was a collector flag at all.
func matchCollectorFlag(cfg *Config, arg string) (bool, error) {
	if !strings.HasPrefix(arg, "--") {
		return false, nil
	}
	body := arg[2:]

	for _, d := range allCollectors {
		prefix := d.Name + "-"
		if !strings.HasPrefix(body, prefix) {
			continue
		}
		carg := body[len(prefix):]

		switch carg {
		case "on":
			cfg.enabled[d.Name] = true
			cfg.enabledDefault = false
		case "off":
			cfg.enabled[d.Name] = false
		default:
			if d.Init != nil && d.HasArgs {
				addCollectorArg(cfg, d.Name, carg)
			} else {
				return true, fmt.Errorf("unknown argument: --%s (collector %s takes no arguments)", body, d.Name)
			}
		}
		return true, nil
	}

	return false, nil
}

func addCollectorArg(cfg *Config, name, carg string) {
	m := cfg.collectorArgs[name]
	if m == nil {
		m = make(map[string]string)
		cfg.collectorArgs[name] = m
	}
	if eq := strings.IndexByte(carg, '='); eq >= 0 {
		m[carg[:eq]] = carg[eq+1:]
	} else {
		m[carg] = ""
	}
}

// isEnabled reports whether d should be enabled under cfg's tristate
// enablement rule: an explicit --<name>-on/--<name>-off wins; otherwise
// the default (on, unless any --X-on was seen) applies.
func isEnabled(cfg *Config, d collector.Descriptor) bool {
	if v, ok := cfg.enabled[d.Name]; ok {
		return v
	}
	return cfg.enabledDefault
}
