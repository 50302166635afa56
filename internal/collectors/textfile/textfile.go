// Package textfile passes through *.prom files from a directory
// verbatim, grounded on textfile.c.
package textfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fis/nano-exporter/pkg/collector"
	"github.com/fis/nano-exporter/pkg/sink"
)

const defaultDir = "/var/lib/prometheus/node-exporter"

// Descriptor is the textfile collector. It accepts a dir= init argument.
var Descriptor = collector.Descriptor{
	Name:      "textfile",
	HasArgs:   true,
	DefaultOn: true,
	Init:      initFunc,
	Collect:   collect,
}

func initFunc(argv map[string]string) (any, error) {
	dir := defaultDir

	for k, v := range argv {
		if k != "dir" {
			return nil, fmt.Errorf("unknown argument for textfile collector: %s", k)
		}
		dir = v
	}

	return dir, nil
}

func collect(s sink.Sink, ctxPtr any) {
	dir, _ := ctxPtr.(string)
	if dir == "" {
		dir = defaultDir
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	sawError := false
	for _, e := range entries {
		name := e.Name()
		if len(name) < 6 || !strings.HasSuffix(name, ".prom") {
			continue
		}

		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			sawError = true
			continue
		}

		s.EmitRaw(b)
		if len(b) == 0 || b[len(b)-1] != '\n' {
			s.EmitRaw([]byte{'\n'})
		}
	}

	if sawError {
		s.Emit("node_textfile_scrape_error", nil, 1.0)
	} else {
		s.Emit("node_textfile_scrape_error", nil, 0.0)
	}
}
