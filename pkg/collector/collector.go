// Package collector defines the collector interface and the immutable,
// process-lifetime registry of enabled collectors the scrape server
// dispatches against.
package collector

import "github.com/fis/nano-exporter/pkg/sink"

// InitFunc initializes a collector's context from its per-collector
// argument map (populated from --<name>-<argname>[=<val>] flags when the
// descriptor's HasArgs is true). A non-nil error is fatal to the
// launcher: init runs once, at startup, before the server is started.
type InitFunc func(argv map[string]string) (ctx any, err error)

// CollectFunc is invoked once per scrape for an enabled collector. It
// must not block on network I/O, must bound its own work, and must treat
// a missing or unreadable source as "no samples", never as an error.
type CollectFunc func(s sink.Sink, ctx any)

// Descriptor statically describes one collector kind.
type Descriptor struct {
	// Name identifies the collector and namespaces its CLI flags
	// (--<name>-on, --<name>-off, --<name>-<argname>).
	Name string

	// HasArgs indicates this collector accepts --<name>-<argname> flags
	// that should be routed into Init's argv map.
	HasArgs bool

	// DefaultOn records the collector's default enablement. The
	// launcher's enablement rule does not read it: with no --X-on flag
	// every collector is on, and with one only the explicitly-on ones are.
	DefaultOn bool

	// Init runs exactly once at startup for an enabled collector. May be
	// nil, in which case ctx is nil for every Collect call.
	Init InitFunc

	// Collect produces zero or more samples into s. Invoked sequentially,
	// many times over the process lifetime, never concurrently with
	// itself.
	Collect CollectFunc
}

// Enabled is one (descriptor, initialized ctx) pair in enablement order.
type Enabled struct {
	Descriptor Descriptor
	Ctx        any
}

// Registry is the immutable, ordered, process-lifetime set of enabled
// collectors built once by the launcher and handed by reference to the
// server. Collector invocation order during a scrape is this slice's
// order, and it is stable across scrapes.
type Registry struct {
	enabled []Enabled
}

// NewRegistry wraps an already-initialized, ordered slice of enabled
// collectors into an immutable Registry.
func NewRegistry(enabled []Enabled) *Registry {
	cp := make([]Enabled, len(enabled))
	copy(cp, enabled)
	return &Registry{enabled: cp}
}

// Len returns the number of enabled collectors.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.enabled)
}

// At returns the collector at enablement index i.
func (r *Registry) At(i int) Enabled {
	return r.enabled[i]
}

// Names returns the enabled collector names, in enablement order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.enabled))
	for _, e := range r.enabled {
		out = append(out, e.Descriptor.Name)
	}
	return out
}
