package tracepoint

import (
	"github.com/thorn-jmh/errorst"
)

// ScopedEvent declares one driver operation bounded by a start and an end
// tracepoint sharing a single toggle. The payload, if any, rides on the end
// tracepoint only.
type ScopedEvent struct {
	Name string

	Params     []StructParam
	Args       []Arg
	StructArgs []Arg

	Print []string

	// DefaultDisabled leaves the event's toggle off at init. Scoped
	// events are enabled by default.
	DefaultDisabled bool
}

// DeclareScopedEvent expands ev into start_<name> and end_<name>
// tracepoints. Both carry toggle name ev.Name, so enablement is atomic per
// scoped event: a consumer can never observe a start without a matching
// possible end.
//
// On error nothing is registered.
func (r *Registry) DeclareScopedEvent(ev ScopedEvent) error {
	if ev.Name == "" {
		return errorst.Wrap(ErrBadArg, "scoped event name is empty")
	}
	start := Tracepoint{
		Name:         "start_" + ev.Name,
		ToggleName:   ev.Name,
		PerfettoName: r.prefix + "_start_" + ev.Name,
	}
	end := Tracepoint{
		Name:         "end_" + ev.Name,
		ToggleName:   ev.Name,
		Params:       ev.Params,
		Args:         ev.Args,
		StructArgs:   ev.StructArgs,
		Print:        ev.Print,
		PerfettoName: r.prefix + "_end_" + ev.Name,
	}

	// Validate the whole pair before touching the registry.
	for _, tp := range []Tracepoint{start, end} {
		if err := validateTracepoint(tp); err != nil {
			return errorst.Wrap(err, "scoped event <%s>", ev.Name)
		}
		if _, ok := r.byName[tp.Name]; ok {
			return errorst.Wrap(ErrDuplicateName, "scoped event <%s>", ev.Name)
		}
	}

	if !ev.DefaultDisabled {
		r.defaultEnabled = append(r.defaultEnabled, ev.Name)
	}
	for _, tp := range []Tracepoint{start, end} {
		r.byName[tp.Name] = len(r.tracepoints)
		r.tracepoints = append(r.tracepoints, tp)
	}
	return nil
}
