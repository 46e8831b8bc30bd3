package tracepoint

import (
	"github.com/thorn-jmh/errorst"
)

// Registry is the complete generation input: every header, forward
// declaration and tracepoint, in declaration order. It is populated once
// per run and handed to the engine unchanged.
type Registry struct {
	prefix string

	headers      []Header
	forwardDecls []ForwardDecl
	tracepoints  []Tracepoint
	byName       map[string]int

	defaultEnabled []string
}

// NewRegistry returns an empty registry. prefix is prepended to derived
// perfetto export names ("tu" -> "tu_start_blit").
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		byName: make(map[string]int),
	}
}

// AddHeader records an include for the generated code. Duplicate includes
// are the engine's concern, not the model's.
func (r *Registry) AddHeader(path string, scope HeaderScope) {
	r.headers = append(r.headers, Header{Path: path, Scope: scope})
}

// AddForwardDecl records a forward declaration emitted into the generated
// header.
func (r *Registry) AddForwardDecl(decl string) {
	r.forwardDecls = append(r.forwardDecls, ForwardDecl{Decl: decl})
}

// AddTracepoint appends a fully formed tracepoint. The name must be unique
// across the registry: the engine derives C symbols from it, and a
// collision here would otherwise surface as a duplicate-symbol build
// failure downstream.
func (r *Registry) AddTracepoint(tp Tracepoint) error {
	if err := validateTracepoint(tp); err != nil {
		return errorst.Wrap(err, "tracepoint <%s>", tp.Name)
	}
	if _, ok := r.byName[tp.Name]; ok {
		return errorst.Wrap(ErrDuplicateName, "tracepoint <%s>", tp.Name)
	}
	r.byName[tp.Name] = len(r.tracepoints)
	r.tracepoints = append(r.tracepoints, tp)
	return nil
}

// Headers returns the registered includes in declaration order.
func (r *Registry) Headers() []Header { return r.headers }

// ForwardDecls returns the registered forward declarations in declaration
// order.
func (r *Registry) ForwardDecls() []ForwardDecl { return r.forwardDecls }

// Tracepoints returns the registered tracepoints in declaration order.
func (r *Registry) Tracepoints() []Tracepoint { return r.tracepoints }

// Prefix returns the perfetto export-name prefix.
func (r *Registry) Prefix() string { return r.prefix }

// DefaultEnabled returns the toggle names enabled when the generated
// toggle system initializes, in declaration order.
func (r *Registry) DefaultEnabled() []string { return r.defaultEnabled }

// ToggleNames returns every distinct toggle name, in first-declaration
// order.
func (r *Registry) ToggleNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, tp := range r.tracepoints {
		if tp.ToggleName == "" || seen[tp.ToggleName] {
			continue
		}
		seen[tp.ToggleName] = true
		names = append(names, tp.ToggleName)
	}
	return names
}

func validateTracepoint(tp Tracepoint) error {
	if tp.Name == "" {
		return errorst.Wrap(ErrBadArg, "tracepoint name is empty")
	}
	if len(tp.Args) > 0 && len(tp.StructArgs) > 0 {
		return ErrConflictingCapture
	}
	seen := make(map[string]bool)
	for _, a := range tp.Fields() {
		if err := validateArg(a); err != nil {
			return err
		}
		if seen[a.FieldName()] {
			return errorst.Wrap(ErrBadArg, "duplicate arg name <%s>", a.FieldName())
		}
		seen[a.FieldName()] = true
	}
	return nil
}

func validateArg(a Arg) error {
	if a.Type == "" {
		return errorst.Wrap(ErrBadArg, "arg <%s> has no type", a.FieldName())
	}
	if a.Var == "" {
		return errorst.Wrap(ErrBadArg, "arg <%s> has no capture expression", a.Name)
	}
	// The format always describes the printable value. With a conversion
	// in play the raw type says nothing about it, so the format must be
	// spelled out.
	if a.CFormat == "" {
		return errorst.Wrap(ErrBadArg, "arg <%s> has no format specifier", a.FieldName())
	}
	return nil
}
