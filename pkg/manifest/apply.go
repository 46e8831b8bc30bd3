package manifest

import (
	"github.com/thorn-jmh/errorst"
	"tracegen/pkg/tracepoint"
)

// Apply registers everything the manifest declares into reg, in file
// order. It stops at the first configuration error; declarations before
// the failing one stay registered, the failing one registers nothing.
func (m *Manifest) Apply(reg *tracepoint.Registry) error {
	for _, h := range m.Headers {
		scope, err := headerScope(h.Scope)
		if err != nil {
			return errorst.Wrap(err, "header <%s>", h.Path)
		}
		reg.AddHeader(h.Path, scope)
	}

	for _, fd := range m.ForwardDecls {
		reg.AddForwardDecl(fd)
	}

	for _, ev := range m.Events {
		decl := tracepoint.ScopedEvent{
			Name:            ev.Name,
			Params:          params(ev.Params),
			Args:            args(ev.Args),
			StructArgs:      args(ev.StructArgs),
			Print:           ev.Print,
			DefaultDisabled: ev.Disabled,
		}
		if err := reg.DeclareScopedEvent(decl); err != nil {
			return errorst.Wrap(err, "manifest event <%s>", ev.Name)
		}
	}

	for _, pt := range m.Tracepoints {
		decl := tracepoint.Tracepoint{
			Name:         pt.Name,
			ToggleName:   pt.Toggle,
			Params:       params(pt.Params),
			Args:         args(pt.Args),
			StructArgs:   args(pt.StructArgs),
			Print:        pt.Print,
			PerfettoName: pt.Perfetto,
		}
		if err := reg.AddTracepoint(decl); err != nil {
			return errorst.Wrap(err, "manifest tracepoint <%s>", pt.Name)
		}
	}

	return nil
}

func headerScope(s string) (tracepoint.HeaderScope, error) {
	switch s {
	case "", "header":
		return tracepoint.ScopeHeader, nil
	case "source":
		return tracepoint.ScopeSource, nil
	default:
		return "", errorst.Wrap(ErrBadScope, "scope <%s>", s)
	}
}

func params(decls []ParamDecl) []tracepoint.StructParam {
	var out []tracepoint.StructParam
	for _, p := range decls {
		out = append(out, tracepoint.StructParam{Type: p.Type, Var: p.Var})
	}
	return out
}

func args(decls []ArgDecl) []tracepoint.Arg {
	var out []tracepoint.Arg
	for _, a := range decls {
		out = append(out, tracepoint.Arg{
			Type:       a.Type,
			Var:        a.Var,
			Name:       a.Name,
			CFormat:    a.Format,
			ToPrimType: a.ToPrim,
		})
	}
	return out
}
