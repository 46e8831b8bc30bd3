package manifest

// Manifest is the YAML form of a tracepoint declaration set. It maps onto
// the registry API one to one: headers and forward declarations first, then
// scoped events and plain tracepoints in file order.
type Manifest struct {
	Headers      []HeaderDecl `yaml:"headers,omitempty"`
	ForwardDecls []string     `yaml:"forward_decls,omitempty"`
	Events       []EventDecl  `yaml:"events,omitempty"`
	Tracepoints  []PointDecl  `yaml:"tracepoints,omitempty"`
}

type HeaderDecl struct {
	Path string `yaml:"path"`
	// Scope is "header" (default) or "source".
	Scope string `yaml:"scope,omitempty"`
}

type ArgDecl struct {
	Type   string `yaml:"type"`
	Var    string `yaml:"var"`
	Name   string `yaml:"name,omitempty"`
	Format string `yaml:"format"`
	// ToPrim converts the stored value to a printable primitive, "{}"
	// standing in for the value. Opaque, passed through verbatim.
	ToPrim string `yaml:"to_prim,omitempty"`
}

type ParamDecl struct {
	Type string `yaml:"type"`
	Var  string `yaml:"var"`
}

// EventDecl is one scoped event: a start/end tracepoint pair sharing a
// toggle.
type EventDecl struct {
	Name       string      `yaml:"name"`
	Params     []ParamDecl `yaml:"params,omitempty"`
	Args       []ArgDecl   `yaml:"args,omitempty"`
	StructArgs []ArgDecl   `yaml:"struct_args,omitempty"`
	Print      []string    `yaml:"print,omitempty"`
	Disabled   bool        `yaml:"disabled,omitempty"`
}

// PointDecl is one standalone tracepoint, outside any start/end pair.
type PointDecl struct {
	Name       string      `yaml:"name"`
	Toggle     string      `yaml:"toggle,omitempty"`
	Params     []ParamDecl `yaml:"params,omitempty"`
	Args       []ArgDecl   `yaml:"args,omitempty"`
	StructArgs []ArgDecl   `yaml:"struct_args,omitempty"`
	Print      []string    `yaml:"print,omitempty"`
	Perfetto   string      `yaml:"perfetto,omitempty"`
}
