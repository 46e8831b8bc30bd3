package tracepoint

import "strings"

// >>>>>>>>>>>> this used to describe the generation input >>>>>>>>>>>>>>>

// HeaderScope controls which generated artifact a header is included from.
type HeaderScope string

const (
	// ScopeHeader puts the include into the generated header, visible to
	// every caller of the instrumentation API.
	ScopeHeader HeaderScope = "header"
	// ScopeSource keeps the include private to the generated source file.
	ScopeSource HeaderScope = "source"
)

// Header is one include the generated code depends on.
type Header struct {
	Path  string
	Scope HeaderScope
}

// ForwardDecl is a type forward-declared so generated signatures can
// reference it without pulling in its defining header.
type ForwardDecl struct {
	Decl string
}

// Arg is a single value captured when a tracepoint fires.
//
// Var is the expression evaluated at the call site to read the live value,
// CFormat the printf specifier used when the record is formatted. Both are
// opaque to the model and passed through to the engine verbatim.
type Arg struct {
	Type string // declared C type of the stored value
	Var  string // capture expression
	Name string // record field name, defaults to Var

	// ToPrimType converts the stored value to a printable primitive at
	// formatting time, never at capture time. "{}" marks where the stored
	// value is substituted. When set, CFormat describes the converted
	// value, not the raw one.
	ToPrimType string
	CFormat    string
}

// FieldName returns the record field name for the argument.
func (a Arg) FieldName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Var
}

// PrimValue returns the expression that yields the printable value for
// expr, applying the conversion when one is declared.
func (a Arg) PrimValue(expr string) string {
	if a.ToPrimType == "" {
		return expr
	}
	return strings.ReplaceAll(a.ToPrimType, "{}", expr)
}

// StructParam is a record-source parameter: a value passed into the
// emission call so struct-arg capture expressions can dereference it. It is
// not captured itself.
type StructParam struct {
	Type string
	Var  string
}

// Tracepoint is one emission point in the generated code.
//
// Args and StructArgs are alternative capture strategies. Inline Args are
// both parameters of the emission call and fields of the trace record.
// StructArgs capture into a fixed-layout record through expressions over
// Params, deferring all formatting to trace-consumption time; the emission
// call then does flat value copies only.
type Tracepoint struct {
	Name       string
	ToggleName string

	Params     []StructParam
	Args       []Arg
	StructArgs []Arg

	// PerfettoName is the export name for the track-event metadata.
	PerfettoName string

	// Print overrides the default per-field formatting: first element is
	// the format string, the rest are argument expressions.
	Print []string
}

// Fields returns the arguments stored in the trace record, whichever
// capture strategy the tracepoint uses.
func (tp Tracepoint) Fields() []Arg {
	if len(tp.StructArgs) > 0 {
		return tp.StructArgs
	}
	return tp.Args
}
