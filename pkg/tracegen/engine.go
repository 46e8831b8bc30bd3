package tracegen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/thorn-jmh/errorst"
	"tracegen/pkg/tracepoint"
)

// Options is the fixed contract handed to the engine together with the
// registry, after every declaration has been registered.
type Options struct {
	SrcPath         string // instrumentation source (.c)
	HdrPath         string // instrumentation header (.h)
	PerfettoHdrPath string // track-event metadata header (.h)

	// TemplateDir optionally overrides the embedded templates; a file
	// named <template>.tmpl in it replaces the builtin of the same name.
	TemplateDir string

	CtxParam   string // context parameter, e.g. "struct tu_device *dev"
	ToggleName string // runtime toggle symbol, e.g. "tu_gpu_tracepoint"

	// DecoderPath, when set, also emits a Go descriptor file (package
	// DecoderPackage) for trace post-processing tools.
	DecoderPath    string
	DecoderPackage string
}

// Generate walks the completed registry and writes the output artifacts.
// The registry is not mutated; a failure aborts without retrying, partial
// artifacts are left for the build system to discard.
func Generate(reg *tracepoint.Registry, opts Options) error {
	if len(reg.Tracepoints()) == 0 {
		return ErrEmptyModel
	}

	model := buildModel(reg, opts)

	outputs := []struct {
		path string
		tmpl string
	}{
		{opts.HdrPath, tmplUtraceHdr},
		{opts.SrcPath, tmplUtraceSrc},
		{opts.PerfettoHdrPath, tmplPerfettoHdr},
	}
	for _, out := range outputs {
		if err := renderFile(out.path, out.tmpl, opts.TemplateDir, model); err != nil {
			return err
		}
	}

	if opts.DecoderPath != "" {
		if err := generateDecoder(reg, opts); err != nil {
			return errorst.Wrap(err, "failed to generate decoder file %s", opts.DecoderPath)
		}
	}
	return nil
}

func renderFile(path, name, overrideDir string, model *genModel) error {
	tmpl, err := loadTemplate(name, overrideDir)
	if err != nil {
		return err
	}

	model.Guard = guardMacro(path)
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, model); err != nil {
		return errorst.Wrap(ErrBadTemplate, "template <%s>: %v", name, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errorst.NewError("failed to write %s: %w", path, err)
	}
	return nil
}

func loadTemplate(name, overrideDir string) (*template.Template, error) {
	text := builtinTemplates[name]
	if overrideDir != "" {
		override := filepath.Join(overrideDir, name+".tmpl")
		if raw, err := os.ReadFile(override); err == nil {
			text = string(raw)
		} else if !os.IsNotExist(err) {
			return nil, errorst.NewError("failed to read template %s: %w", override, err)
		}
	}

	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return nil, errorst.Wrap(ErrBadTemplate, "template <%s>: %v", name, err)
	}
	return tmpl, nil
}

// >>>>>>>>>>>> template view model >>>>>>>>>>>>>>>

type genModel struct {
	Guard       string // rewritten per artifact before rendering
	HdrName     string
	CtxParam    string
	CtxName     string
	ToggleName  string
	ToggleMacro string

	Toggles      []toggleView
	DefaultMask  string
	DefaultNames string

	PublicHeaders []string
	SourceHeaders []string
	ForwardDecls  []string

	Prefix      string
	Tracepoints []pointView
}

type toggleView struct {
	Name  string
	Macro string // fully prefixed bit macro
	Bit   int
}

type fieldView struct {
	Type string
	Name string
}

type pointView struct {
	Name       string
	StructName string
	EmitName   string
	PrintName  string

	Toggle      string // toggle name, "" when always on
	ToggleMacro string // fully prefixed bit macro, "" when always on

	PerfettoName  string
	PerfettoClass string

	Fields      []fieldView
	CallParams  string // after (ut, ctx), leading comma included
	CallArgs    string
	Assignments []string

	PrintFormat string
	PrintArgs   string // leading comma included
	HasPayload  bool
}

func buildModel(reg *tracepoint.Registry, opts Options) *genModel {
	m := &genModel{
		HdrName:     filepath.Base(opts.HdrPath),
		CtxParam:    opts.CtxParam,
		CtxName:     paramName(opts.CtxParam),
		ToggleName:  opts.ToggleName,
		ToggleMacro: MacroStyle(opts.ToggleName),
		Prefix:      reg.Prefix(),
	}

	for _, h := range reg.Headers() {
		if h.Scope == tracepoint.ScopeSource {
			m.SourceHeaders = append(m.SourceHeaders, h.Path)
		} else {
			m.PublicHeaders = append(m.PublicHeaders, h.Path)
		}
	}
	for _, fd := range reg.ForwardDecls() {
		m.ForwardDecls = append(m.ForwardDecls, fd.Decl)
	}

	bits := make(map[string]toggleView)
	for i, name := range reg.ToggleNames() {
		tv := toggleView{
			Name:  name,
			Macro: m.ToggleMacro + "_" + MacroStyle(name),
			Bit:   i,
		}
		bits[name] = tv
		m.Toggles = append(m.Toggles, tv)
	}

	var mask uint64
	for _, name := range reg.DefaultEnabled() {
		if tv, ok := bits[name]; ok {
			mask |= 1 << uint(tv.Bit)
		}
	}
	m.DefaultMask = fmt.Sprintf("0x%xull", mask)
	m.DefaultNames = strings.Join(reg.DefaultEnabled(), ", ")

	for _, tp := range reg.Tracepoints() {
		m.Tracepoints = append(m.Tracepoints, buildPoint(tp, bits))
	}
	return m
}

func buildPoint(tp tracepoint.Tracepoint, bits map[string]toggleView) pointView {
	pv := pointView{
		Name:          tp.Name,
		StructName:    "trace_" + tp.Name,
		EmitName:      "__trace_" + tp.Name,
		PrintName:     "__print_" + tp.Name,
		Toggle:        tp.ToggleName,
		PerfettoName:  tp.PerfettoName,
		PerfettoClass: BigCamelStyle(tp.PerfettoName),
	}
	if tv, ok := bits[tp.ToggleName]; ok {
		pv.ToggleMacro = tv.Macro
	}

	var params, args []string
	for _, p := range tp.Params {
		params = append(params, cParam(p.Type, p.Var))
		args = append(args, p.Var)
	}
	for _, a := range tp.Args {
		params = append(params, cParam(a.Type, a.Var))
		args = append(args, a.Var)
		pv.Assignments = append(pv.Assignments,
			fmt.Sprintf("__entry->%s = %s;", a.FieldName(), a.Var))
	}
	for _, a := range tp.StructArgs {
		pv.Assignments = append(pv.Assignments,
			fmt.Sprintf("__entry->%s = %s;", a.FieldName(), a.Var))
	}
	if len(params) > 0 {
		pv.CallParams = ", " + strings.Join(params, ", ")
		pv.CallArgs = ", " + strings.Join(args, ", ")
	}

	fields := tp.Fields()
	for _, a := range fields {
		pv.Fields = append(pv.Fields, fieldView{Type: a.Type, Name: a.FieldName()})
	}
	pv.HasPayload = len(fields) > 0

	// Formatting runs at trace-consumption time only: print expressions
	// read the stored record, applying any declared conversion there.
	if len(tp.Print) > 0 {
		pv.PrintFormat = tp.Print[0]
		if len(tp.Print) > 1 {
			pv.PrintArgs = ", " + strings.Join(tp.Print[1:], ", ")
		}
	} else if pv.HasPayload {
		var specs, prims []string
		for _, a := range fields {
			specs = append(specs, a.FieldName()+"="+a.CFormat)
			prims = append(prims, a.PrimValue("__entry->"+a.FieldName()))
		}
		pv.PrintFormat = strings.Join(specs, ", ")
		pv.PrintArgs = ", " + strings.Join(prims, ", ")
	}
	return pv
}

func cParam(typ, name string) string {
	if strings.HasSuffix(typ, "*") {
		return typ + name
	}
	return typ + " " + name
}

func paramName(param string) string {
	s := param
	if i := strings.LastIndexAny(s, "* "); i >= 0 {
		s = s[i+1:]
	}
	return s
}

func guardMacro(path string) string {
	base := filepath.Base(path)
	var b strings.Builder
	b.WriteByte('_')
	for _, c := range strings.ToUpper(base) {
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
