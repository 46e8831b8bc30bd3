package tracegen

import (
	"github.com/dave/jennifer/jen"
	"github.com/thorn-jmh/errorst"
	"tracegen/pkg/tracepoint"
)

// generateDecoder emits a Go descriptor file for trace post-processing
// tools: one entry per tracepoint with the record layout and the deferred
// formatting directives, so a consumer can decode and print raw records
// without the driver sources.
func generateDecoder(reg *tracepoint.Registry, opts Options) error {
	pkg := opts.DecoderPackage
	if pkg == "" {
		pkg = "tracedecode"
	}

	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by tracegen. DO NOT EDIT.")

	// first declare the descriptor types
	f.Line().Comment("Field is one value stored in a trace record.")
	f.Type().Id("Field").Struct(
		jen.Id("Name").String(),
		jen.Id("CType").String(),
		jen.Id("Format").String().Comment("printf specifier for the printable value"),
		jen.Id("Conv").String().Comment("conversion to printable form, {} is the stored value"),
	)

	f.Line().Comment("Event is one emission point of the instrumented driver.")
	f.Type().Id("Event").Struct(
		jen.Id("Name").String(),
		jen.Id("Toggle").String(),
		jen.Id("TrackEvent").String(),
		jen.Id("Fields").Index().Id("Field"),
	)

	// second declare track event name constants
	f.Line().Comment("exported track event names")
	var consts []jen.Code
	for _, tp := range reg.Tracepoints() {
		if tp.PerfettoName == "" {
			continue
		}
		consts = append(consts,
			jen.Id(BigCamelStyle(tp.PerfettoName)).Op("=").Lit(tp.PerfettoName))
	}
	if len(consts) > 0 {
		f.Const().Defs(consts...)
	}

	// third declare the event table, in declaration order
	var events []jen.Code
	for _, tp := range reg.Tracepoints() {
		var fields []jen.Code
		for _, a := range tp.Fields() {
			fields = append(fields, jen.Values(jen.Dict{
				jen.Id("Name"):   jen.Lit(a.FieldName()),
				jen.Id("CType"):  jen.Lit(a.Type),
				jen.Id("Format"): jen.Lit(a.CFormat),
				jen.Id("Conv"):   jen.Lit(a.ToPrimType),
			}))
		}
		entry := jen.Dict{
			jen.Id("Name"):       jen.Lit(tp.Name),
			jen.Id("Toggle"):     jen.Lit(tp.ToggleName),
			jen.Id("TrackEvent"): jen.Lit(tp.PerfettoName),
		}
		if len(fields) > 0 {
			entry[jen.Id("Fields")] = jen.Index().Id("Field").Values(fields...)
		}
		events = append(events, jen.Values(entry))
	}
	f.Line().Comment("Events lists every tracepoint in declaration order.")
	f.Var().Id("Events").Op("=").Index().Id("Event").Values(events...)

	if err := f.Save(opts.DecoderPath); err != nil {
		return errorst.NewError("failed to save decoder file: %w", err)
	}
	return nil
}
