package tracegen

// Template names double as override file basenames in Options.TemplateDir
// (e.g. utrace_src.tmpl).
const (
	tmplUtraceSrc   = "utrace_src"
	tmplUtraceHdr   = "utrace_hdr"
	tmplPerfettoHdr = "perfetto_hdr"
)

var builtinTemplates = map[string]string{
	tmplUtraceSrc:   utraceSrcTemplate,
	tmplUtraceHdr:   utraceHdrTemplate,
	tmplPerfettoHdr: perfettoHdrTemplate,
}

const utraceHdrTemplate = `/* Generated code, do not edit. */

#ifndef {{ .Guard }}
#define {{ .Guard }}

#include "util/perf/u_trace.h"

{{ range .PublicHeaders }}#include "{{ . }}"
{{ end }}
#ifdef __cplusplus
extern "C" {
#endif

{{ range .ForwardDecls }}{{ . }};
{{ end }}{{ if .Toggles }}
enum {{ .ToggleName }}_flag {
{{ range .Toggles }}   {{ .Macro }} = 1ull << {{ .Bit }},
{{ end }}};

extern uint64_t {{ .ToggleName }};

void {{ .ToggleName }}_config_variable(void);
{{ end }}{{ range .Tracepoints }}
struct {{ .StructName }} {
{{ if .Fields }}{{ range .Fields }}   {{ .Type }} {{ .Name }};
{{ end }}{{ else }}   uint8_t dummy; /* empty payloads still occupy a slot */
{{ end }}};

void {{ .EmitName }}(struct u_trace *ut, {{ $.CtxParam }}{{ .CallParams }});

static inline void trace_{{ .Name }}(struct u_trace *ut, {{ $.CtxParam }}{{ .CallParams }})
{
{{ if .ToggleMacro }}   if (likely(!({{ $.ToggleName }} & {{ .ToggleMacro }})))
      return;
{{ end }}   {{ .EmitName }}(ut, {{ $.CtxName }}{{ .CallArgs }});
}
{{ end }}
#ifdef __cplusplus
}
#endif

#endif /* {{ .Guard }} */
`

const utraceSrcTemplate = `/* Generated code, do not edit. */

#include "{{ .HdrName }}"

{{ range .SourceHeaders }}#include "{{ . }}"
{{ end }}{{ if .Toggles }}
uint64_t {{ .ToggleName }} = 0;

/* default enabled: {{ .DefaultNames }} */
void {{ .ToggleName }}_config_variable(void)
{
   {{ .ToggleName }} = {{ .DefaultMask }};
}
{{ end }}{{ range .Tracepoints }}
static void {{ .PrintName }}(FILE *out, const void *arg)
{
{{ if .HasPayload }}   const struct {{ .StructName }} *__entry =
      (const struct {{ .StructName }} *)arg;
   fprintf(out, "{{ .PrintFormat }}\n"{{ .PrintArgs }});
{{ else }}   (void)arg;
   fprintf(out, "\n");
{{ end }}}

static const struct u_tracepoint __tp_{{ .Name }} = {
   ALIGN_POT(sizeof(struct {{ .StructName }}), 8),
   "{{ .Name }}",
   {{ .PrintName }},
};

void {{ .EmitName }}(struct u_trace *ut, {{ $.CtxParam }}{{ .CallParams }})
{
   struct {{ .StructName }} *__entry =
      (struct {{ .StructName }} *)u_trace_append(ut, {{ $.CtxName }}, &__tp_{{ .Name }});
{{ if .Assignments }}{{ range .Assignments }}   {{ . }}
{{ end }}{{ else }}   (void)__entry;
{{ end }}}
{{ end }}`

const perfettoHdrTemplate = `/* Generated code, do not edit. */

#ifndef {{ .Guard }}
#define {{ .Guard }}

/* Track-event export metadata: one entry per emission point, named after
 * the exported track event and carrying the shared enable toggle.
 */

struct {{ .Prefix }}_perfetto_event {
   const char *tracepoint;
   const char *track_event;
   const char *toggle;
};

static const struct {{ .Prefix }}_perfetto_event {{ .Prefix }}_perfetto_events[] = {
{{ range .Tracepoints }}   { "{{ .Name }}", "{{ .PerfettoName }}", "{{ .Toggle }}" },
{{ end }}};

{{ range .Tracepoints }}#define {{ .PerfettoName }}_EVENT "{{ .PerfettoClass }}"
{{ end }}
#endif /* {{ .Guard }} */
`
