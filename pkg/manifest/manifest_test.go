package manifest_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tracegen/pkg/manifest"
	"tracegen/pkg/tracepoint"
)

const sampleManifest = `
headers:
  - path: vk_format.h
  - path: tu_private.h
    scope: source
forward_decls:
  - struct tu_device
events:
  - name: gmem_clear
    args:
      - type: enum VkFormat
        var: format
        format: "%s"
        to_prim: vk_format_description({})->short_name
      - type: uint8_t
        var: samples
        format: "%u"
  - name: flush_queue
    disabled: true
tracepoints:
  - name: cmd_buffer_annotation
    args:
      - type: const char *
        var: str
        format: "%s"
`

func TestApplySampleManifest(t *testing.T) {
	m, err := manifest.FromYAML(strings.NewReader(sampleManifest))
	require.NoError(t, err)

	reg := tracepoint.NewRegistry("tu")
	require.NoError(t, m.Apply(reg))

	require.Len(t, reg.Headers(), 2)
	assert.Equal(t, tracepoint.ScopeSource, reg.Headers()[1].Scope)
	require.Len(t, reg.ForwardDecls(), 1)

	tps := reg.Tracepoints()
	require.Len(t, tps, 5)
	assert.Equal(t, "start_gmem_clear", tps[0].Name)
	assert.Equal(t, "end_gmem_clear", tps[1].Name)
	assert.Equal(t, "tu_end_gmem_clear", tps[1].PerfettoName)
	require.Len(t, tps[1].Fields(), 2)
	assert.Equal(t, "vk_format_description({})->short_name", tps[1].Fields()[0].ToPrimType)
	assert.Equal(t, "cmd_buffer_annotation", tps[4].Name)

	assert.Equal(t, []string{"gmem_clear"}, reg.DefaultEnabled())
}

func TestApplyMatchesDirectDeclaration(t *testing.T) {
	const src = `
events:
  - name: render_pass
    params:
      - type: const struct tu_framebuffer *
        var: fb
    struct_args:
      - type: uint16_t
        name: width
        var: fb->width
        format: "%u"
      - type: uint16_t
        name: height
        var: fb->height
        format: "%u"
`
	m, err := manifest.FromYAML(strings.NewReader(src))
	require.NoError(t, err)

	fromManifest := tracepoint.NewRegistry("tu")
	require.NoError(t, m.Apply(fromManifest))

	direct := tracepoint.NewRegistry("tu")
	require.NoError(t, direct.DeclareScopedEvent(tracepoint.ScopedEvent{
		Name:   "render_pass",
		Params: []tracepoint.StructParam{{Type: "const struct tu_framebuffer *", Var: "fb"}},
		StructArgs: []tracepoint.Arg{
			{Type: "uint16_t", Name: "width", Var: "fb->width", CFormat: "%u"},
			{Type: "uint16_t", Name: "height", Var: "fb->height", CFormat: "%u"},
		},
	}))

	assert.Equal(t, direct.Tracepoints(), fromManifest.Tracepoints())
	assert.Equal(t, direct.DefaultEnabled(), fromManifest.DefaultEnabled())
}

func TestFromYAMLRejectsUnknownFields(t *testing.T) {
	_, err := manifest.FromYAML(strings.NewReader("events:\n  - title: nope\n"))
	assert.Error(t, err)
}

func TestApplyBadScope(t *testing.T) {
	m := &manifest.Manifest{
		Headers: []manifest.HeaderDecl{{Path: "vk_format.h", Scope: "global"}},
	}
	err := m.Apply(tracepoint.NewRegistry("tu"))
	require.Error(t, err)
	assert.ErrorIs(t, err, manifest.ErrBadScope)
}

func TestApplyPropagatesConfigurationError(t *testing.T) {
	const src = `
events:
  - name: blit
    args:
      - type: uint8_t
        var: layers
        format: "%u"
    struct_args:
      - type: uint8_t
        var: layers
        format: "%u"
`
	m, err := manifest.FromYAML(strings.NewReader(src))
	require.NoError(t, err)

	reg := tracepoint.NewRegistry("tu")
	err = m.Apply(reg)
	require.Error(t, err)
	assert.ErrorIs(t, err, tracepoint.ErrConflictingCapture)
	assert.Empty(t, reg.Tracepoints())
}
