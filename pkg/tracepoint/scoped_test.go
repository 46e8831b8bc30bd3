package tracepoint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tracegen/pkg/tracepoint"
)

func TestDeclareScopedEventPair(t *testing.T) {
	r := tracepoint.NewRegistry("tu")

	err := r.DeclareScopedEvent(tracepoint.ScopedEvent{
		Name: "blit",
		Args: []tracepoint.Arg{
			{Type: "uint8_t", Var: "uses_3d_blit", CFormat: "%u"},
			{Type: "enum VkFormat", Var: "src_format", CFormat: "%s",
				ToPrimType: "vk_format_description({})->short_name"},
			{Type: "enum VkFormat", Var: "dst_format", CFormat: "%s",
				ToPrimType: "vk_format_description({})->short_name"},
			{Type: "uint8_t", Var: "layers", CFormat: "%u"},
		},
	})
	require.NoError(t, err)

	tps := r.Tracepoints()
	require.Len(t, tps, 2)

	start, end := tps[0], tps[1]
	assert.Equal(t, "start_blit", start.Name)
	assert.Empty(t, start.Fields())
	assert.Equal(t, "blit", start.ToggleName)
	assert.Equal(t, "tu_start_blit", start.PerfettoName)

	assert.Equal(t, "end_blit", end.Name)
	assert.Equal(t, "blit", end.ToggleName)
	assert.Equal(t, "tu_end_blit", end.PerfettoName)
	require.Len(t, end.Fields(), 4)
	assert.Equal(t, "uses_3d_blit", end.Fields()[0].FieldName())
	assert.Equal(t, "layers", end.Fields()[3].FieldName())

	assert.Equal(t, []string{"blit"}, r.DefaultEnabled())
}

func TestDeclareScopedEventNoPayload(t *testing.T) {
	r := tracepoint.NewRegistry("tu")
	require.NoError(t, r.DeclareScopedEvent(tracepoint.ScopedEvent{Name: "binning_ib"}))

	tps := r.Tracepoints()
	require.Len(t, tps, 2)
	assert.Equal(t, "start_binning_ib", tps[0].Name)
	assert.Equal(t, "end_binning_ib", tps[1].Name)
	assert.Empty(t, tps[0].Fields())
	assert.Empty(t, tps[1].Fields())
	assert.Equal(t, []string{"binning_ib"}, r.DefaultEnabled())
}

func TestDeclareScopedEventStructCapture(t *testing.T) {
	r := tracepoint.NewRegistry("tu")

	err := r.DeclareScopedEvent(tracepoint.ScopedEvent{
		Name:   "render_pass",
		Params: []tracepoint.StructParam{{Type: "const struct tu_framebuffer *", Var: "fb"}},
		StructArgs: []tracepoint.Arg{
			{Type: "uint16_t", Name: "width", Var: "fb->width", CFormat: "%u"},
			{Type: "uint16_t", Name: "height", Var: "fb->height", CFormat: "%u"},
			{Type: "uint8_t", Name: "MRTs", Var: "fb->attachment_count", CFormat: "%u"},
		},
	})
	require.NoError(t, err)

	end := r.Tracepoints()[1]
	require.Len(t, end.Params, 1)
	assert.Empty(t, end.Args)
	require.Len(t, end.StructArgs, 3)
	assert.Equal(t, "fb->attachment_count", end.StructArgs[2].Var)
}

func TestDefaultEnablementOrder(t *testing.T) {
	r := tracepoint.NewRegistry("tu")
	require.NoError(t, r.DeclareScopedEvent(tracepoint.ScopedEvent{Name: "render_pass"}))
	require.NoError(t, r.DeclareScopedEvent(tracepoint.ScopedEvent{Name: "binning_ib", DefaultDisabled: true}))
	require.NoError(t, r.DeclareScopedEvent(tracepoint.ScopedEvent{Name: "blit"}))

	assert.Equal(t, []string{"render_pass", "blit"}, r.DefaultEnabled())
}

func TestDuplicateScopedEventRegistersNeither(t *testing.T) {
	r := tracepoint.NewRegistry("tu")
	require.NoError(t, r.DeclareScopedEvent(tracepoint.ScopedEvent{Name: "compute"}))

	err := r.DeclareScopedEvent(tracepoint.ScopedEvent{
		Name: "compute",
		Args: []tracepoint.Arg{{Type: "uint8_t", Var: "indirect", CFormat: "%u"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, tracepoint.ErrDuplicateName)

	assert.Len(t, r.Tracepoints(), 2)
	assert.Equal(t, []string{"compute"}, r.DefaultEnabled())
}

func TestScopedEventCollidesWithPlainTracepoint(t *testing.T) {
	r := tracepoint.NewRegistry("tu")
	require.NoError(t, r.AddTracepoint(tracepoint.Tracepoint{Name: "start_compute"}))

	err := r.DeclareScopedEvent(tracepoint.ScopedEvent{Name: "compute"})
	require.Error(t, err)
	assert.ErrorIs(t, err, tracepoint.ErrDuplicateName)
	assert.Len(t, r.Tracepoints(), 1)
	assert.Empty(t, r.DefaultEnabled())
}

func TestScopedEventInvalidPayloadRegistersNothing(t *testing.T) {
	r := tracepoint.NewRegistry("tu")

	err := r.DeclareScopedEvent(tracepoint.ScopedEvent{
		Name: "gmem_clear",
		Args: []tracepoint.Arg{
			{Type: "enum VkFormat", Var: "format",
				ToPrimType: "vk_format_description({})->short_name"}, // no format specifier
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, tracepoint.ErrBadArg)
	assert.Empty(t, r.Tracepoints())
	assert.Empty(t, r.DefaultEnabled())
}

func TestToggleNamesRoundTrip(t *testing.T) {
	r := tracepoint.NewRegistry("tu")
	events := []string{"render_pass", "binning_ib", "gmem_clear", "blit"}
	for _, name := range events {
		require.NoError(t, r.DeclareScopedEvent(tracepoint.ScopedEvent{Name: name}))
	}

	assert.Equal(t, events, r.ToggleNames())
}
