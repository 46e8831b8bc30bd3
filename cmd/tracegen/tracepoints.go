package main

import (
	"github.com/thorn-jmh/errorst"
	"tracegen/pkg/tracepoint"
)

// Generation contract for the freedreno Vulkan driver.
const (
	ctxParam       = "struct tu_device *dev"
	toggleName     = "tu_gpu_tracepoint"
	perfettoPrefix = "tu"
)

const vkFormatName = "vk_format_description({})->short_name"

// gpuEvents is the tracepoint table: one scoped event per bracketed GPU
// operation, start/end pairs derived from each entry. All events are
// enabled by default.
var gpuEvents = []tracepoint.ScopedEvent{
	{
		Name: "render_pass",
		Params: []tracepoint.StructParam{
			{Type: "const struct tu_framebuffer *", Var: "fb"},
		},
		StructArgs: []tracepoint.Arg{
			{Type: "uint16_t", Name: "width", Var: "fb->width", CFormat: "%u"},
			{Type: "uint16_t", Name: "height", Var: "fb->height", CFormat: "%u"},
			{Type: "uint8_t", Name: "MRTs", Var: "fb->attachment_count", CFormat: "%u"},
			{Type: "uint16_t", Name: "numberOfBins", Var: "fb->tile_count.width * fb->tile_count.height", CFormat: "%u"},
			{Type: "uint16_t", Name: "binWidth", Var: "fb->tile0.width", CFormat: "%u"},
			{Type: "uint16_t", Name: "binHeight", Var: "fb->tile0.height", CFormat: "%u"},
		},
	},
	{Name: "binning_ib"},
	{Name: "draw_ib_sysmem"},
	{Name: "draw_ib_gmem"},
	{
		Name: "gmem_clear",
		Args: []tracepoint.Arg{
			{Type: "enum VkFormat", Var: "format", CFormat: "%s", ToPrimType: vkFormatName},
			{Type: "uint8_t", Var: "samples", CFormat: "%u"},
		},
	},
	{
		Name: "sysmem_clear",
		Args: []tracepoint.Arg{
			{Type: "enum VkFormat", Var: "format", CFormat: "%s", ToPrimType: vkFormatName},
			{Type: "uint8_t", Var: "uses_3d_ops", CFormat: "%u"},
			{Type: "uint8_t", Var: "samples", CFormat: "%u"},
		},
	},
	{
		Name: "sysmem_clear_all",
		Args: []tracepoint.Arg{
			{Type: "uint8_t", Var: "mrt_count", CFormat: "%u"},
			{Type: "uint8_t", Var: "rect_count", CFormat: "%u"},
		},
	},
	{
		Name: "gmem_load",
		Args: []tracepoint.Arg{
			{Type: "enum VkFormat", Var: "format", CFormat: "%s", ToPrimType: vkFormatName},
			{Type: "uint8_t", Var: "force_load", CFormat: "%u"},
		},
	},
	{
		Name: "gmem_store",
		Args: []tracepoint.Arg{
			{Type: "enum VkFormat", Var: "format", CFormat: "%s", ToPrimType: vkFormatName},
			{Type: "uint8_t", Var: "fast_path", CFormat: "%u"},
			{Type: "uint8_t", Var: "unaligned", CFormat: "%u"},
		},
	},
	{
		Name: "sysmem_resolve",
		Args: []tracepoint.Arg{
			{Type: "enum VkFormat", Var: "format", CFormat: "%s", ToPrimType: vkFormatName},
		},
	},
	{
		// TODO: add source and target megapixel count arguments
		Name: "blit",
		Args: []tracepoint.Arg{
			{Type: "uint8_t", Var: "uses_3d_blit", CFormat: "%u"},
			{Type: "enum VkFormat", Var: "src_format", CFormat: "%s", ToPrimType: vkFormatName},
			{Type: "enum VkFormat", Var: "dst_format", CFormat: "%s", ToPrimType: vkFormatName},
			{Type: "uint8_t", Var: "layers", CFormat: "%u"},
		},
	},
	{
		Name: "compute",
		Args: []tracepoint.Arg{
			{Type: "uint8_t", Var: "indirect", CFormat: "%u"},
			{Type: "uint16_t", Var: "local_size_x", CFormat: "%u"},
			{Type: "uint16_t", Var: "local_size_y", CFormat: "%u"},
			{Type: "uint16_t", Var: "local_size_z", CFormat: "%u"},
			{Type: "uint16_t", Var: "num_groups_x", CFormat: "%u"},
			{Type: "uint16_t", Var: "num_groups_y", CFormat: "%u"},
			{Type: "uint16_t", Var: "num_groups_z", CFormat: "%u"},
		},
	},
}

func buildRegistry() (*tracepoint.Registry, error) {
	reg := tracepoint.NewRegistry(perfettoPrefix)

	reg.AddHeader("util/u_dump.h", tracepoint.ScopeHeader)
	reg.AddHeader("vk_format.h", tracepoint.ScopeHeader)
	reg.AddHeader("freedreno/vulkan/tu_private.h", tracepoint.ScopeSource)
	reg.AddForwardDecl("struct tu_device")

	for _, ev := range gpuEvents {
		if err := reg.DeclareScopedEvent(ev); err != nil {
			return nil, errorst.Wrap(err, "failed to declare scoped event <%s>", ev.Name)
		}
	}
	return reg, nil
}
