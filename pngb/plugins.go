package pngb

// Plugin bitfield bits (spec.md §4.6 "Plugin bitfield"). Bit 0 (core) is
// always set on any container this package encodes; bits 6-7 are reserved.
const (
	PluginCore      uint8 = 1 << 0
	PluginRender    uint8 = 1 << 1
	PluginCompute   uint8 = 1 << 2
	PluginWasm      uint8 = 1 << 3
	PluginAnimation uint8 = 1 << 4
	PluginTexture   uint8 = 1 << 5
)

// HasCore reports whether the core bit is set. It is always true for any
// container this package produced and for a promoted v4 header; Decode takes
// a v5 header's plugin byte as it is and does not check the core bit.
func (m *Module) HasCore() bool { return m.Header.Plugins&PluginCore != 0 }

// HasRender reports whether the render plugin bit is set.
func (m *Module) HasRender() bool { return m.Header.Plugins&PluginRender != 0 }

// HasCompute reports whether the compute plugin bit is set.
func (m *Module) HasCompute() bool { return m.Header.Plugins&PluginCompute != 0 }

// HasWasm reports whether the wasm plugin bit is set.
func (m *Module) HasWasm() bool { return m.Header.Plugins&PluginWasm != 0 }

// HasAnimation reports whether the animation plugin bit is set.
func (m *Module) HasAnimation() bool { return m.Header.Plugins&PluginAnimation != 0 }

// HasTexture reports whether the texture plugin bit is set.
func (m *Module) HasTexture() bool { return m.Header.Plugins&PluginTexture != 0 }

// Plugins lists the mnemonic names of every set plugin bit, core first, in
// ascending bit order. Used by `pngc dump` to render a human-readable
// summary of a decoded container (SPEC_FULL.md §5).
func (m *Module) Plugins() []string {
	var out []string
	if m.HasCore() {
		out = append(out, "core")
	}
	if m.HasRender() {
		out = append(out, "render")
	}
	if m.HasCompute() {
		out = append(out, "compute")
	}
	if m.HasWasm() {
		out = append(out, "wasm")
	}
	if m.HasAnimation() {
		out = append(out, "animation")
	}
	if m.HasTexture() {
		out = append(out, "texture")
	}
	return out
}
