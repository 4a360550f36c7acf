package pngb

import (
	"github.com/HugoDaniel/pngine-sub011/auxtable"
	"github.com/HugoDaniel/pngine-sub011/bytecode"
	"github.com/HugoDaniel/pngine-sub011/datasection"
	"github.com/HugoDaniel/pngine-sub011/internal/options"
	"github.com/HugoDaniel/pngine-sub011/strtab"
	"github.com/HugoDaniel/pngine-sub011/wgsl"
)

// Builder owns C2-C6 plus the two auxiliary tables and finalizes them into a
// single PNGB v5 buffer (spec.md §4.6 "Builder (C7 public API)"). The
// builder is not safe for concurrent use by multiple goroutines, matching
// the single-threaded, no-ambient-state contract of spec.md §5.
type Builder struct {
	strings   *strtab.Table
	data      *datasection.Section
	wgslTable *wgsl.Table
	uniform   *auxtable.Table
	animation *auxtable.Table
	emitter   *bytecode.Emitter
}

// NewBuilder creates an empty builder ready to be populated.
func NewBuilder() (*Builder, error) {
	emitter, err := bytecode.NewEmitter()
	if err != nil {
		return nil, err
	}
	return &Builder{
		strings:   strtab.New(),
		data:      datasection.New(),
		wgslTable: wgsl.New(),
		uniform:   auxtable.New(),
		animation: auxtable.New(),
		emitter:   emitter,
	}, nil
}

// InternString interns s into the builder's string table.
func (b *Builder) InternString(s []byte) (strtab.Id, error) {
	return b.strings.Intern(s)
}

// AddData appends bytes as a new data-section blob.
func (b *Builder) AddData(data []byte) (datasection.Id, error) {
	return b.data.Add(data)
}

// AddWgsl appends a WGSL dependency entry.
func (b *Builder) AddWgsl(dataID uint16, deps []uint16) (wgsl.Id, error) {
	return b.wgslTable.Add(dataID, deps)
}

// Emitter returns the builder's bytecode emitter.
func (b *Builder) Emitter() *bytecode.Emitter {
	return b.emitter
}

// UniformTable returns the builder's opaque uniform metadata table.
func (b *Builder) UniformTable() *auxtable.Table {
	return b.uniform
}

// AnimationTable returns the builder's opaque animation metadata table.
func (b *Builder) AnimationTable() *auxtable.Table {
	return b.animation
}

// finalizeConfig holds finalize_with_options's parameters (spec.md §4.6).
type finalizeConfig struct {
	executor []byte
	plugins  uint8
}

// FinalizeOption configures Builder.FinalizeWithOptions.
type FinalizeOption = options.Option[*finalizeConfig]

// WithExecutor embeds wasmBytes as the container's WASM executor, setting
// the has_embedded_executor flag.
func WithExecutor(wasmBytes []byte) FinalizeOption {
	return options.NoError(func(c *finalizeConfig) {
		c.executor = wasmBytes
	})
}

// WithPlugins sets the replay-engine plugin bits beyond the always-set core
// bit (spec.md §4.6 "Plugin bitfield").
func WithPlugins(bits uint8) FinalizeOption {
	return options.NoError(func(c *finalizeConfig) {
		c.plugins = bits
	})
}

// Finalize serializes the builder's state into a PNGB v5 buffer with no
// embedded executor and the core-only plugin bitfield.
func (b *Builder) Finalize() ([]byte, error) {
	return b.FinalizeWithOptions()
}

// FinalizeWithOptions serializes the builder's state into a PNGB v5 buffer,
// applying opts (embedded executor, plugin bitfield). Section order and
// offset computation follow spec.md §4.6 exactly: header, optional
// executor, bytecode, string table, data section, WGSL table, uniform
// table, animation table.
func (b *Builder) FinalizeWithOptions(opts ...FinalizeOption) ([]byte, error) {
	cfg := &finalizeConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	bytecodeBytes := b.emitter.Bytes()
	stringsBytes := b.strings.Serialize()
	dataBytes := b.data.Serialize()
	wgslBytes := b.wgslTable.Serialize()
	uniformBytes := b.uniform.Bytes()
	animationBytes := b.animation.Bytes()

	var flags uint16
	var executorOffset, executorLength uint32
	bytecodeStart := uint32(HeaderSize)
	if len(cfg.executor) > 0 {
		flags |= FlagHasEmbeddedExecutor
		executorOffset = HeaderSize
		executorLength = uint32(len(cfg.executor))
		bytecodeStart = executorOffset + executorLength
	}
	if !b.animation.IsEmpty() {
		flags |= FlagHasAnimationTable
	}

	stringTableOffset := bytecodeStart + uint32(len(bytecodeBytes))
	dataSectionOffset := stringTableOffset + uint32(len(stringsBytes))
	wgslTableOffset := dataSectionOffset + uint32(len(dataBytes))
	uniformTableOffset := wgslTableOffset + uint32(len(wgslBytes))
	animationTableOffset := uniformTableOffset + uint32(len(uniformBytes))

	header := Header{
		Version:              CurrentVersion,
		Flags:                flags,
		Plugins:              PluginCore | cfg.plugins,
		ExecutorOffset:       executorOffset,
		ExecutorLength:       executorLength,
		StringTableOffset:    stringTableOffset,
		DataSectionOffset:    dataSectionOffset,
		WgslTableOffset:      wgslTableOffset,
		UniformTableOffset:   uniformTableOffset,
		AnimationTableOffset: animationTableOffset,
	}

	out := make([]byte, 0, animationTableOffset+uint32(len(animationBytes)))
	out = append(out, header.Bytes()...)
	out = append(out, cfg.executor...)
	out = append(out, bytecodeBytes...)
	out = append(out, stringsBytes...)
	out = append(out, dataBytes...)
	out = append(out, wgslBytes...)
	out = append(out, uniformBytes...)
	out = append(out, animationBytes...)

	return out, nil
}
