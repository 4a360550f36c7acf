package pngb

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFinalizeEmptyModule(t *testing.T) {
	// spec.md S1: (module "test") assembles to a buffer whose first four
	// bytes are 50 4E 47 42, version 05 00, string_table_offset = 40, one
	// interned string "test".
	b, err := NewBuilder()
	require.NoError(t, err)

	_, err = b.InternString([]byte("test"))
	require.NoError(t, err)

	buf, err := b.Finalize()
	require.NoError(t, err)

	require.Equal(t, []byte{0x50, 0x4E, 0x47, 0x42}, buf[0:4])
	require.Equal(t, uint16(5), binary.LittleEndian.Uint16(buf[4:6]))
	require.Equal(t, uint32(40), binary.LittleEndian.Uint32(buf[20:24]))

	m, err := Decode(buf)
	require.NoError(t, err)
	require.Equal(t, uint16(1), m.Strings.Count())
	got, ok := m.Strings.Get(0)
	require.True(t, ok)
	require.Equal(t, "test", string(got))
}

func TestFinalizeDataBlob(t *testing.T) {
	// spec.md S2: (module "t" (data $d:0 "hello world")) -> one data entry
	// of exactly 11 bytes equal to "hello world".
	b, err := NewBuilder()
	require.NoError(t, err)

	_, err = b.InternString([]byte("t"))
	require.NoError(t, err)
	_, err = b.AddData([]byte("hello world"))
	require.NoError(t, err)

	buf, err := b.Finalize()
	require.NoError(t, err)

	m, err := Decode(buf)
	require.NoError(t, err)
	require.Equal(t, uint16(1), m.Data.Count())
	got, ok := m.Data.Get(0)
	require.True(t, ok)
	require.Len(t, got, 11)
	require.Equal(t, "hello world", string(got))
}

func TestFinalizeWithOptionsEmbeddedExecutor(t *testing.T) {
	// spec.md S5: an 8-byte executor and plugins {render, compute} yields
	// flags bit 0 set, plugins bits 0,1,2 set, and bytes 40..48 equal to the
	// executor.
	b, err := NewBuilder()
	require.NoError(t, err)

	executor := []byte{0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00}
	buf, err := b.FinalizeWithOptions(
		WithExecutor(executor),
		WithPlugins(PluginRender|PluginCompute),
	)
	require.NoError(t, err)

	flags := binary.LittleEndian.Uint16(buf[6:8])
	require.NotZero(t, flags&FlagHasEmbeddedExecutor)

	plugins := buf[8]
	require.Equal(t, PluginCore|PluginRender|PluginCompute, plugins)

	require.Equal(t, executor, buf[40:48])
}

func TestFinalizeOffsetMonotonicity(t *testing.T) {
	// spec.md §8 property 7: header offset monotonicity.
	b, err := NewBuilder()
	require.NoError(t, err)

	_, err = b.InternString([]byte("alpha"))
	require.NoError(t, err)
	_, err = b.AddData([]byte("some data blob"))
	require.NoError(t, err)
	_, err = b.AddWgsl(0, nil)
	require.NoError(t, err)
	require.NoError(t, b.Emitter().Submit())

	buf, err := b.Finalize()
	require.NoError(t, err)

	header, _, err := parseHeader(buf)
	require.NoError(t, err)

	bytecodeStart := header.BytecodeStart()
	require.LessOrEqual(t, bytecodeStart, header.StringTableOffset)
	require.LessOrEqual(t, header.StringTableOffset, header.DataSectionOffset)
	require.LessOrEqual(t, header.DataSectionOffset, header.WgslTableOffset)
	require.LessOrEqual(t, header.WgslTableOffset, header.UniformTableOffset)
	require.LessOrEqual(t, header.UniformTableOffset, header.AnimationTableOffset)
	require.LessOrEqual(t, header.AnimationTableOffset, uint32(len(buf)))
}

func TestFinalizeRoundTrip(t *testing.T) {
	// spec.md §8 property 4: container roundtrip.
	b, err := NewBuilder()
	require.NoError(t, err)

	_, err = b.InternString([]byte("a"))
	require.NoError(t, err)
	_, err = b.InternString([]byte("b"))
	require.NoError(t, err)
	_, err = b.AddData([]byte{1, 2, 3})
	require.NoError(t, err)
	_, err = b.AddWgsl(0, []uint16{})
	require.NoError(t, err)
	require.NoError(t, b.Emitter().Draw(3, 1, 0, 0))
	require.NoError(t, b.Emitter().Submit())

	buf, err := b.Finalize()
	require.NoError(t, err)

	m, err := Decode(buf)
	require.NoError(t, err)

	require.Equal(t, uint16(2), m.Strings.Count())
	s0, _ := m.Strings.Get(0)
	s1, _ := m.Strings.Get(1)
	require.Equal(t, "a", string(s0))
	require.Equal(t, "b", string(s1))

	require.Equal(t, uint16(1), m.Data.Count())
	blob, _ := m.Data.Get(0)
	require.Equal(t, []byte{1, 2, 3}, blob)

	require.Equal(t, 1, m.Wgsl.Count())

	require.Equal(t, []byte{0x16, 0x03, 0x01, 0x00, 0x00, 0x24}, m.Bytecode)
}
