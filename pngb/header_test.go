package pngb

import (
	"encoding/binary"
	"testing"

	"github.com/HugoDaniel/pngine-sub011/datasection"
	"github.com/HugoDaniel/pngine-sub011/errs"
	"github.com/HugoDaniel/pngine-sub011/strtab"
	"github.com/HugoDaniel/pngine-sub011/wgsl"
	"github.com/stretchr/testify/require"
)

func buildV4Buffer(stringTableOffset, dataOffset, wgslOffset, uniformOffset, animOffset uint32, tail []byte) []byte {
	buf := make([]byte, headerSizeV4)
	copy(buf[0:4], Magic)
	binary.LittleEndian.PutUint16(buf[4:6], legacyVersion)
	binary.LittleEndian.PutUint32(buf[8:12], stringTableOffset)
	binary.LittleEndian.PutUint32(buf[12:16], dataOffset)
	binary.LittleEndian.PutUint32(buf[16:20], wgslOffset)
	binary.LittleEndian.PutUint32(buf[20:24], uniformOffset)
	binary.LittleEndian.PutUint32(buf[24:28], animOffset)
	return append(buf, tail...)
}

func TestHeaderV4Promotion(t *testing.T) {
	// spec.md S5 / §8 property 5: a valid v4 buffer decodes to a module with
	// executor.len = 0, plugins = core_only.
	strBytes := strtab.New().Serialize()
	dataBytes := datasection.New().Serialize()
	wgslBytes := wgsl.New().Serialize()

	stringTableOffset := uint32(headerSizeV4)
	dataSectionOffset := stringTableOffset + uint32(len(strBytes))
	wgslTableOffset := dataSectionOffset + uint32(len(dataBytes))
	uniformTableOffset := wgslTableOffset + uint32(len(wgslBytes))
	animationTableOffset := uniformTableOffset

	var tail []byte
	tail = append(tail, strBytes...)
	tail = append(tail, dataBytes...)
	tail = append(tail, wgslBytes...)

	buf := buildV4Buffer(stringTableOffset, dataSectionOffset, wgslTableOffset, uniformTableOffset, animationTableOffset, tail)

	m, err := Decode(buf)
	require.NoError(t, err)
	require.Equal(t, uint32(0), m.Header.ExecutorLength)
	require.Equal(t, PluginCore, m.Header.Plugins)
	require.False(t, m.Header.HasEmbeddedExecutor())
}

func TestHeaderInvalidMagic(t *testing.T) {
	buf := make([]byte, HeaderSize)
	copy(buf[0:4], "XXXX")
	_, err := Decode(buf)
	require.ErrorIs(t, err, errs.ErrInvalidMagic)
}

func TestHeaderUnsupportedVersion(t *testing.T) {
	buf := make([]byte, HeaderSize)
	copy(buf[0:4], Magic)
	binary.LittleEndian.PutUint16(buf[4:6], 99)
	_, err := Decode(buf)
	require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
}

func TestHeaderTruncatedBuffer(t *testing.T) {
	buf := make([]byte, 10)
	copy(buf[0:4], Magic)
	binary.LittleEndian.PutUint16(buf[4:6], CurrentVersion)
	_, err := Decode(buf)
	require.ErrorIs(t, err, errs.ErrInvalidFormat)
}

func TestHeaderNonMonotonicOffsetRejected(t *testing.T) {
	h := Header{
		Version:              CurrentVersion,
		StringTableOffset:    40,
		DataSectionOffset:    30, // goes backwards: invalid
		WgslTableOffset:      50,
		UniformTableOffset:   60,
		AnimationTableOffset: 70,
	}
	err := h.validate(100)
	require.ErrorIs(t, err, errs.ErrInvalidOffset)
}

func TestHeaderExecutorFlagWithoutLengthRejected(t *testing.T) {
	h := Header{
		Version:              CurrentVersion,
		Flags:                FlagHasEmbeddedExecutor,
		ExecutorOffset:       HeaderSize,
		ExecutorLength:       0,
		StringTableOffset:    HeaderSize,
		DataSectionOffset:    HeaderSize,
		WgslTableOffset:      HeaderSize,
		UniformTableOffset:   HeaderSize,
		AnimationTableOffset: HeaderSize,
	}
	err := h.validate(200)
	require.ErrorIs(t, err, errs.ErrInvalidFormat)
}
