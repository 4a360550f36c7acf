// Package pngb implements the PNGB v5 container codec (C7, spec.md §4.6):
// a fixed-size header followed by ordered variable-length sections, plus the
// Builder that owns the string table, data section, WGSL table, auxiliary
// tables, and bytecode emitter and finalizes them into one buffer.
//
// The header uses fixed byte-offset fields and a Bytes()/Parse() pair, but
// PNGB's wire format is always little-endian, so there is no
// endianness-engine indirection.
package pngb

import (
	"encoding/binary"

	"github.com/HugoDaniel/pngine-sub011/errs"
)

// Magic is the container's 4-byte ASCII identifier.
const Magic = "PNGB"

const (
	// CurrentVersion is the only version this package can encode.
	CurrentVersion uint16 = 5
	// legacyVersion is accepted on decode and promoted to the v5 shape
	// (spec.md §4.6 "v4 compatibility"; §9 open question: encode is v5-only).
	legacyVersion uint16 = 4

	// HeaderSize is the fixed size of a v5 header.
	HeaderSize = 40
	// headerSizeV4 is the fixed size of a legacy v4 header.
	headerSizeV4 = 28
)

// Flag bits for Header.Flags (spec.md §4.6).
const (
	FlagHasEmbeddedExecutor uint16 = 1 << 0
	FlagHasAnimationTable   uint16 = 1 << 1
)

// Header is the container's fixed-size preamble. Every Header value handed
// to callers is already in v5 shape: Decode promotes a legacy v4 header by
// setting ExecutorLength to 0 and Plugins to PluginCore (spec.md §8 property
// 5). Version keeps the value read from the buffer, so a promoted header
// still reports 4 and headerSize uses it to locate the 28-byte v4 header's end.
type Header struct {
	Version              uint16
	Flags                uint16
	Plugins              uint8
	ExecutorOffset       uint32
	ExecutorLength       uint32
	StringTableOffset    uint32
	DataSectionOffset    uint32
	WgslTableOffset      uint32
	UniformTableOffset   uint32
	AnimationTableOffset uint32
}

// HasEmbeddedExecutor reports whether flag bit 0 is set.
func (h Header) HasEmbeddedExecutor() bool { return h.Flags&FlagHasEmbeddedExecutor != 0 }

// HasAnimationTable reports whether flag bit 1 is set.
func (h Header) HasAnimationTable() bool { return h.Flags&FlagHasAnimationTable != 0 }

// headerSize returns the on-disk size of the header this value was decoded
// from (or will be encoded as): 40 for v5, 28 for a v4 buffer promoted to
// this shape.
func (h Header) headerSize() uint32 {
	if h.Version == legacyVersion {
		return headerSizeV4
	}
	return HeaderSize
}

// BytecodeStart returns the offset at which the bytecode section begins:
// immediately after the embedded executor when one is present, otherwise
// immediately after the header (spec.md §3 Container invariant iv).
func (h Header) BytecodeStart() uint32 {
	if h.HasEmbeddedExecutor() {
		return h.ExecutorOffset + h.ExecutorLength
	}
	return h.headerSize()
}

// Bytes serializes h as a 40-byte v5 header. Reserved bytes 9-11 are always
// zero; h.Version is ignored and CurrentVersion is written instead, since
// this package only ever encodes v5 (spec.md §9 open question).
func (h Header) Bytes() []byte {
	out := make([]byte, HeaderSize)
	copy(out[0:4], Magic)
	binary.LittleEndian.PutUint16(out[4:6], CurrentVersion)
	binary.LittleEndian.PutUint16(out[6:8], h.Flags)
	out[8] = h.Plugins
	binary.LittleEndian.PutUint32(out[12:16], h.ExecutorOffset)
	binary.LittleEndian.PutUint32(out[16:20], h.ExecutorLength)
	binary.LittleEndian.PutUint32(out[20:24], h.StringTableOffset)
	binary.LittleEndian.PutUint32(out[24:28], h.DataSectionOffset)
	binary.LittleEndian.PutUint32(out[28:32], h.WgslTableOffset)
	binary.LittleEndian.PutUint32(out[32:36], h.UniformTableOffset)
	binary.LittleEndian.PutUint32(out[36:40], h.AnimationTableOffset)
	return out
}

// parseHeader reads either header shape from the front of buf, returning the
// parsed (always v5-shaped) header and the number of bytes the on-disk
// header itself occupies.
func parseHeader(buf []byte) (Header, int, error) {
	if len(buf) < 6 {
		return Header{}, 0, errs.ErrInvalidFormat
	}
	if string(buf[0:4]) != Magic {
		return Header{}, 0, errs.ErrInvalidMagic
	}

	version := binary.LittleEndian.Uint16(buf[4:6])
	switch version {
	case CurrentVersion:
		return parseHeaderV5(buf)
	case legacyVersion:
		return parseHeaderV4(buf)
	default:
		return Header{}, 0, errs.ErrUnsupportedVersion
	}
}

func parseHeaderV5(buf []byte) (Header, int, error) {
	if len(buf) < HeaderSize {
		return Header{}, 0, errs.ErrInvalidFormat
	}

	h := Header{
		Version:              CurrentVersion,
		Flags:                binary.LittleEndian.Uint16(buf[6:8]),
		Plugins:              buf[8],
		ExecutorOffset:       binary.LittleEndian.Uint32(buf[12:16]),
		ExecutorLength:       binary.LittleEndian.Uint32(buf[16:20]),
		StringTableOffset:    binary.LittleEndian.Uint32(buf[20:24]),
		DataSectionOffset:    binary.LittleEndian.Uint32(buf[24:28]),
		WgslTableOffset:      binary.LittleEndian.Uint32(buf[28:32]),
		UniformTableOffset:   binary.LittleEndian.Uint32(buf[32:36]),
		AnimationTableOffset: binary.LittleEndian.Uint32(buf[36:40]),
	}
	return h, HeaderSize, nil
}

// parseHeaderV4 reads the legacy 28-byte header (magic:4, version:2,
// reserved:2, then the five section offsets, no executor/plugins fields)
// and promotes it to v5 shape (spec.md §4.6, §8 property 5).
func parseHeaderV4(buf []byte) (Header, int, error) {
	if len(buf) < headerSizeV4 {
		return Header{}, 0, errs.ErrInvalidFormat
	}

	h := Header{
		Version:              legacyVersion,
		Flags:                0,
		Plugins:               PluginCore,
		ExecutorOffset:       0,
		ExecutorLength:       0,
		StringTableOffset:    binary.LittleEndian.Uint32(buf[8:12]),
		DataSectionOffset:    binary.LittleEndian.Uint32(buf[12:16]),
		WgslTableOffset:      binary.LittleEndian.Uint32(buf[16:20]),
		UniformTableOffset:   binary.LittleEndian.Uint32(buf[20:24]),
		AnimationTableOffset: binary.LittleEndian.Uint32(buf[24:28]),
	}
	return h, headerSizeV4, nil
}

// validate checks the structural invariants spec.md §4.6 "Validation on
// decode" names, given the total buffer length.
func (h Header) validate(bufLen int) error {
	headerSize := h.headerSize()
	bytecodeStart := h.BytecodeStart()

	offsets := []uint32{
		uint32(bytecodeStart),
		h.StringTableOffset,
		h.DataSectionOffset,
		h.WgslTableOffset,
		h.UniformTableOffset,
		h.AnimationTableOffset,
	}
	prev := uint32(headerSize)
	for _, off := range offsets {
		if off < prev || uint64(off) > uint64(bufLen) {
			return errs.ErrInvalidOffset
		}
		prev = off
	}

	if h.HasEmbeddedExecutor() {
		if h.ExecutorLength == 0 {
			return errs.ErrInvalidFormat
		}
		if uint64(h.ExecutorOffset)+uint64(h.ExecutorLength) > uint64(h.StringTableOffset) {
			return errs.ErrInvalidOffset
		}
	}

	return nil
}
