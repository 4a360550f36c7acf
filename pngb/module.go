package pngb

import (
	"github.com/HugoDaniel/pngine-sub011/auxtable"
	"github.com/HugoDaniel/pngine-sub011/datasection"
	"github.com/HugoDaniel/pngine-sub011/strtab"
	"github.com/HugoDaniel/pngine-sub011/wgsl"
)

// Module is a decoded PNGB container. Every table it holds owns independent
// memory copied out of the input buffer during Decode, so the caller may
// release the source bytes immediately afterwards (spec.md §3 Lifecycle,
// §9 "Ownership of decoded payloads").
type Module struct {
	Header Header

	Executor []byte
	Bytecode []byte

	Strings   *strtab.Table
	Data      *datasection.Section
	Wgsl      *wgsl.Table
	Uniform   *auxtable.Table
	Animation *auxtable.Table
}

// Decode parses buf into a Module, validating the header and every section
// in turn (spec.md §4.6 "Validation on decode").
func Decode(buf []byte) (*Module, error) {
	header, _, err := parseHeader(buf)
	if err != nil {
		return nil, err
	}
	if err := header.validate(len(buf)); err != nil {
		return nil, err
	}

	m := &Module{Header: header}

	if header.HasEmbeddedExecutor() {
		start, end := header.ExecutorOffset, header.ExecutorOffset+header.ExecutorLength
		m.Executor = cloneRange(buf, start, end)
	}

	bytecodeStart := header.BytecodeStart()
	m.Bytecode = cloneRange(buf, bytecodeStart, header.StringTableOffset)

	strEnd := header.DataSectionOffset
	strings, err := strtab.Deserialize(sliceRange(buf, header.StringTableOffset, strEnd))
	if err != nil {
		return nil, err
	}
	m.Strings = strings

	dataEnd := header.WgslTableOffset
	data, err := datasection.Deserialize(sliceRange(buf, header.DataSectionOffset, dataEnd))
	if err != nil {
		return nil, err
	}
	m.Data = data

	wgslEnd := header.UniformTableOffset
	wgslTable, err := wgsl.Deserialize(sliceRange(buf, header.WgslTableOffset, wgslEnd))
	if err != nil {
		return nil, err
	}
	m.Wgsl = wgslTable

	uniformEnd := header.AnimationTableOffset
	m.Uniform = auxtable.FromBytes(sliceRange(buf, header.UniformTableOffset, uniformEnd))

	m.Animation = auxtable.FromBytes(sliceRange(buf, header.AnimationTableOffset, uint32(len(buf))))

	return m, nil
}

// cloneRange returns an owned copy of buf[start:end], or an error-safe empty
// slice when the range is invalid -- callers have already validated offsets
// via header.validate, so this only guards against pathological slicing.
func cloneRange(buf []byte, start, end uint32) []byte {
	s := sliceRange(buf, start, end)
	out := make([]byte, len(s))
	copy(out, s)
	return out
}

func sliceRange(buf []byte, start, end uint32) []byte {
	if end < start || uint64(end) > uint64(len(buf)) {
		return nil
	}
	return buf[start:end]
}
