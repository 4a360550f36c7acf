package bytecode

import (
	"fmt"

	"github.com/HugoDaniel/pngine-sub011/varint"
)

// scalarKind is the wire shape of one non-array instruction field.
type scalarKind uint8

const (
	kVarint scalarKind = iota
	kByte
)

// spec describes one opcode's wire shape: an ordered list of scalar fields,
// optionally followed by a single count-prefixed array of varints, or (for
// call_wasm_func only) the self-describing WASM args blob. At most one of
// HasArray / HasWasm is ever true, and when present it is always the last
// field on the wire -- true of every opcode in spec.md §6.
type spec struct {
	Scalars        []scalarKind
	HasArray       bool
	ArrayCountKind scalarKind
	HasWasm        bool
}

var opcodeSpecs = map[Opcode]spec{
	OpNop: {},

	OpCreateBuffer:          {Scalars: []scalarKind{kVarint, kVarint, kByte}},
	OpCreateTexture:         {Scalars: []scalarKind{kVarint, kVarint}},
	OpCreateSampler:         {Scalars: []scalarKind{kVarint, kVarint}},
	OpCreateShaderModule:    {Scalars: []scalarKind{kVarint, kVarint}},
	OpCreateShaderConcat:    {Scalars: []scalarKind{kVarint}, HasArray: true, ArrayCountKind: kByte},
	OpCreateBindGroupLayout: {Scalars: []scalarKind{kVarint, kVarint}},
	OpCreatePipelineLayout:  {Scalars: []scalarKind{kVarint, kVarint}},
	OpCreateRenderPipeline:  {Scalars: []scalarKind{kVarint, kVarint}},
	OpCreateComputePipeline: {Scalars: []scalarKind{kVarint, kVarint}},
	OpCreateBindGroup:       {Scalars: []scalarKind{kVarint, kVarint, kVarint}},
	OpCreateImageBitmap:     {Scalars: []scalarKind{kVarint, kVarint}},
	OpCreateTextureView:     {Scalars: []scalarKind{kVarint, kVarint, kVarint}},
	OpCreateQuerySet:        {Scalars: []scalarKind{kVarint, kVarint}},

	OpBeginRenderPass:  {Scalars: []scalarKind{kVarint, kByte, kByte, kVarint}},
	OpBeginComputePass: {},
	OpSetPipeline:      {Scalars: []scalarKind{kVarint}},
	OpSetBindGroup:     {Scalars: []scalarKind{kByte, kVarint}},
	OpSetVertexBuffer:  {Scalars: []scalarKind{kByte, kVarint}},
	OpSetIndexBuffer:   {Scalars: []scalarKind{kVarint, kByte}},
	OpDraw:             {Scalars: []scalarKind{kVarint, kVarint, kVarint, kVarint}},
	OpDrawIndexed:      {Scalars: []scalarKind{kVarint, kVarint, kVarint, kVarint, kVarint}},
	OpDispatch:         {Scalars: []scalarKind{kVarint, kVarint, kVarint}},
	OpEndPass:          {},

	OpWriteBuffer:                {Scalars: []scalarKind{kVarint, kVarint, kVarint}},
	OpWriteUniform:               {Scalars: []scalarKind{kVarint, kVarint}},
	OpCopyBufferToBuffer:         {Scalars: []scalarKind{kVarint, kVarint, kVarint, kVarint, kVarint}},
	OpCopyTextureToTexture:       {Scalars: []scalarKind{kVarint, kVarint}},
	OpSubmit:                     {},
	OpCopyExternalImageToTexture: {Scalars: []scalarKind{kVarint, kVarint, kByte, kVarint, kVarint}},
	OpInitWasmModule:             {Scalars: []scalarKind{kVarint, kVarint}},
	OpCallWasmFunc:               {Scalars: []scalarKind{kVarint, kVarint, kVarint}, HasWasm: true},
	OpWriteBufferFromWasm:        {Scalars: []scalarKind{kVarint, kVarint, kVarint, kVarint}},
	OpWriteBufferFromArray:       {Scalars: []scalarKind{kVarint, kVarint, kVarint}},
	OpExecuteBundles:             {HasArray: true, ArrayCountKind: kVarint},

	OpDefineFrame: {Scalars: []scalarKind{kVarint, kVarint}},
	OpEndFrame:    {},
	OpExecPass:    {Scalars: []scalarKind{kVarint}},
	OpDefinePass:  {Scalars: []scalarKind{kVarint, kByte, kVarint}},
	OpEndPassDef:  {},

	OpSelectFromPool:      {Scalars: []scalarKind{kByte, kVarint, kVarint}},
	OpSetVertexBufferPool: {Scalars: []scalarKind{kByte, kVarint, kByte, kByte}},
	OpSetBindGroupPool:    {Scalars: []scalarKind{kByte, kVarint, kByte, kByte}},

	OpCreateTypedArray: {Scalars: []scalarKind{kVarint, kByte, kVarint}},
	OpFillConstant:     {Scalars: []scalarKind{kVarint, kVarint, kVarint, kByte, kVarint}},
	OpFillRandom:       {Scalars: []scalarKind{kVarint, kVarint, kVarint, kByte, kVarint, kVarint, kVarint}},
	OpFillLinear:       {Scalars: []scalarKind{kVarint, kVarint, kVarint, kByte, kVarint, kVarint}},
	OpFillElementIndex: {Scalars: []scalarKind{kVarint, kVarint, kVarint, kByte, kVarint, kVarint}},
	OpFillExpression:   {Scalars: []scalarKind{kVarint, kVarint, kVarint, kByte, kVarint}},
	OpWriteTimeUniform: {Scalars: []scalarKind{kVarint, kVarint, kVarint}},
}

// Instruction is the decoded form of one bytecode opcode and its parameters.
// Scalars holds every varint/byte field in wire order (byte fields widened
// to uint32); Array holds the trailing count-prefixed varint array for the
// handful of opcodes that have one; Wasm holds call_wasm_func's args blob.
type Instruction struct {
	Op      Opcode
	Scalars []uint32
	Array   []uint32
	Wasm    []WasmArg
}

// Encode appends the instruction's wire form to dst and returns the
// extended slice.
func (ins Instruction) Encode(dst []byte) ([]byte, error) {
	sp, ok := opcodeSpecs[ins.Op]
	if !ok {
		return nil, fmt.Errorf("bytecode: unknown opcode 0x%02X", byte(ins.Op))
	}

	dst = append(dst, byte(ins.Op))

	if len(ins.Scalars) != len(sp.Scalars) {
		return nil, fmt.Errorf("bytecode: %s: expected %d scalar fields, got %d", ins.Op, len(sp.Scalars), len(ins.Scalars))
	}
	for i, k := range sp.Scalars {
		dst = encodeScalar(dst, k, ins.Scalars[i])
	}

	switch {
	case sp.HasWasm:
		var err error
		dst, err = appendWasmArgs(dst, ins.Wasm)
		if err != nil {
			return nil, err
		}
	case sp.HasArray:
		dst = encodeScalar(dst, sp.ArrayCountKind, uint32(len(ins.Array)))
		for _, v := range ins.Array {
			dst = varint.AppendEncode(dst, v)
		}
	}

	return dst, nil
}

// DecodeInstruction reads one instruction from the front of buf, returning
// it and the number of bytes consumed.
func DecodeInstruction(buf []byte) (Instruction, int, error) {
	if len(buf) < 1 {
		return Instruction{}, 0, fmt.Errorf("bytecode: empty input")
	}

	op := Opcode(buf[0])
	sp, ok := opcodeSpecs[op]
	if !ok {
		return Instruction{}, 0, fmt.Errorf("bytecode: unknown opcode 0x%02X", buf[0])
	}

	pos := 1
	ins := Instruction{Op: op, Scalars: make([]uint32, len(sp.Scalars))}

	for i, k := range sp.Scalars {
		v, n, err := decodeScalar(buf[pos:], k)
		if err != nil {
			return Instruction{}, 0, fmt.Errorf("bytecode: %s: field %d: %w", op, i, err)
		}
		ins.Scalars[i] = v
		pos += n
	}

	switch {
	case sp.HasWasm:
		args, n, err := decodeWasmArgs(buf[pos:])
		if err != nil {
			return Instruction{}, 0, err
		}
		ins.Wasm = args
		pos += n
	case sp.HasArray:
		count, n, err := decodeScalar(buf[pos:], sp.ArrayCountKind)
		if err != nil {
			return Instruction{}, 0, fmt.Errorf("bytecode: %s: array count: %w", op, err)
		}
		pos += n

		ins.Array = make([]uint32, count)
		for i := uint32(0); i < count; i++ {
			v, n, err := varint.Decode(buf[pos:])
			if err != nil {
				return Instruction{}, 0, fmt.Errorf("bytecode: %s: array element %d: %w", op, i, err)
			}
			ins.Array[i] = v
			pos += n
		}
	}

	return ins, pos, nil
}

func encodeScalar(dst []byte, k scalarKind, v uint32) []byte {
	if k == kByte {
		return append(dst, byte(v))
	}
	return varint.AppendEncode(dst, v)
}

func decodeScalar(buf []byte, k scalarKind) (uint32, int, error) {
	if k == kByte {
		if len(buf) < 1 {
			return 0, 0, fmt.Errorf("need 1 byte, have 0")
		}
		return uint32(buf[0]), 1, nil
	}
	return varint.Decode(buf)
}
