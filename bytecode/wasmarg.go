package bytecode

import (
	"encoding/binary"
	"fmt"
	"math"
)

// WasmArgKind identifies one of the seven argument shapes call_wasm_func can
// pass to an embedded WASM function (spec.md §6 "WASM-call args blob").
type WasmArgKind uint8

const (
	WasmArgLiteralF32   WasmArgKind = 0x00
	WasmArgCanvasWidth  WasmArgKind = 0x01
	WasmArgCanvasHeight WasmArgKind = 0x02
	WasmArgTimeTotal    WasmArgKind = 0x03
	WasmArgLiteralI32   WasmArgKind = 0x04
	WasmArgLiteralU32   WasmArgKind = 0x05
	WasmArgTimeDelta    WasmArgKind = 0x06
)

// WasmArg is one entry of call_wasm_func's args blob: a type tag followed by
// zero or four bytes of little-endian payload, depending on Kind.
type WasmArg struct {
	Kind WasmArgKind
	F32  float32 // valid when Kind == WasmArgLiteralF32
	I32  int32   // valid when Kind == WasmArgLiteralI32
	U32  uint32  // valid when Kind == WasmArgLiteralU32
}

// LiteralF32Arg builds a literal_f32 argument.
func LiteralF32Arg(v float32) WasmArg { return WasmArg{Kind: WasmArgLiteralF32, F32: v} }

// LiteralI32Arg builds a literal_i32 argument.
func LiteralI32Arg(v int32) WasmArg { return WasmArg{Kind: WasmArgLiteralI32, I32: v} }

// LiteralU32Arg builds a literal_u32 argument.
func LiteralU32Arg(v uint32) WasmArg { return WasmArg{Kind: WasmArgLiteralU32, U32: v} }

// CanvasWidthArg, CanvasHeightArg, TimeTotalArg, and TimeDeltaArg build the
// four zero-payload host-value argument kinds.
func CanvasWidthArg() WasmArg  { return WasmArg{Kind: WasmArgCanvasWidth} }
func CanvasHeightArg() WasmArg { return WasmArg{Kind: WasmArgCanvasHeight} }
func TimeTotalArg() WasmArg    { return WasmArg{Kind: WasmArgTimeTotal} }
func TimeDeltaArg() WasmArg    { return WasmArg{Kind: WasmArgTimeDelta} }

// payloadLen returns the number of trailing payload bytes for kind, or -1 if
// kind is not a recognized argument type.
func (k WasmArgKind) payloadLen() int {
	switch k {
	case WasmArgLiteralF32, WasmArgLiteralI32, WasmArgLiteralU32:
		return 4
	case WasmArgCanvasWidth, WasmArgCanvasHeight, WasmArgTimeTotal, WasmArgTimeDelta:
		return 0
	default:
		return -1
	}
}

// appendWasmArgs appends the count-prefixed args blob to dst in wire order:
// count:u8, then (type:u8, value?) per argument.
func appendWasmArgs(dst []byte, args []WasmArg) ([]byte, error) {
	if len(args) > 255 {
		return nil, fmt.Errorf("bytecode: call_wasm_func: %d args exceeds u8 count", len(args))
	}

	dst = append(dst, byte(len(args)))
	for _, a := range args {
		if a.Kind.payloadLen() < 0 {
			return nil, fmt.Errorf("bytecode: call_wasm_func: invalid arg kind 0x%02X", a.Kind)
		}
		dst = append(dst, byte(a.Kind))
		switch a.Kind {
		case WasmArgLiteralF32:
			var buf [4]byte
			binary.LittleEndian.PutUint32(buf[:], math.Float32bits(a.F32))
			dst = append(dst, buf[:]...)
		case WasmArgLiteralI32:
			var buf [4]byte
			binary.LittleEndian.PutUint32(buf[:], uint32(a.I32))
			dst = append(dst, buf[:]...)
		case WasmArgLiteralU32:
			var buf [4]byte
			binary.LittleEndian.PutUint32(buf[:], a.U32)
			dst = append(dst, buf[:]...)
		}
	}

	return dst, nil
}

// decodeWasmArgs reads a count-prefixed args blob from the front of buf,
// returning the parsed args and the number of bytes consumed.
func decodeWasmArgs(buf []byte) ([]WasmArg, int, error) {
	if len(buf) < 1 {
		return nil, 0, fmt.Errorf("bytecode: call_wasm_func: missing arg count")
	}

	count := int(buf[0])
	pos := 1
	args := make([]WasmArg, 0, count)

	for i := 0; i < count; i++ {
		if pos >= len(buf) {
			return nil, 0, fmt.Errorf("bytecode: call_wasm_func: truncated arg %d", i)
		}
		kind := WasmArgKind(buf[pos])
		pos++

		n := kind.payloadLen()
		if n < 0 {
			return nil, 0, fmt.Errorf("bytecode: call_wasm_func: invalid arg kind 0x%02X", kind)
		}
		if pos+n > len(buf) {
			return nil, 0, fmt.Errorf("bytecode: call_wasm_func: truncated arg %d payload", i)
		}

		arg := WasmArg{Kind: kind}
		switch kind {
		case WasmArgLiteralF32:
			arg.F32 = math.Float32frombits(binary.LittleEndian.Uint32(buf[pos:]))
		case WasmArgLiteralI32:
			arg.I32 = int32(binary.LittleEndian.Uint32(buf[pos:]))
		case WasmArgLiteralU32:
			arg.U32 = binary.LittleEndian.Uint32(buf[pos:])
		}
		pos += n

		args = append(args, arg)
	}

	return args, pos, nil
}
