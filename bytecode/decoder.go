package bytecode

import "fmt"

// Decode parses an entire bytecode stream into its constituent instructions.
// It is the read side of C6 that spec.md §6 implies ("a decoder that
// inspects opcodes... must treat unknown codes as invalid") but does not
// name directly; SPEC_FULL.md §5 gives it this entry point and wires it into
// the `pngc dump`/`pngc verify` CLI commands and the container's own
// round-trip tests.
func Decode(stream []byte) ([]Instruction, error) {
	var out []Instruction

	pos := 0
	for pos < len(stream) {
		ins, n, err := DecodeInstruction(stream[pos:])
		if err != nil {
			return nil, fmt.Errorf("bytecode: decode at offset %d: %w", pos, err)
		}
		out = append(out, ins)
		pos += n
	}

	return out, nil
}

// Reencode re-serializes a decoded instruction stream, byte for byte
// identical to the buffer Decode consumed it from (spec.md §8 property 4's
// bytecode half, exercised directly by pngc verify).
func Reencode(instructions []Instruction) ([]byte, error) {
	var out []byte
	for i, ins := range instructions {
		var err error
		out, err = ins.Encode(out)
		if err != nil {
			return nil, fmt.Errorf("bytecode: reencode instruction %d: %w", i, err)
		}
	}
	return out, nil
}
