package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/HugoDaniel/pngine-sub011/bytecode"
	"github.com/HugoDaniel/pngine-sub011/pngb"
)

// runVerify round-trips a container's bytecode stream through
// bytecode.Decode/Reencode and checks the result is byte-identical,
// exercising spec.md §8 property 4 ("decode then re-encode an instruction
// stream yields the original bytes").
func runVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: pngc verify <in.pngb>")
	}

	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read %s: %w", fs.Arg(0), err)
	}
	buf, err := unwrapEnvelope(raw)
	if err != nil {
		return err
	}

	mod, err := pngb.Decode(buf)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	instructions, err := bytecode.Decode(mod.Bytecode)
	if err != nil {
		return fmt.Errorf("disassemble: %w", err)
	}

	reencoded, err := bytecode.Reencode(instructions)
	if err != nil {
		return fmt.Errorf("reencode: %w", err)
	}

	if !bytes.Equal(reencoded, mod.Bytecode) {
		return fmt.Errorf("verify failed: %d instructions re-encoded to %d bytes, want %d bytes matching the original stream",
			len(instructions), len(reencoded), len(mod.Bytecode))
	}

	fmt.Printf("ok: %d instructions, %d bytecode bytes round-trip exactly\n", len(instructions), len(mod.Bytecode))
	return nil
}
