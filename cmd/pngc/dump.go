package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/HugoDaniel/pngine-sub011/bytecode"
	"github.com/HugoDaniel/pngine-sub011/pngb"
)

func runDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: pngc dump <in.pngb>")
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

	fmt.Printf("version:        %d\n", mod.Header.Version)
	fmt.Printf("flags:          0x%04X\n", mod.Header.Flags)
	fmt.Printf("plugins:        %s\n", strings.Join(mod.Plugins(), ","))
	fmt.Printf("executor:       %d bytes\n", len(mod.Executor))
	fmt.Printf("bytecode:       %d bytes\n", len(mod.Bytecode))
	fmt.Printf("string table:   %d entries\n", mod.Strings.Count())
	fmt.Printf("data section:   %d entries\n", mod.Data.Count())
	fmt.Printf("wgsl table:     %d entries\n", mod.Wgsl.Count())
	fmt.Printf("uniform table:  %d bytes\n", mod.Uniform.Len())
	fmt.Printf("animation table: %d bytes\n", mod.Animation.Len())

	fmt.Println()
	fmt.Println("bytecode disassembly:")

	instructions, err := bytecode.Decode(mod.Bytecode)
	if err != nil {
		return fmt.Errorf("disassemble: %w", err)
	}
	for i, ins := range instructions {
		fmt.Printf("  %4d  %-24s scalars=%v", i, ins.Op, ins.Scalars)
		if len(ins.Array) > 0 {
			fmt.Printf(" array=%v", ins.Array)
		}
		if len(ins.Wasm) > 0 {
			fmt.Printf(" wasm_args=%d", len(ins.Wasm))
		}
		fmt.Println()
	}

	return nil
}
