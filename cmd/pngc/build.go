package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/HugoDaniel/pngine-sub011/assembler"
)

func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	compressName := fs.String("compress", "", "wrap the output in a PNGZ envelope: none, zstd, s2, or lz4")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: pngc build <in.pbsf> <out.pngb>")
	}
	inPath, outPath := fs.Arg(0), fs.Arg(1)

	src, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inPath, err)
	}

	out, err := assembler.AssembleSource(src)
	if err != nil {
		return fmt.Errorf("assemble %s: %w", inPath, err)
	}

	codec, err := parseCompressFlag(*compressName)
	if err != nil {
		return err
	}
	out, err = wrapEnvelope(out, codec)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	fmt.Printf("wrote %s (%d bytes)\n", outPath, len(out))
	return nil
}
