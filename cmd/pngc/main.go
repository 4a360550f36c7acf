// Command pngc assembles PBSF source into PNGB containers and inspects
// existing ones. It wraps the assembler and container codec end to end:
//
//	pngc build <in.pbsf> <out.pngb>   assemble PBSF source into a PNGB file
//	pngc dump  <in.pngb>              print the header, section sizes, and bytecode disassembly
//	pngc verify <in.pngb>             round-trip the bytecode stream and confirm it matches exactly
package main

import (
	"fmt"
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("pngc: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]

	var err error
	switch cmd {
	case "build":
		err = runBuild(args)
	case "dump":
		err = runDump(args)
	case "verify":
		err = runVerify(args)
	case "-h", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: pngc <build|dump|verify> [flags] <args>")
	fmt.Fprintln(os.Stderr, "  pngc build [--compress=none|zstd|s2|lz4] <in.pbsf> <out.pngb>")
	fmt.Fprintln(os.Stderr, "  pngc dump <in.pngb>")
	fmt.Fprintln(os.Stderr, "  pngc verify <in.pngb>")
}
