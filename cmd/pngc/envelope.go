package main

import (
	"fmt"

	"github.com/HugoDaniel/pngine-sub011/compress"
	"github.com/HugoDaniel/pngine-sub011/format"
)

// pngzMagic and the envelope layout are described in SPEC_FULL.md §6: a
// 5-byte header (magic "PNGZ", one codec byte) followed by the compressed
// PNGB bytes. The envelope wraps the finished file; it never touches the
// container's own byte layout.
var pngzMagic = [4]byte{'P', 'N', 'G', 'Z'}

var compressFlagNames = map[string]format.CompressionType{
	"none": format.CompressionNone,
	"zstd": format.CompressionZstd,
	"s2":   format.CompressionS2,
	"lz4":  format.CompressionLZ4,
}

func parseCompressFlag(name string) (format.CompressionType, error) {
	if name == "" {
		return format.CompressionNone, nil
	}
	ct, ok := compressFlagNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown --compress codec %q (want none, zstd, s2, or lz4)", name)
	}
	return ct, nil
}

// wrapEnvelope compresses pngb with codec and prefixes the PNGZ header. A
// CompressionNone codec is a pass-through with no envelope at all, so a
// plain `pngc build` output stays a byte-exact PNGB file.
func wrapEnvelope(pngb []byte, codec format.CompressionType) ([]byte, error) {
	if codec == format.CompressionNone {
		return pngb, nil
	}

	c, err := compress.GetCodec(codec)
	if err != nil {
		return nil, err
	}
	compressed, err := c.Compress(pngb)
	if err != nil {
		return nil, fmt.Errorf("compress envelope: %w", err)
	}

	out := make([]byte, 0, 5+len(compressed))
	out = append(out, pngzMagic[:]...)
	out = append(out, byte(codec))
	out = append(out, compressed...)
	return out, nil
}

// unwrapEnvelope detects and removes a PNGZ envelope, returning the raw
// PNGB bytes. Input without the "PNGZ" magic is returned unchanged, so
// `pngc dump`/`pngc verify` accept both wrapped and plain files.
func unwrapEnvelope(buf []byte) ([]byte, error) {
	if len(buf) < 5 || buf[0] != pngzMagic[0] || buf[1] != pngzMagic[1] || buf[2] != pngzMagic[2] || buf[3] != pngzMagic[3] {
		return buf, nil
	}

	codec := format.CompressionType(buf[4])
	c, err := compress.GetCodec(codec)
	if err != nil {
		return nil, err
	}
	out, err := c.Decompress(buf[5:])
	if err != nil {
		return nil, fmt.Errorf("decompress envelope: %w", err)
	}
	return out, nil
}
