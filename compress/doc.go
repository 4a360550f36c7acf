// Package compress provides the whole-file compression codecs `cmd/pngc`
// wraps a finished PNGB container in (the PNGZ envelope, SPEC_FULL.md §6).
// It never touches the container's internal byte layout -- compression is
// applied once, after pngb.Builder.Finalize has already produced a
// byte-exact buffer.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported Algorithms
//
// **NoOp** (format.CompressionNone) returns the input unchanged; selected
// implicitly when --compress is omitted.
//
// **Zstandard** (format.CompressionZstd) gives the best compression ratio
// at moderate speed -- the default choice for archival .pngb.zst artifacts.
//
// **S2** (format.CompressionS2) trades some ratio for much faster
// compression, useful for build-time round-trips.
//
// **LZ4** (format.CompressionLZ4) gives the fastest decompression, useful
// when the replay host reads many containers in a tight loop.
//
// # Algorithm Selection Guide
//
// | Use case                     | Recommended |
// |-------------------------------|-------------|
// | Distribution / archival       | Zstd        |
// | Fast local build round-trips  | S2          |
// | Decompression-latency-critical | LZ4        |
// | No envelope wanted            | None        |
//
// # Error Handling
//
// Decompression fails on corrupted input, input from a different codec, or
// a decompressed size exceeding the format's limits. Zstd wraps its error
// as "zstd decompression failed: ..."; S2 and LZ4 return the underlying
// library's error unwrapped.
package compress
