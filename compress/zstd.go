package compress

// ZstdCompressor wraps a finished PNGB buffer with Zstandard compression,
// the --compress=zstd choice for cmd/pngc build.
//
// Best suited for archival .pngb.zst artifacts and network transmission
// where bandwidth matters more than build-time CPU cost.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
