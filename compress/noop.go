package compress

// NoOpCompressor is the --compress=none (default) choice for cmd/pngc
// build: the PNGZ envelope is skipped and the finalized PNGB buffer is
// written out as-is.
//
// Useful for:
//   - dumping a container straight from pngb.Builder.Finalize without a
//     wrapping step, e.g. while debugging the bytecode stream
//   - measuring the baseline (uncompressed) size of a module before
//     deciding whether zstd/s2/lz4 is worth the build-time cost
//   - payloads too small for compression to pay off (a handful of
//     instructions, no embedded WASM executor)
//
// Performance characteristics:
//   - Compression: 0 ns/byte (returns the input slice, no copy)
//   - Decompression: 0 ns/byte (returns the input slice, no copy)
//   - Memory overhead: None (no allocation; output shares the input's memory)
//   - Compression ratio: 1.0 (no size reduction)
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor that bypasses data.
//
// The returned compressor implements all three interfaces (Compressor, Decompressor,
// and Codec) and returns the input slice unchanged, without copying it.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress bypasses compression and returns the input data directly without copying.
//
// This method returns the input slice as-is, without any processing or copying.
// This provides maximum performance for the no-op compressor by eliminating
// unnecessary memory allocations.
//
// Note: The returned slice shares the same underlying memory as the input.
// Callers should not modify the input data after calling this method if they
// plan to use the returned slice.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress bypasses decompression and returns the input data directly without copying.
//
// This method returns the input slice as-is, without any processing or copying.
// This provides maximum performance for the no-op compressor by eliminating
// unnecessary memory allocations.
//
// Note: The returned slice shares the same underlying memory as the input.
// Callers should not modify the input data after calling this method if they
// plan to use the returned slice.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
