//go:build nobuild

package compress

import (
	"github.com/valyala/gozstd"
)

// Compress wraps a finalized PNGB buffer with Zstandard via the cgo-backed
// gozstd binding. Kept as an alternate backend to zstd_pure.go's pure-Go
// klauspost/compress/zstd path; disabled by the nobuild tag since cmd/pngc
// ships cgo-free by default.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
