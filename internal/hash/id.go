// Package hash provides the content hash used to key the string table's
// dedup map (spec.md §4.2: "intern(bytes) -> StringId ... O(1) average via
// content hash").
package hash

import "github.com/cespare/xxhash/v2"

// Bytes computes the xxHash64 of the given byte sequence.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}
