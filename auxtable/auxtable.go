// Package auxtable implements the two auxiliary metadata sections the
// container carries opaquely: the uniform table and the animation table
// (C5, spec.md §2 "Auxiliary metadata tables carried opaquely by the
// container (shape recited only at the boundary)"). Neither section's
// internal structure is interpreted by the core -- this package is
// deliberately a thin owned-byte-slice wrapper, not a codec, mirroring how
// spec.md only recites their shape at the container boundary.
package auxtable

// Table is an opaque, owned byte region. The core never parses its
// contents; it only tracks size and offset for the container header.
type Table struct {
	bytes []byte
}

// New creates an empty auxiliary table.
func New() *Table {
	return &Table{}
}

// Set replaces the table's contents with an owned copy of data.
func (t *Table) Set(data []byte) {
	owned := make([]byte, len(data))
	copy(owned, data)
	t.bytes = owned
}

// Bytes returns the table's contents. The returned slice is owned by the
// table and must not be modified by the caller.
func (t *Table) Bytes() []byte {
	return t.bytes
}

// Len returns the size in bytes of the table's contents.
func (t *Table) Len() int {
	return len(t.bytes)
}

// IsEmpty reports whether the table carries no data.
func (t *Table) IsEmpty() bool {
	return len(t.bytes) == 0
}

// FromBytes builds a Table that owns a copy of data, used when decoding a
// container's uniform/animation section.
func FromBytes(data []byte) *Table {
	t := New()
	t.Set(data)
	return t
}
