// Package wgsl implements the WGSL shader-module dependency table (C4,
// spec.md §4.4). Entries are append-only; the table is a DAG by construction
// since later entries can only reference earlier wgsl ids (spec.md §9 "No
// cyclic graphs"), so it is stored as one slice of (data_id, deps) entries
// keyed by dense index rather than any pointer graph.
package wgsl

import (
	"github.com/HugoDaniel/pngine-sub011/errs"
	"github.com/HugoDaniel/pngine-sub011/varint"
)

// MaxEntries is the upper bound on the number of WGSL modules (spec.md §3).
const MaxEntries = 1024

// MaxDeps is the upper bound on the number of dependencies per entry.
const MaxDeps = 64

// Id is a dense, zero-based WGSL table index.
type Id uint16

type entry struct {
	dataID uint16
	deps   []uint16
}

// Table is an append-only list of (data_id, deps) entries.
type Table struct {
	entries []entry
}

// New creates an empty WGSL table.
func New() *Table {
	return &Table{}
}

// Add appends an entry referencing dataID with the given deps, cloning deps
// into entry-owned storage, and returns the new id.
func (t *Table) Add(dataID uint16, deps []uint16) (Id, error) {
	if len(t.entries) >= MaxEntries {
		return 0, errs.ErrTooManyWgslModules
	}
	if len(deps) > MaxDeps {
		return 0, errs.ErrTooManyWgslDeps
	}

	owned := make([]uint16, len(deps))
	copy(owned, deps)

	id := Id(len(t.entries))
	t.entries = append(t.entries, entry{dataID: dataID, deps: owned})

	return id, nil
}

// Count returns the number of entries in the table.
func (t *Table) Count() int {
	return len(t.entries)
}

// DataID returns the data-section id the entry at id describes.
func (t *Table) DataID(id Id) (uint16, bool) {
	if int(id) >= len(t.entries) {
		return 0, false
	}
	return t.entries[id].dataID, true
}

// Deps returns the dependency ids for the entry at id. The returned slice
// aliases table-owned storage and must not be mutated.
func (t *Table) Deps(id Id) ([]uint16, bool) {
	if int(id) >= len(t.entries) {
		return nil, false
	}
	return t.entries[id].deps, true
}

// Serialize writes the table's on-wire form:
//
//	count:varint | (data_id:varint, dep_count:varint, deps[*]:varint)*
func (t *Table) Serialize() []byte {
	out := varint.AppendEncode(nil, uint32(len(t.entries)))
	for _, e := range t.entries {
		out = varint.AppendEncode(out, uint32(e.dataID))
		out = varint.AppendEncode(out, uint32(len(e.deps)))
		for _, d := range e.deps {
			out = varint.AppendEncode(out, uint32(d))
		}
	}
	return out
}

// Deserialize parses a table from its on-wire form. Decode is tolerant of
// truncation: on a short buffer it stops at the last fully-readable entry and
// fills the remainder with empty-deps placeholders rather than failing, but
// it always preserves the entry count recorded in the leading varint
// (spec.md §4.4).
func Deserialize(buf []byte) (*Table, error) {
	count, n, err := varint.Decode(buf)
	if err != nil {
		// No leading count at all: an empty table.
		return New(), nil
	}
	buf = buf[n:]

	if count > MaxEntries {
		count = MaxEntries
	}

	t := &Table{entries: make([]entry, count)}

	for i := uint32(0); i < count; i++ {
		dataID, n, err := varint.Decode(buf)
		if err != nil {
			break // truncated: leave this and remaining entries as empty-deps zero value
		}
		buf = buf[n:]

		depCount, n, err := varint.Decode(buf)
		if err != nil {
			t.entries[i].dataID = uint16(dataID)
			break
		}
		buf = buf[n:]

		if depCount > MaxDeps {
			depCount = MaxDeps
		}

		deps := make([]uint16, 0, depCount)
		truncated := false
		for d := uint32(0); d < depCount; d++ {
			v, n, err := varint.Decode(buf)
			if err != nil {
				truncated = true
				break
			}
			buf = buf[n:]
			deps = append(deps, uint16(v))
		}

		t.entries[i] = entry{dataID: uint16(dataID), deps: deps}

		if truncated {
			break
		}
	}

	return t, nil
}
