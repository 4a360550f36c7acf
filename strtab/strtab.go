// Package strtab implements the interned, deduplicated string table (C2,
// spec.md §4.2). Interning is content-addressed through a hash map, the
// hash keying a dedup map rather than an index lookup.
package strtab

import (
	"encoding/binary"

	"github.com/HugoDaniel/pngine-sub011/errs"
	"github.com/HugoDaniel/pngine-sub011/internal/hash"
)

// MaxTotalBytes is the upper bound on the concatenated byte length of every
// interned string (spec.md §3 "total concatenated byte length <= 65535").
const MaxTotalBytes = 65535

// MaxCount is the upper bound on the number of distinct strings (dense u16 ids).
const MaxCount = 65535

// Id is a dense, zero-based string table index.
type Id uint16

// Table is an append-only, content-deduplicated string table. The zero value
// is not ready for use; construct one with New.
type Table struct {
	// strings holds the owned copy of every interned string, in insertion order.
	strings [][]byte
	// byHash maps the content hash to candidate ids, resolved by exact byte
	// comparison to guard against hash collisions.
	byHash map[uint64][]Id
	total  int
}

// New creates an empty string table.
func New() *Table {
	return &Table{
		byHash: make(map[uint64][]Id),
	}
}

// Intern inserts s (by content) and returns its id. If an identical byte
// sequence was already interned, the existing id is returned and no new
// entry is created -- spec.md §8 property 2: intern(s) == intern(s).
func (t *Table) Intern(s []byte) (Id, error) {
	h := hash.Bytes(s)
	for _, candidate := range t.byHash[h] {
		if string(t.strings[candidate]) == string(s) {
			return candidate, nil
		}
	}

	if len(t.strings) >= MaxCount {
		return 0, errs.ErrStringTableOverflow
	}
	if t.total+len(s) > MaxTotalBytes {
		return 0, errs.ErrStringTableOverflow
	}

	owned := make([]byte, len(s))
	copy(owned, s)

	id := Id(len(t.strings))
	t.strings = append(t.strings, owned)
	t.byHash[h] = append(t.byHash[h], id)
	t.total += len(owned)

	return id, nil
}

// InternString is a convenience wrapper over Intern for Go string inputs.
func (t *Table) InternString(s string) (Id, error) {
	return t.Intern([]byte(s))
}

// Get returns the bytes for id. The returned slice is owned by the table and
// must not be modified by the caller.
func (t *Table) Get(id Id) ([]byte, bool) {
	if int(id) >= len(t.strings) {
		return nil, false
	}
	return t.strings[id], true
}

// FindId performs the reverse lookup used at replay time.
func (t *Table) FindId(s []byte) (Id, bool) {
	h := hash.Bytes(s)
	for _, candidate := range t.byHash[h] {
		if string(t.strings[candidate]) == string(s) {
			return candidate, true
		}
	}
	return 0, false
}

// Count returns the number of distinct interned strings.
func (t *Table) Count() uint16 {
	return uint16(len(t.strings))
}

// TotalBytes returns the cumulative byte length of all interned strings.
func (t *Table) TotalBytes() int {
	return t.total
}

// Serialize writes the table's on-wire form:
//
//	count:u16 | offsets[count]:u16 | lengths[count]:u16 | bytes
//
// Offsets and lengths are written before the payload so a decoder can
// validate all metadata before touching the variable-length byte region.
func (t *Table) Serialize() []byte {
	count := len(t.strings)
	out := make([]byte, 2+count*2+count*2+t.total)

	binary.LittleEndian.PutUint16(out[0:2], uint16(count))

	offsetBase := 2
	lengthBase := 2 + count*2
	payloadBase := lengthBase + count*2

	offset := uint16(0)
	pos := payloadBase
	for i, s := range t.strings {
		binary.LittleEndian.PutUint16(out[offsetBase+i*2:], offset)
		binary.LittleEndian.PutUint16(out[lengthBase+i*2:], uint16(len(s)))
		copy(out[pos:], s)
		pos += len(s)
		offset += uint16(len(s))
	}

	return out
}

// Deserialize parses a table from its on-wire form, copying every string out
// of buf so the returned table owns independent memory (spec.md §3
// Lifecycle, §9 "Ownership of decoded payloads").
func Deserialize(buf []byte) (*Table, error) {
	if len(buf) < 2 {
		return nil, errs.ErrInvalidStringTable
	}

	count := int(binary.LittleEndian.Uint16(buf[0:2]))
	offsetBase := 2
	lengthBase := offsetBase + count*2
	payloadBase := lengthBase + count*2

	if len(buf) < payloadBase {
		return nil, errs.ErrInvalidStringTable
	}

	t := New()
	t.strings = make([][]byte, count)

	for i := 0; i < count; i++ {
		offset := binary.LittleEndian.Uint16(buf[offsetBase+i*2:])
		length := binary.LittleEndian.Uint16(buf[lengthBase+i*2:])

		start := payloadBase + int(offset)
		end := start + int(length)
		if end > len(buf) || start > end {
			return nil, errs.ErrInvalidStringTable
		}

		owned := make([]byte, length)
		copy(owned, buf[start:end])
		t.strings[i] = owned

		h := hash.Bytes(owned)
		t.byHash[h] = append(t.byHash[h], Id(i))
		t.total += int(length)
	}

	return t, nil
}
