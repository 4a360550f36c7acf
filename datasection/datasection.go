// Package datasection implements the ordered, non-deduplicated data blob
// table (C3, spec.md §4.3). Unlike strtab, Add always appends -- blobs are
// never deduplicated by contract (spec.md §1 Non-goals).
//
// The append buffer is the pooled, growable internal/pool.ByteBuffer also
// used by the bytecode emitter, so a large blob sequence amortizes
// reallocation the same way a long instruction stream does.
package datasection

import (
	"encoding/binary"

	"github.com/HugoDaniel/pngine-sub011/errs"
	"github.com/HugoDaniel/pngine-sub011/internal/pool"
)

// MaxCount is the upper bound on the number of blobs (dense u16 ids).
const MaxCount = 65535

// MaxTotalBytes is the upper bound on cumulative blob size (spec.md §3: u32 bound).
const MaxTotalBytes = 1<<32 - 1

// Id is a dense, zero-based data blob index.
type Id uint16

// Section is an append-only, ordered collection of opaque byte blobs.
type Section struct {
	buf     *pool.ByteBuffer
	offsets []uint32
	lengths []uint32
	total   uint64
}

// New creates an empty data section.
func New() *Section {
	return &Section{buf: pool.GetSectionBuffer()}
}

// Add appends bytes as a new blob and returns its id. The input is copied;
// the caller may free or mutate bytes immediately after Add returns
// (spec.md §4.3 "callers may free input immediately after add").
func (s *Section) Add(bytes []byte) (Id, error) {
	if len(s.offsets) >= MaxCount {
		return 0, errs.ErrTooManyDataEntries
	}
	if s.total+uint64(len(bytes)) > MaxTotalBytes {
		return 0, errs.ErrDataSectionOverflow
	}

	offset := uint32(s.buf.Len())
	s.buf.Grow(len(bytes))
	s.buf.MustWrite(bytes)

	id := Id(len(s.offsets))
	s.offsets = append(s.offsets, offset)
	s.lengths = append(s.lengths, uint32(len(bytes)))
	s.total += uint64(len(bytes))

	return id, nil
}

// Get returns the blob for id. The returned slice aliases the section's
// internal buffer and must not be mutated by the caller.
func (s *Section) Get(id Id) ([]byte, bool) {
	if int(id) >= len(s.offsets) {
		return nil, false
	}
	start := s.offsets[id]
	end := start + s.lengths[id]
	return s.buf.Bytes()[start:end], true
}

// Count returns the number of blobs in the section.
func (s *Section) Count() uint16 {
	return uint16(len(s.offsets))
}

// TotalBytes returns the cumulative size of every blob.
func (s *Section) TotalBytes() uint64 {
	return s.total
}

// Serialize writes the section's on-wire form:
//
//	count:u16 | (offset:u32, length:u32)[count] | concatenated bytes
func (s *Section) Serialize() []byte {
	count := len(s.offsets)
	payload := s.buf.Bytes()
	out := make([]byte, 2+count*8+len(payload))

	binary.LittleEndian.PutUint16(out[0:2], uint16(count))
	for i := 0; i < count; i++ {
		base := 2 + i*8
		binary.LittleEndian.PutUint32(out[base:], s.offsets[i])
		binary.LittleEndian.PutUint32(out[base+4:], s.lengths[i])
	}
	copy(out[2+count*8:], payload)

	return out
}

// Deserialize parses a section from its on-wire form, copying the payload
// out of buf so the decoded section owns independent memory.
func Deserialize(buf []byte) (*Section, error) {
	if len(buf) < 2 {
		return nil, errs.ErrInvalidDataSection
	}

	count := int(binary.LittleEndian.Uint16(buf[0:2]))
	entriesEnd := 2 + count*8
	if len(buf) < entriesEnd {
		return nil, errs.ErrInvalidDataSection
	}

	s := &Section{buf: pool.GetSectionBuffer()}
	s.offsets = make([]uint32, count)
	s.lengths = make([]uint32, count)

	payload := buf[entriesEnd:]
	for i := 0; i < count; i++ {
		base := 2 + i*8
		offset := binary.LittleEndian.Uint32(buf[base:])
		length := binary.LittleEndian.Uint32(buf[base+4:])

		end := uint64(offset) + uint64(length)
		if end > uint64(len(payload)) {
			return nil, errs.ErrInvalidDataSection
		}

		s.offsets[i] = offset
		s.lengths[i] = length
		s.total += uint64(length)
	}

	s.buf.Grow(len(payload))
	s.buf.MustWrite(payload)

	return s, nil
}
