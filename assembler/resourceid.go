package assembler

import (
	"strconv"
	"strings"

	"github.com/HugoDaniel/pngine-sub011/errs"
)

// MaxResources bounds the per-resource-kind duplicate-detection bitsets
// (spec.md §4.7 "MAX_RESOURCES = 256").
const MaxResources = 256

var resourcePrefixes = map[string]bool{
	"d": true, "shd": true, "buf": true, "tex": true, "samp": true,
	"pipe": true, "bg": true, "pass": true, "frm": true,
}

// resourceID is a parsed `$<prefix>:<u16>` atom (spec.md §4.7).
type resourceID struct {
	prefix string
	index  uint16
}

// parseResourceID parses atom as a resource-id. Parse failures (missing
// '$', unknown prefix, missing or non-numeric index, index >= MaxResources)
// fault with errs.ErrInvalidResourceId.
func parseResourceID(atom string) (resourceID, error) {
	if !strings.HasPrefix(atom, "$") {
		return resourceID{}, errs.ErrInvalidResourceId
	}
	body := atom[1:]

	colon := strings.IndexByte(body, ':')
	if colon <= 0 {
		return resourceID{}, errs.ErrInvalidResourceId
	}

	prefix := body[:colon]
	if !resourcePrefixes[prefix] {
		return resourceID{}, errs.ErrInvalidResourceId
	}

	n, err := strconv.Atoi(body[colon+1:])
	if err != nil || n < 0 || n >= MaxResources {
		return resourceID{}, errs.ErrInvalidResourceId
	}

	return resourceID{prefix: prefix, index: uint16(n)}, nil
}

// resourceSet tracks which indices of one resource kind have been defined,
// so a second definition of the same id faults with ErrDuplicateResource
// (spec.md §4.7 "Duplicate detection").
type resourceSet struct {
	seen [MaxResources]bool
}

func (s *resourceSet) markOrFault(index uint16) error {
	if s.seen[index] {
		return errs.ErrDuplicateResource
	}
	s.seen[index] = true
	return nil
}

func (s *resourceSet) nextFree() uint16 {
	for i := range s.seen {
		if !s.seen[i] {
			return uint16(i)
		}
	}
	return MaxResources
}
