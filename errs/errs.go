// Package errs collects the sentinel errors shared across the PNGB core
// packages (strtab, datasection, wgsl, bytecode, pngb, assembler). Callers
// use errors.Is against these values; none of them carry extra state beyond
// their message.
//
// One shared sentinel-error package imported by every codec layer, rather
// than each package declaring its own local error values.
package errs

import "errors"

// Capacity errors (spec.md §7 "Capacity").
var (
	ErrStringTableOverflow = errors.New("strtab: total byte size or entry count exceeds u16 bound")
	ErrDataSectionOverflow = errors.New("datasection: cumulative blob size exceeds u32 bound")
	ErrTooManyDataEntries  = errors.New("datasection: entry count exceeds u16 bound")
	ErrTooManyResources    = errors.New("assembler: resource id exceeds MAX_RESOURCES")
	ErrTooManyWgslModules  = errors.New("wgsl: module count exceeds table limit")
	ErrTooManyWgslDeps     = errors.New("wgsl: dependency count exceeds per-entry limit")
)

// Allocation errors (spec.md §7 "Allocation").
var (
	ErrOutOfMemory = errors.New("allocator: allocation failed")
)

// Structural errors raised by the assembler (spec.md §7 "Structural (assembler)").
var (
	ErrUnknownForm          = errors.New("assembler: unknown top-level form")
	ErrInvalidFormStructure = errors.New("assembler: malformed form")
	ErrUndefinedResource    = errors.New("assembler: reference to undefined resource")
	ErrDuplicateResource    = errors.New("assembler: resource id redefined")
	ErrInvalidResourceId    = errors.New("assembler: malformed $prefix:index atom")
	ErrExpectedAtom         = errors.New("assembler: expected atom")
	ErrExpectedString       = errors.New("assembler: expected string literal")
	ErrExpectedNumber       = errors.New("assembler: expected number")
	ErrExpectedList         = errors.New("assembler: expected list")
)

// Container errors raised while decoding a PNGB buffer (spec.md §7 "Container (decode)").
var (
	ErrInvalidMagic       = errors.New("pngb: bad magic")
	ErrUnsupportedVersion = errors.New("pngb: unsupported version")
	ErrInvalidFormat      = errors.New("pngb: truncated buffer")
	ErrInvalidOffset      = errors.New("pngb: section offset out of range or non-monotonic")
	ErrInvalidDataSection = errors.New("pngb: malformed data section")
	ErrInvalidStringTable = errors.New("pngb: malformed string table")
)
