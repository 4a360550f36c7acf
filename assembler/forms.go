package assembler

import (
	"strconv"

	"github.com/HugoDaniel/pngine-sub011/ast"
	"github.com/HugoDaniel/pngine-sub011/bytecode"
	"github.com/HugoDaniel/pngine-sub011/datasection"
	"github.com/HugoDaniel/pngine-sub011/errs"
)

// parseID accepts either a canonical "$prefix:N" resource-id atom (checked
// against wantPrefix) or a plain decimal shorthand atom, and returns the
// numeric id either way.
func parseID(atom string, wantPrefix string) (uint16, error) {
	if len(atom) > 0 && atom[0] == '$' {
		rid, err := parseResourceID(atom)
		if err != nil {
			return 0, err
		}
		if rid.prefix != wantPrefix {
			return 0, errs.ErrInvalidResourceId
		}
		return rid.index, nil
	}

	n, err := strconv.ParseUint(atom, 10, 16)
	if err != nil {
		return 0, errs.ErrExpectedNumber
	}
	return uint16(n), nil
}

func (a *Assembler) shaderForm(items ast.List) error {
	if len(items) < 3 {
		return errs.ErrInvalidFormStructure
	}
	idAtom, err := atomText(items[1])
	if err != nil {
		return err
	}
	id, err := parseID(idAtom, "shd")
	if err != nil {
		return err
	}
	if err := a.dupSet("shd").markOrFault(id); err != nil {
		return err
	}

	codeDataID, err := a.resolveInlineOrRefData(items[2], "code")
	if err != nil {
		return err
	}

	return a.builder.Emitter().CreateShaderModule(uint32(id), uint32(codeDataID))
}

// resolveInlineOrRefData handles the two shapes a descriptor/code/entries
// field can take: an inline string literal (stored as a fresh data blob),
// or a `(tag $d:M)` reference to an already-collected data blob.
func (a *Assembler) resolveInlineOrRefData(n ast.Node, tag string) (datasection.Id, error) {
	switch n.Kind() {
	case ast.KindString:
		s, _ := stringText(n)
		return a.builder.AddData([]byte(s))
	case ast.KindList:
		items, err := listItems(n)
		if err != nil {
			return 0, err
		}
		if len(items) != 2 {
			return 0, errs.ErrInvalidFormStructure
		}
		got, err := atomText(items[0])
		if err != nil {
			return 0, err
		}
		if got != tag {
			return 0, errs.ErrInvalidFormStructure
		}
		refAtom, err := atomText(items[1])
		if err != nil {
			return 0, err
		}
		rid, err := parseResourceID(refAtom)
		if err != nil {
			return 0, err
		}
		if rid.prefix != "d" {
			return 0, errs.ErrInvalidResourceId
		}
		id, ok := a.dataByIndex[rid.index]
		if !ok {
			return 0, errs.ErrUndefinedResource
		}
		return id, nil
	default:
		return 0, errs.ErrInvalidFormStructure
	}
}

// findChildList returns the first item of items whose head atom equals tag,
// or (nil, false) if none matches.
func findChildList(items ast.List, tag string) (ast.List, bool) {
	for _, it := range items {
		if it.Kind() != ast.KindList {
			continue
		}
		sub := it.Items()
		if len(sub) == 0 || sub[0].Kind() != ast.KindAtom {
			continue
		}
		if sub[0].Atom() == tag {
			return sub, true
		}
	}
	return nil, false
}

func (a *Assembler) bufferForm(items ast.List) error {
	if len(items) < 2 {
		return errs.ErrInvalidFormStructure
	}
	idAtom, err := atomText(items[1])
	if err != nil {
		return err
	}
	id, err := parseID(idAtom, "buf")
	if err != nil {
		return err
	}
	if err := a.dupSet("buf").markOrFault(id); err != nil {
		return err
	}

	var size uint32
	if sizeForm, ok := findChildList(items, "size"); ok && len(sizeForm) == 2 {
		size, err = atomNumber(sizeForm[1])
		if err != nil {
			return err
		}
	}

	var usage uint8
	if usageForm, ok := findChildList(items, "usage"); ok {
		for _, flagAtom := range usageForm[1:] {
			text, err := atomText(flagAtom)
			if err != nil {
				return err
			}
			bit, ok := usageFlags[text]
			if !ok {
				return errs.ErrInvalidFormStructure
			}
			usage |= bit
		}
	}

	return a.builder.Emitter().CreateBuffer(uint32(id), size, usage)
}

var usageFlags = map[string]uint8{
	"map_read":  bytecode.UsageMapRead,
	"map_write": bytecode.UsageMapWrite,
	"copy_src":  bytecode.UsageCopySrc,
	"copy_dst":  bytecode.UsageCopyDst,
	"index":     bytecode.UsageIndex,
	"vertex":    bytecode.UsageVertex,
	"uniform":   bytecode.UsageUniform,
	"storage":   bytecode.UsageStorage,
}

// pipelineForm handles both shorthand `(pipeline N (json "..."))` (always
// render) and canonical `(render-pipeline $pipe:N (json "..."))` /
// `(compute-pipeline $pipe:N (json "..."))`.
func (a *Assembler) pipelineForm(head string, items ast.List) error {
	if len(items) < 2 {
		return errs.ErrInvalidFormStructure
	}
	idAtom, err := atomText(items[1])
	if err != nil {
		return err
	}
	id, err := parseID(idAtom, "pipe")
	if err != nil {
		return err
	}
	if err := a.dupSet("pipe").markOrFault(id); err != nil {
		return err
	}

	descID, err := a.descriptorOrDefault(items)
	if err != nil {
		return err
	}

	if head == "compute-pipeline" {
		return a.builder.Emitter().CreateComputePipeline(uint32(id), uint32(descID))
	}
	return a.builder.Emitter().CreateRenderPipeline(uint32(id), uint32(descID))
}

// descriptorOrDefault returns the data id for a `(json "...")` child, or an
// interned empty-object blob when absent (spec.md §4.7 "empty `{}` when
// absent").
func (a *Assembler) descriptorOrDefault(items ast.List) (datasection.Id, error) {
	if jsonForm, ok := findChildList(items, "json"); ok && len(jsonForm) == 2 {
		s, err := stringText(jsonForm[1])
		if err != nil {
			return 0, err
		}
		return a.builder.AddData([]byte(s))
	}
	return a.builder.AddData([]byte("{}"))
}

func (a *Assembler) bindGroupForm(items ast.List) error {
	if len(items) < 2 {
		return errs.ErrInvalidFormStructure
	}
	idAtom, err := atomText(items[1])
	if err != nil {
		return err
	}
	id, err := parseID(idAtom, "bg")
	if err != nil {
		return err
	}
	if err := a.dupSet("bg").markOrFault(id); err != nil {
		return err
	}

	var layoutID uint32
	if layoutForm, ok := findChildList(items, "layout"); ok && len(layoutForm) == 2 {
		layoutID, err = atomNumber(layoutForm[1])
		if err != nil {
			return err
		}
	}

	var entriesID datasection.Id
	if entriesForm, ok := findChildList(items, "entries"); ok && len(entriesForm) == 2 {
		s, err := stringText(entriesForm[1])
		if err != nil {
			return err
		}
		entriesID, err = a.builder.AddData([]byte(s))
		if err != nil {
			return err
		}
	} else {
		entriesID, err = a.builder.AddData([]byte("[]"))
		if err != nil {
			return err
		}
	}

	return a.builder.Emitter().CreateBindGroup(uint32(id), layoutID, uint32(entriesID))
}
