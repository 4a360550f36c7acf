// Package assembler implements the two-pass PBSF-AST-to-PNGB translator
// (C8, spec.md §4.7). It only ever imports ast for its input shapes; no
// tokenizer or lexer lives in this package (SPEC_FULL.md §2).
package assembler

import (
	"github.com/HugoDaniel/pngine-sub011/ast"
	"github.com/HugoDaniel/pngine-sub011/datasection"
	"github.com/HugoDaniel/pngine-sub011/errs"
	"github.com/HugoDaniel/pngine-sub011/pngb"
)

// Assembler holds the per-assembly state pass 1 and pass 2 share: the
// builder being populated, per-resource-kind duplicate bitsets, and the
// data-section ids collected for explicit `(data $d:N ...)` forms so later
// forms can reference them regardless of source order.
type Assembler struct {
	builder     *pngb.Builder
	dup         map[string]*resourceSet
	dataByIndex map[uint16]datasection.Id
}

func newAssembler() (*Assembler, error) {
	b, err := pngb.NewBuilder()
	if err != nil {
		return nil, err
	}
	return &Assembler{
		builder:     b,
		dup:         make(map[string]*resourceSet),
		dataByIndex: make(map[uint16]datasection.Id),
	}, nil
}

func (a *Assembler) dupSet(prefix string) *resourceSet {
	s, ok := a.dup[prefix]
	if !ok {
		s = &resourceSet{}
		a.dup[prefix] = s
	}
	return s
}

// AssembleSource parses src as PBSF and assembles it into a PNGB v5 buffer
// in one call.
func AssembleSource(src []byte) ([]byte, error) {
	forms, err := ast.Read(src)
	if err != nil {
		return nil, err
	}
	return Assemble(forms)
}

// Assemble walks the parsed top-level forms and produces a serialized PNGB
// buffer. Accepted top-level shapes are either a single `(module "name"
// form*)` wrapper or a sequence of standalone shorthand forms (spec.md
// §4.7 "Accepted top-level shapes"); assembling the same forms twice always
// produces byte-identical output (spec.md §8 property 6), since every id is
// assigned by walking forms left to right with no hash-order dependency.
func Assemble(forms ast.List) ([]byte, error) {
	a, err := newAssembler()
	if err != nil {
		return nil, err
	}

	body, err := a.unwrapModule(forms)
	if err != nil {
		return nil, err
	}

	if err := a.collectData(body); err != nil {
		return nil, err
	}

	if err := a.emitForms(body); err != nil {
		return nil, err
	}

	return a.builder.Finalize()
}

// unwrapModule recognizes the `(module "name" form*)` wrapper shape. Any
// other top-level shape (including a bare sequence of forms) is treated as
// the shorthand top-level form list directly.
func (a *Assembler) unwrapModule(forms ast.List) (ast.List, error) {
	if len(forms) != 1 {
		return forms, nil
	}

	items, err := listItems(forms[0])
	if err != nil {
		return forms, nil
	}
	if len(items) == 0 || items[0].Kind() != ast.KindAtom || items[0].Atom() != "module" {
		return forms, nil
	}

	if len(items) < 2 {
		return nil, errs.ErrInvalidFormStructure
	}
	name, err := stringText(items[1])
	if err != nil {
		return nil, err
	}
	if _, err := a.builder.InternString([]byte(name)); err != nil {
		return nil, err
	}

	return items[2:], nil
}

// collectData is pass 1: it walks every top-level `data` form and stores
// its blob into the data section, so forms appearing anywhere else in the
// source (before or after) can reference it by resource index (spec.md
// §4.7 "Pass 1 (collect)").
func (a *Assembler) collectData(forms ast.List) error {
	for _, form := range forms {
		items, err := listItems(form)
		if err != nil {
			continue // a bare top-level atom/string is not a data form
		}
		if len(items) == 0 || items[0].Kind() != ast.KindAtom {
			continue
		}
		if items[0].Atom() != "data" {
			continue
		}

		if len(items) != 3 {
			return errs.ErrInvalidFormStructure
		}
		idAtom, err := atomText(items[1])
		if err != nil {
			return err
		}
		id, err := parseID(idAtom, "d")
		if err != nil {
			return err
		}
		if err := a.dupSet("d").markOrFault(id); err != nil {
			return err
		}

		content, err := stringText(items[2])
		if err != nil {
			return err
		}
		dataID, err := a.builder.AddData([]byte(content))
		if err != nil {
			return err
		}
		a.dataByIndex[id] = dataID
	}
	return nil
}

// emitForms is pass 2: it walks every top-level form in source order and
// emits the corresponding bytecode and side-table entries (spec.md §4.7
// "Pass 2 (emit)").
func (a *Assembler) emitForms(forms ast.List) error {
	for _, form := range forms {
		items, err := listItems(form)
		if err != nil {
			return errs.ErrInvalidFormStructure
		}
		if len(items) == 0 || items[0].Kind() != ast.KindAtom {
			return errs.ErrInvalidFormStructure
		}

		head := items[0].Atom()
		switch head {
		case "data":
			// already handled in pass 1.
			continue
		case "shader":
			err = a.shaderForm(items)
		case "buffer":
			err = a.bufferForm(items)
		case "pipeline", "render-pipeline", "compute-pipeline":
			err = a.pipelineForm(head, items)
		case "bind-group":
			err = a.bindGroupForm(items)
		case "pass":
			err = a.passForm(items)
		case "frame":
			err = a.frameForm(items)
		default:
			return errs.ErrUnknownForm
		}
		if err != nil {
			return err
		}
	}
	return nil
}
