package assembler

import (
	"github.com/HugoDaniel/pngine-sub011/ast"
	"github.com/HugoDaniel/pngine-sub011/bytecode"
	"github.com/HugoDaniel/pngine-sub011/errs"
)

// passForm handles `(pass $pass:N "name"? (render|compute (commands ...)))`
// (spec.md §4.7): it inlines the pass, emitting begin_render_pass /
// begin_compute_pass with the canvas-default attachment, walks the nested
// commands list, then emits end_pass.
func (a *Assembler) passForm(items ast.List) error {
	if len(items) < 3 {
		return errs.ErrInvalidFormStructure
	}
	idAtom, err := atomText(items[1])
	if err != nil {
		return err
	}
	id, err := parseID(idAtom, "pass")
	if err != nil {
		return err
	}
	if err := a.dupSet("pass").markOrFault(id); err != nil {
		return err
	}

	rest := items[2:]
	if len(rest) > 0 && rest[0].Kind() == ast.KindString {
		if _, err := a.builder.InternString([]byte(rest[0].Str())); err != nil {
			return err
		}
		rest = rest[1:]
	}

	if renderForm, ok := findChildList(rest, "render"); ok {
		if err := a.builder.Emitter().BeginRenderPass(0, bytecode.LoadOpClear, bytecode.StoreOpStore, bytecode.DepthTexNone); err != nil {
			return err
		}
		if err := a.walkCommands(renderForm); err != nil {
			return err
		}
	} else if computeForm, ok := findChildList(rest, "compute"); ok {
		if err := a.builder.Emitter().BeginComputePass(); err != nil {
			return err
		}
		if err := a.walkCommands(computeForm); err != nil {
			return err
		}
	} else {
		return errs.ErrInvalidFormStructure
	}

	return a.builder.Emitter().EndPass()
}

func (a *Assembler) walkCommands(scope ast.List) error {
	commands, ok := findChildList(scope, "commands")
	if !ok {
		return nil
	}
	for _, cmd := range commands[1:] {
		items, err := listItems(cmd)
		if err != nil {
			return err
		}
		if err := a.emitCommand(items); err != nil {
			return err
		}
	}
	return nil
}

// frameForm handles both the canonical `(frame $frm:N "name" cmd*)` and the
// shorthand `(frame "name" cmd*)` shapes (spec.md §4.7). In shorthand mode
// the frame id is the next unused id in the frame namespace, and the body
// commands may be exec-pass/submit or inline render-pass commands directly.
func (a *Assembler) frameForm(items ast.List) error {
	if len(items) < 2 {
		return errs.ErrInvalidFormStructure
	}

	var id uint16
	var nameNode ast.Node
	var body ast.List

	if items[1].Kind() == ast.KindAtom && len(items[1].Atom()) > 0 && items[1].Atom()[0] == '$' {
		idAtom, err := atomText(items[1])
		if err != nil {
			return err
		}
		var perr error
		id, perr = parseID(idAtom, "frm")
		if perr != nil {
			return perr
		}
		if len(items) < 3 {
			return errs.ErrInvalidFormStructure
		}
		nameNode = items[2]
		body = items[3:]
	} else {
		id = a.dupSet("frm").nextFree()
		nameNode = items[1]
		body = items[2:]
	}

	if err := a.dupSet("frm").markOrFault(id); err != nil {
		return err
	}

	name, err := stringText(nameNode)
	if err != nil {
		return err
	}
	nameID, err := a.builder.InternString([]byte(name))
	if err != nil {
		return err
	}

	if err := a.builder.Emitter().DefineFrame(uint32(id), uint32(nameID)); err != nil {
		return err
	}

	for _, child := range body {
		childItems, err := listItems(child)
		if err != nil {
			return err
		}
		if err := a.emitCommand(childItems); err != nil {
			return err
		}
	}

	return a.builder.Emitter().EndFrame()
}
