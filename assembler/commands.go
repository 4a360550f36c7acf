package assembler

import (
	"github.com/HugoDaniel/pngine-sub011/ast"
	"github.com/HugoDaniel/pngine-sub011/bytecode"
	"github.com/HugoDaniel/pngine-sub011/errs"
)

var loadOps = map[string]bytecode.LoadOp{
	"load":  bytecode.LoadOpLoad,
	"clear": bytecode.LoadOpClear,
}

var storeOps = map[string]bytecode.StoreOp{
	"store":   bytecode.StoreOpStore,
	"discard": bytecode.StoreOpDiscard,
}

// emitBeginRenderPass handles the `begin-render-pass` command, including the
// shorthand keyword arguments :texture, :load, :store (spec.md §4.7
// "Keyword arguments"). Any other keyword atom is ignored, matching the
// spec's forward-compatibility note.
func (a *Assembler) emitBeginRenderPass(items ast.List) error {
	kw := keywordArgs(items[1:])

	texture := uint32(0)
	if n, ok := kw["texture"]; ok {
		v, err := atomNumber(n)
		if err != nil {
			return err
		}
		texture = v
	}

	load := bytecode.LoadOpClear
	if n, ok := kw["load"]; ok {
		text, err := atomText(n)
		if err != nil {
			return err
		}
		op, ok := loadOps[text]
		if !ok {
			return errs.ErrInvalidFormStructure
		}
		load = op
	}

	store := bytecode.StoreOpStore
	if n, ok := kw["store"]; ok {
		text, err := atomText(n)
		if err != nil {
			return err
		}
		op, ok := storeOps[text]
		if !ok {
			return errs.ErrInvalidFormStructure
		}
		store = op
	}

	return a.builder.Emitter().BeginRenderPass(texture, load, store, bytecode.DepthTexNone)
}

func numericArgs(items ast.List, min int) ([]uint32, error) {
	args := make([]uint32, 0, len(items))
	for _, it := range items {
		v, err := atomNumber(it)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	if len(args) < min {
		return nil, errs.ErrInvalidFormStructure
	}
	return args, nil
}

func arg(args []uint32, i int) uint32 {
	if i < len(args) {
		return args[i]
	}
	return 0
}

// emitCommand dispatches one pass/frame-body command by its head atom
// (spec.md §4.7's inline-command vocabulary shared by `(pass ...)`'s
// `(commands ...)` child and the frame shorthand's direct children).
func (a *Assembler) emitCommand(items ast.List) error {
	head, err := atomText(items[0])
	if err != nil {
		return err
	}

	e := a.builder.Emitter()

	switch head {
	case "begin-render-pass":
		return a.emitBeginRenderPass(items)
	case "begin-compute-pass":
		return e.BeginComputePass()
	case "set-pipeline":
		args, err := numericArgs(items[1:], 1)
		if err != nil {
			return err
		}
		return e.SetPipeline(args[0])
	case "set-bind-group":
		args, err := numericArgs(items[1:], 2)
		if err != nil {
			return err
		}
		return e.SetBindGroup(uint8(args[0]), args[1])
	case "set-vertex-buffer":
		args, err := numericArgs(items[1:], 2)
		if err != nil {
			return err
		}
		return e.SetVertexBuffer(uint8(args[0]), args[1])
	case "set-index-buffer":
		args, err := numericArgs(items[1:], 2)
		if err != nil {
			return err
		}
		return e.SetIndexBuffer(args[0], uint8(args[1]))
	case "draw":
		args, err := numericArgs(items[1:], 2)
		if err != nil {
			return err
		}
		return e.Draw(args[0], args[1], arg(args, 2), arg(args, 3))
	case "draw-indexed":
		args, err := numericArgs(items[1:], 2)
		if err != nil {
			return err
		}
		return e.DrawIndexed(args[0], args[1], arg(args, 2), arg(args, 3), arg(args, 4))
	case "dispatch":
		args, err := numericArgs(items[1:], 3)
		if err != nil {
			return err
		}
		return e.Dispatch(args[0], args[1], args[2])
	case "end-pass":
		return e.EndPass()
	case "exec-pass":
		if len(items) < 2 {
			return errs.ErrInvalidFormStructure
		}
		refAtom, err := atomText(items[1])
		if err != nil {
			return err
		}
		id, err := parseID(refAtom, "pass")
		if err != nil {
			return err
		}
		return e.ExecPass(uint32(id))
	case "submit":
		return e.Submit()
	default:
		return errs.ErrUnknownForm
	}
}
