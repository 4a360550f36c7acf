package assembler

import (
	"strconv"

	"github.com/HugoDaniel/pngine-sub011/ast"
	"github.com/HugoDaniel/pngine-sub011/errs"
)

// atomNumber parses n as a base-10 unsigned integer atom, faulting with
// ErrExpectedNumber on anything else.
func atomNumber(n ast.Node) (uint32, error) {
	if n.Kind() != ast.KindAtom {
		return 0, errs.ErrExpectedNumber
	}
	v, err := strconv.ParseUint(n.Atom(), 10, 32)
	if err != nil {
		return 0, errs.ErrExpectedNumber
	}
	return uint32(v), nil
}

// atomText requires n to be an atom and returns its text.
func atomText(n ast.Node) (string, error) {
	if n.Kind() != ast.KindAtom {
		return "", errs.ErrExpectedAtom
	}
	return n.Atom(), nil
}

// stringText requires n to be a string literal and returns its contents.
func stringText(n ast.Node) (string, error) {
	if n.Kind() != ast.KindString {
		return "", errs.ErrExpectedString
	}
	return n.Str(), nil
}

// listItems requires n to be a list and returns its items.
func listItems(n ast.Node) (ast.List, error) {
	if n.Kind() != ast.KindList {
		return nil, errs.ErrExpectedList
	}
	return n.Items(), nil
}

// keywordArgs scans items for `:keyword value` pairs (the begin-render-pass
// shorthand's :texture/:load/:store arguments, spec.md §4.7). Unknown
// keyword atoms are tolerated by the caller, not rejected here -- this
// helper only builds the keyword -> value map.
func keywordArgs(items ast.List) map[string]ast.Node {
	out := make(map[string]ast.Node)
	for i := 0; i+1 < len(items); i++ {
		if items[i].Kind() != ast.KindAtom {
			continue
		}
		atom := items[i].Atom()
		if len(atom) > 0 && atom[0] == ':' {
			out[atom[1:]] = items[i+1]
			i++
		}
	}
	return out
}
