package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadAtomsAndLists(t *testing.T) {
	forms, err := Read([]byte(`(shader 0 "@vertex fn v() {}")`))
	require.NoError(t, err)
	require.Len(t, forms, 1)

	form := forms[0]
	require.Equal(t, KindList, form.Kind())
	items := form.Items()
	require.Len(t, items, 3)

	require.Equal(t, KindAtom, items[0].Kind())
	require.Equal(t, "shader", items[0].Atom())

	require.Equal(t, KindAtom, items[1].Kind())
	require.Equal(t, "0", items[1].Atom())

	require.Equal(t, KindString, items[2].Kind())
	require.Equal(t, "@vertex fn v() {}", items[2].Str())
}

func TestReadMultipleTopLevelForms(t *testing.T) {
	forms, err := Read([]byte(`(shader 0 "a") (pipeline 0 (json "{}"))`))
	require.NoError(t, err)
	require.Len(t, forms, 2)
}

func TestReadNestedLists(t *testing.T) {
	forms, err := Read([]byte(`(frame "main" (begin-render-pass :texture 0) (draw 3 1))`))
	require.NoError(t, err)
	require.Len(t, forms, 1)

	items := forms[0].Items()
	require.Len(t, items, 4)
	require.Equal(t, KindList, items[2].Kind())
	require.Equal(t, KindList, items[3].Kind())
}

func TestReadComments(t *testing.T) {
	forms, err := Read([]byte("; a comment\n(draw 3 1) ; trailing\n"))
	require.NoError(t, err)
	require.Len(t, forms, 1)
}

func TestReadStringEscapes(t *testing.T) {
	forms, err := Read([]byte(`("a\nb\tc")`))
	require.NoError(t, err)
	require.Equal(t, "a\nb\tc", forms[0].Items()[0].Str())
}

func TestReadUnterminatedStringFails(t *testing.T) {
	_, err := Read([]byte(`(shader "abc)`))
	require.Error(t, err)
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
}

func TestReadUnbalancedParensFails(t *testing.T) {
	_, err := Read([]byte(`(shader 0 "a"`))
	require.Error(t, err)

	_, err = Read([]byte(`)`))
	require.Error(t, err)
}

func TestReadEmptySource(t *testing.T) {
	forms, err := Read([]byte(""))
	require.NoError(t, err)
	require.Empty(t, forms)
}

func TestReadResourceIdAtom(t *testing.T) {
	forms, err := Read([]byte(`(buffer $buf:3 (size 256))`))
	require.NoError(t, err)
	require.Equal(t, "$buf:3", forms[0].Items()[1].Atom())
}
