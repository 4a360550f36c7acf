package wgsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndRead(t *testing.T) {
	tbl := New()
	id0, err := tbl.Add(0, nil)
	require.NoError(t, err)
	id1, err := tbl.Add(1, []uint16{0})
	require.NoError(t, err)

	assert.Equal(t, Id(0), id0)
	assert.Equal(t, Id(1), id1)

	deps, ok := tbl.Deps(id1)
	require.True(t, ok)
	assert.Equal(t, []uint16{0}, deps)
}

func TestAddClonesDeps(t *testing.T) {
	tbl := New()
	deps := []uint16{1, 2, 3}
	id, err := tbl.Add(5, deps)
	require.NoError(t, err)

	deps[0] = 99
	got, _ := tbl.Deps(id)
	assert.Equal(t, []uint16{1, 2, 3}, got)
}

func TestSerializeDeserializeRoundtrip(t *testing.T) {
	tbl := New()
	_, _ = tbl.Add(0, nil)
	_, _ = tbl.Add(1, []uint16{0})
	_, _ = tbl.Add(2, []uint16{0, 1})

	buf := tbl.Serialize()
	decoded, err := Deserialize(buf)
	require.NoError(t, err)
	require.Equal(t, tbl.Count(), decoded.Count())

	for id := Id(0); id < Id(tbl.Count()); id++ {
		wantData, _ := tbl.DataID(id)
		gotData, ok := decoded.DataID(id)
		require.True(t, ok)
		assert.Equal(t, wantData, gotData)

		wantDeps, _ := tbl.Deps(id)
		gotDeps, _ := decoded.Deps(id)
		assert.Equal(t, wantDeps, gotDeps)
	}
}

func TestDeserializeTruncatedPreservesCount(t *testing.T) {
	tbl := New()
	_, _ = tbl.Add(0, []uint16{1, 2})
	_, _ = tbl.Add(1, []uint16{3})
	buf := tbl.Serialize()

	// Truncate mid-second-entry.
	decoded, err := Deserialize(buf[:len(buf)-1])
	require.NoError(t, err)
	assert.Equal(t, 2, decoded.Count())
}

func TestDeserializeEmpty(t *testing.T) {
	decoded, err := Deserialize(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, decoded.Count())
}

func TestLimits(t *testing.T) {
	tbl := New()
	deps := make([]uint16, MaxDeps+1)
	_, err := tbl.Add(0, deps)
	require.Error(t, err)
}
