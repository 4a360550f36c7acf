package auxtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetCopiesAndIsolates(t *testing.T) {
	src := []byte{1, 2, 3}
	tbl := New()
	tbl.Set(src)

	src[0] = 0xFF
	assert.Equal(t, []byte{1, 2, 3}, tbl.Bytes())
	assert.Equal(t, 3, tbl.Len())
}

func TestEmptyTable(t *testing.T) {
	tbl := New()
	assert.True(t, tbl.IsEmpty())
	assert.Equal(t, 0, tbl.Len())
}

func TestFromBytes(t *testing.T) {
	tbl := FromBytes([]byte("uniforms"))
	assert.False(t, tbl.IsEmpty())
	assert.Equal(t, "uniforms", string(tbl.Bytes()))
}
