package datasection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAlwaysAppendsNoDedup(t *testing.T) {
	s := New()
	id1, err := s.Add([]byte("hello"))
	require.NoError(t, err)
	id2, err := s.Add([]byte("hello"))
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	assert.Equal(t, uint16(2), s.Count())
}

func TestAddCopiesInput(t *testing.T) {
	s := New()
	src := []byte("hello world")
	id, err := s.Add(src)
	require.NoError(t, err)

	for i := range src {
		src[i] = 'x'
	}

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, "hello world", string(got))
}

func TestSerializeDeserializeRoundtrip(t *testing.T) {
	s := New()
	_, _ = s.Add([]byte("one"))
	_, _ = s.Add([]byte(""))
	_, _ = s.Add([]byte("three-three-three"))

	buf := s.Serialize()
	decoded, err := Deserialize(buf)
	require.NoError(t, err)
	require.Equal(t, s.Count(), decoded.Count())

	for id := Id(0); id < Id(s.Count()); id++ {
		want, _ := s.Get(id)
		got, ok := decoded.Get(id)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	assert.Equal(t, buf, decoded.Serialize())
}

func TestDataBlobScenario(t *testing.T) {
	// spec.md S2: a single 11-byte blob "hello world".
	s := New()
	id, err := s.Add([]byte("hello world"))
	require.NoError(t, err)

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Len(t, got, 11)
	assert.Equal(t, "hello world", string(got))
}

func TestDeserializeMalformed(t *testing.T) {
	_, err := Deserialize([]byte{0x01, 0x00})
	require.Error(t, err)

	// count=1 but offset/length points past the payload.
	buf := []byte{
		0x01, 0x00, // count
		0x00, 0x00, 0x00, 0x00, // offset 0
		0x05, 0x00, 0x00, 0x00, // length 5, but no payload bytes follow
	}
	_, err = Deserialize(buf)
	require.Error(t, err)
}
