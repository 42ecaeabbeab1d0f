package appendbytes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlice32Mint(t *testing.T) {
	a := New()
	defer a.Close()
	require.NoError(t, a.AppendString("0123456789"))

	s, err := a.Slice32(2, 8)
	require.NoError(t, err)
	defer s.Free()
	assert.Equal(t, []byte("234567"), s.Bytes())
	assert.Equal(t, 6, s.Len())
	assert.False(t, s.IsEmpty())

	_, err = a.Slice32(2, 11)
	assert.ErrorIs(t, err, ErrRange)
}

func TestSlice32Reslice(t *testing.T) {
	a := New()
	defer a.Close()
	require.NoError(t, a.AppendString("0123456789"))

	s, err := a.Slice32(2, 8)
	require.NoError(t, err)
	defer s.Free()

	sub, err := s.Slice(1, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("345"), sub.Bytes())
	sub.Free()

	_, err = s.Slice(0, 7)
	assert.ErrorIs(t, err, ErrRange)

	c := s.Clone()
	assert.Equal(t, s.Bytes(), c.Bytes())
	c.Free()
}

func TestSlice32Conversions(t *testing.T) {
	a := New()
	require.NoError(t, a.AppendString("abcdef"))

	wide, err := a.Slice(1, 5)
	require.NoError(t, err)
	narrow, err := wide.Compact()
	require.NoError(t, err)
	assert.Equal(t, wide.Bytes(), narrow.Bytes())

	back := narrow.Wide()
	assert.Equal(t, 1, back.Start())
	assert.Equal(t, 5, back.End())

	// Each holds its own reference; the block survives any drop order.
	old := wide.raw
	wide.Free()
	narrow.Free()
	a.Close()
	assert.False(t, old.freed())
	back.Free()
	assert.True(t, old.freed())
}

func TestSlice32ImmutableAcrossGrowth(t *testing.T) {
	a, err := WithCapacity(2)
	require.NoError(t, err)
	defer a.Close()
	require.NoError(t, a.Append([]byte{1, 2}))

	s, err := a.Slice32(0, 2)
	require.NoError(t, err)
	defer s.Free()

	require.NoError(t, a.Append([]byte{3}))
	assert.Equal(t, []byte{1, 2}, s.Bytes())
	assert.Equal(t, []byte{1, 2, 3}, a.Bytes())
}
