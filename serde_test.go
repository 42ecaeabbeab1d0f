package appendbytes

import (
	"encoding/json"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceJSONRoundTrip(t *testing.T) {
	m := map[int]*BytesSlice{
		1: FromBytes([]byte{1, 2, 3}),
		2: FromBytes([]byte{3, 2, 3}),
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var got map[int]*BytesSlice
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)
	for k, v := range m {
		assert.True(t, v.Equal(got[k]), "key %d", k)
	}
}

func TestSliceCBORRoundTrip(t *testing.T) {
	m := map[int]*BytesSlice{
		1: FromBytes([]byte{1, 2, 3}),
		2: FromBytes([]byte{3, 2, 3}),
	}

	data, err := cbor.Marshal(m)
	require.NoError(t, err)

	var got map[int]*BytesSlice
	require.NoError(t, cbor.Unmarshal(data, &got))
	require.Len(t, got, 2)
	for k, v := range m {
		assert.True(t, v.Equal(got[k]), "key %d", k)
	}
}

func TestOwnerJSONRoundTrip(t *testing.T) {
	a := New()
	require.NoError(t, a.AppendString("hello"))

	data, err := json.Marshal(a)
	require.NoError(t, err)

	var got AppendOnlyBytes
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, []byte("hello"), got.Bytes())

	// Only content round-trips, not capacity.
	assert.Equal(t, 5, got.Cap())

	// The decoded container is a fully usable owner.
	require.NoError(t, got.AppendString("!"))
	assert.Equal(t, []byte("hello!"), got.Bytes())

	a.Close()
	got.Close()
}

func TestOwnerCBORRoundTrip(t *testing.T) {
	a := New()
	require.NoError(t, a.Append([]byte{0, 1, 2, 0xff}))

	data, err := cbor.Marshal(a)
	require.NoError(t, err)

	var got AppendOnlyBytes
	require.NoError(t, cbor.Unmarshal(data, &got))
	assert.Equal(t, []byte{0, 1, 2, 0xff}, got.Bytes())

	a.Close()
	got.Close()
}

func TestUnmarshalIntoLiveOwnerKeepsSlices(t *testing.T) {
	a := New()
	require.NoError(t, a.AppendString("before"))
	held, err := a.SliceAll()
	require.NoError(t, err)

	require.NoError(t, json.Unmarshal([]byte(`"YWZ0ZXI="`), a)) // "after"
	assert.Equal(t, []byte("after"), a.Bytes())
	assert.Equal(t, []byte("before"), held.Bytes())

	held.Free()
	a.Close()
}
