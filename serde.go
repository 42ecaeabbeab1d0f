package appendbytes

import (
	"encoding/json"
	"sync/atomic"

	"github.com/fxamacker/cbor/v2"
)

// Serialization encodes only the committed (for the owner) or viewed (for
// a slice) byte content, never capacity or block-generation structure.
// Decoding always lands the bytes in a freshly-allocated block.

// MarshalJSON encodes the viewed bytes, base64 per Go's []byte
// convention.
func (s *BytesSlice) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Bytes())
}

// UnmarshalJSON replaces the view with one over a fresh standalone block.
func (s *BytesSlice) UnmarshalJSON(data []byte) error {
	var b []byte
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	s.replace(FromBytes(b))
	return nil
}

// MarshalCBOR encodes the viewed bytes as a CBOR byte string.
func (s *BytesSlice) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(s.Bytes())
}

// UnmarshalCBOR replaces the view with one over a fresh standalone block.
func (s *BytesSlice) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return err
	}
	s.replace(FromBytes(b))
	return nil
}

// MarshalJSON encodes the committed bytes.
func (a *AppendOnlyBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Bytes())
}

// UnmarshalJSON resets the container to a fresh block holding exactly the
// decoded bytes.
func (a *AppendOnlyBytes) UnmarshalJSON(data []byte) error {
	var b []byte
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	return a.reset(b)
}

// MarshalCBOR encodes the committed bytes as a CBOR byte string.
func (a *AppendOnlyBytes) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(a.Bytes())
}

// UnmarshalCBOR resets the container to a fresh block holding exactly the
// decoded bytes.
func (a *AppendOnlyBytes) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return err
	}
	return a.reset(b)
}

// reset swaps in a new block containing data. The previous block, if any,
// is released like on growth, so slices already cut from it stay valid.
func (a *AppendOnlyBytes) reset(data []byte) error {
	raw, err := allocBlock(len(data))
	if err != nil {
		return err
	}
	copy(raw.buf, data)
	old := a.raw
	wasClosed := atomic.SwapInt32(&a.closed, 0) == 1
	a.raw = raw
	a.len = len(data)
	if old != nil && !wasClosed {
		old.release()
	}
	return nil
}
