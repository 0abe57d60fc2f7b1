package crh

import (
	"bytes"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
)

func TestParamsRoundTrip(t *testing.T) {
	assert := require.New(t)

	h := NewBHP256(testDomain)

	var buf bytes.Buffer
	n, err := h.WriteTo(&buf)
	assert.NoError(err)
	assert.Equal(int64(buf.Len()), n)

	restored, err := ReadParams(&buf)
	assert.NoError(err)
	assert.Equal(h.NumWindows(), restored.NumWindows())
	assert.Equal(h.WindowSize(), restored.WindowSize())

	input := repeatBytes(127, 32)
	want, err := h.HashBytes(input)
	assert.NoError(err)
	got, err := restored.HashBytes(input)
	assert.NoError(err)
	assert.True(want.Equal(&got), "restored parameters hash differently")
}

func TestReadParamsRejectsBadGeometry(t *testing.T) {
	assert := require.New(t)

	for _, params := range []serializedParams{
		{NumWindows: 0, WindowSize: 32},
		{NumWindows: MaxNumWindows + 1, WindowSize: 32},
		{NumWindows: 2, WindowSize: 0},
		{NumWindows: 2, WindowSize: MaxWindowSize}, // over the field bound of 63
		{NumWindows: 2, WindowSize: 8, Windows: [][]byte{{}}},
		{NumWindows: 1, WindowSize: 1, Windows: [][]byte{{0x01, 0x02}}},
	} {
		enc, err := cbor.Marshal(params)
		assert.NoError(err)
		_, err = ReadParams(bytes.NewReader(enc))
		assert.Error(err, "geometry %+v must be rejected", params)
	}
}

func TestReadParamsRejectsCorruptPoint(t *testing.T) {
	assert := require.New(t)

	h := Setup(testDomain, 2, 4)

	var buf bytes.Buffer
	_, err := h.WriteTo(&buf)
	assert.NoError(err)

	var params serializedParams
	assert.NoError(cbor.Unmarshal(buf.Bytes(), &params))

	// overwrite the first point with y = 3, for which no x-coordinate
	// exists on this curve
	bad := make([]byte, pointBytes)
	bad[pointBytes-1] = 3
	copy(params.Windows[0], bad)
	enc, err := cbor.Marshal(params)
	assert.NoError(err)

	_, err = ReadParams(bytes.NewReader(enc))
	assert.Error(err)
}

func TestReadParamsRejectsGarbage(t *testing.T) {
	_, err := ReadParams(bytes.NewReader([]byte("not cbor at all")))
	require.Error(t, err)
}
