package extrinsic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMultiAddressVariantByLength(t *testing.T) {
	id32 := make([]byte, 32)
	for i := range id32 {
		id32[i] = byte(i)
	}
	encoded := encodeMultiAddress(id32)
	assert.Equal(t, multiAddressID, encoded[0])
	assert.Equal(t, id32, encoded[1:])

	addr20 := make([]byte, 20)
	encoded = encodeMultiAddress(addr20)
	assert.Equal(t, multiAddressAddress20, encoded[0])

	other := make([]byte, 16)
	encoded = encodeMultiAddress(other)
	assert.Equal(t, multiAddressRaw, encoded[0])
}

func TestDecodeMultiAddressRoundTrip(t *testing.T) {
	signer := make([]byte, 32)
	for i := range signer {
		signer[i] = byte(i)
	}
	encoded := encodeMultiAddress(signer)
	decoded, n, err := decodeMultiAddress(encoded)
	require.NoError(t, err)
	assert.Equal(t, signer, decoded)
	assert.Equal(t, len(encoded), n)
}

func TestDecodeMultiAddressUnknownVariant(t *testing.T) {
	_, _, err := decodeMultiAddress([]byte{0xfe, 0x00})
	assert.Error(t, err)
}
