package extrinsic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeMultiSignatureRoundTrip(t *testing.T) {
	cases := []struct {
		sigType SignatureType
		length  int
	}{
		{SignatureEd25519, 64},
		{SignatureSr25519, 64},
		{SignatureEcdsa, 65},
	}
	for _, c := range cases {
		sig := make([]byte, c.length)
		encoded := encodeMultiSignature(sig, c.sigType)
		decodedSig, decodedType, n, err := decodeMultiSignature(encoded)
		require.NoError(t, err)
		assert.Equal(t, sig, decodedSig)
		assert.Equal(t, c.sigType, decodedType)
		assert.Equal(t, len(encoded), n)
	}
}

func TestInferSignatureType(t *testing.T) {
	zero64 := make([]byte, 64)
	assert.Equal(t, SignatureEd25519, InferSignatureType(zero64))

	sr := make([]byte, 64)
	sr[63] = 0x80
	assert.Equal(t, SignatureSr25519, InferSignatureType(sr))

	ecdsa := make([]byte, 65)
	assert.Equal(t, SignatureEcdsa, InferSignatureType(ecdsa))

	assert.Equal(t, SignatureUnknown, InferSignatureType(make([]byte, 10)))
}
