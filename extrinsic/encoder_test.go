package extrinsic

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justkawal/polkadart/chaininfo"
	"github.com/justkawal/polkadart/codec"
	"github.com/justkawal/polkadart/errs"
	"github.com/justkawal/polkadart/extension"
)

// emptyDescriptor advertises versions with no schema entries, enough to
// drive the bare-extrinsic and signed-with-no-extensions scenarios.
type emptyDescriptor struct {
	versions map[int]bool
}

func (d *emptyDescriptor) Versions() map[int]bool               { return d.versions }
func (d *emptyDescriptor) MetadataVersion() int                 { return 16 }
func (d *emptyDescriptor) Extensions(int) []chaininfo.Extension { return nil }

type emptyChainInfo struct {
	desc *emptyDescriptor
}

func (c *emptyChainInfo) Extrinsic() chaininfo.ExtrinsicDescriptor { return c.desc }
func (c *emptyChainInfo) TypeRegistry() codec.TypeRegistry         { return nil }

func newEncoder(t *testing.T, detectedVersion int) *Encoder {
	t.Helper()
	info := &emptyChainInfo{desc: &emptyDescriptor{versions: map[int]bool{4: true, 5: true}}}
	schema := extension.NewSchema(info, detectedVersion)
	return NewEncoder(detectedVersion, nil, schema)
}

// populatedDescriptor advertises a V16-shaped schema with one
// non-zero-sized, in-block extension (CheckNonce), enough to drive
// encodeExtensionsInBlock's own MissingExtensionValueError.
type populatedDescriptor struct {
	versions map[int]bool
}

func (d *populatedDescriptor) Versions() map[int]bool { return d.versions }
func (d *populatedDescriptor) MetadataVersion() int    { return 16 }
func (d *populatedDescriptor) Extensions(int) []chaininfo.Extension {
	return []chaininfo.Extension{
		{Identifier: extension.IdentCheckNonce, TypeID: 1, IncludesInBlock: true, IncludesInSigned: true},
	}
}

type populatedChainInfo struct {
	desc *populatedDescriptor
	reg  codec.TypeRegistry
}

func (c *populatedChainInfo) Extrinsic() chaininfo.ExtrinsicDescriptor { return c.desc }
func (c *populatedChainInfo) TypeRegistry() codec.TypeRegistry         { return c.reg }

// u32Codec is a minimal non-zero-sized codec.Codec, just enough to let
// encodeExtensionsInBlock reach the missing-value check for an entry
// that isn't skipped as zero-sized.
type u32Codec struct{}

func (u32Codec) Encode(dst []byte, v interface{}) ([]byte, error) {
	n, _ := v.(uint32)
	return append(dst, byte(n), byte(n>>8), byte(n>>16), byte(n>>24)), nil
}
func (u32Codec) Decode(src []byte) (interface{}, int, error) {
	return uint32(0), 4, nil
}
func (u32Codec) IsZeroSized() bool { return false }

type u32Registry struct{}

func (u32Registry) Resolve(uint32) (codec.Codec, error) { return u32Codec{}, nil }

func newEncoderWithPopulatedSchema(t *testing.T, detectedVersion int) *Encoder {
	t.Helper()
	info := &populatedChainInfo{
		desc: &populatedDescriptor{versions: map[int]bool{4: true, 5: true}},
		reg:  u32Registry{},
	}
	schema := extension.NewSchema(info, detectedVersion)
	return NewEncoder(detectedVersion, info.reg, schema)
}

func TestEncodeMissingExtensionValueError(t *testing.T) {
	enc := newEncoderWithPopulatedSchema(t, 5)

	signer := make([]byte, 32)
	sig := make([]byte, 64)

	_, err := enc.Encode(SignedData{
		Signer:        signer,
		Signature:     sig,
		SignatureType: SignatureSr25519,
		Extensions:    map[string]interface{}{},
	})
	require.Error(t, err)

	var missing *errs.MissingExtensionValueError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, extension.IdentCheckNonce, missing.Identifier)
}

func TestEncodeUnsignedV5Bare(t *testing.T) {
	enc := newEncoder(t, 5)
	out, err := enc.EncodeUnsigned([]byte{0x00, 0x01})
	require.NoError(t, err)
	assert.Equal(t, "0c050001", hex.EncodeToString(out))
}

func TestEncodeUnsignedV4Bare(t *testing.T) {
	enc := newEncoder(t, 4)
	out, err := enc.EncodeUnsigned([]byte{0x00, 0x01})
	require.NoError(t, err)
	assert.Equal(t, "0c040001", hex.EncodeToString(out))
}

func TestEncodeUnsignedV5SingleByteCall(t *testing.T) {
	enc := newEncoder(t, 5)
	out, err := enc.EncodeUnsigned([]byte{0xff})
	require.NoError(t, err)
	assert.Equal(t, "0805ff", hex.EncodeToString(out))
}

func TestEncodeUnsignedV4EmptyCall(t *testing.T) {
	enc := newEncoder(t, 4)
	out, err := enc.EncodeUnsigned(nil)
	require.NoError(t, err)
	assert.Equal(t, "0404", hex.EncodeToString(out))
}

func TestEncodeSignedV5WithZeroSignature(t *testing.T) {
	enc := newEncoder(t, 5)

	signer := make([]byte, 32)
	for i := range signer {
		signer[i] = byte(i)
	}
	sig := make([]byte, 64)

	out, err := enc.Encode(SignedData{
		Signer:        signer,
		Signature:     sig,
		SignatureType: InferSignatureType(sig),
	})
	require.NoError(t, err)

	_, consumed, err := decodeCompactLength(out)
	require.NoError(t, err)
	body := out[consumed:]

	require.True(t, len(body) >= 99)
	assert.Equal(t, byte(0x85), body[0])
	assert.Equal(t, byte(0x00), body[1])
	assert.Equal(t, signer, body[2:34])
	assert.Equal(t, byte(0x00), body[34])
	for _, b := range body[35:99] {
		assert.Equal(t, byte(0x00), b)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	enc := newEncoder(t, 5)
	signer := make([]byte, 32)
	sig := make([]byte, 64)
	call := []byte{0x07, 0x08, 0x09}

	out, err := enc.Encode(SignedData{
		Signer:        signer,
		Signature:     sig,
		SignatureType: SignatureSr25519,
		CallData:      call,
	})
	require.NoError(t, err)

	decoded, err := enc.Decode(out)
	require.NoError(t, err)
	assert.True(t, decoded.IsSigned)
	assert.False(t, decoded.IsGeneral)
	assert.Equal(t, 5, decoded.Version)
	assert.Equal(t, signer, decoded.Signer)
	assert.Equal(t, sig, decoded.Signature)
	assert.Equal(t, SignatureSr25519, decoded.SignatureType)
	assert.Equal(t, call, decoded.CallData)
}

func TestDecodeRejectsUnknownVersionByte(t *testing.T) {
	enc := newEncoder(t, 4)
	// length prefix for a single-byte body containing an invalid
	// version byte 0x01.
	_, err := enc.Decode([]byte{0x04, 0x01})
	assert.Error(t, err)
}

func TestEncodeGeneralRequiresV5(t *testing.T) {
	enc := newEncoder(t, 4)
	_, err := enc.EncodeGeneral(nil, nil, 0)
	assert.Error(t, err)
}
