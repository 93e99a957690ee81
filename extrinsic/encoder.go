// Package extrinsic implements ExtrinsicEncoder (C5, spec.md §4.5):
// assembly of final wire bytes for the three V5 modes (bare, signed,
// general) and the two V4 modes (bare, signed), bit-exact across both
// wire-format generations.
package extrinsic

import (
	"github.com/justkawal/polkadart/codec"
	"github.com/justkawal/polkadart/errs"
	"github.com/justkawal/polkadart/extension"
)

// Version byte bit masks (spec.md §4.5).
const (
	signedBit  byte = 0x80
	generalBit byte = 0x40
	versionMask byte = 0x3f
)

// SignedData is the input to Encoder.Encode (spec.md §3).
type SignedData struct {
	Signer            []byte
	Signature         []byte
	SignatureType     SignatureType
	Extensions        map[string]interface{}
	AdditionalSigned  map[string]interface{}
	CallData          []byte
	SigningPayload    []byte // informational; not re-derived by the encoder
}

// Encoder assembles extrinsic wire bytes for one detected version.
// DetectedVersion is immutable once constructed, per spec.md §4.1.
type Encoder struct {
	detectedVersion int
	registry        codec.TypeRegistry
	schema          *extension.Schema
}

// NewEncoder binds an Encoder to the detected extrinsic version, a
// type registry, and the ordered extension schema for that version.
func NewEncoder(detectedVersion int, registry codec.TypeRegistry, schema *extension.Schema) *Encoder {
	return &Encoder{detectedVersion: detectedVersion, registry: registry, schema: schema}
}

// DetectedVersion reports the version this encoder targets.
func (e *Encoder) DetectedVersion() int {
	return e.detectedVersion
}

// EncodeUnsigned emits a bare extrinsic: compact(len) ‖ version_byte ‖
// callData (spec.md §4.5.1).
func (e *Encoder) EncodeUnsigned(callData []byte) ([]byte, error) {
	body := append([]byte{byte(e.detectedVersion) & versionMask}, callData...)
	return wrapWithLength(body), nil
}

// Encode emits a signed extrinsic (spec.md §4.5.2):
// compact(len) ‖ 0x{8,detected_version} ‖ MultiAddress(signer) ‖
// MultiSignature(signature,type) ‖ extensions_encoded ‖ callData.
func (e *Encoder) Encode(data SignedData) ([]byte, error) {
	extBytes, err := e.encodeExtensionsInBlock(data.Extensions)
	if err != nil {
		return nil, err
	}

	versionByte := signedBit | (byte(e.detectedVersion) & versionMask)
	body := []byte{versionByte}
	body = append(body, encodeMultiAddress(data.Signer)...)
	body = append(body, encodeMultiSignature(data.Signature, data.SignatureType)...)
	body = append(body, extBytes...)
	body = append(body, data.CallData...)

	return wrapWithLength(body), nil
}

// EncodeGeneral emits a V5 general extrinsic (spec.md §4.5.3):
// compact(len) ‖ 0x45 ‖ extensionVersion_byte ‖ extensions_encoded ‖
// callData. Fails with UnsupportedVersionError if the detected version
// is not 5.
func (e *Encoder) EncodeGeneral(callData []byte, extensions map[string]interface{}, extensionVersion byte) ([]byte, error) {
	if e.detectedVersion != 5 {
		return nil, &errs.UnsupportedVersionError{Version: e.detectedVersion}
	}
	extBytes, err := e.encodeExtensionsInBlock(extensions)
	if err != nil {
		return nil, err
	}

	body := []byte{generalBit | (byte(5) & versionMask), extensionVersion}
	body = append(body, extBytes...)
	body = append(body, callData...)

	return wrapWithLength(body), nil
}

// encodeExtensionsInBlock iterates the schema in order, writing each
// entry's in-block bytes (spec.md §4.5.6). Zero-sized codecs and
// entries not included in-block contribute nothing; CheckMortality /
// CheckEra write their pre-encoded bytes verbatim.
func (e *Encoder) encodeExtensionsInBlock(values map[string]interface{}) ([]byte, error) {
	var out []byte
	for _, entry := range e.schema.Entries() {
		if !entry.IncludesInBlock {
			continue
		}

		if entry.Identifier == extension.IdentCheckMortality || entry.Identifier == extension.IdentCheckEra {
			b, ok := values[entry.Identifier].([]byte)
			if !ok {
				return nil, &errs.EraFormatError{Identifier: entry.Identifier}
			}
			out = append(out, b...)
			continue
		}

		codecImpl, err := e.registry.Resolve(entry.TypeID)
		if err != nil {
			return nil, &errs.CodecError{TypeID: entry.TypeID, Cause: err}
		}
		if codecImpl.IsZeroSized() {
			continue
		}

		v, ok := values[entry.Identifier]
		if !ok {
			return nil, &errs.MissingExtensionValueError{Identifier: entry.Identifier}
		}
		encoded, err := codecImpl.Encode(nil, v)
		if err != nil {
			return nil, &errs.CodecError{TypeID: entry.TypeID, Cause: err}
		}
		out = append(out, encoded...)
	}
	return out, nil
}

// decodeExtensions is the inverse of encodeExtensionsInBlock: it reads
// each schema entry's in-block bytes off the front of src in order and
// returns the decoded values plus bytes consumed.
func (e *Encoder) decodeExtensions(src []byte) (map[string]interface{}, int, error) {
	values := make(map[string]interface{})
	total := 0
	for _, entry := range e.schema.Entries() {
		if !entry.IncludesInBlock {
			continue
		}

		if entry.Identifier == extension.IdentCheckMortality || entry.Identifier == extension.IdentCheckEra {
			if total >= len(src) {
				return nil, 0, errShortInput("era extension")
			}
			if src[total] == 0x00 {
				values[entry.Identifier] = []byte{src[total]}
				total++
			} else {
				if total+2 > len(src) {
					return nil, 0, errShortInput("mortal era extension")
				}
				values[entry.Identifier] = append([]byte{}, src[total:total+2]...)
				total += 2
			}
			continue
		}

		codecImpl, err := e.registry.Resolve(entry.TypeID)
		if err != nil {
			return nil, 0, &errs.CodecError{TypeID: entry.TypeID, Cause: err}
		}
		if codecImpl.IsZeroSized() {
			continue
		}

		v, n, err := codecImpl.Decode(src[total:])
		if err != nil {
			return nil, 0, &errs.CodecError{TypeID: entry.TypeID, Cause: err}
		}
		values[entry.Identifier] = v
		total += n
	}
	return values, total, nil
}

// wrapWithLength prepends the SCALE-compact length prefix.
func wrapWithLength(body []byte) []byte {
	return append(encodeCompactLength(len(body)), body...)
}
