// Package signing implements SigningPayloadBuilder (C4, spec.md §4.4):
// concatenate call bytes, schema-ordered extension values, and
// schema-ordered additionalSigned values, hashing the result with
// Blake2b-256 when it exceeds 256 bytes.
package signing

import (
	"github.com/justkawal/polkadart/codec"
	"github.com/justkawal/polkadart/errs"
	"github.com/justkawal/polkadart/extension"
	"golang.org/x/crypto/blake2b"
)

// HashThreshold is the byte length above which the signing payload is
// replaced by its Blake2b-256 digest.
const HashThreshold = 256

// Build assembles the signing payload for callData against schema,
// reading values from values.Extensions and values.AdditionalSigned.
// The guarantee (spec.md §4.4) is that these are exactly the bytes a
// signer signs and the node reconstructs for verification.
func Build(
	registry codec.TypeRegistry,
	schema *extension.Schema,
	values *extension.Values,
	callData []byte,
) ([]byte, error) {
	encodedExtensions, err := encodeInOrder(registry, schema, values.Extensions, true)
	if err != nil {
		return nil, err
	}
	encodedAdditional, err := encodeInOrder(registry, schema, values.AdditionalSigned, false)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, 0, len(callData)+len(encodedExtensions)+len(encodedAdditional))
	payload = append(payload, callData...)
	payload = append(payload, encodedExtensions...)
	payload = append(payload, encodedAdditional...)

	if len(payload) > HashThreshold {
		digest := blake2b.Sum256(payload)
		return digest[:], nil
	}
	return payload, nil
}

// encodeInOrder walks schema in declared order and encodes each
// entry's value from values (for inBlock, entries with
// IncludesInBlock; otherwise entries with IncludesInSigned). Era
// extensions write their pre-encoded bytes verbatim; zero-sized codecs
// contribute nothing.
func encodeInOrder(registry codec.TypeRegistry, schema *extension.Schema, values map[string]interface{}, inBlock bool) ([]byte, error) {
	var out []byte
	for _, entry := range schema.Entries() {
		included := entry.IncludesInSigned
		if inBlock {
			included = entry.IncludesInBlock
		}
		if !included {
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

		codecImpl, err := registry.Resolve(entry.TypeID)
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
