package extrinsic

// MultiAddress variant tags (spec.md §4.5.4).
const (
	multiAddressID       byte = 0x00
	multiAddressIndex    byte = 0x01
	multiAddressRaw      byte = 0x02
	multiAddressAddress32 byte = 0x03
	multiAddressAddress20 byte = 0x04
)

// encodeMultiAddress encodes signer per spec.md §4.5.4: 32-byte signers
// use the Id variant, 20-byte signers use Address20, anything else
// falls back to Raw with a compact length prefix.
func encodeMultiAddress(signer []byte) []byte {
	switch len(signer) {
	case 32:
		return append([]byte{multiAddressID}, signer...)
	case 20:
		return append([]byte{multiAddressAddress20}, signer...)
	default:
		out := append([]byte{multiAddressRaw}, encodeCompactLength(len(signer))...)
		return append(out, signer...)
	}
}

// decodeMultiAddress reads a MultiAddress from the front of src,
// returning the raw signer payload and bytes consumed.
func decodeMultiAddress(src []byte) (signer []byte, n int, err error) {
	if len(src) == 0 {
		return nil, 0, errShortInput("MultiAddress")
	}
	variant := src[0]
	rest := src[1:]
	switch variant {
	case multiAddressID:
		if len(rest) < 32 {
			return nil, 0, errShortInput("MultiAddress Id payload")
		}
		return rest[:32], 33, nil
	case multiAddressAddress20:
		if len(rest) < 20 {
			return nil, 0, errShortInput("MultiAddress Address20 payload")
		}
		return rest[:20], 21, nil
	case multiAddressRaw:
		length, consumed, err := decodeCompactLength(rest)
		if err != nil {
			return nil, 0, err
		}
		rest = rest[consumed:]
		if len(rest) < length {
			return nil, 0, errShortInput("MultiAddress Raw payload")
		}
		return rest[:length], 1 + consumed + length, nil
	default:
		return nil, 0, errUnknownVariant("MultiAddress", variant)
	}
}
