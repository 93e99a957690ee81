package extrinsic

import (
	"encoding/hex"
	"fmt"
)

// DescribeMultiAddress renders signer's MultiAddress encoding as a
// short "variant(hex)" string for logging, never on the encode hot
// path.
func DescribeMultiAddress(signer []byte) string {
	encoded := encodeMultiAddress(signer)
	variant := multiAddressVariantName(encoded[0])
	return fmt.Sprintf("%s(0x%s)", variant, hex.EncodeToString(signer))
}

func multiAddressVariantName(tag byte) string {
	switch tag {
	case multiAddressID:
		return "Id"
	case multiAddressIndex:
		return "Index"
	case multiAddressRaw:
		return "Raw"
	case multiAddressAddress32:
		return "Address32"
	case multiAddressAddress20:
		return "Address20"
	default:
		return "Unknown"
	}
}

// DescribeMultiSignature renders a signature's MultiSignature variant
// name and hex payload for logging.
func DescribeMultiSignature(sig []byte, sigType SignatureType) string {
	encoded := encodeMultiSignature(sig, sigType)
	variant := multiSignatureVariantName(encoded[0])
	return fmt.Sprintf("%s(0x%s)", variant, hex.EncodeToString(sig))
}

func multiSignatureVariantName(tag byte) string {
	switch tag {
	case multiSigEd25519:
		return "Ed25519"
	case multiSigSr25519:
		return "Sr25519"
	case multiSigEcdsa:
		return "Ecdsa"
	default:
		return "Unknown"
	}
}
