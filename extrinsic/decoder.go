package extrinsic

import "github.com/justkawal/polkadart/errs"

// Decoded is the result of decoding one extrinsic's wire bytes
// (spec.md §4.5.7).
type Decoded struct {
	Version          int
	IsSigned         bool
	IsGeneral        bool
	ExtensionVersion byte // only meaningful when IsGeneral
	Signer           []byte
	Signature        []byte
	SignatureType    SignatureType
	Extensions       map[string]interface{}
	CallData         []byte
}

// Decode reads one length-prefixed extrinsic from src. It dispatches
// on the version byte's flag bits: for general, one extension-version
// byte then extensions; for signed, MultiAddress, MultiSignature, then
// extensions; always finally the runtime call (the remaining bytes of
// the length-delimited body). Any version byte outside {0x04,0x84,
// 0x05,0x45,0x85} is a decode error.
func (e *Encoder) Decode(src []byte) (*Decoded, error) {
	bodyLen, consumed, err := decodeCompactLength(src)
	if err != nil {
		return nil, err
	}
	rest := src[consumed:]
	if len(rest) < bodyLen {
		return nil, errShortInput("extrinsic body")
	}
	body := rest[:bodyLen]

	if len(body) == 0 {
		return nil, errShortInput("extrinsic version byte")
	}
	versionByte := body[0]
	version := int(versionByte & versionMask)
	isSigned := versionByte&signedBit != 0
	isGeneral := versionByte&generalBit != 0

	if !validVersionByte(versionByte) {
		return nil, &errs.UnsupportedVersionError{Version: int(versionByte)}
	}

	cursor := body[1:]
	d := &Decoded{Version: version, IsSigned: isSigned, IsGeneral: isGeneral}

	if isGeneral {
		if len(cursor) == 0 {
			return nil, errShortInput("extension version byte")
		}
		d.ExtensionVersion = cursor[0]
		cursor = cursor[1:]
	} else if isSigned {
		signer, n, err := decodeMultiAddress(cursor)
		if err != nil {
			return nil, err
		}
		cursor = cursor[n:]
		d.Signer = signer

		sig, sigType, n, err := decodeMultiSignature(cursor)
		if err != nil {
			return nil, err
		}
		cursor = cursor[n:]
		d.Signature = sig
		d.SignatureType = sigType
	}

	if isSigned || isGeneral {
		values, n, err := e.decodeExtensions(cursor)
		if err != nil {
			return nil, err
		}
		cursor = cursor[n:]
		d.Extensions = values
	}

	d.CallData = append([]byte{}, cursor...)
	return d, nil
}

// validVersionByte reports whether b is one of the five wire-valid
// version bytes enumerated in spec.md §4.5: 0x04, 0x84 (V4 bare/
// signed); 0x05, 0x45, 0x85 (V5 bare/general/signed).
func validVersionByte(b byte) bool {
	switch b {
	case 0x04, 0x84, 0x05, 0x45, 0x85:
		return true
	default:
		return false
	}
}
