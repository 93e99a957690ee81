package extrinsic

import "fmt"

// encodeCompactLength writes the SCALE-compact encoding of n (the byte
// length of the body that follows). Only the length prefix is our
// concern here — the TypeRegistry owns compact encoding for ordinary
// values (spec.md §1, out of scope), but the length-prefix wrapping
// every extrinsic carries is part of assembling the wire bytes
// themselves, not a value from the schema.
func encodeCompactLength(n int) []byte {
	switch {
	case n < 1<<6:
		return []byte{byte(n) << 2}
	case n < 1<<14:
		v := uint16(n)<<2 | 0b01
		return []byte{byte(v), byte(v >> 8)}
	case n < 1<<30:
		v := uint32(n)<<2 | 0b10
		return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
	default:
		buf := make([]byte, 0, 9)
		x := uint64(n)
		for x > 0 {
			buf = append(buf, byte(x))
			x >>= 8
		}
		header := byte(len(buf)-4)<<2 | 0b11
		return append([]byte{header}, buf...)
	}
}

// decodeCompactLength reads a SCALE-compact length prefix from the
// front of src and returns the decoded value and bytes consumed.
func decodeCompactLength(src []byte) (int, int, error) {
	if len(src) == 0 {
		return 0, 0, fmt.Errorf("compact length: empty input")
	}
	mode := src[0] & 0b11
	switch mode {
	case 0b00:
		return int(src[0] >> 2), 1, nil
	case 0b01:
		if len(src) < 2 {
			return 0, 0, fmt.Errorf("compact length: truncated 2-byte mode")
		}
		v := uint16(src[0]) | uint16(src[1])<<8
		return int(v >> 2), 2, nil
	case 0b10:
		if len(src) < 4 {
			return 0, 0, fmt.Errorf("compact length: truncated 4-byte mode")
		}
		v := uint32(src[0]) | uint32(src[1])<<8 | uint32(src[2])<<16 | uint32(src[3])<<24
		return int(v >> 2), 4, nil
	default:
		extraBytes := int(src[0]>>2) + 4
		if len(src) < 1+extraBytes {
			return 0, 0, fmt.Errorf("compact length: truncated big-integer mode")
		}
		var v uint64
		for i := 0; i < extraBytes; i++ {
			v |= uint64(src[1+i]) << (8 * i)
		}
		return int(v), 1 + extraBytes, nil
	}
}
