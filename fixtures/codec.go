// Package fixtures provides an in-memory ChainInfo/TypeRegistry
// implementation so tests and examples can exercise the extrinsic
// pipeline end to end without a real metadata parser (SPEC_FULL.md
// §2 C13). Nothing here is part of the public encoding contract.
package fixtures

import (
	"encoding/binary"
	"fmt"
)

// Codec is a minimal codec.Codec implementation for primitive SCALE
// shapes, enough to drive the fixtures used in tests.
type Codec struct {
	encode   func(dst []byte, v interface{}) ([]byte, error)
	decode   func(src []byte) (interface{}, int, error)
	zeroSize bool
}

func (c *Codec) Encode(dst []byte, v interface{}) ([]byte, error) { return c.encode(dst, v) }
func (c *Codec) Decode(src []byte) (interface{}, int, error)      { return c.decode(src) }
func (c *Codec) IsZeroSized() bool                                { return c.zeroSize }

// U32 encodes a uint32 as 4 little-endian bytes.
func U32() *Codec {
	return &Codec{
		encode: func(dst []byte, v interface{}) ([]byte, error) {
			n, err := toUint32(v)
			if err != nil {
				return nil, err
			}
			var buf [4]byte
			binary.LittleEndian.PutUint32(buf[:], n)
			return append(dst, buf[:]...), nil
		},
		decode: func(src []byte) (interface{}, int, error) {
			if len(src) < 4 {
				return nil, 0, fmt.Errorf("u32: short input")
			}
			return binary.LittleEndian.Uint32(src[:4]), 4, nil
		},
	}
}

// U64 encodes a uint64 as 8 little-endian bytes.
func U64() *Codec {
	return &Codec{
		encode: func(dst []byte, v interface{}) ([]byte, error) {
			n, err := toUint64(v)
			if err != nil {
				return nil, err
			}
			var buf [8]byte
			binary.LittleEndian.PutUint64(buf[:], n)
			return append(dst, buf[:]...), nil
		},
		decode: func(src []byte) (interface{}, int, error) {
			if len(src) < 8 {
				return nil, 0, fmt.Errorf("u64: short input")
			}
			return binary.LittleEndian.Uint64(src[:8]), 8, nil
		},
	}
}

// H256 encodes a fixed 32-byte hash, accepting []byte.
func H256() *Codec {
	return &Codec{
		encode: func(dst []byte, v interface{}) ([]byte, error) {
			b, ok := v.([]byte)
			if !ok || len(b) != 32 {
				return nil, fmt.Errorf("H256: expected 32 bytes, got %T", v)
			}
			return append(dst, b...), nil
		},
		decode: func(src []byte) (interface{}, int, error) {
			if len(src) < 32 {
				return nil, 0, fmt.Errorf("H256: short input")
			}
			return append([]byte{}, src[:32]...), 32, nil
		},
	}
}

// CompactU64 encodes a uint64 in SCALE-compact style. Values below 2^30
// use the same 1/2/4-byte modes as extrinsic length prefixes; larger
// values are written as a 0x03 header byte followed by 8 little-endian
// bytes, which differs from the extrinsic prefix's minimal big-integer
// mode.
func CompactU64() *Codec {
	return &Codec{
		encode: func(dst []byte, v interface{}) ([]byte, error) {
			n, err := toUint64(v)
			if err != nil {
				return nil, err
			}
			return append(dst, encodeCompact(n)...), nil
		},
		decode: func(src []byte) (interface{}, int, error) {
			return decodeCompact(src)
		},
	}
}

// ZeroSized encodes to nothing — used for CheckWeight, CheckNonZeroSender.
func ZeroSized() *Codec {
	return &Codec{
		encode:   func(dst []byte, v interface{}) ([]byte, error) { return dst, nil },
		decode:   func(src []byte) (interface{}, int, error) { return struct{}{}, 0, nil },
		zeroSize: true,
	}
}

func toUint32(v interface{}) (uint32, error) {
	switch n := v.(type) {
	case uint32:
		return n, nil
	case int:
		return uint32(n), nil
	case uint64:
		return uint32(n), nil
	default:
		return 0, fmt.Errorf("expected numeric value, got %T", v)
	}
}

func toUint64(v interface{}) (uint64, error) {
	switch n := v.(type) {
	case uint64:
		return n, nil
	case uint32:
		return uint64(n), nil
	case int:
		return uint64(n), nil
	default:
		return 0, fmt.Errorf("expected numeric value, got %T", v)
	}
}

func encodeCompact(n uint64) []byte {
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
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], n)
		return append([]byte{0b11}, buf[:]...)
	}
}

func decodeCompact(src []byte) (uint64, int, error) {
	if len(src) == 0 {
		return 0, 0, fmt.Errorf("compact: empty input")
	}
	mode := src[0] & 0b11
	switch mode {
	case 0b00:
		return uint64(src[0] >> 2), 1, nil
	case 0b01:
		if len(src) < 2 {
			return 0, 0, fmt.Errorf("compact: short input")
		}
		v := uint16(src[0]) | uint16(src[1])<<8
		return uint64(v >> 2), 2, nil
	case 0b10:
		if len(src) < 4 {
			return 0, 0, fmt.Errorf("compact: short input")
		}
		v := uint32(src[0]) | uint32(src[1])<<8 | uint32(src[2])<<16 | uint32(src[3])<<24
		return uint64(v >> 2), 4, nil
	default:
		if len(src) < 9 {
			return 0, 0, fmt.Errorf("compact: short input")
		}
		return binary.LittleEndian.Uint64(src[1:9]), 9, nil
	}
}
