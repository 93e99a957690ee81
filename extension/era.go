package extension

import "math/bits"

// EncodeImmortalEra returns the single-byte immortal era encoding.
func EncodeImmortalEra() []byte {
	return []byte{0x00}
}

// EncodeMortalEra implements the mortal era formula of spec.md §4.3
// exactly:
//
//	period rounded up to the nearest power of two in [4, 65536]
//	phase = current mod period
//	quantize = max(period >> 12, 1)
//	phase' = (phase / quantize) * quantize
//	l = trailing_zeros(period) - 1, clamped to [1,15]
//	encoded u16 little-endian: low 4 bits = l, high 12 bits = phase'/quantize
func EncodeMortalEra(period, current uint64) []byte {
	period = normalizePeriod(period)
	phase := current % period
	quantize := period >> 12
	if quantize < 1 {
		quantize = 1
	}
	phasePrime := (phase / quantize) * quantize

	l := bits.TrailingZeros64(period) - 1
	if l < 1 {
		l = 1
	}
	if l > 15 {
		l = 15
	}

	encoded := uint16(l) | uint16((phasePrime/quantize)<<4)
	return []byte{byte(encoded), byte(encoded >> 8)}
}

// normalizePeriod rounds period up to the nearest power of two clamped
// to [4, 65536].
func normalizePeriod(period uint64) uint64 {
	if period < 4 {
		period = 4
	}
	if period > 65536 {
		period = 65536
	}
	// round up to next power of two
	p := uint64(1)
	for p < period {
		p <<= 1
	}
	return p
}

// DecodeEra is the inverse of Encode{Immortal,Mortal}Era. It returns
// whether the era is immortal, and for a mortal era the period and the
// phase bucket (phase'/quantize, i.e. the decoded high-12-bits value).
func DecodeEra(b []byte) (immortal bool, period uint64, phaseBucket uint64, err error) {
	if len(b) == 1 && b[0] == 0x00 {
		return true, 0, 0, nil
	}
	if len(b) != 2 {
		return false, 0, 0, errEraLength(len(b))
	}
	encoded := uint16(b[0]) | uint16(b[1])<<8
	l := encoded & 0x0f
	phaseBucket = uint64(encoded >> 4)
	period = uint64(1) << (l + 1)
	return false, period, phaseBucket, nil
}

type eraLengthError int

func errEraLength(n int) error { return eraLengthError(n) }

func (e eraLengthError) Error() string {
	return "era bytes must be length 1 (immortal) or 2 (mortal)"
}
