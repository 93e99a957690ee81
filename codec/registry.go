// Package codec declares the SCALE codec contract this module consumes
// but does not implement. Compact integers, fixed arrays, variant enums
// and maps-of-named-fields live behind a TypeRegistry resolved by the
// metadata layer (out of scope here, see spec.md §1); the extrinsic and
// extension packages only ever call through this interface.
package codec

// Codec encodes and decodes values of one metadata type id.
type Codec interface {
	// Encode appends the SCALE encoding of v to dst and returns the
	// extended slice.
	Encode(dst []byte, v interface{}) ([]byte, error)

	// Decode reads one value of this type from the front of src and
	// returns the value together with the number of bytes consumed.
	Decode(src []byte) (v interface{}, n int, err error)

	// IsZeroSized reports whether every value of this type encodes to
	// zero bytes (e.g. CheckWeight, CheckNonZeroSender). The extrinsic
	// encoder skips zero-sized extensions entirely.
	IsZeroSized() bool
}

// TypeRegistry resolves a metadata type id to a Codec.
type TypeRegistry interface {
	Resolve(typeID uint32) (Codec, error)
}
