// Package chaininfo declares the resolved-metadata contract this
// module consumes. Parsing runtime metadata V14/V15/V16 into a type
// registry and an extrinsic descriptor is out of scope (spec.md §1);
// this package only names the shape that parser must hand back.
package chaininfo

import "github.com/justkawal/polkadart/codec"

// Extension is one entry of a metadata-declared signed/transaction
// extension schema, in the order metadata declares it. IncludesInBlock
// and IncludesInSigned are both true for V14/V15 signed extensions; a
// V16 transaction extension may set either independently.
type Extension struct {
	Identifier       string
	TypeID           uint32
	IncludesInBlock  bool
	IncludesInSigned bool
}

// ExtrinsicDescriptor is the subset of runtime metadata the extrinsic
// pipeline needs: which extrinsic format versions the runtime accepts,
// and the extension schema for each.
type ExtrinsicDescriptor interface {
	// Versions returns the set of extrinsic format versions the chain
	// advertises, e.g. {4} for V14/V15 metadata or {4,5} for V16.
	Versions() map[int]bool

	// MetadataVersion returns 14, 15 or 16.
	MetadataVersion() int

	// Extensions returns the ordered extension schema for the given
	// extrinsic version. For V14/V15 this is the same list regardless
	// of the version argument (signed_extensions); for V16 it is the
	// transaction extension set declared for that specific version.
	Extensions(version int) []Extension
}

// ChainInfo is the resolved runtime metadata this module consumes.
type ChainInfo interface {
	Extrinsic() ExtrinsicDescriptor
	TypeRegistry() codec.TypeRegistry
}
