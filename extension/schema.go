// Package extension implements ExtensionSchema (C2), ExtensionBuilder
// (C3) and the era encoding helper (spec.md §4.2-§4.3). Ordering is the
// contract: Schema iterates in the exact order metadata declared it,
// and ExtrinsicEncoder must follow that order byte for byte.
package extension

import "github.com/justkawal/polkadart/chaininfo"

// Well-known extension identifiers. Not exhaustive — any identifier a
// chain's metadata declares is honoured, these are just the ones
// SetStandardExtensions populates directly.
const (
	IdentCheckSpecVersion     = "CheckSpecVersion"
	IdentCheckTxVersion       = "CheckTxVersion"
	IdentCheckGenesis         = "CheckGenesis"
	IdentCheckMortality       = "CheckMortality"
	IdentCheckEra             = "CheckEra"
	IdentCheckNonce           = "CheckNonce"
	IdentCheckWeight          = "CheckWeight"
	IdentChargeTransactionPayment = "ChargeTransactionPayment"
	IdentCheckNonZeroSender   = "CheckNonZeroSender"
	IdentCheckMetadataHash    = "CheckMetadataHash"
)

// Schema is an ordered, metadata-defined list of extensions for one
// extrinsic version.
type Schema struct {
	version    int
	extensions []chaininfo.Extension
}

// NewSchema builds the schema for detectedVersion from info's extrinsic
// descriptor. V14/V15 descriptors return the same signed_extensions
// list regardless of version; V16 descriptors return the transaction
// extension set declared for that version.
func NewSchema(info chaininfo.ChainInfo, detectedVersion int) *Schema {
	return &Schema{
		version:    detectedVersion,
		extensions: info.Extrinsic().Extensions(detectedVersion),
	}
}

// Entries returns the ordered extension list. Callers must not mutate
// the returned slice's order — iteration order is the wire contract.
func (s *Schema) Entries() []chaininfo.Extension {
	return s.extensions
}

// Version reports the extrinsic format version this schema was built
// for.
func (s *Schema) Version() int {
	return s.version
}

// Lookup returns the entry for identifier and whether it was found.
func (s *Schema) Lookup(identifier string) (chaininfo.Extension, bool) {
	for _, e := range s.extensions {
		if e.Identifier == identifier {
			return e, true
		}
	}
	return chaininfo.Extension{}, false
}
