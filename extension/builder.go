package extension

import (
	"fmt"

	"github.com/justkawal/polkadart/errs"
)

// Values holds the two parallel maps described in spec.md §3: values
// encoded inside the extrinsic body (Extensions) and values that
// participate only in the signing payload (AdditionalSigned). They are
// kept independent rather than merged because the in-block and
// signing-payload encoding pipelines iterate them independently, and
// the V16 transaction-extension model makes the split first class.
type Values struct {
	Extensions       map[string]interface{}
	AdditionalSigned map[string]interface{}
}

// NewValues returns an empty pair of maps ready for population.
func NewValues() *Values {
	return &Values{
		Extensions:       make(map[string]interface{}),
		AdditionalSigned: make(map[string]interface{}),
	}
}

// MetadataHashMode is the value shape for the CheckMetadataHash
// extension: either {Disabled} or {Enabled, hash}.
type MetadataHashMode struct {
	Enabled bool
	Hash    []byte
}

// AssetID is the optional value shape for asset-denominated fee
// payment extensions (ChargeAssetTxPayment and similar).
type AssetID struct {
	Present bool
	ID      interface{}
}

// ExtensionSummary is a diagnostic snapshot entry produced by
// Builder.Describe, used for logging around signing-payload mismatches.
type ExtensionSummary struct {
	Identifier    string
	HasBlockValue bool
	HasSignedOnly bool
}

// Builder populates a Values pair against a Schema.
type Builder struct {
	schema *Schema
	values *Values
}

// NewBuilder creates a Builder bound to schema with empty value maps.
func NewBuilder(schema *Schema) *Builder {
	return &Builder{schema: schema, values: NewValues()}
}

// Values returns the maps the builder is populating.
func (b *Builder) Values() *Values {
	return b.values
}

// SetStandardExtensions populates the canonical extension set described
// in spec.md §4.3. It also sets the CheckMortality / CheckEra era bytes
// from eraPeriod (0 gives an immortal era, otherwise a mortal era at
// blockNumber), overwriting any era set earlier; call Immortal()/Era()
// after this call to replace them.
func (b *Builder) SetStandardExtensions(
	specVersion, transactionVersion uint32,
	genesisHash, blockHash []byte,
	blockNumber uint64,
	nonce uint64,
	eraPeriod uint64,
	tip uint64,
) *Builder {
	b.setBoth(IdentCheckSpecVersion, specVersion)
	b.setSignedOnly(IdentCheckSpecVersion, specVersion)

	b.setSignedOnly(IdentCheckTxVersion, transactionVersion)

	b.setSignedOnly(IdentCheckGenesis, genesisHash)

	if eraPeriod == 0 {
		b.Immortal()
	} else {
		b.Era(eraPeriod, blockNumber)
	}
	b.setSignedOnly(IdentCheckMortality, blockHash)
	b.setSignedOnly(IdentCheckEra, blockHash)

	b.setBoth(IdentCheckNonce, nonce)

	// CheckWeight and CheckNonZeroSender are zero-sized; no value is
	// required but setting a placeholder keeps Describe() informative.
	b.setBoth(IdentCheckWeight, struct{}{})
	b.setBoth(IdentCheckNonZeroSender, struct{}{})

	b.setBoth(IdentChargeTransactionPayment, tip)

	b.MetadataHash(false, nil)
	return b
}

// MetadataHash sets the CheckMetadataHash extension value when present
// in the schema. Disabled by default per spec.md §4.3.
func (b *Builder) MetadataHash(enabled bool, hash []byte) *Builder {
	if _, ok := b.schema.Lookup(IdentCheckMetadataHash); !ok {
		return b
	}
	mode := MetadataHashMode{Enabled: enabled, Hash: hash}
	b.setBoth(IdentCheckMetadataHash, mode)
	return b
}

// AssetID sets the optional asset fee id extension value, when the
// schema declares one under ChargeAssetTxPayment.
func (b *Builder) AssetID(id interface{}) *Builder {
	const ident = "ChargeAssetTxPayment"
	if _, ok := b.schema.Lookup(ident); !ok {
		return b
	}
	present := id != nil
	b.setBoth(ident, AssetID{Present: present, ID: id})
	return b
}

// Immortal sets CheckMortality/CheckEra to the pre-encoded immortal era
// byte.
func (b *Builder) Immortal() *Builder {
	era := EncodeImmortalEra()
	b.values.Extensions[IdentCheckMortality] = era
	b.values.Extensions[IdentCheckEra] = era
	return b
}

// Era sets CheckMortality/CheckEra to the pre-encoded mortal era bytes
// for (period, current).
func (b *Builder) Era(period, current uint64) *Builder {
	era := EncodeMortalEra(period, current)
	b.values.Extensions[IdentCheckMortality] = era
	b.values.Extensions[IdentCheckEra] = era
	return b
}

// setBoth writes the same value into both maps for identifiers that
// are in-block and signing-payload both (the V14/V15 default, and most
// V16 transaction extensions).
func (b *Builder) setBoth(identifier string, v interface{}) {
	entry, ok := b.schema.Lookup(identifier)
	if !ok {
		return
	}
	if entry.IncludesInBlock {
		b.values.Extensions[identifier] = v
	}
	if entry.IncludesInSigned {
		b.values.AdditionalSigned[identifier] = v
	}
}

func (b *Builder) setSignedOnly(identifier string, v interface{}) {
	entry, ok := b.schema.Lookup(identifier)
	if !ok {
		return
	}
	if entry.IncludesInSigned {
		b.values.AdditionalSigned[identifier] = v
	}
}

// Validate ensures every non-zero-sized schema entry has a value in
// the respective map(s). It does not consult codec.IsZeroSized
// directly (that check lives with the encoder, which has the
// registry) — it only rejects entries with no value at all, which is
// always an error regardless of sizedness.
func (b *Builder) Validate() error {
	for _, entry := range b.schema.Entries() {
		if entry.IncludesInBlock {
			if _, ok := b.values.Extensions[entry.Identifier]; !ok {
				return &errs.MissingExtensionValueError{Identifier: entry.Identifier}
			}
		}
		if entry.IncludesInSigned {
			hasBlock := b.values.Extensions[entry.Identifier] != nil
			hasSigned := b.values.AdditionalSigned[entry.Identifier] != nil
			if !hasBlock && !hasSigned {
				return &errs.MissingExtensionValueError{Identifier: entry.Identifier}
			}
		}
	}
	return nil
}

// Describe returns a diagnostic snapshot of what has been populated so
// far, for logging around signing-payload mismatches.
func (b *Builder) Describe() []ExtensionSummary {
	out := make([]ExtensionSummary, 0, len(b.schema.Entries()))
	for _, entry := range b.schema.Entries() {
		_, hasBlock := b.values.Extensions[entry.Identifier]
		_, hasSigned := b.values.AdditionalSigned[entry.Identifier]
		out = append(out, ExtensionSummary{
			Identifier:    entry.Identifier,
			HasBlockValue: hasBlock,
			HasSignedOnly: hasSigned && !hasBlock,
		})
	}
	return out
}

// String renders Describe as a one-line diagnostic, convenient for log
// fields.
func (s ExtensionSummary) String() string {
	switch {
	case s.HasBlockValue:
		return fmt.Sprintf("%s=block", s.Identifier)
	case s.HasSignedOnly:
		return fmt.Sprintf("%s=signed-only", s.Identifier)
	default:
		return fmt.Sprintf("%s=missing", s.Identifier)
	}
}
