// Package tx implements SubstrateTransaction-style builder ergonomics
// (spec.md §4 control flow) over the lower-level extension, signing and
// extrinsic packages, grounded on the bifrost-go tx.SubstrateTransaction
// builder's method-chaining shape.
package tx

import (
	"github.com/justkawal/polkadart/chaininfo"
	"github.com/justkawal/polkadart/extension"
	"github.com/justkawal/polkadart/extrinsic"
	"github.com/justkawal/polkadart/signing"
	"github.com/justkawal/polkadart/version"
)

// Transaction accumulates the pieces of one extrinsic: call data, the
// chain facts the standard extensions need, and (once signed) the
// signature itself. Builder methods mutate and return the receiver so
// calls chain the way SubstrateTransaction's do.
type Transaction struct {
	info    chaininfo.ChainInfo
	version int
	schema  *extension.Schema
	builder *extension.Builder

	callData []byte

	specVersion        uint32
	transactionVersion uint32
	genesisHash        []byte
	blockHash          []byte
	blockNumber        uint64
	nonce              uint64
	eraPeriod          uint64
	tip                uint64
}

// New starts a Transaction against info, detecting the extrinsic
// version the same way Client does.
func New(info chaininfo.ChainInfo) *Transaction {
	v := version.Detect(info)
	schema := extension.NewSchema(info, v)
	return &Transaction{
		info:    info,
		version: v,
		schema:  schema,
		builder: extension.NewBuilder(schema),
	}
}

// SetCall sets the already-encoded pallet call bytes.
func (t *Transaction) SetCall(callData []byte) *Transaction {
	t.callData = callData
	return t
}

// SetGenesisHashAndBlockHash sets the two hashes CheckGenesis and
// CheckMortality consume.
func (t *Transaction) SetGenesisHashAndBlockHash(genesisHash, blockHash []byte) *Transaction {
	t.genesisHash = genesisHash
	t.blockHash = blockHash
	return t
}

// SetSpecAndTxVersion sets CheckSpecVersion/CheckTxVersion's values.
func (t *Transaction) SetSpecAndTxVersion(specVersion, transactionVersion uint32) *Transaction {
	t.specVersion = specVersion
	t.transactionVersion = transactionVersion
	return t
}

// SetNonce sets CheckNonce's value.
func (t *Transaction) SetNonce(nonce uint64) *Transaction {
	t.nonce = nonce
	return t
}

// SetTip sets ChargeTransactionPayment's value.
func (t *Transaction) SetTip(tip uint64) *Transaction {
	t.tip = tip
	return t
}

// SetEra sets a mortal era with the given period, computed against
// blockNumber. A zero period (the default) produces an immortal era.
func (t *Transaction) SetEra(period, blockNumber uint64) *Transaction {
	t.eraPeriod = period
	t.blockNumber = blockNumber
	return t
}

// populate pushes the accumulated fields through SetStandardExtensions.
// Safe to call more than once; later calls overwrite earlier ones.
func (t *Transaction) populate() {
	t.builder.SetStandardExtensions(
		t.specVersion, t.transactionVersion,
		t.genesisHash, t.blockHash,
		t.blockNumber, t.nonce,
		t.eraPeriod, t.tip,
	)
}

// SigningPayload assembles the bytes a signer must sign: populate the
// standard extensions, validate, then delegate to signing.Build.
func (t *Transaction) SigningPayload() ([]byte, error) {
	t.populate()
	if err := t.builder.Validate(); err != nil {
		return nil, err
	}
	return signing.Build(t.info.TypeRegistry(), t.schema, t.builder.Values(), t.callData)
}

// Finalize assembles the final signed extrinsic wire bytes once a
// signature has been produced over SigningPayload's output.
func (t *Transaction) Finalize(signer, signature []byte, sigType extrinsic.SignatureType) ([]byte, error) {
	t.populate()
	if err := t.builder.Validate(); err != nil {
		return nil, err
	}
	enc := extrinsic.NewEncoder(t.version, t.info.TypeRegistry(), t.schema)
	return enc.Encode(extrinsic.SignedData{
		Signer:           signer,
		Signature:        signature,
		SignatureType:    sigType,
		Extensions:       t.builder.Values().Extensions,
		AdditionalSigned: t.builder.Values().AdditionalSigned,
		CallData:         t.callData,
	})
}

// Unsigned assembles a bare (unsigned) extrinsic, skipping the
// extension pipeline entirely (spec.md §4.5.1).
func (t *Transaction) Unsigned() ([]byte, error) {
	enc := extrinsic.NewEncoder(t.version, t.info.TypeRegistry(), t.schema)
	return enc.EncodeUnsigned(t.callData)
}

// DetectedVersion reports which extrinsic format version this
// Transaction targets.
func (t *Transaction) DetectedVersion() int {
	return t.version
}

// Describe exposes the extension builder's diagnostic snapshot, useful
// when a signing-payload mismatch needs to be debugged against a node.
func (t *Transaction) Describe() []extension.ExtensionSummary {
	t.populate()
	return t.builder.Describe()
}
