package fixtures

import (
	"github.com/justkawal/polkadart/chaininfo"
	"github.com/justkawal/polkadart/codec"
	"github.com/justkawal/polkadart/extension"
)

// Type ids used by the fixture registries. Arbitrary but stable within
// this package — a real metadata parser assigns these from the chain's
// actual type graph.
const (
	TypeU32    uint32 = 1
	TypeU64    uint32 = 2
	TypeH256   uint32 = 3
	TypeCompact uint32 = 4
	TypeZeroSized uint32 = 5
	TypeMetadataHash uint32 = 6
)

// Registry is an in-memory codec.TypeRegistry over the Codec
// constructors in this package.
type Registry struct {
	codecs map[uint32]codec.Codec
}

func (r *Registry) Resolve(typeID uint32) (codec.Codec, error) {
	c, ok := r.codecs[typeID]
	if !ok {
		return nil, unknownType(typeID)
	}
	return c, nil
}

type unknownTypeError uint32

func unknownType(id uint32) error { return unknownTypeError(id) }
func (e unknownTypeError) Error() string {
	return "fixtures: unknown type id"
}

// StandardRegistry returns a registry with codecs for every type id
// the standard extension set (spec.md §4.3) references.
func StandardRegistry() *Registry {
	return &Registry{codecs: map[uint32]codec.Codec{
		TypeU32:          U32(),
		TypeU64:          U64(),
		TypeH256:         H256(),
		TypeCompact:      CompactU64(),
		TypeZeroSized:    ZeroSized(),
		TypeMetadataHash: metadataHashCodec(),
	}}
}

// metadataHashCodec encodes extension.MetadataHashMode as a variant
// byte ({Disabled}=0x00, {Enabled,hash}=0x01 followed by 32 bytes).
func metadataHashCodec() *Codec {
	return &Codec{
		encode: func(dst []byte, v interface{}) ([]byte, error) {
			mode, ok := v.(extension.MetadataHashMode)
			if !ok {
				return append(dst, 0x00), nil
			}
			if !mode.Enabled {
				return append(dst, 0x00), nil
			}
			out := append(dst, 0x01)
			return append(out, mode.Hash...), nil
		},
		decode: func(src []byte) (interface{}, int, error) {
			if len(src) == 0 {
				return nil, 0, unknownType(TypeMetadataHash)
			}
			if src[0] == 0x00 {
				return extension.MetadataHashMode{Enabled: false}, 1, nil
			}
			if len(src) < 33 {
				return nil, 0, unknownType(TypeMetadataHash)
			}
			return extension.MetadataHashMode{Enabled: true, Hash: append([]byte{}, src[1:33]...)}, 33, nil
		},
	}
}

// descriptor is a static ExtrinsicDescriptor for tests.
type descriptor struct {
	metadataVersion int
	versions        map[int]bool
	byVersion       map[int][]chaininfo.Extension
}

func (d *descriptor) Versions() map[int]bool    { return d.versions }
func (d *descriptor) MetadataVersion() int      { return d.metadataVersion }
func (d *descriptor) Extensions(version int) []chaininfo.Extension {
	if exts, ok := d.byVersion[version]; ok {
		return exts
	}
	return d.byVersion[4]
}

// chainInfo glues a descriptor and a registry together.
type chainInfo struct {
	desc *descriptor
	reg  codec.TypeRegistry
}

func (c *chainInfo) Extrinsic() chaininfo.ExtrinsicDescriptor { return c.desc }
func (c *chainInfo) TypeRegistry() codec.TypeRegistry         { return c.reg }

// standardExtensions is the canonical V14/V15 signed_extensions list
// (spec.md §4.3). IncludesInBlock/IncludesInSigned follow real
// Substrate wire semantics: CheckTxVersion and CheckGenesis never
// appear in the extrinsic body, only in the signing payload; the rest
// appear in both (CheckMortality's in-block value is the era bytes,
// its signed value is the birth block hash — different values under
// the same identifier, which is why ExtensionBuilder keeps separate
// Extensions/AdditionalSigned maps rather than one).
func standardExtensions() []chaininfo.Extension {
	return []chaininfo.Extension{
		{Identifier: extension.IdentCheckSpecVersion, TypeID: TypeU32, IncludesInBlock: true, IncludesInSigned: true},
		{Identifier: extension.IdentCheckTxVersion, TypeID: TypeU32, IncludesInBlock: false, IncludesInSigned: true},
		{Identifier: extension.IdentCheckGenesis, TypeID: TypeH256, IncludesInBlock: false, IncludesInSigned: true},
		{Identifier: extension.IdentCheckMortality, TypeID: TypeZeroSized, IncludesInBlock: true, IncludesInSigned: true},
		{Identifier: extension.IdentCheckNonce, TypeID: TypeCompact, IncludesInBlock: true, IncludesInSigned: true},
		{Identifier: extension.IdentCheckWeight, TypeID: TypeZeroSized, IncludesInBlock: true, IncludesInSigned: true},
		{Identifier: extension.IdentChargeTransactionPayment, TypeID: TypeCompact, IncludesInBlock: true, IncludesInSigned: true},
	}
}

// NewV15ChainInfo returns a ChainInfo modeling V15 metadata: signed
// extensions only, extrinsic version {4}.
func NewV15ChainInfo() chaininfo.ChainInfo {
	exts := standardExtensions()
	return &chainInfo{
		desc: &descriptor{
			metadataVersion: 15,
			versions:        map[int]bool{4: true},
			byVersion:       map[int][]chaininfo.Extension{4: exts},
		},
		reg: StandardRegistry(),
	}
}

// NewV16ChainInfo returns a ChainInfo modeling V16 metadata advertising
// both extrinsic versions. V5's transaction extensions add
// CheckNonZeroSender and CheckMetadataHash (signed-and-block) beyond
// the V4 set, per spec.md §4.3.
func NewV16ChainInfo() chaininfo.ChainInfo {
	v4 := standardExtensions()

	v5 := append([]chaininfo.Extension{}, v4...)
	v5 = append(v5,
		chaininfo.Extension{Identifier: extension.IdentCheckNonZeroSender, TypeID: TypeZeroSized, IncludesInBlock: true, IncludesInSigned: true},
		chaininfo.Extension{Identifier: extension.IdentCheckMetadataHash, TypeID: TypeMetadataHash, IncludesInBlock: true, IncludesInSigned: true},
	)

	return &chainInfo{
		desc: &descriptor{
			metadataVersion: 16,
			versions:        map[int]bool{4: true, 5: true},
			byVersion:       map[int][]chaininfo.Extension{4: v4, 5: v5},
		},
		reg: StandardRegistry(),
	}
}
