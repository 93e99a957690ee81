package extension_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justkawal/polkadart/extension"
	"github.com/justkawal/polkadart/fixtures"
)

func TestBuilderSetStandardExtensionsValidates(t *testing.T) {
	info := fixtures.NewV15ChainInfo()
	schema := extension.NewSchema(info, 4)
	b := extension.NewBuilder(schema)

	b.SetStandardExtensions(
		100, 1,
		make([]byte, 32), make([]byte, 32),
		10, 5,
		64, 0,
	)

	require.NoError(t, b.Validate())

	summary := b.Describe()
	assert.Len(t, summary, len(schema.Entries()))
	for _, s := range summary {
		assert.True(t, s.HasBlockValue || s.HasSignedOnly, "entry %s missing a value", s.Identifier)
	}
}

func TestBuilderValidateFailsWithoutValues(t *testing.T) {
	info := fixtures.NewV15ChainInfo()
	schema := extension.NewSchema(info, 4)
	b := extension.NewBuilder(schema)

	err := b.Validate()
	assert.Error(t, err)
}

func TestBuilderMetadataHashOnlyAppliesWhenDeclared(t *testing.T) {
	v15 := fixtures.NewV15ChainInfo()
	schema15 := extension.NewSchema(v15, 4)
	b15 := extension.NewBuilder(schema15)
	b15.MetadataHash(true, make([]byte, 32))
	_, ok := schema15.Lookup(extension.IdentCheckMetadataHash)
	assert.False(t, ok)

	v16 := fixtures.NewV16ChainInfo()
	schema5 := extension.NewSchema(v16, 5)
	b5 := extension.NewBuilder(schema5)
	b5.SetStandardExtensions(100, 1, make([]byte, 32), make([]byte, 32), 10, 5, 0, 0)
	b5.MetadataHash(true, make([]byte, 32))
	require.NoError(t, b5.Validate())
}

func TestBuilderImmortalAndEra(t *testing.T) {
	info := fixtures.NewV15ChainInfo()
	schema := extension.NewSchema(info, 4)
	b := extension.NewBuilder(schema)

	b.Immortal()
	assert.Equal(t, []byte{0x00}, b.Values().Extensions[extension.IdentCheckMortality])

	b.Era(64, 10)
	assert.Len(t, b.Values().Extensions[extension.IdentCheckMortality], 2)
}
