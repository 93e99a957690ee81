package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestV15ChainInfoSingleVersion(t *testing.T) {
	info := NewV15ChainInfo()
	desc := info.Extrinsic()
	assert.Equal(t, 15, desc.MetadataVersion())
	assert.True(t, desc.Versions()[4])
	assert.False(t, desc.Versions()[5])
	assert.NotEmpty(t, desc.Extensions(4))
}

func TestV16ChainInfoAddsV5Extensions(t *testing.T) {
	info := NewV16ChainInfo()
	desc := info.Extrinsic()
	assert.Equal(t, 16, desc.MetadataVersion())
	assert.True(t, desc.Versions()[4])
	assert.True(t, desc.Versions()[5])
	assert.Greater(t, len(desc.Extensions(5)), len(desc.Extensions(4)))
}

func TestStandardRegistryResolvesKnownTypes(t *testing.T) {
	reg := StandardRegistry()
	for _, id := range []uint32{TypeU32, TypeU64, TypeH256, TypeCompact, TypeZeroSized, TypeMetadataHash} {
		c, err := reg.Resolve(id)
		require.NoError(t, err)
		assert.NotNil(t, c)
	}
	_, err := reg.Resolve(999)
	assert.Error(t, err)
}
