package persist

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/oriumgames/chunkmap/region"
	"github.com/oriumgames/chunkmap/resource"
	"github.com/oriumgames/chunkmap/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleArtifact() *region.Artifact {
	a := region.NewArtifact()

	var data scan.LayerData
	data.Blocks[0] = scan.BlockInfo{
		Type:     resource.BlockType{Name: "minecraft:stone", Flags: resource.FlagOpaque},
		HasType:  true,
		Depth:    64,
		HasDepth: true,
	}
	data.Biomes[0] = scan.OptionalBiome{Biome: resource.Biome{Name: "minecraft:plains"}, Has: true}
	data.BlockLight[0] = 12

	a.Set(0, 0, &data)
	a.Set(31, 31, &data)
	return a
}

func TestEncodeDecodeArtifactRoundTrips(t *testing.T) {
	a := sampleArtifact()

	var buf bytes.Buffer
	require.NoError(t, EncodeArtifact(&buf, a))

	got, err := DecodeArtifact(&buf)
	require.NoError(t, err)

	require.NotNil(t, got.Get(0, 0))
	assert.Equal(t, "minecraft:stone", got.Get(0, 0).Blocks[0].Type.Name)
	assert.EqualValues(t, 64, got.Get(0, 0).Blocks[0].Depth)
	assert.Equal(t, "minecraft:plains", got.Get(0, 0).Biomes[0].Biome.Name)
	assert.EqualValues(t, 12, got.Get(0, 0).BlockLight[0])

	require.NotNil(t, got.Get(31, 31))
	assert.Nil(t, got.Get(5, 5))
}

func TestEncodeDecodeArtifactWithCompression(t *testing.T) {
	a := sampleArtifact()

	var buf bytes.Buffer
	require.NoError(t, encodeArtifact(&buf, a, CompressionLevelBest))

	got, err := DecodeArtifact(&buf)
	require.NoError(t, err)
	require.NotNil(t, got.Get(0, 0))
	assert.Equal(t, "minecraft:stone", got.Get(0, 0).Blocks[0].Type.Name)
}

func TestDecodeArtifactRejectsBadMagic(t *testing.T) {
	_, err := DecodeArtifact(bytes.NewReader([]byte("xxxxxxxx")))
	assert.Error(t, err)
}

func TestSaveLoadRoundTripsThroughTempRename(t *testing.T) {
	dir := t.TempDir()
	a := sampleArtifact()

	require.NoError(t, Save(dir, 3, -2, a, CompressionLevelDefault))

	// The temp file must not survive a successful save.
	_, err := os.Stat(filepath.Join(dir, "r.3.-2.bin.tmp"))
	assert.True(t, os.IsNotExist(err))

	got, err := Load(dir, 3, -2)
	require.NoError(t, err)
	require.NotNil(t, got.Get(0, 0))
	assert.Equal(t, "minecraft:stone", got.Get(0, 0).Blocks[0].Type.Name)
}
