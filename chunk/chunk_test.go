package chunk

import (
	"errors"
	"testing"

	"github.com/oriumgames/chunkmap/coord"
	"github.com/oriumgames/chunkmap/ingest"
	"github.com/oriumgames/chunkmap/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBlockTypes() *resource.BlockTypes {
	return resource.NewBlockTypes([]resource.BlockType{
		{Name: "minecraft:air"},
		{Name: "minecraft:stone", Flags: resource.FlagOpaque},
	}, map[[2]uint8]resource.BlockType{
		{1, 0}: {Name: "minecraft:stone", Flags: resource.FlagOpaque},
	})
}

func testBiomeTypes() *resource.BiomeTypes {
	return resource.NewBiomeTypes([]resource.Biome{{Name: "minecraft:plains"}})
}

func TestNewV1_18(t *testing.T) {
	raw := &ingest.RawChunk{
		DataVersion: 3120,
		Sections: []ingest.RawSectionV1_18{
			{
				Y: 1,
				BlockStates: ingest.RawBlockStates{
					Palette: []ingest.RawPaletteEntry{{Name: "minecraft:stone"}},
				},
				Biomes: ingest.RawBiomesV18{Palette: []string{"minecraft:plains"}},
			},
			{
				Y: 0,
				BlockStates: ingest.RawBlockStates{
					Palette: []ingest.RawPaletteEntry{{Name: "minecraft:air"}},
				},
				Biomes: ingest.RawBiomesV18{Palette: []string{"minecraft:plains"}},
			},
		},
	}

	c, err := New(raw, testBlockTypes(), testBiomeTypes())
	require.NoError(t, err)
	assert.Equal(t, V1_18, c.Kind())
	assert.False(t, c.IsEmpty())

	it := c.Sections()
	assert.Equal(t, 2, it.Len())
	first, ok := it.Next()
	require.True(t, ok)
	assert.EqualValues(t, 0, first.Y) // ascending order
	second, ok := it.Next()
	require.True(t, ok)
	assert.EqualValues(t, 1, second.Y)
	_, ok = it.Next()
	assert.False(t, ok)
}

func TestNewLegacyV0(t *testing.T) {
	blocks := make([]byte, 4096)
	blocks[0] = 1
	raw := &ingest.RawChunk{
		DataVersion: 100,
		Level: &ingest.RawLevel{
			Sections: []ingest.RawSectionV0{
				{Y: 0, Blocks: blocks, Data: make([]byte, 2048)},
			},
			Biomes: ingest.RawBiomesV0{ByteArray: make([]byte, 256)},
		},
	}

	c, err := New(raw, testBlockTypes(), testBiomeTypes())
	require.NoError(t, err)
	assert.Equal(t, V0, c.Kind())

	it := c.Sections()
	entry, ok := it.Next()
	require.True(t, ok)
	typ, known, err := entry.Block.BlockAt(coord.SectionBlockCoords{X: 0, Z: 0, Y: 0})
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, "minecraft:stone", typ.Name)
}

func TestNewMixedVersionsRejected(t *testing.T) {
	raw := &ingest.RawChunk{
		DataVersion: 1500,
		Level: &ingest.RawLevel{
			Sections: []ingest.RawSectionV0{
				{
					Y: 0,
					BlockStates: &ingest.RawBlockStates{
						Palette: []ingest.RawPaletteEntry{{Name: "minecraft:air"}},
					},
				},
				{
					Y:      1,
					Blocks: make([]byte, 4096),
					Data:   make([]byte, 2048),
				},
			},
			Biomes: ingest.RawBiomesV0{ByteArray: make([]byte, 256)},
		},
	}

	_, err := New(raw, testBlockTypes(), testBiomeTypes())
	require.Error(t, err)
	var mixed *MixedVersionsError
	assert.True(t, errors.As(err, &mixed))
}

func TestNewEmptyChunk(t *testing.T) {
	raw := &ingest.RawChunk{
		DataVersion: 100,
		Level:       &ingest.RawLevel{},
	}

	c, err := New(raw, testBlockTypes(), testBiomeTypes())
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.Sections().Len())
}

func TestNewLegacyMissingBiomesFails(t *testing.T) {
	raw := &ingest.RawChunk{
		DataVersion: 100,
		Level: &ingest.RawLevel{
			Sections: []ingest.RawSectionV0{
				{Y: 0, Blocks: make([]byte, 4096), Data: make([]byte, 2048)},
			},
		},
	}

	_, err := New(raw, testBlockTypes(), testBiomeTypes())
	require.Error(t, err)
	var missing *MissingBiomesError
	assert.True(t, errors.As(err, &missing))
}

func TestSectionIterDoubleEnded(t *testing.T) {
	raw := &ingest.RawChunk{
		DataVersion: 3120,
		Sections: []ingest.RawSectionV1_18{
			{Y: 0, BlockStates: ingest.RawBlockStates{Palette: []ingest.RawPaletteEntry{{Name: "minecraft:air"}}}, Biomes: ingest.RawBiomesV18{Palette: []string{"minecraft:plains"}}},
			{Y: 1, BlockStates: ingest.RawBlockStates{Palette: []ingest.RawPaletteEntry{{Name: "minecraft:air"}}}, Biomes: ingest.RawBiomesV18{Palette: []string{"minecraft:plains"}}},
			{Y: 2, BlockStates: ingest.RawBlockStates{Palette: []ingest.RawPaletteEntry{{Name: "minecraft:air"}}}, Biomes: ingest.RawBiomesV18{Palette: []string{"minecraft:plains"}}},
		},
	}
	c, err := New(raw, testBlockTypes(), testBiomeTypes())
	require.NoError(t, err)

	it := c.Sections()
	back, ok := it.NextBack()
	require.True(t, ok)
	assert.EqualValues(t, 2, back.Y)
	front, ok := it.Next()
	require.True(t, ok)
	assert.EqualValues(t, 0, front.Y)
	assert.Equal(t, 1, it.Len())
	mid, ok := it.Next()
	require.True(t, ok)
	assert.EqualValues(t, 1, mid.Y)
	_, ok = it.Next()
	assert.False(t, ok)
	_, ok = it.NextBack()
	assert.False(t, ok)
}
