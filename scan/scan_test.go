package scan

import (
	"testing"

	"github.com/oriumgames/chunkmap/chunk"
	"github.com/oriumgames/chunkmap/ingest"
	"github.com/oriumgames/chunkmap/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBlockTypes() *resource.BlockTypes {
	return resource.NewBlockTypes([]resource.BlockType{
		{Name: "minecraft:air"},
		{Name: "minecraft:sand", Flags: resource.FlagOpaque},
		{Name: "minecraft:water", Flags: resource.FlagOpaque | resource.FlagWater},
		{Name: "minecraft:stone", Flags: resource.FlagOpaque},
	}, nil)
}

func testBiomeTypes() *resource.BiomeTypes {
	return resource.NewBiomeTypes([]resource.Biome{{Name: "minecraft:plains"}})
}

func packAligned(indices []int, bits uint8) []int64 {
	perWord := 64 / int(bits)
	words := make([]int64, (len(indices)+perWord-1)/perWord)
	for i, idx := range indices {
		w, shift := i/perWord, uint(i%perWord)*uint(bits)
		words[w] |= int64(idx) << shift
	}
	return words
}

// columnSection builds a v1.18 section whose every block is index 0 of
// the given palette, except for explicit column overrides of the form
// (x, z, y) -> paletteIndex applied from y=0 upward for that column.
func columnSection(y int8, palette []string, columnOverrides map[[2]int][]int) ingest.RawSectionV1_18 {
	entries := make([]ingest.RawPaletteEntry, len(palette))
	for i, n := range palette {
		entries[i] = ingest.RawPaletteEntry{Name: n}
	}

	indices := make([]int, 4096)
	for xz, col := range columnOverrides {
		x, z := xz[0], xz[1]
		for by, idx := range col {
			off := by*256 + z*16 + x
			indices[off] = idx
		}
	}

	words := packAligned(indices, 4)
	return ingest.RawSectionV1_18{
		Y:           y,
		BlockStates: ingest.RawBlockStates{Palette: entries, Data: words},
		Biomes:      ingest.RawBiomesV18{Palette: []string{"minecraft:plains"}},
	}
}

func TestTopLayerEmptyChunkYieldsAbsence(t *testing.T) {
	raw := &ingest.RawChunk{DataVersion: 3000, Level: &ingest.RawLevel{}}
	c, err := chunk.New(raw, testBlockTypes(), testBiomeTypes())
	require.NoError(t, err)

	data, err := TopLayer(c)
	require.NoError(t, err)
	assert.Nil(t, data)
}

// TestTopLayerWaterOverSand covers end-to-end scenario 4: column (5,5)
// has sand at y=0..3 and water at y=4..8, air above. Expect block_type =
// water, depth = 3.
func TestTopLayerWaterOverSand(t *testing.T) {
	palette := []string{"minecraft:air", "minecraft:sand", "minecraft:water"}
	col := make([]int, 9)
	for y := 0; y <= 3; y++ {
		col[y] = 1 // sand
	}
	for y := 4; y <= 8; y++ {
		col[y] = 2 // water
	}

	sec := columnSection(0, palette, map[[2]int][]int{{5, 5}: col})
	raw := &ingest.RawChunk{DataVersion: 3000, Sections: []ingest.RawSectionV1_18{sec}}

	c, err := chunk.New(raw, testBlockTypes(), testBiomeTypes())
	require.NoError(t, err)

	data, err := TopLayer(c)
	require.NoError(t, err)
	require.NotNil(t, data)

	cell := data.Blocks[gridIndex(5, 5)]
	require.True(t, cell.HasType)
	assert.Equal(t, "minecraft:water", cell.Type.Name)
	require.True(t, cell.HasDepth)
	assert.EqualValues(t, 3, cell.Depth)
}

func TestTopLayerAllNonOpaqueColumnStaysEmpty(t *testing.T) {
	palette := []string{"minecraft:air"}
	sec := columnSection(0, palette, nil)
	raw := &ingest.RawChunk{DataVersion: 3000, Sections: []ingest.RawSectionV1_18{sec}}

	c, err := chunk.New(raw, testBlockTypes(), testBiomeTypes())
	require.NoError(t, err)

	data, err := TopLayer(c)
	require.NoError(t, err)
	require.NotNil(t, data)

	for i := range data.Blocks {
		assert.False(t, data.Blocks[i].HasType)
		assert.False(t, data.Biomes[i].Has)
	}
}

func TestTopLayerSingleStoneBlock(t *testing.T) {
	// End-to-end scenario 1: a single stone block at (0,0,0), air
	// everywhere else, aligned layout.
	palette := []string{"minecraft:air", "minecraft:stone"}
	sec := columnSection(2, palette, map[[2]int][]int{{0, 0}: {1}})
	raw := &ingest.RawChunk{DataVersion: 3000, Sections: []ingest.RawSectionV1_18{sec}}

	c, err := chunk.New(raw, testBlockTypes(), testBiomeTypes())
	require.NoError(t, err)

	data, err := TopLayer(c)
	require.NoError(t, err)

	cell := data.Blocks[gridIndex(0, 0)]
	assert.Equal(t, "minecraft:stone", cell.Type.Name)
	assert.EqualValues(t, 2*16+0, cell.Depth)

	other := data.Blocks[gridIndex(1, 1)]
	assert.False(t, other.HasType)
}
