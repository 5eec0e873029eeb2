package section

import (
	"github.com/oriumgames/chunkmap/coord"
	"github.com/oriumgames/chunkmap/palette"
	"github.com/oriumgames/chunkmap/resource"
)

type biomeSlot struct {
	biome resource.Biome
	known bool
}

// BiomeV18 is the v1.18+ palettized biome decoder: structurally the same
// as BlockV1_13 but operating on a 4x4x4 grid (64 slots) per section, and
// only ever aligned — the bitstream layout was never used for biomes.
type BiomeV18 struct {
	words   []uint64
	palette []biomeSlot
	bits    uint8
}

// NewBiomeV18 validates a biome palette and optional packed-index array.
func NewBiomeV18(names []string, data []int64, types *resource.BiomeTypes) (*BiomeV18, error) {
	if len(names) == 0 {
		return nil, newError(InvalidBiomeData, "empty biome palette")
	}

	bits, ok := palette.Bits(len(names), 1, 6)
	if !ok {
		return nil, newError(UnsupportedPaletteSize, "biome palette of length %d", len(names))
	}

	var words []uint64
	if len(data) > 0 {
		expected := alignedWordCount(64, bits)
		if len(data) != expected {
			return nil, newError(InvalidBiomeData, "packed array length %d, expected %d for bits=%d", len(data), expected, bits)
		}
		words = wordsFromSigned(data)
	}

	slots := make([]biomeSlot, len(names))
	for i, n := range names {
		b, known := types.Get(n)
		slots[i] = biomeSlot{biome: b, known: known}
	}

	return &BiomeV18{words: words, palette: slots, bits: bits}, nil
}

// biomeGridOffset collapses a block coordinate down to the 4x4x4 biome
// grid, one entry per 4-block cube.
func biomeGridOffset(c coord.SectionBlockCoords) int {
	return int(c.Y/4)*16 + int(c.Z/4)*4 + int(c.X/4)
}

// BiomeAt resolves the biome at the given section-local coordinates.
func (s *BiomeV18) BiomeAt(c coord.SectionBlockCoords) (resource.Biome, bool, error) {
	off := biomeGridOffset(c)

	var index uint32
	if s.words == nil {
		index = 0
	} else {
		index = alignedIndexAt(s.words, s.bits, off)
	}

	if int(index) >= len(s.palette) {
		return resource.Biome{}, false, newError(PaletteIndexOutOfBounds, "index %d, palette length %d", index, len(s.palette))
	}
	slot := s.palette[index]
	return slot.biome, slot.known, nil
}
