package scan

import "github.com/oriumgames/chunkmap/resource"

// BlockInfo is one column's top-layer cell. Its lifecycle has three
// states: empty (no block-type at all), water-only (a type is set but
// depth isn't, because the visible surface is water and the scan is
// still looking for the floor beneath it), and done (depth is set).
type BlockInfo struct {
	Type     resource.BlockType
	HasType  bool
	Depth    BlockHeight
	HasDepth bool
}

func (b *BlockInfo) isEmpty() bool { return !b.HasType }
func (b *BlockInfo) done() bool    { return b.HasDepth }

// fill records a block seen at height y, returning whether it advanced
// the cell to the done state. A non-opaque block is never accepted. The
// first opaque block seen (top-down) becomes the visible type; water
// defers depth so the scan keeps looking for the floor underneath it.
func (b *BlockInfo) fill(y BlockHeight, t resource.BlockType) bool {
	if !t.Is(resource.FlagOpaque) {
		return false
	}
	if !b.HasType {
		b.Type, b.HasType = t, true
	}
	if t.Is(resource.FlagWater) {
		return false
	}
	b.Depth, b.HasDepth = y, true
	return true
}

// OptionalBiome is a biome sampled at a column, distinguishing "not yet
// sampled" from any particular biome value.
type OptionalBiome struct {
	Biome resource.Biome
	Has   bool
}

// LayerData is the per-chunk top-layer summary: three 16x16 arrays over
// one (x,z) grid, indexed by z*16+x.
type LayerData struct {
	Blocks     [256]BlockInfo
	Biomes     [256]OptionalBiome
	BlockLight [256]uint8
}

func gridIndex(x, z int) int {
	return z*16 + x
}
