package scan

import (
	"fmt"

	"github.com/oriumgames/chunkmap/chunk"
	"github.com/oriumgames/chunkmap/coord"
)

// TopLayer walks a chunk's sections from highest to lowest Y and, for
// every (x,z) column, determines the topmost opaque block, the biome
// sampled there, and — when looking through water — the depth to the
// first non-water opaque block beneath it. Returns nil for an Empty
// chunk.
func TopLayer(c *chunk.Chunk) (*LayerData, error) {
	if c.IsEmpty() {
		return nil, nil
	}

	var data LayerData
	done := 0

	it := c.Sections()

sections:
	for {
		entry, ok := it.NextBack()
		if !ok {
			break
		}

		for y := 15; y >= 0; y-- {
			for z := 0; z < 16; z++ {
				for x := 0; x < 16; x++ {
					idx := gridIndex(x, z)
					cell := &data.Blocks[idx]
					if cell.done() {
						continue
					}

					coords := coord.SectionBlockCoords{X: coord.BlockX(x), Z: coord.BlockZ(z), Y: coord.BlockY(y)}

					typ, known, err := entry.Block.BlockAt(coords)
					if err != nil {
						return nil, fmt.Errorf("top layer scan: section Y=%d: %w", entry.Y, err)
					}
					if known {
						height, err := NewBlockHeight(entry.Y, coord.BlockY(y))
						if err != nil {
							return nil, fmt.Errorf("top layer scan: %w", err)
						}
						if cell.fill(height, typ) {
							done++
						}
					}

					if !cell.isEmpty() && !data.Biomes[idx].Has {
						if b, bok, berr := entry.Biome.BiomeAt(coords); berr != nil {
							return nil, fmt.Errorf("top layer scan: section Y=%d biome: %w", entry.Y, berr)
						} else if bok {
							data.Biomes[idx] = OptionalBiome{Biome: b, Has: true}
						}
					}

					if cell.isEmpty() {
						data.BlockLight[idx] = entry.Light.BlockLightAt(coords)
					}

					if done == 256 {
						break sections
					}
				}
			}
		}
	}

	return &data, nil
}
