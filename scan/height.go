// Package scan implements the top-down per-column scan that reduces an
// assembled chunk (package chunk) down to a 16x16 top-layer summary: the
// topmost opaque block, its height, the biome sampled there, and the
// water depth when looking through water.
package scan

import (
	"fmt"
	"math"

	"github.com/oriumgames/chunkmap/coord"
	"github.com/oriumgames/chunkmap/section"
)

// BlockHeight is a world-Y coordinate, constructed with an overflow check
// since section*16 can exceed a signed 32-bit range for pathological
// section indices.
type BlockHeight int32

// NewBlockHeight computes section*16 + blockY, failing if the result
// doesn't fit a signed 32-bit integer.
func NewBlockHeight(sectionY coord.SectionY, blockY coord.BlockY) (BlockHeight, error) {
	h := int64(sectionY)*int64(coord.BlocksPerChunk) + int64(blockY)
	if h < math.MinInt32 || h > math.MaxInt32 {
		return 0, &section.Error{
			Kind: section.HeightOverflow,
			Msg:  fmt.Sprintf("section=%d block=%d", sectionY, blockY),
		}
	}
	return BlockHeight(h), nil
}
