package section

import (
	"github.com/oriumgames/chunkmap/coord"
	"github.com/oriumgames/chunkmap/resource"
)

// BlockV0 is the legacy, pre-1.13 fixed-width block decoder: a full byte
// per block plus a nibble array of extra "data" bits, resolved against a
// legacy (id, data) catalog.
type BlockV0 struct {
	blocks []byte
	data   []byte
	types  *resource.BlockTypes
}

// NewBlockV0 validates the fixed array lengths of a legacy section.
func NewBlockV0(blocks, data []byte, types *resource.BlockTypes) (*BlockV0, error) {
	if len(blocks) != 4096 {
		return nil, newError(InvalidBlockData, "blocks length %d, expected 4096", len(blocks))
	}
	if len(data) != 2048 {
		return nil, newError(InvalidBlockData, "data length %d, expected 2048", len(data))
	}
	return &BlockV0{blocks: blocks, data: data, types: types}, nil
}

// BlockAt resolves the block type at the given section-local coordinates.
func (s *BlockV0) BlockAt(c coord.SectionBlockCoords) (resource.BlockType, bool) {
	off := c.Offset()
	id := s.blocks[off]
	dat := nibbleAt(s.data, off)
	return s.types.GetLegacy(id, dat)
}
