package section

import (
	"github.com/oriumgames/chunkmap/coord"
	"github.com/oriumgames/chunkmap/ingest"
	"github.com/oriumgames/chunkmap/palette"
	"github.com/oriumgames/chunkmap/resource"
)

// alignedDataVersion is the data version at which block-state packing
// switched from a contiguous unaligned bitstream to word-aligned slots.
const alignedDataVersion = 2529

type blockSlot struct {
	typ   resource.BlockType
	known bool
}

// BlockV1_13 is the v1.13+ palettized block decoder: a palette of block
// types plus an optional packed-index array, in either aligned or
// unaligned layout depending on the source data version.
type BlockV1_13 struct {
	words   []uint64
	palette []blockSlot
	bits    uint8
	aligned bool
}

// NewBlockV1_13 validates a palette and optional packed-word array and
// builds a decoder over them. An absent packed array implies every block
// in the section is palette index 0.
func NewBlockV1_13(entries []ingest.RawPaletteEntry, data []int64, dataVersion uint32, types *resource.BlockTypes) (*BlockV1_13, error) {
	if len(entries) == 0 {
		return nil, newError(InvalidBlockData, "empty block palette")
	}

	bits, ok := palette.Bits(len(entries), 4, 12)
	if !ok {
		return nil, newError(UnsupportedPaletteSize, "block palette of length %d", len(entries))
	}

	aligned := dataVersion >= alignedDataVersion

	var words []uint64
	if len(data) > 0 {
		var expected int
		if aligned {
			expected = alignedWordCount(4096, bits)
		} else {
			expected = unalignedWordCount(4096, bits)
		}
		if len(data) != expected {
			return nil, newError(InvalidBlockData, "packed array length %d, expected %d for bits=%d aligned=%v", len(data), expected, bits, aligned)
		}
		words = wordsFromSigned(data)
	}

	slots := make([]blockSlot, len(entries))
	for i, e := range entries {
		t, known := types.Get(e.Name)
		slots[i] = blockSlot{typ: t, known: known}
	}

	return &BlockV1_13{words: words, palette: slots, bits: bits, aligned: aligned}, nil
}

// BlockAt resolves the block type at the given section-local coordinates.
// known is false for a palette entry the catalog didn't recognize; the
// scanner treats that the same as an absent, non-opaque block.
func (s *BlockV1_13) BlockAt(c coord.SectionBlockCoords) (typ resource.BlockType, known bool, err error) {
	off := c.Offset()

	var index uint32
	switch {
	case s.words == nil:
		index = 0
	case s.aligned:
		index = alignedIndexAt(s.words, s.bits, off)
	default:
		index = unalignedIndexAt(s.words, s.bits, off)
	}

	if int(index) >= len(s.palette) {
		return resource.BlockType{}, false, newError(PaletteIndexOutOfBounds, "index %d, palette length %d", index, len(s.palette))
	}
	slot := s.palette[index]
	return slot.typ, slot.known, nil
}
