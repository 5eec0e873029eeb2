package section

import "github.com/oriumgames/chunkmap/coord"

// BlockLight is the 4096-nibble block-light decoder shared by every chunk
// variant. A nil array means "absent", which is contractually darkness.
type BlockLight struct {
	data []byte
}

// NewBlockLight validates the light array length, when present.
func NewBlockLight(data []byte) (*BlockLight, error) {
	if data != nil && len(data) != 2048 {
		return nil, newError(InvalidLightData, "length %d, expected 2048", len(data))
	}
	return &BlockLight{data: data}, nil
}

// BlockLightAt returns the light level at the given section-local
// coordinates, or 0 when the section carries no light data.
func (s *BlockLight) BlockLightAt(c coord.SectionBlockCoords) uint8 {
	if s == nil || s.data == nil {
		return 0
	}
	return nibbleAt(s.data, c.Offset())
}
