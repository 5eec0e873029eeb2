package section

import (
	"github.com/oriumgames/chunkmap/coord"
	"github.com/oriumgames/chunkmap/ingest"
	"github.com/oriumgames/chunkmap/resource"
)

// BiomeV0Shape identifies which of the three pre-v1.18 chunk-wide biome
// array shapes a BiomeV0 was built from.
type BiomeV0Shape int

const (
	// BiomeShapeV15 is the 4x4x4, Y-stacked int-array shape (length 64).
	BiomeShapeV15 BiomeV0Shape = iota
	// BiomeShape2DInt is the per-column int-array shape (length 256).
	BiomeShape2DInt
	// BiomeShape2DByte is the per-column byte-array shape (length 256).
	BiomeShape2DByte
)

// BiomeV0 holds one of the three pre-v1.18 chunk-wide biome shapes.
// Unlike the block and v1.18-biome decoders it isn't per-section: the
// underlying array is shared, chunk-wide, across every section of a
// legacy chunk, and the section's Y folds into the index for the v1.15
// shape.
//
// Name resolution for these legacy numeric biome IDs is deliberately left
// unwired — see the doc comment on BiomeAt.
type BiomeV0 struct {
	shape BiomeV0Shape
	ints  []int32
	bytes []byte
}

// NewBiomeV0 selects a shape from the (type, length) of the raw array.
func NewBiomeV0(raw ingest.RawBiomesV0) (*BiomeV0, error) {
	switch {
	case len(raw.IntArray) == 64:
		return &BiomeV0{shape: BiomeShapeV15, ints: raw.IntArray}, nil
	case len(raw.IntArray) == 256:
		return &BiomeV0{shape: BiomeShape2DInt, ints: raw.IntArray}, nil
	case len(raw.ByteArray) == 256:
		return &BiomeV0{shape: BiomeShape2DByte, bytes: raw.ByteArray}, nil
	default:
		return nil, newError(InvalidBiomeData, "array shape (ints=%d, bytes=%d) matches none of the recognized layouts", len(raw.IntArray), len(raw.ByteArray))
	}
}

// Shape reports which on-disk layout this decoder was built from.
func (b *BiomeV0) Shape() BiomeV0Shape {
	return b.shape
}

func floorMod4(y coord.SectionY) int {
	m := int(y) % 4
	if m < 0 {
		m += 4
	}
	return m
}

// LegacyID returns the raw numeric biome ID at the given section-local
// coordinates within the section at world sectionY. The v1.15 3D shape
// folds sectionY into the index with a 4-block stride in all three
// dimensions; the two 2D shapes are Y-invariant.
func (b *BiomeV0) LegacyID(c coord.SectionBlockCoords, sectionY coord.SectionY) int32 {
	switch b.shape {
	case BiomeShapeV15:
		off := floorMod4(sectionY)*16 + int(c.Z/4)*4 + int(c.X/4)
		return b.ints[off]
	case BiomeShape2DInt:
		off := int(c.Z)*16 + int(c.X)
		return b.ints[off]
	default: // BiomeShape2DByte
		off := int(c.Z)*16 + int(c.X)
		return int32(b.bytes[off])
	}
}

// BiomeAt always reports absence: these legacy saves store a numeric
// biome ID with no accompanying name, and the catalog in package resource
// is keyed by name. Map coloring for pre-v1.18 saves therefore carries no
// biome tint until a numeric-ID catalog is wired in.
func (b *BiomeV0) BiomeAt(coord.SectionBlockCoords, coord.SectionY) (resource.Biome, bool) {
	return resource.Biome{}, false
}
