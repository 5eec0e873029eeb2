// Package section implements the four block/biome/light decoder variants
// that sit under one section of a chunk: v1.13+ palettized blocks (aligned
// and unaligned packing), legacy fixed-width blocks, v1.18+ palettized
// biomes, and the three pre-v1.18 chunk-wide biome shapes.
package section

import "fmt"

// Kind enumerates the error categories a decoder construction or lookup can
// fail with. Callers match on Kind rather than on error string contents.
type Kind int

const (
	_ Kind = iota
	// InvalidBlockData means a block palette is empty, a packed-word array
	// length does not match the expected layout for its bit-width, or a
	// legacy block/data array has the wrong fixed length.
	InvalidBlockData
	// InvalidBiomeData means a chunk-wide biome array's length matches none
	// of the three recognized shapes, or a v1.18+ biome palette is empty or
	// its packed-word array has the wrong length.
	InvalidBiomeData
	// InvalidLightData means a block-light array's length isn't 2048.
	InvalidLightData
	// UnsupportedPaletteSize means the palette is too large for the bit
	// bounds allotted to its storage kind.
	UnsupportedPaletteSize
	// PaletteIndexOutOfBounds means a decoded index exceeds the palette
	// length (corrupt packed data).
	PaletteIndexOutOfBounds
	// HeightOverflow means section*16 + blockY doesn't fit a signed 32-bit
	// integer.
	HeightOverflow
)

func (k Kind) String() string {
	switch k {
	case InvalidBlockData:
		return "invalid block data"
	case InvalidBiomeData:
		return "invalid biome data"
	case InvalidLightData:
		return "invalid light data"
	case UnsupportedPaletteSize:
		return "unsupported palette size"
	case PaletteIndexOutOfBounds:
		return "palette index out of bounds"
	case HeightOverflow:
		return "height overflow"
	default:
		return "unknown section error"
	}
}

// Error is a section decoder failure tagged with its Kind.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
