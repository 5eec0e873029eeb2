// Package ingest defines the deserialized-chunk contract the chunk
// assembler consumes (spec.md §6, upstream) and a default decoder that
// fills it in from raw, already-inflated NBT bytes.
//
// Package chunk imports this package only for the Raw* struct shapes below;
// it never calls Decode, which is what keeps the named-binary-tag
// deserializer an external collaborator rather than a core dependency. The
// decoder in decode.go builds these by hand from a decoded
// map[string]any rather than leaning on struct-tag reflection, because the
// legacy "Biomes" tag changes both type and length across versions and a
// single struct field can't carry that ambiguity.
package ingest

// RawPaletteEntry is one block-state palette slot.
type RawPaletteEntry struct {
	Name       string
	Properties map[string]string
}

// RawBlockStates is the v1.13+ palette + packed-index block storage.
type RawBlockStates struct {
	Palette []RawPaletteEntry
	Data    []int64
}

// RawBiomesV18 is the v1.18+ palette + packed-index biome storage.
type RawBiomesV18 struct {
	Palette []string
	Data    []int64
}

// RawSectionV1_18 is one section of a v1.18+ chunk.
type RawSectionV1_18 struct {
	Y           int8
	BlockStates RawBlockStates
	Biomes      RawBiomesV18
	BlockLight  []byte
}

// RawSectionV0 is one section of a legacy (pre-1.18) chunk. Exactly one of
// (BlockStates) or (Blocks, Data) is populated for a non-empty section; both
// nil means the section carries no block data at all.
type RawSectionV0 struct {
	Y int8

	// v1.13-shaped legacy section (palette + packed indices).
	BlockStates *RawBlockStates

	// v0-shaped legacy section (fixed-width id + nibble arrays).
	Blocks []byte
	Data   []byte

	BlockLight []byte
}

// RawBiomesV0 holds one of the three pre-v1.18 chunk-wide biome shapes: a
// 4x4x4 (64-entry) int array (v1.15+ 3D biomes), a 256-entry int array, or a
// 256-entry byte array (oldest saves). At most one of the two fields is set;
// both empty means the save predates chunk-wide biome data entirely.
type RawBiomesV0 struct {
	IntArray  []int32
	ByteArray []byte
}

// RawLevel is the legacy (pre-1.18) chunk body, nested under "Level" in the
// source NBT.
type RawLevel struct {
	Sections []RawSectionV0
	Biomes   RawBiomesV0
}

// RawChunk is the deserialized-chunk contract: a data version plus exactly
// one of the two chunk-shape variants.
type RawChunk struct {
	DataVersion uint32

	// Populated for v1.18+ saves.
	Sections []RawSectionV1_18

	// Populated for legacy saves (nested "Level" compound).
	Level *RawLevel
}

// IsV1_18 reports whether the raw chunk was deserialized as a v1.18+ chunk.
func (c *RawChunk) IsV1_18() bool {
	return c.Level == nil
}
