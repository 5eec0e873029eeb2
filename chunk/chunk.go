// Package chunk assembles a deserialized chunk (package ingest's Raw*
// shapes) into one of four tagged variants and exposes an ordered,
// double-ended iterator over its sections for the top-layer scanner.
package chunk

import (
	"fmt"
	"sort"

	"github.com/oriumgames/chunkmap/coord"
	"github.com/oriumgames/chunkmap/ingest"
	"github.com/oriumgames/chunkmap/resource"
	"github.com/oriumgames/chunkmap/section"
)

// Kind discriminates the four chunk shapes.
type Kind int

const (
	// V1_18 chunks carry biomes inside each section.
	V1_18 Kind = iota
	// V1_13 chunks carry palettized blocks and a chunk-wide legacy biome
	// array.
	V1_13
	// V0 chunks carry fixed-width legacy blocks and a chunk-wide legacy
	// biome array.
	V0
	// Empty chunks have no populated sections at all.
	Empty
)

// BlockAccessor is the polymorphic block-lookup capability shared by
// BlockV1_13 and BlockV0.
type BlockAccessor interface {
	BlockAt(c coord.SectionBlockCoords) (resource.BlockType, bool, error)
}

// BiomeAccessor is the polymorphic biome-lookup capability shared by the
// v1.18 per-section decoder and the chunk-wide legacy one.
type BiomeAccessor interface {
	BiomeAt(c coord.SectionBlockCoords) (resource.Biome, bool, error)
}

type blockV0Adapter struct{ *section.BlockV0 }

func (a blockV0Adapter) BlockAt(c coord.SectionBlockCoords) (resource.BlockType, bool, error) {
	t, ok := a.BlockV0.BlockAt(c)
	return t, ok, nil
}

type legacyBiomeAdapter struct {
	biomes *section.BiomeV0
	y      coord.SectionY
}

func (a legacyBiomeAdapter) BiomeAt(c coord.SectionBlockCoords) (resource.Biome, bool, error) {
	b, ok := a.biomes.BiomeAt(c, a.y)
	return b, ok, nil
}

// SectionEntry is one populated section's decoding capability, keyed by
// its world section-Y.
type SectionEntry struct {
	Y     coord.SectionY
	Block BlockAccessor
	Biome BiomeAccessor
	Light *section.BlockLight
}

// Chunk is the assembled, tagged-union chunk value the top-layer scanner
// consumes.
type Chunk struct {
	kind    Kind
	entries []SectionEntry // sorted ascending by Y
}

// Kind reports which of the four shapes this chunk was assembled as.
func (c *Chunk) Kind() Kind { return c.kind }

// IsEmpty reports whether the chunk has no populated sections.
func (c *Chunk) IsEmpty() bool { return c.kind == Empty }

// New assembles a Chunk from a deserialized chunk, dispatching on whether
// it decoded as the v1.18+ shape or a legacy Level compound.
func New(raw *ingest.RawChunk, blockTypes *resource.BlockTypes, biomeTypes *resource.BiomeTypes) (*Chunk, error) {
	if raw.IsV1_18() {
		return newV1_18(raw.DataVersion, raw.Sections, blockTypes, biomeTypes)
	}
	return newLegacy(raw.DataVersion, raw.Level, blockTypes)
}

func newV1_18(dataVersion uint32, sections []ingest.RawSectionV1_18, blockTypes *resource.BlockTypes, biomeTypes *resource.BiomeTypes) (*Chunk, error) {
	entries := make([]SectionEntry, 0, len(sections))
	for _, s := range sections {
		y := coord.SectionY(s.Y)

		block, err := section.NewBlockV1_13(s.BlockStates.Palette, s.BlockStates.Data, dataVersion, blockTypes)
		if err != nil {
			return nil, fmt.Errorf("section Y=%d: %w", y, err)
		}
		biome, err := section.NewBiomeV18(s.Biomes.Palette, s.Biomes.Data, biomeTypes)
		if err != nil {
			return nil, fmt.Errorf("section Y=%d biomes: %w", y, err)
		}
		light, err := section.NewBlockLight(s.BlockLight)
		if err != nil {
			return nil, fmt.Errorf("section Y=%d block light: %w", y, err)
		}

		entries = append(entries, SectionEntry{Y: y, Block: block, Biome: biome, Light: light})
	}

	sortEntries(entries)
	return &Chunk{kind: V1_18, entries: entries}, nil
}

func newLegacy(dataVersion uint32, level *ingest.RawLevel, blockTypes *resource.BlockTypes) (*Chunk, error) {
	var v1_13Entries, v0Entries []SectionEntry

	for _, s := range level.Sections {
		y := coord.SectionY(s.Y)

		light, err := section.NewBlockLight(s.BlockLight)
		if err != nil {
			return nil, fmt.Errorf("section Y=%d block light: %w", y, err)
		}

		switch {
		case s.BlockStates != nil:
			block, err := section.NewBlockV1_13(s.BlockStates.Palette, s.BlockStates.Data, dataVersion, blockTypes)
			if err != nil {
				return nil, fmt.Errorf("section Y=%d: %w", y, err)
			}
			v1_13Entries = append(v1_13Entries, SectionEntry{Y: y, Block: block, Light: light})

		case s.Blocks != nil:
			block, err := section.NewBlockV0(s.Blocks, s.Data, blockTypes)
			if err != nil {
				return nil, fmt.Errorf("section Y=%d: %w", y, err)
			}
			v0Entries = append(v0Entries, SectionEntry{Y: y, Block: blockV0Adapter{block}, Light: light})

		default:
			// Section carries no block data at all; skip it.
		}
	}

	switch {
	case len(v1_13Entries) == 0 && len(v0Entries) == 0:
		return &Chunk{kind: Empty}, nil

	case len(v1_13Entries) > 0 && len(v0Entries) > 0:
		return nil, &MixedVersionsError{}

	case len(v1_13Entries) > 0:
		biomes, err := section.NewBiomeV0(level.Biomes)
		if err != nil {
			return nil, &MissingBiomesError{Cause: err}
		}
		attachLegacyBiomes(v1_13Entries, biomes)
		sortEntries(v1_13Entries)
		return &Chunk{kind: V1_13, entries: v1_13Entries}, nil

	default:
		biomes, err := section.NewBiomeV0(level.Biomes)
		if err != nil {
			return nil, &MissingBiomesError{Cause: err}
		}
		attachLegacyBiomes(v0Entries, biomes)
		sortEntries(v0Entries)
		return &Chunk{kind: V0, entries: v0Entries}, nil
	}
}

func attachLegacyBiomes(entries []SectionEntry, biomes *section.BiomeV0) {
	for i := range entries {
		entries[i].Biome = legacyBiomeAdapter{biomes: biomes, y: entries[i].Y}
	}
}

func sortEntries(entries []SectionEntry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Y < entries[j].Y })
}

// MixedVersionsError reports a legacy chunk whose sections mix the v1.13
// and v0 block layouts, which the source format never does.
type MixedVersionsError struct{}

func (e *MixedVersionsError) Error() string {
	return "chunk: mixed section versions (both v1.13 and v0 sections present)"
}

// MissingBiomesError reports a non-empty legacy chunk lacking a
// recognized chunk-wide biome array.
type MissingBiomesError struct {
	Cause error
}

func (e *MissingBiomesError) Error() string {
	return fmt.Sprintf("chunk: missing biomes: %v", e.Cause)
}

func (e *MissingBiomesError) Unwrap() error { return e.Cause }
