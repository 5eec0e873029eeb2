package region

import (
	"fmt"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oriumgames/chunkmap/chunk"
	"github.com/oriumgames/chunkmap/coord"
	"github.com/oriumgames/chunkmap/ingest"
	"github.com/oriumgames/chunkmap/resource"
	"github.com/oriumgames/chunkmap/scan"
)

// ChunkSource supplies the deserialized chunk at a chunk slot, if
// present. It is the driver's only dependency on the region-file reader
// and NBT deserializer, which stay external collaborators.
type ChunkSource interface {
	Chunk(cx, cz int) (raw *ingest.RawChunk, present bool, err error)
}

// MapChunkSource is a ChunkSource backed by a pre-decoded map, the shape
// produced by draining a region file's ForEachChunk callback through the
// ingest decoder up front.
type MapChunkSource map[[2]int]*ingest.RawChunk

// Chunk implements ChunkSource.
func (m MapChunkSource) Chunk(cx, cz int) (*ingest.RawChunk, bool, error) {
	raw, ok := m[[2]int{cx, cz}]
	return raw, ok, nil
}

// ChunkError annotates a per-chunk failure with its region-relative
// chunk coordinates.
type ChunkError struct {
	CX, CZ int
	Err    error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk (%d,%d): %v", e.CX, e.CZ, e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }

// Driver assembles and scans every populated chunk slot in one region,
// fanning out into a fixed-shape Artifact.
type Driver struct {
	BlockTypes  *resource.BlockTypes
	BiomeTypes  *resource.BiomeTypes
	HeightRange cube.Range
}

// NewDriver builds a Driver sharing the given read-only catalogs across
// however many regions the caller processes with it.
func NewDriver(blockTypes *resource.BlockTypes, biomeTypes *resource.BiomeTypes, heightRange cube.Range) *Driver {
	return &Driver{BlockTypes: blockTypes, BiomeTypes: biomeTypes, HeightRange: heightRange}
}

// Run assembles and scans every chunk slot present in src, returning an
// Artifact whose absent slots stay nil. It fails fast on the first per-chunk error,
// annotated with that chunk's (cx, cz).
func (d *Driver) Run(src ChunkSource) (*Artifact, error) {
	artifact := NewArtifact()

	for cz := 0; cz < ChunksPerRegion; cz++ {
		for cx := 0; cx < ChunksPerRegion; cx++ {
			raw, present, err := src.Chunk(cx, cz)
			if err != nil {
				return nil, &ChunkError{CX: cx, CZ: cz, Err: err}
			}
			if !present {
				continue
			}

			data, err := d.assembleAndScan(raw)
			if err != nil {
				return nil, &ChunkError{CX: cx, CZ: cz, Err: err}
			}
			artifact.Set(cx, cz, data)
		}
	}

	return artifact, nil
}

func (d *Driver) assembleAndScan(raw *ingest.RawChunk) (*scan.LayerData, error) {
	c, err := chunk.New(raw, d.BlockTypes, d.BiomeTypes)
	if err != nil {
		return nil, err
	}

	if err := d.checkHeightRange(c); err != nil {
		return nil, err
	}

	return scan.TopLayer(c)
}

// checkHeightRange rejects a chunk carrying sections outside the
// configured world height, a defensive check beyond the core contract
// that mirrors the way the teacher's World/Provider validates dimRange
// before handing a column off.
func (d *Driver) checkHeightRange(c *chunk.Chunk) error {
	if d.HeightRange == (cube.Range{}) {
		return nil
	}
	minSection, maxSection := coord.SectionY(d.HeightRange[0]>>4), coord.SectionY(d.HeightRange[1]>>4)

	it := c.Sections()
	for {
		entry, ok := it.Next()
		if !ok {
			return nil
		}
		if entry.Y < minSection || entry.Y > maxSection {
			return fmt.Errorf("section Y=%d outside world height range [%d,%d]", entry.Y, minSection, maxSection)
		}
	}
}
