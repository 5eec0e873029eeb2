package region

import "github.com/oriumgames/chunkmap/scan"

// ChunksPerRegion is the width and height, in chunks, of one region.
const ChunksPerRegion = 32

// Artifact is a per-region artifact: a 32x32 array of optional
// top-layer summaries, one per chunk slot.
type Artifact struct {
	Slots [ChunksPerRegion][ChunksPerRegion]*scan.LayerData
}

// NewArtifact allocates an empty, all-absent artifact.
func NewArtifact() *Artifact {
	return &Artifact{}
}

// Get returns the layer data at (cx, cz), or nil if that slot is absent.
func (a *Artifact) Get(cx, cz int) *scan.LayerData {
	if cx < 0 || cx >= ChunksPerRegion || cz < 0 || cz >= ChunksPerRegion {
		return nil
	}
	return a.Slots[cx][cz]
}

// Set records the layer data (or absence, for a nil data) at (cx, cz).
func (a *Artifact) Set(cx, cz int, data *scan.LayerData) {
	a.Slots[cx][cz] = data
}
