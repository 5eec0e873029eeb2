package main

import (
	"github.com/oriumgames/chunkmap/region"
	"github.com/sirupsen/logrus"
)

// TileRenderer turns a region's top-layer artifact into a displayable
// image tile. Rendering is out of scope (see spec Non-goals); this
// stub exists so the pipeline's final stage is wired up and logged,
// the same way the original tool logs an unimplemented render_tile
// step rather than silently skipping it.
type TileRenderer interface {
	RenderTile(rx, rz int32, a *region.Artifact) error
}

// noopRenderer logs that rendering was skipped and does nothing else.
type noopRenderer struct {
	log *logrus.Logger
}

func (r *noopRenderer) RenderTile(rx, rz int32, _ *region.Artifact) error {
	r.log.WithFields(logrus.Fields{"rx": rx, "rz": rz}).Debug("tile rendering not implemented, skipping")
	return nil
}
