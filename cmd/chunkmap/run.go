package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oriumgames/chunkmap/ingest"
	"github.com/oriumgames/chunkmap/persist"
	"github.com/oriumgames/chunkmap/region"
	"github.com/oriumgames/chunkmap/regionfile"
	"github.com/oriumgames/chunkmap/resource"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var regionFileName = regexp.MustCompile(`^r\.(-?\d+)\.(-?\d+)\.mca$`)

// parseRegionFileName extracts the (rx, rz) region coordinates a
// vanilla Anvil region file's name encodes.
func parseRegionFileName(name string) (rx, rz int32, ok bool) {
	m := regionFileName.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, false
	}
	x, err1 := strconv.ParseInt(m[1], 10, 32)
	z, err2 := strconv.ParseInt(m[2], 10, 32)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return int32(x), int32(z), true
}

// run discovers every region file under cfg.WorldDir and fans them out
// across a worker pool, one goroutine per region end to end, bounded by
// runtime.GOMAXPROCS(0) as spec.md §5 requires.
func run(cfg *Config, log *logrus.Logger) error {
	blockTypes, biomeTypes, err := resource.LoadCatalogs(cfg.ResourceFile)
	if err != nil {
		return fmt.Errorf("load resource catalogs: %w", err)
	}

	entries, err := os.ReadDir(cfg.WorldDir)
	if err != nil {
		return fmt.Errorf("read world dir %s: %w", cfg.WorldDir, err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", cfg.OutputDir, err)
	}

	driver := region.NewDriver(blockTypes, biomeTypes, cube.Range{})
	renderer := &noopRenderer{log: log}

	group := new(errgroup.Group)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for _, entry := range entries {
		rx, rz, ok := parseRegionFileName(entry.Name())
		if !ok {
			continue
		}
		path := filepath.Join(cfg.WorldDir, entry.Name())

		group.Go(func() error {
			if err := processRegion(path, rx, rz, cfg, driver, renderer, log); err != nil {
				log.WithFields(logrus.Fields{"rx": rx, "rz": rz, "err": err}).Error("region failed")
				return fmt.Errorf("region (%d,%d): %w", rx, rz, err)
			}
			return nil
		})
	}

	return group.Wait()
}

// processRegion reads one region file end to end: region file → ingest
// decoder → chunk assembler → top-layer scanner → persistence.
func processRegion(path string, rx, rz int32, cfg *Config, driver *region.Driver, renderer TileRenderer, log *logrus.Logger) error {
	rf, err := regionfile.Open(path)
	if err != nil {
		return fmt.Errorf("open region file: %w", err)
	}
	defer rf.Close()

	source := make(region.MapChunkSource)
	err = rf.ForEachChunk(func(cx, cz int, r io.Reader) error {
		raw, err := ingest.Decode(r)
		if err != nil {
			return fmt.Errorf("chunk (%d,%d): %w", cx, cz, err)
		}
		source[[2]int{cx, cz}] = raw
		return nil
	})
	if err != nil {
		return fmt.Errorf("read chunks: %w", err)
	}

	artifact, err := driver.Run(source)
	if err != nil {
		return fmt.Errorf("assemble and scan: %w", err)
	}

	if err := persist.Save(cfg.OutputDir, rx, rz, artifact, cfg.CompressionLevel()); err != nil {
		return fmt.Errorf("save tile: %w", err)
	}

	if err := renderer.RenderTile(rx, rz, artifact); err != nil {
		return fmt.Errorf("render tile: %w", err)
	}

	log.WithFields(logrus.Fields{"rx": rx, "rz": rz}).Info("region processed")
	return nil
}
