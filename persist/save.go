package persist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oriumgames/chunkmap/region"
)

// FileName returns the on-disk tile name for a region at (rx, rz),
// mirroring the region-file naming convention this format replaces.
func FileName(rx, rz int32) string {
	return fmt.Sprintf("r.%d.%d.bin", rx, rz)
}

// Save encodes an artifact and atomically publishes it under dir,
// writing to a temporary file first and renaming it into place so a
// reader never observes a partially written tile.
func Save(dir string, rx, rz int32, a *region.Artifact, level CompressionLevel) error {
	finalPath := filepath.Join(dir, FileName(rx, rz))
	tmpPath := finalPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmpPath, err)
	}

	if err := encodeArtifact(f, a, level); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("encode %s: %w", tmpPath, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return fmt.Errorf("rename %s to %s: %w", tmpPath, finalPath, err)
	}
	return nil
}

// Load reads and decodes the artifact previously saved for (rx, rz).
func Load(dir string, rx, rz int32) (*region.Artifact, error) {
	path := filepath.Join(dir, FileName(rx, rz))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	a, err := DecodeArtifact(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return a, nil
}
