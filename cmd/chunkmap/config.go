package main

import (
	"fmt"
	"os"

	"github.com/oriumgames/chunkmap/persist"
	"github.com/pelletier/go-toml"
)

// Config is the on-disk configuration for a chunkmap run.
type Config struct {
	// WorldDir is the directory holding the r.<rx>.<rz>.mca region files;
	// only its top level is listed.
	WorldDir string `toml:"world_dir"`
	// OutputDir is where per-region tile files are written.
	OutputDir string `toml:"output_dir"`
	// ResourceFile is the TOML block/biome catalog consulted by the
	// chunk assembler and scanner.
	ResourceFile string `toml:"resource_file"`
	// Compression selects the tile-file compression level.
	Compression string `toml:"compression"`
	// LogFile, if set, rotates logs through lumberjack instead of
	// writing to stderr only.
	LogFile string `toml:"log_file"`
}

// CompressionLevel resolves the configured compression name to a
// persist.CompressionLevel, defaulting to CompressionLevelDefault.
func (c *Config) CompressionLevel() persist.CompressionLevel {
	switch c.Compression {
	case "none":
		return persist.CompressionLevelNone
	case "fast":
		return persist.CompressionLevelFast
	case "best":
		return persist.CompressionLevelBest
	default:
		return persist.CompressionLevelDefault
	}
}

// LoadConfig reads and parses a TOML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{Compression: "default"}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.WorldDir == "" {
		return nil, fmt.Errorf("config %s: world_dir is required", path)
	}
	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("config %s: output_dir is required", path)
	}
	if cfg.ResourceFile == "" {
		return nil, fmt.Errorf("config %s: resource_file is required", path)
	}
	return cfg, nil
}
