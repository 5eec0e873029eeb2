// Package resource provides the block-type and biome catalogs the core
// decoders consult. The catalogs are read-only lookup tables: one process
// builds them once from a TOML resource file and every region worker shares
// the same pointer, matching the read-only-borrow sharing model of
// spec.md §5.
package resource

import (
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/pelletier/go-toml"
)

// BlockFlag is a bitmask of capabilities the top-layer scanner cares about.
type BlockFlag uint8

const (
	// FlagOpaque marks a block as terminating the downward scan of a column.
	FlagOpaque BlockFlag = 1 << iota
	// FlagWater marks a block as deferring depth recording while the scan
	// continues looking for the floor beneath it.
	FlagWater
)

// BlockType is an opaque identifier returned by a catalog lookup.
type BlockType struct {
	Name  string
	Flags BlockFlag
}

// Is reports whether the block type carries the given flag.
func (t BlockType) Is(flag BlockFlag) bool {
	return t.Flags&flag != 0
}

// Biome is an opaque identifier returned by a biome catalog lookup.
type Biome struct {
	Name string
}

// legacyKey packs a legacy (id, data) pair the way the v0 block table keys
// its entries.
func legacyKey(id, data uint8) uint16 {
	return uint16(id)<<8 | uint16(data)
}

// BlockTypes is a name- and legacy-(id,data)-keyed catalog of block types.
// The zero value is an empty, usable catalog.
type BlockTypes struct {
	byName   map[uint64]BlockType
	byLegacy map[uint16]BlockType
}

// NewBlockTypes builds a catalog from a slice of modern and legacy entries.
func NewBlockTypes(modern []BlockType, legacy map[[2]uint8]BlockType) *BlockTypes {
	bt := &BlockTypes{
		byName:   make(map[uint64]BlockType, len(modern)),
		byLegacy: make(map[uint16]BlockType, len(legacy)),
	}
	for _, t := range modern {
		bt.byName[xxhash.Sum64String(t.Name)] = t
	}
	for k, t := range legacy {
		bt.byLegacy[legacyKey(k[0], k[1])] = t
	}
	return bt
}

// Get resolves a v1.13+ namespaced block name. A miss is not an error: the
// caller treats it as an unknown block, per spec.md §7's recovery policy.
// No diagnostic is logged for the miss.
func (bt *BlockTypes) Get(name string) (BlockType, bool) {
	if bt == nil {
		return BlockType{}, false
	}
	t, ok := bt.byName[xxhash.Sum64String(name)]
	return t, ok
}

// GetLegacy resolves a pre-1.13 (id, data) pair.
func (bt *BlockTypes) GetLegacy(id, data uint8) (BlockType, bool) {
	if bt == nil {
		return BlockType{}, false
	}
	t, ok := bt.byLegacy[legacyKey(id, data)]
	return t, ok
}

// BiomeTypes is a name-keyed catalog of biomes.
type BiomeTypes struct {
	byName map[uint64]Biome
}

// NewBiomeTypes builds a catalog from a slice of biome entries.
func NewBiomeTypes(biomes []Biome) *BiomeTypes {
	bt := &BiomeTypes{byName: make(map[uint64]Biome, len(biomes))}
	for _, b := range biomes {
		bt.byName[xxhash.Sum64String(b.Name)] = b
	}
	return bt
}

// Get resolves a namespaced biome name.
func (bt *BiomeTypes) Get(name string) (Biome, bool) {
	if bt == nil {
		return Biome{}, false
	}
	b, ok := bt.byName[xxhash.Sum64String(name)]
	return b, ok
}

// tomlResource is the on-disk shape of a resource table.
type tomlResource struct {
	Block       []tomlBlock  `toml:"block"`
	LegacyBlock []tomlLegacy `toml:"legacy_block"`
	Biome       []tomlBiome  `toml:"biome"`
}

type tomlBlock struct {
	Name   string `toml:"name"`
	Opaque bool   `toml:"opaque"`
	Water  bool   `toml:"water"`
}

type tomlLegacy struct {
	ID     uint8  `toml:"id"`
	Data   uint8  `toml:"data"`
	Name   string `toml:"name"`
	Opaque bool   `toml:"opaque"`
	Water  bool   `toml:"water"`
}

type tomlBiome struct {
	Name string `toml:"name"`
}

// LoadCatalogs reads block and biome catalogs from a TOML resource file.
func LoadCatalogs(path string) (*BlockTypes, *BiomeTypes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read resource file %s: %w", path, err)
	}

	var res tomlResource
	if err := toml.Unmarshal(data, &res); err != nil {
		return nil, nil, fmt.Errorf("parse resource file %s: %w", path, err)
	}

	modern := make([]BlockType, 0, len(res.Block))
	for _, b := range res.Block {
		modern = append(modern, BlockType{Name: b.Name, Flags: flagsOf(b.Opaque, b.Water)})
	}

	legacy := make(map[[2]uint8]BlockType, len(res.LegacyBlock))
	for _, b := range res.LegacyBlock {
		legacy[[2]uint8{b.ID, b.Data}] = BlockType{Name: b.Name, Flags: flagsOf(b.Opaque, b.Water)}
	}

	biomes := make([]Biome, 0, len(res.Biome))
	for _, b := range res.Biome {
		biomes = append(biomes, Biome{Name: b.Name})
	}

	return NewBlockTypes(modern, legacy), NewBiomeTypes(biomes), nil
}

func flagsOf(opaque, water bool) BlockFlag {
	var f BlockFlag
	if opaque {
		f |= FlagOpaque
	}
	if water {
		f |= FlagWater
	}
	return f
}
