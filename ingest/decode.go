package ingest

import (
	"bytes"
	"fmt"
	"io"

	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// Decode reads one chunk's NBT body (already decompressed by the region
// file reader) and builds a RawChunk. Java-edition region files store
// big-endian NBT, unlike gophertunnel's usual network little-endian tags.
func Decode(r io.Reader) (*RawChunk, error) {
	var m map[string]any
	dec := nbt.NewDecoderWithEncoding(r, nbt.BigEndian)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode chunk nbt: %w", err)
	}
	return fromMap(m)
}

// DecodeBytes is a convenience wrapper around Decode for an in-memory blob.
func DecodeBytes(data []byte) (*RawChunk, error) {
	return Decode(bytes.NewReader(data))
}

func fromMap(m map[string]any) (*RawChunk, error) {
	c := &RawChunk{}
	if v, ok := m["DataVersion"].(int32); ok {
		c.DataVersion = uint32(v)
	}

	if level, ok := m["Level"].(map[string]any); ok {
		lvl, err := levelFromMap(level)
		if err != nil {
			return nil, err
		}
		c.Level = lvl
		return c, nil
	}

	sectionsRaw, _ := m["sections"].([]any)
	c.Sections = make([]RawSectionV1_18, 0, len(sectionsRaw))
	for _, s := range sectionsRaw {
		sm, ok := s.(map[string]any)
		if !ok {
			continue
		}
		sec, err := sectionV1_18FromMap(sm)
		if err != nil {
			return nil, err
		}
		c.Sections = append(c.Sections, sec)
	}
	return c, nil
}

func levelFromMap(level map[string]any) (*RawLevel, error) {
	lvl := &RawLevel{}

	sectionsRaw, _ := level["Sections"].([]any)
	lvl.Sections = make([]RawSectionV0, 0, len(sectionsRaw))
	for _, s := range sectionsRaw {
		sm, ok := s.(map[string]any)
		if !ok {
			continue
		}
		sec, err := sectionV0FromMap(sm)
		if err != nil {
			return nil, err
		}
		lvl.Sections = append(lvl.Sections, sec)
	}

	if biomes, ok := level["Biomes"]; ok {
		switch b := biomes.(type) {
		case []int32:
			lvl.Biomes.IntArray = b
		case []byte:
			lvl.Biomes.ByteArray = b
		}
	}

	return lvl, nil
}

func sectionV1_18FromMap(sm map[string]any) (RawSectionV1_18, error) {
	sec := RawSectionV1_18{}
	if y, ok := sm["Y"].(byte); ok {
		sec.Y = int8(y)
	}
	if bs, ok := sm["block_states"].(map[string]any); ok {
		states, err := blockStatesFromMap(bs)
		if err != nil {
			return sec, err
		}
		sec.BlockStates = states
	}
	if bi, ok := sm["biomes"].(map[string]any); ok {
		sec.Biomes = biomesV18FromMap(bi)
	}
	if bl, ok := sm["BlockLight"].([]byte); ok {
		sec.BlockLight = bl
	}
	return sec, nil
}

func sectionV0FromMap(sm map[string]any) (RawSectionV0, error) {
	sec := RawSectionV0{}
	if y, ok := sm["Y"].(byte); ok {
		sec.Y = int8(y)
	}
	if bs, ok := sm["block_states"].(map[string]any); ok {
		states, err := blockStatesFromMap(bs)
		if err != nil {
			return sec, err
		}
		sec.BlockStates = &states
	}
	if blocks, ok := sm["Blocks"].([]byte); ok {
		sec.Blocks = blocks
	}
	if data, ok := sm["Data"].([]byte); ok {
		sec.Data = data
	}
	if bl, ok := sm["BlockLight"].([]byte); ok {
		sec.BlockLight = bl
	}
	return sec, nil
}

func blockStatesFromMap(bs map[string]any) (RawBlockStates, error) {
	states := RawBlockStates{}
	paletteRaw, _ := bs["palette"].([]any)
	states.Palette = make([]RawPaletteEntry, 0, len(paletteRaw))
	for _, p := range paletteRaw {
		pm, ok := p.(map[string]any)
		if !ok {
			continue
		}
		entry := RawPaletteEntry{}
		if name, ok := pm["Name"].(string); ok {
			entry.Name = name
		}
		if props, ok := pm["Properties"].(map[string]any); ok {
			entry.Properties = make(map[string]string, len(props))
			for k, v := range props {
				if s, ok := v.(string); ok {
					entry.Properties[k] = s
				}
			}
		}
		states.Palette = append(states.Palette, entry)
	}
	if data, ok := bs["data"].([]int64); ok {
		states.Data = data
	}
	return states, nil
}

func biomesV18FromMap(bi map[string]any) RawBiomesV18 {
	biomes := RawBiomesV18{}
	if palette, ok := bi["palette"].([]any); ok {
		biomes.Palette = make([]string, 0, len(palette))
		for _, p := range palette {
			if s, ok := p.(string); ok {
				biomes.Palette = append(biomes.Palette, s)
			}
		}
	}
	if data, ok := bi["data"].([]int64); ok {
		biomes.Data = data
	}
	return biomes
}
