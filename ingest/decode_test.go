package ingest

import (
	"bytes"
	"testing"

	"github.com/sandertv/gophertunnel/minecraft/nbt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeBigEndian(t *testing.T, v any) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc := nbt.NewEncoderWithEncoding(&buf, nbt.BigEndian)
	require.NoError(t, enc.Encode(v))
	return buf.Bytes()
}

func TestDecodeV1_18(t *testing.T) {
	data := encodeBigEndian(t, map[string]any{
		"DataVersion": int32(3120),
		"sections": []any{
			map[string]any{
				"Y": byte(0),
				"block_states": map[string]any{
					"palette": []any{
						map[string]any{"Name": "minecraft:stone"},
					},
					"data": []int64{},
				},
				"biomes": map[string]any{
					"palette": []any{"minecraft:plains"},
				},
			},
		},
	})

	c, err := DecodeBytes(data)
	require.NoError(t, err)
	assert.True(t, c.IsV1_18())
	assert.EqualValues(t, 3120, c.DataVersion)
	require.Len(t, c.Sections, 1)
	assert.Equal(t, "minecraft:stone", c.Sections[0].BlockStates.Palette[0].Name)
	assert.Equal(t, []string{"minecraft:plains"}, c.Sections[0].Biomes.Palette)
}

func TestDecodeLegacyLevel(t *testing.T) {
	data := encodeBigEndian(t, map[string]any{
		"DataVersion": int32(1343),
		"Level": map[string]any{
			"Sections": []any{
				map[string]any{
					"Y":      byte(2),
					"Blocks": make([]byte, 4096),
					"Data":   make([]byte, 2048),
				},
			},
			"Biomes": make([]byte, 256),
		},
	})

	c, err := DecodeBytes(data)
	require.NoError(t, err)
	assert.False(t, c.IsV1_18())
	require.NotNil(t, c.Level)
	require.Len(t, c.Level.Sections, 1)
	assert.EqualValues(t, 2, c.Level.Sections[0].Y)
	assert.Len(t, c.Level.Biomes.ByteArray, 256)
	assert.Nil(t, c.Level.Biomes.IntArray)
}

func TestDecodeNegativeSectionY(t *testing.T) {
	data := encodeBigEndian(t, map[string]any{
		"DataVersion": int32(3120),
		"sections": []any{
			map[string]any{
				"Y": byte(0xFC), // -4 as a two's-complement byte
			},
		},
	})

	c, err := DecodeBytes(data)
	require.NoError(t, err)
	require.Len(t, c.Sections, 1)
	assert.EqualValues(t, -4, c.Sections[0].Y)
}

func TestDecodeLegacyIntBiomes(t *testing.T) {
	data := encodeBigEndian(t, map[string]any{
		"DataVersion": int32(2230),
		"Level": map[string]any{
			"Biomes": make([]int32, 1024),
		},
	})

	c, err := DecodeBytes(data)
	require.NoError(t, err)
	assert.Len(t, c.Level.Biomes.IntArray, 1024)
	assert.Nil(t, c.Level.Biomes.ByteArray)
}
