// Package persist encodes and decodes region.Artifact values to the
// on-disk tile format, and drives the atomic save-to-directory contract
// spec.md §6 describes.
package persist

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/oriumgames/chunkmap/region"
	"github.com/oriumgames/chunkmap/resource"
	"github.com/oriumgames/chunkmap/scan"
)

const (
	// magic identifies a chunkmap tile file.
	magic = "CmTl"
	// currentVersion is the only version this package writes or reads.
	currentVersion = 1
)

const (
	compressionNone byte = 0
	compressionZstd byte = 1
)

// CompressionLevel selects the zstd speed/ratio tradeoff Save compresses
// with, mirroring the teacher's own CompressionLevel enum.
type CompressionLevel int

const (
	// CompressionLevelNone disables compression.
	CompressionLevelNone CompressionLevel = iota
	// CompressionLevelFast uses zstd's fastest preset.
	CompressionLevelFast
	// CompressionLevelDefault uses zstd's default preset.
	CompressionLevelDefault
	// CompressionLevelBest uses zstd's best-compression preset.
	CompressionLevelBest
)

func (l CompressionLevel) zstdLevel() zstd.EncoderLevel {
	switch l {
	case CompressionLevelFast:
		return zstd.SpeedFastest
	case CompressionLevelBest:
		return zstd.SpeedBestCompression
	default:
		return zstd.SpeedDefault
	}
}

// EncodeArtifact writes a uncompressed-body artifact to w: a 4-byte
// magic, a version byte, a compression byte (always "none" here), then
// region.ChunksPerRegion*region.ChunksPerRegion length-prefixed
// LayerData records, a 0 length meaning that chunk slot is absent.
func EncodeArtifact(w io.Writer, a *region.Artifact) error {
	return encodeArtifact(w, a, CompressionLevelNone)
}

func encodeArtifact(w io.Writer, a *region.Artifact, level CompressionLevel) error {
	if _, err := io.WriteString(w, magic); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}
	header := newBuffer()
	header.WriteUInt8(currentVersion)
	if level == CompressionLevelNone {
		header.WriteUInt8(compressionNone)
	} else {
		header.WriteUInt8(compressionZstd)
	}
	if _, err := w.Write(header.Bytes()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bodyWriter := w
	var encoder *zstd.Encoder
	if level != CompressionLevelNone {
		var err error
		encoder, err = zstd.NewWriter(w, zstd.WithEncoderLevel(level.zstdLevel()))
		if err != nil {
			return fmt.Errorf("create zstd encoder: %w", err)
		}
		bodyWriter = encoder
	}

	for cz := 0; cz < region.ChunksPerRegion; cz++ {
		for cx := 0; cx < region.ChunksPerRegion; cx++ {
			if err := writeRecord(bodyWriter, a.Get(cx, cz)); err != nil {
				if encoder != nil {
					_ = encoder.Close()
				}
				return fmt.Errorf("write chunk (%d,%d): %w", cx, cz, err)
			}
		}
	}

	if encoder != nil {
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("close zstd encoder: %w", err)
		}
	}
	return nil
}

func writeRecord(w io.Writer, data *scan.LayerData) error {
	if data == nil {
		return binaryWriteUInt32(w, 0)
	}
	encoded := encodeLayerData(data)
	if err := binaryWriteUInt32(w, uint32(len(encoded))); err != nil {
		return err
	}
	_, err := w.Write(encoded)
	return err
}

func encodeLayerData(data *scan.LayerData) []byte {
	buf := newBuffer()
	for i := 0; i < 256; i++ {
		b := &data.Blocks[i]
		buf.WriteBool(b.HasType)
		if b.HasType {
			buf.WriteString(b.Type.Name)
			buf.WriteUInt8(byte(b.Type.Flags))
		}
		buf.WriteBool(b.HasDepth)
		if b.HasDepth {
			buf.WriteInt32(int32(b.Depth))
		}
	}
	for i := 0; i < 256; i++ {
		bi := &data.Biomes[i]
		buf.WriteBool(bi.Has)
		if bi.Has {
			buf.WriteString(bi.Biome.Name)
		}
	}
	for i := 0; i < 256; i++ {
		buf.WriteUInt8(data.BlockLight[i])
	}
	return buf.Bytes()
}

// DecodeArtifact reads an artifact previously written by EncodeArtifact
// or Save, transparently decompressing it if its compression byte says
// so.
func DecodeArtifact(r io.Reader) (*region.Artifact, error) {
	got := make([]byte, len(magic))
	if _, err := io.ReadFull(r, got); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if string(got) != magic {
		return nil, fmt.Errorf("invalid magic: got %q, want %q", got, magic)
	}

	rd := newReader(r)
	version, err := rd.ReadUInt8()
	if err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}
	if version != currentVersion {
		return nil, fmt.Errorf("unsupported version: %d", version)
	}
	compression, err := rd.ReadUInt8()
	if err != nil {
		return nil, fmt.Errorf("read compression: %w", err)
	}

	bodyReader := r
	if compression == compressionZstd {
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		defer decoder.Close()
		bodyReader = decoder
	} else if compression != compressionNone {
		return nil, fmt.Errorf("unknown compression byte: %d", compression)
	}

	artifact := region.NewArtifact()
	body := newReader(bodyReader)
	for cz := 0; cz < region.ChunksPerRegion; cz++ {
		for cx := 0; cx < region.ChunksPerRegion; cx++ {
			data, err := readRecord(body)
			if err != nil {
				return nil, fmt.Errorf("read chunk (%d,%d): %w", cx, cz, err)
			}
			artifact.Set(cx, cz, data)
		}
	}
	return artifact, nil
}

func readRecord(r *reader) (*scan.LayerData, error) {
	length, err := r.ReadUInt32()
	if err != nil {
		return nil, fmt.Errorf("read length: %w", err)
	}
	if length == 0 {
		return nil, nil
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, fmt.Errorf("read record body: %w", err)
	}
	return decodeLayerData(bytes.NewReader(buf))
}

func decodeLayerData(r io.Reader) (*scan.LayerData, error) {
	rd := newReader(r)
	var data scan.LayerData
	for i := 0; i < 256; i++ {
		b := &data.Blocks[i]
		hasType, err := rd.ReadBool()
		if err != nil {
			return nil, fmt.Errorf("read block %d has-type: %w", i, err)
		}
		b.HasType = hasType
		if hasType {
			name, err := rd.ReadString()
			if err != nil {
				return nil, fmt.Errorf("read block %d name: %w", i, err)
			}
			flags, err := rd.ReadUInt8()
			if err != nil {
				return nil, fmt.Errorf("read block %d flags: %w", i, err)
			}
			b.Type = resource.BlockType{Name: name, Flags: resource.BlockFlag(flags)}
		}
		hasDepth, err := rd.ReadBool()
		if err != nil {
			return nil, fmt.Errorf("read block %d has-depth: %w", i, err)
		}
		b.HasDepth = hasDepth
		if hasDepth {
			depth, err := rd.ReadInt32()
			if err != nil {
				return nil, fmt.Errorf("read block %d depth: %w", i, err)
			}
			b.Depth = scan.BlockHeight(depth)
		}
	}
	for i := 0; i < 256; i++ {
		bi := &data.Biomes[i]
		has, err := rd.ReadBool()
		if err != nil {
			return nil, fmt.Errorf("read biome %d has: %w", i, err)
		}
		bi.Has = has
		if has {
			name, err := rd.ReadString()
			if err != nil {
				return nil, fmt.Errorf("read biome %d name: %w", i, err)
			}
			bi.Biome = resource.Biome{Name: name}
		}
	}
	for i := 0; i < 256; i++ {
		v, err := rd.ReadUInt8()
		if err != nil {
			return nil, fmt.Errorf("read block light %d: %w", i, err)
		}
		data.BlockLight[i] = v
	}
	return &data, nil
}

func binaryWriteUInt32(w io.Writer, v uint32) error {
	_, err := w.Write([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
	return err
}
