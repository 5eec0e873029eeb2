// Package regionfile reads the Anvil-style region container format: an
// 8KiB header (a 4KiB location table followed by a 4KiB timestamp
// table) addressing up to 1024 gzip- or zlib-compressed chunk payloads
// in 4KiB sectors.
package regionfile

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zlib"
)

const (
	sectorSize   = 4096
	headerSize   = 2 * sectorSize
	chunksPerDim = 32
	chunkCount   = chunksPerDim * chunksPerDim
)

// Compression identifies how a chunk payload is compressed on disk.
type Compression byte

const (
	CompressionGZip       Compression = 1
	CompressionZlib       Compression = 2
	CompressionUncompress Compression = 3
)

// locationEntry is one 4-byte location-table slot.
type locationEntry struct {
	sectorOffset uint32
	sectorCount  uint8
}

func (e locationEntry) present() bool {
	return e.sectorOffset != 0 || e.sectorCount != 0
}

// File is an opened region file: its location table, read eagerly, and
// the underlying file handle, read lazily per chunk.
type File struct {
	f         *os.File
	locations [chunkCount]locationEntry
}

// Open reads a region file's location table and returns a File ready
// for ForEachChunk. The timestamp table is read but not retained; this
// reader has no use for last-modification times.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(f, header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	rf := &File{f: f}
	for i := 0; i < chunkCount; i++ {
		raw := binary.BigEndian.Uint32(header[i*4 : i*4+4])
		rf.locations[i] = locationEntry{
			sectorOffset: raw >> 8,
			sectorCount:  uint8(raw & 0xFF),
		}
	}
	return rf, nil
}

// Close releases the underlying file handle.
func (rf *File) Close() error {
	return rf.f.Close()
}

// ForEachChunk invokes fn for every present chunk slot, in (cx, cz)
// row-major order, passing a reader over that chunk's decompressed NBT
// payload. A non-nil error from fn aborts iteration and is returned
// unannotated; the caller is expected to attach (cx, cz) itself, as the
// chunk assembler's callers already do for every other per-chunk error.
func (rf *File) ForEachChunk(fn func(cx, cz int, r io.Reader) error) error {
	for cz := 0; cz < chunksPerDim; cz++ {
		for cx := 0; cx < chunksPerDim; cx++ {
			entry := rf.locations[cz*chunksPerDim+cx]
			if !entry.present() {
				continue
			}

			r, err := rf.chunkReader(entry)
			if err != nil {
				return fmt.Errorf("chunk (%d,%d): %w", cx, cz, err)
			}
			if err := fn(cx, cz, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func (rf *File) chunkReader(entry locationEntry) (io.Reader, error) {
	offset := int64(entry.sectorOffset) * sectorSize
	size := int64(entry.sectorCount) * sectorSize

	raw := make([]byte, size)
	if _, err := rf.f.ReadAt(raw, offset); err != nil {
		return nil, fmt.Errorf("read sectors: %w", err)
	}

	length := binary.BigEndian.Uint32(raw[0:4])
	if length == 0 || int(length) > len(raw)-4 {
		return nil, fmt.Errorf("invalid payload length %d", length)
	}
	compression := Compression(raw[4])
	payload := raw[5 : 4+length]

	switch compression {
	case CompressionGZip:
		gz, err := gzip.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("open gzip payload: %w", err)
		}
		return gz, nil
	case CompressionZlib:
		zr, err := zlib.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("open zlib payload: %w", err)
		}
		return zr, nil
	case CompressionUncompress:
		return bytes.NewReader(payload), nil
	default:
		return nil, fmt.Errorf("unknown compression byte %d", compression)
	}
}
