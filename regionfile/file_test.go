package regionfile

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildRegionFile writes a minimal synthetic region file with one
// gzip-compressed chunk at (0,0) and one uncompressed chunk at (1,0),
// sector-aligned as the real format requires.
func buildRegionFile(t *testing.T, path string) {
	t.Helper()

	var gzBuf bytes.Buffer
	gz := gzip.NewWriter(&gzBuf)
	_, err := gz.Write([]byte("hello gzip chunk"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	payload0 := append([]byte{byte(CompressionGZip)}, gzBuf.Bytes()...)
	payload1 := append([]byte{byte(CompressionUncompress)}, []byte("hello raw chunk")...)

	sector := func(payload []byte) []byte {
		buf := make([]byte, 4, 4+len(payload))
		binary.BigEndian.PutUint32(buf, uint32(len(payload)))
		buf = append(buf, payload...)
		// pad to a sector boundary
		if pad := sectorSize - len(buf)%sectorSize; pad != sectorSize {
			buf = append(buf, make([]byte, pad)...)
		}
		return buf
	}

	sector0 := sector(payload0)
	sector1 := sector(payload1)

	header := make([]byte, headerSize)
	// chunk (0,0) at sector 2, chunk (1,0) immediately after.
	binary.BigEndian.PutUint32(header[0:4], uint32(2)<<8|uint32(len(sector0)/sectorSize))
	binary.BigEndian.PutUint32(header[4:8], uint32(2+len(sector0)/sectorSize)<<8|uint32(len(sector1)/sectorSize))

	var out bytes.Buffer
	out.Write(header)
	out.Write(sector0)
	out.Write(sector1)

	require.NoError(t, os.WriteFile(path, out.Bytes(), 0o644))
}

func TestForEachChunkDecompressesBothCodecs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.0.0.mca")
	buildRegionFile(t, path)

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	seen := map[[2]int]string{}
	err = f.ForEachChunk(func(cx, cz int, r io.Reader) error {
		data, rerr := io.ReadAll(r)
		if rerr != nil {
			return rerr
		}
		seen[[2]int{cx, cz}] = string(data)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, "hello gzip chunk", seen[[2]int{0, 0}])
	assert.Equal(t, "hello raw chunk", seen[[2]int{1, 0}])
	assert.Len(t, seen, 2)
}

func TestForEachChunkSkipsAbsentSlots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.1.1.mca")
	buildRegionFile(t, path)

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	count := 0
	err = f.ForEachChunk(func(cx, cz int, r io.Reader) error {
		count++
		_, _ = io.Copy(io.Discard, r)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
