package persist

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// buffer is a helper for writing binary data with convenient typed methods.
type buffer struct {
	bytes.Buffer
}

func newBuffer() *buffer {
	return &buffer{}
}

// WriteUInt32 writes a uint32 in big-endian format.
func (b *buffer) WriteUInt32(v uint32) {
	_ = binary.Write(b, binary.BigEndian, v)
}

// WriteInt32 writes an int32 in big-endian format.
func (b *buffer) WriteInt32(v int32) {
	_ = binary.Write(b, binary.BigEndian, v)
}

// WriteUInt8 writes a single byte.
func (b *buffer) WriteUInt8(v uint8) {
	_ = b.WriteByte(v)
}

// WriteBool writes a boolean as a byte (0 or 1).
func (b *buffer) WriteBool(v bool) {
	if v {
		_ = b.WriteByte(1)
	} else {
		_ = b.WriteByte(0)
	}
}

// WriteVarInt writes a variable-length integer.
func (b *buffer) WriteVarInt(v int64) {
	buf := make([]byte, binary.MaxVarintLen64)
	n := binary.PutVarint(buf, v)
	_, _ = b.Write(buf[:n])
}

// WriteString writes a string with its length as a varint.
func (b *buffer) WriteString(s string) {
	b.WriteVarInt(int64(len(s)))
	_, _ = b.Write([]byte(s))
}

// reader is a helper for reading binary data with convenient typed methods.
type reader struct {
	r io.Reader
}

func newReader(r io.Reader) *reader {
	return &reader{r: r}
}

// ReadUInt32 reads a uint32 in big-endian format.
func (r *reader) ReadUInt32() (uint32, error) {
	var v uint32
	err := binary.Read(r.r, binary.BigEndian, &v)
	return v, err
}

// ReadInt32 reads an int32 in big-endian format.
func (r *reader) ReadInt32() (int32, error) {
	var v int32
	err := binary.Read(r.r, binary.BigEndian, &v)
	return v, err
}

// ReadUInt8 reads a single byte.
func (r *reader) ReadUInt8() (uint8, error) {
	return r.ReadByte()
}

// ReadByte reads a single byte.
func (r *reader) ReadByte() (byte, error) {
	b := make([]byte, 1)
	_, err := io.ReadFull(r.r, b)
	return b[0], err
}

// ReadBool reads a boolean (0 or 1).
func (r *reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	return b != 0, err
}

// ReadVarInt reads a variable-length integer.
func (r *reader) ReadVarInt() (int64, error) {
	br, ok := r.r.(io.ByteReader)
	if !ok {
		br = &byteReader{r: r.r}
	}
	return binary.ReadVarint(br)
}

// ReadString reads a string with its length as a varint.
func (r *reader) ReadString() (string, error) {
	length, err := r.ReadVarInt()
	if err != nil {
		return "", err
	}
	if length < 0 || length > 1<<16 {
		return "", fmt.Errorf("invalid string length: %d", length)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// byteReader wraps an io.Reader to implement io.ByteReader.
type byteReader struct {
	r io.Reader
}

func (br *byteReader) ReadByte() (byte, error) {
	b := make([]byte, 1)
	n, err := br.r.Read(b)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return b[0], nil
}
