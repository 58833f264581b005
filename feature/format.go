package feature

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/yxy235/graphbatch/internal/conv"
	"github.com/yxy235/graphbatch/internal/hash"
)

// Feature file layout, little-endian:
//
//	[0:4)   magic "GBFT"
//	[4:6)   format version
//	[6:7)   dtype
//	[7:8)   compression
//	[8:12)  dim
//	[12:16) crc32c of the stored payload
//	[16:24) rows
//	[24:32) stored payload size in bytes
//	[32:)   payload
const (
	formatMagic   uint32 = 0x54464247 // "GBFT"
	formatVersion uint16 = 1
	headerSize           = 32
)

// Header describes a feature file.
type Header struct {
	DType       DType
	Compression Compression
	Dim         int
	Rows        int64
	PayloadSize int64
	Checksum    uint32
}

func encodeHeader(h Header) []byte {
	buf := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(buf[0:], formatMagic)
	binary.LittleEndian.PutUint16(buf[4:], formatVersion)
	buf[6] = byte(h.DType)
	buf[7] = byte(h.Compression)
	binary.LittleEndian.PutUint32(buf[8:], uint32(h.Dim))
	binary.LittleEndian.PutUint32(buf[12:], h.Checksum)
	binary.LittleEndian.PutUint64(buf[16:], uint64(h.Rows))
	binary.LittleEndian.PutUint64(buf[24:], uint64(h.PayloadSize))
	return buf
}

func decodeHeader(data []byte) (Header, error) {
	if len(data) < headerSize {
		return Header{}, fmt.Errorf("%w: file smaller than header", ErrBadFormat)
	}
	if binary.LittleEndian.Uint32(data[0:]) != formatMagic {
		return Header{}, fmt.Errorf("%w: bad magic", ErrBadFormat)
	}
	if v := binary.LittleEndian.Uint16(data[4:]); v != formatVersion {
		return Header{}, fmt.Errorf("%w: unsupported version %d", ErrBadFormat, v)
	}

	dim, err := conv.Uint32ToInt(binary.LittleEndian.Uint32(data[8:]))
	if err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	payloadSize, err := conv.Uint64ToInt(binary.LittleEndian.Uint64(data[24:]))
	if err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}

	h := Header{
		DType:       DType(data[6]),
		Compression: Compression(data[7]),
		Dim:         dim,
		Checksum:    binary.LittleEndian.Uint32(data[12:]),
		Rows:        int64(binary.LittleEndian.Uint64(data[16:])),
		PayloadSize: int64(payloadSize),
	}
	if h.DType.Size() == 0 {
		return Header{}, fmt.Errorf("%w: unknown dtype %d", ErrBadFormat, data[6])
	}
	return h, nil
}

// Encode serializes an Array into the feature file format.
func Encode(arr *Array, c Compression) ([]byte, error) {
	payload, err := compressPayload(arr.Bytes(), c)
	if err != nil {
		return nil, err
	}

	header := encodeHeader(Header{
		DType:       arr.DType(),
		Compression: c,
		Dim:         arr.Dim(),
		Rows:        int64(arr.Rows()),
		PayloadSize: int64(len(payload)),
		Checksum:    hash.CRC32C(payload),
	})

	out := make([]byte, 0, len(header)+len(payload))
	out = append(out, header...)
	out = append(out, payload...)
	return out, nil
}

// Decode parses a feature file into a heap Array.
func Decode(data []byte) (*Array, Header, error) {
	h, err := decodeHeader(data)
	if err != nil {
		return nil, Header{}, err
	}

	if int64(len(data)) < headerSize+h.PayloadSize {
		return nil, Header{}, fmt.Errorf("%w: truncated payload", ErrBadFormat)
	}
	payload := data[headerSize : headerSize+h.PayloadSize]

	if hash.CRC32C(payload) != h.Checksum {
		return nil, Header{}, ErrChecksum
	}

	raw, err := decompressPayload(payload, h.Compression)
	if err != nil {
		return nil, Header{}, err
	}

	arr, err := NewArray(h.DType, int(h.Rows), h.Dim, raw)
	if err != nil {
		return nil, Header{}, err
	}

	// Detach from the input buffer when the payload was stored raw.
	if h.Compression == CompressionNone {
		arr = arr.Clone()
	}
	return arr, h, nil
}

// WriteFile writes an Array to path in the feature file format.
func WriteFile(path string, arr *Array, c Compression) error {
	data, err := Encode(arr, c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile loads a feature file into a heap Array.
func ReadFile(path string) (*Array, Header, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Header{}, err
	}
	return Decode(data)
}
