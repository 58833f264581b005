package feature

import (
	"encoding/binary"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression defines the payload compression of a feature file.
type Compression uint8

const (
	// CompressionNone stores the payload raw. Required for files that
	// are memory-mapped.
	CompressionNone Compression = 0
	// CompressionLZ4 is fast with a modest ratio, good for features
	// that are re-read often.
	CompressionLZ4 Compression = 1
	// CompressionZSTD gives a better ratio, good for archived
	// features.
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return "unknown"
	}
}

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// payloadHeaderSize prefixes every compressed payload.
// Format: [UncompressedSize uint64][CompressedSize uint64][Data...]
// If CompressedSize == 0, the payload is stored uncompressed.
const payloadHeaderSize = 16

// compressPayload compresses a payload with the given algorithm.
// If compression does not help (ratio > 0.9), the payload is stored raw.
func compressPayload(data []byte, c Compression) ([]byte, error) {
	if c == CompressionNone {
		return data, nil
	}

	var compressed []byte
	var err error

	switch c {
	case CompressionLZ4:
		compressed, err = compressLZ4(data)
	case CompressionZSTD:
		compressed = compressZSTD(data)
	default:
		return data, nil
	}
	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		result := make([]byte, payloadHeaderSize+len(data))
		binary.LittleEndian.PutUint64(result[0:], uint64(len(data)))
		binary.LittleEndian.PutUint64(result[8:], 0) // 0 = uncompressed
		copy(result[payloadHeaderSize:], data)
		return result, nil
	}

	result := make([]byte, payloadHeaderSize+len(compressed))
	binary.LittleEndian.PutUint64(result[0:], uint64(len(data)))
	binary.LittleEndian.PutUint64(result[8:], uint64(len(compressed)))
	copy(result[payloadHeaderSize:], compressed)
	return result, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))

	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // Incompressible
	}
	return compressed[:n], nil
}

func compressZSTD(data []byte) []byte {
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)

	return enc.EncodeAll(data, nil)
}

// decompressPayload reverses compressPayload.
func decompressPayload(data []byte, c Compression) ([]byte, error) {
	if c == CompressionNone {
		return data, nil
	}
	if len(data) < payloadHeaderSize {
		return nil, ErrBadFormat
	}

	uncompressedSize := binary.LittleEndian.Uint64(data[0:])
	compressedSize := binary.LittleEndian.Uint64(data[8:])

	if compressedSize == 0 {
		if uint64(len(data)) < payloadHeaderSize+uncompressedSize {
			return nil, ErrBadFormat
		}
		return data[payloadHeaderSize : payloadHeaderSize+uncompressedSize], nil
	}

	if uint64(len(data)) < payloadHeaderSize+compressedSize {
		return nil, ErrBadFormat
	}

	compressedData := data[payloadHeaderSize : payloadHeaderSize+compressedSize]
	result := make([]byte, uncompressedSize)

	switch c {
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(compressedData, result)
		if err != nil {
			return nil, err
		}
		if uint64(n) != uncompressedSize {
			return nil, ErrBadFormat
		}
		return result, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		decoded, err := dec.DecodeAll(compressedData, result[:0])
		if err != nil {
			return nil, err
		}
		if uint64(len(decoded)) != uncompressedSize {
			return nil, ErrBadFormat
		}
		return decoded, nil

	default:
		return nil, ErrBadFormat
	}
}
