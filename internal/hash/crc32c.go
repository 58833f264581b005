// Package hash provides the checksum primitive for artifact integrity.
//
// All checksums are CRC32-Castagnoli: hardware accelerated on x86 and
// ARM, and the polynomial S3 validates natively, so one value guards a
// feature payload both on disk and in object storage.
package hash

import "hash/crc32"

// Initialized once; feature decode paths checksum every payload.
var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the Castagnoli CRC of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, castagnoli)
}
