// Package hash provides the checksum used for snapshot file integrity.
//
// All sections of a snapshot file are checksummed with CRC32-Castagnoli
// (CRC32C), which provides:
//
//   - Hardware acceleration on x86 (SSE4.2) and ARM (CRC extension)
//   - 10-20 GB/s throughput on modern CPUs
//   - Superior error detection compared to CRC32-IEEE
//   - Industry standard (iSCSI, Btrfs, RocksDB, LevelDB)
//
// CRC32C detects accidental corruption (torn writes, bit rot, truncation).
// It is not cryptographically secure and does not detect tampering.
//
// # Usage
//
//	checksum := hash.CRC32C(data)
package hash
