package persistence

import (
	"errors"
	"fmt"

	"github.com/beggers/positional-inverted-index/internal/hash"
)

// Section checksums use CRC32-Castagnoli: fast, hardware-accelerated on
// modern CPUs, and good at catching storage corruption. CRC32C is not
// cryptographically secure; it detects accidents, not tampering.

// ComputeChecksum computes the CRC32C checksum of data.
func ComputeChecksum(data []byte) uint32 {
	return hash.CRC32C(data)
}

// ChecksumMismatchError is returned when a section's stored checksum does
// not match its content.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}

// IsChecksumMismatch reports whether err is a checksum mismatch error.
func IsChecksumMismatch(err error) bool {
	var mismatch *ChecksumMismatchError
	return errors.As(err, &mismatch)
}
