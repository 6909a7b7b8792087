package crypto

import (
	"encoding/hex"
)

// Uint256Size is the size of all digests produced by this module.
const Uint256Size = 32

// Uint256 is a 32-byte digest.
type Uint256 [Uint256Size]byte

// String implements fmt.Stringer interface.
func (h Uint256) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero returns true iff h consists of zero bytes only.
func (h Uint256) IsZero() bool {
	return h == Uint256{}
}
