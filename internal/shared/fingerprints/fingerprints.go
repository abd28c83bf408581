package fingerprints

import (
	"crypto/sha256"
	"encoding/hex"
)

// IP returns a stable hex fingerprint of an IP address. It is used as a
// file name so raw addresses never appear on disk as keys.
func IP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:])
}
