package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex is used to derive stable document identifiers from raw content.
func SHA256Hex(b []byte) string {
	x := sha256.Sum256(b)
	return hex.EncodeToString(x[:])
}
