package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns 128 bits of randomness rendered as lowercase hex. Auction
// ids and client identities on the wire are always in this form.
func NewID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
