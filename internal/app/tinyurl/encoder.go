package tinyurl

import (
	"crypto/rand"
	"math/big"
)

// entropyBytes is the width of a fresh identifier before encoding (128 bits).
const entropyBytes = 16

// MaxIDLength is the longest base62 rendering of a 128-bit value.
const MaxIDLength = 22

// NewID returns a random tinyId: 16 bytes from crypto/rand read as a big-endian
// unsigned integer and written in base62 (0-9, a-z, A-Z).
//
// The width varies because leading zero digits are dropped. A failing entropy
// source is not recoverable and panics.
func NewID() string {
	var b [entropyBytes]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("tinyurl: read entropy: " + err.Error())
	}
	return EncodeBase62(b[:])
}

// EncodeBase62 renders b as a big-endian unsigned integer in base62.
// big.Int uses the digit order 0-9a-zA-Z for bases above 36.
func EncodeBase62(b []byte) string {
	return new(big.Int).SetBytes(b).Text(62)
}
