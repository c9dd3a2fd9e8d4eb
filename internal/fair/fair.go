// Package fair implements the provably-fair draw chain. Every random
// number a game consumes is derived from HMAC-SHA256 keyed by the secret
// server seed over "clientSeed:nonce:block", so a player holding the
// revealed server seed can recompute every outcome after rotation.
package fair

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const (
	// Each HMAC-SHA256 digest yields 32 bytes = 8 floats of 4 bytes.
	floatsPerBlock = 8
	bytesPerFloat  = 4
)

// NewServerSeed returns a fresh 256-bit server seed, hex encoded.
func NewServerSeed() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return hex.EncodeToString(buf)
}

// NewClientSeed returns a default 128-bit client seed for wallets that
// never set their own.
func NewClientSeed() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return hex.EncodeToString(buf)
}

// HashSeed is the public commitment for a server seed.
func HashSeed(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}

// Floats derives count floats in [0,1) starting at the given cursor.
// Identical inputs always yield identical outputs. A multi-draw game
// (keno's 10 numbers, mines' tile assignment) advances the cursor instead
// of the nonce, so one bet consumes exactly one nonce.
func Floats(serverSeed, clientSeed string, nonce uint64, cursor, count int) []float64 {
	if count <= 0 {
		return nil
	}
	out := make([]float64, 0, count)
	for i := cursor; i < cursor+count; i++ {
		block := i / floatsPerBlock
		offset := (i % floatsPerBlock) * bytesPerFloat
		digest := blockDigest(serverSeed, clientSeed, nonce, block)
		out = append(out, bytesToFloat(digest[offset:offset+bytesPerFloat]))
	}
	return out
}

func blockDigest(serverSeed, clientSeed string, nonce uint64, block int) []byte {
	mac := hmac.New(sha256.New, []byte(serverSeed))
	fmt.Fprintf(mac, "%s:%d:%d", clientSeed, nonce, block)
	return mac.Sum(nil)
}

// bytesToFloat maps 4 bytes to [0,1) as b0/256 + b1/256^2 + b2/256^3 +
// b3/256^4, the same fixed-point convention verification tools use.
func bytesToFloat(b []byte) float64 {
	var f float64
	div := 256.0
	for _, v := range b {
		f += float64(v) / div
		div *= 256
	}
	return f
}
