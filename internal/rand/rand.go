// Package rand generates compact request ids for RPC envelopes.
package rand

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sync"
)

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var (
	mut sync.Mutex
	rng = newRNG()
)

func newRNG() *rand.Rand {
	var seed [16]byte
	if _, err := cryptorand.Read(seed[:]); err != nil {
		panic("unreachable")
	}
	//nolint:gosec // request ids need uniqueness, not secrecy
	return rand.New(rand.NewPCG(
		binary.LittleEndian.Uint64(seed[:8]),
		binary.LittleEndian.Uint64(seed[8:]),
	))
}

// String returns a random id of the given length over a base62 alphabet.
func String(length int) string {
	mut.Lock()
	defer mut.Unlock()

	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rng.IntN(len(charset))]
	}
	return string(b)
}
