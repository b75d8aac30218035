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
	seed := make([]byte, 16)
	if _, err := cryptorand.Read(seed); err != nil {
		panic("unreachable")
	}
	//nolint:gosec // request IDs are correlation values, not secrets
	return rand.New(rand.NewPCG(
		binary.LittleEndian.Uint64(seed[:8]),
		binary.LittleEndian.Uint64(seed[8:]),
	))
}

// NewRequestID returns a random alphanumeric string of the given length,
// used to correlate portal requests in logs.
func NewRequestID(length int) string {
	buf := make([]byte, length)

	mut.Lock()
	for i := range buf {
		buf[i] = charset[rng.IntN(len(charset))]
	}
	mut.Unlock()

	return string(buf)
}
