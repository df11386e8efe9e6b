package pnr

import (
	"encoding/binary"
	"math"

	"github.com/zarlcorp/core/pkg/zcrypto"
)

// Source draws uniform random integers in [0, n). *math/rand.Rand
// satisfies it, which lets tests pin a seed.
type Source interface {
	Intn(n int) int
}

// cryptoSource reads from the OS CSPRNG. Safe for concurrent use.
type cryptoSource struct{}

// CryptoSource returns the default source.
func CryptoSource() Source {
	return cryptoSource{}
}

func (cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("pnr: Intn called with non-positive n")
	}
	bound := uint64(n)
	// reject the tail so every residue is equally likely
	limit := math.MaxUint64 - math.MaxUint64%bound
	for {
		b, err := zcrypto.RandBytes(8)
		if err != nil {
			// crypto/rand failure is unrecoverable
			panic("pnr: random source: " + err.Error())
		}
		v := binary.BigEndian.Uint64(b)
		if v < limit {
			return int(v % bound)
		}
	}
}

// randRange returns a uniform int in [lo, hi).
func randRange(src Source, lo, hi int) int {
	return lo + src.Intn(hi-lo)
}

// choice returns a uniformly chosen element of items.
func choice[T any](src Source, items []T) T {
	return items[src.Intn(len(items))]
}
