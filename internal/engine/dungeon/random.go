package dungeon

import (
	"math/rand"
	"time"
)

// Random is the randomness the generator draws from. *rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// NewRandom returns a seeded source. A zero seed draws one from the clock;
// the seed actually used is returned so runs can be reproduced.
func NewRandom(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed // #nosec G404 -- gameplay randomness
}
