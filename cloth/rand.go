package cloth

import "time"

// Rand is the random source behind every stochastic decision in the
// simulation. *math/rand.Rand satisfies it; seed one for reproducible runs.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// between returns a uniform value in [lo, hi).
func between(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// intBetween returns a uniform integer in [lo, hi].
func intBetween(rng Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// durationBetween returns a uniform duration in [lo, hi).
func durationBetween(rng Rand, lo, hi time.Duration) time.Duration {
	return lo + time.Duration(rng.Float64()*float64(hi-lo))
}
