package levelgen

import "math"

// Rand is a Mulberry32 pseudo-random number generator.
//
// The 32-bit state is advanced by a fixed mix of an additive constant,
// XOR-shifts, and 32-bit multiplications. Two instances constructed with the
// same seed and driven by the same call sequence produce identical outputs
// on any platform, which is the property the whole generator leans on.
type Rand struct {
	state uint32
}

// NewRand creates a generator seeded with the low 32 bits of seed.
func NewRand(seed int64) *Rand {
	return &Rand{state: uint32(seed)}
}

// Next advances the state and returns a float64 in [0, 1).
func (r *Rand) Next() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Range returns a float64 in [min, max).
func (r *Rand) Range(min, max float64) float64 {
	return min + r.Next()*(max-min)
}

// Int returns an integer in [min, max], inclusive on both ends.
func (r *Rand) Int(min, max int) int {
	return int(math.Floor(r.Range(float64(min), float64(max)+1)))
}

// Pick returns a uniform index in [0, n).
func (r *Rand) Pick(n int) int {
	return int(r.Next() * float64(n))
}

// Shuffle permutes n elements in place with a Fisher-Yates walk, consuming
// one Next call per swap.
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := int(r.Next() * float64(i+1))
		swap(i, j)
	}
}

// Gaussian returns a normally distributed value via Box-Muller, consuming
// exactly two Next calls.
func (r *Rand) Gaussian(mean, stddev float64) float64 {
	u1 := r.Next()
	u2 := r.Next()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + z*stddev
}

// SubSeed derives a deterministic secondary seed from the current state and
// a string salt using a rolling 31-polynomial hash kept in 32-bit range.
// It does not advance the state, so multiple salts taken from the same
// generator decorrelate independent streams (geometry, pattern, color)
// without perturbing each other.
func (r *Rand) SubSeed(salt string) int64 {
	hash := r.state
	for _, c := range salt {
		hash = hash*31 + uint32(c)
	}
	return int64(hash)
}
