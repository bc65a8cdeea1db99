package vmath

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// FastRand is a seedable xorshift64 generator
// Every randomized decision in the simulation draws from an injected FastRand so scenarios replay exactly
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1) using the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a value in [lo, hi); lo when the range is empty
func (r *FastRand) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// Duration returns a duration drawn uniformly from [lo, hi]
func (r *FastRand) Duration(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(r.Next()%uint64(hi-lo+1))
}

// Chance returns true with probability p
func (r *FastRand) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return r.Float64() < p
}

// InBox returns a point uniformly distributed inside the axis-aligned box [min, max]
func (r *FastRand) InBox(min, max mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		r.Range(min[0], max[0]),
		r.Range(min[1], max[1]),
		r.Range(min[2], max[2]),
	}
}
