package quiz

import (
	"math/rand/v2"
	"time"
)

// RandFunc draws an integer uniformly from [0, n). n is always > 0.
type RandFunc func(n int) int

// NewRand returns a RandFunc backed by a PCG source. A zero seed is replaced
// by the current time.
func NewRand(seed int64) RandFunc {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	return r.IntN
}

// shuffle permutes s in place: for i from len-1 down to 1, swap i with a
// uniform j in [0, i].
func shuffle[T any](s []T, rnd RandFunc) {
	for i := len(s) - 1; i > 0; i-- {
		j := rnd(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Perm is a display-order permutation: Perm[displayIndex] = option index.
type Perm [OptionCount]int

var identity = Perm{0, 1, 2, 3}

// Valid reports whether p is a permutation of 0..3.
func (p Perm) Valid() bool {
	var seen [OptionCount]bool
	for _, v := range p {
		if v < 0 || v >= OptionCount || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// PlanOptionOrders returns n option orders. Without shuffling every entry is
// the identity; with shuffling each entry is an independent permutation.
func PlanOptionOrders(n int, shuffleOptions bool, rnd RandFunc) []Perm {
	orders := make([]Perm, n)
	for i := range orders {
		orders[i] = identity
		if shuffleOptions {
			shuffle(orders[i][:], rnd)
		}
	}
	return orders
}
