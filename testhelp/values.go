package testhelp

import "github.com/zeebo/mwc"

var valRng = mwc.Rand()

// Value returns a random int.
func Value() int {
	return int(valRng.Uint64())
}

// Values returns n random ints.
func Values(n int) []int {
	vs := make([]int, n)
	for i := range vs {
		vs[i] = Value()
	}
	return vs
}

// Seeded returns n ints from a generator with a fixed seed so that repeated
// calls return the same values.
func Seeded(seed uint64, n int) []int {
	rng := mwc.New(seed, seed)
	vs := make([]int, n)
	for i := range vs {
		vs[i] = int(rng.Uint64())
	}
	return vs
}
