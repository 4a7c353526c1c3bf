// Package split partitions row indices into training and test sets.
package split

import (
	"sort"

	"golang.org/x/exp/rand"
)

// Indices draws a uniform random subset of floor(frac*n) row indices as the
// training set; the complement is the test set. The two sets are disjoint,
// exhaustive, and sorted ascending so subset rows keep their input order.
// The draw is fully determined by the seed.
func Indices(n int, frac float64, seed int64) (train, test []int) {
	rng := rand.New(rand.NewSource(uint64(seed)))
	perm := rng.Perm(n)
	k := int(frac * float64(n))
	train = append([]int(nil), perm[:k]...)
	test = append([]int(nil), perm[k:]...)
	sort.Ints(train)
	sort.Ints(test)
	return train, test
}
