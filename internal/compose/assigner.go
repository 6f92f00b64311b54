// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"math/rand"
	"sync"
)

// Assigner picks which marker follows each sentence. Assign returns, for
// sentences 0..n-1, an index into a marker list of length m (m > 0).
type Assigner interface {
	Assign(n, m int) []int
}

// RoundRobin assigns marker i mod m to sentence i.
type RoundRobin struct{}

// Assign implements Assigner.
func (RoundRobin) Assign(n, m int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i % m
	}
	return out
}

// Shuffled permutes the markers once with Rand and then cycles through the
// permutation. The same seed always yields the same assignment. A nil Rand
// behaves like RoundRobin. Assign is safe for concurrent use.
type Shuffled struct {
	Rand *rand.Rand

	mu sync.Mutex
}

// NewShuffled returns a Shuffled assigner seeded with seed.
func NewShuffled(seed int64) *Shuffled {
	return &Shuffled{Rand: rand.New(rand.NewSource(seed))}
}

// Assign implements Assigner.
func (s *Shuffled) Assign(n, m int) []int {
	if s == nil || s.Rand == nil {
		return RoundRobin{}.Assign(n, m)
	}
	s.mu.Lock()
	perm := s.Rand.Perm(m)
	s.mu.Unlock()

	out := make([]int, n)
	for i := range out {
		out[i] = perm[i%m]
	}
	return out
}
