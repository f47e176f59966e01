package random

import (
	"math/rand"
	"sync"
)

// Source picks uniformly distributed indexes.
type Source interface {
	// Intn returns a value in [0, n). n is always positive.
	Intn(n int) int
}

// Rand is a goroutine-safe Source backed by math/rand.
type Rand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRand returns a Source seeded with seed.
func NewRand(seed int64) *Rand {
	return &Rand{rng: rand.New(rand.NewSource(seed))}
}

// NewSeededRand returns a Source seeded from crypto/rand.
func NewSeededRand() (*Rand, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return NewRand(seed), nil
}

// Intn implements Source.
func (r *Rand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// Sequence replays fixed draws, each reduced modulo n. After the last value
// it starts over; an empty Sequence always returns 0.
type Sequence struct {
	mu     sync.Mutex
	values []int
	next   int
	calls  []int
}

// NewSequence returns a Sequence over values.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

// Intn implements Source.
func (s *Sequence) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, n)
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	if v < 0 {
		v = -v
	}
	return v % n
}

// Calls returns the n argument of every draw so far.
func (s *Sequence) Calls() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.calls))
	copy(out, s.calls)
	return out
}
