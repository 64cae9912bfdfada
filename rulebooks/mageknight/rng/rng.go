// Package rng provides the engine's single, seeded source of randomness.
//
// Every die roll, shuffle, and weighted draw in the engine consumes
// randomness through a Seeded value. GameState stores only the tiny
// immutable State snapshot (seed, counter), not a long-lived generator:
// state transitions rebuild a Seeded from the snapshot, spend it for exactly one
// resolver call, and capture the advanced counter back into the next
// GameState. This keeps the mutable *rand.Rand confined to a single
// synchronous call so the surrounding engine stays replay-deterministic.
package rng

import (
	"fmt"
	"math/rand"

	"github.com/mage-knight-digital/MageKnight-sub011/dice"
)

// Seeded implements dice.Roller over math/rand with an explicit seed,
// so a recorded (seed, draws-consumed) pair reproduces every roll bit for
// bit. It is the only roller gameplay code may use; dice.CryptoRoller
// remains available for non-replay tooling only.
type Seeded struct {
	seed    int64
	counter uint64
	src     *rand.Rand
}

var _ dice.Roller = (*Seeded)(nil)

// New constructs a Seeded roller from a stored seed and draw counter.
// Passing counter 0 starts a fresh sequence; passing a prior State's
// Counter resumes exactly where the previous call left off.
func New(seed int64, counter uint64) *Seeded {
	s := &Seeded{seed: seed, counter: counter}
	s.src = rand.New(rand.NewSource(seed))
	s.fastForward()
	return s
}

// fastForward discards counter draws so resuming from a stored counter
// reproduces the same stream a fresh New(seed, 0) would have produced by
// that point. It spends draws at the smallest granularity Roll uses (one
// Int63 per call) so interleavings of Roll/RollN remain order-sensitive
// on the counter, not on the call shape.
func (s *Seeded) fastForward() {
	for i := uint64(0); i < s.counter; i++ {
		s.src.Int63()
	}
}

// Roll returns a random number from 1 to size (inclusive).
func (s *Seeded) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("rng: invalid die size %d", size)
	}
	n := s.src.Intn(size)
	s.counter++
	return n + 1, nil
}

// RollN rolls count dice of the given size, in order.
func (s *Seeded) RollN(count, size int) ([]int, error) {
	if size <= 0 {
		return nil, fmt.Errorf("rng: invalid die size %d", size)
	}
	if count < 0 {
		return nil, fmt.Errorf("rng: invalid die count %d", count)
	}
	results := make([]int, count)
	for i := 0; i < count; i++ {
		roll, err := s.Roll(size)
		if err != nil {
			return nil, err
		}
		results[i] = roll
	}
	return results, nil
}

// Shuffle performs an in-place Fisher-Yates shuffle of n elements using
// the supplied swap function. It draws through the same counter-advancing
// path as Roll (rather than delegating to rand.Rand.Shuffle, whose
// internal draw count per swap is unexported and would desync the
// counter from what fastForward replays) so a shuffle and subsequent die
// rolls interleave deterministically within one resolver call.
func (s *Seeded) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.src.Intn(i + 1)
		s.counter++
		swap(i, j)
	}
}

// State is the opaque, comparable, JSON-friendly snapshot stored on
// GameState between transitions. A State value carries no *rand.Rand of
// its own — it is only ever re-hydrated into a transient Seeded via
// FromState at the start of a resolver call.
type State struct {
	Seed    int64  `json:"seed"`
	Counter uint64 `json:"counter"`
}

// FromState rehydrates a transient Seeded roller from a stored State.
func FromState(st State) *Seeded {
	return New(st.Seed, st.Counter)
}

// ToState captures the roller's advanced position back into an immutable
// State for storage on the next GameState value.
func (s *Seeded) ToState() State {
	return State{Seed: s.seed, Counter: s.counter}
}
