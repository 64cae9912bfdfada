package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mage-knight-digital/MageKnight-sub011/dice"
)

func TestSeeded_DeterministicAcrossInstances(t *testing.T) {
	a := New(42, 0)
	b := New(42, 0)

	for i := 0; i < 20; i++ {
		ra, err := a.Roll(6)
		require.NoError(t, err)
		rb, err := b.Roll(6)
		require.NoError(t, err)
		assert.Equal(t, ra, rb)
		assert.GreaterOrEqual(t, ra, 1)
		assert.LessOrEqual(t, ra, 6)
	}
}

func TestSeeded_DifferentSeedsDiverge(t *testing.T) {
	a := New(1, 0)
	b := New(2, 0)

	var same int
	for i := 0; i < 50; i++ {
		ra, _ := a.Roll(100)
		rb, _ := b.Roll(100)
		if ra == rb {
			same++
		}
	}
	assert.Less(t, same, 50)
}

func TestSeeded_ResumeFromState(t *testing.T) {
	full := New(7, 0)
	var first []int
	for i := 0; i < 5; i++ {
		n, err := full.Roll(20)
		require.NoError(t, err)
		first = append(first, n)
	}
	mid := full.ToState()

	var fromMid []int
	for i := 0; i < 5; i++ {
		n, err := full.Roll(20)
		require.NoError(t, err)
		fromMid = append(fromMid, n)
	}

	resumed := FromState(mid)
	var resumedRolls []int
	for i := 0; i < 5; i++ {
		n, err := resumed.Roll(20)
		require.NoError(t, err)
		resumedRolls = append(resumedRolls, n)
	}

	assert.Equal(t, fromMid, resumedRolls)
}

func TestSeeded_RollInvalidSize(t *testing.T) {
	s := New(1, 0)
	_, err := s.Roll(0)
	assert.Error(t, err)
	_, err = s.Roll(-3)
	assert.Error(t, err)
}

func TestSeeded_RollN(t *testing.T) {
	s := New(5, 0)
	results, err := s.RollN(10, 6)
	require.NoError(t, err)
	require.Len(t, results, 10)
	for _, r := range results {
		assert.GreaterOrEqual(t, r, 1)
		assert.LessOrEqual(t, r, 6)
	}

	_, err = s.RollN(-1, 6)
	assert.Error(t, err)
}

func TestSeeded_ShuffleIsDeterministic(t *testing.T) {
	deckA := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	deckB := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	New(99, 0).Shuffle(len(deckA), func(i, j int) { deckA[i], deckA[j] = deckA[j], deckA[i] })
	New(99, 0).Shuffle(len(deckB), func(i, j int) { deckB[i], deckB[j] = deckB[j], deckB[i] })

	assert.Equal(t, deckA, deckB)
	assert.NotEqual(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, deckA)
}

func TestSeeded_ImplementsRoller(t *testing.T) {
	var _ dice.Roller = New(1, 0)
}
