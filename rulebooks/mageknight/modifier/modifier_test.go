package modifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddPreservesInsertionOrder(t *testing.T) {
	s := NewStore(nil)
	s = s.Add(Modifier{ID: "m1", Kind: KindAttackBonus})
	s = s.Add(Modifier{ID: "m2", Kind: KindHandLimitBonus})
	s = s.Add(Modifier{ID: "m3", Kind: KindEndlessMana})

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, "m1", all[0].ID)
	assert.Equal(t, "m2", all[1].ID)
	assert.Equal(t, "m3", all[2].ID)
}

func TestStore_AddDoesNotMutateOriginal(t *testing.T) {
	s0 := NewStore(nil)
	s1 := s0.Add(Modifier{ID: "m1"})
	assert.Equal(t, 0, s0.Len())
	assert.Equal(t, 1, s1.Len())
}

func TestStore_Remove(t *testing.T) {
	s := NewStore([]Modifier{{ID: "m1"}, {ID: "m2"}})
	s2, removed := s.Remove("m1")
	assert.True(t, removed)
	assert.Equal(t, 1, s2.Len())
	assert.Equal(t, "m2", s2.All()[0].ID)

	s3, removed2 := s2.Remove("nope")
	assert.False(t, removed2)
	assert.Equal(t, 1, s3.Len())
}

func TestStore_ExpireForTurnEnd(t *testing.T) {
	s := NewStore([]Modifier{
		{ID: "a", Duration: DurationTurn, CreatedByPlayerID: "p1"},
		{ID: "b", Duration: DurationTurn, CreatedByPlayerID: "p2"},
		{ID: "c", Duration: DurationPermanent, CreatedByPlayerID: "p1"},
	})
	next, dropped := s.ExpireForTurnEnd("p1")
	require.Len(t, dropped, 1)
	assert.Equal(t, "a", dropped[0].ID)
	ids := []string{}
	for _, m := range next.All() {
		ids = append(ids, m.ID)
	}
	assert.ElementsMatch(t, []string{"b", "c"}, ids)
}

func TestStore_ExpireForCombatEnd(t *testing.T) {
	s := NewStore([]Modifier{
		{ID: "a", Duration: DurationCombat},
		{ID: "b", Duration: DurationTurn},
	})
	next, dropped := s.ExpireForCombatEnd()
	require.Len(t, dropped, 1)
	assert.Equal(t, "a", dropped[0].ID)
	assert.Equal(t, 1, next.Len())
}

func TestStore_ForPlayerScoping(t *testing.T) {
	s := NewStore([]Modifier{
		{ID: "self1", Scope: Scope{Kind: ScopeSelf}, CreatedByPlayerID: "p1"},
		{ID: "self2", Scope: Scope{Kind: ScopeSelf}, CreatedByPlayerID: "p2"},
		{ID: "target1", Scope: Scope{Kind: ScopeTargetPlayer, PlayerID: "p1"}, CreatedByPlayerID: "p2"},
		{ID: "global1", Scope: Scope{Kind: ScopeGlobal}},
	})
	mods := s.ForPlayer("p1")
	ids := []string{}
	for _, m := range mods {
		ids = append(ids, m.ID)
	}
	assert.ElementsMatch(t, []string{"self1", "target1", "global1"}, ids)
}

func TestStore_ForEnemyScoping(t *testing.T) {
	s := NewStore([]Modifier{
		{ID: "e1", Scope: Scope{Kind: ScopeTargetEnemy, EnemyID: "enemy-1"}},
		{ID: "e2", Scope: Scope{Kind: ScopeTargetEnemy, EnemyID: "enemy-2"}},
		{ID: "g1", Scope: Scope{Kind: ScopeGlobal}},
	})
	mods := s.ForEnemy("enemy-1")
	ids := []string{}
	for _, m := range mods {
		ids = append(ids, m.ID)
	}
	assert.ElementsMatch(t, []string{"e1", "g1"}, ids)
}

func TestOfKind(t *testing.T) {
	mods := []Modifier{
		{ID: "a", Kind: KindEndlessMana},
		{ID: "b", Kind: KindAttackBonus},
		{ID: "c", Kind: KindEndlessMana},
	}
	filtered := OfKind(mods, KindEndlessMana)
	require.Len(t, filtered, 2)
	assert.Equal(t, "a", filtered[0].ID)
	assert.Equal(t, "c", filtered[1].ID)
}
