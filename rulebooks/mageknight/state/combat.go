package state

import (
	"github.com/mage-knight-digital/MageKnight-sub011/core"
)

// CombatPhase is the combat state machine's position. Phases form a
// total order; the combat package owns the transition rules.
type CombatPhase string

const (
	CombatEnter        CombatPhase = "ENTER"
	CombatRangedSiege  CombatPhase = "RANGED_SIEGE"
	CombatBlock        CombatPhase = "BLOCK"
	CombatAssignDamage CombatPhase = "ASSIGN_DAMAGE"
	CombatAttack       CombatPhase = "ATTACK"
	CombatResolution   CombatPhase = "RESOLUTION"
)

// NextCombatPhase returns the phase after p in the total order, and
// false at RESOLUTION.
func NextCombatPhase(p CombatPhase) (CombatPhase, bool) {
	switch p {
	case CombatEnter:
		return CombatRangedSiege, true
	case CombatRangedSiege:
		return CombatBlock, true
	case CombatBlock:
		return CombatAssignDamage, true
	case CombatAssignDamage:
		return CombatAttack, true
	case CombatAttack:
		return CombatResolution, true
	}
	return CombatResolution, false
}

// DamageAssignment records damage routed to the hero or a unit for one
// enemy attack.
type DamageAssignment struct {
	AttackIndex    int
	ToHero         bool
	UnitInstanceID string
	Amount         int
}

// EnemyInstance is one enemy's per-combat disposition. The definition
// lives in the catalog; this carries only what combat mutates.
type EnemyInstance struct {
	InstanceID string
	Ref        *core.Ref
	IsDefeated bool
	// Blocked is per attack index; most enemies have a single attack at
	// index 0, summoners resolve the drawn enemy's attack at index 0.
	Blocked []bool
	// DamageAssignments accumulates ASSIGN_DAMAGE steps this combat.
	DamageAssignments []DamageAssignment
	// SummonedRef is the enemy drawn by a summon ability, replacing the
	// summoner's own attack for this combat.
	SummonedRef *core.Ref
	// SummonPileColor is the draw-pile color a summoner draws from,
	// stamped from the catalog definition at instance creation; "" for
	// non-summoners.
	SummonPileColor string
	// AttackReduction is accumulated cumbersome move-spend, applied
	// before swift doubling.
	AttackReduction int
	// Prevented marks the enemy's attack as skipped entirely.
	Prevented bool
}

// CoopShare is one participant's enemy allotment in a cooperative
// assault.
type CoopShare struct {
	PlayerID  string
	EnemyIDs  []string
}

// CombatState is the self-contained combat substate. Created on combat
// entry, destroyed at resolution end.
type CombatState struct {
	PlayerID        string
	Phase           CombatPhase
	HexKey          HexKey
	IsFortifiedSite bool
	IsAssault       bool
	Enemies         []EnemyInstance
	Cooperative     []CoopShare
	// Retreated marks a combat ended by retreat; conquest is forfeit.
	Retreated bool
}

// EnemyByInstanceID returns a pointer into Enemies for in-clone edits,
// or nil. Read-only outside a transition.
func (c *CombatState) EnemyByInstanceID(id string) *EnemyInstance {
	for i := range c.Enemies {
		if c.Enemies[i].InstanceID == id {
			return &c.Enemies[i]
		}
	}
	return nil
}

// AliveEnemies returns the undefeated enemies in insertion order.
func (c *CombatState) AliveEnemies() []EnemyInstance {
	var out []EnemyInstance
	for _, e := range c.Enemies {
		if !e.IsDefeated {
			out = append(out, e)
		}
	}
	return out
}

// AllDefeated reports whether every enemy is defeated.
func (c *CombatState) AllDefeated() bool {
	for _, e := range c.Enemies {
		if !e.IsDefeated {
			return false
		}
	}
	return true
}

// UnblockedDamageAssigned sums damage already assigned for an enemy's
// attack index.
func (e *EnemyInstance) UnblockedDamageAssigned(attackIndex int) int {
	total := 0
	for _, d := range e.DamageAssignments {
		if d.AttackIndex == attackIndex {
			total += d.Amount
		}
	}
	return total
}

// IsBlockedAt reports whether the attack at index is blocked.
func (e *EnemyInstance) IsBlockedAt(attackIndex int) bool {
	return attackIndex >= 0 && attackIndex < len(e.Blocked) && e.Blocked[attackIndex]
}
