package resolve

import (
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/catalog"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/effect"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
)

// CanResolve reports whether e would do anything useful for playerID in
// the current state. Valid-actions uses it to compute card playability;
// the resolver uses it to filter Choice options. A leaf is resolvable
// when it is relevant to the current context (combat phase or normal
// turn) and its preconditions hold; containers are resolvable when any
// leaf is.
func CanResolve(g *state.GameState, tables catalog.Tables, playerID string, e effect.Effect) bool {
	p := g.PlayerByID(playerID)
	if p == nil {
		return false
	}
	inCombat := g.Combat != nil && g.Combat.PlayerID == playerID

	switch v := e.(type) {
	case effect.GainMove, effect.GainInfluence:
		// Move/influence are turn-scoped resources; irrelevant mid-combat.
		return !inCombat
	case effect.GainAttack:
		if !inCombat {
			return false
		}
		switch g.Combat.Phase {
		case state.CombatRangedSiege:
			return v.CombatType == effect.CombatRanged || v.CombatType == effect.CombatSiege
		case state.CombatAttack:
			return true
		}
		return false
	case effect.GainBlock, effect.TerrainBasedBlock:
		return inCombat && g.Combat.Phase == state.CombatBlock
	case effect.GainHealing:
		if inCombat {
			return false
		}
		return hasWound(tables, p.Hand) || hasWound(tables, p.Discard)
	case effect.GainMana, effect.GainCrystal, effect.GainFame, effect.GainReputation,
		effect.ApplyModifier, effect.ShapeshiftResolve, effect.DestroyCard,
		effect.ThrowAwayCard, effect.SetAside, effect.ReturnToDeckPosition:
		return true
	case effect.DrawCards:
		return len(p.Deck) > 0
	case effect.Conditional:
		// Static inspection only: either branch being resolvable makes
		// the conditional worth playing.
		if CanResolve(g, tables, playerID, v.Then) {
			return true
		}
		return v.Else != nil && CanResolve(g, tables, playerID, v.Else)
	case effect.Choice:
		for _, opt := range v.Options {
			if CanResolve(g, tables, playerID, opt.Effect) {
				return true
			}
		}
		return false
	case effect.Compound:
		for _, sub := range v.Effects {
			if CanResolve(g, tables, playerID, sub) {
				return true
			}
		}
		return false
	case effect.Scaling:
		return CanResolve(g, tables, playerID, v.Base)
	case effect.DiscardCost:
		for _, c := range p.Hand {
			if v.FilterWounds && isWoundCard(tables, c) {
				continue
			}
			return true
		}
		return false
	case effect.ResolveCombatEnemyTarget:
		return inCombat
	case effect.ReadyUnit:
		for _, u := range p.Units {
			if u.State == state.UnitSpent && !u.Wounded && u.Level <= v.MaxLevel {
				return true
			}
		}
		return false
	case effect.ReadySpecificUnit:
		u, ok := p.UnitByInstanceID(v.InstanceID)
		return ok && u.State == state.UnitSpent && !u.Wounded
	}
	return false
}

// ContainsSuspension reports whether resolving e could install a
// pending gate. Used by the single-option auto-resolution policy: a
// sole option only auto-resolves when it cannot itself suspend.
func ContainsSuspension(e effect.Effect) bool {
	switch v := e.(type) {
	case effect.Choice, effect.DiscardCost:
		return true
	case effect.Compound:
		for _, sub := range v.Effects {
			if ContainsSuspension(sub) {
				return true
			}
		}
	case effect.Conditional:
		if ContainsSuspension(v.Then) {
			return true
		}
		return v.Else != nil && ContainsSuspension(v.Else)
	case effect.Scaling:
		return ContainsSuspension(v.Base)
	case effect.ReadyUnit:
		// May expand into a choice across candidates.
		return true
	}
	return false
}

func hasWound(tables catalog.Tables, cards []state.CardInstance) bool {
	for _, c := range cards {
		if isWoundCard(tables, c) {
			return true
		}
	}
	return false
}

func isWoundCard(tables catalog.Tables, c state.CardInstance) bool {
	card, ok := tables.Card(c.Ref)
	return ok && card.IsWound
}
