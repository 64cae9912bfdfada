package validate

import (
	"github.com/mage-knight-digital/MageKnight-sub011/rpgerr"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/action"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/modifier"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/resolve"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
)

func playedCardID(a action.Action) string {
	switch v := a.(type) {
	case action.PlayCard:
		return v.CardID
	case action.PlayCardSideways:
		return v.CardID
	}
	return ""
}

func cardInHand(c *Context) *rpgerr.Error {
	id := playedCardID(c.Action)
	if _, ok := c.Player().HandCard(id); !ok {
		return rpgerr.Newf(CodeCardNotInHand, "card %s is not in hand", id)
	}
	return nil
}

func cardNotWound(c *Context) *rpgerr.Error {
	card, _ := c.Player().HandCard(playedCardID(c.Action))
	def, ok := c.Tables.Card(card.Ref)
	if !ok {
		return rpgerr.Newf(rpgerr.CodeInternal, "unknown card %s", card.Ref)
	}
	if def.IsWound {
		return rpgerr.New(CodeWoundNotPlayable, "wounds cannot be played")
	}
	return nil
}

// cardPlayable mirrors valid-actions: the chosen mode's effect tree
// must have at least one leaf resolvable in the current context.
func cardPlayable(c *Context) *rpgerr.Error {
	a := c.Action.(action.PlayCard)
	card, _ := c.Player().HandCard(a.CardID)
	def, _ := c.Tables.Card(card.Ref)
	eff := def.Basic
	if a.Powered {
		eff = def.Powered
	}
	if eff == nil || !resolve.CanResolve(c.State, c.Tables, c.PlayerID, eff) {
		return rpgerr.New(CodeCardNotPlayable, "card has no resolvable effect right now")
	}
	return nil
}

// manaPaymentValid checks the powered-play mana plan under the
// time-of-day wild rules, the one-source-die-per-turn rule, and active
// EndlessMana modifiers.
func manaPaymentValid(c *Context) *rpgerr.Error {
	a := c.Action.(action.PlayCard)
	if !a.Powered {
		return nil
	}
	p := c.Player()
	card, _ := p.HandCard(a.CardID)
	def, _ := c.Tables.Card(card.Ref)
	need := def.Color

	if a.Mana == nil {
		// EndlessMana (ring artifacts) covers the cost without payment.
		for _, m := range modifier.OfKind(c.State.ActiveModifiers.ForPlayer(p.ID), modifier.KindEndlessMana) {
			for _, col := range m.Colors {
				if mana.CanPayWithColor(mana.Color(col), need, c.State.IsDay()) {
					return nil
				}
			}
		}
		return rpgerr.New(CodeInsufficientMana, "powered play requires a mana payment")
	}

	pay := *a.Mana
	switch {
	case pay.DieID != "":
		die, ok := c.State.Source.DieByID(pay.DieID)
		if !ok {
			return rpgerr.Newf(CodeDieNotUsable, "die %s is not in the source", pay.DieID)
		}
		if die.TakenBy != "" && die.TakenBy != p.ID {
			return rpgerr.New(CodeDieNotUsable, "die is taken by another player")
		}
		if !mana.IsDieUsable(mana.Die{Color: die.Color, Depleted: die.Depleted}, c.State.IsDay()) {
			return rpgerr.New(CodeDieNotUsable, "die is depleted for this time of day")
		}
		if p.UsedManaFromSource && !extraSourceDieAllowed(c, pay.DieID) {
			return rpgerr.New(CodeSourceAlreadyUsed, "only one source die per turn")
		}
		if !mana.CanPayWithColor(die.Color, need, c.State.IsDay()) {
			return rpgerr.Newf(CodeInsufficientMana, "die color %s cannot pay %s", die.Color, need)
		}
	case pay.Crystal != "":
		if p.Crystals[pay.Crystal] < 1 {
			return rpgerr.Newf(CodeInsufficientMana, "no %s crystal", pay.Crystal)
		}
		if !mana.CanPayWithColor(pay.Crystal, need, c.State.IsDay()) {
			return rpgerr.Newf(CodeInsufficientMana, "crystal color %s cannot pay %s", pay.Crystal, need)
		}
	case pay.PureToken != "":
		found := false
		for _, t := range p.PureMana {
			if t.Color == pay.PureToken {
				found = true
				break
			}
		}
		if !found {
			return rpgerr.Newf(CodeInsufficientMana, "no pure %s mana token", pay.PureToken)
		}
		if !mana.CanPayWithColor(pay.PureToken, need, c.State.IsDay()) {
			return rpgerr.Newf(CodeInsufficientMana, "token color %s cannot pay %s", pay.PureToken, need)
		}
	default:
		return rpgerr.New(CodeInsufficientMana, "empty mana payment")
	}
	return nil
}

// extraSourceDieAllowed: Source Opening's skill-in-center grants one
// extra die use to players other than the skill owner.
func extraSourceDieAllowed(c *Context, dieID string) bool {
	so := c.State.SourceOpeningCenter
	return so != nil && so.OwnerID != c.PlayerID && so.ExtraDieID == dieID
}

// sidewaysContextValid: sideways attack/block only inside the matching
// combat phase, move/influence only outside combat.
func sidewaysContextValid(c *Context) *rpgerr.Error {
	a := c.Action.(action.PlayCardSideways)
	inFight := c.State.Combat != nil && c.State.Combat.PlayerID == c.PlayerID
	switch a.As {
	case action.SidewaysMove, action.SidewaysInfluence:
		if inFight {
			return rpgerr.New(CodeCardNotPlayable, "move and influence are not usable during combat")
		}
	case action.SidewaysAttack:
		if !inFight || (c.State.Combat.Phase != state.CombatAttack && c.State.Combat.Phase != state.CombatRangedSiege) {
			return rpgerr.New(CodeCardNotPlayable, "sideways attack requires an attack phase")
		}
	case action.SidewaysBlock:
		if !inFight || c.State.Combat.Phase != state.CombatBlock {
			return rpgerr.New(CodeCardNotPlayable, "sideways block requires the block phase")
		}
	default:
		return rpgerr.Newf(rpgerr.CodeNotAllowed, "unknown sideways mode %q", a.As)
	}
	return nil
}

// combatSiteHere requires an unconquered site with a garrison (revealed
// or face-down) on the player's hex for ENTER_COMBAT; enemies on
// adjacent hexes are not considered.
func combatSiteHere(c *Context) *rpgerr.Error {
	p := c.Player()
	hex, ok := c.State.Map.HexAt(p.Position)
	if !ok {
		return rpgerr.New(CodeNoCombatHere, "player is not on the map")
	}
	if hex.Site != nil && !hex.Site.Conquered &&
		(len(hex.Site.Garrison) > 0 || len(hex.Site.GarrisonTokens) > 0) {
		return nil
	}
	return rpgerr.New(CodeNoCombatHere, "nothing to fight here")
}
