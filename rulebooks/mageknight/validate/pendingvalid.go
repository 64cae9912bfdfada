package validate

import (
	"github.com/mage-knight-digital/MageKnight-sub011/rpgerr"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/action"
)

func choiceIndexValid(c *Context) *rpgerr.Error {
	a := c.Action.(action.ResolveChoice)
	gate := c.Player().Pending.Choice
	if a.ChoiceIndex < 0 || a.ChoiceIndex >= len(gate.Options) {
		return rpgerr.Newf(CodeInvalidChoiceIndex, "choice index %d out of range", a.ChoiceIndex)
	}
	return nil
}

// discardSelectionValid enforces count, wound filtering, and hand
// membership for a pendingDiscard resolution. An empty selection is
// only legal when the cost is optional.
func discardSelectionValid(c *Context) *rpgerr.Error {
	a := c.Action.(action.ResolveDiscard)
	p := c.Player()
	gate := p.Pending.Discard
	if len(a.CardIDs) == 0 {
		if gate.Optional {
			return nil
		}
		return rpgerr.New(CodeInvalidDiscard, "this discard cost is not optional")
	}
	if len(a.CardIDs) > gate.Count {
		return rpgerr.Newf(CodeInvalidDiscard, "at most %d cards may be discarded", gate.Count)
	}
	seen := map[string]bool{}
	for _, id := range a.CardIDs {
		if seen[id] {
			return rpgerr.New(CodeInvalidDiscard, "duplicate card in selection")
		}
		seen[id] = true
		card, ok := p.HandCard(id)
		if !ok {
			return rpgerr.Newf(CodeCardNotInHand, "card %s is not in hand", id)
		}
		if id == gate.SourceCardID {
			return rpgerr.New(CodeInvalidDiscard, "the played card cannot pay its own cost")
		}
		def, defOK := c.Tables.Card(card.Ref)
		if !defOK {
			return rpgerr.Newf(rpgerr.CodeInternal, "unknown card %s", card.Ref)
		}
		if gate.FilterWounds && def.IsWound {
			return rpgerr.New(CodeInvalidDiscard, "wounds cannot pay this cost")
		}
		if gate.ColorMatters && !gate.AllowNoColor {
			if _, has := gate.ThenByColor[def.Color]; !has {
				return rpgerr.Newf(CodeInvalidDiscard, "color %s is not accepted", def.Color)
			}
		}
	}
	return nil
}

func discardCardsInHand(c *Context) *rpgerr.Error {
	a := c.Action.(action.ResolveDiscardForAttack)
	p := c.Player()
	gate := p.Pending.DiscardForAttack
	if gate.MaxCards > 0 && len(a.CardIDs) > gate.MaxCards {
		return rpgerr.Newf(CodeInvalidDiscard, "at most %d cards", gate.MaxCards)
	}
	for _, id := range a.CardIDs {
		if _, ok := p.HandCard(id); !ok {
			return rpgerr.Newf(CodeCardNotInHand, "card %s is not in hand", id)
		}
	}
	return nil
}

func crystalDiscardValid(c *Context) *rpgerr.Error {
	a := c.Action.(action.ResolveDiscardForCrystal)
	p := c.Player()
	card, ok := p.HandCard(a.CardID)
	if !ok {
		return rpgerr.Newf(CodeCardNotInHand, "card %s is not in hand", a.CardID)
	}
	def, defOK := c.Tables.Card(card.Ref)
	if !defOK || def.IsWound {
		return rpgerr.New(CodeInvalidDiscard, "card cannot become a crystal")
	}
	return nil
}

func deepMineColorValid(c *Context) *rpgerr.Error {
	a := c.Action.(action.ResolveDeepMine)
	for _, col := range c.Player().Pending.DeepMine.Colors {
		if col == a.Color {
			return nil
		}
	}
	return rpgerr.Newf(rpgerr.CodeInvalidTarget, "mine does not offer %s", a.Color)
}

// gladeSelectionValid: the glade lets the player throw away at most one
// wound, from hand or discard.
func gladeSelectionValid(c *Context) *rpgerr.Error {
	a := c.Action.(action.ResolveGladeWound)
	if len(a.DiscardCardIDs) > 1 {
		return rpgerr.New(CodeInvalidDiscard, "the glade heals one wound per turn")
	}
	p := c.Player()
	for _, id := range a.DiscardCardIDs {
		found := false
		for _, card := range p.Hand {
			if card.ID == id {
				found = true
			}
		}
		for _, card := range p.Discard {
			if card.ID == id {
				found = true
			}
		}
		if !found {
			return rpgerr.Newf(CodeCardNotInHand, "wound %s not in hand or discard", id)
		}
	}
	return nil
}

func levelUpChoiceValid(c *Context) *rpgerr.Error {
	a := c.Action.(action.ChooseLevelUpRewards)
	p := c.Player()
	gate := p.Pending.LevelUpRewards[0]
	if a.Level != gate.Level {
		return rpgerr.Newf(rpgerr.CodeInvalidTarget, "level %d is not the pending reward", a.Level)
	}
	if a.SkillChoice != nil {
		for _, s := range gate.SkillOptions {
			if s.String() == a.SkillChoice.String() {
				return nil
			}
		}
		return rpgerr.New(rpgerr.CodeInvalidTarget, "skill is not among the drawn options")
	}
	return nil
}
