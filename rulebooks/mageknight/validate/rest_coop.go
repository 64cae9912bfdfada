package validate

import (
	"github.com/mage-knight-digital/MageKnight-sub011/rpgerr"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/action"
)

func restDeclarable(c *Context) *rpgerr.Error {
	p := c.Player()
	if p.HasMovedThisTurn {
		return rpgerr.New(CodeCannotRestAfterMoving, "cannot rest after moving")
	}
	if p.HasTakenActionThisTurn || p.HasCombattedThisTurn {
		return rpgerr.New(CodeCannotRestAfterAction, "cannot rest after taking an action")
	}
	if p.IsResting {
		return rpgerr.New(rpgerr.CodeConflictingState, "already resting")
	}
	return nil
}

// restSelectionValid: a standard rest discards exactly one non-wound
// card plus any number of wounds; slow recovery (all-wound hand)
// discards exactly one wound.
func restSelectionValid(c *Context) *rpgerr.Error {
	a := c.Action.(action.CompleteRest)
	p := c.Player()
	gate := p.Pending.Rest

	nonWounds, wounds := 0, 0
	for _, id := range a.DiscardCardIDs {
		card, ok := p.HandCard(id)
		if !ok {
			return rpgerr.Newf(CodeCardNotInHand, "card %s is not in hand", id)
		}
		def, defOK := c.Tables.Card(card.Ref)
		if !defOK {
			return rpgerr.Newf(rpgerr.CodeInternal, "unknown card %s", card.Ref)
		}
		if def.IsWound {
			wounds++
		} else {
			nonWounds++
		}
	}
	if gate.SlowRecovery {
		if wounds != 1 || nonWounds != 0 {
			return rpgerr.New(CodeInvalidDiscard, "slow recovery discards exactly one wound")
		}
		return nil
	}
	if nonWounds != 1 {
		return rpgerr.New(CodeInvalidDiscard, "a rest discards exactly one non-wound card")
	}
	return nil
}

func coopProposalValid(c *Context) *rpgerr.Error {
	a := c.Action.(action.ProposeCooperativeAssault)
	if c.State.PendingCoopAssault != nil {
		return rpgerr.New(CodeProposalAlreadyOpen, "a cooperative proposal is already open")
	}
	if a.InviteeID == c.PlayerID {
		return rpgerr.New(rpgerr.CodeInvalidTarget, "cannot invite yourself")
	}
	if !c.KnowsPlayer(a.InviteeID) {
		return rpgerr.Newf(CodePlayerNotFound, "invitee %s not in this game", a.InviteeID)
	}
	for _, city := range c.State.Cities {
		if city.Color == a.CityColor {
			if city.Conquered {
				return rpgerr.New(rpgerr.CodeInvalidTarget, "city is already conquered")
			}
			return nil
		}
	}
	return rpgerr.Newf(rpgerr.CodeInvalidTarget, "city %s is not revealed", a.CityColor)
}

func coopResponseValid(c *Context) *rpgerr.Error {
	prop := c.State.PendingCoopAssault
	if prop == nil {
		return rpgerr.New(CodeNoCooperativeProposal, "no cooperative proposal to respond to")
	}
	if prop.InviteeID != c.PlayerID {
		return rpgerr.New(CodeNotProposalInvitee, "this proposal is not addressed to you")
	}
	return nil
}

func coopCancelValid(c *Context) *rpgerr.Error {
	prop := c.State.PendingCoopAssault
	if prop == nil {
		return rpgerr.New(CodeNoCooperativeProposal, "no cooperative proposal to cancel")
	}
	if prop.ProposerID != c.PlayerID {
		return rpgerr.New(rpgerr.CodeNotAllowed, "only the proposer may cancel")
	}
	return nil
}
