package validate

import (
	"github.com/mage-knight-digital/MageKnight-sub011/rpgerr"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/action"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
)

func moveTargetValid(c *Context) *rpgerr.Error {
	a := c.Action.(action.Move)
	p := c.Player()
	if p.IsResting {
		return rpgerr.New(rpgerr.CodeConflictingState, "cannot move while resting")
	}
	target := state.KeyOf(a.To)
	if !state.AreAdjacent(p.Position, target) {
		return rpgerr.New(CodeTargetNotAdjacent, "can only move to an adjacent hex")
	}
	hex, ok := c.State.Map.HexAt(target)
	if !ok {
		return rpgerr.New(CodeTargetNotAdjacent, "target hex is not on the map")
	}
	cost, passable := hex.Terrain.MoveCost(c.State.IsDay())
	if !passable {
		return rpgerr.Newf(CodeTerrainImpassable, "%s is impassable", hex.Terrain)
	}
	if p.MovePoints < cost {
		return rpgerr.Newf(CodeInsufficientMovePoints, "move costs %d, have %d", cost, p.MovePoints)
	}
	return nil
}

func exploreValid(c *Context) *rpgerr.Error {
	a := c.Action.(action.Explore)
	p := c.Player()
	slot := state.KeyOf(a.SlotCoord)
	if !c.State.Map.IsExpansionSlot(slot) {
		return rpgerr.New(CodeNoExplorableTile, "no expansion slot at that coordinate")
	}
	if len(c.State.Map.CountrysideDeck) == 0 && len(c.State.Map.CoreDeck) == 0 {
		return rpgerr.New(CodeNoExplorableTile, "no tiles left to reveal")
	}
	// Exploring costs 2 move and requires standing adjacent to the slot.
	if !state.AreAdjacent(p.Position, slot) {
		return rpgerr.New(CodeTargetNotAdjacent, "must be adjacent to the tile slot")
	}
	if p.MovePoints < 2 {
		return rpgerr.Newf(CodeInsufficientMovePoints, "exploring costs 2, have %d", p.MovePoints)
	}
	return nil
}
