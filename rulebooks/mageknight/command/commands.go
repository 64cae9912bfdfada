package command

import (
	"fmt"
	"strings"

	"github.com/mage-knight-digital/MageKnight-sub011/mechanics/identifier"
	"github.com/mage-knight-digital/MageKnight-sub011/rpgerr"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/action"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/catalog"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/combat"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/effect"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/event"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/modifier"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/resolve"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/turn"
)

// ForAction builds the command for a validated action. Validation has
// already happened; command bodies only enforce invariants.
func ForAction(tables catalog.Tables, g *state.GameState, playerID string, a action.Action) Command {
	switch v := a.(type) {
	case action.SelectTactic:
		return Command{Type: a.Name(), PlayerID: playerID, CheckpointReason: "tactic_selected",
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return turn.SelectTactic(g, tables, playerID, v.TacticRef)
			}}
	case action.Move:
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: true,
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return runMove(g, playerID, v)
			}}
	case action.Explore:
		return Command{Type: a.Name(), PlayerID: playerID, CheckpointReason: "tile_revealed",
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return runExplore(g, tables, playerID, v)
			}}
	case action.PlayCard:
		reversible := true
		if p := g.PlayerByID(playerID); p != nil {
			if card, ok := p.HandCard(v.CardID); ok {
				if def, defOK := tables.Card(card.Ref); defOK {
					eff := def.Basic
					if v.Powered {
						eff = def.Powered
					}
					reversible = !containsDraw(eff)
				}
			}
		}
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: reversible, CheckpointReason: "card_drawn",
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return runPlayCard(g, tables, playerID, v)
			}}
	case action.PlayCardSideways:
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: true,
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return runPlaySideways(g, tables, playerID, v)
			}}
	case action.ResolveChoice:
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: true,
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				res, err := resolve.ResumeChoice(g, tables, playerID, v.ChoiceIndex)
				if err != nil {
					return g, nil, err
				}
				return res.State, res.Events, nil
			}}
	case action.ResolveDiscard:
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: true,
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				res, err := resolve.ResumeDiscard(g, tables, playerID, v.CardIDs)
				if err != nil {
					return g, nil, err
				}
				return res.State, res.Events, nil
			}}
	case action.ResolveDiscardForAttack:
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: true,
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				res, err := resolve.ResumeDiscardForAttack(g, tables, playerID, v.CardIDs)
				if err != nil {
					return g, nil, err
				}
				return res.State, res.Events, nil
			}}
	case action.ResolveDiscardForCrystal:
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: true,
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				res, err := resolve.ResumeDiscardForCrystal(g, tables, playerID, v.CardID)
				if err != nil {
					return g, nil, err
				}
				return res.State, res.Events, nil
			}}
	case action.ResolveDeepMine:
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: true,
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return runResolveDeepMine(g, playerID, v)
			}}
	case action.ResolveGladeWound:
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: true,
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return runResolveGladeWound(g, tables, playerID, v)
			}}
	case action.ResolveCrystalJoyReclaim:
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: true,
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return runCrystalJoyReclaim(g, playerID)
			}}
	case action.ResolveBookOfWisdom:
		return Command{Type: a.Name(), PlayerID: playerID, CheckpointReason: "card_drawn",
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return runBookOfWisdom(g, tables, playerID, v)
			}}
	case action.ResolveMeditation:
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: true,
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return runMeditation(g, playerID, v)
			}}
	case action.ChooseLevelUpRewards:
		return Command{Type: a.Name(), PlayerID: playerID, CheckpointReason: "card_drawn",
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return runLevelUpRewards(g, tables, playerID, v)
			}}
	case action.EnterCombat:
		return Command{Type: a.Name(), PlayerID: playerID, CheckpointReason: "enemy_revealed",
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return runEnterCombat(g, tables, playerID, v)
			}}
	case action.EndCombatPhase:
		return Command{Type: a.Name(), PlayerID: playerID, CheckpointReason: "combat_phase",
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return combat.EndPhase(g, tables, playerID, v.AcceptRetreat)
			}}
	case action.DeclareBlock:
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: true,
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return combat.DeclareBlock(g, tables, playerID, v.EnemyInstanceID, v.AttackIndex, v.MoveSpent)
			}}
	case action.DeclareAttack:
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: true,
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return combat.DeclareAttack(g, tables, playerID, v.TargetEnemyIDs, v.CombatType)
			}}
	case action.AssignDamage:
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: true,
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return combat.AssignDamage(g, tables, playerID, v.EnemyInstanceID, v.Target.Hero, v.Target.UnitInstanceID)
			}}
	case action.RecruitUnit:
		return Command{Type: a.Name(), PlayerID: playerID, CheckpointReason: "offer_refilled",
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return runRecruitUnit(g, tables, playerID, v)
			}}
	case action.ActivateUnit:
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: true,
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return runActivateUnit(g, tables, playerID, v)
			}}
	case action.UseSkill:
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: true,
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return runUseSkill(g, tables, playerID, v)
			}}
	case action.ReturnInteractiveSkill:
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: true,
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return runReturnSkill(g, playerID)
			}}
	case action.DeclareRest:
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: true,
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return runDeclareRest(g, tables, playerID)
			}}
	case action.CompleteRest:
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: true,
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				return runCompleteRest(g, playerID, v)
			}}
	case action.ProposeCooperativeAssault:
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: true,
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				next := g.Clone()
				next.PendingCoopAssault = &state.CoopAssault{
					ProposerID: playerID, InviteeID: v.InviteeID, CityColor: v.CityColor,
				}
				return next, nil, nil
			}}
	case action.RespondToCooperativeProposal:
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: true,
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				next := g.Clone()
				if v.Accept {
					next.PendingCoopAssault.Accepted = true
				} else {
					next.PendingCoopAssault = nil
				}
				return next, nil, nil
			}}
	case action.CancelCooperativeProposal:
		return Command{Type: a.Name(), PlayerID: playerID, Reversible: true,
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				next := g.Clone()
				next.PendingCoopAssault = nil
				return next, nil, nil
			}}
	case action.EndTurn:
		return Command{Type: a.Name(), PlayerID: playerID, CheckpointReason: "turn_ended",
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				next, evts, _, err := turn.EndTurn(g, tables, playerID)
				return next, evts, err
			}}
	case action.AnnounceEndOfRound:
		return Command{Type: a.Name(), PlayerID: playerID, CheckpointReason: "end_of_round_announced",
			Run: func(g state.GameState) (state.GameState, []event.Event, error) {
				next := g.Clone()
				next.EndOfRoundAnnouncedBy = playerID
				return next, []event.Event{event.New(event.EndOfRoundAnnounced, playerID)}, nil
			}}
	}
	return Command{Type: a.Name(), PlayerID: playerID,
		Run: func(g state.GameState) (state.GameState, []event.Event, error) {
			return g, nil, rpgerr.Newf(rpgerr.CodeInternal, "no command for action %s", a.Name())
		}}
}

// containsDraw reports whether an effect tree can move cards off the
// deck, which makes the play irreversible.
func containsDraw(e effect.Effect) bool {
	switch v := e.(type) {
	case effect.DrawCards:
		return true
	case effect.Compound:
		for _, sub := range v.Effects {
			if containsDraw(sub) {
				return true
			}
		}
	case effect.Conditional:
		if containsDraw(v.Then) {
			return true
		}
		return v.Else != nil && containsDraw(v.Else)
	case effect.Choice:
		for _, opt := range v.Options {
			if containsDraw(opt.Effect) {
				return true
			}
		}
	case effect.Scaling:
		return containsDraw(v.Base)
	case effect.DiscardCost:
		if v.Then != nil && containsDraw(v.Then) {
			return true
		}
		for _, sub := range v.ThenByColor {
			if containsDraw(sub) {
				return true
			}
		}
	}
	return false
}

func runMove(g state.GameState, playerID string, a action.Move) (state.GameState, []event.Event, error) {
	next := g.Clone()
	p := next.PlayerByID(playerID)
	from := p.Position
	target := state.KeyOf(a.To)
	hex, _ := next.Map.HexAt(target)
	cost, _ := hex.Terrain.MoveCost(next.IsDay())
	p.MovePoints -= cost
	p.Position = target
	p.HasMovedThisTurn = true
	evts := []event.Event{event.New(event.PlayerMoved, playerID).
		With("from", string(from)).With("to", string(target)).With("cost", cost)}
	return next, evts, nil
}

func runExplore(g state.GameState, tables catalog.Tables, playerID string, a action.Explore) (state.GameState, []event.Event, error) {
	next := g.Clone()
	p := next.PlayerByID(playerID)
	slot := state.KeyOf(a.SlotCoord)

	deck := &next.Map.CountrysideDeck
	if len(*deck) == 0 {
		deck = &next.Map.CoreDeck
	}
	tileRef := (*deck)[0]
	*deck = (*deck)[1:]
	tile, ok := tables.Tile(tileRef)
	if !ok {
		return g, nil, rpgerr.Newf(rpgerr.CodeInternal, "explore: unknown tile %s", tileRef)
	}
	placeTile(&next, tile, slot)
	p.MovePoints -= 2
	p.HasMovedThisTurn = true

	evts := []event.Event{
		event.New(event.TileRevealed, playerID).With("tile", tileRef.String()).With("at", string(slot)),
		event.New(event.TileExplored, playerID).With("tile", tileRef.String()),
	}
	return next, evts, nil
}

// placeTile stamps the tile onto the map as a single hex at the slot.
// That hex hosts the first site in the tile's site list, if any; later
// entries of the list are not placed. Terrain follows the tile kind
// (hills for core tiles, plains otherwise).
func placeTile(g *state.GameState, tile *catalog.Tile, slot state.HexKey) {
	coord, err := slot.Coord()
	if err != nil {
		return
	}
	terrain := state.TerrainPlains
	if tile.IsCore {
		terrain = state.TerrainHills
	}
	hex := state.Hex{Key: slot, Terrain: terrain, TileRef: tile.Ref}
	if len(tile.Sites) > 0 {
		hex.Site = &state.SiteState{
			Kind:      tile.Sites[0],
			Fortified: tile.Fortified,
			CityColor: tile.CityColor,
		}
	}
	g.Map.Hexes = append(g.Map.Hexes, hex)
	g.Map.ExpansionSlots = removeSlot(g.Map.ExpansionSlots, slot)
	for _, n := range coord.GetNeighbors() {
		key := state.KeyOf(n)
		if _, taken := g.Map.HexAt(key); !taken && !g.Map.IsExpansionSlot(key) {
			g.Map.ExpansionSlots = append(g.Map.ExpansionSlots, key)
		}
	}
}

func removeSlot(slots []state.HexKey, target state.HexKey) []state.HexKey {
	out := slots[:0]
	for _, s := range slots {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}

func runPlayCard(g state.GameState, tables catalog.Tables, playerID string, a action.PlayCard) (state.GameState, []event.Event, error) {
	next := g.Clone()
	var evts []event.Event
	p := next.PlayerByID(playerID)
	card, ok := p.HandCard(a.CardID)
	if !ok {
		return g, nil, rpgerr.Newf(rpgerr.CodeInternal, "play: card %s vanished from hand", a.CardID)
	}
	def, defOK := tables.Card(card.Ref)
	if !defOK {
		return g, nil, rpgerr.Newf(rpgerr.CodeInternal, "play: unknown card %s", card.Ref)
	}

	// Stage the card and pay for power.
	removeFromHand(p, a.CardID)
	p.PlayArea = append(p.PlayArea, card)
	p.PlayedCardFromHandThisTurn = true
	if a.Powered {
		if err := payMana(&next, p, a.Mana, def.Color, &evts); err != nil {
			return g, nil, err
		}
	}
	if def.IsSpell {
		p.SpellColorsCastThisTurn = append(p.SpellColorsCastThisTurn, def.Color)
	}
	evts = append(evts, event.New(event.CardPlayed, playerID).
		With("card", card.ID).With("powered", a.Powered))

	eff := def.Basic
	if a.Powered {
		eff = def.Powered
	}
	eff = applyShapeshift(&next, playerID, card.ID, eff)

	res, err := resolve.Apply(next, tables, playerID, card.ID, eff)
	if err != nil {
		return g, nil, err
	}
	return res.State, append(evts, res.Events...), nil
}

// applyShapeshift retypes the staged card's effect tree when a
// ShapeshiftActive modifier targets it, consuming the modifier.
func applyShapeshift(g *state.GameState, playerID, cardID string, eff effect.Effect) effect.Effect {
	for _, m := range modifier.OfKind(g.ActiveModifiers.ForPlayer(playerID), modifier.KindShapeshiftActive) {
		if m.ShapeshiftCardID != cardID {
			continue
		}
		g.ActiveModifiers, _ = g.ActiveModifiers.Remove(m.ID)
		return retype(eff, effect.ShapeshiftTarget(m.ShapeshiftTarget), effect.Element(m.TargetElement))
	}
	return eff
}

// retype rewrites move/attack/block leaves to the target type,
// preserving amounts, and elements where the target carries one.
func retype(e effect.Effect, target effect.ShapeshiftTarget, el effect.Element) effect.Effect {
	if el == "" {
		el = effect.ElementPhysical
	}
	switch v := e.(type) {
	case effect.GainMove:
		return retypedLeaf(v.Amount, effect.ElementPhysical, target, el)
	case effect.GainAttack:
		return retypedLeaf(v.Amount, v.Element, target, el)
	case effect.GainBlock:
		return retypedLeaf(v.Amount, v.Element, target, el)
	case effect.Compound:
		out := make([]effect.Effect, len(v.Effects))
		for i, sub := range v.Effects {
			out[i] = retype(sub, target, el)
		}
		return effect.Compound{Effects: out}
	case effect.Conditional:
		next := effect.Conditional{Predicate: v.Predicate, Then: retype(v.Then, target, el)}
		if v.Else != nil {
			next.Else = retype(v.Else, target, el)
		}
		return next
	case effect.Choice:
		out := make([]effect.ChoiceOption, len(v.Options))
		for i, opt := range v.Options {
			out[i] = effect.ChoiceOption{Label: opt.Label, Effect: retype(opt.Effect, target, el)}
		}
		return effect.Choice{Options: out}
	case effect.Scaling:
		return effect.Scaling{Base: retype(v.Base, target, el), Basis: v.Basis}
	}
	return e
}

func retypedLeaf(amount int, sourceElement effect.Element, target effect.ShapeshiftTarget, el effect.Element) effect.Effect {
	keep := sourceElement
	if keep == "" || keep == effect.ElementPhysical {
		keep = el
	}
	switch target {
	case effect.ShapeshiftToMove:
		return effect.GainMove{Amount: amount}
	case effect.ShapeshiftToAttack:
		return effect.GainAttack{Amount: amount, Element: keep, CombatType: effect.CombatMelee}
	case effect.ShapeshiftToBlock:
		return effect.GainBlock{Amount: amount, Element: keep}
	}
	return effect.GainMove{Amount: amount}
}

// payMana consumes the chosen mana source, tracking source-die use.
func payMana(g *state.GameState, p *state.Player, pay *action.ManaPayment, need mana.Color, evts *[]event.Event) error {
	if pay == nil {
		// Covered by an EndlessMana modifier; nothing to consume.
		return nil
	}
	switch {
	case pay.DieID != "":
		for i := range g.Source.Dice {
			die := &g.Source.Dice[i]
			if die.ID != pay.DieID {
				continue
			}
			die.TakenBy = p.ID
			p.UsedDieIDs = append(p.UsedDieIDs, die.ID)
			p.UsedManaFromSource = true
			p.ManaUsedThisTurn = append(p.ManaUsedThisTurn, die.Color)
			*evts = append(*evts,
				event.New(event.ManaDieTaken, p.ID).With("die", die.ID),
				event.New(event.ManaDieUsed, p.ID).With("die", die.ID).With("color", string(die.Color)))
			return nil
		}
		return rpgerr.Newf(rpgerr.CodeInternal, "pay: die %s vanished", pay.DieID)
	case pay.Crystal != "":
		if p.Crystals[pay.Crystal] < 1 {
			return rpgerr.New(rpgerr.CodeInternal, "pay: crystal vanished")
		}
		p.Crystals[pay.Crystal]--
		p.SpentCrystalsThisTurn = append(p.SpentCrystalsThisTurn, pay.Crystal)
		p.ManaUsedThisTurn = append(p.ManaUsedThisTurn, pay.Crystal)
		*evts = append(*evts, event.New(event.CrystalUsed, p.ID).With("color", string(pay.Crystal)))
		return nil
	case pay.PureToken != "":
		for i, t := range p.PureMana {
			if t.Color == pay.PureToken {
				p.PureMana = append(p.PureMana[:i], p.PureMana[i+1:]...)
				p.ManaUsedThisTurn = append(p.ManaUsedThisTurn, t.Color)
				*evts = append(*evts, event.New(event.ManaTokenUsed, p.ID).With("color", string(t.Color)))
				return nil
			}
		}
		return rpgerr.New(rpgerr.CodeInternal, "pay: pure mana token vanished")
	}
	_ = need
	return rpgerr.New(rpgerr.CodeInternal, "pay: empty payment")
}

func runPlaySideways(g state.GameState, tables catalog.Tables, playerID string, a action.PlayCardSideways) (state.GameState, []event.Event, error) {
	next := g.Clone()
	p := next.PlayerByID(playerID)
	card, ok := p.HandCard(a.CardID)
	if !ok {
		return g, nil, rpgerr.Newf(rpgerr.CodeInternal, "sideways: card %s vanished from hand", a.CardID)
	}
	removeFromHand(p, a.CardID)
	p.PlayArea = append(p.PlayArea, card)
	p.PlayedCardFromHandThisTurn = true

	switch a.As {
	case action.SidewaysMove:
		p.MovePoints++
	case action.SidewaysInfluence:
		p.InfluencePoints++
	case action.SidewaysAttack:
		p.CombatAccumulator = p.CombatAccumulator.AddAttack(effect.CombatMelee, effect.ElementPhysical, 1)
	case action.SidewaysBlock:
		p.CombatAccumulator = p.CombatAccumulator.AddBlock(effect.ElementPhysical, 1)
	}
	_ = tables
	evts := []event.Event{event.New(event.CardPlayed, playerID).
		With("card", card.ID).With("sideways", string(a.As))}
	return next, evts, nil
}

func removeFromHand(p *state.Player, cardID string) {
	for i, c := range p.Hand {
		if c.ID == cardID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return
		}
	}
}

func runResolveDeepMine(g state.GameState, playerID string, a action.ResolveDeepMine) (state.GameState, []event.Event, error) {
	next := g.Clone()
	p := next.PlayerByID(playerID)
	count, _ := mana.AddCrystal(p.Crystals[a.Color], 1)
	p.Crystals[a.Color] = count
	p.Pending.DeepMine = nil
	evts := []event.Event{event.New(event.DeepMineCrystalGained, playerID).With("color", string(a.Color))}
	return next, evts, nil
}

func runResolveGladeWound(g state.GameState, tables catalog.Tables, playerID string, a action.ResolveGladeWound) (state.GameState, []event.Event, error) {
	next := g.Clone()
	var evts []event.Event
	p := next.PlayerByID(playerID)
	p.Pending.GladeWound = nil
	for _, id := range a.DiscardCardIDs {
		for i, c := range p.Hand {
			if c.ID == id {
				p.RemovedCards = append(p.RemovedCards, c)
				p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
				evts = append(evts, event.New(event.WoundHealed, playerID).With("from", "hand").With("site", "glade"))
				break
			}
		}
		for i, c := range p.Discard {
			if c.ID == id {
				p.RemovedCards = append(p.RemovedCards, c)
				p.Discard = append(p.Discard[:i], p.Discard[i+1:]...)
				evts = append(evts, event.New(event.WoundHealed, playerID).With("from", "discard").With("site", "glade"))
				break
			}
		}
	}
	_ = tables
	return next, evts, nil
}

func runCrystalJoyReclaim(g state.GameState, playerID string) (state.GameState, []event.Event, error) {
	next := g.Clone()
	p := next.PlayerByID(playerID)
	gate := p.Pending.CrystalJoyReclaim
	p.Pending.CrystalJoyReclaim = nil
	for i, c := range p.Discard {
		if c.ID == gate.CardID {
			p.Discard = append(p.Discard[:i], p.Discard[i+1:]...)
			p.Hand = append(p.Hand, c)
			return next, []event.Event{event.New(event.CardGained, playerID).
				With("card", c.ID).With("source", "crystal-joy")}, nil
		}
	}
	return next, nil, nil
}

// runBookOfWisdom swaps the book for an advanced action from the offer.
func runBookOfWisdom(g state.GameState, tables catalog.Tables, playerID string, a action.ResolveBookOfWisdom) (state.GameState, []event.Event, error) {
	next := g.Clone()
	var evts []event.Event
	p := next.PlayerByID(playerID)
	gate := p.Pending.BookOfWisdom
	p.Pending.BookOfWisdom = nil

	var pickIdx = -1
	for i, ref := range next.Offers.AdvancedActions {
		if ref.Value == a.CardID {
			pickIdx = i
			break
		}
	}
	if pickIdx < 0 {
		return g, nil, rpgerr.Newf(rpgerr.CodeInvalidTarget, "book of wisdom: %s is not in the offer", a.CardID)
	}
	gained := next.Offers.AdvancedActions[pickIdx]
	next.Offers.AdvancedActions = append(next.Offers.AdvancedActions[:pickIdx], next.Offers.AdvancedActions[pickIdx+1:]...)
	if len(next.Decks.AdvancedActions) > 0 {
		next.Offers.AdvancedActions = append(next.Offers.AdvancedActions, next.Decks.AdvancedActions[0])
		next.Decks.AdvancedActions = next.Decks.AdvancedActions[1:]
	}
	instance := state.CardInstance{ID: fmt.Sprintf("%s-%s-%d", gained.Value, playerID, next.RNG.Counter), Ref: gained}
	p.Discard = append(p.Discard, instance)
	evts = append(evts, event.New(event.AdvancedActionGained, playerID).With("card", gained.String()))

	// The book itself leaves the game.
	for i, c := range p.PlayArea {
		if c.ID == gate.SourceCardID {
			p.RemovedCards = append(p.RemovedCards, c)
			p.PlayArea = append(p.PlayArea[:i], p.PlayArea[i+1:]...)
			break
		}
	}
	_ = tables
	return next, evts, nil
}

// runMeditation stacks the selected drawn cards back on the deck in the
// chosen position.
func runMeditation(g state.GameState, playerID string, a action.ResolveMeditation) (state.GameState, []event.Event, error) {
	next := g.Clone()
	p := next.PlayerByID(playerID)
	p.Pending.Meditation = nil
	for _, id := range a.SelectedCardIDs {
		for i, c := range p.Hand {
			if c.ID != id {
				continue
			}
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			if a.PlaceOnTop {
				p.Deck = append([]state.CardInstance{c}, p.Deck...)
			} else {
				p.Deck = append(p.Deck, c)
			}
			break
		}
	}
	return next, nil, nil
}

func runLevelUpRewards(g state.GameState, tables catalog.Tables, playerID string, a action.ChooseLevelUpRewards) (state.GameState, []event.Event, error) {
	next := g.Clone()
	var evts []event.Event
	p := next.PlayerByID(playerID)
	gate := p.Pending.LevelUpRewards[0]
	p.Pending.LevelUpRewards = p.Pending.LevelUpRewards[1:]

	if a.SkillChoice != nil {
		p.Skills = append(p.Skills, a.SkillChoice)
		evts = append(evts, event.New(event.SkillGained, playerID).With("skill", a.SkillChoice.String()))
		// The unchosen skill joins the common offer.
		for _, s := range gate.SkillOptions {
			if s.String() != a.SkillChoice.String() {
				next.Offers.CommonSkills = append(next.Offers.CommonSkills, s)
			}
		}
		if def, ok := tables.Skill(a.SkillChoice); ok && def.PassiveMod {
			// Passive skills install their permanent modifier on grant.
			res, err := resolve.Apply(next, tables, playerID, "", def.OnActivate)
			if err == nil && def.OnActivate != nil {
				next = res.State
				evts = append(evts, res.Events...)
			}
		}
	}
	if a.AdvancedActionID != "" {
		for i, ref := range next.Offers.AdvancedActions {
			if ref.Value != a.AdvancedActionID {
				continue
			}
			next.Offers.AdvancedActions = append(next.Offers.AdvancedActions[:i], next.Offers.AdvancedActions[i+1:]...)
			if len(next.Decks.AdvancedActions) > 0 {
				next.Offers.AdvancedActions = append(next.Offers.AdvancedActions, next.Decks.AdvancedActions[0])
				next.Decks.AdvancedActions = next.Decks.AdvancedActions[1:]
			}
			instance := state.CardInstance{ID: fmt.Sprintf("%s-%s-%d", ref.Value, playerID, next.RNG.Counter), Ref: ref}
			p.Discard = append(p.Discard, instance)
			evts = append(evts, event.New(event.AdvancedActionGained, playerID).With("card", ref.String()))
			break
		}
	}
	return next, evts, nil
}

func runEnterCombat(g state.GameState, tables catalog.Tables, playerID string, a action.EnterCombat) (state.GameState, []event.Event, error) {
	p := g.PlayerByID(playerID)
	hex, _ := g.Map.HexAt(p.Position)
	site := hex.Site

	var enemies []state.EnemyInstance
	next := g.Clone()
	nextSite := mustSite(&next, p.Position)
	for i, token := range site.GarrisonTokens {
		def, ok := tables.Enemy(token)
		if !ok {
			return g, nil, rpgerr.Newf(rpgerr.CodeInternal, "combat: unknown enemy token %s", token)
		}
		inst := state.EnemyInstance{
			InstanceID:      enemyInstanceID(p.Position, i),
			Ref:             token,
			Blocked:         []bool{false},
			SummonPileColor: def.SummonColor,
		}
		enemies = append(enemies, inst)
		nextSite.Garrison = append(nextSite.Garrison, inst.InstanceID)
	}
	nextSite.GarrisonTokens = nil

	if len(a.EnemyInstanceIDs) > 0 {
		filtered := enemies[:0]
		want := map[string]bool{}
		for _, id := range a.EnemyInstanceIDs {
			want[id] = true
		}
		for _, e := range enemies {
			if want[e.InstanceID] {
				filtered = append(filtered, e)
			}
		}
		enemies = filtered
	}
	fortified := site.Fortified ||
		site.Kind == catalog.SiteKeep || site.Kind == catalog.SiteMageTower || site.Kind == catalog.SiteCity
	isAssault := site.Kind == catalog.SiteCity

	started, evts := combat.Start(next, playerID, p.Position, enemies, fortified, isAssault)
	return started, evts, nil
}

// enemyInstanceID mints a stable arena id for a revealed garrison
// token. Hex keys contain characters the identifier charset forbids,
// so the coordinate is flattened first.
func enemyInstanceID(key state.HexKey, index int) string {
	flat := strings.NewReplacer(",", "_", "-", "n").Replace(string(key))
	return identifier.MustNew(
		fmt.Sprintf("enemy-%s-%d", flat, index),
		"mageknight", "enemy-instance",
	).String()
}

func mustSite(g *state.GameState, key state.HexKey) *state.SiteState {
	for i := range g.Map.Hexes {
		if g.Map.Hexes[i].Key == key {
			return g.Map.Hexes[i].Site
		}
	}
	return nil
}

func runRecruitUnit(g state.GameState, tables catalog.Tables, playerID string, a action.RecruitUnit) (state.GameState, []event.Event, error) {
	next := g.Clone()
	var evts []event.Event
	p := next.PlayerByID(playerID)
	def, _ := tables.Unit(a.UnitRef)

	cost := def.Cost
	for _, m := range modifier.OfKind(next.ActiveModifiers.ForPlayer(p.ID), modifier.KindDiscountedPurchase) {
		cost -= m.Amount
	}
	if cost < 0 {
		cost = 0
	}
	p.InfluencePoints -= cost

	for i, ref := range next.Offers.Units {
		if ref.String() != a.UnitRef.String() {
			continue
		}
		next.Offers.Units = append(next.Offers.Units[:i], next.Offers.Units[i+1:]...)
		if len(next.Decks.Units) > 0 {
			next.Offers.Units = append(next.Offers.Units, next.Decks.Units[0])
			next.Decks.Units = next.Decks.Units[1:]
		}
		break
	}
	inst := state.UnitInstance{
		InstanceID: identifier.MustNew(
			fmt.Sprintf("unit-%s-%s-%d", playerID, a.UnitRef.Value, next.RNG.Counter),
			"mageknight", "unit-instance",
		).String(),
		Ref:        a.UnitRef,
		State:      state.UnitReady,
		Level:      def.Level,
	}
	p.Units = append(p.Units, inst)
	p.HasRecruitedUnitThisTurn = true
	p.UnitsRecruitedThisInteraction = append(p.UnitsRecruitedThisInteraction, inst.InstanceID)
	evts = append(evts, event.New(event.UnitRecruited, playerID).
		With("unit", a.UnitRef.String()).With("instance", inst.InstanceID).With("cost", cost))
	return next, evts, nil
}

func runActivateUnit(g state.GameState, tables catalog.Tables, playerID string, a action.ActivateUnit) (state.GameState, []event.Event, error) {
	next := g.Clone()
	var evts []event.Event
	p := next.PlayerByID(playerID)
	for i := range p.Units {
		if p.Units[i].InstanceID != a.InstanceID {
			continue
		}
		p.Units[i].State = state.UnitSpent
		def, ok := tables.Unit(p.Units[i].Ref)
		if !ok {
			return g, nil, rpgerr.Newf(rpgerr.CodeInternal, "unit: unknown definition %s", p.Units[i].Ref)
		}
		evts = append(evts, event.New(event.UnitActivated, playerID).
			With("unit", a.InstanceID).With("ability", a.AbilityIndex))

		eff := def.Abilities
		if choice, isChoice := eff.(effect.Choice); isChoice {
			if a.AbilityIndex >= len(choice.Options) {
				return g, nil, rpgerr.Newf(rpgerr.CodeInvalidTarget, "unit: ability %d out of range", a.AbilityIndex)
			}
			eff = choice.Options[a.AbilityIndex].Effect
		}
		if eff == nil {
			return next, evts, nil
		}
		res, err := resolve.Apply(next, tables, playerID, "", eff)
		if err != nil {
			return g, nil, err
		}
		return res.State, append(evts, res.Events...), nil
	}
	return g, nil, rpgerr.Newf(rpgerr.CodeInternal, "unit: instance %s vanished", a.InstanceID)
}

func runUseSkill(g state.GameState, tables catalog.Tables, playerID string, a action.UseSkill) (state.GameState, []event.Event, error) {
	next := g.Clone()
	var evts []event.Event
	p := next.PlayerByID(playerID)
	def, _ := tables.Skill(a.SkillRef)

	if def.OncePerTurn {
		p.SkillCooldowns.UsedThisTurn = append(p.SkillCooldowns.UsedThisTurn, a.SkillRef)
	}
	if def.IsCenter {
		p.SkillFlipState.FlippedSkills = append(p.SkillFlipState.FlippedSkills, a.SkillRef)
		next.SourceOpeningCenter = &state.SourceOpeningCenter{
			SkillRef: a.SkillRef,
			OwnerID:  playerID,
		}
	}
	evts = append(evts, event.New(event.SkillUsed, playerID).With("skill", a.SkillRef.String()))

	if def.OnActivate != nil {
		res, err := resolve.Apply(next, tables, playerID, "", def.OnActivate)
		if err != nil {
			return g, nil, err
		}
		return res.State, append(evts, res.Events...), nil
	}
	return next, evts, nil
}

func runReturnSkill(g state.GameState, playerID string) (state.GameState, []event.Event, error) {
	next := g.Clone()
	so := next.SourceOpeningCenter
	next.SourceOpeningCenter = nil
	p := next.PlayerByID(playerID)
	kept := p.SkillFlipState.FlippedSkills[:0]
	for _, s := range p.SkillFlipState.FlippedSkills {
		if s.String() != so.SkillRef.String() {
			kept = append(kept, s)
		}
	}
	p.SkillFlipState.FlippedSkills = kept
	return next, []event.Event{event.New(event.SkillUsed, playerID).
		With("skill", so.SkillRef.String()).With("returned", true)}, nil
}

func runDeclareRest(g state.GameState, tables catalog.Tables, playerID string) (state.GameState, []event.Event, error) {
	next := g.Clone()
	p := next.PlayerByID(playerID)
	p.IsResting = true
	allWounds := true
	for _, c := range p.Hand {
		if def, ok := tables.Card(c.Ref); ok && !def.IsWound {
			allWounds = false
			break
		}
	}
	p.Pending.Rest = &state.PendingRest{SlowRecovery: allWounds}
	return next, []event.Event{event.New(event.InteractionStarted, playerID).With("kind", "rest")}, nil
}

func runCompleteRest(g state.GameState, playerID string, a action.CompleteRest) (state.GameState, []event.Event, error) {
	next := g.Clone()
	var evts []event.Event
	p := next.PlayerByID(playerID)
	p.Pending.Rest = nil
	for _, id := range a.DiscardCardIDs {
		for i, c := range p.Hand {
			if c.ID == id {
				p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
				p.Discard = append(p.Discard, c)
				evts = append(evts, event.New(event.CardDiscarded, playerID).With("card", c.ID).With("rest", true))
				break
			}
		}
	}
	evts = append(evts, event.New(event.InteractionCompleted, playerID).With("kind", "rest"))
	return next, evts, nil
}
