// Package validactions enumerates the legal actions for a (state,
// player) pair. The result is a tagged union whose Mode reflects the
// highest-priority gate; by construction each surfaced option
// corresponds one to one with an action the validator chains accept.
package validactions

import (
	"github.com/mage-knight-digital/MageKnight-sub011/core"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/catalog"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/modifier"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/resolve"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
)

// Mode is the highest-priority gate for the player right now.
type Mode string

const (
	ModeCannotAct               Mode = "cannot_act"
	ModeTacticsSelection        Mode = "tactics_selection"
	ModePendingTacticDecision   Mode = "pending_tactic_decision"
	ModePendingGladeWound       Mode = "pending_glade_wound"
	ModePendingDeepMine         Mode = "pending_deep_mine"
	ModePendingDiscardCost      Mode = "pending_discard_cost"
	ModePendingDiscardForAttack Mode = "pending_discard_for_attack"
	ModePendingDiscardForCrystal Mode = "pending_discard_for_crystal"
	ModePendingLevelUp          Mode = "pending_level_up"
	ModePendingCrystalJoy       Mode = "pending_crystal_joy_reclaim"
	ModePendingChoice           Mode = "pending_choice"
	ModePendingRest             Mode = "pending_rest"
	ModeCombat                  Mode = "combat"
	ModeNormalTurn              Mode = "normal_turn"
)

// CardPlayability is the per-hand-card play-mode availability.
type CardPlayability struct {
	CardID         string
	CanPlayBasic   bool
	CanPlayPowered bool
	CanPlaySideways bool
}

// CombatOptions is the combat-mode option set.
type CombatOptions struct {
	Phase            state.CombatPhase
	CanEndPhase      bool
	BlockableEnemies []string
	AttackableEnemies []string
	DamageEnemies    []string
	PlayableCards    []CardPlayability
}

// NormalTurnOptions lists what a normal turn offers.
type NormalTurnOptions struct {
	MoveTargets      []state.HexKey
	ExploreSlots     []state.HexKey
	PlayableCards    []CardPlayability
	CanRest          bool
	CanEndTurn       bool
	CanAnnounceEnd   bool
	RecruitableUnits []*core.Ref
	UsableSkills     []*core.Ref
	ReadyUnits       []string
	CanEnterCombat   bool
}

// ValidActions is the tagged union returned to clients.
type ValidActions struct {
	Mode    Mode
	Tactics []*core.Ref
	Choice  *state.PendingChoice
	Combat  *CombatOptions
	Normal  *NormalTurnOptions
	LevelUp *state.PendingLevelUp
}

// Compute returns the valid actions for playerID.
func Compute(g *state.GameState, tables catalog.Tables, playerID string) ValidActions {
	p := g.PlayerByID(playerID)
	if p == nil {
		return ValidActions{Mode: ModeCannotAct}
	}

	if g.RoundPhase == state.PhaseTacticsSelection {
		// Tactic decisions surface as a choice gate resolved with
		// RESOLVE_CHOICE.
		if p.Pending.Choice != nil {
			return ValidActions{Mode: ModePendingTacticDecision, Choice: p.Pending.Choice}
		}
		if g.CurrentTacticSelector == playerID {
			return ValidActions{Mode: ModeTacticsSelection, Tactics: append([]*core.Ref(nil), g.AvailableTactics...)}
		}
		return ValidActions{Mode: ModeCannotAct}
	}

	cur := g.CurrentPlayer()
	if cur == nil || cur.ID != playerID {
		return ValidActions{Mode: ModeCannotAct}
	}

	switch p.Pending.ActiveGate() {
	case state.GateGladeWound:
		return ValidActions{Mode: ModePendingGladeWound}
	case state.GateDeepMine:
		return ValidActions{Mode: ModePendingDeepMine}
	case state.GateDiscard:
		return ValidActions{Mode: ModePendingDiscardCost}
	case state.GateDiscardForAttack:
		return ValidActions{Mode: ModePendingDiscardForAttack}
	case state.GateDiscardForCrystal:
		return ValidActions{Mode: ModePendingDiscardForCrystal}
	case state.GateLevelUp:
		lu := p.Pending.LevelUpRewards[0]
		return ValidActions{Mode: ModePendingLevelUp, LevelUp: &lu}
	case state.GateCrystalJoy:
		return ValidActions{Mode: ModePendingCrystalJoy}
	case state.GateChoice:
		return ValidActions{Mode: ModePendingChoice, Choice: p.Pending.Choice}
	case state.GateRest:
		return ValidActions{Mode: ModePendingRest}
	}

	if g.Combat != nil && g.Combat.PlayerID == playerID {
		return ValidActions{Mode: ModeCombat, Combat: combatOptions(g, tables, p)}
	}
	return ValidActions{Mode: ModeNormalTurn, Normal: normalOptions(g, tables, p)}
}

func combatOptions(g *state.GameState, tables catalog.Tables, p *state.Player) *CombatOptions {
	c := g.Combat
	opts := &CombatOptions{Phase: c.Phase, PlayableCards: playabilities(g, tables, p)}

	switch c.Phase {
	case state.CombatRangedSiege:
		opts.CanEndPhase = true
		for _, e := range c.AliveEnemies() {
			opts.AttackableEnemies = append(opts.AttackableEnemies, e.InstanceID)
		}
	case state.CombatBlock:
		opts.CanEndPhase = true
		for _, e := range c.AliveEnemies() {
			if !e.IsBlockedAt(0) && !e.Prevented {
				opts.BlockableEnemies = append(opts.BlockableEnemies, e.InstanceID)
			}
		}
	case state.CombatAssignDamage:
		opts.CanEndPhase = true
		for i := range c.Enemies {
			e := &c.Enemies[i]
			if e.IsDefeated || e.Prevented || e.IsBlockedAt(0) {
				continue
			}
			opts.DamageEnemies = append(opts.DamageEnemies, e.InstanceID)
			opts.CanEndPhase = false
		}
	case state.CombatAttack:
		opts.CanEndPhase = c.AllDefeated()
		for _, e := range c.AliveEnemies() {
			opts.AttackableEnemies = append(opts.AttackableEnemies, e.InstanceID)
		}
	}
	return opts
}

func normalOptions(g *state.GameState, tables catalog.Tables, p *state.Player) *NormalTurnOptions {
	opts := &NormalTurnOptions{
		PlayableCards:  playabilities(g, tables, p),
		CanEndTurn:     true,
		CanRest:        !p.HasMovedThisTurn && !p.HasTakenActionThisTurn && !p.HasCombattedThisTurn && !p.IsResting,
		CanAnnounceEnd: g.EndOfRoundAnnouncedBy == "" && len(p.Deck) == 0,
	}

	coord, err := p.Position.Coord()
	if err == nil {
		for _, n := range coord.GetNeighbors() {
			key := state.KeyOf(n)
			if hex, ok := g.Map.HexAt(key); ok {
				if cost, passable := hex.Terrain.MoveCost(g.IsDay()); passable && p.MovePoints >= cost {
					opts.MoveTargets = append(opts.MoveTargets, key)
				}
				continue
			}
			if g.Map.IsExpansionSlot(key) && p.MovePoints >= 2 &&
				(len(g.Map.CountrysideDeck) > 0 || len(g.Map.CoreDeck) > 0) {
				opts.ExploreSlots = append(opts.ExploreSlots, key)
			}
		}
	}

	if hex, ok := g.Map.HexAt(p.Position); ok && hex.Site != nil {
		if !hex.Site.Conquered && (len(hex.Site.Garrison) > 0 || len(hex.Site.GarrisonTokens) > 0) {
			opts.CanEnterCombat = true
		}
		if recruitingSite(hex.Site) {
			for _, u := range g.Offers.Units {
				def, defOK := tables.Unit(u)
				if !defOK {
					continue
				}
				cost := def.Cost
				for _, m := range modifier.OfKind(g.ActiveModifiers.ForPlayer(p.ID), modifier.KindDiscountedPurchase) {
					cost -= m.Amount
				}
				if cost < 0 {
					cost = 0
				}
				if p.InfluencePoints >= cost && len(p.Units) < p.CommandTokens {
					opts.RecruitableUnits = append(opts.RecruitableUnits, u)
				}
			}
		}
	}

	for _, s := range p.Skills {
		def, ok := tables.Skill(s)
		if !ok || def.OnActivate == nil {
			continue
		}
		usable := true
		if def.OncePerTurn {
			for _, used := range p.SkillCooldowns.UsedThisTurn {
				if used.String() == s.String() {
					usable = false
				}
			}
		}
		for _, flipped := range p.SkillFlipState.FlippedSkills {
			if flipped.String() == s.String() {
				usable = false
			}
		}
		if usable {
			opts.UsableSkills = append(opts.UsableSkills, s)
		}
	}

	for _, u := range p.Units {
		if u.State == state.UnitReady {
			opts.ReadyUnits = append(opts.ReadyUnits, u.InstanceID)
		}
	}
	return opts
}

func recruitingSite(s *state.SiteState) bool {
	switch s.Kind {
	case catalog.SiteVillage, catalog.SiteMonastery:
		return true
	case catalog.SiteKeep, catalog.SiteCity:
		return s.Conquered
	}
	return false
}

// playabilities computes (basic, powered, sideways) per hand card by
// recursive inspection of the card's effect trees and the mana rules.
func playabilities(g *state.GameState, tables catalog.Tables, p *state.Player) []CardPlayability {
	var out []CardPlayability
	for _, c := range p.Hand {
		def, ok := tables.Card(c.Ref)
		if !ok || def.IsWound {
			continue
		}
		pl := CardPlayability{CardID: c.ID, CanPlaySideways: sidewaysUsable(g, p)}
		if def.Basic != nil && resolve.CanResolve(g, tables, p.ID, def.Basic) {
			pl.CanPlayBasic = true
		}
		if def.Powered != nil && resolve.CanResolve(g, tables, p.ID, def.Powered) &&
			manaObtainable(g, p, def.Color) {
			pl.CanPlayPowered = true
		}
		out = append(out, pl)
	}
	return out
}

// sidewaysUsable: at least one of the four sideways modes applies in
// the current context.
func sidewaysUsable(g *state.GameState, p *state.Player) bool {
	if g.Combat == nil || g.Combat.PlayerID != p.ID {
		return true
	}
	switch g.Combat.Phase {
	case state.CombatRangedSiege, state.CombatAttack, state.CombatBlock:
		return true
	}
	return false
}

// manaObtainable: the powered cost is payable from a source die under
// the single-use rule, a crystal, a pure token, or an EndlessMana
// modifier.
func manaObtainable(g *state.GameState, p *state.Player, need mana.Color) bool {
	for _, m := range modifier.OfKind(g.ActiveModifiers.ForPlayer(p.ID), modifier.KindEndlessMana) {
		for _, col := range m.Colors {
			if mana.CanPayWithColor(mana.Color(col), need, g.IsDay()) {
				return true
			}
		}
	}
	for _, t := range p.PureMana {
		if mana.CanPayWithColor(t.Color, need, g.IsDay()) {
			return true
		}
	}
	for _, c := range mana.BasicColors {
		if p.Crystals[c] > 0 && mana.CanPayWithColor(c, need, g.IsDay()) {
			return true
		}
	}
	if !p.UsedManaFromSource {
		for _, die := range g.Source.Dice {
			if die.TakenBy != "" && die.TakenBy != p.ID {
				continue
			}
			if mana.IsDieUsable(mana.Die{Color: die.Color, Depleted: die.Depleted}, g.IsDay()) &&
				mana.CanPayWithColor(die.Color, need, g.IsDay()) {
				return true
			}
		}
	}
	return false
}
