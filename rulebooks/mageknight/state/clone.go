package state

import (
	"github.com/mage-knight-digital/MageKnight-sub011/core"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/effect"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
)

// Clone returns a deep copy of the state. Transitions clone first, edit
// the private clone, and return it; a received GameState is never
// written through. Catalog refs (*core.Ref) are immutable by contract
// and shared, not copied.
func (g GameState) Clone() GameState {
	next := g

	next.Players = make([]Player, len(g.Players))
	for i := range g.Players {
		next.Players[i] = g.Players[i].Clone()
	}
	next.TurnOrder = cloneStrings(g.TurnOrder)
	next.TacticsSelectionOrder = cloneStrings(g.TacticsSelectionOrder)
	next.AvailableTactics = cloneRefs(g.AvailableTactics)

	next.Map = g.Map.clone()
	next.Source = Source{Dice: append([]SourceDie(nil), g.Source.Dice...)}
	next.Offers = Offers{
		AdvancedActions: cloneRefs(g.Offers.AdvancedActions),
		Spells:          cloneRefs(g.Offers.Spells),
		Units:           cloneRefs(g.Offers.Units),
		CommonSkills:    cloneRefs(g.Offers.CommonSkills),
	}
	next.Decks = Decks{
		AdvancedActions: cloneRefs(g.Decks.AdvancedActions),
		Spells:          cloneRefs(g.Decks.Spells),
		Units:           cloneRefs(g.Decks.Units),
		Artifacts:       cloneRefs(g.Decks.Artifacts),
	}

	next.EnemyTokens = make([]EnemyPile, len(g.EnemyTokens))
	for i, p := range g.EnemyTokens {
		next.EnemyTokens[i] = EnemyPile{Color: p.Color, Pile: p.Pile.clone()}
	}
	next.RuinsTokens = g.RuinsTokens.clone()

	next.Cities = make([]City, len(g.Cities))
	for i, c := range g.Cities {
		next.Cities[i] = City{Color: c.Color, Garrison: cloneStrings(c.Garrison), Conquered: c.Conquered}
	}

	next.ActiveModifiers = g.ActiveModifiers // Store copies on write

	if g.Combat != nil {
		cc := g.Combat.clone()
		next.Combat = &cc
	}
	if g.PendingCoopAssault != nil {
		ca := *g.PendingCoopAssault
		next.PendingCoopAssault = &ca
	}
	if g.SourceOpeningCenter != nil {
		so := *g.SourceOpeningCenter
		next.SourceOpeningCenter = &so
	}
	next.Dummy = g.Dummy.clone()
	if g.Scenario.CityLevels != nil {
		cl := make(map[string]int, len(g.Scenario.CityLevels))
		for k, v := range g.Scenario.CityLevels {
			cl[k] = v
		}
		next.Scenario.CityLevels = cl
	}
	return next
}

// Clone returns a deep copy of the player.
func (p Player) Clone() Player {
	next := p

	next.Crystals = make(map[mana.Color]int, len(p.Crystals))
	for _, c := range mana.BasicColors {
		if v, ok := p.Crystals[c]; ok {
			next.Crystals[c] = v
		}
	}
	next.PureMana = append([]PureManaToken(nil), p.PureMana...)

	next.RemainingHeroSkills = cloneRefs(p.RemainingHeroSkills)
	next.Skills = cloneRefs(p.Skills)

	next.Hand = cloneCards(p.Hand)
	next.Deck = cloneCards(p.Deck)
	next.Discard = cloneCards(p.Discard)
	next.PlayArea = cloneCards(p.PlayArea)
	next.RemovedCards = cloneCards(p.RemovedCards)
	next.TimeBendingSetAside = cloneCards(p.TimeBendingSetAside)

	next.CombatAccumulator = p.CombatAccumulator.clone()

	next.UsedDieIDs = cloneStrings(p.UsedDieIDs)
	next.ManaDrawDieIDs = cloneStrings(p.ManaDrawDieIDs)
	next.ManaUsedThisTurn = append([]mana.Color(nil), p.ManaUsedThisTurn...)
	next.SpellColorsCastThisTurn = append([]mana.Color(nil), p.SpellColorsCastThisTurn...)
	next.EnemiesDefeatedThisTurn = cloneStrings(p.EnemiesDefeatedThisTurn)
	next.UnitsRecruitedThisInteraction = cloneStrings(p.UnitsRecruitedThisInteraction)
	next.UnitsHealedThisTurn = cloneStrings(p.UnitsHealedThisTurn)
	next.SpentCrystalsThisTurn = append([]mana.Color(nil), p.SpentCrystalsThisTurn...)

	next.Pending = p.Pending.clone()

	next.TacticState = p.TacticState
	next.TacticState.SparingPowerStash = cloneCards(p.TacticState.SparingPowerStash)

	next.SkillCooldowns = SkillCooldowns{
		UsedThisTurn:        cloneRefs(p.SkillCooldowns.UsedThisTurn),
		ActiveUntilNextTurn: cloneRefs(p.SkillCooldowns.ActiveUntilNextTurn),
	}
	next.SkillFlipState = SkillFlipState{FlippedSkills: cloneRefs(p.SkillFlipState.FlippedSkills)}

	next.Units = append([]UnitInstance(nil), p.Units...)
	return next
}

func (m Map) clone() Map {
	next := Map{
		Hexes:           make([]Hex, len(m.Hexes)),
		ExpansionSlots:  append([]HexKey(nil), m.ExpansionSlots...),
		CountrysideDeck: cloneRefs(m.CountrysideDeck),
		CoreDeck:        cloneRefs(m.CoreDeck),
	}
	for i, h := range m.Hexes {
		next.Hexes[i] = h
		if h.Site != nil {
			site := *h.Site
			site.Garrison = cloneStrings(h.Site.Garrison)
			site.GarrisonTokens = cloneRefs(h.Site.GarrisonTokens)
			site.MineColors = append([]mana.Color(nil), h.Site.MineColors...)
			next.Hexes[i].Site = &site
		}
	}
	return next
}

func (t TokenPile) clone() TokenPile {
	return TokenPile{Draw: cloneRefs(t.Draw), Discard: cloneRefs(t.Discard)}
}

func (c CombatState) clone() CombatState {
	next := c
	next.Enemies = make([]EnemyInstance, len(c.Enemies))
	for i, e := range c.Enemies {
		next.Enemies[i] = e
		next.Enemies[i].Blocked = append([]bool(nil), e.Blocked...)
		next.Enemies[i].DamageAssignments = append([]DamageAssignment(nil), e.DamageAssignments...)
	}
	next.Cooperative = make([]CoopShare, len(c.Cooperative))
	for i, s := range c.Cooperative {
		next.Cooperative[i] = CoopShare{PlayerID: s.PlayerID, EnemyIDs: cloneStrings(s.EnemyIDs)}
	}
	return next
}

func (p Pending) clone() Pending {
	next := p
	if p.Discard != nil {
		d := *p.Discard
		d.Remaining = cloneEffects(p.Discard.Remaining)
		if p.Discard.ThenByColor != nil {
			tbc := make(map[mana.Color]effect.Effect, len(p.Discard.ThenByColor))
			for k, v := range p.Discard.ThenByColor {
				tbc[k] = v
			}
			d.ThenByColor = tbc
		}
		next.Discard = &d
	}
	if p.DiscardForAttack != nil {
		d := *p.DiscardForAttack
		d.Remaining = cloneEffects(p.DiscardForAttack.Remaining)
		next.DiscardForAttack = &d
	}
	if p.DiscardForCrystal != nil {
		d := *p.DiscardForCrystal
		d.Remaining = cloneEffects(p.DiscardForCrystal.Remaining)
		next.DiscardForCrystal = &d
	}
	if p.Choice != nil {
		c := *p.Choice
		c.Options = append([]effect.ChoiceOption(nil), p.Choice.Options...)
		c.Remaining = cloneEffects(p.Choice.Remaining)
		next.Choice = &c
	}
	if p.GladeWound != nil {
		g := *p.GladeWound
		next.GladeWound = &g
	}
	if p.DeepMine != nil {
		d := *p.DeepMine
		d.Colors = append([]mana.Color(nil), p.DeepMine.Colors...)
		next.DeepMine = &d
	}
	if p.CrystalJoyReclaim != nil {
		c := *p.CrystalJoyReclaim
		next.CrystalJoyReclaim = &c
	}
	if p.BookOfWisdom != nil {
		b := *p.BookOfWisdom
		next.BookOfWisdom = &b
	}
	if p.Meditation != nil {
		m := *p.Meditation
		m.DrawnCardIDs = cloneStrings(p.Meditation.DrawnCardIDs)
		next.Meditation = &m
	}
	if p.TacticDecision != nil {
		t := *p.TacticDecision
		next.TacticDecision = &t
	}
	if p.Rest != nil {
		r := *p.Rest
		next.Rest = &r
	}
	if len(p.LevelUpRewards) > 0 {
		next.LevelUpRewards = make([]PendingLevelUp, len(p.LevelUpRewards))
		for i, l := range p.LevelUpRewards {
			next.LevelUpRewards[i] = PendingLevelUp{Level: l.Level, SkillOptions: cloneRefs(l.SkillOptions)}
		}
	}
	return next
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneRefs(in []*core.Ref) []*core.Ref {
	if in == nil {
		return nil
	}
	return append([]*core.Ref(nil), in...)
}

func cloneCards(in []CardInstance) []CardInstance {
	if in == nil {
		return nil
	}
	return append([]CardInstance(nil), in...)
}

func cloneEffects(in []effect.Effect) []effect.Effect {
	if in == nil {
		return nil
	}
	return append([]effect.Effect(nil), in...)
}
