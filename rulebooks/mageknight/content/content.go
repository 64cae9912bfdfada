// Package content ships a compact sample data set for the engine: the
// basic action cards, a handful of advanced actions, spells and
// artifacts, the day and night tactics, starter enemies, units, tiles,
// and two heroes. The production catalog is an external data set (the
// engine only depends on catalog.Tables); this package exists so tests,
// the demo binary, and downstream prototypes have something real to
// load without that external set.
package content

import (
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/catalog"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/effect"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/refs"
)

// Tables builds the sample catalog.
func Tables() *catalog.Memory {
	m := catalog.NewMemory()
	addBasicCards(m)
	addSpecialCards(m)
	addTactics(m)
	addEnemies(m)
	addHeroes(m)
	addUnits(m)
	addTiles(m)
	return m
}

func addBasicCards(m *catalog.Memory) {
	m.AddCard(&catalog.Card{
		Ref: refs.Card("wound"), Name: "Wound", IsWound: true,
	})
	m.AddCard(&catalog.Card{
		Ref: refs.Card("march"), Name: "March", Color: mana.Green,
		Basic:   effect.GainMove{Amount: 2},
		Powered: effect.GainMove{Amount: 4},
	})
	m.AddCard(&catalog.Card{
		Ref: refs.Card("stamina"), Name: "Stamina", Color: mana.Blue,
		Basic:   effect.GainMove{Amount: 2},
		Powered: effect.GainMove{Amount: 4},
	})
	m.AddCard(&catalog.Card{
		Ref: refs.Card("rage"), Name: "Rage", Color: mana.Red,
		Basic: effect.Choice{Options: []effect.ChoiceOption{
			{Label: "attack 2", Effect: effect.GainAttack{Amount: 2, Element: effect.ElementPhysical, CombatType: effect.CombatMelee}},
			{Label: "block 2", Effect: effect.GainBlock{Amount: 2, Element: effect.ElementPhysical}},
		}},
		Powered: effect.GainAttack{Amount: 4, Element: effect.ElementPhysical, CombatType: effect.CombatMelee},
	})
	m.AddCard(&catalog.Card{
		Ref: refs.Card("swiftness"), Name: "Swiftness", Color: mana.White,
		Basic:   effect.GainMove{Amount: 2},
		Powered: effect.GainAttack{Amount: 3, Element: effect.ElementPhysical, CombatType: effect.CombatRanged},
	})
	m.AddCard(&catalog.Card{
		Ref: refs.Card("crystallize"), Name: "Crystallize", Color: mana.Blue,
		Basic: effect.Choice{Options: []effect.ChoiceOption{
			{Label: "red crystal", Effect: effect.GainCrystal{Color: mana.Red, Amount: 1}},
			{Label: "blue crystal", Effect: effect.GainCrystal{Color: mana.Blue, Amount: 1}},
			{Label: "green crystal", Effect: effect.GainCrystal{Color: mana.Green, Amount: 1}},
			{Label: "white crystal", Effect: effect.GainCrystal{Color: mana.White, Amount: 1}},
		}},
		Powered: effect.Compound{Effects: []effect.Effect{
			effect.GainCrystal{Color: mana.Blue, Amount: 1},
			effect.GainCrystal{Color: mana.Red, Amount: 1},
		}},
	})
	m.AddCard(&catalog.Card{
		Ref: refs.Card("promise"), Name: "Promise", Color: mana.Green,
		Basic:   effect.GainInfluence{Amount: 2},
		Powered: effect.GainInfluence{Amount: 4},
	})
	m.AddCard(&catalog.Card{
		Ref: refs.Card("threaten"), Name: "Threaten", Color: mana.Red,
		Basic: effect.GainInfluence{Amount: 2},
		Powered: effect.Compound{Effects: []effect.Effect{
			effect.GainInfluence{Amount: 5},
			effect.GainReputation{Amount: -1},
		}},
	})
	m.AddCard(&catalog.Card{
		Ref: refs.Card("mana_draw"), Name: "Mana Draw", Color: mana.White,
		Basic: effect.GainMana{Color: mana.Gold, Source: effect.ManaFromCard},
		Powered: effect.Compound{Effects: []effect.Effect{
			effect.GainMana{Color: mana.Red, Source: effect.ManaFromCard},
			effect.GainMana{Color: mana.Red, Source: effect.ManaFromCard},
		}},
	})
	m.AddCard(&catalog.Card{
		Ref: refs.Card("tranquility"), Name: "Tranquility", Color: mana.Green,
		Basic: effect.Choice{Options: []effect.ChoiceOption{
			{Label: "heal 1", Effect: effect.GainHealing{Amount: 1}},
			{Label: "draw 1", Effect: effect.DrawCards{Count: 1}},
		}},
		Powered: effect.Choice{Options: []effect.ChoiceOption{
			{Label: "heal 2", Effect: effect.GainHealing{Amount: 2}},
			{Label: "draw 2", Effect: effect.DrawCards{Count: 2}},
		}},
	})
	m.AddCard(&catalog.Card{
		Ref: refs.Card("determination"), Name: "Determination", Color: mana.Blue,
		Basic:   effect.GainBlock{Amount: 2, Element: effect.ElementPhysical},
		Powered: effect.GainBlock{Amount: 5, Element: effect.ElementPhysical},
	})
}

// crystalPairs is the powered Druidic Staff's pair order.
var crystalPairs = [][2]mana.Color{
	{mana.Red, mana.Blue},
	{mana.Red, mana.Green},
	{mana.Red, mana.White},
	{mana.Blue, mana.Green},
	{mana.Blue, mana.White},
	{mana.Green, mana.White},
}

func addSpecialCards(m *catalog.Memory) {
	staffColors := effect.Choice{Options: []effect.ChoiceOption{
		{Label: "2 red crystals", Effect: effect.GainCrystal{Color: mana.Red, Amount: 2}},
		{Label: "2 blue crystals", Effect: effect.GainCrystal{Color: mana.Blue, Amount: 2}},
		{Label: "2 green crystals", Effect: effect.GainCrystal{Color: mana.Green, Amount: 2}},
		{Label: "2 white crystals", Effect: effect.GainCrystal{Color: mana.White, Amount: 2}},
	}}
	pairOptions := make([]effect.ChoiceOption, 0, len(crystalPairs))
	for _, pair := range crystalPairs {
		pairOptions = append(pairOptions, effect.ChoiceOption{
			Label: string(pair[0]) + "+" + string(pair[1]),
			Effect: effect.Compound{Effects: []effect.Effect{
				effect.GainHealing{Amount: 2},
				effect.Choice{Options: []effect.ChoiceOption{
					{Label: string(pair[0]), Effect: effect.GainCrystal{Color: pair[0], Amount: 2}},
					{Label: string(pair[1]), Effect: effect.GainCrystal{Color: pair[1], Amount: 2}},
				}},
			}},
		})
	}
	m.AddCard(&catalog.Card{
		Ref: refs.Card("druidic_staff"), Name: "Druidic Staff", Color: mana.Red, IsArtifact: true,
		Basic: effect.DiscardCost{
			Count:        1,
			FilterWounds: true,
			Then:         staffColors,
		},
		Powered: effect.Compound{Effects: []effect.Effect{
			effect.Choice{Options: pairOptions},
			effect.DestroyCard{},
		}},
	})
	m.AddCard(&catalog.Card{
		Ref: refs.Card("crystal_joy"), Name: "Crystal Joy", Color: mana.Blue,
		Basic: effect.DiscardCost{
			Count:        1,
			Optional:     true,
			FilterWounds: true,
			ColorMatters: true,
			ThenByColor: map[mana.Color]effect.Effect{
				mana.Red:   effect.GainCrystal{Color: mana.Red, Amount: 1},
				mana.Blue:  effect.GainCrystal{Color: mana.Blue, Amount: 1},
				mana.Green: effect.GainCrystal{Color: mana.Green, Amount: 1},
				mana.White: effect.GainCrystal{Color: mana.White, Amount: 1},
			},
		},
		Powered: effect.GainCrystal{Color: mana.Blue, Amount: 2},
	})
	m.AddCard(&catalog.Card{
		Ref: refs.Card("fireball"), Name: "Fireball", Color: mana.Red, IsSpell: true,
		Basic:   effect.GainAttack{Amount: 5, Element: effect.ElementFire, CombatType: effect.CombatRanged},
		Powered: effect.GainAttack{Amount: 8, Element: effect.ElementFire, CombatType: effect.CombatSiege},
	})
	m.AddCard(&catalog.Card{
		Ref: refs.Card("snowstorm"), Name: "Snowstorm", Color: mana.Blue, IsSpell: true,
		Basic:   effect.GainAttack{Amount: 5, Element: effect.ElementIce, CombatType: effect.CombatRanged},
		Powered: effect.GainBlock{Amount: 8, Element: effect.ElementIce},
	})
	m.AddCard(&catalog.Card{
		Ref: refs.Card("refreshing_walk"), Name: "Refreshing Walk", Color: mana.Green,
		Basic: effect.Compound{Effects: []effect.Effect{
			effect.GainMove{Amount: 2},
			effect.GainHealing{Amount: 1},
		}},
		Powered: effect.Compound{Effects: []effect.Effect{
			effect.GainMove{Amount: 4},
			effect.GainHealing{Amount: 2},
		}},
	})
	m.AddCard(&catalog.Card{
		Ref: refs.Card("blood_of_ancients"), Name: "Blood of Ancients", Color: mana.Red,
		Basic: effect.Scaling{
			Base:  effect.GainAttack{Amount: 1, Element: effect.ElementPhysical, CombatType: effect.CombatMelee},
			Basis: effect.PerWoundInHand,
		},
		Powered: effect.Scaling{
			Base:  effect.GainFame{Amount: 1},
			Basis: effect.PerEnemyDefeated,
		},
	})
}

func addTactics(m *catalog.Memory) {
	day := []struct {
		id    string
		name  string
		order int
		onSel effect.Effect
		dec   bool
	}{
		{"early_bird", "Early Bird", 1, nil, false},
		{"rethink", "Rethink", 2, nil, false},
		{"mana_steal", "Mana Steal", 3, nil, true},
		{"planning", "Planning", 4, nil, false},
		{"great_start", "Great Start", 5, effect.DrawCards{Count: 2}, false},
		{"the_right_moment", "The Right Moment", 6, nil, false},
	}
	for _, t := range day {
		m.AddTactic(&catalog.Tactic{
			Ref: refs.Tactic(t.id), Name: t.name, TurnOrder: t.order,
			DayOnly: true, OnSelect: t.onSel, RequiresDecision: t.dec,
		})
	}
	night := []struct {
		id    string
		name  string
		order int
		dec   bool
	}{
		{"from_the_dusk", "From the Dusk", 1, false},
		{"long_night", "Long Night", 2, false},
		{"mana_search", "Mana Search", 3, true},
		{"midnight_meditation", "Midnight Meditation", 4, false},
		{"preparation", "Preparation", 5, false},
		{"sparing_power", "Sparing Power", 6, false},
	}
	for _, t := range night {
		m.AddTactic(&catalog.Tactic{
			Ref: refs.Tactic(t.id), Name: t.name, TurnOrder: t.order,
			NightOnly: true, RequiresDecision: t.dec,
		})
	}
}

func addEnemies(m *catalog.Memory) {
	m.AddEnemy(&catalog.Enemy{
		Ref: refs.Enemy("prowlers"), Name: "Prowlers", Color: "green",
		Armor: 3, Attack: 4, AttackElement: catalog.ElementPhysical, FameOnDefeat: 2,
	})
	m.AddEnemy(&catalog.Enemy{
		Ref: refs.Enemy("ironclads"), Name: "Ironclads", Color: "green",
		Armor: 3, Attack: 3, AttackElement: catalog.ElementPhysical, FameOnDefeat: 2,
		Abilities: []catalog.EnemyAbility{catalog.AbilityBrutal},
	})
	m.AddEnemy(&catalog.Enemy{
		Ref: refs.Enemy("crossbowmen"), Name: "Crossbowmen", Color: "grey",
		Armor: 4, Attack: 4, AttackElement: catalog.ElementPhysical, FameOnDefeat: 3,
		Abilities: []catalog.EnemyAbility{catalog.AbilitySwift},
	})
	m.AddEnemy(&catalog.Enemy{
		Ref: refs.Enemy("guardsmen"), Name: "Guardsmen", Color: "grey",
		Armor: 7, Attack: 3, AttackElement: catalog.ElementPhysical, FameOnDefeat: 3,
		Abilities: []catalog.EnemyAbility{catalog.AbilityFortified},
	})
	m.AddEnemy(&catalog.Enemy{
		Ref: refs.Enemy("fire_golems"), Name: "Fire Golems", Color: "brown",
		Armor: 4, Attack: 3, AttackElement: catalog.ElementFire, FameOnDefeat: 4,
		Resistances: []catalog.Element{catalog.ElementFire},
		Abilities:   []catalog.EnemyAbility{catalog.AbilityPoison},
	})
	m.AddEnemy(&catalog.Enemy{
		Ref: refs.Enemy("sorcerers"), Name: "Sorcerers", Color: "violet",
		Armor: 6, Attack: 0, AttackElement: catalog.ElementPhysical, FameOnDefeat: 5,
		Abilities: []catalog.EnemyAbility{catalog.AbilitySummon}, SummonColor: "brown",
	})
	m.AddEnemy(&catalog.Enemy{
		Ref: refs.Enemy("freezers"), Name: "Freezers", Color: "white",
		Armor: 7, Attack: 6, AttackElement: catalog.ElementIce, FameOnDefeat: 7,
		Resistances: []catalog.Element{catalog.ElementIce},
		Abilities:   []catalog.EnemyAbility{catalog.AbilityParalyze},
	})
	m.AddEnemy(&catalog.Enemy{
		Ref: refs.Enemy("altem_guardians"), Name: "Altem Guardians", Color: "city",
		Armor: 7, Attack: 6, AttackElement: catalog.ElementPhysical, FameOnDefeat: 8,
		Abilities: []catalog.EnemyAbility{catalog.AbilityFortified, catalog.AbilityAssassination},
	})
}

func addHeroes(m *catalog.Memory) {
	baseDeck := []string{
		"march", "march", "stamina", "stamina",
		"rage", "rage", "swiftness", "swiftness",
		"crystallize", "promise", "promise", "threaten",
		"mana_draw", "tranquility", "determination", "determination",
	}
	heroes := []struct {
		id     string
		name   string
		skills []string
	}{
		{"arythea", "Arythea", []string{"power_of_pain", "dark_fire_magic", "hot_swordsmanship", "dark_negotiation", "motivation_arythea", "polarization"}},
		{"tovak", "Tovak", []string{"double_time", "cold_swordsmanship", "night_sharpshooting", "resistance_break", "motivation_tovak", "i_dont_give_a_damn"}},
	}
	for _, h := range heroes {
		hero := &catalog.Hero{
			Ref: refs.Hero(h.id), Name: h.name,
			StartingHand: 5, HandLimit: 5, Armor: 2,
		}
		for _, c := range baseDeck {
			hero.StartingDeck = append(hero.StartingDeck, refs.Card(c))
		}
		for _, s := range h.skills {
			hero.Skills = append(hero.Skills, refs.Skill(s))
			m.AddSkill(&catalog.Skill{
				Ref:     refs.Skill(s),
				HeroRef: refs.Hero(h.id),
				Name:    s,
				OncePerTurn: true,
				OnActivate:  effect.GainMove{Amount: 1},
			})
		}
		m.AddHero(hero)
	}
}

func addUnits(m *catalog.Memory) {
	m.AddUnit(&catalog.Unit{
		Ref: refs.Unit("peasants"), Name: "Peasants", Level: 1, Armor: 3, Cost: 4, Color: "village",
		Abilities: effect.Choice{Options: []effect.ChoiceOption{
			{Label: "move 2", Effect: effect.GainMove{Amount: 2}},
			{Label: "influence 2", Effect: effect.GainInfluence{Amount: 2}},
			{Label: "attack 2", Effect: effect.GainAttack{Amount: 2, Element: effect.ElementPhysical, CombatType: effect.CombatMelee}},
			{Label: "block 2", Effect: effect.GainBlock{Amount: 2, Element: effect.ElementPhysical}},
		}},
	})
	m.AddUnit(&catalog.Unit{
		Ref: refs.Unit("utem_guardsmen"), Name: "Utem Guardsmen", Level: 2, Armor: 5, Cost: 5, Color: "keep",
		Abilities: effect.Choice{Options: []effect.ChoiceOption{
			{Label: "attack 2", Effect: effect.GainAttack{Amount: 2, Element: effect.ElementPhysical, CombatType: effect.CombatMelee}},
			{Label: "block 4", Effect: effect.GainBlock{Amount: 4, Element: effect.ElementPhysical}},
		}},
	})
	m.AddUnit(&catalog.Unit{
		Ref: refs.Unit("guardian_golems"), Name: "Guardian Golems", Level: 2, Armor: 3, Cost: 7, Color: "keep",
		Abilities: effect.Choice{Options: []effect.ChoiceOption{
			{Label: "attack 2", Effect: effect.GainAttack{Amount: 2, Element: effect.ElementPhysical, CombatType: effect.CombatMelee}},
			{Label: "block 2", Effect: effect.GainBlock{Amount: 2, Element: effect.ElementPhysical}},
		}},
	})
}

func addTiles(m *catalog.Memory) {
	m.AddTile(&catalog.Tile{Ref: refs.Tile("countryside-1"), Sites: []catalog.SiteKind{catalog.SiteVillage}})
	m.AddTile(&catalog.Tile{Ref: refs.Tile("countryside-2"), Sites: []catalog.SiteKind{catalog.SiteMagicGlade}})
	m.AddTile(&catalog.Tile{Ref: refs.Tile("countryside-3"), Sites: []catalog.SiteKind{catalog.SiteMine}})
	m.AddTile(&catalog.Tile{Ref: refs.Tile("countryside-4"), Sites: []catalog.SiteKind{catalog.SiteKeep}, Fortified: true})
	m.AddTile(&catalog.Tile{Ref: refs.Tile("core-1"), IsCore: true, Sites: []catalog.SiteKind{catalog.SiteMageTower}, Fortified: true})
	m.AddTile(&catalog.Tile{Ref: refs.Tile("core-2"), IsCore: true, Sites: []catalog.SiteKind{catalog.SiteCity}, Fortified: true, CityColor: "green"})
}
