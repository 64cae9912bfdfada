// Package refs provides core.Ref builders for every catalog category the
// engine addresses: cards, enemies, tiles, skills, tactics, heroes, and
// sites. Catalog content itself lives outside this module (see catalog);
// refs only gives every category a type-safe, collision-free identifier.
package refs

import "github.com/mage-knight-digital/MageKnight-sub011/core"

const module = "mageknight"

// Card returns a reference to a card by its catalog index.
func Card(index string) *core.Ref {
	return core.MustNewRef(core.RefInput{Module: module, Type: "card", Value: index})
}

// Enemy returns a reference to an enemy definition by its catalog index.
func Enemy(index string) *core.Ref {
	return core.MustNewRef(core.RefInput{Module: module, Type: "enemy", Value: index})
}

// Tile returns a reference to a map tile definition by its catalog index.
func Tile(index string) *core.Ref {
	return core.MustNewRef(core.RefInput{Module: module, Type: "tile", Value: index})
}

// Skill returns a reference to a skill definition by its catalog index.
func Skill(index string) *core.Ref {
	return core.MustNewRef(core.RefInput{Module: module, Type: "skill", Value: index})
}

// Tactic returns a reference to a tactic card by its catalog index.
func Tactic(index string) *core.Ref {
	return core.MustNewRef(core.RefInput{Module: module, Type: "tactic", Value: index})
}

// Hero returns a reference to a hero definition by its catalog index.
func Hero(index string) *core.Ref {
	return core.MustNewRef(core.RefInput{Module: module, Type: "hero", Value: index})
}

// Site returns a reference to a site-type definition (keep, city, dungeon,
// monastery, …) by its catalog index.
func Site(index string) *core.Ref {
	return core.MustNewRef(core.RefInput{Module: module, Type: "site", Value: index})
}

// Unit returns a reference to a recruitable unit definition by its
// catalog index.
func Unit(index string) *core.Ref {
	return core.MustNewRef(core.RefInput{Module: module, Type: "unit", Value: index})
}
