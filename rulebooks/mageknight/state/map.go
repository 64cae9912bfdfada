package state

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub011/core"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/catalog"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
	"github.com/mage-knight-digital/MageKnight-sub011/tools/spatial"
)

// HexKey is the stable arena key for a hex, derived from its cube
// coordinate. State structures reference hexes by key, never by
// pointer.
type HexKey string

// KeyOf derives the arena key for a cube coordinate.
func KeyOf(c spatial.CubeCoordinate) HexKey {
	return HexKey(fmt.Sprintf("%d,%d,%d", c.X, c.Y, c.Z))
}

// Coord parses the key back into a cube coordinate.
func (k HexKey) Coord() (spatial.CubeCoordinate, error) {
	var c spatial.CubeCoordinate
	if _, err := fmt.Sscanf(string(k), "%d,%d,%d", &c.X, &c.Y, &c.Z); err != nil {
		return spatial.CubeCoordinate{}, fmt.Errorf("state: bad hex key %q: %w", k, err)
	}
	return c, nil
}

// Terrain is a hex's terrain type, driving move cost and terrain-based
// block.
type Terrain string

const (
	TerrainPlains    Terrain = "plains"
	TerrainHills     Terrain = "hills"
	TerrainForest    Terrain = "forest"
	TerrainWasteland Terrain = "wasteland"
	TerrainDesert    Terrain = "desert"
	TerrainSwamp     Terrain = "swamp"
	TerrainLake      Terrain = "lake"
	TerrainMountain  Terrain = "mountain"
	TerrainCity      Terrain = "city"
)

// MoveCost returns the terrain's move cost for the time of day, and
// whether the terrain is passable at all.
func (t Terrain) MoveCost(isDay bool) (int, bool) {
	switch t {
	case TerrainPlains:
		return 2, true
	case TerrainHills:
		return 3, true
	case TerrainForest:
		if isDay {
			return 3, true
		}
		return 5, true
	case TerrainWasteland:
		return 4, true
	case TerrainDesert:
		if isDay {
			return 5, true
		}
		return 3, true
	case TerrainSwamp:
		return 5, true
	case TerrainCity:
		return 2, true
	case TerrainLake, TerrainMountain:
		return 0, false
	default:
		return 0, false
	}
}

// SiteState is a site's mutable state on a hex.
type SiteState struct {
	Kind      catalog.SiteKind
	Fortified bool
	OwnerID   string // conquering player, "" while unowned
	Conquered bool
	// Garrison holds enemy instance IDs defending the site while
	// unconquered; instances live in the combat arena when revealed.
	Garrison []string
	// GarrisonTokens holds the face-down tokens before reveal.
	GarrisonTokens []*core.Ref
	CityColor      string // set when Kind == SiteCity
	// MineColors is the crystal color(s) a mine yields; one entry for a
	// standard mine, several for a deep mine.
	MineColors []mana.Color
}

// Hex is one placed map hex. Hexes are stored in placement order; the
// order is part of the observable contract (events iterate it).
type Hex struct {
	Key     HexKey
	Terrain Terrain
	Site    *SiteState // nil for featureless hexes
	TileRef *core.Ref  // the tile this hex came from
}

// Map is the placed tile arena plus the unexplored decks and expansion
// slots.
type Map struct {
	Hexes          []Hex
	ExpansionSlots []HexKey
	CountrysideDeck []*core.Ref
	CoreDeck        []*core.Ref
}

// HexAt returns the hex with the given key, if placed.
func (m Map) HexAt(key HexKey) (Hex, bool) {
	for _, h := range m.Hexes {
		if h.Key == key {
			return h, true
		}
	}
	return Hex{}, false
}

// IsExpansionSlot reports whether key is an open expansion slot.
func (m Map) IsExpansionSlot(key HexKey) bool {
	for _, s := range m.ExpansionSlots {
		if s == key {
			return true
		}
	}
	return false
}

// AreAdjacent reports hex adjacency by cube distance 1.
func AreAdjacent(a, b HexKey) bool {
	ca, errA := a.Coord()
	cb, errB := b.Coord()
	if errA != nil || errB != nil {
		return false
	}
	return ca.Distance(cb) == 1
}
