package catalog

import "github.com/mage-knight-digital/MageKnight-sub011/core"

// Memory is an in-memory Tables implementation, used by tests and the
// demo wiring. Entries keep insertion order per category so listing
// accessors are deterministic.
type Memory struct {
	cards   map[string]*Card
	enemies map[string]*Enemy
	tiles   map[string]*Tile
	skills  map[string]*Skill
	tactics map[string]*Tactic
	heroes  map[string]*Hero
	units   map[string]*Unit

	tacticOrder []*Tactic
	enemyOrder  []*Enemy
}

var _ Tables = (*Memory)(nil)

// NewMemory returns an empty in-memory catalog.
func NewMemory() *Memory {
	return &Memory{
		cards:   map[string]*Card{},
		enemies: map[string]*Enemy{},
		tiles:   map[string]*Tile{},
		skills:  map[string]*Skill{},
		tactics: map[string]*Tactic{},
		heroes:  map[string]*Hero{},
		units:   map[string]*Unit{},
	}
}

// AddCard registers a card.
func (m *Memory) AddCard(c *Card) *Memory {
	m.cards[c.Ref.String()] = c
	return m
}

// AddEnemy registers an enemy.
func (m *Memory) AddEnemy(e *Enemy) *Memory {
	m.enemies[e.Ref.String()] = e
	m.enemyOrder = append(m.enemyOrder, e)
	return m
}

// AddTile registers a tile.
func (m *Memory) AddTile(t *Tile) *Memory {
	m.tiles[t.Ref.String()] = t
	return m
}

// AddSkill registers a skill.
func (m *Memory) AddSkill(s *Skill) *Memory {
	m.skills[s.Ref.String()] = s
	return m
}

// AddTactic registers a tactic.
func (m *Memory) AddTactic(t *Tactic) *Memory {
	m.tactics[t.Ref.String()] = t
	m.tacticOrder = append(m.tacticOrder, t)
	return m
}

// AddHero registers a hero.
func (m *Memory) AddHero(h *Hero) *Memory {
	m.heroes[h.Ref.String()] = h
	return m
}

// AddUnit registers a unit.
func (m *Memory) AddUnit(u *Unit) *Memory {
	m.units[u.Ref.String()] = u
	return m
}

func (m *Memory) Card(ref *core.Ref) (*Card, bool) {
	c, ok := m.cards[ref.String()]
	return c, ok
}

func (m *Memory) Enemy(ref *core.Ref) (*Enemy, bool) {
	e, ok := m.enemies[ref.String()]
	return e, ok
}

func (m *Memory) Tile(ref *core.Ref) (*Tile, bool) {
	t, ok := m.tiles[ref.String()]
	return t, ok
}

func (m *Memory) Skill(ref *core.Ref) (*Skill, bool) {
	s, ok := m.skills[ref.String()]
	return s, ok
}

func (m *Memory) Tactic(ref *core.Ref) (*Tactic, bool) {
	t, ok := m.tactics[ref.String()]
	return t, ok
}

func (m *Memory) Hero(ref *core.Ref) (*Hero, bool) {
	h, ok := m.heroes[ref.String()]
	return h, ok
}

func (m *Memory) Unit(ref *core.Ref) (*Unit, bool) {
	u, ok := m.units[ref.String()]
	return u, ok
}

func (m *Memory) AllTactics(isDay bool) []*core.Ref {
	var out []*core.Ref
	for _, t := range m.tacticOrder {
		if isDay && t.NightOnly {
			continue
		}
		if !isDay && t.DayOnly {
			continue
		}
		out = append(out, t.Ref)
	}
	return out
}

func (m *Memory) EnemiesByColor(color string) []*core.Ref {
	var out []*core.Ref
	for _, e := range m.enemyOrder {
		if e.Color == color {
			out = append(out, e.Ref)
		}
	}
	return out
}
