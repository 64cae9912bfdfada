package refs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefCategories(t *testing.T) {
	cardRef := Card("stamina")
	assert.Equal(t, "mageknight", cardRef.Module)
	assert.Equal(t, "card", cardRef.Type)
	assert.Equal(t, "stamina", cardRef.Value)

	enemyRef := Enemy("prowlers")
	assert.Equal(t, "enemy", enemyRef.Type)

	tileRef := Tile("countryside-1")
	assert.Equal(t, "tile", tileRef.Type)

	skillRef := Skill("tovak-motivation")
	assert.Equal(t, "skill", skillRef.Type)

	tacticRef := Tactic("early-bird")
	assert.Equal(t, "tactic", tacticRef.Type)
	assert.Equal(t, "early-bird", tacticRef.Value)

	heroRef := Hero("tovak")
	assert.Equal(t, "hero", heroRef.Type)

	siteRef := Site("keep")
	assert.Equal(t, "site", siteRef.Type)

	unitRef := Unit("foresters")
	assert.Equal(t, "unit", unitRef.Type)
}

func TestRefEquality(t *testing.T) {
	a := Card("stamina")
	b := Card("stamina")
	assert.True(t, a.Equals(b))

	c := Card("rage")
	assert.False(t, a.Equals(c))
}
