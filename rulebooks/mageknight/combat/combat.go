// Package combat implements the per-combat state machine of the rules
// engine: phase transitions, block and damage-assignment arithmetic,
// attack grouping against armor, and the enemy ability rules (swift,
// brutal, poison, paralyze, summon, cumbersome, assassination,
// fortified). Functions here follow the engine-wide transition shape:
// take a GameState by value, clone, edit the clone, return it with the
// emitted events.
package combat

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub011/core"
	"github.com/mage-knight-digital/MageKnight-sub011/rpgerr"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/catalog"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/effect"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/event"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/modifier"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/refs"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/rng"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
)

// WoundCardID is the catalog index of the wound card.
const WoundCardID = "wound"

// Start creates the combat substate for playerID on hexKey against the
// given enemy instances and emits COMBAT_STARTED. The combat opens in
// RANGED_SIEGE.
func Start(g state.GameState, playerID string, hexKey state.HexKey, enemies []state.EnemyInstance, fortified, isAssault bool) (state.GameState, []event.Event) {
	next := g.Clone()
	next.Combat = &state.CombatState{
		PlayerID:        playerID,
		Phase:           state.CombatRangedSiege,
		HexKey:          hexKey,
		IsFortifiedSite: fortified,
		IsAssault:       isAssault,
		Enemies:         enemies,
	}
	if p := next.PlayerByID(playerID); p != nil {
		p.HasCombattedThisTurn = true
		p.CombatAccumulator = state.NewAccumulator()
	}
	evts := []event.Event{
		event.New(event.CombatStarted, playerID).
			With("hex", string(hexKey)).With("enemies", len(enemies)).With("assault", isAssault),
		event.New(event.CombatPhaseChanged, playerID).With("phase", string(state.CombatRangedSiege)),
	}
	return next, evts
}

// EffectiveAttack computes an enemy's attack value for blocking and
// damage: the summoned enemy's attack when a summon resolved, minus
// cumbersome move-spend, doubled by swift for block calculations only.
func EffectiveAttack(tables catalog.Tables, e *state.EnemyInstance, forBlock bool) (int, effect.Element, error) {
	def, ok := tables.Enemy(e.Ref)
	if !ok {
		return 0, "", rpgerr.Newf(rpgerr.CodeInternal, "combat: unknown enemy %s", e.Ref)
	}
	attack := def.Attack
	element := def.AttackElement
	swift := def.HasAbility(catalog.AbilitySwift)
	if e.SummonedRef != nil {
		sdef, sok := tables.Enemy(e.SummonedRef)
		if !sok {
			return 0, "", rpgerr.Newf(rpgerr.CodeInternal, "combat: unknown summoned enemy %s", e.SummonedRef)
		}
		attack = sdef.Attack
		element = sdef.AttackElement
		swift = sdef.HasAbility(catalog.AbilitySwift)
	}
	attack -= e.AttackReduction
	if attack < 0 {
		attack = 0
	}
	if forBlock && swift {
		attack *= 2
	}
	return attack, element, nil
}

// BlockValueAgainst computes the player's usable block against an
// attack element: ice block against fire, fire block against ice, and
// coldfire block against anything count in full; everything else
// halves (rounded down). Physical attacks are blocked in full by every
// element.
func BlockValueAgainst(acc state.Accumulator, attackElement effect.Element) int {
	total := 0
	for _, el := range state.ElementOrder {
		amount := acc.BlockOfElement(el)
		if amount == 0 {
			continue
		}
		if blockEfficient(el, attackElement) {
			total += amount
		} else {
			total += amount / 2
		}
	}
	return total
}

func blockEfficient(blockElement, attackElement effect.Element) bool {
	switch attackElement {
	case effect.ElementPhysical, "":
		return true
	case effect.ElementFire:
		return blockElement == effect.ElementIce || blockElement == effect.ElementColdFire
	case effect.ElementIce:
		return blockElement == effect.ElementFire || blockElement == effect.ElementColdFire
	case effect.ElementColdFire:
		return blockElement == effect.ElementColdFire
	}
	return false
}

// DeclareBlock commits the player's accumulated block (plus optional
// cumbersome move-spend and influence-to-block conversion) against one
// enemy attack. Insufficient block is a validation failure upstream;
// this function assumes sufficiency was checked and re-verifies as an
// invariant.
func DeclareBlock(g state.GameState, tables catalog.Tables, playerID, enemyInstanceID string, attackIndex, moveSpent int) (state.GameState, []event.Event, error) {
	next := g.Clone()
	var evts []event.Event
	c := next.Combat
	p := next.PlayerByID(playerID)
	enemy := c.EnemyByInstanceID(enemyInstanceID)
	if enemy == nil {
		return g, nil, rpgerr.Newf(rpgerr.CodeInternal, "combat: enemy %s not in combat", enemyInstanceID)
	}
	def, _ := tables.Enemy(enemy.Ref)

	if moveSpent > 0 {
		if !def.HasAbility(catalog.AbilityCumbersome) {
			return g, nil, rpgerr.New(rpgerr.CodeNotAllowed, "combat: enemy is not cumbersome")
		}
		if p.MovePoints < moveSpent {
			return g, nil, rpgerr.New(rpgerr.CodeResourceExhausted, "combat: not enough move points")
		}
		p.MovePoints -= moveSpent
		enemy.AttackReduction += moveSpent
		evts = append(evts, event.New(event.MoveSpentOnCumbersome, playerID).
			With("enemy", enemyInstanceID).With("amount", moveSpent))
	}

	attack, element, err := EffectiveAttack(tables, enemy, true)
	if err != nil {
		return g, nil, err
	}
	block := BlockValueAgainst(p.CombatAccumulator, element)

	// Influence-to-block conversion mods let influence points top up the
	// committed block one for one.
	influenceUsed := 0
	if block < attack {
		for _, m := range modifier.OfKind(next.ActiveModifiers.ForPlayer(playerID), modifier.KindInfluenceToBlockConvert) {
			_ = m
			need := attack - block
			if p.InfluencePoints < need {
				continue
			}
			influenceUsed = need
			block += need
			break
		}
	}
	if block < attack {
		evts = append(evts, event.New(event.BlockFailed, playerID).
			With("enemy", enemyInstanceID).With("attack", attack).With("block", block))
		return g, evts, rpgerr.New(rpgerr.CodeResourceExhausted, "combat: insufficient block")
	}
	if influenceUsed > 0 {
		p.InfluencePoints -= influenceUsed
		evts = append(evts, event.New(event.InfluenceConvertedToBlock, playerID).
			With("amount", influenceUsed))
	}

	for len(enemy.Blocked) <= attackIndex {
		enemy.Blocked = append(enemy.Blocked, false)
	}
	enemy.Blocked[attackIndex] = true
	// Block is spent whole: committing clears the accumulator.
	p.CombatAccumulator.Block = state.NewAccumulator().Block
	evts = append(evts, event.New(event.EnemyBlocked, playerID).
		With("enemy", enemyInstanceID).With("attackIndex", attackIndex))
	return next, evts, nil
}

// AssignDamage routes one step of an unblocked attack's damage to the
// hero or a unit. Hero steps absorb hero-armor damage per wound; a unit
// must absorb the full remaining damage or cannot be chosen.
func AssignDamage(g state.GameState, tables catalog.Tables, playerID, enemyInstanceID string, toHero bool, unitInstanceID string) (state.GameState, []event.Event, error) {
	next := g.Clone()
	var evts []event.Event
	c := next.Combat
	p := next.PlayerByID(playerID)
	enemy := c.EnemyByInstanceID(enemyInstanceID)
	if enemy == nil {
		return g, nil, rpgerr.Newf(rpgerr.CodeInternal, "combat: enemy %s not in combat", enemyInstanceID)
	}
	def, _ := tables.Enemy(enemy.Ref)
	if enemy.IsDefeated || enemy.Prevented || enemy.IsBlockedAt(0) {
		return g, nil, rpgerr.New(rpgerr.CodeNotAllowed, "combat: no unblocked damage from this enemy")
	}

	attack, element, err := EffectiveAttack(tables, enemy, false)
	if err != nil {
		return g, nil, err
	}
	if def.HasAbility(catalog.AbilityBrutal) {
		attack *= 2
	}
	remaining := attack - enemy.UnblockedDamageAssigned(0)
	if remaining <= 0 {
		return g, nil, rpgerr.New(rpgerr.CodeNotAllowed, "combat: damage already fully assigned")
	}

	if toHero {
		absorbed := p.Armor
		if absorbed > remaining {
			absorbed = remaining
		}
		wounds := 1
		if def.HasAbility(catalog.AbilityAssassination) {
			wounds = 2
		}
		for i := 0; i < wounds; i++ {
			p.Hand = append(p.Hand, woundCard(&next, p))
			p.WoundsReceivedThisTurn++
			evts = append(evts, event.New(event.WoundReceived, playerID).With("to", "hand"))
		}
		if def.HasAbility(catalog.AbilityPoison) {
			p.Discard = append(p.Discard, woundCard(&next, p))
			evts = append(evts, event.New(event.WoundReceived, playerID).With("to", "discard"))
		}
		enemy.DamageAssignments = append(enemy.DamageAssignments, state.DamageAssignment{
			AttackIndex: 0, ToHero: true, Amount: absorbed,
		})
		evts = append(evts, event.New(event.DamageAssigned, playerID).
			With("enemy", enemyInstanceID).With("target", "hero").With("amount", absorbed))
		if tooManyWounds(tables, p) {
			p.KnockedOut = true
			evts = append(evts, event.New(event.PlayerKnockedOut, playerID))
		}
		return next, evts, nil
	}

	idx := -1
	for i := range p.Units {
		if p.Units[i].InstanceID == unitInstanceID {
			idx = i
		}
	}
	if idx < 0 {
		return g, nil, rpgerr.Newf(rpgerr.CodeInvalidTarget, "combat: unit %s not owned", unitInstanceID)
	}
	unit := &p.Units[idx]
	if unit.Wounded {
		return g, nil, rpgerr.New(rpgerr.CodeInvalidTarget, "combat: unit already wounded")
	}
	udef, ok := tables.Unit(unit.Ref)
	if !ok {
		return g, nil, rpgerr.Newf(rpgerr.CodeInternal, "combat: unknown unit %s", unit.Ref)
	}
	effArmor := udef.Armor
	if resistsAsUnit(udef, element) {
		effArmor *= 2
	}
	if remaining > effArmor {
		return g, nil, rpgerr.New(rpgerr.CodeInvalidTarget, "combat: unit cannot absorb the full damage")
	}
	if remaining <= 0 {
		return g, nil, rpgerr.New(rpgerr.CodeNotAllowed, "combat: no damage to assign")
	}

	destroyed := def.HasAbility(catalog.AbilityParalyze) || def.HasAbility(catalog.AbilityPoison)
	if destroyed {
		p.Units = append(p.Units[:idx], p.Units[idx+1:]...)
		evts = append(evts, event.New(event.UnitDestroyed, playerID).With("unit", unitInstanceID))
	} else {
		unit.Wounded = true
		unit.State = state.UnitWoundedState
		evts = append(evts, event.New(event.UnitWounded, playerID).With("unit", unitInstanceID))
	}
	enemy.DamageAssignments = append(enemy.DamageAssignments, state.DamageAssignment{
		AttackIndex: 0, UnitInstanceID: unitInstanceID, Amount: remaining,
	})
	evts = append(evts, event.New(event.DamageAssigned, playerID).
		With("enemy", enemyInstanceID).With("target", "unit").With("amount", remaining))
	return next, evts, nil
}

// resistsAsUnit: units in the catalog have no resistance list of their
// own in this model; armor doubling applies only through abilities the
// unit's effect tree grants, so the default is no resistance.
func resistsAsUnit(_ *catalog.Unit, _ effect.Element) bool {
	return false
}

// tooManyWounds knocks a hero out when the hand holds as many wounds as
// the hand limit.
func tooManyWounds(tables catalog.Tables, p *state.Player) bool {
	wounds := 0
	for _, c := range p.Hand {
		if card, ok := tables.Card(c.Ref); ok && card.IsWound {
			wounds++
		}
	}
	return wounds >= p.HandLimit
}

// woundCard mints a wound card instance with a replay-stable ID.
func woundCard(g *state.GameState, p *state.Player) state.CardInstance {
	seq := len(p.Hand) + len(p.Discard) + len(p.RemovedCards) + int(g.RNG.Counter)
	return state.CardInstance{
		ID:  fmt.Sprintf("wound-%s-%d", p.ID, seq),
		Ref: woundRef(),
	}
}

// DeclareAttack groups the targeted enemies and tests the player's
// attack accumulator against their summed armor. Resistances halve the
// matching element's contribution (rounded down). On success every
// target dies, fame is tallied, and the used attack buckets are spent.
func DeclareAttack(g state.GameState, tables catalog.Tables, playerID string, targetIDs []string, combatType effect.CombatType) (state.GameState, []event.Event, error) {
	next := g.Clone()
	var evts []event.Event
	c := next.Combat
	p := next.PlayerByID(playerID)

	types := usableAttackTypes(c.Phase, combatType)
	if types == nil {
		return g, nil, rpgerr.New(rpgerr.CodeTimingRestriction, "combat: attack type not usable this phase")
	}

	totalArmor := 0
	resisted := map[effect.Element]bool{}
	targets := make([]*state.EnemyInstance, 0, len(targetIDs))
	fame := 0
	for _, id := range targetIDs {
		enemy := c.EnemyByInstanceID(id)
		if enemy == nil {
			return g, nil, rpgerr.Newf(rpgerr.CodeInvalidTarget, "combat: enemy %s not in combat", id)
		}
		if enemy.IsDefeated {
			return g, nil, rpgerr.New(rpgerr.CodeInvalidTarget, "combat: enemy already defeated")
		}
		def, ok := tables.Enemy(enemy.Ref)
		if !ok {
			return g, nil, rpgerr.Newf(rpgerr.CodeInternal, "combat: unknown enemy %s", enemy.Ref)
		}
		if c.Phase == state.CombatRangedSiege && combatType == effect.CombatRanged &&
			siteFortifiedAgainstRanged(c, def) {
			return g, nil, rpgerr.New(rpgerr.CodeNotAllowed, "combat: fortified enemies cannot be targeted by ranged attacks")
		}
		armor := def.Armor
		for _, m := range modifier.OfKind(next.ActiveModifiers.ForEnemy(id), modifier.KindEnemyArmorReduction) {
			armor -= m.Amount
		}
		if armor < 1 {
			armor = 1
		}
		totalArmor += armor
		for _, el := range def.Resistances {
			resisted[el] = true
		}
		targets = append(targets, enemy)
		fame += def.FameOnDefeat
	}

	attack := 0
	for _, el := range state.ElementOrder {
		contribution := p.CombatAccumulator.AttackOfElement(el, types...)
		if resisted[el] {
			contribution /= 2
		}
		attack += contribution
	}
	if attack < totalArmor {
		evts = append(evts, event.New(event.AttackFailed, playerID).
			With("attack", attack).With("armor", totalArmor))
		return g, evts, rpgerr.New(rpgerr.CodeResourceExhausted, "combat: insufficient attack")
	}

	for _, ct := range types {
		for _, el := range state.ElementOrder {
			p.CombatAccumulator.Attack[ct][el] = 0
		}
	}
	for _, enemy := range targets {
		enemy.IsDefeated = true
		p.EnemiesDefeatedThisTurn = append(p.EnemiesDefeatedThisTurn, enemy.InstanceID)
		evts = append(evts, event.New(event.EnemyDefeated, playerID).With("enemy", enemy.InstanceID))
	}
	if fame > 0 {
		p.Fame += fame
		evts = append(evts, event.New(event.FameGained, playerID).With("amount", fame))
	}
	return next, evts, nil
}

// usableAttackTypes maps a declared combat type onto the accumulator
// buckets it may spend in the current phase, or nil when not allowed.
func usableAttackTypes(phase state.CombatPhase, declared effect.CombatType) []effect.CombatType {
	switch phase {
	case state.CombatRangedSiege:
		switch declared {
		case effect.CombatRanged:
			return []effect.CombatType{effect.CombatRanged}
		case effect.CombatSiege:
			return []effect.CombatType{effect.CombatSiege}
		}
		return nil
	case state.CombatAttack:
		// The attack phase spends every bucket as one pool.
		return []effect.CombatType{effect.CombatMelee, effect.CombatRanged, effect.CombatSiege, effect.CombatSwift}
	}
	return nil
}

// siteFortifiedAgainstRanged: on a fortified site, ranged cannot reach
// fortified enemies; an unfortified enemy loses the site's protection.
func siteFortifiedAgainstRanged(c *state.CombatState, def *catalog.Enemy) bool {
	if !c.IsFortifiedSite {
		return def.HasAbility(catalog.AbilityFortified)
	}
	return !def.HasAbility(catalog.AbilityUnfortified)
}

// SiegeAllowed reports whether siege attacks may target the enemy in
// the RANGED_SIEGE phase: siege ignores fortification of the site but
// not a doubly-fortified enemy (fortified ability on a fortified site).
func SiegeAllowed(c *state.CombatState, def *catalog.Enemy) bool {
	return !(c.IsFortifiedSite && def.HasAbility(catalog.AbilityFortified))
}

// EndPhase advances the combat phase. RANGED_SIEGE to BLOCK resolves
// summoner draws; ASSIGN_DAMAGE to ATTACK requires all unblocked
// damage assigned; ATTACK to RESOLUTION requires every enemy defeated
// unless the player accepts retreat.
func EndPhase(g state.GameState, tables catalog.Tables, playerID string, acceptRetreat bool) (state.GameState, []event.Event, error) {
	next := g.Clone()
	var evts []event.Event
	c := next.Combat

	switch c.Phase {
	case state.CombatRangedSiege:
		sevts, err := drawSummons(&next)
		if err != nil {
			return g, nil, err
		}
		evts = append(evts, sevts...)
		c.Phase = state.CombatBlock
	case state.CombatBlock:
		c.Phase = state.CombatAssignDamage
	case state.CombatAssignDamage:
		if err := allDamageAssigned(&next, tables); err != nil {
			return g, nil, err
		}
		c.Phase = state.CombatAttack
	case state.CombatAttack:
		if !c.AllDefeated() && !acceptRetreat {
			return g, nil, rpgerr.New(rpgerr.CodeNotAllowed, "combat: enemies remain; retreat must be accepted explicitly")
		}
		c.Retreated = !c.AllDefeated()
		c.Phase = state.CombatResolution
		evts = append(evts, event.New(event.CombatPhaseChanged, playerID).With("phase", string(c.Phase)))
		return finishCombat(next, playerID, evts)
	default:
		return g, nil, rpgerr.Newf(rpgerr.CodeTimingRestriction, "combat: cannot end phase %s", c.Phase)
	}
	evts = append(evts, event.New(event.CombatPhaseChanged, playerID).With("phase", string(c.Phase)))
	return next, evts, nil
}

// drawSummons materializes each alive summoner's drawn enemy at the
// block boundary.
func drawSummons(g *state.GameState) ([]event.Event, error) {
	var evts []event.Event
	c := g.Combat
	roller := rng.FromState(g.RNG)
	drew := false
	for i := range c.Enemies {
		e := &c.Enemies[i]
		if e.IsDefeated || e.SummonedRef != nil {
			continue
		}
		// The summoner's definition decides the pile color.
		pileColor := summonColor(g, e)
		if pileColor == "" {
			continue
		}
		idx := g.EnemyPileByColor(pileColor)
		if idx < 0 || len(g.EnemyTokens[idx].Pile.Draw) == 0 {
			continue
		}
		pile := &g.EnemyTokens[idx].Pile
		roll, err := roller.Roll(len(pile.Draw))
		if err != nil {
			return nil, rpgerr.Wrap(err, "combat: summon draw")
		}
		drawIdx := roll - 1
		drawn := pile.Draw[drawIdx]
		pile.Draw = append(pile.Draw[:drawIdx], pile.Draw[drawIdx+1:]...)
		pile.Discard = append(pile.Discard, drawn)
		e.SummonedRef = drawn
		drew = true
		evts = append(evts, event.New(event.TileRevealed, c.PlayerID).
			With("kind", "summon").With("enemy", e.InstanceID).With("summoned", drawn.String()))
	}
	if drew {
		g.RNG = roller.ToState()
	}
	return evts, nil
}

// summonColor resolves the summoner's pile color from its catalog
// definition via the state's tables-free view. The caller threads the
// definition color through the instance at creation; an empty color
// means the enemy does not summon.
func summonColor(g *state.GameState, e *state.EnemyInstance) string {
	_ = g
	return e.SummonPileColor
}

// allDamageAssigned verifies every alive, unblocked, unprevented enemy
// attack is fully assigned.
func allDamageAssigned(g *state.GameState, tables catalog.Tables) error {
	c := g.Combat
	for i := range c.Enemies {
		e := &c.Enemies[i]
		if e.IsDefeated || e.Prevented || e.IsBlockedAt(0) {
			continue
		}
		attack, _, err := EffectiveAttack(tables, e, false)
		if err != nil {
			return err
		}
		def, _ := tables.Enemy(e.Ref)
		if def.HasAbility(catalog.AbilityBrutal) {
			attack *= 2
		}
		if e.UnblockedDamageAssigned(0) < attack {
			return rpgerr.Newf(rpgerr.CodeNotAllowed, "combat: unassigned damage from enemy %s", e.InstanceID)
		}
	}
	return nil
}

// finishCombat runs RESOLUTION: site conquest when everything died,
// combat-duration modifier expiry, accumulator reset, combat teardown.
func finishCombat(g state.GameState, playerID string, evts []event.Event) (state.GameState, []event.Event, error) {
	c := g.Combat
	p := g.PlayerByID(playerID)

	if c.AllDefeated() && !c.Retreated {
		for i := range g.Map.Hexes {
			h := &g.Map.Hexes[i]
			if h.Key == c.HexKey && h.Site != nil && !h.Site.Conquered {
				h.Site.Conquered = true
				h.Site.OwnerID = playerID
				h.Site.Garrison = nil
				evts = append(evts, event.New(event.InteractionCompleted, playerID).
					With("site", string(h.Site.Kind)).With("conquered", true))
			}
		}
		for i := range g.Cities {
			city := &g.Cities[i]
			if hexIsCity(&g, c.HexKey, city.Color) {
				city.Conquered = true
			}
		}
	} else if c.Retreated {
		// Survivors go back face-down so a future assault re-reveals
		// them.
		for i := range g.Map.Hexes {
			h := &g.Map.Hexes[i]
			if h.Key != c.HexKey || h.Site == nil {
				continue
			}
			h.Site.Garrison = nil
			for _, e := range c.Enemies {
				if !e.IsDefeated {
					h.Site.GarrisonTokens = append(h.Site.GarrisonTokens, e.Ref)
				}
			}
		}
	}

	g.ActiveModifiers, _ = g.ActiveModifiers.ExpireForCombatEnd()

	p.CombatAccumulator = state.NewAccumulator()
	g.Combat = nil
	evts = append(evts, event.New(event.CombatEnded, playerID).With("retreated", c.Retreated))
	return g, evts, nil
}

func hexIsCity(g *state.GameState, key state.HexKey, color string) bool {
	h, ok := g.Map.HexAt(key)
	return ok && h.Site != nil && h.Site.Kind == catalog.SiteCity && h.Site.CityColor == color
}

func woundRef() *core.Ref {
	return refs.Card(WoundCardID)
}
