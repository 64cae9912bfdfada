// Package resolve implements the recursive effect resolver: the single
// function that reduces an effect.Effect against a game state, producing
// a new state, an ordered event list, and a resolution status. The
// resolver is pure — it clones the incoming state, edits the clone, and
// returns it — and deterministic: the only randomness it consumes is the
// state's own seeded RNG, always rotated forward.
//
// Suspension is data, not control flow (the teacher's pipeline shape):
// when an effect needs player input the resolver writes a pending record
// on the acting player, captures any deferred tail of the enclosing
// Compound on that record, and returns a non-resolved status. A later
// command resumes via the functions in resume.go.
package resolve

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub011/mechanics/identifier"
	"github.com/mage-knight-digital/MageKnight-sub011/rpgerr"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/catalog"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/effect"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/event"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/modifier"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/rng"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
)

// Status reports how far resolution got.
type Status string

const (
	StatusResolved        Status = "resolved"
	StatusRequiresChoice  Status = "requires_choice"
	StatusRequiresDiscard Status = "requires_discard"
	StatusRequiresInput   Status = "requires_input"
)

// Result is the outcome of one resolver call.
type Result struct {
	State  state.GameState
	Events []event.Event
	Status Status
}

// Apply resolves eff for playerID against g. sourceCardID names the
// card whose play produced the effect ("" for skills/sites/tokens).
func Apply(g state.GameState, tables catalog.Tables, playerID, sourceCardID string, eff effect.Effect) (Result, error) {
	r := newRun(g, tables, playerID, sourceCardID)
	status, err := r.resolve(eff)
	if err != nil {
		return Result{}, err
	}
	return r.finish(status), nil
}

// run is the mutable resolution context. The state clone it edits is
// private until finish returns it.
type run struct {
	g            *state.GameState
	tables       catalog.Tables
	rec          *event.Recorder
	playerID     string
	sourceCardID string
	roller       *rng.Seeded
}

func newRun(g state.GameState, tables catalog.Tables, playerID, sourceCardID string) *run {
	clone := g.Clone()
	return &run{
		g:            &clone,
		tables:       tables,
		rec:          event.NewRecorder(),
		playerID:     playerID,
		sourceCardID: sourceCardID,
	}
}

// dice lazily hydrates the seeded roller from the state snapshot.
func (r *run) dice() *rng.Seeded {
	if r.roller == nil {
		r.roller = rng.FromState(r.g.RNG)
	}
	return r.roller
}

func (r *run) finish(status Status) Result {
	if r.roller != nil {
		r.g.RNG = r.roller.ToState()
	}
	return Result{State: *r.g, Events: r.rec.Events(), Status: status}
}

func (r *run) player() *state.Player {
	return r.g.PlayerByID(r.playerID)
}

// resolve reduces one effect. It returns the status of this subtree;
// suspensions bubble up so enclosing Compounds can defer their tails.
func (r *run) resolve(eff effect.Effect) (Status, error) {
	p := r.player()
	if p == nil {
		return "", rpgerr.New(rpgerr.CodeInternal, fmt.Sprintf("resolve: player %s not in state", r.playerID))
	}

	switch e := eff.(type) {
	case effect.GainMove:
		p.MovePoints += e.Amount
		return StatusResolved, nil

	case effect.GainInfluence:
		p.InfluencePoints += e.Amount
		return StatusResolved, nil

	case effect.GainAttack:
		amount := e.Amount
		for _, m := range modifier.OfKind(r.g.ActiveModifiers.ForPlayer(p.ID), modifier.KindAttackBonus) {
			if m.TargetElement == "" || m.TargetElement == string(e.Element) {
				amount += m.Amount
			}
		}
		p.CombatAccumulator = p.CombatAccumulator.AddAttack(e.CombatType, e.Element, amount)
		return StatusResolved, nil

	case effect.GainBlock:
		p.CombatAccumulator = p.CombatAccumulator.AddBlock(e.Element, e.Amount)
		return StatusResolved, nil

	case effect.GainHealing:
		r.heal(p, e.Amount)
		return StatusResolved, nil

	case effect.GainMana:
		p.PureMana = append(p.PureMana, state.PureManaToken{Color: e.Color, Source: e.Source})
		return StatusResolved, nil

	case effect.GainCrystal:
		r.gainCrystal(p, e.Color, e.Amount)
		return StatusResolved, nil

	case effect.DrawCards:
		r.draw(p, e.Count)
		return StatusResolved, nil

	case effect.GainFame:
		r.gainFame(p, e.Amount)
		return StatusResolved, nil

	case effect.GainReputation:
		r.gainReputation(p, e.Amount)
		return StatusResolved, nil

	case effect.ApplyModifier:
		r.installModifier(e.Spec)
		return StatusResolved, nil

	case effect.Conditional:
		if r.evalPredicate(e.Predicate) {
			return r.resolve(e.Then)
		}
		if e.Else != nil {
			return r.resolve(e.Else)
		}
		return StatusResolved, nil

	case effect.Choice:
		return r.resolveChoice(e)

	case effect.Compound:
		return r.resolveCompound(e.Effects)

	case effect.Scaling:
		n := r.scalingCount(e.Basis, p)
		return r.resolve(scaleEffect(e.Base, n))

	case effect.DiscardCost:
		return r.resolveDiscardCost(e)

	case effect.ShapeshiftResolve:
		r.installModifier(modifier.Modifier{
			Kind:     modifier.KindShapeshiftActive,
			Duration: modifier.DurationTurn,
			Scope:    modifier.Scope{Kind: modifier.ScopeSelf},
			Source:   modifier.Source{Kind: modifier.SourceCard, RefValue: r.sourceCardID},
			Description: fmt.Sprintf("shapeshift %s to %s", e.TargetCardID, e.TargetType),
			ShapeshiftCardID: e.TargetCardID,
			ShapeshiftTarget: string(e.TargetType),
			TargetElement:    string(e.Element),
		})
		return StatusResolved, nil

	case effect.ResolveCombatEnemyTarget:
		spec := e.Template
		spec.Scope = modifier.Scope{Kind: modifier.ScopeTargetEnemy, EnemyID: e.EnemyInstanceID}
		r.installModifier(spec)
		return StatusResolved, nil

	case effect.TerrainBasedBlock:
		amount := r.terrainBlock(p)
		p.CombatAccumulator = p.CombatAccumulator.AddBlock(effect.ElementPhysical, amount)
		return StatusResolved, nil

	case effect.DestroyCard:
		r.removeSourceCard(p, true)
		return StatusResolved, nil

	case effect.ThrowAwayCard:
		r.removeSourceCard(p, false)
		return StatusResolved, nil

	case effect.SetAside:
		if card, ok := r.takeSourceCard(p); ok {
			p.TimeBendingSetAside = append(p.TimeBendingSetAside, card)
		}
		return StatusResolved, nil

	case effect.ReturnToDeckPosition:
		if card, ok := r.takeSourceCard(p); ok {
			if e.Top {
				p.Deck = append([]state.CardInstance{card}, p.Deck...)
			} else {
				p.Deck = append(p.Deck, card)
			}
		}
		return StatusResolved, nil

	case effect.ReadyUnit:
		return r.resolveReadyUnit(e)

	case effect.ReadySpecificUnit:
		r.readyUnit(p, e.InstanceID)
		return StatusResolved, nil

	default:
		return "", rpgerr.New(rpgerr.CodeInternal, fmt.Sprintf("resolve: unknown effect %T", eff))
	}
}

// resolveCompound folds effects left to right. On suspension the tail
// is captured onto the freshly-installed pending record.
func (r *run) resolveCompound(effects []effect.Effect) (Status, error) {
	for i, e := range effects {
		status, err := r.resolve(e)
		if err != nil {
			return "", err
		}
		if status != StatusResolved {
			r.deferTail(effects[i+1:])
			return status, nil
		}
	}
	return StatusResolved, nil
}

// deferTail attaches the unresolved tail of a Compound to whichever
// gate the suspension just installed.
func (r *run) deferTail(tail []effect.Effect) {
	if len(tail) == 0 {
		return
	}
	p := r.player()
	cp := append([]effect.Effect(nil), tail...)
	switch {
	case p.Pending.Choice != nil:
		p.Pending.Choice.Remaining = append(p.Pending.Choice.Remaining, cp...)
	case p.Pending.Discard != nil:
		p.Pending.Discard.Remaining = append(p.Pending.Discard.Remaining, cp...)
	case p.Pending.DiscardForAttack != nil:
		p.Pending.DiscardForAttack.Remaining = append(p.Pending.DiscardForAttack.Remaining, cp...)
	case p.Pending.DiscardForCrystal != nil:
		p.Pending.DiscardForCrystal.Remaining = append(p.Pending.DiscardForCrystal.Remaining, cp...)
	}
}

// resolveChoice filters the options down to those currently resolvable,
// auto-resolves per the single-option policy, or installs the gate.
func (r *run) resolveChoice(c effect.Choice) (Status, error) {
	p := r.player()
	var resolvable []effect.ChoiceOption
	for _, opt := range c.Options {
		if CanResolve(r.g, r.tables, r.playerID, opt.Effect) {
			resolvable = append(resolvable, opt)
		}
	}
	if len(resolvable) == 0 {
		return StatusResolved, nil
	}
	if len(resolvable) == 1 && !ContainsSuspension(resolvable[0].Effect) {
		r.rec.Emit(event.New(event.ChoiceResolved, p.ID).
			With("label", resolvable[0].Label).With("auto", true))
		return r.resolve(resolvable[0].Effect)
	}
	p.Pending.Choice = &state.PendingChoice{
		Options:      append([]effect.ChoiceOption(nil), resolvable...),
		SourceCardID: r.sourceCardID,
	}
	r.rec.Emit(event.New(event.ChoiceRequired, p.ID).
		With("options", len(resolvable)).With("sourceCard", r.sourceCardID))
	return StatusRequiresChoice, nil
}

// resolveDiscardCost installs the discard gate, or resolves to nothing
// when the cost cannot be paid and is optional.
func (r *run) resolveDiscardCost(d effect.DiscardCost) (Status, error) {
	p := r.player()
	eligible := 0
	for _, c := range p.Hand {
		if c.ID == r.sourceCardID {
			continue
		}
		if d.FilterWounds && r.isWound(c) {
			continue
		}
		eligible++
	}
	if eligible == 0 {
		return StatusResolved, nil
	}
	var tbc map[mana.Color]effect.Effect
	if d.ThenByColor != nil {
		tbc = make(map[mana.Color]effect.Effect, len(d.ThenByColor))
		for k, v := range d.ThenByColor {
			tbc[k] = v
		}
	}
	p.Pending.Discard = &state.PendingDiscard{
		Count:        d.Count,
		Optional:     d.Optional,
		FilterWounds: d.FilterWounds,
		ColorMatters: d.ColorMatters,
		Then:         d.Then,
		ThenByColor:  tbc,
		AllowNoColor: d.AllowNoColor,
		SourceCardID: r.sourceCardID,
	}
	return StatusRequiresDiscard, nil
}

func (r *run) resolveReadyUnit(e effect.ReadyUnit) (Status, error) {
	p := r.player()
	var candidates []state.UnitInstance
	for _, u := range p.Units {
		if u.State == state.UnitSpent && !u.Wounded && u.Level <= e.MaxLevel {
			candidates = append(candidates, u)
		}
	}
	switch len(candidates) {
	case 0:
		return StatusResolved, nil
	case 1:
		r.readyUnit(p, candidates[0].InstanceID)
		return StatusResolved, nil
	}
	opts := make([]effect.ChoiceOption, len(candidates))
	for i, u := range candidates {
		opts[i] = effect.ChoiceOption{
			Label:  fmt.Sprintf("ready %s", u.Ref.Value),
			Effect: effect.ReadySpecificUnit{InstanceID: u.InstanceID},
		}
	}
	return r.resolveChoice(effect.Choice{Options: opts})
}

func (r *run) readyUnit(p *state.Player, instanceID string) {
	for i := range p.Units {
		if p.Units[i].InstanceID == instanceID {
			p.Units[i].State = state.UnitReady
			r.rec.Emit(event.New(event.UnitReadied, p.ID).With("unit", instanceID))
			return
		}
	}
}

// heal removes wounds hand-first, then discard. Excess is wasted.
func (r *run) heal(p *state.Player, amount int) int {
	healed := 0
	for healed < amount {
		idx := r.findWound(p.Hand)
		if idx >= 0 {
			p.RemovedCards = append(p.RemovedCards, p.Hand[idx])
			p.Hand = append(p.Hand[:idx], p.Hand[idx+1:]...)
			healed++
			r.rec.Emit(event.New(event.WoundHealed, p.ID).With("from", "hand"))
			continue
		}
		idx = r.findWound(p.Discard)
		if idx >= 0 {
			p.RemovedCards = append(p.RemovedCards, p.Discard[idx])
			p.Discard = append(p.Discard[:idx], p.Discard[idx+1:]...)
			healed++
			r.rec.Emit(event.New(event.WoundHealed, p.ID).With("from", "discard"))
			continue
		}
		break
	}
	return healed
}

func (r *run) findWound(cards []state.CardInstance) int {
	for i, c := range cards {
		if r.isWound(c) {
			return i
		}
	}
	return -1
}

func (r *run) isWound(c state.CardInstance) bool {
	card, ok := r.tables.Card(c.Ref)
	return ok && card.IsWound
}

func (r *run) gainCrystal(p *state.Player, color mana.Color, amount int) {
	if !mana.IsBasic(color) {
		// Wild colors never crystallize; they arrive as pure mana.
		for i := 0; i < amount; i++ {
			p.PureMana = append(p.PureMana, state.PureManaToken{Color: color, Source: effect.ManaOverflow})
		}
		return
	}
	newCount, overflow := mana.AddCrystal(p.Crystals[color], amount)
	gained := newCount - p.Crystals[color]
	p.Crystals[color] = newCount
	if gained > 0 {
		r.rec.Emit(event.New(event.CrystalGained, p.ID).
			With("color", string(color)).With("amount", gained))
	}
	for i := 0; i < overflow; i++ {
		p.PureMana = append(p.PureMana, state.PureManaToken{Color: color, Source: effect.ManaOverflow})
		r.rec.Emit(event.New(event.CrystalConverted, p.ID).With("color", string(color)))
	}
}

// draw moves up to count cards from deck to hand. No mid-round
// reshuffle: an empty deck simply stops the draw.
func (r *run) draw(p *state.Player, count int) {
	for i := 0; i < count && len(p.Deck) > 0; i++ {
		card := p.Deck[0]
		p.Deck = p.Deck[1:]
		p.Hand = append(p.Hand, card)
		r.rec.Emit(event.New(event.CardDrawn, p.ID).With("card", card.ID))
	}
}

func (r *run) gainFame(p *state.Player, amount int) {
	if amount == 0 {
		return
	}
	p.Fame += amount
	if p.Fame < 0 {
		p.Fame = 0
	}
	if amount > 0 {
		r.rec.Emit(event.New(event.FameGained, p.ID).With("amount", amount))
	} else {
		r.rec.Emit(event.New(event.FameLost, p.ID).With("amount", -amount))
	}
	r.processLevelUps(p)
}

// reputation is clamped to the board's [-7, +7] track.
func (r *run) gainReputation(p *state.Player, amount int) {
	if amount == 0 {
		return
	}
	p.Reputation += amount
	if p.Reputation > 7 {
		p.Reputation = 7
	}
	if p.Reputation < -7 {
		p.Reputation = -7
	}
	r.rec.Emit(event.New(event.ReputationChanged, p.ID).With("reputation", p.Reputation))
}

// installModifier stamps identity and ownership onto a modifier spec
// and inserts it. The ID is derived from replay-stable counters so two
// replays mint identical IDs.
func (r *run) installModifier(spec modifier.Modifier) {
	spec.ID = identifier.MustNew(
		fmt.Sprintf("mod-%s-%d-%d", r.playerID, r.g.RNG.Counter, r.g.ActiveModifiers.Len()),
		"mageknight", "modifier",
	).String()
	if spec.CreatedByPlayerID == "" {
		spec.CreatedByPlayerID = r.playerID
	}
	if spec.Scope.Kind == "" {
		spec.Scope = modifier.Scope{Kind: modifier.ScopeSelf}
	}
	r.g.ActiveModifiers = r.g.ActiveModifiers.Add(spec)
}

func (r *run) scalingCount(basis effect.ScalingBasis, p *state.Player) int {
	switch basis {
	case effect.PerEnemyDefeated:
		return len(p.EnemiesDefeatedThisTurn)
	case effect.PerSpellCast:
		return len(p.SpellColorsCastThisTurn)
	case effect.PerWoundInHand:
		n := 0
		for _, c := range p.Hand {
			if r.isWound(c) {
				n++
			}
		}
		return n
	case effect.PerUnitOwned:
		return len(p.Units)
	}
	return 0
}

// terrainBlock maps the player's current terrain to a block amount.
func (r *run) terrainBlock(p *state.Player) int {
	hex, ok := r.g.Map.HexAt(p.Position)
	if !ok {
		return 0
	}
	switch hex.Terrain {
	case state.TerrainPlains, state.TerrainCity:
		return 2
	case state.TerrainHills, state.TerrainForest, state.TerrainDesert:
		return 3
	case state.TerrainWasteland, state.TerrainSwamp:
		return 4
	default:
		return 0
	}
}

// takeSourceCard pulls the source card out of the play area (or hand,
// for effects resolved before staging).
func (r *run) takeSourceCard(p *state.Player) (state.CardInstance, bool) {
	for i, c := range p.PlayArea {
		if c.ID == r.sourceCardID {
			p.PlayArea = append(p.PlayArea[:i], p.PlayArea[i+1:]...)
			return c, true
		}
	}
	for i, c := range p.Hand {
		if c.ID == r.sourceCardID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return c, true
		}
	}
	return state.CardInstance{}, false
}

func (r *run) removeSourceCard(p *state.Player, destroyed bool) {
	card, ok := r.takeSourceCard(p)
	if !ok {
		return
	}
	p.RemovedCards = append(p.RemovedCards, card)
	if destroyed {
		r.rec.Emit(event.New(event.CardDestroyed, p.ID).With("card", card.ID))
	}
}

func (r *run) evalPredicate(pred effect.Predicate) bool {
	p := r.player()
	switch q := pred.(type) {
	case effect.InCombat:
		return r.g.Combat != nil && r.g.Combat.PlayerID == p.ID
	case effect.InCombatPhase:
		return r.g.Combat != nil && r.g.Combat.PlayerID == p.ID &&
			string(r.g.Combat.Phase) == q.Phase
	case effect.IsDay:
		return r.g.IsDay()
	case effect.IsNight:
		return !r.g.IsDay()
	case effect.HasWounds:
		return r.findWound(p.Hand) >= 0
	case effect.EnemiesDefeatedAtLeast:
		return len(p.EnemiesDefeatedThisTurn) >= q.N
	case effect.OnFortifiedSite:
		hex, ok := r.g.Map.HexAt(p.Position)
		return ok && hex.Site != nil && hex.Site.Fortified
	}
	return false
}

// scaleEffect multiplies the numeric payload of base by n. Non-numeric
// effects scale by repetition inside a Compound.
func scaleEffect(base effect.Effect, n int) effect.Effect {
	if n == 0 {
		return effect.Compound{}
	}
	switch e := base.(type) {
	case effect.GainMove:
		return effect.GainMove{Amount: e.Amount * n}
	case effect.GainInfluence:
		return effect.GainInfluence{Amount: e.Amount * n}
	case effect.GainAttack:
		return effect.GainAttack{Amount: e.Amount * n, Element: e.Element, CombatType: e.CombatType}
	case effect.GainBlock:
		return effect.GainBlock{Amount: e.Amount * n, Element: e.Element}
	case effect.GainHealing:
		return effect.GainHealing{Amount: e.Amount * n}
	case effect.GainFame:
		return effect.GainFame{Amount: e.Amount * n}
	case effect.DrawCards:
		return effect.DrawCards{Count: e.Count * n}
	default:
		reps := make([]effect.Effect, n)
		for i := range reps {
			reps[i] = base
		}
		return effect.Compound{Effects: reps}
	}
}
