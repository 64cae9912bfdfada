package resolve

import (
	"fmt"

	"github.com/mage-knight-digital/MageKnight-sub011/rpgerr"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/catalog"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/effect"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/event"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
)

// ResumeChoice resolves an open pendingChoice gate with the selected
// option, then continues any deferred Compound tail.
func ResumeChoice(g state.GameState, tables catalog.Tables, playerID string, choiceIndex int) (Result, error) {
	r := newRun(g, tables, playerID, "")
	p := r.player()
	if p == nil || p.Pending.Choice == nil {
		return Result{}, rpgerr.New(rpgerr.CodeInternal, "resume: no pending choice")
	}
	gate := p.Pending.Choice
	if choiceIndex < 0 || choiceIndex >= len(gate.Options) {
		return Result{}, rpgerr.Newf(rpgerr.CodeInvalidTarget, "resume: choice index %d out of range", choiceIndex)
	}
	opt := gate.Options[choiceIndex]
	tail := append([]effect.Effect(nil), gate.Remaining...)
	r.sourceCardID = gate.SourceCardID
	p.Pending.Choice = nil

	r.rec.Emit(event.New(event.ChoiceResolved, p.ID).
		With("index", choiceIndex).With("label", opt.Label))

	status, err := r.resolveCompound(append([]effect.Effect{opt.Effect}, tail...))
	if err != nil {
		return Result{}, err
	}
	return r.finish(status), nil
}

// ResumeDiscard resolves an open pendingDiscard gate with the selected
// cards. An empty selection on an optional cost cancels the payment and
// continues the deferred tail only.
func ResumeDiscard(g state.GameState, tables catalog.Tables, playerID string, cardIDs []string) (Result, error) {
	r := newRun(g, tables, playerID, "")
	p := r.player()
	if p == nil || p.Pending.Discard == nil {
		return Result{}, rpgerr.New(rpgerr.CodeInternal, "resume: no pending discard")
	}
	gate := p.Pending.Discard
	tail := append([]effect.Effect(nil), gate.Remaining...)
	r.sourceCardID = gate.SourceCardID
	p.Pending.Discard = nil

	var followUps []effect.Effect
	for _, id := range cardIDs {
		card, err := r.discardFromHand(p, id)
		if err != nil {
			return Result{}, err
		}
		def, ok := tables.Card(card.Ref)
		if !ok {
			return Result{}, rpgerr.Newf(rpgerr.CodeInternal, "resume: unknown card %s", card.Ref)
		}
		if gate.FilterWounds && def.IsWound {
			return Result{}, rpgerr.New(rpgerr.CodeInvalidTarget, "resume: wounds cannot pay this cost")
		}
		if gate.ColorMatters {
			then, found := gate.ThenByColor[def.Color]
			if !found {
				if !gate.AllowNoColor {
					return Result{}, rpgerr.Newf(rpgerr.CodeInvalidTarget, "resume: no effect for color %s", def.Color)
				}
				continue
			}
			followUps = append(followUps, then)
			continue
		}
		if gate.Then != nil {
			followUps = append(followUps, gate.Then)
		}
	}

	status, err := r.resolveCompound(append(followUps, tail...))
	if err != nil {
		return Result{}, err
	}
	return r.finish(status), nil
}

// ResumeDiscardForAttack converts each discarded card into attack per
// the gate's rate.
func ResumeDiscardForAttack(g state.GameState, tables catalog.Tables, playerID string, cardIDs []string) (Result, error) {
	r := newRun(g, tables, playerID, "")
	p := r.player()
	if p == nil || p.Pending.DiscardForAttack == nil {
		return Result{}, rpgerr.New(rpgerr.CodeInternal, "resume: no pending discard-for-attack")
	}
	gate := p.Pending.DiscardForAttack
	tail := append([]effect.Effect(nil), gate.Remaining...)
	r.sourceCardID = gate.SourceCardID
	p.Pending.DiscardForAttack = nil

	if gate.MaxCards > 0 && len(cardIDs) > gate.MaxCards {
		return Result{}, rpgerr.Newf(rpgerr.CodeInvalidTarget, "resume: at most %d cards", gate.MaxCards)
	}
	var followUps []effect.Effect
	for _, id := range cardIDs {
		if _, err := r.discardFromHand(p, id); err != nil {
			return Result{}, err
		}
		followUps = append(followUps, effect.GainAttack{
			Amount:     gate.PerCardAmount,
			Element:    gate.Element,
			CombatType: gate.CombatType,
		})
	}
	status, err := r.resolveCompound(append(followUps, tail...))
	if err != nil {
		return Result{}, err
	}
	return r.finish(status), nil
}

// ResumeDiscardForCrystal discards one card and grants a crystal of its
// color.
func ResumeDiscardForCrystal(g state.GameState, tables catalog.Tables, playerID, cardID string) (Result, error) {
	r := newRun(g, tables, playerID, "")
	p := r.player()
	if p == nil || p.Pending.DiscardForCrystal == nil {
		return Result{}, rpgerr.New(rpgerr.CodeInternal, "resume: no pending discard-for-crystal")
	}
	gate := p.Pending.DiscardForCrystal
	tail := append([]effect.Effect(nil), gate.Remaining...)
	r.sourceCardID = gate.SourceCardID
	p.Pending.DiscardForCrystal = nil

	card, err := r.discardFromHand(p, cardID)
	if err != nil {
		return Result{}, err
	}
	def, ok := tables.Card(card.Ref)
	if !ok || def.IsWound || !mana.IsBasic(def.Color) {
		return Result{}, rpgerr.New(rpgerr.CodeInvalidTarget, "resume: card has no crystal color")
	}
	followUps := []effect.Effect{effect.GainCrystal{Color: def.Color, Amount: 1}}
	status, rerr := r.resolveCompound(append(followUps, tail...))
	if rerr != nil {
		return Result{}, rerr
	}
	return r.finish(status), nil
}

func (r *run) discardFromHand(p *state.Player, cardID string) (state.CardInstance, error) {
	for i, c := range p.Hand {
		if c.ID == cardID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			p.Discard = append(p.Discard, c)
			r.rec.Emit(event.New(event.CardDiscarded, p.ID).With("card", c.ID))
			return c, nil
		}
	}
	return state.CardInstance{}, rpgerr.New(rpgerr.CodeInvalidTarget, fmt.Sprintf("resume: card %s not in hand", cardID))
}
