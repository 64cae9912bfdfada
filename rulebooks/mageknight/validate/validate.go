package validate

import (
	"github.com/mage-knight-digital/MageKnight-sub011/gamectx"
	"github.com/mage-knight-digital/MageKnight-sub011/rpgerr"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/action"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/catalog"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
)

// Context carries everything a validator may inspect. Validators treat
// every field as read-only.
type Context struct {
	State    *state.GameState
	Tables   catalog.Tables
	Game     *gamectx.GameContext
	PlayerID string
	Action   action.Action
}

// Player returns the acting player, or nil.
func (c *Context) Player() *state.Player {
	return c.State.PlayerByID(c.PlayerID)
}

// KnowsPlayer reports whether a player ID resolves, preferring the
// game-context registry (which a host may scope differently from raw
// state) and falling back to the state itself.
func (c *Context) KnowsPlayer(id string) bool {
	if c.Game != nil && c.Game.Players().GetPlayer(id) != nil {
		return true
	}
	return c.State.PlayerByID(id) != nil
}

// Validator is one pure predicate over an intent. A nil return means
// valid; the first non-nil error in a chain wins.
type Validator func(*Context) *rpgerr.Error

// Check runs the registered chain for the action's type.
func Check(ctx *Context) *rpgerr.Error {
	for _, v := range chainFor(ctx.Action) {
		if err := v(ctx); err != nil {
			return err
		}
	}
	return nil
}

// chainFor maps an action to its ordered validator list. Registration
// is a type switch rather than a map so adding an action without a
// chain is a compile-visible gap.
func chainFor(a action.Action) []Validator {
	switch a.(type) {
	case action.SelectTactic:
		return []Validator{playerExists, tacticsPhase, isTacticSelector, tacticAvailable}
	case action.Move:
		return []Validator{playerExists, notKnockedOut, isCurrentPlayer, noOpenGate, notInCombat, moveTargetValid}
	case action.Explore:
		return []Validator{playerExists, notKnockedOut, isCurrentPlayer, noOpenGate, notInCombat, exploreValid}
	case action.PlayCard:
		return []Validator{playerExists, notKnockedOut, isCurrentPlayer, noOpenGate, cardInHand, cardNotWound, cardPlayable, manaPaymentValid}
	case action.PlayCardSideways:
		return []Validator{playerExists, notKnockedOut, isCurrentPlayer, noOpenGate, cardInHand, cardNotWound, sidewaysContextValid}
	case action.ResolveChoice:
		// A choice gate can open during tactics selection (tactic
		// decisions), so this chain does not demand the player-turns
		// phase.
		return []Validator{playerExists, mayResolveGate, hasGate(state.GateChoice), choiceIndexValid}
	case action.ResolveDiscard:
		return []Validator{playerExists, isCurrentPlayer, hasGate(state.GateDiscard), discardSelectionValid}
	case action.ResolveDiscardForAttack:
		return []Validator{playerExists, isCurrentPlayer, hasGate(state.GateDiscardForAttack), discardCardsInHand}
	case action.ResolveDiscardForCrystal:
		return []Validator{playerExists, isCurrentPlayer, hasGate(state.GateDiscardForCrystal), crystalDiscardValid}
	case action.ResolveDeepMine:
		return []Validator{playerExists, isCurrentPlayer, hasGate(state.GateDeepMine), deepMineColorValid}
	case action.ResolveGladeWound:
		return []Validator{playerExists, isCurrentPlayer, hasGate(state.GateGladeWound), gladeSelectionValid}
	case action.ResolveCrystalJoyReclaim:
		return []Validator{playerExists, isCurrentPlayer, hasGate(state.GateCrystalJoy)}
	case action.ResolveBookOfWisdom:
		return []Validator{playerExists, isCurrentPlayer, hasGate(state.GateBookOfWisdom)}
	case action.ResolveMeditation:
		return []Validator{playerExists, isCurrentPlayer, hasGate(state.GateMeditation)}
	case action.ChooseLevelUpRewards:
		return []Validator{playerExists, isCurrentPlayer, hasGate(state.GateLevelUp), levelUpChoiceValid}
	case action.EnterCombat:
		return []Validator{playerExists, notKnockedOut, isCurrentPlayer, noOpenGate, notInCombat, combatSiteHere}
	case action.EndCombatPhase:
		return []Validator{playerExists, isCurrentPlayer, inCombat, combatPhaseEndable}
	case action.DeclareBlock:
		return []Validator{playerExists, isCurrentPlayer, inCombat, inCombatPhase(state.CombatBlock), blockTargetValid, blockSufficient}
	case action.DeclareAttack:
		return []Validator{playerExists, isCurrentPlayer, inCombat, attackPhaseValid, attackTargetsValid, attackSufficient}
	case action.AssignDamage:
		return []Validator{playerExists, isCurrentPlayer, inCombat, inCombatPhase(state.CombatAssignDamage), damageTargetValid}
	case action.RecruitUnit:
		return []Validator{playerExists, notKnockedOut, isCurrentPlayer, noOpenGate, notInCombat, unitRecruitValid}
	case action.ActivateUnit:
		return []Validator{playerExists, isCurrentPlayer, noOpenGate, unitActivationValid}
	case action.UseSkill:
		return []Validator{playerExists, isCurrentPlayer, noOpenGate, skillUsable}
	case action.ReturnInteractiveSkill:
		return []Validator{playerExists, isCurrentPlayer, skillInCenter}
	case action.DeclareRest:
		return []Validator{playerExists, notKnockedOut, isCurrentPlayer, noOpenGate, notInCombat, restDeclarable}
	case action.CompleteRest:
		return []Validator{playerExists, isCurrentPlayer, hasGate(state.GateRest), restSelectionValid}
	case action.ProposeCooperativeAssault:
		return []Validator{playerExists, isCurrentPlayer, noOpenGate, notInCombat, coopProposalValid}
	case action.RespondToCooperativeProposal:
		return []Validator{playerExists, coopResponseValid}
	case action.CancelCooperativeProposal:
		return []Validator{playerExists, coopCancelValid}
	case action.EndTurn:
		return []Validator{playerExists, isCurrentPlayer, noOpenGate, notInCombat}
	case action.Undo:
		return []Validator{playerExists, isCurrentPlayer}
	case action.AnnounceEndOfRound:
		return []Validator{playerExists, isCurrentPlayer, noOpenGate, notInCombat, endOfRoundNotAnnounced}
	}
	return []Validator{func(*Context) *rpgerr.Error {
		return rpgerr.New(rpgerr.CodeNotAllowed, "unknown action type")
	}}
}

func playerExists(c *Context) *rpgerr.Error {
	if c.Player() == nil {
		return rpgerr.Newf(CodePlayerNotFound, "player %s not in this game", c.PlayerID)
	}
	return nil
}

func notKnockedOut(c *Context) *rpgerr.Error {
	if c.Player().KnockedOut {
		return rpgerr.New(CodeKnockedOut, "player is knocked out for this turn")
	}
	return nil
}

func isCurrentPlayer(c *Context) *rpgerr.Error {
	if c.State.RoundPhase != state.PhasePlayerTurns {
		return rpgerr.New(CodeWrongPhase, "not in the player-turns phase")
	}
	cur := c.State.CurrentPlayer()
	if cur == nil || cur.ID != c.PlayerID {
		return rpgerr.New(CodeNotYourTurn, "it is not this player's turn")
	}
	return nil
}

// mayResolveGate admits the current player during player turns, or any
// player holding an open gate during tactics selection.
func mayResolveGate(c *Context) *rpgerr.Error {
	if c.State.RoundPhase == state.PhaseTacticsSelection {
		if c.Player().Pending.ActiveGate() != state.GateNone {
			return nil
		}
		return rpgerr.New(CodeNoPendingResolution, "nothing to resolve")
	}
	return isCurrentPlayer(c)
}

func tacticsPhase(c *Context) *rpgerr.Error {
	if c.State.RoundPhase != state.PhaseTacticsSelection {
		return rpgerr.New(CodeWrongPhase, "tactics are only selected during tactics selection")
	}
	return nil
}

func isTacticSelector(c *Context) *rpgerr.Error {
	if c.State.CurrentTacticSelector != c.PlayerID {
		return rpgerr.New(CodeNotYourTacticPick, "another player picks first")
	}
	return nil
}

func tacticAvailable(c *Context) *rpgerr.Error {
	a := c.Action.(action.SelectTactic)
	for _, t := range c.State.AvailableTactics {
		if t.String() == a.TacticRef.String() {
			return nil
		}
	}
	return rpgerr.Newf(CodeTacticNotAvailable, "tactic %s is not available", a.TacticRef)
}

// noOpenGate blocks gameplay actions while a pending gate awaits its
// dedicated resolve action.
func noOpenGate(c *Context) *rpgerr.Error {
	if g := c.Player().Pending.ActiveGate(); g != state.GateNone {
		return rpgerr.Newf(CodePendingResolution, "resolve the pending %s first", g)
	}
	return nil
}

// hasGate requires the given gate to be the player's active one.
func hasGate(kind state.GateKind) Validator {
	return func(c *Context) *rpgerr.Error {
		if c.Player().Pending.ActiveGate() != kind {
			return rpgerr.Newf(CodeNoPendingResolution, "no pending %s to resolve", kind)
		}
		return nil
	}
}

func notInCombat(c *Context) *rpgerr.Error {
	if c.State.Combat != nil && c.State.Combat.PlayerID == c.PlayerID {
		return rpgerr.New(CodeWrongPhase, "not available during combat")
	}
	return nil
}

func inCombat(c *Context) *rpgerr.Error {
	if c.State.Combat == nil || c.State.Combat.PlayerID != c.PlayerID {
		return rpgerr.New(CodeNotInCombat, "no combat in progress for this player")
	}
	return nil
}

func inCombatPhase(phase state.CombatPhase) Validator {
	return func(c *Context) *rpgerr.Error {
		if c.State.Combat.Phase != phase {
			return rpgerr.Newf(CodeWrongCombatPhase, "requires the %s phase", phase)
		}
		return nil
	}
}

func endOfRoundNotAnnounced(c *Context) *rpgerr.Error {
	if c.State.EndOfRoundAnnouncedBy != "" {
		return rpgerr.New(CodeEndOfRoundAnnounced, "end of round was already announced")
	}
	if len(c.Player().Deck) > 0 {
		return rpgerr.New(rpgerr.CodeNotAllowed, "end of round can only be announced with an empty deck")
	}
	return nil
}
