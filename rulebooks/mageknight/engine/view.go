package engine

import (
	"github.com/mage-knight-digital/MageKnight-sub011/core"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/mana"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
)

// ClientGameState is the hidden-information-stripped view sent to one
// player. Other players' hands and all face-down piles are replaced by
// cardinalities and the RNG is left out; everything a client can legitimately see
// is carried whole.
type ClientGameState struct {
	PerspectivePlayerID string

	RoundNumber        int
	TimeOfDay          state.TimeOfDay
	RoundPhase         state.RoundPhase
	TurnOrder          []string
	CurrentPlayerIndex int

	CurrentTacticSelector string
	AvailableTactics      []*core.Ref

	You     ClientSelf
	Others  []ClientOpponent
	Map     state.Map
	Source  state.Source
	Offers  state.Offers
	Cities  []state.City
	Combat  *state.CombatState

	EnemyTokenCounts map[string]int
	DeckCounts       map[string]int
	ScenarioEndTriggered bool
	EndOfRoundAnnouncedBy string
}

// ClientSelf is the perspective player's full visible state.
type ClientSelf struct {
	Player    state.Player
	DeckCount int
}

// ClientOpponent is another player reduced to public information.
type ClientOpponent struct {
	ID              string
	Hero            *core.Ref
	Fame            int
	Reputation      int
	Level           int
	Armor           int
	HandCount       int
	DeckCount       int
	DiscardCount    int
	Crystals        map[mana.Color]int
	Units           []state.UnitInstance
	Position        state.HexKey
	PlayArea        []state.CardInstance
	SelectedTactic  *core.Ref
	KnockedOut      bool
}

// ToClientView strips hidden information for one perspective. It is
// pure: calling it twice for the same (state, player) yields deep-equal
// views.
func (e *Engine) ToClientView(g state.GameState, perspectivePlayerID string) ClientGameState {
	snapshot := g.Clone()

	view := ClientGameState{
		PerspectivePlayerID:   perspectivePlayerID,
		RoundNumber:           snapshot.RoundNumber,
		TimeOfDay:             snapshot.TimeOfDay,
		RoundPhase:            snapshot.RoundPhase,
		TurnOrder:             snapshot.TurnOrder,
		CurrentPlayerIndex:    snapshot.CurrentPlayerIndex,
		CurrentTacticSelector: snapshot.CurrentTacticSelector,
		AvailableTactics:      snapshot.AvailableTactics,
		Map:                   snapshot.Map,
		Source:                snapshot.Source,
		Offers:                snapshot.Offers,
		Cities:                snapshot.Cities,
		Combat:                snapshot.Combat,
		ScenarioEndTriggered:  snapshot.ScenarioEndTriggered,
		EndOfRoundAnnouncedBy: snapshot.EndOfRoundAnnouncedBy,
		EnemyTokenCounts:      map[string]int{},
		DeckCounts:            map[string]int{},
	}

	// Unrevealed garrisons stay face-down in the view.
	for i := range view.Map.Hexes {
		if site := view.Map.Hexes[i].Site; site != nil && len(site.GarrisonTokens) > 0 {
			site.GarrisonTokens = nil
		}
	}

	for _, pile := range snapshot.EnemyTokens {
		view.EnemyTokenCounts[pile.Color] = len(pile.Pile.Draw)
	}
	view.DeckCounts["advanced-actions"] = len(snapshot.Decks.AdvancedActions)
	view.DeckCounts["spells"] = len(snapshot.Decks.Spells)
	view.DeckCounts["units"] = len(snapshot.Decks.Units)
	view.DeckCounts["artifacts"] = len(snapshot.Decks.Artifacts)
	view.DeckCounts["countryside-tiles"] = len(snapshot.Map.CountrysideDeck)
	view.DeckCounts["core-tiles"] = len(snapshot.Map.CoreDeck)
	view.Map.CountrysideDeck = nil
	view.Map.CoreDeck = nil

	for _, p := range snapshot.Players {
		if p.ID == perspectivePlayerID {
			self := p.Clone()
			deckCount := len(self.Deck)
			self.Deck = nil
			view.You = ClientSelf{Player: self, DeckCount: deckCount}
			continue
		}
		view.Others = append(view.Others, ClientOpponent{
			ID:             p.ID,
			Hero:           p.Hero,
			Fame:           p.Fame,
			Reputation:     p.Reputation,
			Level:          p.Level,
			Armor:          p.Armor,
			HandCount:      len(p.Hand),
			DeckCount:      len(p.Deck),
			DiscardCount:   len(p.Discard),
			Crystals:       p.Clone().Crystals,
			Units:          append([]state.UnitInstance(nil), p.Units...),
			Position:       p.Position,
			PlayArea:       append([]state.CardInstance(nil), p.PlayArea...),
			SelectedTactic: p.SelectedTactic,
			KnockedOut:     p.KnockedOut,
		})
	}
	return view
}
