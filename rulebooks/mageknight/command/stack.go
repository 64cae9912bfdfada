// Package command turns validated player actions into executable
// commands and maintains the per-game command log with its undo
// checkpoint. Reversible commands append to the log with the state they
// started from; irreversible commands (tile reveals, token draws, card
// draws, die rolls) clear the log and install a checkpoint with a
// reason code, the boundary past which undo is refused.
package command

import (
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/event"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
)

// Command is one executable state mutation.
type Command struct {
	// Type is the action tag this command executes.
	Type string
	// PlayerID is the acting player.
	PlayerID string
	// Reversible declares (never detects) whether undo may cross this
	// command.
	Reversible bool
	// CheckpointReason names why an irreversible command forbids undo,
	// for the UNDO_CHECKPOINT_SET diagnostic.
	CheckpointReason string
	// Run executes the command against a state.
	Run func(state.GameState) (state.GameState, []event.Event, error)
}

// entry pairs an executed reversible command with the state it ran
// against; undo restores that snapshot. GameState is an immutable value
// with structural sharing, so holding it is cheap and exact.
type entry struct {
	cmd    Command
	before state.GameState
}

// Stack is the per-game command log plus nullable checkpoint.
type Stack struct {
	entries          []entry
	checkpointReason string
}

// Execute runs cmd, records it, and returns the resulting state and
// events. An irreversible command clears the log and installs its
// checkpoint; the UNDO_CHECKPOINT_SET event reports that to clients.
func (s *Stack) Execute(g state.GameState, cmd Command) (state.GameState, []event.Event, error) {
	next, evts, err := cmd.Run(g)
	if err != nil {
		return g, nil, err
	}
	if cmd.Reversible {
		s.entries = append(s.entries, entry{cmd: cmd, before: g})
		return next, evts, nil
	}
	s.entries = nil
	s.checkpointReason = cmd.CheckpointReason
	if s.checkpointReason == "" {
		s.checkpointReason = cmd.Type
	}
	evts = append(evts, event.New(event.UndoCheckpointSet, cmd.PlayerID).
		With("reason", s.checkpointReason))
	return next, evts, nil
}

// UndoFailure names why an undo is refused.
type UndoFailure string

const (
	UndoOK                UndoFailure = ""
	UndoNothingToUndo     UndoFailure = "nothing_to_undo"
	UndoCheckpointReached UndoFailure = "checkpoint_reached"
	UndoNotYourTurn       UndoFailure = "not_your_turn"
)

// CanUndo reports whether playerID may undo the latest command.
func (s *Stack) CanUndo(playerID string) UndoFailure {
	if len(s.entries) == 0 {
		if s.checkpointReason != "" {
			return UndoCheckpointReached
		}
		return UndoNothingToUndo
	}
	if s.entries[len(s.entries)-1].cmd.PlayerID != playerID {
		return UndoNotYourTurn
	}
	return UndoOK
}

// Undo pops the latest entry and returns its pre-execution state.
func (s *Stack) Undo(playerID string) (state.GameState, []event.Event, UndoFailure) {
	if failure := s.CanUndo(playerID); failure != UndoOK {
		return state.GameState{}, nil, failure
	}
	last := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	evts := []event.Event{
		event.New(event.CardPlayUndone, playerID).With("command", last.cmd.Type),
	}
	return last.before, evts, UndoOK
}

// Depth reports how many commands are currently undoable.
func (s *Stack) Depth() int {
	return len(s.entries)
}

// Reset clears the log and checkpoint, used at turn boundaries.
func (s *Stack) Reset() {
	s.entries = nil
	s.checkpointReason = ""
}
