package game

import (
	"gtoholdem/internal/deck"
)

// Phase represents the game engine's state machine phase.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseHandInit
	PhasePreFlop
	PhaseFlop
	PhaseTurn
	PhaseRiver
	PhaseShowdown
	PhaseCleanup
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseHandInit:
		return "hand-init"
	case PhasePreFlop:
		return "preflop"
	case PhaseFlop:
		return "flop"
	case PhaseTurn:
		return "turn"
	case PhaseRiver:
		return "river"
	case PhaseShowdown:
		return "showdown"
	case PhaseCleanup:
		return "cleanup"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// IsStreet reports whether the phase is a betting street.
func (p Phase) IsStreet() bool {
	return p >= PhasePreFlop && p <= PhaseRiver
}

// ActionRecord is one entry in the append-only action log.
type ActionRecord struct {
	PlayerID string
	Seat     int
	Street   Phase
	Type     ActionType
	Amount   int // Street-bet level reached for bets/raises, chips moved for calls
}

// GameState is the single mutable engine state. It is owned by the engine
// goroutine; observers only ever see immutable Snapshot values.
type GameState struct {
	GameID     string
	HandID     string
	HandNumber int
	Phase      Phase

	Players   []*Player
	Community []deck.Card
	Pots      []Pot

	CurrentBet int
	LastRaise  int // Last full raise increment; min raise-to = CurrentBet + LastRaise

	DealerSeat int
	SBSeat     int
	BBSeat     int
	SmallBlind int
	BigBlind   int

	ActionLog []ActionRecord
	Winners   []Winner // nil until showdown settles
}

// playerBySeat returns the player at the given seat index.
func (st *GameState) playerBySeat(seat int) *Player {
	for _, p := range st.Players {
		if p.Seat == seat {
			return p
		}
	}
	return nil
}

// PlayerByID returns the player with the given id, or nil.
func (st *GameState) PlayerByID(id string) *Player {
	for _, p := range st.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// unfoldedCount counts players still holding live cards.
func (st *GameState) unfoldedCount() int {
	n := 0
	for _, p := range st.Players {
		if p.InHand() {
			n++
		}
	}
	return n
}

// voluntaryCount counts players who can still make voluntary decisions.
func (st *GameState) voluntaryCount() int {
	n := 0
	for _, p := range st.Players {
		if p.CanAct() {
			n++
		}
	}
	return n
}

// fundedCount counts players able to play another hand.
func (st *GameState) fundedCount() int {
	n := 0
	for _, p := range st.Players {
		if p.Status != StatusBusted && p.Status != StatusSittingOut && p.Chips > 0 {
			n++
		}
	}
	return n
}

// streetActions returns the log entries for the given street of the current
// hand, in order.
func (st *GameState) streetActions(street Phase) []ActionRecord {
	var out []ActionRecord
	for _, rec := range st.ActionLog {
		if rec.Street == street {
			out = append(out, rec)
		}
	}
	return out
}
