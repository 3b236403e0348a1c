package game

import (
	"gtoholdem/internal/deck"
)

// PlayerView is an immutable view of one player inside a Snapshot.
type PlayerView struct {
	ID        string
	Name      string
	Seat      int
	Chips     int
	HoleCards []deck.Card
	Bet       int
	TotalBet  int
	Status    PlayerStatus
	IsDealer  bool
}

// Snapshot is an immutable copy of the game state, emitted to observers
// after every mutating step. Each snapshot is a fresh value; mutating one
// has no effect on the engine.
type Snapshot struct {
	GameID     string
	HandID     string
	HandNumber int
	Phase      Phase

	Players   []PlayerView
	Community []deck.Card
	Pots      []Pot

	CurrentBet int
	LastRaise  int
	DealerSeat int
	SBSeat     int
	BBSeat     int
	SmallBlind int
	BigBlind   int

	// ToAct and LegalActions are set while a decision is pending.
	AwaitingInput bool
	ToAct         string
	LegalActions  []LegalAction

	ActionLog []ActionRecord
	Winners   []Winner
}

// PlayerView returns the view of the player with the given id.
func (s Snapshot) PlayerView(id string) (PlayerView, bool) {
	for _, pv := range s.Players {
		if pv.ID == id {
			return pv, true
		}
	}
	return PlayerView{}, false
}

// redactFor blanks every player's hole cards except the named player's,
// so agents only ever see their own hand.
func (s *Snapshot) redactFor(id string) {
	for i := range s.Players {
		if s.Players[i].ID != id {
			s.Players[i].HoleCards = nil
		}
	}
}

// PotTotal returns the total chips across the snapshot's pots.
func (s Snapshot) PotTotal() int {
	return PotTotal(s.Pots)
}

// snapshot builds an immutable copy of the current state. toAct and legal
// are non-zero only while a decision is outstanding.
func (st *GameState) snapshot(toAct string, legal []LegalAction) Snapshot {
	snap := Snapshot{
		GameID:        st.GameID,
		HandID:        st.HandID,
		HandNumber:    st.HandNumber,
		Phase:         st.Phase,
		CurrentBet:    st.CurrentBet,
		LastRaise:     st.LastRaise,
		DealerSeat:    st.DealerSeat,
		SBSeat:        st.SBSeat,
		BBSeat:        st.BBSeat,
		SmallBlind:    st.SmallBlind,
		BigBlind:      st.BigBlind,
		AwaitingInput: toAct != "",
		ToAct:         toAct,
	}

	snap.Players = make([]PlayerView, len(st.Players))
	for i, p := range st.Players {
		snap.Players[i] = PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			Seat:      p.Seat,
			Chips:     p.Chips,
			HoleCards: append([]deck.Card(nil), p.HoleCards...),
			Bet:       p.Bet,
			TotalBet:  p.TotalBet,
			Status:    p.Status,
			IsDealer:  p.IsDealer,
		}
	}

	snap.Community = append([]deck.Card(nil), st.Community...)
	snap.Pots = make([]Pot, len(st.Pots))
	for i, pot := range st.Pots {
		snap.Pots[i] = Pot{
			Amount:   pot.Amount,
			Eligible: append([]string(nil), pot.Eligible...),
		}
	}
	snap.LegalActions = append([]LegalAction(nil), legal...)
	snap.ActionLog = append([]ActionRecord(nil), st.ActionLog...)
	snap.Winners = append([]Winner(nil), st.Winners...)

	return snap
}
