package game

import (
	"gtoholdem/internal/deck"
)

// PlayerStatus represents a player's standing within the current hand.
type PlayerStatus int

const (
	StatusActive PlayerStatus = iota
	StatusFolded
	StatusAllIn
	StatusBusted
	StatusSittingOut
)

// String returns the string representation of a player status
func (s PlayerStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusFolded:
		return "folded"
	case StatusAllIn:
		return "all-in"
	case StatusBusted:
		return "busted"
	case StatusSittingOut:
		return "sitting out"
	default:
		return "unknown"
	}
}

// Player represents a seat at the table. Players are owned exclusively by
// the engine; all mutation happens through engine-controlled transitions.
type Player struct {
	ID        string
	Name      string
	Seat      int
	Chips     int
	HoleCards []deck.Card
	Bet       int // Chips committed on the current street
	TotalBet  int // Chips committed across the whole hand
	Acted     bool
	Status    PlayerStatus
	IsDealer  bool
}

// InHand returns true if the player still holds live cards this hand.
func (p *Player) InHand() bool {
	return p.Status == StatusActive || p.Status == StatusAllIn
}

// CanAct returns true if the player can make a voluntary decision.
func (p *Player) CanAct() bool {
	return p.Status == StatusActive && p.Chips > 0
}

// resetForHand clears per-hand state. Busted players stay busted.
func (p *Player) resetForHand() {
	p.HoleCards = nil
	p.Bet = 0
	p.TotalBet = 0
	p.Acted = false
	p.IsDealer = false
	if p.Status != StatusBusted && p.Status != StatusSittingOut {
		p.Status = StatusActive
	}
}
