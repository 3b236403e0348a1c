package ranges

import (
	"gtoholdem/internal/game"
)

// Position is a seat's strategic location relative to the button.
type Position int

const (
	Early Position = iota
	Middle
	Cutoff
	Button
	SmallBlind
	BigBlind
)

func (p Position) String() string {
	return [...]string{"early", "middle", "cutoff", "button", "small_blind", "big_blind"}[p]
}

// PositionOf maps a seat to its position for the current hand. Heads-up
// the dealer is the small blind.
func PositionOf(seat int, snap game.Snapshot) Position {
	switch seat {
	case snap.SBSeat:
		return SmallBlind
	case snap.BBSeat:
		return BigBlind
	case snap.DealerSeat:
		return Button
	}

	// Order the remaining seats clockwise from the big blind; the last
	// one before the button is the cutoff, the first half of the rest
	// are early, the remainder middle.
	n := len(snap.Players)
	var order []int
	for i := 1; i < n; i++ {
		s := (snap.BBSeat + i) % n
		if s == snap.DealerSeat || s == snap.SBSeat || s == snap.BBSeat {
			continue
		}
		if pv, ok := playerAtSeat(snap, s); !ok || pv.Status == game.StatusBusted || pv.Status == game.StatusSittingOut {
			continue
		}
		order = append(order, s)
	}
	for i, s := range order {
		if s != seat {
			continue
		}
		if i == len(order)-1 {
			return Cutoff
		}
		if i < len(order)/2 {
			return Early
		}
		return Middle
	}
	return Middle
}

func playerAtSeat(snap game.Snapshot, seat int) (game.PlayerView, bool) {
	for _, pv := range snap.Players {
		if pv.Seat == seat {
			return pv, true
		}
	}
	return game.PlayerView{}, false
}

// Scenario is the preflop situation the hero faces.
type Scenario int

const (
	// ScenarioRFI: nobody has entered the pot yet.
	ScenarioRFI Scenario = iota
	// ScenarioLimped: callers only, no raise.
	ScenarioLimped
	// ScenarioFacingRaise: exactly one raise in front.
	ScenarioFacingRaise
	// ScenarioFacing3Bet: a raise and a re-raise in front.
	ScenarioFacing3Bet
	// ScenarioFacing4Bet: three or more raises in front.
	ScenarioFacing4Bet
)

func (s Scenario) String() string {
	return [...]string{"rfi", "limped", "facing_raise", "facing_3bet", "facing_4bet"}[s]
}

// Situation is the detected preflop context: the scenario plus opened
// and how many players limped in before the first raise.
type Situation struct {
	Scenario   Scenario
	OpenerSeat int // seat of the first raiser, -1 when unraised
	Limpers    int // voluntary callers before the first raise
}

// DetectSituation classifies the preflop action so far. Blind posts are
// not in the action log; only voluntary actions count. An all-in above
// the big blind counts as a raise.
func DetectSituation(snap game.Snapshot) Situation {
	sit := Situation{OpenerSeat: -1}
	raises := 0
	for _, rec := range snap.ActionLog {
		if rec.Street != game.PhasePreFlop {
			continue
		}
		isRaise := rec.Type == game.Raise || rec.Type == game.Bet ||
			(rec.Type == game.AllIn && rec.Amount > snap.BigBlind)
		if isRaise {
			if raises == 0 {
				sit.OpenerSeat = rec.Seat
			}
			raises++
			continue
		}
		if rec.Type == game.Call && raises == 0 {
			sit.Limpers++
		}
	}

	switch {
	case raises == 0 && sit.Limpers == 0:
		sit.Scenario = ScenarioRFI
	case raises == 0:
		sit.Scenario = ScenarioLimped
	case raises == 1:
		sit.Scenario = ScenarioFacingRaise
	case raises == 2:
		sit.Scenario = ScenarioFacing3Bet
	default:
		sit.Scenario = ScenarioFacing4Bet
	}
	return sit
}
