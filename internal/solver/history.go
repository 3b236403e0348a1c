package solver

import (
	"errors"
	"fmt"

	"gtoholdem/internal/game"
)

// ErrActorMismatch is returned when the service's player-to-act after
// history replay disagrees with the locally expected actor. The caller
// must treat the whole call as failed and fall back.
var ErrActorMismatch = errors.New("solver: player to act disagrees with service")

// AbstractAction is an action in the service's vocabulary. Amount is the
// street-bet level for aggressive actions, zero otherwise.
type AbstractAction struct {
	Type   string `json:"type"`
	Amount int    `json:"amount,omitempty"`
}

// HistoryStep reports, for one step of the replayed history, the actions
// the service considered available at that node.
type HistoryStep struct {
	Available []AbstractAction `json:"available"`
}

// StreetActions extracts the realized actions of the given street from
// the snapshot's action log, in the service's vocabulary.
func StreetActions(snap game.Snapshot, street game.Phase) []AbstractAction {
	var out []AbstractAction
	for _, rec := range snap.ActionLog {
		if rec.Street != street {
			continue
		}
		out = append(out, AbstractAction{Type: abstractType(rec.Type), Amount: rec.Amount})
	}
	return out
}

func abstractType(t game.ActionType) string {
	switch t {
	case game.Fold:
		return "fold"
	case game.Check:
		return "check"
	case game.Call:
		return "call"
	case game.Bet:
		return "bet"
	case game.Raise:
		return "raise"
	case game.AllIn:
		return "allin"
	default:
		return "unknown"
	}
}

// aggressive groups the action types the service may size differently
// than the engine did.
func aggressive(t string) bool {
	return t == "bet" || t == "raise" || t == "allin"
}

// ResolveHistory maps each realized action onto an index into the
// service-reported available set at the corresponding step. Exact type
// matches win; for aggressive actions any aggressive candidate is
// acceptable and the nearest amount is chosen. A step with no usable
// candidate is a protocol failure.
func ResolveHistory(realized []AbstractAction, steps []HistoryStep) ([]int, error) {
	if len(steps) < len(realized) {
		return nil, fmt.Errorf("solver: service reported %d history steps for %d actions", len(steps), len(realized))
	}

	indices := make([]int, 0, len(realized))
	for i, act := range realized {
		best := -1
		bestDist := 0
		for j, cand := range steps[i].Available {
			if cand.Type != act.Type && !(aggressive(cand.Type) && aggressive(act.Type)) {
				continue
			}
			dist := act.Amount - cand.Amount
			if dist < 0 {
				dist = -dist
			}
			if best < 0 || dist < bestDist {
				best, bestDist = j, dist
			}
		}
		if best < 0 {
			return nil, fmt.Errorf("solver: no candidate for %s %d at history step %d", act.Type, act.Amount, i)
		}
		indices = append(indices, best)
	}
	return indices, nil
}

// ExpectedActor returns "oop" or "ip" for the hero, by postflop acting
// order: the last live player after the dealer button is in position.
func ExpectedActor(snap game.Snapshot, heroID string) string {
	n := len(snap.Players)
	lastLive := ""
	for i := 1; i <= n; i++ {
		seat := (snap.DealerSeat + i) % n
		for _, pv := range snap.Players {
			if pv.Seat != seat {
				continue
			}
			if pv.Status == game.StatusActive || pv.Status == game.StatusAllIn {
				lastLive = pv.ID
			}
		}
	}
	if lastLive == heroID {
		return "ip"
	}
	return "oop"
}

// CheckActor validates the service's resolved player-to-act against the
// local expectation.
func CheckActor(got, want string) error {
	if got != want {
		return fmt.Errorf("%w: got %q, want %q", ErrActorMismatch, got, want)
	}
	return nil
}
