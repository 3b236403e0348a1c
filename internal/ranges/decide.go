package ranges

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"gtoholdem/internal/deck"
	"gtoholdem/internal/game"
)

// Model answers preflop decisions: it detects the scenario, picks the
// governing range (chart first, hardcoded tables as fallback), samples an
// action from the hand's frequency mix and sizes it.
type Model struct {
	logger *log.Logger
	rng    *rand.Rand
	chart  *Chart
}

// NewModel builds a preflop model. chart may be nil, in which case only
// the hardcoded tables apply.
func NewModel(logger *log.Logger, rng *rand.Rand, chart *Chart) *Model {
	return &Model{
		logger: logger.WithPrefix("preflop"),
		rng:    rng,
		chart:  chart,
	}
}

// Decide picks a preflop action for the hero. The returned action is
// always drawn from the legal set.
func (m *Model) Decide(snap game.Snapshot, hero game.PlayerView, hole []deck.Card, legal []game.LegalAction) game.Action {
	sit := DetectSituation(snap)
	heroPos := PositionOf(hero.Seat, snap)
	openerPos := Cutoff
	if sit.OpenerSeat >= 0 {
		openerPos = PositionOf(sit.OpenerSeat, snap)
	}

	class := ClassOf(hole[0], hole[1])
	rng := m.lookup(sit, heroPos, openerPos)
	freq := rng.Get(class)

	actionType, jam := m.sample(freq, legal)
	amount := m.size(sit, heroPos, actionType, snap, legal)
	if jam {
		for _, la := range legal {
			if la.Type == actionType {
				amount = la.Max
			}
		}
	}
	m.logger.Debug("preflop decision",
		"hand", class.Key(), "scenario", sit.Scenario, "position", heroPos,
		"action", actionType, "amount", amount)
	return game.Action{Type: actionType, Amount: amount}
}

// lookup resolves the governing range: a covering chart entry wins,
// otherwise the hardcoded tables.
func (m *Model) lookup(sit Situation, hero, opener Position) *Range {
	if m.chart != nil {
		if r, ok := m.chart.Lookup(sit.Scenario, hero, opener); ok {
			return r
		}
	}
	return builtinRange(sit, hero, opener)
}

// sample draws an action type from the frequency tuple, restricted to
// what is currently legal. Fold weight is zeroed whenever checking is
// free. The jam result marks a draw from the all-in bucket, which deep
// stacks express as a raise (or bet) for the whole stack since the
// engine only lists AllIn separately for short stacks. A zero total
// mass degrades to check, then call, then fold.
func (m *Model) sample(freq Freq, legal []game.LegalAction) (game.ActionType, bool) {
	available := map[game.ActionType]bool{}
	for _, la := range legal {
		available[la.Type] = true
	}

	type weighted struct {
		t   game.ActionType
		w   float64
		jam bool
	}
	var options []weighted
	add := func(t game.ActionType, w float64) {
		if w > 0 && available[t] {
			options = append(options, weighted{t: t, w: w})
		}
	}

	foldW := freq.Fold
	if available[game.Check] {
		foldW = 0 // never fold when checking is free
	}
	add(game.Fold, foldW)
	if available[game.Call] {
		add(game.Call, freq.Call)
	} else {
		add(game.Check, freq.Call)
	}
	if available[game.Raise] {
		add(game.Raise, freq.Raise)
	} else {
		add(game.Bet, freq.Raise)
	}

	jamType := game.AllIn
	if !available[game.AllIn] {
		if available[game.Raise] {
			jamType = game.Raise
		} else if available[game.Bet] {
			jamType = game.Bet
		}
	}
	if freq.AllIn > 0 && available[jamType] {
		options = append(options, weighted{t: jamType, w: freq.AllIn, jam: true})
	}

	total := 0.0
	for _, o := range options {
		total += o.w
	}
	if total <= 0 {
		for _, t := range []game.ActionType{game.Check, game.Call, game.Fold} {
			if available[t] {
				return t, false
			}
		}
		return legal[0].Type, false
	}

	draw := m.rng.Float64() * total
	for _, o := range options {
		draw -= o.w
		if draw < 0 {
			return o.t, o.jam
		}
	}
	last := options[len(options)-1]
	return last.t, last.jam
}

// size derives the chip amount for the sampled action. Raise sizes follow
// standard cash-game conventions: opens scale with limpers and position,
// a 3-bet triples the open, a 4-bet is 2.25x the 3-bet, deeper raises
// jam. Everything is clamped to the legal bounds; call/all-in amounts are
// left for the engine to derive.
func (m *Model) size(sit Situation, hero Position, t game.ActionType, snap game.Snapshot, legal []game.LegalAction) int {
	if t != game.Bet && t != game.Raise {
		return 0
	}

	bb := snap.BigBlind
	var target int
	switch sit.Scenario {
	case ScenarioRFI, ScenarioLimped:
		target = 3*bb + sit.Limpers*bb
		if hero == SmallBlind || hero == Early {
			target += bb // out of position, size up
		}
	case ScenarioFacingRaise:
		target = 3 * snap.CurrentBet
	case ScenarioFacing3Bet:
		target = snap.CurrentBet * 9 / 4
	default:
		// 5-bet territory: effectively all-in.
		for _, la := range legal {
			if la.Type == t {
				return la.Max
			}
		}
	}

	for _, la := range legal {
		if la.Type == t {
			if target < la.Min {
				target = la.Min
			}
			if target > la.Max {
				target = la.Max
			}
			return target
		}
	}
	return target
}
