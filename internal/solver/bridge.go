package solver

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"gtoholdem/internal/game"
)

// ErrNotReady is returned by Advise before a successful Probe.
var ErrNotReady = errors.New("solver: bridge not initialized")

// Bridge turns a postflop decision point into one solve call and maps
// the answer back onto a legal action. Every error it returns is
// recoverable: the caller decides heuristically instead.
type Bridge struct {
	client *Client
	logger *log.Logger
	rng    *rand.Rand

	caps  Capabilities
	ready bool
}

// NewBridge wires a client to the decision mapping. The rng samples the
// mixed strategy the service returns.
func NewBridge(client *Client, logger *log.Logger, rng *rand.Rand) *Bridge {
	return &Bridge{
		client: client,
		logger: logger.WithPrefix("bridge"),
		rng:    rng,
	}
}

// Init probes the service once. A failed probe leaves the bridge
// unready; Advise then fails fast and the bot stays heuristic.
func (b *Bridge) Init(ctx context.Context) error {
	caps, err := b.client.Probe(ctx)
	if err != nil {
		return err
	}
	b.caps = caps
	b.ready = true
	return nil
}

// Ready reports whether the startup probe succeeded.
func (b *Bridge) Ready() bool {
	return b.ready
}

// Capabilities returns the probed service capabilities.
func (b *Bridge) Capabilities() Capabilities {
	return b.caps
}

// Advise asks the service for the hero's strategy at the current
// decision point and returns a concrete action from the legal set.
func (b *Bridge) Advise(ctx context.Context, snap game.Snapshot, hero game.PlayerView, legal []game.LegalAction) (game.Action, error) {
	if !b.ready {
		return game.Action{}, ErrNotReady
	}
	if len(hero.HoleCards) != 2 {
		return game.Action{}, fmt.Errorf("solver: hero has %d hole cards", len(hero.HoleCards))
	}
	if len(snap.Community) < 3 {
		return game.Action{}, fmt.Errorf("solver: no postflop board to solve")
	}

	heroVec, err := HeroRange(snap, hero)
	if err != nil {
		return game.Action{}, err
	}
	oppVec, err := OpponentRange(snap, hero.ID)
	if err != nil {
		return game.Action{}, err
	}

	side := ExpectedActor(snap, hero.ID)
	req := &SolveRequest{
		Board:          BoardIDs(snap.Community),
		StartingPot:    streetStartPot(snap),
		EffectiveStack: effectiveStack(snap, hero),
		History:        StreetActions(snap, snap.Phase),
	}
	if side == "ip" {
		req.IPRange = heroVec[:]
		req.OOPRange = oppVec[:]
	} else {
		req.OOPRange = heroVec[:]
		req.IPRange = oppVec[:]
	}

	resp, err := b.client.Solve(ctx, req)
	if err != nil {
		return game.Action{}, err
	}
	if _, err := ResolveHistory(req.History, resp.Steps); err != nil {
		return game.Action{}, err
	}
	if err := CheckActor(resp.Actor, side); err != nil {
		return game.Action{}, err
	}

	combo := ComboIndex(hero.HoleCards[0], hero.HoleCards[1])
	row := resp.Strategy[combo]
	if len(row) != len(resp.Actions) {
		return game.Action{}, fmt.Errorf("solver: strategy row has %d entries for %d actions", len(row), len(resp.Actions))
	}

	chosen := resp.Actions[b.sampleRow(row)]
	act := mapAbstract(chosen, legal)
	b.logger.Debug("solver advice",
		"phase", snap.Phase,
		"abstract", chosen.Type,
		"amount", chosen.Amount,
		"action", act.Type,
		"final", act.Amount)
	return act, nil
}

// sampleRow draws an action index from a mixed-strategy row. Zero mass
// degrades to the first action.
func (b *Bridge) sampleRow(row []float64) int {
	total := 0.0
	for _, p := range row {
		if p > 0 {
			total += p
		}
	}
	if total <= 0 {
		return 0
	}
	x := b.rng.Float64() * total
	for i, p := range row {
		if p <= 0 {
			continue
		}
		x -= p
		if x <= 0 {
			return i
		}
	}
	return len(row) - 1
}

// mapAbstract converts a service action into a concrete action from the
// legal set, clamping aggressive amounts into the legal bounds.
func mapAbstract(act AbstractAction, legal []game.LegalAction) game.Action {
	find := func(t game.ActionType) (game.LegalAction, bool) {
		for _, la := range legal {
			if la.Type == t {
				return la, true
			}
		}
		return game.LegalAction{}, false
	}

	switch act.Type {
	case "fold":
		if _, ok := find(game.Fold); ok {
			return game.Action{Type: game.Fold}
		}
		return game.Action{Type: game.Check}
	case "check":
		if _, ok := find(game.Check); ok {
			return game.Action{Type: game.Check}
		}
		return game.Action{Type: game.Call}
	case "call":
		if _, ok := find(game.Call); ok {
			return game.Action{Type: game.Call}
		}
		if _, ok := find(game.Check); ok {
			return game.Action{Type: game.Check}
		}
		return game.Action{Type: game.AllIn}
	case "bet", "raise", "allin":
		for _, t := range []game.ActionType{game.Bet, game.Raise} {
			la, ok := find(t)
			if !ok {
				continue
			}
			amount := act.Amount
			if act.Type == "allin" || amount > la.Max {
				amount = la.Max
			}
			if amount < la.Min {
				amount = la.Min
			}
			return game.Action{Type: t, Amount: amount}
		}
		if la, ok := find(game.AllIn); ok {
			return game.Action{Type: game.AllIn, Amount: la.Max}
		}
		if _, ok := find(game.Call); ok {
			return game.Action{Type: game.Call}
		}
		return game.Action{Type: game.Check}
	default:
		return game.Action{Type: game.Check}
	}
}

// streetStartPot is the pot the street opened with: the built pots minus
// the chips committed on the current street.
func streetStartPot(snap game.Snapshot) int {
	pot := snap.PotTotal()
	for _, pv := range snap.Players {
		pot -= pv.Bet
	}
	if pot < 0 {
		pot = 0
	}
	return pot
}

// effectiveStack is the hero's stack against the deepest live opponent,
// measured at the start of the street.
func effectiveStack(snap game.Snapshot, hero game.PlayerView) int {
	heroStack := hero.Chips + hero.Bet
	maxOpp := 0
	for _, pv := range snap.Players {
		if pv.ID == hero.ID {
			continue
		}
		if pv.Status != game.StatusActive && pv.Status != game.StatusAllIn {
			continue
		}
		if s := pv.Chips + pv.Bet; s > maxOpp {
			maxOpp = s
		}
	}
	if maxOpp < heroStack {
		return maxOpp
	}
	return heroStack
}
