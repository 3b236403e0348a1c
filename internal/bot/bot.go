// Package bot implements the automated opponents: a GTO approximation
// that plays preflop from the range model and postflop through the
// solver bridge, and a passive calling station for baselines.
package bot

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"gtoholdem/internal/classification"
	"gtoholdem/internal/game"
	"gtoholdem/internal/ranges"
	"gtoholdem/internal/solver"
)

// GTOBot decides preflop from the 169-class range model and postflop by
// asking the external solver, falling back to a category heuristic when
// the solver is unavailable or fails. Every path returns a legal action;
// the game never stalls on a bot.
type GTOBot struct {
	logger *log.Logger
	model  *ranges.Model
	bridge *solver.Bridge
	rng    *rand.Rand
	clock  quartz.Clock
	think  time.Duration
}

// GTOption configures a GTOBot.
type GTOption func(*GTOBot)

// WithBridge attaches a solver bridge for postflop decisions. Without
// one the bot plays postflop on the heuristic alone.
func WithBridge(b *solver.Bridge) GTOption {
	return func(g *GTOBot) { g.bridge = b }
}

// WithThinkDelay makes the bot pause before acting, for watchable games.
func WithThinkDelay(d time.Duration) GTOption {
	return func(g *GTOBot) { g.think = d }
}

// WithClock injects the clock backing the think delay.
func WithClock(clock quartz.Clock) GTOption {
	return func(g *GTOBot) { g.clock = clock }
}

// NewGTOBot builds a bot around the given range model.
func NewGTOBot(logger *log.Logger, model *ranges.Model, rng *rand.Rand, opts ...GTOption) *GTOBot {
	g := &GTOBot{
		logger: logger.WithPrefix("bot"),
		model:  model,
		rng:    rng,
		clock:  quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// MakeDecision implements game.Agent.
func (g *GTOBot) MakeDecision(ctx context.Context, snap game.Snapshot, legal []game.LegalAction) (game.Action, error) {
	if err := g.pause(ctx); err != nil {
		return game.Action{}, err
	}

	hero, ok := snap.PlayerView(snap.ToAct)
	if !ok || len(hero.HoleCards) != 2 {
		return game.Action{Type: game.Check}, nil
	}

	if snap.Phase == game.PhasePreFlop {
		return g.model.Decide(snap, hero, hero.HoleCards, legal), nil
	}

	if g.bridge != nil && g.bridge.Ready() {
		act, err := g.bridge.Advise(ctx, snap, hero, legal)
		if err == nil {
			return act, nil
		}
		g.logger.Warn("solver unavailable, deciding heuristically",
			"player", hero.ID, "phase", snap.Phase, "err", err)
	}

	return g.heuristic(snap, hero, legal), nil
}

// pause burns the configured think delay, honoring cancellation.
func (g *GTOBot) pause(ctx context.Context) error {
	if g.think <= 0 {
		return nil
	}
	timer := g.clock.NewTimer(g.think)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// heuristic turns the 8-way hand category into an action: value-bet the
// top, semi-bluff strong draws, pot-control the middle, give up the
// bottom.
func (g *GTOBot) heuristic(snap game.Snapshot, hero game.PlayerView, legal []game.LegalAction) game.Action {
	analysis, err := classification.Analyze(hero.HoleCards, snap.Community)
	if err != nil {
		g.logger.Error("hand analysis failed", "player", hero.ID, "err", err)
		return passive(legal)
	}

	pot := snap.PotTotal()
	owed := snap.CurrentBet - hero.Bet

	switch analysis.Category {
	case classification.Premium, classification.MonsterDraw:
		if act, ok := aggressive(legal, pot*2/3); ok {
			return act
		}
		return callOrCheck(legal)
	case classification.Strong, classification.StrongDraw:
		if owed == 0 {
			if act, ok := aggressive(legal, pot/2); ok && g.rng.Float64() < 0.7 {
				return act
			}
			return game.Action{Type: game.Check}
		}
		return callOrCheck(legal)
	case classification.Marginal:
		if owed == 0 {
			return game.Action{Type: game.Check}
		}
		// Pot control: continue only against small bets.
		if owed*3 <= pot {
			return callOrCheck(legal)
		}
		return fold(legal)
	case classification.Weak, classification.WeakDraw:
		if owed == 0 {
			return game.Action{Type: game.Check}
		}
		if owed*5 <= pot {
			return callOrCheck(legal)
		}
		return fold(legal)
	default: // Trash
		if owed == 0 {
			return game.Action{Type: game.Check}
		}
		return fold(legal)
	}
}

// aggressive returns a bet or raise of roughly the target size, clamped
// into the legal bounds.
func aggressive(legal []game.LegalAction, target int) (game.Action, bool) {
	for _, la := range legal {
		if la.Type != game.Bet && la.Type != game.Raise {
			continue
		}
		amount := target
		if amount < la.Min {
			amount = la.Min
		}
		if amount > la.Max {
			amount = la.Max
		}
		return game.Action{Type: la.Type, Amount: amount}, true
	}
	for _, la := range legal {
		if la.Type == game.AllIn {
			return game.Action{Type: game.AllIn, Amount: la.Max}, true
		}
	}
	return game.Action{}, false
}

// callOrCheck continues as cheaply as possible without folding.
func callOrCheck(legal []game.LegalAction) game.Action {
	for _, la := range legal {
		if la.Type == game.Call {
			return game.Action{Type: game.Call}
		}
	}
	for _, la := range legal {
		if la.Type == game.Check {
			return game.Action{Type: game.Check}
		}
	}
	return passive(legal)
}

// fold gives up, or checks when giving up is free.
func fold(legal []game.LegalAction) game.Action {
	for _, la := range legal {
		if la.Type == game.Check {
			return game.Action{Type: game.Check}
		}
	}
	for _, la := range legal {
		if la.Type == game.Fold {
			return game.Action{Type: game.Fold}
		}
	}
	return passive(legal)
}

// passive takes the first legal action; with a forced all-in call that
// is the only one there is.
func passive(legal []game.LegalAction) game.Action {
	if len(legal) == 0 {
		return game.Action{Type: game.Check}
	}
	la := legal[0]
	return game.Action{Type: la.Type, Amount: la.Min}
}

// CallBot checks when it can and calls when it must. Useful as a
// baseline opponent and in simulations.
type CallBot struct{}

// MakeDecision implements game.Agent.
func (CallBot) MakeDecision(_ context.Context, _ game.Snapshot, legal []game.LegalAction) (game.Action, error) {
	return callOrCheck(legal), nil
}
