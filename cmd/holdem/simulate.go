package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"gtoholdem/internal/bot"
	"gtoholdem/internal/game"
	"gtoholdem/internal/randutil"
	"gtoholdem/internal/ranges"
)

// SimulateCmd plays the configured bots against each other and reports
// how the chips moved.
type SimulateCmd struct {
	Games   int   `short:"n" help:"Number of games to play" default:"100"`
	Hands   int   `help:"Hand cap per game" default:"500"`
	Workers int   `short:"w" help:"Concurrent games" default:"4"`
	Seed    int64 `help:"Base shuffle seed (0 uses crypto entropy)" default:"0"`
}

func (s *SimulateCmd) Run(app *appContext, ctx context.Context) error {
	if s.Games <= 0 {
		return fmt.Errorf("need at least one game, got %d", s.Games)
	}
	if s.Workers <= 0 {
		s.Workers = 1
	}
	if len(app.cfg.Bots) < 2 {
		return fmt.Errorf("simulation needs at least 2 configured bots, got %d", len(app.cfg.Bots))
	}

	// Bot decisions never go through the solver here; simulations measure
	// the self-contained strategy.
	quiet := log.New(io.Discard)

	bar := progressbar.Default(int64(s.Games), "simulating")

	var mu sync.Mutex
	wins := map[string]int{}
	profit := map[string]int{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Workers)

	for i := 0; i < s.Games; i++ {
		i := i
		g.Go(func() error {
			final, err := s.playOne(gctx, app, quiet, i)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			for _, pv := range final.Players {
				profit[pv.ID] += pv.Chips - buyInOf(app, pv.ID)
				if pv.Chips > 0 && pv.Status != game.StatusBusted {
					wins[pv.ID]++
				}
			}
			_ = bar.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	_ = bar.Finish()

	printResults(app, s.Games, wins, profit)
	return nil
}

// playOne runs a single capped game and returns its final snapshot.
func (s *SimulateCmd) playOne(ctx context.Context, app *appContext, logger *log.Logger, index int) (game.Snapshot, error) {
	seats := make([]game.SeatConfig, 0, len(app.cfg.Bots))
	for bi, bc := range app.cfg.Bots {
		var agent game.Agent
		switch bc.Strategy {
		case "call":
			agent = bot.CallBot{}
		default:
			rng := simRNG(s.Seed, index, bi+1)
			agent = bot.NewGTOBot(logger, ranges.NewModel(logger, rng, app.chart), rng)
		}
		seats = append(seats, game.SeatConfig{
			ID:    bc.Name,
			Name:  bc.Name,
			Chips: bc.BuyIn,
			Agent: agent,
		})
	}

	eng, err := game.New(logger, simRNG(s.Seed, index, 0), seats,
		app.cfg.Table.SmallBlind, app.cfg.Table.BigBlind,
		game.WithMaxHands(s.Hands),
	)
	if err != nil {
		return game.Snapshot{}, fmt.Errorf("game %d: %w", index, err)
	}
	if err := eng.Run(ctx); err != nil {
		return game.Snapshot{}, fmt.Errorf("game %d: %w", index, err)
	}
	return eng.State(), nil
}

func simRNG(seed int64, gameIndex, stream int) *rand.Rand {
	if seed == 0 {
		return randutil.NewCrypto()
	}
	return randutil.New(seed + int64(gameIndex)*64 + int64(stream))
}

func buyInOf(app *appContext, id string) int {
	for _, bc := range app.cfg.Bots {
		if bc.Name == id {
			return bc.BuyIn
		}
	}
	return 0
}

func printResults(app *appContext, games int, wins, profit map[string]int) {
	names := make([]string, 0, len(app.cfg.Bots))
	for _, bc := range app.cfg.Bots {
		names = append(names, bc.Name)
	}
	sort.Slice(names, func(i, j int) bool { return profit[names[i]] > profit[names[j]] })

	fmt.Printf("\n%d games, blinds %d/%d\n", games, app.cfg.Table.SmallBlind, app.cfg.Table.BigBlind)
	for _, name := range names {
		fmt.Printf("  %-14s survived %4d  net %+d chips\n", name, wins[name], profit[name])
	}
}
