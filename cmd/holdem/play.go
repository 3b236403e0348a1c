package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"gtoholdem/internal/bot"
	"gtoholdem/internal/display"
	"gtoholdem/internal/game"
	"gtoholdem/internal/randutil"
	"gtoholdem/internal/ranges"
	"gtoholdem/internal/solver"
)

// PlayCmd runs an interactive game of one human against the configured
// bots.
type PlayCmd struct {
	Name string `help:"Your name at the table" default:"You"`
	Seed int64  `help:"Deterministic shuffle seed (0 uses crypto entropy)" default:"0"`
}

func (p *PlayCmd) Run(app *appContext, ctx context.Context) error {
	banner()

	bridge := connectSolver(ctx, app)
	renderer := display.NewRenderer(os.Stdout, "human")
	human := newConsoleAgent(os.Stdin, os.Stdout, renderer)

	seats := []game.SeatConfig{{
		ID:    "human",
		Name:  p.Name,
		Chips: app.cfg.Table.BuyIn,
		Agent: human,
	}}
	seats = append(seats, botSeats(app, bridge, p.Seed)...)

	eng, err := game.New(app.logger, gameRNG(p.Seed), seats,
		app.cfg.Table.SmallBlind, app.cfg.Table.BigBlind,
		game.WithObserver(renderer.Observe),
		game.WithEvents(renderer.HandleEvent),
		game.WithRevealPacing(600*time.Millisecond),
		game.WithMaxHands(app.cfg.Table.MaxHands),
	)
	if err != nil {
		return fmt.Errorf("setting up table: %w", err)
	}

	if err := eng.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	fmt.Println("\nThanks for playing.")
	return nil
}

// botSeats builds the configured opponents. Each GTO bot gets its own
// decision stream so their mixed strategies stay independent.
func botSeats(app *appContext, bridge *solver.Bridge, seed int64) []game.SeatConfig {
	seats := make([]game.SeatConfig, 0, len(app.cfg.Bots))
	for i, bc := range app.cfg.Bots {
		var agent game.Agent
		switch bc.Strategy {
		case "call":
			agent = bot.CallBot{}
		default:
			rng := botRNG(seed, i)
			model := ranges.NewModel(app.logger, rng, app.chart)
			opts := []bot.GTOption{bot.WithThinkDelay(400 * time.Millisecond)}
			if bridge != nil {
				opts = append(opts, bot.WithBridge(bridge))
			}
			agent = bot.NewGTOBot(app.logger, model, rng, opts...)
		}
		seats = append(seats, game.SeatConfig{
			ID:    bc.Name,
			Name:  bc.Name,
			Chips: bc.BuyIn,
			Agent: agent,
		})
	}
	return seats
}

func newLiveRNG() *rand.Rand {
	return randutil.NewCrypto()
}

func gameRNG(seed int64) *rand.Rand {
	if seed == 0 {
		return randutil.NewCrypto()
	}
	return randutil.New(seed)
}

func botRNG(seed int64, index int) *rand.Rand {
	if seed == 0 {
		return randutil.NewCrypto()
	}
	return randutil.New(seed + int64(index) + 1)
}
