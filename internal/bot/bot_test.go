package bot

import (
	"context"
	"io"
	"math/rand/v2"
	"testing"

	"github.com/charmbracelet/log"

	"gtoholdem/internal/deck"
	"gtoholdem/internal/game"
	"gtoholdem/internal/ranges"
)

func testBot(t *testing.T, opts ...GTOption) *GTOBot {
	t.Helper()
	logger := log.New(io.Discard)
	rng := rand.New(rand.NewPCG(7, 7))
	return NewGTOBot(logger, ranges.NewModel(logger, rng, nil), rng, opts...)
}

func mustCards(t *testing.T, s string) []deck.Card {
	t.Helper()
	cards, err := deck.ParseCards(s)
	if err != nil {
		t.Fatal(err)
	}
	return cards
}

// preflopSnap is a 3-handed preflop spot folded to the hero on the
// button.
func preflopSnap(t *testing.T, hole string) game.Snapshot {
	return game.Snapshot{
		Phase:      game.PhasePreFlop,
		DealerSeat: 0,
		SBSeat:     1,
		BBSeat:     2,
		SmallBlind: 5,
		BigBlind:   10,
		CurrentBet: 10,
		LastRaise:  10,
		ToAct:      "hero",
		Players: []game.PlayerView{
			{ID: "hero", Seat: 0, Chips: 500, Status: game.StatusActive,
				HoleCards: mustCards(t, hole)},
			{ID: "sb", Seat: 1, Chips: 495, Bet: 5, Status: game.StatusActive},
			{ID: "bb", Seat: 2, Chips: 490, Bet: 10, Status: game.StatusActive},
		},
	}
}

// flopSnap puts the hero heads up on a flop with the given board, facing
// the given bet.
func flopSnap(t *testing.T, hole, board string, facing int) game.Snapshot {
	return game.Snapshot{
		Phase:      game.PhaseFlop,
		Community:  mustCards(t, board),
		DealerSeat: 0,
		SBSeat:     0,
		BBSeat:     1,
		SmallBlind: 5,
		BigBlind:   10,
		CurrentBet: facing,
		ToAct:      "hero",
		Players: []game.PlayerView{
			{ID: "hero", Seat: 0, Chips: 480, Status: game.StatusActive,
				HoleCards: mustCards(t, hole)},
			{ID: "villain", Seat: 1, Chips: 480 - facing, Bet: facing, Status: game.StatusActive},
		},
		Pots: []game.Pot{{Amount: 40 + facing, Eligible: []string{"hero", "villain"}}},
	}
}

func freeActions() []game.LegalAction {
	return []game.LegalAction{
		{Type: game.Check},
		{Type: game.Bet, Min: 10, Max: 480},
	}
}

func facingActions(callMax, raiseMin int) []game.LegalAction {
	return []game.LegalAction{
		{Type: game.Fold},
		{Type: game.Call},
		{Type: game.Raise, Min: raiseMin, Max: callMax},
	}
}

func TestGTOBotPreflopPlaysPremiumsAggressively(t *testing.T) {
	t.Parallel()

	b := testBot(t)
	legal := []game.LegalAction{
		{Type: game.Fold},
		{Type: game.Call},
		{Type: game.Raise, Min: 20, Max: 500},
	}

	for i := 0; i < 50; i++ {
		act, err := b.MakeDecision(context.Background(), preflopSnap(t, "As Ad"), legal)
		if err != nil {
			t.Fatal(err)
		}
		if act.Type == game.Fold {
			t.Fatal("folded aces preflop")
		}
		if act.Type == game.Raise && (act.Amount < 20 || act.Amount > 500) {
			t.Fatalf("raise amount %d outside legal bounds", act.Amount)
		}
	}
}

func TestGTOBotHeuristicValueBets(t *testing.T) {
	t.Parallel()

	b := testBot(t)
	snap := flopSnap(t, "7h 7d", "As 7c 2s", 0)

	act, err := b.MakeDecision(context.Background(), snap, freeActions())
	if err != nil {
		t.Fatal(err)
	}
	if act.Type != game.Bet {
		t.Fatalf("set on the flop chose %v, want bet", act.Type)
	}
	if act.Amount < 10 || act.Amount > 480 {
		t.Fatalf("bet amount %d outside legal bounds", act.Amount)
	}
}

func TestGTOBotHeuristicFoldsTrashToBigBets(t *testing.T) {
	t.Parallel()

	b := testBot(t)
	snap := flopSnap(t, "7h 5d", "Ks Qc 2h", 60)

	act, err := b.MakeDecision(context.Background(), snap, facingActions(480, 120))
	if err != nil {
		t.Fatal(err)
	}
	if act.Type != game.Fold {
		t.Fatalf("trash facing a bet chose %v, want fold", act.Type)
	}
}

func TestGTOBotHeuristicChecksTrashForFree(t *testing.T) {
	t.Parallel()

	b := testBot(t)
	snap := flopSnap(t, "7h 5d", "Ks Qc 2h", 0)

	act, err := b.MakeDecision(context.Background(), snap, freeActions())
	if err != nil {
		t.Fatal(err)
	}
	if act.Type != game.Check {
		t.Fatalf("trash checking down chose %v, want check", act.Type)
	}
}

func TestGTOBotHeuristicContinuesWithStrongDraws(t *testing.T) {
	t.Parallel()

	b := testBot(t)
	// Nut flush draw facing a third-pot bet.
	snap := flopSnap(t, "Ah Kh", "Qh 7h 2s", 15)

	act, err := b.MakeDecision(context.Background(), snap, facingActions(480, 30))
	if err != nil {
		t.Fatal(err)
	}
	if act.Type == game.Fold {
		t.Fatal("folded the nut flush draw to a small bet")
	}
}

func TestGTOBotAlwaysActsOnForcedAllIn(t *testing.T) {
	t.Parallel()

	b := testBot(t)
	snap := flopSnap(t, "7h 5d", "Ks Qc 2h", 600)
	legal := []game.LegalAction{{Type: game.AllIn, Min: 480, Max: 480}}

	act, err := b.MakeDecision(context.Background(), snap, legal)
	if err != nil {
		t.Fatal(err)
	}
	if act.Type != game.AllIn {
		t.Fatalf("forced spot chose %v, want all-in", act.Type)
	}
}

func TestCallBot(t *testing.T) {
	t.Parallel()

	var cb CallBot

	act, err := cb.MakeDecision(context.Background(), game.Snapshot{}, facingActions(100, 40))
	if err != nil {
		t.Fatal(err)
	}
	if act.Type != game.Call {
		t.Errorf("facing a bet chose %v, want call", act.Type)
	}

	act, err = cb.MakeDecision(context.Background(), game.Snapshot{}, freeActions())
	if err != nil {
		t.Fatal(err)
	}
	if act.Type != game.Check {
		t.Errorf("free spot chose %v, want check", act.Type)
	}
}
