package display

import (
	"bytes"
	"strings"
	"testing"

	"gtoholdem/internal/deck"
	"gtoholdem/internal/game"
)

func cards(t *testing.T, s string) []deck.Card {
	t.Helper()
	out, err := deck.ParseCards(s)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestRendererEvents(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewRenderer(&buf, "hero")

	r.HandleEvent(game.HandStartEvent{HandNumber: 3, DealerSeat: 1, SmallBlind: 5, BigBlind: 10})
	if !strings.Contains(buf.String(), "Hand #3") {
		t.Errorf("hand header missing: %q", buf.String())
	}

	buf.Reset()
	r.HandleEvent(game.PlayerActionEvent{
		PlayerID: "villain",
		Action:   game.Action{Type: game.Raise, Amount: 60},
		PotAfter: 90,
	})
	out := buf.String()
	if !strings.Contains(out, "raises to 60") || !strings.Contains(out, "pot 90") {
		t.Errorf("action line wrong: %q", out)
	}

	buf.Reset()
	r.HandleEvent(game.GameOverEvent{})
	if !strings.Contains(buf.String(), "GAME OVER") {
		t.Errorf("game over banner missing: %q", buf.String())
	}
}

func TestRendererHidesVillainCards(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewRenderer(&buf, "hero")

	snap := game.Snapshot{
		Phase: game.PhaseFlop,
		Players: []game.PlayerView{
			{ID: "hero", Seat: 0, Chips: 500, Status: game.StatusActive,
				HoleCards: cards(t, "Ah Kd")},
			{ID: "villain", Seat: 1, Chips: 500, Status: game.StatusActive,
				HoleCards: cards(t, "7s 2c")},
		},
	}
	r.Observe(snap)

	out := buf.String()
	if !strings.Contains(out, "A♥") {
		t.Errorf("hero cards hidden: %q", out)
	}
	if strings.Contains(out, "7♠") {
		t.Errorf("villain cards leaked: %q", out)
	}
}

func TestFormatCardsColorsAll(t *testing.T) {
	t.Parallel()

	r := NewRenderer(&bytes.Buffer{}, "")
	got := r.FormatCards(cards(t, "Ah Ks"))
	if !strings.Contains(got, "A♥") || !strings.Contains(got, "K♠") {
		t.Errorf("FormatCards = %q", got)
	}
}
