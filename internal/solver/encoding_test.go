package solver

import (
	"math"
	"testing"

	"gtoholdem/internal/deck"
	"gtoholdem/internal/game"
	"gtoholdem/internal/ranges"
)

func TestCardIDRoundTrip(t *testing.T) {
	t.Parallel()

	seen := map[int]bool{}
	for suit := deck.Spades; suit <= deck.Clubs; suit++ {
		for rank := deck.Two; rank <= deck.Ace; rank++ {
			c := deck.Card{Suit: suit, Rank: rank}
			id := CardID(c)
			if id < 0 || id >= 52 {
				t.Fatalf("CardID(%v) = %d out of range", c, id)
			}
			if seen[id] {
				t.Fatalf("CardID(%v) = %d already used", c, id)
			}
			seen[id] = true

			back, err := CardFromID(id)
			if err != nil {
				t.Fatal(err)
			}
			if back != c {
				t.Errorf("CardFromID(%d) = %v, want %v", id, back, c)
			}
		}
	}
	if len(seen) != 52 {
		t.Errorf("covered %d ids, want 52", len(seen))
	}

	if _, err := CardFromID(52); err == nil {
		t.Error("CardFromID(52) accepted")
	}
	if _, err := CardFromID(-1); err == nil {
		t.Error("CardFromID(-1) accepted")
	}
}

func TestComboIndexRoundTrip(t *testing.T) {
	t.Parallel()

	next := 0
	for lo := 0; lo < 52; lo++ {
		for hi := lo + 1; hi < 52; hi++ {
			a, _ := CardFromID(lo)
			b, _ := CardFromID(hi)

			idx := ComboIndex(a, b)
			if idx != next {
				t.Fatalf("ComboIndex(%v, %v) = %d, want %d", a, b, idx, next)
			}
			if swapped := ComboIndex(b, a); swapped != idx {
				t.Fatalf("ComboIndex order dependent: %d vs %d", swapped, idx)
			}

			x, y, err := ComboFromIndex(idx)
			if err != nil {
				t.Fatal(err)
			}
			if CardID(x) != lo || CardID(y) != hi {
				t.Fatalf("ComboFromIndex(%d) = %v %v, want ids %d %d", idx, x, y, lo, hi)
			}
			next++
		}
	}
	if next != NumCombos {
		t.Errorf("enumerated %d combos, want %d", next, NumCombos)
	}

	if _, _, err := ComboFromIndex(NumCombos); err == nil {
		t.Error("ComboFromIndex(1326) accepted")
	}
}

func TestVectorFromWeights(t *testing.T) {
	t.Parallel()

	aa, err := ranges.ParseHandClass("AA")
	if err != nil {
		t.Fatal(err)
	}
	aks, err := ranges.ParseHandClass("AKs")
	if err != nil {
		t.Fatal(err)
	}
	ako, err := ranges.ParseHandClass("AKo")
	if err != nil {
		t.Fatal(err)
	}

	weights := map[ranges.HandClass]float64{aa: 1, aks: 0.5, ako: 0.25}

	v := VectorFromWeights(weights, nil)
	counts := map[float64]int{}
	for _, w := range v {
		if w > 0 {
			counts[w]++
		}
	}
	if counts[1] != 6 {
		t.Errorf("AA expanded to %d combos, want 6", counts[1])
	}
	if counts[0.5] != 4 {
		t.Errorf("AKs expanded to %d combos, want 4", counts[0.5])
	}
	if counts[0.25] != 12 {
		t.Errorf("AKo expanded to %d combos, want 12", counts[0.25])
	}

	// An ace on the board blocks half the AA combos and a quarter of the
	// AK ones.
	board := []deck.Card{{Suit: deck.Spades, Rank: deck.Ace}}
	blocked := VectorFromWeights(weights, board)
	counts = map[float64]int{}
	for _, w := range blocked {
		if w > 0 {
			counts[w]++
		}
	}
	if counts[1] != 3 {
		t.Errorf("AA with As blocked expanded to %d combos, want 3", counts[1])
	}
	if counts[0.5] != 3 {
		t.Errorf("AKs with As blocked expanded to %d combos, want 3", counts[0.5])
	}
	if counts[0.25] != 9 {
		t.Errorf("AKo with As blocked expanded to %d combos, want 9", counts[0.25])
	}

	for i, w := range blocked {
		if w == 0 {
			continue
		}
		a, b, _ := ComboFromIndex(i)
		if CardID(a) == CardID(board[0]) || CardID(b) == CardID(board[0]) {
			t.Fatalf("combo %d uses blocked card", i)
		}
	}
}

func TestMergeMax(t *testing.T) {
	t.Parallel()

	var a, b RangeVector
	a[0], a[5] = 0.4, 1.0
	b[0], b[7] = 0.9, 0.2

	merged := MergeMax(a, b)
	if merged[0] != 0.9 || merged[5] != 1.0 || merged[7] != 0.2 {
		t.Errorf("MergeMax wrong: %v %v %v", merged[0], merged[5], merged[7])
	}
	if mass := merged.Mass(); math.Abs(mass-2.1) > 1e-9 {
		t.Errorf("merged mass = %v, want 2.1", mass)
	}
}

func TestOpponentRangeRequiresLiveOpponent(t *testing.T) {
	t.Parallel()

	snap := game.Snapshot{
		Phase: game.PhaseFlop,
		Players: []game.PlayerView{
			{ID: "hero", Seat: 0, Status: game.StatusActive},
			{ID: "villain", Seat: 1, Status: game.StatusFolded},
		},
	}
	if _, err := OpponentRange(snap, "hero"); err == nil {
		t.Error("no live opponent accepted")
	}

	snap.Players[1].Status = game.StatusActive
	v, err := OpponentRange(snap, "hero")
	if err != nil {
		t.Fatal(err)
	}
	if v.Mass() == 0 {
		t.Error("live opponent produced empty range")
	}
}
