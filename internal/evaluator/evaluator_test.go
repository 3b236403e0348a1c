package evaluator

import (
	"errors"
	"testing"

	phpoker "github.com/paulhankin/poker"

	"gtoholdem/internal/deck"
	"gtoholdem/internal/randutil"
)

func mustCards(t *testing.T, notation string) []deck.Card {
	t.Helper()
	cards, err := deck.ParseCards(notation)
	if err != nil {
		t.Fatalf("parsing %q: %v", notation, err)
	}
	return cards
}

func TestEvaluateFiveCardHands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cards     string
		wantRank  HandRank
		wantDesc  string
		wantBreak []deck.Rank
	}{
		{
			name:      "royal flush",
			cards:     "As Ks Qs Js Ts",
			wantRank:  RoyalFlush,
			wantDesc:  "Royal Flush",
			wantBreak: []deck.Rank{deck.Ace},
		},
		{
			name:      "straight flush",
			cards:     "9h 8h 7h 6h 5h",
			wantRank:  StraightFlush,
			wantDesc:  "Straight Flush, Nine high",
			wantBreak: []deck.Rank{deck.Nine},
		},
		{
			name:      "steel wheel is five high",
			cards:     "Ad 2d 3d 4d 5d",
			wantRank:  StraightFlush,
			wantDesc:  "Straight Flush, Five high",
			wantBreak: []deck.Rank{deck.Five},
		},
		{
			name:      "four of a kind",
			cards:     "Qs Qh Qd Qc 7s",
			wantRank:  FourOfAKind,
			wantDesc:  "Four of a Kind, Queens",
			wantBreak: []deck.Rank{deck.Queen, deck.Seven},
		},
		{
			name:      "full house",
			cards:     "Ks Kh Kd 4s 4h",
			wantRank:  FullHouse,
			wantDesc:  "Full House, Kings full of Fours",
			wantBreak: []deck.Rank{deck.King, deck.Four},
		},
		{
			name:      "flush",
			cards:     "Kc 9c 7c 5c 2c",
			wantRank:  Flush,
			wantDesc:  "Flush, King high",
			wantBreak: []deck.Rank{deck.King, deck.Nine, deck.Seven, deck.Five, deck.Two},
		},
		{
			name:      "straight",
			cards:     "Th 9s 8d 7c 6h",
			wantRank:  Straight,
			wantDesc:  "Straight, Ten high",
			wantBreak: []deck.Rank{deck.Ten},
		},
		{
			name:      "wheel straight",
			cards:     "Ah 2s 3d 4c 5h",
			wantRank:  Straight,
			wantDesc:  "Straight, Five high",
			wantBreak: []deck.Rank{deck.Five},
		},
		{
			name:      "three of a kind",
			cards:     "6s 6h 6d Kc 2h",
			wantRank:  ThreeOfAKind,
			wantDesc:  "Three of a Kind, Sixes",
			wantBreak: []deck.Rank{deck.Six, deck.King, deck.Two},
		},
		{
			name:      "two pair",
			cards:     "Js Jh 4d 4c Ah",
			wantRank:  TwoPair,
			wantDesc:  "Two Pair, Jacks and Fours",
			wantBreak: []deck.Rank{deck.Jack, deck.Four, deck.Ace},
		},
		{
			name:      "one pair",
			cards:     "8s 8h Ad Qc 3h",
			wantRank:  OnePair,
			wantDesc:  "Pair of Eights",
			wantBreak: []deck.Rank{deck.Eight, deck.Ace, deck.Queen, deck.Three},
		},
		{
			name:      "high card",
			cards:     "Ks Jh 8d 5c 2h",
			wantRank:  HighCard,
			wantDesc:  "High Card, King",
			wantBreak: []deck.Rank{deck.King, deck.Jack, deck.Eight, deck.Five, deck.Two},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hand, err := Evaluate(mustCards(t, tt.cards))
			if err != nil {
				t.Fatalf("Evaluate(%s): %v", tt.cards, err)
			}
			if hand.Rank != tt.wantRank {
				t.Errorf("rank = %v, want %v", hand.Rank, tt.wantRank)
			}
			if hand.Description != tt.wantDesc {
				t.Errorf("description = %q, want %q", hand.Description, tt.wantDesc)
			}
			if len(hand.Cards) != 5 {
				t.Errorf("winning cards = %d, want 5", len(hand.Cards))
			}
			if len(hand.Tiebreaks) != len(tt.wantBreak) {
				t.Fatalf("tiebreaks = %v, want %v", hand.Tiebreaks, tt.wantBreak)
			}
			for i := range tt.wantBreak {
				if hand.Tiebreaks[i] != tt.wantBreak[i] {
					t.Errorf("tiebreaks = %v, want %v", hand.Tiebreaks, tt.wantBreak)
					break
				}
			}
		})
	}
}

func TestEvaluateSevenCardSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cards    string
		wantRank HandRank
		wantDesc string
	}{
		{
			name:     "flush hidden in seven cards",
			cards:    "As Ks 2h 9s 3d 4s 7s",
			wantRank: Flush,
			wantDesc: "Flush, Ace high",
		},
		{
			name:     "full house beats flush on the same board",
			cards:    "Ah Ad Ac 8h 8d Kh Qh",
			wantRank: FullHouse,
			wantDesc: "Full House, Aces full of Eights",
		},
		{
			name:     "board straight with useless hole cards",
			cards:    "2c 2d 5h 6s 7d 8c 9h",
			wantRank: Straight,
			wantDesc: "Straight, Nine high",
		},
		{
			name:     "best straight uses the higher window",
			cards:    "5h 6s 7d 8c 9h Th Jd",
			wantRank: Straight,
			wantDesc: "Straight, Jack high",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hand, err := Evaluate(mustCards(t, tt.cards))
			if err != nil {
				t.Fatalf("Evaluate(%s): %v", tt.cards, err)
			}
			if hand.Rank != tt.wantRank || hand.Description != tt.wantDesc {
				t.Errorf("got %v %q, want %v %q", hand.Rank, hand.Description, tt.wantRank, tt.wantDesc)
			}
		})
	}
}

func TestEvaluateCardCountBounds(t *testing.T) {
	t.Parallel()

	_, err := Evaluate(mustCards(t, "As Ks Qs Js"))
	if !errors.Is(err, ErrTooFewCards) {
		t.Errorf("4 cards: err = %v, want ErrTooFewCards", err)
	}

	_, err = Evaluate(mustCards(t, "As Ks Qs Js Ts 9s 8s 7s"))
	if err == nil {
		t.Error("8 cards: want error, got nil")
	}
}

func TestCompareKickers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		a, b   string
		wanted int // sign of a.Compare(b)
	}{
		{"higher pair wins", "9s 9h 2d 3c 4h", "8s 8h Ad Kc Qh", 1},
		{"kicker decides equal pairs", "9s 9h Ad 3c 4h", "9d 9c Kd Qc Jh", 1},
		{"identical ranks tie", "9s 9h Ad 3c 4h", "9d 9c Ah 3d 4s", 0},
		{"wheel loses to six high straight", "Ah 2s 3d 4c 5h", "2h 3s 4d 5c 6h", -1},
		{"flush beats straight", "Kc 9c 7c 5c 2c", "Th 9s 8d 7c 6h", 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, err := Evaluate(mustCards(t, tt.a))
			if err != nil {
				t.Fatal(err)
			}
			b, err := Evaluate(mustCards(t, tt.b))
			if err != nil {
				t.Fatal(err)
			}
			got := a.Compare(b)
			switch {
			case tt.wanted > 0 && got <= 0,
				tt.wanted < 0 && got >= 0,
				tt.wanted == 0 && got != 0:
				t.Errorf("Compare = %d, want sign %d", got, tt.wanted)
			}
		})
	}
}

// toReference converts to the reference evaluator's card encoding
// (ace is rank 1 there).
func toReference(c deck.Card) phpoker.Card {
	var s phpoker.Suit
	switch c.Suit {
	case deck.Clubs:
		s = phpoker.Club
	case deck.Diamonds:
		s = phpoker.Diamond
	case deck.Hearts:
		s = phpoker.Heart
	case deck.Spades:
		s = phpoker.Spade
	}
	r := phpoker.Rank(c.Rank)
	if c.Rank == deck.Ace {
		r = phpoker.Rank(1)
	}
	card, err := phpoker.MakeCard(s, r)
	if err != nil {
		panic(err)
	}
	return card
}

func referenceScore(cards []deck.Card) int16 {
	var a7 [7]phpoker.Card
	for i, c := range cards {
		a7[i] = toReference(c)
	}
	return phpoker.Eval7(&a7)
}

// TestEvaluateAgainstReference deals random two-player boards and checks
// that hand ordering agrees with an independent evaluator.
func TestEvaluateAgainstReference(t *testing.T) {
	t.Parallel()

	rng := randutil.New(20260829)
	d := deck.New(rng)

	for trial := 0; trial < 2000; trial++ {
		d.Reset()
		board := d.DealN(5)
		holeA := d.DealN(2)
		holeB := d.DealN(2)

		sevenA := append(append([]deck.Card{}, board...), holeA...)
		sevenB := append(append([]deck.Card{}, board...), holeB...)

		handA, err := Evaluate(sevenA)
		if err != nil {
			t.Fatal(err)
		}
		handB, err := Evaluate(sevenB)
		if err != nil {
			t.Fatal(err)
		}

		got := handA.Compare(handB)
		refA, refB := referenceScore(sevenA), referenceScore(sevenB)

		var want int
		switch {
		case refA > refB:
			want = 1
		case refA < refB:
			want = -1
		}

		sign := func(v int) int {
			switch {
			case v > 0:
				return 1
			case v < 0:
				return -1
			}
			return 0
		}
		if sign(got) != want {
			t.Fatalf("trial %d: board %v holes %v vs %v: Compare sign %d, reference wants %d (%s vs %s)",
				trial, board, holeA, holeB, sign(got), want, handA.Description, handB.Description)
		}
	}
}
