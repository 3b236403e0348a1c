package game

import (
	"io"
	"sort"
	"testing"

	"github.com/charmbracelet/log"

	"gtoholdem/internal/deck"
	"gtoholdem/internal/evaluator"
)

func evalHand(t *testing.T, notation string) *evaluator.EvaluatedHand {
	t.Helper()
	cards, err := deck.ParseCards(notation)
	if err != nil {
		t.Fatalf("parsing %q: %v", notation, err)
	}
	hand, err := evaluator.Evaluate(cards)
	if err != nil {
		t.Fatalf("evaluating %q: %v", notation, err)
	}
	return &hand
}

func TestBuildSidePots(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		players []*Player
		want    []Pot
	}{
		{
			name: "single pot equal bets",
			players: []*Player{
				{ID: "a", Seat: 0, TotalBet: 100, Status: StatusActive},
				{ID: "b", Seat: 1, TotalBet: 100, Status: StatusActive},
			},
			want: []Pot{{Amount: 200, Eligible: []string{"a", "b"}}},
		},
		{
			name: "three way all in layered",
			players: []*Player{
				{ID: "a", Seat: 0, TotalBet: 150, Status: StatusAllIn},
				{ID: "b", Seat: 1, TotalBet: 300, Status: StatusAllIn},
				{ID: "c", Seat: 2, TotalBet: 500, Status: StatusAllIn},
			},
			want: []Pot{
				{Amount: 450, Eligible: []string{"a", "b", "c"}},
				{Amount: 300, Eligible: []string{"b", "c"}},
				{Amount: 200, Eligible: []string{"c"}},
			},
		},
		{
			name: "folded player funds pot without eligibility",
			players: []*Player{
				{ID: "a", Seat: 0, TotalBet: 50, Status: StatusFolded},
				{ID: "b", Seat: 1, TotalBet: 100, Status: StatusActive},
				{ID: "c", Seat: 2, TotalBet: 100, Status: StatusActive},
			},
			want: []Pot{
				{Amount: 250, Eligible: []string{"b", "c"}},
			},
		},
		{
			name: "adjacent pots with identical eligibility merge",
			players: []*Player{
				{ID: "a", Seat: 0, TotalBet: 40, Status: StatusFolded},
				{ID: "b", Seat: 1, TotalBet: 80, Status: StatusFolded},
				{ID: "c", Seat: 2, TotalBet: 120, Status: StatusActive},
				{ID: "d", Seat: 3, TotalBet: 120, Status: StatusActive},
			},
			want: []Pot{
				{Amount: 360, Eligible: []string{"c", "d"}},
			},
		},
		{
			name:    "no bets no pots",
			players: []*Player{{ID: "a", Seat: 0, Status: StatusActive}},
			want:    nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := BuildSidePots(tt.players)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d pots, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i].Amount != tt.want[i].Amount {
					t.Errorf("pot %d amount = %d, want %d", i, got[i].Amount, tt.want[i].Amount)
				}
				gotElig := append([]string(nil), got[i].Eligible...)
				wantElig := append([]string(nil), tt.want[i].Eligible...)
				sort.Strings(gotElig)
				sort.Strings(wantElig)
				if len(gotElig) != len(wantElig) {
					t.Fatalf("pot %d eligible = %v, want %v", i, got[i].Eligible, tt.want[i].Eligible)
				}
				for j := range gotElig {
					if gotElig[j] != wantElig[j] {
						t.Errorf("pot %d eligible = %v, want %v", i, got[i].Eligible, tt.want[i].Eligible)
					}
				}
			}

			// Contributed chips always equal pot total.
			contributed := 0
			for _, p := range tt.players {
				contributed += p.TotalBet
			}
			if total := PotTotal(got); total != contributed {
				t.Errorf("pot total = %d, contributions = %d", total, contributed)
			}
		})
	}
}

func TestDistributePotsOddChip(t *testing.T) {
	t.Parallel()

	// Two players split a 101-chip pot. The extra chip goes to the winner
	// closest to the dealer's left.
	players := []*Player{
		{ID: "a", Seat: 0, Status: StatusActive},
		{ID: "b", Seat: 1, Status: StatusActive},
		{ID: "dealer", Seat: 2, Status: StatusFolded},
	}
	pots := []Pot{{Amount: 101, Eligible: []string{"a", "b"}}}
	hands := map[string]*evaluator.EvaluatedHand{
		"a": evalHand(t, "Ah Kh Qh Jh 9h"),
		"b": evalHand(t, "Ad Kd Qd Jd 9d"),
	}

	winners := DistributePots(pots, players, hands, 2, log.New(io.Discard))
	if len(winners) != 2 {
		t.Fatalf("got %d winners, want 2: %+v", len(winners), winners)
	}
	byID := map[string]int{}
	for _, w := range winners {
		byID[w.PlayerID] += w.Amount
	}
	if byID["a"] != 51 || byID["b"] != 50 {
		t.Errorf("split = a:%d b:%d, want a:51 b:50", byID["a"], byID["b"])
	}
}

func TestDistributePotsSidePotWinners(t *testing.T) {
	t.Parallel()

	// Short stack wins the main pot with the best hand; the side pot goes
	// to the better of the two covering players.
	players := []*Player{
		{ID: "short", Seat: 0, Status: StatusAllIn, TotalBet: 150},
		{ID: "mid", Seat: 1, Status: StatusAllIn, TotalBet: 300},
		{ID: "big", Seat: 2, Status: StatusAllIn, TotalBet: 300},
	}
	pots := BuildSidePots(players)
	hands := map[string]*evaluator.EvaluatedHand{
		"short": evalHand(t, "As Ah Ad Kc Kd"), // full house
		"mid":   evalHand(t, "Qs Qh Qd Jc 9d"), // trips
		"big":   evalHand(t, "2s 7h 9d Jc Kd"), // high card
	}

	winners := DistributePots(pots, players, hands, 2, log.New(io.Discard))
	byID := map[string]int{}
	for _, w := range winners {
		byID[w.PlayerID] += w.Amount
	}
	if byID["short"] != 450 {
		t.Errorf("short won %d, want 450 (main pot)", byID["short"])
	}
	if byID["mid"] != 300 {
		t.Errorf("mid won %d, want 300 (side pot)", byID["mid"])
	}
	if byID["big"] != 0 {
		t.Errorf("big won %d, want 0", byID["big"])
	}
}

func TestDistributePotsConservation(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{ID: "a", Seat: 0, Status: StatusAllIn, TotalBet: 97},
		{ID: "b", Seat: 1, Status: StatusAllIn, TotalBet: 211},
		{ID: "c", Seat: 2, Status: StatusActive, TotalBet: 211},
		{ID: "d", Seat: 3, Status: StatusFolded, TotalBet: 40},
	}
	pots := BuildSidePots(players)
	hands := map[string]*evaluator.EvaluatedHand{
		"a": evalHand(t, "Ah Kh Qh Jh Th"),
		"b": evalHand(t, "Ad Kd Qd Jd Td"),
		"c": evalHand(t, "2s 3h 5d 8c Jd"),
	}

	winners := DistributePots(pots, players, hands, 0, log.New(io.Discard))
	distributed := 0
	for _, w := range winners {
		distributed += w.Amount
	}
	if total := PotTotal(pots); distributed != total {
		t.Errorf("distributed %d, pot total %d", distributed, total)
	}
}
