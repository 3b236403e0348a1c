// Package evaluator scores 5-7 card poker hands, returning the best 5-card
// selection under the standard hand hierarchy.
package evaluator

import (
	"errors"
	"fmt"
	"sort"

	"gtoholdem/internal/deck"
)

// ErrTooFewCards is returned when fewer than 5 cards are supplied.
var ErrTooFewCards = errors.New("evaluator: need at least 5 cards")

// combos6 and combos7 are the precomputed 5-card subset index sets for 6 and
// 7 card evaluations (6 and 21 subsets respectively).
var (
	combos6 = chooseFive(6)
	combos7 = chooseFive(7)
)

func chooseFive(n int) [][5]int {
	var result [][5]int
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			for c := b + 1; c < n; c++ {
				for d := c + 1; d < n; d++ {
					for e := d + 1; e < n; e++ {
						result = append(result, [5]int{a, b, c, d, e})
					}
				}
			}
		}
	}
	return result
}

// Evaluate returns the single best 5-card hand from 5-7 cards.
func Evaluate(cards []deck.Card) (EvaluatedHand, error) {
	switch len(cards) {
	case 5:
		return evaluateFive(cards), nil
	case 6:
		return evaluateBest(cards, combos6), nil
	case 7:
		return evaluateBest(cards, combos7), nil
	default:
		if len(cards) < 5 {
			return EvaluatedHand{}, fmt.Errorf("%w: got %d", ErrTooFewCards, len(cards))
		}
		return EvaluatedHand{}, fmt.Errorf("evaluator: at most 7 cards supported, got %d", len(cards))
	}
}

func evaluateBest(cards []deck.Card, combos [][5]int) EvaluatedHand {
	var best EvaluatedHand
	var five [5]deck.Card
	for i, combo := range combos {
		for j, idx := range combo {
			five[j] = cards[idx]
		}
		hand := evaluateFive(five[:])
		if i == 0 || hand.Compare(best) > 0 {
			best = hand
		}
	}
	return best
}

// evaluateFive classifies exactly 5 cards.
func evaluateFive(cards []deck.Card) EvaluatedHand {
	sorted := make([]deck.Card, 5)
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Rank > sorted[j].Rank
	})

	flush := isFlush(sorted)
	straightHigh, straight := straightHighRank(sorted)

	if straight && flush {
		if straightHigh == deck.Ace {
			return EvaluatedHand{
				Rank:        RoyalFlush,
				Cards:       sorted,
				Tiebreaks:   []deck.Rank{straightHigh},
				Description: "Royal Flush",
			}
		}
		return EvaluatedHand{
			Rank:        StraightFlush,
			Cards:       orderStraight(sorted, straightHigh),
			Tiebreaks:   []deck.Rank{straightHigh},
			Description: fmt.Sprintf("Straight Flush, %s high", rankName(straightHigh)),
		}
	}

	groups := groupByRank(sorted)

	switch {
	case groups[0].count == 4:
		kicker := groups[1].rank
		return EvaluatedHand{
			Rank:        FourOfAKind,
			Cards:       sorted,
			Tiebreaks:   []deck.Rank{groups[0].rank, kicker},
			Description: fmt.Sprintf("Four of a Kind, %s", pluralRankName(groups[0].rank)),
		}

	case groups[0].count == 3 && groups[1].count == 2:
		return EvaluatedHand{
			Rank:        FullHouse,
			Cards:       sorted,
			Tiebreaks:   []deck.Rank{groups[0].rank, groups[1].rank},
			Description: fmt.Sprintf("Full House, %s full of %s", pluralRankName(groups[0].rank), pluralRankName(groups[1].rank)),
		}

	case flush:
		tiebreaks := ranksOf(sorted)
		return EvaluatedHand{
			Rank:        Flush,
			Cards:       sorted,
			Tiebreaks:   tiebreaks,
			Description: fmt.Sprintf("Flush, %s high", rankName(tiebreaks[0])),
		}

	case straight:
		return EvaluatedHand{
			Rank:        Straight,
			Cards:       orderStraight(sorted, straightHigh),
			Tiebreaks:   []deck.Rank{straightHigh},
			Description: fmt.Sprintf("Straight, %s high", rankName(straightHigh)),
		}

	case groups[0].count == 3:
		return EvaluatedHand{
			Rank:        ThreeOfAKind,
			Cards:       sorted,
			Tiebreaks:   []deck.Rank{groups[0].rank, groups[1].rank, groups[2].rank},
			Description: fmt.Sprintf("Three of a Kind, %s", pluralRankName(groups[0].rank)),
		}

	case groups[0].count == 2 && groups[1].count == 2:
		return EvaluatedHand{
			Rank:        TwoPair,
			Cards:       sorted,
			Tiebreaks:   []deck.Rank{groups[0].rank, groups[1].rank, groups[2].rank},
			Description: fmt.Sprintf("Two Pair, %s and %s", pluralRankName(groups[0].rank), pluralRankName(groups[1].rank)),
		}

	case groups[0].count == 2:
		return EvaluatedHand{
			Rank:        OnePair,
			Cards:       sorted,
			Tiebreaks:   []deck.Rank{groups[0].rank, groups[1].rank, groups[2].rank, groups[3].rank},
			Description: fmt.Sprintf("Pair of %s", pluralRankName(groups[0].rank)),
		}

	default:
		tiebreaks := ranksOf(sorted)
		return EvaluatedHand{
			Rank:        HighCard,
			Cards:       sorted,
			Tiebreaks:   tiebreaks,
			Description: fmt.Sprintf("High Card, %s", rankName(tiebreaks[0])),
		}
	}
}

func isFlush(cards []deck.Card) bool {
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

// straightHighRank reports whether the 5 cards (sorted descending by rank)
// form a straight and, if so, the high rank. The wheel A-2-3-4-5 counts as a
// 5-high straight.
func straightHighRank(sorted []deck.Card) (deck.Rank, bool) {
	for i := 1; i < 5; i++ {
		if sorted[i].Rank == sorted[i-1].Rank {
			return 0, false // Duplicate rank, cannot be a straight
		}
	}

	if sorted[0].Rank-sorted[4].Rank == 4 {
		return sorted[0].Rank, true
	}

	// Wheel: A 5 4 3 2 sorted descending
	if sorted[0].Rank == deck.Ace &&
		sorted[1].Rank == deck.Five &&
		sorted[4].Rank == deck.Two {
		return deck.Five, true
	}

	return 0, false
}

// orderStraight orders the winning cards of a straight from its high card
// down, placing the ace last for the wheel.
func orderStraight(sorted []deck.Card, high deck.Rank) []deck.Card {
	if high != deck.Five || sorted[0].Rank != deck.Ace {
		return sorted
	}
	ordered := make([]deck.Card, 0, 5)
	ordered = append(ordered, sorted[1:]...)
	ordered = append(ordered, sorted[0])
	return ordered
}

type rankGroup struct {
	rank  deck.Rank
	count int
}

// groupByRank returns rank groups sorted by descending (count, rank).
func groupByRank(cards []deck.Card) []rankGroup {
	counts := make(map[deck.Rank]int, 5)
	for _, c := range cards {
		counts[c.Rank]++
	}
	groups := make([]rankGroup, 0, len(counts))
	for rank, count := range counts {
		groups = append(groups, rankGroup{rank: rank, count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})
	return groups
}

func ranksOf(cards []deck.Card) []deck.Rank {
	ranks := make([]deck.Rank, len(cards))
	for i, c := range cards {
		ranks[i] = c.Rank
	}
	return ranks
}

func rankName(r deck.Rank) string {
	switch r {
	case deck.Two:
		return "Two"
	case deck.Three:
		return "Three"
	case deck.Four:
		return "Four"
	case deck.Five:
		return "Five"
	case deck.Six:
		return "Six"
	case deck.Seven:
		return "Seven"
	case deck.Eight:
		return "Eight"
	case deck.Nine:
		return "Nine"
	case deck.Ten:
		return "Ten"
	case deck.Jack:
		return "Jack"
	case deck.Queen:
		return "Queen"
	case deck.King:
		return "King"
	case deck.Ace:
		return "Ace"
	default:
		return "Unknown"
	}
}

func pluralRankName(r deck.Rank) string {
	if r == deck.Six {
		return "Sixes"
	}
	return rankName(r) + "s"
}
