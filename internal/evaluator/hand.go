package evaluator

import (
	"strings"

	"gtoholdem/internal/deck"
)

// HandRank represents the ranking class of a poker hand. Higher is better.
type HandRank int

const (
	HighCard HandRank = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the string representation of a hand rank
func (hr HandRank) String() string {
	switch hr {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// EvaluatedHand is the result of evaluating a 5-7 card set: the best rank
// class, the 5 cards that make it, and the ordered tie-break ranks.
//
// This is the canonical comparator for the whole engine: showdown, pot
// distribution and hand analysis all order hands through Compare.
type EvaluatedHand struct {
	Rank        HandRank
	Cards       []deck.Card // The 5 cards that make up the hand
	Tiebreaks   []deck.Rank // Tie-break ranks in decreasing significance
	Description string
}

// String returns a string representation of the hand
func (h EvaluatedHand) String() string {
	var cardStrs []string
	for _, card := range h.Cards {
		cardStrs = append(cardStrs, card.String())
	}
	return h.Description + " [" + strings.Join(cardStrs, " ") + "]"
}

// Compare compares two hands and returns:
//
//	-1 if h is weaker than other
//	 0 if h ties other
//	 1 if h is stronger than other
func (h EvaluatedHand) Compare(other EvaluatedHand) int {
	if h.Rank != other.Rank {
		if h.Rank < other.Rank {
			return -1
		}
		return 1
	}
	for i := 0; i < len(h.Tiebreaks) && i < len(other.Tiebreaks); i++ {
		if h.Tiebreaks[i] != other.Tiebreaks[i] {
			if h.Tiebreaks[i] < other.Tiebreaks[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
