// Package ranges models preflop strategy: canonical 169-hand classes,
// per-scenario frequency tables, chart overrides and action sampling.
package ranges

import (
	"fmt"

	"gtoholdem/internal/deck"
)

// HandClass is a canonical preflop hand: the (high, low, suited) triple
// behind keys like "AA", "AKs" and "AKo". Pairs are never suited.
type HandClass struct {
	High   deck.Rank
	Low    deck.Rank
	Suited bool
}

// ClassOf returns the canonical class of two hole cards.
func ClassOf(a, b deck.Card) HandClass {
	hi, lo := a, b
	if lo.Rank > hi.Rank {
		hi, lo = lo, hi
	}
	return HandClass{
		High:   hi.Rank,
		Low:    lo.Rank,
		Suited: hi.Rank != lo.Rank && hi.Suit == lo.Suit,
	}
}

// Key renders the class in standard notation: "AA", "AKs", "AKo".
func (h HandClass) Key() string {
	if h.High == h.Low {
		return h.High.String() + h.Low.String()
	}
	suffix := "o"
	if h.Suited {
		suffix = "s"
	}
	return h.High.String() + h.Low.String() + suffix
}

// Pair reports whether the class is a pocket pair.
func (h HandClass) Pair() bool {
	return h.High == h.Low
}

// ParseHandClass parses "AA", "AKs" or "AKo" notation.
func ParseHandClass(key string) (HandClass, error) {
	if len(key) != 2 && len(key) != 3 {
		return HandClass{}, fmt.Errorf("invalid hand key %q", key)
	}
	hi, err := parseRankChar(key[0])
	if err != nil {
		return HandClass{}, fmt.Errorf("invalid hand key %q: %w", key, err)
	}
	lo, err := parseRankChar(key[1])
	if err != nil {
		return HandClass{}, fmt.Errorf("invalid hand key %q: %w", key, err)
	}
	if lo > hi {
		hi, lo = lo, hi
	}
	if hi == lo {
		if len(key) != 2 {
			return HandClass{}, fmt.Errorf("pair key %q cannot carry a suited modifier", key)
		}
		return HandClass{High: hi, Low: lo}, nil
	}
	if len(key) != 3 {
		return HandClass{}, fmt.Errorf("unpaired key %q needs an s/o modifier", key)
	}
	switch key[2] {
	case 's':
		return HandClass{High: hi, Low: lo, Suited: true}, nil
	case 'o':
		return HandClass{High: hi, Low: lo}, nil
	default:
		return HandClass{}, fmt.Errorf("invalid modifier %q in %q", key[2], key)
	}
}

func parseRankChar(c byte) (deck.Rank, error) {
	switch c {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		return deck.Rank(c - '0'), nil
	case 'T':
		return deck.Ten, nil
	case 'J':
		return deck.Jack, nil
	case 'Q':
		return deck.Queen, nil
	case 'K':
		return deck.King, nil
	case 'A':
		return deck.Ace, nil
	default:
		return 0, fmt.Errorf("invalid rank character %q", c)
	}
}

// AllClasses returns all 169 canonical classes: 13 pairs, 78 suited and
// 78 offsuit combinations.
func AllClasses() []HandClass {
	classes := make([]HandClass, 0, 169)
	for hi := deck.Ace; hi >= deck.Two; hi-- {
		classes = append(classes, HandClass{High: hi, Low: hi})
		for lo := hi - 1; lo >= deck.Two; lo-- {
			classes = append(classes, HandClass{High: hi, Low: lo, Suited: true})
			classes = append(classes, HandClass{High: hi, Low: lo})
		}
	}
	return classes
}
