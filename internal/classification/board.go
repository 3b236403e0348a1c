// Package classification analyzes board texture, detects draws and
// places a hand into one of eight strategic categories.
package classification

import (
	"gtoholdem/internal/deck"
)

// WetnessBucket is the ordered discretization of the continuous board
// wetness score.
type WetnessBucket int

const (
	VeryDry WetnessBucket = iota
	Dry
	SemiWet
	Wet
	VeryWet
)

func (b WetnessBucket) String() string {
	switch b {
	case VeryDry:
		return "very dry"
	case Dry:
		return "dry"
	case SemiWet:
		return "semi-wet"
	case Wet:
		return "wet"
	case VeryWet:
		return "very wet"
	default:
		return "unknown"
	}
}

// Texture describes how coordinated a board is.
type Texture struct {
	Monotone bool
	TwoTone  bool
	Rainbow  bool
	Paired   bool

	// Wetness is a continuous danger score in [0,1].
	Wetness float64
	Bucket  WetnessBucket
}

// AnalyzeBoard computes the texture of 3-5 community cards. Boards with
// fewer than 3 cards are very dry by definition.
func AnalyzeBoard(board []deck.Card) Texture {
	if len(board) < 3 {
		return Texture{Rainbow: true, Bucket: VeryDry}
	}

	suitCounts := map[deck.Suit]int{}
	rankCounts := map[deck.Rank]int{}
	for _, c := range board {
		suitCounts[c.Suit]++
		rankCounts[c.Rank]++
	}

	maxSuit := 0
	for _, n := range suitCounts {
		if n > maxSuit {
			maxSuit = n
		}
	}

	paired := false
	for _, n := range rankCounts {
		if n >= 2 {
			paired = true
		}
	}

	t := Texture{
		Monotone: len(suitCounts) == 1,
		Paired:   paired,
	}
	// Five cards can never all differ in suit; a river board with a
	// single doubled suit still leaves no flush possible, so it plays
	// as rainbow.
	t.Rainbow = maxSuit == 1 || (len(board) > 4 && maxSuit == 2 && len(suitCounts) == 4)
	t.TwoTone = maxSuit >= 2 && !t.Monotone && !t.Rainbow

	// Flush component: how close the board is to putting a flush out.
	var flushScore float64
	switch {
	case maxSuit >= 4 || t.Monotone:
		flushScore = 1
	case maxSuit == 3:
		flushScore = 0.7
	case maxSuit == 2:
		flushScore = 0.3
	}

	// Connectivity component: adjacent and one-gap unique ranks, with the
	// ace also counting low next to a deuce.
	ranks := uniqueRanks(board)
	adjacent, oneGap := 0, 0
	for i := 1; i < len(ranks); i++ {
		switch ranks[i] - ranks[i-1] {
		case 1:
			adjacent++
		case 2:
			oneGap++
		}
	}
	if rankCounts[deck.Ace] > 0 {
		if rankCounts[deck.Two] > 0 {
			adjacent++
		} else if rankCounts[deck.Three] > 0 {
			oneGap++
		}
	}
	connectivity := (float64(adjacent) + 0.5*float64(oneGap)) / float64(len(board)-1)
	if connectivity > 1 {
		connectivity = 1
	}

	// Straight-window component: 5-rank windows holding 3+ board ranks.
	windows := straightWindows(ranks)
	windowScore := float64(windows) / 6.0
	if windowScore > 1 {
		windowScore = 1
	}

	wetness := 0.45*flushScore + 0.35*connectivity + 0.2*windowScore
	if paired {
		// A paired board blocks many straights and flushes.
		wetness *= 0.8
	}
	if wetness > 1 {
		wetness = 1
	}

	t.Wetness = wetness
	t.Bucket = bucketWetness(wetness)
	return t
}

func bucketWetness(w float64) WetnessBucket {
	switch {
	case w < 0.15:
		return VeryDry
	case w < 0.35:
		return Dry
	case w < 0.55:
		return SemiWet
	case w < 0.75:
		return Wet
	default:
		return VeryWet
	}
}

// uniqueRanks returns the distinct ranks ascending.
func uniqueRanks(cards []deck.Card) []deck.Rank {
	seen := map[deck.Rank]bool{}
	var ranks []deck.Rank
	for _, c := range cards {
		if !seen[c.Rank] {
			seen[c.Rank] = true
			ranks = append(ranks, c.Rank)
		}
	}
	for i := 1; i < len(ranks); i++ {
		for j := i; j > 0 && ranks[j] < ranks[j-1]; j-- {
			ranks[j], ranks[j-1] = ranks[j-1], ranks[j]
		}
	}
	return ranks
}

// straightWindows counts the 5-rank spans containing at least 3 distinct
// board ranks, the windows a straight could arrive through. The ace
// counts both high and low.
func straightWindows(ranks []deck.Rank) int {
	present := map[int]bool{}
	for _, r := range ranks {
		present[int(r)] = true
		if r == deck.Ace {
			present[1] = true
		}
	}
	windows := 0
	for lo := 1; lo+4 <= int(deck.Ace); lo++ {
		n := 0
		for r := lo; r <= lo+4; r++ {
			if present[r] {
				n++
			}
		}
		if n >= 3 {
			windows++
		}
	}
	return windows
}
