// Package solver bridges the game engine to an external equilibrium
// solving service: it encodes ranges and boards into the service's fixed
// vector format, reconciles realized action history against the service's
// tree, and maps the returned strategy back onto a concrete legal action.
package solver

import (
	"errors"
	"fmt"

	"gtoholdem/internal/deck"
	"gtoholdem/internal/game"
	"gtoholdem/internal/ranges"
)

// NumCombos is the number of distinct 2-card hands.
const NumCombos = 1326

// ErrEmptyRange is returned when a range vector has no mass left after
// board blocking; the service cannot solve against nothing.
var ErrEmptyRange = errors.New("solver: empty range vector")

// CardID encodes a card as the service's 0-51 ordinal.
func CardID(c deck.Card) int {
	return (int(c.Rank)-2)*4 + int(c.Suit)
}

// CardFromID decodes a 0-51 ordinal back into a card.
func CardFromID(id int) (deck.Card, error) {
	if id < 0 || id >= 52 {
		return deck.Card{}, fmt.Errorf("solver: card id %d out of range", id)
	}
	return deck.Card{
		Rank: deck.Rank(id/4 + 2),
		Suit: deck.Suit(id % 4),
	}, nil
}

// ComboIndex encodes an unordered pair of cards as an index into a
// 1326-length vector.
func ComboIndex(a, b deck.Card) int {
	lo, hi := CardID(a), CardID(b)
	if lo > hi {
		lo, hi = hi, lo
	}
	return 52*lo - lo*(lo+1)/2 + hi - lo - 1
}

// ComboFromIndex decodes a combo index back into its two cards, lower
// card id first.
func ComboFromIndex(idx int) (deck.Card, deck.Card, error) {
	if idx < 0 || idx >= NumCombos {
		return deck.Card{}, deck.Card{}, fmt.Errorf("solver: combo index %d out of range", idx)
	}
	for lo := 0; lo < 51; lo++ {
		base := 52*lo - lo*(lo+1)/2
		width := 51 - lo
		if idx < base+width {
			hi := idx - base + lo + 1
			a, _ := CardFromID(lo)
			b, _ := CardFromID(hi)
			return a, b, nil
		}
	}
	return deck.Card{}, deck.Card{}, fmt.Errorf("solver: combo index %d unresolved", idx)
}

// RangeVector is a per-combo weight vector in the service's layout.
type RangeVector [NumCombos]float64

// Mass returns the total weight in the vector.
func (v *RangeVector) Mass() float64 {
	total := 0.0
	for _, w := range v {
		total += w
	}
	return total
}

// VectorFromWeights expands per-class weights into per-combo weights,
// zeroing every combo that uses a board card.
func VectorFromWeights(weights map[ranges.HandClass]float64, board []deck.Card) RangeVector {
	blocked := map[int]bool{}
	for _, c := range board {
		blocked[CardID(c)] = true
	}

	var v RangeVector
	for h, w := range weights {
		if w <= 0 {
			continue
		}
		for _, combo := range classCombos(h) {
			if blocked[CardID(combo[0])] || blocked[CardID(combo[1])] {
				continue
			}
			v[ComboIndex(combo[0], combo[1])] = w
		}
	}
	return v
}

// classCombos enumerates the concrete combos of a hand class: 6 for a
// pair, 4 suited, 12 offsuit.
func classCombos(h ranges.HandClass) [][2]deck.Card {
	var combos [][2]deck.Card
	if h.Pair() {
		for s1 := deck.Spades; s1 <= deck.Clubs; s1++ {
			for s2 := s1 + 1; s2 <= deck.Clubs; s2++ {
				combos = append(combos, [2]deck.Card{
					{Suit: s1, Rank: h.High},
					{Suit: s2, Rank: h.High},
				})
			}
		}
		return combos
	}
	for s1 := deck.Spades; s1 <= deck.Clubs; s1++ {
		for s2 := deck.Spades; s2 <= deck.Clubs; s2++ {
			if h.Suited != (s1 == s2) {
				continue
			}
			combos = append(combos, [2]deck.Card{
				{Suit: s1, Rank: h.High},
				{Suit: s2, Rank: h.Low},
			})
		}
	}
	return combos
}

// MergeMax merges opponent ranges into one virtual opponent by taking
// the per-combo maximum.
func MergeMax(vectors ...RangeVector) RangeVector {
	var out RangeVector
	for _, v := range vectors {
		for i, w := range v {
			if w > out[i] {
				out[i] = w
			}
		}
	}
	return out
}

// estimateWeights classifies a player's preflop line and returns the
// class weights that line represents: the raiser keeps their raising
// range, a caller keeps a defense range, and unraised pots get a wide
// uniform range.
func estimateWeights(snap game.Snapshot, pv game.PlayerView) map[ranges.HandClass]float64 {
	sit := ranges.DetectSituation(snap)
	pos := ranges.PositionOf(pv.Seat, snap)

	if sit.OpenerSeat < 0 {
		return ranges.WideWeights()
	}
	if sit.OpenerSeat == pv.Seat {
		return ranges.OpenWeights(pos)
	}
	return ranges.DefendWeights(pos, ranges.PositionOf(sit.OpenerSeat, snap))
}

// EstimateRange builds a player's estimated combo vector from their
// preflop action, excluding board-blocked combos.
func EstimateRange(snap game.Snapshot, pv game.PlayerView) RangeVector {
	return VectorFromWeights(estimateWeights(snap, pv), snap.Community)
}

// OpponentRange merges the estimated ranges of every live opponent of
// the hero into a single virtual-opponent vector.
func OpponentRange(snap game.Snapshot, heroID string) (RangeVector, error) {
	var vectors []RangeVector
	for _, pv := range snap.Players {
		if pv.ID == heroID {
			continue
		}
		if pv.Status != game.StatusActive && pv.Status != game.StatusAllIn {
			continue
		}
		vectors = append(vectors, EstimateRange(snap, pv))
	}
	merged := MergeMax(vectors...)
	if merged.Mass() == 0 {
		return merged, ErrEmptyRange
	}
	return merged, nil
}

// HeroRange builds the hero's own estimated vector. Only board cards
// block; the hero's hole cards stay in, the service needs the full range
// the hero plays with.
func HeroRange(snap game.Snapshot, hero game.PlayerView) (RangeVector, error) {
	v := EstimateRange(snap, hero)
	if v.Mass() == 0 {
		return v, ErrEmptyRange
	}
	return v, nil
}

// BoardIDs encodes community cards as service card ids.
func BoardIDs(board []deck.Card) []int {
	ids := make([]int, len(board))
	for i, c := range board {
		ids[i] = CardID(c)
	}
	return ids
}
