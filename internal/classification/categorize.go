package classification

import (
	"fmt"

	"gtoholdem/internal/deck"
	"gtoholdem/internal/evaluator"
)

// Category is the strategic bucket a hand falls into on a street.
type Category int

const (
	Trash Category = iota
	Weak
	Marginal
	Strong
	Premium
	WeakDraw
	StrongDraw
	MonsterDraw
)

func (c Category) String() string {
	switch c {
	case Trash:
		return "trash"
	case Weak:
		return "weak"
	case Marginal:
		return "marginal"
	case Strong:
		return "strong"
	case Premium:
		return "premium"
	case WeakDraw:
		return "weak draw"
	case StrongDraw:
		return "strong draw"
	case MonsterDraw:
		return "monster draw"
	default:
		return "unknown"
	}
}

// Analysis is the full postflop read on a hand: the evaluated best hand,
// board texture, detected draws, a relative strength score and the final
// category.
type Analysis struct {
	Hand    evaluator.EvaluatedHand
	Texture Texture
	Draws   DrawInfo

	// RelativeStrength scores the made hand in [0,1] against the board.
	RelativeStrength float64
	TopPairOrBetter  bool
	Overpair         bool

	Category Category
}

// Analyze evaluates two hole cards against a 3-5 card board and
// categorizes the result.
func Analyze(hole, board []deck.Card) (Analysis, error) {
	if len(hole) != 2 {
		return Analysis{}, fmt.Errorf("classification: want 2 hole cards, got %d", len(hole))
	}
	if len(board) < 3 || len(board) > 5 {
		return Analysis{}, fmt.Errorf("classification: want 3-5 board cards, got %d", len(board))
	}

	cards := make([]deck.Card, 0, 7)
	cards = append(cards, hole...)
	cards = append(cards, board...)
	hand, err := evaluator.Evaluate(cards)
	if err != nil {
		return Analysis{}, err
	}

	a := Analysis{
		Hand:    hand,
		Texture: AnalyzeBoard(board),
		Draws:   DetectDraws(hole, board),
	}
	a.TopPairOrBetter = topPairOrBetter(hand, hole, board)
	a.Overpair = overpair(hole, board)
	a.RelativeStrength = relativeStrength(a, hole, board)
	a.Category = categorize(a)
	return a, nil
}

// topPairOrBetter reports a pair with the board's highest rank using a
// hole card, or any stronger made hand.
func topPairOrBetter(hand evaluator.EvaluatedHand, hole, board []deck.Card) bool {
	if hand.Rank >= evaluator.TwoPair {
		return true
	}
	if hand.Rank != evaluator.OnePair {
		return overpair(hole, board)
	}
	top := boardHighRank(board)
	pairRank := hand.Tiebreaks[0]
	if pairRank > top {
		return true // overpair
	}
	if pairRank != top {
		return false
	}
	for _, c := range hole {
		if c.Rank == pairRank {
			return true
		}
	}
	return false
}

// overpair reports a pocket pair above every board card.
func overpair(hole, board []deck.Card) bool {
	if hole[0].Rank != hole[1].Rank {
		return false
	}
	return hole[0].Rank > boardHighRank(board)
}

func boardHighRank(board []deck.Card) deck.Rank {
	var top deck.Rank
	for _, c := range board {
		if c.Rank > top {
			top = c.Rank
		}
	}
	return top
}

// relativeStrength maps the made hand onto [0,1]: a rank-derived base,
// adjusted for kicker quality and discounted on dangerous textures.
func relativeStrength(a Analysis, hole, board []deck.Card) float64 {
	base := map[evaluator.HandRank]float64{
		evaluator.HighCard:      0.05,
		evaluator.OnePair:       0.30,
		evaluator.TwoPair:       0.55,
		evaluator.ThreeOfAKind:  0.65,
		evaluator.Straight:      0.75,
		evaluator.Flush:         0.82,
		evaluator.FullHouse:     0.90,
		evaluator.FourOfAKind:   0.97,
		evaluator.StraightFlush: 1.0,
		evaluator.RoyalFlush:    1.0,
	}[a.Hand.Rank]

	switch a.Hand.Rank {
	case evaluator.OnePair:
		if a.Overpair {
			base += 0.20
		} else if a.TopPairOrBetter {
			base += 0.12
			// Kicker quality matters for top pair.
			if len(a.Hand.Tiebreaks) > 1 && a.Hand.Tiebreaks[1] >= deck.Queen {
				base += 0.06
			}
		}
	case evaluator.HighCard:
		if hole[0].Rank == deck.Ace || hole[1].Rank == deck.Ace {
			base += 0.05
		}
	}

	// Strong-but-vulnerable hands shrink on wet boards.
	if a.Hand.Rank <= evaluator.ThreeOfAKind {
		base -= 0.15 * a.Texture.Wetness
	}

	if base < 0 {
		return 0
	}
	if base > 1 {
		return 1
	}
	return base
}

// categorize folds the made hand, the draws and the texture into the
// final strategic bucket. Draw buckets apply only when the made hand is
// marginal or worse.
func categorize(a Analysis) Category {
	var made Category
	switch {
	case a.Hand.Rank >= evaluator.ThreeOfAKind || a.RelativeStrength >= 0.75:
		made = Premium
	case a.Hand.Rank >= evaluator.TwoPair || a.RelativeStrength >= 0.45:
		made = Strong
	case a.TopPairOrBetter || a.Overpair:
		made = Marginal
	case a.Hand.Rank == evaluator.OnePair:
		made = Weak
	default:
		made = Trash
	}

	if made >= Strong {
		return made
	}

	switch {
	case a.Draws.IsComboDraw():
		return MonsterDraw
	case a.Draws.HasStrongDraw():
		return StrongDraw
	case a.Draws.HasWeakDraw() && made <= Weak:
		return WeakDraw
	}
	return made
}
