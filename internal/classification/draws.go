package classification

import (
	"gtoholdem/internal/deck"
)

// DrawInfo describes the draws a hand has against the current board.
// Outs counts distinct unseen cards that complete at least one draw, so
// a combo draw never double-counts a card completing both.
type DrawInfo struct {
	FlushDraw        bool
	NutFlushDraw     bool
	OpenEnded        bool
	Gutshot          bool
	BackdoorFlush    bool
	BackdoorStraight bool

	Outs int
}

// HasStrongDraw reports a draw worth playing aggressively.
func (d DrawInfo) HasStrongDraw() bool {
	return d.FlushDraw || d.NutFlushDraw || d.OpenEnded
}

// HasWeakDraw reports a speculative draw.
func (d DrawInfo) HasWeakDraw() bool {
	return d.Gutshot || d.BackdoorFlush || d.BackdoorStraight
}

// IsComboDraw reports two or more simultaneous draws with heavy outs.
func (d DrawInfo) IsComboDraw() bool {
	n := 0
	for _, has := range []bool{d.FlushDraw || d.NutFlushDraw, d.OpenEnded, d.Gutshot} {
		if has {
			n++
		}
	}
	return n >= 2 && d.Outs >= 12
}

// DetectDraws finds flush and straight draws for two hole cards against a
// 3-5 card board. Backdoor draws are only reported on the flop.
func DetectDraws(hole, board []deck.Card) DrawInfo {
	if len(board) < 3 || len(board) >= 5 {
		// Preflop has no draws; on the river there is nothing left to come.
		return DrawInfo{}
	}

	var info DrawInfo
	outs := map[deck.Card]bool{}
	seen := map[deck.Card]bool{}
	all := make([]deck.Card, 0, len(hole)+len(board))
	all = append(all, hole...)
	all = append(all, board...)
	for _, c := range all {
		seen[c] = true
	}

	detectFlushDraws(&info, hole, board, seen, outs)
	detectStraightDraws(&info, hole, all, seen, outs)

	info.Outs = len(outs)
	return info
}

func detectFlushDraws(info *DrawInfo, hole, board []deck.Card, seen, outs map[deck.Card]bool) {
	for suit := deck.Spades; suit <= deck.Clubs; suit++ {
		holeCount := 0
		holeHasAce := false
		for _, c := range hole {
			if c.Suit == suit {
				holeCount++
				if c.Rank == deck.Ace {
					holeHasAce = true
				}
			}
		}
		if holeCount == 0 {
			continue
		}
		total := holeCount
		for _, c := range board {
			if c.Suit == suit {
				total++
			}
		}

		switch {
		case total == 4:
			if holeHasAce {
				info.NutFlushDraw = true
			} else {
				info.FlushDraw = true
			}
			for r := deck.Two; r <= deck.Ace; r++ {
				c := deck.Card{Suit: suit, Rank: r}
				if !seen[c] {
					outs[c] = true
				}
			}
		case total == 3 && len(board) == 3:
			info.BackdoorFlush = true
			// Two cards to come; backdoors carry no immediate outs.
		}
	}
}

// detectStraightDraws scans every 5-rank straight window. A window with
// exactly one rank missing is a draw, provided the completed straight
// would use a hole card; two or more completing ranks make it open-ended.
func detectStraightDraws(info *DrawInfo, hole, all []deck.Card, seen, outs map[deck.Card]bool) {
	present := map[int]bool{}
	holeRank := map[int]bool{}
	for _, c := range all {
		present[int(c.Rank)] = true
		if c.Rank == deck.Ace {
			present[1] = true
		}
	}
	for _, c := range hole {
		holeRank[int(c.Rank)] = true
		if c.Rank == deck.Ace {
			holeRank[1] = true
		}
	}

	completing := map[int]bool{}
	for lo := 1; lo+4 <= int(deck.Ace); lo++ {
		have := 0
		missing := 0
		usesHole := false
		for r := lo; r <= lo+4; r++ {
			if present[r] {
				have++
				if holeRank[r] {
					usesHole = true
				}
			} else {
				missing = r
			}
		}
		if have == 5 {
			// Straight already made; nothing here is a draw.
			return
		}
		if have == 4 && usesHole {
			completing[missing] = true
		}
	}

	if len(completing) == 0 {
		if has3CardWindow(present, holeRank) && len(all) == 5 {
			info.BackdoorStraight = true
		}
		return
	}

	if len(completing) >= 2 {
		info.OpenEnded = true
	} else {
		info.Gutshot = true
	}
	for r := range completing {
		rank := deck.Rank(r)
		if r == 1 {
			rank = deck.Ace
		}
		for suit := deck.Spades; suit <= deck.Clubs; suit++ {
			c := deck.Card{Suit: suit, Rank: rank}
			if !seen[c] {
				outs[c] = true
			}
		}
	}
}

// has3CardWindow reports a 5-rank window holding exactly 3 ranks, at
// least one from the hole: the shape of a backdoor straight on the flop.
func has3CardWindow(present, holeRank map[int]bool) bool {
	for lo := 1; lo+4 <= int(deck.Ace); lo++ {
		have := 0
		usesHole := false
		for r := lo; r <= lo+4; r++ {
			if present[r] {
				have++
				if holeRank[r] {
					usesHole = true
				}
			}
		}
		if have == 3 && usesHole {
			return true
		}
	}
	return false
}
