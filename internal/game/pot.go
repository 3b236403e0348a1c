package game

import (
	"sort"

	"github.com/charmbracelet/log"

	"gtoholdem/internal/evaluator"
)

// Pot is a pot layer: an amount and the set of player ids eligible to win
// it. Pots are ordered by increasing contribution threshold.
type Pot struct {
	Amount   int
	Eligible []string
}

// BuildSidePots constructs the pot layers from every player's total bet
// this hand. It is rebuilt from scratch after every action so the
// conservation invariant (sum of pots == sum of total bets) holds by
// construction. Folded players contribute chips but are never eligible.
func BuildSidePots(players []*Player) []Pot {
	// Distinct nonzero contribution levels, ascending.
	levelSet := make(map[int]struct{})
	for _, p := range players {
		if p.TotalBet > 0 {
			levelSet[p.TotalBet] = struct{}{}
		}
	}
	if len(levelSet) == 0 {
		return nil
	}
	levels := make([]int, 0, len(levelSet))
	for l := range levelSet {
		levels = append(levels, l)
	}
	sort.Ints(levels)

	var pots []Pot
	prev := 0
	for _, level := range levels {
		pot := Pot{}
		for _, p := range players {
			if p.TotalBet >= level {
				pot.Amount += level - prev
				if p.InHand() {
					pot.Eligible = append(pot.Eligible, p.ID)
				}
			}
		}
		if pot.Amount > 0 {
			pots = append(pots, pot)
		}
		prev = level
	}

	return mergeAdjacent(pots)
}

// mergeAdjacent merges neighbouring pots whose eligible sets are identical.
func mergeAdjacent(pots []Pot) []Pot {
	if len(pots) < 2 {
		return pots
	}
	merged := pots[:1]
	for _, pot := range pots[1:] {
		last := &merged[len(merged)-1]
		if sameIDs(last.Eligible, pot.Eligible) {
			last.Amount += pot.Amount
		} else {
			merged = append(merged, pot)
		}
	}
	return merged
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// PotTotal returns the total chips across all pots.
func PotTotal(pots []Pot) int {
	total := 0
	for _, p := range pots {
		total += p.Amount
	}
	return total
}

// Winner records one player's share of one pot at showdown.
type Winner struct {
	PlayerID string
	PotIndex int
	Amount   int
	Hand     *evaluator.EvaluatedHand
}

// DistributePots settles each pot independently among its eligible players
// with evaluated hands. Ties split by integer division; odd chips go one at
// a time to tied winners ordered by seat proximity immediately left of the
// dealer (worst postflop position first).
func DistributePots(pots []Pot, players []*Player, hands map[string]*evaluator.EvaluatedHand, dealerSeat int, logger *log.Logger) []Winner {
	byID := make(map[string]*Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	var winners []Winner
	for potIdx, pot := range pots {
		if pot.Amount == 0 || len(pot.Eligible) == 0 {
			continue
		}

		best := bestHands(pot.Eligible, hands)
		if len(best) == 0 {
			// Should be unreachable: every unfolded player is evaluated at
			// showdown. Award the first eligible id rather than lose chips.
			logger.Error("pot has no evaluated eligible hand, awarding first eligible",
				"pot", potIdx, "amount", pot.Amount, "eligible", pot.Eligible)
			winners = append(winners, Winner{
				PlayerID: pot.Eligible[0],
				PotIndex: potIdx,
				Amount:   pot.Amount,
			})
			continue
		}

		share := pot.Amount / len(best)
		remainder := pot.Amount % len(best)

		// Odd chips go to the winners closest to the dealer's left.
		sort.SliceStable(best, func(i, j int) bool {
			return seatDistanceLeftOfDealer(byID[best[i]].Seat, dealerSeat, len(players)) <
				seatDistanceLeftOfDealer(byID[best[j]].Seat, dealerSeat, len(players))
		})

		for i, id := range best {
			amount := share
			if i < remainder {
				amount++
			}
			if amount == 0 {
				continue
			}
			winners = append(winners, Winner{
				PlayerID: id,
				PotIndex: potIdx,
				Amount:   amount,
				Hand:     hands[id],
			})
		}
	}
	return winners
}

// bestHands returns the eligible ids holding the strongest evaluated hand.
func bestHands(eligible []string, hands map[string]*evaluator.EvaluatedHand) []string {
	var best []string
	var bestHand *evaluator.EvaluatedHand
	for _, id := range eligible {
		h, ok := hands[id]
		if !ok || h == nil {
			continue
		}
		if bestHand == nil {
			bestHand = h
			best = []string{id}
			continue
		}
		switch h.Compare(*bestHand) {
		case 1:
			bestHand = h
			best = []string{id}
		case 0:
			best = append(best, id)
		}
	}
	return best
}

// seatDistanceLeftOfDealer returns 0 for the seat immediately left of the
// dealer, increasing clockwise.
func seatDistanceLeftOfDealer(seat, dealerSeat, numSeats int) int {
	return (seat - dealerSeat - 1 + numSeats) % numSeats
}
