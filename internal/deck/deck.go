package deck

import (
	rand "math/rand/v2"
)

// Deck represents a deck of playing cards. The RNG is injected so callers
// control determinism; production games seed it from crypto entropy (see
// randutil.NewCrypto) so no two games share a draw sequence.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a new shuffled 52-card deck drawing from the given RNG.
func New(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("deck: rng is required")
	}
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	d.Reset()
	return d
}

// Reset restores the deck to a full 52-card deck and shuffles it.
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	d.Shuffle()
}

// Shuffle randomizes the order of the remaining cards.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top card. A false return means the deck is
// exhausted, which with a 52-card deck and at most 9 players indicates a
// programming error upstream.
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// DealN deals n cards from the deck.
func (d *Deck) DealN(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		c, ok := d.Deal()
		if !ok {
			break
		}
		cards = append(cards, c)
	}
	return cards
}

// Burn discards the top card before a community reveal.
func (d *Deck) Burn() {
	_, _ = d.Deal()
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Stack replaces the deck contents with the given cards in order, for
// deterministic tests. The first card is dealt first.
func (d *Deck) Stack(cards []Card) {
	d.cards = append(d.cards[:0], cards...)
}
