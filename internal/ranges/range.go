package ranges

import (
	"fmt"
	"math"
	"strings"

	"gtoholdem/internal/deck"
)

// FreqTolerance is the allowed deviation of a frequency tuple's sum from 1.
const FreqTolerance = 0.01

// Freq is a hand's preflop action mix. The four weights must sum to 1
// within FreqTolerance.
type Freq struct {
	Fold  float64 `json:"fold"`
	Call  float64 `json:"call"`
	Raise float64 `json:"raise"`
	AllIn float64 `json:"allin"`
}

// Validate checks the tuple is non-negative and sums to 1.
func (f Freq) Validate() error {
	for _, v := range []float64{f.Fold, f.Call, f.Raise, f.AllIn} {
		if v < 0 {
			return fmt.Errorf("negative frequency %v", f)
		}
	}
	sum := f.Fold + f.Call + f.Raise + f.AllIn
	if math.Abs(sum-1) > FreqTolerance {
		return fmt.Errorf("frequencies sum to %.3f, want 1", sum)
	}
	return nil
}

// alwaysFold is the default mix for hands a range leaves unlisted.
var alwaysFold = Freq{Fold: 1}

// Range maps every canonical hand class to a frequency tuple. Classes not
// explicitly set fold at full frequency. Ranges are built once and treated
// as immutable afterwards.
type Range struct {
	freqs map[HandClass]Freq
}

// Get returns the frequency tuple for a class.
func (r *Range) Get(h HandClass) Freq {
	if r == nil || r.freqs == nil {
		return alwaysFold
	}
	if f, ok := r.freqs[h]; ok {
		return f
	}
	return alwaysFold
}

// Size returns the number of explicitly listed classes.
func (r *Range) Size() int {
	if r == nil {
		return 0
	}
	return len(r.freqs)
}

// entry pairs compact hand notation with a frequency tuple; the building
// block for hardcoded range tables.
type entry struct {
	notation string
	freq     Freq
}

// build assembles a Range from notation entries. Notation follows standard
// range shorthand: "AA", "AKs", "TT+", "22-66", "A5s-A2s", "KTs+", and
// comma-separated lists of any of those. Panics on malformed notation;
// hardcoded tables are validated by tests, not at runtime.
func build(entries ...entry) *Range {
	r := &Range{freqs: make(map[HandClass]Freq)}
	for _, e := range entries {
		if err := e.freq.Validate(); err != nil {
			panic(fmt.Sprintf("range entry %q: %v", e.notation, err))
		}
		for _, part := range strings.Split(e.notation, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			classes, err := expandNotation(part)
			if err != nil {
				panic(fmt.Sprintf("range entry %q: %v", part, err))
			}
			for _, h := range classes {
				r.freqs[h] = e.freq
			}
		}
	}
	return r
}

// expandNotation expands one shorthand token into hand classes.
func expandNotation(token string) ([]HandClass, error) {
	if strings.HasSuffix(token, "+") {
		return expandPlus(strings.TrimSuffix(token, "+"))
	}
	if idx := strings.Index(token, "-"); idx > 0 {
		return expandDash(token[:idx], token[idx+1:])
	}
	h, err := ParseHandClass(token)
	if err != nil {
		return nil, err
	}
	return []HandClass{h}, nil
}

// expandPlus handles "TT+" (pairs up to AA) and "KTs+" (KTs, KJs, KQs:
// same high card, low card up to one below the high card).
func expandPlus(base string) ([]HandClass, error) {
	h, err := ParseHandClass(base)
	if err != nil {
		return nil, err
	}
	var classes []HandClass
	if h.Pair() {
		for r := h.High; r <= deck.Ace; r++ {
			classes = append(classes, HandClass{High: r, Low: r})
		}
		return classes, nil
	}
	for lo := h.Low; lo < h.High; lo++ {
		classes = append(classes, HandClass{High: h.High, Low: lo, Suited: h.Suited})
	}
	return classes, nil
}

// expandDash handles "22-66" and "A5s-A2s" inclusive spans.
func expandDash(fromKey, toKey string) ([]HandClass, error) {
	from, err := ParseHandClass(fromKey)
	if err != nil {
		return nil, err
	}
	to, err := ParseHandClass(toKey)
	if err != nil {
		return nil, err
	}
	if from.Pair() != to.Pair() || from.Suited != to.Suited {
		return nil, fmt.Errorf("mismatched span %s-%s", fromKey, toKey)
	}
	if from.Pair() {
		lo, hi := from.High, to.High
		if lo > hi {
			lo, hi = hi, lo
		}
		var classes []HandClass
		for r := lo; r <= hi; r++ {
			classes = append(classes, HandClass{High: r, Low: r})
		}
		return classes, nil
	}
	if from.High != to.High {
		return nil, fmt.Errorf("span %s-%s must share the high card", fromKey, toKey)
	}
	lo, hi := from.Low, to.Low
	if lo > hi {
		lo, hi = hi, lo
	}
	var classes []HandClass
	for r := lo; r <= hi; r++ {
		classes = append(classes, HandClass{High: from.High, Low: r, Suited: from.Suited})
	}
	return classes, nil
}
