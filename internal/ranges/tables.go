package ranges

// Hardcoded fallback ranges, used whenever the strategy chart does not
// cover a (scenario, hero, opener) triple. Sourced from standard 100bb
// cash-game charts, simplified to pure and mixed frequencies over the
// canonical 169 classes.

// rfiByPosition holds raise-first-in ranges per hero position. The big
// blind never faces an RFI decision (checking ends the unraised pot).
var rfiByPosition = map[Position]*Range{
	Early: build(
		entry{"99+, AQs+, AKo", Freq{Raise: 1}},
		entry{"88, 77, AJs, ATs, KQs, AQo", Freq{Fold: 0.5, Raise: 0.5}},
	),
	Middle: build(
		entry{"77+, ATs+, KJs+, QJs, AJo+, KQo", Freq{Raise: 1}},
		entry{"66, 55, A9s, A5s-A2s, KTs, JTs, T9s, ATo", Freq{Fold: 0.5, Raise: 0.5}},
	),
	Cutoff: build(
		entry{"55+, A2s+, K9s+, Q9s+, J9s+, T9s, 98s, ATo+, KJo+, QJo", Freq{Raise: 1}},
		entry{"44, 33, 22, K8s, Q8s, T8s, 87s, 76s, A9o, KTo, QTo, JTo", Freq{Fold: 0.5, Raise: 0.5}},
	),
	Button: build(
		entry{"22+, A2s+, K5s+, Q7s+, J7s+, T7s+, 97s+, 86s+, 76s, 65s, A2o+, K9o+, Q9o+, J9o+, T9o", Freq{Raise: 1}},
		entry{"K4s-K2s, Q6s, Q5s, J6s, 96s, 75s, 54s, K8o, Q8o, J8o, T8o, 98o", Freq{Fold: 0.5, Raise: 0.5}},
	),
	SmallBlind: build(
		entry{"55+, A7s+, A5s-A2s, K9s+, Q9s+, J9s+, T9s, 98s, ATo+, KJo+", Freq{Raise: 1}},
		entry{"44-22, A6s, K8s-K6s, Q8s, J8s, T8s, 87s, 76s, 65s, A9o-A7o, KTo, QTo+, JTo", Freq{Fold: 0.4, Raise: 0.4, Call: 0.2}},
	),
}

// limpedByPosition covers pots where players limped in front: raise the
// strong hands for value, come along with hands that flop well.
var limpedByPosition = map[Position]*Range{
	Early: build(
		entry{"99+, AQs+, AKo", Freq{Raise: 1}},
		entry{"88-22, AJs-A2s, KQs, KJs, QJs, JTs, AQo, AJo", Freq{Call: 1}},
	),
	Middle: build(
		entry{"88+, AJs+, KQs, AQo+", Freq{Raise: 1}},
		entry{"77-22, ATs-A2s, KJs, KTs, QJs, QTs, JTs, T9s, 98s, AJo, ATo, KQo", Freq{Call: 1}},
	),
	Cutoff: build(
		entry{"88+, ATs+, KJs+, AJo+, KQo", Freq{Raise: 1}},
		entry{"77-22, A9s-A2s, KTs, K9s, QTs+, J9s+, T8s+, 97s+, 87s, 76s, 65s, ATo, KJo, QJo", Freq{Call: 1}},
	),
	Button: build(
		entry{"77+, ATs+, KJs+, QJs, AJo+, KQo", Freq{Raise: 1}},
		entry{"66-22, A9s-A2s, KTs-K7s, QTs-Q8s, J8s+, T8s+, 97s+, 86s+, 75s+, 65s, 54s, ATo-A7o, KJo-K9o, QTo+, JTo, T9o", Freq{Call: 1}},
	),
	SmallBlind: build(
		entry{"88+, AJs+, KQs, AQo+", Freq{Raise: 1}},
		entry{"77-22, ATs-A2s, KJs-K8s, QTs+, J9s+, T8s+, 98s, 87s, 76s, 65s, AJo-A9o, KQo, KJo, QJo", Freq{Call: 1}},
	),
	BigBlind: build(
		entry{"88+, AJs+, KQs, AQo+", Freq{Raise: 1}},
		// Everything else checks its option for free.
	),
}

// continueVsRaise is the non-BB defense against a single open: tight,
// weighted toward 3-betting the top and flatting the playable middle.
var continueVsRaise = build(
	entry{"QQ+, AKs, AKo", Freq{Raise: 0.8, Call: 0.2}},
	entry{"JJ, TT, AQs, KQs, AQo", Freq{Raise: 0.3, Call: 0.7}},
	entry{"99-66, AJs, ATs, KJs, QJs, JTs, T9s, 98s", Freq{Call: 0.8, Fold: 0.2}},
	entry{"A5s-A2s, KTs, 87s, 76s", Freq{Raise: 0.3, Fold: 0.7}},
	entry{"55-22, A9s-A6s, QTs, J9s, AJo, KQo", Freq{Call: 0.4, Fold: 0.6}},
)

// bbDefenseVsOpener holds the big blind's defense, indexed by the opener's
// position: vs late opens the blind defends far wider.
var bbDefenseVsOpener = map[Position]*Range{
	Early: build(
		entry{"QQ+, AKs", Freq{Raise: 0.7, Call: 0.3}},
		entry{"JJ-77, AQs-ATs, KQs, KJs, QJs, JTs, T9s, 98s, AKo, AQo", Freq{Call: 1}},
		entry{"66-22, A9s-A2s, KTs, K9s, QTs, J9s, 87s, 76s, 65s, AJo, KQo", Freq{Call: 0.6, Fold: 0.4}},
	),
	Middle: build(
		entry{"JJ+, AQs+, AKo", Freq{Raise: 0.6, Call: 0.4}},
		entry{"TT-66, AJs-A9s, KQs-KTs, QJs, QTs, JTs, T9s, 98s, 87s, AQo, AJo, KQo", Freq{Call: 1}},
		entry{"55-22, A8s-A2s, K9s, Q9s, J9s, T8s, 76s, 65s, 54s, ATo, KJo, QJo", Freq{Call: 0.7, Fold: 0.3}},
	),
	Cutoff: build(
		entry{"TT+, AQs+, A5s-A2s, AQo+", Freq{Raise: 0.5, Call: 0.5}},
		entry{"99-22, AJs-A6s, K8s+, Q9s+, J9s+, T8s+, 97s+, 87s, 76s, 65s, 54s, AJo, ATo, KQo, KJo, QJo, JTo", Freq{Call: 1}},
	),
	Button: build(
		entry{"99+, AJs+, A5s-A2s, KQs, AJo+, KQo", Freq{Raise: 0.45, Call: 0.55}},
		entry{"88-22, ATs-A2s, K5s+, Q8s+, J8s+, T7s+, 96s+, 86s+, 75s+, 65s, 54s, ATo-A8o, KJo-K9o, Q9o+, J9o+, T9o, 98o", Freq{Call: 1}},
	),
	SmallBlind: build(
		entry{"99+, ATs+, A5s-A2s, KJs+, ATo+, KQo", Freq{Raise: 0.5, Call: 0.5}},
		entry{"88-22, A9s-A2s, K6s+, Q8s+, J8s+, T7s+, 97s+, 86s+, 76s, 65s, 54s, A9o-A5o, K9o+, Q9o+, J9o+, T9o, 98o", Freq{Call: 1}},
	),
}

// vs3Bet is the continue range after the hero's open gets 3-bet.
var vs3Bet = build(
	entry{"KK+, AKs", Freq{Raise: 0.7, Call: 0.3}},
	entry{"QQ, JJ, AQs, AKo", Freq{Raise: 0.25, Call: 0.75}},
	entry{"TT-88, AJs, ATs, KQs, QJs, JTs, AQo", Freq{Call: 0.7, Fold: 0.3}},
	entry{"A5s-A2s, KJs, T9s, 98s", Freq{Raise: 0.2, Call: 0.2, Fold: 0.6}},
)

// vs4Bet is the continue range against a 4-bet (or deeper): narrow, with
// the top jamming.
var vs4Bet = build(
	entry{"KK+", Freq{AllIn: 1}},
	entry{"QQ, AKs", Freq{AllIn: 0.6, Call: 0.4}},
	entry{"JJ, TT, AQs, AKo", Freq{Call: 0.5, Fold: 0.5}},
	entry{"A5s, A4s", Freq{AllIn: 0.2, Fold: 0.8}},
)

// builtinRange resolves the fallback table for a detected situation.
func builtinRange(sit Situation, hero Position, opener Position) *Range {
	switch sit.Scenario {
	case ScenarioRFI:
		if r, ok := rfiByPosition[hero]; ok {
			return r
		}
		// Big blind with no raise in front: check it back.
		return limpedByPosition[BigBlind]
	case ScenarioLimped:
		if r, ok := limpedByPosition[hero]; ok {
			return r
		}
		return limpedByPosition[Button]
	case ScenarioFacingRaise:
		if hero == BigBlind {
			if r, ok := bbDefenseVsOpener[opener]; ok {
				return r
			}
			return bbDefenseVsOpener[Cutoff]
		}
		return continueVsRaise
	case ScenarioFacing3Bet:
		return vs3Bet
	default:
		return vs4Bet
	}
}

// OpenWeights returns, per hand class, the frequency with which a player
// in the given position raises first in. Used to estimate a preflop
// aggressor's range from the outside.
func OpenWeights(pos Position) map[HandClass]float64 {
	r, ok := rfiByPosition[pos]
	if !ok {
		r = rfiByPosition[Cutoff]
	}
	weights := make(map[HandClass]float64, r.Size())
	for _, h := range AllClasses() {
		f := r.Get(h)
		if w := f.Raise + f.AllIn; w > 0 {
			weights[h] = w
		}
	}
	return weights
}

// DefendWeights returns, per hand class, the frequency with which a
// player in the given position flat-calls an open from the opener's
// position. Used to estimate a preflop caller's range.
func DefendWeights(pos, opener Position) map[HandClass]float64 {
	r := builtinRange(Situation{Scenario: ScenarioFacingRaise, OpenerSeat: 0}, pos, opener)
	weights := make(map[HandClass]float64, r.Size())
	for _, h := range AllClasses() {
		if w := r.Get(h).Call; w > 0 {
			weights[h] = w
		}
	}
	return weights
}

// WideWeights returns a uniform weight over all 169 classes, the
// assumption for pots nobody raised.
func WideWeights() map[HandClass]float64 {
	weights := make(map[HandClass]float64, 169)
	for _, h := range AllClasses() {
		weights[h] = 1
	}
	return weights
}
