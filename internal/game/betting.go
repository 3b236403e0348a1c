package game

// ActionType represents a player action
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (a ActionType) String() string {
	return [...]string{"fold", "check", "call", "bet", "raise", "allin"}[a]
}

// Action is a concrete player decision. For Bet and Raise, Amount is the
// total street-bet level to reach; for Call and AllIn the engine re-derives
// the amount from state and ignores the caller's value.
type Action struct {
	Type   ActionType
	Amount int
}

// LegalAction describes one available action type with its amount bounds.
// Min and Max are zero for Fold, Check and Call (the call amount is implied
// by state); for Bet/Raise they bound the street-bet level; for AllIn both
// equal the player's remaining total.
type LegalAction struct {
	Type ActionType
	Min  int
	Max  int
}

// CalculateLegalActions is a pure function of the acting player and table
// state. A player with no chips or a non-active status has no actions.
func CalculateLegalActions(p *Player, st *GameState) []LegalAction {
	if p == nil || p.Status != StatusActive || p.Chips <= 0 {
		return nil
	}

	owed := st.CurrentBet - p.Bet
	maxTotal := p.Bet + p.Chips

	if owed > 0 {
		// Facing a bet bigger than the stack: the player is priced in and
		// the only move is an all-in call for less.
		if owed > p.Chips {
			return []LegalAction{{Type: AllIn, Min: maxTotal, Max: maxTotal}}
		}

		actions := []LegalAction{
			{Type: Fold},
			{Type: Call},
		}

		// A player who already acted can only owe chips here when the bet
		// rose without a full raise (an incomplete all-in); that does not
		// reopen the action, so the extra amount can be called or folded
		// to but never raised.
		if p.Acted {
			return actions
		}

		minRaiseTo := st.CurrentBet + st.LastRaise
		switch {
		case maxTotal >= minRaiseTo:
			actions = append(actions, LegalAction{Type: Raise, Min: minRaiseTo, Max: maxTotal})
		case maxTotal > st.CurrentBet:
			// Stack covers the call but not a full raise: the only raise
			// available is an incomplete all-in.
			actions = append(actions, LegalAction{Type: AllIn, Min: maxTotal, Max: maxTotal})
		}
		return actions
	}

	// Nothing owed: check, plus an opening bet if the stack allows. The big
	// blind's preflop option is a raise, not a bet, since blinds already
	// seeded a live bet.
	actions := []LegalAction{{Type: Check}}

	bbOption := st.Phase == PhasePreFlop && p.Seat == st.BBSeat && st.CurrentBet > 0
	if bbOption {
		minRaiseTo := st.CurrentBet + st.LastRaise
		if maxTotal >= minRaiseTo {
			actions = append(actions, LegalAction{Type: Raise, Min: minRaiseTo, Max: maxTotal})
		} else {
			actions = append(actions, LegalAction{Type: AllIn, Min: maxTotal, Max: maxTotal})
		}
		return actions
	}

	if maxTotal >= st.BigBlind {
		actions = append(actions, LegalAction{Type: Bet, Min: st.BigBlind, Max: maxTotal})
	} else {
		actions = append(actions, LegalAction{Type: AllIn, Min: maxTotal, Max: maxTotal})
	}
	return actions
}

// ValidateAction clamps a requested action into its legal bounds. Illegal
// action types are downgraded to check when free, fold otherwise; bets and
// raises that would consume the whole stack are promoted to all-in. Call and
// all-in amounts are always re-derived from state rather than trusted.
func ValidateAction(p *Player, st *GameState, req Action) Action {
	legal := CalculateLegalActions(p, st)
	if len(legal) == 0 {
		return Action{Type: Fold}
	}

	la, ok := findLegal(legal, req.Type)
	if !ok {
		// Treat a requested Bet as Raise and vice versa before giving up;
		// callers frequently blur the two.
		switch req.Type {
		case Bet:
			la, ok = findLegal(legal, Raise)
		case Raise:
			la, ok = findLegal(legal, Bet)
		case Call:
			// A call against an over-stack bet is an all-in call.
			la, ok = findLegal(legal, AllIn)
		case AllIn:
			// A jam with no separate all-in action is a raise (or bet)
			// for the whole stack.
			if _, canRaise := findLegal(legal, Raise); canRaise {
				return Action{Type: AllIn, Amount: p.Bet + p.Chips}
			}
			if _, canBet := findLegal(legal, Bet); canBet {
				return Action{Type: AllIn, Amount: p.Bet + p.Chips}
			}
		}
	}
	if !ok {
		if _, canCheck := findLegal(legal, Check); canCheck {
			return Action{Type: Check}
		}
		if _, canFold := findLegal(legal, Fold); canFold {
			return Action{Type: Fold}
		}
		// Priced in: the forced all-in call is the only option left.
		la = legal[0]
	}

	switch la.Type {
	case Fold, Check:
		return Action{Type: la.Type}

	case Call:
		owed := st.CurrentBet - p.Bet
		if owed > p.Chips {
			owed = p.Chips
		}
		return Action{Type: Call, Amount: owed}

	case AllIn:
		return Action{Type: AllIn, Amount: p.Bet + p.Chips}

	default: // Bet or Raise
		amount := req.Amount
		if amount < la.Min {
			amount = la.Min
		}
		if amount > la.Max {
			amount = la.Max
		}
		if amount == p.Bet+p.Chips {
			return Action{Type: AllIn, Amount: amount}
		}
		return Action{Type: la.Type, Amount: amount}
	}
}

func findLegal(legal []LegalAction, t ActionType) (LegalAction, bool) {
	for _, la := range legal {
		if la.Type == t {
			return la, true
		}
	}
	return LegalAction{}, false
}
