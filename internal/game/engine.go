package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"gtoholdem/internal/deck"
	"gtoholdem/internal/evaluator"
	"gtoholdem/internal/handid"
)

// SeatConfig describes one player joining the table.
type SeatConfig struct {
	ID    string
	Name  string
	Chips int
	Agent Agent
}

// Engine runs a cash game from the first hand until one player holds all
// the chips. A single goroutine owns all mutable state; agents and
// observers only ever see deep-copied snapshots.
type Engine struct {
	logger *log.Logger
	clock  quartz.Clock
	rng    *rand.Rand
	deck   *deck.Deck

	state  *GameState
	agents map[string]Agent

	observer Observer
	events   EventSink

	revealPacing time.Duration
	maxHands     int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock, for tests.
func WithClock(c quartz.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithDeck replaces the shuffled deck, for deterministic tests.
func WithDeck(d *deck.Deck) Option {
	return func(e *Engine) { e.deck = d }
}

// WithObserver registers a callback invoked with a snapshot after every
// state mutation.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithEvents registers a sink for lifecycle events.
func WithEvents(s EventSink) Option {
	return func(e *Engine) { e.events = s }
}

// WithRevealPacing sets the delay between community card reveals when no
// betting remains (all-in runouts).
func WithRevealPacing(d time.Duration) Option {
	return func(e *Engine) { e.revealPacing = d }
}

// WithMaxHands stops the game after n hands even if more than one player
// still has chips. Zero means play until a winner emerges.
func WithMaxHands(n int) Option {
	return func(e *Engine) { e.maxHands = n }
}

// New creates an engine for the given seats. Seats are ordered; seat
// indexes are assigned positionally. The rng drives shuffling and must
// not be nil.
func New(logger *log.Logger, rng *rand.Rand, seats []SeatConfig, smallBlind, bigBlind int, opts ...Option) (*Engine, error) {
	if len(seats) < 2 {
		return nil, fmt.Errorf("need at least 2 players, got %d", len(seats))
	}
	if smallBlind <= 0 || bigBlind < smallBlind {
		return nil, fmt.Errorf("invalid blinds %d/%d", smallBlind, bigBlind)
	}

	st := &GameState{
		GameID:     handid.NewGameID(),
		Phase:      PhaseWaiting,
		SmallBlind: smallBlind,
		BigBlind:   bigBlind,
		DealerSeat: len(seats) - 1, // first rotation lands on seat 0
	}
	agents := make(map[string]Agent, len(seats))
	for i, sc := range seats {
		if sc.Agent == nil {
			return nil, fmt.Errorf("seat %d (%s): nil agent", i, sc.ID)
		}
		if sc.Chips <= 0 {
			return nil, fmt.Errorf("seat %d (%s): invalid stack %d", i, sc.ID, sc.Chips)
		}
		if st.PlayerByID(sc.ID) != nil {
			return nil, fmt.Errorf("duplicate player id %q", sc.ID)
		}
		st.Players = append(st.Players, &Player{
			ID:     sc.ID,
			Name:   sc.Name,
			Seat:   i,
			Chips:  sc.Chips,
			Status: StatusActive,
		})
		agents[sc.ID] = sc.Agent
	}

	e := &Engine{
		logger: logger.WithPrefix("engine"),
		clock:  quartz.NewReal(),
		rng:    rng,
		state:  st,
		agents: agents,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.deck == nil {
		e.deck = deck.New(rng)
	}
	return e, nil
}

// State returns a snapshot of the current game state.
func (e *Engine) State() Snapshot {
	return e.state.snapshot("", nil)
}

// Run plays hands until only one funded player remains, the hand limit is
// reached, or the context is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Info("game starting", "game_id", e.state.GameID, "players", len(e.state.Players),
		"blinds", fmt.Sprintf("%d/%d", e.state.SmallBlind, e.state.BigBlind))
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.state.fundedCount() < 2 {
			break
		}
		if e.maxHands > 0 && e.state.HandNumber >= e.maxHands {
			e.logger.Info("hand limit reached", "hands", e.state.HandNumber)
			return nil
		}
		if err := e.playHand(ctx); err != nil {
			return err
		}
	}
	e.state.Phase = PhaseGameOver
	e.emitSnapshot()
	e.emitEvent(GameOverEvent{GameID: e.state.GameID, timestamp: e.clock.Now()})
	e.logger.Info("game over", "game_id", e.state.GameID, "hands", e.state.HandNumber)
	return nil
}

func (e *Engine) playHand(ctx context.Context) error {
	st := e.state

	// HAND_INIT
	st.Phase = PhaseHandInit
	st.HandNumber++
	st.HandID = handid.NewHandID(st.GameID, st.HandNumber)
	st.Community = nil
	st.Pots = nil
	st.Winners = nil
	st.ActionLog = nil
	st.CurrentBet = 0
	st.LastRaise = st.BigBlind
	for _, p := range st.Players {
		p.resetForHand()
	}

	e.rotateDealer()
	e.assignBlindSeats()
	e.postBlind(st.playerBySeat(st.SBSeat), st.SmallBlind)
	e.postBlind(st.playerBySeat(st.BBSeat), st.BigBlind)
	st.CurrentBet = st.BigBlind
	st.Pots = BuildSidePots(st.Players)

	e.deck.Reset()
	e.dealHoleCards()

	e.logger.Info("hand starting", "hand_id", st.HandID, "dealer", st.DealerSeat,
		"sb", st.SBSeat, "bb", st.BBSeat)
	e.emitEvent(HandStartEvent{
		HandID:     st.HandID,
		HandNumber: st.HandNumber,
		DealerSeat: st.DealerSeat,
		SmallBlind: st.SmallBlind,
		BigBlind:   st.BigBlind,
		timestamp:  e.clock.Now(),
	})
	e.emitSnapshot()

	streets := []Phase{PhasePreFlop, PhaseFlop, PhaseTurn, PhaseRiver}
	for _, street := range streets {
		st.Phase = street
		if street != PhasePreFlop {
			if err := e.revealStreet(ctx, street); err != nil {
				return err
			}
		}
		if st.unfoldedCount() <= 1 {
			continue // keep phases advancing; awarded below
		}
		if st.voluntaryCount() <= 1 {
			// No betting possible; reveal remaining streets at a fixed
			// pace and go straight to showdown.
			continue
		}
		if err := e.bettingRound(ctx, street); err != nil {
			return err
		}
		if st.unfoldedCount() <= 1 {
			e.awardUncontested()
			e.finishHand()
			return nil
		}
	}

	st.Phase = PhaseShowdown
	e.showdown()
	e.finishHand()
	return nil
}

// rotateDealer moves the button to the next funded seat clockwise.
func (e *Engine) rotateDealer() {
	st := e.state
	for _, p := range st.Players {
		p.IsDealer = false
	}
	n := len(st.Players)
	for i := 1; i <= n; i++ {
		seat := (st.DealerSeat + i) % n
		p := st.playerBySeat(seat)
		if p != nil && p.Status == StatusActive {
			st.DealerSeat = seat
			p.IsDealer = true
			return
		}
	}
}

// assignBlindSeats sets SBSeat and BBSeat from the dealer position.
// Heads-up the dealer posts the small blind.
func (e *Engine) assignBlindSeats() {
	st := e.state
	if st.activeCount() == 2 {
		st.SBSeat = st.DealerSeat
		st.BBSeat = e.nextActiveSeat(st.DealerSeat)
		return
	}
	st.SBSeat = e.nextActiveSeat(st.DealerSeat)
	st.BBSeat = e.nextActiveSeat(st.SBSeat)
}

// nextActiveSeat returns the first seat clockwise of seat holding a
// player dealt into this hand.
func (e *Engine) nextActiveSeat(seat int) int {
	st := e.state
	n := len(st.Players)
	for i := 1; i <= n; i++ {
		s := (seat + i) % n
		p := st.playerBySeat(s)
		if p != nil && p.Status == StatusActive {
			return s
		}
	}
	return seat
}

func (st *GameState) activeCount() int {
	n := 0
	for _, p := range st.Players {
		if p.Status == StatusActive {
			n++
		}
	}
	return n
}

// postBlind moves chips into the pot for a forced bet. A short stack
// posts all-in for whatever it has.
func (e *Engine) postBlind(p *Player, amount int) {
	if p == nil {
		return
	}
	if amount >= p.Chips {
		amount = p.Chips
		p.Status = StatusAllIn
	}
	p.Chips -= amount
	p.Bet += amount
	p.TotalBet += amount
}

// dealHoleCards deals two cards to each player in the hand, one at a
// time starting left of the dealer.
func (e *Engine) dealHoleCards() {
	st := e.state
	n := len(st.Players)
	for round := 0; round < 2; round++ {
		for i := 1; i <= n; i++ {
			p := st.playerBySeat((st.DealerSeat + i) % n)
			if p == nil || !p.InHand() {
				continue
			}
			card, ok := e.deck.Deal()
			if !ok {
				e.logger.Error("deck exhausted dealing hole cards", "hand_id", st.HandID)
				return
			}
			p.HoleCards = append(p.HoleCards, card)
		}
	}
}

// revealStreet burns one card and deals the community cards for the
// street. The flop lands as a single batched reveal.
func (e *Engine) revealStreet(ctx context.Context, street Phase) error {
	st := e.state
	if st.voluntaryCount() <= 1 && e.revealPacing > 0 {
		if err := e.pace(ctx); err != nil {
			return err
		}
	}
	e.deck.Burn()
	count := 1
	if street == PhaseFlop {
		count = 3
	}
	revealed := make([]deck.Card, 0, count)
	for i := 0; i < count; i++ {
		card, ok := e.deck.Deal()
		if !ok {
			return fmt.Errorf("deck exhausted revealing %s", street)
		}
		revealed = append(revealed, card)
	}
	st.Community = append(st.Community, revealed...)
	e.logger.Info("street dealt", "hand_id", st.HandID, "street", street, "board", deck.Notation(st.Community))
	e.emitEvent(StreetChangeEvent{
		Street:    street,
		Revealed:  revealed,
		Community: append([]deck.Card(nil), st.Community...),
		timestamp: e.clock.Now(),
	})
	e.emitSnapshot()
	return nil
}

// pace waits the reveal delay, honoring cancellation.
func (e *Engine) pace(ctx context.Context) error {
	timer := e.clock.NewTimer(e.revealPacing)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// bettingRound runs one full round of betting for the street. Preflop
// the blinds carry into the round; postflop bets start fresh.
func (e *Engine) bettingRound(ctx context.Context, street Phase) error {
	st := e.state
	if street != PhasePreFlop {
		for _, p := range st.Players {
			p.Bet = 0
		}
		st.CurrentBet = 0
		st.LastRaise = st.BigBlind
	}
	for _, p := range st.Players {
		p.Acted = false
	}

	seat := e.firstToActSeat(street)
	n := len(st.Players)
	for !e.bettingComplete() {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := st.playerBySeat(seat)
		seat = (seat + 1) % n
		if p == nil || !p.CanAct() || (p.Acted && p.Bet == st.CurrentBet) {
			continue
		}
		legal := CalculateLegalActions(p, st)
		action := e.requestDecision(ctx, p, legal)
		action = ValidateAction(p, st, action)
		e.applyAction(p, action, street)
		st.Pots = BuildSidePots(st.Players)
		e.logger.Info("action", "hand_id", st.HandID, "player", p.ID,
			"type", action.Type, "amount", action.Amount, "pot", PotTotal(st.Pots))
		e.emitEvent(PlayerActionEvent{
			PlayerID:  p.ID,
			Street:    street,
			Action:    action,
			PotAfter:  PotTotal(st.Pots),
			timestamp: e.clock.Now(),
		})
		e.emitSnapshot()
		if st.unfoldedCount() <= 1 {
			return nil
		}
	}
	return nil
}

// firstToActSeat returns the seat opening the street. Preflop action
// starts left of the big blind (heads-up that is the dealer); postflop
// it starts left of the dealer.
func (e *Engine) firstToActSeat(street Phase) int {
	st := e.state
	if street == PhasePreFlop {
		return (st.BBSeat + 1) % len(st.Players)
	}
	return (st.DealerSeat + 1) % len(st.Players)
}

// bettingComplete reports whether every player still able to act has
// acted and matched the current bet.
func (e *Engine) bettingComplete() bool {
	for _, p := range e.state.Players {
		if !p.CanAct() {
			continue
		}
		if !p.Acted || p.Bet != e.state.CurrentBet {
			return false
		}
	}
	return true
}

// requestDecision asks the player's agent for a move. Any agent failure
// degrades to check-or-fold rather than stalling the hand.
func (e *Engine) requestDecision(ctx context.Context, p *Player, legal []LegalAction) Action {
	agent, ok := e.agents[p.ID]
	if !ok {
		e.logger.Error("no agent registered", "player", p.ID)
		return Action{Type: Check}
	}
	snap := e.state.snapshot(p.ID, legal)
	snap.redactFor(p.ID)
	action, err := agent.MakeDecision(ctx, snap, legal)
	if err != nil {
		e.logger.Warn("agent decision failed, checking or folding", "player", p.ID, "err", err)
		return Action{Type: Check}
	}
	return action
}

// applyAction mutates player and table state for a validated action.
func (e *Engine) applyAction(p *Player, action Action, street Phase) {
	st := e.state
	p.Acted = true

	switch action.Type {
	case Fold:
		p.Status = StatusFolded

	case Check:
		// no chips move

	case Call:
		owed := st.CurrentBet - p.Bet
		if owed > p.Chips {
			owed = p.Chips
		}
		p.Chips -= owed
		p.Bet += owed
		p.TotalBet += owed
		if p.Chips == 0 {
			p.Status = StatusAllIn
		}

	case Bet, Raise:
		delta := action.Amount - p.Bet
		p.Chips -= delta
		p.Bet = action.Amount
		p.TotalBet += delta
		st.LastRaise = action.Amount - st.CurrentBet
		st.CurrentBet = action.Amount
		if p.Chips == 0 {
			p.Status = StatusAllIn
		}
		e.reopenAction(p)

	case AllIn:
		delta := p.Chips
		p.Chips = 0
		p.Bet += delta
		p.TotalBet += delta
		p.Status = StatusAllIn
		if p.Bet > st.CurrentBet {
			increment := p.Bet - st.CurrentBet
			st.CurrentBet = p.Bet
			// An all-in short of a full raise does not reopen the
			// action for players who already acted.
			if increment >= st.LastRaise {
				st.LastRaise = increment
				e.reopenAction(p)
			}
		}
	}

	st.ActionLog = append(st.ActionLog, ActionRecord{
		PlayerID: p.ID,
		Seat:     p.Seat,
		Street:   street,
		Type:     action.Type,
		Amount:   action.Amount,
	})
}

// reopenAction clears the acted flag for everyone but the aggressor so
// they get another turn against the new bet level.
func (e *Engine) reopenAction(aggressor *Player) {
	for _, p := range e.state.Players {
		if p != aggressor && p.CanAct() {
			p.Acted = false
		}
	}
}

// awardUncontested hands the whole pot to the last unfolded player.
func (e *Engine) awardUncontested() {
	st := e.state
	var survivor *Player
	for _, p := range st.Players {
		if p.InHand() {
			survivor = p
			break
		}
	}
	if survivor == nil {
		e.logger.Error("no players left in hand", "hand_id", st.HandID)
		return
	}
	st.Pots = BuildSidePots(st.Players)
	total := PotTotal(st.Pots)
	survivor.Chips += total
	st.Winners = []Winner{{PlayerID: survivor.ID, PotIndex: 0, Amount: total}}
	e.logger.Info("pot awarded uncontested", "hand_id", st.HandID, "player", survivor.ID, "amount", total)
}

// showdown evaluates every live hand and distributes the pots.
func (e *Engine) showdown() {
	st := e.state
	hands := make(map[string]*evaluator.EvaluatedHand)
	for _, p := range st.Players {
		if !p.InHand() || len(p.HoleCards) != 2 {
			continue
		}
		cards := make([]deck.Card, 0, 7)
		cards = append(cards, p.HoleCards...)
		cards = append(cards, st.Community...)
		hand, err := evaluator.Evaluate(cards)
		if err != nil {
			e.logger.Error("hand evaluation failed", "hand_id", st.HandID, "player", p.ID, "err", err)
			continue
		}
		hands[p.ID] = &hand
		e.logger.Info("showdown hand", "hand_id", st.HandID, "player", p.ID,
			"hole", deck.Notation(p.HoleCards), "hand", hand.Description)
	}

	st.Pots = BuildSidePots(st.Players)
	winners := DistributePots(st.Pots, st.Players, hands, st.DealerSeat, e.logger)
	for _, w := range winners {
		if p := st.PlayerByID(w.PlayerID); p != nil {
			p.Chips += w.Amount
		}
	}
	st.Winners = winners
}

// finishHand emits the hand result, busts broke players, and returns the
// table to a state ready for the next hand.
func (e *Engine) finishHand() {
	st := e.state
	e.emitEvent(HandEndEvent{
		HandID:    st.HandID,
		Winners:   append([]Winner(nil), st.Winners...),
		Board:     append([]deck.Card(nil), st.Community...),
		timestamp: e.clock.Now(),
	})
	e.emitSnapshot()

	st.Phase = PhaseCleanup
	for _, p := range st.Players {
		if p.Chips == 0 && p.Status != StatusSittingOut {
			if p.Status != StatusBusted {
				e.logger.Info("player busted", "hand_id", st.HandID, "player", p.ID)
			}
			p.Status = StatusBusted
		}
	}
	e.emitSnapshot()
}

func (e *Engine) emitSnapshot() {
	if e.observer != nil {
		e.observer(e.state.snapshot("", nil))
	}
}

func (e *Engine) emitEvent(ev Event) {
	if e.events != nil {
		e.events(ev)
	}
}
