package game

import (
	"time"

	"gtoholdem/internal/deck"
)

// EventType identifies a game domain event.
type EventType string

const (
	EventTypeHandStart    EventType = "hand_start"
	EventTypeHandEnd      EventType = "hand_end"
	EventTypeStreetChange EventType = "street_change"
	EventTypePlayerAction EventType = "player_action"
	EventTypeGameOver     EventType = "game_over"
)

// Event represents any event that occurs during a game. The animation
// callback consumes these for dealing/award sequencing; the engine never
// depends on a consumer's completion.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// HandStartEvent is published when a new hand begins.
type HandStartEvent struct {
	HandID     string
	HandNumber int
	DealerSeat int
	SmallBlind int
	BigBlind   int
	timestamp  time.Time
}

func (e HandStartEvent) EventType() EventType { return EventTypeHandStart }
func (e HandStartEvent) Timestamp() time.Time { return e.timestamp }

// StreetChangeEvent is published for each community-card reveal. The flop is
// one batched reveal of three cards.
type StreetChangeEvent struct {
	Street    Phase
	Revealed  []deck.Card
	Community []deck.Card
	timestamp time.Time
}

func (e StreetChangeEvent) EventType() EventType { return EventTypeStreetChange }
func (e StreetChangeEvent) Timestamp() time.Time { return e.timestamp }

// PlayerActionEvent is published after each validated action is applied.
type PlayerActionEvent struct {
	PlayerID  string
	Street    Phase
	Action    Action
	PotAfter  int
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// HandEndEvent is published after pots are distributed.
type HandEndEvent struct {
	HandID    string
	Winners   []Winner
	Board     []deck.Card
	timestamp time.Time
}

func (e HandEndEvent) EventType() EventType { return EventTypeHandEnd }
func (e HandEndEvent) Timestamp() time.Time { return e.timestamp }

// GameOverEvent is published when fewer than two funded players remain.
type GameOverEvent struct {
	GameID    string
	timestamp time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }
