// Package display renders game snapshots and events for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gtoholdem/internal/deck"
	"gtoholdem/internal/game"
)

// Styles contains styling for game display
type Styles struct {
	Header    lipgloss.Style
	SubHeader lipgloss.Style
	Action    lipgloss.Style
	Winner    lipgloss.Style
	CardRed   lipgloss.Style
	CardBlack lipgloss.Style
	Pot       lipgloss.Style
	Separator lipgloss.Style
	Hero      lipgloss.Style
	Muted     lipgloss.Style
}

// NewStyles creates a new set of display styles
func NewStyles() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2).
			Bold(true),
		SubHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Action: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		Winner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		CardRed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true),
		Pot: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Hero: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// Renderer writes a running commentary of a game to a terminal. Attach
// HandleEvent as the engine's event sink and Observe as its observer.
type Renderer struct {
	w      io.Writer
	styles *Styles

	// heroID marks the player whose hole cards are always shown.
	heroID string

	lastPhase game.Phase
}

// NewRenderer creates a renderer writing to w. heroID may be empty for
// bot-only games; every hand is then rendered face up.
func NewRenderer(w io.Writer, heroID string) *Renderer {
	return &Renderer{
		w:      w,
		styles: NewStyles(),
		heroID: heroID,
	}
}

// HandleEvent renders one game event.
func (r *Renderer) HandleEvent(ev game.Event) {
	switch e := ev.(type) {
	case game.HandStartEvent:
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, r.styles.Separator.Render(strings.Repeat("─", 48)))
		fmt.Fprintf(r.w, "Hand #%d • dealer seat %d • $%d/$%d\n",
			e.HandNumber, e.DealerSeat, e.SmallBlind, e.BigBlind)
	case game.StreetChangeEvent:
		fmt.Fprintln(r.w, r.styles.Header.Render(fmt.Sprintf("*** %s ***", strings.ToUpper(e.Street.String()))))
		fmt.Fprintf(r.w, "Board: %s\n", r.FormatCards(e.Community))
	case game.PlayerActionEvent:
		line := fmt.Sprintf("%s %s", e.PlayerID, describeAction(e.Action))
		fmt.Fprintf(r.w, "%s %s\n",
			r.styles.Action.Render(line),
			r.styles.Muted.Render(fmt.Sprintf("(pot %d)", e.PotAfter)))
	case game.HandEndEvent:
		for _, w := range e.Winners {
			line := fmt.Sprintf("%s wins %d", w.PlayerID, w.Amount)
			if w.Hand != nil {
				line += " with " + w.Hand.Description
			}
			fmt.Fprintln(r.w, r.styles.Winner.Render(line))
		}
	case game.GameOverEvent:
		fmt.Fprintln(r.w, r.styles.Header.Render("*** GAME OVER ***"))
	}
}

// Observe renders the table state at the start of each betting street,
// including the hero's hole cards. Attach as the engine observer.
func (r *Renderer) Observe(snap game.Snapshot) {
	if !snap.Phase.IsStreet() || snap.Phase == r.lastPhase {
		return
	}
	r.lastPhase = snap.Phase
	r.renderSeats(snap)
}

func (r *Renderer) renderSeats(snap game.Snapshot) {
	for _, pv := range snap.Players {
		if pv.Status == game.StatusBusted || pv.Status == game.StatusSittingOut {
			continue
		}
		marker := " "
		if pv.IsDealer {
			marker = "D"
		}
		name := pv.Name
		if name == "" {
			name = pv.ID
		}
		hole := ""
		if len(pv.HoleCards) == 2 && (r.heroID == "" || pv.ID == r.heroID) {
			hole = "  " + r.FormatCards(pv.HoleCards)
		}
		line := fmt.Sprintf("[%s] %-12s $%-6d %s%s", marker, name, pv.Chips, pv.Status, hole)
		if pv.ID == r.heroID {
			fmt.Fprintln(r.w, r.styles.Hero.Render(line))
		} else {
			fmt.Fprintln(r.w, line)
		}
	}
	fmt.Fprintln(r.w, r.styles.Pot.Render(fmt.Sprintf("Pot: %d", snap.PotTotal())))
}

// FormatCards renders cards with suit coloring.
func (r *Renderer) FormatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		if c.Suit.IsRed() {
			parts[i] = r.styles.CardRed.Render(c.String())
		} else {
			parts[i] = r.styles.CardBlack.Render(c.String())
		}
	}
	return strings.Join(parts, " ")
}

// ShowShowdown prints every live hand face up with its evaluation.
func (r *Renderer) ShowShowdown(snap game.Snapshot) {
	fmt.Fprintln(r.w, r.styles.SubHeader.Render("*** SHOWDOWN ***"))
	for _, pv := range snap.Players {
		if pv.Status != game.StatusActive && pv.Status != game.StatusAllIn {
			continue
		}
		if len(pv.HoleCards) != 2 {
			continue
		}
		fmt.Fprintf(r.w, "%s shows %s\n", pv.ID, r.FormatCards(pv.HoleCards))
	}
}

func describeAction(a game.Action) string {
	switch a.Type {
	case game.Fold:
		return "folds"
	case game.Check:
		return "checks"
	case game.Call:
		return "calls"
	case game.Bet:
		return fmt.Sprintf("bets %d", a.Amount)
	case game.Raise:
		return fmt.Sprintf("raises to %d", a.Amount)
	case game.AllIn:
		return fmt.Sprintf("goes all-in for %d", a.Amount)
	default:
		return a.Type.String()
	}
}
