package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gtoholdem/internal/display"
	"gtoholdem/internal/game"
)

// consoleAgent prompts the human on stdin for each decision. Bad input
// re-prompts; EOF folds the hand and keeps folding until the game ends.
type consoleAgent struct {
	in       *bufio.Scanner
	out      io.Writer
	renderer *display.Renderer
	eof      bool
}

func newConsoleAgent(in io.Reader, out io.Writer, renderer *display.Renderer) *consoleAgent {
	return &consoleAgent{
		in:       bufio.NewScanner(in),
		out:      out,
		renderer: renderer,
	}
}

// MakeDecision implements game.Agent.
func (a *consoleAgent) MakeDecision(_ context.Context, snap game.Snapshot, legal []game.LegalAction) (game.Action, error) {
	if a.eof {
		return fallback(legal), nil
	}

	hero, ok := snap.PlayerView(snap.ToAct)
	if ok && len(hero.HoleCards) == 2 {
		fmt.Fprintf(a.out, "Your hand: %s\n", a.renderer.FormatCards(hero.HoleCards))
	}

	for {
		fmt.Fprintf(a.out, "Action [%s]: ", promptChoices(legal, snap, hero))
		if !a.in.Scan() {
			a.eof = true
			fmt.Fprintln(a.out)
			return fallback(legal), nil
		}
		act, err := parseAction(a.in.Text(), legal)
		if err != nil {
			fmt.Fprintln(a.out, err)
			continue
		}
		return act, nil
	}
}

// promptChoices renders the legal actions as a compact prompt.
func promptChoices(legal []game.LegalAction, snap game.Snapshot, hero game.PlayerView) string {
	var parts []string
	for _, la := range legal {
		switch la.Type {
		case game.Fold:
			parts = append(parts, "(f)old")
		case game.Check:
			parts = append(parts, "(c)heck")
		case game.Call:
			owed := snap.CurrentBet - hero.Bet
			if owed > hero.Chips {
				owed = hero.Chips
			}
			parts = append(parts, fmt.Sprintf("(c)all %d", owed))
		case game.Bet:
			parts = append(parts, fmt.Sprintf("(b)et %d-%d", la.Min, la.Max))
		case game.Raise:
			parts = append(parts, fmt.Sprintf("(r)aise to %d-%d", la.Min, la.Max))
		case game.AllIn:
			parts = append(parts, fmt.Sprintf("(a)ll-in %d", la.Max))
		}
	}
	return strings.Join(parts, ", ")
}

// parseAction turns user input like "f", "call", "b 50" or "r 120" into
// an action from the legal set.
func parseAction(input string, legal []game.LegalAction) (game.Action, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(fields) == 0 {
		return game.Action{}, fmt.Errorf("enter an action")
	}

	find := func(t game.ActionType) (game.LegalAction, bool) {
		for _, la := range legal {
			if la.Type == t {
				return la, true
			}
		}
		return game.LegalAction{}, false
	}

	amount := 0
	if len(fields) > 1 {
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return game.Action{}, fmt.Errorf("bad amount %q", fields[1])
		}
		amount = n
	}

	switch fields[0] {
	case "f", "fold":
		if _, ok := find(game.Fold); !ok {
			return game.Action{}, fmt.Errorf("folding is not available")
		}
		return game.Action{Type: game.Fold}, nil
	case "c", "check", "call":
		if _, ok := find(game.Check); ok {
			return game.Action{Type: game.Check}, nil
		}
		if _, ok := find(game.Call); ok {
			return game.Action{Type: game.Call}, nil
		}
		return game.Action{}, fmt.Errorf("checking or calling is not available")
	case "b", "bet":
		la, ok := find(game.Bet)
		if !ok {
			return game.Action{}, fmt.Errorf("betting is not available")
		}
		return boundedAction(game.Bet, amount, la)
	case "r", "raise":
		la, ok := find(game.Raise)
		if !ok {
			return game.Action{}, fmt.Errorf("raising is not available")
		}
		return boundedAction(game.Raise, amount, la)
	case "a", "allin", "all-in":
		if la, ok := find(game.AllIn); ok {
			return game.Action{Type: game.AllIn, Amount: la.Max}, nil
		}
		// Shoving via the max bet or raise.
		for _, t := range []game.ActionType{game.Raise, game.Bet} {
			if la, ok := find(t); ok {
				return game.Action{Type: t, Amount: la.Max}, nil
			}
		}
		return game.Action{}, fmt.Errorf("going all-in is not available")
	default:
		return game.Action{}, fmt.Errorf("unknown action %q", fields[0])
	}
}

func boundedAction(t game.ActionType, amount int, la game.LegalAction) (game.Action, error) {
	if amount == 0 {
		amount = la.Min
	}
	if amount < la.Min || amount > la.Max {
		return game.Action{}, fmt.Errorf("amount must be between %d and %d", la.Min, la.Max)
	}
	return game.Action{Type: t, Amount: amount}, nil
}

// fallback picks the cheapest way out when stdin is gone.
func fallback(legal []game.LegalAction) game.Action {
	for _, t := range []game.ActionType{game.Check, game.Fold} {
		for _, la := range legal {
			if la.Type == t {
				return game.Action{Type: t}
			}
		}
	}
	if len(legal) > 0 {
		return game.Action{Type: legal[0].Type, Amount: legal[0].Min}
	}
	return game.Action{Type: game.Check}
}
