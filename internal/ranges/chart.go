package ranges

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// ErrEmptyChart means a chart file contained no usable entries. Unlike
// individual malformed entries, which are dropped with a warning, this is
// fatal at startup.
var ErrEmptyChart = errors.New("ranges: strategy chart has no valid entries")

// chartFile is the on-disk JSON shape.
type chartFile struct {
	Version int          `json:"version"`
	Entries []chartEntry `json:"entries"`
}

type chartEntry struct {
	Scenario string               `json:"scenario"`
	Hero     string               `json:"hero"`
	Vs       string               `json:"vs,omitempty"`
	Hands    map[string][]float64 `json:"hands"`
}

type chartKey struct {
	scenario Scenario
	hero     Position
	vs       Position
}

// Chart is a validated strategy-chart lookup. Entries are keyed by
// (scenario, hero position, villain position); scenarios without a
// relevant villain use the hero's own position as the vs key.
type Chart struct {
	version int
	ranges  map[chartKey]*Range
}

// LoadChart reads and validates a strategy chart file.
func LoadChart(path string, logger *log.Logger) (*Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening strategy chart: %w", err)
	}
	defer f.Close()
	return ReadChart(f, logger)
}

// ReadChart parses a strategy chart from a reader. Malformed entries are
// dropped individually with a warning; a chart with zero surviving
// entries returns ErrEmptyChart.
func ReadChart(r io.Reader, logger *log.Logger) (*Chart, error) {
	logger = logger.WithPrefix("chart")

	var file chartFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decoding strategy chart: %w", err)
	}
	if file.Version != 1 {
		return nil, fmt.Errorf("unsupported strategy chart version %d", file.Version)
	}

	chart := &Chart{version: file.Version, ranges: make(map[chartKey]*Range)}
	for i, e := range file.Entries {
		key, rng, err := parseChartEntry(e)
		if err != nil {
			logger.Warn("dropping malformed chart entry", "index", i,
				"scenario", e.Scenario, "hero", e.Hero, "err", err)
			continue
		}
		chart.ranges[key] = rng
	}
	if len(chart.ranges) == 0 {
		return nil, ErrEmptyChart
	}
	logger.Info("strategy chart loaded", "version", file.Version,
		"entries", len(chart.ranges), "dropped", len(file.Entries)-len(chart.ranges))
	return chart, nil
}

func parseChartEntry(e chartEntry) (chartKey, *Range, error) {
	scenario, err := parseScenario(e.Scenario)
	if err != nil {
		return chartKey{}, nil, err
	}
	hero, err := parsePosition(e.Hero)
	if err != nil {
		return chartKey{}, nil, err
	}
	vs := hero
	if e.Vs != "" {
		if vs, err = parsePosition(e.Vs); err != nil {
			return chartKey{}, nil, err
		}
	}
	if len(e.Hands) == 0 {
		return chartKey{}, nil, errors.New("no hands")
	}

	rng := &Range{freqs: make(map[HandClass]Freq, len(e.Hands))}
	for key, tuple := range e.Hands {
		class, err := ParseHandClass(key)
		if err != nil {
			return chartKey{}, nil, err
		}
		if len(tuple) != 4 {
			return chartKey{}, nil, fmt.Errorf("hand %s: want 4 frequencies, got %d", key, len(tuple))
		}
		freq := Freq{Fold: tuple[0], Call: tuple[1], Raise: tuple[2], AllIn: tuple[3]}
		if err := freq.Validate(); err != nil {
			return chartKey{}, nil, fmt.Errorf("hand %s: %w", key, err)
		}
		rng.freqs[class] = freq
	}
	return chartKey{scenario: scenario, hero: hero, vs: vs}, rng, nil
}

// Lookup returns the chart range covering the triple, if any.
func (c *Chart) Lookup(scenario Scenario, hero, vs Position) (*Range, bool) {
	if c == nil {
		return nil, false
	}
	if r, ok := c.ranges[chartKey{scenario: scenario, hero: hero, vs: vs}]; ok {
		return r, true
	}
	// Entries without a villain position are keyed on the hero.
	r, ok := c.ranges[chartKey{scenario: scenario, hero: hero, vs: hero}]
	return r, ok
}

func parseScenario(s string) (Scenario, error) {
	for sc := ScenarioRFI; sc <= ScenarioFacing4Bet; sc++ {
		if sc.String() == s {
			return sc, nil
		}
	}
	return 0, fmt.Errorf("unknown scenario %q", s)
}

func parsePosition(s string) (Position, error) {
	for p := Early; p <= BigBlind; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown position %q", s)
}
