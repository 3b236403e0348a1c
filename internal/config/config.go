// Package config loads the table and opponent configuration from HCL.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// GameConfig represents the complete game configuration
type GameConfig struct {
	Table Table `hcl:"table,block"`
	Bots  []Bot `hcl:"bot,block"`

	// ChartFile optionally overrides the builtin preflop ranges.
	ChartFile string `hcl:"chart_file,optional"`
	LogLevel  string `hcl:"log_level,optional"`
}

// Table defines the table stakes and seating
type Table struct {
	MaxPlayers int `hcl:"max_players,optional"`
	SmallBlind int `hcl:"small_blind"`
	BigBlind   int `hcl:"big_blind"`
	BuyIn      int `hcl:"buy_in,optional"`
	MaxHands   int `hcl:"max_hands,optional"`
}

// Bot defines one automated opponent
type Bot struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy,optional"` // "gto" or "call"
	BuyIn    int    `hcl:"buy_in,optional"`
}

// Default returns the default game configuration
func Default() *GameConfig {
	return &GameConfig{
		Table: Table{
			MaxPlayers: 6,
			SmallBlind: 5,
			BigBlind:   10,
			BuyIn:      1000,
		},
		Bots: []Bot{
			{Name: "gto-1", Strategy: "gto"},
			{Name: "gto-2", Strategy: "gto"},
		},
		LogLevel: "info",
	}
}

// Load reads a game configuration from an HCL file. A missing file
// yields the defaults.
func Load(filename string) (*GameConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg GameConfig
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *GameConfig) applyDefaults() {
	if c.Table.MaxPlayers == 0 {
		c.Table.MaxPlayers = 6
	}
	if c.Table.BuyIn == 0 {
		c.Table.BuyIn = c.Table.BigBlind * 100
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	for i := range c.Bots {
		if c.Bots[i].Strategy == "" {
			c.Bots[i].Strategy = "gto"
		}
		if c.Bots[i].BuyIn == 0 {
			c.Bots[i].BuyIn = c.Table.BuyIn
		}
	}
}

// Validate checks the configuration for playable values.
func (c *GameConfig) Validate() error {
	if c.Table.SmallBlind <= 0 || c.Table.BigBlind <= 0 {
		return fmt.Errorf("config: blinds must be positive, got %d/%d", c.Table.SmallBlind, c.Table.BigBlind)
	}
	if c.Table.BigBlind < c.Table.SmallBlind {
		return fmt.Errorf("config: big blind %d below small blind %d", c.Table.BigBlind, c.Table.SmallBlind)
	}
	if c.Table.MaxPlayers < 2 || c.Table.MaxPlayers > 9 {
		return fmt.Errorf("config: max players must be 2-9, got %d", c.Table.MaxPlayers)
	}
	if c.Table.BuyIn < c.Table.BigBlind*10 {
		return fmt.Errorf("config: buy-in %d below 10 big blinds", c.Table.BuyIn)
	}
	if len(c.Bots) >= c.Table.MaxPlayers {
		return fmt.Errorf("config: %d bots leave no seat at a %d-max table", len(c.Bots), c.Table.MaxPlayers)
	}
	seen := map[string]bool{}
	for _, b := range c.Bots {
		if b.Name == "" {
			return fmt.Errorf("config: bot with empty name")
		}
		if seen[b.Name] {
			return fmt.Errorf("config: duplicate bot name %q", b.Name)
		}
		seen[b.Name] = true
		switch b.Strategy {
		case "gto", "call":
		default:
			return fmt.Errorf("config: unknown strategy %q for bot %q", b.Strategy, b.Name)
		}
		if b.BuyIn < c.Table.BigBlind*10 {
			return fmt.Errorf("config: bot %q buy-in %d below 10 big blinds", b.Name, b.BuyIn)
		}
	}
	return nil
}
