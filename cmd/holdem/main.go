package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"gtoholdem/internal/config"
	"gtoholdem/internal/ranges"
	"gtoholdem/internal/solver"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type CLI struct {
	Config  string `short:"c" help:"Path to game configuration (HCL)" default:"holdem.hcl"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Play        PlayCmd        `cmd:"" default:"1" help:"Play against the bots"`
	Simulate    SimulateCmd    `cmd:"" help:"Run bot-vs-bot games and report results"`
	ProbeSolver ProbeSolverCmd `cmd:"" name:"probe-solver" help:"Check the external solver service"`
}

// appContext carries what every subcommand needs.
type appContext struct {
	logger *log.Logger
	cfg    *config.GameConfig
	chart  *ranges.Chart
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("No-limit hold'em against GTO bot opponents"))

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if cli.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		logger.Fatal("failed to load configuration", "path", cli.Config, "err", err)
	}
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil && !cli.Verbose {
		logger.SetLevel(lvl)
	}

	var chart *ranges.Chart
	if cfg.ChartFile != "" {
		chart, err = ranges.LoadChart(cfg.ChartFile, logger)
		if err != nil {
			// A corrupt chart is a startup error, not a playtime one.
			logger.Fatal("failed to load preflop chart", "path", cfg.ChartFile, "err", err)
		}
	}

	app := &appContext{logger: logger, cfg: cfg, chart: chart}

	ctx, cancel := signalContext()
	defer cancel()

	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.FatalIfErrorf(kctx.Run(app))
}

// signalContext cancels on interrupt or termination.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		cancel()
	}()
	return ctx, cancel
}

// connectSolver builds and probes the solver bridge. A missing or broken
// service is not fatal; the bots simply stay heuristic.
func connectSolver(ctx context.Context, app *appContext) *solver.Bridge {
	scfg, err := solver.LoadConfig()
	if err != nil {
		app.logger.Warn("solver configuration invalid, playing without solver", "err", err)
		return nil
	}
	client, err := solver.NewClient(scfg, app.logger)
	if err != nil {
		app.logger.Warn("solver client unavailable, playing without solver", "err", err)
		return nil
	}
	bridge := solver.NewBridge(client, app.logger, newLiveRNG())
	if err := bridge.Init(ctx); err != nil {
		app.logger.Warn("solver probe failed, playing without solver", "url", scfg.URL, "err", err)
		return nil
	}
	caps := bridge.Capabilities()
	app.logger.Info("solver connected", "variant", caps.Variant)
	return bridge
}

func banner() {
	fmt.Print(titleStyle.Render(" ♠ ♥ GTO Hold'em ♦ ♣ "))
	fmt.Println()
	fmt.Println()
}
