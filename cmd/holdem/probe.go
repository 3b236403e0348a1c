package main

import (
	"context"
	"fmt"

	"gtoholdem/internal/solver"
)

// ProbeSolverCmd checks whether the external solver service is reachable
// and which variant the host can run.
type ProbeSolverCmd struct {
	URL string `help:"Override the solver URL from the environment"`
}

func (p *ProbeSolverCmd) Run(app *appContext, ctx context.Context) error {
	cfg, err := solver.LoadConfig()
	if err != nil {
		return err
	}
	if p.URL != "" {
		cfg.URL = p.URL
	}

	client, err := solver.NewClient(cfg, app.logger)
	if err != nil {
		return err
	}

	caps, err := client.Probe(ctx)
	if err != nil {
		return fmt.Errorf("solver at %s is not usable: %w", cfg.URL, err)
	}

	fmt.Printf("solver ok: variant=%s max_iterations=%d timeout=%s\n",
		caps.Variant, caps.MaxIterations, client.Timeout())
	return nil
}
