package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
)

// run drives the storefront's fx lifecycle: start the graph, wait for a
// signal or an internal shutdown, then stop it.
func run(ctx context.Context, app *fx.App) {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "storefront failed to start: %v\n", err)
		os.Exit(1)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "storefront shutdown failed: %v\n", err)
		os.Exit(1)
	}
}
