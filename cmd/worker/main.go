package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/safebite/safebite/internal/setup"
	"github.com/safebite/safebite/internal/worker/dispatch"
	"github.com/safebite/safebite/internal/worker/maintenance"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "worker",
		Usage: "Start a safebite background worker",
		Commands: []*cli.Command{
			{
				Name:  "dispatch",
				Usage: "Start outbox dispatch workers",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Value:   1,
						Usage:   "Number of dispatch loops to start",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return runDispatch(ctx, int(c.Int("workers")))
				},
			},
			{
				Name:  "maintenance",
				Usage: "Start the scheduled maintenance worker",
				Action: func(ctx context.Context, _ *cli.Command) error {
					return runMaintenance(ctx)
				},
			},
		},
	}

	return app.Run(context.Background(), os.Args)
}

// runDispatch starts count dispatch loops sharing one app and blocks until
// interrupted.
func runDispatch(ctx context.Context, count int) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := setup.InitializeApp(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.Cleanup(ctx)

	// One set of collectors for the whole process; the loops share it.
	metrics := dispatch.NewMetrics(prometheus.DefaultRegisterer)

	var wg sync.WaitGroup
	for i := range count {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			logger := app.Logger.Named(fmt.Sprintf("dispatch_%d", workerID))
			dispatch.New(app, nil, metrics, logger).Start(ctx)
		}(i)
	}

	wg.Wait()

	return nil
}

// runMaintenance starts the maintenance schedule and blocks until
// interrupted.
func runMaintenance(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := setup.InitializeApp(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.Cleanup(ctx)

	maintenance.New(app, app.Logger).Start(ctx)

	return nil
}
