package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/closest-arcade/internal/logger"
	"github.com/pfrederiksen/closest-arcade/internal/monitor"
	"github.com/pfrederiksen/closest-arcade/internal/status"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Check repeatedly until interrupted",
		Long: `Runs a check immediately and then once per CHECK_INTERVAL_MINUTES until
SIGINT or SIGTERM. A check in progress when the signal arrives is completed.
When STATUS_ADDR is set an HTTP status server is started alongside.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.setup()
			if err != nil {
				return err
			}

			app, err := newApp(cfg, opts)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signalContext()
			defer stop()

			logger.Info("Starting closest-arcade", logger.Fields{
				"source":        cfg.SourceURL,
				"observer":      cfg.Observer.Label,
				"interval":      cfg.CheckInterval.String(),
				"notifications": app.notifierName(),
			})

			loop := monitor.NewLoop(app.checker, cfg.CheckInterval)

			if cfg.StatusAddr == "" {
				return loop.Run(ctx)
			}

			srvCtx, stopServer := context.WithCancel(ctx)
			srvDone := make(chan struct{})
			go func() {
				defer close(srvDone)
				if err := status.NewServer(cfg.StatusAddr, app.store).Run(srvCtx); err != nil {
					logger.Error("Status server failed", logger.Fields{"addr": cfg.StatusAddr}, err)
				}
			}()

			loopErr := loop.Run(ctx)
			stopServer()
			<-srvDone
			return loopErr
		},
	}
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run a single check",
		Long: `Runs one check cycle and prints the closest arcade.
Exits 0 when nothing changed, 2 when the closest arcade changed and 1 on error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, format, err := opts.setup()
			if err != nil {
				return err
			}

			app, err := newApp(cfg, opts)
			if err != nil {
				return err
			}
			defer app.Close()

			res, checkErr := app.checker.Check(context.Background())
			if res == nil {
				return checkErr
			}

			if err := WriteOutput(opts.out, NewCheckOutput(res, cfg.Observer.Label), format, opts.verbose); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			if checkErr != nil {
				return checkErr
			}

			if res.Changed() {
				return &ExitCodeError{Code: ExitChanged}
			}
			return nil
		},
	}
}

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the recorded closest arcade",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, format, err := opts.setup()
			if err != nil {
				return err
			}

			store, closeStore, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			state, err := store.Load(context.Background())
			if err != nil {
				return fmt.Errorf("loading state: %w", err)
			}

			return WriteOutput(opts.out, NewStateOutput(state, cfg.Observer.Label), format, opts.verbose)
		},
	}
}
