package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gator/adapter/rss"
	"gator/app"
	"gator/cli/control"
	"gator/internal/logger"
)

type AggCmd struct {
	Interval    string `arg:"" help:"Time between fetches: a number with ms, s, m or h (e.g. 30s, 5m)."`
	ControlAddr string `help:"Address of the control server (defaults to control_addr from the config)."`
}

func (c *AggCmd) Run(s *State) error {
	interval, err := app.ParseInterval(c.Interval)
	if err != nil {
		return err
	}

	addr := c.ControlAddr
	if addr == "" {
		addr = s.Config.ControlAddr
	}
	listener, err := control.TryListen(addr)
	if errors.Is(err, control.ErrAlreadyRunning) {
		return fmt.Errorf("an aggregator is already running (control address %s is in use)", addr)
	}
	if err != nil {
		return fmt.Errorf("failed to start control server: %w", err)
	}
	defer listener.Close()

	st, err := s.Store()
	if err != nil {
		return err
	}

	fetcher := rss.NewHTTPFetcher(s.Config.UserAgent, s.Config.FetchTimeout)
	agg := app.NewAggregator(st, st, fetcher, interval)
	srv := &http.Server{Handler: control.NewServer(agg), ReadHeaderTimeout: 5 * time.Second}

	ctx, cancel := signal.NotifyContext(s.Ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("control server error: %v", err)
		}
	}()

	fmt.Fprintf(s.Out, "Collecting feeds every %s (control server on %s)\n", interval, listener.Addr())

	runErr := agg.Run(ctx)

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("control server shutdown: %v", err)
	}

	if runErr != nil {
		return fmt.Errorf("aggregator stopped: %w", runErr)
	}
	fmt.Fprintln(s.Out, "Shutting down: aggregator stopped")
	return nil
}
