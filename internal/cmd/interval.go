package cmd

import (
	"fmt"

	"gator/app"
	"gator/cli/control"
	"gator/internal/helper"
)

type SetIntervalCmd struct {
	Interval    string `arg:"" help:"New time between fetches (e.g. 30s, 5m)."`
	ControlAddr string `help:"Address of the control server (defaults to control_addr from the config)."`
}

func (c *SetIntervalCmd) Run(s *State) error {
	if _, err := app.ParseInterval(c.Interval); err != nil {
		return err
	}

	old, cur, err := control.NewClient(controlAddr(s, c.ControlAddr)).SetInterval(s.Ctx, c.Interval)
	if err != nil {
		return fmt.Errorf("could not set interval: %w", err)
	}

	if old == cur {
		fmt.Fprintf(s.Out, "Interval is already set to %s (no change)\n", cur)
		return nil
	}
	fmt.Fprintf(s.Out, "Interval of fetching feeds changed from %s to %s\n", old, cur)
	return nil
}

type StatusCmd struct {
	ControlAddr string `help:"Address of the control server (defaults to control_addr from the config)."`
}

func (c *StatusCmd) Run(s *State) error {
	st, err := control.NewClient(controlAddr(s, c.ControlAddr)).Status(s.Ctx)
	if err != nil {
		return fmt.Errorf("could not get status: %w", err)
	}
	helper.PrintStatus(s.Out, st)
	return nil
}

func controlAddr(s *State, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return s.Config.ControlAddr
}
