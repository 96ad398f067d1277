package cmd

import (
	"fmt"

	"gator/internal/helper"
)

type FeedsCmd struct{}

func (c *FeedsCmd) Run(s *State) error {
	st, err := s.Store()
	if err != nil {
		return err
	}
	feeds, err := st.ListFeeds(s.Ctx)
	if err != nil {
		return fmt.Errorf("could not list feeds: %w", err)
	}

	if len(feeds) == 0 {
		fmt.Fprintln(s.Out, "No feeds available")
		return nil
	}
	helper.PrintFeeds(s.Out, feeds)
	return nil
}
