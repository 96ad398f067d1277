package cmd

import (
	"errors"
	"fmt"

	"gator/domain"
)

type DeleteFeedCmd struct {
	URL string `arg:"" name:"url" help:"URL of a feed you added."`
}

func (c *DeleteFeedCmd) Run(s *State) error {
	return s.loggedIn(func(st domain.Store, user domain.User) error {
		rows, err := st.DeleteFeed(s.Ctx, c.URL, user.ID)
		if err != nil {
			return fmt.Errorf("could not delete feed %q: %w", c.URL, err)
		}

		if rows == 0 {
			if _, err := st.GetFeedByURL(s.Ctx, c.URL); errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("feed with URL %q not found", c.URL)
			}
			return fmt.Errorf("feed %q was added by another user", c.URL)
		}

		fmt.Fprintf(s.Out, "Feed %q deleted successfully\n", c.URL)
		return nil
	})
}
