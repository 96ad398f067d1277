package cmd

import (
	"errors"
	"fmt"
	"strings"

	"gator/domain"
	"gator/internal/helper"
)

type AddFeedCmd struct {
	Name string `arg:"" help:"Feed name."`
	URL  string `arg:"" name:"url" help:"Feed URL."`
}

func (c *AddFeedCmd) Run(s *State) error {
	name, feedURL := strings.TrimSpace(c.Name), strings.TrimSpace(c.URL)
	if name == "" {
		return fmt.Errorf("feed name must not be empty")
	}
	if err := helper.ValidateFeedURL(feedURL); err != nil {
		return err
	}

	return s.loggedIn(func(st domain.Store, user domain.User) error {
		feed, err := st.CreateFeed(s.Ctx, name, feedURL, user.ID)
		if errors.Is(err, domain.ErrAlreadyExists) {
			return fmt.Errorf("feed with URL %q already exists", feedURL)
		}
		if err != nil {
			return fmt.Errorf("could not add feed: %w", err)
		}

		follow, err := st.CreateFeedFollow(s.Ctx, user.ID, feed.ID)
		if err != nil {
			return fmt.Errorf("feed added but could not follow it: %w", err)
		}

		fmt.Fprintf(s.Out, "Feed %q added successfully (%s)\n", feed.Name, feed.URL)
		fmt.Fprintf(s.Out, "%s is now following %s\n", follow.UserName, follow.FeedName)
		return nil
	})
}
