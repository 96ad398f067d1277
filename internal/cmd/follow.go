package cmd

import (
	"errors"
	"fmt"

	"gator/domain"
)

type FollowCmd struct {
	URL string `arg:"" name:"url" help:"Feed URL."`
}

func (c *FollowCmd) Run(s *State) error {
	return s.loggedIn(func(st domain.Store, user domain.User) error {
		feed, err := st.GetFeedByURL(s.Ctx, c.URL)
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("feed with URL %q not found", c.URL)
		}
		if err != nil {
			return fmt.Errorf("could not look up feed: %w", err)
		}

		follow, err := st.CreateFeedFollow(s.Ctx, user.ID, feed.ID)
		if errors.Is(err, domain.ErrAlreadyExists) {
			return fmt.Errorf("you are already following %q", feed.Name)
		}
		if err != nil {
			return fmt.Errorf("could not follow feed: %w", err)
		}
		fmt.Fprintf(s.Out, "%s is now following %s\n", follow.UserName, follow.FeedName)
		return nil
	})
}

type FollowingCmd struct{}

func (c *FollowingCmd) Run(s *State) error {
	return s.loggedIn(func(st domain.Store, user domain.User) error {
		follows, err := st.ListFeedFollowsForUser(s.Ctx, user.ID)
		if err != nil {
			return fmt.Errorf("could not list follows: %w", err)
		}
		if len(follows) == 0 {
			fmt.Fprintln(s.Out, "You are not following any feeds")
			return nil
		}
		for _, f := range follows {
			fmt.Fprintf(s.Out, "* %s\n", f.FeedName)
		}
		return nil
	})
}

type UnfollowCmd struct {
	URL string `arg:"" name:"url" help:"Feed URL."`
}

func (c *UnfollowCmd) Run(s *State) error {
	return s.loggedIn(func(st domain.Store, user domain.User) error {
		err := st.DeleteFeedFollow(s.Ctx, user.ID, c.URL)
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("you are not following %q", c.URL)
		}
		if err != nil {
			return fmt.Errorf("could not unfollow feed: %w", err)
		}
		fmt.Fprintf(s.Out, "Unfollowed %s\n", c.URL)
		return nil
	})
}
