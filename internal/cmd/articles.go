package cmd

import (
	"errors"
	"fmt"

	"gator/domain"
	"gator/internal/helper"
)

type BrowseCmd struct {
	Limit int `arg:"" optional:"" default:"2" help:"Number of posts to show."`
}

func (c *BrowseCmd) Run(s *State) error {
	if c.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", c.Limit)
	}
	return s.loggedIn(func(st domain.Store, user domain.User) error {
		posts, err := st.ListPostsForUser(s.Ctx, user.ID, c.Limit)
		if err != nil {
			return fmt.Errorf("could not list posts: %w", err)
		}
		if len(posts) == 0 {
			fmt.Fprintln(s.Out, "No posts yet; follow a feed and run `gator agg`")
			return nil
		}
		helper.PrintPosts(s.Out, posts)
		return nil
	})
}

type ArticlesCmd struct {
	URL string `arg:"" name:"url" help:"Feed URL."`
	Num int    `default:"3" help:"Number of articles to show."`
}

func (c *ArticlesCmd) Run(s *State) error {
	if c.Num <= 0 {
		return fmt.Errorf("--num must be positive, got %d", c.Num)
	}
	st, err := s.Store()
	if err != nil {
		return err
	}
	feed, err := st.GetFeedByURL(s.Ctx, c.URL)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("feed with URL %q not found", c.URL)
	}
	if err != nil {
		return fmt.Errorf("could not look up feed: %w", err)
	}

	posts, err := st.ListPostsByFeed(s.Ctx, feed.ID, c.Num)
	if err != nil {
		return fmt.Errorf("could not list articles: %w", err)
	}
	if len(posts) == 0 {
		fmt.Fprintf(s.Out, "No articles stored for %s yet\n", feed.Name)
		return nil
	}
	helper.PrintArticles(s.Out, feed, posts)
	return nil
}
