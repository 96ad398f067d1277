package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/araddon/dateparse"

	"gator/domain"
	"gator/internal/logger"
)

// Ingestor stores the items of a fetched feed as posts, once per URL.
type Ingestor struct {
	posts domain.PostStore
}

func NewIngestor(posts domain.PostStore) *Ingestor { return &Ingestor{posts: posts} }

// Ingest walks items in order. Items whose URL is already stored are
// skipped, including those lost to a concurrent insert on the unique
// constraint. Other insert failures are logged and counted without stopping
// the batch. Only a failed lookup aborts, returning the counts so far.
func (in *Ingestor) Ingest(ctx context.Context, feedID string, items []domain.Item) (domain.IngestResult, error) {
	var res domain.IngestResult
	for _, it := range items {
		_, err := in.posts.GetPostByURL(ctx, it.Link)
		switch {
		case err == nil:
			res.Skipped++
			continue
		case !errors.Is(err, domain.ErrNotFound):
			return res, fmt.Errorf("could not look up post %s: %w", it.Link, err)
		}

		var desc *string
		if it.Description != "" {
			d := it.Description
			desc = &d
		}
		_, err = in.posts.CreatePost(ctx, domain.NewPost{
			Title:       it.Title,
			URL:         it.Link,
			Description: desc,
			PublishedAt: ParsePublished(it.PubDate),
			FeedID:      feedID,
		})
		switch {
		case err == nil:
			res.Saved++
		case errors.Is(err, domain.ErrAlreadyExists):
			res.Skipped++
		default:
			res.Failed++
			logger.Errorw("could not save post", "title", it.Title, "url", it.Link, "error", err)
		}
	}
	return res, nil
}

// ParsePublished reads a pubDate in any common layout. It returns nil when
// the string is not a usable date or falls before year 1; zones default
// to UTC.
func ParsePublished(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return nil
	}
	t = t.UTC()
	if t.Year() < 1 {
		return nil
	}
	return &t
}
