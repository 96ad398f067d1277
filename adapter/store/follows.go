package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gator/domain"
)

const followSelect = `
SELECT ff.id, ff.created_at, ff.updated_at, ff.user_id, ff.feed_id, u.name, f.name
FROM feed_follows ff
JOIN users u ON u.id = ff.user_id
JOIN feeds f ON f.id = ff.feed_id`

func scanFollow(s scanner) (domain.FeedFollow, error) {
	var ff domain.FeedFollow
	err := s.Scan(&ff.ID, &ff.CreatedAt, &ff.UpdatedAt, &ff.UserID, &ff.FeedID, &ff.UserName, &ff.FeedName)
	return ff, err
}

// CreateFeedFollow subscribes userID to feedID and returns the follow with
// the user and feed names filled in.
func (r *Repository) CreateFeedFollow(ctx context.Context, userID, feedID string) (domain.FeedFollow, error) {
	id := uuid.NewString()
	ts := now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO feed_follows (id, created_at, updated_at, user_id, feed_id) VALUES ($1, $2, $3, $4, $5)`,
		id, ts, ts, userID, feedID)
	if err != nil {
		return domain.FeedFollow{}, classify(err, "follow")
	}

	ff, err := scanFollow(r.db.QueryRowContext(ctx, followSelect+` WHERE ff.id = $1`, id))
	if err != nil {
		return domain.FeedFollow{}, classify(err, "follow")
	}
	return ff, nil
}

func (r *Repository) ListFeedFollowsForUser(ctx context.Context, userID string) ([]domain.FeedFollow, error) {
	rows, err := r.db.QueryContext(ctx, followSelect+` WHERE ff.user_id = $1 ORDER BY ff.created_at ASC`, userID)
	if err != nil {
		return nil, classify(err, "list follows")
	}
	defer rows.Close()

	var out []domain.FeedFollow
	for rows.Next() {
		ff, err := scanFollow(rows)
		if err != nil {
			return nil, classify(err, "list follows")
		}
		out = append(out, ff)
	}
	return out, rows.Err()
}

// DeleteFeedFollow unsubscribes userID from the feed at feedURL. It returns
// ErrNotFound if the feed is unknown or the user does not follow it.
func (r *Repository) DeleteFeedFollow(ctx context.Context, userID, feedURL string) error {
	feed, err := r.GetFeedByURL(ctx, feedURL)
	if err != nil {
		return err
	}
	n, err := rowsAffected(r.db.ExecContext(ctx,
		`DELETE FROM feed_follows WHERE user_id = $1 AND feed_id = $2`, userID, feed.ID))
	if err != nil {
		return classify(err, "unfollow "+feedURL)
	}
	if n == 0 {
		return fmt.Errorf("follow of %s: %w", feedURL, domain.ErrNotFound)
	}
	return nil
}
