package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"gator/domain"
)

const feedColumns = `id, created_at, updated_at, name, url, user_id, last_fetched_at`

func scanFeed(s scanner, extra ...any) (domain.Feed, error) {
	var (
		f       domain.Feed
		fetched sql.NullTime
	)
	dest := append([]any{&f.ID, &f.CreatedAt, &f.UpdatedAt, &f.Name, &f.URL, &f.UserID, &fetched}, extra...)
	if err := s.Scan(dest...); err != nil {
		return domain.Feed{}, err
	}
	f.LastFetchedAt = nullTimePtr(fetched)
	return f, nil
}

func (r *Repository) CreateFeed(ctx context.Context, name, url, userID string) (domain.Feed, error) {
	id, ts := uuid.NewString(), now()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO feeds (id, created_at, updated_at, name, url, user_id) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, ts, ts, name, url, userID)
	if err != nil {
		return domain.Feed{}, classify(err, "feed "+url)
	}
	return r.getFeedByID(ctx, id)
}

func (r *Repository) getFeedByID(ctx context.Context, id string) (domain.Feed, error) {
	f, err := scanFeed(r.db.QueryRowContext(ctx, `SELECT `+feedColumns+` FROM feeds WHERE id = $1`, id))
	if err != nil {
		return domain.Feed{}, classify(err, "feed "+id)
	}
	return f, nil
}

func (r *Repository) GetFeedByURL(ctx context.Context, url string) (domain.Feed, error) {
	f, err := scanFeed(r.db.QueryRowContext(ctx, `SELECT `+feedColumns+` FROM feeds WHERE url = $1`, url))
	if err != nil {
		return domain.Feed{}, classify(err, "feed "+url)
	}
	return f, nil
}

func (r *Repository) ListFeeds(ctx context.Context) ([]domain.FeedWithOwner, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT f.id, f.created_at, f.updated_at, f.name, f.url, f.user_id, f.last_fetched_at, u.name
FROM feeds f
JOIN users u ON u.id = f.user_id
ORDER BY f.created_at ASC`)
	if err != nil {
		return nil, classify(err, "list feeds")
	}
	defer rows.Close()

	var out []domain.FeedWithOwner
	for rows.Next() {
		var owner string
		f, err := scanFeed(rows, &owner)
		if err != nil {
			return nil, classify(err, "list feeds")
		}
		out = append(out, domain.FeedWithOwner{Feed: f, OwnerName: owner})
	}
	return out, rows.Err()
}

// DeleteFeed removes the feed at url if userID added it. Follows and posts
// of the feed are removed by cascade.
func (r *Repository) DeleteFeed(ctx context.Context, url, userID string) (int64, error) {
	n, err := rowsAffected(r.db.ExecContext(ctx, `DELETE FROM feeds WHERE url = $1 AND user_id = $2`, url, userID))
	if err != nil {
		return 0, classify(err, "delete feed "+url)
	}
	return n, nil
}

// GetNextFeedToFetch returns the feed that was fetched longest ago. Feeds
// never fetched come first, oldest created first among them.
func (r *Repository) GetNextFeedToFetch(ctx context.Context) (domain.Feed, error) {
	f, err := scanFeed(r.db.QueryRowContext(ctx, `
SELECT `+feedColumns+`
FROM feeds
ORDER BY last_fetched_at ASC NULLS FIRST, created_at ASC, id ASC
LIMIT 1`))
	if err != nil {
		return domain.Feed{}, classify(err, "next feed")
	}
	return f, nil
}

func (r *Repository) MarkFeedFetched(ctx context.Context, feedID string) (domain.Feed, error) {
	ts := now()
	n, err := rowsAffected(r.db.ExecContext(ctx,
		`UPDATE feeds SET last_fetched_at = $1, updated_at = $2 WHERE id = $3`, ts, ts, feedID))
	if err != nil {
		return domain.Feed{}, classify(err, "mark feed "+feedID)
	}
	if n == 0 {
		return domain.Feed{}, fmt.Errorf("mark feed %s: %w", feedID, domain.ErrNotFound)
	}
	return r.getFeedByID(ctx, feedID)
}
