package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"gator/domain"
)

const postColumns = `id, created_at, updated_at, title, url, description, published_at, feed_id`

func scanPost(s scanner, extra ...any) (domain.Post, error) {
	var (
		p         domain.Post
		desc      sql.NullString
		published sql.NullTime
	)
	dest := append([]any{&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.Title, &p.URL, &desc, &published, &p.FeedID}, extra...)
	if err := s.Scan(dest...); err != nil {
		return domain.Post{}, err
	}
	p.Description = nullStringPtr(desc)
	p.PublishedAt = nullTimePtr(published)
	return p, nil
}

func (r *Repository) CreatePost(ctx context.Context, np domain.NewPost) (domain.Post, error) {
	id, ts := uuid.NewString(), now()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO posts (id, created_at, updated_at, title, url, description, published_at, feed_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, ts, ts, np.Title, np.URL, np.Description, utcOrNil(np.PublishedAt), np.FeedID)
	if err != nil {
		return domain.Post{}, classify(err, "post "+np.URL)
	}
	return r.getPostByID(ctx, id)
}

func (r *Repository) getPostByID(ctx context.Context, id string) (domain.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if err != nil {
		return domain.Post{}, classify(err, "post "+id)
	}
	return p, nil
}

func (r *Repository) GetPostByURL(ctx context.Context, url string) (domain.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE url = $1`, url))
	if err != nil {
		return domain.Post{}, classify(err, "post "+url)
	}
	return p, nil
}

// UpdatePost overwrites the non-nil fields of u and bumps updated_at.
func (r *Repository) UpdatePost(ctx context.Context, id string, u domain.PostUpdate) (domain.Post, error) {
	n, err := rowsAffected(r.db.ExecContext(ctx, `
UPDATE posts SET
    title = COALESCE($1, title),
    description = COALESCE($2, description),
    published_at = COALESCE($3, published_at),
    updated_at = $4
WHERE id = $5`,
		u.Title, u.Description, utcOrNil(u.PublishedAt), now(), id))
	if err != nil {
		return domain.Post{}, classify(err, "update post "+id)
	}
	if n == 0 {
		return domain.Post{}, fmt.Errorf("update post %s: %w", id, domain.ErrNotFound)
	}
	return r.getPostByID(ctx, id)
}

// ListPostsForUser returns the newest posts across the feeds userID follows.
// Posts without a publication date sort after dated ones.
func (r *Repository) ListPostsForUser(ctx context.Context, userID string, limit int) ([]domain.PostWithFeed, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT p.id, p.created_at, p.updated_at, p.title, p.url, p.description, p.published_at, p.feed_id, f.name
FROM posts p
JOIN feeds f ON f.id = p.feed_id
JOIN feed_follows ff ON ff.feed_id = p.feed_id
WHERE ff.user_id = $1
ORDER BY p.published_at DESC NULLS LAST, p.created_at DESC
LIMIT $2`, userID, limit)
	if err != nil {
		return nil, classify(err, "list posts")
	}
	defer rows.Close()

	var out []domain.PostWithFeed
	for rows.Next() {
		var feedName string
		p, err := scanPost(rows, &feedName)
		if err != nil {
			return nil, classify(err, "list posts")
		}
		out = append(out, domain.PostWithFeed{Post: p, FeedName: feedName})
	}
	return out, rows.Err()
}

func (r *Repository) ListPostsByFeed(ctx context.Context, feedID string, limit int) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+postColumns+`
FROM posts
WHERE feed_id = $1
ORDER BY published_at DESC NULLS LAST, created_at DESC
LIMIT $2`, feedID, limit)
	if err != nil {
		return nil, classify(err, "list posts")
	}
	defer rows.Close()

	var out []domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, classify(err, "list posts")
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
