package domain

import (
	"context"
	"time"
)

type UserRepository interface {
	CreateUser(ctx context.Context, name string) (User, error)
	GetUserByName(ctx context.Context, name string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeleteAllUsers(ctx context.Context) (int64, error)
}

// FeedScheduleStore is what the poll loop needs to pick and mark feeds.
type FeedScheduleStore interface {
	GetNextFeedToFetch(ctx context.Context) (Feed, error)
	MarkFeedFetched(ctx context.Context, feedID string) (Feed, error)
}

type FeedRepository interface {
	FeedScheduleStore
	CreateFeed(ctx context.Context, name, url, userID string) (Feed, error)
	GetFeedByURL(ctx context.Context, url string) (Feed, error)
	ListFeeds(ctx context.Context) ([]FeedWithOwner, error)
	DeleteFeed(ctx context.Context, url, userID string) (int64, error)
}

type FollowRepository interface {
	CreateFeedFollow(ctx context.Context, userID, feedID string) (FeedFollow, error)
	ListFeedFollowsForUser(ctx context.Context, userID string) ([]FeedFollow, error)
	DeleteFeedFollow(ctx context.Context, userID, feedURL string) error
}

// PostStore is what the ingestor needs to de-duplicate and persist posts.
type PostStore interface {
	GetPostByURL(ctx context.Context, url string) (Post, error)
	CreatePost(ctx context.Context, p NewPost) (Post, error)
}

type PostRepository interface {
	PostStore
	UpdatePost(ctx context.Context, id string, u PostUpdate) (Post, error)
	ListPostsForUser(ctx context.Context, userID string, limit int) ([]PostWithFeed, error)
	ListPostsByFeed(ctx context.Context, feedID string, limit int) ([]Post, error)
}

// Store is the full persistence port used by the command layer.
type Store interface {
	UserRepository
	FeedRepository
	FollowRepository
	PostRepository
	Close() error
}

// RSSFetcher retrieves and parses one feed.
type RSSFetcher interface {
	Fetch(ctx context.Context, feedURL string) (Channel, error)
}

// Aggregator exposes the runtime controls of a running poll loop.
type Aggregator interface {
	SetInterval(d time.Duration)
	CurrentInterval() time.Duration
	Status() AggregatorStatus
}

// AggregatorStatus is a snapshot of the poll loop for the control plane.
type AggregatorStatus struct {
	Running     bool
	Interval    time.Duration
	Cycles      int
	LastCycleAt *time.Time
	LastFeed    string
	LastResult  IngestResult
	LastError   string
}
