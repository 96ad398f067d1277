package domain

import "time"

type User struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
}

type Feed struct {
	ID            string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Name          string
	URL           string
	UserID        string
	LastFetchedAt *time.Time
}

// FeedWithOwner is a feed joined with the name of the user who added it.
type FeedWithOwner struct {
	Feed
	OwnerName string
}

type FeedFollow struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    string
	FeedID    string
	UserName  string
	FeedName  string
}

type Post struct {
	ID          string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Title       string
	URL         string
	Description *string
	PublishedAt *time.Time
	FeedID      string
}

// PostWithFeed is a post joined with the name of the feed it came from.
type PostWithFeed struct {
	Post
	FeedName string
}

// NewPost is the input of CreatePost. Nil Description and PublishedAt are stored as NULL.
type NewPost struct {
	Title       string
	URL         string
	Description *string
	PublishedAt *time.Time
	FeedID      string
}

// PostUpdate holds the optional fields of UpdatePost; nil fields are left unchanged.
type PostUpdate struct {
	Title       *string
	Description *string
	PublishedAt *time.Time
}

// Channel is a parsed RSS channel. It lives only in memory.
type Channel struct {
	Title       string
	Link        string
	Description string
	Items       []Item
}

// Item is a parsed RSS item; PubDate is kept as the raw source string.
type Item struct {
	Title       string
	Link        string
	Description string
	PubDate     string
}

// IngestResult counts what happened to the items of one feed.
type IngestResult struct {
	Saved   int
	Skipped int
	Failed  int
}
