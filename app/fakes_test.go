package app

import (
	"context"
	"errors"
	"fmt"
	"gator/domain"
	"sort"
	"sync"
	"time"
)

// memStore is an in-memory FeedScheduleStore and PostStore.
type memStore struct {
	mu    sync.Mutex
	clock time.Time
	feeds []*domain.Feed
	posts map[string]domain.Post

	lookupErr error
	createErr map[string]error
	creates   int
}

func newMemStore() *memStore {
	return &memStore{
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		posts: map[string]domain.Post{},
	}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memStore) addFeed(name, url string, lastFetched *time.Time) *domain.Feed {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := &domain.Feed{ID: fmt.Sprintf("feed-%d", len(s.feeds)+1), Name: name, URL: url, CreatedAt: s.tick(), LastFetchedAt: lastFetched}
	s.feeds = append(s.feeds, f)
	return f
}

func (s *memStore) feed(id string) domain.Feed {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.feeds {
		if f.ID == id {
			return *f
		}
	}
	return domain.Feed{}
}

func (s *memStore) GetNextFeedToFetch(ctx context.Context) (domain.Feed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.feeds) == 0 {
		return domain.Feed{}, domain.ErrNotFound
	}
	sorted := append([]*domain.Feed(nil), s.feeds...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].LastFetchedAt, sorted[j].LastFetchedAt
		switch {
		case a == nil && b == nil:
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		case a == nil:
			return true
		case b == nil:
			return false
		default:
			return a.Before(*b)
		}
	})
	return *sorted[0], nil
}

func (s *memStore) MarkFeedFetched(ctx context.Context, feedID string) (domain.Feed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.feeds {
		if f.ID == feedID {
			ts := s.tick()
			f.LastFetchedAt = &ts
			f.UpdatedAt = ts
			return *f, nil
		}
	}
	return domain.Feed{}, domain.ErrNotFound
}

func (s *memStore) GetPostByURL(ctx context.Context, url string) (domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lookupErr != nil {
		return domain.Post{}, s.lookupErr
	}
	p, ok := s.posts[url]
	if !ok {
		return domain.Post{}, fmt.Errorf("post %s: %w", url, domain.ErrNotFound)
	}
	return p, nil
}

func (s *memStore) CreatePost(ctx context.Context, np domain.NewPost) (domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if err := s.createErr[np.URL]; err != nil {
		return domain.Post{}, err
	}
	if _, ok := s.posts[np.URL]; ok {
		return domain.Post{}, fmt.Errorf("post %s: %w", np.URL, domain.ErrAlreadyExists)
	}
	ts := s.tick()
	p := domain.Post{
		ID:          fmt.Sprintf("post-%d", len(s.posts)+1),
		CreatedAt:   ts,
		UpdatedAt:   ts,
		Title:       np.Title,
		URL:         np.URL,
		Description: np.Description,
		PublishedAt: np.PublishedAt,
		FeedID:      np.FeedID,
	}
	s.posts[np.URL] = p
	return p, nil
}

func (s *memStore) post(url string) (domain.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[url]
	return p, ok
}

// stubFetcher serves canned channels by URL and records, for each call,
// whether the feed had already been marked fetched.
type stubFetcher struct {
	mu       sync.Mutex
	store    *memStore
	channels map[string]domain.Channel
	errs     map[string]error
	calls    []string
	marked   []bool
	onFetch  func()
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (domain.Channel, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	if f.store != nil {
		marked := false
		f.store.mu.Lock()
		for _, fd := range f.store.feeds {
			if fd.URL == url && fd.LastFetchedAt != nil {
				marked = true
			}
		}
		f.store.mu.Unlock()
		f.marked = append(f.marked, marked)
	}
	hook := f.onFetch
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err := f.errs[url]; err != nil {
		return domain.Channel{}, err
	}
	if ch, ok := f.channels[url]; ok {
		return ch, nil
	}
	return domain.Channel{}, errors.New("no such feed")
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
