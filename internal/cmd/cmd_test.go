package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gator/domain"
	"gator/internal/config"
)

type testEnv struct {
	t       *testing.T
	cfgPath string
	opened  int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "gator.yaml")
	cfg := fmt.Sprintf("db_driver: sqlite\ndb_url: %s\ncontrol_addr: 127.0.0.1:0\nlog:\n  level: error\n", filepath.Join(dir, "gator.db"))
	if err := os.WriteFile(cfgPath, []byte(cfg), 0600); err != nil {
		t.Fatal(err)
	}
	return &testEnv{t: t, cfgPath: cfgPath}
}

func (e *testEnv) app(out *bytes.Buffer) *App {
	return &App{
		Out: out,
		Err: out,
		OpenStore: func(ctx context.Context, cfg *config.Config) (domain.Store, error) {
			e.opened++
			return OpenStore(ctx, cfg)
		},
		Exit: func(code int) { e.t.Fatalf("unexpected exit(%d)", code) },
	}
}

func (e *testEnv) run(ctx context.Context, args ...string) (string, error) {
	var out bytes.Buffer
	err := e.app(&out).Run(ctx, append([]string{"--config", e.cfgPath}, args...))
	return out.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(context.Background(), args...)
	if err != nil {
		e.t.Fatalf("gator %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func (e *testEnv) wantErr(substr string, args ...string) {
	e.t.Helper()
	_, err := e.run(context.Background(), args...)
	if err == nil || !strings.Contains(err.Error(), substr) {
		e.t.Fatalf("gator %s: got %v, want error containing %q", strings.Join(args, " "), err, substr)
	}
}

func TestAggRejectsBadIntervalBeforeTouchingStore(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(context.Background(), "agg", "90")
	var ce *domain.ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("got %v, want *domain.ConfigError", err)
	}
	if env.opened != 0 {
		t.Fatal("store was opened for an invalid interval")
	}
}

func TestUsers(t *testing.T) {
	env := newTestEnv(t)

	env.mustRun("register", "alice")
	env.wantErr("already exists", "register", "alice")
	env.mustRun("register", "bob")

	out := env.mustRun("users")
	if !strings.Contains(out, "* alice\n") || !strings.Contains(out, "* bob (current)\n") {
		t.Fatalf("users output:\n%s", out)
	}

	env.mustRun("login", "alice")
	cfg, err := config.Load(env.cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CurrentUserName != "alice" {
		t.Fatalf("current user = %q, want alice", cfg.CurrentUserName)
	}
	env.wantErr("does not exist", "login", "carol")

	if out := env.mustRun("reset"); !strings.Contains(out, "2 users deleted") {
		t.Fatalf("reset output: %s", out)
	}
	env.wantErr("not found", "following")
}

func TestLoginRequired(t *testing.T) {
	env := newTestEnv(t)
	env.wantErr("no user is logged in", "addfeed", "Blog", "https://example.com/rss")
	env.wantErr("no user is logged in", "browse")
}

func TestFeedCommands(t *testing.T) {
	env := newTestEnv(t)
	const url = "https://example.com/rss"

	env.mustRun("register", "alice")
	env.wantErr("invalid feed URL", "addfeed", "Blog", "example.com/rss")
	out := env.mustRun("addfeed", "Blog", url)
	if !strings.Contains(out, "alice is now following Blog") {
		t.Fatalf("addfeed output: %s", out)
	}
	env.wantErr("already exists", "addfeed", "Copy", url)

	if out := env.mustRun("feeds"); !strings.Contains(out, "Blog") || !strings.Contains(out, "alice") {
		t.Fatalf("feeds output:\n%s", out)
	}
	if out := env.mustRun("following"); out != "* Blog\n" {
		t.Fatalf("following output: %q", out)
	}

	env.wantErr("already following", "follow", url)
	env.mustRun("unfollow", url)
	if out := env.mustRun("following"); !strings.Contains(out, "not following any feeds") {
		t.Fatalf("following after unfollow: %q", out)
	}
	env.wantErr("not following", "unfollow", url)
	env.wantErr("not found", "follow", "https://nowhere.example/rss")

	env.mustRun("register", "bob")
	env.mustRun("follow", url)
	env.wantErr("another user", "deletefeed", url)
	env.mustRun("login", "alice")
	env.mustRun("deletefeed", url)
	env.wantErr("not found", "deletefeed", url)
	env.wantErr("not found", "articles", url)
}

func TestBrowseWithoutPosts(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("register", "alice")
	if out := env.mustRun("browse"); !strings.Contains(out, "No posts yet") {
		t.Fatalf("browse output: %q", out)
	}
	env.wantErr("limit must be positive", "browse", "0")
}

const testFeed = `<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>Test</title><link>https://example.com</link><description>Test feed</description>
<item><title>First</title><link>https://example.com/first</link><description>one</description><pubDate>Mon, 01 Jan 2024 00:00:00 GMT</pubDate></item>
<item><title>Second</title><link>https://example.com/second</link><description>two</description><pubDate>Tue, 02 Jan 2024 00:00:00 GMT</pubDate></item>
<item><title>Broken</title><link>https://example.com/broken</link><description>three</description></item>
</channel></rss>`

func TestAggCollectsAndShutsDown(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(testFeed))
	}))
	defer srv.Close()

	env := newTestEnv(t)
	env.mustRun("register", "alice")
	env.mustRun("addfeed", "Test", srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var aggOut bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- env.app(&aggOut).Run(ctx, []string{"--config", env.cfgPath, "agg", "1h"})
	}()

	deadline := time.After(5 * time.Second)
	for hits.Load() == 0 {
		select {
		case err := <-done:
			t.Fatalf("agg exited early: %v\n%s", err, aggOut.String())
		case <-deadline:
			t.Fatal("feed was never fetched")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("agg: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("agg did not stop")
	}
	if out := aggOut.String(); !strings.Contains(out, "Collecting feeds every 1h0m0s") || !strings.Contains(out, "Shutting down") {
		t.Fatalf("agg output:\n%s", out)
	}

	out := env.mustRun("browse", "5")
	if !strings.Contains(out, "--- Second ---") || !strings.Contains(out, "--- First ---") {
		t.Fatalf("browse output:\n%s", out)
	}
	if strings.Contains(out, "Broken") {
		t.Fatalf("incomplete item was stored:\n%s", out)
	}
	if strings.Index(out, "Second") > strings.Index(out, "First") {
		t.Fatalf("posts not newest first:\n%s", out)
	}

	out = env.mustRun("articles", srv.URL, "--num", "1")
	if !strings.Contains(out, "1. [2024-01-02] Second") || strings.Contains(out, "First") {
		t.Fatalf("articles output:\n%s", out)
	}
}

func TestControlCommandsWithoutAggregator(t *testing.T) {
	env := newTestEnv(t)
	env.wantErr("invalid interval", "set-interval", "90")
	env.wantErr("could not get status", "status", "--control-addr", "127.0.0.1:1")
}
