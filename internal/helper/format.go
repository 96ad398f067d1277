package helper

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"gator/domain"
)

// Ago renders t relative to now, e.g. "3 hours ago".
func Ago(t *time.Time, missing string) string {
	if t == nil {
		return missing
	}
	return humanize.Time(*t)
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if n <= 3 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func PrintFeeds(w io.Writer, feeds []domain.FeedWithOwner) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "URL", "Added by", "Last fetched"})
	table.SetAutoWrapText(false)
	for _, f := range feeds {
		table.Append([]string{f.Name, f.URL, f.OwnerName, Ago(f.LastFetchedAt, "never")})
	}
	table.Render()
}

func PrintStatus(w io.Writer, st domain.AggregatorStatus) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.Append([]string{"Running", fmt.Sprint(st.Running)})
	table.Append([]string{"Interval", st.Interval.String()})
	table.Append([]string{"Cycles", fmt.Sprint(st.Cycles)})
	table.Append([]string{"Last cycle", Ago(st.LastCycleAt, "-")})
	if st.LastFeed != "" {
		table.Append([]string{"Last feed", st.LastFeed})
		table.Append([]string{"Last result", fmt.Sprintf("%d saved, %d skipped, %d failed",
			st.LastResult.Saved, st.LastResult.Skipped, st.LastResult.Failed)})
	}
	if st.LastError != "" {
		table.Append([]string{"Last error", st.LastError})
	}
	table.Render()
}

// PrintPosts writes posts from followed feeds, newest first.
func PrintPosts(w io.Writer, posts []domain.PostWithFeed) {
	for _, p := range posts {
		fmt.Fprintf(w, "%s from %s\n", Ago(p.PublishedAt, "undated"), p.FeedName)
		fmt.Fprintf(w, "--- %s ---\n", p.Title)
		if p.Description != nil {
			fmt.Fprintf(w, "    %s\n", Truncate(*p.Description, 200))
		}
		fmt.Fprintf(w, "Link: %s\n", p.URL)
		fmt.Fprintln(w, "=====================================")
	}
}

// PrintArticles writes the posts of a single feed as a numbered list.
func PrintArticles(w io.Writer, feed domain.Feed, posts []domain.Post) {
	fmt.Fprintf(w, "Feed: %s\n\n", feed.Name)
	for i, p := range posts {
		date := "----------"
		if p.PublishedAt != nil {
			date = p.PublishedAt.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%d. [%s] %s\n   %s\n\n", i+1, date, p.Title, p.URL)
	}
}
