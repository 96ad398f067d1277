package rss

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	gofeedrss "github.com/mmcdole/gofeed/rss"

	"gator/domain"
)

// Parse decodes an RSS 2.0 document into a channel. The channel must carry
// a title, link and description. Items lacking any of title, link,
// description or pubDate are dropped; the rest keep their source order.
func Parse(r io.Reader) (domain.Channel, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.Channel{}, fmt.Errorf("%w: %v", domain.ErrMalformedFeed, err)
	}
	if root := rootElement(data); root != "rss" {
		if root == "" {
			return domain.Channel{}, fmt.Errorf("%w: no root element", domain.ErrMalformedFeed)
		}
		return domain.Channel{}, fmt.Errorf("%w: root element is <%s>, not <rss>", domain.ErrMalformedFeed, root)
	}

	feed, err := (&gofeedrss.Parser{}).Parse(bytes.NewReader(data))
	if err != nil {
		return domain.Channel{}, fmt.Errorf("%w: %v", domain.ErrMalformedFeed, err)
	}

	ch := domain.Channel{
		Title:       strings.TrimSpace(feed.Title),
		Link:        strings.TrimSpace(feed.Link),
		Description: strings.TrimSpace(feed.Description),
	}
	switch {
	case ch.Title == "":
		return domain.Channel{}, fmt.Errorf("%w: channel has no title", domain.ErrMalformedFeed)
	case ch.Link == "":
		return domain.Channel{}, fmt.Errorf("%w: channel has no link", domain.ErrMalformedFeed)
	case ch.Description == "":
		return domain.Channel{}, fmt.Errorf("%w: channel has no description", domain.ErrMalformedFeed)
	}

	ch.Items = make([]domain.Item, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it == nil {
			continue
		}
		item := domain.Item{
			Title:       strings.TrimSpace(it.Title),
			Link:        strings.TrimSpace(it.Link),
			Description: strings.TrimSpace(it.Description),
			PubDate:     strings.TrimSpace(it.PubDate),
		}
		if item.Title == "" || item.Link == "" || item.Description == "" || item.PubDate == "" {
			continue
		}
		ch.Items = append(ch.Items, item)
	}
	return ch, nil
}

// rootElement returns the lower-cased local name of the first element in
// data, or "" when there is none. The gofeed RSS parser also accepts RDF
// (RSS 0.9/1.0) roots, which are not channels we can store.
func rootElement(data []byte) string {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.Strict = false
	d.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) { return input, nil }
	for {
		tok, err := d.Token()
		if err != nil {
			return ""
		}
		if se, ok := tok.(xml.StartElement); ok {
			return strings.ToLower(se.Name.Local)
		}
	}
}
