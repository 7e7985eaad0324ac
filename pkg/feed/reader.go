// Package feed reads RSS/Atom feeds into feed items and renders conflicts back
// as RSS and the configured feed list as OPML.
package feed

import (
	"context"
	"fmt"
	"html"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/mappin-app/mappin/pkg/domain"
)

// DefaultUserAgent is sent when no user agent configured
const DefaultUserAgent = "Mozilla/5.0 (compatible; Mappin/1.0; +https://github.com/mappin-app/mappin)"

// Reader fetches feeds over HTTP and maps entries to feed items
type Reader struct {
	client    *http.Client
	userAgent string
	policy    *bluemonday.Policy
}

// NewReader creates a feed reader
func NewReader(timeout time.Duration, userAgent string) *Reader {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Reader{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
		policy:    bluemonday.StrictPolicy(),
	}
}

// FetchFeed returns items of the feed. Network, status and parse failures are
// logged and produce an empty list.
func (r *Reader) FetchFeed(ctx context.Context, f domain.Feed) []domain.FeedItem {
	items, err := r.fetchFeed(ctx, f)
	if err != nil {
		log.Printf("[WARN] can't read feed %s (%s): %v", f.Name, f.URL, err)
		return []domain.FeedItem{}
	}
	log.Printf("[DEBUG] fetched %d items from %s", len(items), f.URL)
	return items
}

func (r *Reader) fetchFeed(ctx context.Context, f domain.Feed) ([]domain.FeedItem, error) {
	body, err := r.fetch(ctx, f.URL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	parsed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	res := make([]domain.FeedItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		if it == nil {
			continue
		}
		item := domain.FeedItem{
			FeedName:    f.Name,
			Region:      f.Region,
			Title:       strings.TrimSpace(r.clean(it.Title)),
			Link:        strings.TrimSpace(it.Link),
			Description: r.clean(it.Description),
			PubDate:     it.Published,
		}
		if item.Description == "" && it.Content != "" {
			item.Description = r.clean(it.Content)
		}
		switch {
		case it.PublishedParsed != nil:
			item.Published = it.PublishedParsed
		case it.UpdatedParsed != nil:
			item.Published = it.UpdatedParsed
			item.PubDate = it.Updated
		}
		res = append(res, item)
	}
	return res, nil
}

// clean strips all markup, decodes entities and collapses whitespace
func (r *Reader) clean(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(html.UnescapeString(r.policy.Sanitize(s))), " ")
}

func (r *Reader) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	setFeedHeaders(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}

var acceptLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"en-US,en;q=0.9,fr;q=0.8",
	"en-US,en;q=0.9,ar;q=0.7",
}

// setFeedHeaders makes the request look like a feed reader in a browser, some
// news sites reject bare clients
func setFeedHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5")
	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // header variation only
	req.Header.Set("Cache-Control", "no-cache")
}
