package domain

import "time"

// Feed represents a configured news source
type Feed struct {
	URL    string
	Name   string
	Region string
}

// FeedItem is a single entry read from an RSS/Atom feed. It lives only for the
// duration of one batch and is never persisted as-is.
type FeedItem struct {
	FeedName    string
	Region      string
	Title       string
	Link        string
	Description string
	PubDate     string     // raw date string as it appeared in the feed
	Published   *time.Time // parsed by the feed parser, nil if it could not parse PubDate
}
