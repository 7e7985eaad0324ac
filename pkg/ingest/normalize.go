package ingest

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mappin-app/mappin/pkg/dedup"
	"github.com/mappin-app/mappin/pkg/domain"
	"github.com/mappin-app/mappin/pkg/extract"
)

// ErrInvalidDate is returned for items without a parseable publish date
var ErrInvalidDate = errors.New("invalid publish date")

// layouts tried in order for raw feed dates
var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04 -0700",
	"2 Jan 2006 15:04:05 -0700",
	time.RFC822Z,
	time.RFC822,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses a raw feed date. Values without a zone are taken as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// PublishedAt returns the parsed feed time of item, falling back to its raw date
func PublishedAt(item domain.FeedItem) (time.Time, error) {
	if item.Published != nil && !item.Published.IsZero() {
		return item.Published.UTC(), nil
	}
	return ParseDate(item.PubDate)
}

// Normalize maps a feed item and its extracted event to a record ready for insert
func Normalize(item domain.FeedItem, ev domain.ExtractedEvent, mode dedup.Mode) (*domain.Conflict, error) {
	link := strings.TrimSpace(item.Link)
	if link == "" {
		return nil, errors.New("item has no link")
	}

	published, err := PublishedAt(item)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", link, err)
	}

	if !domain.ValidCoordinates(ev.Latitude, ev.Longitude) {
		return nil, fmt.Errorf("normalize %s: coordinates out of range (%f, %f)", link, ev.Latitude, ev.Longitude)
	}

	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = extract.Truncate(ev.Summary, 120)
	}
	description := strings.TrimSpace(ev.Summary)
	if description == "" {
		description = extract.Truncate(strings.TrimSpace(item.Description), extract.SummaryLimit)
	}
	location := strings.TrimSpace(ev.LocationName)
	if location == "" {
		location = domain.GlobalEvent
	}

	return &domain.Conflict{
		Title:        title,
		Description:  description,
		SourceURL:    link,
		URLKey:       dedup.Key(mode, link),
		PublishedAt:  published,
		Latitude:     ev.Latitude,
		Longitude:    ev.Longitude,
		LocationName: location,
		Category:     knownCategory(ev.Category),
		Severity:     domain.ClampSeverity(ev.Severity),
	}, nil
}

func knownCategory(c domain.Category) domain.Category {
	switch c {
	case domain.CategoryArmedConflict, domain.CategoryProtest, domain.CategoryPoliticalUnrest,
		domain.CategoryOther, domain.CategoryAlien:
		return c
	default:
		return domain.ParseCategory(string(c))
	}
}
