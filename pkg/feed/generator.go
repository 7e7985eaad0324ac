package feed

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mappin-app/mappin/pkg/domain"
)

// Generator renders conflicts as RSS and feeds as OPML
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: strings.TrimRight(baseURL, "/"), now: time.Now}
}

// GenerateRSS creates an RSS 2.0 feed of conflicts, each item carries a georss point.
// Empty category means all categories.
func (g *Generator) GenerateRSS(conflicts []domain.Conflict, category domain.Category) (string, error) {
	title := "Mappin - All Events"
	selfLink := g.baseURL + "/rss"
	if category != "" {
		title = fmt.Sprintf("Mappin - %s", category)
		selfLink = fmt.Sprintf("%s/rss?category=%s", g.baseURL, strings.ReplaceAll(string(category), " ", "+"))
	}

	items := make([]*RSSItem, 0, len(conflicts))
	for _, c := range conflicts {
		items = append(items, g.toRSSItem(c))
	}

	doc := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		GeoRSS:  "http://www.georss.org/georss",
		Channel: &RSSChannel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   "Geolocated world events extracted from news feeds",
			AtomLink:      &AtomLink{Href: selfLink, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         items,
		},
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

func (g *Generator) toRSSItem(c domain.Conflict) *RSSItem {
	desc := fmt.Sprintf("%s, severity %d/5, %s", c.Category, c.Severity, c.LocationName)
	if c.Description != "" {
		desc += "\n\n" + c.Description
	}
	return &RSSItem{
		Title:       fmt.Sprintf("[%d] %s", c.Severity, c.Title),
		Link:        c.SourceURL,
		GUID:        &GUID{Value: fmt.Sprintf("%s/api/v1/conflicts/%d", g.baseURL, c.ID)},
		Description: desc,
		PubDate:     c.PublishedAt.Format(time.RFC1123Z),
		Categories:  []string{string(c.Category)},
		Point:       fmt.Sprintf("%.4f %.4f", c.Latitude, c.Longitude),
	}
}

// GenerateOPML creates an OPML file of the configured feeds grouped by region
func (g *Generator) GenerateOPML(feeds []domain.Feed) (string, error) {
	byRegion := map[string][]Outline{}
	for _, f := range feeds {
		region := f.Region
		if region == "" {
			region = "Other"
		}
		byRegion[region] = append(byRegion[region], Outline{Text: f.Name, Title: f.Name, Type: "rss", XMLURL: f.URL})
	}

	regions := make([]string, 0, len(byRegion))
	for r := range byRegion {
		regions = append(regions, r)
	}
	sort.Strings(regions)

	doc := OPML{
		Version: "2.0",
		Head:    OPMLHead{Title: "Mappin Feed Subscriptions", DateCreated: g.now().Format(time.RFC1123Z)},
	}
	for _, r := range regions {
		doc.Body.Outlines = append(doc.Body.Outlines, Outline{Text: r, Title: r, Outlines: byRegion[r]})
	}

	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal OPML: %w", err)
	}
	return xml.Header + string(output), nil
}
