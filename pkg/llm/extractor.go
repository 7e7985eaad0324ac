package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	log "github.com/go-pkgz/lgr"

	"github.com/mappin-app/mappin/pkg/domain"
	"github.com/mappin-app/mappin/pkg/extract"
	"github.com/mappin-app/mappin/pkg/geo"
)

//go:generate moq -out mocks/completer.go -pkg mocks -skip-ensure -fmt goimports . Completer

// Completer sends a chat completion and returns the text of the answer.
// jsonOut asks for a JSON object answer where the client supports it.
type Completer interface {
	Complete(ctx context.Context, system, user string, maxTokens int, jsonOut bool) (string, error)
	Model() string
}

// DescriptionLimit is the max number of description runes sent to the model
const DescriptionLimit = 1000

const extractMaxTokens = 300

const newsSystemPrompt = `You extract geopolitical events from news articles for a world conflict map.
Answer with a single JSON object and nothing else, no markdown. Fields:
- latitude: number, latitude of the place the event happens
- longitude: number, longitude of the place the event happens
- locationName: string, "City, Country" or "Country"
- category: one of "Armed Conflict", "Protest", "Political Unrest", "Other"
- severity: integer 1 (minor) to 5 (catastrophic)
- summary: one sentence summary, at most 200 characters
If the article does not describe a conflict, protest or political unrest event, answer null.`

const alienSystemPrompt = `You extract reports of UFO, UAP and other unexplained aerial phenomena from news articles for a sightings map.
Answer with a single JSON object and nothing else, no markdown. Fields:
- latitude: number, latitude of the sighting
- longitude: number, longitude of the sighting
- locationName: string, "City, Country" or "Country"
- category: "Alien"
- severity: integer 1 (single vague report) to 5 (mass sighting with corroborating evidence)
- summary: one sentence summary, at most 200 characters
If the article is not about such a sighting or encounter, answer null.`

// Extractor is the LLM extraction strategy
type Extractor struct {
	client Completer
	gaz    *geo.Gazetteer
	mode   extract.Mode
}

// NewExtractor makes LLM extractor. Gazetteer repairs missing coordinates.
func NewExtractor(client Completer, gaz *geo.Gazetteer, mode extract.Mode) *Extractor {
	if mode == "" {
		mode = extract.ModeNews
	}
	return &Extractor{client: client, gaz: gaz, mode: mode}
}

type eventResponse struct {
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	LocationName string   `json:"locationName"`
	Category     string   `json:"category"`
	Severity     float64  `json:"severity"`
	Summary      string   `json:"summary"`
}

// Extract asks the model for an event. Returns nil event when the model says the
// article is not relevant, and an error for transport failures, exhausted rate
// limit retries and unparseable answers.
func (e *Extractor) Extract(ctx context.Context, item domain.FeedItem) (*domain.ExtractedEvent, error) {
	system := newsSystemPrompt
	if e.mode == extract.ModeAlien {
		system = alienSystemPrompt
	}

	content, err := e.client.Complete(ctx, system, e.buildPrompt(item), extractMaxTokens, true)
	if err != nil {
		return nil, fmt.Errorf("extract event: %w", err)
	}

	resp, err := parseEventResponse(content)
	if err != nil {
		log.Printf("[WARN] can't parse llm answer for %q: %v", item.Link, err)
		return nil, fmt.Errorf("parse llm answer: %w", err)
	}
	if resp == nil {
		return nil, nil
	}
	return e.normalize(item, resp), nil
}

func (e *Extractor) buildPrompt(item domain.FeedItem) string {
	var b strings.Builder
	b.WriteString("Title: ")
	b.WriteString(strings.TrimSpace(item.Title))
	b.WriteString("\nDescription: ")
	b.WriteString(extract.Truncate(strings.TrimSpace(item.Description), DescriptionLimit))
	if item.Region != "" {
		b.WriteString("\nFeed region: ")
		b.WriteString(item.Region)
	}
	return b.String()
}

// normalize makes the event satisfy the record invariants: known category,
// severity in range and coordinates always set
func (e *Extractor) normalize(item domain.FeedItem, r *eventResponse) *domain.ExtractedEvent {
	ev := &domain.ExtractedEvent{
		LocationName: strings.TrimSpace(r.LocationName),
		Category:     domain.ParseCategory(r.Category),
		Severity:     domain.ClampSeverity(int(math.Round(r.Severity))),
		Summary:      extract.Truncate(strings.TrimSpace(r.Summary), extract.SummaryLimit),
	}
	if e.mode == extract.ModeAlien {
		ev.Category = domain.CategoryAlien
	} else if ev.Category == domain.CategoryAlien {
		ev.Category = domain.CategoryOther
	}
	if ev.Summary == "" {
		ev.Summary = extract.Truncate(strings.TrimSpace(item.Title), extract.SummaryLimit)
	}

	if r.Latitude != nil && r.Longitude != nil && domain.ValidCoordinates(*r.Latitude, *r.Longitude) &&
		!(*r.Latitude == 0 && *r.Longitude == 0) {
		ev.Latitude, ev.Longitude = *r.Latitude, *r.Longitude
		if ev.LocationName == "" {
			ev.LocationName = domain.GlobalEvent
		}
		return ev
	}

	// model gave no usable coordinates, resolve them from the place name or the article text
	for _, text := range []string{ev.LocationName, item.Title + " " + item.Description} {
		if p, ok := e.gaz.Locate(text); ok {
			ev.Latitude, ev.Longitude, ev.LocationName = p.Lat, p.Lon, p.Label()
			return ev
		}
	}
	if p, ok := e.gaz.Country(item.Region); ok {
		ev.Latitude, ev.Longitude, ev.LocationName = p.Lat, p.Lon, p.Label()
		return ev
	}
	ev.Latitude, ev.Longitude, ev.LocationName = domain.GlobalEventLat, domain.GlobalEventLon, domain.GlobalEvent
	return ev
}

// parseEventResponse decodes the model answer. Code fences are stripped, an array
// answer uses the first element, null and empty arrays mean "not an event".
func parseEventResponse(content string) (*eventResponse, error) {
	content = StripCodeFences(content)
	if content == "" {
		return nil, errors.New("empty answer")
	}

	var raw json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		// models sometimes wrap the object in prose
		start, end := strings.IndexAny(content, "{["), strings.LastIndexAny(content, "}]")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("no json found in answer: %w", err)
		}
		if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse json: %w", err)
		}
	}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("failed to parse json array: %w", err)
		}
		if len(list) == 0 {
			return nil, nil
		}
		raw = list[0]
		if strings.TrimSpace(string(raw)) == "null" {
			return nil, nil
		}
	}

	var resp eventResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}
	if resp.Latitude == nil && resp.Longitude == nil && resp.LocationName == "" && resp.Category == "" && resp.Summary == "" {
		return nil, errors.New("answer has no event fields")
	}
	return &resp, nil
}

// StripCodeFences removes markdown code fence lines around a model answer
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:] // drop the language tag line
	} else {
		s = strings.TrimPrefix(strings.TrimSpace(s), "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
