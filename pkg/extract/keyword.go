// Package extract turns feed items into structured events without network calls,
// using keyword buckets and the gazetteer in pkg/geo.
package extract

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mappin-app/mappin/pkg/domain"
	"github.com/mappin-app/mappin/pkg/geo"
)

// Mode selects the category taxonomy
type Mode string

// enum of supported modes
const (
	ModeNews  Mode = "news"
	ModeAlien Mode = "alien"
)

// SummaryLimit is the max number of runes in a keyword summary
const SummaryLimit = 200

type categoryRule struct {
	category domain.Category
	re       *regexp.Regexp
}

type severityRule struct {
	level int
	re    *regexp.Regexp
}

// word builds a case-insensitive, word-bounded alternation
func word(alts ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)
}

// news taxonomy, buckets are checked in order and the first match wins
var newsCategories = []categoryRule{
	{domain.CategoryArmedConflict, word(`kill\w*`, `attack\w*`, `missiles?`, `strikes?`, `war`, `wars`, `warfare`, `troop\w*`,
		`militar\w*`, `militant\w*`, `armed`, `explosions?`, `clash\w*`, `fighting`, `bomb\w*`, `shelling`, `airstrikes?`)},
	// month names are capitalized, only lower-case "march" counts here
	{domain.CategoryProtest, regexp.MustCompile(`(?i)\b(?:protest\w*|demonstrat\w*|rall(?:y|ies|ied)|riot\w*|unrest)\b|(?-i:\bmarch(?:es|ed|ers)?\b)`)},
	{domain.CategoryPoliticalUnrest, word(`politic\w*`, `elections?`, `electoral`, `vot\w*`, `government\w*`, `coups?`,
		`sanctions?`)},
}

// checked most severe first, the first hit wins
var newsSeverity = []severityRule{
	{5, word(`catastroph\w*`, `genocide`, `massacres?`, `full-scale war`, `all-out war`, `world war`, `war crimes?`)},
	{4, word(`deaths?`, `dead`, `killed`, `killing\w*`, `casualt\w*`, `fatalit\w*`, `wounded`)},
	// plain "war" is escalation, war-scale wording sits in the top tier
	{3, word(`wars?`, `warfare`, `attack\w*`, `violen\w*`, `clash\w*`, `fighting`, `bomb\w*`, `shelling`,
		`airstrikes?`, `explosions?`, `assault\w*`)},
}

var alienTrigger = word(`ufos?`, `uaps?`, `sightings?`, `paranormal`, `aliens?`, `extraterrestrials?`, `abduct\w*`,
	`flying saucers?`, `orbs?`, `crop circles?`, `unidentified`)

var alienSeverity = []severityRule{
	{5, word(`mass sightings?`, `multiple witnesses`, `hundreds of witnesses`, `military radar`, `radar confirm\w*`)},
	{4, word(`abduct\w*`, `close encounters?`, `landings?`)},
	{3, word(`witness\w*`, `photos?`, `photograph\w*`, `videos?`, `footage`, `pilots?`)},
}

const baseSeverity = 2

// Keyword is the offline extraction strategy
type Keyword struct {
	gaz  *geo.Gazetteer
	mode Mode
}

// NewKeyword makes keyword extractor for the given mode, empty mode means news
func NewKeyword(gaz *geo.Gazetteer, mode Mode) *Keyword {
	if mode == "" {
		mode = ModeNews
	}
	return &Keyword{gaz: gaz, mode: mode}
}

// Extract builds an event from title and description. Item region is used as a
// country hint when it names a known country. Returns nil when the item has
// neither a place name nor relevant keywords.
func (k *Keyword) Extract(_ context.Context, item domain.FeedItem) (*domain.ExtractedEvent, error) {
	text := strings.TrimSpace(item.Title + " " + item.Description)

	category, relevant := k.Classify(text)
	name, lat, lon, located := k.Locate(text, item.Region)
	if !located {
		if !relevant {
			return nil, nil
		}
		name, lat, lon = domain.GlobalEvent, domain.GlobalEventLat, domain.GlobalEventLon
	}
	if k.mode == ModeAlien && !relevant {
		return nil, nil
	}

	summary := item.Description
	if strings.TrimSpace(summary) == "" {
		summary = item.Title
	}

	return &domain.ExtractedEvent{
		Latitude:     lat,
		Longitude:    lon,
		LocationName: name,
		Category:     category,
		Severity:     k.Severity(text),
		Summary:      Truncate(strings.TrimSpace(summary), SummaryLimit),
	}, nil
}

// Classify returns the category for text and whether any relevant keyword matched.
// News text without keywords is Other.
func (k *Keyword) Classify(text string) (domain.Category, bool) {
	if k.mode == ModeAlien {
		if alienTrigger.MatchString(text) {
			return domain.CategoryAlien, true
		}
		return domain.CategoryOther, false
	}
	for _, r := range newsCategories {
		if r.re.MatchString(text) {
			return r.category, true
		}
	}
	return domain.CategoryOther, false
}

// Severity scores text from 2 up to 5
func (k *Keyword) Severity(text string) int {
	rules := newsSeverity
	if k.mode == ModeAlien {
		rules = alienSeverity
	}
	for _, r := range rules {
		if r.re.MatchString(text) {
			return r.level
		}
	}
	return baseSeverity
}

// Locate resolves a place for text. The hint is tried first, narrowed to a city of
// the hinted country when the text names one, then cities, then countries.
func (k *Keyword) Locate(text, countryHint string) (name string, lat, lon float64, ok bool) {
	if countryHint != "" {
		if p, found := k.gaz.Country(countryHint); found {
			if city, cf := k.gaz.FindCity(text); cf && strings.EqualFold(city.Country, p.Name) {
				return city.Label(), city.Lat, city.Lon, true
			}
			return p.Label(), p.Lat, p.Lon, true
		}
	}
	if p, found := k.gaz.FindCity(text); found {
		return p.Label(), p.Lat, p.Lon, true
	}
	if p, found := k.gaz.FindCountry(text); found {
		return p.Label(), p.Lat, p.Lon, true
	}
	return "", 0, 0, false
}

// Truncate cuts s to at most limit runes, adding an ellipsis when cut
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	if limit <= 3 {
		return string(r[:limit])
	}
	return strings.TrimSpace(string(r[:limit-3])) + "..."
}
