package domain

import (
	"strings"
	"time"
)

// Category classifies a conflict event
type Category string

// news taxonomy
const (
	CategoryArmedConflict   Category = "Armed Conflict"
	CategoryProtest         Category = "Protest"
	CategoryPoliticalUnrest Category = "Political Unrest"
	CategoryOther           Category = "Other"
)

// CategoryAlien is used by the paranormal-report variant of the pipeline
const CategoryAlien Category = "Alien"

// severity bounds
const (
	MinSeverity = 1
	MaxSeverity = 5
)

// GlobalEvent is the sentinel location for events with no recognizable place
const GlobalEvent = "Global Event"

// global event coordinates
const (
	GlobalEventLat = 20.0
	GlobalEventLon = 0.0
)

// NewsCategories lists categories valid for the news pipeline
var NewsCategories = []Category{CategoryArmedConflict, CategoryProtest, CategoryPoliticalUnrest, CategoryOther}

// ParseCategory maps free-form category text to a known category, matching
// case-insensitively and ignoring separators. Unknown values map to CategoryOther.
func ParseCategory(s string) Category {
	norm := strings.NewReplacer("_", " ", "-", " ").Replace(strings.ToLower(strings.TrimSpace(s)))
	norm = strings.Join(strings.Fields(norm), " ")
	switch norm {
	case "armed conflict", "armedconflict", "conflict", "war":
		return CategoryArmedConflict
	case "protest", "protests":
		return CategoryProtest
	case "political unrest", "politicalunrest", "unrest", "political":
		return CategoryPoliticalUnrest
	case "alien", "ufo", "uap":
		return CategoryAlien
	default:
		return CategoryOther
	}
}

// ClampSeverity forces severity into [MinSeverity, MaxSeverity]
func ClampSeverity(v int) int {
	if v < MinSeverity {
		return MinSeverity
	}
	if v > MaxSeverity {
		return MaxSeverity
	}
	return v
}

// ValidCoordinates reports whether lat/lon are within geographic ranges
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ExtractedEvent is the structured result of extraction for one article.
// Latitude and Longitude are always set, extraction substitutes a fallback
// location instead of leaving them empty.
type ExtractedEvent struct {
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	LocationName string   `json:"location_name"`
	Category     Category `json:"category"`
	Severity     int      `json:"severity"`
	Summary      string   `json:"summary"`
}

// Conflict is a persisted conflict record
type Conflict struct {
	ID           int64       `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	SourceURL    string      `json:"source_url"`
	URLKey       string      `json:"-"`
	PublishedAt  time.Time   `json:"published_at"`
	Latitude     float64     `json:"latitude"`
	Longitude    float64     `json:"longitude"`
	LocationName string      `json:"location_name"`
	Category     Category    `json:"category"`
	Severity     int         `json:"severity"`
	CreatedAt    time.Time   `json:"created_at"`
	AIAnalysis   *AIAnalysis `json:"ai_analysis,omitempty"`
	Narrative    *Narrative  `json:"narrative_analysis,omitempty"`
}

// TimeField selects which timestamp a filter applies to
type TimeField string

// time fields
const (
	TimePublished TimeField = "published"
	TimeCreated   TimeField = "created"
)

// ConflictFilter describes conflict list queries
type ConflictFilter struct {
	Since    time.Time // zero means no lower bound
	Field    TimeField // published (default) or created
	Category Category  // empty means any
	AfterID  int64     // return only records with id > AfterID
	Limit    int
}
