// Package geo resolves place names found in article text to coordinates using
// curated city and country tables.
package geo

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// Place is a gazetteer entry
type Place struct {
	Name    string
	Country string // set for cities only
	Lat     float64
	Lon     float64
	Aliases []string
}

// Label returns the human-readable location name, "City, Country" for cities
func (p Place) Label() string {
	if p.Country == "" {
		return p.Name
	}
	return p.Name + ", " + p.Country
}

type matcher struct {
	place Place
	names []string
	re    *regexp.Regexp
}

// Gazetteer matches city and country names in free text
type Gazetteer struct {
	cities    []matcher
	countries []matcher
	byName    map[string]Place // lower-cased country name or alias
}

// New makes a gazetteer with the built-in tables
func New() *Gazetteer {
	return NewWithPlaces(cities, countries)
}

// NewWithPlaces makes a gazetteer with custom tables
func NewWithPlaces(cityTable, countryTable []Place) *Gazetteer {
	g := &Gazetteer{
		cities:    compile(cityTable),
		countries: compile(countryTable),
		byName:    make(map[string]Place, len(countryTable)),
	}
	for _, c := range countryTable {
		g.byName[strings.ToLower(c.Name)] = c
		for _, a := range c.Aliases {
			g.byName[strings.ToLower(a)] = c
		}
	}
	return g
}

// compile builds one word-bounded, case-insensitive pattern per entry.
// longer names go first in the alternation so "South Sudan" wins over "Sudan".
func compile(places []Place) []matcher {
	res := make([]matcher, 0, len(places))
	for _, p := range places {
		names := append([]string{p.Name}, p.Aliases...)
		sort.SliceStable(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
		quoted := make([]string, len(names))
		for i, n := range names {
			quoted[i] = regexp.QuoteMeta(n)
		}
		re := regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(` + strings.Join(quoted, "|") + `)(?:$|[^\p{L}\p{N}])`)
		res = append(res, matcher{place: p, names: names, re: re})
	}
	return res
}

// Country looks up a country by exact name or alias, case-insensitive
func (g *Gazetteer) Country(name string) (Place, bool) {
	p, ok := g.byName[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// FindCity returns the city mentioned earliest in text
func (g *Gazetteer) FindCity(text string) (Place, bool) {
	return find(g.cities, text)
}

// FindCountry returns the country mentioned earliest in text
func (g *Gazetteer) FindCountry(text string) (Place, bool) {
	return find(g.countries, text)
}

// Locate tries cities first, then countries
func (g *Gazetteer) Locate(text string) (Place, bool) {
	if p, ok := g.FindCity(text); ok {
		return p, true
	}
	return g.FindCountry(text)
}

// find picks the earliest match in text, ties go to the longer matched name
func find(ms []matcher, text string) (Place, bool) {
	bestPos, bestLen := -1, 0
	var best Place
	for _, m := range ms {
		loc := m.re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		pos, length := loc[2], loc[3]-loc[2]
		if bestPos == -1 || pos < bestPos || (pos == bestPos && length > bestLen) {
			bestPos, bestLen, best = pos, length, m.place
		}
	}
	return best, bestPos >= 0
}

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
