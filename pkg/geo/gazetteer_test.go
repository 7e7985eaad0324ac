package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGazetteer_Locate(t *testing.T) {
	g := New()

	tests := []struct {
		name      string
		text      string
		wantLabel string
		wantFound bool
	}{
		{name: "city wins over country", text: "Sudan: clashes reported in Khartoum", wantLabel: "Khartoum, Sudan", wantFound: true},
		{name: "country only", text: "Protesters rally in Lebanon", wantLabel: "Lebanon", wantFound: true},
		{name: "case insensitive", text: "PROTESTS IN LEBANON", wantLabel: "Lebanon", wantFound: true},
		{name: "demonym alias", text: "Ukrainian drones reported overnight", wantLabel: "Ukraine", wantFound: true},
		{name: "city alias", text: "Air raid sirens in Kiev", wantLabel: "Kyiv, Ukraine", wantFound: true},
		{name: "longer country name", text: "Fighting resumes in South Sudan", wantLabel: "South Sudan", wantFound: true},
		{name: "word bounded", text: "A woman opened a bakery in Romania", wantFound: false},
		{name: "niger is not nigeria", text: "Elections in Nigeria next week", wantLabel: "Nigeria", wantFound: true},
		{name: "nothing", text: "Local bakery opens", wantFound: false},
		{name: "earliest mention wins", text: "Moscow responds to strikes on Kharkiv", wantLabel: "Moscow, Russia", wantFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := g.Locate(tt.text)
			require.Equal(t, tt.wantFound, ok)
			if tt.wantFound {
				assert.Equal(t, tt.wantLabel, p.Label())
			}
		})
	}
}

func TestGazetteer_Country(t *testing.T) {
	g := New()

	p, ok := g.Country("lebanon")
	require.True(t, ok)
	assert.Equal(t, "Lebanon", p.Name)
	assert.InDelta(t, 33.85, p.Lat, 0.01)

	p, ok = g.Country(" UK ")
	require.True(t, ok)
	assert.Equal(t, "United Kingdom", p.Name)

	_, ok = g.Country("Atlantis")
	assert.False(t, ok)
}

func TestGazetteer_CustomTables(t *testing.T) {
	g := NewWithPlaces(
		[]Place{{Name: "Springfield", Country: "Freedonia", Lat: 1, Lon: 2}},
		[]Place{{Name: "Freedonia", Lat: 3, Lon: 4}},
	)

	p, ok := g.FindCity("riots in springfield")
	require.True(t, ok)
	assert.Equal(t, "Springfield, Freedonia", p.Label())

	p, ok = g.FindCountry("Freedonia votes")
	require.True(t, ok)
	assert.InDelta(t, 3.0, p.Lat, 0.0001)

	_, ok = g.FindCity("Khartoum")
	assert.False(t, ok)
}

func TestDistanceKm(t *testing.T) {
	assert.InDelta(t, 0, DistanceKm(10, 10, 10, 10), 0.0001)
	// beirut to damascus is roughly 85 km
	assert.InDelta(t, 85, DistanceKm(33.89, 35.5, 33.51, 36.28), 10)
	// one degree of latitude
	assert.InDelta(t, 111.2, DistanceKm(0, 0, 1, 0), 0.5)
}
