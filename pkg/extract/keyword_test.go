package extract

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mappin-app/mappin/pkg/domain"
	"github.com/mappin-app/mappin/pkg/geo"
)

func TestKeyword_Extract(t *testing.T) {
	k := NewKeyword(geo.New(), ModeNews)

	t.Run("protest in lebanon", func(t *testing.T) {
		ev, err := k.Extract(context.Background(), domain.FeedItem{Title: "Protests erupt in Lebanon"})
		require.NoError(t, err)
		require.NotNil(t, ev)
		assert.Equal(t, "Lebanon", ev.LocationName)
		assert.Equal(t, domain.CategoryProtest, ev.Category)
		assert.InDelta(t, 33.85, ev.Latitude, 0.01)
		assert.InDelta(t, 35.86, ev.Longitude, 0.01)
		assert.Equal(t, "Protests erupt in Lebanon", ev.Summary)
	})

	t.Run("bakery is not a conflict", func(t *testing.T) {
		ev, err := k.Extract(context.Background(), domain.FeedItem{Title: "Local bakery wins award", Description: "Best bread in town"})
		require.NoError(t, err)
		assert.Nil(t, ev)
	})

	t.Run("clashes in khartoum", func(t *testing.T) {
		ev, err := k.Extract(context.Background(), domain.FeedItem{Title: "Clashes reported in Khartoum",
			Description: "Fighting broke out..."})
		require.NoError(t, err)
		require.NotNil(t, ev)
		assert.Equal(t, domain.CategoryArmedConflict, ev.Category)
		assert.Equal(t, "Khartoum, Sudan", ev.LocationName)
		assert.GreaterOrEqual(t, ev.Severity, 3)
		assert.Equal(t, "Fighting broke out...", ev.Summary)
	})

	t.Run("keywords without place use global event", func(t *testing.T) {
		ev, err := k.Extract(context.Background(), domain.FeedItem{Title: "Missile strike hits convoy"})
		require.NoError(t, err)
		require.NotNil(t, ev)
		assert.Equal(t, domain.GlobalEvent, ev.LocationName)
		assert.InDelta(t, 20.0, ev.Latitude, 0.0001)
		assert.InDelta(t, 0.0, ev.Longitude, 0.0001)
		assert.Equal(t, domain.CategoryArmedConflict, ev.Category)
	})

	t.Run("place without keywords is other", func(t *testing.T) {
		ev, err := k.Extract(context.Background(), domain.FeedItem{Title: "New museum opens in Cairo"})
		require.NoError(t, err)
		require.NotNil(t, ev)
		assert.Equal(t, "Cairo, Egypt", ev.LocationName)
		assert.Equal(t, domain.CategoryOther, ev.Category)
		assert.Equal(t, 2, ev.Severity)
	})

	t.Run("country hint wins", func(t *testing.T) {
		ev, err := k.Extract(context.Background(), domain.FeedItem{Title: "Troops deployed near Kyiv", Region: "Poland"})
		require.NoError(t, err)
		require.NotNil(t, ev)
		assert.Equal(t, "Poland", ev.LocationName)
	})

	t.Run("city of the hinted country wins over the hint", func(t *testing.T) {
		ev, err := k.Extract(context.Background(), domain.FeedItem{Title: "Clashes erupt in Khartoum", Region: "Sudan"})
		require.NoError(t, err)
		require.NotNil(t, ev)
		assert.Equal(t, "Khartoum, Sudan", ev.LocationName)
		assert.InDelta(t, 15.5, ev.Latitude, 0.01)
	})

	t.Run("hint without a city in the text", func(t *testing.T) {
		ev, err := k.Extract(context.Background(), domain.FeedItem{Title: "Army clashes with rebels", Region: "Sudan"})
		require.NoError(t, err)
		require.NotNil(t, ev)
		assert.Equal(t, "Sudan", ev.LocationName)
	})

	t.Run("voters without place use global event", func(t *testing.T) {
		ev, err := k.Extract(context.Background(), domain.FeedItem{Title: "Voters head to the polls"})
		require.NoError(t, err)
		require.NotNil(t, ev)
		assert.Equal(t, domain.GlobalEvent, ev.LocationName)
		assert.Equal(t, domain.CategoryPoliticalUnrest, ev.Category)
	})

	t.Run("region that is not a country is ignored", func(t *testing.T) {
		ev, err := k.Extract(context.Background(), domain.FeedItem{Title: "Troops deployed near Kyiv", Region: "Europe"})
		require.NoError(t, err)
		require.NotNil(t, ev)
		assert.Equal(t, "Kyiv, Ukraine", ev.LocationName)
	})

	t.Run("summary truncated", func(t *testing.T) {
		desc := strings.Repeat("protest ", 60)
		ev, err := k.Extract(context.Background(), domain.FeedItem{Title: "Rally", Description: desc})
		require.NoError(t, err)
		require.NotNil(t, ev)
		assert.LessOrEqual(t, utf8.RuneCountInString(ev.Summary), SummaryLimit)
		assert.True(t, strings.HasSuffix(ev.Summary, "..."))
	})
}

func TestKeyword_Classify(t *testing.T) {
	k := NewKeyword(geo.New(), "")

	tests := []struct {
		text     string
		want     domain.Category
		relevant bool
	}{
		{"Rebels attack army base", domain.CategoryArmedConflict, true},
		{"Students stage demonstration", domain.CategoryProtest, true},
		{"Opposition calls for new election", domain.CategoryPoliticalUnrest, true},
		{"Military cracks down on protest", domain.CategoryArmedConflict, true},
		{"Film wins award at festival", domain.CategoryOther, false},
		{"Prices rise in March", domain.CategoryOther, false},
		{"Thousands march on parliament", domain.CategoryProtest, true},
		{"Warsaw hosts trade fair", domain.CategoryOther, false},
		{"Kenya voters head to the polls", domain.CategoryPoliticalUnrest, true},
		{"Kenya voted yesterday", domain.CategoryPoliticalUnrest, true},
		{"Governments condemn Kenya", domain.CategoryPoliticalUnrest, true},
		{"Militants seize town", domain.CategoryArmedConflict, true},
		{"Militarized border tightened", domain.CategoryArmedConflict, true},
		{"Troop buildup reported", domain.CategoryArmedConflict, true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, relevant := k.Classify(tt.text)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.relevant, relevant)
		})
	}
}

func TestKeyword_Severity(t *testing.T) {
	k := NewKeyword(geo.New(), ModeNews)

	assert.Equal(t, 5, k.Severity("the war has become a humanitarian catastrophe"))
	assert.Equal(t, 3, k.Severity("gunmen attack village"))
	assert.Equal(t, 4, k.Severity("dozens dead after attack"))
	assert.Equal(t, 5, k.Severity("reports of a massacre, many dead"))
	assert.Equal(t, 2, k.Severity("parliament debates budget"))
	assert.Equal(t, 3, k.Severity("violence flares after vote"))
	assert.Equal(t, 3, k.Severity("War breaks out in Sudan"))
	assert.Equal(t, 3, k.Severity("years of warfare"))
	assert.Equal(t, 2, k.Severity("Warsaw hosts trade fair"))
}

func TestKeyword_AlienMode(t *testing.T) {
	k := NewKeyword(geo.New(), ModeAlien)

	ev, err := k.Extract(context.Background(), domain.FeedItem{Title: "UFO sighting over Phoenix",
		Description: "Multiple witnesses filmed bright lights"})
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, domain.CategoryAlien, ev.Category)
	assert.Equal(t, domain.GlobalEvent, ev.LocationName)
	assert.Equal(t, 5, ev.Severity)

	ev, err = k.Extract(context.Background(), domain.FeedItem{Title: "Orb photographed above London"})
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "London, United Kingdom", ev.LocationName)
	assert.Equal(t, 3, ev.Severity)

	// conflict news is not relevant in alien mode
	ev, err = k.Extract(context.Background(), domain.FeedItem{Title: "Protests erupt in Lebanon"})
	require.NoError(t, err)
	assert.Nil(t, ev)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd...", Truncate("abcdefghij", 7))
	assert.Equal(t, "абвг...", Truncate("абвгдеёжзи", 7))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
	assert.Equal(t, "abc", Truncate("abc", 0))
}
