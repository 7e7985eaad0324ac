package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "http://ex.com/a", "http://ex.com/a"},
		{"case and www", "HTTPS://WWW.Example.COM/News/Story", "https://example.com/News/Story"},
		{"trailing slash", "https://example.com/story/", "https://example.com/story"},
		{"root", "https://example.com/", "https://example.com"},
		{"fragment", "https://example.com/story#comments", "https://example.com/story"},
		{"tracking params", "https://example.com/s?utm_source=rss&utm_medium=feed&id=5&fbclid=x&ref=home", "https://example.com/s?id=5"},
		{"sorted query", "https://example.com/s?b=2&a=1", "https://example.com/s?a=1&b=2"},
		{"default port", "https://example.com:443/s", "https://example.com/s"},
		{"non default port", "http://example.com:8080/s", "http://example.com:8080/s"},
		{"whitespace", "  https://example.com/s  ", "https://example.com/s"},
		{"not a url", "not a url", "not a url"},
		{"empty", "", ""},
		{"upper case tracking", "https://example.com/s?UTM_Campaign=x&gclid=1", "https://example.com/s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeURL(tt.in))
		})
	}
}

func TestKey(t *testing.T) {
	link := "https://www.example.com/story/?utm_source=rss"
	assert.Equal(t, "https://www.example.com/story/?utm_source=rss", Key(ModeExact, " "+link))
	assert.Equal(t, "https://example.com/story", Key(ModeNormalized, link))
	assert.Equal(t, Key(ModeNormalized, "https://example.com/story"), Key(ModeNormalized, link))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeNormalized, m)

	m, err = ParseMode("Exact")
	require.NoError(t, err)
	assert.Equal(t, ModeExact, m)

	_, err = ParseMode("fuzzy")
	assert.Error(t, err)
}
