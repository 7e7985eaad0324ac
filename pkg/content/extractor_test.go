package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportPage = `<!DOCTYPE html><html>
<head><title>Clashes reported in Khartoum</title></head>
<body>
	<nav><a href="/">Home</a> <a href="/world">World</a></nav>
	<article>
		<h1>Clashes reported in Khartoum</h1>
		<p>Fighting broke out in the capital early on Monday between the army and the Rapid Support Forces.</p>
		<p>Residents reported heavy gunfire near the airport and columns of smoke over the city centre.</p>
		<p>Aid groups said hospitals in the south of the city were running out of supplies.</p>
	</article>
</body></html>`

// pageServer serves body with status and records request headers
func pageServer(t *testing.T, status int, body string) (*httptest.Server, *http.Header) {
	t.Helper()
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestExtractor_Extract(t *testing.T) {
	t.Run("article text", func(t *testing.T) {
		srv, _ := pageServer(t, http.StatusOK, reportPage)
		text, err := NewExtractor(5*time.Second, "", 0).Extract(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Contains(t, text, "Fighting broke out in the capital")
		assert.Contains(t, text, "running out of supplies")
		assert.Equal(t, strings.TrimSpace(text), text)
	})

	t.Run("capped by runes", func(t *testing.T) {
		page := `<html><body><article><p>` + strings.Repeat("Бои в Хартуме продолжаются третий день подряд. ", 10) +
			`</p></article></body></html>`
		srv, _ := pageServer(t, http.StatusOK, page)
		text, err := NewExtractor(5*time.Second, "", 20).Extract(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, 20, utf8.RuneCountInString(text))
		assert.True(t, utf8.ValidString(text), "cut on a rune boundary")
		assert.True(t, strings.HasPrefix(text, "Бои в Хартуме"))
	})

	t.Run("page without text", func(t *testing.T) {
		srv, _ := pageServer(t, http.StatusOK, `<html><body><nav></nav></body></html>`)
		_, err := NewExtractor(5*time.Second, "", 0).Extract(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), srv.URL)
	})

	t.Run("bad status", func(t *testing.T) {
		srv, _ := pageServer(t, http.StatusServiceUnavailable, reportPage)
		_, err := NewExtractor(5*time.Second, "", 0).Extract(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code 503")
	})

	t.Run("invalid url", func(t *testing.T) {
		for _, u := range []string{"", "not-a-url", "/relative/path"} {
			_, err := NewExtractor(time.Second, "", 0).Extract(context.Background(), u)
			require.Error(t, err, u)
			assert.Contains(t, err.Error(), "invalid URL", u)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		srv, _ := pageServer(t, http.StatusOK, reportPage)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewExtractor(5*time.Second, "", 0).Extract(ctx, srv.URL)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestExtractor_Headers(t *testing.T) {
	t.Run("default user agent", func(t *testing.T) {
		srv, got := pageServer(t, http.StatusOK, reportPage)
		_, err := NewExtractor(5*time.Second, "", 0).Extract(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Contains(t, got.Get("User-Agent"), "Mappin")
		assert.Contains(t, got.Get("Accept"), "text/html")
		assert.True(t, slices.Contains(acceptLanguages, got.Get("Accept-Language")))
		assert.Equal(t, "navigate", got.Get("Sec-Fetch-Mode"))
	})

	t.Run("configured user agent", func(t *testing.T) {
		srv, got := pageServer(t, http.StatusOK, reportPage)
		_, err := NewExtractor(5*time.Second, "mappin-test", 0).Extract(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "mappin-test", got.Get("User-Agent"))
	})
}
