package server

import (
	"net/http"
	"strings"

	log "github.com/go-pkgz/lgr"

	"github.com/mappin-app/mappin/pkg/domain"
)

const defaultRSSLimit = 100

// rssHandler serves the latest records as RSS, optionally filtered by ?category=
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if v := strings.TrimSpace(r.URL.Query().Get("category")); v != "" {
		category = domain.ParseCategory(v)
	}

	conflicts, err := s.store.List(r.Context(), domain.ConflictFilter{Category: category, Limit: defaultRSSLimit})
	if err != nil {
		log.Printf("[ERROR] failed to get conflicts for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	rss, err := s.feedsGen.GenerateRSS(conflicts, category)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// opmlHandler serves configured feeds as OPML
func (s *Server) opmlHandler(w http.ResponseWriter, _ *http.Request) {
	opml, err := s.feedsGen.GenerateOPML(s.feeds)
	if err != nil {
		log.Printf("[ERROR] failed to generate OPML: %v", err)
		http.Error(w, "Failed to generate OPML", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="mappin-feeds.opml"`)
	if _, err := w.Write([]byte(opml)); err != nil {
		log.Printf("[ERROR] failed to write OPML response: %v", err)
	}
}
