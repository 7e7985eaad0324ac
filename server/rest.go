package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/mappin-app/mappin/pkg/domain"
	"github.com/mappin-app/mappin/pkg/ingest"
	"github.com/mappin-app/mappin/pkg/repository"
	"github.com/mappin-app/mappin/pkg/scheduler"
)

const (
	relatedRadiusKm = 100
	relatedWindow   = 72 * time.Hour
	relatedLimit    = 10
)

// statusHandler returns server status with the last batch summary
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
		"feeds":   len(s.feeds),
	}
	if count, err := s.store.Count(r.Context()); err == nil {
		status["conflicts"] = count
	} else {
		log.Printf("[WARN] can't count conflicts: %v", err)
	}
	if last, ok := s.batch.Last(); ok {
		status["last_batch"] = last
	}
	renderJSON(w, r, http.StatusOK, status)
}

// batchHandler runs one ingestion batch and returns its summary. The batch is
// detached from the request, a client disconnect doesn't stop it.
func (s *Server) batchHandler(w http.ResponseWriter, r *http.Request) {
	// a batch outlives the server write timeout
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		log.Printf("[DEBUG] can't reset write deadline: %v", err)
	}

	summary, err := s.batch.Trigger(context.WithoutCancel(r.Context()))
	switch {
	case err == nil:
		renderJSON(w, r, http.StatusOK, summary)
	case errors.Is(err, scheduler.ErrCooldown):
		renderJSON(w, r, http.StatusTooManyRequests, summary)
	case errors.Is(err, ingest.ErrBatchInProgress):
		summary.Message = "batch already in progress"
		renderJSON(w, r, http.StatusConflict, summary)
	default:
		log.Printf("[WARN] triggered batch failed: %v", err)
		summary.Success = false
		if summary.Message == "" {
			summary.Message = err.Error()
		}
		renderJSON(w, r, http.StatusServiceUnavailable, summary)
	}
}

type conflictsResponse struct {
	Conflicts []domain.Conflict `json:"conflicts"`
	Count     int               `json:"count"`
	LastID    int64             `json:"last_id,omitempty"`
}

// listConflictsHandler returns records filtered by time, category and limit
func (s *Server) listConflictsHandler(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r, time.Now())
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	res, err := s.store.List(r.Context(), f)
	if err != nil {
		log.Printf("[ERROR] failed to list conflicts: %v", err)
		renderError(w, r, errors.New("can't list conflicts"), http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, conflictsResponse{Conflicts: res, Count: len(res)})
}

// newConflictsHandler returns records with id above after_id, oldest first.
// The client keeps the returned last_id and sends it back on the next poll.
func (s *Server) newConflictsHandler(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r, time.Now())
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	after, err := strconv.ParseInt(r.URL.Query().Get("after_id"), 10, 64)
	if err != nil || after < 0 {
		renderError(w, r, errors.New("after_id must be a non-negative integer"), http.StatusBadRequest)
		return
	}
	f.AfterID = after

	res, err := s.store.List(r.Context(), f)
	if err != nil {
		log.Printf("[ERROR] failed to list new conflicts: %v", err)
		renderError(w, r, errors.New("can't list conflicts"), http.StatusInternalServerError)
		return
	}
	last := after
	for _, c := range res {
		last = max(last, c.ID)
	}
	renderJSON(w, r, http.StatusOK, conflictsResponse{Conflicts: res, Count: len(res), LastID: last})
}

// getConflictHandler returns one record with its enrichments
func (s *Server) getConflictHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadConflict(w, r)
	if !ok {
		return
	}
	renderJSON(w, r, http.StatusOK, c)
}

// analysisHandler returns the stored analysis, generating and storing it on first request
func (s *Server) analysisHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadConflict(w, r)
	if !ok {
		return
	}
	if c.AIAnalysis != nil {
		renderJSON(w, r, http.StatusOK, c.AIAnalysis)
		return
	}
	if s.analyst == nil {
		renderError(w, r, errors.New("analysis is not configured"), http.StatusServiceUnavailable)
		return
	}

	analysis, err := s.analyst.Analyze(r.Context(), *c)
	if err != nil {
		log.Printf("[WARN] analysis of conflict %d failed: %v", c.ID, err)
		renderError(w, r, errors.New("analysis failed"), http.StatusBadGateway)
		return
	}
	if err := s.store.SaveEnrichment(r.Context(), c.ID, domain.NewAnalysisEnrichment(analysis)); err != nil {
		log.Printf("[WARN] can't store analysis of conflict %d: %v", c.ID, err)
	}
	renderJSON(w, r, http.StatusOK, analysis)
}

// narrativeHandler compares the record with nearby reports of the same period
func (s *Server) narrativeHandler(w http.ResponseWriter, r *http.Request) {
	c, ok := s.loadConflict(w, r)
	if !ok {
		return
	}
	if s.analyst == nil {
		renderError(w, r, errors.New("analysis is not configured"), http.StatusServiceUnavailable)
		return
	}

	related, err := s.store.Related(r.Context(), *c, relatedRadiusKm, relatedWindow, relatedLimit)
	if err != nil {
		log.Printf("[ERROR] can't find reports related to %d: %v", c.ID, err)
		renderError(w, r, errors.New("can't find related reports"), http.StatusInternalServerError)
		return
	}
	narrative, err := s.analyst.Narrate(r.Context(), *c, related)
	if err != nil {
		log.Printf("[WARN] narrative of conflict %d failed: %v", c.ID, err)
		renderError(w, r, errors.New("narrative failed"), http.StatusBadGateway)
		return
	}
	if err := s.store.SaveEnrichment(r.Context(), c.ID, domain.NewNarrativeEnrichment(narrative)); err != nil {
		log.Printf("[WARN] can't store narrative of conflict %d: %v", c.ID, err)
	}
	renderJSON(w, r, http.StatusOK, narrative)
}

type feedJSON struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// feedsHandler returns configured feeds grouped by region
func (s *Server) feedsHandler(w http.ResponseWriter, r *http.Request) {
	regions := map[string][]feedJSON{}
	for _, f := range s.feeds {
		region := f.Region
		if region == "" {
			region = "Other"
		}
		regions[region] = append(regions[region], feedJSON{Name: f.Name, URL: f.URL})
	}
	for _, list := range regions {
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"regions": regions, "count": len(s.feeds)})
}

// loadConflict reads the record of the {id} path value, rendering errors itself
func (s *Server) loadConflict(w http.ResponseWriter, r *http.Request) (*domain.Conflict, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		renderError(w, r, errors.New("invalid conflict id"), http.StatusBadRequest)
		return nil, false
	}
	c, err := s.store.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		renderError(w, r, fmt.Errorf("conflict %d not found", id), http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		log.Printf("[ERROR] failed to get conflict %d: %v", id, err)
		renderError(w, r, errors.New("can't load conflict"), http.StatusInternalServerError)
		return nil, false
	}
	return c, true
}

// parseFilter reads since, field, category and limit query params.
// since is RFC3339 or a duration back from now, like 24h.
func parseFilter(r *http.Request, now time.Time) (domain.ConflictFilter, error) {
	q := r.URL.Query()
	var f domain.ConflictFilter

	if v := strings.TrimSpace(q.Get("since")); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			f.Since = ts
		} else if d, err := time.ParseDuration(v); err == nil && d > 0 {
			f.Since = now.Add(-d)
		} else {
			return f, fmt.Errorf("invalid since %q", v)
		}
	}

	switch domain.TimeField(q.Get("field")) {
	case "", domain.TimePublished:
		f.Field = domain.TimePublished
	case domain.TimeCreated:
		f.Field = domain.TimeCreated
	default:
		return f, fmt.Errorf("invalid field %q, want published or created", q.Get("field"))
	}

	if v := strings.TrimSpace(q.Get("category")); v != "" {
		f.Category = domain.ParseCategory(v)
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return f, fmt.Errorf("invalid limit %q", v)
		}
		f.Limit = n
	}
	return f, nil
}
