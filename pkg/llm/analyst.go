package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/mappin-app/mappin/pkg/domain"
	"github.com/mappin-app/mappin/pkg/extract"
)

// ArticleFetcher returns readable text of an article page
type ArticleFetcher interface {
	Extract(ctx context.Context, url string) (string, error)
}

const analysisMaxTokens = 800

const analysisSystemPrompt = `You are a geopolitical analyst. Given a news report about an event, answer with a single JSON object and nothing else:
{"summary": "2-3 sentences on what happened",
 "background": "2-3 sentences of historical and political context",
 "implications": ["short bullet", "short bullet", "short bullet"],
 "riskLevel": "low" | "medium" | "high" | "critical"}
Write plainly and stay factual. Do not invent casualty numbers.`

const narrativeSystemPrompt = `You compare how different news sources report the same event.
Given a main report and related reports from nearby places and times, write a short neutral narrative (at most 5 sentences)
describing what the sources agree on, where they differ and what remains unclear. Answer with plain text, no markdown.`

// risk levels accepted in analysis
var riskLevels = map[string]bool{"low": true, "medium": true, "high": true, "critical": true}

// Analyst writes on-demand enrichment for stored conflicts
type Analyst struct {
	client   Completer
	articles ArticleFetcher // optional, nil means analysis uses feed text only
	now      func() time.Time
}

// NewAnalyst makes analyst. Articles may be nil.
func NewAnalyst(client Completer, articles ArticleFetcher) *Analyst {
	return &Analyst{client: client, articles: articles, now: time.Now}
}

type analysisResponse struct {
	Summary      string   `json:"summary"`
	Background   string   `json:"background"`
	Implications []string `json:"implications"`
	RiskLevel    string   `json:"riskLevel"`
}

// Analyze produces an AI analysis of the conflict. Article text is fetched from
// the source page when possible, extraction failures fall back to the stored description.
func (a *Analyst) Analyze(ctx context.Context, c domain.Conflict) (*domain.AIAnalysis, error) {
	text := c.Description
	if a.articles != nil && c.SourceURL != "" {
		body, err := a.articles.Extract(ctx, c.SourceURL)
		switch {
		case err != nil:
			log.Printf("[WARN] can't extract article %s, using description: %v", c.SourceURL, err)
		case strings.TrimSpace(body) != "":
			text = body
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", c.Title)
	fmt.Fprintf(&b, "Location: %s\n", c.LocationName)
	fmt.Fprintf(&b, "Category: %s\n", c.Category)
	fmt.Fprintf(&b, "Severity: %d of 5\n", c.Severity)
	fmt.Fprintf(&b, "Published: %s\n", c.PublishedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Report:\n%s", text)

	content, err := a.client.Complete(ctx, analysisSystemPrompt, b.String(), analysisMaxTokens, true)
	if err != nil {
		return nil, fmt.Errorf("analyze conflict %d: %w", c.ID, err)
	}

	var resp analysisResponse
	if err := json.Unmarshal([]byte(StripCodeFences(content)), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}
	if strings.TrimSpace(resp.Summary) == "" {
		return nil, fmt.Errorf("analysis of conflict %d has no summary", c.ID)
	}

	implications := make([]string, 0, len(resp.Implications))
	for _, s := range resp.Implications {
		if s = strings.TrimSpace(s); s != "" {
			implications = append(implications, s)
		}
	}

	return &domain.AIAnalysis{
		Summary:      strings.TrimSpace(resp.Summary),
		Background:   strings.TrimSpace(resp.Background),
		Implications: implications,
		RiskLevel:    riskLevel(resp.RiskLevel, c.Severity),
		Model:        a.client.Model(),
		GeneratedAt:  a.now().UTC(),
	}, nil
}

// Narrate compares the conflict with related reports. With no related reports
// the model is not called and the narrative says so.
func (a *Analyst) Narrate(ctx context.Context, c domain.Conflict, related []domain.RelatedReport) (*domain.Narrative, error) {
	res := &domain.Narrative{RelatedReports: related, Model: a.client.Model(), GeneratedAt: a.now().UTC()}
	if res.RelatedReports == nil {
		res.RelatedReports = []domain.RelatedReport{}
	}
	if len(related) == 0 {
		res.Narrative = "No related reports found for this event."
		return res, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Main report: %s (%s, %s)\n%s\n\nRelated reports:\n", c.Title, c.LocationName,
		c.PublishedAt.UTC().Format("2006-01-02"), extract.Truncate(c.Description, DescriptionLimit))
	for i, r := range related {
		fmt.Fprintf(&b, "%d. %s (%s, %s, %.1f km away) %s\n", i+1, r.Title, r.LocationName,
			r.PublishedAt.UTC().Format("2006-01-02"), r.DistanceKm, r.SourceURL)
	}

	content, err := a.client.Complete(ctx, narrativeSystemPrompt, b.String(), analysisMaxTokens, false)
	if err != nil {
		return nil, fmt.Errorf("narrate conflict %d: %w", c.ID, err)
	}
	res.Narrative = strings.TrimSpace(StripCodeFences(content))
	if res.Narrative == "" {
		return nil, fmt.Errorf("empty narrative for conflict %d", c.ID)
	}
	return res, nil
}

// riskLevel normalizes the model value, unknown values are derived from severity
func riskLevel(v string, severity int) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if riskLevels[v] {
		return v
	}
	switch {
	case severity >= 5:
		return "critical"
	case severity == 4:
		return "high"
	case severity == 3:
		return "medium"
	default:
		return "low"
	}
}
