package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// EnrichmentKind identifies the payload type attached to a conflict record
type EnrichmentKind string

// enrichment kinds
const (
	EnrichmentAIAnalysis EnrichmentKind = "ai_analysis"
	EnrichmentNarrative  EnrichmentKind = "narrative"
)

// ErrUnknownEnrichment is returned for payloads with an unrecognized kind
var ErrUnknownEnrichment = errors.New("unknown enrichment kind")

// AIAnalysis is the on-demand LLM analysis cached on a record
type AIAnalysis struct {
	Summary      string    `json:"summary"`
	Background   string    `json:"background"`
	Implications []string  `json:"implications"`
	RiskLevel    string    `json:"risk_level"`
	Model        string    `json:"model"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// RelatedReport references another record covering the same event
type RelatedReport struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	SourceURL    string    `json:"source_url"`
	LocationName string    `json:"location_name"`
	PublishedAt  time.Time `json:"published_at"`
	DistanceKm   float64   `json:"distance_km"`
}

// Narrative is the cross-source comparison of related reports
type Narrative struct {
	Narrative      string          `json:"narrative"`
	RelatedReports []RelatedReport `json:"related_reports"`
	Model          string          `json:"model"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// Enrichment is a closed tagged variant, exactly one payload matching Kind is set
type Enrichment struct {
	Kind      EnrichmentKind
	Analysis  *AIAnalysis
	Narrative *Narrative
}

// NewAnalysisEnrichment wraps an AI analysis
func NewAnalysisEnrichment(a *AIAnalysis) Enrichment {
	return Enrichment{Kind: EnrichmentAIAnalysis, Analysis: a}
}

// NewNarrativeEnrichment wraps a narrative comparison
func NewNarrativeEnrichment(n *Narrative) Enrichment {
	return Enrichment{Kind: EnrichmentNarrative, Narrative: n}
}

// Validate checks that the payload matches the kind
func (e Enrichment) Validate() error {
	switch e.Kind {
	case EnrichmentAIAnalysis:
		if e.Analysis == nil || e.Narrative != nil {
			return fmt.Errorf("enrichment %s: expected analysis payload only", e.Kind)
		}
	case EnrichmentNarrative:
		if e.Narrative == nil || e.Analysis != nil {
			return fmt.Errorf("enrichment %s: expected narrative payload only", e.Kind)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEnrichment, e.Kind)
	}
	return nil
}

type enrichmentJSON struct {
	Kind EnrichmentKind  `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// MarshalJSON encodes the enrichment as {"kind": ..., "data": ...}
func (e Enrichment) MarshalJSON() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	var payload any = e.Analysis
	if e.Kind == EnrichmentNarrative {
		payload = e.Narrative
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", e.Kind, err)
	}
	return json.Marshal(enrichmentJSON{Kind: e.Kind, Data: data})
}

// UnmarshalJSON decodes the tagged form, rejecting unknown kinds
func (e *Enrichment) UnmarshalJSON(b []byte) error {
	var raw enrichmentJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("unmarshal enrichment: %w", err)
	}
	switch raw.Kind {
	case EnrichmentAIAnalysis:
		var a AIAnalysis
		if err := json.Unmarshal(raw.Data, &a); err != nil {
			return fmt.Errorf("unmarshal %s payload: %w", raw.Kind, err)
		}
		*e = NewAnalysisEnrichment(&a)
	case EnrichmentNarrative:
		var n Narrative
		if err := json.Unmarshal(raw.Data, &n); err != nil {
			return fmt.Errorf("unmarshal %s payload: %w", raw.Kind, err)
		}
		*e = NewNarrativeEnrichment(&n)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEnrichment, raw.Kind)
	}
	return nil
}
