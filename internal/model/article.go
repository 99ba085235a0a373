// Package model defines the engine's data types: the feature-annotated input
// article and the derived KPI metric, alert, insight, and trend records.
// Derived entities are recomputed fresh each run and never mutated after
// creation.
package model

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/insight-hub/newsintel-cli/internal/registry"
)

// Sentiment labels derived from the polarity score.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// NeutralBand is the polarity half-width treated as neutral: scores with
// |s| < 0.3 carry the neutral label.
const NeutralBand = 0.3

// RelevanceThreshold is the per-KPI relevance cutoff: an article is relevant
// to a KPI only when its relevance score strictly exceeds this.
const RelevanceThreshold = 30.0

// FeaturedArticle is one input record: a news article already annotated with
// a sentiment polarity score, per-KPI relevance scores, and a topic cluster.
// Immutable within a run.
type FeaturedArticle struct {
	ID               string             `json:"id"`
	Title            string             `json:"title,omitempty"`
	Source           string             `json:"source,omitempty"`
	Category         string             `json:"category"`
	PublishedAt      time.Time          `json:"publishedAt"`
	Summary          string             `json:"summary,omitempty"`
	FullText         string             `json:"fullText,omitempty"`
	URL              string             `json:"url,omitempty"`
	Author           string             `json:"author,omitempty"`
	Sentiment        string             `json:"sentiment"`
	SentimentScore   float64            `json:"sentimentScore"`
	KPIRelevance     map[string]float64 `json:"kpiRelevance"`
	KPIIDs           []string           `json:"kpiIds"`
	TopicCluster     int                `json:"topicCluster"`
	ExtractedTerms   []string           `json:"extractedTerms"`
	CredibilityScore int                `json:"credibilityScore,omitempty"`
}

// SentimentLabel maps a polarity score in [-1,1] to a label using the
// standard neutral band.
func SentimentLabel(score float64) string {
	// NaN fails every comparison below; treat it as neutral rather than
	// letting it fall through to negative.
	if math.IsNaN(score) || math.Abs(score) < NeutralBand {
		return SentimentNeutral
	}
	if score > 0 {
		return SentimentPositive
	}
	return SentimentNegative
}

// Day returns the calendar date of publication, UTC, as YYYY-MM-DD.
func (a *FeaturedArticle) Day() string {
	return a.PublishedAt.UTC().Format("2006-01-02")
}

// RelevantTo reports whether the article clears the relevance threshold for
// the given KPI.
func (a *FeaturedArticle) RelevantTo(kpiID string) bool {
	return a.KPIRelevance[kpiID] > RelevanceThreshold
}

// Normalize recomputes the derived fields from their canonical sources:
// kpiIds is rebuilt from kpiRelevance (registry order, threshold applied) and
// the sentiment label from the polarity score. Keeping both views in sync
// here means every later stage can treat them as read-only.
func (a *FeaturedArticle) Normalize(reg *registry.Registry) {
	a.Sentiment = SentimentLabel(a.SentimentScore)
	a.KPIIDs = a.KPIIDs[:0]
	for _, def := range reg.Definitions() {
		if a.RelevantTo(def.ID) {
			a.KPIIDs = append(a.KPIIDs, def.ID)
		}
	}
}

// Problems validates the article against the input contract and returns a
// human-readable description per violation. A missing relevance map is a
// degradation, not an error: the article still feeds volume and sentiment
// trend counts.
func (a *FeaturedArticle) Problems(reg *registry.Registry) []string {
	var out []string
	if a.ID == "" {
		out = append(out, "missing id")
	}
	if a.PublishedAt.IsZero() {
		out = append(out, "missing publishedAt")
	}
	if math.IsNaN(a.SentimentScore) || a.SentimentScore < -1 || a.SentimentScore > 1 {
		out = append(out, fmt.Sprintf("sentimentScore %v outside [-1,1]", a.SentimentScore))
	}
	kpiIDs := make([]string, 0, len(a.KPIRelevance))
	for kpiID := range a.KPIRelevance {
		kpiIDs = append(kpiIDs, kpiID)
	}
	sort.Strings(kpiIDs)
	for _, kpiID := range kpiIDs {
		score := a.KPIRelevance[kpiID]
		if !reg.Contains(kpiID) {
			out = append(out, fmt.Sprintf("kpiRelevance references unknown kpi %q", kpiID))
		}
		if math.IsNaN(score) || score < 0 || score > 100 {
			out = append(out, fmt.Sprintf("kpiRelevance[%s] = %v outside [0,100]", kpiID, score))
		}
	}
	if a.TopicCluster < 0 {
		out = append(out, fmt.Sprintf("negative topicCluster %d", a.TopicCluster))
	}
	return out
}

// Scoreable reports whether the article can participate in relevance-based
// aggregation at all.
func (a *FeaturedArticle) Scoreable() bool {
	return len(a.KPIRelevance) > 0 && !a.PublishedAt.IsZero()
}

// Countable reports whether the article contributes to volume and sentiment
// trend statistics.
func (a *FeaturedArticle) Countable() bool {
	return !a.PublishedAt.IsZero() && a.Sentiment != ""
}
