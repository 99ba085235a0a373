package model

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/insight-hub/newsintel-cli/internal/registry"
)

func TestSentimentLabel(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0.8, SentimentPositive},
		{0.3, SentimentPositive}, // band is strict: |s| < 0.3 is neutral
		{0.29, SentimentNeutral},
		{0, SentimentNeutral},
		{-0.29, SentimentNeutral},
		{-0.3, SentimentNegative},
		{-1, SentimentNegative},
		{math.NaN(), SentimentNeutral},
	}
	for _, tc := range cases {
		if got := SentimentLabel(tc.score); got != tc.want {
			t.Errorf("SentimentLabel(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestNormalizeDerivesKPIIDsInRegistryOrder(t *testing.T) {
	reg := registry.Default()
	a := FeaturedArticle{
		SentimentScore: -0.5,
		KPIRelevance: map[string]float64{
			"fbr-tax":       80,
			"td-losses":     45,
			"circular-debt": 30, // exactly at threshold: excluded
			"power-sector":  29.9,
		},
		KPIIDs: []string{"stale", "values"},
	}
	a.Normalize(reg)
	if !reflect.DeepEqual(a.KPIIDs, []string{"td-losses", "fbr-tax"}) {
		t.Fatalf("kpiIds = %v", a.KPIIDs)
	}
	if a.Sentiment != SentimentNegative {
		t.Fatalf("sentiment = %s", a.Sentiment)
	}
}

func TestProblems(t *testing.T) {
	reg := registry.Default()
	ok := FeaturedArticle{
		ID:           "a1",
		PublishedAt:  time.Date(2026, 1, 21, 0, 0, 0, 0, time.UTC),
		KPIRelevance: map[string]float64{"fbr-tax": 50},
	}
	if got := ok.Problems(reg); len(got) != 0 {
		t.Fatalf("expected no problems, got %v", got)
	}

	bad := FeaturedArticle{
		SentimentScore: 1.5,
		KPIRelevance:   map[string]float64{"nope": 120},
		TopicCluster:   -1,
	}
	// missing id, missing publishedAt, bad score, unknown kpi, relevance
	// out of range, negative cluster
	got := bad.Problems(reg)
	if len(got) != 6 {
		t.Fatalf("expected 6 problems, got %d: %v", len(got), got)
	}
}

func TestScoreableAndCountable(t *testing.T) {
	ts := time.Date(2026, 1, 21, 0, 0, 0, 0, time.UTC)
	a := FeaturedArticle{PublishedAt: ts, Sentiment: SentimentNeutral}
	if a.Scoreable() {
		t.Fatalf("article without relevance map must not be scoreable")
	}
	if !a.Countable() {
		t.Fatalf("article with timestamp and label must be countable")
	}
	a.KPIRelevance = map[string]float64{"fbr-tax": 40}
	if !a.Scoreable() {
		t.Fatalf("article with relevance map must be scoreable")
	}
}

func TestDay(t *testing.T) {
	a := FeaturedArticle{PublishedAt: time.Date(2026, 1, 21, 23, 30, 0, 0, time.FixedZone("PKT", 5*3600))}
	if got := a.Day(); got != "2026-01-21" {
		t.Fatalf("Day = %s", got)
	}
	if math.Abs(NeutralBand-0.3) > 1e-12 {
		t.Fatalf("neutral band changed")
	}
}
