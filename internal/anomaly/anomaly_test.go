package anomaly

import (
	"strings"
	"testing"
	"time"

	"github.com/insight-hub/newsintel-cli/internal/config"
	"github.com/insight-hub/newsintel-cli/internal/model"
)

func day(n int) time.Time {
	return time.Date(2026, 1, n, 0, 0, 0, 0, time.UTC)
}

func countable(published time.Time, sentiment string) model.FeaturedArticle {
	return model.FeaturedArticle{PublishedAt: published, Sentiment: sentiment}
}

func volumeFixture(counts []int) []model.FeaturedArticle {
	var out []model.FeaturedArticle
	for i, n := range counts {
		for j := 0; j < n; j++ {
			out = append(out, countable(day(i+1), model.SentimentNeutral))
		}
	}
	return out
}

func TestVolumeSpikeScenario(t *testing.T) {
	d := New(config.DefaultTuning())
	// Daily counts [10,12,11,9,10,11,45]: mean ~15.43, population stddev
	// ~12.10, threshold ~39.64. Only the final day clears it.
	alerts := d.Alerts(volumeFixture([]int{10, 12, 11, 9, 10, 11, 45}), nil)
	if len(alerts) != 1 {
		t.Fatalf("alerts = %+v", alerts)
	}
	a := alerts[0]
	if a.ID != "alert-spike-2026-01-07" {
		t.Fatalf("id = %s", a.ID)
	}
	if a.Severity != model.SeverityWarning || a.Status != model.StatusNew || a.Source != SourceVolume {
		t.Fatalf("alert = %+v", a)
	}
	if !strings.Contains(a.Description, "45 articles published on 2026-01-07") {
		t.Fatalf("description = %s", a.Description)
	}
	if !strings.Contains(a.Description, "30 above average") {
		t.Fatalf("description = %s", a.Description)
	}
	if !a.CreatedAt.Equal(day(7)) {
		t.Fatalf("createdAt = %v", a.CreatedAt)
	}
}

func TestVolumeSpikeCreatedAtIsMidnightUTC(t *testing.T) {
	d := New(config.DefaultTuning())
	// Publication times are late evening in a +5 zone; the alert must still
	// anchor at midnight UTC of the bucketed calendar date.
	pkt := time.FixedZone("PKT", 5*3600)
	var articles []model.FeaturedArticle
	for i, n := range []int{10, 12, 11, 9, 10, 11, 45} {
		for j := 0; j < n; j++ {
			articles = append(articles, countable(time.Date(2026, 1, i+1, 10, 30, 0, 0, pkt), model.SentimentNeutral))
		}
	}
	alerts := d.Alerts(articles, nil)
	if len(alerts) != 1 {
		t.Fatalf("alerts = %+v", alerts)
	}
	if !alerts[0].CreatedAt.Equal(day(7)) {
		t.Fatalf("createdAt = %v, want %v", alerts[0].CreatedAt, day(7))
	}
}

func TestVolumeSpikeAtExactThresholdStaysQuiet(t *testing.T) {
	d := New(config.DefaultTuning())
	// A single spike over a flat baseline lands at exactly mean + 2*stddev;
	// the comparison is strict, so nothing fires.
	alerts := d.Alerts(volumeFixture([]int{10, 10, 10, 10, 40}), nil)
	if len(alerts) != 0 {
		t.Fatalf("expected no alert at the exact threshold, got %+v", alerts)
	}
}

func TestVolumeSpikeRequiresHistory(t *testing.T) {
	d := New(config.DefaultTuning())
	// Only three distinct dates: not enough baseline, even with a huge spike.
	alerts := d.Alerts(volumeFixture([]int{5, 5, 500}), nil)
	if len(alerts) != 0 {
		t.Fatalf("expected no alerts with <4 dates, got %+v", alerts)
	}
}

func TestVolumeSpikeOnlyRecentDates(t *testing.T) {
	d := New(config.DefaultTuning())
	// The spike sits outside the trailing three dates and must not fire.
	alerts := d.Alerts(volumeFixture([]int{80, 5, 5, 5, 5, 5}), nil)
	if len(alerts) != 0 {
		t.Fatalf("expected no alerts for an old spike, got %+v", alerts)
	}
}

func TestDeclineAlertThresholds(t *testing.T) {
	d := New(config.DefaultTuning())
	metric := func(trend string, current float64) model.KPIMetric {
		return model.KPIMetric{
			ID: "fbr-tax", Name: "FBR Tax Collection",
			Trend: trend, CurrentScore: current, PreviousScore: current + 20,
			LastUpdated: day(9),
		}
	}

	cases := []struct {
		name         string
		m            model.KPIMetric
		wantSeverity string // empty means no alert
	}{
		{"down but above threshold", metric(model.TrendDown, 47.33), ""},
		{"exactly at threshold", metric(model.TrendDown, 40), ""},
		{"warning band", metric(model.TrendDown, 39.9), model.SeverityWarning},
		{"exactly critical boundary", metric(model.TrendDown, 30), model.SeverityWarning},
		{"critical", metric(model.TrendDown, 29.9), model.SeverityCritical},
		{"stable low score", metric(model.TrendStable, 10), ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			alerts := d.Alerts(nil, []model.KPIMetric{tc.m})
			if tc.wantSeverity == "" {
				if len(alerts) != 0 {
					t.Fatalf("expected no alert, got %+v", alerts)
				}
				return
			}
			if len(alerts) != 1 {
				t.Fatalf("alerts = %+v", alerts)
			}
			a := alerts[0]
			if a.Severity != tc.wantSeverity || a.ID != "alert-decline-fbr-tax" || a.KPIID != "fbr-tax" {
				t.Fatalf("alert = %+v", a)
			}
			if a.Source != SourceKPI || !a.CreatedAt.Equal(day(9)) {
				t.Fatalf("alert = %+v", a)
			}
		})
	}
}

func TestNegativeSurge(t *testing.T) {
	d := New(config.DefaultTuning())
	m := model.KPIMetric{ID: "circular-debt", Name: "Circular Debt"}

	build := func(recentNegative int) []model.FeaturedArticle {
		var out []model.FeaturedArticle
		// Four old positive articles, then a seven-article window.
		for i := 0; i < 4; i++ {
			a := countable(day(i+1), model.SentimentPositive)
			a.KPIIDs = []string{"circular-debt"}
			out = append(out, a)
		}
		for i := 0; i < 7; i++ {
			label := model.SentimentNeutral
			if i < recentNegative {
				label = model.SentimentNegative
			}
			a := countable(day(10+i), label)
			a.KPIIDs = []string{"circular-debt"}
			out = append(out, a)
		}
		return out
	}

	// 6/7 negative (~86%) fires a warning.
	alerts := d.Alerts(build(6), []model.KPIMetric{m})
	if len(alerts) != 1 {
		t.Fatalf("alerts = %+v", alerts)
	}
	a := alerts[0]
	if a.ID != "alert-negative-circular-debt" || a.Severity != model.SeverityWarning || a.Source != SourceSentiment {
		t.Fatalf("alert = %+v", a)
	}
	if !strings.Contains(a.Description, "86% of recent articles about Circular Debt are negative") {
		t.Fatalf("description = %s", a.Description)
	}
	if !a.CreatedAt.Equal(day(16)) {
		t.Fatalf("createdAt anchored at %v", a.CreatedAt)
	}

	// 4/7 (~57%) stays quiet.
	if alerts := d.Alerts(build(4), []model.KPIMetric{m}); len(alerts) != 0 {
		t.Fatalf("expected no surge alert, got %+v", alerts)
	}
}

func TestNegativeSurgeRequiresCoverage(t *testing.T) {
	d := New(config.DefaultTuning())
	m := model.KPIMetric{ID: "fbr-tax", Name: "FBR Tax Collection"}
	// Exactly ten covered articles, all negative: population gate is
	// strictly more than ten, so nothing fires.
	var articles []model.FeaturedArticle
	for i := 0; i < 10; i++ {
		a := countable(day(i+1), model.SentimentNegative)
		a.KPIIDs = []string{"fbr-tax"}
		articles = append(articles, a)
	}
	if alerts := d.Alerts(articles, []model.KPIMetric{m}); len(alerts) != 0 {
		t.Fatalf("expected no alert at exactly 10 articles, got %+v", alerts)
	}
}
