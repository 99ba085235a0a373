// Package aggregate computes per-KPI metrics from the annotated article set:
// a weighted current score, a previous-period score, a trend label, and a
// per-day historical series.
package aggregate

import (
	"runtime"
	"sort"
	"sync"

	"github.com/insight-hub/newsintel-cli/internal/config"
	"github.com/insight-hub/newsintel-cli/internal/model"
	"github.com/insight-hub/newsintel-cli/internal/registry"
	"github.com/insight-hub/newsintel-cli/internal/stats"
)

// Aggregator derives KPIMetrics for every catalog entry with at least one
// relevant article. The catalog and thresholds are fixed at construction.
type Aggregator struct {
	reg     *registry.Registry
	tun     config.Tuning
	workers int
}

// New constructs an aggregator. workers <= 0 uses GOMAXPROCS.
func New(reg *registry.Registry, tun config.Tuning, workers int) *Aggregator {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Aggregator{reg: reg, tun: tun, workers: workers}
}

// Metrics computes a KPIMetric per KPI with relevant coverage. KPIs without
// a single relevant article are omitted, not emitted with a zero score.
// Each KPI is independent, so the work fans out across a bounded worker pool
// and merges back in registry order; execution order never affects output.
func (g *Aggregator) Metrics(articles []model.FeaturedArticle) []model.KPIMetric {
	defs := g.reg.Definitions()
	results := make([]*model.KPIMetric, len(defs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < g.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = g.metricFor(defs[i], articles)
			}
		}()
	}
	for i := range defs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	out := make([]model.KPIMetric, 0, len(defs))
	for _, m := range results {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out
}

// metricFor aggregates one KPI. Returns nil when no article clears the
// relevance threshold.
func (g *Aggregator) metricFor(def registry.Definition, articles []model.FeaturedArticle) *model.KPIMetric {
	var relevant []model.FeaturedArticle
	for _, a := range articles {
		if a.Scoreable() && a.RelevantTo(def.ID) {
			relevant = append(relevant, a)
		}
	}
	if len(relevant) == 0 {
		return nil
	}

	weighted := make([]float64, len(relevant))
	for i, a := range relevant {
		weighted[i] = weightedScore(a.SentimentScore, a.KPIRelevance[def.ID])
	}
	// The authoritative current score is the full-set mean; the time split
	// below only feeds the previous-period score.
	current := stats.SafeMean(weighted)

	sorted := make([]model.FeaturedArticle, len(relevant))
	copy(sorted, relevant)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.Before(sorted[j].PublishedAt)
	})

	previous := current
	trend := model.TrendStable
	if len(sorted) > g.tun.TrendMinArticles {
		mid := len(sorted) / 2
		older := make([]float64, mid)
		for i, a := range sorted[:mid] {
			older[i] = weightedScore(a.SentimentScore, a.KPIRelevance[def.ID])
		}
		previous = stats.SafeMean(older)
		switch {
		case current > previous+g.tun.TrendDeadband:
			trend = model.TrendUp
		case current < previous-g.tun.TrendDeadband:
			trend = model.TrendDown
		}
	}

	lastUpdated := relevant[0].PublishedAt
	for _, a := range relevant[1:] {
		if a.PublishedAt.After(lastUpdated) {
			lastUpdated = a.PublishedAt
		}
	}

	return &model.KPIMetric{
		ID:             def.ID,
		Name:           def.Name,
		Description:    def.Description,
		Category:       def.Category,
		Keywords:       def.Keywords,
		CurrentScore:   stats.Round2(current),
		PreviousScore:  stats.Round2(previous),
		Trend:          trend,
		ArticleCount:   len(relevant),
		LastUpdated:    lastUpdated,
		HistoricalData: historical(def.ID, relevant),
	}
}

// historical buckets relevant articles by calendar date and emits the
// per-day mean weighted score, ascending by date.
func historical(kpiID string, relevant []model.FeaturedArticle) []model.HistoricalPoint {
	byDate := make(map[string][]float64)
	for _, a := range relevant {
		day := a.Day()
		byDate[day] = append(byDate[day], weightedScore(a.SentimentScore, a.KPIRelevance[kpiID]))
	}
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]model.HistoricalPoint, len(dates))
	for i, d := range dates {
		scores := byDate[d]
		out[i] = model.HistoricalPoint{
			Date:         d,
			Score:        stats.Round2(stats.SafeMean(scores)),
			ArticleCount: len(scores),
		}
	}
	return out
}

// weightedScore maps sentiment from [-1,1] to [0,1] and scales it by the
// normalized relevance, yielding a value in [0,100].
func weightedScore(sentiment, relevance float64) float64 {
	return ((sentiment + 1) / 2) * (relevance / 100) * 100
}
