// Package anomaly flags unusual volume and sentiment patterns as alerts.
// Every rule is a pure function of the (articles, metrics) snapshot, and
// alert ids derive from the triggering date or KPI id, so identical input
// reproduces identical alerts.
package anomaly

import (
	"fmt"
	"sort"
	"time"

	"github.com/insight-hub/newsintel-cli/internal/config"
	"github.com/insight-hub/newsintel-cli/internal/model"
	"github.com/insight-hub/newsintel-cli/internal/stats"
)

// Source tags identifying which detector produced an alert.
const (
	SourceVolume    = "Anomaly Detection"
	SourceKPI       = "KPI Monitoring"
	SourceSentiment = "Sentiment Analysis"
)

// Detector runs the three alert rules over a run snapshot.
type Detector struct {
	tun config.Tuning
}

// New constructs a detector with the given thresholds.
func New(tun config.Tuning) *Detector {
	return &Detector{tun: tun}
}

// Alerts evaluates all rules: volume spikes over recent dates, declining
// KPI scores, and negative-sentiment surges in recent KPI coverage.
func (d *Detector) Alerts(articles []model.FeaturedArticle, metrics []model.KPIMetric) []model.Alert {
	var alerts []model.Alert
	alerts = append(alerts, d.volumeSpikes(articles)...)
	for _, m := range metrics {
		if a := d.declineAlert(m); a != nil {
			alerts = append(alerts, *a)
		}
		if a := d.negativeSurge(m, articles); a != nil {
			alerts = append(alerts, *a)
		}
	}
	return alerts
}

// volumeSpikes flags recent dates whose article count exceeds
// mean + sigma*stddev over all dates. Requires enough distinct dates to
// have a baseline at all.
func (d *Detector) volumeSpikes(articles []model.FeaturedArticle) []model.Alert {
	byDate := make(map[string]int)
	dayStart := make(map[string]time.Time)
	for _, a := range articles {
		if !a.Countable() {
			continue
		}
		day := a.Day()
		byDate[day]++
		if _, ok := dayStart[day]; !ok {
			y, m, dd := a.PublishedAt.UTC().Date()
			dayStart[day] = time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
		}
	}
	if len(byDate) < d.tun.VolumeMinDates {
		return nil
	}
	dates := make([]string, 0, len(byDate))
	for day := range byDate {
		dates = append(dates, day)
	}
	sort.Strings(dates)

	counts := make([]float64, len(dates))
	for i, day := range dates {
		counts[i] = float64(byDate[day])
	}
	mean := stats.SafeMean(counts)
	std := stats.PopStdDev(counts)
	threshold := mean + d.tun.VolumeSigma*std

	recent := dates
	if len(recent) > d.tun.VolumeRecentDates {
		recent = recent[len(recent)-d.tun.VolumeRecentDates:]
	}

	var alerts []model.Alert
	for _, day := range recent {
		count := byDate[day]
		if float64(count) <= threshold {
			continue
		}
		alerts = append(alerts, model.Alert{
			ID:          "alert-spike-" + day,
			Title:       "Unusual Article Volume Spike",
			Description: fmt.Sprintf("%d articles published on %s (%.0f above average)", count, day, float64(count)-mean),
			Severity:    model.SeverityWarning,
			Status:      model.StatusNew,
			CreatedAt:   dayStart[day],
			Source:      SourceVolume,
		})
	}
	return alerts
}

// declineAlert fires for a KPI trending down below the decline threshold,
// escalating to critical under the critical threshold.
func (d *Detector) declineAlert(m model.KPIMetric) *model.Alert {
	if m.Trend != model.TrendDown || m.CurrentScore >= d.tun.DeclineScore {
		return nil
	}
	severity := model.SeverityWarning
	if m.CurrentScore < d.tun.CriticalScore {
		severity = model.SeverityCritical
	}
	return &model.Alert{
		ID:          "alert-decline-" + m.ID,
		Title:       fmt.Sprintf("%s Score Declining", m.Name),
		Description: fmt.Sprintf("%s score dropped to %.1f (from %.1f)", m.Name, m.CurrentScore, m.PreviousScore),
		Severity:    severity,
		Status:      model.StatusNew,
		KPIID:       m.ID,
		CreatedAt:   m.LastUpdated,
		Source:      SourceKPI,
	}
}

// negativeSurge fires when the fraction of negative articles inside the
// most recent coverage window for a well-covered KPI exceeds the surge
// threshold.
func (d *Detector) negativeSurge(m model.KPIMetric, articles []model.FeaturedArticle) *model.Alert {
	var covered []model.FeaturedArticle
	for _, a := range articles {
		if contains(a.KPIIDs, m.ID) {
			covered = append(covered, a)
		}
	}
	if len(covered) <= d.tun.SurgeMinArticles {
		return nil
	}
	sort.SliceStable(covered, func(i, j int) bool {
		return covered[i].PublishedAt.Before(covered[j].PublishedAt)
	})
	window := covered
	if len(window) > d.tun.SurgeWindow {
		window = window[len(window)-d.tun.SurgeWindow:]
	}
	negative := 0
	for _, a := range window {
		if a.Sentiment == model.SentimentNegative {
			negative++
		}
	}
	fraction := float64(negative) / float64(len(window))
	if fraction <= d.tun.SurgeFraction {
		return nil
	}
	return &model.Alert{
		ID:          "alert-negative-" + m.ID,
		Title:       fmt.Sprintf("High Negative Coverage for %s", m.Name),
		Description: fmt.Sprintf("%.0f%% of recent articles about %s are negative", fraction*100, m.Name),
		Severity:    model.SeverityWarning,
		Status:      model.StatusNew,
		KPIID:       m.ID,
		CreatedAt:   window[len(window)-1].PublishedAt,
		Source:      SourceSentiment,
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
