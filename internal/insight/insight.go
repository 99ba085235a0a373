// Package insight synthesizes narrative records from KPI trend data and
// topic-cluster statistics. The four rule families are independent of the
// alert rules: conceptual overlap aside, insights never consult alerts.
package insight

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/insight-hub/newsintel-cli/internal/config"
	"github.com/insight-hub/newsintel-cli/internal/model"
	"github.com/insight-hub/newsintel-cli/internal/registry"
	"github.com/insight-hub/newsintel-cli/internal/stats"
)

// PredictiveConfidence is the fixed confidence of the trajectory rule.
const PredictiveConfidence = 88

// Generator runs the insight rules over a run snapshot.
type Generator struct {
	reg *registry.Registry
	tun config.Tuning
}

// New constructs a generator bound to a catalog and thresholds.
func New(reg *registry.Registry, tun config.Tuning) *Generator {
	return &Generator{reg: reg, tun: tun}
}

// Insights evaluates all rule families: per-KPI momentum and negative
// coverage, emerging topic-cluster themes, and multi-period predictive
// decline. Emission order is deterministic: metrics order for the per-KPI
// rules, ascending cluster id for themes, metrics order again for
// predictions.
func (g *Generator) Insights(articles []model.FeaturedArticle, metrics []model.KPIMetric) []model.Insight {
	var out []model.Insight
	for _, m := range metrics {
		if ins := g.coverageInsight(m, articles); ins != nil {
			out = append(out, *ins)
		}
	}
	out = append(out, g.clusterInsights(articles)...)
	for _, m := range metrics {
		if ins := g.predictiveDecline(m); ins != nil {
			out = append(out, *ins)
		}
	}
	return out
}

// coverageInsight emits a momentum or negative-coverage insight for KPIs
// with enough associated articles and an aligned trend/sentiment signal.
func (g *Generator) coverageInsight(m model.KPIMetric, articles []model.FeaturedArticle) *model.Insight {
	var covered []model.FeaturedArticle
	for _, a := range articles {
		if contains(a.KPIIDs, m.ID) {
			covered = append(covered, a)
		}
	}
	if len(covered) <= g.tun.MomentumMinArticles {
		return nil
	}
	scores := make([]float64, len(covered))
	for i, a := range covered {
		scores[i] = a.SentimentScore
	}
	avg := stats.SafeMean(scores)
	confidence := stats.Round2(math.Min(95, 70+math.Abs(m.CurrentScore-m.PreviousScore)))

	switch {
	case m.Trend == model.TrendUp && avg > g.tun.MomentumSentiment:
		positive := countSentiment(covered, model.SentimentPositive)
		return &model.Insight{
			ID:    "insight-positive-" + m.ID,
			Title: fmt.Sprintf("%s Showing Positive Momentum", m.Name),
			Summary: fmt.Sprintf(
				"Analysis indicates %s coverage is %.1f points higher than previous period, with %d positive articles.",
				m.Name, m.CurrentScore-m.PreviousScore, positive),
			Type:          model.InsightTrend,
			Confidence:    confidence,
			RelatedKPIIDs: []string{m.ID},
			CreatedAt:     m.LastUpdated,
		}
	case m.Trend == model.TrendDown && avg < g.tun.NegativeSentiment:
		negative := countSentiment(covered, model.SentimentNegative)
		return &model.Insight{
			ID:    "insight-negative-" + m.ID,
			Title: fmt.Sprintf("%s Facing Negative Coverage", m.Name),
			Summary: fmt.Sprintf(
				"%s coverage is trending negative with %d negative articles. Score dropped %.1f points.",
				m.Name, negative, m.PreviousScore-m.CurrentScore),
			Type:          model.InsightRisk,
			Confidence:    confidence,
			RelatedKPIIDs: []string{m.ID},
			CreatedAt:     m.LastUpdated,
		}
	}
	return nil
}

// clusterInsights emits a recommendation per topic cluster with enough
// members, naming its most frequent extracted terms.
func (g *Generator) clusterInsights(articles []model.FeaturedArticle) []model.Insight {
	byCluster := make(map[int][]model.FeaturedArticle)
	for _, a := range articles {
		byCluster[a.TopicCluster] = append(byCluster[a.TopicCluster], a)
	}
	ids := make([]int, 0, len(byCluster))
	for id := range byCluster {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var out []model.Insight
	for _, clusterID := range ids {
		members := byCluster[clusterID]
		if len(members) <= g.tun.ClusterMinArticles {
			continue
		}
		var terms []string
		for _, a := range members {
			terms = append(terms, a.ExtractedTerms...)
		}
		top := topTerms(terms, g.tun.ClusterTopTerms)
		termStr := "various topics"
		if len(top) > 0 {
			termStr = strings.Join(top, ", ")
		}

		scores := make([]float64, len(members))
		latest := members[0].PublishedAt
		for i, a := range members {
			scores[i] = a.SentimentScore
			if a.PublishedAt.After(latest) {
				latest = a.PublishedAt
			}
		}

		out = append(out, model.Insight{
			ID:    fmt.Sprintf("insight-cluster-%d", clusterID),
			Title: fmt.Sprintf("Emerging Theme Detected: %s", termStr),
			Summary: fmt.Sprintf(
				"Topic cluster with %d articles identified. Common themes: %s. Avg sentiment: %.2f",
				len(members), termStr, stats.SafeMean(scores)),
			Type:          model.InsightRecommendation,
			Confidence:    stats.Round2(math.Min(90, float64(60+len(members)))),
			RelatedKPIIDs: g.kpiUnion(members),
			CreatedAt:     latest,
		})
	}
	return out
}

// predictiveDecline fires when the trailing points of a KPI's historical
// series are strictly decreasing.
func (g *Generator) predictiveDecline(m model.KPIMetric) *model.Insight {
	n := g.tun.DeclinePoints
	if len(m.HistoricalData) < n {
		return nil
	}
	tail := m.HistoricalData[len(m.HistoricalData)-n:]
	for i := 1; i < len(tail); i++ {
		if tail[i].Score >= tail[i-1].Score {
			return nil
		}
	}
	return &model.Insight{
		ID:    "insight-predict-" + m.ID,
		Title: fmt.Sprintf("Predictive Alert: %s Declining", m.Name),
		Summary: fmt.Sprintf(
			"%s has shown consistent decline over %d consecutive periods. Immediate attention may be required to reverse the trend.",
			m.Name, n),
		Type:          model.InsightRisk,
		Confidence:    PredictiveConfidence,
		RelatedKPIIDs: []string{m.ID},
		CreatedAt:     m.LastUpdated,
	}
}

// kpiUnion collects the distinct kpiIds across members, ordered by the
// catalog so reruns emit identical documents.
func (g *Generator) kpiUnion(members []model.FeaturedArticle) []string {
	seen := make(map[string]bool)
	for _, a := range members {
		for _, id := range a.KPIIDs {
			seen[id] = true
		}
	}
	var out []string
	for _, def := range g.reg.Definitions() {
		if seen[def.ID] {
			out = append(out, def.ID)
		}
	}
	return out
}

// topTerms ranks terms by frequency. order holds first encounters, so the
// stable sort breaks frequency ties by first appearance.
func topTerms(terms []string, n int) []string {
	count := make(map[string]int)
	var order []string
	for _, term := range terms {
		if count[term] == 0 {
			order = append(order, term)
		}
		count[term]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return count[order[i]] > count[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	return order
}

func countSentiment(articles []model.FeaturedArticle, label string) int {
	n := 0
	for _, a := range articles {
		if a.Sentiment == label {
			n++
		}
	}
	return n
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
