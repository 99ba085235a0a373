// Package pipeline orchestrates one batch analytics pass: normalize the
// annotated articles, aggregate KPI metrics, detect anomalies, generate
// insights, and hand everything to the output assembler. A run holds no
// state between invocations; every product is recomputed from the full
// input set.
package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/insight-hub/newsintel-cli/internal/aggregate"
	"github.com/insight-hub/newsintel-cli/internal/anomaly"
	"github.com/insight-hub/newsintel-cli/internal/assemble"
	"github.com/insight-hub/newsintel-cli/internal/config"
	"github.com/insight-hub/newsintel-cli/internal/insight"
	"github.com/insight-hub/newsintel-cli/internal/model"
	"github.com/insight-hub/newsintel-cli/internal/registry"
)

// Pipeline wires the engine stages to a catalog and configuration.
type Pipeline struct {
	reg *registry.Registry
	cfg *config.Global
	log *logrus.Logger
}

// New constructs a pipeline. A nil logger discards all tracing.
func New(reg *registry.Registry, cfg *config.Global, log *logrus.Logger) *Pipeline {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.PanicLevel)
	}
	return &Pipeline{reg: reg, cfg: cfg, log: log}
}

// LoadArticles reads a feature-annotated article document. Both the wrapped
// form {"articles": [...]} and a bare array are accepted.
func LoadArticles(path string) ([]model.FeaturedArticle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read articles: %w", err)
	}
	var doc struct {
		Articles []model.FeaturedArticle `json:"articles"`
	}
	if err := json.Unmarshal(raw, &doc); err == nil && doc.Articles != nil {
		return doc.Articles, nil
	}
	var bare []model.FeaturedArticle
	if err := json.Unmarshal(raw, &bare); err != nil {
		return nil, fmt.Errorf("parse articles %s: %w", path, err)
	}
	return bare, nil
}

// Run executes the full pass and returns the assembled outputs. The input
// slice is normalized in place: derived fields (sentiment label, kpiIds) are
// rebuilt from their canonical sources before any stage reads them.
func (p *Pipeline) Run(articles []model.FeaturedArticle) assemble.Outputs {
	log := p.log.WithField("run", uuid.NewString())

	for i := range articles {
		articles[i].Normalize(p.reg)
	}
	log.WithField("articles", len(articles)).Debug("normalized input")

	metrics := aggregate.New(p.reg, p.cfg.Tuning, p.cfg.Workers).Metrics(articles)
	log.WithField("kpis", len(metrics)).Debug("aggregated kpi metrics")

	trends := assemble.SentimentTrends(articles)
	log.WithField("dates", len(trends)).Debug("computed sentiment trends")

	alerts := anomaly.New(p.cfg.Tuning).Alerts(articles, metrics)
	log.WithField("alerts", len(alerts)).Debug("detected anomalies")

	insights := insight.New(p.reg, p.cfg.Tuning).Insights(articles, metrics)
	log.WithField("insights", len(insights)).Debug("generated insights")

	return assemble.Outputs{
		Articles: articles,
		KPIs:     metrics,
		Trends:   trends,
		Insights: insights,
		Alerts:   alerts,
	}
}
