package model

import "time"

// Trend classification of a KPI's score movement between two periods.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// Alert severities and the initial status.
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
	StatusNew        = "new"
)

// Insight types.
const (
	InsightTrend          = "trend"
	InsightRisk           = "risk"
	InsightRecommendation = "recommendation"
)

// HistoricalPoint is one day of a KPI's score series.
type HistoricalPoint struct {
	Date         string  `json:"date"`
	Score        float64 `json:"score"`
	ArticleCount int     `json:"articleCount"`
}

// KPIMetric is the per-KPI aggregate, augmented with the static definition
// fields for the output document. One exists iff at least one article cleared
// the relevance threshold for the KPI.
type KPIMetric struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	Keywords       []string          `json:"keywords"`
	CurrentScore   float64           `json:"currentScore"`
	PreviousScore  float64           `json:"previousScore"`
	Trend          string            `json:"trend"`
	ArticleCount   int               `json:"articleCount"`
	LastUpdated    time.Time         `json:"lastUpdated"`
	HistoricalData []HistoricalPoint `json:"historicalData"`
}

// Alert flags an unusual volume or sentiment pattern. IDs are derived from
// the triggering date or KPI id, so identical input reproduces identical
// alerts.
type Alert struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	Status      string    `json:"status"`
	KPIID       string    `json:"kpiId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Source      string    `json:"source"`
}

// Insight is a narrative statement about notable KPI or topic-cluster
// behavior. IDs are derived from the rule family and subject.
type Insight struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	Type          string    `json:"type"`
	Confidence    float64   `json:"confidence"`
	RelatedKPIIDs []string  `json:"relatedKpiIds"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SentimentTrend counts articles by sentiment label for one calendar date.
type SentimentTrend struct {
	Date     string `json:"date"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
	Neutral  int    `json:"neutral"`
}
