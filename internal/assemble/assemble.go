// Package assemble packages the four output documents for the persistence
// collaborator. It is the only place allowed to substitute non-finite
// numerics: every numeric leaf is checked during a recursive walk and NaN or
// infinite values become explicit JSON nulls, never zeros. Upstream stages
// must not coerce such values themselves.
package assemble

import (
	"fmt"
	"math"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/insight-hub/newsintel-cli/internal/model"
	"github.com/insight-hub/newsintel-cli/internal/utils"
)

// Output document file names.
const (
	ArticlesFile = "articles.json"
	KPIsFile     = "kpis.json"
	TrendsFile   = "trends.json"
	InsightsFile = "insights.json"
)

// Outputs collects everything a run derives.
type Outputs struct {
	Articles []model.FeaturedArticle
	KPIs     []model.KPIMetric
	Trends   []model.SentimentTrend
	Insights []model.Insight
	Alerts   []model.Alert
}

// Write sanitizes all collections and writes the four documents atomically
// into dir. Map keys are emitted sorted, so byte-identical input yields
// byte-identical files.
func Write(dir string, o Outputs) error {
	if err := utils.EnsureDir(dir); err != nil {
		return fmt.Errorf("ensure output dir: %w", err)
	}
	docs := []struct {
		name    string
		payload any
	}{
		{ArticlesFile, map[string]any{"articles": Sanitize(o.Articles)}},
		{KPIsFile, map[string]any{"kpis": Sanitize(o.KPIs)}},
		{TrendsFile, map[string]any{"sentimentTrends": Sanitize(o.Trends)}},
		{InsightsFile, map[string]any{
			"insights": Sanitize(o.Insights),
			"alerts":   Sanitize(o.Alerts),
		}},
	}
	for _, doc := range docs {
		b, err := utils.PrettyJSON(doc.payload)
		if err != nil {
			return fmt.Errorf("encode %s: %w", doc.name, err)
		}
		if err := utils.SafeWriteFile(filepath.Join(dir, doc.name), append(b, '\n')); err != nil {
			return fmt.Errorf("write %s: %w", doc.name, err)
		}
	}
	return nil
}

// SentimentTrends counts articles per calendar date by sentiment label,
// ascending by date. Articles without a usable timestamp or label are
// skipped, matching the degrade-to-omission input policy.
func SentimentTrends(articles []model.FeaturedArticle) []model.SentimentTrend {
	byDate := make(map[string]*model.SentimentTrend)
	for i := range articles {
		a := &articles[i]
		if !a.Countable() {
			continue
		}
		day := a.Day()
		t := byDate[day]
		if t == nil {
			t = &model.SentimentTrend{Date: day}
			byDate[day] = t
		}
		switch a.Sentiment {
		case model.SentimentPositive:
			t.Positive++
		case model.SentimentNegative:
			t.Negative++
		default:
			t.Neutral++
		}
	}
	dates := make([]string, 0, len(byDate))
	for day := range byDate {
		dates = append(dates, day)
	}
	sort.Strings(dates)
	out := make([]model.SentimentTrend, len(dates))
	for i, day := range dates {
		out[i] = *byDate[day]
	}
	return out
}

// Sanitize converts a value into a JSON-ready tree of maps, slices, and
// scalars, replacing every non-finite float with nil. Struct fields follow
// their json tags; time values render as RFC 3339 UTC.
func Sanitize(v any) any {
	return sanitizeValue(reflect.ValueOf(v))
}

func sanitizeValue(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Invalid:
		return nil
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return sanitizeValue(v.Elem())
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return f
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()
	case reflect.Bool:
		return v.Bool()
	case reflect.String:
		return v.String()
	case reflect.Slice, reflect.Array:
		out := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			out = append(out, sanitizeValue(v.Index(i)))
		}
		return out
	case reflect.Map:
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = sanitizeValue(iter.Value())
		}
		return out
	case reflect.Struct:
		if t, ok := v.Interface().(time.Time); ok {
			return t.UTC().Format(time.RFC3339)
		}
		return sanitizeStruct(v)
	default:
		return nil
	}
}

func sanitizeStruct(v reflect.Value) map[string]any {
	t := v.Type()
	out := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		omitempty := false
		if tag, ok := field.Tag.Lookup("json"); ok {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" {
				continue
			}
			if parts[0] != "" {
				name = parts[0]
			}
			for _, p := range parts[1:] {
				if p == "omitempty" {
					omitempty = true
				}
			}
		}
		fv := v.Field(i)
		if omitempty && fv.IsZero() {
			continue
		}
		out[name] = sanitizeValue(fv)
	}
	return out
}
