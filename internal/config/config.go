package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// OutputDir receives the four output documents. Empty means ./data.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	// RegistryFile optionally replaces the built-in KPI catalog.
	RegistryFile string `mapstructure:"registry_file" yaml:"registry_file"`
	// Workers bounds the per-KPI aggregation fan-out. 0 means GOMAXPROCS.
	Workers int `mapstructure:"workers" yaml:"workers"`

	Tuning Tuning `mapstructure:"tuning" yaml:"tuning"`
}

// Tuning holds the detection thresholds. Defaults match the reference
// behavior; overriding them is for experimentation, not routine use.
type Tuning struct {
	// Trend classification deadband in score points.
	TrendDeadband float64 `mapstructure:"trend_deadband" yaml:"trend_deadband"`
	// Minimum relevant-article count before a trend other than stable is
	// possible (strictly more than this many).
	TrendMinArticles int `mapstructure:"trend_min_articles" yaml:"trend_min_articles"`

	// Volume spike detection.
	VolumeMinDates    int     `mapstructure:"volume_min_dates" yaml:"volume_min_dates"`
	VolumeSigma       float64 `mapstructure:"volume_sigma" yaml:"volume_sigma"`
	VolumeRecentDates int     `mapstructure:"volume_recent_dates" yaml:"volume_recent_dates"`

	// KPI decline alerting.
	DeclineScore  float64 `mapstructure:"decline_score" yaml:"decline_score"`
	CriticalScore float64 `mapstructure:"critical_score" yaml:"critical_score"`

	// Negative sentiment surge.
	SurgeMinArticles int     `mapstructure:"surge_min_articles" yaml:"surge_min_articles"`
	SurgeWindow      int     `mapstructure:"surge_window" yaml:"surge_window"`
	SurgeFraction    float64 `mapstructure:"surge_fraction" yaml:"surge_fraction"`

	// Insight rules.
	MomentumMinArticles int     `mapstructure:"momentum_min_articles" yaml:"momentum_min_articles"`
	MomentumSentiment   float64 `mapstructure:"momentum_sentiment" yaml:"momentum_sentiment"`
	NegativeSentiment   float64 `mapstructure:"negative_sentiment" yaml:"negative_sentiment"`
	ClusterMinArticles  int     `mapstructure:"cluster_min_articles" yaml:"cluster_min_articles"`
	ClusterTopTerms     int     `mapstructure:"cluster_top_terms" yaml:"cluster_top_terms"`
	DeclinePoints       int     `mapstructure:"decline_points" yaml:"decline_points"`
}

// DefaultTuning returns the reference thresholds.
func DefaultTuning() Tuning {
	return Tuning{
		TrendDeadband:       5,
		TrendMinArticles:    5,
		VolumeMinDates:      4,
		VolumeSigma:         2,
		VolumeRecentDates:   3,
		DeclineScore:        40,
		CriticalScore:       30,
		SurgeMinArticles:    10,
		SurgeWindow:         7,
		SurgeFraction:       0.7,
		MomentumMinArticles: 10,
		MomentumSentiment:   0.3,
		NegativeSentiment:   -0.2,
		ClusterMinArticles:  15,
		ClusterTopTerms:     3,
		DeclinePoints:       3,
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.newsintel/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".newsintel")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("NEWSINTEL")
	v.AutomaticEnv()

	v.SetDefault("output_dir", "data")
	v.SetDefault("registry_file", "")
	v.SetDefault("workers", 0)

	def := DefaultTuning()
	v.SetDefault("tuning.trend_deadband", def.TrendDeadband)
	v.SetDefault("tuning.trend_min_articles", def.TrendMinArticles)
	v.SetDefault("tuning.volume_min_dates", def.VolumeMinDates)
	v.SetDefault("tuning.volume_sigma", def.VolumeSigma)
	v.SetDefault("tuning.volume_recent_dates", def.VolumeRecentDates)
	v.SetDefault("tuning.decline_score", def.DeclineScore)
	v.SetDefault("tuning.critical_score", def.CriticalScore)
	v.SetDefault("tuning.surge_min_articles", def.SurgeMinArticles)
	v.SetDefault("tuning.surge_window", def.SurgeWindow)
	v.SetDefault("tuning.surge_fraction", def.SurgeFraction)
	v.SetDefault("tuning.momentum_min_articles", def.MomentumMinArticles)
	v.SetDefault("tuning.momentum_sentiment", def.MomentumSentiment)
	v.SetDefault("tuning.negative_sentiment", def.NegativeSentiment)
	v.SetDefault("tuning.cluster_min_articles", def.ClusterMinArticles)
	v.SetDefault("tuning.cluster_top_terms", def.ClusterTopTerms)
	v.SetDefault("tuning.decline_points", def.DeclinePoints)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".newsintel")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
