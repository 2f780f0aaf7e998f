// Package config loads hcrbench's harness configuration.
//
// Precedence, lowest to highest:
//  1. Hardcoded defaults (DefaultConfig)
//  2. YAML config file (--config)
//  3. CLI flags (applied last, via ApplyFlags)
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete hcrbench harness configuration.
type Config struct {
	Paths    PathsConfig    `yaml:"paths"`
	Tree     TreeConfig     `yaml:"tree"`
	Cascade  CascadeConfig  `yaml:"cascade"`
	Beam     BeamConfig     `yaml:"beam"`
	Fusion   FusionConfig   `yaml:"fusion"`
	Packer   PackerConfig   `yaml:"packer"`
	Cache    CacheConfig    `yaml:"cache"`
	LogLevel string         `yaml:"log_level"`
}

// PathsConfig points at the harness's on-disk artifacts. Corpus and Queries
// are files; Results is the directory result documents are written into.
type PathsConfig struct {
	Corpus  string `yaml:"corpus"`
	Queries string `yaml:"queries"`
	Results string `yaml:"results"`
}

// TreeConfig configures the hierarchical clustering tree builder.
type TreeConfig struct {
	// MaxDepth bounds the recursion depth of hierarchical_kmeans.
	MaxDepth int `yaml:"max_depth"`
	// Branching is k, the number of children considered per split.
	Branching int `yaml:"branching"`
	// MinClusterSize is read from the config file but not consulted by the
	// tree builder: clustering stops splitting a node once its chunk count
	// is at or below Branching.
	MinClusterSize int `yaml:"min_cluster_size"`
}

// CascadeConfig configures the two-stage dense-then-cross-encoder scorer.
type CascadeConfig struct {
	PreFilterK int     `yaml:"pre_filter_k"`
	FinalK     int     `yaml:"final_k"`
	// Alpha is the path-score EMA smoothing factor (current vs. parent).
	Alpha float64 `yaml:"alpha"`
}

// BeamConfig configures beam-search traversal.
type BeamConfig struct {
	BeamWidth       int     `yaml:"beam_width"`
	DiversityLambda float64 `yaml:"diversity_lambda"`
}

// FusionConfig configures BM25+dense reciprocal-rank fusion.
type FusionConfig struct {
	BM25Weight     float64 `yaml:"bm25_weight"`
	SemanticWeight float64 `yaml:"semantic_weight"`
	RRFConstant    int     `yaml:"rrf_k"`
}

// PackerConfig configures the greedy token packer shared by all baselines
// and the HCR traversal paths.
type PackerConfig struct {
	TokenBudget      int     `yaml:"token_budget"`
	RedundancyLambda float64 `yaml:"redundancy_lambda"`
}

// CacheConfig sizes the in-process LRU caches.
type CacheConfig struct {
	CrossEncoderSize int `yaml:"cross_encoder_size"`
	EmbeddingSize    int `yaml:"embedding_size"`
}

// DefaultConfig returns the harness defaults.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			Corpus:  "corpus.json",
			Queries: "queries.json",
			Results: "results",
		},
		Tree: TreeConfig{
			MaxDepth:       4,
			Branching:      5,
			MinClusterSize: 4,
		},
		Cascade: CascadeConfig{
			PreFilterK: 3,
			FinalK:     2,
			Alpha:      0.5,
		},
		Beam: BeamConfig{
			BeamWidth:       3,
			DiversityLambda: 0.3,
		},
		Fusion: FusionConfig{
			BM25Weight:     0.5,
			SemanticWeight: 0.5,
			RRFConstant:    60,
		},
		Packer: PackerConfig{
			TokenBudget:      400,
			RedundancyLambda: 0.3,
		},
		Cache: CacheConfig{
			CrossEncoderSize: 4096,
			EmbeddingSize:    4096,
		},
		LogLevel: "info",
	}
}

// Load reads a YAML config file and merges it over DefaultConfig.
// A missing path is not an error — the defaults stand alone.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// FlagOverrides carries the subset of config fields the CLI exposes as
// flags. Zero values mean "flag not set" and are not applied.
type FlagOverrides struct {
	Corpus    string
	Queries   string
	Results   string
	Depth     int
	Branching int
	Debug     bool
}

// ApplyFlags overlays non-zero CLI flag values onto the config. CLI flags
// are the highest-precedence tier.
func (c *Config) ApplyFlags(f FlagOverrides) {
	if f.Corpus != "" {
		c.Paths.Corpus = f.Corpus
	}
	if f.Queries != "" {
		c.Paths.Queries = f.Queries
	}
	if f.Results != "" {
		c.Paths.Results = f.Results
	}
	if f.Depth > 0 {
		c.Tree.MaxDepth = f.Depth
	}
	if f.Branching > 0 {
		c.Tree.Branching = f.Branching
	}
	if f.Debug {
		c.LogLevel = "debug"
	}
}

// Validate checks the invariants the scoring and traversal packages rely on.
func (c *Config) Validate() error {
	if c.Tree.Branching < 2 {
		return fmt.Errorf("tree.branching must be >= 2, got %d", c.Tree.Branching)
	}
	if c.Tree.MaxDepth < 1 {
		return fmt.Errorf("tree.max_depth must be >= 1, got %d", c.Tree.MaxDepth)
	}
	if c.Cascade.Alpha < 0 || c.Cascade.Alpha > 1 {
		return fmt.Errorf("cascade.alpha must be in [0,1], got %f", c.Cascade.Alpha)
	}
	if c.Beam.BeamWidth < 1 {
		return fmt.Errorf("beam.beam_width must be >= 1, got %d", c.Beam.BeamWidth)
	}
	sum := c.Fusion.BM25Weight + c.Fusion.SemanticWeight
	if sum != 0 && (sum < 0.99 || sum > 1.01) {
		return fmt.Errorf("fusion.bm25_weight + fusion.semantic_weight must sum to ~1.0, got %f", sum)
	}
	if c.Packer.TokenBudget <= 0 {
		return fmt.Errorf("packer.token_budget must be > 0, got %d", c.Packer.TokenBudget)
	}
	return nil
}
