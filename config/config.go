package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/interview-coach/coach-pipeline/scoring"
)

type Service struct {
	URL     string `mapstructure:"url"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

type Services struct {
	ASR       Service `mapstructure:"asr"`
	Embedding Service `mapstructure:"embedding"`
}

type Embedding struct {
	Backend    string `mapstructure:"backend"` // http | hash
	Dimensions int    `mapstructure:"dimensions"`
	InitRetry  int    `mapstructure:"init_retry"` // seconds between failed backend inits
}

type Scoring struct {
	MatchThreshold   float64            `mapstructure:"match_threshold"`
	SubstringFloor   float64            `mapstructure:"substring_floor"`
	TopKFraction     float64            `mapstructure:"top_k_fraction"`
	CoverageTipBelow float64            `mapstructure:"coverage_tip_below"`
	FillerTipAbove   int                `mapstructure:"filler_tip_above"`
	SlowWPM          float64            `mapstructure:"slow_wpm"`
	FastWPM          float64            `mapstructure:"fast_wpm"`
	TargetWPM        float64            `mapstructure:"target_wpm"`
	Fillers          []string           `mapstructure:"fillers"`
	Importance       map[string]float64 `mapstructure:"importance"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
	TTL      int    `mapstructure:"ttl"` // seconds, 0 keeps forever
}

type Store struct {
	Backend string `mapstructure:"backend"` // file | redis
	Redis   Redis  `mapstructure:"redis"`
}

type Root struct {
	Pipeline struct {
		Name    string `mapstructure:"name"`
		Version string `mapstructure:"version"`
		LogLvl  string `mapstructure:"log_level"`
	} `mapstructure:"pipeline"`
	Services  Services  `mapstructure:"services"`
	Embedding Embedding `mapstructure:"embedding"`
	Scoring   Scoring   `mapstructure:"scoring"`
	Store     Store     `mapstructure:"store"`
	Paths     struct {
		Rubrics string `mapstructure:"rubrics"`
		Outputs string `mapstructure:"outputs"`
	} `mapstructure:"paths"`
}

const envPrefix = "COACH"

// keyDelim replaces viper's "." so importance keys such as "Node.js" stay
// single map keys.
const keyDelim = "::"

func key(path string) string { return strings.ReplaceAll(path, ".", keyDelim) }

func setDefaults(v *viper.Viper) {
	v.SetDefault(key("pipeline.name"), "coach-pipeline")
	v.SetDefault(key("pipeline.version"), "dev")
	v.SetDefault(key("pipeline.log_level"), "info")

	v.SetDefault(key("services.asr.url"), "http://localhost:8001")
	v.SetDefault(key("services.asr.timeout"), 120)
	v.SetDefault(key("services.embedding.url"), "http://localhost:8002")
	v.SetDefault(key("services.embedding.timeout"), 30)

	v.SetDefault(key("embedding.backend"), "http")
	v.SetDefault(key("embedding.dimensions"), scoring.DefaultHashDimensions)
	v.SetDefault(key("embedding.init_retry"), 30)

	v.SetDefault(key("scoring.match_threshold"), scoring.DefaultMatchThreshold)
	v.SetDefault(key("scoring.substring_floor"), scoring.DefaultSubstringFloor)
	v.SetDefault(key("scoring.top_k_fraction"), scoring.DefaultTopKFraction)
	v.SetDefault(key("scoring.coverage_tip_below"), scoring.DefaultCoverageTipBelow)
	v.SetDefault(key("scoring.filler_tip_above"), scoring.DefaultFillerTipAbove)
	v.SetDefault(key("scoring.slow_wpm"), scoring.DefaultSlowWPM)
	v.SetDefault(key("scoring.fast_wpm"), scoring.DefaultFastWPM)
	v.SetDefault(key("scoring.target_wpm"), scoring.DefaultTargetWPM)
	v.SetDefault(key("scoring.fillers"), scoring.DefaultFillers)

	v.SetDefault(key("store.backend"), "file")
	v.SetDefault(key("store.redis.addr"), "localhost:6379")
	v.SetDefault(key("store.redis.password"), "")
	v.SetDefault(key("store.redis.db"), 0)
	v.SetDefault(key("store.redis.prefix"), "coach")
	v.SetDefault(key("store.redis.ttl"), 0)

	v.SetDefault(key("paths.rubrics"), "")
	v.SetDefault(key("paths.outputs"), "outputs")
}

// Load reads the YAML config at path. With an empty path it tries
// config/<CONFIG_ENV>/config.yaml and then src/shared/config.yaml; when
// neither exists the defaults are used. COACH_* environment variables
// override file values (COACH_SERVICES_EMBEDDING_URL).
func Load(path string) (*Root, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelim))
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(keyDelim, "_"))
	v.AutomaticEnv()

	if path == "" {
		path = guessPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func guessPath() string {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	guess := []string{
		filepath.Join("config", env, "config.yaml"),
		filepath.Join("src", "shared", "config.yaml"),
	}
	for _, p := range guess {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (c *Root) Validate() error {
	var errs []error
	switch c.Embedding.Backend {
	case "http":
		if c.Services.Embedding.URL == "" {
			errs = append(errs, errors.New("services.embedding.url is required for the http embedding backend"))
		}
	case "hash":
	default:
		errs = append(errs, fmt.Errorf("embedding.backend %q: want http or hash", c.Embedding.Backend))
	}
	switch c.Store.Backend {
	case "file", "redis":
	default:
		errs = append(errs, fmt.Errorf("store.backend %q: want file or redis", c.Store.Backend))
	}
	if t := c.Scoring.MatchThreshold; t < -1 || t > 1 {
		errs = append(errs, fmt.Errorf("scoring.match_threshold %v outside [-1,1]", t))
	}
	if f := c.Scoring.SubstringFloor; f < -1 || f > 1 {
		errs = append(errs, fmt.Errorf("scoring.substring_floor %v outside [-1,1]", f))
	}
	if b := c.Scoring.CoverageTipBelow; b < 0 || b > 1 {
		errs = append(errs, fmt.Errorf("scoring.coverage_tip_below %v outside [0,1]", b))
	}
	if c.Scoring.FillerTipAbove < 0 {
		errs = append(errs, fmt.Errorf("scoring.filler_tip_above %d is negative", c.Scoring.FillerTipAbove))
	}
	if c.Embedding.InitRetry < 0 {
		errs = append(errs, fmt.Errorf("embedding.init_retry %d is negative", c.Embedding.InitRetry))
	}
	if f := c.Scoring.TopKFraction; f <= 0 || f > 1 {
		errs = append(errs, fmt.Errorf("scoring.top_k_fraction %v outside (0,1]", f))
	}
	if c.Scoring.SlowWPM > c.Scoring.FastWPM {
		errs = append(errs, fmt.Errorf("scoring.slow_wpm %v above fast_wpm %v", c.Scoring.SlowWPM, c.Scoring.FastWPM))
	}
	return errors.Join(errs...)
}

// ScoringPolicy applies the configured overrides to the default policy. The
// aggregate weights are not configurable.
func (c *Root) ScoringPolicy() scoring.Policy {
	p := scoring.DefaultPolicy()
	s := c.Scoring
	p.MatchThreshold = s.MatchThreshold
	p.SubstringFloor = s.SubstringFloor
	p.TopKFraction = s.TopKFraction
	p.CoverageTipBelow = s.CoverageTipBelow
	p.FillerTipAbove = s.FillerTipAbove
	p.SlowWPM = s.SlowWPM
	p.FastWPM = s.FastWPM
	if s.TargetWPM > 0 {
		p.TargetWPM = s.TargetWPM
	}
	return p
}

func DurSeconds(n int) time.Duration { return time.Duration(n) * time.Second }
