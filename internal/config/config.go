package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/kartoza/loudsync/internal/models"
)

const (
	// DefaultConfigDir is the default configuration directory
	DefaultConfigDir = ".config/loudsync"
	// ConfigFileName is the name of the configuration file
	ConfigFileName = "config.json"
	// DefaultCacheDir holds the per-stage intermediates during a run
	DefaultCacheDir = "./_cache"
)

// Config is the persisted pipeline configuration, one group per concern.
// Loading merges the document over the documented defaults, so a partial
// file keeps defaults for everything it does not mention.
type Config struct {
	Normalize NormalizeConfig `json:"normalize"`
	Fade      FadeConfig      `json:"fade"`
	Crossfade CrossfadeConfig `json:"crossfade"`
	Output    OutputConfig    `json:"output"`
	Paths     PathsConfig     `json:"paths"`
}

// NormalizeConfig controls the loudness correction stage.
type NormalizeConfig struct {
	Enabled bool `json:"enabled"`
	// Preset names the loudness preset the values came from, e.g. "-16"
	Preset string `json:"preset"`
	// LUFS is the target integrated loudness
	LUFS float64 `json:"lufs" validate:"gte=-70,lte=0"`
	// TruePeak is the maximum allowed true peak in dBTP
	TruePeak float64 `json:"tp" validate:"gte=-9,lte=0"`
	// TwoPass selects measure-then-correct over a single adaptive pass
	TwoPass bool `json:"two_pass"`
}

// FadeConfig controls the fade envelope stage.
type FadeConfig struct {
	Enabled bool `json:"enabled"`
	// InMs and OutMs are the fade durations in milliseconds
	InMs  int `json:"in_ms" validate:"gte=0"`
	OutMs int `json:"out_ms" validate:"gte=0"`
	// FromEndSec anchors the fade-out this many seconds before the end
	FromEndSec float64 `json:"from_end_sec" validate:"gte=0"`
}

// CrossfadeConfig controls the final overlap-merge stage.
type CrossfadeConfig struct {
	Enabled bool `json:"enabled"`
	// OverlapSec is the overlap between adjacent clips in seconds
	OverlapSec float64 `json:"overlap_sec" validate:"gt=0"`
	// Curve is the ffmpeg fade curve used on both sides of each node
	Curve string `json:"curve" validate:"required"`
}

// OutputConfig carries the encoding parameters.
type OutputConfig struct {
	Codec      string `json:"codec" validate:"required"`
	SampleRate int    `json:"sample_rate" validate:"gt=0"`
	Format     string `json:"format" validate:"oneof=wav mp3 m4a"`
}

// PathsConfig points at the external tools and the cache location. Empty
// tool paths mean PATH discovery.
type PathsConfig struct {
	FFmpeg   string `json:"ffmpeg"`
	FFprobe  string `json:"ffprobe"`
	CacheDir string `json:"cache_dir" validate:"required"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Normalize: NormalizeConfig{
			Enabled:  true,
			Preset:   "-16",
			LUFS:     -16.0,
			TruePeak: -1.5,
			TwoPass:  true,
		},
		Fade: FadeConfig{
			Enabled:    false,
			InMs:       300,
			OutMs:      1500,
			FromEndSec: 2.0,
		},
		Crossfade: CrossfadeConfig{
			Enabled:    false,
			OverlapSec: 2.0,
			Curve:      "tri",
		},
		Output: OutputConfig{
			Codec:      "aac",
			SampleRate: 48000,
			Format:     "wav",
		},
		Paths: PathsConfig{
			CacheDir: DefaultCacheDir,
		},
	}
}

// GetConfigDir returns the configuration directory path.
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigDir
	}
	return filepath.Join(home, DefaultConfigDir)
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	return filepath.Join(GetConfigDir(), ConfigFileName)
}

// Load reads the configuration document at path, merging it over the
// defaults so unspecified keys retain their documented values. A missing
// file yields the pure defaults. An empty path means the default location.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	defaults := DefaultConfig()
	v.SetDefault("normalize.enabled", defaults.Normalize.Enabled)
	v.SetDefault("normalize.preset", defaults.Normalize.Preset)
	v.SetDefault("normalize.lufs", defaults.Normalize.LUFS)
	v.SetDefault("normalize.tp", defaults.Normalize.TruePeak)
	v.SetDefault("normalize.two_pass", defaults.Normalize.TwoPass)
	v.SetDefault("fade.enabled", defaults.Fade.Enabled)
	v.SetDefault("fade.in_ms", defaults.Fade.InMs)
	v.SetDefault("fade.out_ms", defaults.Fade.OutMs)
	v.SetDefault("fade.from_end_sec", defaults.Fade.FromEndSec)
	v.SetDefault("crossfade.enabled", defaults.Crossfade.Enabled)
	v.SetDefault("crossfade.overlap_sec", defaults.Crossfade.OverlapSec)
	v.SetDefault("crossfade.curve", defaults.Crossfade.Curve)
	v.SetDefault("output.codec", defaults.Output.Codec)
	v.SetDefault("output.sample_rate", defaults.Output.SampleRate)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("paths.ffmpeg", defaults.Paths.FFmpeg)
	v.SetDefault("paths.ffprobe", defaults.Paths.FFprobe)
	v.SetDefault("paths.cache_dir", defaults.Paths.CacheDir)

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Normalize: NormalizeConfig{
			Enabled:  v.GetBool("normalize.enabled"),
			Preset:   v.GetString("normalize.preset"),
			LUFS:     v.GetFloat64("normalize.lufs"),
			TruePeak: v.GetFloat64("normalize.tp"),
			TwoPass:  v.GetBool("normalize.two_pass"),
		},
		Fade: FadeConfig{
			Enabled:    v.GetBool("fade.enabled"),
			InMs:       v.GetInt("fade.in_ms"),
			OutMs:      v.GetInt("fade.out_ms"),
			FromEndSec: v.GetFloat64("fade.from_end_sec"),
		},
		Crossfade: CrossfadeConfig{
			Enabled:    v.GetBool("crossfade.enabled"),
			OverlapSec: v.GetFloat64("crossfade.overlap_sec"),
			Curve:      v.GetString("crossfade.curve"),
		},
		Output: OutputConfig{
			Codec:      v.GetString("output.codec"),
			SampleRate: v.GetInt("output.sample_rate"),
			Format:     v.GetString("output.format"),
		},
		Paths: PathsConfig{
			FFmpeg:   v.GetString("paths.ffmpeg"),
			FFprobe:  v.GetString("paths.ffprobe"),
			CacheDir: v.GetString("paths.cache_dir"),
		},
	}

	return cfg, nil
}

// Save writes the configuration document to path, creating the directory
// as needed. An empty path means the default location.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the configuration against its documented ranges.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Target returns the normalization target the configuration describes.
func (c *Config) Target() models.NormalizationTarget {
	return models.NormalizationTarget{
		IntegratedLUFS: c.Normalize.LUFS,
		TruePeakDBTP:   c.Normalize.TruePeak,
		TwoPass:        c.Normalize.TwoPass,
	}
}

// FadeSpec returns the fade envelope the configuration describes. The
// pipeline always anchors the fade-out from the end of the clip.
func (c *Config) FadeSpec() models.FadeSpec {
	fromEnd := c.Fade.FromEndSec
	return models.FadeSpec{
		FadeIn:  float64(c.Fade.InMs) / 1000,
		FadeOut: float64(c.Fade.OutMs) / 1000,
		FromEnd: &fromEnd,
	}
}

// CrossfadeSpec returns the overlap merge the configuration describes.
// Both sides of every node use the same curve.
func (c *Config) CrossfadeSpec() models.CrossfadeSpec {
	return models.CrossfadeSpec{
		Overlap:  c.Crossfade.OverlapSec,
		CurveIn:  c.Crossfade.Curve,
		CurveOut: c.Crossfade.Curve,
		Codec:    c.Output.Codec,
	}
}
