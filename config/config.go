// Package config loads tbcore settings from a YAML file, TBCORE_* environment
// variables and built-in defaults, in that order of precedence (env first).
package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/tightbind/diag"
	"github.com/katalvlaran/tightbind/lll"
)

// EnvPrefix prefixes environment overrides: path.points → TBCORE_PATH_POINTS.
const EnvPrefix = "TBCORE"

// ErrInvalid indicates a setting outside its domain.
var ErrInvalid = errors.New("config: invalid setting")

// Config is the effective configuration.
type Config struct {
	Path struct {
		Points  int         // samples along a band path
		Special [][]float64 // fractional special points; empty → cell's own
	}
	Grid struct {
		Divisions     [3]int
		GammaCentered bool
	}
	Eigen struct {
		Tolerance float64
		MaxSweeps int
	}
	Pipeline struct {
		Workers      int
		ProgressStep int
	}
	Reduction struct {
		Scale float64
		Delta float64
	}
	Log struct {
		Level string
	}
	Store struct {
		DSN string
	}

	// LoadedFrom is the config file used, or "" for defaults and env only.
	LoadedFrom string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("path.points", 200)
	v.SetDefault("path.special", []any{})
	v.SetDefault("grid.divisions", []any{8, 8, 8})
	v.SetDefault("grid.gamma_centered", true)
	v.SetDefault("eigen.tolerance", 1e-12)
	v.SetDefault("eigen.max_sweeps", 100)
	v.SetDefault("pipeline.workers", diag.DefaultWorkers)
	v.SetDefault("pipeline.progress_step", diag.DefaultProgressStep)
	v.SetDefault("reduction.scale", 1e6)
	v.SetDefault("reduction.delta", lll.DefaultDelta)
	v.SetDefault("log.level", "info")
	v.SetDefault("store.dsn", "")
}

// Load reads path (skipped when empty), applies env overrides and validates.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("Load: read %s: %w", path, err)
		}
	}

	var (
		cfg Config
		err error
	)
	cfg.Path.Points = v.GetInt("path.points")
	if cfg.Path.Special, err = pointList(v.Get("path.special")); err != nil {
		return nil, fmt.Errorf("Load: path.special: %w", err)
	}
	div, err := intList(v.Get("grid.divisions"))
	if err != nil {
		return nil, fmt.Errorf("Load: grid.divisions: %w", err)
	}
	if len(div) == 0 || len(div) > 3 {
		return nil, fmt.Errorf("Load: grid.divisions has %d entries: %w", len(div), ErrInvalid)
	}
	cfg.Grid.Divisions = [3]int{1, 1, 1}
	copy(cfg.Grid.Divisions[:], div)
	cfg.Grid.GammaCentered = v.GetBool("grid.gamma_centered")
	cfg.Eigen.Tolerance = v.GetFloat64("eigen.tolerance")
	cfg.Eigen.MaxSweeps = v.GetInt("eigen.max_sweeps")
	cfg.Pipeline.Workers = v.GetInt("pipeline.workers")
	cfg.Pipeline.ProgressStep = v.GetInt("pipeline.progress_step")
	cfg.Reduction.Scale = v.GetFloat64("reduction.scale")
	cfg.Reduction.Delta = v.GetFloat64("reduction.delta")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Store.DSN = v.GetString("store.dsn")
	cfg.LoadedFrom = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}

	return &cfg, nil
}

// Validate rejects settings the computations cannot honour.
func (c *Config) Validate() error {
	var errs []error
	bad := func(key string, val any) {
		errs = append(errs, fmt.Errorf("%s=%v: %w", key, val, ErrInvalid))
	}
	if c.Path.Points < 2 {
		bad("path.points", c.Path.Points)
	}
	for _, d := range c.Grid.Divisions {
		if d < 1 {
			bad("grid.divisions", c.Grid.Divisions)
			break
		}
	}
	if !(c.Eigen.Tolerance > 0) || math.IsInf(c.Eigen.Tolerance, 0) {
		bad("eigen.tolerance", c.Eigen.Tolerance)
	}
	if c.Eigen.MaxSweeps < 1 {
		bad("eigen.max_sweeps", c.Eigen.MaxSweeps)
	}
	if c.Pipeline.Workers < 1 {
		bad("pipeline.workers", c.Pipeline.Workers)
	}
	if c.Pipeline.ProgressStep < 1 || c.Pipeline.ProgressStep > 100 {
		bad("pipeline.progress_step", c.Pipeline.ProgressStep)
	}
	if !(c.Reduction.Scale > 0) || math.IsInf(c.Reduction.Scale, 0) {
		bad("reduction.scale", c.Reduction.Scale)
	}
	if !(c.Reduction.Delta > 0.25 && c.Reduction.Delta <= 1) {
		bad("reduction.delta", c.Reduction.Delta)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		bad("log.level", c.Log.Level)
	}

	return errors.Join(errs...)
}

// Level returns the zap level of Log.Level.
func (c *Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.InfoLevel
	}

	return lvl
}

// DiagOptions maps the eigen and pipeline settings onto diag options.
func (c *Config) DiagOptions(log *zap.Logger) []diag.Option {
	return []diag.Option{
		diag.WithWorkers(c.Pipeline.Workers),
		diag.WithProgressStep(c.Pipeline.ProgressStep),
		diag.WithEigenTolerance(c.Eigen.Tolerance),
		diag.WithMaxSweeps(c.Eigen.MaxSweeps),
		diag.WithLogger(log),
	}
}

// intList accepts a YAML sequence or a "8,8,1" string (env form).
func intList(raw any) ([]int, error) {
	switch x := raw.(type) {
	case string:
		return ParseInts(x)
	case []any:
		out := make([]int, len(x))
		for i, e := range x {
			n, err := toFloat(e)
			if err != nil || n != math.Trunc(n) {
				return nil, fmt.Errorf("entry %d %v: %w", i, e, ErrInvalid)
			}
			out[i] = int(n)
		}
		return out, nil
	case []int:
		return x, nil
	}

	return nil, fmt.Errorf("%T: %w", raw, ErrInvalid)
}

// pointList accepts a sequence of sequences or a "0,0;0.5,0" string.
func pointList(raw any) ([][]float64, error) {
	switch x := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return ParsePoints(x)
	case []any:
		out := make([][]float64, len(x))
		for i, row := range x {
			cols, ok := row.([]any)
			if !ok {
				return nil, fmt.Errorf("point %d: %w", i, ErrInvalid)
			}
			out[i] = make([]float64, len(cols))
			for j, e := range cols {
				f, err := toFloat(e)
				if err != nil {
					return nil, fmt.Errorf("point %d: %w", i, err)
				}
				out[i][j] = f
			}
		}
		return out, nil
	}

	return nil, fmt.Errorf("%T: %w", raw, ErrInvalid)
}

func toFloat(e any) (float64, error) {
	switch n := e.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	}

	return 0, fmt.Errorf("%v (%T): %w", e, e, ErrInvalid)
}

// ParseInts parses "8,8,1".
func ParseInts(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, ErrInvalid)
		}
		out = append(out, n)
	}

	return out, nil
}

// ParsePoints parses "0,0;0.5,0;0.5,0.5" into points. Empty input gives nil.
func ParsePoints(s string) ([][]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out [][]float64
	for _, p := range strings.Split(s, ";") {
		var pt []float64
		for _, f := range strings.Split(p, ",") {
			x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("%q: %w", s, ErrInvalid)
			}
			pt = append(pt, x)
		}
		out = append(out, pt)
	}

	return out, nil
}
