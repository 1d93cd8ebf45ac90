package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/tightbind/config"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tbcore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Path.Points)
	assert.Empty(t, cfg.Path.Special)
	assert.Equal(t, [3]int{8, 8, 8}, cfg.Grid.Divisions)
	assert.True(t, cfg.Grid.GammaCentered)
	assert.Equal(t, 1e-12, cfg.Eigen.Tolerance)
	assert.Equal(t, 100, cfg.Eigen.MaxSweeps)
	assert.Equal(t, 1, cfg.Pipeline.Workers)
	assert.Equal(t, 1, cfg.Pipeline.ProgressStep)
	assert.Equal(t, 1e6, cfg.Reduction.Scale)
	assert.Equal(t, 0.75, cfg.Reduction.Delta)
	assert.Equal(t, zapcore.InfoLevel, cfg.Level())
	assert.Empty(t, cfg.Store.DSN)
	assert.Empty(t, cfg.LoadedFrom)
	assert.Len(t, cfg.DiagOptions(zap.NewNop()), 5)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
path:
  points: 50
  special: [[0, 0], [0.5, 0], [0.5, 0.5]]
grid:
  divisions: [4, 4]
  gamma_centered: false
pipeline:
  workers: 4
log:
  level: debug
store:
  dsn: cells.db
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Path.Points)
	assert.Equal(t, [][]float64{{0, 0}, {0.5, 0}, {0.5, 0.5}}, cfg.Path.Special)
	assert.Equal(t, [3]int{4, 4, 1}, cfg.Grid.Divisions)
	assert.False(t, cfg.Grid.GammaCentered)
	assert.Equal(t, 4, cfg.Pipeline.Workers)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level())
	assert.Equal(t, "cells.db", cfg.Store.DSN)
	assert.Equal(t, path, cfg.LoadedFrom)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, "path:\n  points: 50\n")
	t.Setenv("TBCORE_PATH_POINTS", "75")
	t.Setenv("TBCORE_GRID_DIVISIONS", "2,3,4")
	t.Setenv("TBCORE_PATH_SPECIAL", "0;0.5")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 75, cfg.Path.Points)
	assert.Equal(t, [3]int{2, 3, 4}, cfg.Grid.Divisions)
	assert.Equal(t, [][]float64{{0}, {0.5}}, cfg.Path.Special)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"points":    "path:\n  points: 1\n",
		"workers":   "pipeline:\n  workers: 0\n",
		"step":      "pipeline:\n  progress_step: 101\n",
		"delta":     "reduction:\n  delta: 0.2\n",
		"scale":     "reduction:\n  scale: -1\n",
		"tolerance": "eigen:\n  tolerance: 0\n",
		"level":     "log:\n  level: loud\n",
		"divisions": "grid:\n  divisions: [0, 1, 1]\n",
		"too many":  "grid:\n  divisions: [1, 1, 1, 1]\n",
		"special":   "path:\n  special: [1, 2]\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeFile(t, body))
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestParsePoints(t *testing.T) {
	pts, err := config.ParsePoints(" 0,0 ; 0.5, 0 ;0.5,0.5")
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0}, {0.5, 0}, {0.5, 0.5}}, pts)

	pts, err = config.ParsePoints("")
	require.NoError(t, err)
	assert.Nil(t, pts)

	_, err = config.ParsePoints("0,x")
	assert.ErrorIs(t, err, config.ErrInvalid)

	n, err := config.ParseInts("8, 8,1")
	require.NoError(t, err)
	assert.Equal(t, []int{8, 8, 1}, n)
}
