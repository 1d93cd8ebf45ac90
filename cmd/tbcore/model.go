package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tightbind/lattice"
	"github.com/katalvlaran/tightbind/persist"
	"github.com/katalvlaran/tightbind/store"
)

var (
	errNoModel = errors.New("no model: pass -f <model.yaml> or --db <dsn> --cell <id|name>")
	errNoStore = errors.New("no store: pass --db <dsn> or set store.dsn")
)

// readModel decodes a YAML model file.
func readModel(path string) (*lattice.UnitCell, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return persist.DecodeYAML(f)
}

// loadCell resolves the model from -f, or from the store when --cell is set.
func (a *app) loadCell(ctx context.Context) (*lattice.UnitCell, error) {
	switch {
	case a.modelFile != "":
		c, err := readModel(a.modelFile)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", a.modelFile, err)
		}
		a.logger.Debug("model loaded", zap.String("file", a.modelFile), zap.Stringer("cell", c.ID()))
		return c, nil
	case a.cellKey != "":
		s, err := a.openStore(ctx)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		c, err := s.Find(ctx, a.cellKey)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("model loaded", zap.String("store", a.dsn), zap.Stringer("cell", c.ID()))
		return c, nil
	default:
		return nil, errNoModel
	}
}

func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	if a.dsn == "" {
		return nil, errNoStore
	}

	return store.Open(ctx, a.dsn)
}

// writeYAML renders v as one YAML document.
func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}

// flow renders a float row as a YAML flow sequence.
type flow []float64

func (f flow) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, x := range f {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(x, 'g', -1, 64)})
	}

	return n, nil
}

func flows(rows [][]float64) []flow {
	out := make([]flow, len(rows))
	for i, r := range rows {
		out[i] = r
	}

	return out
}
