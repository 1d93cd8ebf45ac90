package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/tightbind/diag"
)

// watchDebounce batches the bursts of events editors emit on save.
const watchDebounce = 300 * time.Millisecond

// watcher recomputes the band structure of one model file on every change.
type watcher struct {
	a      *app
	target string
	path   string
	points int
	out    io.Writer

	mgr *diag.Manager
	// outMu serializes reports of overlapping runs.
	outMu sync.Mutex
	wg    sync.WaitGroup
}

func (a *app) watchCmd() *cobra.Command {
	var (
		points   int
		path     string
		debounce time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompute bands whenever the model file changes",
		Long: `Watch the model file given with -f and recompute its band structure on
every save. A change arriving while a computation runs cancels it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.modelFile == "" {
				return errors.New("watch: -f <model.yaml> is required")
			}
			target, err := filepath.Abs(a.modelFile)
			if err != nil {
				return err
			}
			if points <= 0 {
				points = a.cfg.Path.Points
			}
			w := &watcher{a: a, target: target, path: path, points: points, out: cmd.OutOrStdout(), mgr: a.manager()}

			return w.run(cmd.Context(), debounce)
		},
	}
	cmd.Flags().IntVar(&points, "points", 0, "Total samples along the path (default: path.points from config)")
	cmd.Flags().StringVar(&path, "path", "", `Fractional special points, e.g. "0,0;0.5,0"`)
	cmd.Flags().DurationVar(&debounce, "debounce", watchDebounce, "Quiet period before recomputing")

	return cmd
}

// run watches the file's directory (editors replace files on save) until ctx
// is done. The first computation starts immediately.
func (w *watcher) run(ctx context.Context, debounce time.Duration) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	if err := fw.Add(filepath.Dir(w.target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.target), err)
	}
	defer func() {
		w.mgr.Shutdown()
		w.wg.Wait()
	}()

	log := w.a.logger.With(zap.String("file", w.target))
	log.Info("watching model")
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("watch stopped")
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.target || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			log.Debug("model changed", zap.Stringer("op", ev.Op))
			timer.Reset(debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		case <-timer.C:
			w.recompute(ctx, log)
		}
	}
}

// recompute reloads the model and starts a run; the Manager cancels the
// previous run of the same cell. Load errors are logged and the watch goes on.
func (w *watcher) recompute(ctx context.Context, log *zap.Logger) {
	c, err := readModel(w.target)
	if err != nil {
		log.Warn("model not loaded", zap.Error(err))
		return
	}
	if err := w.a.applyPath(c, w.path); err != nil {
		log.Warn("path not applied", zap.Error(err))
		return
	}
	run, err := w.mgr.StartBands(ctx, c, w.points)
	if err != nil {
		log.Warn("bands not started", zap.Error(err))
		return
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		res, err := run.Wait()
		if err != nil {
			log.Info("run ended", zap.Stringer("run", run.ID()), zap.Error(err))
			return
		}
		w.outMu.Lock()
		defer w.outMu.Unlock()
		fmt.Fprintln(w.out, "---")
		if err := writeYAML(w.out, bandsReport{
			Cell:        c.Name(),
			KPoints:     flows(res.KPoints),
			Eigenvalues: flows(res.Eigenvalues),
		}); err != nil {
			log.Warn("report not written", zap.Error(err))
		}
	}()
}
