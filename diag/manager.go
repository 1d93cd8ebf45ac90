// SPDX-License-Identifier: MIT

package diag

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/katalvlaran/tightbind/hamiltonian"
	"github.com/katalvlaran/tightbind/kpath"
	"github.com/katalvlaran/tightbind/lattice"
	"github.com/katalvlaran/tightbind/reciprocal"
)

// Manager keeps at most one active Run per unit cell.
type Manager struct {
	mu   sync.Mutex
	runs map[lattice.ID]*Run
	wg   sync.WaitGroup

	opts []Option
	log  *zap.Logger
}

// NewManager returns a Manager whose runs use opts. A WithCommit option is
// ignored: the Manager installs its own commit hook.
func NewManager(opts ...Option) *Manager {
	return &Manager{
		runs: make(map[lattice.ID]*Run),
		opts: opts,
		log:  gatherOptions(opts...).logger,
	}
}

// StartBands diagonalizes the cell along its special-point path sampled with
// nTotal points and commits the band structure on success.
// Errors (synchronous): *lattice.ConsistencyError, hamiltonian and kpath
// validation errors.
func (m *Manager) StartBands(ctx context.Context, cell *lattice.UnitCell, nTotal int) (*Run, error) {
	snap := cell.Snapshot()
	h, err := m.prepare(snap)
	if err != nil {
		return nil, fmt.Errorf("StartBands: %w", err)
	}
	path, err := kpath.Interpolate(snap.SpecialPoints, nTotal)
	if err != nil {
		return nil, fmt.Errorf("StartBands: %w", err)
	}
	commit := func(res *Result) error {
		return cell.CommitBands(snap.Revision, res.KPoints, res.Eigenvalues, res.Eigenvectors)
	}

	return m.launch(ctx, snap.CellID, h, path, commit), nil
}

// StartGrid stores the grid settings on the cell, diagonalizes on the
// resulting grid and commits it on success.
func (m *Manager) StartGrid(ctx context.Context, cell *lattice.UnitCell, divisions [3]int, gammaCentered bool) (*Run, error) {
	cell.SetGridSettings(divisions, gammaCentered)
	snap := cell.Snapshot()
	h, err := m.prepare(snap)
	if err != nil {
		return nil, fmt.Errorf("StartGrid: %w", err)
	}
	g, err := reciprocal.Vectors(snap.PeriodicVectors())
	if err != nil {
		return nil, fmt.Errorf("StartGrid: %w", err)
	}
	kpts, err := kpath.Grid(snap.Divisions, snap.GammaCentered, g)
	if err != nil {
		return nil, fmt.Errorf("StartGrid: %w", err)
	}
	commit := func(res *Result) error {
		return cell.CommitGrid(snap.Revision, res.KPoints, res.Eigenvalues, res.Eigenvectors)
	}

	return m.launch(ctx, snap.CellID, h, kpts, commit), nil
}

// prepare gates on Hermiticity and compiles H(k).
func (m *Manager) prepare(snap lattice.Snapshot) (hamiltonian.Func, error) {
	if err := snap.CheckHermitian(); err != nil {
		m.log.Warn("non-Hermitian system", zap.Stringer("cell", snap.CellID), zap.Error(err))
		return nil, err
	}
	h, err := hamiltonian.New(snap)
	if err != nil {
		return nil, err
	}

	return h.Func(), nil
}

// launch cancels the cell's current run and starts a new one.
func (m *Manager) launch(ctx context.Context, id lattice.ID, h hamiltonian.Func, kpts [][]float64, commit func(*Result) error) *Run {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev := m.runs[id]; prev != nil {
		m.log.Info("cancelling previous run", zap.Stringer("cell", id), zap.Stringer("run", prev.ID()))
		prev.Cancel()
	}
	opts := append(append([]Option(nil), m.opts...), WithCommit(commit))
	run := Start(ctx, h, kpts, opts...)
	m.runs[id] = run

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		<-run.Done()
		m.mu.Lock()
		if m.runs[id] == run {
			delete(m.runs, id)
		}
		m.mu.Unlock()
	}()

	return run
}

// Active returns the running Run of the cell, or nil.
func (m *Manager) Active(id lattice.ID) *Run {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.runs[id]
}

// Cancel aborts the cell's run; it reports whether one was active.
func (m *Manager) Cancel(id lattice.ID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	run := m.runs[id]
	if run == nil {
		return false
	}
	run.Cancel()

	return true
}

// Shutdown cancels every run and waits for all of them to finish.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	for _, run := range m.runs {
		run.Cancel()
	}
	m.mu.Unlock()
	m.wg.Wait()
}
