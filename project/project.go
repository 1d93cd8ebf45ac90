// Package project is the ordered, in-memory collection of unit cells a user
// works on. It owns the cells: removing one from the project destroys it.
package project

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/katalvlaran/tightbind/lattice"
	"github.com/katalvlaran/tightbind/persist"
)

var (
	// ErrCellNotFound indicates an id absent from the project.
	ErrCellNotFound = errors.New("project: cell not found")

	// ErrDuplicateCell indicates a cell id already present.
	ErrDuplicateCell = errors.New("project: duplicate cell id")
)

// Project holds cells in insertion order. Safe for concurrent use.
type Project struct {
	mu    sync.RWMutex
	cells []*lattice.UnitCell
}

// New returns an empty project.
func New() *Project { return &Project{} }

// Add appends a cell. Errors: ErrDuplicateCell.
func (p *Project) Add(c *lattice.UnitCell) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.indexLocked(c.ID()) >= 0 {
		return fmt.Errorf("Add: %s: %w", c.ID(), ErrDuplicateCell)
	}
	p.cells = append(p.cells, c)

	return nil
}

// Get returns the cell with the given id.
func (p *Project) Get(id lattice.ID) (*lattice.UnitCell, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	i := p.indexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("Get: %s: %w", id, ErrCellNotFound)
	}

	return p.cells[i], nil
}

// Find returns the first cell whose id string or name equals key.
func (p *Project) Find(key string) (*lattice.UnitCell, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, c := range p.cells {
		if c.ID().String() == key || c.Name() == key {
			return c, nil
		}
	}

	return nil, fmt.Errorf("Find: %q: %w", key, ErrCellNotFound)
}

// Remove deletes a cell from the project.
func (p *Project) Remove(id lattice.ID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("Remove: %s: %w", id, ErrCellNotFound)
	}
	p.cells = slices.Delete(p.cells, i, i+1)

	return nil
}

// Cells returns the cells in insertion order.
func (p *Project) Cells() []*lattice.UnitCell {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return slices.Clone(p.cells)
}

// Len returns the number of cells.
func (p *Project) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.cells)
}

// Load replaces the contents with the project read from r. On any error the
// project is left untouched.
func (p *Project) Load(r io.Reader) error {
	cells, err := persist.DecodeProject(r)
	if err != nil {
		return fmt.Errorf("Load: %w", err)
	}
	p.mu.Lock()
	p.cells = cells
	p.mu.Unlock()

	return nil
}

// Save writes every cell as one project document.
func (p *Project) Save(w io.Writer) error {
	if err := persist.EncodeProject(w, p.Cells()); err != nil {
		return fmt.Errorf("Save: %w", err)
	}

	return nil
}

func (p *Project) indexLocked(id lattice.ID) int {
	return slices.IndexFunc(p.cells, func(c *lattice.UnitCell) bool { return c.ID() == id })
}
