package hamiltonian

import "errors"

var (
	// ErrNoStates indicates a cell without any quantum state.
	ErrNoStates = errors.New("hamiltonian: cell has no states")

	// ErrUnknownState indicates a hopping naming a state absent from the snapshot.
	ErrUnknownState = errors.New("hamiltonian: hopping names an unknown state")

	// ErrDimension indicates a k-point whose length differs from the periodic count.
	ErrDimension = errors.New("hamiltonian: k dimension must equal periodic count")
)
