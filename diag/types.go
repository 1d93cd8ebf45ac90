// SPDX-License-Identifier: MIT

package diag

import "github.com/katalvlaran/tightbind/matrix"

// State is the lifecycle position of a Run.
type State int32

// Run states.
const (
	Idle State = iota
	Running
	Completed
	Aborted
	Failed
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Aborted:
		return "aborted"
	case Failed:
		return "failed"
	}

	return "unknown"
}

// EventKind discriminates Event.
type EventKind int

// Event kinds.
const (
	EventProgress EventKind = iota
	EventSuccess
	EventAborted
	EventFailed
)

// String returns the lower-case kind name.
func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
	case EventSuccess:
		return "success"
	case EventAborted:
		return "aborted"
	case EventFailed:
		return "failed"
	}

	return "unknown"
}

// Event is one notification from a Run.
type Event struct {
	Kind    EventKind
	Percent int     // EventProgress only
	Result  *Result // EventSuccess only
	Err     error   // EventFailed only
	Message string
}

// Result holds eigen-data aligned with KPoints: Eigenvalues[i] ascending,
// Eigenvectors[i] with one eigenvector per column.
type Result struct {
	KPoints      [][]float64
	Eigenvalues  [][]float64
	Eigenvectors []*matrix.CDense
}
