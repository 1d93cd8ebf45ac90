// SPDX-License-Identifier: MIT

// Package diag runs Hermitian diagonalization of H(k) over a k-point sequence
// in the background, with progress events, cancellation and an optional
// commit hook.
//
// State machine:
//
//	Idle ──Start──▶ Running ──┬──▶ Completed  (all k-points solved, commit ok)
//	                          ├──▶ Aborted    (Cancel or parent ctx done)
//	                          └──▶ Failed     (H(k) or eigensolver error, commit error)
//
// Events (Run.Events):
//
//	EventProgress  Percent strictly increasing, in steps of at least
//	               WithProgressStep points; 100 is emitted before success.
//	EventSuccess   Result attached; emitted after the commit hook.
//	EventAborted   no Result; nothing was committed.
//	EventFailed    Err is a *NumericError or the commit error.
//
// The channel is buffered for every event a run can emit, so the worker never
// blocks on a slow consumer; it is closed after the terminal event.
//
// Cancellation:
//
//	Run.Cancel sets an atomic flag and cancels the run's context. Workers poll
//	both before every k-point, so a run stops within one eigensolve.
//
// Manager:
//
//	Manager keeps at most one Run per lattice.UnitCell. Starting a new run
//	cancels the previous one. Runs work on a lattice.Snapshot; results are
//	written back only if the cell revision is unchanged.
package diag
