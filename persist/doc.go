// Package persist serializes unit cells and projects.
//
// Two encodings share one document schema:
//
//	YAML     — human-editable model files (gopkg.in/yaml.v3, unknown fields rejected).
//	msgpack  — compact blobs for the SQLite store (github.com/vmihailenco/msgpack/v5).
//
// What is stored: ids (canonical UUID strings), names, the basis with
// periodicity flags, sites with fractional coordinates and appearance, states
// in order, the hopping table (records verbatim, amplitudes as {re, im}),
// special points and grid settings. Computed eigen-data is not stored; it is
// recomputed on demand.
//
// Decoding rebuilds the cell through the lattice API, so every model
// invariant is enforced on load. Any failure yields a *Error wrapping
// ErrMalformed and the cause; no partial cell is returned.
package persist
