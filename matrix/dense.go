// SPDX-License-Identifier: MIT
// Package matrix: CDense is a concrete row-major complex matrix storing
// elements in a flat slice for cache friendliness.

package matrix

import (
	"fmt"
	"strings"
)

// denseErrorf wraps an underlying error with CDense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("CDense.%s(%d,%d): %w", method, row, col, err)
}

// CDense is a row-major matrix of complex128 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type CDense struct {
	r, c int          // number of rows and columns
	data []complex128 // flat backing storage, length == r*c
}

// NewCDense creates an r×c CDense matrix initialized to zeros.
// Returns ErrBadShape when rows or cols is not positive.
// Complexity: O(r*c) time and memory.
func NewCDense(rows, cols int) (*CDense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewCDense(%d,%d): %w", rows, cols, ErrBadShape)
	}

	return &CDense{r: rows, c: cols, data: make([]complex128, rows*cols)}, nil
}

// NewCDenseFrom creates an r×c matrix holding a copy of data (row-major).
// Returns ErrBadShape when the shape is invalid or len(data) != rows*cols.
func NewCDenseFrom(rows, cols int, data []complex128) (*CDense, error) {
	m, err := NewCDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("NewCDenseFrom: len=%d want %d: %w", len(data), rows*cols, ErrBadShape)
	}
	copy(m.data, data)

	return m, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) (*CDense, error) {
	m, err := NewCDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// Rows returns the number of rows.
func (m *CDense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *CDense) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
func (m *CDense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *CDense) At(row, col int) (complex128, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns v at (row, col).
// Complexity: O(1).
func (m *CDense) Set(row, col int, v complex128) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// AddAt accumulates v into (row, col): A[row,col] += v.
// Complexity: O(1).
func (m *CDense) AddAt(row, col int, v complex128) error {
	idx, err := m.indexOf("AddAt", row, col)
	if err != nil {
		return err
	}
	m.data[idx] += v

	return nil
}

// Col returns a copy of column j.
func (m *CDense) Col(j int) ([]complex128, error) {
	if j < 0 || j >= m.c {
		return nil, denseErrorf("Col", 0, j, ErrOutOfRange)
	}
	out := make([]complex128, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+j]
	}

	return out, nil
}

// RawData returns a copy of the row-major backing data.
func (m *CDense) RawData() []complex128 {
	out := make([]complex128, len(m.data))
	copy(out, m.data)

	return out
}

// Clone returns a deep copy of the matrix.
// Complexity: O(r*c) time and memory.
func (m *CDense) Clone() *CDense {
	data := make([]complex128, len(m.data))
	copy(data, m.data)

	return &CDense{r: m.r, c: m.c, data: data}
}

// String implements fmt.Stringer for debugging.
func (m *CDense) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		sb.WriteByte('[')
		for j = 0; j < m.c; j++ {
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
			if j < m.c-1 {
				sb.WriteString(", ")
			}
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
