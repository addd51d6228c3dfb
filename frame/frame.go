// Package frame provides a small typed table of equal length named columns.
// A Frame is an immutable snapshot. Operations that change its shape return
// a new Frame leaving the receiver untouched, which lets callers layer
// model predictions and residuals on top of the same source data without
// coordination.
package frame

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

var (
	ErrNoColumns          = errors.New("no columns")
	ErrDuplicateColumn    = errors.New("duplicate column name")
	ErrColumnLenMismatch  = errors.New("column length does not match frame rows")
	ErrMissingColumn      = errors.New("column not present in frame")
	ErrColumnKindMismatch = errors.New("column holds a different kind")
)

// Frame is an ordered collection of named columns sharing one row count.
type Frame struct {
	cols  []Column
	index map[string]int
}

// New creates a Frame from the given columns. All columns must have the
// same length and unique names.
func New(cols ...Column) (*Frame, error) {
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}

	f := &Frame{
		cols:  make([]Column, 0, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	n := cols[0].Len()
	for _, c := range cols {
		if _, exists := f.index[c.name]; exists {
			return nil, fmt.Errorf("column %q, %w", c.name, ErrDuplicateColumn)
		}
		if c.Len() != n {
			return nil, fmt.Errorf("column %q has %d rows, but frame has %d, %w", c.name, c.Len(), n, ErrColumnLenMismatch)
		}
		f.index[c.name] = len(f.cols)
		f.cols = append(f.cols, c.copy())
	}
	return f, nil
}

// NumRows returns the shared row count of all columns.
func (f *Frame) NumRows() int {
	if f == nil || len(f.cols) == 0 {
		return 0
	}
	return f.cols[0].Len()
}

// NumCols returns the number of columns.
func (f *Frame) NumCols() int {
	if f == nil {
		return 0
	}
	return len(f.cols)
}

// Names returns the column names in frame order.
func (f *Frame) Names() []string {
	if f == nil {
		return nil
	}
	names := make([]string, 0, len(f.cols))
	for _, c := range f.cols {
		names = append(names, c.name)
	}
	return names
}

// Has reports whether a column with the given name exists.
func (f *Frame) Has(name string) bool {
	if f == nil {
		return false
	}
	_, exists := f.index[name]
	return exists
}

// Col returns a copy of the named column.
func (f *Frame) Col(name string) (Column, error) {
	if f == nil {
		return Column{}, ErrMissingColumn
	}
	i, exists := f.index[name]
	if !exists {
		return Column{}, fmt.Errorf("column %q, %w", name, ErrMissingColumn)
	}
	return f.cols[i].copy(), nil
}

// Floats returns a copy of the values of a Float64 column.
func (f *Frame) Floats(name string) ([]float64, error) {
	c, err := f.Col(name)
	if err != nil {
		return nil, err
	}
	if c.kind != Float64 {
		return nil, fmt.Errorf("column %q is %s not %s, %w", name, c.kind, Float64, ErrColumnKindMismatch)
	}
	return c.floats, nil
}

// Strings returns a copy of the values of a String column.
func (f *Frame) Strings(name string) ([]string, error) {
	c, err := f.Col(name)
	if err != nil {
		return nil, err
	}
	if c.kind != String {
		return nil, fmt.Errorf("column %q is %s not %s, %w", name, c.kind, String, ErrColumnKindMismatch)
	}
	return c.strings, nil
}

// Times returns a copy of the values of a Time column.
func (f *Frame) Times(name string) ([]time.Time, error) {
	c, err := f.Col(name)
	if err != nil {
		return nil, err
	}
	if c.kind != Time {
		return nil, fmt.Errorf("column %q is %s not %s, %w", name, c.kind, Time, ErrColumnKindMismatch)
	}
	return c.times, nil
}

// WithColumn returns a new Frame with the column attached. A column sharing
// a name with an existing one replaces it in place keeping the original
// column order, otherwise the column is appended. The receiver is not
// modified.
func (f *Frame) WithColumn(c Column) (*Frame, error) {
	if f == nil {
		return nil, ErrNoColumns
	}
	if c.Len() != f.NumRows() {
		return nil, fmt.Errorf("column %q has %d rows, but frame has %d, %w", c.name, c.Len(), f.NumRows(), ErrColumnLenMismatch)
	}

	out := f.Copy()
	if i, exists := out.index[c.name]; exists {
		out.cols[i] = c.copy()
		return out, nil
	}
	out.index[c.name] = len(out.cols)
	out.cols = append(out.cols, c.copy())
	return out, nil
}

// Filter returns a new Frame holding only the rows for which keep returns
// true. Column order is preserved.
func (f *Frame) Filter(keep func(i int) bool) *Frame {
	if f == nil {
		return nil
	}

	n := f.NumRows()
	rows := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if keep(i) {
			rows = append(rows, i)
		}
	}

	out := &Frame{
		cols:  make([]Column, 0, len(f.cols)),
		index: make(map[string]int, len(f.cols)),
	}
	for _, c := range f.cols {
		out.index[c.name] = len(out.cols)
		out.cols = append(out.cols, c.take(rows))
	}
	return out
}

// Copy returns a deep copy of the frame.
func (f *Frame) Copy() *Frame {
	if f == nil {
		return nil
	}
	out := &Frame{
		cols:  make([]Column, 0, len(f.cols)),
		index: make(map[string]int, len(f.cols)),
	}
	for _, c := range f.cols {
		out.index[c.name] = len(out.cols)
		out.cols = append(out.cols, c.copy())
	}
	return out
}

// MarshalJSON serializes the frame as an object keyed by column name.
func (f *Frame) MarshalJSON() ([]byte, error) {
	cols := make(map[string]any, len(f.cols))
	for _, c := range f.cols {
		switch c.kind {
		case Float64:
			cols[c.name] = c.floats
		case String:
			cols[c.name] = c.strings
		case Time:
			cols[c.name] = c.times
		}
	}
	return json.Marshal(cols)
}
