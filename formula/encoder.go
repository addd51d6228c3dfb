package formula

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aouyang1/go-modelframe/frame"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoFrame        = errors.New("no frame to encode")
	ErrNoRows         = errors.New("frame has no rows to encode")
	ErrNoFormula      = errors.New("no formula to encode with")
	ErrTermKind       = errors.New("predictor term must be a float64 or string column")
	ErrUnknownLevel   = errors.New("categorical value was not present at fit time")
	ErrConstantLevels = errors.New("categorical term has fewer than 2 levels")
)

// TermEncoding describes how one predictor term maps onto design matrix
// columns. Numeric terms map one to one. Categorical terms expand to one
// indicator column per level beyond the first, the first level in sorted
// order acting as the reference absorbed by the intercept.
type TermEncoding struct {
	Name        string   `json:"name"`
	Categorical bool     `json:"categorical"`
	Levels      []string `json:"levels,omitempty"`
}

// Encoder turns frames into design matrices for a fixed formula. The
// categorical levels are learned once from the training frame so that
// prediction against new frames produces columns in the same order.
type Encoder struct {
	form  *Formula
	terms []TermEncoding
}

// NewEncoder learns an encoding for the formula's predictor terms from the
// given frame. String columns become categorical terms with sorted levels,
// float columns numeric terms.
func NewEncoder(f *frame.Frame, form *Formula) (*Encoder, error) {
	if f == nil {
		return nil, ErrNoFrame
	}
	if form == nil {
		return nil, ErrNoFormula
	}

	terms := make([]TermEncoding, 0, len(form.Terms()))
	for _, name := range form.Terms() {
		c, err := f.Col(name)
		if err != nil {
			return nil, err
		}
		switch c.Kind() {
		case frame.Float64:
			terms = append(terms, TermEncoding{Name: name})
		case frame.String:
			vals, err := f.Strings(name)
			if err != nil {
				return nil, err
			}
			levels, err := distinctLevels(name, vals)
			if err != nil {
				return nil, err
			}
			terms = append(terms, TermEncoding{Name: name, Categorical: true, Levels: levels})
		default:
			return nil, fmt.Errorf("term %q is a %s column, %w", name, c.Kind(), ErrTermKind)
		}
	}
	return &Encoder{form: form, terms: terms}, nil
}

// NewEncoderFromTerms restores an encoder from previously learned term
// encodings, typically deserialized from an exported model.
func NewEncoderFromTerms(form *Formula, terms []TermEncoding) (*Encoder, error) {
	if form == nil {
		return nil, ErrNoFormula
	}
	dst := make([]TermEncoding, len(terms))
	copy(dst, terms)
	return &Encoder{form: form, terms: dst}, nil
}

func distinctLevels(name string, vals []string) ([]string, error) {
	set := make(map[string]struct{})
	for _, v := range vals {
		set[v] = struct{}{}
	}
	if len(set) < 2 {
		return nil, fmt.Errorf("term %q has %d levels, %w", name, len(set), ErrConstantLevels)
	}
	levels := make([]string, 0, len(set))
	for v := range set {
		levels = append(levels, v)
	}
	sort.Strings(levels)
	return levels, nil
}

// Formula returns the formula this encoder was built for.
func (e *Encoder) Formula() *Formula {
	if e == nil {
		return nil
	}
	return e.form
}

// Terms returns a copy of the learned term encodings in formula order.
func (e *Encoder) Terms() []TermEncoding {
	if e == nil {
		return nil
	}
	terms := make([]TermEncoding, len(e.terms))
	copy(terms, e.terms)
	return terms
}

// Labels returns the design matrix column labels in matrix order. Numeric
// terms use the column name, categorical terms one label per non-reference
// level in the form name[level].
func (e *Encoder) Labels() []string {
	if e == nil {
		return nil
	}
	labels := make([]string, 0, len(e.terms))
	for _, term := range e.terms {
		if !term.Categorical {
			labels = append(labels, term.Name)
			continue
		}
		for _, level := range term.Levels[1:] {
			labels = append(labels, fmt.Sprintf("%s[%s]", term.Name, level))
		}
	}
	return labels
}

// Matrix builds the design matrix for the frame, without an intercept
// column. The frame must contain all predictor columns with their fit time
// kinds and no categorical values outside the learned levels.
func (e *Encoder) Matrix(f *frame.Frame) (*mat.Dense, error) {
	if e == nil {
		return nil, ErrNoFormula
	}
	if f == nil {
		return nil, ErrNoFrame
	}

	m := f.NumRows()
	if m == 0 {
		// mat.NewDense rejects zero length dimensions
		return nil, ErrNoRows
	}
	n := len(e.Labels())
	data := make([]float64, m*n)

	col := 0
	for _, term := range e.terms {
		if !term.Categorical {
			vals, err := f.Floats(term.Name)
			if err != nil {
				return nil, err
			}
			for i := 0; i < m; i++ {
				data[i*n+col] = vals[i]
			}
			col++
			continue
		}

		vals, err := f.Strings(term.Name)
		if err != nil {
			return nil, err
		}
		levelIdx := make(map[string]int, len(term.Levels))
		for j, level := range term.Levels {
			levelIdx[level] = j
		}
		for i := 0; i < m; i++ {
			j, exists := levelIdx[vals[i]]
			if !exists {
				return nil, fmt.Errorf("term %q value %q at row %d, %w", term.Name, vals[i], i, ErrUnknownLevel)
			}
			if j == 0 {
				continue
			}
			data[i*n+col+j-1] = 1.0
		}
		col += len(term.Levels) - 1
	}

	return mat.NewDense(m, n, data), nil
}
