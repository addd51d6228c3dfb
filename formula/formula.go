// Package formula describes linear model specifications of the form
// "n ~ wday + term". The left hand side names the response column and the
// right hand side lists predictor columns. Whether a predictor is treated
// as numeric or categorical is decided by the column kind of the frame the
// formula is fit against.
package formula

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

var (
	ErrBadFormula = errors.New("formula must have the form response ~ term [+ term ...]")
	ErrNoResponse = errors.New("formula has no response variable")
	ErrNoTerms    = errors.New("formula has no predictor terms")
	ErrEmptyTerm  = errors.New("formula has an empty predictor term")
	ErrDupTerm    = errors.New("formula lists a predictor term twice")
	ErrSelfTerm   = errors.New("response variable cannot appear as a predictor")
)

// Formula is a parsed model specification with a response variable and one
// or more predictor terms.
type Formula struct {
	response string
	terms    []string
}

// New creates a Formula from a response variable and predictor terms.
func New(response string, terms ...string) (*Formula, error) {
	response = strings.TrimSpace(response)
	if response == "" {
		return nil, ErrNoResponse
	}
	if len(terms) == 0 {
		return nil, ErrNoTerms
	}

	seen := make(map[string]struct{}, len(terms))
	cleaned := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			return nil, ErrEmptyTerm
		}
		if term == response {
			return nil, fmt.Errorf("term %q, %w", term, ErrSelfTerm)
		}
		if _, exists := seen[term]; exists {
			return nil, fmt.Errorf("term %q, %w", term, ErrDupTerm)
		}
		seen[term] = struct{}{}
		cleaned = append(cleaned, term)
	}

	return &Formula{
		response: response,
		terms:    cleaned,
	}, nil
}

// Parse parses a formula string such as "n ~ wday + term".
func Parse(s string) (*Formula, error) {
	parts := strings.Split(s, "~")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%q, %w", s, ErrBadFormula)
	}
	return New(parts[0], strings.Split(parts[1], "+")...)
}

// Response returns the response variable name, the column the model is
// trained to predict.
func (f *Formula) Response() string {
	if f == nil {
		return ""
	}
	return f.response
}

// Terms returns a copy of the predictor term names in formula order.
func (f *Formula) Terms() []string {
	if f == nil {
		return nil
	}
	terms := make([]string, len(f.terms))
	copy(terms, f.terms)
	return terms
}

// String renders the formula back to its "response ~ term + term" form.
func (f *Formula) String() string {
	if f == nil {
		return ""
	}
	return f.response + " ~ " + strings.Join(f.terms, " + ")
}

func (f *Formula) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *Formula) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}
