// Package modelframe attaches model derived columns to a frame. Given a
// frame and a set of fitted models keyed by column name, AddPredictions
// and AddResiduals return a new frame extended with one column per model
// holding its predictions or residuals. Inputs are never mutated and a
// frame is only returned when every requested column was computed.
package modelframe

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aouyang1/go-modelframe/formula"
	"github.com/aouyang1/go-modelframe/frame"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrNoFrame       = errors.New("no frame to augment")
	ErrNoModels      = errors.New("no models to augment with")
	ErrEvaluation    = errors.New("unable to evaluate model predictions against the frame")
	ErrSpecification = errors.New("model exposes no evaluable response specification")
)

// FittedModel is the capability set the augmentation operations need from
// a fitted model: predicting each row of a frame and reporting the formula
// it was trained with.
type FittedModel interface {
	Predict(*frame.Frame) ([]float64, error)
	Formula() *formula.Formula
}

// AddPredictions returns a new frame equal to f plus one Float64 column
// per model holding that model's predictions for every row. A model name
// colliding with an existing column replaces the column in place. New
// columns are appended in sorted name order. On any prediction failure no
// frame is returned.
func AddPredictions(f *frame.Frame, models map[string]FittedModel) (*frame.Frame, error) {
	if f == nil {
		return nil, ErrNoFrame
	}
	if len(models) == 0 {
		return nil, ErrNoModels
	}

	out := f.Copy()
	for _, name := range sortedNames(models) {
		predicted, err := models[name].Predict(f)
		if err != nil {
			return nil, fmt.Errorf("model %q, %w, %w", name, ErrEvaluation, err)
		}
		out, err = out.WithColumn(frame.Floats(name, predicted))
		if err != nil {
			return nil, fmt.Errorf("model %q, %w, %w", name, ErrEvaluation, err)
		}
	}
	return out, nil
}

// AddResiduals returns a new frame equal to f plus one Float64 column per
// model holding the observed response minus the model prediction for every
// row. The observed values come from evaluating each model's retained
// response specification against f. Collision and failure semantics match
// AddPredictions.
func AddResiduals(f *frame.Frame, models map[string]FittedModel) (*frame.Frame, error) {
	if f == nil {
		return nil, ErrNoFrame
	}
	if len(models) == 0 {
		return nil, ErrNoModels
	}

	out := f.Copy()
	for _, name := range sortedNames(models) {
		model := models[name]

		response, err := Predictor(model)
		if err != nil {
			return nil, fmt.Errorf("model %q, %w", name, err)
		}
		observed, err := f.Floats(response)
		if err != nil {
			return nil, fmt.Errorf("model %q response %q, %w, %w", name, response, ErrSpecification, err)
		}

		predicted, err := model.Predict(f)
		if err != nil {
			return nil, fmt.Errorf("model %q, %w, %w", name, ErrEvaluation, err)
		}

		residual := make([]float64, len(observed))
		floats.SubTo(residual, observed, predicted)

		out, err = out.WithColumn(frame.Floats(name, residual))
		if err != nil {
			return nil, fmt.Errorf("model %q, %w, %w", name, ErrEvaluation, err)
		}
	}
	return out, nil
}

// Predictor returns the response variable name the model was trained to
// predict, the left hand side of its fitted formula.
func Predictor(m FittedModel) (string, error) {
	if m == nil {
		return "", ErrSpecification
	}
	form := m.Formula()
	if form == nil || form.Response() == "" {
		return "", ErrSpecification
	}
	return form.Response(), nil
}

func sortedNames(models map[string]FittedModel) []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
