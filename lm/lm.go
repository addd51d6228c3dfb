// Package lm fits linear models against a frame using a formula such as
// "n ~ wday + term". Fitting delegates the numeric work to the regression
// kernels in the models package. The resulting LinearModel predicts
// against any frame carrying the formula's predictor columns and retains
// the formula it was trained with, which the augmentation layer uses to
// compute residuals.
package lm

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-modelframe/formula"
	"github.com/aouyang1/go-modelframe/frame"
	"github.com/aouyang1/go-modelframe/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoTrainingFrame = errors.New("no training frame")
	ErrNoFormula       = errors.New("no model formula")
	ErrUntrainedModel  = errors.New("model has not been trained yet")
)

// LinearModel is a fitted linear model bound to the formula and
// categorical encoding it was trained with.
type LinearModel struct {
	form *formula.Formula
	enc  *formula.Encoder

	intercept float64
	coef      []float64 // aligned with enc.Labels()

	scores        *Scores
	robustWeights []float64
	robust        bool
	trained       bool
}

// Fit trains an ordinary least squares model of the formula against the
// frame.
func Fit(f *frame.Frame, form *formula.Formula) (*LinearModel, error) {
	kernel, err := models.NewOLSRegression(nil)
	if err != nil {
		return nil, err
	}
	return fit(f, form, kernel)
}

// FitRobust trains an outlier resistant model of the formula against the
// frame using iteratively reweighted least squares. A nil opt selects
// bisquare weighting with default tuning.
func FitRobust(f *frame.Frame, form *formula.Formula, opt *models.RobustOptions) (*LinearModel, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	// the encoder folds reference levels into the intercept
	kernelOpt := *opt
	kernelOpt.FitIntercept = true

	kernel, err := models.NewRobustRegression(&kernelOpt)
	if err != nil {
		return nil, err
	}
	m, err := fit(f, form, kernel)
	if err != nil {
		return nil, err
	}
	m.robust = true
	m.robustWeights = kernel.Weights()
	return m, nil
}

func fit(f *frame.Frame, form *formula.Formula, kernel models.Model) (*LinearModel, error) {
	if f == nil {
		return nil, ErrNoTrainingFrame
	}
	if form == nil {
		return nil, ErrNoFormula
	}

	enc, err := formula.NewEncoder(f, form)
	if err != nil {
		return nil, fmt.Errorf("unable to encode predictors, %w", err)
	}

	observed, err := f.Floats(form.Response())
	if err != nil {
		return nil, fmt.Errorf("unable to evaluate response %q, %w", form.Response(), err)
	}

	x, err := enc.Matrix(f)
	if err != nil {
		return nil, fmt.Errorf("unable to build design matrix, %w", err)
	}
	y := mat.NewDense(len(observed), 1, observed)

	if err := kernel.Fit(x, y); err != nil {
		return nil, fmt.Errorf("unable to fit %q, %w", form, err)
	}

	m := &LinearModel{
		form:      form,
		enc:       enc,
		intercept: kernel.Intercept(),
		coef:      kernel.Coef(),
		trained:   true,
	}

	predicted, err := m.Predict(f)
	if err != nil {
		return nil, fmt.Errorf("unable to score training frame, %w", err)
	}
	scores, err := NewScores(predicted, observed)
	if err != nil {
		return nil, err
	}
	m.scores = scores

	return m, nil
}

// Predict evaluates the fitted model against every row of the frame. The
// frame must carry all predictor columns of the model formula with the
// kinds and categorical levels seen at fit time. A zero row frame yields
// zero predictions.
func (m *LinearModel) Predict(f *frame.Frame) ([]float64, error) {
	if m == nil || !m.trained {
		return nil, ErrUntrainedModel
	}
	if f != nil && f.NumRows() == 0 {
		return []float64{}, nil
	}

	x, err := m.enc.Matrix(f)
	if err != nil {
		return nil, fmt.Errorf("unable to build design matrix, %w", err)
	}

	coefMx := mat.NewDense(len(m.coef), 1, m.coef)
	var res mat.Dense
	res.Mul(x, coefMx)

	yhat := mat.Col(nil, 0, &res)
	floats.AddConst(m.intercept, yhat)
	return yhat, nil
}

// Formula returns the formula the model was fitted with.
func (m *LinearModel) Formula() *formula.Formula {
	if m == nil {
		return nil
	}
	return m.form
}

// Intercept returns the fitted intercept.
func (m *LinearModel) Intercept() float64 {
	if m == nil {
		return 0
	}
	return m.intercept
}

// Coefficients returns the fitted coefficients keyed by design matrix
// label, e.g. "wday[Sat]".
func (m *LinearModel) Coefficients() (map[string]float64, error) {
	if m == nil || !m.trained {
		return nil, ErrUntrainedModel
	}

	labels := m.enc.Labels()
	coef := make(map[string]float64, len(labels))
	for i, label := range labels {
		coef[label] = m.coef[i]
	}
	return coef, nil
}

// Scores returns the fit scores against the training frame.
func (m *LinearModel) Scores() Scores {
	if m == nil || m.scores == nil {
		return Scores{}
	}
	return *m.scores
}

// RobustWeights returns the final per row robustness weights for a robust
// fit, nil for an ordinary fit. Values near 0 mark the rows the fit
// discounted as outliers.
func (m *LinearModel) RobustWeights() []float64 {
	if m == nil || m.robustWeights == nil {
		return nil
	}
	w := make([]float64, len(m.robustWeights))
	copy(w, m.robustWeights)
	return w
}

// ModelEq returns a string representation of the fitted linear equation in
// the format of y ~ b + m1x1 + m2x2 + ...
func (m *LinearModel) ModelEq() (string, error) {
	if m == nil || !m.trained {
		return "", ErrUntrainedModel
	}

	eq := m.form.Response() + " ~ "
	eq += fmt.Sprintf("%.2f", m.intercept)
	for i, label := range m.enc.Labels() {
		if m.coef[i] == 0 {
			continue
		}
		eq += fmt.Sprintf("%+.2f*%s", m.coef[i], label)
	}
	return eq, nil
}
