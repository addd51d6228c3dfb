package lm

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aouyang1/go-modelframe/formula"
)

var (
	ErrWeightLenMismatch = errors.New("model weights do not match the encoded terms")
	ErrMissingWeight     = errors.New("model is missing a weight for an encoded label")
)

// TermWeight pairs a design matrix label with its fitted coefficient.
type TermWeight struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Weights stores the fitted intercept and coefficients of a model.
type Weights struct {
	Intercept float64      `json:"intercept"`
	Coef      []TermWeight `json:"coefficients"`
}

// Model is the serializable representation of a fitted linear model. It
// carries everything needed to restore a predict-only LinearModel: the
// formula, the learned categorical encodings, and the weights.
type Model struct {
	Formula string                 `json:"formula"`
	Robust  bool                   `json:"robust"`
	Terms   []formula.TermEncoding `json:"terms"`
	Weights Weights                `json:"weights"`
	Scores  *Scores                `json:"scores,omitempty"`
}

// Model exports the fitted model into its serializable representation.
func (m *LinearModel) Model() (Model, error) {
	if m == nil || !m.trained {
		return Model{}, ErrUntrainedModel
	}

	labels := m.enc.Labels()
	coef := make([]TermWeight, 0, len(labels))
	for i, label := range labels {
		coef = append(coef, TermWeight{Label: label, Value: m.coef[i]})
	}

	return Model{
		Formula: m.form.String(),
		Robust:  m.robust,
		Terms:   m.enc.Terms(),
		Weights: Weights{
			Intercept: m.intercept,
			Coef:      coef,
		},
		Scores: m.scores,
	}, nil
}

// NewFromModel restores a predict-only LinearModel from its serializable
// representation, skipping the training step.
func NewFromModel(model Model) (*LinearModel, error) {
	form, err := formula.Parse(model.Formula)
	if err != nil {
		return nil, fmt.Errorf("unable to parse model formula, %w", err)
	}
	enc, err := formula.NewEncoderFromTerms(form, model.Terms)
	if err != nil {
		return nil, err
	}

	labels := enc.Labels()
	if len(labels) != len(model.Weights.Coef) {
		return nil, fmt.Errorf("have %d weights for %d labels, %w", len(model.Weights.Coef), len(labels), ErrWeightLenMismatch)
	}
	byLabel := make(map[string]float64, len(model.Weights.Coef))
	for _, tw := range model.Weights.Coef {
		byLabel[tw.Label] = tw.Value
	}
	coef := make([]float64, 0, len(labels))
	for _, label := range labels {
		val, exists := byLabel[label]
		if !exists {
			return nil, fmt.Errorf("label %q, %w", label, ErrMissingWeight)
		}
		coef = append(coef, val)
	}

	return &LinearModel{
		form:      form,
		enc:       enc,
		intercept: model.Weights.Intercept,
		coef:      coef,
		scores:    model.Scores,
		robust:    model.Robust,
		trained:   true,
	}, nil
}

// TablePrint writes a human readable summary of the model formula, fit
// scores, and weights.
func (m Model) TablePrint(w io.Writer) error {
	kind := "ols"
	if m.Robust {
		kind = "robust"
	}
	if _, err := fmt.Fprintf(w, "Formula: %s (%s)\n", m.Formula, kind); err != nil {
		return err
	}

	if m.Scores != nil {
		if _, err := fmt.Fprintf(w, "Scores:\n  MAPE: %.3f    MSE: %.3f    R2: %.3f\n",
			m.Scores.MAPE,
			m.Scores.MSE,
			m.Scores.R2,
		); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "Weights:"); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "  Label\tValue\t\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tbl, "  (intercept)\t%.3f\t\n", m.Weights.Intercept); err != nil {
		return err
	}
	for _, tw := range m.Weights.Coef {
		if _, err := fmt.Fprintf(tbl, "  %s\t%.3f\t\n", tw.Label, tw.Value); err != nil {
			return err
		}
	}
	return tbl.Flush()
}
