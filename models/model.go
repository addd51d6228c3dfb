// Package models is a collection of linear regression fitting kernels
// operating on gonum matrices. The frame aware fitting layer sits in the
// lm package and delegates the numeric work here.
package models

import (
	"gonum.org/v1/gonum/mat"
)

type Model interface {
	Fit(x, y mat.Matrix) error
	Predict(x mat.Matrix) ([]float64, error)
	Score(x, y mat.Matrix) (float64, error)
	Intercept() float64
	Coef() []float64
}
