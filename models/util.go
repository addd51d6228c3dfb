package models

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// withIntercept prepends a constant 1.0 column to the design matrix.
func withIntercept(x mat.Matrix) mat.Matrix {
	m, _ := x.Dims()
	ones := make([]float64, m)
	floats.AddConst(1.0, ones)
	onesMx := mat.NewDense(1, m, ones)
	xT := x.T()

	var xWithOnes mat.Dense
	xWithOnes.Stack(onesMx, xT)
	return xWithOnes.T()
}

// solveQR computes the least squares coefficients of x against the target
// row vector via QR factorization and back substitution.
func solveQR(x mat.Matrix, yT mat.Matrix) []float64 {
	_, n := x.Dims()

	qr := new(mat.QR)
	qr.Factorize(x)

	q := new(mat.Dense)
	r := new(mat.Dense)

	qr.QTo(q)
	qr.RTo(r)
	yq := new(mat.Dense)
	yq.Mul(yT, q)

	c := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		c[i] = yq.At(0, i)
		for j := i + 1; j < n; j++ {
			c[i] -= c[j] * r.At(i, j)
		}
		c[i] /= r.At(i, i)
	}
	return c
}

// predictLinear evaluates intercept + x*coef for every row of x.
func predictLinear(x mat.Matrix, intercept float64, coef []float64, fitIntercept bool) ([]float64, error) {
	if fitIntercept {
		coef = append([]float64{intercept}, coef...)
		x = withIntercept(x)
	}
	n := len(coef)

	xT := x.T()
	xn, _ := xT.Dims()
	if xn != n {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", xn, n, ErrFeatureLenMismatch)
	}
	coefMx := mat.NewDense(1, n, coef)

	var res mat.Dense
	res.Mul(coefMx, xT)
	return res.RawRowView(0), nil
}

var (
	ErrInsufficientSamples       = errors.New("insufficient samples for the determined folds")
	ErrInconsistentSampleLengths = errors.New("features or targets do not have the same number of samples")
)

type FoldDataset struct {
	TrainX []time.Time
	TrainY []float64

	TestX []time.Time
	TestY []float64
}

// TimeSeriesCVSplit splits an ordered time series into expanding window
// folds where each fold trains on everything before its test block.
func TimeSeriesCVSplit(t []time.Time, y []float64, nFold int) ([]FoldDataset, error) {
	nSamples := len(t)

	if len(y) != nSamples {
		return nil, ErrInconsistentSampleLengths
	}

	foldSamp := nSamples / (nFold + 1)
	if foldSamp == 0 {
		return nil, ErrInsufficientSamples
	}

	folds := make([]FoldDataset, nFold)
	for i := 0; i < nFold; i++ {
		folds[i] = FoldDataset{
			TrainX: t[:(i+1)*foldSamp],
			TrainY: y[:(i+1)*foldSamp],
			TestX:  t[(i+1)*foldSamp : (i+2)*foldSamp],
			TestY:  y[(i+1)*foldSamp : (i+2)*foldSamp],
		}
	}
	return folds, nil
}
