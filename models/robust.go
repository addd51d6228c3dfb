package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/aouyang1/go-modelframe/stats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const (
	// 95% asymptotic efficiency tuning constants under normal errors
	DefaultBisquareTuning = 4.685
	DefaultHuberTuning    = 1.345

	DefaultRobustIterations = 50
	DefaultRobustTolerance  = 1e-6
)

var (
	ErrUnknownWeighting   = errors.New("unknown robust weighting function")
	ErrNegativeTuning     = errors.New("negative tuning constant")
	ErrNegativeIterations = errors.New("negative iterations")
	ErrNegativeTolerance  = errors.New("negative tolerance")
)

// Weighting selects the redescending weight function applied to scaled
// residuals on each reweighting pass.
type Weighting string

const (
	WeightingBisquare Weighting = "bisquare"
	WeightingHuber    Weighting = "huber"
)

// RobustOptions represents input options to run the robust regression
type RobustOptions struct {
	// Weighting picks the weight function. Bisquare fully discounts gross
	// outliers while Huber only downweights them.
	Weighting Weighting

	// TuningConst scales how large a standardized residual must be before
	// it loses weight. 0 selects the default for the weighting function.
	TuningConst float64

	// Iterations is the maximum number of reweighting passes.
	Iterations int

	// Tolerance is the smallest maximum coefficient change that keeps the
	// reweighting loop running.
	Tolerance float64

	// FitIntercept adds a constant 1.0 feature as the first column if set to true
	FitIntercept bool
}

// Validate runs basic validation on robust regression options
func (r *RobustOptions) Validate() (*RobustOptions, error) {
	if r == nil {
		r = NewDefaultRobustOptions()
	}

	if r.TuningConst < 0 {
		return nil, ErrNegativeTuning
	}
	if r.Iterations < 0 {
		return nil, ErrNegativeIterations
	}
	if r.Tolerance < 0 {
		return nil, ErrNegativeTolerance
	}

	switch r.Weighting {
	case WeightingBisquare:
		if r.TuningConst == 0 {
			r.TuningConst = DefaultBisquareTuning
		}
	case WeightingHuber:
		if r.TuningConst == 0 {
			r.TuningConst = DefaultHuberTuning
		}
	default:
		return nil, fmt.Errorf("%q, %w", r.Weighting, ErrUnknownWeighting)
	}
	return r, nil
}

// NewDefaultRobustOptions returns a default set of robust regression options
func NewDefaultRobustOptions() *RobustOptions {
	return &RobustOptions{
		Weighting:    WeightingBisquare,
		TuningConst:  DefaultBisquareTuning,
		Iterations:   DefaultRobustIterations,
		Tolerance:    DefaultRobustTolerance,
		FitIntercept: true,
	}
}

// RobustRegression computes an outlier resistant linear fit using
// iteratively reweighted least squares. Each pass standardizes the
// residuals by their normalized median absolute deviation, converts them
// to row weights, and re-solves a weighted least squares via the QR
// kernel. With no outliers present it converges to the OLS solution.
type RobustRegression struct {
	opt *RobustOptions

	coef      []float64
	intercept float64
	weights   []float64
}

func NewRobustRegression(opt *RobustOptions) (*RobustRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &RobustRegression{
		opt: opt,
	}, nil
}

func (r *RobustRegression) Fit(x, y mat.Matrix) error {
	if r.opt == nil {
		return ErrNoOptions
	}
	if x == nil {
		return ErrNoTrainingMatrix
	}
	if y == nil {
		return ErrNoTargetMatrix
	}
	m, _ := x.Dims()

	ym, _ := y.Dims()
	if ym != m {
		return fmt.Errorf("training data has %d rows and target has %d rows, %w", m, ym, ErrTargetLenMismatch)
	}

	design := x
	if r.opt.FitIntercept {
		design = withIntercept(x)
	}
	_, n := design.Dims()

	yVals := mat.Col(nil, 0, y)

	// OLS starting point
	beta := solveQR(design, y.T())
	weights := make([]float64, m)
	for i := range weights {
		weights[i] = 1.0
	}

	residual := make([]float64, m)
	scaled := mat.NewDense(m, n, nil)
	scaledY := mat.NewDense(1, m, nil)

	for iter := 0; iter < r.opt.Iterations; iter++ {
		for i := 0; i < m; i++ {
			pred := 0.0
			for j := 0; j < n; j++ {
				pred += design.At(i, j) * beta[j]
			}
			residual[i] = yVals[i] - pred
		}

		scale := stats.MedianAbsDev(residual)
		if scale == 0 || math.IsNaN(scale) {
			// residuals have collapsed, nothing left to reweight
			break
		}

		for i := 0; i < m; i++ {
			weights[i] = r.weight(residual[i] / scale)
		}

		for i := 0; i < m; i++ {
			sw := math.Sqrt(weights[i])
			for j := 0; j < n; j++ {
				scaled.Set(i, j, sw*design.At(i, j))
			}
			scaledY.Set(0, i, sw*yVals[i])
		}

		betaNext := solveQR(scaled, scaledY)

		maxCoef := 0.0
		maxUpdate := 0.0
		for j := 0; j < n; j++ {
			maxCoef = math.Max(maxCoef, math.Abs(betaNext[j]))
			maxUpdate = math.Max(maxUpdate, math.Abs(betaNext[j]-beta[j]))
		}
		beta = betaNext

		if maxUpdate < r.opt.Tolerance*math.Max(maxCoef, 1.0) {
			break
		}
	}

	if r.opt.FitIntercept {
		r.intercept = beta[0]
		r.coef = beta[1:]
	} else {
		r.coef = beta
	}
	r.weights = weights

	return nil
}

func (r *RobustRegression) weight(u float64) float64 {
	c := r.opt.TuningConst
	switch r.opt.Weighting {
	case WeightingHuber:
		if math.Abs(u) <= c {
			return 1.0
		}
		return c / math.Abs(u)
	default:
		if math.Abs(u) >= c {
			return 0.0
		}
		v := 1.0 - (u/c)*(u/c)
		return v * v
	}
}

func (r *RobustRegression) Predict(x mat.Matrix) ([]float64, error) {
	if r.opt == nil {
		return nil, ErrNoOptions
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	return predictLinear(x, r.intercept, r.coef, r.opt.FitIntercept)
}

func (r *RobustRegression) Score(x, y mat.Matrix) (float64, error) {
	if r.opt == nil {
		return 0.0, ErrNoOptions
	}
	if x == nil {
		return 0.0, ErrNoDesignMatrix
	}
	if y == nil {
		return 0.0, ErrNoTargetMatrix
	}

	m, _ := x.Dims()

	ym, _ := y.Dims()
	if m != ym {
		return 0.0, fmt.Errorf("design matrix has %d rows and target has %d rows, %w", m, ym, ErrTargetLenMismatch)
	}

	res, err := r.Predict(x)
	if err != nil {
		return 0.0, err
	}

	ySlice := mat.Col(nil, 0, y)

	return stat.RSquaredFrom(res, ySlice, nil), nil
}

func (r *RobustRegression) Intercept() float64 {
	return r.intercept
}

func (r *RobustRegression) Coef() []float64 {
	c := make([]float64, len(r.coef))
	copy(c, r.coef)
	return c
}

// Weights returns the final per observation robustness weights from the
// last fit. Values near 0 mark rows the fit treated as outliers.
func (r *RobustRegression) Weights() []float64 {
	w := make([]float64, len(r.weights))
	copy(w, r.weights)
	return w
}
