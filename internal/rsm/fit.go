package rsm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/mikel-ao/aloe-extraction-optimization/internal/model"
)

type fitOptions struct {
	modelType string
	coding    model.Coding
}

// Option adjusts how Fit builds the regression.
type Option func(*fitOptions)

// WithModelType selects the polynomial term set by name, e.g.
// ReducedCubic_ModelType or FullQuadratic_ModelType.
func WithModelType(modelType string) Option {
	return func(o *fitOptions) {
		o.modelType = modelType
	}
}

// WithCoding overrides the default variable coding of the design.
func WithCoding(coding model.Coding) Option {
	return func(o *fitOptions) {
		o.coding = coding
	}
}

// Fit estimates the response surface polynomial from the given runs via
// ordinary least squares and returns the fitted model with its quality
// statistics. It returns an *InsufficientDataError when there are fewer runs
// than model terms and a *FitError when the solver fails on degenerate data.
func Fit(runs []model.ExperimentRun, opts ...Option) (*FittedModel, error) {
	options := fitOptions{
		modelType: ReducedCubic_ModelType,
		coding:    model.DefaultCoding(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	terms, err := termsForModelType(options.modelType)
	if err != nil {
		return nil, err
	}
	for _, factor := range model.AllFactors() {
		if codingFor(options.coding, factor).Scale == 0 {
			return nil, fmt.Errorf("coding scale for %s must be non-zero", factor)
		}
	}

	n := len(runs)
	p := len(terms)
	if n < p {
		return nil, &InsufficientDataError{Runs: n, Terms: p}
	}

	X := mat.NewDense(n, p, nil)
	ys := make([]float64, n)
	for i, run := range runs {
		coded := options.coding.Code(run.Point())
		for j, term := range terms {
			X.Set(i, j, term.Eval(coded))
		}
		ys[i] = run.Yield
	}
	Y := mat.NewVecDense(n, ys)

	var coef mat.VecDense
	if err := coef.SolveVec(mat.Matrix(X), mat.Vector(Y)); err != nil {
		return nil, &FitError{ModelType: options.modelType, Cause: err}
	}

	coefficients := make([]float64, p)
	for j := range coefficients {
		coefficients[j] = coef.AtVec(j)
	}

	fitted := &FittedModel{
		ModelType:    options.modelType,
		Terms:        terms,
		Coefficients: coefficients,
		Coding:       options.coding,
		Runs:         n,
	}

	predicted := make([]float64, n)
	for i, run := range runs {
		predicted[i] = fitted.Predict(run.Point())
	}
	fitted.RSquared = calculateRSquared(ys, predicted)
	fitted.AdjRSquared = adjustRSquared(fitted.RSquared, n, p)
	fitted.RMSE = calculateRMSE(ys, predicted)

	return fitted, nil
}

func codingFor(coding model.Coding, factor model.Factor) model.FactorCoding {
	switch factor {
	case model.FactorTime:
		return coding.Time
	case model.FactorTemperature:
		return coding.Temperature
	default:
		return coding.Solvent
	}
}

// calculateRSquared computes the coefficient of determination of the fit.
func calculateRSquared(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	mean := 0.0
	for _, v := range observed {
		mean += v
	}
	mean /= float64(len(observed))

	ssTot := 0.0
	ssRes := 0.0
	for i := range observed {
		ssTot += (observed[i] - mean) * (observed[i] - mean)
		ssRes += (observed[i] - predicted[i]) * (observed[i] - predicted[i])
	}

	if ssTot == 0 {
		return 0
	}

	return 1.0 - (ssRes / ssTot)
}

// adjustRSquared penalizes R² for the number of model terms, so that models
// of different sizes stay comparable. Undefined when the fit has no residual
// degrees of freedom.
func adjustRSquared(rSquared float64, n, p int) float64 {
	if n <= p {
		return math.NaN()
	}
	return 1.0 - (1.0-rSquared)*float64(n-1)/float64(n-p)
}

// calculateRMSE computes the root mean square error of the fit.
func calculateRMSE(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	sumSq := 0.0
	for i := range observed {
		diff := observed[i] - predicted[i]
		sumSq += diff * diff
	}

	return math.Sqrt(sumSq / float64(len(observed)))
}
