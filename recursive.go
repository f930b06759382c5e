package leastsquares

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/wukan1986/polars-ols/linalg"
)

// defaultPriorScale is the default scale of the initial state covariance.
const defaultPriorScale = 10.0

// RecursiveLeastSquares is an online least-squares estimator that maintains
// running coefficient and covariance state, updated one sample at a time
// with optional exponential forgetting.
//
// The estimator owns its state exclusively and mutates it in sequential
// order; it provides no internal locking. Use one instance per logical
// stream or synchronize externally.
type RecursiveLeastSquares struct {
	forgettingFactor float64
	coef             *mat.VecDense // coefficient vector
	cov              *mat.Dense    // state covariance P
	gain             *mat.VecDense // kalman gain K
}

// NewRecursiveLeastSquares returns an estimator over numFeatures features
// with initial state covariance P₀ = priorScale·I. WithHalfLife sets the
// exponential forgetting half-life (absent, the forgetting factor is 1 and
// the estimator behaves as expanding-window OLS); WithInitialCoefficients
// sets the initial coefficient mean, which otherwise starts at zero.
func NewRecursiveLeastSquares(numFeatures int, priorScale float64, opts ...Option) *RecursiveLeastSquares {
	cfg := newConfig(opts)

	forgettingFactor := 1.0
	if cfg.hasHalfLife {
		forgettingFactor = math.Exp(math.Log(0.5) / cfg.halfLife)
	}

	coef := mat.NewVecDense(numFeatures, nil)
	if cfg.initialCoef != nil {
		coef = mat.NewVecDense(numFeatures, slices.Clone(cfg.initialCoef))
	}

	cov := mat.NewDense(numFeatures, numFeatures, nil)
	for i := 0; i < numFeatures; i++ {
		cov.Set(i, i, priorScale)
	}

	return &RecursiveLeastSquares{
		forgettingFactor: forgettingFactor,
		coef:             coef,
		cov:              cov,
		gain:             mat.NewVecDense(numFeatures, nil),
	}
}

// Update folds one observation (feature vector x, target y) into the
// estimator state:
//
//	r    = 1 + xᵗPx/λ
//	K    = Px/(rλ)
//	coef = coef + K(y − xᵗcoef)
//	P    = P/λ − r·KKᵗ
//
// where λ is the forgetting factor.
func (rls *RecursiveLeastSquares) Update(x mat.Vector, y float64) {
	px := mat.NewVecDense(rls.coef.Len(), nil)
	px.MulVec(rls.cov, x)

	r := 1 + mat.Dot(x, px)/rls.forgettingFactor
	rls.gain.ScaleVec(1/(r*rls.forgettingFactor), px)

	residual := y - mat.Dot(x, rls.coef)
	rls.coef.AddScaledVec(rls.coef, residual, rls.gain)

	outer := linalg.OuterProduct(rls.gain, rls.gain)
	outer.Scale(r, outer)
	rls.cov.Scale(1/rls.forgettingFactor, rls.cov)
	rls.cov.Sub(rls.cov, outer)
}

// Predict returns the model output xᵗcoef for a feature vector.
func (rls *RecursiveLeastSquares) Predict(x mat.Vector) float64 {
	return mat.Dot(x, rls.coef)
}

// Coefficients returns the current coefficient vector. The vector is owned
// by the estimator and mutated by subsequent updates.
func (rls *RecursiveLeastSquares) Coefficients() *mat.VecDense {
	return rls.coef
}

// SolveRecursiveLeastSquares runs a recursive least-squares estimator over
// every sample in order and returns the n×k coefficient trajectory, one row
// per time step.
//
// isValid flags samples to use; updates are skipped for invalid samples and
// the trajectory simply holds the previous coefficients for that step. A nil
// isValid treats every sample as valid. Options: WithHalfLife,
// WithPriorScale (default 10) and WithInitialCoefficients.
func SolveRecursiveLeastSquares(y *mat.VecDense, x *mat.Dense, isValid []bool, opts ...Option) (*mat.Dense, error) {
	nSamples, nFeatures := x.Dims()
	if y.Len() != nSamples {
		return nil, fmt.Errorf("%w: %d targets for %d samples", ErrDimensionMismatch, y.Len(), nSamples)
	}
	if isValid != nil && len(isValid) != nSamples {
		return nil, fmt.Errorf("%w: %d validity flags for %d samples", ErrDimensionMismatch, len(isValid), nSamples)
	}

	cfg := newConfig(opts)
	priorScale := defaultPriorScale
	if cfg.hasPriorScale {
		priorScale = cfg.priorScale
	}
	rls := NewRecursiveLeastSquares(nFeatures, priorScale, opts...)

	coefficients := mat.NewDense(nSamples, nFeatures, nil)
	for t := 0; t < nSamples; t++ {
		if isValid == nil || isValid[t] {
			rls.Update(x.RowView(t), y.AtVec(t))
		}
		for j := 0; j < nFeatures; j++ {
			coefficients.Set(t, j, rls.coef.AtVec(j))
		}
	}

	return coefficients, nil
}
