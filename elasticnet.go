package leastsquares

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SoftThreshold applies the proximal operator of the L1 penalty,
// sign(x)·max(|x|−alpha, 0). When positive is set the result is additionally
// floored at zero, enforcing a non-negativity constraint.
func SoftThreshold(x, alpha float64, positive bool) float64 {
	result := math.Copysign(math.Max(math.Abs(x)-alpha, 0), x)
	if positive {
		result = math.Max(result, 0)
	}

	return result
}

// SolveElasticNet solves an elastic-net regression problem of the form
//
//	1/(2n)·‖y − Xw‖² + alpha·l1Ratio·‖w‖₁ + 0.5·alpha·(1−l1Ratio)·‖w‖²
//
// by cyclic coordinate descent with naive residual updates, and returns the
// length-k coefficient vector.
//
// alpha must be strictly positive and l1Ratio (default 0.5) within [0, 1].
// Only MethodCoordinateDescent (or the default) is valid. Iteration stops
// when the L2 norm of the coefficient change across a full pass drops below
// tol (default 1e-5) or after maxIter passes (default 1000); hitting the cap
// silently returns the best-effort coefficients.
func SolveElasticNet(y *mat.VecDense, x *mat.Dense, alpha float64, opts ...Option) (*mat.VecDense, error) {
	cfg := newConfig(opts)

	switch cfg.method {
	case MethodAuto, MethodCoordinateDescent:
	default:
		return nil, fmt.Errorf("%w: only cd (coordinate descent) is valid for elastic net, got %s",
			ErrUnsupportedMethod, cfg.method)
	}
	if alpha <= 0 {
		return nil, fmt.Errorf("%w: elastic-net alpha must be strictly positive, got %v", ErrInvalidAlpha, alpha)
	}
	l1Ratio := 0.5
	if cfg.hasL1Ratio {
		l1Ratio = cfg.l1Ratio
	}
	if l1Ratio < 0 || l1Ratio > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidL1Ratio, l1Ratio)
	}
	maxIter := cfg.maxIter
	if maxIter <= 0 {
		maxIter = 1000
	}
	tol := 1e-5
	if cfg.hasTol {
		tol = cfg.tol
	}

	nSamples, nFeatures := x.Dims()

	// residuals start at y since w starts at zero
	residuals := make([]float64, nSamples)
	for i := range residuals {
		residuals[i] = y.AtVec(i)
	}

	cols := make([][]float64, nFeatures)
	colNorms := make([]float64, nFeatures)
	for j := 0; j < nFeatures; j++ {
		cols[j] = mat.Col(nil, j, x)
		colNorms[j] = floats.Dot(cols[j], cols[j])
	}

	// alpha is pre-scaled by the sample count
	scaled := alpha * float64(nSamples)
	threshold := scaled * l1Ratio
	penalty := scaled * (1 - l1Ratio)

	w := make([]float64, nFeatures)
	wOld := make([]float64, nFeatures)
	for iter := 0; iter < maxIter; iter++ {
		copy(wOld, w)
		for j := 0; j < nFeatures; j++ {
			xj := cols[j]
			// naive update: add the feature's contribution back to the
			// residuals, re-estimate, then subtract it out again
			if w[j] != 0 {
				floats.AddScaled(residuals, w[j], xj)
			}
			rho := floats.Dot(xj, residuals)
			w[j] = SoftThreshold(rho, threshold, cfg.nonNegative) / (colNorms[j] + penalty)
			if w[j] != 0 {
				floats.AddScaled(residuals, -w[j], xj)
			}
		}
		if floats.Distance(w, wOld, 2) < tol {
			break
		}
	}

	return mat.NewVecDense(nFeatures, w), nil
}
