package leastsquares

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/wukan1986/polars-ols/linalg"
)

// SolveRidge solves a ridge regression problem, minimizing
// ‖y − Xw‖² + alpha·‖w‖², and returns the length-k coefficient vector.
//
// alpha must be non-negative. MethodCholesky and MethodLU (the default)
// solve the regularized normal equations (XᵗX + alpha·I) w = Xᵗy;
// MethodSVD computes the regularized pseudoinverse solution with the rcond
// cutoff. Any other method returns ErrUnsupportedMethod.
func SolveRidge(y *mat.VecDense, x *mat.Dense, alpha float64, opts ...Option) (*mat.VecDense, error) {
	if alpha < 0 {
		return nil, fmt.Errorf("%w: ridge alpha must be non-negative, got %v", ErrInvalidAlpha, alpha)
	}
	cfg := newConfig(opts)

	switch cfg.method {
	case MethodAuto, MethodCholesky, MethodLU:
		_, nFeatures := x.Dims()

		xtx := mat.NewDense(nFeatures, nFeatures, nil)
		xtx.Mul(x.T(), x)
		xty := mat.NewVecDense(nFeatures, nil)
		xty.MulVec(x.T(), y)
		for i := 0; i < nFeatures; i++ {
			xtx.Set(i, i, xtx.At(i, i)+alpha)
		}

		return linalg.SolveNormalEquations(xtx, xty, cfg.method == MethodCholesky), nil
	case MethodSVD:
		return solveRidgeSVD(y, x, alpha, cfg), nil
	default:
		return nil, fmt.Errorf("%w: %s is not valid for ridge, use chol, lu or svd", ErrUnsupportedMethod, cfg.method)
	}
}
