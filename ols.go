package leastsquares

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/wukan1986/polars-ols/diag"
)

// olsRidgeAlpha is the near-zero L2 penalty used when solving plain OLS
// through the ridge SVD routine, so the rcond cutoff behaves identically
// for OLS and ridge.
const olsRidgeAlpha = 1.0e-64

// SolveOLS solves an ordinary least squares problem and returns the length-k
// coefficient vector.
//
// An explicit WithMethod(MethodQR) or WithMethod(MethodSVD) is honored; by
// default QR is chosen for over-determined problems (n > k) and SVD
// otherwise, since the SVD path handles the rank-deficient regime. Any other
// method returns ErrUnsupportedMethod. The QR path requires n >= k.
func SolveOLS(y *mat.VecDense, x *mat.Dense, opts ...Option) (*mat.VecDense, error) {
	cfg := newConfig(opts)
	nSamples, nFeatures := x.Dims()

	method := cfg.method
	if method == MethodAuto {
		if nSamples > nFeatures {
			method = MethodQR
		} else {
			method = MethodSVD
		}
	}

	switch method {
	case MethodQR:
		return solveQR(y, x), nil
	case MethodSVD:
		return solveRidgeSVD(y, x, olsRidgeAlpha, cfg), nil
	default:
		return nil, fmt.Errorf("%w: %s is not valid for OLS, use qr or svd", ErrUnsupportedMethod, method)
	}
}

// solveQR computes the least-squares solution through a QR factorization of
// the design matrix. Ill-conditioning is reported through the diagnostic
// sink; the numeric result is returned regardless.
func solveQR(y *mat.VecDense, x *mat.Dense) *mat.VecDense {
	_, nFeatures := x.Dims()

	var qr mat.QR
	qr.Factorize(x)

	coef := mat.NewVecDense(nFeatures, nil)
	if err := qr.SolveVecTo(coef, false, y); err != nil {
		diag.Logf("QR least-squares system is ill-conditioned: %v", err)
	}

	return coef
}

// solveRidgeSVD solves the (possibly ridge-regularized) least squares
// problem through a thin SVD: X = U S Vᵗ, coef = V diag(s/(s²+alpha)) Uᵗy.
// Singular values below rcond times the largest singular value are zeroed.
func solveRidgeSVD(y *mat.VecDense, x *mat.Dense, alpha float64, cfg solverConfig) *mat.VecDense {
	nSamples, nFeatures := x.Dims()

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		panic("leastsquares: SVD failed to converge")
	}

	s := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	rcond := cfg.rcond
	if !cfg.hasRCond {
		eps := math.Nextafter(1, 2) - 1
		rcond = eps * float64(max(nSamples, nFeatures))
	}
	cutoff := rcond * floats.Max(s)
	for i := range s {
		if s[i] < cutoff {
			s[i] = 0
		}
	}

	// scale Uᵗy by d = s/(s² + alpha); zeroed singular values contribute
	// nothing to the solution
	uty := mat.NewVecDense(len(s), nil)
	uty.MulVec(u.T(), y)
	for i := range s {
		uty.SetVec(i, uty.AtVec(i)*s[i]/(s[i]*s[i]+alpha))
	}

	coef := mat.NewVecDense(nFeatures, nil)
	coef.MulVec(&v, uty)

	return coef
}
