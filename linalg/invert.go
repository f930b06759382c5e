package linalg

import (
	"gonum.org/v1/gonum/mat"

	"github.com/wukan1986/polars-ols/diag"
)

// Invert returns the inverse of the square matrix a.
//
// When preferCholesky is set the matrix is assumed symmetric and a Cholesky
// factorization is attempted first; if the factorization fails (the matrix
// is not positive definite) the function falls back to LU with partial
// pivoting and reports the fallback through the diagnostic sink.
//
// Squareness is a caller guarantee. Singular or near-singular input is not
// validated: the LU path returns a best-effort result and only logs the
// conditioning problem. Callers needing strict validation must check the
// conditioning of their systems themselves.
func Invert(a mat.Matrix, preferCholesky bool) *mat.Dense {
	if preferCholesky {
		var chol mat.Cholesky
		if chol.Factorize(ToSymmetric(a)) {
			var inv mat.SymDense
			if err := chol.InverseTo(&inv); err == nil {
				return mat.DenseCopyOf(&inv)
			}
		}
		diag.Logf("Cholesky decomposition failed, falling back to LU decomposition")
	}

	n, _ := a.Dims()
	inv := mat.NewDense(n, n, nil)
	if err := inv.Inverse(a); err != nil {
		diag.Logf("LU inverse is ill-conditioned: %v", err)
	}

	return inv
}

// SolveNormalEquations solves the normal equations XᵗX coef = XᵗY with the
// same Cholesky-then-LU fallback policy as Invert. No error is raised for a
// singular XᵗX; the LU fallback returns a best-effort result.
func SolveNormalEquations(xtx mat.Matrix, xty mat.Vector, preferCholesky bool) *mat.VecDense {
	coef := mat.NewVecDense(xty.Len(), nil)

	if preferCholesky {
		var chol mat.Cholesky
		if chol.Factorize(ToSymmetric(xtx)) {
			if err := chol.SolveVecTo(coef, xty); err == nil {
				return coef
			}
		}
		diag.Logf("Cholesky decomposition failed, falling back to LU decomposition")
	}

	var lu mat.LU
	lu.Factorize(xtx)
	if err := lu.SolveVecTo(coef, false, xty); err != nil {
		diag.Logf("normal equations are ill-conditioned: %v", err)
	}

	return coef
}
