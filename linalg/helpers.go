// Package linalg provides the dense solver primitives shared by the
// regression solvers: matrix inversion and normal-equations solves with a
// Cholesky-then-LU fallback, and low-rank Woodbury inverse updates.
package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Identity returns the n by n identity matrix.
func Identity(n int) *mat.DiagDense {
	data := make([]float64, n)
	for i := range data {
		data[i] = 1
	}

	return mat.NewDiagDense(n, data)
}

// Full returns a (m by n) matrix filled with value.
func Full(m, n int, value float64) *mat.Dense {
	data := make([]float64, m*n)
	for i := range data {
		data[i] = value
	}

	return mat.NewDense(m, n, data)
}

// OuterProduct returns u vᵀ as a dense matrix.
func OuterProduct(u, v mat.Vector) *mat.Dense {
	res := mat.NewDense(u.Len(), v.Len(), nil)
	res.Outer(1, u, v)

	return res
}

// InvertDiagonal returns the inverse of a square diagonal matrix by taking
// per-element reciprocals along the diagonal. Panics on non-square input.
func InvertDiagonal(c mat.Matrix) *mat.Dense {
	n, m := c.Dims()
	if n != m {
		panic("linalg: diagonal inverse of non-square matrix")
	}
	res := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		res.Set(i, i, 1/c.At(i, i))
	}

	return res
}

// ToSymmetric copies the upper triangle of a square matrix into a SymDense.
// Used to hand nominally-symmetric cross products to factorizations that
// require the mat.Symmetric interface.
func ToSymmetric(a mat.Matrix) *mat.SymDense {
	n, _ := a.Dims()
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, a.At(i, j))
		}
	}

	return s
}

// HasNaNOrInf reports whether the matrix contains any NaN or Inf entry.
func HasNaNOrInf(matrix mat.Matrix) bool {
	m, n := matrix.Dims()
	for row := 0; row < m; row++ {
		for col := 0; col < n; col++ {
			if math.IsNaN(matrix.At(row, col)) || math.IsInf(matrix.At(row, col), 0) {
				return true
			}
		}
	}

	return false
}
