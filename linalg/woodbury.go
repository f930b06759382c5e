package linalg

import (
	"gonum.org/v1/gonum/mat"
)

// WoodburyUpdate computes the inverse of a low-rank perturbation of a matrix
// whose inverse aInv is already known, using the Woodbury identity:
//
//	(A + U C V)⁻¹ = A⁻¹ − A⁻¹U (C⁻¹ + V A⁻¹ U)⁻¹ V A⁻¹
//
// aInv is k×k, u is k×r, c is r×r and v is r×k, with r the rank of the
// update. When cIsDiagonal is set the inverse of c is taken element-wise
// along the diagonal, which avoids a factorization for the rank-1/rank-2
// sliding-window updates.
func WoodburyUpdate(aInv, u, c, v mat.Matrix, cIsDiagonal bool) *mat.Dense {
	var invC *mat.Dense
	if cIsDiagonal {
		invC = InvertDiagonal(c)
	} else {
		invC = Invert(c, false)
	}

	k, _ := aInv.Dims()
	r, _ := c.Dims()

	vInvA := mat.NewDense(r, k, nil)
	vInvA.Mul(v, aInv)
	invAU := mat.NewDense(k, r, nil)
	invAU.Mul(aInv, u)

	inner := mat.NewDense(r, r, nil)
	inner.Mul(v, invAU)
	inner.Add(invC, inner)
	intermediate := Invert(inner, false)

	scaled := mat.NewDense(k, r, nil)
	scaled.Mul(invAU, intermediate)
	correction := mat.NewDense(k, k, nil)
	correction.Mul(scaled, vInvA)

	res := mat.NewDense(k, k, nil)
	res.Sub(aInv, correction)

	return res
}

// UpdateCrossProductInverse applies a rank-r Woodbury update to the cached
// inverse of a cross-product matrix XᵗX. xUpdate holds the r update rows as
// an r×k matrix; U is its transpose and V the rows themselves. A nil c
// defaults to the r×r identity, i.e. plain row additions. c must be
// diagonal.
func UpdateCrossProductInverse(xtxInv, xUpdate, c mat.Matrix) *mat.Dense {
	if c == nil {
		r, _ := xUpdate.Dims()
		c = Identity(r)
	}

	return WoodburyUpdate(xtxInv, xUpdate.T(), c, xUpdate, true)
}
