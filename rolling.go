package leastsquares

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/wukan1986/polars-ols/diag"
	"github.com/wukan1986/polars-ols/linalg"
)

// woodburyFeatureCutoff is the feature count above which the rolling engine
// defaults to Woodbury inverse propagation instead of re-solving the normal
// equations at every step.
const woodburyFeatureCutoff = 60

// SolveRollingOLS computes ordinary least squares coefficients over a
// sliding window of the most recent windowSize samples and returns the n×k
// coefficient trajectory, one row per time step. Rows before the first
// estimate (t < minPeriods−1) are NaN-filled.
//
// Two update policies are available. The naive policy maintains XᵗX and XᵗY
// by adding the incoming row's contribution and subtracting the outgoing
// row's once the window is full, re-solving the normal equations at every
// step. The Woodbury policy propagates inv(XᵗX) directly: rank-1 updates
// while the window fills, then a single rank-2 update per step with
// C = diag(−1, +1) that removes the oldest row and adds the newest in one
// combined update. The policy defaults to Woodbury when k > 60 and can be
// forced either way with WithWoodbury.
//
// WithMinPeriods sets the first time step producing a defined estimate
// (default min(k, windowSize)); values outside [k, windowSize] are accepted
// with a warning since the warm-up estimates may be unstable. WithRidgeAlpha
// adds an L2 penalty alpha·I to the cross products.
func SolveRollingOLS(y *mat.VecDense, x *mat.Dense, windowSize int, opts ...Option) (*mat.Dense, error) {
	cfg := newConfig(opts)
	n, k := x.Dims()

	if windowSize < 1 {
		return nil, fmt.Errorf("%w: window size must be at least 1, got %d", ErrInvalidWindow, windowSize)
	}
	if y.Len() != n {
		return nil, fmt.Errorf("%w: %d targets for %d samples", ErrDimensionMismatch, y.Len(), n)
	}
	alpha := cfg.ridgeAlpha
	if alpha < 0 {
		return nil, fmt.Errorf("%w: ridge alpha must be non-negative, got %v", ErrInvalidAlpha, alpha)
	}

	minPeriods := min(k, windowSize)
	if cfg.hasMinPeriods {
		minPeriods = cfg.minPeriods
	}
	if minPeriods < 1 || minPeriods > n {
		return nil, fmt.Errorf("%w: min_periods %d outside [1, %d]", ErrInvalidWindow, minPeriods, n)
	}
	if minPeriods < k || minPeriods > windowSize {
		diag.Logf("min_periods should be greater or equal to the number of regressors " +
			"in the model and less than or equal to the window size, otherwise " +
			"estimated parameters may be unstable")
	}

	useWoodbury := k > woodburyFeatureCutoff
	if cfg.hasWoodbury {
		useWoodbury = cfg.woodbury
	}

	coefficients := linalg.Full(n, k, math.NaN())

	// cross products over the warm-up rows
	xWarm := x.Slice(0, minPeriods, 0, k)
	xtx := mat.NewDense(k, k, nil)
	xtx.Mul(xWarm.T(), xWarm)
	xty := mat.NewVecDense(k, nil)
	xty.MulVec(xWarm.T(), y.SliceVec(0, minPeriods))
	if alpha > 0 {
		for i := 0; i < k; i++ {
			xtx.Set(i, i, xtx.At(i, i)+alpha)
		}
	}

	if useWoodbury {
		rollWoodbury(coefficients, y, x, xtx, xty, windowSize, minPeriods)
	} else {
		rollNaive(coefficients, y, x, xtx, xty, windowSize, minPeriods)
	}

	return coefficients, nil
}

// rollWoodbury slides the window while propagating inv(XᵗX) through
// Woodbury updates; XᵗY is maintained by direct vector addition and
// subtraction.
func rollWoodbury(coefficients *mat.Dense, y *mat.VecDense, x *mat.Dense, xtx *mat.Dense, xty *mat.VecDense, windowSize, minPeriods int) {
	n, k := x.Dims()

	xtxInv := linalg.Invert(xtx, false)
	coef := mat.NewVecDense(k, nil)
	coef.MulVec(xtxInv.T(), xty)
	setRow(coefficients, minPeriods-1, coef)

	// drops the outgoing row and adds the incoming one in a single rank-2
	// update
	c := mat.NewDense(2, 2, []float64{-1, 0, 0, 1})

	for i := minPeriods; i < n; i++ {
		iStart := max(i-windowSize, 0)
		xNew := x.RowView(i)

		if i > windowSize-1 {
			xPrev := x.RowView(iStart)

			// rank-2 update rows: negated outgoing row over incoming row
			update := mat.NewDense(2, k, nil)
			for j := 0; j < k; j++ {
				update.Set(0, j, -xPrev.AtVec(j))
				update.Set(1, j, xNew.AtVec(j))
			}
			xtxInv = linalg.UpdateCrossProductInverse(xtxInv, update, c)

			xty.AddScaledVec(xty, y.AtVec(i), xNew)
			xty.AddScaledVec(xty, -y.AtVec(iStart), xPrev)
		} else {
			update := mat.NewDense(1, k, nil)
			for j := 0; j < k; j++ {
				update.Set(0, j, xNew.AtVec(j))
			}
			xtxInv = linalg.UpdateCrossProductInverse(xtxInv, update, nil)

			xty.AddScaledVec(xty, y.AtVec(i), xNew)
		}

		coef.MulVec(xtxInv.T(), xty)
		setRow(coefficients, i, coef)
	}
}

// rollNaive slides the window while maintaining XᵗX and XᵗY by rank-1
// contributions, re-solving the normal equations from scratch at each step.
func rollNaive(coefficients *mat.Dense, y *mat.VecDense, x *mat.Dense, xtx *mat.Dense, xty *mat.VecDense, windowSize, minPeriods int) {
	n, _ := x.Dims()

	coef := linalg.SolveNormalEquations(xtx, xty, false)
	setRow(coefficients, minPeriods-1, coef)

	for i := minPeriods; i < n; i++ {
		iStart := max(i-windowSize, 0)
		xNew := x.RowView(i)

		xtx.Add(xtx, linalg.OuterProduct(xNew, xNew))
		xty.AddScaledVec(xty, y.AtVec(i), xNew)

		if i > windowSize-1 {
			xPrev := x.RowView(iStart)
			xtx.Sub(xtx, linalg.OuterProduct(xPrev, xPrev))
			xty.AddScaledVec(xty, -y.AtVec(iStart), xPrev)
		}

		coef = linalg.SolveNormalEquations(xtx, xty, true)
		setRow(coefficients, i, coef)
	}
}

func setRow(dst *mat.Dense, i int, v *mat.VecDense) {
	for j := 0; j < v.Len(); j++ {
		dst.Set(i, j, v.AtVec(j))
	}
}
