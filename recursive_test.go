package leastsquares

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRecursiveConvergesToBatchOLS(t *testing.T) {
	// on a stationary noiseless dataset with no forgetting, the estimator
	// converges to the batch OLS coefficients; the prior washes out as
	// sample count grows
	rng := rand.New(rand.NewSource(41))
	w := []float64{1.5, -2.0, 0.5}
	y, x := linearDataset(rng, 400, w, 0)

	trajectory, err := SolveRecursiveLeastSquares(y, x, nil)
	require.NoError(t, err)

	batch, err := SolveOLS(y, x)
	require.NoError(t, err)

	errAt := func(row int) float64 {
		var sum float64
		for j := range w {
			d := trajectory.At(row, j) - batch.AtVec(j)
			sum += d * d
		}
		return math.Sqrt(sum)
	}

	early, final := errAt(49), errAt(399)
	assert.Less(t, final, 1e-2)
	assert.LessOrEqual(t, final, early, "estimate should tighten with more samples")
}

func TestRecursiveUpdateAndPredict(t *testing.T) {
	rls := NewRecursiveLeastSquares(1, 10)

	xt := mat.NewVecDense(1, []float64{1})
	for i := 0; i < 100; i++ {
		rls.Update(xt, 2)
	}

	assert.InDelta(t, 2, rls.Predict(xt), 1e-2)
	assert.InDelta(t, 2, rls.Coefficients().AtVec(0), 1e-2)
}

func TestRecursiveSkipsInvalidSamples(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	y, x := linearDataset(rng, 20, []float64{1, -1}, 0.1)

	isValid := make([]bool, 20)
	for i := range isValid {
		isValid[i] = true
	}
	isValid[5] = false
	isValid[6] = false

	trajectory, err := SolveRecursiveLeastSquares(y, x, isValid)
	require.NoError(t, err)

	// skipped steps hold the previous coefficients exactly
	for _, row := range []int{5, 6} {
		for j := 0; j < 2; j++ {
			assert.Equal(t, trajectory.At(row-1, j), trajectory.At(row, j), "row %d coef %d", row, j)
		}
	}
	// a valid step moves the estimate again
	assert.NotEqual(t, trajectory.At(6, 0), trajectory.At(7, 0))
}

func TestRecursiveInitialCoefficients(t *testing.T) {
	rng := rand.New(rand.NewSource(43))
	y, x := linearDataset(rng, 5, []float64{1, 2}, 0)

	// with every sample invalid, the trajectory stays at the initial mean
	trajectory, err := SolveRecursiveLeastSquares(y, x, make([]bool, 5),
		WithInitialCoefficients([]float64{0.25, -0.5}))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		assert.Equal(t, 0.25, trajectory.At(i, 0))
		assert.Equal(t, -0.5, trajectory.At(i, 1))
	}
}

func TestRecursiveHalfLifeTracksRegimeChange(t *testing.T) {
	rng := rand.New(rand.NewSource(44))
	n := 200
	x := randomMatrix(rng, n, 1)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		w := 2.0
		if i >= 100 {
			w = -1.0
		}
		y.SetVec(i, w*x.At(i, 0))
	}

	forgetting, err := SolveRecursiveLeastSquares(y, x, nil, WithHalfLife(10))
	require.NoError(t, err)
	expanding, err := SolveRecursiveLeastSquares(y, x, nil)
	require.NoError(t, err)

	// the forgetting estimator locks onto the new regime; the expanding
	// one is still dragged towards the old coefficient
	assert.InDelta(t, -1.0, forgetting.At(n-1, 0), 0.05)
	assert.Greater(t, expanding.At(n-1, 0), forgetting.At(n-1, 0))
}

func TestRecursiveDimensionMismatch(t *testing.T) {
	y := mat.NewVecDense(3, []float64{1, 2, 3})
	x := mat.NewDense(4, 1, []float64{1, 1, 1, 1})

	_, err := SolveRecursiveLeastSquares(y, x, nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	y4 := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	_, err = SolveRecursiveLeastSquares(y4, x, []bool{true})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestRecursivePriorScaleControlsAdaptation(t *testing.T) {
	rng := rand.New(rand.NewSource(45))
	y, x := linearDataset(rng, 10, []float64{3}, 0)

	confident, err := SolveRecursiveLeastSquares(y, x, nil, WithPriorScale(1e-6))
	require.NoError(t, err)
	diffuse, err := SolveRecursiveLeastSquares(y, x, nil, WithPriorScale(100))
	require.NoError(t, err)

	// a tiny prior covariance pins the estimate near its initial zero mean
	// while a diffuse prior lets the data dominate immediately
	assert.InDelta(t, 0, confident.At(9, 0), 1e-2)
	assert.InDelta(t, 3, diffuse.At(9, 0), 1e-2)
}
