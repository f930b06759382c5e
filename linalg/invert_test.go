package linalg

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/wukan1986/polars-ols/diag"
)

type recorder struct {
	messages []string
}

func (r *recorder) Logf(format string, args ...any) {
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

// randomSPD returns a random symmetric positive-definite n×n matrix.
func randomSPD(rng *rand.Rand, n int) *mat.Dense {
	b := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			b.Set(i, j, rng.NormFloat64())
		}
	}
	spd := mat.NewDense(n, n, nil)
	spd.Mul(b.T(), b)
	for i := 0; i < n; i++ {
		spd.Set(i, i, spd.At(i, i)+float64(n))
	}

	return spd
}

func TestInvertCholeskyMatchesLU(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := randomSPD(rng, 6)

	viaCholesky := Invert(a, true)
	viaLU := Invert(a, false)

	assert.True(t, mat.EqualApprox(viaCholesky, viaLU, 1e-10),
		"Cholesky and LU inverses disagree:\n%v\n%v",
		mat.Formatted(viaCholesky), mat.Formatted(viaLU))
}

func TestInvertReproducesIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	a := randomSPD(rng, 5)

	inv := Invert(a, true)
	product := mat.NewDense(5, 5, nil)
	product.Mul(a, inv)

	assert.True(t, mat.EqualApprox(product, Identity(5), 1e-10))
}

func TestInvertFallsBackToLU(t *testing.T) {
	rec := &recorder{}
	prev := diag.Set(rec)
	defer diag.Set(prev)

	// symmetric but indefinite, so the Cholesky attempt must fail
	a := mat.NewDense(2, 2, []float64{1, 0, 0, -1})

	inv := Invert(a, true)

	require.NotEmpty(t, rec.messages)
	assert.Contains(t, rec.messages[0], "falling back to LU")
	assert.True(t, mat.EqualApprox(inv, a, 1e-12), "diag(1,-1) is its own inverse")
}

func TestSolveNormalEquationsKnownSystem(t *testing.T) {
	// [2 0; 0 4] coef = [2, 8] => coef = [1, 2]
	xtx := mat.NewDense(2, 2, []float64{2, 0, 0, 4})
	xty := mat.NewVecDense(2, []float64{2, 8})

	for _, preferCholesky := range []bool{true, false} {
		coef := SolveNormalEquations(xtx, xty, preferCholesky)
		assert.InDelta(t, 1, coef.AtVec(0), 1e-12)
		assert.InDelta(t, 2, coef.AtVec(1), 1e-12)
	}
}

func TestSolveNormalEquationsCholeskyMatchesLU(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	xtx := randomSPD(rng, 4)
	xty := mat.NewVecDense(4, []float64{1, -2, 3, 0.5})

	viaCholesky := SolveNormalEquations(xtx, xty, true)
	viaLU := SolveNormalEquations(xtx, xty, false)

	assert.True(t, mat.EqualApprox(viaCholesky, viaLU, 1e-10))
}

// The LU fallback intentionally does not validate singular systems: the
// result is numerically undefined but must not crash, and the conditioning
// problem is surfaced only through the diagnostic sink.
func TestSolveNormalEquationsSingularIsBestEffort(t *testing.T) {
	rec := &recorder{}
	prev := diag.Set(rec)
	defer diag.Set(prev)

	singular := mat.NewDense(2, 2, []float64{1, 1, 1, 1})
	xty := mat.NewVecDense(2, []float64{1, 1})

	assert.NotPanics(t, func() {
		SolveNormalEquations(singular, xty, false)
	})
	assert.NotEmpty(t, rec.messages)
}
