package leastsquares

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// recorder is a diag.Logger capturing warnings for assertions.
type recorder struct {
	messages []string
}

func (r *recorder) Logf(format string, args ...any) {
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

func randomMatrix(rng *rand.Rand, m, n int) *mat.Dense {
	d := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			d.Set(i, j, rng.NormFloat64())
		}
	}

	return d
}

// linearDataset generates y = Xw + noiseScale·ε for a fixed coefficient
// vector w.
func linearDataset(rng *rand.Rand, n int, w []float64, noiseScale float64) (*mat.VecDense, *mat.Dense) {
	k := len(w)
	x := randomMatrix(rng, n, k)

	y := mat.NewVecDense(n, nil)
	y.MulVec(x, mat.NewVecDense(k, w))
	for i := 0; i < n; i++ {
		y.SetVec(i, y.AtVec(i)+noiseScale*rng.NormFloat64())
	}

	return y, x
}

// closedFormOLS computes (XᵗX)⁻¹Xᵗy directly.
func closedFormOLS(y *mat.VecDense, x *mat.Dense) *mat.VecDense {
	_, k := x.Dims()

	xtx := mat.NewDense(k, k, nil)
	xtx.Mul(x.T(), x)
	xty := mat.NewVecDense(k, nil)
	xty.MulVec(x.T(), y)

	var inv mat.Dense
	if err := inv.Inverse(xtx); err != nil {
		panic(err)
	}
	coef := mat.NewVecDense(k, nil)
	coef.MulVec(&inv, xty)

	return coef
}
