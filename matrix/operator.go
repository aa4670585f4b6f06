package matrix

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// RowSums sums every row of m
func RowSums(m mat.Matrix) []float64 {
	r, c := m.Dims()
	sums := make([]float64, r)
	row := make([]float64, c)
	for i := 0; i < r; i += 1 {
		mat.Row(row, i, m)
		sums[i] = floats.Sum(row)
	}
	return sums
}

// ArgMax returns the index and value of the largest element. the first
// index wins a tie, and a vector of -Inf resolves to index 0.
func ArgMax(v []float64) (int, float64) {
	if len(v) == 0 {
		panic(ErrBadShape)
	}
	i := floats.MaxIdx(v)
	return i, v[i]
}
