package poseidon

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethsnarks-go/poseidon/field"
)

// gaussianInvertible reports whether the n x n matrix m (row-major) is
// invertible, by running Gaussian elimination with pivoting and checking
// that every pivot is nonzero.
func gaussianInvertible(m []field.Fe, n int) bool {
	a := make([]field.Fe, len(m))
	copy(a, m)

	row := func(i int) []field.Fe { return a[i*n : i*n+n] }

	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < n; r++ {
			if !row(r)[col].IsZero() {
				pivot = r
				break
			}
		}
		if pivot == -1 {
			return false
		}
		if pivot != col {
			tmp := make([]field.Fe, n)
			copy(tmp, row(pivot))
			copy(row(pivot), row(col))
			copy(row(col), tmp)
		}

		inv := field.Inverse(row(col)[col])
		for j := 0; j < n; j++ {
			row(col)[j] = field.Mul(row(col)[j], inv)
		}

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := row(r)[col]
			if factor.IsZero() {
				continue
			}
			for j := 0; j < n; j++ {
				row(r)[j] = field.Sub(row(r)[j], field.Mul(factor, row(col)[j]))
			}
		}
	}
	return true
}

// submatrix extracts the entries of m (t x t, row-major) at the given row
// and column index sets, both of length size.
func submatrix(m []field.Fe, t int, rows, cols []int) []field.Fe {
	size := len(rows)
	out := make([]field.Fe, size*size)
	for i, r := range rows {
		for j, c := range cols {
			out[i*size+j] = m[r*t+c]
		}
	}
	return out
}

// subsets yields every size-element subset of [0,n), as ascending index
// slices, via a standard combination-generation recursion.
func subsets(n, size int, emit func([]int)) {
	combo := make([]int, size)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == size {
			cp := make([]int, size)
			copy(cp, combo)
			emit(cp)
			return
		}
		for i := start; i < n; i++ {
			combo[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
}

func TestMDSMatrixIsInvertible(t *testing.T) {
	c := GetConstants(Poseidon128T, Poseidon128F, Poseidon128P)
	require.True(t, gaussianInvertible(c.M, Poseidon128T), "full MDS matrix must be invertible")
}

// TestMDSEverySquareSubmatrixIsInvertible checks the MDS property directly:
// every square submatrix of M, formed by any choice of equal-size row and
// column index sets, must be invertible.
func TestMDSEverySquareSubmatrixIsInvertible(t *testing.T) {
	c := GetConstants(Poseidon128T, Poseidon128F, Poseidon128P)

	for size := 1; size <= Poseidon128T; size++ {
		subsets(Poseidon128T, size, func(rows []int) {
			subsets(Poseidon128T, size, func(cols []int) {
				sub := submatrix(c.M, Poseidon128T, rows, cols)
				require.True(t, gaussianInvertible(sub, size),
					"submatrix rows=%v cols=%v of M must be invertible", rows, cols)
			})
		})
	}
}
