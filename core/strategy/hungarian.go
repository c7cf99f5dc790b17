package strategy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/courierlab/dispatchsim/core/simerr"
)

// solveAssignment computes a minimum-cost bipartite matching over the cost
// matrix using the primal-dual shortest augmenting path method (the
// Jonker-Volgenant variant of the Hungarian algorithm). The smaller side
// is fully matched; match[i] holds the column assigned to row i, or -1
// when the row is left unmatched. Equal-cost alternatives resolve to the
// lowest column index, which keeps runs reproducible.
func solveAssignment(m *mat.Dense) ([]int, error) {
	nr, nc := m.Dims()
	if nr == 0 || nc == 0 {
		return nil, nil
	}
	if nr > nc {
		// Solve the transposed problem and invert the matching so the
		// excess rows simply stay unmatched.
		tm, err := solveAssignment(mat.DenseCopyOf(m.T()))
		if err != nil {
			return nil, err
		}
		match := newMatch(nr)
		for col, row := range tm {
			if row >= 0 {
				match[row] = col
			}
		}
		return match, nil
	}

	// Row/column potentials, 1-based per the classic formulation.
	// p[j] is the row currently matched to column j; p[0] tracks the row
	// being augmented.
	u := make([]float64, nr+1)
	v := make([]float64, nc+1)
	p := make([]int, nc+1)
	way := make([]int, nc+1)

	for i := 1; i <= nr; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, nc+1)
		used := make([]bool, nc+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}
		for steps := 0; ; steps++ {
			if steps > nc {
				return nil, fmt.Errorf("strategy: matching failed to converge for row %d: %w", i-1, simerr.ErrSolver)
			}
			used[j0] = true
			i0 := p[j0]
			delta := math.Inf(1)
			j1 := -1
			for j := 1; j <= nc; j++ {
				if used[j] {
					continue
				}
				cur := m.At(i0-1, j-1) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			if j1 < 0 || math.IsInf(delta, 1) {
				return nil, fmt.Errorf("strategy: no augmenting column for row %d: %w", i-1, simerr.ErrSolver)
			}
			for j := 0; j <= nc; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	match := newMatch(nr)
	for j := 1; j <= nc; j++ {
		if p[j] > 0 {
			match[p[j]-1] = j - 1
		}
	}
	return match, nil
}

func newMatch(n int) []int {
	match := make([]int, n)
	for i := range match {
		match[i] = -1
	}
	return match
}
