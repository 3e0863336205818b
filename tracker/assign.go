package tracker

import (
	"fmt"
)

// Match pairs a row (track) with a column (detection) of a cost matrix
type Match struct {
	Row int
	Col int
}

// assignment is the result of solving a rectangular assignment problem
type assignment struct {
	matches       []Match
	unmatchedRows []int
	unmatchedCols []int
}

// assign solves the rectangular assignment problem for the cost matrix of
// nRows x nCols.  Pairs costing more than costLimit are left unmatched.
func assign(cost [][]float64, nRows, nCols int, costLimit float64) (assignment, error) {

	var res assignment

	if nRows == 0 || nCols == 0 {
		for i := 0; i < nRows; i++ {
			res.unmatchedRows = append(res.unmatchedRows, i)
		}
		for j := 0; j < nCols; j++ {
			res.unmatchedCols = append(res.unmatchedCols, j)
		}
		return res, nil
	}

	// extend the matrix to a square of nRows+nCols so every row and column
	// can fall back to a dummy partner at half the cost limit, making any
	// real pairing above the limit more expensive than going unmatched
	n := nRows + nCols
	ext := make([][]float64, n)

	for i := range ext {
		ext[i] = make([]float64, n)

		for j := range ext[i] {
			switch {
			case i < nRows && j < nCols:
				ext[i][j] = cost[i][j]
			case i >= nRows && j >= nCols:
				ext[i][j] = 0
			default:
				ext[i][j] = costLimit / 2
			}
		}
	}

	solver := newLapSolver(ext)

	if err := solver.solve(); err != nil {
		return res, fmt.Errorf("error solving assignment: %w", err)
	}

	x, y := solver.rowSol, solver.colSol

	for i := 0; i < nRows; i++ {
		if x[i] >= 0 && x[i] < nCols {
			res.matches = append(res.matches, Match{Row: i, Col: x[i]})
		} else {
			res.unmatchedRows = append(res.unmatchedRows, i)
		}
	}

	for j := 0; j < nCols; j++ {
		if y[j] < 0 || y[j] >= nRows {
			res.unmatchedCols = append(res.unmatchedCols, j)
		}
	}

	return res, nil
}
