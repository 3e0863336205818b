package tracker

import (
	"errors"
	"fmt"
)

// largeCost is used as infinity when searching for minimum reduced costs.
// Pose assignment costs are pixel distances so are well below this bound.
const largeCost = 1e12

// lapSolver solves the square linear assignment problem with the
// Jonker-Volgenant shortest augmenting path algorithm for dense matrices
type lapSolver struct {
	n    int
	cost [][]float64
	// rowSol holds the column assigned to each row
	rowSol []int
	// colSol holds the row assigned to each column
	colSol []int
	// price is the dual variable of each column
	price []float64
	// free lists the rows still unassigned
	free []int
}

// newLapSolver returns a solver for the n x n cost matrix
func newLapSolver(cost [][]float64) *lapSolver {
	n := len(cost)

	return &lapSolver{
		n:      n,
		cost:   cost,
		rowSol: make([]int, n),
		colSol: make([]int, n),
		price:  make([]float64, n),
		free:   make([]int, n),
	}
}

// solve runs column reduction, two rounds of augmenting row reduction and
// then augments the rows left free.  On return every row is assigned.
func (s *lapSolver) solve() error {

	nFree := s.reduceColumns()

	for round := 0; round < 2 && nFree > 0; round++ {
		nFree = s.reduceRows(nFree)
	}

	if nFree == 0 {
		return nil
	}

	if err := s.augment(nFree); err != nil {
		return fmt.Errorf("augmentation failed: %w", err)
	}

	return nil
}

// reduceColumns assigns each column to its cheapest row and transfers the
// reduction of rows assigned a single column.  Returns the number of rows
// left free.
func (s *lapSolver) reduceColumns() int {

	n := s.n
	unique := make([]bool, n)

	for i := 0; i < n; i++ {
		s.rowSol[i] = -1
		s.price[i] = largeCost
		s.colSol[i] = 0
		unique[i] = true
	}

	for i := 0; i < n; i++ {
		for j, c := range s.cost[i] {
			if c < s.price[j] {
				s.price[j] = c
				s.colSol[j] = i
			}
		}
	}

	// iterate columns in reverse so the lowest column wins a shared row
	for j := n - 1; j >= 0; j-- {
		i := s.colSol[j]

		if s.rowSol[i] < 0 {
			s.rowSol[i] = j
			continue
		}

		unique[i] = false
		s.colSol[j] = -1
	}

	nFree := 0

	for i := 0; i < n; i++ {
		if s.rowSol[i] < 0 {
			s.free[nFree] = i
			nFree++
			continue
		}

		if !unique[i] {
			continue
		}

		j := s.rowSol[i]
		minVal := largeCost

		for j2 := 0; j2 < n; j2++ {
			if j2 == j {
				continue
			}

			if c := s.cost[i][j2] - s.price[j2]; c < minVal {
				minVal = c
			}
		}

		s.price[j] -= minVal
	}

	return nFree
}

// reduceRows performs augmenting row reduction over the free rows and
// returns the number of rows still free afterwards
func (s *lapSolver) reduceRows(nFree int) int {

	n := s.n
	current := 0
	newFree := 0
	iterations := 0

	for current < nFree {

		iterations++
		row := s.free[current]
		current++

		// find the lowest and second lowest reduced cost of the row
		j1 := 0
		u1 := s.cost[row][0] - s.price[0]
		j2 := -1
		u2 := largeCost

		for j := 1; j < n; j++ {
			c := s.cost[row][j] - s.price[j]

			if c >= u2 {
				continue
			}

			if c >= u1 {
				u2 = c
				j2 = j
				continue
			}

			u2 = u1
			u1 = c
			j2 = j1
			j1 = j
		}

		i0 := s.colSol[j1]
		lowered := s.price[j1] - (u2 - u1)
		lowers := lowered < s.price[j1]

		switch {
		case iterations < current*n:
			if lowers {
				s.price[j1] = lowered
			} else if i0 >= 0 && j2 >= 0 {
				j1 = j2
				i0 = s.colSol[j2]
			}

			if i0 >= 0 {
				if lowers {
					// retry the displaced row straight away
					current--
					s.free[current] = i0
				} else {
					s.free[newFree] = i0
					newFree++
				}
			}

		case i0 >= 0:
			s.free[newFree] = i0
			newFree++
		}

		s.rowSol[row] = j1
		s.colSol[j1] = row
	}

	return newFree
}

// shortestPath runs one iteration of the modified Dijkstra search from the
// start row and returns the free column the path ends at.  The predecessor
// row of every column on the path is written to pred.
func (s *lapSolver) shortestPath(start int, pred []int) int {

	n := s.n
	lo, hi := 0, 0
	end := -1
	ready := 0
	cols := make([]int, n)
	dist := make([]float64, n)

	for j := 0; j < n; j++ {
		cols[j] = j
		pred[j] = start
		dist[j] = s.cost[start][j] - s.price[j]
	}

	for end == -1 {
		// scan list exhausted, collect the next columns at minimum distance
		if lo == hi {
			ready = lo
			hi = s.collectMin(lo, dist, cols)

			for k := lo; k < hi; k++ {
				if j := cols[k]; s.colSol[j] < 0 {
					end = j
				}
			}
		}

		if end == -1 {
			end = s.scan(&lo, &hi, dist, cols, pred)
		}
	}

	minDist := dist[cols[lo]]

	for k := 0; k < ready; k++ {
		j := cols[k]
		s.price[j] += dist[j] - minDist
	}

	return end
}

// collectMin moves the columns from lo onwards with the minimum distance to
// the front of the todo range and returns the new end of the scan range
func (s *lapSolver) collectMin(lo int, dist []float64, cols []int) int {

	hi := lo + 1
	minDist := dist[cols[lo]]

	for k := hi; k < s.n; k++ {
		j := cols[k]

		if dist[j] > minDist {
			continue
		}

		if dist[j] < minDist {
			hi = lo
			minDist = dist[j]
		}

		cols[k] = cols[hi]
		cols[hi] = j
		hi++
	}

	return hi
}

// scan relaxes the todo columns through each column on the scan list.
// Returns a free column reached at minimum distance or -1.
func (s *lapSolver) scan(lo, hi *int, dist []float64, cols, pred []int) int {

	for *lo != *hi {
		j := cols[*lo]
		*lo++

		i := s.colSol[j]
		minDist := dist[j]
		h := s.cost[i][j] - s.price[j] - minDist

		for k := *hi; k < s.n; k++ {
			j = cols[k]
			reduced := s.cost[i][j] - s.price[j] - h

			if reduced >= dist[j] {
				continue
			}

			dist[j] = reduced
			pred[j] = i

			if reduced != minDist {
				continue
			}

			if s.colSol[j] < 0 {
				return j
			}

			cols[k] = cols[*hi]
			cols[*hi] = j
			*hi++
		}
	}

	return -1
}

// augment assigns each remaining free row along its shortest augmenting
// path
func (s *lapSolver) augment(nFree int) error {

	pred := make([]int, s.n)

	for _, row := range s.free[:nFree] {

		j := s.shortestPath(row, pred)

		if j < 0 || j >= s.n {
			return fmt.Errorf("augmenting path ended at invalid column %d", j)
		}

		steps := 0

		for i := -1; i != row; {
			i = pred[j]
			s.colSol[j] = i
			j, s.rowSol[i] = s.rowSol[i], j
			steps++

			if steps >= s.n {
				return errors.New("augmenting path did not return to its row")
			}
		}
	}

	return nil
}
