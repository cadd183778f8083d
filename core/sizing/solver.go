package sizing

import (
	"fmt"
	"math"

	"github.com/lanl/clp"
	"gonum.org/v1/gonum/mat"

	"github.com/Matze99/solar-sim/core/model"
)

// SolverError reports an infeasible, unbounded or numerically failed solve.
// The solver's raw diagnostic is preserved.
type SolverError struct {
	Err error
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("lp solve failed: %v", e.Err)
}

func (e *SolverError) Unwrap() error { return e.Err }

// solveCLP hands the standard-form program to COIN-OR CLP. The full-year
// model has on the order of 10^5 rows and columns, so the constraints go
// in column by column in packed sparse form; a solver that factors a
// dense basis cannot handle it.
func solveCLP(c []float64, a mat.Matrix, b []float64) (float64, []float64, error) {
	sm, ok := a.(*sparseMatrix)
	if !ok {
		return 0, nil, fmt.Errorf("unsupported constraint matrix %T", a)
	}
	cols := make([][]clp.Nonzero, sm.cols)
	for i, r := range sm.rows {
		for j, v := range r {
			cols[j] = append(cols[j], clp.Nonzero{Index: i, Value: v})
		}
	}
	pm := clp.NewPackedMatrix()
	for _, col := range cols {
		pm.AppendColumn(col)
	}
	colBounds := make([]clp.Bounds, sm.cols)
	for j := range colBounds {
		colBounds[j] = clp.Bounds{Lower: 0, Upper: math.Inf(1)}
	}
	rowBounds := make([]clp.Bounds, len(b))
	for i, rhs := range b {
		rowBounds[i] = clp.Bounds{Lower: rhs, Upper: rhs}
	}
	simp := clp.NewSimplex()
	simp.LoadProblem(pm, colBounds, c, rowBounds, nil)
	simp.SetOptimizationDirection(clp.Minimize)
	if status := simp.Primal(clp.NoValuesPass, clp.NoStartFinishOptions); status != clp.Optimal {
		return 0, nil, fmt.Errorf("clp finished with status %d", status)
	}
	return simp.ObjectiveValue(), simp.PrimalColumnSolution(), nil
}

// lpSolve points to the function used to solve the LP. Tests override it to
// inject crafted solutions or simulated solver failures.
var lpSolve = solveCLP

// Solve hands the assembled model to the LP solver and extracts the solved
// capacities, aggregates and hourly series.
func (m *Model) Solve() (*model.SizingResult, error) {
	obj, x, err := lpSolve(m.problem.c, m.problem.matrix(), m.problem.rhs())
	if err != nil {
		return nil, &SolverError{Err: err}
	}
	return m.extract(obj, x), nil
}
