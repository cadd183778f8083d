package sizing

import "gonum.org/v1/gonum/mat"

// problem accumulates a standard-form linear program: minimize c·x subject
// to A·x = b with x ≥ 0. Inequalities are added with an explicit slack
// column so the whole system stays in equality form for the simplex solver.
type problem struct {
	c    []float64
	rows []row
}

type row struct {
	coef map[int]float64
	rhs  float64
}

// newVar appends a variable with the given objective coefficient and
// returns its column index.
func (p *problem) newVar(cost float64) int {
	p.c = append(p.c, cost)
	return len(p.c) - 1
}

// addEq appends the equality Σ coef[i]·x[i] = rhs.
func (p *problem) addEq(coef map[int]float64, rhs float64) {
	p.rows = append(p.rows, row{coef: coef, rhs: rhs})
}

// addLE appends Σ coef[i]·x[i] ≤ rhs by introducing a zero-cost slack.
func (p *problem) addLE(coef map[int]float64, rhs float64) {
	slack := p.newVar(0)
	coef[slack] = 1
	p.addEq(coef, rhs)
}

// fix pins a single variable to value.
func (p *problem) fix(col int, value float64) {
	p.addEq(map[int]float64{col: 1}, value)
}

// matrix materializes the constraint rows as a sparse mat.Matrix. Dense
// storage is out of the question here: a full-year model has on the order
// of 10^5 columns and 10^5 rows.
func (p *problem) matrix() mat.Matrix {
	m := &sparseMatrix{rows: make([]map[int]float64, len(p.rows)), cols: len(p.c)}
	for i, r := range p.rows {
		m.rows[i] = r.coef
	}
	return m
}

// rhs collects the right-hand sides in row order.
func (p *problem) rhs() []float64 {
	b := make([]float64, len(p.rows))
	for i, r := range p.rows {
		b[i] = r.rhs
	}
	return b
}

// sparseMatrix implements mat.Matrix over per-row coefficient maps.
type sparseMatrix struct {
	rows []map[int]float64
	cols int
}

func (m *sparseMatrix) Dims() (int, int) { return len(m.rows), m.cols }

func (m *sparseMatrix) At(i, j int) float64 { return m.rows[i][j] }

func (m *sparseMatrix) T() mat.Matrix { return mat.Transpose{Matrix: m} }
