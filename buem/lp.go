package buem

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// ErrInfeasible is returned by a Backend when no point satisfies the
// constraints. The horizon optimizer translates it into a
// SolverInfeasibleError carrying the window position.
var ErrInfeasible = errors.New("linear program is infeasible")

// LinearProgram is a minimization problem in general form:
//
//	min  c . x
//	s.t. A_eq x  = b_eq
//	     A_ub x <= b_ub
//	     lo <= x <= hi   (per variable, infinities allowed)
//
// Rows are accumulated by the caller; the backend owns the conversion to
// whatever form its solver wants.
type LinearProgram struct {
	n_var int

	c []float64

	eq_rows [][]float64
	eq_rhs  []float64

	ub_rows [][]float64
	ub_rhs  []float64

	lo []float64
	hi []float64
}

// NewLinearProgram constructs a program over n variables with zero cost and
// unbounded variables.
func NewLinearProgram(n int) *LinearProgram {
	p := &LinearProgram{
		n_var: n,
		c:     make([]float64, n),
		lo:    make([]float64, n),
		hi:    make([]float64, n),
	}
	for j := 0; j < n; j++ {
		p.lo[j] = math.Inf(-1)
		p.hi[j] = math.Inf(1)
	}
	return p
}

// NumVariables returns the number of decision variables.
func (p *LinearProgram) NumVariables() int { return p.n_var }

// SetCost sets the objective coefficient of variable j.
func (p *LinearProgram) SetCost(j int, c float64) { p.c[j] = c }

// SetBounds sets the box bounds of variable j. Infinities leave a side open.
func (p *LinearProgram) SetBounds(j int, lo, hi float64) {
	p.lo[j] = lo
	p.hi[j] = hi
}

// AddEqualityRow appends the constraint coeffs . x = rhs. The coefficient
// slice is copied.
func (p *LinearProgram) AddEqualityRow(coeffs []float64, rhs float64) {
	row := make([]float64, p.n_var)
	copy(row, coeffs)
	p.eq_rows = append(p.eq_rows, row)
	p.eq_rhs = append(p.eq_rhs, rhs)
}

// AddInequalityRow appends the constraint coeffs . x <= rhs. The coefficient
// slice is copied.
func (p *LinearProgram) AddInequalityRow(coeffs []float64, rhs float64) {
	row := make([]float64, p.n_var)
	copy(row, coeffs)
	p.ub_rows = append(p.ub_rows, row)
	p.ub_rhs = append(p.ub_rhs, rhs)
}

// Backend solves linear programs. It is injected into the horizon optimizer
// so an external solver can replace the built-in simplex.
type Backend interface {
	// Solve returns the minimizing point in the original variables, or
	// ErrInfeasible when the constraints exclude every point.
	Solve(p *LinearProgram) ([]float64, error)
}

// SimplexBackend solves the program with the dense simplex method.
type SimplexBackend struct {
	// Tol is the pivot tolerance passed through to the solver. Zero picks
	// the solver default.
	Tol float64
}

// NewSimplexBackend returns a backend with default tolerance.
func NewSimplexBackend() *SimplexBackend { return &SimplexBackend{} }

/*
Solve the program with the dense simplex method.

Args:

	p: the program in general form

Returns:

	minimizing point in the original variables, [n_var]

Notes:

	The simplex wants standard form (A x = b, x >= 0), so each variable is
	shifted by its finite lower bound, finite upper bounds become slack
	rows, and every inequality row gets a slack variable. Unbounded-below
	variables are not supported; the horizon optimizer never produces one.
*/
func (s *SimplexBackend) Solve(p *LinearProgram) ([]float64, error) {
	for j := 0; j < p.n_var; j++ {
		if math.IsInf(p.lo[j], -1) {
			return nil, fmt.Errorf("variable %d has no lower bound", j)
		}
	}

	n_hi := 0
	for j := 0; j < p.n_var; j++ {
		if !math.IsInf(p.hi[j], 1) {
			n_hi++
		}
	}

	m := len(p.eq_rows) + len(p.ub_rows) + n_hi
	n := p.n_var + len(p.ub_rows) + n_hi

	a := mat.NewDense(m, n, nil)
	b := make([]float64, m)
	c := make([]float64, n)

	// shifted objective: min c.(y + lo) differs from min c.y by a constant
	copy(c, p.c)

	row := 0
	for i, r := range p.eq_rows {
		rhs := p.eq_rhs[i]
		for j, v := range r {
			a.Set(row, j, v)
			rhs -= v * p.lo[j]
		}
		b[row] = rhs
		row++
	}

	slack := p.n_var
	for i, r := range p.ub_rows {
		rhs := p.ub_rhs[i]
		for j, v := range r {
			a.Set(row, j, v)
			rhs -= v * p.lo[j]
		}
		a.Set(row, slack, 1.0)
		b[row] = rhs
		slack++
		row++
	}

	for j := 0; j < p.n_var; j++ {
		if math.IsInf(p.hi[j], 1) {
			continue
		}
		a.Set(row, j, 1.0)
		a.Set(row, slack, 1.0)
		b[row] = p.hi[j] - p.lo[j]
		slack++
		row++
	}

	_, y, err := lp.Simplex(c, a, b, s.Tol, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return nil, ErrInfeasible
		}
		return nil, fmt.Errorf("simplex: %w", err)
	}

	x := make([]float64, p.n_var)
	for j := 0; j < p.n_var; j++ {
		x[j] = y[j] + p.lo[j]
	}
	return x, nil
}
