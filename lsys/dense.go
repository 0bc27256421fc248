// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package lsys implements linear systems for FE analyses
package lsys

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// Reducer sums buffers across processors; e.g. MPI AllReduceSum
type Reducer func(x []float64)

// Dense implements a linear system A x = b with DOK storage and a dense LU solver
//  If a Reducer is given, each processor holds only its rows and the
//  contributions are summed before solving. In this case, the row and
//  row-column eliminations are recorded and applied after the reduction.
type Dense struct {

	// options
	Label   string  // label; e.g. "displacement"
	Reducer Reducer // sums partial systems of all processors; may be nil

	// counters
	Nresets int // number of calls to Reset
	Ninits  int // number of calls to Initialize
	Nclears int // number of calls to ClearValues
	Nsolves int // number of calls to Solve

	// system
	ndof int         // number of equations
	init bool        // initialized
	a    *sparse.DOK // matrix
	b    []float64   // right-hand side
	x    []float64   // solution

	// eliminations to be applied after reduction
	elims []elimination
}

// elimination holds a recorded elimination
type elimination struct {
	eq     int
	value  float64
	column bool
}

// Reset clears everything, including the structure
func (o *Dense) Reset() {
	o.Nresets++
	o.ndof = 0
	o.init = false
	o.a = nil
	o.b = nil
	o.x = nil
	o.elims = nil
}

// Initialize allocates the system
func (o *Dense) Initialize(ndof int, label string) (err error) {
	if ndof < 1 {
		return chk.Err("number of equations must be positive. %d is invalid", ndof)
	}
	o.Ninits++
	o.Label = label
	o.ndof = ndof
	o.a = sparse.NewDOK(ndof, ndof)
	o.b = make([]float64, ndof)
	o.x = make([]float64, ndof)
	o.elims = nil
	o.init = true
	return
}

// IsInitialized tells whether the system has been initialized
func (o *Dense) IsInitialized() bool {
	return o.init
}

// Ndof returns the number of equations
func (o *Dense) Ndof() int {
	return o.ndof
}

// ClearValues zeroes all values but keeps the structure
func (o *Dense) ClearValues() {
	o.Nclears++
	o.a.DoNonZero(func(i, j int, v float64) {
		o.a.Set(i, j, 0)
	})
	for i := 0; i < o.ndof; i++ {
		o.b[i] = 0
		o.x[i] = 0
	}
	o.elims = o.elims[:0]
}

// MatrixAddValue adds v to A[i][j]
func (o *Dense) MatrixAddValue(i, j int, v float64) {
	o.a.Set(i, j, o.a.At(i, j)+v)
}

// MatrixSetValue sets A[i][j] = v
func (o *Dense) MatrixSetValue(i, j int, v float64) {
	o.a.Set(i, j, v)
}

// MatrixValue returns A[i][j]
func (o *Dense) MatrixValue(i, j int) float64 {
	return o.a.At(i, j)
}

// EliminateRow zeroes row eq, sets the diagonal to 1 and the right-hand side to value
func (o *Dense) EliminateRow(eq int, value float64) {
	if o.Reducer != nil {
		o.elims = append(o.elims, elimination{eq, value, false})
		return
	}
	o.eliminateRow(eq, value)
}

// EliminateRowColumn moves column eq to the right-hand side and zeroes the off-diagonal
// entries of row and column eq. The diagonal is kept (one if zero) and the right-hand side
// is set to diagonal times value
func (o *Dense) EliminateRowColumn(eq int, value float64) {
	if o.Reducer != nil {
		o.elims = append(o.elims, elimination{eq, value, true})
		return
	}
	o.eliminateRowColumn(eq, value)
}

// Rhs returns the right-hand side vector
func (o *Dense) Rhs() []float64 {
	return o.b
}

// Solution returns the solution vector
func (o *Dense) Solution() []float64 {
	return o.x
}

// Matrix returns a dense copy of the matrix
func (o *Dense) Matrix() *mat.Dense {
	return o.a.ToDense()
}

// Solve reduces the system, if required, and solves it
func (o *Dense) Solve() (err error) {
	if !o.init {
		return chk.Err("linear system %q is not initialized", o.Label)
	}
	o.Nsolves++

	// reduce
	if o.Reducer != nil {
		o.reduce()
	}

	// factorize
	A := o.a.ToDense()
	var lu mat.LU
	lu.Factorize(A)

	// solve
	var x mat.VecDense
	err = lu.SolveVecTo(&x, false, mat.NewVecDense(o.ndof, o.b))
	if err != nil {
		if cond, ok := err.(mat.Condition); !ok || math.IsInf(float64(cond), 1) {
			return chk.Err("cannot solve linear system %q:\n%v", o.Label, err)
		}
		err = nil // ill-conditioning is expected with penalty numbers
	}
	for i := 0; i < o.ndof; i++ {
		o.x[i] = x.AtVec(i)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func (o *Dense) eliminateRow(eq int, value float64) {
	o.a.DoNonZero(func(i, j int, v float64) {
		if i == eq {
			o.a.Set(i, j, 0)
		}
	})
	o.a.Set(eq, eq, 1)
	o.b[eq] = value
}

func (o *Dense) eliminateRowColumn(eq int, value float64) {
	o.a.DoNonZero(func(i, j int, v float64) {
		if j == eq && i != eq {
			o.b[i] -= v * value
			o.a.Set(i, j, 0)
		}
		if i == eq && j != eq {
			o.a.Set(i, j, 0)
		}
	})
	d := o.a.At(eq, eq)
	if d == 0 {
		d = 1
		o.a.Set(eq, eq, d)
	}
	o.b[eq] = d * value
}

// reduce sums the matrix and right-hand side of all processors and applies the eliminations
func (o *Dense) reduce() {
	n := o.ndof
	buf := make([]float64, n*n+n)
	o.a.DoNonZero(func(i, j int, v float64) {
		buf[i*n+j] = v
	})
	copy(buf[n*n:], o.b)
	o.Reducer(buf)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if v := buf[i*n+j]; v != 0 || o.a.At(i, j) != 0 {
				o.a.Set(i, j, v)
			}
		}
	}
	copy(o.b, buf[n*n:])

	// eliminations of all processors
	elims := make([]float64, 3*n)
	for _, e := range o.elims {
		elims[3*e.eq] = 1
		elims[3*e.eq+1] = e.value
		if e.column {
			elims[3*e.eq+2] = 1
		}
	}
	o.Reducer(elims)
	o.elims = o.elims[:0]
	for eq := 0; eq < n; eq++ {
		if elims[3*eq] > 0 {
			if elims[3*eq+2] > 0 {
				o.eliminateRowColumn(eq, elims[3*eq+1])
			} else {
				o.eliminateRow(eq, elims[3*eq+1])
			}
		}
	}
}
