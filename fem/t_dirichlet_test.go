// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/passmo/elastodyn/lsys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallSystem returns the system [[2,-1],[-1,2]] x = [0,1] with x0 = 1 enforced by a policy
func smallSystem(tst *testing.T, m DirichletMethod, penalty float64) *lsys.Dense {
	var ls lsys.Dense
	require.NoError(tst, ls.Initialize(2, "test"))
	ls.MatrixAddValue(0, 0, 2)
	ls.MatrixAddValue(0, 1, -1)
	ls.MatrixAddValue(1, 0, -1)
	ls.MatrixAddValue(1, 1, 2)
	ls.Rhs()[1] = 1
	policy, err := NewDirichletPolicy(m, penalty)
	require.NoError(tst, err)
	policy.Apply(&ls, 0, 1)
	return &ls
}

func Test_dirichlet01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dirichlet01. names")

	for _, name := range []string{"Penalty", "WeakPenalty", "RowElimination", "RowColumnElimination"} {
		m, err := ParseDirichletMethod(name)
		require.NoError(tst, err)
		assert.Equal(tst, name, m.String())
	}
	_, err := ParseDirichletMethod("Lagrange")
	assert.Error(tst, err)
	assert.Equal(tst, "DirichletMethod(7)", DirichletMethod(7).String())
	_, err = NewDirichletPolicy(DirichletMethod(7), 1)
	assert.Error(tst, err)
}

func Test_dirichlet02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dirichlet02. eliminations")

	for _, m := range []DirichletMethod{RowElimination, RowColumnElimination} {
		ls := smallSystem(tst, m, 0)
		require.NoError(tst, ls.Solve())
		chk.Array(tst, m.String()+": x", 1e-15, ls.Solution(), []float64{1, 1})
	}

	// row-column elimination keeps symmetry
	ls := smallSystem(tst, RowColumnElimination, 0)
	chk.Float64(tst, "A01", 1e-17, ls.MatrixValue(0, 1), 0)
	chk.Float64(tst, "A10", 1e-17, ls.MatrixValue(1, 0), 0)
	chk.Float64(tst, "A00", 1e-17, ls.MatrixValue(0, 0), 2)
	chk.Array(tst, "b", 1e-17, ls.Rhs(), []float64{2, 2})

	// row elimination does not
	ls = smallSystem(tst, RowElimination, 0)
	chk.Float64(tst, "A01", 1e-17, ls.MatrixValue(0, 1), 0)
	chk.Float64(tst, "A10", 1e-17, ls.MatrixValue(1, 0), -1)
}

func Test_dirichlet03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dirichlet03. penalties")

	for _, m := range []DirichletMethod{Penalty, WeakPenalty} {
		prev := math.Inf(1)
		for _, p := range []float64{1e3, 1e4, 1e6} {
			ls := smallSystem(tst, m, p)
			require.NoError(tst, ls.Solve())
			x := ls.Solution()
			err := math.Abs(x[0] - 1)
			io.Pforan("%-12v P = %g  error = %g\n", m, p, err)

			// error ~ 1/P and decreasing
			assert.Less(tst, err, prev)
			assert.InDelta(tst, 1.0, err*p, 1e-2)
			chk.Float64(tst, "x1", 1e-3, x[1], 1)
			prev = err
		}
	}
}
