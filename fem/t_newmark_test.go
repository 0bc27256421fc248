// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/passmo/elastodyn/inp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_newmark01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("newmark01. coefficients")

	var dat inp.SolverData
	dat.SetDefault()
	var dc DynCoefs
	require.NoError(tst, dc.Init(&dat))
	require.NoError(tst, dc.Calc(0.1))
	chk.Float64(tst, "cm", 1e-12, dc.Cm, 400)
	chk.Float64(tst, "ck", 1e-17, dc.Ck, 1)
	chk.Float64(tst, "c1", 1e-13, dc.C1, 20)
	chk.Float64(tst, "c2", 1e-17, dc.C2, 0)
	chk.Float64(tst, "c3", 1e-15, dc.C3, 1)
	assert.Error(tst, dc.Calc(0))

	// generalized-α coefficients
	dat.Alfa, dat.AlfaM, dat.AlfaF = true, 0.1, 0.1
	require.NoError(tst, dc.Init(&dat))
	require.NoError(tst, dc.Calc(0.1))
	chk.Float64(tst, "γ", 1e-15, dc.Gamma, 0.5)
	chk.Float64(tst, "β", 1e-15, dc.Beta, 0.5)
	chk.Float64(tst, "cm", 1e-12, dc.Cm, 180)
	chk.Float64(tst, "ck", 1e-15, dc.Ck, 0.9)
	chk.Float64(tst, "c1", 1e-13, dc.C1, 9)

	// invalid
	dat.AlfaM, dat.AlfaF = 0, 0.1
	assert.Error(tst, dc.Init(&dat))
	dat.Alfa = false
	dat.Beta = 0
	assert.Error(tst, dc.Init(&dat))
	dat.Beta, dat.Gamma = 0.25, 0.4
	assert.Error(tst, dc.Init(&dat))
}

func Test_newmark02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("newmark02. update")

	var dat inp.SolverData
	dat.SetDefault()
	var dc DynCoefs
	require.NoError(tst, dc.Init(&dat))
	require.NoError(tst, dc.Calc(0.1))

	newNode := func() *Node {
		n := &Node{Vert: &inp.Vert{}}
		n.Uprev, n.Vprev, n.Aprev = [3]float64{1}, [3]float64{2}, [3]float64{3}
		return n
	}

	// solved displacement
	n := newNode()
	n.U[0] = 1.5
	require.NoError(tst, NewmarkUpdate([]*Node{n}, 1, &dc))
	chk.Float64(tst, "a", 1e-11, n.A[0], 117)
	chk.Float64(tst, "v", 1e-12, n.V[0], 8)
	chk.Array(tst, "uprev", 1e-17, n.Uprev[:], n.U[:])
	chk.Array(tst, "vprev", 1e-17, n.Vprev[:], n.V[:])
	chk.Array(tst, "aprev", 1e-17, n.Aprev[:], n.A[:])

	// imposed acceleration => displacement
	n = newNode()
	n.FixA[0], n.A[0] = true, 4
	require.NoError(tst, NewmarkUpdate([]*Node{n}, 1, &dc))
	chk.Float64(tst, "a", 1e-17, n.A[0], 4)
	chk.Float64(tst, "u", 1e-14, n.U[0], 1.2175)
	chk.Float64(tst, "v", 1e-14, n.V[0], 2.35)

	// imposed velocity is kept
	n = newNode()
	n.FixV[0], n.V[0] = true, 7
	n.U[0] = 1.5
	require.NoError(tst, NewmarkUpdate([]*Node{n}, 1, &dc))
	chk.Float64(tst, "v", 1e-17, n.V[0], 7)
	chk.Float64(tst, "a", 1e-11, n.A[0], 117)

	// the displacement derived from an imposed acceleration is the same
	n = newNode()
	chk.Float64(tst, "u(a)", 1e-14, dc.DisplFromAcc(n, 0, 4), 1.2175)
	chk.Float64(tst, "a(v)", 1e-13, dc.AccFromVel(n, 0, 2.35), 4)

	// generalized-α
	dc.Alfa = true
	err := NewmarkUpdate([]*Node{newNode()}, 1, &dc)
	assert.True(tst, errors.Is(err, ErrAlphaUnimplemented))
}
