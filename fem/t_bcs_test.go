// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/passmo/elastodyn/inp"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_bcs01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bcs01. resolved masks of box")

	sim, err := inp.ReadSim("data/box.sim", "", false)
	require.NoError(tst, err)
	dom, err := NewDomain(sim, 0, false)
	require.NoError(tst, err)
	bcs, err := NewBcManager(dom, nil)
	require.NoError(tst, err)

	l := bcs.Listing()
	io.Pf("%s", l)
	g := goldie.New(tst)
	g.Assert(tst, "box_listing", []byte(l))

	// flags
	for _, vid := range []int{0, 1, 2} {
		n := dom.Vid2node[vid]
		assert.Equal(tst, [3]bool{true, true, false}, n.FixU, "vertex %d", vid)
		assert.Equal(tst, [3]bool{}, n.FixA, "vertex %d", vid)
	}
	n := dom.Vid2node[3]
	assert.Equal(tst, [3]bool{true, false, false}, n.FixU)
	assert.Equal(tst, [3]bool{true, false, false}, n.FixA)
	assert.Equal(tst, [3]bool{}, n.FixV)
	for _, vid := range []int{4, 5} {
		assert.Equal(tst, [3]bool{}, dom.Vid2node[vid].FixU)
	}
}

func Test_bcs02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bcs02. surface versus point conditions. curves")

	msh := unitSquare(tst, []int{-10, 0, -12, 0})
	msh.Verts[2].Tag = -2
	require.NoError(tst, msh.Init())
	sim := newSim(tst, msh)
	five, half, one := 5.0, 0.5, 1.0
	sim.DirichletSurf = []*inp.DirichletCond{
		{Tag: -10, A: &inp.BcValue{X: &five, Y: &one, Curve: "data/acc.crv", Xaxis: true}},
	}
	sim.DirichletPoint = []*inp.DirichletCond{
		{Tag: -2, V: &inp.BcValue{Y: &half}},
	}
	sim.Neumann = []*inp.NeumannCond{
		{Tag: -12, T: inp.BcValue{Curve: "data/acc.crv", Yaxis: true}},
	}
	dom := newDom(tst, sim)
	curves := make(Curves)
	bcs, err := NewBcManager(dom, curves)
	require.NoError(tst, err)
	require.Len(tst, bcs.Dirichlet, 2)
	assert.Len(tst, curves, 1)

	// surface: imposed acceleration only
	surf := bcs.Dirichlet[0]
	assert.False(tst, surf.Point)
	assert.Equal(tst, [3]bool{}, surf.Coupled)
	assert.Equal(tst, [3]bool{true, true, false}, surf.Qty[QtyA].Mask)
	for _, n := range surf.Nodes {
		assert.Equal(tst, [3]bool{}, n.FixU)
		assert.Equal(tst, [3]bool{true, true, false}, n.FixA)
	}

	// point: imposed velocity => imposed displacement
	pt := bcs.Dirichlet[1]
	assert.True(tst, pt.Point)
	assert.Equal(tst, [3]bool{false, true, false}, pt.Coupled)
	require.Len(tst, pt.Nodes, 1)
	assert.Equal(tst, [3]bool{false, true, false}, pt.Nodes[0].FixU)
	assert.Equal(tst, [3]bool{false, true, false}, pt.Nodes[0].FixV)

	// curve overrides constant
	q := &surf.Qty[QtyA]
	chk.Float64(tst, "ax(0.5)", 1e-15, q.Value(0.5, 0), 1)
	chk.Float64(tst, "ay(0.5)", 1e-15, q.Value(0.5, 1), 1)

	// values
	var dc DynCoefs
	require.NoError(tst, dc.Init(&sim.Solver))
	require.NoError(tst, dc.Calc(0.1))
	bcs.ApplyDirichlet(0.5, &dc)
	bcs.ApplyNeumann(1.0)
	for _, n := range surf.Nodes {
		chk.Array(tst, "a", 1e-15, n.A[:], []float64{1, 1, 0})
		chk.Array(tst, "u", 1e-17, n.U[:], []float64{0, 0, 0})
	}
	n := pt.Nodes[0]
	chk.Float64(tst, "vy", 1e-17, n.V[1], 0.5)
	chk.Float64(tst, "uy", 1e-15, n.U[1], dc.Beta*0.1*0.5/dc.Gamma)
	chk.Float64(tst, "ux", 1e-17, n.U[0], 0)
	require.Len(tst, bcs.Neumann, 1)
	for _, f := range bcs.Neumann[0].Faces {
		chk.Array(tst, "t", 1e-15, f.Trac[:], []float64{0, -1, 0})
	}
}

func Test_bcs03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bcs03. errors")

	msh := unitSquare(tst, []int{-10, 0, 0, 0})
	sim := newSim(tst, msh)
	sim.DirichletSurf = []*inp.DirichletCond{
		{Tag: -10, U: &inp.BcValue{Curve: "data/nonexistent.crv", Xaxis: true}},
	}
	dom := newDom(tst, sim)
	_, err := NewBcManager(dom, nil)
	assert.Error(tst, err)

	// unknown tags select nothing
	sim.DirichletSurf = []*inp.DirichletCond{{Tag: -99, U: &inp.BcValue{Curve: ""}}}
	bcs, err := NewBcManager(dom, nil)
	require.NoError(tst, err)
	assert.Empty(tst, bcs.Dirichlet[0].Nodes)
}

func Test_bcs04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("bcs04. imposed nodal force at point")

	msh := unitSquare(tst, nil)
	msh.Verts[2].Tag = -2
	require.NoError(tst, msh.Init())
	sim := newSim(tst, msh)
	ten := 10.0
	sim.DirichletPoint = []*inp.DirichletCond{
		{Tag: -2, F: &inp.BcValue{X: &ten}},
	}
	dom := newDom(tst, sim)
	bcs, err := NewBcManager(dom, nil)
	require.NoError(tst, err)
	require.Len(tst, bcs.Dirichlet, 1)

	// force does not impose displacement
	pt := bcs.Dirichlet[0]
	assert.Equal(tst, [3]bool{}, pt.Coupled)
	require.Len(tst, pt.Nodes, 1)
	n := pt.Nodes[0]
	assert.Equal(tst, [3]bool{}, n.FixU)
	assert.Equal(tst, [3]bool{true, false, false}, n.FixF)
}
