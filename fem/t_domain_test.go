// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/passmo/elastodyn/inp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func elemIds(elems []*Elem) (ids []int) {
	for _, e := range elems {
		ids = append(ids, e.Cell.Id)
	}
	return
}

func nodeIds(nodes []*Node) (ids []int) {
	for _, n := range nodes {
		ids = append(ids, n.Vert.Id)
	}
	return
}

func Test_domain01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("domain01. partitions and ghosts")

	sim := readBox(tst)

	// undistributed
	d, err := NewDomain(sim, 0, false)
	require.NoError(tst, err)
	chk.Int(tst, "ndof", d.Ndof, 12)
	chk.Ints(tst, "elems", elemIds(d.Elems), []int{0, 1})
	chk.Ints(tst, "owned", nodeIds(d.OwnedNodes()), []int{0, 1, 2, 3, 4, 5})
	chk.Ints(tst, "eqs of vertex 4", d.Vid2node[4].Eqs, []int{8, 9})

	// partition 0
	d0, err := NewDomain(sim, 0, true)
	require.NoError(tst, err)
	io.Pforan("%v\n", d0)
	chk.Ints(tst, "elems", elemIds(d0.Elems), []int{0, 1})
	assert.False(tst, d0.Elems[0].Ghost)
	assert.True(tst, d0.Elems[1].Ghost)
	chk.Ints(tst, "owned", nodeIds(d0.OwnedNodes()), []int{0, 1, 3, 4})
	assert.True(tst, d0.OwnsDof(2))
	assert.False(tst, d0.OwnsDof(4))

	// partition 1
	d1, err := NewDomain(sim, 1, true)
	require.NoError(tst, err)
	chk.Ints(tst, "elems", elemIds(d1.Elems), []int{1, 0})
	assert.False(tst, d1.Elems[0].Ghost)
	assert.True(tst, d1.Elems[1].Ghost)
	chk.Ints(tst, "owned", nodeIds(d1.OwnedNodes()), []int{2, 5})
	chk.Ints(tst, "nodes", nodeIds(d1.Nodes), []int{0, 1, 2, 3, 4, 5})
	chk.Int(tst, "owner of vertex 1", d1.Vid2node[1].Part, 0)
	assert.False(tst, d1.OwnsDof(2))
	assert.True(tst, d1.OwnsDof(4))
	assert.Equal(tst, "domain 1: 1 elements (+1 ghosts), 2 nodes (+4 ghosts)", d1.String())

	// every vertex has exactly one owner
	for vid := range sim.Msh.Verts {
		nown := 0
		for _, dd := range []*Domain{d0, d1} {
			if n := dd.Vid2node[vid]; n != nil && n.Own {
				nown++
			}
		}
		chk.Int(tst, io.Sf("owners of vertex %d", vid), nown, 1)
	}

	// empty partition
	_, err = NewDomain(sim, 2, true)
	assert.Error(tst, err)
}

func Test_domain02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("domain02. materials and initial conditions")

	sim := readBox(tst)
	d, err := NewDomain(sim, 0, false)
	require.NoError(tst, err)

	// default (young) and group (vel)
	e0, e1 := d.Elems[0], d.Elems[1]
	chk.Float64(tst, "ρ0", 1e-17, e0.Mat.Rho, 2000)
	chk.Float64(tst, "E0", 1e-17, e0.Mat.E, 1e7)
	chk.Float64(tst, "μ0", 1e-9, e0.Mat.Mu, 4e6)
	chk.Float64(tst, "ρ1", 1e-17, e1.Mat.Rho, 1800)
	chk.Float64(tst, "μ1", 1e-9, e1.Mat.Mu, 1800*150*150)
	chk.Float64(tst, "vp1", 1e-17, e1.Mat.Vp, 300)

	// initial state
	chk.Float64(tst, "σv", 1e-17, e0.Ini.VolStress, -100)
	chk.Float64(tst, "σv", 1e-17, e1.Ini.VolStress, 0)

	// last group wins
	sim.MatGroups = append(sim.MatGroups, &inp.MatGroup{Tag: -2, Type: "lame", Rho: 1500, Lambda: 2e6, Mu: 1e6})
	require.NoError(tst, d.SetMaterials())
	chk.Float64(tst, "ρ1", 1e-17, e1.Mat.Rho, 1500)
	chk.Float64(tst, "λ1", 1e-17, e1.Mat.Lambda, 2e6)
	chk.Float64(tst, "ρ0", 1e-17, e0.Mat.Rho, 2000)

	// invalid group
	sim.MatGroups = append(sim.MatGroups, &inp.MatGroup{Tag: -1, Type: "young", Rho: 1500, Young: -1e6, Nu: 0.3})
	assert.Error(tst, d.SetMaterials())
	sim.MatGroups = sim.MatGroups[:1]

	// initial nodal values
	sim.NodeConds = []*inp.NodeCond{{Tag: -3, U: []float64{0.1}, V: []float64{0, 0.2}, F: []float64{0, -5}}}
	d.SetIniNodes()
	n := d.Vid2node[3]
	chk.Array(tst, "u", 1e-17, n.U[:], []float64{0.1, 0, 0})
	chk.Array(tst, "uprev", 1e-17, n.Uprev[:], []float64{0.1, 0, 0})
	chk.Array(tst, "v", 1e-17, n.V[:], []float64{0, 0.2, 0})
	chk.Array(tst, "f", 1e-17, n.Fext[:], []float64{0, -5, 0})
	assert.Equal(tst, [3]bool{true, true, false}, n.FixF)
}
