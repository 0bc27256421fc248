// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/passmo/elastodyn/inp"
	"github.com/stretchr/testify/require"
)

func verbose() {
	chk.Verbose = true
}

// newMesh allocates a one-partition mesh
//  X     -- [nverts] coordinates
//  cells -- [ncells] vertex ids
func newMesh(tst *testing.T, geo string, X [][]float64, cells ...[]int) *inp.Mesh {
	msh := new(inp.Mesh)
	for i, x := range X {
		msh.Verts = append(msh.Verts, &inp.Vert{Id: i, C: x})
	}
	for i, verts := range cells {
		msh.Cells = append(msh.Cells, &inp.Cell{Id: i, Tag: -1, Type: geo, Verts: verts})
	}
	require.NoError(tst, msh.Init())
	return msh
}

// newSim returns a simulation with default settings and E = 1000, ν = 0.25, ρ = 2
func newSim(tst *testing.T, msh *inp.Mesh) *inp.Simulation {
	sim := inp.NewSimulation()
	sim.Msh = msh
	sim.Key = "test"
	sim.Data.DirOut = tst.TempDir()
	sim.Elast = inp.ElastData{Rho: 2, Young: 1000, Nu: 0.25}
	return sim
}

// newDom post-processes the simulation and allocates a non-distributed domain
func newDom(tst *testing.T, sim *inp.Simulation) *Domain {
	require.NoError(tst, sim.PostProcess())
	dom, err := NewDomain(sim, 0, false)
	require.NoError(tst, err)
	return dom
}

// test meshes
var (
	tri3X = [][]float64{{0.1, 0}, {1.2, 0.2}, {0.3, 0.9}}
	qua4X = [][]float64{{0, 0}, {1.1, 0.1}, {1.2, 1.3}, {-0.1, 0.9}}
	tet4X = [][]float64{{0, 0, 0}, {1, 0, 0.1}, {0.2, 1.1, 0}, {0.1, 0.2, 0.9}}
	hex8X = [][]float64{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
)

// singleCell returns a domain with one cell of each kind
func singleCell(tst *testing.T, geo string) *Domain {
	var msh *inp.Mesh
	switch geo {
	case "tri3":
		msh = newMesh(tst, geo, tri3X, []int{0, 1, 2})
	case "qua4":
		msh = newMesh(tst, geo, qua4X, []int{0, 1, 2, 3})
	case "tet4":
		msh = newMesh(tst, geo, tet4X, []int{0, 1, 2, 3})
	case "hex8":
		msh = newMesh(tst, geo, hex8X, []int{0, 1, 2, 3, 4, 5, 6, 7})
	default:
		tst.Fatalf("cannot find test mesh %q", geo)
	}
	return newDom(tst, newSim(tst, msh))
}

// polygonArea returns the area of a 2D polygon given by [nverts][2] coordinates
func polygonArea(X [][]float64) (a float64) {
	n := len(X)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += X[i][0]*X[j][1] - X[j][0]*X[i][1]
	}
	return a / 2.0
}
