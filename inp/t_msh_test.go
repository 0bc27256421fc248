// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_msh01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh01")

	msh, err := ReadMsh("data", "box.msh")
	require.NoError(tst, err)
	if chk.Verbose {
		io.Pforan("%v\n", msh)
	}

	chk.Int(tst, "ndim", msh.Ndim, 2)
	chk.Int(tst, "nparts", msh.Nparts, 2)
	chk.Float64(tst, "xmin", 1e-17, msh.Xmin, 0)
	chk.Float64(tst, "xmax", 1e-17, msh.Xmax, 2)
	chk.Float64(tst, "ymax", 1e-17, msh.Ymax, 1)

	assert.Len(tst, msh.VertTag2verts[-1], 1)
	assert.Len(tst, msh.VertTag2verts[-3], 1)
	assert.Equal(tst, 3, msh.VertTag2verts[-3][0].Id)
	assert.Len(tst, msh.CellTag2cells[-2], 1)
	assert.Len(tst, msh.Part2cells[0], 1)
	assert.Len(tst, msh.Part2cells[1], 1)

	chk.Ints(tst, "bottom verts", msh.FaceTag2verts[-10], []int{0, 1, 2})
	chk.Ints(tst, "top verts", msh.FaceTag2verts[-13], []int{3, 4, 5})
	chk.Ints(tst, "left verts", msh.FaceTag2verts[-12], []int{0, 3})
	chk.Ints(tst, "right verts", msh.FaceTag2verts[-11], []int{2, 5})
	require.Len(tst, msh.FaceTag2cells[-11], 1)
	assert.Equal(tst, 1, msh.FaceTag2cells[-11][0].C.Id)
	assert.Equal(tst, 1, msh.FaceTag2cells[-11][0].Fid)

	assert.Len(tst, msh.Vert2cells[1], 2)
	assert.Len(tst, msh.Vert2cells[0], 1)

	X := msh.ExtractCellCoords(1)
	chk.Deep2(tst, "X", 1e-17, X, [][]float64{{1, 2, 2, 1}, {0, 0, 1, 1}})
}

func Test_msh02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh02")

	_, err := ReadMsh("data", "bad_verts.msh")
	assert.Error(tst, err)

	_, err = ReadMsh("data", "nonexistent.msh")
	assert.Error(tst, err)

	// wrong number of vertices
	msh := &Mesh{
		Verts: []*Vert{{0, 0, []float64{0, 0}}, {1, 0, []float64{1, 0}}, {2, 0, []float64{0, 1}}},
		Cells: []*Cell{{Id: 0, Tag: -1, Type: "qua4", Verts: []int{0, 1, 2}}},
	}
	assert.Error(tst, msh.Init())

	// unknown type
	msh.Cells[0].Type = "tri6"
	assert.Error(tst, msh.Init())

	// non-negative cell tag
	msh.Cells[0].Type = "tri3"
	msh.Cells[0].Tag = 0
	assert.Error(tst, msh.Init())

	// ok
	msh.Cells[0].Tag = -1
	require.NoError(tst, msh.Init())
	chk.Int(tst, "nparts", msh.Nparts, 1)
}

func Test_msh03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("msh03")

	// 3D mesh: one tet4
	msh := &Mesh{
		Verts: []*Vert{
			{0, -1, []float64{0, 0, 0}},
			{1, 0, []float64{1, 0, 0}},
			{2, 0, []float64{0, 1, 0}},
			{3, 0, []float64{0, 0, 1}},
		},
		Cells: []*Cell{{Id: 0, Tag: -1, Type: "tet4", Verts: []int{0, 1, 2, 3}, FTags: []int{0, 0, -5, 0}}},
	}
	require.NoError(tst, msh.Init())
	chk.Int(tst, "ndim", msh.Ndim, 3)
	chk.Ints(tst, "z=0 verts", msh.FaceTag2verts[-5], []int{0, 1, 2})

	// 2D cell in 3D mesh
	msh.Cells[0].Type = "tri3"
	msh.Cells[0].Verts = []int{0, 1, 2}
	assert.Error(tst, msh.Init())
}
