// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/passmo/elastodyn/shp"
)

// constants
const Ztol = 1e-7

// Vert holds vertex data
type Vert struct {
	Id  int       // id
	Tag int       // tag
	C   []float64 // coordinates (size==2 or 3)
}

// Cell holds cell data
type Cell struct {

	// input data
	Id    int    // id
	Tag   int    // tag
	Type  string // geometry type (string)
	Part  int    // partition id
	Verts []int  // vertices
	FTags []int  // edge (2D) or face (3D) tags

	// derived
	Shp *shp.Shape // shape structure
}

// CellFaceId structure
type CellFaceId struct {
	C   *Cell // cell
	Fid int   // face id
}

// Mesh holds a mesh for FE analyses
type Mesh struct {

	// from JSON
	Verts []*Vert // vertices
	Cells []*Cell // cells

	// derived
	FnamePath  string  // complete filename path
	Ndim       int     // space dimension
	Nparts     int     // number of partitions == max(cell.Part) + 1
	Xmin, Xmax float64 // min and max x-coordinate
	Ymin, Ymax float64 // min and max y-coordinate
	Zmin, Zmax float64 // min and max z-coordinate

	// derived: maps
	VertTag2verts map[int][]*Vert      // vertex tag => set of vertices
	CellTag2cells map[int][]*Cell      // cell tag => set of cells
	FaceTag2cells map[int][]CellFaceId // face tag => set of cells
	FaceTag2verts map[int][]int        // face tag => vertices on tagged face (sorted)
	Part2cells    map[int][]*Cell      // partition number => set of cells
	Vert2cells    [][]*Cell            // [nverts] cells sharing each vertex
}

// ReadMsh reads a mesh for FE analyses
func ReadMsh(dir, fn string) (o *Mesh, err error) {

	// read file
	fnamepath := filepath.Join(dir, fn)
	b, err := os.ReadFile(fnamepath)
	if err != nil {
		return nil, chk.Err("cannot read mesh file %q:\n%v", fnamepath, err)
	}

	// decode
	o = new(Mesh)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot unmarshal mesh file %q:\n%v", fnamepath, err)
	}
	o.FnamePath = fnamepath

	// derived data
	err = o.Init()
	if err != nil {
		return nil, chk.Err("mesh file %q is invalid:\n%v", fnamepath, err)
	}
	return
}

// Init checks vertices and cells and computes derived data
func (o *Mesh) Init() (err error) {

	// check
	if len(o.Verts) < 2 {
		return chk.Err("at least 2 vertices are required. %d is invalid", len(o.Verts))
	}
	if len(o.Cells) < 1 {
		return chk.Err("at least 1 cell is required")
	}

	// vertex related derived data
	o.Ndim = 2
	o.Xmin = o.Verts[0].C[0]
	o.Ymin = o.Verts[0].C[1]
	if len(o.Verts[0].C) > 2 {
		o.Zmin = o.Verts[0].C[2]
	}
	o.Xmax = o.Xmin
	o.Ymax = o.Ymin
	o.Zmax = o.Zmin
	o.VertTag2verts = make(map[int][]*Vert)
	for i, v := range o.Verts {

		// check vertex id
		if v.Id != i {
			return chk.Err("vertex ids must be sequential. vertex %d has id %d", i, v.Id)
		}

		// ndim
		nd := len(v.C)
		if nd < 2 || nd > 3 {
			return chk.Err("vertex %d must have 2 or 3 coordinates. %d is invalid", v.Id, nd)
		}
		if nd == 3 {
			if math.Abs(v.C[2]) > Ztol {
				o.Ndim = 3
			}
		}

		// tags
		if v.Tag < 0 {
			o.VertTag2verts[v.Tag] = append(o.VertTag2verts[v.Tag], v)
		}

		// limits
		o.Xmin = utl.Min(o.Xmin, v.C[0])
		o.Xmax = utl.Max(o.Xmax, v.C[0])
		o.Ymin = utl.Min(o.Ymin, v.C[1])
		o.Ymax = utl.Max(o.Ymax, v.C[1])
		if nd > 2 {
			o.Zmin = utl.Min(o.Zmin, v.C[2])
			o.Zmax = utl.Max(o.Zmax, v.C[2])
		}
	}

	// derived data
	o.CellTag2cells = make(map[int][]*Cell)
	o.FaceTag2cells = make(map[int][]CellFaceId)
	o.FaceTag2verts = make(map[int][]int)
	o.Part2cells = make(map[int][]*Cell)
	o.Vert2cells = make([][]*Cell, len(o.Verts))
	o.Nparts = 1
	for i, c := range o.Cells {

		// check id and tag
		if c.Id != i {
			return chk.Err("cell ids must be sequential. cell %d has id %d", i, c.Id)
		}
		if c.Tag >= 0 {
			return chk.Err("cell tags must be negative. cell %d has tag %d", c.Id, c.Tag)
		}
		if c.Part < 0 {
			return chk.Err("partition id of cell %d must be non-negative. %d is invalid", c.Id, c.Part)
		}

		// get shape structure
		c.Shp = shp.Get(c.Type)
		if c.Shp == nil {
			return chk.Err("cannot find shape of cell %d with type %q", c.Id, c.Type)
		}
		if c.Shp.Gndim != o.Ndim {
			return chk.Err("cell %d with type %q cannot be used in %dD meshes", c.Id, c.Type, o.Ndim)
		}
		if len(c.Verts) != c.Shp.Nverts {
			return chk.Err("cell %d with type %q must have %d vertices. %d is invalid", c.Id, c.Type, c.Shp.Nverts, len(c.Verts))
		}
		for _, vid := range c.Verts {
			if vid < 0 || vid >= len(o.Verts) {
				return chk.Err("cell %d references vertex %d which does not exist", c.Id, vid)
			}
			o.Vert2cells[vid] = append(o.Vert2cells[vid], c)
		}

		// cell tags
		o.CellTag2cells[c.Tag] = append(o.CellTag2cells[c.Tag], c)

		// face tags
		for fid, ftag := range c.FTags {
			if ftag < 0 {
				if fid >= c.Shp.Nfaces() {
					return chk.Err("cell %d with type %q has only %d faces", c.Id, c.Type, c.Shp.Nfaces())
				}
				o.FaceTag2cells[ftag] = append(o.FaceTag2cells[ftag], CellFaceId{c, fid})
				for _, l := range c.Shp.FaceLocalVerts[fid] {
					o.FaceTag2verts[ftag] = append(o.FaceTag2verts[ftag], c.Verts[l])
				}
			}
		}

		// partition => cells
		o.Part2cells[c.Part] = append(o.Part2cells[c.Part], c)
		if c.Part+1 > o.Nparts {
			o.Nparts = c.Part + 1
		}
	}

	// remove duplicates
	for ftag, verts := range o.FaceTag2verts {
		o.FaceTag2verts[ftag] = uniqueInts(verts)
	}
	return
}

// ExtractCellCoords extracts cell coordinates
//  X -- matrix with coordinates [ndim][nverts]
func (o *Mesh) ExtractCellCoords(cid int) (X [][]float64) {
	c := o.Cells[cid]
	X = utl.Alloc(o.Ndim, len(c.Verts))
	for m, v := range c.Verts {
		for i := 0; i < o.Ndim; i++ {
			X[i][m] = o.Verts[v].C[i]
		}
	}
	return
}

// String returns a JSON representation of *Vert
func (o *Vert) String() string {
	l := io.Sf("{\"id\":%4d, \"tag\":%6d, \"c\":[", o.Id, o.Tag)
	for i, x := range o.C {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%23.15e", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Cell
func (o *Cell) String() string {
	l := io.Sf("{\"id\":%d, \"tag\":%d, \"type\":%q, \"part\":%d, \"verts\":[", o.Id, o.Tag, o.Type, o.Part)
	for i, x := range o.Verts {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%d", x)
	}
	l += "], \"ftags\":["
	for i, x := range o.FTags {
		if i > 0 {
			l += ", "
		}
		l += io.Sf("%d", x)
	}
	l += "] }"
	return l
}

// String returns a JSON representation of *Mesh
func (o Mesh) String() string {
	l := "{\n  \"verts\" : [\n"
	for i, x := range o.Verts {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ],\n  \"cells\" : [\n"
	for i, x := range o.Cells {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("    %v", x)
	}
	l += "\n  ]\n}"
	return l
}

// uniqueInts returns a sorted copy of a without duplicates
func uniqueInts(a []int) (res []int) {
	b := append([]int{}, a...)
	sort.Ints(b)
	for i, x := range b {
		if i == 0 || x != b[i-1] {
			res = append(res, x)
		}
	}
	return
}
