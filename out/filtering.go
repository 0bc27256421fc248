// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"sort"

	"github.com/passmo/elastodyn/inp"
)

// Locator defines interface for locating vertices
type Locator interface {
	Locate(msh *inp.Mesh) Points
}

// At returns the vertex at coordinates {x,y} or {x,y,z}
type At []float64

// N returns vertices by id (positive or zero) or by tag (negative)
type N []int

// Along returns vertices on the line through two points {{xa,ya,za},{xb,yb,zb}}
type Along [][]float64

// AlongX returns vertices along x at y = cte; or {y_cte, z_cte} in 3D
type AlongX []float64

// AlongY returns vertices along y at x = cte; or {x_cte, z_cte} in 3D
type AlongY []float64

// Locate finds the vertex
func (o At) Locate(msh *inp.Mesh) Points {
	vid := vertAt(msh, o)
	if vid < 0 {
		return nil
	}
	return Points{newPoint(msh, vid, nil)}
}

// Locate finds vertices; the distance is measured from the first one
func (o N) Locate(msh *inp.Mesh) (res Points) {
	var A []float64 // reference point
	add := func(vid int) {
		q := newPoint(msh, vid, A)
		if q != nil {
			res = append(res, q)
			if A == nil {
				A = q.X
			}
		}
	}
	for _, idortag := range o {
		if idortag < 0 {
			for _, v := range msh.VertTag2verts[idortag] {
				add(v.Id)
			}
		} else {
			add(idortag)
		}
	}
	return
}

// Locate finds vertices sorted by distance from the first point
func (o Along) Locate(msh *inp.Mesh) (res Points) {
	if len(o) != 2 {
		return
	}
	A, B := pad(o[0]), pad(o[1])
	for _, v := range msh.Verts {
		if distToLine(coords(v), A, B) < TolC {
			res = append(res, newPoint(msh, v.Id, A))
		}
	}
	sort.Stable(res)
	return
}

// Locate finds vertices
func (o AlongX) Locate(msh *inp.Mesh) (res Points) {
	y_cte, z_cte := o[0], 0.0
	if len(o) > 1 {
		z_cte = o[1]
	}
	return Along{{0, y_cte, z_cte}, {1, y_cte, z_cte}}.Locate(msh)
}

// Locate finds vertices
func (o AlongY) Locate(msh *inp.Mesh) (res Points) {
	x_cte, z_cte := o[0], 0.0
	if len(o) > 1 {
		z_cte = o[1]
	}
	return Along{{x_cte, 0, z_cte}, {x_cte, 1, z_cte}}.Locate(msh)
}

// AllNodes returns a locator of all vertices
func AllNodes(msh *inp.Mesh) N {
	res := make(N, len(msh.Verts))
	for i := range msh.Verts {
		res[i] = i
	}
	return res
}
