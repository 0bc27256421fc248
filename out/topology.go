// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"

	"github.com/passmo/elastodyn/inp"
	"gonum.org/v1/gonum/floats"
)

// Point holds the results of one vertex
type Point struct {
	Vid  int                  // vertex id
	X    []float64            // [3] coordinates; z == 0 in 2D
	Dist float64              // distance from the reference point of the locator
	Vals map[string][]float64 // [ntimes] values by key; e.g. "ux"
}

// Points is a set of points sortable by distance
type Points []*Point

// Len the length of Points
func (o Points) Len() int {
	return len(o)
}

// Swap swaps two points
func (o Points) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
}

// Less compares the distances of two points
func (o Points) Less(i, j int) bool {
	return o[i].Dist < o[j].Dist
}

// newPoint returns a point at vertex vid; the distance is measured from A, if not nil
func newPoint(msh *inp.Mesh, vid int, A []float64) *Point {
	if vid < 0 || vid >= len(msh.Verts) {
		return nil
	}
	p := &Point{Vid: vid, X: coords(msh.Verts[vid]), Vals: make(map[string][]float64)}
	if A != nil {
		p.Dist = floats.Distance(p.X, pad(A), 2)
	}
	return p
}

// coords returns the coordinates of a vertex with three components
func coords(v *inp.Vert) []float64 {
	return pad(v.C)
}

// pad extends x to three components
func pad(x []float64) []float64 {
	res := make([]float64, 3)
	copy(res, x)
	return res
}

// distToLine returns the distance from p to the line through a and b
func distToLine(p, a, b []float64) float64 {
	d := make([]float64, 3)
	floats.SubTo(d, b, a)
	l := floats.Norm(d, 2)
	if l < TolC {
		return floats.Distance(p, a, 2)
	}
	floats.Scale(1/l, d)
	r := make([]float64, 3)
	floats.SubTo(r, p, a)
	floats.AddScaled(r, -floats.Dot(r, d), d)
	return floats.Norm(r, 2)
}

// vertAt returns the id of the vertex at x or -1
func vertAt(msh *inp.Mesh, x []float64) int {
	x = pad(x)
	vid, dmin := -1, math.Inf(1)
	for _, v := range msh.Verts {
		d := floats.Distance(coords(v), x, 2)
		if d < dmin {
			vid, dmin = v.Id, d
		}
	}
	if dmin > TolC {
		return -1
	}
	return vid
}
