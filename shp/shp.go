// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shp implements shape functions and quadrature tables
package shp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// ShpFunc is the shape functions callback function
//  S    -- [nverts] shape functions
//  dSdR -- [nverts][gndim] derivatives w.r.t natural coordinates (may be nil if derivs==false)
//  r    -- [3] natural coordinates
type ShpFunc func(S []float64, dSdR [][]float64, r []float64, derivs bool)

// Shape holds geometry data. Shapes are read-only after registration and can
// be shared among goroutines
type Shape struct {
	Type           string      // name; e.g. "qua4"
	Func           ShpFunc     // shape/derivs function callback function
	FaceType       string      // geometry of face; e.g. "qua4" => "lin2"
	Gndim          int         // geometry of shape; e.g. "lin2" => gndim == 1 (even in 3D simulations)
	Nverts         int         // number of vertices in cell; e.g. "qua4" => 4
	VtkCode        int         // VTK code
	FaceNvertsMax  int         // max number of vertices on face
	FaceLocalVerts [][]int     // face local vertices [nfaces][...]
	NatCoords      [][]float64 // natural coordinates [gndim][nverts]
	RefVolume      float64     // measure of reference element; e.g. "tri3" => 1/2
}

// factory holds all Shapes available
var factory = make(map[string]*Shape)

// register adds a new shape to factory
func register(s *Shape) {
	if _, ok := factory[s.Type]; ok {
		chk.Panic("cannot register shape %q because it exists already", s.Type)
	}
	factory[s.Type] = s
}

// Get returns an existent Shape structure
//  Note: returns nil on errors
func Get(geoType string) *Shape {
	s, ok := factory[geoType]
	if !ok {
		return nil
	}
	return s
}

// Types returns the names of all registered shapes
func Types() (names []string) {
	for _, name := range []string{"lin2", "tri3", "qua4", "tet4", "hex8"} {
		if _, ok := factory[name]; ok {
			names = append(names, name)
		}
	}
	return
}

// Nfaces returns the number of faces of this shape
func (o *Shape) Nfaces() int {
	return len(o.FaceLocalVerts)
}

// Calc evaluates shape functions and derivatives at natural coordinates r
// using freshly allocated arrays
func (o *Shape) Calc(r []float64, derivs bool) (S []float64, dSdR [][]float64) {
	S = make([]float64, o.Nverts)
	if derivs {
		dSdR = utl.Alloc(o.Nverts, o.Gndim)
	}
	o.Func(S, dSdR, r, derivs)
	return
}

// IpRealCoords returns the real coordinates (y) of a point given by natural coordinates
//  x -- [ndim][nverts] coordinates matrix
func (o *Shape) IpRealCoords(x [][]float64, r []float64) (y []float64) {
	ndim := len(x)
	y = make([]float64, ndim)
	S, _ := o.Calc(r, false)
	for i := 0; i < ndim; i++ {
		for m := 0; m < o.Nverts; m++ {
			y[i] += S[m] * x[i][m]
		}
	}
	return
}

// FaceCoords extracts the coordinates matrix of one face
//  x -- [ndim][nverts] coordinates matrix of cell
//  xf -- [ndim][nvertsOnFace] coordinates matrix of face
func (o *Shape) FaceCoords(x [][]float64, idxface int) (xf [][]float64) {
	lverts := o.FaceLocalVerts[idxface]
	xf = utl.Alloc(len(x), len(lverts))
	for i := 0; i < len(x); i++ {
		for k, m := range lverts {
			xf[i][k] = x[i][m]
		}
	}
	return
}
