// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
)

// CheckShape checks that shape functions evaluate to 1.0 @ nodes
func CheckShape(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// loop over all vertices
	errS := 0.0
	r := []float64{0, 0, 0}
	for n := 0; n < shape.Nverts; n++ {

		// natural coordinates @ vertex
		for i := 0; i < shape.Gndim; i++ {
			r[i] = shape.NatCoords[i][n]
		}

		// compute function
		S, _ := shape.Calc(r, false)

		// check
		if verbose {
			io.Pf("S = %v\n", S)
		}
		for m := 0; m < shape.Nverts; m++ {
			if n == m {
				errS += math.Abs(S[m] - 1.0)
			} else {
				errS += math.Abs(S[m])
			}
		}
	}

	// error
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
		return
	}
}

// CheckShapeFace checks that face vertices are listed in a way that
// shape functions of vertices not on the face vanish @ face vertices
func CheckShapeFace(tst *testing.T, shape *Shape, tol float64, verbose bool) {

	// loop over face vertices
	errS := 0.0
	r := []float64{0, 0, 0}
	for k := 0; k < shape.Nfaces(); k++ {
		onface := make(map[int]bool)
		for _, n := range shape.FaceLocalVerts[k] {
			onface[n] = true
		}
		for _, n := range shape.FaceLocalVerts[k] {

			// natural coordinates @ vertex
			for i := 0; i < shape.Gndim; i++ {
				r[i] = shape.NatCoords[i][n]
			}

			// compute function
			S, _ := shape.Calc(r, false)
			if verbose {
				io.Pforan("S = %v\n", S)
			}
			for m := 0; m < shape.Nverts; m++ {
				if !onface[m] {
					errS += math.Abs(S[m])
				}
			}
		}
	}

	// error
	if errS > tol {
		tst.Errorf("%s failed with err = %g\n", shape.Type, errS)
		return
	}
}

// CheckDSdR checks dSdR derivatives of shape structures
func CheckDSdR(tst *testing.T, shape *Shape, r []float64, tol float64, verbose bool) {

	// auxiliary
	rTmp := make([]float64, len(r))

	// analytical
	_, dSdR := shape.Calc(r, true)

	// numerical
	for n := 0; n < shape.Nverts; n++ {
		for i := 0; i < shape.Gndim; i++ {
			dSndRi := num.DerivCen5(r[i], 1e-3, func(x float64) float64 {
				copy(rTmp, r)
				rTmp[i] = x
				S, _ := shape.Calc(rTmp, false)
				return S[n]
			})
			if verbose {
				io.Pforan("  dS%ddR%d @ %5.2f = %v (num: %v)\n", n, i, r, dSdR[n][i], dSndRi)
			}
			if math.Abs(dSdR[n][i]-dSndRi) > tol {
				tst.Errorf("%s: dS%ddR%d failed with err = %g\n", shape.Type, n, i, math.Abs(dSdR[n][i]-dSndRi))
				return
			}
		}
	}
}
