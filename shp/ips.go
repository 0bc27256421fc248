// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Ipoint holds integration point data: natural coordinates and weight
//  {r, s, t, w}
type Ipoint []float64

// gauss-legendre points and weights in [-1, 1]
var (
	glPoints = [][]float64{
		{0},
		{-1.0 / math.Sqrt(3.0), 1.0 / math.Sqrt(3.0)},
		{-math.Sqrt(3.0 / 5.0), 0, math.Sqrt(3.0 / 5.0)},
	}
	glWeights = [][]float64{
		{2},
		{1, 1},
		{5.0 / 9.0, 8.0 / 9.0, 5.0 / 9.0},
	}
)

// triangle and tetrahedron rules
var (
	triIps1 = []Ipoint{{1.0 / 3.0, 1.0 / 3.0, 0, 0.5}}
	triIps3 = []Ipoint{
		{1.0 / 6.0, 1.0 / 6.0, 0, 1.0 / 6.0},
		{2.0 / 3.0, 1.0 / 6.0, 0, 1.0 / 6.0},
		{1.0 / 6.0, 2.0 / 3.0, 0, 1.0 / 6.0},
	}
	tetIps1 = []Ipoint{{0.25, 0.25, 0.25, 1.0 / 6.0}}
	tetIps4 = []Ipoint{
		{0.1381966011250105, 0.1381966011250105, 0.1381966011250105, 1.0 / 24.0},
		{0.5854101966249685, 0.1381966011250105, 0.1381966011250105, 1.0 / 24.0},
		{0.1381966011250105, 0.5854101966249685, 0.1381966011250105, 1.0 / 24.0},
		{0.1381966011250105, 0.1381966011250105, 0.5854101966249685, 1.0 / 24.0},
	}
)

// GetIps returns the integration points of a shape
//  nint -- number of points per axis (1, 2 or 3) for lin, qua and hex shapes.
//          For tri and tet shapes, nint[0]==1 selects the 1-point rule;
//          otherwise the 3-point (tri) or 4-point (tet) rules are used
func GetIps(geoType string, nint []int) (ips []Ipoint, err error) {
	n := []int{2, 2, 2}
	for i := 0; i < len(nint) && i < 3; i++ {
		n[i] = nint[i]
		if n[i] < 1 || n[i] > 3 {
			return nil, chk.Err("number of integration points per axis must be in [1,3]. %d is invalid", n[i])
		}
	}
	switch geoType {
	case "lin2":
		for i, r := range glPoints[n[0]-1] {
			ips = append(ips, Ipoint{r, 0, 0, glWeights[n[0]-1][i]})
		}
	case "qua4":
		for j, s := range glPoints[n[1]-1] {
			for i, r := range glPoints[n[0]-1] {
				ips = append(ips, Ipoint{r, s, 0, glWeights[n[0]-1][i] * glWeights[n[1]-1][j]})
			}
		}
	case "hex8":
		for k, t := range glPoints[n[2]-1] {
			for j, s := range glPoints[n[1]-1] {
				for i, r := range glPoints[n[0]-1] {
					ips = append(ips, Ipoint{r, s, t, glWeights[n[0]-1][i] * glWeights[n[1]-1][j] * glWeights[n[2]-1][k]})
				}
			}
		}
	case "tri3":
		if n[0] == 1 {
			return triIps1, nil
		}
		return triIps3, nil
	case "tet4":
		if n[0] == 1 {
			return tetIps1, nil
		}
		return tetIps4, nil
	default:
		return nil, chk.Err("cannot find integration points for shape %q", geoType)
	}
	return
}
