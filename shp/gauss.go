// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"github.com/cpmech/gosl/chk"
)

// Nslots is the number of scalars stored per vertex in GaussData: S, dSdr, dSds, dSdt
const Nslots = 4

// GaussData holds the quadrature table of one shape flattened as
//
//  for each integration point:
//    [ w,  S_0 dS_0/dr dS_0/ds dS_0/dt,  S_1 dS_1/dr ...,  ... ]
//
// i.e. one weight followed by Nslots scalars per vertex. Unused derivative
// slots (gndim < 3) are zero. GaussData is read-only after allocation
type GaussData struct {
	Shape  *Shape    // shape
	Nip    int       // number of integration points
	Nint   []int     // number of integration points per axis used to build this table
	Vals   []float64 // flattened table [Nip * Stride()]
	stride int       // 1 + Nslots * nverts
}

// GetGaussData computes the quadrature table of a shape
func GetGaussData(shape *Shape, nint []int) (o *GaussData, err error) {
	if shape == nil {
		return nil, chk.Err("cannot compute Gauss data of nil shape")
	}
	ips, err := GetIps(shape.Type, nint)
	if err != nil {
		return
	}
	o = new(GaussData)
	o.Shape = shape
	o.Nip = len(ips)
	o.Nint = append([]int{}, nint...)
	o.stride = 1 + Nslots*shape.Nverts
	o.Vals = make([]float64, o.Nip*o.stride)
	for ip, p := range ips {
		S, dSdR := shape.Calc(p, true)
		b := ip * o.stride
		o.Vals[b] = p[3]
		for m := 0; m < shape.Nverts; m++ {
			k := b + 1 + Nslots*m
			o.Vals[k] = S[m]
			for j := 0; j < shape.Gndim; j++ {
				o.Vals[k+1+j] = dSdR[m][j]
			}
		}
	}
	return
}

// Stride returns the number of scalars per integration point
func (o *GaussData) Stride() int { return o.stride }

// W returns the weight of integration point ip
func (o *GaussData) W(ip int) float64 {
	return o.Vals[ip*o.stride]
}

// S returns the shape function of vertex m at integration point ip
func (o *GaussData) S(ip, m int) float64 {
	return o.Vals[ip*o.stride+1+Nslots*m]
}

// DSdR returns the derivative of shape function of vertex m w.r.t natural coordinate j at ip
func (o *GaussData) DSdR(ip, m, j int) float64 {
	return o.Vals[ip*o.stride+2+Nslots*m+j]
}

// RealCoords returns the real coordinates of integration point ip
//  x -- [ndim][nverts] coordinates matrix
func (o *GaussData) RealCoords(x [][]float64, ip int) (y []float64) {
	y = make([]float64, len(x))
	for i := range x {
		for m := 0; m < o.Shape.Nverts; m++ {
			y[i] += o.S(ip, m) * x[i][m]
		}
	}
	return
}
