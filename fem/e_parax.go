// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
	"gonum.org/v1/gonum/floats"
)

// SetFrame computes the local orthonormal frame of a face with the normal pointing
// away from the centroid of the owning element
//  2D: E1 = tangent, E2 = normal
//  3D: E1, E2 = tangents, E3 = normal
func (o *Face) SetFrame() (err error) {
	ndim := len(o.X)
	x0, x1 := col(o.X, 0), col(o.X, 1)
	t := make([]float64, ndim)
	floats.SubTo(t, x1, x0)
	if floats.Norm(t, 2) < JacobianTol {
		return chk.Err("face %d of cell %d is degenerate", o.Fid, o.Elem.Cell.Id)
	}
	floats.Scale(1.0/floats.Norm(t, 2), t)

	// normal
	n := make([]float64, ndim)
	if ndim == 2 {
		n[0], n[1] = t[1], -t[0]
	} else {
		if len(o.Nodes) < 3 {
			return chk.Err("face %d of cell %d must have at least 3 vertices", o.Fid, o.Elem.Cell.Id)
		}
		x2 := col(o.X, 2)
		a, b := make([]float64, 3), make([]float64, 3)
		floats.SubTo(a, x1, x0)
		floats.SubTo(b, x2, x0)
		c := cross(a, b)
		copy(n, c[:])
		nrm := floats.Norm(n, 2)
		if nrm < JacobianTol {
			return chk.Err("face %d of cell %d is degenerate", o.Fid, o.Elem.Cell.Id)
		}
		floats.Scale(1.0/nrm, n)
	}

	// outward
	xc := centroid(o.Elem.X)
	xf := centroid(o.X)
	d := make([]float64, ndim)
	floats.SubTo(d, xf, xc)
	if floats.Dot(n, d) < 0 {
		floats.Scale(-1, n)
	}

	// frame
	o.E1, o.E2, o.E3 = [3]float64{}, [3]float64{}, [3]float64{}
	copy(o.E1[:], t)
	if ndim == 2 {
		copy(o.E2[:], n)
		return
	}
	copy(o.E3[:], n)
	o.E2 = cross(n, t)
	return
}

// Normal returns the outward unit normal
func (o *Face) Normal() []float64 {
	ndim := len(o.X)
	if ndim == 2 {
		return o.E2[:2]
	}
	return o.E3[:]
}

// Impedance returns A0 = Σ_k ρ c_k E_k ⊗ E_k = ρ cs I + ρ (cp - cs) n ⊗ n
func (o *Face) Impedance() (A0 [][]float64) {
	ndim := len(o.X)
	A0 = utl.Alloc(ndim, ndim)
	frame := [3][3]float64{o.E1, o.E2, o.E3}
	for k := 0; k < ndim; k++ {
		c := o.Rho * o.Vel[k]
		for i := 0; i < ndim; i++ {
			for j := 0; j < ndim; j++ {
				A0[i][j] += c * frame[k][i] * frame[k][j]
			}
		}
	}
	return
}

// ParaxImpedance computes the face matrix C = c1 Σ_ip w |J| S_i S_j A0
func ParaxImpedance(f *Face, dc *DynCoefs) (C [][]float64, err error) {
	ndim, gd := len(f.X), f.Gd
	nverts := gd.Shape.Nverts
	nu := ndim * nverts
	A0 := f.Impedance()
	C = utl.Alloc(nu, nu)
	for ip := 0; ip < gd.Nip; ip++ {
		_, detJ, err := Jacobian(f.X, gd, ip)
		if err != nil {
			return nil, fmt.Errorf("face %d of cell %d: %w", f.Fid, f.Elem.Cell.Id, err)
		}
		coef := dc.C1 * gd.W(ip) * math.Abs(detJ)
		for m := 0; m < nverts; m++ {
			for n := 0; n < nverts; n++ {
				val := coef * gd.S(ip, m) * gd.S(ip, n)
				for i := 0; i < ndim; i++ {
					for j := 0; j < ndim; j++ {
						C[ndim*m+i][ndim*n+j] += val * A0[i][j]
					}
				}
			}
		}
	}
	mirror(C)
	return
}

// ParaxLoad computes the face vector Σ_ip w |J| S_i A0 (c1 d + c2 a + c3 v), where d, v and a
// are the previous displacement, velocity and acceleration interpolated at the integration point
func ParaxLoad(f *Face, dc *DynCoefs) (fp []float64, err error) {
	ndim, gd := len(f.X), f.Gd
	nverts := gd.Shape.Nverts
	A0 := f.Impedance()
	fp = make([]float64, ndim*nverts)
	w := make([]float64, ndim)
	for ip := 0; ip < gd.Nip; ip++ {
		_, detJ, err := Jacobian(f.X, gd, ip)
		if err != nil {
			return nil, fmt.Errorf("face %d of cell %d: %w", f.Fid, f.Elem.Cell.Id, err)
		}

		// kinematics at integration point
		for i := 0; i < ndim; i++ {
			w[i] = 0
			for m, n := range f.Nodes {
				S := gd.S(ip, m)
				w[i] += S * (dc.C1*n.Uprev[i] + dc.C2*n.Aprev[i] + dc.C3*n.Vprev[i])
			}
		}

		// load
		coef := gd.W(ip) * math.Abs(detJ)
		for m := 0; m < nverts; m++ {
			S := gd.S(ip, m)
			for i := 0; i < ndim; i++ {
				for j := 0; j < ndim; j++ {
					fp[ndim*m+i] += coef * S * A0[i][j] * w[j]
				}
			}
		}
	}
	return
}

// FaceTributary returns the share of the face measure given to each vertex:
// length/2 for lines, area/3 for triangles and area/4 for quadrilaterals
func FaceTributary(f *Face) (res float64, err error) {
	gd := f.Gd
	for ip := 0; ip < gd.Nip; ip++ {
		_, detJ, err := Jacobian(f.X, gd, ip)
		if err != nil {
			return 0, fmt.Errorf("face %d of cell %d: %w", f.Fid, f.Elem.Cell.Id, err)
		}
		res += gd.W(ip) * math.Abs(detJ)
	}
	return res / float64(gd.Shape.Nverts), nil
}

// centroid returns the average of the columns of X [ndim][nverts]
func centroid(X [][]float64) (c []float64) {
	c = make([]float64, len(X))
	for i := range X {
		c[i] = floats.Sum(X[i]) / float64(len(X[i]))
	}
	return
}
