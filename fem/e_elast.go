// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"
	"fmt"
	"math"

	"github.com/cpmech/gosl/utl"
	"github.com/passmo/elastodyn/shp"
	"gonum.org/v1/gonum/mat"
)

// JacobianTol is the smallest acceptable |det(J)|
const JacobianTol = 1e-15

// ErrDegenerate is returned when an element has a (nearly) zero Jacobian determinant
var ErrDegenerate = errors.New("degenerate element")

// Jacobian computes the Jacobian matrix J_ij = Σ_m x_m,i dS_m/dr_j at integration point ip
//  X    -- [ndim][nverts] coordinates
//  jac  -- [ndim][gndim] Jacobian matrix
//  detJ -- determinant if ndim == gndim; otherwise the measure of the mapping:
//          length of dx/dr for lines and area of dx/dr × dx/ds for surfaces
func Jacobian(X [][]float64, gd *shp.GaussData, ip int) (jac [][]float64, detJ float64, err error) {
	ndim, gndim := len(X), gd.Shape.Gndim
	jac = utl.Alloc(ndim, gndim)
	for i := 0; i < ndim; i++ {
		for j := 0; j < gndim; j++ {
			for m := 0; m < gd.Shape.Nverts; m++ {
				jac[i][j] += X[i][m] * gd.DSdR(ip, m, j)
			}
		}
	}
	switch {
	case gndim == ndim:
		detJ = mat.Det(toDense(jac))
	case gndim == 1:
		for i := 0; i < ndim; i++ {
			detJ += jac[i][0] * jac[i][0]
		}
		detJ = math.Sqrt(detJ)
	case gndim == 2 && ndim == 3:
		c := cross(col(jac, 0), col(jac, 1))
		detJ = math.Sqrt(c[0]*c[0] + c[1]*c[1] + c[2]*c[2])
	default:
		return nil, 0, fmt.Errorf("cannot compute Jacobian of %q in %dD", gd.Shape.Type, ndim)
	}
	if math.Abs(detJ) < JacobianTol {
		return nil, 0, fmt.Errorf("%w: det(J) = %g", ErrDegenerate, detJ)
	}
	return
}

// ElemMass computes the consistent mass matrix M_ij = Σ_ip w |J| ρ S_i S_j, repeated on each axis
func ElemMass(e *Elem) (M [][]float64, err error) {
	ndim, gd := len(e.X), e.Gd
	nverts := gd.Shape.Nverts
	nu := ndim * nverts
	M = utl.Alloc(nu, nu)
	for ip := 0; ip < gd.Nip; ip++ {
		_, detJ, err := Jacobian(e.X, gd, ip)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", e.Cell.Id, err)
		}
		coef := gd.W(ip) * math.Abs(detJ) * e.Mat.Rho
		for m := 0; m < nverts; m++ {
			for n := m; n < nverts; n++ {
				val := coef * gd.S(ip, m) * gd.S(ip, n)
				for i := 0; i < ndim; i++ {
					M[ndim*m+i][ndim*n+i] += val
				}
			}
		}
	}
	mirror(M)
	return
}

// ElemStiff computes the stiffness matrix K = Σ_ip w |J| Bᵀ D B
//  1D: ε = {εxx}; 2D: ε = {εxx, εyy, γxy}; 3D: ε = {εxx, εyy, εzz, γxy, γyz, γzx}
func ElemStiff(e *Elem) (K [][]float64, err error) {
	ndim, gd := len(e.X), e.Gd
	nverts := gd.Shape.Nverts
	nu := ndim * nverts
	D := elastTensor(ndim, e.Mat.Lambda, e.Mat.Mu)
	nsig := len(D)
	K = utl.Alloc(nu, nu)
	B := utl.Alloc(nsig, nu)
	DB := utl.Alloc(nsig, nu)
	G := utl.Alloc(nverts, ndim)
	for ip := 0; ip < gd.Nip; ip++ {

		// Jacobian and its inverse
		jac, detJ, err := Jacobian(e.X, gd, ip)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", e.Cell.Id, err)
		}
		var Ji mat.Dense
		err = Ji.Inverse(toDense(jac))
		if err != nil {
			if _, ok := err.(mat.Condition); !ok {
				return nil, fmt.Errorf("cell %d: %w: %v", e.Cell.Id, ErrDegenerate, err)
			}
		}

		// G = dS/dx = dS/dr ⋅ J⁻¹
		for m := 0; m < nverts; m++ {
			for i := 0; i < ndim; i++ {
				G[m][i] = 0
				for j := 0; j < ndim; j++ {
					G[m][i] += gd.DSdR(ip, m, j) * Ji.At(j, i)
				}
			}
		}
		fillB(B, G, ndim)

		// DB = D ⋅ B
		for k := 0; k < nsig; k++ {
			for a := 0; a < nu; a++ {
				DB[k][a] = 0
				for l := 0; l < nsig; l++ {
					DB[k][a] += D[k][l] * B[l][a]
				}
			}
		}

		// K += w |J| Bᵀ ⋅ D ⋅ B
		coef := gd.W(ip) * math.Abs(detJ)
		for a := 0; a < nu; a++ {
			for b := a; b < nu; b++ {
				for k := 0; k < nsig; k++ {
					K[a][b] += coef * B[k][a] * DB[k][b]
				}
			}
		}
	}
	mirror(K)
	return
}

// ElemGravity computes the body force vector f_i = Σ_ip w |J| ρ S_m g_i
func ElemGravity(e *Elem, g []float64) (f []float64, err error) {
	ndim, gd := len(e.X), e.Gd
	nverts := gd.Shape.Nverts
	f = make([]float64, ndim*nverts)
	for ip := 0; ip < gd.Nip; ip++ {
		_, detJ, err := Jacobian(e.X, gd, ip)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", e.Cell.Id, err)
		}
		coef := gd.W(ip) * math.Abs(detJ) * e.Mat.Rho
		for m := 0; m < nverts; m++ {
			for i := 0; i < ndim; i++ {
				f[ndim*m+i] += coef * gd.S(ip, m) * g[i]
			}
		}
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// elastTensor returns the isotropic elasticity matrix in engineering (Voigt) notation
func elastTensor(ndim int, lambda, mu float64) (D [][]float64) {
	nsig := 1
	switch ndim {
	case 2:
		nsig = 3
	case 3:
		nsig = 6
	}
	D = utl.Alloc(nsig, nsig)
	for i := 0; i < ndim; i++ {
		for j := 0; j < ndim; j++ {
			D[i][j] = lambda
		}
		D[i][i] = lambda + 2.0*mu
	}
	for i := ndim; i < nsig; i++ {
		D[i][i] = mu
	}
	return
}

// fillB sets the strain-displacement matrix B [nsig][ndim*nverts] from G = dS/dx
func fillB(B, G [][]float64, ndim int) {
	for m := range G {
		c := ndim * m
		switch ndim {
		case 1:
			B[0][c] = G[m][0]
			continue
		case 2:
			B[0][c+0], B[0][c+1] = G[m][0], 0
			B[1][c+0], B[1][c+1] = 0, G[m][1]
			B[2][c+0], B[2][c+1] = G[m][1], G[m][0]
			continue
		}
		B[0][c+0], B[0][c+1], B[0][c+2] = G[m][0], 0, 0
		B[1][c+0], B[1][c+1], B[1][c+2] = 0, G[m][1], 0
		B[2][c+0], B[2][c+1], B[2][c+2] = 0, 0, G[m][2]
		B[3][c+0], B[3][c+1], B[3][c+2] = G[m][1], G[m][0], 0
		B[4][c+0], B[4][c+1], B[4][c+2] = 0, G[m][2], G[m][1]
		B[5][c+0], B[5][c+1], B[5][c+2] = G[m][2], 0, G[m][0]
	}
}

// mirror copies the upper triangle of a square matrix onto the lower triangle
func mirror(a [][]float64) {
	for i := range a {
		for j := 0; j < i; j++ {
			a[i][j] = a[j][i]
		}
	}
}

// toDense converts a square matrix to gonum's dense matrix
func toDense(a [][]float64) *mat.Dense {
	n := len(a)
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d.Set(i, j, a[i][j])
		}
	}
	return d
}

// col returns column j of a
func col(a [][]float64, j int) (v []float64) {
	v = make([]float64, len(a))
	for i := range a {
		v[i] = a[i][j]
	}
	return
}

// cross returns u × v of 3D vectors
func cross(u, v []float64) [3]float64 {
	return [3]float64{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
}
