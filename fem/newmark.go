// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"errors"

	"github.com/cpmech/gosl/chk"
	"github.com/passmo/elastodyn/inp"
)

// ErrAlphaUnimplemented is returned by the update when generalized-α is requested
var ErrAlphaUnimplemented = errors.New("the generalized-α update is not implemented")

// DynCoefs holds the coefficients of Newmark's method and of its generalized-α extension
type DynCoefs struct {

	// input
	Gamma float64 // γ
	Beta  float64 // β
	AlfaM float64 // αm
	AlfaF float64 // αf
	Alfa  bool    // generalized-α requested

	// derived; computed by Calc
	Dt float64 // time step size
	Cm float64 // mass coefficient: (1-αm)/(β dt²)
	Ck float64 // stiffness coefficient: 1-αf
	C0 float64 // 1-αf
	C1 float64 // (1-αf) γ/(β dt)
	C2 float64 // dt (1-αf) (γ/(2β) - 1)
	C3 float64 // (1-αf) γ/β - 1
}

// Init initialises the coefficients
func (o *DynCoefs) Init(dat *inp.SolverData) (err error) {
	o.Alfa = dat.Alfa
	if o.Alfa {
		o.AlfaM, o.AlfaF = dat.AlfaM, dat.AlfaF
		o.Gamma = 0.5 + o.AlfaF - o.AlfaM
		o.Beta = 0.5 * (0.5 + o.Gamma) * (0.5 + o.Gamma)
		if o.Beta > 0.5 {
			return chk.Err("generalized-α coefficients yield β = %g > 0.5. αm = %g and αf = %g are invalid", o.Beta, o.AlfaM, o.AlfaF)
		}
	} else {
		o.Gamma, o.Beta = dat.Gamma, dat.Beta
		o.AlfaM, o.AlfaF = 0, 0
	}
	if o.Beta <= 0 || o.Beta > 0.5 {
		return chk.Err("Newmark's β must be in (0, 0.5]. β = %g is invalid", o.Beta)
	}
	if o.Gamma < 0.5 {
		return chk.Err("Newmark's γ must be greater than or equal to 0.5. γ = %g is invalid", o.Gamma)
	}
	return
}

// Calc computes the coefficients corresponding to dt
func (o *DynCoefs) Calc(dt float64) (err error) {
	if dt <= 0 {
		return chk.Err("time step size must be positive. dt = %g is invalid", dt)
	}
	o.Dt = dt
	o.Cm = (1.0 - o.AlfaM) / (o.Beta * dt * dt)
	o.Ck = 1.0 - o.AlfaF
	o.C0 = 1.0 - o.AlfaF
	o.C1 = o.C0 * o.Gamma / (o.Beta * dt)
	o.C2 = dt * o.C0 * (o.Gamma/(2.0*o.Beta) - 1.0)
	o.C3 = o.C0*o.Gamma/o.Beta - 1.0
	return
}

// Predictor returns u_pred and v_pred of axis i computed with the previous state
func (o *DynCoefs) Predictor(n *Node, i int) (upred, vpred float64) {
	dt := o.Dt
	upred = n.Uprev[i] + dt*n.Vprev[i] + dt*dt*(0.5-o.Beta)*n.Aprev[i]
	vpred = n.Vprev[i] + dt*(1.0-o.Gamma)*n.Aprev[i]
	return
}

// DisplFromAcc returns the displacement consistent with an imposed acceleration
func (o *DynCoefs) DisplFromAcc(n *Node, i int, acc float64) float64 {
	upred, _ := o.Predictor(n, i)
	return upred + o.Beta*o.Dt*o.Dt*acc
}

// AccFromVel returns the acceleration consistent with an imposed velocity
func (o *DynCoefs) AccFromVel(n *Node, i int, vel float64) float64 {
	_, vpred := o.Predictor(n, i)
	return (vel - vpred) / (o.Gamma * o.Dt)
}

// NewmarkUpdate computes the new velocities and accelerations from the solved displacements
// and carries the new state forward. Imposed accelerations (or velocities) are kept and the
// complementary unknown is derived instead
func NewmarkUpdate(nodes []*Node, ndim int, dc *DynCoefs) (err error) {
	if dc.Alfa {
		return ErrAlphaUnimplemented
	}
	dt := dc.Dt
	for _, n := range nodes {
		for i := 0; i < ndim; i++ {
			upred, vpred := dc.Predictor(n, i)
			if n.FixA[i] {
				n.U[i] = upred + dc.Beta*dt*dt*n.A[i]
			} else {
				n.A[i] = (n.U[i] - upred) / (dc.Beta * dt * dt)
			}
			if !n.FixV[i] {
				n.V[i] = vpred + dt*dc.Gamma*n.A[i]
			}
		}
		n.Uprev, n.Vprev, n.Aprev = n.U, n.V, n.A
	}
	return
}
