// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytical solutions
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Oscillator implements the solution of the undamped single degree of freedom oscillator
//
//      m ü + k u = 0   with   u(0) = u0  and  u̇(0) = v0
//
//   ┌───/\/\/\/\───┬─────┐
//   ▒      k       │  m  │ ──> u
//   ▒              └─────┘
type Oscillator struct {
	M  float64 // mass
	K  float64 // stiffness
	U0 float64 // initial displacement
	V0 float64 // initial velocity
	ω  float64 // natural frequency
}

// NewOscillator returns a new oscillator
func NewOscillator(m, k, u0, v0 float64) (o *Oscillator, err error) {
	if m <= 0 || k <= 0 {
		return nil, chk.Err("mass and stiffness must be positive. m = %g, k = %g is invalid", m, k)
	}
	return &Oscillator{M: m, K: k, U0: u0, V0: v0, ω: math.Sqrt(k / m)}, nil
}

// Omega returns the natural (angular) frequency
func (o *Oscillator) Omega() float64 { return o.ω }

// Period returns the natural period
func (o *Oscillator) Period() float64 { return 2.0 * math.Pi / o.ω }

// Displ returns u(t)
func (o *Oscillator) Displ(t float64) float64 {
	return o.U0*math.Cos(o.ω*t) + o.V0/o.ω*math.Sin(o.ω*t)
}

// Veloc returns u̇(t)
func (o *Oscillator) Veloc(t float64) float64 {
	return -o.U0*o.ω*math.Sin(o.ω*t) + o.V0*math.Cos(o.ω*t)
}

// Accel returns ü(t)
func (o *Oscillator) Accel(t float64) float64 {
	return -o.ω * o.ω * o.Displ(t)
}

// Energy returns the total energy ½ m v² + ½ k u²
func (o *Oscillator) Energy(u, v float64) float64 {
	return 0.5*o.M*v*v + 0.5*o.K*u*u
}
