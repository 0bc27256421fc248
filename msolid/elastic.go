// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msolid implements the isotropic linear elastic material used by solid elements
package msolid

import (
	"math"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// ElastType selects one of the equivalent parameterisations of isotropic elasticity
type ElastType int

// parameterisations
const (
	YoungNu ElastType = iota // (ρ, E, ν)
	Lame                     // (ρ, λ, μ)
	Veloc                    // (ρ, vp, vs)
)

// String returns the key of the parameterisation
func (o ElastType) String() string {
	switch o {
	case YoungNu:
		return "young"
	case Lame:
		return "lame"
	case Veloc:
		return "vel"
	}
	return io.Sf("ElastType(%d)", int(o))
}

// ParseElastType finds the parameterisation from a key; e.g. "YoungModulus", "Lame" or "Velocities"
func ParseElastType(key string) (ElastType, error) {
	k := strings.ToLower(key)
	switch {
	case strings.Contains(k, "young"):
		return YoungNu, nil
	case strings.Contains(k, "lame"):
		return Lame, nil
	case strings.Contains(k, "vel"):
		return Veloc, nil
	}
	return 0, chk.Err("undefined elastic-property type %q. valid types contain \"young\", \"lame\" or \"vel\"", key)
}

// Props holds all (mutually derivable) properties of an isotropic linear elastic material
type Props struct {
	Rho    float64 // ρ: density
	Vp     float64 // p-wave velocity
	Vs     float64 // s-wave velocity
	Lambda float64 // λ: first Lamé parameter
	Mu     float64 // μ: shear modulus (second Lamé parameter)
	E      float64 // Young's modulus
	Nu     float64 // ν: Poisson's coefficient
}

// converters maps parameterisations to conversion functions
var converters = make(map[ElastType]func(rho, a, b float64) Props)

func init() {
	converters[YoungNu] = FromYoungNu
	converters[Lame] = FromLame
	converters[Veloc] = FromVeloc
}

// FromYoungNu computes all properties from (ρ, E, ν)
func FromYoungNu(rho, E, nu float64) (o Props) {
	o.Rho, o.E, o.Nu = rho, E, nu
	o.Lambda = nu * E / ((1.0 + nu) * (1.0 - 2.0*nu))
	o.Mu = E / 2.0 / (1.0 + nu)
	o.setVelocities()
	return
}

// FromLame computes all properties from (ρ, λ, μ)
func FromLame(rho, lambda, mu float64) (o Props) {
	o.Rho, o.Lambda, o.Mu = rho, lambda, mu
	x := lambda / mu
	o.Nu = x / 2.0 / (1.0 + x)
	o.E = 2.0 * mu * (1.0 + o.Nu)
	o.setVelocities()
	return
}

// FromVeloc computes all properties from (ρ, vp, vs)
func FromVeloc(rho, vp, vs float64) (o Props) {
	mu := rho * vs * vs
	lambda := rho*vp*vp - 2.0*mu
	o = FromLame(rho, lambda, mu)
	o.Vp, o.Vs = vp, vs
	return
}

// Convert computes all properties given one parameterisation
//  typ == YoungNu => a=E, b=ν
//  typ == Lame    => a=λ, b=μ
//  typ == Veloc   => a=vp, b=vs
func Convert(typ ElastType, rho, a, b float64) (o Props, err error) {
	conv, ok := converters[typ]
	if !ok {
		err = chk.Err("undefined elastic-property type %v", typ)
		return
	}
	o = conv(rho, a, b)
	err = o.Check()
	return
}

// Check checks that ρ, μ and the bulk modulus are positive
func (o Props) Check() (err error) {
	if o.Rho <= 0 {
		return chk.Err("density must be positive. ρ = %g is invalid", o.Rho)
	}
	if o.Mu <= 0 {
		return chk.Err("shear modulus must be positive. μ = %g is invalid", o.Mu)
	}
	if K := o.Bulk(); K <= 0 {
		return chk.Err("bulk modulus must be positive. K = %g is invalid", K)
	}
	return
}

// Bulk returns the bulk modulus K = λ + 2μ/3
func (o Props) Bulk() float64 {
	return o.Lambda + 2.0*o.Mu/3.0
}

// Get returns the pair of properties corresponding to a parameterisation
func (o Props) Get(typ ElastType) (a, b float64) {
	switch typ {
	case YoungNu:
		return o.E, o.Nu
	case Lame:
		return o.Lambda, o.Mu
	}
	return o.Vp, o.Vs
}

// setVelocities computes vp and vs from λ, μ and ρ
func (o *Props) setVelocities() {
	o.Vp = math.Sqrt((o.Lambda + 2.0*o.Mu) / o.Rho)
	o.Vs = math.Sqrt(o.Mu / o.Rho)
}
