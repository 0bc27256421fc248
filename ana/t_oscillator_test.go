// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verbose() {
	chk.Verbose = true
}

func Test_oscillator01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("oscillator01")

	sol, err := NewOscillator(2, 8, 0.1, 0.4)
	require.NoError(tst, err)
	chk.Float64(tst, "ω", 1e-15, sol.Omega(), 2)
	chk.Float64(tst, "T", 1e-15, sol.Period(), math.Pi)

	// initial values
	chk.Float64(tst, "u(0)", 1e-15, sol.Displ(0), 0.1)
	chk.Float64(tst, "v(0)", 1e-15, sol.Veloc(0), 0.4)
	chk.Float64(tst, "a(0)", 1e-15, sol.Accel(0), -0.4)

	// periodicity and energy conservation
	E0 := sol.Energy(sol.Displ(0), sol.Veloc(0))
	for _, t := range []float64{0.3, 1.1, 2.5, sol.Period()} {
		io.Pforan("t = %v  u = %v\n", t, sol.Displ(t))
		chk.Float64(tst, "E", 1e-14, sol.Energy(sol.Displ(t), sol.Veloc(t)), E0)
		chk.Float64(tst, "m a + k u", 1e-14, sol.M*sol.Accel(t)+sol.K*sol.Displ(t), 0)
	}
	chk.Float64(tst, "u(T)", 1e-14, sol.Displ(sol.Period()), 0.1)

	_, err = NewOscillator(0, 1, 0, 0)
	assert.Error(tst, err)
}
