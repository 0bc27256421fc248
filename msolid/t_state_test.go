// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msolid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_state01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("state01")

	var state0 IniState
	vol, dev := 1e-3, 2e-3
	state0.Set(&IniValues{VolStrain: &vol, DevStress: &dev})
	io.Pforan("state0 = %+v\n", state0)
	chk.Float64(tst, "volstrain", 1e-17, state0.VolStrain, 1e-3)
	chk.Float64(tst, "devstress", 1e-17, state0.DevStress, 2e-3)
	chk.Float64(tst, "devstrain", 1e-17, state0.DevStrain, 0)
	chk.Float64(tst, "volstress", 1e-17, state0.VolStress, 0)

	// later values override only what they set
	vs := -5.0
	state0.Set(&IniValues{VolStress: &vs})
	chk.Float64(tst, "volstrain", 1e-17, state0.VolStrain, 1e-3)
	chk.Float64(tst, "volstress", 1e-17, state0.VolStress, -5)
}
