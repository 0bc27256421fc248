// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verbose() {
	chk.Verbose = true
}

func checkBoxSim(tst *testing.T, sim *Simulation) {
	assert.Equal(tst, "two-cell box", sim.Data.Desc)
	assert.Equal(tst, "json", sim.EncType)
	assert.Equal(tst, "box", sim.Key)
	chk.Int(tst, "ndim", sim.Ndim, 2)
	chk.Int(tst, "outevery", sim.Data.OutEvery, 1)
	assert.True(tst, sim.Data.Nworkers > 0)

	// solver
	chk.Float64(tst, "t0", 1e-17, sim.Solver.T0, 0)
	chk.Float64(tst, "tf", 1e-17, sim.Solver.Tf, 1)
	chk.Float64(tst, "dt", 1e-17, sim.Solver.Dt, 0.3)
	chk.Float64(tst, "gamma", 1e-17, sim.Solver.Gamma, 0.5)
	chk.Float64(tst, "beta", 1e-17, sim.Solver.Beta, 0.25)
	chk.Float64(tst, "penalty", 1e-17, sim.Solver.Penalty, 1e30)
	chk.Int(tst, "linopnstep", sim.Solver.LinopNstep, 5)
	chk.Ints(tst, "nint", sim.Solver.Nint, []int{2, 2})
	chk.Array(tst, "gravity", 1e-17, sim.Solver.Gravity, []float64{0, -10, 0})
	assert.Equal(tst, "RowElimination", sim.Solver.Dirichlet)
	assert.Equal(tst, "young", sim.Solver.ElastType)

	// materials
	chk.Float64(tst, "rho", 1e-17, sim.Elast.Rho, 2000)
	chk.Float64(tst, "young", 1e-17, sim.Elast.Young, 1e7)
	require.Len(tst, sim.MatGroups, 1)
	assert.Equal(tst, "vel", sim.MatGroups[0].Type)
	chk.Float64(tst, "vs", 1e-17, sim.MatGroups[0].Vs, 150)
	require.Len(tst, sim.CellConds, 1)
	require.NotNil(tst, sim.CellConds[0].VolStress)
	assert.Nil(tst, sim.CellConds[0].DevStress)
	chk.Float64(tst, "volstress", 1e-17, *sim.CellConds[0].Values().VolStress, -100)

	// conditions
	require.Len(tst, sim.DirichletSurf, 1)
	u := sim.DirichletSurf[0].U
	require.NotNil(tst, u)
	assert.True(tst, u.Imposed(0))
	assert.True(tst, u.Imposed(1))
	assert.False(tst, u.Imposed(2))
	assert.Nil(tst, sim.DirichletSurf[0].A)
	require.Len(tst, sim.DirichletPoint, 1)
	a := sim.DirichletPoint[0].A
	require.NotNil(tst, a)
	assert.True(tst, a.Imposed(0))
	assert.False(tst, a.Imposed(1))
	assert.Equal(tst, filepath.Join("data", "acc.crv"), a.Curve)
	require.Len(tst, sim.Neumann, 1)
	chk.Float64(tst, "ty", 1e-17, sim.Neumann[0].T.Const(1), -5)
	chk.Float64(tst, "tx", 1e-17, sim.Neumann[0].T.Const(0), 0)
	require.Len(tst, sim.Paraxial, 1)
	assert.Nil(tst, sim.Paraxial[0].Young)
}

func Test_sim01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim01")

	sim, err := ReadSim("data/box.sim", "", false)
	require.NoError(tst, err)
	checkBoxSim(tst, sim)
	if chk.Verbose {
		sim.GetInfo(os.Stdout)
		io.Pf("\n")
	}
}

func Test_sim02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim02")

	sim, err := ReadSim("data/box.yaml", "", false)
	require.NoError(tst, err)
	checkBoxSim(tst, sim)

	sim, err = ReadSim("data/box.yaml", "alias", false)
	require.NoError(tst, err)
	assert.Equal(tst, "box-alias", sim.Key)
}

func Test_sim03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("sim03")

	msh, err := ReadMsh("data", "box.msh")
	require.NoError(tst, err)

	sim := NewSimulation()
	sim.Msh = msh
	require.NoError(tst, sim.PostProcess())
	assert.Equal(tst, "gob", sim.EncType)
	assert.Equal(tst, "Penalty", sim.Solver.Dirichlet)

	sim.Solver.Dt = 0
	assert.Error(tst, sim.PostProcess())

	sim.Solver.Dt = 0.1
	sim.Solver.Tf = -1
	assert.Error(tst, sim.PostProcess())

	sim.Solver.Tf = 1
	sim.Solver.ElastType = "bulk"
	assert.Error(tst, sim.PostProcess())

	sim.Solver.ElastType = "lame"
	sim.MatGroups = []*MatGroup{{Tag: -1, Type: "unknown"}}
	assert.Error(tst, sim.PostProcess())

	sim.Msh = nil
	assert.Error(tst, sim.PostProcess())

	_, err = ReadSim("data/nonexistent.sim", "", false)
	assert.Error(tst, err)
}
