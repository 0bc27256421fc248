// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/passmo/elastodyn/fem"
	"github.com/passmo/elastodyn/inp"
	"github.com/stretchr/testify/require"
)

func verbose() {
	chk.Verbose = true
}

// runBox runs the box simulation with nparts in-process partitions and extra recorders
func runBox(tst *testing.T, nparts int, recs ...fem.Recorder) (*inp.Simulation, *fem.FEM) {
	sim, err := inp.ReadSim("../fem/data/box.sim", "", false)
	require.NoError(tst, err)
	sim.DirOut = tst.TempDir()
	sim.Data.Nparts = nparts
	analysis, err := fem.NewFEMsim(sim, true, false)
	require.NoError(tst, err)
	analysis.Solver.Recs = append(analysis.Solver.Recs, recs...)
	require.NoError(tst, analysis.Run())
	return sim, analysis
}

// ownerOf returns the node owning vertex vid
func ownerOf(analysis *fem.FEM, vid int) *fem.Node {
	for _, d := range analysis.Domains {
		if n := d.Vid2node[vid]; n != nil && n.Own {
			return n
		}
	}
	return nil
}
