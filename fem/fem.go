// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fem implements the finite element method for linear elastodynamics
package fem

import (
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/passmo/elastodyn/inp"
	"github.com/passmo/elastodyn/lsys"
)

// FEM holds all data for a simulation using the finite element method
type FEM struct {
	Sim     *inp.Simulation // simulation data
	Summary *Summary        // summary structure; nil if not saved
	Comm    Comm            // communicator
	Domains []*Domain       // domains of this processor
	Solver  *Solver         // time loop
	Nproc   int             // number of processors
	Proc    int             // processor id
	Verbose bool            // show messages
}

// NewFEM returns a new FEM structure
//  Input:
//   simfilepath   -- simulation (.sim, .yaml) filename including full path
//   alias         -- word to be appended to simulation key; e.g. when running multiple FE solutions
//   erasePrev     -- erase previous results files
//   saveSummary   -- save summary and nodal results
//   allowParallel -- allow parallel execution; otherwise, run in serial mode regardless whether MPI is on or not
//   verbose       -- show messages
func NewFEM(simfilepath, alias string, erasePrev, saveSummary, allowParallel, verbose bool) (o *FEM, err error) {
	sim, err := inp.ReadSim(simfilepath, alias, erasePrev)
	if err != nil {
		return nil, err
	}
	sim.Data.ShowMsg = sim.Data.ShowMsg || verbose
	return NewFEMsim(sim, saveSummary, allowParallel)
}

// NewFEMsim returns a new FEM structure given the simulation data
func NewFEMsim(sim *inp.Simulation, saveSummary, allowParallel bool) (o *FEM, err error) {

	// new FEM object
	o = new(FEM)
	o.Sim = sim

	// multiprocessing data
	o.Nproc = 1
	var reducer lsys.Reducer
	switch {
	case allowParallel && mpi.IsOn() && mpi.WorldSize() > 1:
		mc := NewMpiComm()
		o.Comm = mc
		o.Proc, o.Nproc = mc.Rank(), mc.Size()
		if o.Nproc != sim.Msh.Nparts {
			return nil, chk.Err("number of processors must be equal to the number of partitions defined in mesh file. %d != %d", o.Nproc, sim.Msh.Nparts)
		}
		reducer = mc.Reduce
		d, err := NewDomain(sim, o.Proc, true)
		if err != nil {
			return nil, err
		}
		o.Domains = []*Domain{d}
	case sim.Data.Nparts > 1:
		if sim.Data.Nparts != sim.Msh.Nparts {
			return nil, chk.Err("number of partitions must be equal to the number of partitions defined in mesh file. %d != %d", sim.Data.Nparts, sim.Msh.Nparts)
		}
		o.Comm = LocalComm{}
		for part := 0; part < sim.Data.Nparts; part++ {
			d, err := NewDomain(sim, part, true)
			if err != nil {
				return nil, err
			}
			o.Domains = append(o.Domains, d)
		}
	default:
		o.Comm = LocalComm{}
		d, err := NewDomain(sim, 0, false)
		if err != nil {
			return nil, err
		}
		o.Domains = []*Domain{d}
	}
	o.Verbose = sim.Data.ShowMsg && o.Proc == 0
	sim.Data.ShowMsg = o.Verbose

	// linear system
	ls, err := GetLinearSystem(sim.LinSol.Name, reducer)
	if err != nil {
		return nil, err
	}

	// solver
	o.Solver, err = NewSolver(o.Domains, ls, o.Comm)
	if err != nil {
		return nil, err
	}

	// summary
	if saveSummary {
		o.Summary = NewSummary(sim, o.Proc, o.Nproc)
		o.Solver.Recs = append(o.Solver.Recs, o.Summary)
	}
	if o.Verbose {
		for _, d := range o.Domains {
			io.Pf("%v\n", d)
		}
	}
	return
}

// Run runs FE simulation
func (o *FEM) Run() (err error) {
	cputime := time.Now()
	err = o.Solver.Run()
	if err != nil {
		return
	}
	if o.Summary != nil {
		err = o.Summary.Save()
		if err != nil {
			return
		}
	}
	if o.Verbose {
		io.Pf("> cpu time = %v\n", time.Since(cputime))
	}
	return
}
