// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// TimeTol is the tolerance, relative to dt, to detect the final time
const TimeTol = 1e-10

// Recorder receives the state of all domains at output times
type Recorder interface {
	Record(t float64, doms []*Domain) error
}

// Solver runs the time loop of the linear elastodynamics problem
type Solver struct {

	// collaborators
	Doms []*Domain       // domains of this processor
	Bcs  []*BcManager    // boundary conditions of each domain
	Asms []*Assembler    // assemblers of each domain
	Ls   LinearSystem    // global system shared by all domains of this processor
	Comm Comm            // communicator
	Recs []Recorder      // recorders; may be empty
	Dc   DynCoefs        // dynamic coefficients
	Meth DirichletMethod // Dirichlet method

	// time control
	T0, T, Tf, Dt float64

	// linear operator reuse
	LinopNstep  int  // number of steps between rebuilds
	KeepConstop bool // linopNstep > number of planned steps => never rebuild
	Counter     int  // steps since last rebuild

	// statistics
	Nsteps  int       // number of steps done
	Times   []float64 // times at the end of each step
	ShowMsg bool      // show messages
}

// NewSolver allocates a solver; all configuration errors are detected here
func NewSolver(doms []*Domain, ls LinearSystem, comm Comm) (o *Solver, err error) {
	if len(doms) < 1 {
		return nil, chk.Err("at least one domain is required")
	}
	sim := doms[0].Sim
	o = &Solver{Doms: doms, Ls: ls, Comm: comm}
	o.ShowMsg = sim.Data.ShowMsg

	// coefficients
	err = o.Dc.Init(&sim.Solver)
	if err != nil {
		return nil, err
	}
	if o.Dc.Alfa && o.ShowMsg {
		io.Pfyel("warning: generalized-α coefficients are used for assembling but the update is not implemented\n")
	}

	// Dirichlet policy
	o.Meth, err = ParseDirichletMethod(sim.Solver.Dirichlet)
	if err != nil {
		return nil, err
	}
	policy, err := NewDirichletPolicy(o.Meth, sim.Solver.Penalty)
	if err != nil {
		return nil, err
	}

	// boundary conditions and assemblers
	curves := make(Curves)
	for _, d := range doms {
		bcs, err := NewBcManager(d, curves)
		if err != nil {
			return nil, err
		}
		o.Bcs = append(o.Bcs, bcs)
		o.Asms = append(o.Asms, NewAssembler(d, bcs, ls, policy, sim.Data.Nworkers))
	}

	// time control
	o.T0, o.T, o.Tf, o.Dt = sim.Solver.T0, sim.Solver.T0, sim.Solver.Tf, sim.Solver.Dt
	o.Dt = math.Min(o.Dt, o.Tf-o.T0)
	o.LinopNstep = sim.Solver.LinopNstep
	nsteps := int((o.Tf - o.T0) / o.Dt)
	o.KeepConstop = o.LinopNstep > nsteps
	return
}

// Step runs one time step; done is true when the final time has been reached
func (o *Solver) Step() (done bool, err error) {

	// linear operator: reuse structure or rebuild
	o.Counter++
	if o.Ls.IsInitialized() && (o.Counter < o.LinopNstep || o.KeepConstop) {
		o.Ls.ClearValues()
	} else {
		o.Ls.Reset()
		err = o.Ls.Initialize(o.Doms[0].Ndof, "displacement")
		if err != nil {
			return
		}
		o.Counter = 0
	}

	// context
	o.T += o.Dt
	c, err := NewStepContext(o.T, o.Dt, &o.Dc)
	if err != nil {
		return
	}
	if o.ShowMsg {
		io.Pf("> t = %g  dt = %g\n", o.T, o.Dt)
	}

	// boundary values
	for _, bcs := range o.Bcs {
		bcs.ApplyDirichlet(c.T, &c.Dc)
		bcs.ApplyNeumann(c.T)
	}

	// assemble
	for _, asm := range o.Asms {
		err = asm.AssembleLHS(c)
		if err != nil {
			return false, fmt.Errorf("cannot assemble LHS at t = %g:\n%w", c.T, err)
		}
	}
	for _, asm := range o.Asms {
		err = asm.AssembleRHS(c)
		if err != nil {
			return false, fmt.Errorf("cannot assemble RHS at t = %g:\n%w", c.T, err)
		}
	}

	// solve
	err = o.Ls.Solve()
	if err != nil {
		return false, chk.Err("cannot solve linear system at t = %g:\n%v", c.T, err)
	}
	x := o.Ls.Solution()
	for _, d := range o.Doms {
		for _, n := range d.Nodes {
			for i, eq := range n.Eqs {
				n.U[i] = x[eq]
			}
		}
	}
	for _, bcs := range o.Bcs {
		bcs.ApplyDirichlet(c.T, &c.Dc)
	}

	// update
	for _, d := range o.Doms {
		err = NewmarkUpdate(d.Nodes, d.Ndim, &c.Dc)
		if err != nil {
			return false, fmt.Errorf("cannot update state at t = %g: %w", c.T, err)
		}
	}
	o.Comm.SyncNodes(o.Doms)
	o.Nsteps++
	o.Times = append(o.Times, o.T)

	// termination and last step size
	if o.T >= o.Tf || o.Tf-o.T < TimeTol*o.Dt {
		return true, nil
	}
	if o.T+o.Dt > o.Tf {
		o.Dt = o.Tf - o.T
	}
	return
}

// Run runs all time steps. The recorders are called at the initial time, every outevery steps
// and at the final time
func (o *Solver) Run() (err error) {
	outevery := o.Doms[0].Sim.Data.OutEvery
	err = o.record()
	if err != nil {
		return
	}
	for {
		done, err := o.Step()
		if err != nil {
			return err
		}
		if done || o.Nsteps%outevery == 0 {
			err = o.record()
			if err != nil {
				return err
			}
		}
		if done {
			break
		}
	}
	if o.ShowMsg {
		io.Pf("> %d steps done\n", o.Nsteps)
	}
	return
}

// record calls all recorders
func (o *Solver) record() (err error) {
	for _, r := range o.Recs {
		err = r.Record(o.T, o.Doms)
		if err != nil {
			return chk.Err("cannot record results at t = %g:\n%v", o.T, err)
		}
	}
	return
}
