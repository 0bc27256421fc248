// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sync"
)

// StepContext holds the data of one time step
type StepContext struct {
	T  float64  // time at the end of the step
	Dt float64  // time step size
	Dc DynCoefs // coefficients computed with Dt
}

// NewStepContext returns the context of a step ending at t
func NewStepContext(t, dt float64, dc *DynCoefs) (c *StepContext, err error) {
	c = &StepContext{T: t, Dt: dt, Dc: *dc}
	err = c.Dc.Calc(dt)
	return
}

// Assembler assembles the global system of one domain. Rows of nodes not owned by
// the domain are skipped
type Assembler struct {
	Dom      *Domain         // domain
	Bcs      *BcManager      // boundary conditions
	Ls       LinearSystem    // global system
	Policy   DirichletPolicy // enforcement of prescribed displacements
	Nworkers int             // number of goroutines computing elemental matrices

	ready bool // elemental matrices have been computed
}

// NewAssembler returns a new assembler
func NewAssembler(dom *Domain, bcs *BcManager, ls LinearSystem, policy DirichletPolicy, nworkers int) *Assembler {
	if nworkers < 1 {
		nworkers = 1
	}
	return &Assembler{Dom: dom, Bcs: bcs, Ls: ls, Policy: policy, Nworkers: nworkers}
}

// Init computes the elemental mass and stiffness matrices and gravity vectors concurrently.
// When more than one element fails, the error of the element with the lowest index is returned
func (o *Assembler) Init() (err error) {
	if o.ready {
		return
	}
	elems := o.Dom.Elems
	errs := make([]error, len(elems))
	grav := o.Dom.Sim.Solver.Gravity
	chunk := (len(elems) + o.Nworkers - 1) / o.Nworkers
	var wg sync.WaitGroup
	for start := 0; start < len(elems); start += chunk {
		end := start + chunk
		if end > len(elems) {
			end = len(elems)
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for k := start; k < end; k++ {
				e := elems[k]
				if e.M, errs[k] = ElemMass(e); errs[k] != nil {
					continue
				}
				if e.K, errs[k] = ElemStiff(e); errs[k] != nil {
					continue
				}
				e.Fb, errs[k] = ElemGravity(e, grav)
			}
		}(start, end)
	}
	wg.Wait()
	for _, err = range errs {
		if err != nil {
			return
		}
	}
	o.ready = true
	return
}

// AssembleLHS adds cm M + ck K of all elements and the paraxial impedances to owned rows
func (o *Assembler) AssembleLHS(c *StepContext) (err error) {
	err = o.Init()
	if err != nil {
		return
	}
	cm, ck := c.Dc.Cm, c.Dc.Ck
	for _, e := range o.Dom.Elems {
		eqs := o.elemEqs(e.Nodes)
		for a, I := range eqs {
			if !o.Dom.OwnsDof(I) {
				continue
			}
			for b, J := range eqs {
				o.Ls.MatrixAddValue(I, J, cm*e.M[a][b]+ck*e.K[a][b])
			}
		}
	}
	for _, g := range o.Bcs.Paraxial {
		for _, f := range g.Faces {
			C, err := ParaxImpedance(f, &c.Dc)
			if err != nil {
				return err
			}
			eqs := o.elemEqs(f.Nodes)
			for a, I := range eqs {
				if !o.Dom.OwnsDof(I) {
					continue
				}
				for b, J := range eqs {
					o.Ls.MatrixAddValue(I, J, C[a][b])
				}
			}
		}
	}
	return
}

// AssembleRHS adds inertia, gravity, nodal forces, tractions and paraxial loads to owned rows
// without prescribed displacement and then enforces the prescribed displacements.
// It must be called after AssembleLHS of all domains sharing the system
func (o *Assembler) AssembleRHS(c *StepContext) (err error) {
	err = o.Init()
	if err != nil {
		return
	}
	b := o.Ls.Rhs()
	ndim := o.Dom.Ndim
	free := func(n *Node, i int) bool {
		return o.Dom.OwnsDof(n.Eqs[i]) && !n.FixU[i]
	}

	// inertia and gravity
	cm, am := c.Dc.Cm, c.Dc.AlfaM
	for _, e := range o.Dom.Elems {
		nverts := len(e.Nodes)
		w := make([]float64, ndim*nverts)
		for m, n := range e.Nodes {
			for i := 0; i < ndim; i++ {
				upred, _ := c.Dc.Predictor(n, i)
				w[ndim*m+i] = cm*upred - am*n.Aprev[i]
			}
		}
		for m, n := range e.Nodes {
			for i := 0; i < ndim; i++ {
				if !free(n, i) {
					continue
				}
				a := ndim*m + i
				for k := range w {
					b[n.Eqs[i]] += e.M[a][k] * w[k]
				}
				b[n.Eqs[i]] += e.Fb[a]
			}
		}
	}

	// nodal forces
	for _, n := range o.Dom.Nodes {
		for i := 0; i < ndim; i++ {
			if n.FixF[i] && free(n, i) {
				b[n.Eqs[i]] += n.Fext[i]
			}
		}
	}

	// tractions
	for _, g := range o.Bcs.Neumann {
		for _, f := range g.Faces {
			trib, err := FaceTributary(f)
			if err != nil {
				return err
			}
			for _, n := range f.Nodes {
				for i := 0; i < ndim; i++ {
					if free(n, i) {
						b[n.Eqs[i]] += f.Trac[i] * trib
					}
				}
			}
		}
	}

	// paraxial loads
	for _, g := range o.Bcs.Paraxial {
		for _, f := range g.Faces {
			fp, err := ParaxLoad(f, &c.Dc)
			if err != nil {
				return err
			}
			for m, n := range f.Nodes {
				for i := 0; i < ndim; i++ {
					if free(n, i) {
						b[n.Eqs[i]] += fp[ndim*m+i]
					}
				}
			}
		}
	}

	// prescribed displacements
	for _, n := range o.Dom.Nodes {
		for i := 0; i < ndim; i++ {
			if n.FixU[i] && o.Dom.OwnsDof(n.Eqs[i]) {
				o.Policy.Apply(o.Ls, n.Eqs[i], n.U[i])
			}
		}
	}
	return
}

// elemEqs returns the equation numbers of a set of nodes
func (o *Assembler) elemEqs(nodes []*Node) (eqs []int) {
	eqs = make([]int, 0, o.Dom.Ndim*len(nodes))
	for _, n := range nodes {
		eqs = append(eqs, n.Eqs...)
	}
	return
}
