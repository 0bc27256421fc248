// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"path/filepath"
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/passmo/elastodyn/inp"
	"github.com/passmo/elastodyn/msolid"
)

// warnf prints warnings; only the domain of the first partition prints
var warnf = io.Pfyel

// indices of kinematic quantities in DirichletGroup.Qty
const (
	QtyU = iota // displacement
	QtyV        // velocity
	QtyA        // acceleration
	QtyF        // nodal force
)

var qtyKeys = []string{"u", "v", "a", "f"}

// Curves holds curves loaded once and shared by all groups; filename => curve
type Curves map[string]*inp.Curve

// Get returns an existent curve or reads it
func (o Curves) Get(fname string) (crv *inp.Curve, err error) {
	if crv, ok := o[fname]; ok {
		return crv, nil
	}
	crv, err = inp.ReadCurve(fname)
	if err != nil {
		return
	}
	o[fname] = crv
	return
}

// BcQty holds a vector quantity given by constants and/or a curve
type BcQty struct {
	Val  *inp.BcValue // input data; nil if not given
	Crv  *inp.Curve   // curve; nil if not given
	Mask [3]bool      // imposed components
}

// Value returns component i at time t; the curve overrides the constant
func (o *BcQty) Value(t float64, i int) float64 {
	if o.Crv != nil && o.Val.Axis(i) {
		return o.Crv.Value(t)[i]
	}
	return o.Val.Const(i)
}

// DirichletGroup holds kinematic conditions on a set of nodes
type DirichletGroup struct {
	Point   bool     // point (vertex tag) group; otherwise surface (face tag) group
	Tag     int      // tag
	Nodes   []*Node  // nodes in this domain
	Qty     [4]BcQty // u, v, a and f
	Coupled [3]bool  // displacement imposed only because acceleration or velocity is imposed (point groups)
}

// NeumannGroup holds tractions on a set of faces
type NeumannGroup struct {
	Tag   int     // face tag
	Faces []*Face // faces in this domain
	Qty   BcQty   // traction
}

// ParaxialGroup holds absorbing faces
type ParaxialGroup struct {
	Tag      int     // face tag
	Faces    []*Face // faces in this domain
	Fallback bool    // properties taken from the adjoining cells
}

// BcManager holds all boundary conditions of one domain
type BcManager struct {
	Dom       *Domain
	Dirichlet []*DirichletGroup
	Neumann   []*NeumannGroup
	Paraxial  []*ParaxialGroup
	curves    Curves
}

// NewBcManager loads all curves and resolves the masks of all conditions of one domain
//  curves -- shared curves; may be nil
func NewBcManager(dom *Domain, curves Curves) (o *BcManager, err error) {
	o = &BcManager{Dom: dom, curves: curves}
	if o.curves == nil {
		o.curves = make(Curves)
	}
	sim, msh := dom.Sim, dom.Msh

	// Dirichlet: surface, then point
	for _, c := range sim.DirichletSurf {
		g, err := o.newDirichlet(c, false, msh.FaceTag2verts[c.Tag])
		if err != nil {
			return nil, chk.Err("Dirichlet surface condition with tag %d:\n%v", c.Tag, err)
		}
		o.Dirichlet = append(o.Dirichlet, g)
	}
	for _, c := range sim.DirichletPoint {
		var vids []int
		for _, v := range msh.VertTag2verts[c.Tag] {
			vids = append(vids, v.Id)
		}
		g, err := o.newDirichlet(c, true, vids)
		if err != nil {
			return nil, chk.Err("Dirichlet point condition with tag %d:\n%v", c.Tag, err)
		}
		o.Dirichlet = append(o.Dirichlet, g)
	}

	// Neumann
	for _, c := range sim.Neumann {
		g := &NeumannGroup{Tag: c.Tag}
		g.Qty, err = o.newQty(&c.T)
		if err != nil {
			return nil, chk.Err("Neumann condition with tag %d:\n%v", c.Tag, err)
		}
		g.Faces, err = o.faces(c.Tag)
		if err != nil {
			return
		}
		o.Neumann = append(o.Neumann, g)
	}

	// paraxial
	for _, c := range sim.Paraxial {
		g := &ParaxialGroup{Tag: c.Tag}
		g.Faces, err = o.faces(c.Tag)
		if err != nil {
			return
		}
		err = o.initParaxial(g, c)
		if err != nil {
			return nil, chk.Err("paraxial condition with tag %d:\n%v", c.Tag, err)
		}
		o.Paraxial = append(o.Paraxial, g)
	}
	return
}

// ApplyDirichlet sets the prescribed values at time t. dc must hold the coefficients of the current step
func (o *BcManager) ApplyDirichlet(t float64, dc *DynCoefs) {
	ndim := o.Dom.Ndim
	for _, g := range o.Dirichlet {
		u, v, a, f := &g.Qty[QtyU], &g.Qty[QtyV], &g.Qty[QtyA], &g.Qty[QtyF]
		for i := 0; i < ndim; i++ {
			for _, n := range g.Nodes {
				if a.Mask[i] {
					n.A[i] = a.Value(t, i)
				}
				if v.Mask[i] {
					n.V[i] = v.Value(t, i)
				}
				switch {
				case u.Mask[i]:
					n.U[i] = u.Value(t, i)
				case g.Coupled[i] && a.Mask[i]:
					n.U[i] = dc.DisplFromAcc(n, i, n.A[i])
				case g.Coupled[i] && v.Mask[i]:
					n.U[i] = dc.DisplFromAcc(n, i, dc.AccFromVel(n, i, n.V[i]))
				}
				if f.Mask[i] {
					n.Fext[i] = f.Value(t, i)
				}
			}
		}
	}
}

// ApplyNeumann sets the tractions at time t
func (o *BcManager) ApplyNeumann(t float64) {
	ndim := o.Dom.Ndim
	for _, g := range o.Neumann {
		for _, f := range g.Faces {
			for i := 0; i < ndim; i++ {
				f.Trac[i] = 0
				if g.Qty.Mask[i] {
					f.Trac[i] = g.Qty.Value(t, i)
				}
			}
		}
	}
}

// Listing returns a table with all groups and the resolved masks
//  x => imposed; c => imposed because of acceleration or velocity; . => free
func (o *BcManager) Listing() string {
	var b bytes.Buffer
	ndim := o.Dom.Ndim
	for _, g := range o.Dirichlet {
		kind := "dirichlet-surf"
		if g.Point {
			kind = "dirichlet-point"
		}
		b.WriteString(io.Sf("%-16s tag=%-4d nnodes=%-3d", kind, g.Tag, len(g.Nodes)))
		for k, key := range qtyKeys {
			coupled := [3]bool{}
			if k == QtyU {
				coupled = g.Coupled
			}
			b.WriteString(io.Sf(" %s=%s", key, maskString(g.Qty[k].Mask, coupled, ndim)))
		}
		b.WriteString(curveNames(g.Qty[:]))
		b.WriteString("\n")
	}
	for _, g := range o.Neumann {
		b.WriteString(io.Sf("%-16s tag=%-4d nfaces=%-3d t=%s", "neumann", g.Tag, len(g.Faces), maskString(g.Qty.Mask, [3]bool{}, ndim)))
		b.WriteString(curveNames([]BcQty{g.Qty}))
		b.WriteString("\n")
	}
	for _, g := range o.Paraxial {
		b.WriteString(io.Sf("%-16s tag=%-4d nfaces=%-3d", "paraxial", g.Tag, len(g.Faces)))
		if len(g.Faces) > 0 {
			f := g.Faces[0]
			b.WriteString(io.Sf(" rho=%g vel=%v", f.Rho, f.Vel[:ndim]))
		}
		if g.Fallback {
			b.WriteString(" (inner)")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// newQty loads the curve and resolves the mask of one quantity
func (o *BcManager) newQty(val *inp.BcValue) (q BcQty, err error) {
	if val == nil {
		return
	}
	q.Val = val
	if val.Curve != "" {
		q.Crv, err = o.curves.Get(val.Curve)
		if err != nil {
			return
		}
	}
	for i := 0; i < o.Dom.Ndim; i++ {
		q.Mask[i] = val.Imposed(i)
	}
	return
}

// newDirichlet allocates a Dirichlet group and sets the flags of its nodes
func (o *BcManager) newDirichlet(c *inp.DirichletCond, point bool, vids []int) (g *DirichletGroup, err error) {
	g = &DirichletGroup{Point: point, Tag: c.Tag}
	for k, val := range []*inp.BcValue{c.U, c.V, c.A, c.F} {
		g.Qty[k], err = o.newQty(val)
		if err != nil {
			return
		}
	}

	// point conditions: imposed acceleration or velocity => imposed displacement
	if point {
		for i := 0; i < o.Dom.Ndim; i++ {
			if !g.Qty[QtyU].Mask[i] && (g.Qty[QtyA].Mask[i] || g.Qty[QtyV].Mask[i]) {
				g.Coupled[i] = true
			}
		}
	}

	// nodes
	for _, vid := range vids {
		if n := o.Dom.Vid2node[vid]; n != nil {
			g.Nodes = append(g.Nodes, n)
		}
	}
	for _, n := range g.Nodes {
		for i := 0; i < o.Dom.Ndim; i++ {
			n.FixU[i] = n.FixU[i] || g.Qty[QtyU].Mask[i] || g.Coupled[i]
			n.FixV[i] = n.FixV[i] || g.Qty[QtyV].Mask[i]
			n.FixA[i] = n.FixA[i] || g.Qty[QtyA].Mask[i]
			n.FixF[i] = n.FixF[i] || g.Qty[QtyF].Mask[i]
		}
	}
	return
}

// faces allocates the faces with a given tag belonging to elements in this domain
func (o *BcManager) faces(tag int) (faces []*Face, err error) {
	for _, cf := range o.Dom.Msh.FaceTag2cells[tag] {
		e := o.Dom.Cid2elem[cf.C.Id]
		if e == nil {
			continue
		}
		f, err := o.Dom.NewFace(e, cf.Fid, tag)
		if err != nil {
			return nil, err
		}
		faces = append(faces, f)
	}
	return
}

// initParaxial computes the impedance data and frames of paraxial faces
func (o *BcManager) initParaxial(g *ParaxialGroup, c *inp.ParaxialCond) (err error) {
	g.Fallback = (c.Young == nil || c.Nu == nil) && (c.Cp == nil || c.Cs == nil) && (c.Lambda == nil || c.Mu == nil)
	if g.Fallback && o.Dom.Part == 0 && o.Dom.Sim.Data.ShowMsg {
		warnf("warning: paraxial condition with tag %d has no properties; using the adjoining cells\n", g.Tag)
	}
	for _, f := range g.Faces {
		rho := f.Elem.Mat.Rho
		if c.Rho != nil {
			rho = *c.Rho
		}
		var cp, cs float64
		switch {
		case c.Young != nil && c.Nu != nil:
			p, err := msolid.Convert(msolid.YoungNu, rho, *c.Young, *c.Nu)
			if err != nil {
				return err
			}
			cp, cs = p.Vp, p.Vs
		case c.Cp != nil && c.Cs != nil:
			cp, cs = *c.Cp, *c.Cs
			if rho <= 0 || cs <= 0 || cp <= cs {
				return chk.Err("paraxial velocities require ρ > 0 and cp > cs > 0. ρ = %g, cp = %g, cs = %g is invalid", rho, cp, cs)
			}
		case c.Lambda != nil && c.Mu != nil:
			p, err := msolid.Convert(msolid.Lame, rho, *c.Lambda, *c.Mu)
			if err != nil {
				return err
			}
			cp, cs = p.Vp, p.Vs
		default:
			rho, cp, cs = f.Elem.Mat.Rho, f.Elem.Mat.Vp, f.Elem.Mat.Vs
		}
		f.Rho = rho
		if o.Dom.Ndim == 3 {
			f.Vel = [3]float64{cs, cs, cp}
		} else {
			f.Vel = [3]float64{cs, cp, 0}
		}
		err = f.SetFrame()
		if err != nil {
			return
		}
	}
	return
}

// maskString returns the mask as [x . c]
func maskString(mask, coupled [3]bool, ndim int) string {
	l := "["
	for i := 0; i < ndim; i++ {
		if i > 0 {
			l += " "
		}
		switch {
		case coupled[i]:
			l += "c"
		case mask[i]:
			l += "x"
		default:
			l += "."
		}
	}
	return l + "]"
}

// curveNames lists the curves of quantities
func curveNames(qty []BcQty) (l string) {
	var names []string
	for k, q := range qty {
		if q.Crv != nil {
			key := "t"
			if len(qty) == len(qtyKeys) {
				key = qtyKeys[k]
			}
			names = append(names, io.Sf("%s:%s", key, filepath.Base(q.Crv.Fname)))
		}
	}
	sort.Strings(names)
	for _, n := range names {
		l += " curve(" + n + ")"
	}
	return
}
