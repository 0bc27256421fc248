// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/passmo/elastodyn/inp"
	"github.com/passmo/elastodyn/msolid"
	"github.com/passmo/elastodyn/shp"
)

// Node holds the kinematic state of one vertex
type Node struct {
	Vert *inp.Vert // vertex
	Eqs  []int     // [ndim] equation numbers: eq = ndim * vertId + axis

	// state
	U, V, A             [3]float64 // current displacement, velocity and acceleration
	Uprev, Vprev, Aprev [3]float64 // previous displacement, velocity and acceleration
	Fext                [3]float64 // imposed nodal force

	// imposed components
	FixU, FixV, FixA, FixF [3]bool

	// ownership
	Part int  // partition owning this node: smallest partition among the cells sharing it
	Own  bool // node is owned by this domain
}

// Elem holds one cell and its material
type Elem struct {
	Cell  *inp.Cell       // cell
	Nodes []*Node         // [nverts] nodes
	X     [][]float64     // [ndim][nverts] coordinates
	Gd    *shp.GaussData  // quadrature table
	Mat   msolid.Props    // material properties
	Ini   msolid.IniState // initial state
	Ghost bool            // cell belongs to another partition

	// cached elemental matrices and gravity vector
	M, K [][]float64
	Fb   []float64
}

// Face holds one boundary face
type Face struct {
	Elem  *Elem          // owning element
	Fid   int            // local face index
	Tag   int            // face tag
	Nodes []*Node        // [nvertsOnFace] nodes
	X     [][]float64    // [ndim][nvertsOnFace] coordinates
	Gd    *shp.GaussData // quadrature table of face

	// traction
	Trac [3]float64

	// paraxial
	Rho        float64    // density
	Vel        [3]float64 // velocities along E1, E2, E3: 3D (cs, cs, cp); 2D (cs, cp, 0)
	E1, E2, E3 [3]float64 // local frame; 3D: normal == E3; 2D: normal == E2
}

// Domain holds the nodes and elements of one partition, including a ghost layer
type Domain struct {
	Sim   *inp.Simulation // simulation data
	Msh   *inp.Mesh       // mesh
	Ndim  int             // space dimension
	Part  int             // partition of this domain
	Distr bool            // more than one partition
	Ndof  int             // total number of equations == ndim * nverts

	Nodes    []*Node // nodes (owned and ghost) sorted by vertex id
	Elems    []*Elem // elements: own elements first, then ghosts
	Vid2node []*Node // [nverts] vertex id => node; nil if not in domain
	Cid2elem []*Elem // [ncells] cell id => element; nil if not in domain

	gauss map[string]*shp.GaussData // quadrature tables by shape type
}

// NewDomain allocates a domain for partition part
//  distr -- the mesh is split by partition; otherwise all cells go to one domain
func NewDomain(sim *inp.Simulation, part int, distr bool) (o *Domain, err error) {

	// basic data
	o = new(Domain)
	o.Sim = sim
	o.Msh = sim.Msh
	o.Ndim = o.Msh.Ndim
	o.Part = part
	o.Distr = distr
	o.Ndof = o.Ndim * len(o.Msh.Verts)
	o.Vid2node = make([]*Node, len(o.Msh.Verts))
	o.Cid2elem = make([]*Elem, len(o.Msh.Cells))
	o.gauss = make(map[string]*shp.GaussData)

	// own cells, then ghosts
	var cells, ghosts []*inp.Cell
	if distr {
		cells = o.Msh.Part2cells[part]
		if len(cells) == 0 {
			return nil, chk.Err("partition %d has no cells", part)
		}
		inlayer := make(map[int]bool)
		for _, c := range cells {
			for _, v := range c.Verts {
				for _, nc := range o.Msh.Vert2cells[v] {
					if nc.Part != part && !inlayer[nc.Id] {
						inlayer[nc.Id] = true
						ghosts = append(ghosts, nc)
					}
				}
			}
		}
		sort.Slice(ghosts, func(i, j int) bool { return ghosts[i].Id < ghosts[j].Id })
	} else {
		cells = o.Msh.Cells
	}

	// elements
	for _, c := range cells {
		if err = o.addElem(c, false); err != nil {
			return nil, err
		}
	}
	for _, c := range ghosts {
		if err = o.addElem(c, true); err != nil {
			return nil, err
		}
	}

	// nodes in vertex order
	for _, n := range o.Vid2node {
		if n != nil {
			o.Nodes = append(o.Nodes, n)
		}
	}

	// materials and initial conditions
	err = o.SetMaterials()
	if err != nil {
		return nil, err
	}
	o.SetIniCells()
	o.SetIniNodes()
	return
}

// OwnsDof tells whether equation eq belongs to a node owned by this domain.
// All scatters into the global system are gated by this predicate
func (o *Domain) OwnsDof(eq int) bool {
	n := o.Vid2node[eq/o.Ndim]
	return n != nil && n.Own
}

// OwnedNodes returns the nodes owned by this domain
func (o *Domain) OwnedNodes() (nodes []*Node) {
	for _, n := range o.Nodes {
		if n.Own {
			nodes = append(nodes, n)
		}
	}
	return
}

// GaussData returns the (cached) quadrature table of a shape
func (o *Domain) GaussData(s *shp.Shape) (gd *shp.GaussData, err error) {
	if gd, ok := o.gauss[s.Type]; ok {
		return gd, nil
	}
	nint := o.Sim.Solver.Nint
	if len(nint) > s.Gndim {
		nint = nint[:s.Gndim]
	}
	gd, err = shp.GetGaussData(s, nint)
	if err != nil {
		return
	}
	o.gauss[s.Type] = gd
	return
}

// NewFace allocates a face of element e
func (o *Domain) NewFace(e *Elem, fid, tag int) (f *Face, err error) {
	s := e.Cell.Shp
	if fid < 0 || fid >= s.Nfaces() {
		return nil, chk.Err("cell %d has no face %d", e.Cell.Id, fid)
	}
	fs := shp.Get(s.FaceType)
	if fs == nil {
		return nil, chk.Err("cannot find shape of faces of cell %d", e.Cell.Id)
	}
	f = &Face{Elem: e, Fid: fid, Tag: tag}
	f.Gd, err = o.GaussData(fs)
	if err != nil {
		return
	}
	f.X = s.FaceCoords(e.X, fid)
	for _, l := range s.FaceLocalVerts[fid] {
		f.Nodes = append(f.Nodes, e.Nodes[l])
	}
	return
}

// SetMaterials sets the default material to all elements and then applies the
// material groups in the given order; when groups overlap, the last one wins
func (o *Domain) SetMaterials() (err error) {
	typ, err := msolid.ParseElastType(o.Sim.Solver.ElastType)
	if err != nil {
		return
	}
	d := o.Sim.Elast
	a, b := elastPair(typ, d.Young, d.Nu, d.Lambda, d.Mu, d.Vp, d.Vs)
	def, err := msolid.Convert(typ, d.Rho, a, b)
	if err != nil {
		return chk.Err("default elastic properties are invalid:\n%v", err)
	}
	for _, e := range o.Elems {
		e.Mat = def
	}
	for _, g := range o.Sim.MatGroups {
		gtyp := typ
		if g.Type != "" {
			gtyp, err = msolid.ParseElastType(g.Type)
			if err != nil {
				return
			}
		}
		a, b = elastPair(gtyp, g.Young, g.Nu, g.Lambda, g.Mu, g.Vp, g.Vs)
		var prm msolid.Props
		prm, err = msolid.Convert(gtyp, g.Rho, a, b)
		if err != nil {
			return chk.Err("elastic properties of material group with tag %d are invalid:\n%v", g.Tag, err)
		}
		for _, c := range o.Msh.CellTag2cells[g.Tag] {
			if e := o.Cid2elem[c.Id]; e != nil {
				e.Mat = prm
			}
		}
	}
	return
}

// SetIniCells applies the initial cell conditions in the given order
func (o *Domain) SetIniCells() {
	for _, cc := range o.Sim.CellConds {
		v := cc.Values()
		for _, c := range o.Msh.CellTag2cells[cc.Tag] {
			if e := o.Cid2elem[c.Id]; e != nil {
				e.Ini.Set(v)
			}
		}
	}
}

// SetIniNodes applies the initial nodal conditions to the current and previous states
func (o *Domain) SetIniNodes() {
	for _, nc := range o.Sim.NodeConds {
		for _, v := range o.Msh.VertTag2verts[nc.Tag] {
			n := o.Vid2node[v.Id]
			if n == nil {
				continue
			}
			for i := 0; i < o.Ndim; i++ {
				if i < len(nc.U) {
					n.U[i], n.Uprev[i] = nc.U[i], nc.U[i]
				}
				if i < len(nc.V) {
					n.V[i], n.Vprev[i] = nc.V[i], nc.V[i]
				}
				if i < len(nc.A) {
					n.A[i], n.Aprev[i] = nc.A[i], nc.A[i]
				}
				if i < len(nc.F) {
					n.Fext[i] = nc.F[i]
					n.FixF[i] = true
				}
			}
		}
	}
}

// String returns a summary of this domain
func (o *Domain) String() string {
	nown, nghost := 0, 0
	for _, n := range o.Nodes {
		if n.Own {
			nown++
		} else {
			nghost++
		}
	}
	ne := 0
	for _, e := range o.Elems {
		if !e.Ghost {
			ne++
		}
	}
	return io.Sf("domain %d: %d elements (+%d ghosts), %d nodes (+%d ghosts)", o.Part, ne, len(o.Elems)-ne, nown, nghost)
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// addElem allocates an element and its nodes
func (o *Domain) addElem(c *inp.Cell, ghost bool) (err error) {
	e := &Elem{Cell: c, Ghost: ghost}
	e.Gd, err = o.GaussData(c.Shp)
	if err != nil {
		return chk.Err("cell %d: %v", c.Id, err)
	}
	e.X = o.Msh.ExtractCellCoords(c.Id)
	e.Nodes = make([]*Node, len(c.Verts))
	for m, v := range c.Verts {
		e.Nodes[m] = o.getNode(v)
	}
	o.Elems = append(o.Elems, e)
	o.Cid2elem[c.Id] = e
	return
}

// getNode returns an existent node or allocates a new one
func (o *Domain) getNode(vid int) *Node {
	if n := o.Vid2node[vid]; n != nil {
		return n
	}
	n := &Node{Vert: o.Msh.Verts[vid]}
	n.Eqs = make([]int, o.Ndim)
	for i := 0; i < o.Ndim; i++ {
		n.Eqs[i] = o.Ndim*vid + i
	}
	n.Part = o.Part
	if o.Distr {
		n.Part = -1
		for _, c := range o.Msh.Vert2cells[vid] {
			if n.Part < 0 || c.Part < n.Part {
				n.Part = c.Part
			}
		}
	}
	n.Own = n.Part == o.Part
	o.Vid2node[vid] = n
	return n
}

// elastPair selects the pair of parameters corresponding to a parameterisation
func elastPair(typ msolid.ElastType, young, nu, lambda, mu, vp, vs float64) (a, b float64) {
	switch typ {
	case msolid.YoungNu:
		return young, nu
	case msolid.Lame:
		return lambda, mu
	}
	return vp, vs
}
