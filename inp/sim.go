// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON or YAML file
package inp

import (
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/passmo/elastodyn/msolid"
	"gopkg.in/yaml.v3"
)

// Data holds global data for simulations
type Data struct {
	Desc     string `json:"desc" yaml:"desc"`         // description of simulation
	DirOut   string `json:"dirout" yaml:"dirout"`     // directory for output; e.g. /tmp/elastodyn
	Encoder  string `json:"encoder" yaml:"encoder"`   // encoder name; e.g. "gob" "json"
	FnKey    string `json:"fnkey" yaml:"fnkey"`       // filename key for output files; default is the sim filename key
	ShowMsg  bool   `json:"showmsg" yaml:"showmsg"`   // show messages
	OutEvery int    `json:"outevery" yaml:"outevery"` // save results every OutEvery steps
	Nworkers int    `json:"nworkers" yaml:"nworkers"` // number of goroutines computing element matrices
	Nparts   int    `json:"nparts" yaml:"nparts"`     // number of in-process partitions; if > 1, must equal the number of mesh partitions
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name      string `json:"name" yaml:"name"`           // "dense"
	Symmetric bool   `json:"symmetric" yaml:"symmetric"` // system is symmetric
}

// SolverData holds FEM solver data
type SolverData struct {

	// time control
	T0 float64 `json:"t0" yaml:"t0"` // initial time
	Tf float64 `json:"tf" yaml:"tf"` // final time
	Dt float64 `json:"dt" yaml:"dt"` // time step size

	// dynamics
	Gamma float64 `json:"gamma" yaml:"gamma"` // Newmark's γ
	Beta  float64 `json:"beta" yaml:"beta"`   // Newmark's β
	Alfa  bool    `json:"alfa" yaml:"alfa"`   // use generalized-α coefficients
	AlfaM float64 `json:"alfam" yaml:"alfam"` // generalized-α: αm
	AlfaF float64 `json:"alfaf" yaml:"alfaf"` // generalized-α: αf

	// linear operator
	Dirichlet  string  `json:"dirichlet" yaml:"dirichlet"`   // Dirichlet method: Penalty, WeakPenalty, RowElimination, RowColumnElimination
	Penalty    float64 `json:"penalty" yaml:"penalty"`       // penalty number
	LinopNstep int     `json:"linopnstep" yaml:"linopnstep"` // number of steps between assembling the linear operator

	// elements
	Nint      []int     `json:"nint" yaml:"nint"`           // number of integration points per axis
	Gravity   []float64 `json:"gravity" yaml:"gravity"`     // gravity acceleration vector
	ElastType string    `json:"elasttype" yaml:"elasttype"` // default type of elastic parameters: young, lame, vel
}

// ElastData holds the elastic properties of cells
type ElastData struct {
	Rho    float64 `json:"rho" yaml:"rho"`       // density
	Young  float64 `json:"young" yaml:"young"`   // Young's modulus
	Nu     float64 `json:"nu" yaml:"nu"`         // Poisson's coefficient
	Lambda float64 `json:"lambda" yaml:"lambda"` // Lamé's first parameter
	Mu     float64 `json:"mu" yaml:"mu"`         // shear modulus
	Vp     float64 `json:"vp" yaml:"vp"`         // P-wave velocity
	Vs     float64 `json:"vs" yaml:"vs"`         // S-wave velocity
}

// MatGroup sets the elastic properties of all cells with a given tag
type MatGroup struct {
	Tag    int     `json:"tag" yaml:"tag"`       // cell tag
	Type   string  `json:"type" yaml:"type"`     // type of parameters; "" => use SolverData.ElastType
	Rho    float64 `json:"rho" yaml:"rho"`       // density
	Young  float64 `json:"young" yaml:"young"`   // Young's modulus
	Nu     float64 `json:"nu" yaml:"nu"`         // Poisson's coefficient
	Lambda float64 `json:"lambda" yaml:"lambda"` // Lamé's first parameter
	Mu     float64 `json:"mu" yaml:"mu"`         // shear modulus
	Vp     float64 `json:"vp" yaml:"vp"`         // P-wave velocity
	Vs     float64 `json:"vs" yaml:"vs"`         // S-wave velocity
}

// NodeCond holds initial values of nodes with a given vertex tag
type NodeCond struct {
	Tag int       `json:"tag" yaml:"tag"` // vertex tag
	U   []float64 `json:"u" yaml:"u"`     // initial displacement
	V   []float64 `json:"v" yaml:"v"`     // initial velocity
	A   []float64 `json:"a" yaml:"a"`     // initial acceleration
	F   []float64 `json:"f" yaml:"f"`     // initial nodal force
}

// CellCond holds the initial state of cells with a given tag
type CellCond struct {
	Tag       int      `json:"tag" yaml:"tag"`             // cell tag
	DevStrain *float64 `json:"devstrain" yaml:"devstrain"` // deviatoric strain
	VolStrain *float64 `json:"volstrain" yaml:"volstrain"` // volumetric strain
	DevStress *float64 `json:"devstress" yaml:"devstress"` // deviatoric stress
	VolStress *float64 `json:"volstress" yaml:"volstress"` // volumetric stress
}

// BcValue holds a vector quantity given by constants and/or a curve
//  A component is imposed if its constant is given or if the curve is
//  given and the corresponding axis flag is set. The curve has priority
type BcValue struct {
	X     *float64 `json:"x" yaml:"x"`         // constant x-component
	Y     *float64 `json:"y" yaml:"y"`         // constant y-component
	Z     *float64 `json:"z" yaml:"z"`         // constant z-component
	Curve string   `json:"curve" yaml:"curve"` // curve filename
	Xaxis bool     `json:"xaxis" yaml:"xaxis"` // apply curve to x
	Yaxis bool     `json:"yaxis" yaml:"yaxis"` // apply curve to y
	Zaxis bool     `json:"zaxis" yaml:"zaxis"` // apply curve to z
}

// DirichletCond holds kinematic conditions on faces (surface) or vertices (point)
type DirichletCond struct {
	Tag int      `json:"tag" yaml:"tag"` // face or vertex tag
	U   *BcValue `json:"u" yaml:"u"`     // displacement
	V   *BcValue `json:"v" yaml:"v"`     // velocity
	A   *BcValue `json:"a" yaml:"a"`     // acceleration
	F   *BcValue `json:"f" yaml:"f"`     // nodal force
}

// NeumannCond holds a traction condition on faces
type NeumannCond struct {
	Tag int     `json:"tag" yaml:"tag"` // face tag
	T   BcValue `json:"t" yaml:"t"`     // traction
}

// ParaxialCond holds an absorbing (paraxial) condition on faces
//  The impedance is computed from (young,nu), (cp,cs) or (lambda,mu), in this
//  order. If none is given, the properties of the adjoining cell are used
type ParaxialCond struct {
	Tag    int      `json:"tag" yaml:"tag"`       // face tag
	Rho    *float64 `json:"rho" yaml:"rho"`       // density
	Young  *float64 `json:"young" yaml:"young"`   // Young's modulus
	Nu     *float64 `json:"nu" yaml:"nu"`         // Poisson's coefficient
	Lambda *float64 `json:"lambda" yaml:"lambda"` // Lamé's first parameter
	Mu     *float64 `json:"mu" yaml:"mu"`         // shear modulus
	Cp     *float64 `json:"cp" yaml:"cp"`         // P-wave velocity
	Cs     *float64 `json:"cs" yaml:"cs"`         // S-wave velocity
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data           Data             `json:"data" yaml:"data"`                     // stores global simulation data
	MeshFile       string           `json:"meshfile" yaml:"meshfile"`             // mesh filename
	LinSol         LinSolData       `json:"linsol" yaml:"linsol"`                 // linear solver data
	Solver         SolverData       `json:"solver" yaml:"solver"`                 // FEM solver data
	Elast          ElastData        `json:"elast" yaml:"elast"`                   // default elastic properties
	MatGroups      []*MatGroup      `json:"matgroups" yaml:"matgroups"`           // elastic properties per cell tag
	NodeConds      []*NodeCond      `json:"nodeconds" yaml:"nodeconds"`           // initial nodal values
	CellConds      []*CellCond      `json:"cellconds" yaml:"cellconds"`           // initial cell states
	DirichletSurf  []*DirichletCond `json:"dirichletsurf" yaml:"dirichletsurf"`   // Dirichlet conditions on faces
	DirichletPoint []*DirichletCond `json:"dirichletpoint" yaml:"dirichletpoint"` // Dirichlet conditions on vertices
	Neumann        []*NeumannCond   `json:"neumann" yaml:"neumann"`               // traction conditions
	Paraxial       []*ParaxialCond  `json:"paraxial" yaml:"paraxial"`             // absorbing conditions

	// derived
	Dir     string // directory of simulation file
	DirOut  string // directory to save results
	Key     string // simulation key; e.g. mysim01.sim => mysim01 or mysim01-alias
	EncType string // encoder type
	Ndim    int    // space dimension
	Msh     *Mesh  // the mesh
}

// Simulation //////////////////////////////////////////////////////////////////////////////////////

// NewSimulation returns a simulation with default values
func NewSimulation() (o *Simulation) {
	o = new(Simulation)
	o.Data.SetDefault()
	o.LinSol.SetDefault()
	o.Solver.SetDefault()
	return
}

// ReadSim reads all simulation data from a .sim (JSON) or .yaml file
func ReadSim(simfilepath, alias string, erasefiles bool) (o *Simulation, err error) {

	// read file
	b, err := os.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("cannot read simulation file %q:\n%v", simfilepath, err)
	}

	// decode
	o = NewSimulation()
	switch strings.ToLower(filepath.Ext(simfilepath)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, o)
	default:
		err = json.Unmarshal(b, o)
	}
	if err != nil {
		return nil, chk.Err("cannot unmarshal simulation file %q:\n%v", simfilepath, err)
	}

	// input directory and filename key
	o.Dir = os.ExpandEnv(filepath.Dir(simfilepath))
	o.Key = io.FnKey(filepath.Base(simfilepath))
	if o.Data.FnKey != "" {
		o.Key = o.Data.FnKey
	}
	if alias != "" {
		o.Key += "-" + alias
	}

	// read mesh
	if o.MeshFile == "" {
		return nil, chk.Err("simulation file %q must have a mesh file", simfilepath)
	}
	o.Msh, err = ReadMsh(o.Dir, o.MeshFile)
	if err != nil {
		return nil, err
	}

	// check and compute derived data
	err = o.PostProcess()
	if err != nil {
		return nil, chk.Err("simulation file %q is invalid:\n%v", simfilepath, err)
	}

	// create directory and erase previous simulation results
	if erasefiles {
		err = os.MkdirAll(o.DirOut, 0777)
		if err != nil {
			return nil, chk.Err("cannot create directory for output results (%s): %v", o.DirOut, err)
		}
		io.RemoveAll(io.Sf("%s/%s_*", o.DirOut, o.Key))
	}
	return
}

// PostProcess checks data and computes derived values. Msh must be set already
func (o *Simulation) PostProcess() (err error) {

	// mesh
	if o.Msh == nil {
		return chk.Err("mesh is not available")
	}
	o.Ndim = o.Msh.Ndim
	if o.Key == "" {
		o.Key = "elastodyn"
	}

	// output directory and encoder
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = filepath.Join(os.TempDir(), "elastodyn", o.Key)
	}
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}
	if o.Data.OutEvery < 1 {
		o.Data.OutEvery = 1
	}
	if o.Data.Nworkers < 1 {
		o.Data.Nworkers = runtime.GOMAXPROCS(0)
	}

	// solver
	err = o.Solver.PostProcess(o.Ndim)
	if err != nil {
		return
	}

	// element types
	if _, err = msolid.ParseElastType(o.Solver.ElastType); err != nil {
		return
	}
	for _, g := range o.MatGroups {
		if g.Type != "" {
			if _, err = msolid.ParseElastType(g.Type); err != nil {
				return chk.Err("material group with tag %d: %v", g.Tag, err)
			}
		}
	}

	// curves
	for _, c := range o.DirichletSurf {
		o.fixCurves(c.U, c.V, c.A, c.F)
	}
	for _, c := range o.DirichletPoint {
		o.fixCurves(c.U, c.V, c.A, c.F)
	}
	for _, c := range o.Neumann {
		o.fixCurves(&c.T)
	}
	return
}

// GetInfo returns formatted information
func (o *Simulation) GetInfo(w goio.Writer) (err error) {
	b, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// fixCurves makes curve paths relative to the simulation directory
func (o *Simulation) fixCurves(values ...*BcValue) {
	for _, v := range values {
		if v == nil || v.Curve == "" {
			continue
		}
		if !filepath.IsAbs(v.Curve) && o.Dir != "" {
			v.Curve = filepath.Join(o.Dir, v.Curve)
		}
	}
}

// Has tells whether a constant is given for axis i
func (o *BcValue) Has(i int) bool {
	switch i {
	case 0:
		return o.X != nil
	case 1:
		return o.Y != nil
	case 2:
		return o.Z != nil
	}
	return false
}

// Const returns the constant for axis i (zero if not given)
func (o *BcValue) Const(i int) float64 {
	var p *float64
	switch i {
	case 0:
		p = o.X
	case 1:
		p = o.Y
	case 2:
		p = o.Z
	}
	if p == nil {
		return 0
	}
	return *p
}

// Axis tells whether the curve applies to axis i
func (o *BcValue) Axis(i int) bool {
	if o.Curve == "" {
		return false
	}
	switch i {
	case 0:
		return o.Xaxis
	case 1:
		return o.Yaxis
	case 2:
		return o.Zaxis
	}
	return false
}

// Imposed tells whether axis i is imposed, either by a constant or by the curve
func (o *BcValue) Imposed(i int) bool {
	if o == nil {
		return false
	}
	return o.Has(i) || o.Axis(i)
}

// Values returns the values to modify the initial state of cells
func (o *CellCond) Values() *msolid.IniValues {
	return &msolid.IniValues{
		DevStrain: o.DevStrain,
		VolStrain: o.VolStrain,
		DevStress: o.DevStress,
		VolStress: o.VolStress,
	}
}

// extra settings //////////////////////////////////////////////////////////////////////////////////

// SetDefault sets defaults values
func (o *Data) SetDefault() {
	o.Encoder = "gob"
	o.OutEvery = 1
}

// SetDefault sets defaults values
func (o *LinSolData) SetDefault() {
	o.Name = "dense"
}

// SetDefault set defaults values
func (o *SolverData) SetDefault() {
	o.Tf = 1
	o.Dt = 1
	o.Gamma = 0.5
	o.Beta = 0.25
	o.Dirichlet = "Penalty"
	o.Penalty = 1e30
	o.LinopNstep = 1
	o.ElastType = "young"
}

// PostProcess performs a post-processing of the just read data
func (o *SolverData) PostProcess(ndim int) (err error) {
	if o.Dt <= 0 {
		return chk.Err("time step size must be positive. dt = %g is invalid", o.Dt)
	}
	if o.Tf <= o.T0 {
		return chk.Err("final time must be greater than initial time. t0 = %g, tf = %g is invalid", o.T0, o.Tf)
	}
	if o.Penalty <= 0 {
		return chk.Err("penalty number must be positive. %g is invalid", o.Penalty)
	}
	if o.LinopNstep < 1 {
		o.LinopNstep = 1
	}
	nint := []int{2, 2, 2}
	copy(nint, o.Nint)
	o.Nint = nint[:ndim]
	grav := make([]float64, 3)
	copy(grav, o.Gravity)
	o.Gravity = grav
	return
}
