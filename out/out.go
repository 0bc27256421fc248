// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package out implements FE simulation output handling for analyses and plotting
package out

import (
	"github.com/cpmech/gosl/chk"
	"github.com/passmo/elastodyn/fem"
	"github.com/passmo/elastodyn/inp"
)

// constants
var (
	TolC = 1e-8  // tolerance to compare x-y-z coordinates
	TolT = 1e-10 // tolerance to compare times
)

// Keys holds the keys of nodal quantities; "t" is the time
var Keys = []string{"ux", "uy", "uz", "vx", "vy", "vz", "ax", "ay", "az"}

// ResultsMap maps aliases to points
type ResultsMap map[string]Points

// Post holds the results of one simulation
type Post struct {

	// data set by NewPost
	Sim *inp.Simulation // simulation data
	Sum *fem.Summary    // summary of the run
	Msh *inp.Mesh       // mesh

	// defined entities and results loaded by LoadResults
	Results  ResultsMap // maps labels => points
	TimeInds []int      // selected output indices
	Times    []float64  // selected output times

	// subplots
	Splots []*SplotDat // all subplots
	Csplot *SplotDat   // current subplot
}

// NewPost starts handling of results of a simulation that has already been run
func NewPost(sim *inp.Simulation) (o *Post, err error) {
	o = new(Post)
	o.Sim = sim
	o.Msh = sim.Msh
	o.Sum, err = fem.ReadSummary(sim.DirOut, sim.Key, sim.EncType)
	if err != nil {
		return nil, chk.Err("cannot read summary of %q:\n%v", sim.Key, err)
	}
	if len(o.Sum.OutTimes) < 1 {
		return nil, chk.Err("summary of %q has no output times", sim.Key)
	}
	o.Results = make(ResultsMap)
	return
}

// NewPostFile reads the simulation file and starts handling of its results
//  alias -- word appended to the simulation key when it was run
func NewPostFile(simfnpath, alias string) (o *Post, err error) {
	sim, err := inp.ReadSim(simfnpath, alias, false)
	if err != nil {
		return
	}
	return NewPost(sim)
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// keyIndex returns the quantity (0:u, 1:v, 2:a) and the axis of a key
func keyIndex(key string) (qty, axis int, ok bool) {
	for i, k := range Keys {
		if k == key {
			return i / 3, i % 3, true
		}
	}
	return
}
