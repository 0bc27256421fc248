// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/google/uuid"
	"github.com/passmo/elastodyn/inp"
)

// Summary records summary of outputs
type Summary struct {

	// main data
	RunId    string    // unique identifier of this run
	Nproc    int       // number of processors used in last run; equal to 1 if not distributed
	Nfiles   int       // number of nodal files per output time; one per partition
	OutTimes []float64 // [nOutTimes] output times
	Dirout   string    // directory where results are stored
	Fnkey    string    // filename key of simulation
	Enc      string    // encoder type

	// auxiliary
	proc int // this processor
}

// NewSummary returns a new summary with a fresh run identifier
func NewSummary(sim *inp.Simulation, proc, nproc int) *Summary {
	return &Summary{
		RunId:  uuid.Must(uuid.NewV7()).String(),
		Nproc:  nproc,
		Dirout: sim.DirOut,
		Fnkey:  sim.Key,
		Enc:    sim.EncType,
		proc:   proc,
	}
}

// Record saves the nodal results of all domains and updates the output times
func (o *Summary) Record(t float64, doms []*Domain) (err error) {
	tidx := len(o.OutTimes)
	err = os.MkdirAll(o.Dirout, 0777)
	if err != nil {
		return chk.Err("cannot create output directory %q:\n%v", o.Dirout, err)
	}
	for _, d := range doms {
		proc := o.proc
		if len(doms) > 1 {
			proc = d.Part
		}
		err = SaveNodal(o.Dirout, o.Fnkey, o.Enc, tidx, proc, t, d)
		if err != nil {
			return
		}
	}
	o.Nfiles = max(o.Nproc, len(doms))
	o.OutTimes = append(o.OutTimes, t)
	return
}

// Save saves summary to disc; only the root processor writes
func (o Summary) Save() (err error) {
	if o.proc != 0 {
		return
	}
	var buf bytes.Buffer
	enc := GetEncoder(&buf, o.Enc)
	err = enc.Encode(o)
	if err != nil {
		return chk.Err("cannot encode summary\n%v", err)
	}
	return save_file(out_sum_path(o.Dirout, o.Fnkey, o.Enc), &buf, false)
}

// ReadSummary reads summary back
func ReadSummary(dir, fnkey, enctype string) (o *Summary, err error) {
	fil, err := os.Open(out_sum_path(dir, fnkey, enctype))
	if err != nil {
		return
	}
	defer fil.Close()
	o = new(Summary)
	err = GetDecoder(fil, enctype).Decode(o)
	if err != nil {
		return nil, chk.Err("cannot decode summary\n%v", err)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func out_sum_path(dir, fnkey, enctype string) string {
	return filepath.Join(dir, io.Sf("%s_sum.%s", fnkey, enctype))
}
