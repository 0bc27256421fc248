// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/passmo/elastodyn/msolid"
)

// Encoder defines encoders; e.g. gob or json
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob or json
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	if enctype == "json" {
		return json.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	if enctype == "json" {
		return json.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// NodalResults holds the state of owned nodes at one output time
//  The initial state of the non-ghost cells is also written
type NodalResults struct {
	T    float64      // time
	Vids []int        // vertex ids
	U    [][3]float64 // displacements
	V    [][3]float64 // velocities
	A    [][3]float64 // accelerations

	// cells
	Cids []int             // cell ids
	Ini  []msolid.IniState // initial state of cells
}

// SaveNodal saves the state of the nodes owned by a domain to a file which name is set with tidx (time output index)
func SaveNodal(dir, fnkey, enctype string, tidx, proc int, t float64, d *Domain) (err error) {
	res := NodalResults{T: t}
	for _, n := range d.Nodes {
		if n.Own {
			res.Vids = append(res.Vids, n.Vert.Id)
			res.U = append(res.U, n.U)
			res.V = append(res.V, n.V)
			res.A = append(res.A, n.A)
		}
	}
	for _, e := range d.Elems {
		if !e.Ghost {
			res.Cids = append(res.Cids, e.Cell.Id)
			res.Ini = append(res.Ini, e.Ini)
		}
	}
	var buf bytes.Buffer
	err = GetEncoder(&buf, enctype).Encode(&res)
	if err != nil {
		return chk.Err("cannot encode nodal results\n%v", err)
	}
	return save_file(out_nod_path(dir, fnkey, enctype, tidx, proc), &buf, d.Sim.Data.ShowMsg)
}

// ReadNodal reads nodal results from a file which name is set with tidx (time output index)
func ReadNodal(dir, fnkey, enctype string, tidx, proc int) (res *NodalResults, err error) {
	fil, err := os.Open(out_nod_path(dir, fnkey, enctype, tidx, proc))
	if err != nil {
		return
	}
	defer fil.Close()
	res = new(NodalResults)
	err = GetDecoder(fil, enctype).Decode(res)
	if err != nil {
		return nil, chk.Err("cannot decode nodal results\n%v", err)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func out_nod_path(dir, fnkey, enctype string, tidx, proc int) string {
	return filepath.Join(dir, io.Sf("%s_p%d_nod_%010d.%s", fnkey, proc, tidx, enctype))
}

func save_file(filename string, buf *bytes.Buffer, verbose bool) (err error) {
	fil, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() {
		if cerr := fil.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = fil.Write(buf.Bytes())
	if verbose {
		io.Pforan("file <%s> written\n", filename)
	}
	return
}
