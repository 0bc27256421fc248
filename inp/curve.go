// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/interp"
)

// Curve holds a time series of vectors read from a text file
//  Each line holds "t x y z" (missing components are zero); lines starting with # are skipped.
//  Values are linearly interpolated and clamped outside the sampled range.
//  Curve is read-only after ReadCurve
type Curve struct {
	Fname string       // filename
	T     []float64    // times
	X     [3][]float64 // components
	fit   [3]interp.PiecewiseLinear
}

// ReadCurve reads a curve file
func ReadCurve(fname string) (o *Curve, err error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, chk.Err("cannot open curve file %q:\n%v", fname, err)
	}
	defer f.Close()

	// gosl readers panic on bad lines or numbers
	defer func() {
		if r := recover(); r != nil {
			o, err = nil, chk.Err("cannot read curve file %q:\n%v", fname, r)
		}
	}()

	o = &Curve{Fname: fname}
	io.ReadLinesFile(f, func(idx int, line string) (stop bool) {
		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			return
		}
		if len(fields) > 4 || len(fields) < 2 {
			err = chk.Err("curve file %q: line %d must have 2 to 4 columns", fname, idx+1)
			return true
		}
		var vals [4]float64
		for i, s := range fields {
			vals[i] = io.Atof(s)
		}
		err = o.Append(vals[0], vals[1], vals[2], vals[3])
		if err != nil {
			err = chk.Err("curve file %q: line %d: %v", fname, idx+1, err)
			return true
		}
		return
	})
	if err != nil {
		return nil, err
	}
	err = o.Init()
	if err != nil {
		return nil, chk.Err("curve file %q: %v", fname, err)
	}
	return
}

// Append adds a sample; times must be strictly increasing
func (o *Curve) Append(t, x, y, z float64) (err error) {
	if n := len(o.T); n > 0 && t <= o.T[n-1] {
		return chk.Err("times must be strictly increasing. %g after %g is invalid", t, o.T[n-1])
	}
	o.T = append(o.T, t)
	o.X[0] = append(o.X[0], x)
	o.X[1] = append(o.X[1], y)
	o.X[2] = append(o.X[2], z)
	return
}

// Init prepares the interpolators after all samples are appended
func (o *Curve) Init() (err error) {
	if len(o.T) < 1 {
		return chk.Err("curve has no samples")
	}
	if len(o.T) < 2 {
		return
	}
	for i := 0; i < 3; i++ {
		err = o.fit[i].Fit(o.T, o.X[i])
		if err != nil {
			return
		}
	}
	return
}

// Value returns the vector at time t
func (o *Curve) Value(t float64) (v [3]float64) {
	n := len(o.T)
	for i := 0; i < 3; i++ {
		switch {
		case n == 1 || t <= o.T[0]:
			v[i] = o.X[i][0]
		case t >= o.T[n-1]:
			v[i] = o.X[i][n-1]
		default:
			v[i] = o.fit[i].Predict(t)
		}
	}
	return
}
