// Copyright 2015 Dorival Pedroso & Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
	"github.com/cpmech/gosl/utl"
)

// PltEntity stores all data for a plot entity (X vs Y)
type PltEntity struct {
	Alias string    // alias
	X     []float64 // x-values
	Y     []float64 // y-values
	Xlbl  string    // horizontal axis label (raw; e.g. "t")
	Ylbl  string    // vertical axis label (raw; e.g. "ux")
	Style plt.A     // style
}

// SplotDat stores all data for one subplot
type SplotDat struct {
	Title string       // title of subplot
	Xlbl  string       // x-axis label
	Ylbl  string       // y-axis label
	Data  []*PltEntity // data and styles to be plotted
}

// Splot activates a new subplot window
func (o *Post) Splot(splotTitle string) {
	s := &SplotDat{Title: splotTitle}
	o.Splots = append(o.Splots, s)
	o.Csplot = s
}

// Plot adds data to the current subplot
//  xHandle -- can be a string, e.g. "t" or a slice, e.g. x = []float64{0, 1, 2}
//  yHandle -- can be a string, e.g. "ux" or a slice
//  alias   -- alias such as "centre"
//  style   -- formatting codes; e.g. &plt.A{C:"b", L:"label"}. may be nil
//  idxI    -- index of time; use -1 for the last one. ignored for single points
func (o *Post) Plot(xHandle, yHandle interface{}, alias string, style *plt.A, idxI int) (err error) {
	var e PltEntity
	e.Alias = alias
	if style != nil {
		e.Style = *style
	}
	e.X, e.Xlbl, err = o.getValsAndLabels(xHandle, alias, idxI)
	if err != nil {
		return
	}
	e.Y, e.Ylbl, err = o.getValsAndLabels(yHandle, alias, idxI)
	if err != nil {
		return
	}
	if len(e.X) != len(e.Y) {
		return chk.Err("lengths of x- and y-series are different. len(x)=%d, len(y)=%d, x=%v, y=%v", len(e.X), len(e.Y), xHandle, yHandle)
	}
	if o.Csplot == nil {
		o.Splot("")
	}
	o.Csplot.Data = append(o.Csplot.Data, &e)
	if o.Csplot.Xlbl == "" {
		o.Csplot.Xlbl, o.Csplot.Ylbl = e.Xlbl, e.Ylbl
	}
	return
}

// Draw saves figure with all subplots
//  dirout -- directory to save figure
//  fnkey  -- file name key (without extension)
func (o *Post) Draw(dirout, fnkey string) (err error) {
	nplots := len(o.Splots)
	if nplots < 1 {
		return chk.Err("there are no subplots to draw")
	}
	plt.Reset(false, nil)
	nr, nc := utl.BestSquare(nplots)
	var k int
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if k >= nplots {
				break
			}
			plt.Subplot(nr, nc, k+1)
			if o.Splots[k].Title != "" {
				plt.Title(o.Splots[k].Title, nil)
			}
			for _, d := range o.Splots[k].Data {
				if d.Style.L == "" {
					d.Style.L = d.Alias
				}
				plt.Plot(d.X, d.Y, &d.Style)
			}
			plt.Gll(o.Splots[k].Xlbl, o.Splots[k].Ylbl, nil)
			k++
		}
	}
	plt.Save(dirout, fnkey)
	return
}

// PlotHistory draws the time history of a quantity at single-point aliases
//  key -- e.g. "ux"
func (o *Post) PlotHistory(key string, aliases []string, dirout, fnkey string) (err error) {
	o.Splot(io.Sf("%s(t)", key))
	for _, alias := range aliases {
		err = o.Plot("t", key, alias, &plt.A{M: ".", Ls: "-"}, -1)
		if err != nil {
			return
		}
	}
	return o.Draw(dirout, fnkey)
}

// auxiliary /////////////////////////////////////////////////////////////////////////////////////////

func (o *Post) getValsAndLabels(handle interface{}, alias string, idxI int) ([]float64, string, error) {
	switch hnd := handle.(type) {
	case []float64:
		return hnd, io.Sf("%s-type", alias), nil
	case string:
		switch hnd {
		case "x":
			x, _, _ := o.GetXYZ(alias)
			return x, "x", nil
		case "y":
			_, y, _ := o.GetXYZ(alias)
			return y, "y", nil
		case "z":
			_, _, z := o.GetXYZ(alias)
			return z, "z", nil
		case "dist":
			return o.GetDist(alias), "dist", nil
		}
		res, err := o.GetRes(hnd, alias, idxI)
		return res, hnd, err
	}
	return nil, "", chk.Err("cannot get values slice with handle = %v", handle)
}
