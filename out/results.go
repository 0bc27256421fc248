// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"math"
	"sort"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/passmo/elastodyn/fem"
	"gonum.org/v1/gonum/integrate"
)

// Define defines aliases
//  alias -- an alias to a group of points, an individual point, or to a set of points.
//           Example: "A", "left-column" or "a b c". If the number of points found is different
//           than the number of aliases, a group is created.
//  Note:
//    To use spaces in aliases, prefix the alias with an exclamation mark; e.g "!right column"
func (o *Post) Define(alias string, loc Locator) (err error) {

	// check
	if len(alias) < 1 {
		return chk.Err("alias must have at least one character. %q is invalid", alias)
	}

	// locate points
	pts := loc.Locate(o.Msh)
	if len(pts) < 1 {
		return chk.Err("cannot define entities with alias=%q and locator=%v", alias, loc)
	}

	// set results map
	if alias[0] == '!' {
		o.Results[alias[1:]] = pts
		return
	}
	lbls := strings.Fields(alias)
	if len(lbls) == len(pts) {
		for i, l := range lbls {
			o.Results[l] = Points{pts[i]}
		}
		return
	}
	o.Results[alias] = pts
	return
}

// LoadResults loads all results after points are defined
//  times -- specified selected output times
//           use nil to indicate that all times are required
func (o *Post) LoadResults(times []float64) (err error) {

	// selected output times and indices
	if times == nil {
		times = o.Sum.OutTimes
	}
	o.TimeInds, o.Times = selectTimes(o.Sum.OutTimes, times, TolT)
	if len(o.TimeInds) < 1 {
		return chk.Err("none of the times %v is an output time", times)
	}

	// points by vertex
	vid2pts := make(map[int][]*Point)
	for _, pts := range o.Results {
		for _, p := range pts {
			vid2pts[p.Vid] = append(vid2pts[p.Vid], p)
		}
	}

	// for each selected output time
	nfiles := max(o.Sum.Nfiles, 1)
	for _, tidx := range o.TimeInds {
		found := 0
		for proc := 0; proc < nfiles; proc++ {
			var res *fem.NodalResults
			res, err = fem.ReadNodal(o.Sum.Dirout, o.Sum.Fnkey, o.Sum.Enc, tidx, proc)
			if err != nil {
				return chk.Err("cannot load results of output %d:\n%v", tidx, err)
			}
			for k, vid := range res.Vids {
				pts, ok := vid2pts[vid]
				if !ok {
					continue
				}
				found++
				vals := [3][3]float64{res.U[k], res.V[k], res.A[k]}
				for _, p := range pts {
					for i, key := range Keys {
						p.Vals[key] = append(p.Vals[key], vals[i/3][i%3])
					}
				}
			}
		}
		if found != len(vid2pts) {
			return chk.Err("output %d has results of %d vertices; %d are defined", tidx, found, len(vid2pts))
		}
	}
	return
}

// GetRes gets results as a time or space series corresponding to a given alias
// for a single point or set of points.
//  key  -- "t" or any of Keys
//  idxI -- index in TimeInds slice corresponding to selected output time; use -1 for the last item.
//          If alias defines a single point, the whole time series is returned and idxI is ignored.
func (o *Post) GetRes(key, alias string, idxI int) (res []float64, err error) {
	if key == "t" {
		return o.Times, nil
	}
	if idxI < 0 {
		idxI = len(o.TimeInds) - 1
	}
	pts, ok := o.Results[alias]
	if !ok {
		return nil, chk.Err("cannot find alias %q", alias)
	}
	if len(pts) == 1 {
		if v, ok := pts[0].Vals[key]; ok {
			return v, nil
		}
		return nil, chk.Err("cannot get %q at %q", key, alias)
	}
	for _, p := range pts {
		v, ok := p.Vals[key]
		if !ok || idxI >= len(v) {
			return nil, chk.Err("cannot get %q at %q for output index %d", key, alias, idxI)
		}
		res = append(res, v[idxI])
	}
	return
}

// GetIds return the vertex ids corresponding to alias
func (o *Post) GetIds(alias string) (vids []int) {
	for _, p := range o.Results[alias] {
		vids = append(vids, p.Vid)
	}
	return
}

// GetCoords returns the coordinates of a single point
func (o *Post) GetCoords(alias string) ([]float64, error) {
	if pts, ok := o.Results[alias]; ok && len(pts) == 1 {
		return pts[0].X, nil
	}
	return nil, chk.Err("cannot get coordinates of point with alias %q (make sure this alias corresponds to a single point)", alias)
}

// GetDist returns the distance from the reference point of the locator
func (o *Post) GetDist(alias string) (dist []float64) {
	for _, p := range o.Results[alias] {
		dist = append(dist, p.Dist)
	}
	return
}

// GetXYZ returns the x-y-z coordinates of points
func (o *Post) GetXYZ(alias string) (x, y, z []float64) {
	for _, p := range o.Results[alias] {
		x = append(x, p.X[0])
		y = append(y, p.X[1])
		z = append(z, p.X[2])
	}
	return
}

// Integrate integrates key along direction "x", "y", "z" or "dist"
//  idxI -- index in TimeInds slice corresponding to selected output time; use -1 for the last item.
func (o *Post) Integrate(key, alias, along string, idxI int) (res float64, err error) {
	y, err := o.GetRes(key, alias, idxI)
	if err != nil {
		return
	}
	var x []float64
	switch along {
	case "x":
		x, _, _ = o.GetXYZ(alias)
	case "y":
		_, x, _ = o.GetXYZ(alias)
	case "z":
		_, _, x = o.GetXYZ(alias)
	case "dist":
		x = o.GetDist(alias)
	default:
		return 0, chk.Err("cannot integrate along %q", along)
	}
	if len(x) != len(y) || len(x) < 2 {
		return 0, chk.Err("%q: cannot integrate %q along %q: %d points and %d values", alias, key, along, len(x), len(y))
	}
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return x[idx[i]] < x[idx[j]] })
	xs, ys := make([]float64, len(x)), make([]float64, len(y))
	for i, k := range idx {
		xs[i], ys[i] = x[k], y[k]
	}
	return integrate.Trapezoidal(xs, ys), nil
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

// selectTimes returns the indices in all (output times) matching the selected times
func selectTimes(all, sel []float64, tol float64) (I []int, T []float64) {
	for _, t := range sel {
		for i, tout := range all {
			if math.Abs(t-tout) < tol {
				I = append(I, i)
				T = append(T, tout)
				break
			}
		}
	}
	return
}
