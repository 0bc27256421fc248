// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_gauss01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("gauss01")

	shape := Get("qua4")
	gd, err := GetGaussData(shape, []int{2, 2})
	if err != nil {
		tst.Errorf("GetGaussData failed:\n%v", err)
		return
	}
	chk.Int(tst, "nip", gd.Nip, 4)
	chk.Int(tst, "stride", gd.Stride(), 1+4*4)
	chk.Int(tst, "len(vals)", len(gd.Vals), 4*17)

	// compare with direct evaluation
	ips, _ := GetIps("qua4", []int{2, 2})
	for ip, p := range ips {
		S, dSdR := shape.Calc(p, true)
		chk.Float64(tst, "w", 1e-17, gd.W(ip), p[3])
		for m := 0; m < shape.Nverts; m++ {
			chk.Float64(tst, "S", 1e-17, gd.S(ip, m), S[m])
			chk.Float64(tst, "dSdr", 1e-17, gd.DSdR(ip, m, 0), dSdR[m][0])
			chk.Float64(tst, "dSds", 1e-17, gd.DSdR(ip, m, 1), dSdR[m][1])
			chk.Float64(tst, "dSdt", 1e-17, gd.DSdR(ip, m, 2), 0)
		}
	}

	// layout: weight of second point followed by S_0
	b := gd.Stride()
	chk.Float64(tst, "vals[b]", 1e-17, gd.Vals[b], 1)
	chk.Float64(tst, "vals[b+1]", 1e-17, gd.Vals[b+1], gd.S(1, 0))

	// real coordinates
	x := [][]float64{{0, 2, 2, 0}, {0, 0, 2, 2}}
	sum := []float64{0, 0}
	for ip := 0; ip < gd.Nip; ip++ {
		y := gd.RealCoords(x, ip)
		sum[0] += y[0] / 4
		sum[1] += y[1] / 4
	}
	chk.Array(tst, "mean of ips", 1e-15, sum, []float64{1, 1})

	// nil shape
	if _, err := GetGaussData(nil, nil); err == nil {
		tst.Errorf("nil shape should fail\n")
	}
}
