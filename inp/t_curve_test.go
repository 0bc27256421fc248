// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_curve01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("curve01")

	crv, err := ReadCurve("data/acc.crv")
	require.NoError(tst, err)
	chk.Array(tst, "T", 1e-17, crv.T, []float64{0, 1, 2})

	check := func(t float64, correct []float64) {
		v := crv.Value(t)
		chk.Array(tst, "v", 1e-15, v[:], correct)
	}
	check(-1, []float64{0, 0, 0})
	check(0, []float64{0, 0, 0})
	check(0.5, []float64{1, -0.5, 0})
	check(1, []float64{2, -1, 0})
	check(1.5, []float64{2, 0, 2})
	check(2, []float64{2, 1, 4})
	check(10, []float64{2, 1, 4})
}

func Test_curve02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("curve02")

	var crv Curve
	require.NoError(tst, crv.Append(0.5, 1, 2, 3))
	require.NoError(tst, crv.Init())
	v := crv.Value(100)
	chk.Array(tst, "constant", 1e-17, v[:], []float64{1, 2, 3})

	assert.Error(tst, crv.Append(0.5, 0, 0, 0))

	var empty Curve
	assert.Error(tst, empty.Init())

	_, err := ReadCurve("data/nonexistent.crv")
	assert.Error(tst, err)
}

func Test_curve03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("curve03. two columns and invalid files")

	write := func(name, content string) string {
		fn := filepath.Join(tst.TempDir(), name)
		require.NoError(tst, os.WriteFile(fn, []byte(content), 0644))
		return fn
	}

	// missing components are zero
	crv, err := ReadCurve(write("two.crv", "# t ax\n\n0 1\n  # comment\n2 3\n"))
	require.NoError(tst, err)
	chk.Array(tst, "T", 1e-17, crv.T, []float64{0, 2})
	v := crv.Value(1)
	chk.Array(tst, "v", 1e-15, v[:], []float64{2, 0, 0})

	// errors
	for _, content := range []string{
		"0 1\n1 abc\n",
		"0 1 2 3 4\n",
		"0\n",
		"1 0\n0 1\n",
		"# empty\n",
	} {
		_, err = ReadCurve(write("bad.crv", content))
		assert.Error(tst, err, "content = %q", content)
	}
}
