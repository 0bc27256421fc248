// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/passmo/elastodyn/lsys"
)

// LinearSystem defines the global system A x = b indexed by equation numbers
type LinearSystem interface {
	Reset()                                   // clears everything, including the structure
	Initialize(ndof int, label string) error  // allocates the system
	IsInitialized() bool                      // tells whether Initialize has been called after the last Reset
	ClearValues()                             // zeroes values but keeps the structure
	MatrixAddValue(i, j int, v float64)       // A[i][j] += v
	MatrixSetValue(i, j int, v float64)       // A[i][j] = v
	EliminateRow(eq int, value float64)       // row eq := unit row; b[eq] = value
	EliminateRowColumn(eq int, value float64) // moves column eq to b and zeroes off-diagonal entries of row and column eq
	Solve() error                             // solves the system
	Solution() []float64                      // solution vector
	Rhs() []float64                           // right-hand side vector
}

// linsysallocators holds all available linear systems
var linsysallocators = make(map[string]func(reducer lsys.Reducer) LinearSystem)

func init() {
	linsysallocators["dense"] = func(reducer lsys.Reducer) LinearSystem {
		return &lsys.Dense{Reducer: reducer}
	}
}

// GetLinearSystem returns a new linear system
func GetLinearSystem(name string, reducer lsys.Reducer) (LinearSystem, error) {
	alloc, ok := linsysallocators[name]
	if !ok {
		return nil, chk.Err("cannot find linear system named %q", name)
	}
	return alloc(reducer), nil
}
