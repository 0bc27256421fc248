// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// DirichletMethod selects how prescribed displacements are enforced
type DirichletMethod int

// methods
const (
	Penalty DirichletMethod = iota
	WeakPenalty
	RowElimination
	RowColumnElimination
)

var dirichletNames = []string{"Penalty", "WeakPenalty", "RowElimination", "RowColumnElimination"}

// String returns the name of the method
func (o DirichletMethod) String() string {
	if o >= 0 && int(o) < len(dirichletNames) {
		return dirichletNames[o]
	}
	return io.Sf("DirichletMethod(%d)", int(o))
}

// ParseDirichletMethod finds a method by its name
func ParseDirichletMethod(name string) (DirichletMethod, error) {
	for i, n := range dirichletNames {
		if n == name {
			return DirichletMethod(i), nil
		}
	}
	return 0, chk.Err("Dirichlet method %q is not supported. valid methods: %v", name, dirichletNames)
}

// DirichletPolicy enforces a prescribed value at one equation
type DirichletPolicy interface {
	Apply(ls LinearSystem, eq int, value float64)
}

// policyallocators holds all Dirichlet policies
var policyallocators = make(map[DirichletMethod]func(penalty float64) DirichletPolicy)

// registerPolicy adds a new policy to the allocators
func registerPolicy(m DirichletMethod, alloc func(penalty float64) DirichletPolicy) {
	if _, ok := policyallocators[m]; ok {
		chk.Panic("cannot register Dirichlet policy %v because it exists already", m)
	}
	policyallocators[m] = alloc
}

func init() {
	registerPolicy(Penalty, func(p float64) DirichletPolicy { return &penaltyPolicy{p} })
	registerPolicy(WeakPenalty, func(p float64) DirichletPolicy { return &weakPenaltyPolicy{p} })
	registerPolicy(RowElimination, func(p float64) DirichletPolicy { return rowPolicy{} })
	registerPolicy(RowColumnElimination, func(p float64) DirichletPolicy { return rowColumnPolicy{} })
}

// NewDirichletPolicy returns the policy corresponding to a method
func NewDirichletPolicy(m DirichletMethod, penalty float64) (DirichletPolicy, error) {
	alloc, ok := policyallocators[m]
	if !ok {
		return nil, chk.Err("cannot find Dirichlet policy %v", m)
	}
	return alloc(penalty), nil
}

// penaltyPolicy replaces the diagonal by the penalty number
type penaltyPolicy struct{ P float64 }

func (o *penaltyPolicy) Apply(ls LinearSystem, eq int, value float64) {
	ls.MatrixSetValue(eq, eq, o.P)
	ls.Rhs()[eq] = value * o.P
}

// weakPenaltyPolicy adds the penalty number to the diagonal
type weakPenaltyPolicy struct{ P float64 }

func (o *weakPenaltyPolicy) Apply(ls LinearSystem, eq int, value float64) {
	ls.MatrixAddValue(eq, eq, o.P)
	ls.Rhs()[eq] = value * o.P
}

// rowPolicy replaces the row by the identity
type rowPolicy struct{}

func (rowPolicy) Apply(ls LinearSystem, eq int, value float64) {
	ls.EliminateRow(eq, value)
}

// rowColumnPolicy eliminates row and column, keeping the matrix symmetric
type rowColumnPolicy struct{}

func (rowColumnPolicy) Apply(ls LinearSystem, eq int, value float64) {
	ls.EliminateRowColumn(eq, value)
}
