// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"github.com/cpmech/gosl/mpi"
)

// Comm exchanges data between partitions
type Comm interface {
	Rank() int                // rank of this processor
	Size() int                // number of processors
	SyncNodes(doms []*Domain) // copies the state of owned nodes to all ghost copies (blocking)
	Reduce(x []float64)       // sums x over all processors (blocking)
}

// LocalComm synchronises partitions living in this process. All domains share one
// linear system; thus no reduction is needed
type LocalComm struct{}

// Rank returns 0
func (LocalComm) Rank() int { return 0 }

// Size returns 1
func (LocalComm) Size() int { return 1 }

// Reduce does nothing
func (LocalComm) Reduce(x []float64) {}

// SyncNodes copies the state of owners to ghost copies
func (LocalComm) SyncNodes(doms []*Domain) {
	if len(doms) < 2 {
		return
	}
	owners := make(map[int]*Node)
	for _, d := range doms {
		for _, n := range d.Nodes {
			if n.Own {
				owners[n.Vert.Id] = n
			}
		}
	}
	for _, d := range doms {
		for _, n := range d.Nodes {
			if n.Own {
				continue
			}
			if src, ok := owners[n.Vert.Id]; ok {
				n.copyState(src)
			}
		}
	}
}

// MpiComm synchronises partitions living in different MPI processors; one domain per processor
type MpiComm struct {
	comm *mpi.Communicator
}

// NewMpiComm returns a communicator with all processors. mpi.Start must have been called
func NewMpiComm() *MpiComm {
	return &MpiComm{comm: mpi.NewCommunicator(nil)}
}

// Rank returns the rank of this processor
func (o *MpiComm) Rank() int { return o.comm.Rank() }

// Size returns the number of processors
func (o *MpiComm) Size() int { return o.comm.Size() }

// Reduce sums x over all processors
func (o *MpiComm) Reduce(x []float64) {
	orig := make([]float64, len(x))
	copy(orig, x)
	o.comm.AllReduceSum(x, orig)
}

// SyncNodes sums the owner-masked states of all processors and copies the result to ghosts
func (o *MpiComm) SyncNodes(doms []*Domain) {
	const nvals = 9 // U, V, A
	for _, d := range doms {
		nverts := len(d.Msh.Verts)
		buf := make([]float64, nvals*nverts)
		for _, n := range d.Nodes {
			if n.Own {
				k := nvals * n.Vert.Id
				copy(buf[k:k+3], n.U[:])
				copy(buf[k+3:k+6], n.V[:])
				copy(buf[k+6:k+9], n.A[:])
			}
		}
		o.Reduce(buf)
		for _, n := range d.Nodes {
			if n.Own {
				continue
			}
			k := nvals * n.Vert.Id
			copy(n.U[:], buf[k:k+3])
			copy(n.V[:], buf[k+3:k+6])
			copy(n.A[:], buf[k+6:k+9])
			n.Uprev, n.Vprev, n.Aprev = n.U, n.V, n.A
		}
	}
}

// copyState copies the kinematic state of another node
func (o *Node) copyState(src *Node) {
	o.U, o.V, o.A = src.U, src.V, src.A
	o.Uprev, o.Vprev, o.Aprev = src.Uprev, src.Vprev, src.Aprev
}
