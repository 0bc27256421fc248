// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
	"github.com/passmo/elastodyn/fem"
	"github.com/passmo/elastodyn/inp"
	"github.com/passmo/elastodyn/out"
	"github.com/spf13/cobra"
)

// options holds the flags of the run command
type options struct {
	verbose   bool     // show messages
	alias     string   // word appended to the simulation key
	erasePrev bool     // erase previous results
	summary   bool     // save summary and nodal results
	parallel  bool     // allow MPI run
	nparts    int      // in-process partitions; overrides simulation file if > 0
	db        string   // SQLite database to store histories; empty => none
	desc      string   // description of run in database
	track     []int    // vertices recorded in database; empty => all
	plot      []string // coordinates "x,y[,z]" of vertices to plot
	plotKey   string   // quantity to plot
}

func main() {
	mpi.Start()
	code := 0
	if err := newRootCommand().Execute(); err != nil {
		if !mpi.IsOn() || mpi.WorldRank() == 0 {
			io.PfRed("ERROR: %v\n", err)
		}
		code = 1
	}
	mpi.Stop()
	os.Exit(code)
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "elastodyn",
		Short: "Linear elastodynamics with the finite element method",
	}
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newRunsCommand())
	return cmd
}

func newRunCommand() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "run <file.sim>",
		Short: "Run a simulation",
		Long: `Run a simulation given in a .sim (JSON) or .yaml file.

Example:
  elastodyn run box.sim --verbose
  elastodyn run box.sim --nparts 2 --db box.db --track 3,5
  mpirun -np 2 elastodyn run box.sim --mpi`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(&o, args[0])
		},
	}
	f := cmd.Flags()
	f.BoolVarP(&o.verbose, "verbose", "v", false, "show messages")
	f.StringVar(&o.alias, "alias", "", "word appended to the simulation key")
	f.BoolVar(&o.erasePrev, "erase", true, "erase previous results")
	f.BoolVar(&o.summary, "summary", true, "save summary and nodal results")
	f.BoolVar(&o.parallel, "mpi", false, "allow parallel run with MPI")
	f.IntVar(&o.nparts, "nparts", 0, "number of in-process partitions")
	f.StringVar(&o.db, "db", "", "path to SQLite database to store histories")
	f.StringVar(&o.desc, "desc", "", "description of run stored in database")
	f.IntSliceVar(&o.track, "track", nil, "vertices to store in database")
	f.StringArrayVar(&o.plot, "plot", nil, "coordinates of vertices to plot; e.g. --plot 2,1 --plot 1,1")
	f.StringVar(&o.plotKey, "key", "ux", "quantity to plot")
	return cmd
}

func newRunsCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "runs <file.db>",
		Short:         "List runs stored in database",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := out.Open(args[0])
			if err != nil {
				return err
			}
			defer store.Close()
			runs, err := store.Runs()
			if err != nil {
				return err
			}
			for _, r := range runs {
				io.Pf("%s  %-20s %s  %s\n", r.Id, r.Key, r.Created, r.Desc)
			}
			return nil
		},
	}
}

func run(o *options, simfnpath string) (err error) {

	// message
	rank := 0
	if mpi.IsOn() {
		rank = mpi.WorldRank()
	}
	if rank == 0 && o.verbose {
		io.PfWhite("\nelastodyn -- linear elastodynamics\n\n")
		io.Pf("simulation file        : %s\n", simfnpath)
		io.Pf("word to add to results : %q\n", o.alias)
		io.Pf("allow parallel run     : %v\n", o.parallel)
		io.Pf("in-process partitions  : %d\n", o.nparts)
		io.Pf("database               : %q\n\n", o.db)
	}

	// analysis
	sim, err := inp.ReadSim(simfnpath, o.alias, o.erasePrev)
	if err != nil {
		return
	}
	sim.Data.ShowMsg = sim.Data.ShowMsg || o.verbose
	if o.nparts > 0 {
		sim.Data.Nparts = o.nparts
	}
	analysis, err := fem.NewFEMsim(sim, o.summary, o.parallel)
	if err != nil {
		return
	}

	// database
	if o.db != "" {
		path := o.db
		if analysis.Nproc > 1 {
			path = io.Sf("%s_p%d", o.db, analysis.Proc)
		}
		var store *out.Store
		store, err = out.Open(path)
		if err != nil {
			return
		}
		defer store.Close()
		runId := sim.Key
		if analysis.Summary != nil {
			runId = analysis.Summary.RunId
		}
		err = store.BeginRun(runId, sim.Key, o.desc, o.track)
		if err != nil {
			return
		}
		analysis.Solver.Recs = append(analysis.Solver.Recs, store)
	}

	// run
	err = analysis.Run()
	if err != nil {
		return
	}

	// plot
	if len(o.plot) > 0 && rank == 0 {
		if !o.summary {
			return chk.Err("plots require the summary; do not use --summary=false")
		}
		err = plot(o, analysis)
	}
	return
}

func plot(o *options, analysis *fem.FEM) (err error) {
	post, err := out.NewPost(analysis.Sim)
	if err != nil {
		return
	}
	var aliases []string
	for _, s := range o.plot {
		var x []float64
		x, err = parseCoords(s)
		if err != nil {
			return
		}
		err = post.Define(s, out.At(x))
		if err != nil {
			return
		}
		aliases = append(aliases, s)
	}
	err = post.LoadResults(nil)
	if err != nil {
		return
	}
	return post.PlotHistory(o.plotKey, aliases, analysis.Sim.DirOut, analysis.Sim.Key+"_"+o.plotKey)
}

// parseCoords parses "x,y" or "x,y,z"
func parseCoords(s string) (x []float64, err error) {
	fields := strings.Split(s, ",")
	if len(fields) < 2 || len(fields) > 3 {
		return nil, chk.Err("coordinates must be given as x,y or x,y,z. %q is invalid", s)
	}
	x = make([]float64, len(fields))
	for i, f := range fields {
		x[i], err = strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, chk.Err("cannot parse coordinate %q:\n%v", f, err)
		}
	}
	return
}
