/*
 * main.go, part of mddatasetbuilder
 *
 * Copyright 2026 The mddatasetbuilder authors
 *
 *  This program is free software; you can redistribute it and/or modify
 *  it under the terms of the GNU Lesser General Public License as published by
 *  the Free Software Foundation; either version 3 of the License, or
 *  (at your option) any later version.
 *
 *  This program is distributed in the hope that it will be useful,
 *  but WITHOUT ANY WARRANTY; without even the implied warranty of
 *  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 *  GNU General Public License for more details.
 *
 *  You should have received a copy of the GNU General Public License along
 *  with this program; if not, write to the Free Software Foundation, Inc.,
 *  51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
 *
 */

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/njzjz/mddatasetbuilder"
	"github.com/njzjz/mddatasetbuilder/builder"
)

var verb int

// If level is larger or equal, prints the d arguments to stderr
// otherwise, does nothing.
func LogV(level int, d ...interface{}) {
	if level <= verb {
		fmt.Fprintln(os.Stderr, d...)
	}
}

func main() {
	dump := flag.String("dump", "", "LAMMPS dump file with id, type and x y z per atom (possibly .gz or .zst)")
	bond := flag.String("bond", "", "reaxff bond file; if absent, bonds are detected from the geometry")
	elements := flag.String("elements", "", "comma-separated element for each LAMMPS atom type, e.g. C,H,O")
	filter := flag.String("filter", "", "comma-separated elements of interest; only species containing one are exported (default: all)")
	n := flag.Int("n", 1000, "configurations wanted per species")
	interval := flag.Int("i", 1, "use every i-th frame of the trajectory")
	eps := flag.Float64("eps", 0.05, "minimum fingerprint distance between two selected configurations")
	name := flag.String("o", "md", "base name for the dataset directory and the input files")
	outdir := flag.String("dir", "", "parent directory for the dataset (default: the working directory)")
	method := flag.String("method", "mn15", "QM method for the exported jobs")
	basis := flag.String("basis", "6-31g**", "basis set for the exported jobs")
	nproc := flag.Int("nproc", 4, "processors requested per exported job")
	cpus := flag.Int("cpus", 0, "worker goroutines (default: all cores)")
	seed := flag.Int64("seed", 0, "seed for the DeePMD network seeds")
	plotname := flag.String("plot", "", "if given, write a species population chart there (png)")
	deepmddir := flag.String("deepmd", "", "if given, write DeePMD training configs there")
	deepmdn := flag.Int("deepmdn", 1, "how many DeePMD train.json variants to write")
	verbose := flag.Int("v", 1, "level of verbosity")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage:\n  %s -dump md.dump -bond md.bonds -elements C,H,O [flags]\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	verb = *verbose

	commalist := func(s string) []string {
		var out []string
		if s == "" {
			return out
		}
		for _, v := range strings.Split(s, ",") {
			out = append(out, strings.TrimSpace(v))
		}
		return out
	}
	cfg := &dataset.Config{
		DumpFile:  *dump,
		BondFile:  *bond,
		Elements:  commalist(*elements),
		Filter:    commalist(*filter),
		Samples:   *n,
		Interval:  *interval,
		Epsilon:   *eps,
		JobName:   *name,
		OutDir:    *outdir,
		Method:    *method,
		Basis:     *basis,
		NProc:     *nproc,
		CPUs:      *cpus,
		Seed:      *seed,
		PlotFile:  *plotname,
		DeePMDDir: *deepmddir,
		DeePMDN:   *deepmdn,
	}
	start := time.Now()
	stats, err := builder.Run(cfg)
	if err != nil {
		log.Fatal(err)
	}
	LogV(1, fmt.Sprintf("done in %v: %d frames used (%d skipped), %d species, %d input files written",
		time.Since(start).Round(time.Millisecond), stats.Frames, stats.Skipped, stats.Species, stats.Written))
	for _, w := range stats.Warnings {
		LogV(2, "warning:", w)
	}
	if len(stats.Warnings) > 0 {
		LogV(1, fmt.Sprintf("%d warnings (run with -v 2 to see them)", len(stats.Warnings)))
	}
}
