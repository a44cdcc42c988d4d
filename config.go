/*
 * config.go, part of mddatasetbuilder.
 *
 *
 * Copyright 2026 The mddatasetbuilder authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 3 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package dataset

import "fmt"

//Config carries the run-wide settings, threaded explicitly through every
//component. Check fills the zero-valued settings with their defaults;
//nothing in the library writes to a Config after that.
type Config struct {
	DumpFile string //LAMMPS dump with id, type and x y z per atom
	BondFile string //reaxff bond table; empty means detect bonds geometrically
	Elements []string
	//Elements maps the one-based LAMMPS atom type to a chemical symbol,
	//so Elements[0] is the symbol of type 1.

	Filter []string
	//Filter names the elements of interest: only species containing at
	//least one atom of a listed element are sampled and exported. Empty
	//means every species is of interest.

	Samples  int     //configurations wanted per species (K)
	Interval int     //use every Interval-th frame; 1 means every frame
	Epsilon  float64 //minimum fingerprint distance between two selected configurations

	JobName string //base name for the dataset directory and the input files
	OutDir  string //parent directory for the dataset; empty means the working directory
	Method  string //QM method for the exported jobs
	Basis   string //basis set for the exported jobs
	NProc   int    //%nproc for the exported jobs

	CPUs int   //worker goroutines for the extraction pass; 0 means GOMAXPROCS
	Seed int64 //seed for the randomized parts of the auxiliary outputs (DeePMD configs)

	PlotFile  string //if non-empty, write a species population chart there
	DeePMDDir string //if non-empty, write DeePMD training configs there
	DeePMDN   int    //how many train.json variants to write
}

//Check validates the configuration and fills the defaults that can't be
//zero. It returns a critical error on settings the pipeline can't run
//with.
func (C *Config) Check() error {
	if C.DumpFile == "" {
		return &CError{msg: "a dump file is required", frame: -1, critical: true, deco: []string{"Config.Check"}}
	}
	if len(C.Elements) == 0 {
		return &CError{msg: "the atom-type to element mapping is required", frame: -1, critical: true, deco: []string{"Config.Check"}}
	}
	for _, e := range C.Elements {
		if symbolCharge[e] == 0 {
			return &CError{msg: fmt.Sprintf("unknown element %q", e), frame: -1, critical: true, deco: []string{"Config.Check"}}
		}
	}
	for _, e := range C.Filter {
		if symbolCharge[e] == 0 {
			return &CError{msg: fmt.Sprintf("unknown element %q in the filter", e), frame: -1, critical: true, deco: []string{"Config.Check"}}
		}
	}
	if C.Samples <= 0 {
		return &CError{msg: fmt.Sprintf("requested %d samples per species", C.Samples), frame: -1, critical: true, deco: []string{"Config.Check"}}
	}
	if C.Interval <= 0 {
		C.Interval = 1
	}
	if C.Epsilon < 0 {
		return &CError{msg: "the minimum sampling distance can't be negative", frame: -1, critical: true, deco: []string{"Config.Check"}}
	}
	if C.JobName == "" {
		C.JobName = "md"
	}
	if C.Method == "" {
		C.Method = "mn15"
	}
	if C.Basis == "" {
		C.Basis = "6-31g**"
	}
	if C.NProc <= 0 {
		C.NProc = 4
	}
	if C.DeePMDN <= 0 {
		C.DeePMDN = 1
	}
	return nil
}
