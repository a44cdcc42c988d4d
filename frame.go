/*
 * frame.go, part of mddatasetbuilder.
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

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

//Frame is one timestep of a trajectory: the chemical symbol and Cartesian
//position of every atom, plus the bond table of the reactive force field.
//Atoms are identified by their zero-based position, which corresponds to
//the (one-based) LAMMPS atom id. A Frame is never mutated after it has
//been read.
type Frame struct {
	Index   int //position in the trajectory files; striding skips indexes but never renumbers them
	Step    int //the LAMMPS timestep
	Symbols []string
	Coords  *mat.Dense //Len() x 3
	Box     [3]float64 //edge lengths of the periodic box; 0 along an axis means not periodic there
	Bonds   [][]int    //adjacency list, zero-based
	Orders  [][]int    //bond orders parallel to Bonds, or nil if unknown
}

//Dist returns the distance between the positions a and b, under the
//minimum-image convention along every axis with a positive box length.
func Dist(a, b []float64, box [3]float64) float64 {
	var sum float64
	for k := 0; k < 3; k++ {
		d := a[k] - b[k]
		if box[k] > 0 {
			d -= math.Round(d/box[k]) * box[k]
		}
		sum += d * d
	}
	return math.Sqrt(sum)
}

//Len returns the number of atoms in the frame.
func (F *Frame) Len() int {
	return len(F.Symbols)
}

//Check verifies the internal consistency of the frame: the coordinate
//matrix must have one 3D row per atom, and every bond must reference an
//existing atom. The first condition failing is a critical (trajectory)
//error, the second voids only this frame.
func (F *Frame) Check() error {
	if F.Coords == nil {
		return NewMalformedTrajectory(F.Index, "no coordinates")
	}
	r, c := F.Coords.Dims()
	if r != F.Len() || c != 3 {
		return NewMalformedTrajectory(F.Index, "got %d atoms but a %dx%d coordinate matrix", F.Len(), r, c)
	}
	if F.Bonds != nil && len(F.Bonds) != F.Len() {
		return NewMalformedTrajectory(F.Index, "got %d atoms but %d bond-table entries", F.Len(), len(F.Bonds))
	}
	for i, neig := range F.Bonds {
		if F.Orders != nil && len(F.Orders[i]) != len(neig) {
			return NewMalformedMolecule(F.Index, "atom %d has %d bonds but %d bond orders", i+1, len(neig), len(F.Orders[i]))
		}
		for _, j := range neig {
			if j < 0 || j >= F.Len() {
				return NewMalformedMolecule(F.Index, "atom %d bonded to non-existent atom %d", i+1, j+1)
			}
		}
	}
	return nil
}

//Molecule is a connected component of one Frame's bond graph. Atoms holds
//the zero-based indices of the member atoms into the owning frame, in
//increasing order, with Symbols parallel to it. Bonds holds the induced
//bond list as index pairs into the frame, first index lower, and Orders
//the corresponding bond orders (nil if the trajectory carries none).
type Molecule struct {
	FrameIndex int
	Atoms      []int
	Symbols    []string
	Bonds      [][2]int
	Orders     []int
}

//Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int {
	return len(M.Atoms)
}

//Formula returns the element composition in Hill order (C first, then H,
//then everything else alphabetically), e.g. C2H6O.
func (M *Molecule) Formula() string {
	counts := make(map[string]int)
	for _, s := range M.Symbols {
		counts[s]++
	}
	symbols := make([]string, 0, len(counts))
	for s := range counts {
		if s != "C" && s != "H" {
			symbols = append(symbols, s)
		}
	}
	sort.Strings(symbols)
	if counts["H"] > 0 {
		symbols = append([]string{"H"}, symbols...)
	}
	if counts["C"] > 0 {
		symbols = append([]string{"C"}, symbols...)
	}
	var b strings.Builder
	for _, s := range symbols {
		b.WriteString(s)
		if counts[s] > 1 {
			fmt.Fprintf(&b, "%d", counts[s])
		}
	}
	return b.String()
}

//CoordsIn returns the coordinates of the molecule's atoms within the given
//frame, as a new Len() x 3 matrix in the molecule's atom order. When the
//frame has a periodic box, a molecule split across a boundary is made whole
//again: walking the bonds from the first atom, every atom is moved to the
//image nearest to the neighbor it was reached through. It panics if the
//frame is not the one the molecule was extracted from.
func (M *Molecule) CoordsIn(f *Frame) *mat.Dense {
	if f.Index != M.FrameIndex {
		panic(fmt.Sprintf("molecule of frame %d queried with frame %d", M.FrameIndex, f.Index))
	}
	c := mat.NewDense(M.Len(), 3, nil)
	for i, at := range M.Atoms {
		c.Set(i, 0, f.Coords.At(at, 0))
		c.Set(i, 1, f.Coords.At(at, 1))
		c.Set(i, 2, f.Coords.At(at, 2))
	}
	if f.Box[0] > 0 || f.Box[1] > 0 || f.Box[2] > 0 {
		M.unwrap(c, f.Box)
	}
	return c
}

//unwrap shifts atoms by whole box lengths so every bond sits at its
//minimum-image length, walking the bond graph breadth-first from the first
//atom. An atom with no bond path to the first one is imaged relative to it
//directly.
func (M *Molecule) unwrap(c *mat.Dense, box [3]float64) {
	local := make(map[int]int, M.Len())
	for i, at := range M.Atoms {
		local[at] = i
	}
	adj := make([][]int, M.Len())
	for _, b := range M.Bonds {
		i, j := local[b[0]], local[b[1]]
		adj[i] = append(adj[i], j)
		adj[j] = append(adj[j], i)
	}
	done := make([]bool, M.Len())
	var queue []int
	for start := 0; start < M.Len(); start++ {
		if done[start] {
			continue
		}
		done[start] = true
		if start > 0 {
			shiftNear(c, start, 0, box)
		}
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			i := queue[0]
			queue = queue[1:]
			for _, j := range adj[i] {
				if done[j] {
					continue
				}
				done[j] = true
				shiftNear(c, j, i, box)
				queue = append(queue, j)
			}
		}
	}
}

//shiftNear moves atom i of c to its periodic image nearest to atom ref
func shiftNear(c *mat.Dense, i, ref int, box [3]float64) {
	for k := 0; k < 3; k++ {
		if box[k] <= 0 {
			continue
		}
		d := c.At(i, k) - c.At(ref, k)
		c.Set(i, k, c.At(i, k)-math.Round(d/box[k])*box[k])
	}
}

//Species is the set of all molecules in a trajectory that share one
//structural signature. It is built once per full trajectory pass and not
//mutated afterwards.
type Species struct {
	Sig     Signature
	Name    string //a unique, filesystem-safe name, set once all species are known
	Members []*Molecule
}

//Len returns the number of member configurations.
func (S *Species) Len() int {
	return len(S.Members)
}

//SelectedSet is the bounded, diversity-selected subset of one species'
//configurations; the final artifact handed to the exporter.
type SelectedSet struct {
	Species *Species
	Members []*Molecule
}
