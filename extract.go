/*
 * extract.go, part of mddatasetbuilder.
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
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

//Molecules partitions the atoms of the frame into its molecules, i.e. the
//connected components of the bond graph. Every atom belongs to exactly one
//of the returned molecules; atoms without any bond become singleton
//molecules. The result is deterministic: molecules are sorted by their
//smallest atom index, and atoms within each molecule by index.
func (F *Frame) Molecules() ([]*Molecule, error) {
	if err := F.Check(); err != nil {
		return nil, errDecorate(err, "Molecules")
	}
	g := simple.NewUndirectedGraph()
	for i := 0; i < F.Len(); i++ {
		g.AddNode(simple.Node(i))
	}
	//Both directions go in, so a table that lists a bond on only one of
	//the two atoms' rows still yields it; SetEdge absorbs the duplicate
	//from a symmetric table.
	for i, neig := range F.Bonds {
		for _, j := range neig {
			if i == j {
				return nil, errDecorate(NewMalformedMolecule(F.Index, "atom %d bonded to itself", i+1), "Molecules")
			}
			g.SetEdge(simple.Edge{F: simple.Node(i), T: simple.Node(j)})
		}
	}
	components := topo.ConnectedComponents(g)
	mols := make([]*Molecule, 0, len(components))
	for _, comp := range components {
		atoms := make([]int, 0, len(comp))
		for _, n := range comp {
			atoms = append(atoms, int(n.ID()))
		}
		sort.Ints(atoms)
		mols = append(mols, F.buildMolecule(atoms))
	}
	sort.Slice(mols, func(i, j int) bool { return mols[i].Atoms[0] < mols[j].Atoms[0] })
	return mols, nil
}

//buildMolecule assembles the Molecule for a sorted set of atom indices,
//collecting the induced bonds (each one once, lower index first).
func (F *Frame) buildMolecule(atoms []int) *Molecule {
	m := &Molecule{FrameIndex: F.Index, Atoms: atoms}
	m.Symbols = make([]string, len(atoms))
	for i, at := range atoms {
		m.Symbols[i] = F.Symbols[at]
	}
	if F.Bonds == nil {
		return m
	}
	seen := make(map[[2]int]bool)
	for _, i := range atoms {
		for k, j := range F.Bonds[i] {
			pair := [2]int{i, j}
			if j < i {
				pair = [2]int{j, i}
			}
			if seen[pair] {
				continue
			}
			seen[pair] = true
			m.Bonds = append(m.Bonds, pair)
			if F.Orders != nil {
				m.Orders = append(m.Orders, F.Orders[i][k])
			}
		}
	}
	sort.Sort(&bondSorter{m})
	return m
}

//bondSorter sorts a molecule's bond list (and the parallel order list)
//by (first atom, second atom).
type bondSorter struct {
	m *Molecule
}

func (b *bondSorter) Len() int { return len(b.m.Bonds) }

func (b *bondSorter) Less(i, j int) bool {
	if b.m.Bonds[i][0] != b.m.Bonds[j][0] {
		return b.m.Bonds[i][0] < b.m.Bonds[j][0]
	}
	return b.m.Bonds[i][1] < b.m.Bonds[j][1]
}

func (b *bondSorter) Swap(i, j int) {
	b.m.Bonds[i], b.m.Bonds[j] = b.m.Bonds[j], b.m.Bonds[i]
	if b.m.Orders != nil {
		b.m.Orders[i], b.m.Orders[j] = b.m.Orders[j], b.m.Orders[i]
	}
}
