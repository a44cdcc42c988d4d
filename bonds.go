/*
 * bonds.go, part of mddatasetbuilder.
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

	"gonum.org/v1/gonum/mat"
)

//constants from DOI:10.1186/1758-2946-3-33
const (
	tooclose = 0.63
	bondtol  = 0.45
)

type geomBond struct {
	i, j int
	d    float64
}

//AssignBonds builds a bond table for a frame from the geometry alone,
//based on a simple covalent-radii distance criterion, similar to that
//described in DOI:10.1186/1758-2946-3-33. It is meant for trajectories
//that carry no reactive-force-field bond file. Distances are measured
//under the minimum-image convention along the periodic axes of box, so a
//bond crossing the boundary is still found. Atoms that end up with more
//bonds than their element allows lose the longest ones. The returned
//adjacency has the same shape as Frame.Bonds; bond orders are not
//estimated. It's O(n^2) on the frame size, so it will get slow for very
//large boxes.
func AssignBonds(symbols []string, coords *mat.Dense, box [3]float64) ([][]int, error) {
	n := len(symbols)
	bonds := make([]*geomBond, 0, n)
	adj := make([][]*geomBond, n)
	for i := 0; i < n; i++ {
		cov1 := symbolCovrad[symbols[i]]
		if cov1 == 0 {
			return nil, &CError{msg: "couldn't find the covalent radius for " + symbols[i], frame: -1, critical: true, deco: []string{"AssignBonds"}}
		}
		for j := i + 1; j < n; j++ {
			cov2 := symbolCovrad[symbols[j]]
			if cov2 == 0 {
				return nil, &CError{msg: "couldn't find the covalent radius for " + symbols[j], frame: -1, critical: true, deco: []string{"AssignBonds"}}
			}
			d := Dist(coords.RawRowView(i), coords.RawRowView(j), box)
			if d < cov1+cov2+bondtol && d > tooclose {
				b := &geomBond{i: i, j: j, d: d}
				bonds = append(bonds, b)
				adj[i] = append(adj[i], b)
				adj[j] = append(adj[j], b)
			}
		}
	}
	//Now we check that no atom has too many bonds, dropping the longest.
	removed := make(map[*geomBond]bool)
	for i := 0; i < n; i++ {
		max := symbolMaxBonds[symbols[i]]
		if max == 0 { //no specified number of bonds for this element
			continue
		}
		sort.Slice(adj[i], func(a, b int) bool { return adj[i][a].d < adj[i][b].d })
		kept := 0
		for _, b := range adj[i] {
			if removed[b] {
				continue
			}
			kept++
			if kept > max {
				removed[b] = true
			}
		}
	}
	out := make([][]int, n)
	for _, b := range bonds {
		if removed[b] {
			continue
		}
		out[b.i] = append(out[b.i], b.j)
		out[b.j] = append(out[b.j], b.i)
	}
	for i := range out {
		sort.Ints(out[i])
	}
	return out, nil
}
