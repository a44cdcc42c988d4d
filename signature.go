/*
 * signature.go, part of mddatasetbuilder.
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
	"sort"
	"strings"
)

//Signature is a canonical key for a molecule's labeled topology. Two
//molecules get the same Signature if, and only if, they are isomorphic
//under an element- and bond-order-respecting relabeling of their atoms.
//It is an explicit canonical form, not a hash, so equal keys can never be
//a collision. Signatures are totally ordered (as strings), which the
//pipeline relies on for deterministic species iteration.
type Signature string

//Signature computes the canonical structural key of the molecule. The
//canonical form is the lexicographically smallest traversal encoding of
//the molecule over all atom relabelings that respect the iteratively
//refined (element, neighborhood) coloring. The refinement prunes the
//search to the automorphisms of the coloring, so the enumeration stays
//tiny for anything but pathologically symmetric molecules.
func (M *Molecule) Signature() Signature {
	n := M.Len()
	if n == 1 {
		return Signature(M.Symbols[0] + ";")
	}
	c := newCanonizer(M)
	c.refine()
	for _, start := range c.candidates() {
		labelOf := make([]int, n)
		for i := range labelOf {
			labelOf[i] = -1
		}
		labelOf[start] = 0
		c.extend(labelOf, []int{start}, 0, 1)
	}
	return Signature(c.best)
}

//canonizer holds the molecule's topology reindexed to local (0..n-1)
//atom indices, the refined coloring, and the best encoding found so far.
type canonizer struct {
	n     int
	sym   []string
	adj   [][]int
	order map[[2]int]int //bond order by local pair, lower index first; 0 when unknown
	color []int          //refined color class per atom
	best  string
}

func newCanonizer(M *Molecule) *canonizer {
	n := M.Len()
	c := &canonizer{n: n, sym: M.Symbols, order: make(map[[2]int]int, len(M.Bonds))}
	local := make(map[int]int, n)
	for i, at := range M.Atoms {
		local[at] = i
	}
	c.adj = make([][]int, n)
	for k, b := range M.Bonds {
		i, j := local[b[0]], local[b[1]]
		c.adj[i] = append(c.adj[i], j)
		c.adj[j] = append(c.adj[j], i)
		if M.Orders != nil {
			c.order[pair(i, j)] = M.Orders[k]
		}
	}
	return c
}

func pair(i, j int) [2]int {
	if i < j {
		return [2]int{i, j}
	}
	return [2]int{j, i}
}

//refine runs Weisfeiler-Lehman-style color refinement: atoms start
//colored by element and repeatedly absorb the multiset of their
//neighbors' (bond order, color) pairs, until the partition stops
//splitting. The final classes are invariant under isomorphism.
func (c *canonizer) refine() {
	names := make([]string, c.n)
	for i, s := range c.sym {
		names[i] = s
	}
	c.color = rank(names)
	classes := count(c.color)
	for it := 0; it < c.n; it++ {
		for i := range names {
			neig := make([]string, 0, len(c.adj[i]))
			for _, j := range c.adj[i] {
				neig = append(neig, fmt.Sprintf("%d:%d", c.order[pair(i, j)], c.color[j]))
			}
			sort.Strings(neig)
			names[i] = fmt.Sprintf("%d(%s)", c.color[i], strings.Join(neig, ","))
		}
		newcolor := rank(names)
		newclasses := count(newcolor)
		c.color = newcolor
		if newclasses == classes {
			break
		}
		classes = newclasses
	}
}

//rank maps each name to its position among the sorted distinct names.
func rank(names []string) []int {
	uniq := make(map[string]bool, len(names))
	for _, s := range names {
		uniq[s] = true
	}
	sorted := make([]string, 0, len(uniq))
	for s := range uniq {
		sorted = append(sorted, s)
	}
	sort.Strings(sorted)
	pos := make(map[string]int, len(sorted))
	for i, s := range sorted {
		pos[s] = i
	}
	out := make([]int, len(names))
	for i, s := range names {
		out[i] = pos[s]
	}
	return out
}

func count(color []int) int {
	seen := make(map[int]bool, len(color))
	for _, v := range color {
		seen[v] = true
	}
	return len(seen)
}

//candidates returns the atoms allowed as traversal roots: those of the
//smallest refined color. Isomorphic molecules have matching color
//classes, so restricting roots this way never makes two isomorphic
//molecules canonicalize differently.
func (c *canonizer) candidates() []int {
	min := c.color[0]
	for _, v := range c.color {
		if v < min {
			min = v
		}
	}
	var cand []int
	for i, v := range c.color {
		if v == min {
			cand = append(cand, i)
		}
	}
	return cand
}

//extend grows a breadth-first labeling. The atom at queue[qpos] gets its
//still-unlabeled neighbors labeled next, ordered by refined color;
//neighbors of equal color are tried in every order, which is exactly the
//set of relabelings the canonical minimum must be taken over.
func (c *canonizer) extend(labelOf, queue []int, qpos, next int) {
	if next == c.n {
		if enc := c.encode(labelOf); c.best == "" || enc < c.best {
			c.best = enc
		}
		return
	}
	if qpos >= len(queue) {
		return //can't happen for a connected molecule
	}
	at := queue[qpos]
	var unlabeled []int
	for _, j := range c.adj[at] {
		if labelOf[j] == -1 {
			unlabeled = append(unlabeled, j)
		}
	}
	if len(unlabeled) == 0 {
		c.extend(labelOf, queue, qpos+1, next)
		return
	}
	sort.Slice(unlabeled, func(a, b int) bool { return c.color[unlabeled[a]] < c.color[unlabeled[b]] })
	c.permuteTies(labelOf, queue, qpos, next, unlabeled, nil)
}

//permuteTies recursively picks the next neighbor to label among those
//tied on color, backtracking over every tie-respecting order.
func (c *canonizer) permuteTies(labelOf, queue []int, qpos, next int, remaining, chosen []int) {
	if len(remaining) == 0 {
		for _, j := range chosen {
			labelOf[j] = next
			queue = append(queue, j)
			next++
		}
		c.extend(labelOf, queue, qpos+1, next)
		for _, j := range chosen {
			labelOf[j] = -1
		}
		return
	}
	for i, j := range remaining {
		if c.color[remaining[0]] != c.color[j] {
			break //colors are assigned in sorted order; only the leading class may go next
		}
		rest := make([]int, 0, len(remaining)-1)
		rest = append(rest, remaining[:i]...)
		rest = append(rest, remaining[i+1:]...)
		c.permuteTies(labelOf, queue, qpos, next, rest, append(chosen, j))
	}
}

//encode flattens a complete labeling into a string: the element of every
//atom in label order, then every edge as (low label, high label, order),
//sorted. Two labelings produce the same string only if they induce the
//same labeled graph.
func (c *canonizer) encode(labelOf []int) string {
	atomAt := make([]int, c.n)
	for at, l := range labelOf {
		atomAt[l] = at
	}
	var b strings.Builder
	for l := 0; l < c.n; l++ {
		b.WriteString(c.sym[atomAt[l]])
		b.WriteByte(',')
	}
	b.WriteByte(';')
	edges := make([]string, 0, len(c.order))
	seen := make(map[[2]int]bool, len(c.order))
	for i := 0; i < c.n; i++ {
		for _, j := range c.adj[i] {
			p := pair(i, j)
			if seen[p] {
				continue
			}
			seen[p] = true
			lp := pair(labelOf[i], labelOf[j])
			edges = append(edges, fmt.Sprintf("%02d-%02d:%d", lp[0], lp[1], c.order[p]))
		}
	}
	sort.Strings(edges)
	b.WriteString(strings.Join(edges, ","))
	return b.String()
}
