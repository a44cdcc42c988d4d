/*
 * frame_test.go, part of mddatasetbuilder.
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
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestDist(Te *testing.T) {
	box := [3]float64{20, 20, 0}
	a := []float64{0.5, 19.5, 0}
	b := []float64{19.5, 0.5, 3}
	//x and y wrap to 1 A each, z is not periodic
	if d := Dist(a, b, box); math.Abs(d-math.Sqrt(11)) > 1e-12 {
		Te.Errorf("minimum-image distance %v, want %v", d, math.Sqrt(11))
	}
	if d := Dist(a, b, [3]float64{}); math.Abs(d-math.Sqrt(19*19+19*19+9)) > 1e-12 {
		Te.Errorf("without a box the distance should be the plain one, got %v", d)
	}
}

func TestCoordsInUnwrap(Te *testing.T) {
	//a three-carbon chain along x, 1.5 A spacing, wrapped into a 4 A box;
	//the middle and last atoms sit on the far side of the boundary
	F := &Frame{
		Index:   0,
		Symbols: []string{"C", "C", "C"},
		Box:     [3]float64{4, 20, 20},
		Coords: mat.NewDense(3, 3, []float64{
			3.8, 5, 5,
			1.3, 5, 5,
			2.8, 5, 5,
		}),
	}
	M := &Molecule{
		FrameIndex: 0,
		Atoms:      []int{0, 1, 2},
		Symbols:    []string{"C", "C", "C"},
		Bonds:      [][2]int{{0, 1}, {1, 2}},
		Orders:     []int{1, 1},
	}
	c := M.CoordsIn(F)
	want := []float64{3.8, 5.3, 6.8}
	for i, x := range want {
		if math.Abs(c.At(i, 0)-x) > 1e-12 {
			Te.Errorf("atom %d x after unwrapping: %v, want %v", i, c.At(i, 0), x)
		}
	}
	//the end-to-end span exceeds half the box, so only walking the bonds
	//recovers it
	if d := c.At(2, 0) - c.At(0, 0); math.Abs(d-3.0) > 1e-12 {
		Te.Errorf("end-to-end span %v, want 3", d)
	}
}

func TestCoordsInNoBox(Te *testing.T) {
	F := &Frame{
		Index:   0,
		Symbols: []string{"O", "H"},
		Coords:  mat.NewDense(2, 3, []float64{0.48, 5, 5, 19.52, 5, 5}),
	}
	M := &Molecule{
		FrameIndex: 0,
		Atoms:      []int{0, 1},
		Symbols:    []string{"O", "H"},
		Bonds:      [][2]int{{0, 1}},
		Orders:     []int{1},
	}
	c := M.CoordsIn(F)
	if c.At(1, 0) != 19.52 {
		Te.Errorf("without a box coordinates should come back untouched, got %v", c.At(1, 0))
	}
}
