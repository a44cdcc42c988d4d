/*
 * bonds_test.go, part of mddatasetbuilder.
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
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestAssignBonds(Te *testing.T) {
	//a water and a far-away hydroxyl
	symbols := []string{"O", "H", "H", "O", "H"}
	coords := mat.NewDense(5, 3, []float64{
		0, 0, 0,
		0.96, 0, 0,
		-0.24, 0.93, 0,
		5, 5, 5,
		5.96, 5, 5,
	})
	bonds, err := AssignBonds(symbols, coords, [3]float64{})
	if err != nil {
		Te.Fatal(err)
	}
	want := [][]int{{1, 2}, {0}, {0}, {4}, {3}}
	for i := range want {
		if len(bonds[i]) != len(want[i]) {
			Te.Fatalf("atom %d: bonds %v, want %v", i+1, bonds[i], want[i])
		}
		for k := range want[i] {
			if bonds[i][k] != want[i][k] {
				Te.Errorf("atom %d: bonds %v, want %v", i+1, bonds[i], want[i])
			}
		}
	}
}

func TestAssignBondsAcrossBox(Te *testing.T) {
	//a hydroxyl wrapped across the x boundary of a 20 A periodic box: the
	//minimum-image O-H distance is 0.96 A even though the raw one is 19.04
	symbols := []string{"O", "H"}
	coords := mat.NewDense(2, 3, []float64{
		0.48, 5, 5,
		19.52, 5, 5,
	})
	bonds, err := AssignBonds(symbols, coords, [3]float64{20, 20, 20})
	if err != nil {
		Te.Fatal(err)
	}
	if len(bonds[0]) != 1 || bonds[0][0] != 1 {
		Te.Errorf("a bond crossing the boundary should be found, got %v", bonds)
	}
	//without a box the same pair must stay unbonded
	bonds, err = AssignBonds(symbols, coords, [3]float64{})
	if err != nil {
		Te.Fatal(err)
	}
	if len(bonds[0]) != 0 {
		Te.Errorf("without a box there is no image to bond through, got %v", bonds)
	}
}

func TestAssignBondsTooClose(Te *testing.T) {
	//overlapping atoms, an artifact, must not bond
	symbols := []string{"H", "H"}
	coords := mat.NewDense(2, 3, []float64{0, 0, 0, 0.3, 0, 0})
	bonds, err := AssignBonds(symbols, coords, [3]float64{})
	if err != nil {
		Te.Fatal(err)
	}
	if len(bonds[0]) != 0 || len(bonds[1]) != 0 {
		Te.Errorf("atoms 0.3 A apart should not bond, got %v", bonds)
	}
}

func TestAssignBondsPruning(Te *testing.T) {
	//a hydrogen between two oxygens is within bonding distance of both,
	//but hydrogen takes a single bond: the shorter one wins
	symbols := []string{"O", "H", "O"}
	coords := mat.NewDense(3, 3, []float64{
		0, 0, 0,
		0.97, 0, 0,
		2.0, 0, 0,
	})
	bonds, err := AssignBonds(symbols, coords, [3]float64{})
	if err != nil {
		Te.Fatal(err)
	}
	if len(bonds[1]) != 1 || bonds[1][0] != 0 {
		Te.Errorf("the hydrogen should keep only its shortest bond, got %v", bonds[1])
	}
	if len(bonds[2]) != 0 {
		Te.Errorf("the far oxygen should end up unbonded, got %v", bonds[2])
	}
}

func TestAssignBondsUnknownElement(Te *testing.T) {
	coords := mat.NewDense(1, 3, nil)
	_, err := AssignBonds([]string{"Xx"}, coords, [3]float64{})
	if err == nil {
		Te.Fatal("an element without a covalent radius should be an error")
	}
	if derr, ok := err.(Error); !ok || !derr.Critical() {
		Te.Errorf("an unknown element should be critical, got: %v", err)
	}
}
