/*
 * atomicdata.go, part of mddatasetbuilder.
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

//A map for assigning mass to elements.
//Note that just the elements common in reactive MD are present.
var symbolMass = map[string]float64{
	"H":  1.008,
	"He": 4.002,
	"Li": 6.94,
	"Be": 9.012,
	"B":  10.81,
	"C":  12.011,
	"N":  14.007,
	"O":  15.999,
	"F":  18.998,
	"Ne": 20.18,
	"Na": 22.99,
	"Mg": 24.30,
	"Al": 26.98,
	"Si": 28.08,
	"P":  30.97,
	"S":  32.06,
	"Cl": 35.45,
	"K":  39.1,
	"Ca": 40.08,
	"Fe": 55.84,
	"Cu": 63.55,
	"Zn": 65.38,
	"Br": 79.904,
	"I":  126.90,
}

//A map for assigning nuclear charges to elements. Used for the
//charge-weighted fingerprint terms and to decide the spin multiplicity
//of the exported quantum-chemistry jobs.
var symbolCharge = map[string]int{
	"H":  1,
	"He": 2,
	"Li": 3,
	"Be": 4,
	"B":  5,
	"C":  6,
	"N":  7,
	"O":  8,
	"F":  9,
	"Ne": 10,
	"Na": 11,
	"Mg": 12,
	"Al": 13,
	"Si": 14,
	"P":  15,
	"S":  16,
	"Cl": 17,
	"K":  19,
	"Ca": 20,
	"Fe": 26,
	"Cu": 29,
	"Zn": 30,
	"Br": 35,
	"I":  53,
}

//A map for assigning covalent radii to elements, used when bonds have to
//be detected from the geometry instead of read from a bond table.
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
var symbolCovrad = map[string]float64{
	"H":  0.4, // 0.31; a longer radius is harmless since H bonds in excess of one get pruned later.
	"He": 0.28,
	"Li": 1.28,
	"Be": 0.96,
	"B":  0.84,
	"C":  0.76, //the sp3 radius
	"N":  0.71,
	"O":  0.66,
	"F":  0.57,
	"Ne": 0.58,
	"Na": 1.66,
	"Mg": 1.41,
	"Al": 1.21,
	"Si": 1.11,
	"P":  1.07,
	"S":  1.05,
	"Cl": 1.02,
	"K":  2.03,
	"Ca": 1.76,
	"Fe": 1.52, //hs
	"Cu": 1.32,
	"Zn": 1.22,
	"Br": 1.2,
	"I":  1.39,
}

//A map for checking that atoms don't have too many bonds when bonds are
//detected geometrically. A value of 0 means undefined, i.e. that this
//atom shouldn't be checked for max bonds.
var symbolMaxBonds = map[string]int{
	"H":  1, //this is the only one truly important.
	"He": 0,
	"C":  4,
	"N":  0, //undefined; N can be hypervalent in reactive trajectories
	"O":  2,
	"F":  1,
	"P":  0,
	"S":  0,
	"Cl": 1,
	"Br": 1,
	"I":  1,
}

//Mass returns the atomic mass for a chemical symbol, or 0 if
//the symbol is not known to the library.
func Mass(symbol string) float64 {
	return symbolMass[symbol]
}

//NuclearCharge returns the atomic number for a chemical symbol, or 0 if
//the symbol is not known to the library.
func NuclearCharge(symbol string) int {
	return symbolCharge[symbol]
}
