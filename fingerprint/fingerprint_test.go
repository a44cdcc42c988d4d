package fingerprint

import (
	"math"
	"testing"

	"github.com/njzjz/mddatasetbuilder"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func waterFrame(Te *testing.T, index int, coords []float64) (*dataset.Frame, *dataset.Molecule) {
	Te.Helper()
	frame := &dataset.Frame{
		Index:   index,
		Symbols: []string{"O", "H", "H"},
		Coords:  mat.NewDense(3, 3, coords),
	}
	mol := &dataset.Molecule{
		FrameIndex: index,
		Atoms:      []int{0, 1, 2},
		Symbols:    []string{"O", "H", "H"},
		Bonds:      [][2]int{{0, 1}, {0, 2}},
		Orders:     []int{1, 1},
	}
	return frame, mol
}

func TestComputeNorm(Te *testing.T) {
	E := NewDefault()
	frame, mol := waterFrame(Te, 0, []float64{
		0, 0, 0,
		0.96, 0, 0,
		-0.24, 0.93, 0,
	})
	fp, err := E.Compute(mol, frame)
	if err != nil {
		Te.Fatal(err)
	}
	if len(fp) != E.Len() {
		Te.Fatalf("fingerprint length %d, want %d", len(fp), E.Len())
	}
	if n := floats.Norm(fp, 2); math.Abs(n-1) > 1e-12 {
		Te.Errorf("fingerprint norm %v, want 1", n)
	}
}

func TestComputeRigidInvariance(Te *testing.T) {
	E := NewDefault()
	frame, mol := waterFrame(Te, 0, []float64{
		0, 0, 0,
		0.96, 0, 0,
		-0.24, 0.93, 0,
	})
	//the same water rotated a quarter turn around z and shifted
	moved, movedMol := waterFrame(Te, 1, []float64{
		3, 4, 5,
		3, 4.96, 5,
		3 - 0.93, 4 - 0.24, 5,
	})
	a, err := E.Compute(mol, frame)
	if err != nil {
		Te.Fatal(err)
	}
	b, err := E.Compute(movedMol, moved)
	if err != nil {
		Te.Fatal(err)
	}
	if !floats.EqualApprox(a, b, 1e-12) {
		Te.Error("fingerprint changed under a rigid motion")
	}
}

func TestComputeRelabelInvariance(Te *testing.T) {
	E := NewDefault()
	frame, mol := waterFrame(Te, 0, []float64{
		0, 0, 0,
		0.96, 0, 0,
		-0.24, 0.93, 0,
	})
	//the same water with the atoms stored in another order
	swapped := &dataset.Frame{
		Index:   0,
		Symbols: []string{"H", "O", "H"},
		Coords: mat.NewDense(3, 3, []float64{
			0.96, 0, 0,
			0, 0, 0,
			-0.24, 0.93, 0,
		}),
	}
	swappedMol := &dataset.Molecule{
		FrameIndex: 0,
		Atoms:      []int{0, 1, 2},
		Symbols:    []string{"H", "O", "H"},
		Bonds:      [][2]int{{0, 1}, {1, 2}},
		Orders:     []int{1, 1},
	}
	a, err := E.Compute(mol, frame)
	if err != nil {
		Te.Fatal(err)
	}
	b, err := E.Compute(swappedMol, swapped)
	if err != nil {
		Te.Fatal(err)
	}
	if !floats.EqualApprox(a, b, 1e-12) {
		Te.Error("fingerprint changed under atom relabeling")
	}
}

func TestComputeWrappedMolecule(Te *testing.T) {
	E := NewDefault()
	whole := &dataset.Frame{
		Index:   0,
		Symbols: []string{"O", "H"},
		Box:     [3]float64{20, 20, 20},
		Coords:  mat.NewDense(2, 3, []float64{5, 5, 5, 5.96, 5, 5}),
	}
	//the same hydroxyl with its hydrogen wrapped to the other side of the
	//box; the raw O-H distance becomes 19.04 A
	wrapped := &dataset.Frame{
		Index:   1,
		Symbols: []string{"O", "H"},
		Box:     [3]float64{20, 20, 20},
		Coords:  mat.NewDense(2, 3, []float64{0.48, 5, 5, 19.52, 5, 5}),
	}
	mol := func(index int) *dataset.Molecule {
		return &dataset.Molecule{
			FrameIndex: index,
			Atoms:      []int{0, 1},
			Symbols:    []string{"O", "H"},
			Bonds:      [][2]int{{0, 1}},
			Orders:     []int{1},
		}
	}
	a, err := E.Compute(mol(0), whole)
	if err != nil {
		Te.Fatal(err)
	}
	b, err := E.Compute(mol(1), wrapped)
	if err != nil {
		Te.Fatal(err)
	}
	if !floats.EqualApprox(a, b, 1e-12) {
		Te.Errorf("fingerprint changed under wrapping into the box, distance %v",
			floats.Distance(a, b, 2))
	}
}

func TestComputeSingleAtom(Te *testing.T) {
	E := NewDefault()
	frame := &dataset.Frame{
		Index:   0,
		Symbols: []string{"O"},
		Coords:  mat.NewDense(1, 3, []float64{1, 2, 3}),
	}
	mol := &dataset.Molecule{FrameIndex: 0, Atoms: []int{0}, Symbols: []string{"O"}}
	fp, err := E.Compute(mol, frame)
	if err != nil {
		Te.Fatal(err)
	}
	for _, v := range fp {
		if v != 0 {
			Te.Fatal("a single atom should get the zero fingerprint")
		}
	}
}

func TestComputeDistantPairs(Te *testing.T) {
	//a pair further apart than the histogram range must still count
	E := New(8, 4.0)
	frame := &dataset.Frame{
		Index:   0,
		Symbols: []string{"H", "H"},
		Coords:  mat.NewDense(2, 3, []float64{0, 0, 0, 9, 0, 0}),
	}
	mol := &dataset.Molecule{
		FrameIndex: 0,
		Atoms:      []int{0, 1},
		Symbols:    []string{"H", "H"},
		Bonds:      [][2]int{{0, 1}},
		Orders:     []int{1},
	}
	fp, err := E.Compute(mol, frame)
	if err != nil {
		Te.Fatal(err)
	}
	if fp[len(fp)-1] != 1 {
		Te.Errorf("a far pair should land in the last bin, got %v", fp)
	}
}
