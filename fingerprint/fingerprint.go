//Package fingerprint turns a molecule in a frame into a fixed-length
//geometric descriptor. The descriptor is a histogram of the pairwise
//interatomic distances, each pair weighted by the product of the nuclear
//charges over the distance, normalized to unit Euclidean norm. It does not
//change under translation, rotation or relabeling of the atoms, nor under
//wrapping into the periodic box, so it can be compared across frames
//directly.
package fingerprint

import (
	"math"
	"sort"

	"github.com/njzjz/mddatasetbuilder"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//pairs sorts the distances and their weights together
type pairs struct {
	d, w []float64
}

func (p pairs) Len() int           { return len(p.d) }
func (p pairs) Less(i, j int) bool { return p.d[i] < p.d[j] }
func (p pairs) Swap(i, j int) {
	p.d[i], p.d[j] = p.d[j], p.d[i]
	p.w[i], p.w[j] = p.w[j], p.w[i]
}

//Default descriptor shape. 64 bins over 8 Angstrom keeps neighboring
//coordination shells in separate bins for the bond lengths found in
//organic systems.
const (
	DefaultBins = 64
	DefaultRMax = 8.0
)

//An Engine computes fingerprints with a fixed shape, so the vectors it
//returns are mutually comparable.
type Engine struct {
	bins     int
	rmax     float64
	dividers []float64
}

//New returns an Engine with bins histogram bins covering distances up to
//rmax Angstrom. Pairs further apart than rmax are counted in the last bin.
func New(bins int, rmax float64) *Engine {
	if bins < 1 {
		bins = DefaultBins
	}
	if rmax <= 0 {
		rmax = DefaultRMax
	}
	E := &Engine{bins: bins, rmax: rmax}
	E.dividers = make([]float64, bins+1)
	floats.Span(E.dividers, 0, rmax)
	return E
}

//NewDefault returns an Engine with the default shape
func NewDefault() *Engine {
	return New(DefaultBins, DefaultRMax)
}

//Len returns the length of the vectors produced by the Engine
func (E *Engine) Len() int {
	return E.bins
}

//Compute returns the fingerprint of mol with the coordinates it has in
//frame, made whole across the periodic boundary first, so the two sides
//of a wrapped molecule measure their true distances.
//A molecule with a single atom has no pairs and gets the zero
//vector. The returned error is non-critical: a molecule that can't be
//fingerprinted only removes itself from the pool.
func (E *Engine) Compute(mol *dataset.Molecule, frame *dataset.Frame) ([]float64, error) {
	coords := mol.CoordsIn(frame)
	n := mol.Len()
	fp := make([]float64, E.bins)
	if n < 2 {
		return fp, nil
	}
	npairs := n * (n - 1) / 2
	dists := make([]float64, 0, npairs)
	weights := make([]float64, 0, npairs)
	for i := 0; i < n; i++ {
		zi := dataset.NuclearCharge(mol.Symbols[i])
		if zi <= 0 {
			return nil, dataset.NewMalformedMolecule(mol.FrameIndex, "no nuclear charge for element %s", mol.Symbols[i])
		}
		for j := i + 1; j < n; j++ {
			zj := dataset.NuclearCharge(mol.Symbols[j])
			if zj <= 0 {
				return nil, dataset.NewMalformedMolecule(mol.FrameIndex, "no nuclear charge for element %s", mol.Symbols[j])
			}
			d := floats.Distance(coords.RawRowView(i), coords.RawRowView(j), 2)
			if d == 0 {
				return nil, dataset.NewMalformedMolecule(mol.FrameIndex, "two atoms of a molecule share a position")
			}
			if d >= E.rmax {
				d = math.Nextafter(E.rmax, 0) //clamp into the last bin
			}
			dists = append(dists, d)
			weights = append(weights, float64(zi*zj)/d)
		}
	}
	sort.Sort(pairs{dists, weights}) //stat.Histogram wants sorted samples
	stat.Histogram(fp, E.dividers, dists, weights)
	norm := floats.Norm(fp, 2)
	if norm > 0 {
		floats.Scale(1/norm, fp)
	}
	return fp, nil
}
