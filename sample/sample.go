//Package sample picks a diverse subset of the occurrences of a species
//along a trajectory. The occurrences are compared through their geometric
//fingerprints, and picked greedily so each new pick is the one furthest
//from everything picked so far. The procedure is deterministic for a given
//pool, whatever order the pool arrives in.
package sample

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

//A Candidate is one occurrence of a species: a molecule in a frame,
//represented by its fingerprint.
type Candidate struct {
	Frame int //index of the frame in the trajectory
	Mol   int //ordinal of the molecule within its frame
	FP    []float64
}

//Select returns up to max candidates from pool, spread out in fingerprint
//space. The earliest candidate in the trajectory is always picked first.
//A candidate within eps of an already picked one is considered a near
//duplicate and never picked, so fewer than max candidates can come back
//even from a large pool; with eps 0 only exact duplicates collapse. Ties always resolve towards the earliest
//candidate, so two runs over the same pool return the same picks in the
//same order.
func Select(pool []Candidate, max int, eps float64) []Candidate {
	if max <= 0 || len(pool) == 0 {
		return nil
	}
	pool = append([]Candidate{}, pool...) //the caller keeps its order
	sort.Slice(pool, func(i, j int) bool {
		if pool[i].Frame != pool[j].Frame {
			return pool[i].Frame < pool[j].Frame
		}
		return pool[i].Mol < pool[j].Mol
	})
	picked := make([]Candidate, 0, max)
	picked = append(picked, pool[0])
	//mindist[i] is the distance from pool[i] to the closest pick so far
	mindist := make([]float64, len(pool))
	for i := 1; i < len(pool); i++ {
		mindist[i] = floats.Distance(pool[i].FP, pool[0].FP, 2)
	}
	taken := make([]bool, len(pool))
	taken[0] = true
	for len(picked) < max {
		best := -1
		for i, d := range mindist {
			//eps 0 still rejects exact duplicates
			if taken[i] || d <= eps {
				continue
			}
			//strict comparison: the earliest candidate wins ties
			if best < 0 || d > mindist[best] {
				best = i
			}
		}
		if best < 0 {
			break
		}
		taken[best] = true
		picked = append(picked, pool[best])
		for i := range mindist {
			if taken[i] {
				continue
			}
			if d := floats.Distance(pool[i].FP, pool[best].FP, 2); d < mindist[i] {
				mindist[i] = d
			}
		}
	}
	return picked
}
