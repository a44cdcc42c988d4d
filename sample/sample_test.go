package sample

import (
	"testing"
)

func fp(v float64) []float64 {
	return []float64{v, 0, 0}
}

func TestSelectSpread(Te *testing.T) {
	pool := []Candidate{
		{Frame: 0, Mol: 0, FP: fp(0)},
		{Frame: 1, Mol: 0, FP: fp(0.1)},
		{Frame: 2, Mol: 0, FP: fp(1.0)},
	}
	picked := Select(pool, 2, 0)
	if len(picked) != 2 {
		Te.Fatalf("picked %d, want 2", len(picked))
	}
	if picked[0].Frame != 0 {
		Te.Errorf("the first pick should be the earliest candidate, got frame %d", picked[0].Frame)
	}
	if picked[1].Frame != 2 {
		Te.Errorf("the second pick should be the furthest candidate, got frame %d", picked[1].Frame)
	}
}

func TestSelectCount(Te *testing.T) {
	pool := []Candidate{
		{Frame: 0, Mol: 0, FP: fp(0)},
		{Frame: 1, Mol: 0, FP: fp(0.5)},
		{Frame: 2, Mol: 0, FP: fp(1.0)},
	}
	if got := Select(pool, 10, 0); len(got) != 3 {
		Te.Errorf("asking for more than the pool should return the pool, got %d", len(got))
	}
	if got := Select(pool, 0, 0); got != nil {
		Te.Errorf("asking for nothing should return nothing, got %v", got)
	}
	if got := Select(nil, 5, 0); got != nil {
		Te.Errorf("an empty pool should return nothing, got %v", got)
	}
}

func TestSelectNearDuplicates(Te *testing.T) {
	//many copies of the same conformation plus one genuinely different
	pool := []Candidate{
		{Frame: 0, Mol: 0, FP: fp(0)},
		{Frame: 1, Mol: 0, FP: fp(0.001)},
		{Frame: 2, Mol: 0, FP: fp(0.002)},
		{Frame: 3, Mol: 0, FP: fp(1.0)},
		{Frame: 4, Mol: 0, FP: fp(0.001)},
	}
	picked := Select(pool, 5, 0.01)
	if len(picked) != 2 {
		Te.Fatalf("near duplicates should collapse to 2 picks, got %d", len(picked))
	}
	if picked[0].Frame != 0 || picked[1].Frame != 3 {
		Te.Errorf("picked frames %d and %d, want 0 and 3", picked[0].Frame, picked[1].Frame)
	}
}

func TestSelectExactDuplicates(Te *testing.T) {
	//the same conformation in three frames collapses to one pick even
	//with a zero distance threshold
	pool := []Candidate{
		{Frame: 0, Mol: 0, FP: fp(0.5)},
		{Frame: 1, Mol: 0, FP: fp(0.5)},
		{Frame: 2, Mol: 0, FP: fp(0.5)},
	}
	picked := Select(pool, 2, 0)
	if len(picked) != 1 {
		Te.Fatalf("identical candidates should collapse to 1 pick, got %d", len(picked))
	}
	if picked[0].Frame != 0 {
		Te.Errorf("the surviving pick should be the earliest, got frame %d", picked[0].Frame)
	}
}

func TestSelectOrderInvariance(Te *testing.T) {
	pool := []Candidate{
		{Frame: 3, Mol: 1, FP: fp(0.7)},
		{Frame: 0, Mol: 2, FP: fp(0.3)},
		{Frame: 0, Mol: 1, FP: fp(0.0)},
		{Frame: 5, Mol: 0, FP: fp(1.0)},
	}
	reversed := make([]Candidate, len(pool))
	for i, c := range pool {
		reversed[len(pool)-1-i] = c
	}
	a := Select(pool, 3, 0)
	b := Select(reversed, 3, 0)
	if len(a) != len(b) {
		Te.Fatalf("pool order changed the number of picks: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Frame != b[i].Frame || a[i].Mol != b[i].Mol {
			Te.Errorf("pick %d differs with pool order: %v vs %v", i, a[i], b[i])
		}
	}
	if a[0].Frame != 0 || a[0].Mol != 1 {
		Te.Errorf("the seed should be the earliest candidate, got %v", a[0])
	}
}
