package report

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSpeciesBars(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "species.png")
	counts := map[string]int{"H2O": 120, "OH": 14, "H2": 3, "H2O2": 1}
	if err := SpeciesBars(counts, "test", name); err != nil {
		Te.Fatal(err)
	}
	fi, err := os.Stat(name)
	if err != nil {
		Te.Fatal(err)
	}
	if fi.Size() == 0 {
		Te.Error("the chart file is empty")
	}
}

func TestSpeciesBarsFolding(Te *testing.T) {
	//enough species to force the "other" bar
	counts := make(map[string]int)
	for i := 0; i < 2*maxBars; i++ {
		counts[string(rune('A'+i%26))+string(rune('a'+i/26))] = i + 1
	}
	name := filepath.Join(Te.TempDir(), "species.png")
	if err := SpeciesBars(counts, "test", name); err != nil {
		Te.Fatal(err)
	}
}

func TestSpeciesBarsEmpty(Te *testing.T) {
	if err := SpeciesBars(nil, "test", "nowhere.png"); err == nil {
		Te.Error("an empty population should be an error")
	}
}
