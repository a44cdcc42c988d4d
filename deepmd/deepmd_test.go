package deepmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteTrainJSONs(Te *testing.T) {
	dir := Te.TempDir()
	systems := []string{filepath.Join(dir, "data", "C1H4"), filepath.Join(dir, "data", "H2O1")}
	err := WriteTrainJSONs(dir, 2, []string{"C", "H", "O"}, systems, 42)
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		name := filepath.Join(dir, "train0", "train0.json")
		if i == 1 {
			name = filepath.Join(dir, "train1", "train1.json")
		}
		buf, err := os.ReadFile(name)
		if err != nil {
			Te.Fatal(err)
		}
		var cfg map[string]interface{}
		if err := json.Unmarshal(buf, &cfg); err != nil {
			Te.Fatalf("%s is not valid json: %v", name, err)
		}
		model, ok := cfg["model"].(map[string]interface{})
		if !ok {
			Te.Fatalf("%s lacks a model section", name)
		}
		desc := model["descriptor"].(map[string]interface{})
		if desc["rcut"].(float64) != 6.0 {
			Te.Errorf("descriptor cutoff %v, want 6", desc["rcut"])
		}
		tr := cfg["training"].(map[string]interface{})
		sys := tr["systems"].([]interface{})
		if len(sys) != 2 {
			Te.Fatalf("%d systems, want 2", len(sys))
		}
		if sys[0].(string) != "../data/C1H4" {
			Te.Errorf("system path should be relative to the config dir, got %q", sys[0])
		}
	}
}

func TestWriteTrainJSONsSeeded(Te *testing.T) {
	a := Te.TempDir()
	b := Te.TempDir()
	if err := WriteTrainJSONs(a, 1, []string{"H"}, nil, 7); err != nil {
		Te.Fatal(err)
	}
	if err := WriteTrainJSONs(b, 1, []string{"H"}, nil, 7); err != nil {
		Te.Fatal(err)
	}
	fa, err := os.ReadFile(filepath.Join(a, "train0", "train0.json"))
	if err != nil {
		Te.Fatal(err)
	}
	fb, err := os.ReadFile(filepath.Join(b, "train0", "train0.json"))
	if err != nil {
		Te.Fatal(err)
	}
	if string(fa) != string(fb) {
		Te.Error("the same seed should reproduce the same configuration")
	}
}
