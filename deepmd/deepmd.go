//Package deepmd writes DeePMD-kit training configurations pointing at the
//labeled systems of a dataset. Several configurations can be written at
//once, differing only in their network seeds, to train a model committee.
package deepmd

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

type descriptor struct {
	Type       string  `json:"type"`
	Sel        string  `json:"sel"`
	RcutSmth   float64 `json:"rcut_smth"`
	Rcut       float64 `json:"rcut"`
	Neuron     []int   `json:"neuron"`
	ResnetDT   bool    `json:"resnet_dt"`
	AxisNeuron int     `json:"axis_neuron"`
	Seed       uint32  `json:"seed"`
}

type fittingNet struct {
	Neuron   []int  `json:"neuron"`
	ResnetDT bool   `json:"resnet_dt"`
	Seed     uint32 `json:"seed"`
}

type model struct {
	TypeMap    []string   `json:"type_map"`
	Descriptor descriptor `json:"descriptor"`
	FittingNet fittingNet `json:"fitting_net"`
}

type learningRate struct {
	Type       string  `json:"type"`
	StartLR    float64 `json:"start_lr"`
	DecaySteps int     `json:"decay_steps"`
	DecayRate  float64 `json:"decay_rate"`
}

type loss struct {
	StartPrefE float64 `json:"start_pref_e"`
	LimitPrefE float64 `json:"limit_pref_e"`
	StartPrefF float64 `json:"start_pref_f"`
	LimitPrefF float64 `json:"limit_pref_f"`
	StartPrefV float64 `json:"start_pref_v"`
	LimitPrefV float64 `json:"limit_pref_v"`
}

type training struct {
	Systems      []string `json:"systems"`
	SetPrefix    string   `json:"set_prefix"`
	StopBatch    int      `json:"stop_batch"`
	BatchSize    string   `json:"batch_size"`
	Seed         uint32   `json:"seed"`
	DispFile     string   `json:"disp_file"`
	DispFreq     int      `json:"disp_freq"`
	NumbTest     int      `json:"numb_test"`
	SaveFreq     int      `json:"save_freq"`
	SaveCkpt     string   `json:"save_ckpt"`
	DispTraining bool     `json:"disp_training"`
	TimeTraining bool     `json:"time_training"`
}

type config struct {
	Model        model        `json:"model"`
	LearningRate learningRate `json:"learning_rate"`
	Loss         loss         `json:"loss"`
	Training     training     `json:"training"`
}

//WriteTrainJSONs writes n training configurations under dir, one per
//subdirectory train<i>, each in a file train<i>.json. typeMap lists the
//element symbols in the order the training data uses, and systems the
//directories holding the labeled systems; the paths stored in each
//configuration are made relative to that configuration's directory. The
//network seeds are drawn from seed, so the same seed reproduces the same
//files.
func WriteTrainJSONs(dir string, n int, typeMap, systems []string, seed int64) error {
	if n < 1 {
		n = 1
	}
	rnd := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		sub := filepath.Join(dir, fmt.Sprintf("train%d", i))
		if err := os.MkdirAll(sub, 0755); err != nil {
			return err
		}
		rel := make([]string, len(systems))
		for j, v := range systems {
			r, err := filepath.Rel(sub, v)
			if err != nil {
				//a system on another volume stays absolute
				r = v
			}
			rel[j] = filepath.ToSlash(r)
		}
		cfg := config{
			Model: model{
				TypeMap: typeMap,
				Descriptor: descriptor{
					Type:       "se_a",
					Sel:        "auto",
					RcutSmth:   1.0,
					Rcut:       6.0,
					Neuron:     []int{25, 50, 100},
					ResnetDT:   false,
					AxisNeuron: 12,
					Seed:       rnd.Uint32(),
				},
				FittingNet: fittingNet{
					Neuron:   []int{240, 240, 240},
					ResnetDT: true,
					Seed:     rnd.Uint32(),
				},
			},
			LearningRate: learningRate{
				Type:       "exp",
				StartLR:    0.0005,
				DecaySteps: 20000,
				DecayRate:  0.96,
			},
			Loss: loss{
				StartPrefE: 0.2,
				LimitPrefE: 0.2,
				StartPrefF: 1000,
				LimitPrefF: 1,
			},
			Training: training{
				Systems:      rel,
				SetPrefix:    "set",
				StopBatch:    4000000,
				BatchSize:    "auto",
				Seed:         rnd.Uint32(),
				DispFile:     "lcurve.out",
				DispFreq:     1000,
				NumbTest:     1,
				SaveFreq:     1000,
				SaveCkpt:     "./model.ckpt",
				DispTraining: true,
				TimeTraining: true,
			},
		}
		buf, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		name := filepath.Join(sub, fmt.Sprintf("train%d.json", i))
		if err := os.WriteFile(name, append(buf, '\n'), 0644); err != nil {
			return err
		}
	}
	return nil
}
